package dataprocessing

import (
	"log/slog"
	"strconv"

	"gscclean/pkg/contracts/domain"
)

// Cleaner filters a search-performance table down to the rows that pass
// every classified column's validity rules and normalizes the surviving
// values. It holds no per-run state, so one instance can serve many tables.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a cleaner. A nil logger falls back to slog.Default.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger.With(slog.String("component", "cleaner"))}
}

// Clean classifies the table's columns, builds a validity mask per classified
// column, intersects the masks to pick the surviving rows, and returns a new
// table restricted to those rows with query text normalized and numeric
// columns coerced. The input table is never modified.
//
// Per-column statistics are measured against each column's own mask in
// isolation: they report that column's filtering yield over the full input,
// while the returned table reflects the intersection of all masks. When no
// column matches any known role the input comes back unchanged with an empty
// statistics map, and the caller decides whether to warn.
func (c *Cleaner) Clean(table domain.Table) domain.CleanResult {
	roles := ClassifyColumns(table.Headers)
	rowCount := table.RowCount()

	if !roles.HasAny() {
		c.logger.Warn("no recognized columns in table",
			slog.Any("headers", table.Headers))
		return domain.CleanResult{
			Table:       table.Clone(),
			Roles:       roles,
			ColumnStats: map[string]domain.ColumnStats{},
			Summary:     domain.NewSummary(rowCount, rowCount),
		}
	}

	c.logger.Info("identified columns",
		slog.String("query", roles.QueryColumn),
		slog.String("page", roles.PageColumn),
		slog.String("position", roles.PositionColumn),
		slog.Any("numeric", roles.NumericColumns))

	stats := make(map[string]domain.ColumnStats)
	var masks [][]bool

	addMask := func(name string, build func([]string) ([]bool, domain.ColumnStats)) {
		col, ok := table.Column(name)
		if !ok {
			return
		}
		mask, colStats := build(col)
		masks = append(masks, mask)
		stats[name] = colStats
		c.logger.Info("column filtered",
			slog.String("column", name),
			slog.Int("original", colStats.OriginalCount),
			slog.Int("removed", colStats.RemovedTotal()),
			slog.Int("final", colStats.FinalCount))
	}

	if roles.QueryColumn != "" {
		addMask(roles.QueryColumn, queryMask)
	}
	if roles.PageColumn != "" {
		addMask(roles.PageColumn, pageMask)
	}
	if roles.PositionColumn != "" {
		addMask(roles.PositionColumn, numericMask)
	}
	for _, name := range roles.NumericColumns {
		addMask(name, numericMask)
	}

	survivors := intersect(rowCount, masks)
	cleaned := table.SelectRows(survivors)
	normalize(&cleaned, roles)

	c.logger.Info("cleaning complete",
		slog.Int("original_rows", rowCount),
		slog.Int("cleaned_rows", cleaned.RowCount()))

	return domain.CleanResult{
		Table:       cleaned,
		Roles:       roles,
		ColumnStats: stats,
		Summary:     domain.NewSummary(rowCount, cleaned.RowCount()),
	}
}

// queryMask runs the three query stages in sequence. Each stage only sees
// the rows the previous stages kept, so the stage counts add up to the
// column's total removals.
func queryMask(col []string) ([]bool, domain.ColumnStats) {
	mask := make([]bool, len(col))
	for i := range mask {
		mask[i] = true
	}

	nonEnglish := applyStage(col, mask, func(v string) bool { return IsEnglishText(v) })
	urls := applyStage(col, mask, func(v string) bool { return !IsURL(v) })
	emptied := applyStage(col, mask, func(v string) bool { return StripNonAlnumSpace(v) != "" })

	return mask, domain.ColumnStats{
		OriginalCount: len(col),
		Stages: []domain.StageCount{
			{Name: domain.StageNonEnglish, Removed: nonEnglish},
			{Name: domain.StageURLs, Removed: urls},
			{Name: domain.StageSpecialChars, Removed: emptied},
		},
		FinalCount: countTrue(mask),
	}
}

func pageMask(col []string) ([]bool, domain.ColumnStats) {
	mask := make([]bool, len(col))
	for i := range mask {
		mask[i] = true
	}
	removed := applyStage(col, mask, IsHTTPSURL)

	return mask, domain.ColumnStats{
		OriginalCount: len(col),
		Stages:        []domain.StageCount{{Name: domain.StageNonHTTPS, Removed: removed}},
		FinalCount:    countTrue(mask),
	}
}

func numericMask(col []string) ([]bool, domain.ColumnStats) {
	mask := make([]bool, len(col))
	for i := range mask {
		mask[i] = true
	}
	removed := applyStage(col, mask, func(v string) bool {
		_, ok := CoerceNumeric(v)
		return ok
	})

	return mask, domain.ColumnStats{
		OriginalCount: len(col),
		Stages:        []domain.StageCount{{Name: domain.StageNonNumeric, Removed: removed}},
		FinalCount:    countTrue(mask),
	}
}

// applyStage clears mask entries whose value fails keep and returns how many
// previously-valid rows this stage removed.
func applyStage(col []string, mask []bool, keep func(string) bool) int {
	removed := 0
	for i, v := range col {
		if mask[i] && !keep(v) {
			mask[i] = false
			removed++
		}
	}
	return removed
}

// intersect returns the row indices, in order, that are valid in every mask.
func intersect(rowCount int, masks [][]bool) []int {
	survivors := make([]int, 0, rowCount)
	for i := 0; i < rowCount; i++ {
		ok := true
		for _, mask := range masks {
			if !mask[i] {
				ok = false
				break
			}
		}
		if ok {
			survivors = append(survivors, i)
		}
	}
	return survivors
}

// normalize rewrites the surviving cells in place: query text is stripped of
// disallowed characters, position and metric values become canonical numbers.
// A value that still fails coercion here, which the mask should have already
// excluded, becomes an empty cell rather than an error.
func normalize(t *domain.Table, roles domain.ColumnRoles) {
	if idx := t.ColumnIndex(roles.QueryColumn); roles.QueryColumn != "" && idx >= 0 {
		for _, row := range t.Rows {
			row[idx] = StripNonAlnumSpace(row[idx])
		}
	}

	numericCols := roles.NumericColumns
	if roles.PositionColumn != "" {
		numericCols = append([]string{roles.PositionColumn}, numericCols...)
	}
	for _, name := range numericCols {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			continue
		}
		for _, row := range t.Rows {
			if n, ok := CoerceNumeric(row[idx]); ok {
				row[idx] = formatNumber(n)
			} else {
				row[idx] = ""
			}
		}
	}
}

// formatNumber renders a coerced value without locale formatting and without
// a trailing ".0" for whole numbers.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func countTrue(mask []bool) int {
	n := 0
	for _, v := range mask {
		if v {
			n++
		}
	}
	return n
}
