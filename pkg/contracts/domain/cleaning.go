package domain

// ColumnRole identifies the semantic meaning assigned to a report column.
type ColumnRole string

const (
	RoleQuery         ColumnRole = "query"
	RolePage          ColumnRole = "page"
	RolePosition      ColumnRole = "position"
	RoleNumericMetric ColumnRole = "numeric_metric"
)

// ColumnRoles maps a report's headers to their semantic roles. Single-valued
// roles hold the original header spelling or the empty string when no header
// matched; every header matching a numeric metric alias is captured.
type ColumnRoles struct {
	QueryColumn    string   `json:"query_column,omitempty"`
	PageColumn     string   `json:"page_column,omitempty"`
	PositionColumn string   `json:"position_column,omitempty"`
	NumericColumns []string `json:"numeric_columns,omitempty"`
}

// HasAny reports whether at least one role was assigned.
func (r ColumnRoles) HasAny() bool {
	return r.QueryColumn != "" || r.PageColumn != "" || r.PositionColumn != "" || len(r.NumericColumns) > 0
}

// Classified returns every column name that received a role, in role order.
func (r ColumnRoles) Classified() []string {
	var cols []string
	if r.QueryColumn != "" {
		cols = append(cols, r.QueryColumn)
	}
	if r.PageColumn != "" {
		cols = append(cols, r.PageColumn)
	}
	if r.PositionColumn != "" {
		cols = append(cols, r.PositionColumn)
	}
	cols = append(cols, r.NumericColumns...)
	return cols
}

// StageCount records how many rows one cleaning stage removed from a column,
// measured against the rows that survived the previous stages of that same
// column.
type StageCount struct {
	Name    string `json:"name"`
	Removed int    `json:"removed"`
}

// Stage names reported per column role. Query columns run three stages in
// sequence; page and numeric columns run one.
const (
	StageNonEnglish   = "non_english_removed"
	StageURLs         = "urls_removed"
	StageSpecialChars = "special_chars_cleaned"
	StageNonHTTPS     = "non_https_removed"
	StageNonNumeric   = "non_numeric_removed"
)

// ColumnStats is the per-column cleaning diagnostic: counts before and after
// that column's own filtering, independent of what other columns removed.
type ColumnStats struct {
	OriginalCount int          `json:"original_count"`
	Stages        []StageCount `json:"stages"`
	FinalCount    int          `json:"final_count"`
}

// RemovedTotal returns the number of rows this column's own filtering removed.
func (s ColumnStats) RemovedTotal() int {
	return s.OriginalCount - s.FinalCount
}

// RetentionPct returns this column's retention rate as a percentage. The
// second return value is false for an empty column, where the rate is
// undefined.
func (s ColumnStats) RetentionPct() (float64, bool) {
	if s.OriginalCount == 0 {
		return 0, false
	}
	return float64(s.FinalCount) / float64(s.OriginalCount) * 100, true
}

// Summary describes the whole-table outcome after intersecting every
// classified column's validity mask.
type Summary struct {
	OriginalRows int `json:"original_rows"`
	CleanedRows  int `json:"cleaned_rows"`
	RemovedRows  int `json:"removed_rows"`
	// RetentionPct is nil when the input table had zero rows and the rate
	// is undefined.
	RetentionPct *float64 `json:"retention_pct,omitempty"`
}

// NewSummary computes the whole-table summary, guarding the zero-row case.
func NewSummary(originalRows, cleanedRows int) Summary {
	s := Summary{
		OriginalRows: originalRows,
		CleanedRows:  cleanedRows,
		RemovedRows:  originalRows - cleanedRows,
	}
	if originalRows > 0 {
		pct := float64(cleanedRows) / float64(originalRows) * 100
		s.RetentionPct = &pct
	}
	return s
}

// CleanResult is the full outcome of one cleaning run: the cleaned table,
// the roles that were identified, per-column diagnostics keyed by original
// header spelling, and the whole-table summary. It is created fresh per run
// and never shares cells with the input table.
type CleanResult struct {
	Table       Table                  `json:"table"`
	Roles       ColumnRoles            `json:"roles"`
	ColumnStats map[string]ColumnStats `json:"column_stats"`
	Summary     Summary                `json:"summary"`
}
