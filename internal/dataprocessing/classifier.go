package dataprocessing

import (
	"strings"

	"gscclean/pkg/contracts/domain"
)

// Accepted header spellings per role. Matching is exact after lowercasing;
// no substring or fuzzy matching.
var (
	queryAliases    = []string{"query", "queries", "keyword", "keywords"}
	pageAliases     = []string{"page", "landing page", "address"}
	positionAliases = []string{"position", "avg pos", "avg position", "avg. pos", "avg. position"}
	numericAliases  = []string{"clicks", "impressions", "click", "impression"}
)

// ClassifyColumns maps the table's headers to semantic roles. For query, page
// and position the first header (in column order) matching one of the role's
// aliases wins; every header matching a numeric metric alias is captured.
// The returned names preserve the original header casing.
func ClassifyColumns(headers []string) domain.ColumnRoles {
	roles := domain.ColumnRoles{
		QueryColumn:    firstMatch(headers, queryAliases),
		PageColumn:     firstMatch(headers, pageAliases),
		PositionColumn: firstMatch(headers, positionAliases),
	}
	for _, h := range headers {
		if matchesAny(h, numericAliases) {
			roles.NumericColumns = append(roles.NumericColumns, h)
		}
	}
	return roles
}

func firstMatch(headers, aliases []string) string {
	for _, h := range headers {
		if matchesAny(h, aliases) {
			return h
		}
	}
	return ""
}

func matchesAny(header string, aliases []string) bool {
	lower := strings.ToLower(header)
	for _, alias := range aliases {
		if lower == alias {
			return true
		}
	}
	return false
}
