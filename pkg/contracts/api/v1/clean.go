// Package v1 defines the request and response contracts of the cleaning API.
package v1

import (
	"gscclean/pkg/contracts/domain"
)

// CleanOptions are the caller-tunable knobs of an upload, parsed from form
// fields and validated before the pipeline runs.
type CleanOptions struct {
	// PreviewRows caps how many cleaned rows come back inline in the JSON
	// response. Zero means no preview.
	PreviewRows int `json:"preview_rows" validate:"min=0"`
}

// CleanResponse is the JSON result of POST /api/clean.
type CleanResponse struct {
	IdentifiedColumns domain.ColumnRoles            `json:"identified_columns"`
	ColumnStats       map[string]domain.ColumnStats `json:"column_stats"`
	Summary           domain.Summary                `json:"summary"`
	Headers           []string                      `json:"headers"`
	Preview           [][]string                    `json:"preview,omitempty"`
	// Warning is set when no column matched a known role and the table came
	// back unchanged.
	Warning string `json:"warning,omitempty"`
}
