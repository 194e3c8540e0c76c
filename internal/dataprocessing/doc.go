// Package dataprocessing implements the core of the search-performance
// report cleaner: column classification, per-role field validation, and
// row reconciliation.
//
// # Architecture
//
// The package is organized into three components:
//
//  1. Classifier: maps header spellings to semantic roles (query, page,
//     position, numeric metric) by exact case-insensitive alias match
//  2. Validators: total, null-safe predicates and transforms per role
//  3. Cleaner: builds a validity mask per classified column, intersects the
//     masks to decide which rows survive, and normalizes surviving values
//
// # Usage
//
//	cleaner := dataprocessing.NewCleaner(logger)
//	result := cleaner.Clean(table)
//	fmt.Println(result.Summary.CleanedRows)
//
// # Data Flow
//
//	Table → Classifier → ColumnRoles → Cleaner (runs Validators per role) →
//	CleanResult (cleaned table + per-column statistics)
//
// # Error Handling
//
// The validators are total functions: bad data is a validity signal folded
// into the row masks and statistics, never an error value or panic. The only
// caller-visible signal is an empty statistics map when no column matched any
// known role.
//
// # Concurrency
//
// A run is single-threaded and touches no shared state beyond the constant
// alias tables, so one Cleaner may be used from multiple goroutines as long
// as each call gets its own table.
package dataprocessing
