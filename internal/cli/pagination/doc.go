// Package pagination provides utilities for CLI pagination, sorting, and result formatting.
//
// This package contains the list-shaping logic used by commands that print
// activity records:
//   - Params: CLI flag parsing and validation
//   - Meta: response metadata for paginated results
//   - RecordSorter: stable sorting of records by a named field
package pagination
