// Package dataset loads the per-ride wait time CSV files and unifies them
// into a single queryable table.
//
// Each source file carries one ride's posted wait observations. The loader
// cleans every file independently (column pruning, timestamp normalization,
// dropping rows without a posted wait), then Unify outer-joins the cleaned
// frames on their timestamp, derives calendar columns, repairs gaps by
// carrying the next later observation backward within each calendar day,
// and finally converts the closed-ride sentinel to missing.
//
// The resulting Table is immutable and safe for concurrent readers; all
// HTTP traffic is served from it without further file access.
package dataset
