// Package dataset reads researcher profiles from CSV files.
//
// The input must be UTF-8 (a leading byte order mark is tolerated) and must
// start with a header row naming every column in Columns. Columns may appear
// in any order; unknown columns are ignored. Cell values are returned
// verbatim, without trimming or type conversion.
package dataset
