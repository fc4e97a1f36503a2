// Package listpage parses the paginated announcement table into candidate
// records: title, detail link, location, date and time fragments, note, and
// an optional registration link found in the trailing columns.
package listpage
