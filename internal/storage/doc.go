// Package storage writes scraped seasons to disk as JSON.
//
// Each season lives in its own file, <year>.json, inside the store directory.
// Files are written to a temporary name first and renamed into place, so a
// reader never sees a partially written season.
package storage
