// Package scraper fetches AFL Tables season pages and turns them into afl.Round values.
//
// A season page lists its rounds as pairs of top-level tables: a title table followed
// by a body table. Regular-round bodies contain one small table per match (or bye);
// finals bodies are themselves the match table. Ladder tables and the "Finals" section
// heading are skipped. Played matches are 8-cell tables, byes are 2-cell tables, and
// anything else inside a regular round is treated as page decoration.
package scraper
