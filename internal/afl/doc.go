// Package afl provides the result types scraped from the AFL Tables season pages.
//
// A season is an ordered list of rounds. Each round holds its matches in page order,
// and each match holds one team record (a bye) or two (a played match). Team records
// hold the progressive quarter-by-quarter scores; the last entry is the final score.
// Values are built once by the scraper and never mutated afterwards.
package afl
