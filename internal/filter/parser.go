package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	monthPattern = `(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)`

	sameMonthRange  = regexp.MustCompile(`(?i)^` + monthPattern + `\s+(\d{1,2})\s*-\s*(\d{1,2})$`)
	crossMonthRange = regexp.MustCompile(`(?i)^` + monthPattern + `\s+(\d{1,2})\s*-\s*` + monthPattern + `\s+(\d{1,2})$`)
	wholeMonth      = regexp.MustCompile(`(?i)^` + monthPattern + `$`)
)

// ParseDate parses an ISO date such as "2019-03-21" as the start of that day in UTC.
func ParseDate(input string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(input))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", input)
	}
	return t, nil
}

// EndOfDay returns the last second of t's day
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
}

// ParseDateRange parses a date range within a season.
//
// Supported formats:
//   - "Mar 1-15" or "March 1-15" - Same month, different days
//   - "March 1 - April 15" - Different months
//   - "September" - Entire month
//
// The season year supplies the year. Start times are at 00:00:00 and end times at
// 23:59:59 UTC.
func ParseDateRange(input string, year int) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}

	if m := sameMonthRange.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		day1, err := parseDay(m[2])
		if err != nil {
			return nil, nil, err
		}
		day2, err := parseDay(m[3])
		if err != nil {
			return nil, nil, err
		}
		return dateSpan(year, month, day1, month, day2)
	}

	if m := crossMonthRange.FindStringSubmatch(input); m != nil {
		day1, err := parseDay(m[2])
		if err != nil {
			return nil, nil, err
		}
		day2, err := parseDay(m[4])
		if err != nil {
			return nil, nil, err
		}
		return dateSpan(year, parseMonth(m[1]), day1, parseMonth(m[3]), day2)
	}

	if m := wholeMonth.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, month+1, 0, 23, 59, 59, 0, time.UTC)
		return &from, &to, nil
	}

	return nil, nil, fmt.Errorf("invalid date range format. Use 'Mar 1-15', 'March 1 - April 15', or 'March'")
}

func dateSpan(year int, m1 time.Month, d1 int, m2 time.Month, d2 int) (*time.Time, *time.Time, error) {
	from := time.Date(year, m1, d1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, m2, d2, 23, 59, 59, 0, time.UTC)
	if from.After(to) {
		return nil, nil, fmt.Errorf("start date must be before end date")
	}
	return &from, &to, nil
}

func parseDay(s string) (int, error) {
	day, err := strconv.Atoi(s)
	if err != nil || day < 1 || day > 31 {
		return 0, fmt.Errorf("invalid day: %s", s)
	}
	return day, nil
}

// parseMonth converts a month name to time.Month
func parseMonth(name string) time.Month {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "sept" {
		name = "sep"
	}
	if len(name) > 3 {
		name = name[:3]
	}

	months := map[string]time.Month{
		"jan": time.January,
		"feb": time.February,
		"mar": time.March,
		"apr": time.April,
		"may": time.May,
		"jun": time.June,
		"jul": time.July,
		"aug": time.August,
		"sep": time.September,
		"oct": time.October,
		"nov": time.November,
		"dec": time.December,
	}

	return months[name]
}
