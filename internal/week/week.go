// Package week handles ISO-8601 calendar week labels of the form
// "YYYY-Www" (e.g. "2026-W06"). All activity bucketing in the app uses
// ISO week rules: weeks start on Monday and week 1 is the week
// containing the year's first Thursday.
package week

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var dayNames = [7]string{"월", "화", "수", "목", "금", "토", "일"}

var labelRegexp = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// Label formats an ISO (year, week) pair as "YYYY-Www".
func Label(year, wk int) string {
	return fmt.Sprintf("%d-W%02d", year, wk)
}

// FromTime returns the label of the ISO week containing t.
func FromTime(t time.Time) string {
	y, w := t.ISOWeek()
	return Label(y, w)
}

// Current returns the label of the ISO week containing now.
func Current() string {
	return FromTime(time.Now())
}

// Parse splits a "YYYY-Www" label into its ISO year and week number.
// The label must match the canonical form exactly.
func Parse(label string) (year, wk int, err error) {
	m := labelRegexp.FindStringSubmatch(label)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid week label %q", label)
	}
	year, _ = strconv.Atoi(m[1])
	wk, _ = strconv.Atoi(m[2])
	if wk < 1 || wk > 53 {
		return 0, 0, fmt.Errorf("invalid week label %q", label)
	}
	return year, wk, nil
}

// Monday returns the Monday (midnight UTC) of the week named by label.
func Monday(label string) (time.Time, error) {
	year, wk, err := Parse(label)
	if err != nil {
		return time.Time{}, err
	}
	// Jan 4 is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7
	}
	week1Monday := jan4.AddDate(0, 0, 1-wd)
	return week1Monday.AddDate(0, 0, (wk-1)*7), nil
}

// Next returns the label of the week immediately following label.
func Next(label string) (string, error) {
	mon, err := Monday(label)
	if err != nil {
		return "", err
	}
	return FromTime(mon.AddDate(0, 0, 7)), nil
}

// MondayOf returns the Monday of the week containing t, at midnight in
// t's location.
func MondayOf(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	d := t.AddDate(0, 0, 1-wd)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// DisplayLabel renders the human-readable label shown on the status
// board, e.g. "26년 2월 2일(월) 주" for the week starting 2026-02-02.
func DisplayLabel(t time.Time) string {
	mon := MondayOf(t)
	return fmt.Sprintf("%d년 %d월 %d일(%s) 주",
		mon.Year()%100, int(mon.Month()), mon.Day(), dayNames[0])
}

// FormatDate renders a date with its Korean weekday, e.g.
// "2026-02-02(월)", as used in settlement period headers.
func FormatDate(t time.Time) string {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return fmt.Sprintf("%d-%02d-%02d(%s)", t.Year(), int(t.Month()), t.Day(), dayNames[wd-1])
}
