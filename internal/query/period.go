package query

import (
    "regexp"
    "strings"
    "time"

    "github.com/Abhishek-0673/autonomize-activity-monitor/internal/domain"
)

// Ordered: first match in declaration order wins.
var periodPatterns = []struct {
    period domain.Period
    re     *regexp.Regexp
}{
    {domain.PeriodToday, regexp.MustCompile(`\btoday\b`)},
    {domain.PeriodYesterday, regexp.MustCompile(`\byesterday\b`)},
    {domain.PeriodThisWeek, regexp.MustCompile(`\bthis week\b`)},
    {domain.PeriodLastWeek, regexp.MustCompile(`\blast week\b`)},
    {domain.PeriodThisMonth, regexp.MustCompile(`\bthis month\b`)},
    {domain.PeriodLastMonth, regexp.MustCompile(`\blast month\b`)},
}

// DetectPeriod matches the question against the fixed period phrases.
// PeriodNone means callers should use an unbounded date range.
func DetectPeriod(text string) domain.Period {
    t := strings.ToLower(text)
    for _, p := range periodPatterns {
        if p.re.MatchString(t) { return p.period }
    }
    return domain.PeriodNone
}

// ResolveRange converts a relative period into concrete UTC bounds: since is
// inclusive at 00:00:00, until inclusive at 23:59:59 of the range's last day
// (for open-ended periods that day is today). Weeks start Monday; last_month
// spans the full prior calendar month. PeriodNone yields nil bounds.
func ResolveRange(p domain.Period, now time.Time) (since, until *time.Time) {
    day := now.UTC().Truncate(24 * time.Hour)
    var start, end time.Time
    switch p {
    case domain.PeriodToday:
        start, end = day, day
    case domain.PeriodYesterday:
        y := day.AddDate(0, 0, -1)
        start, end = y, y
    case domain.PeriodThisWeek:
        start, end = day.AddDate(0, 0, -mondayOffset(day)), day
    case domain.PeriodLastWeek:
        start = day.AddDate(0, 0, -mondayOffset(day)-7)
        end = start.AddDate(0, 0, 6)
    case domain.PeriodThisMonth:
        start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
        end = day
    case domain.PeriodLastMonth:
        first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
        end = first.AddDate(0, 0, -1)
        start = time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
    default:
        return nil, nil
    }
    s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
    u := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC)
    return &s, &u
}

// mondayOffset returns days elapsed since the most recent Monday.
func mondayOffset(t time.Time) int {
    wd := int(t.Weekday())
    if wd == 0 { return 6 }
    return wd - 1
}
