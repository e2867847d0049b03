package fitness

import (
	"sort"
	"time"
)

// Day truncates t to the start of its calendar day in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// WeekStart returns the Monday starting the week of t.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	d := Day(t, loc)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// inDays reports whether t falls in [from, from+days) counted in calendar days.
func inDays(t, from time.Time, days int, loc *time.Location) bool {
	d := Day(t, loc)
	return !d.Before(from) && d.Before(from.AddDate(0, 0, days))
}

// uniqueDaysDesc returns the distinct workout days, newest first.
func uniqueDaysDesc(workouts []Workout, loc *time.Location) []time.Time {
	seen := make(map[time.Time]bool, len(workouts))
	days := make([]time.Time, 0, len(workouts))
	for _, w := range workouts {
		d := Day(w.Date, loc)
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})
	return days
}
