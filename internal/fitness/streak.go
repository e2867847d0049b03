package fitness

import "time"

// Streak counts consecutive calendar days with at least one workout, ending
// today or yesterday. A streak whose last day is before yesterday is broken,
// and a workout dated after today yields no streak at all.
func Streak(workouts []Workout, now time.Time, loc *time.Location) int {
	days := uniqueDaysDesc(workouts, loc)
	if len(days) == 0 {
		return 0
	}

	today := Day(now, loc)
	yesterday := today.AddDate(0, 0, -1)
	if days[0].Before(yesterday) || days[0].After(today) {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if !days[i].Equal(days[i-1].AddDate(0, 0, -1)) {
			break
		}
		streak++
	}
	return streak
}
