package fitness

import (
	"sort"
	"time"
)

type PersonalRecord struct {
	ExerciseName string    `json:"exerciseName"`
	Weight       float64   `json:"weight"`
	Reps         int       `json:"reps"`
	Date         time.Time `json:"date"`
}

// beats reports whether a is a better record than b:
// heavier, then more reps, then more recent.
func (a PersonalRecord) beats(b PersonalRecord) bool {
	if a.Weight != b.Weight {
		return a.Weight > b.Weight
	}
	if a.Reps != b.Reps {
		return a.Reps > b.Reps
	}
	return a.Date.After(b.Date)
}

// PersonalRecords returns the best completed set per exercise name,
// most recent first.
func PersonalRecords(workouts []Workout) []PersonalRecord {
	best := make(map[string]PersonalRecord)
	for _, w := range workouts {
		for _, e := range w.Exercises {
			for _, s := range e.Sets {
				if !s.Completed {
					continue
				}
				candidate := PersonalRecord{
					ExerciseName: e.Name,
					Weight:       s.Weight,
					Reps:         s.Reps,
					Date:         w.Date,
				}
				if current, ok := best[e.Name]; !ok || candidate.beats(current) {
					best[e.Name] = candidate
				}
			}
		}
	}

	records := make([]PersonalRecord, 0, len(best))
	for _, r := range best {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].ExerciseName < records[j].ExerciseName
	})
	return records
}

// RecordsByExercise indexes records by exercise name.
func RecordsByExercise(records []PersonalRecord) map[string]PersonalRecord {
	m := make(map[string]PersonalRecord, len(records))
	for _, r := range records {
		m[r.ExerciseName] = r
	}
	return m
}

// NewRecords returns the records w unlocks on top of existing. A completed set
// unlocks one when the exercise has no record yet, or when it is strictly
// heavier than the current one. At most one record per exercise is returned,
// in the order the exercises appear in w.
func NewRecords(existing []PersonalRecord, w Workout) []PersonalRecord {
	current := RecordsByExercise(existing)
	unlocked := make(map[string]PersonalRecord)
	var order []string

	for _, e := range w.Exercises {
		prev, hasPrev := current[e.Name]
		for _, s := range e.Sets {
			if !s.Completed {
				continue
			}
			if hasPrev && s.Weight <= prev.Weight {
				continue
			}
			candidate := PersonalRecord{
				ExerciseName: e.Name,
				Weight:       s.Weight,
				Reps:         s.Reps,
				Date:         w.Date,
			}
			got, ok := unlocked[e.Name]
			if !ok {
				order = append(order, e.Name)
			}
			if !ok || candidate.beats(got) {
				unlocked[e.Name] = candidate
			}
		}
	}

	records := make([]PersonalRecord, 0, len(order))
	for _, name := range order {
		records = append(records, unlocked[name])
	}
	return records
}
