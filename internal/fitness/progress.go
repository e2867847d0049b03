package fitness

import (
	"math"
	"sort"
	"time"
)

const DefaultWeeklyTarget = 5

type WeeklyProgress struct {
	WeekStart     time.Time `json:"weekStart"`
	CompletedDays int       `json:"completedDays"`
	Target        int       `json:"target"`
	Percentage    float64   `json:"percentage"`
}

// Progress counts distinct workout days in the current Monday based week
// against the weekly target.
func Progress(workouts []Workout, target int, now time.Time, loc *time.Location) WeeklyProgress {
	if target <= 0 {
		target = DefaultWeeklyTarget
	}
	weekStart := WeekStart(now, loc)

	done := 0
	for _, d := range uniqueDaysDesc(workouts, loc) {
		if inDays(d, weekStart, 7, loc) {
			done++
		}
	}

	return WeeklyProgress{
		WeekStart:     weekStart,
		CompletedDays: done,
		Target:        target,
		Percentage:    math.Min(float64(done)/float64(target)*100, 100),
	}
}

type TrendPoint struct {
	WorkoutID string    `json:"workoutId"`
	Date      time.Time `json:"date"`
	Weight    float64   `json:"weight"`
}

// Trend returns the heaviest completed set of exerciseName per workout,
// oldest first. Workouts where it is 0 are skipped.
func Trend(workouts []Workout, exerciseName string) []TrendPoint {
	points := []TrendPoint{}
	for _, w := range workouts {
		var heaviest float64
		for _, e := range w.Exercises {
			if e.Name != exerciseName {
				continue
			}
			for _, s := range e.Sets {
				if s.Completed && s.Weight > heaviest {
					heaviest = s.Weight
				}
			}
		}
		if heaviest > 0 {
			points = append(points, TrendPoint{
				WorkoutID: w.ID,
				Date:      w.Date,
				Weight:    heaviest,
			})
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// TrendExercises lists, sorted, the exercises that have a weighted completed set.
func TrendExercises(workouts []Workout) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, w := range workouts {
		for _, e := range w.Exercises {
			if seen[e.Name] {
				continue
			}
			for _, s := range e.Sets {
				if s.Completed && s.Weight > 0 {
					seen[e.Name] = true
					names = append(names, e.Name)
					break
				}
			}
		}
	}
	sort.Strings(names)
	return names
}

type TodaySet struct {
	WorkoutID    string  `json:"workoutId"`
	ExerciseName string  `json:"exerciseName"`
	SetNumber    int     `json:"setNumber"`
	Weight       float64 `json:"weight"`
	Reps         int     `json:"reps"`
	Completed    bool    `json:"completed"`
}

type TodaySummary struct {
	Date          time.Time  `json:"date"`
	Workouts      int        `json:"workouts"`
	Sets          []TodaySet `json:"sets"`
	CompletedSets int        `json:"completedSets"`
	Volume        float64    `json:"volume"`
}

// Today flattens the sets logged today.
func Today(workouts []Workout, now time.Time, loc *time.Location) TodaySummary {
	today := Day(now, loc)
	summary := TodaySummary{
		Date: today,
		Sets: []TodaySet{},
	}

	for _, w := range workouts {
		if !Day(w.Date, loc).Equal(today) {
			continue
		}
		summary.Workouts++
		summary.Volume += w.Volume()
		for _, e := range w.Exercises {
			for i, s := range e.Sets {
				summary.Sets = append(summary.Sets, TodaySet{
					WorkoutID:    w.ID,
					ExerciseName: e.Name,
					SetNumber:    i + 1,
					Weight:       s.Weight,
					Reps:         s.Reps,
					Completed:    s.Completed,
				})
				if s.Completed {
					summary.CompletedSets++
				}
			}
		}
	}

	return summary
}
