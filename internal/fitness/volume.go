package fitness

import (
	"math"
	"time"
)

// CaloriesPerVolumeUnit is the rough kcal estimate per kg lifted.
const CaloriesPerVolumeUnit = 0.04

type QuickStats struct {
	TotalWorkouts int     `json:"totalWorkouts"`
	TotalVolume   float64 `json:"totalVolume"`
	MostTrained   string  `json:"mostTrained"`
}

// Stats summarizes the whole history. The most trained exercise is the one
// logged in the most exercise entries; the first seen wins a tie.
func Stats(workouts []Workout) QuickStats {
	stats := QuickStats{
		TotalWorkouts: len(workouts),
	}

	counts := make(map[string]int)
	var order []string
	for _, w := range workouts {
		stats.TotalVolume += w.Volume()
		for _, e := range w.Exercises {
			if counts[e.Name] == 0 {
				order = append(order, e.Name)
			}
			counts[e.Name]++
		}
	}

	best := 0
	for _, name := range order {
		if counts[name] > best {
			best = counts[name]
			stats.MostTrained = name
		}
	}

	return stats
}

type DayVolume struct {
	Date     time.Time `json:"date"`
	Day      string    `json:"day"`
	Workouts int       `json:"workouts"`
	Volume   float64   `json:"volume"`
}

type WeeklyOverview struct {
	Days        []DayVolume `json:"days"`
	TotalVolume float64     `json:"totalVolume"`
}

// Weekly returns the 7 calendar days ending today, oldest first.
func Weekly(workouts []Workout, now time.Time, loc *time.Location) WeeklyOverview {
	today := Day(now, loc)
	from := today.AddDate(0, 0, -6)

	overview := WeeklyOverview{
		Days: make([]DayVolume, 7),
	}
	for i := range overview.Days {
		d := from.AddDate(0, 0, i)
		overview.Days[i] = DayVolume{
			Date: d,
			Day:  d.Weekday().String()[:3],
		}
	}

	for _, w := range workouts {
		if !inDays(w.Date, from, 7, loc) {
			continue
		}
		d := Day(w.Date, loc)
		for i := range overview.Days {
			if overview.Days[i].Date.Equal(d) {
				overview.Days[i].Workouts++
				overview.Days[i].Volume += w.Volume()
				overview.TotalVolume += w.Volume()
				break
			}
		}
	}

	return overview
}

type WorkoutCalories struct {
	WorkoutID string    `json:"workoutId"`
	Date      time.Time `json:"date"`
	Volume    float64   `json:"volume"`
	Calories  int       `json:"calories"`
}

type CalorieBurn struct {
	Workouts          []WorkoutCalories `json:"workouts"`
	TotalCalories     int               `json:"totalCalories"`
	AveragePerWorkout int               `json:"averagePerWorkout"`
}

// Calories estimates burned calories for the workouts of the last 7 days.
func Calories(workouts []Workout, now time.Time, loc *time.Location) CalorieBurn {
	from := Day(now, loc).AddDate(0, 0, -6)

	burn := CalorieBurn{
		Workouts: []WorkoutCalories{},
	}
	for _, w := range workouts {
		if !inDays(w.Date, from, 7, loc) {
			continue
		}
		volume := w.Volume()
		calories := int(math.Round(volume * CaloriesPerVolumeUnit))
		burn.Workouts = append(burn.Workouts, WorkoutCalories{
			WorkoutID: w.ID,
			Date:      w.Date,
			Volume:    volume,
			Calories:  calories,
		})
		burn.TotalCalories += calories
	}

	if len(burn.Workouts) > 0 {
		burn.AveragePerWorkout = int(math.Round(float64(burn.TotalCalories) / float64(len(burn.Workouts))))
	}

	return burn
}
