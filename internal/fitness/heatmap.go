package fitness

import (
	"sort"
	"strings"
	"time"
)

const OtherMuscleGroup = "other"

// MuscleGroupIndex maps lower cased exercise names to muscle groups.
type MuscleGroupIndex map[string]string

func (idx MuscleGroupIndex) Add(exerciseName, muscleGroup string) {
	idx[strings.ToLower(strings.TrimSpace(exerciseName))] = strings.ToLower(strings.TrimSpace(muscleGroup))
}

func (idx MuscleGroupIndex) Lookup(exerciseName string) string {
	if g := idx[strings.ToLower(strings.TrimSpace(exerciseName))]; g != "" {
		return g
	}
	return OtherMuscleGroup
}

type MuscleLoad struct {
	MuscleGroup string  `json:"muscleGroup"`
	Sets        int     `json:"sets"`
	Volume      float64 `json:"volume"`
	// Intensity is Sets relative to the busiest group, in [0, 1].
	Intensity float64 `json:"intensity"`
}

// Heatmap counts completed sets per muscle group over the last days calendar days.
func Heatmap(workouts []Workout, idx MuscleGroupIndex, days int, now time.Time, loc *time.Location) []MuscleLoad {
	if days <= 0 {
		days = 7
	}
	from := Day(now, loc).AddDate(0, 0, -(days - 1))

	loads := make(map[string]*MuscleLoad)
	for _, w := range workouts {
		if !inDays(w.Date, from, days, loc) {
			continue
		}
		for _, e := range w.Exercises {
			completed := e.CompletedSets()
			if completed == 0 {
				continue
			}
			group := idx.Lookup(e.Name)
			load, ok := loads[group]
			if !ok {
				load = &MuscleLoad{MuscleGroup: group}
				loads[group] = load
			}
			load.Sets += completed
			load.Volume += e.Volume()
		}
	}

	maxSets := 0
	result := make([]MuscleLoad, 0, len(loads))
	for _, l := range loads {
		if l.Sets > maxSets {
			maxSets = l.Sets
		}
		result = append(result, *l)
	}
	for i := range result {
		result[i].Intensity = float64(result[i].Sets) / float64(maxSets)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Sets != result[j].Sets {
			return result[i].Sets > result[j].Sets
		}
		return result[i].MuscleGroup < result[j].MuscleGroup
	})
	return result
}
