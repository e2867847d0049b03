package coach

import (
	"fmt"
	"strings"

	"github.com/2beens/vibefit/internal/fitness"
)

const motivationSystemPrompt = `You are a personal fitness coach. You will generate a personalized workout tip and motivational message based on the user's workout history and fitness goals.`

const suggestionSystemPrompt = `You are an expert fitness coach named "Turbo Granny Coach". Your task is to create a personalized workout suggestion for a user based on their data and chosen workout split. The workout should be effective, safe, and aligned with their goals.

Generate a structured workout suggestion with exactly 8 exercises. Each exercise must have exactly 4 sets. The exercises should be chosen from the provided list of available exercises and be appropriate for the selected workout split.
For the recommended weight, analyze the user's PRs. If a relevant PR exists, suggest a challenging but achievable weight (e.g., 80-90% of PR for strength-focused reps, or 60-75% for hypertrophy-focused reps). If no PR is available, suggest a reasonable starting weight or "Bodyweight".

Your response must be in the structured format defined by the output schema. Ensure all fields are populated with relevant, high-quality information.`

// SummarizeHistory renders workouts as one line each:
// "On 2025-06-10, user did: Bench Press (4x8 at 100kg), Squat (3x5 at 120kg)".
// Each exercise shows its completed sets, and the reps of its heaviest one.
func SummarizeHistory(workouts []fitness.Workout) string {
	if len(workouts) == 0 {
		return "No workouts recorded yet."
	}

	lines := make([]string, 0, len(workouts))
	for _, w := range workouts {
		var parts []string
		for _, e := range w.Exercises {
			completed := e.CompletedSets()
			if completed == 0 {
				continue
			}
			var top fitness.ExerciseSet
			found := false
			for _, s := range e.Sets {
				if s.Completed && (!found || s.Weight > top.Weight) {
					top = s
					found = true
				}
			}
			parts = append(parts, fmt.Sprintf("%s (%dx%d at %vkg)", e.Name, completed, top.Reps, top.Weight))
		}
		if len(parts) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("On %s, user did: %s", w.Date.Format("2006-01-02"), strings.Join(parts, ", ")))
	}
	if len(lines) == 0 {
		return "No workouts recorded yet."
	}
	return strings.Join(lines, "; ")
}

func SummarizeRecords(records []fitness.PersonalRecord) string {
	if len(records) == 0 {
		return "No personal records yet."
	}
	parts := make([]string, 0, len(records))
	for _, pr := range records {
		parts = append(parts, fmt.Sprintf("%s: %vkg for %d reps", pr.ExerciseName, pr.Weight, pr.Reps))
	}
	return strings.Join(parts, ", ")
}
