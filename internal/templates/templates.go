package templates

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/2beens/vibefit/internal/fitness"
	"github.com/2beens/vibefit/internal/workouts"
)

//go:embed templates.yaml
var templatesYAML []byte

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrNothingCompleted = errors.New("no completed sets to log")
)

type TemplateExercise struct {
	Name        string `yaml:"name" json:"name"`
	Details     string `yaml:"details" json:"details"`
	DefaultSets int    `yaml:"defaultSets" json:"defaultSets"`
	DefaultReps int    `yaml:"defaultReps" json:"defaultReps"`
}

type Section struct {
	Title     string             `yaml:"title" json:"title"`
	Exercises []TemplateExercise `yaml:"exercises" json:"exercises"`
}

type Template struct {
	Name     string    `yaml:"name" json:"name"`
	Sections []Section `yaml:"sections" json:"sections"`
}

type Catalog struct {
	Templates []Template `yaml:"templates" json:"templates"`
}

// Load parses a templates document.
func Load(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("unmarshal templates: %w", err)
	}
	for _, t := range c.Templates {
		if strings.TrimSpace(t.Name) == "" {
			return nil, errors.New("template without a name")
		}
		for _, s := range t.Sections {
			for _, e := range s.Exercises {
				if e.DefaultSets < 1 {
					return nil, fmt.Errorf("template %s: %s needs at least one default set", t.Name, e.Name)
				}
			}
		}
	}
	return &c, nil
}

// Embedded returns the templates shipped with the binary.
func Embedded() (*Catalog, error) {
	return Load(templatesYAML)
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Templates))
	for _, t := range c.Templates {
		names = append(names, t.Name)
	}
	return names
}

// Get looks a template up by name, ignoring case.
func (c *Catalog) Get(name string) (*Template, error) {
	for i := range c.Templates {
		if strings.EqualFold(c.Templates[i].Name, name) {
			return &c.Templates[i], nil
		}
	}
	return nil, ErrTemplateNotFound
}

// Draft builds a loggable workout from the template: default sets and reps,
// no weight, nothing completed.
func (t *Template) Draft() fitness.Workout {
	w := fitness.Workout{Exercises: []fitness.Exercise{}}
	for _, s := range t.Sections {
		for _, te := range s.Exercises {
			e := fitness.Exercise{ID: uuid.NewString(), Name: te.Name}
			for i := 0; i < te.DefaultSets; i++ {
				e.Sets = append(e.Sets, fitness.ExerciseSet{
					ID:   uuid.NewString(),
					Reps: te.DefaultReps,
				})
			}
			w.Exercises = append(w.Exercises, e)
		}
	}
	return w
}

// Completion is the share of completed sets in a submission, in [0, 100].
func Completion(w fitness.Workout) float64 {
	total, done := 0, 0
	for _, e := range w.Exercises {
		total += len(e.Sets)
		done += e.CompletedSets()
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}

// CompletedOnly keeps completed sets and drops exercises left without any.
func CompletedOnly(w fitness.Workout) fitness.Workout {
	logged := fitness.Workout{ID: w.ID, Date: w.Date}
	for _, e := range w.Exercises {
		var sets []fitness.ExerciseSet
		for _, s := range e.Sets {
			if s.Completed {
				sets = append(sets, s)
			}
		}
		if len(sets) == 0 {
			continue
		}
		logged.Exercises = append(logged.Exercises, fitness.Exercise{ID: e.ID, Name: e.Name, Sets: sets})
	}
	return logged
}

type workoutAdder interface {
	Add(ctx context.Context, workout fitness.Workout) (*workouts.AddWorkoutResult, error)
}

type Service struct {
	catalog *Catalog
	adder   workoutAdder
}

func NewService(catalog *Catalog, adder workoutAdder) *Service {
	return &Service{
		catalog: catalog,
		adder:   adder,
	}
}

// Log stores the completed part of a submission made from the named template.
func (s *Service) Log(ctx context.Context, name string, submission fitness.Workout) (*workouts.AddWorkoutResult, error) {
	if _, err := s.catalog.Get(name); err != nil {
		return nil, err
	}

	logged := CompletedOnly(submission)
	if len(logged.Exercises) == 0 {
		return nil, ErrNothingCompleted
	}
	return s.adder.Add(ctx, logged)
}
