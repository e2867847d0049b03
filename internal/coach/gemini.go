package coach

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/genai"
)

var ErrCoachDisabled = errors.New("coach disabled, no gemini api key")

// Gemini generates JSON answers with a Gemini model.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrCoachDisabled
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

func (g *Gemini) Generate(ctx context.Context, system, prompt string, schema *genai.Schema) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schema,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("empty model response")
	}
	return text, nil
}

// Disabled is used when no api key is configured.
type Disabled struct{}

func (Disabled) Generate(context.Context, string, string, *genai.Schema) (string, error) {
	return "", ErrCoachDisabled
}

var motivationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"motivationMessage": {
			Type:        genai.TypeString,
			Description: "A personalized workout tip and motivational message.",
		},
	},
	Required: []string{"motivationMessage"},
}

var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"suggestionTitle": {
			Type:        genai.TypeString,
			Description: `A catchy and descriptive title for the session, e.g. "Dynamic Upper Body Power Day".`,
		},
		"workoutRationale": {
			Type:        genai.TypeString,
			Description: "A brief (2-3 sentences) explanation of why this workout is suggested, linked to the user's goals and history.",
		},
		"duration": {
			Type:        genai.TypeString,
			Description: `Estimated total duration, e.g. "60-75 minutes".`,
		},
		"intensity": {
			Type:        genai.TypeString,
			Description: `Target intensity, e.g. "Moderate", "High", "Light".`,
		},
		"suggestedExercises": {
			Type:        genai.TypeArray,
			Description: "Exactly 8 exercises to perform.",
			MinItems:    genai.Ptr[int64](SuggestedExercisesCount),
			MaxItems:    genai.Ptr[int64](SuggestedExercisesCount),
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {Type: genai.TypeString, Description: "The name of the exercise."},
					"sets": {Type: genai.TypeInteger, Description: "The number of sets. This must be 4."},
					"reps": {Type: genai.TypeString, Description: `The target repetition range, e.g. "8-12" or "5".`},
					"weight": {
						Type:        genai.TypeString,
						Description: `The recommended weight in kg, or "Bodyweight".`,
					},
					"tip": {Type: genai.TypeString, Description: "An optional short form or execution tip."},
				},
				Required: []string{"name", "sets", "reps", "weight"},
			},
		},
	},
	Required: []string{"suggestionTitle", "workoutRationale", "duration", "intensity", "suggestedExercises"},
}
