package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"poojaseva/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	prompt string
	schema *genai.Schema
	reply  string
	err    error
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	g.prompt, g.schema = prompt, schema
	if g.err != nil {
		return g.err
	}
	return json.Unmarshal([]byte(g.reply), out)
}

type stubTemples []models.Temple

func (s stubTemples) ListTemples(ctx context.Context, ids []string) ([]models.Temple, error) {
	return s, nil
}

var temples = stubTemples{
	{ID: "kv", Name: "Kashi Vishwanath", Deity: "Shiva", City: "Varanasi", State: "UP"},
	{ID: "sankat", Name: "Sankat Mochan", City: "Varanasi", State: "UP"},
}

func TestPlanItinerary_CleansModelOutput(t *testing.T) {
	gen := &stubGenerator{reply: `{
		"title": "Kashi in two days",
		"days": [
			{"day": 3, "title": "Arrival", "temple_ids": ["kv", "made-up"], "activities": ["Ganga aarti"]},
			{"day": 7, "title": "Hanuman darshan", "temple_ids": ["sankat"]},
			{"day": 9, "title": "Extra", "activities": []}
		]
	}`}
	svc := &DefaultItineraryService{Generator: gen, Temples: temples}

	it, err := svc.PlanItinerary(context.Background(), models.ItineraryRequest{StartCity: "Lucknow", Days: 2})
	require.NoError(t, err)

	require.Len(t, it.Days, 2)
	assert.Equal(t, 1, it.Days[0].Day)
	assert.Equal(t, []string{"kv"}, it.Days[0].TempleIDs)
	assert.Equal(t, 2, it.Days[1].Day)
	assert.Equal(t, []string{}, it.Days[1].Activities)
	assert.Same(t, itinerarySchema, gen.schema)
}

func TestBuildItineraryPrompt(t *testing.T) {
	prompt := buildItineraryPrompt(models.ItineraryRequest{
		StartCity: "Lucknow",
		Days:      3,
		Interests: []string{"aarti", "river"},
		Language:  "Hindi",
	}, temples)

	assert.Contains(t, prompt, "3-day Hindu pilgrimage starting from Lucknow")
	assert.Contains(t, prompt, "- kv: Kashi Vishwanath (Shiva), Varanasi, UP")
	assert.Contains(t, prompt, "- sankat: Sankat Mochan, Varanasi, UP")
	assert.Contains(t, prompt, "aarti, river")
	assert.Contains(t, prompt, "in Hindi")
}

func TestPlanItinerary_Errors(t *testing.T) {
	_, err := (&DefaultItineraryService{Temples: temples}).PlanItinerary(context.Background(), models.ItineraryRequest{Days: 1})
	assert.ErrorIs(t, err, ErrUnavailable)

	boom := errors.New("quota exceeded")
	svc := &DefaultItineraryService{Generator: &stubGenerator{err: boom}, Temples: temples}
	_, err = svc.PlanItinerary(context.Background(), models.ItineraryRequest{StartCity: "Pune", Days: 1})
	assert.ErrorIs(t, err, boom)
}

func TestResponseText(t *testing.T) {
	assert.Empty(t, responseText(nil))
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(`1}`)}},
	}}}
	assert.Equal(t, `{"a":1}`, responseText(resp))
}
