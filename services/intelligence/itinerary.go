package intelligence

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"poojaseva/models"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
)

var ErrUnavailable = errors.New("itinerary generation is not configured")

// TempleSource lists active temples; an empty id list means all of them.
type TempleSource interface {
	ListTemples(ctx context.Context, ids []string) ([]models.Temple, error)
}

// ItineraryService plans pilgrimages with a generator.
type ItineraryService interface {
	PlanItinerary(ctx context.Context, req models.ItineraryRequest) (*models.Itinerary, error)
}

type DefaultItineraryService struct {
	Generator Generator // nil disables planning
	Temples   TempleSource
	Logger    *zap.Logger
}

var itinerarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":   {Type: genai.TypeString},
		"summary": {Type: genai.TypeString},
		"days": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"day":        {Type: genai.TypeInteger},
					"title":      {Type: genai.TypeString},
					"temple_ids": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"activities": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
				Required: []string{"day", "title", "activities"},
			},
		},
	},
	Required: []string{"title", "days"},
}

func (s *DefaultItineraryService) PlanItinerary(ctx context.Context, req models.ItineraryRequest) (*models.Itinerary, error) {
	if s.Generator == nil {
		return nil, ErrUnavailable
	}
	temples, err := s.Temples.ListTemples(ctx, req.TempleIDs)
	if err != nil {
		return nil, fmt.Errorf("load temples: %w", err)
	}

	var it models.Itinerary
	if err := s.Generator.Generate(ctx, buildItineraryPrompt(req, temples), itinerarySchema, &it); err != nil {
		s.logger().Error("itinerary generation failed", zap.String("city", req.StartCity), zap.Error(err))
		return nil, err
	}
	cleanItinerary(&it, req.Days, temples)
	return &it, nil
}

func buildItineraryPrompt(req models.ItineraryRequest, temples []models.Temple) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Plan a %d-day Hindu pilgrimage starting from %s.\n", req.Days, req.StartCity)
	if len(temples) > 0 {
		sb.WriteString("Choose temples only from this list and refer to them by id:\n")
		for _, t := range temples {
			fmt.Fprintf(&sb, "- %s: %s", t.ID, t.Name)
			if t.Deity != "" {
				fmt.Fprintf(&sb, " (%s)", t.Deity)
			}
			fmt.Fprintf(&sb, ", %s, %s\n", t.City, t.State)
		}
	}
	if len(req.Interests) > 0 {
		fmt.Fprintf(&sb, "Devotee interests: %s.\n", strings.Join(req.Interests, ", "))
	}
	lang := req.Language
	if lang == "" {
		lang = "English"
	}
	fmt.Fprintf(&sb, "Write titles and activities in %s. Return exactly %d days numbered from 1.", lang, req.Days)
	return sb.String()
}

// cleanItinerary keeps at most the requested days, renumbers them and drops temple
// ids that are not in the catalogue.
func cleanItinerary(it *models.Itinerary, days int, temples []models.Temple) {
	known := make([]string, 0, len(temples))
	for _, t := range temples {
		known = append(known, t.ID)
	}
	if len(it.Days) > days {
		it.Days = it.Days[:days]
	}
	for i := range it.Days {
		d := &it.Days[i]
		d.Day = i + 1
		d.TempleIDs = slices.DeleteFunc(d.TempleIDs, func(id string) bool {
			return !slices.Contains(known, id)
		})
		if d.Activities == nil {
			d.Activities = []string{}
		}
	}
}

func (s *DefaultItineraryService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
