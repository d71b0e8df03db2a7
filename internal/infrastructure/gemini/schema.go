package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/google/generative-ai-go/genai"
)

var photoQualitySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"valid":    {Type: genai.TypeBoolean},
		"feedback": {Type: genai.TypeString},
	},
	Required: []string{"valid", "feedback"},
}

var fitAnalysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"overall_fit":         {Type: genai.TypeString},
		"length":              {Type: genai.TypeString},
		"width":               {Type: genai.TypeString},
		"confidence":          {Type: genai.TypeNumber},
		"size_recommendation": {Type: genai.TypeString},
		"style_advice":        {Type: genai.TypeString},
	},
	Required: []string{"overall_fit", "length", "width", "confidence", "size_recommendation", "style_advice"},
}

var itemTagsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"type":    {Type: genai.TypeString},
		"color":   {Type: genai.TypeString},
		"pattern": {Type: genai.TypeString},
		"style":   {Type: genai.TypeString},
	},
	Required: []string{"type", "color", "pattern", "style"},
}

// Wire shapes use pointers so a missing field is told apart from a zero value.

type photoQualityPayload struct {
	Valid    *bool   `json:"valid"`
	Feedback *string `json:"feedback"`
}

type fitAnalysisPayload struct {
	OverallFit         *string  `json:"overall_fit"`
	Length             *string  `json:"length"`
	Width              *string  `json:"width"`
	Confidence         *float64 `json:"confidence"`
	SizeRecommendation *string  `json:"size_recommendation"`
	StyleAdvice        *string  `json:"style_advice"`
}

type itemTagsPayload struct {
	Type    *string `json:"type"`
	Color   *string `json:"color"`
	Pattern *string `json:"pattern"`
	Style   *string `json:"style"`
}

func decodePhotoQuality(text string) (domain.PhotoQuality, error) {
	var p photoQualityPayload
	if err := decodeStrict(text, &p); err != nil {
		return domain.PhotoQuality{}, err
	}
	if p.Valid == nil || p.Feedback == nil {
		return domain.PhotoQuality{}, missingFields("photo quality")
	}
	return domain.PhotoQuality{Valid: *p.Valid, Feedback: *p.Feedback}, nil
}

func decodeFitAnalysis(text string) (domain.FitAnalysis, error) {
	var p fitAnalysisPayload
	if err := decodeStrict(text, &p); err != nil {
		return domain.FitAnalysis{}, err
	}
	if p.OverallFit == nil || p.Length == nil || p.Width == nil || p.Confidence == nil ||
		p.SizeRecommendation == nil || p.StyleAdvice == nil {
		return domain.FitAnalysis{}, missingFields("fit analysis")
	}
	return domain.FitAnalysis{
		OverallFit:         *p.OverallFit,
		Length:             *p.Length,
		Width:              *p.Width,
		Confidence:         *p.Confidence,
		SizeRecommendation: *p.SizeRecommendation,
		StyleAdvice:        *p.StyleAdvice,
	}, nil
}

func decodeItemTags(text string) (domain.ItemTags, error) {
	var p itemTagsPayload
	if err := decodeStrict(text, &p); err != nil {
		return domain.ItemTags{}, err
	}
	if p.Type == nil || p.Color == nil || p.Pattern == nil || p.Style == nil {
		return domain.ItemTags{}, missingFields("item tags")
	}
	return domain.ItemTags{Type: *p.Type, Color: *p.Color, Pattern: *p.Pattern, Style: *p.Style}, nil
}

func decodeStrict(text string, v any) error {
	text = stripCodeFence(text)
	if text == "" {
		return fmt.Errorf("%w: empty response", domain.ErrMalformedAIResponse)
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedAIResponse, err)
	}
	return nil
}

func missingFields(what string) error {
	return fmt.Errorf("%w: %s is missing required fields", domain.ErrMalformedAIResponse, what)
}
