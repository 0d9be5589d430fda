package recommendation

import "github.com/SAP-F-2025/career-orientation-service/internal/llm"

// RecommendationSchema defines the JSON the text provider must return.
var RecommendationSchema = &llm.Schema{
	Name:        "career-recommendation",
	Description: "Career guidance derived from a psychometric profile",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Two or three paragraphs describing the person's profile",
			},
			"professions": map[string]any{
				"type":     "array",
				"minItems": 3,
				"maxItems": 10,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":  map[string]any{"type": "string", "description": "Profession name"},
						"reason": map[string]any{"type": "string", "description": "Why it fits, citing the profile"},
					},
					"required":             []any{"title", "reason"},
					"additionalProperties": false,
				},
			},
			"development_tips": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Concrete next steps for personal development",
			},
		},
		"required":             []any{"summary", "professions", "development_tips"},
		"additionalProperties": false,
	},
}
