package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/SAP-F-2025/career-orientation-service/internal/llm"
	"github.com/SAP-F-2025/career-orientation-service/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResponse = `{
	"summary": "  A hands-on person drawn to nature.  ",
	"professions": [
		{"title": "Agronomist", "reason": "Strong nature vector"},
		{"title": "Veterinarian", "reason": "Nature and care"},
		{"title": "Park ranger", "reason": "Outdoor work"}
	],
	"development_tips": ["Volunteer at a farm"]
}`

func TestGenerator_Generate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validResponse)})
	gen := NewGenerator(mock, DefaultGeneratorConfig())

	rec, err := gen.Generate(context.Background(), BuildAnalysis(partialRecord(t)))
	require.NoError(t, err)
	assert.Equal(t, "A hands-on person drawn to nature.", rec.Summary)
	require.Len(t, rec.Professions, 3)
	assert.Equal(t, "Agronomist", rec.Professions[0].Title)
	assert.Equal(t, "mock", rec.Model)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, RecommendationSchema, calls[0].Schema)
	assert.Equal(t, systemPrompt, calls[0].System)
	prompt := calls[0].Messages[0].Content
	assert.Contains(t, prompt, "5 of 8 modules answered")
	assert.Contains(t, prompt, "Holland code: RAI")
	assert.Contains(t, prompt, "2. Interest spheres\n   "+InsufficientData)
}

func TestGenerator_Errors(t *testing.T) {
	t.Run("no data skips the provider", func(t *testing.T) {
		mock := llm.NewMockProvider()
		_, err := NewGenerator(mock, DefaultGeneratorConfig()).Generate(context.Background(), BuildAnalysis(scoring.Record{}))
		assert.ErrorIs(t, err, ErrNoData)
		assert.Equal(t, 0, mock.CallCount())
	})

	t.Run("schema violation", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"summary":"x","professions":[]}`)})
		_, err := NewGenerator(mock, DefaultGeneratorConfig()).Generate(context.Background(), BuildAnalysis(partialRecord(t)))
		var invalid *llm.ErrInvalidResponse
		assert.True(t, errors.As(err, &invalid))
	})

	t.Run("provider down", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}})
		_, err := NewGenerator(mock, DefaultGeneratorConfig()).Generate(context.Background(), BuildAnalysis(partialRecord(t)))
		assert.True(t, llm.IsTransient(err))
	})

	t.Run("blank summary", func(t *testing.T) {
		blank := `{"summary":"   ","professions":[{"title":"a","reason":"b"},{"title":"c","reason":"d"},{"title":"e","reason":"f"}],"development_tips":[]}`
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(blank)})
		_, err := NewGenerator(mock, DefaultGeneratorConfig()).Generate(context.Background(), BuildAnalysis(partialRecord(t)))
		var invalid *llm.ErrInvalidResponse
		assert.True(t, errors.As(err, &invalid))
	})
}
