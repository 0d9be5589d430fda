package recommendation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/SAP-F-2025/career-orientation-service/internal/llm"
)

// ErrNoData is returned when no module of the record carries answers.
var ErrNoData = errors.New("score record has no usable module data")

type Profession struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// Recommendation is the stored result of one generation.
type Recommendation struct {
	Summary         string       `json:"summary"`
	Professions     []Profession `json:"professions"`
	DevelopmentTips []string     `json:"development_tips"`
	Model           string       `json:"model"`
}

type GeneratorConfig struct {
	MaxTokens   int
	Temperature float64
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MaxTokens:   2048,
		Temperature: 0.4,
	}
}

// Generator asks a text provider for career recommendations.
type Generator struct {
	provider llm.Provider
	cfg      GeneratorConfig
}

func NewGenerator(provider llm.Provider, cfg GeneratorConfig) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

func (g *Generator) ModelID() string {
	return g.provider.ModelID()
}

// Generate sends the analysis to the provider and decodes its answer.
func (g *Generator) Generate(ctx context.Context, analysis Analysis) (*Recommendation, error) {
	if analysis.Available() == 0 {
		return nil, ErrNoData
	}

	prompt, err := buildPrompt(analysis)
	if err != nil {
		return nil, fmt.Errorf("build recommendation prompt: %w", err)
	}

	req := llm.UserPrompt(systemPrompt, prompt, RecommendationSchema, g.cfg.MaxTokens)
	req.Temperature = g.cfg.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("recommendation generation failed: %w", err)
	}

	var rec Recommendation
	if err := json.Unmarshal(resp.Content, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse recommendation: %w", err)
	}
	rec.Summary = strings.TrimSpace(rec.Summary)
	if rec.Summary == "" || len(rec.Professions) == 0 {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty recommendation")}
	}
	if rec.DevelopmentTips == nil {
		rec.DevelopmentTips = []string{}
	}
	rec.Model = resp.Model
	return &rec, nil
}

const systemPrompt = `You are a career counsellor. You receive the scored results of an
eight-part career orientation questionnaire and suggest professions that fit
the person. Base every suggestion on the profile you are given. Sections
marked "insufficient data" were not answered; do not guess about them.
Answer in the JSON format requested.`

var promptTemplate = template.Must(template.New("prompt").Parse(
	`Questionnaire results ({{.Available}} of 8 modules answered):

{{.Text}}{{if .DominantCode}}
Holland code: {{.DominantCode}}
{{end}}
Suggest between 3 and 10 professions with a short reason each, a summary of
the profile and practical development tips.`))

func buildPrompt(a Analysis) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Available    int
		Text         string
		DominantCode string
	}{a.Available(), a.Text(), a.DominantCode}
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
