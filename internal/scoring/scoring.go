// Package scoring turns raw questionnaire answers into normalized profiles.
//
// Each of the eight modules has a pure scorer: the same answers always
// produce the same scores, malformed or unmapped answers are ignored, and
// every declared dimension is present in the output even when nothing was
// answered. Aggregate merges the per-module outputs into one flat record
// whose keys carry an "m<N>_" module prefix.
package scoring

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// ErrKeyCollision reports two modules producing the same prefixed key.
// It can only happen when a lookup table or a Fields implementation is broken.
var ErrKeyCollision = errors.New("score record key collision")

// Module identifies one questionnaire section.
type Module int

const (
	ModuleVectors      Module = 1
	ModuleInterests    Module = 2
	ModuleThinking     Module = 3
	ModuleValues       Module = 4
	ModuleIntelligence Module = 5
	ModuleMotivation   Module = 6
	ModuleTypology     Module = 7
	ModulePerception   Module = 8
)

// Modules lists every module in questionnaire order.
var Modules = []Module{
	ModuleVectors,
	ModuleInterests,
	ModuleThinking,
	ModuleValues,
	ModuleIntelligence,
	ModuleMotivation,
	ModuleTypology,
	ModulePerception,
}

// Valid reports whether m is one of the eight modules.
func (m Module) Valid() bool {
	return m >= ModuleVectors && m <= ModulePerception
}

// Prefix returns the record key prefix for the module, e.g. "m7_".
func (m Module) Prefix() string {
	return "m" + strconv.Itoa(int(m)) + "_"
}

func (m Module) String() string {
	switch m {
	case ModuleVectors:
		return "vectors"
	case ModuleInterests:
		return "interests"
	case ModuleThinking:
		return "thinking"
	case ModuleValues:
		return "values"
	case ModuleIntelligence:
		return "intelligence"
	case ModuleMotivation:
		return "motivation"
	case ModuleTypology:
		return "typology"
	case ModulePerception:
		return "perception"
	default:
		return fmt.Sprintf("module(%d)", int(m))
	}
}

// ModuleScores is the output of one module scorer.
type ModuleScores interface {
	Module() Module
	// Fields returns the unprefixed dimension keys with their values.
	Fields() map[string]any
}

// AttemptAnswers holds the raw answers of one attempt, grouped by module.
type AttemptAnswers map[Module]RawAnswers

// Merge adds answers to the module, overwriting keys that were answered
// again and keeping the rest.
func (a AttemptAnswers) Merge(m Module, answers RawAnswers) {
	existing := a[m]
	if existing == nil {
		existing = make(RawAnswers, len(answers))
		a[m] = existing
	}
	for key, value := range answers {
		existing[key] = value
	}
}

// Answered returns the modules that have at least one answer, in order.
func (a AttemptAnswers) Answered() []Module {
	var out []Module
	for _, m := range Modules {
		if len(a[m]) > 0 {
			out = append(out, m)
		}
	}
	return out
}

// Record is the aggregated, module-prefixed score snapshot of one attempt.
type Record map[string]any

// Aggregate merges module scores into a single record.
func Aggregate(scores ...ModuleScores) (Record, error) {
	record := make(Record)
	for _, s := range scores {
		prefix := s.Module().Prefix()
		for key, value := range s.Fields() {
			full := prefix + key
			if _, exists := record[full]; exists {
				return nil, fmt.Errorf("%w: %s", ErrKeyCollision, full)
			}
			record[full] = value
		}
	}
	return record, nil
}

// Result keeps the typed output of all eight scorers for one attempt.
type Result struct {
	Vectors      VectorScores
	Interests    InterestScores
	Thinking     ThinkingScores
	Values       ValueScores
	Intelligence IntelligenceScores
	Motivation   MotivationScores
	Typology     TypologyScores
	Perception   PerceptionScores
}

// Scores returns the eight module outputs in questionnaire order.
func (r *Result) Scores() []ModuleScores {
	return []ModuleScores{
		r.Vectors,
		r.Interests,
		r.Thinking,
		r.Values,
		r.Intelligence,
		r.Motivation,
		r.Typology,
		r.Perception,
	}
}

// Record flattens the result into its module-prefixed form.
func (r *Result) Record() (Record, error) {
	return Aggregate(r.Scores()...)
}

// ScoreAll runs every module scorer against the attempt's answers.
// Modules without answers are scored from an empty map and therefore
// report their neutral defaults.
func ScoreAll(answers AttemptAnswers) (*Result, Record, error) {
	var (
		res Result
		g   errgroup.Group
	)

	g.Go(func() error { res.Vectors = ScoreVectors(answers[ModuleVectors]); return nil })
	g.Go(func() error { res.Interests = ScoreInterests(answers[ModuleInterests]); return nil })
	g.Go(func() error { res.Thinking = ScoreThinking(answers[ModuleThinking]); return nil })
	g.Go(func() error { res.Values = ScoreValues(answers[ModuleValues]); return nil })
	g.Go(func() error { res.Intelligence = ScoreIntelligence(answers[ModuleIntelligence]); return nil })
	g.Go(func() error { res.Motivation = ScoreMotivation(answers[ModuleMotivation]); return nil })
	g.Go(func() error { res.Typology = ScoreTypology(answers[ModuleTypology]); return nil })
	g.Go(func() error { res.Perception = ScorePerception(answers[ModulePerception]); return nil })

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	record, err := res.Record()
	if err != nil {
		return nil, nil, err
	}
	return &res, record, nil
}
