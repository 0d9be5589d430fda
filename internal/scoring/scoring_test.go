package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScores struct {
	module Module
	fields map[string]any
}

func (f fakeScores) Module() Module          { return f.module }
func (f fakeScores) Fields() map[string]any { return f.fields }

func fullAttempt() AttemptAnswers {
	attempt := AttemptAnswers{
		ModuleVectors:      RawAnswers{},
		ModuleInterests:    RawAnswers{},
		ModuleThinking:     RawAnswers{},
		ModuleValues:       RawAnswers{},
		ModuleIntelligence: RawAnswers{},
		ModuleMotivation:   RawAnswers{},
		ModuleTypology:     RawAnswers{},
		ModulePerception:   RawAnswers{},
	}
	for q := 1; q <= 20; q++ {
		attempt[ModuleVectors][fmt.Sprintf("q%d", q)] = Text([]string{"a", "b"}[q%2])
	}
	for q := 1; q <= InterestQuestionCount; q++ {
		attempt[ModuleInterests][fmt.Sprintf("q%d", q)] = Text([]string{"++", "+", "0", "-", "--"}[q%5])
	}
	for q := 1; q <= 30; q++ {
		attempt[ModuleThinking][fmt.Sprintf("q%d", q)] = Text([]string{"a", "b", "c"}[q%3])
	}
	for q := 1; q <= ValueRankMax; q++ {
		attempt[ModuleValues][fmt.Sprintf("q%d", q)] = Number(float64(q))
	}
	for q := 1; q <= IntelligenceQuestionCount; q++ {
		attempt[ModuleIntelligence][fmt.Sprintf("q%d", q)] = Number(float64(q % 6))
	}
	for q := 1; q <= MotivationQuestionCount; q++ {
		attempt[ModuleMotivation][fmt.Sprintf("q%d", q)] = Text(fmt.Sprint(q%9 - 1))
	}
	for q := 1; q <= TypologyQuestionCount; q++ {
		attempt[ModuleTypology][fmt.Sprintf("q%d", q)] = Text([]string{"a", "b"}[q%2])
	}
	for block := 1; block <= PerceptionBlocks; block++ {
		for opt := 1; opt <= PerceptionOptions; opt++ {
			attempt[ModulePerception][fmt.Sprintf("q%d_opt%d", block, opt)] = Number(float64(opt))
		}
	}
	return attempt
}

func TestAggregate(t *testing.T) {
	t.Run("prefixes keys", func(t *testing.T) {
		record, err := Aggregate(
			fakeScores{ModuleVectors, map[string]any{"x": 1}},
			fakeScores{ModuleTypology, map[string]any{"x": 2}},
		)
		require.NoError(t, err)
		assert.Equal(t, Record{"m1_x": 1, "m7_x": 2}, record)
	})

	t.Run("collision is an error", func(t *testing.T) {
		_, err := Aggregate(
			fakeScores{ModuleValues, map[string]any{"x": 1}},
			fakeScores{ModuleValues, map[string]any{"x": 2}},
		)
		assert.True(t, errors.Is(err, ErrKeyCollision))
	})
}

func TestScoreAll_EndToEnd(t *testing.T) {
	res, record, err := ScoreAll(AttemptAnswers{
		ModuleVectors: RawAnswers{"q1": Text("a")},
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, 1, record["m1_nature"])
	for _, key := range []string{"m1_technic", "m1_human", "m1_sign", "m1_art"} {
		assert.Equal(t, 0, record[key], key)
	}

	assert.Len(t, record, 5+20+6+1+8+13+6+4)

	for _, s := range Spheres {
		assert.Equal(t, 0, record["m2_"+string(s)])
	}
	for _, tt := range ThinkingTypes {
		assert.Equal(t, map[string]any{PercentageField: 0}, record["m3_"+string(tt)])
	}
	ranks, ok := record.ValueRanks()
	require.True(t, ok)
	assert.Len(t, ranks, ValueRankMax)
	for _, c := range Intelligences {
		assert.Equal(t, 1, record["m5_"+string(c)])
	}
	assert.Equal(t, 0, record["m6_total"])
	assert.Equal(t, []FactorScore{}, record["m6_strong_list"])
	for _, l := range Letters {
		assert.Equal(t, 0, record["m7_"+string(l)])
	}
	for _, c := range Channels {
		assert.Equal(t, 0, record["m8_"+string(c)])
	}
}

func TestScoreAll_Deterministic(t *testing.T) {
	attempt := fullAttempt()

	_, first, err := ScoreAll(attempt)
	require.NoError(t, err)
	_, second, err := ScoreAll(attempt)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestScoreAll_MatchesSequential(t *testing.T) {
	attempt := fullAttempt()

	_, concurrent, err := ScoreAll(attempt)
	require.NoError(t, err)

	sequential, err := Aggregate(
		ScoreVectors(attempt[ModuleVectors]),
		ScoreInterests(attempt[ModuleInterests]),
		ScoreThinking(attempt[ModuleThinking]),
		ScoreValues(attempt[ModuleValues]),
		ScoreIntelligence(attempt[ModuleIntelligence]),
		ScoreMotivation(attempt[ModuleMotivation]),
		ScoreTypology(attempt[ModuleTypology]),
		ScorePerception(attempt[ModulePerception]),
	)
	require.NoError(t, err)
	assert.Equal(t, sequential, concurrent)
}

func TestAttemptAnswers_JSON(t *testing.T) {
	payload := `{"1":{"q1":"a"},"8":{"q1_opt1":4}}`

	var attempt AttemptAnswers
	require.NoError(t, json.Unmarshal([]byte(payload), &attempt))

	_, record, err := ScoreAll(attempt)
	require.NoError(t, err)
	assert.Equal(t, 1, record["m1_nature"])
	assert.Equal(t, 4, record["m8_visual"])
}

func TestModule(t *testing.T) {
	assert.Equal(t, "m3_", ModuleThinking.Prefix())
	assert.Equal(t, "typology", ModuleTypology.String())
	assert.True(t, ModulePerception.Valid())
	assert.False(t, Module(0).Valid())
	assert.False(t, Module(9).Valid())
	assert.Len(t, Modules, 8)
}

func TestAttemptAnswers_Merge(t *testing.T) {
	attempt := AttemptAnswers{}
	attempt.Merge(ModuleVectors, RawAnswers{"q1": Text("a"), "q2": Text("b")})
	attempt.Merge(ModuleVectors, RawAnswers{"q2": Text("a"), "q3": Text("a")})
	attempt.Merge(ModulePerception, RawAnswers{"q1_opt1": Number(2)})

	assert.Len(t, attempt[ModuleVectors], 3)
	assert.Equal(t, Text("a"), attempt[ModuleVectors]["q2"])
	assert.Equal(t, []Module{ModuleVectors, ModulePerception}, attempt.Answered())

	attempt[ModuleValues] = RawAnswers{}
	assert.Equal(t, []Module{ModuleVectors, ModulePerception}, attempt.Answered())
}
