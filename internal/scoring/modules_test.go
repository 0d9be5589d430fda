package scoring

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sorted(keys ...string) []string {
	sort.Strings(keys)
	return keys
}

func TestScorers_EmptyInputKeepsEveryKey(t *testing.T) {
	tests := []struct {
		name string
		got  ModuleScores
		want []string
	}{
		{"vectors", ScoreVectors(nil), sorted("nature", "technic", "human", "sign", "art")},
		{"interests", ScoreInterests(nil), func() []string {
			out := make([]string, len(Spheres))
			for i, s := range Spheres {
				out[i] = string(s)
			}
			return sorted(out...)
		}()},
		{"thinking", ScoreThinking(nil), sorted("artistic", "theoretical", "practical", "creative", "convergent", "analytical")},
		{"values", ScoreValues(nil), []string{"values"}},
		{"intelligence", ScoreIntelligence(nil), sorted(
			"linguistic", "logical_mathematical", "spatial", "bodily_kinesthetic",
			"musical", "interpersonal", "intrapersonal", "naturalistic",
		)},
		{"motivation", ScoreMotivation(nil), sorted(
			"strong_count", "strong_percent", "strong_list",
			"moderate_count", "moderate_percent", "moderate_list",
			"weak_count", "weak_percent", "weak_list",
			"demotivator_count", "demotivator_percent", "demotivator_list",
			"total",
		)},
		{"typology", ScoreTypology(nil), sorted("r", "i", "a", "s", "e", "c")},
		{"perception", ScorePerception(nil), sorted("visual", "auditory", "kinesthetic", "digital")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := tt.got.Fields()
			assert.Equal(t, tt.want, keysOf(fields))
			for k, v := range fields {
				assert.NotNil(t, v, k)
			}
		})
	}
}

func TestScoreVectors(t *testing.T) {
	t.Run("injected table", func(t *testing.T) {
		scorer := NewVectorScorer(map[int]VectorPair{
			1: {A: DimensionNature, B: DimensionTechnic},
			2: {A: DimensionHuman, B: DimensionSign},
		})

		got := scorer.Score(RawAnswers{"q1": Text("a"), "q2": Text("b")})
		assert.Equal(t, VectorScores{Nature: 1, Sign: 1}, got)
	})

	t.Run("single answer", func(t *testing.T) {
		scorer := NewVectorScorer(map[int]VectorPair{1: {A: DimensionNature, B: DimensionTechnic}})
		assert.Equal(t, VectorScores{Nature: 1}, scorer.Score(RawAnswers{"q1": Text("a")}))
	})

	t.Run("unrecognized tokens and questions are ignored", func(t *testing.T) {
		got := ScoreVectors(RawAnswers{
			"q1":  Text("maybe"),
			"q2":  Number(1),
			"q21": Text("a"),
			"foo": Text("a"),
			"q3":  Text("YES"),
		})
		assert.Equal(t, VectorScores{Art: 1}, got)
	})

	t.Run("standard key is balanced", func(t *testing.T) {
		counts := map[Dimension]int{}
		for _, pair := range VectorTable() {
			counts[pair.A]++
			counts[pair.B]++
		}
		for _, d := range Dimensions {
			assert.Equal(t, 8, counts[d], d)
		}
	})

	t.Run("table is copied", func(t *testing.T) {
		table := map[int]VectorPair{1: {A: DimensionNature, B: DimensionTechnic}}
		scorer := NewVectorScorer(table)
		table[1] = VectorPair{A: DimensionArt, B: DimensionArt}
		assert.Equal(t, 1, scorer.Score(RawAnswers{"q1": Text("a")}).Nature)
	})
}

func TestScoreInterests(t *testing.T) {
	allAnswered := func(token string) RawAnswers {
		answers := RawAnswers{}
		for q := 1; q <= InterestQuestionCount; q++ {
			answers[fmt.Sprintf("q%d", q)] = Text(token)
		}
		return answers
	}

	t.Run("every question belongs to a sphere", func(t *testing.T) {
		for q := 1; q <= InterestQuestionCount; q++ {
			assert.NotEmpty(t, questionSpheres[q], "q%d", q)
		}
	})

	t.Run("all negative clamps to zero", func(t *testing.T) {
		answers := RawAnswers{}
		for _, q := range SphereQuestions(SphereGeology) {
			answers[fmt.Sprintf("q%d", q)] = Text("--")
		}
		assert.Equal(t, 0, ScoreInterests(answers).Get(SphereGeology))
	})

	t.Run("bounds", func(t *testing.T) {
		low := ScoreInterests(allAnswered("--"))
		high := ScoreInterests(allAnswered("++"))
		for _, s := range Spheres {
			assert.Equal(t, 0, low.Get(s), s)
			assert.Equal(t, 100, high.Get(s), s)
		}

		mixed := RawAnswers{}
		tokens := []string{"++", "+", "0", "-", "--"}
		for q := 1; q <= InterestQuestionCount; q++ {
			mixed[fmt.Sprintf("q%d", q)] = Text(tokens[q%len(tokens)])
		}
		for _, s := range Spheres {
			p := ScoreInterests(mixed).Get(s)
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, 100)
		}
	})

	t.Run("overlap counts toward both spheres", func(t *testing.T) {
		got := ScoreInterests(RawAnswers{"q161": Text("++")})
		assert.Equal(t, 10, got.Get(SphereBiology))
		assert.Equal(t, 10, got.Get(SphereMedicine))
		assert.Equal(t, 0, got.Get(SphereChemistry))
	})

	t.Run("top spheres", func(t *testing.T) {
		got := ScoreInterests(RawAnswers{"q8": Text("++"), "q163": Text("++"), "q6": Text("0")})
		top := got.Top(2)
		require.Len(t, top, 2)
		assert.Equal(t, SphereEngineering, top[0].Sphere)
		assert.Equal(t, SpherePhysics, top[1].Sphere)
	})
}

func TestScoreThinking(t *testing.T) {
	t.Run("single option", func(t *testing.T) {
		got := ScoreThinking(RawAnswers{"q1": Text("a")})
		assert.Equal(t, 100, got.Percent(ThinkingArtistic))
		assert.Equal(t, map[string]any{PercentageField: 100}, got.Fields()["artistic"])
		assert.Equal(t, map[string]any{PercentageField: 0}, got.Fields()["analytical"])
	})

	t.Run("option with two types", func(t *testing.T) {
		got := ScoreThinking(RawAnswers{"q3": Text("c")})
		assert.Equal(t, 50, got.Percent(ThinkingArtistic))
		assert.Equal(t, 50, got.Percent(ThinkingTheoretical))
	})

	t.Run("intuitive is not scored", func(t *testing.T) {
		got := ScoreThinking(RawAnswers{"q5": Text("c"), "q7": Text("c")})
		for _, tt := range ThinkingTypes {
			assert.Equal(t, 0, got.Count(tt))
			assert.Equal(t, 0, got.Percent(tt))
		}
		assert.Equal(t, 0, got.Percent(ThinkingIntuitive))
		assert.NotContains(t, got.Fields(), string(ThinkingIntuitive))
	})

	t.Run("sums to 100", func(t *testing.T) {
		for _, pattern := range []string{"a", "b", "c", "abc", "cab", "bca"} {
			answers := RawAnswers{}
			for q := 1; q <= 30; q++ {
				answers[fmt.Sprintf("q%d", q)] = Text(string(pattern[q%len(pattern)]))
			}
			got := ScoreThinking(answers)
			sum := 0
			for _, tt := range ThinkingTypes {
				sum += got.Percent(tt)
			}
			assert.Equal(t, 100, sum, pattern)
		}
	})
}

func TestScoreValues(t *testing.T) {
	t.Run("full ranking is a bijection", func(t *testing.T) {
		answers := RawAnswers{}
		for q := 1; q <= ValueRankMax; q++ {
			answers[fmt.Sprintf("q%d", q)] = Text(fmt.Sprint(ValueRankMax + 1 - q))
		}

		ranks := ScoreValues(answers).Ranks()
		require.Len(t, ranks, ValueRankMax)
		seen := map[int]bool{}
		for name, rank := range ranks {
			assert.Contains(t, ValueNames(), name)
			assert.False(t, seen[rank], "duplicate rank %d", rank)
			assert.GreaterOrEqual(t, rank, 1)
			assert.LessOrEqual(t, rank, ValueRankMax)
			seen[rank] = true
		}
		assert.Equal(t, 18, ranks["Active life"])
		assert.Equal(t, 1, ranks["Self-confidence"])
	})

	t.Run("invalid ranks are ignored", func(t *testing.T) {
		got := ScoreValues(RawAnswers{
			"q1":  Text("19"),
			"q2":  Text("0"),
			"q3":  Text("abc"),
			"q4":  Number(2.5),
			"q19": Text("1"),
			"q5":  Number(3),
		})
		ranks := got.Ranks()
		assert.Len(t, ranks, ValueRankMax)
		assert.Equal(t, 3, ranks["Beauty of nature and art"])
		assert.Equal(t, 0, ranks["Active life"])
		assert.Equal(t, 0, ranks["Health"])
	})

	t.Run("importance buckets", func(t *testing.T) {
		assert.Equal(t, ImportanceHigh, ValueImportance(1))
		assert.Equal(t, ImportanceHigh, ValueImportance(6))
		assert.Equal(t, ImportanceModerate, ValueImportance(7))
		assert.Equal(t, ImportanceModerate, ValueImportance(12))
		assert.Equal(t, ImportanceLow, ValueImportance(13))
		assert.Equal(t, ImportanceLow, ValueImportance(18))
		assert.Equal(t, ImportanceUnranked, ValueImportance(0))
	})
}

func TestScoreIntelligence(t *testing.T) {
	t.Run("empty is all ones", func(t *testing.T) {
		got := ScoreIntelligence(nil)
		for _, c := range Intelligences {
			assert.Equal(t, 1, got.Progress(c))
		}
	})

	t.Run("min-max rescale", func(t *testing.T) {
		got := ScoreIntelligence(RawAnswers{
			"q1": Text("5"),
			"q2": Text("yes"),
			"q3": Text("no"),
		})
		assert.Equal(t, 10, got.Raw(IntelligenceLinguistic))
		assert.Equal(t, 9, got.Progress(IntelligenceLinguistic))
		assert.Equal(t, 9, got.Progress(IntelligenceLogicalMathematical))
		assert.Equal(t, 5, got.Progress(IntelligenceSpatial))
		assert.Equal(t, 1, got.Progress(IntelligenceMusical))
	})

	t.Run("equal non-zero sums are neutral", func(t *testing.T) {
		answers := RawAnswers{}
		for q := 1; q <= 8; q++ {
			answers[fmt.Sprintf("q%d", q)] = Text("a")
		}
		got := ScoreIntelligence(answers)
		for _, c := range Intelligences {
			assert.Equal(t, 5, got.Progress(c))
		}
	})

	t.Run("round robin categories", func(t *testing.T) {
		got := ScoreIntelligence(RawAnswers{"q1": Number(1), "q9": Number(2), "q17": Number(3)})
		assert.Equal(t, 12, got.Raw(IntelligenceLinguistic))
	})

	t.Run("out of range answers are ignored", func(t *testing.T) {
		got := ScoreIntelligence(RawAnswers{"q1": Text("6"), "q2": Number(2.5), "q25": Text("yes"), "q3": Text("maybe")})
		for _, c := range Intelligences {
			assert.Equal(t, 0, got.Raw(c))
		}
	})

	t.Run("range", func(t *testing.T) {
		values := []RawValue{Number(0), Number(3), Text("yes"), Text("no"), Number(5), Text("1")}
		for shift := 0; shift < len(values); shift++ {
			answers := RawAnswers{}
			for q := 1; q <= IntelligenceQuestionCount; q++ {
				answers[fmt.Sprintf("q%d", q)] = values[(q*shift+q/3)%len(values)]
			}
			for _, c := range Intelligences {
				p := ScoreIntelligence(answers).Progress(c)
				assert.GreaterOrEqual(t, p, ProgressMin)
				assert.LessOrEqual(t, p, ProgressMax)
			}
		}
	})
}

func TestScoreMotivation(t *testing.T) {
	got := ScoreMotivation(RawAnswers{
		"q1": Text("7"),
		"q2": Text("6"),
		"q3": Text("4"),
		"q4": Text("2"),
		"q5": Text("-1"),
		"q6": Number(0),
		"q7": Text("8"),
		"q8": Text("7"),
	})

	t.Run("counts and total", func(t *testing.T) {
		assert.Equal(t, 7, got.Total())
		assert.Equal(t, 3, got.Band(BandStrong).Count)
		assert.Equal(t, 1, got.Band(BandModerate).Count)
		assert.Equal(t, 1, got.Band(BandWeak).Count)
		assert.Equal(t, 2, got.Band(BandDemotivator).Count)
	})

	t.Run("percentages sum to 100", func(t *testing.T) {
		assert.Equal(t, 43, got.Band(BandStrong).Percent)
		assert.Equal(t, 14, got.Band(BandModerate).Percent)
		assert.Equal(t, 14, got.Band(BandWeak).Percent)
		assert.Equal(t, 29, got.Band(BandDemotivator).Percent)
	})

	t.Run("list order", func(t *testing.T) {
		strong := got.Band(BandStrong).Factors
		require.Len(t, strong, 3)
		assert.Equal(t, "equality", strong[0].Factor)
		assert.Equal(t, "social order", strong[1].Factor)
		assert.Equal(t, "inner harmony", strong[2].Factor)

		demotivators := got.Band(BandDemotivator).Factors
		require.Len(t, demotivators, 2)
		assert.Equal(t, FactorScore{Factor: "a spiritual life", Score: -1, question: 5}, demotivators[0])
		assert.Equal(t, "sense of belonging", demotivators[1].Factor)
	})

	t.Run("fields", func(t *testing.T) {
		fields := got.Fields()
		assert.Equal(t, 7, fields["total"])
		assert.Equal(t, 3, fields["strong_count"])
		assert.Len(t, fields["weak_list"], 1)
	})

	t.Run("empty", func(t *testing.T) {
		empty := ScoreMotivation(RawAnswers{"q58": Text("5")})
		assert.Equal(t, 0, empty.Total())
		for _, b := range Bands {
			assert.Equal(t, 0, empty.Band(b).Percent)
			assert.Empty(t, empty.Band(b).Factors)
			assert.NotNil(t, empty.Fields()[string(b)+"_list"])
		}
	})

	t.Run("every factor has a name", func(t *testing.T) {
		assert.Len(t, MotivationFactors(), MotivationQuestionCount)
		for _, name := range MotivationFactors() {
			assert.NotEmpty(t, name)
		}
	})
}

func TestScoreTypology(t *testing.T) {
	t.Run("raw tally", func(t *testing.T) {
		require.Equal(t, LetterPair{A: LetterR, B: LetterI}, typologyKey[1])
		got := ScoreTypology(RawAnswers{"q1": Text("a")})
		assert.Equal(t, TypologyScores{R: 1}, got)
	})

	t.Run("every pair covered", func(t *testing.T) {
		assert.Len(t, typologyKey, TypologyQuestionCount)
		for q, pair := range typologyKey {
			assert.NotEqual(t, pair.A, pair.B, "q%d", q)
		}
	})

	t.Run("dominant code", func(t *testing.T) {
		assert.Equal(t, "ASE", DominantCode(TypologyScores{R: 1, A: 5, S: 5, E: 3}, 3))
		assert.Equal(t, "RIA", DominantCode(TypologyScores{}, 3))
		assert.Equal(t, "CE", DominantCode(TypologyScores{C: 4, E: 2}, 2))
		assert.Equal(t, "RIASEC", DominantCode(TypologyScores{}, 10))
	})
}

func TestScorePerception(t *testing.T) {
	got := ScorePerception(RawAnswers{
		"q1_opt1": Text("4"),
		"q1_opt2": Number(5),
		"q1_opt3": Text("0"),
		"q2_opt1": Number(3),
		"q6_opt1": Text("4"),
		"q1_opt5": Text("1"),
		"q1":      Text("4"),
		"q5_opt2": Text("2"),
		"q3_opt4": Number(1.5),
	})

	assert.Equal(t, PerceptionScores{Visual: 4, Auditory: 3, Kinesthetic: 2}, got)
}

func TestScorers_NonCanonicalKeysAreIgnored(t *testing.T) {
	t.Run("values keep the canonical rank on every run", func(t *testing.T) {
		answers := RawAnswers{"q1": Text("3"), "Q01": Text("5"), "q01": Text("7")}
		for i := 0; i < 200; i++ {
			assert.Equal(t, 3, ScoreValues(answers).Rank(ValueNames()[0]))
		}
	})

	t.Run("motivation counts each question once", func(t *testing.T) {
		got := ScoreMotivation(RawAnswers{"q1": Number(7), "q01": Number(7)})
		assert.Equal(t, 1, got.Total())
		assert.Len(t, got.Band(BandStrong).Factors, 1)
	})

	t.Run("vectors count each question once", func(t *testing.T) {
		got := ScoreVectors(RawAnswers{"q1": Text("a"), " Q1 ": Text("a"), "q001": Text("a")})
		assert.Equal(t, 1, got.Total())
	})
}
