package scoring

// ThinkingType is a Module 3 thinking style.
type ThinkingType string

const (
	ThinkingArtistic    ThinkingType = "artistic"
	ThinkingTheoretical ThinkingType = "theoretical"
	ThinkingPractical   ThinkingType = "practical"
	ThinkingCreative    ThinkingType = "creative"
	ThinkingConvergent  ThinkingType = "convergent"
	ThinkingAnalytical  ThinkingType = "analytical"
	// ThinkingIntuitive appears in the question key but is not scored.
	// Options mapped only to it contribute nothing to the tally.
	ThinkingIntuitive ThinkingType = "intuitive"
)

// ThinkingTypes lists the scored thinking types in output order.
var ThinkingTypes = []ThinkingType{
	ThinkingArtistic,
	ThinkingTheoretical,
	ThinkingPractical,
	ThinkingCreative,
	ThinkingConvergent,
	ThinkingAnalytical,
}

// PercentageField is the key wrapping every Module 3 percentage.
const PercentageField = "percentageExample"

// thinkingKey maps each (question, option) to the types it counts toward.
// Options absent from a row count toward nothing.
var thinkingKey = map[int]map[Choice][]ThinkingType{
	1: {ChoiceA: {ThinkingArtistic}, ChoiceB: {ThinkingPractical}, ChoiceC: {ThinkingCreative}},
	2: {ChoiceA: {ThinkingTheoretical}, ChoiceB: {ThinkingCreative}, ChoiceC: {ThinkingConvergent}},
	3: {ChoiceA: {ThinkingPractical}, ChoiceB: {ThinkingConvergent}, ChoiceC: {ThinkingArtistic, ThinkingTheoretical}},
	4: {ChoiceA: {ThinkingCreative}, ChoiceB: {ThinkingAnalytical}, ChoiceC: {ThinkingArtistic}},
	5: {ChoiceA: {ThinkingConvergent}, ChoiceB: {ThinkingArtistic}, ChoiceC: {ThinkingIntuitive}},
	6: {ChoiceA: {ThinkingAnalytical}, ChoiceB: {ThinkingTheoretical}, ChoiceC: {ThinkingCreative, ThinkingConvergent}},
	7: {ChoiceA: {ThinkingArtistic}, ChoiceB: {ThinkingPractical}},
	8: {ChoiceA: {ThinkingTheoretical}, ChoiceB: {ThinkingCreative}, ChoiceC: {ThinkingConvergent}},
	9: {ChoiceA: {ThinkingPractical}, ChoiceB: {ThinkingConvergent}, ChoiceC: {ThinkingArtistic, ThinkingTheoretical}},
	10: {ChoiceA: {ThinkingCreative}, ChoiceB: {ThinkingAnalytical}, ChoiceC: {ThinkingIntuitive}},
	11: {ChoiceA: {ThinkingConvergent}, ChoiceB: {ThinkingArtistic}, ChoiceC: {ThinkingTheoretical}},
	12: {ChoiceA: {ThinkingAnalytical}, ChoiceB: {ThinkingTheoretical}, ChoiceC: {ThinkingCreative, ThinkingConvergent}},
	13: {ChoiceA: {ThinkingArtistic}, ChoiceB: {ThinkingPractical}, ChoiceC: {ThinkingCreative}},
	14: {ChoiceA: {ThinkingTheoretical}, ChoiceB: {ThinkingCreative}},
	15: {ChoiceA: {ThinkingPractical}, ChoiceB: {ThinkingConvergent}, ChoiceC: {ThinkingIntuitive}},
	16: {ChoiceA: {ThinkingCreative}, ChoiceB: {ThinkingAnalytical}, ChoiceC: {ThinkingArtistic}},
	17: {ChoiceA: {ThinkingConvergent}, ChoiceB: {ThinkingArtistic}, ChoiceC: {ThinkingTheoretical}},
	18: {ChoiceA: {ThinkingAnalytical}, ChoiceB: {ThinkingTheoretical}, ChoiceC: {ThinkingCreative, ThinkingConvergent}},
	19: {ChoiceA: {ThinkingArtistic}, ChoiceB: {ThinkingPractical}, ChoiceC: {ThinkingCreative}},
	20: {ChoiceA: {ThinkingTheoretical}, ChoiceB: {ThinkingCreative}, ChoiceC: {ThinkingIntuitive}},
	21: {ChoiceA: {ThinkingPractical}, ChoiceB: {ThinkingConvergent}},
	22: {ChoiceA: {ThinkingCreative}, ChoiceB: {ThinkingAnalytical}, ChoiceC: {ThinkingArtistic}},
	23: {ChoiceA: {ThinkingConvergent}, ChoiceB: {ThinkingArtistic}, ChoiceC: {ThinkingTheoretical}},
	24: {ChoiceA: {ThinkingAnalytical}, ChoiceB: {ThinkingTheoretical}, ChoiceC: {ThinkingCreative, ThinkingConvergent}},
	25: {ChoiceA: {ThinkingArtistic}, ChoiceB: {ThinkingPractical}, ChoiceC: {ThinkingIntuitive}},
	26: {ChoiceA: {ThinkingTheoretical}, ChoiceB: {ThinkingCreative}, ChoiceC: {ThinkingConvergent}},
	27: {ChoiceA: {ThinkingPractical}, ChoiceB: {ThinkingConvergent}, ChoiceC: {ThinkingArtistic, ThinkingTheoretical}},
	28: {ChoiceA: {ThinkingCreative}, ChoiceB: {ThinkingAnalytical}},
	29: {ChoiceA: {ThinkingConvergent}, ChoiceB: {ThinkingArtistic}, ChoiceC: {ThinkingTheoretical}},
	30: {ChoiceA: {ThinkingAnalytical}, ChoiceB: {ThinkingTheoretical}, ChoiceC: {ThinkingIntuitive}},
}

// ThinkingScores holds the Module 3 tallies and their percentages.
type ThinkingScores struct {
	counts  [6]int
	percent [6]int
}

func (ThinkingScores) Module() Module { return ModuleThinking }

func (s ThinkingScores) Fields() map[string]any {
	out := make(map[string]any, len(ThinkingTypes))
	for i, t := range ThinkingTypes {
		out[string(t)] = map[string]any{PercentageField: s.percent[i]}
	}
	return out
}

// Percent returns the share of one thinking type, 0 for unscored types.
func (s ThinkingScores) Percent(t ThinkingType) int {
	if i := thinkingIndex(t); i >= 0 {
		return s.percent[i]
	}
	return 0
}

// Count returns the raw tally of one thinking type.
func (s ThinkingScores) Count(t ThinkingType) int {
	if i := thinkingIndex(t); i >= 0 {
		return s.counts[i]
	}
	return 0
}

func thinkingIndex(t ThinkingType) int {
	for i, candidate := range ThinkingTypes {
		if candidate == t {
			return i
		}
	}
	return -1
}

// ScoreThinking tallies the scored types behind every chosen option and
// apportions the tally into percentages summing to 100.
func ScoreThinking(answers RawAnswers) ThinkingScores {
	var out ThinkingScores
	plainAnswers(answers, func(q int, v RawValue) {
		row, ok := thinkingKey[q]
		if !ok {
			return
		}
		choice, ok := ternaryChoice(v)
		if !ok {
			return
		}
		for _, t := range row[choice] {
			if i := thinkingIndex(t); i >= 0 {
				out.counts[i]++
			}
		}
	})

	copy(out.percent[:], apportion(out.counts[:]))
	return out
}
