package scoring

// ValueRankMax is both the number of ranked values and the lowest rank.
const ValueRankMax = 18

// ValuesField is the single Module 4 record key.
const ValuesField = "values"

// valueNames is indexed by question number minus one.
var valueNames = [ValueRankMax]string{
	"Active life",
	"Life wisdom",
	"Health",
	"Interesting work",
	"Beauty of nature and art",
	"Love",
	"Financial security",
	"Good friends",
	"Public recognition",
	"Cognition",
	"Productive life",
	"Development",
	"Entertainment",
	"Freedom",
	"Happy family",
	"Happiness of others",
	"Creativity",
	"Self-confidence",
}

// ValueNames returns the ranked value names in question order.
func ValueNames() []string {
	return append([]string(nil), valueNames[:]...)
}

// ValueScores holds the rank given to each value; 0 means unranked.
type ValueScores struct {
	ranks [ValueRankMax]int
}

func (ValueScores) Module() Module { return ModuleValues }

func (s ValueScores) Fields() map[string]any {
	return map[string]any{ValuesField: s.Ranks()}
}

// Ranks returns every value name with its rank.
func (s ValueScores) Ranks() map[string]int {
	out := make(map[string]int, ValueRankMax)
	for i, name := range valueNames {
		out[name] = s.ranks[i]
	}
	return out
}

// Rank returns the rank of a value name, 0 when unranked or unknown.
func (s ValueScores) Rank(name string) int {
	for i, candidate := range valueNames {
		if candidate == name {
			return s.ranks[i]
		}
	}
	return 0
}

// ScoreValues relabels question ranks with the value names they stand for.
// Ranks outside 1..18 are ignored; duplicate ranks are kept as given.
func ScoreValues(answers RawAnswers) ValueScores {
	var out ValueScores
	plainAnswers(answers, func(q int, v RawValue) {
		if q > ValueRankMax {
			return
		}
		rank, ok := intInRange(v, 1, ValueRankMax)
		if !ok {
			return
		}
		out.ranks[q-1] = rank
	})
	return out
}

// Importance is the presentation bucket of a value rank.
type Importance string

const (
	ImportanceHigh     Importance = "very important"
	ImportanceModerate Importance = "moderately important"
	ImportanceLow      Importance = "not important"
	ImportanceUnranked Importance = "unranked"
)

// ValueImportance buckets a rank: 1-6 high, 7-12 moderate, 13-18 low.
func ValueImportance(rank int) Importance {
	switch {
	case rank >= 1 && rank <= 6:
		return ImportanceHigh
	case rank >= 7 && rank <= 12:
		return ImportanceModerate
	case rank >= 13 && rank <= ValueRankMax:
		return ImportanceLow
	default:
		return ImportanceUnranked
	}
}
