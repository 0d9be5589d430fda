package scoring

import "sort"

// Band classifies a Module 6 answer by how strongly the factor motivates.
type Band string

const (
	BandStrong      Band = "strong"
	BandModerate    Band = "moderate"
	BandWeak        Band = "weak"
	BandDemotivator Band = "demotivator"
)

// Bands lists the Module 6 bands in output order.
var Bands = []Band{BandStrong, BandModerate, BandWeak, BandDemotivator}

const (
	MotivationQuestionCount = 57
	motivationScaleMin      = -1
	motivationScaleMax      = 7
)

// TotalField is the Module 6 key holding the number of answered questions.
const TotalField = "total"

// BandOf returns the band of a score on the -1..7 scale.
func BandOf(score int) (Band, bool) {
	switch {
	case score >= 6 && score <= motivationScaleMax:
		return BandStrong, true
	case score >= 4 && score <= 5:
		return BandModerate, true
	case score >= 1 && score <= 3:
		return BandWeak, true
	case score >= motivationScaleMin && score <= 0:
		return BandDemotivator, true
	default:
		return "", false
	}
}

// motivationFactors is indexed by question number minus one.
var motivationFactors = [MotivationQuestionCount]string{
	"equality", "inner harmony", "social power", "pleasure",
	"freedom", "a spiritual life", "sense of belonging", "social order",
	"an exciting life", "meaning in life", "politeness", "wealth",
	"national security", "self-respect", "reciprocation of favors", "creativity",
	"a world at peace", "respect for tradition", "mature love", "self-discipline",
	"privacy", "family security", "social recognition", "unity with nature",
	"a varied life", "wisdom", "authority", "true friendship",
	"a world of beauty", "social justice", "independent", "moderate",
	"loyal", "ambitious", "broad-minded", "humble",
	"daring", "protecting the environment", "influential", "honoring of parents and elders",
	"choosing own goals", "healthy", "capable", "accepting my portion in life",
	"honest", "preserving my public image", "obedient", "intelligent",
	"helpful", "enjoying life", "devout", "responsible",
	"curious", "forgiving", "successful", "clean",
	"self-indulgent",
}

// MotivationFactors returns the factor names in question order.
func MotivationFactors() []string {
	return append([]string(nil), motivationFactors[:]...)
}

// FactorScore is one answered factor within a band.
type FactorScore struct {
	Factor   string `json:"factor"`
	Score    int    `json:"score"`
	question int
}

// BandSummary is the classification result of one band.
type BandSummary struct {
	Band    Band          `json:"band"`
	Count   int           `json:"count"`
	Percent int           `json:"percent"`
	Factors []FactorScore `json:"factors"`
}

// MotivationScores holds the four Module 6 bands.
type MotivationScores struct {
	bands [4]BandSummary
	total int
}

func (MotivationScores) Module() Module { return ModuleMotivation }

func (s MotivationScores) Fields() map[string]any {
	out := make(map[string]any, len(Bands)*3+1)
	for i, b := range Bands {
		summary := s.bands[i]
		out[string(b)+"_count"] = summary.Count
		out[string(b)+"_percent"] = summary.Percent
		out[string(b)+"_list"] = append([]FactorScore{}, summary.Factors...)
	}
	out[TotalField] = s.total
	return out
}

// Total is the number of answered questions.
func (s MotivationScores) Total() int {
	return s.total
}

// Band returns a copy of one band's summary.
func (s MotivationScores) Band(b Band) BandSummary {
	for i, candidate := range Bands {
		if candidate == b {
			summary := s.bands[i]
			summary.Factors = append([]FactorScore{}, summary.Factors...)
			return summary
		}
	}
	return BandSummary{Band: b, Factors: []FactorScore{}}
}

// ScoreMotivation places every answered factor in its band. Motivator
// bands list the strongest factors first, the demotivator band the most
// negative first; equal scores keep question order.
func ScoreMotivation(answers RawAnswers) MotivationScores {
	var out MotivationScores
	for i, b := range Bands {
		out.bands[i] = BandSummary{Band: b, Factors: []FactorScore{}}
	}

	plainAnswers(answers, func(q int, v RawValue) {
		if q > MotivationQuestionCount {
			return
		}
		score, ok := intInRange(v, motivationScaleMin, motivationScaleMax)
		if !ok {
			return
		}
		band, _ := BandOf(score)
		i := bandIndex(band)
		out.bands[i].Count++
		out.bands[i].Factors = append(out.bands[i].Factors, FactorScore{
			Factor:   motivationFactors[q-1],
			Score:    score,
			question: q,
		})
		out.total++
	})

	counts := make([]int, len(Bands))
	for i := range out.bands {
		counts[i] = out.bands[i].Count
		sortFactors(out.bands[i].Factors, out.bands[i].Band == BandDemotivator)
	}
	for i, p := range apportion(counts) {
		out.bands[i].Percent = p
	}
	return out
}

func bandIndex(b Band) int {
	for i, candidate := range Bands {
		if candidate == b {
			return i
		}
	}
	return -1
}

func sortFactors(factors []FactorScore, ascending bool) {
	sort.Slice(factors, func(a, b int) bool {
		fa, fb := factors[a], factors[b]
		if fa.Score != fb.Score {
			if ascending {
				return fa.Score < fb.Score
			}
			return fa.Score > fb.Score
		}
		return fa.question < fb.question
	})
}
