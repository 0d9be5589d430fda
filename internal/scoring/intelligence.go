package scoring

import "math"

// Intelligence is one of the eight Module 5 categories.
type Intelligence string

const (
	IntelligenceLinguistic          Intelligence = "linguistic"
	IntelligenceLogicalMathematical Intelligence = "logical_mathematical"
	IntelligenceSpatial             Intelligence = "spatial"
	IntelligenceBodilyKinesthetic   Intelligence = "bodily_kinesthetic"
	IntelligenceMusical             Intelligence = "musical"
	IntelligenceInterpersonal       Intelligence = "interpersonal"
	IntelligenceIntrapersonal       Intelligence = "intrapersonal"
	IntelligenceNaturalistic        Intelligence = "naturalistic"
)

// Intelligences lists the categories; question N belongs to index (N-1) mod 8.
var Intelligences = []Intelligence{
	IntelligenceLinguistic,
	IntelligenceLogicalMathematical,
	IntelligenceSpatial,
	IntelligenceBodilyKinesthetic,
	IntelligenceMusical,
	IntelligenceInterpersonal,
	IntelligenceIntrapersonal,
	IntelligenceNaturalistic,
}

const (
	IntelligenceQuestionCount = 24
	ProgressMin               = 1
	ProgressMax               = 9
	progressNeutral           = 5

	scaleMultiplier = 2
	pointsYes       = 10
	pointsNo        = 5
)

// IntelligenceScores holds the 1..9 progress value of every category.
type IntelligenceScores struct {
	raw      [8]int
	progress [8]int
}

func (IntelligenceScores) Module() Module { return ModuleIntelligence }

func (s IntelligenceScores) Fields() map[string]any {
	out := make(map[string]any, len(Intelligences))
	for i, c := range Intelligences {
		out[string(c)] = s.progress[i]
	}
	return out
}

// Progress returns the rescaled value of one category.
func (s IntelligenceScores) Progress(c Intelligence) int {
	for i, candidate := range Intelligences {
		if candidate == c {
			return s.progress[i]
		}
	}
	return 0
}

// Raw returns the summed points of one category before rescaling.
func (s IntelligenceScores) Raw(c Intelligence) int {
	for i, candidate := range Intelligences {
		if candidate == c {
			return s.raw[i]
		}
	}
	return 0
}

func intelligencePoints(v RawValue) (int, bool) {
	if n, ok := intInRange(v, 0, 5); ok {
		return n * scaleMultiplier, true
	}
	t, ok := v.token()
	if !ok {
		return 0, false
	}
	switch t {
	case "yes", "a":
		return pointsYes, true
	case "no", "b":
		return pointsNo, true
	default:
		return 0, false
	}
}

// ScoreIntelligence sums points per category and rescales the sums onto
// 1..9 relative to the user's own weakest and strongest category.
func ScoreIntelligence(answers RawAnswers) IntelligenceScores {
	var out IntelligenceScores
	plainAnswers(answers, func(q int, v RawValue) {
		if q > IntelligenceQuestionCount {
			return
		}
		points, ok := intelligencePoints(v)
		if !ok {
			return
		}
		out.raw[(q-1)%len(Intelligences)] += points
	})

	lo, hi := out.raw[0], out.raw[0]
	for _, r := range out.raw[1:] {
		lo = min(lo, r)
		hi = max(hi, r)
	}

	for i, r := range out.raw {
		switch {
		case r == 0:
			out.progress[i] = ProgressMin
		case hi == lo:
			out.progress[i] = progressNeutral
		default:
			scaled := float64(r-lo) / float64(hi-lo) * (ProgressMax - ProgressMin)
			out.progress[i] = clamp(ProgressMin+int(math.Round(scaled)), ProgressMin, ProgressMax)
		}
	}
	return out
}
