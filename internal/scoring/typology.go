package scoring

import (
	"sort"
	"strings"
)

// Letter is one of the six RIASEC types.
type Letter string

const (
	LetterR Letter = "r"
	LetterI Letter = "i"
	LetterA Letter = "a"
	LetterS Letter = "s"
	LetterE Letter = "e"
	LetterC Letter = "c"
)

// Letters lists the RIASEC letters in canonical order, which is also the
// tie-break order of DominantCode.
var Letters = []Letter{LetterR, LetterI, LetterA, LetterS, LetterE, LetterC}

// TypologyQuestionCount is the number of forced-choice Module 7 questions.
const TypologyQuestionCount = 37

// LetterPair assigns each option of a Module 7 question to a letter.
type LetterPair struct {
	A Letter
	B Letter
}

// typologyKey covers every pair of letters twice, once per option side,
// followed by seven extra pairs.
var typologyKey = map[int]LetterPair{
	1: {LetterR, LetterI},
	2: {LetterI, LetterR},
	3: {LetterR, LetterA},
	4: {LetterA, LetterR},
	5: {LetterR, LetterS},
	6: {LetterS, LetterR},
	7: {LetterR, LetterE},
	8: {LetterE, LetterR},
	9: {LetterR, LetterC},
	10: {LetterC, LetterR},
	11: {LetterI, LetterA},
	12: {LetterA, LetterI},
	13: {LetterI, LetterS},
	14: {LetterS, LetterI},
	15: {LetterI, LetterE},
	16: {LetterE, LetterI},
	17: {LetterI, LetterC},
	18: {LetterC, LetterI},
	19: {LetterA, LetterS},
	20: {LetterS, LetterA},
	21: {LetterA, LetterE},
	22: {LetterE, LetterA},
	23: {LetterA, LetterC},
	24: {LetterC, LetterA},
	25: {LetterS, LetterE},
	26: {LetterE, LetterS},
	27: {LetterS, LetterC},
	28: {LetterC, LetterS},
	29: {LetterE, LetterC},
	30: {LetterC, LetterE},
	31: {LetterR, LetterS},
	32: {LetterI, LetterA},
	33: {LetterS, LetterE},
	34: {LetterE, LetterC},
	35: {LetterA, LetterC},
	36: {LetterI, LetterE},
	37: {LetterR, LetterC},
}

// TypologyScores holds the raw Module 7 tally per letter.
type TypologyScores struct {
	R int `json:"r"`
	I int `json:"i"`
	A int `json:"a"`
	S int `json:"s"`
	E int `json:"e"`
	C int `json:"c"`
}

func (TypologyScores) Module() Module { return ModuleTypology }

func (s TypologyScores) Fields() map[string]any {
	out := make(map[string]any, len(Letters))
	for _, l := range Letters {
		out[string(l)] = s.Get(l)
	}
	return out
}

// Get returns the tally of one letter.
func (s TypologyScores) Get(l Letter) int {
	switch l {
	case LetterR:
		return s.R
	case LetterI:
		return s.I
	case LetterA:
		return s.A
	case LetterS:
		return s.S
	case LetterE:
		return s.E
	case LetterC:
		return s.C
	default:
		return 0
	}
}

func (s *TypologyScores) add(l Letter) {
	switch l {
	case LetterR:
		s.R++
	case LetterI:
		s.I++
	case LetterA:
		s.A++
	case LetterS:
		s.S++
	case LetterE:
		s.E++
	case LetterC:
		s.C++
	}
}

// ScoreTypology counts the letter behind every chosen option.
func ScoreTypology(answers RawAnswers) TypologyScores {
	var out TypologyScores
	plainAnswers(answers, func(q int, v RawValue) {
		pair, ok := typologyKey[q]
		if !ok {
			return
		}
		choice, ok := binaryChoice(v)
		if !ok {
			return
		}
		if choice == ChoiceA {
			out.add(pair.A)
		} else {
			out.add(pair.B)
		}
	})
	return out
}

// DominantCode returns the n letters with the highest tallies as an
// upper-case code such as "SAE". Equal tallies keep canonical R-I-A-S-E-C
// order, so the code is stable for any input.
func DominantCode(s TypologyScores, n int) string {
	ranked := append([]Letter(nil), Letters...)
	sort.SliceStable(ranked, func(a, b int) bool {
		return s.Get(ranked[a]) > s.Get(ranked[b])
	})

	n = clamp(n, 0, len(ranked))
	var b strings.Builder
	for _, l := range ranked[:n] {
		b.WriteString(strings.ToUpper(string(l)))
	}
	return b.String()
}
