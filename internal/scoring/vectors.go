package scoring

// Dimension is one of the five professional-environment vectors of Module 1.
type Dimension string

const (
	DimensionNature  Dimension = "nature"
	DimensionTechnic Dimension = "technic"
	DimensionHuman   Dimension = "human"
	DimensionSign    Dimension = "sign"
	DimensionArt     Dimension = "art"
)

// Dimensions lists the Module 1 vectors in output order.
var Dimensions = []Dimension{DimensionNature, DimensionTechnic, DimensionHuman, DimensionSign, DimensionArt}

// VectorPair assigns each option of a bipolar question to a dimension.
type VectorPair struct {
	A Dimension
	B Dimension
}

// vectorKey is the 20-pair differential diagnostic key.
var vectorKey = map[int]VectorPair{
	1:  {DimensionNature, DimensionTechnic},
	2:  {DimensionHuman, DimensionSign},
	3:  {DimensionArt, DimensionNature},
	4:  {DimensionTechnic, DimensionHuman},
	5:  {DimensionSign, DimensionArt},
	6:  {DimensionNature, DimensionHuman},
	7:  {DimensionArt, DimensionTechnic},
	8:  {DimensionHuman, DimensionArt},
	9:  {DimensionTechnic, DimensionSign},
	10: {DimensionNature, DimensionSign},
	11: {DimensionNature, DimensionTechnic},
	12: {DimensionHuman, DimensionSign},
	13: {DimensionArt, DimensionNature},
	14: {DimensionTechnic, DimensionHuman},
	15: {DimensionSign, DimensionArt},
	16: {DimensionNature, DimensionSign},
	17: {DimensionArt, DimensionTechnic},
	18: {DimensionArt, DimensionHuman},
	19: {DimensionTechnic, DimensionSign},
	20: {DimensionNature, DimensionHuman},
}

// VectorScores holds raw Module 1 tallies.
type VectorScores struct {
	Nature  int `json:"nature"`
	Technic int `json:"technic"`
	Human   int `json:"human"`
	Sign    int `json:"sign"`
	Art     int `json:"art"`
}

func (VectorScores) Module() Module { return ModuleVectors }

func (s VectorScores) Fields() map[string]any {
	return map[string]any{
		string(DimensionNature):  s.Nature,
		string(DimensionTechnic): s.Technic,
		string(DimensionHuman):   s.Human,
		string(DimensionSign):    s.Sign,
		string(DimensionArt):     s.Art,
	}
}

// Get returns the tally of one dimension.
func (s VectorScores) Get(d Dimension) int {
	switch d {
	case DimensionNature:
		return s.Nature
	case DimensionTechnic:
		return s.Technic
	case DimensionHuman:
		return s.Human
	case DimensionSign:
		return s.Sign
	case DimensionArt:
		return s.Art
	default:
		return 0
	}
}

// Total is the sum of all five tallies.
func (s VectorScores) Total() int {
	return s.Nature + s.Technic + s.Human + s.Sign + s.Art
}

func (s *VectorScores) add(d Dimension) {
	switch d {
	case DimensionNature:
		s.Nature++
	case DimensionTechnic:
		s.Technic++
	case DimensionHuman:
		s.Human++
	case DimensionSign:
		s.Sign++
	case DimensionArt:
		s.Art++
	}
}

// VectorScorer tallies Module 1 answers against a question table.
type VectorScorer struct {
	table map[int]VectorPair
}

// NewVectorScorer builds a scorer over its own copy of table.
func NewVectorScorer(table map[int]VectorPair) *VectorScorer {
	own := make(map[int]VectorPair, len(table))
	for q, pair := range table {
		own[q] = pair
	}
	return &VectorScorer{table: own}
}

var defaultVectorScorer = NewVectorScorer(vectorKey)

// Score counts one point for the dimension behind every chosen option.
func (vs *VectorScorer) Score(answers RawAnswers) VectorScores {
	var out VectorScores
	plainAnswers(answers, func(q int, v RawValue) {
		pair, ok := vs.table[q]
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

// ScoreVectors scores Module 1 with the standard key.
func ScoreVectors(answers RawAnswers) VectorScores {
	return defaultVectorScorer.Score(answers)
}

// VectorTable returns a copy of the standard Module 1 key.
func VectorTable() map[int]VectorPair {
	out := make(map[int]VectorPair, len(vectorKey))
	for q, p := range vectorKey {
		out[q] = p
	}
	return out
}
