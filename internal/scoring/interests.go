package scoring

import "sort"

// Sphere is one of the twenty interest areas of Module 2.
type Sphere string

const (
	SphereBiology      Sphere = "biology"
	SphereGeography    Sphere = "geography"
	SphereGeology      Sphere = "geology"
	SphereMedicine     Sphere = "medicine"
	SphereChemistry    Sphere = "chemistry"
	SpherePhysics      Sphere = "physics"
	SphereMathematics  Sphere = "mathematics"
	SphereEngineering  Sphere = "engineering"
	SphereElectronics  Sphere = "electronics"
	SphereConstruction Sphere = "construction"
	SphereTransport    Sphere = "transport"
	SphereMilitary     Sphere = "military"
	SphereHistory      Sphere = "history"
	SphereLiterature   Sphere = "literature"
	SphereJournalism   Sphere = "journalism"
	SpherePedagogy     Sphere = "pedagogy"
	SphereLaw          Sphere = "law"
	SphereEconomics    Sphere = "economics"
	SphereArt          Sphere = "art"
	SphereSport        Sphere = "sport"
)

// Spheres lists the Module 2 spheres in output order.
var Spheres = []Sphere{
	SphereBiology, SphereGeography, SphereGeology, SphereMedicine, SphereChemistry,
	SpherePhysics, SphereMathematics, SphereEngineering, SphereElectronics, SphereConstruction,
	SphereTransport, SphereMilitary, SphereHistory, SphereLiterature, SphereJournalism,
	SpherePedagogy, SphereLaw, SphereEconomics, SphereArt, SphereSport,
}

const sphereCount = 20

// InterestQuestionCount is the number of questions in the Module 2 scan.
const InterestQuestionCount = 174

// interestScaleMax is the value of the strongest answer, "++".
const interestScaleMax = 3

// sphereQuestions is the membership table. A question may count toward
// several spheres.
var sphereQuestions = map[Sphere][]int{
	SphereBiology:      {1, 21, 41, 61, 81, 101, 121, 141, 161, 174},
	SphereGeography:    {2, 22, 42, 62, 82, 102, 122, 142, 167, 174},
	SphereGeology:      {3, 23, 43, 63, 83, 103, 123, 143, 167},
	SphereMedicine:     {4, 24, 44, 64, 84, 104, 124, 144, 161, 162},
	SphereChemistry:    {5, 25, 45, 65, 85, 105, 125, 145, 162},
	SpherePhysics:      {6, 26, 46, 66, 86, 106, 126, 146, 163},
	SphereMathematics:  {7, 27, 47, 67, 87, 107, 127, 147, 164},
	SphereEngineering:  {8, 28, 48, 68, 88, 108, 128, 148, 163, 165, 166},
	SphereElectronics:  {9, 29, 49, 69, 89, 109, 129, 149, 165},
	SphereConstruction: {10, 30, 50, 70, 90, 110, 130, 150, 166},
	SphereTransport:    {11, 31, 51, 71, 91, 111, 131, 151, 171},
	SphereMilitary:     {12, 32, 52, 72, 92, 112, 132, 152, 171},
	SphereHistory:      {13, 33, 53, 73, 93, 113, 133, 153, 168},
	SphereLiterature:   {14, 34, 54, 74, 94, 114, 134, 154, 169, 172},
	SphereJournalism:   {15, 35, 55, 75, 95, 115, 135, 155, 169},
	SpherePedagogy:     {16, 36, 56, 76, 96, 116, 136, 156, 170},
	SphereLaw:          {17, 37, 57, 77, 97, 117, 137, 157, 168, 173},
	SphereEconomics:    {18, 38, 58, 78, 98, 118, 138, 158, 164, 173},
	SphereArt:          {19, 39, 59, 79, 99, 119, 139, 159, 172},
	SphereSport:        {20, 40, 60, 80, 100, 120, 140, 160, 170},
}

// questionSpheres is the reverse index of sphereQuestions.
var questionSpheres = buildQuestionSpheres()

func buildQuestionSpheres() map[int][]int {
	index := make(map[Sphere]int, len(Spheres))
	for i, s := range Spheres {
		index[s] = i
	}

	out := make(map[int][]int, InterestQuestionCount)
	for _, s := range Spheres {
		for _, q := range sphereQuestions[s] {
			out[q] = append(out[q], index[s])
		}
	}
	return out
}

// interestScale maps the five answer tokens to their values.
var interestScale = map[string]int{
	"++": 3,
	"+":  2,
	"0":  1,
	"-":  0,
	"--": -1,
}

func interestValue(v RawValue) (int, bool) {
	t, ok := v.token()
	if !ok {
		return 0, false
	}
	n, ok := interestScale[t]
	return n, ok
}

// InterestScores holds the Module 2 percentage per sphere.
type InterestScores struct {
	percent [sphereCount]int
}

func (InterestScores) Module() Module { return ModuleInterests }

func (s InterestScores) Fields() map[string]any {
	out := make(map[string]any, len(Spheres))
	for i, sphere := range Spheres {
		out[string(sphere)] = s.percent[i]
	}
	return out
}

// Get returns the percentage of one sphere, 0 for unknown spheres.
func (s InterestScores) Get(sphere Sphere) int {
	for i, candidate := range Spheres {
		if candidate == sphere {
			return s.percent[i]
		}
	}
	return 0
}

// SphereScore pairs a sphere with its percentage.
type SphereScore struct {
	Sphere  Sphere `json:"sphere"`
	Percent int    `json:"percent"`
}

// Top returns the n highest spheres, ties in table order.
func (s InterestScores) Top(n int) []SphereScore {
	all := make([]SphereScore, len(Spheres))
	for i, sphere := range Spheres {
		all[i] = SphereScore{Sphere: sphere, Percent: s.percent[i]}
	}
	sort.SliceStable(all, func(a, b int) bool { return all[a].Percent > all[b].Percent })
	if n < 0 {
		n = 0
	}
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}

// ScoreInterests adds every answer's scale value to each sphere containing
// the question, then expresses each sphere as a share of its maximum.
func ScoreInterests(answers RawAnswers) InterestScores {
	var raw [sphereCount]int
	plainAnswers(answers, func(q int, v RawValue) {
		spheres, ok := questionSpheres[q]
		if !ok {
			return
		}
		n, ok := interestValue(v)
		if !ok {
			return
		}
		for _, i := range spheres {
			raw[i] += n
		}
	})

	var out InterestScores
	for i, sphere := range Spheres {
		out.percent[i] = percentOf(raw[i], len(sphereQuestions[sphere])*interestScaleMax)
	}
	return out
}

// SphereQuestions returns a copy of the questions counted toward sphere.
func SphereQuestions(sphere Sphere) []int {
	return append([]int(nil), sphereQuestions[sphere]...)
}
