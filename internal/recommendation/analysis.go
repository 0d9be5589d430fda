// Package recommendation turns an aggregated score record into a prose
// analysis and asks a text provider for career suggestions.
package recommendation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SAP-F-2025/career-orientation-service/internal/scoring"
)

// InsufficientData marks a module that is absent or carries no answers.
const InsufficientData = "insufficient data"

const topInterests = 5

// Section is the analysis of one module.
type Section struct {
	Module scoring.Module `json:"module"`
	Title  string         `json:"title"`
	Lines  []string       `json:"lines"`
	// Missing is set when the record had nothing usable for the module.
	Missing bool `json:"missing"`
}

// Analysis is the input handed to the text provider.
type Analysis struct {
	Sections     []Section `json:"sections"`
	DominantCode string    `json:"dominant_code,omitempty"`
}

// Available returns how many modules had data.
func (a Analysis) Available() int {
	n := 0
	for _, s := range a.Sections {
		if !s.Missing {
			n++
		}
	}
	return n
}

// Text renders the analysis as a plain-text block.
func (a Analysis) Text() string {
	var b strings.Builder
	for i, s := range a.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s\n", int(s.Module), s.Title)
		if s.Missing {
			fmt.Fprintf(&b, "   %s\n", InsufficientData)
			continue
		}
		for _, line := range s.Lines {
			fmt.Fprintf(&b, "   - %s\n", line)
		}
	}
	return b.String()
}

// BuildAnalysis describes every module of the record. It never fails:
// missing keys or modules without answers are reported as insufficient data.
func BuildAnalysis(record scoring.Record) Analysis {
	analysis := Analysis{
		Sections: []Section{
			vectorSection(record),
			interestSection(record),
			thinkingSection(record),
			valueSection(record),
			intelligenceSection(record),
			motivationSection(record),
			typologySection(record),
			perceptionSection(record),
		},
	}
	if s, ok := record.Typology(); ok && typologyTotal(s) > 0 {
		analysis.DominantCode = scoring.DominantCode(s, 3)
	}
	return analysis
}

func missing(m scoring.Module, title string) Section {
	return Section{Module: m, Title: title, Missing: true}
}

func vectorSection(r scoring.Record) Section {
	const title = "Professional environment (vectors)"
	counts := make([]int, len(scoring.Dimensions))
	total := 0
	for i, d := range scoring.Dimensions {
		counts[i], _ = r.Int(scoring.ModuleVectors, string(d))
		total += counts[i]
	}
	if total == 0 {
		return missing(scoring.ModuleVectors, title)
	}

	lines := make([]string, len(counts))
	for i, d := range scoring.Dimensions {
		lines[i] = fmt.Sprintf("%s: %d%% (%d of %d choices)", d, percent(counts[i], total), counts[i], total)
	}
	return Section{Module: scoring.ModuleVectors, Title: title, Lines: lines}
}

func interestSection(r scoring.Record) Section {
	const title = "Interest spheres"
	type entry struct {
		sphere  scoring.Sphere
		percent int
	}
	var entries []entry
	for _, s := range scoring.Spheres {
		p, _ := r.Int(scoring.ModuleInterests, string(s))
		if p > 0 {
			entries = append(entries, entry{s, p})
		}
	}
	if len(entries) == 0 {
		return missing(scoring.ModuleInterests, title)
	}

	sort.SliceStable(entries, func(a, b int) bool { return entries[a].percent > entries[b].percent })
	if len(entries) > topInterests {
		entries = entries[:topInterests]
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s: %d%%", humanize(string(e.sphere)), e.percent)
	}
	return Section{Module: scoring.ModuleInterests, Title: title, Lines: lines}
}

func thinkingSection(r scoring.Record) Section {
	const title = "Thinking profile"
	var lines []string
	for _, t := range scoring.ThinkingTypes {
		if p, ok := r.ThinkingPercent(t); ok && p > 0 {
			lines = append(lines, fmt.Sprintf("%s: %d%%", t, p))
		}
	}
	if len(lines) == 0 {
		return missing(scoring.ModuleThinking, title)
	}
	return Section{Module: scoring.ModuleThinking, Title: title, Lines: lines}
}

func valueSection(r scoring.Record) Section {
	const title = "Life values"
	ranks, ok := r.ValueRanks()
	if !ok {
		return missing(scoring.ModuleValues, title)
	}

	buckets := map[scoring.Importance][]string{}
	ranked := 0
	for _, name := range scoring.ValueNames() {
		rank := ranks[name]
		if rank > 0 {
			ranked++
		}
		imp := scoring.ValueImportance(rank)
		buckets[imp] = append(buckets[imp], name)
	}
	if ranked == 0 {
		return missing(scoring.ModuleValues, title)
	}

	var lines []string
	for _, imp := range []scoring.Importance{scoring.ImportanceHigh, scoring.ImportanceModerate, scoring.ImportanceLow} {
		names := buckets[imp]
		if len(names) == 0 {
			continue
		}
		sort.SliceStable(names, func(a, b int) bool { return ranks[names[a]] < ranks[names[b]] })
		lines = append(lines, fmt.Sprintf("%s: %s", imp, strings.Join(names, ", ")))
	}
	return Section{Module: scoring.ModuleValues, Title: title, Lines: lines}
}

func intelligenceSection(r scoring.Record) Section {
	const title = "Multiple intelligences (1-9)"
	lines := make([]string, 0, len(scoring.Intelligences))
	signal := false
	for _, c := range scoring.Intelligences {
		level, ok := r.Int(scoring.ModuleIntelligence, string(c))
		if !ok {
			return missing(scoring.ModuleIntelligence, title)
		}
		// every category sits at the floor only when nothing was answered
		if level != scoring.ProgressMin {
			signal = true
		}
		lines = append(lines, fmt.Sprintf("%s: %d", humanize(string(c)), level))
	}
	if !signal {
		return missing(scoring.ModuleIntelligence, title)
	}
	return Section{Module: scoring.ModuleIntelligence, Title: title, Lines: lines}
}

func motivationSection(r scoring.Record) Section {
	const title = "Motivation factors"
	total, _ := r.Int(scoring.ModuleMotivation, scoring.TotalField)
	if total == 0 {
		return missing(scoring.ModuleMotivation, title)
	}

	lines := make([]string, 0, len(scoring.Bands))
	for _, band := range scoring.Bands {
		count, _ := r.Int(scoring.ModuleMotivation, string(band)+"_count")
		pct, _ := r.Int(scoring.ModuleMotivation, string(band)+"_percent")
		line := fmt.Sprintf("%s: %d factors (%d%%)", band, count, pct)

		factors := r.BandFactors(band)
		if len(factors) > 5 {
			factors = factors[:5]
		}
		if len(factors) > 0 {
			names := make([]string, len(factors))
			for i, f := range factors {
				names[i] = humanize(f.Factor)
			}
			line += ": " + strings.Join(names, ", ")
		}
		lines = append(lines, line)
	}
	return Section{Module: scoring.ModuleMotivation, Title: title, Lines: lines}
}

func typologySection(r scoring.Record) Section {
	const title = "Holland typology (RIASEC)"
	s, ok := r.Typology()
	if !ok || typologyTotal(s) == 0 {
		return missing(scoring.ModuleTypology, title)
	}

	lines := []string{"dominant code: " + scoring.DominantCode(s, 3)}
	for _, l := range scoring.Letters {
		lines = append(lines, fmt.Sprintf("%s: %d", strings.ToUpper(string(l)), s.Get(l)))
	}
	return Section{Module: scoring.ModuleTypology, Title: title, Lines: lines}
}

func perceptionSection(r scoring.Record) Section {
	const title = "Perception channels"
	counts := make([]int, len(scoring.Channels))
	total := 0
	for i, c := range scoring.Channels {
		counts[i], _ = r.Int(scoring.ModulePerception, string(c))
		total += counts[i]
	}
	if total == 0 {
		return missing(scoring.ModulePerception, title)
	}

	lines := make([]string, len(counts))
	for i, c := range scoring.Channels {
		lines[i] = fmt.Sprintf("%s: %d%%", c, percent(counts[i], total))
	}
	return Section{Module: scoring.ModulePerception, Title: title, Lines: lines}
}

func typologyTotal(s scoring.TypologyScores) int {
	return s.R + s.I + s.A + s.S + s.E + s.C
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (part*200 + whole) / (2 * whole)
}

func humanize(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}
