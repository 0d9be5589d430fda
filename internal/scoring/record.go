package scoring

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
)

// Records are read back from JSON storage as well as produced in memory,
// so the accessors below accept both native Go values and their decoded
// JSON forms (float64, map[string]any, []any).

// Keys returns the record keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HasModule reports whether any key of the module is present.
func (r Record) HasModule(m Module) bool {
	prefix := m.Prefix()
	for k := range r {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// Int returns a numeric field of the module as an integer.
func (r Record) Int(m Module, field string) (int, bool) {
	v, ok := r[m.Prefix()+field]
	if !ok {
		return 0, false
	}
	return asInt(v)
}

// ThinkingPercent reads the nested Module 3 percentage of t.
func (r Record) ThinkingPercent(t ThinkingType) (int, bool) {
	v, ok := r[ModuleThinking.Prefix()+string(t)]
	if !ok {
		return 0, false
	}
	nested, ok := v.(map[string]any)
	if !ok {
		return 0, false
	}
	return asInt(nested[PercentageField])
}

// ValueRanks reads the Module 4 name to rank map.
func (r Record) ValueRanks() (map[string]int, bool) {
	v, ok := r[ModuleValues.Prefix()+ValuesField]
	if !ok {
		return nil, false
	}

	out := make(map[string]int)
	switch ranks := v.(type) {
	case map[string]int:
		for name, rank := range ranks {
			out[name] = rank
		}
	case map[string]any:
		for name, raw := range ranks {
			if rank, ok := asInt(raw); ok {
				out[name] = rank
			}
		}
	default:
		return nil, false
	}
	return out, true
}

// BandFactors reads the Module 6 list of one band.
func (r Record) BandFactors(b Band) []FactorScore {
	v, ok := r[ModuleMotivation.Prefix()+string(b)+"_list"]
	if !ok {
		return nil
	}

	switch list := v.(type) {
	case []FactorScore:
		return append([]FactorScore(nil), list...)
	case []any:
		out := make([]FactorScore, 0, len(list))
		for _, item := range list {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			name, _ := entry["factor"].(string)
			score, ok := asInt(entry["score"])
			if name == "" || !ok {
				continue
			}
			out = append(out, FactorScore{Factor: name, Score: score})
		}
		return out
	default:
		return nil
	}
}

// Typology rebuilds the Module 7 tallies, reporting false when the module
// is absent from the record.
func (r Record) Typology() (TypologyScores, bool) {
	if !r.HasModule(ModuleTypology) {
		return TypologyScores{}, false
	}
	var s TypologyScores
	s.R, _ = r.Int(ModuleTypology, string(LetterR))
	s.I, _ = r.Int(ModuleTypology, string(LetterI))
	s.A, _ = r.Int(ModuleTypology, string(LetterA))
	s.S, _ = r.Int(ModuleTypology, string(LetterS))
	s.E, _ = r.Int(ModuleTypology, string(LetterE))
	s.C, _ = r.Int(ModuleTypology, string(LetterC))
	return s, true
}

// DecodeRecord parses a persisted score blob.
func DecodeRecord(data []byte) (Record, error) {
	record := make(Record)
	if len(data) == 0 {
		return record, nil
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
