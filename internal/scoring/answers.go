package scoring

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type valueKind uint8

const (
	kindInvalid valueKind = iota
	kindText
	kindNumber
)

// RawValue is one unprocessed answer. Clients send either a JSON string
// ("a", "++", "7") or a JSON number; anything else decodes to an invalid
// value that every scorer ignores.
type RawValue struct {
	kind valueKind
	text string
	num  float64
}

// Text builds a string answer.
func Text(s string) RawValue {
	return RawValue{kind: kindText, text: s}
}

// Number builds a numeric answer.
func Number(n float64) RawValue {
	return RawValue{kind: kindNumber, num: n}
}

// IsValid reports whether the value decoded to a string or a number.
func (v RawValue) IsValid() bool {
	return v.kind != kindInvalid
}

// UnmarshalJSON never fails: unsupported JSON types decode to an invalid value.
func (v *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*v = RawValue{}
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*v = Text(s)
		}
	case 'n', 't', 'f', '{', '[':
		// null, booleans, objects and arrays carry no answer
	default:
		if n, err := strconv.ParseFloat(string(data), 64); err == nil && !math.IsInf(n, 0) {
			*v = Number(n)
		}
	}
	return nil
}

func (v RawValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindText:
		return json.Marshal(v.text)
	case kindNumber:
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
}

// token returns the normalized textual form of the value.
func (v RawValue) token() (string, bool) {
	switch v.kind {
	case kindText:
		t := strings.ToLower(strings.TrimSpace(v.text))
		return t, t != ""
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64), true
	default:
		return "", false
	}
}

// integer returns the value as a whole number. Fractions and non-numeric
// strings are rejected.
func (v RawValue) integer() (int, bool) {
	switch v.kind {
	case kindNumber:
		if v.num != math.Trunc(v.num) || math.Abs(v.num) > math.MaxInt32 {
			return 0, false
		}
		return int(v.num), true
	case kindText:
		n, err := strconv.Atoi(strings.TrimSpace(v.text))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// RawAnswers maps question keys ("q12", "q3_opt2") to answers for one module.
type RawAnswers map[string]RawValue

// questionKey is a parsed "q<N>" or "q<N>_opt<K>" key. Option is 0 for the
// plain form.
type questionKey struct {
	Number int
	Option int
}

// parseQuestionKey accepts only the canonical spelling: lowercase, no
// surrounding space, no leading zeros. Each question therefore has exactly
// one key and a module map cannot hold two answers to it.
func parseQuestionKey(key string) (questionKey, bool) {
	rest, ok := strings.CutPrefix(key, "q")
	if !ok {
		return questionKey{}, false
	}

	num, opt, compound := strings.Cut(rest, "_opt")
	n, ok := positive(num)
	if !ok {
		return questionKey{}, false
	}
	if !compound {
		return questionKey{Number: n}, true
	}

	k, ok := positive(opt)
	if !ok {
		return questionKey{}, false
	}
	return questionKey{Number: n, Option: k}, true
}

// ValidQuestionKey reports whether key is a canonical "q<N>" or
// "q<N>_opt<K>" key.
func ValidQuestionKey(key string) bool {
	_, ok := parseQuestionKey(key)
	return ok
}

func positive(s string) (int, bool) {
	if s == "" || s[0] == '0' {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// plainAnswers yields the answers keyed by the plain "q<N>" form.
func plainAnswers(answers RawAnswers, yield func(q int, v RawValue)) {
	for key, value := range answers {
		qk, ok := parseQuestionKey(key)
		if !ok || qk.Option != 0 {
			continue
		}
		yield(qk.Number, value)
	}
}

// Choice is a normalized single-letter option.
type Choice string

const (
	ChoiceA Choice = "a"
	ChoiceB Choice = "b"
	ChoiceC Choice = "c"
)

// binaryChoice maps the accepted spellings of a two-way answer to a or b.
func binaryChoice(v RawValue) (Choice, bool) {
	t, ok := v.token()
	if !ok {
		return "", false
	}
	switch t {
	case "a", "yes", "+":
		return ChoiceA, true
	case "b", "no", "-":
		return ChoiceB, true
	default:
		return "", false
	}
}

func ternaryChoice(v RawValue) (Choice, bool) {
	t, ok := v.token()
	if !ok {
		return "", false
	}
	switch Choice(t) {
	case ChoiceA, ChoiceB, ChoiceC:
		return Choice(t), true
	default:
		return "", false
	}
}

// intInRange parses an integer answer and checks it against [lo, hi].
func intInRange(v RawValue, lo, hi int) (int, bool) {
	n, ok := v.integer()
	if !ok || n < lo || n > hi {
		return 0, false
	}
	return n, true
}
