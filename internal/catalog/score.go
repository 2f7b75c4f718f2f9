package catalog

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode"
)

// ScorePolicy decides what a record gets when its source score is
// missing or not numeric.
type ScorePolicy string

// Score policies.
const (
	// ScorePolicyZero fills DefaultFallbackScore.
	ScorePolicyZero ScorePolicy = "zero"
	// ScorePolicyUniform draws uniformly from [Min, Max].
	ScorePolicyUniform ScorePolicy = "uniform"
	// ScorePolicyNone leaves the score unset and flags the record, so the
	// recommender backfills it.
	ScorePolicyNone ScorePolicy = "none"
)

// Fallback defaults.
const (
	DefaultFallbackScore = 0.0
	DefaultUniformMin    = 5.0
	DefaultUniformMax    = 9.0
)

// ParseScorePolicy converts a config string to a ScorePolicy.
// Empty input selects ScorePolicyZero.
func ParseScorePolicy(s string) (ScorePolicy, error) {
	switch p := ScorePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ScorePolicyZero, nil
	case ScorePolicyZero, ScorePolicyUniform, ScorePolicyNone:
		return p, nil
	default:
		return "", fmt.Errorf("unknown score policy %q", s)
	}
}

// ScoreFallback applies a ScorePolicy.
type ScoreFallback struct {
	Policy ScorePolicy
	Min    float64
	Max    float64

	// Rand drives ScorePolicyUniform. A nil Rand uses the global source.
	Rand *rand.Rand
}

// fill returns the score for a record with no usable source value.
// The boolean is false when the policy leaves the score unset.
func (f ScoreFallback) fill() (float64, bool) {
	switch f.Policy {
	case ScorePolicyUniform:
		lo, hi := f.Min, f.Max
		if hi <= lo {
			lo, hi = DefaultUniformMin, DefaultUniformMax
		}
		var u float64
		if f.Rand != nil {
			u = f.Rand.Float64()
		} else {
			u = rand.Float64()
		}
		return lo + u*(hi-lo), true
	case ScorePolicyNone:
		return 0, false
	default:
		return DefaultFallbackScore, true
	}
}

// parseScore coerces a plain numeric cell. NaN and infinities count as missing.
func parseScore(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// currencyTokens are stripped from monetary cells before parsing.
var currencyTokens = []string{"inr", "rs.", "rs", "usd"}

// parseMoney coerces a revenue cell such as "₹ 2,000,000,000".
// Currency tokens, currency symbols, thousands separators and whitespace
// are dropped; the value is not rescaled. Whatever remains must parse as a
// float outright, so cells with other words in them ("123 rupees",
// "1.5 cr") count as missing rather than being read as their digits.
func parseMoney(raw string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, tok := range currencyTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case r == ',', unicode.IsSpace(r), unicode.Is(unicode.Sc, r):
			return -1
		default:
			return r
		}
	}, s)
	return parseScore(s)
}
