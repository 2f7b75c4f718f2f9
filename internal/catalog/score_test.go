package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"2000000000", 2e9, true},
		{"2,000,000,000", 2e9, true},
		{"₹ 2,000,000,000", 2e9, true},
		{"INR 1,500", 1500, true},
		{"Rs. 99.5", 99.5, true},
		{"  42  ", 42, true},
		{"", 0, false},
		{"unknown", 0, false},
		{"₹", 0, false},
		{"$1,250", 1250, true},
		{"2e9", 2e9, true},
		{"123 rupees", 0, false},
		{"1.5 cr", 0, false},
		{"12abc34", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseMoney(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseScore(t *testing.T) {
	v, ok := parseScore("8.8")
	assert.True(t, ok)
	assert.Equal(t, 8.8, v)

	_, ok = parseScore("NaN")
	assert.False(t, ok)

	_, ok = parseScore("8.8/10")
	assert.False(t, ok)
}

func TestParseScorePolicy(t *testing.T) {
	p, err := ParseScorePolicy("")
	require.NoError(t, err)
	assert.Equal(t, ScorePolicyZero, p)

	p, err = ParseScorePolicy(" Uniform ")
	require.NoError(t, err)
	assert.Equal(t, ScorePolicyUniform, p)

	_, err = ParseScorePolicy("median")
	assert.Error(t, err)
}

func TestScoreFallback_UniformBadRangeUsesDefaults(t *testing.T) {
	fb := ScoreFallback{Policy: ScorePolicyUniform, Min: 3, Max: 3}

	for range 50 {
		v, ok := fb.fill()
		require.True(t, ok)
		assert.GreaterOrEqual(t, v, DefaultUniformMin)
		assert.Less(t, v, DefaultUniformMax)
	}
}
