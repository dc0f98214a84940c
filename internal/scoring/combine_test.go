package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombine_Anchors(t *testing.T) {
	tests := []struct {
		name            string
		exp, edu, skill float64
		want            float64
	}{
		{"all full", 100, 100, 100, 100},
		{"all zero", 0, 0, 0, 0},
		{"experience only", 100, 0, 0, 20},
		{"education only", 0, 100, 0, 10},
		{"skill only", 0, 0, 100, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Combine(tt.exp, tt.edu, tt.skill), 1e-9)
		})
	}
}

func TestCombine_ClampsComponentsBeforeWeighting(t *testing.T) {
	// Out-of-range inputs never push the final score outside [0,100].
	assert.InDelta(t, 100.0, Combine(500, 200, 150), 1e-9)
	assert.InDelta(t, 0.0, Combine(-50, -1, -0.001), 1e-9)
}

func TestCombine_RoundTripsExactly(t *testing.T) {
	breakdown := NewScoreBreakdown(60, 70, 87.5)

	recombined := Combine(breakdown.ExperienceScore, breakdown.EducationScore, breakdown.SkillScore)
	assert.Equal(t, breakdown.FinalScore, recombined)
}

func TestWeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, ExperienceWeight+EducationWeight+SkillWeight, 1e-12)
}

func TestSkillScore_Validation(t *testing.T) {
	value := 87.5
	got, err := SkillScore(&value)
	require.NoError(t, err)
	assert.InDelta(t, 87.5, got, 1e-9)

	high := 150.0
	got, err = SkillScore(&high)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, got, 1e-9)

	low := -3.0
	got, err = SkillScore(&low)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-9)
}

func TestSkillScore_MissingIsInvalid(t *testing.T) {
	_, err := SkillScore(nil)
	require.Error(t, err)

	var invalid *InvalidScoreError
	require.ErrorAs(t, err, &invalid)
}

func TestSkillScore_NonFiniteIsInvalid(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		value := v
		_, err := SkillScore(&value)

		var invalid *InvalidScoreError
		require.ErrorAs(t, err, &invalid)
	}
}
