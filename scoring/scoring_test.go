package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/judging-system/models"
)

func TestIsValidValue(t *testing.T) {
	for v := 0; v <= 100; v += 10 {
		assert.True(t, IsValidValue(v), "value %d", v)
	}
	for _, v := range []int{-10, 5, 55, 101, 110} {
		assert.False(t, IsValidValue(v), "value %d", v)
	}
}

func TestLevelConversion(t *testing.T) {
	assert.Equal(t, 80, LevelToValue(8))
	assert.Equal(t, 8, ValueToLevel(80))
	assert.Equal(t, 0, LevelToValue(0))
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []int
		expected float64
		ok       bool
	}{
		{name: "empty set has no mean", values: nil, ok: false},
		{name: "single value", values: []int{70}, expected: 70, ok: true},
		{name: "two values", values: []int{80, 100}, expected: 90, ok: true},
		{name: "non integer mean", values: []int{10, 20, 20}, expected: 50.0 / 3.0, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, ok := Mean(tt.values)
			require.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.expected, mean, 1e-9)
		})
	}
}

func TestGroupComposites(t *testing.T) {
	answers := []models.Answer{
		{JudgeID: 2, CompetitorID: 1, QuestionID: 1, Value: 60},
		{JudgeID: 1, CompetitorID: 1, QuestionID: 1, Value: 80},
		{JudgeID: 1, CompetitorID: 1, QuestionID: 2, Value: 100},
		{JudgeID: 2, CompetitorID: 1, QuestionID: 2, Value: 60},
		{JudgeID: 1, CompetitorID: 3, QuestionID: 1, Value: 30},
	}

	composites := GroupComposites(answers)

	require.Len(t, composites, 3)
	assert.Equal(t, models.CompositeScore{JudgeID: 1, CompetitorID: 1, Value: 90}, composites[0])
	assert.Equal(t, models.CompositeScore{JudgeID: 1, CompetitorID: 3, Value: 30}, composites[1])
	assert.Equal(t, models.CompositeScore{JudgeID: 2, CompetitorID: 1, Value: 60}, composites[2])
}

func TestGroupComposites_Empty(t *testing.T) {
	assert.Empty(t, GroupComposites(nil))
}
