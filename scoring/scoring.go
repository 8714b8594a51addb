// Package scoring holds the pure aggregation and ranking rules: answer value
// levels, per-pair composite means and the dense-ranked leaderboard.
package scoring

import (
	"sort"

	"github.com/Dosada05/judging-system/models"
)

const (
	MaxLevel   = 10
	LevelScale = 10
	MaxValue   = MaxLevel * LevelScale
)

// IsValidValue reports whether v is one of the eleven stored levels 0, 10, ..., 100.
func IsValidValue(v int) bool {
	return v >= 0 && v <= MaxValue && v%LevelScale == 0
}

// LevelToValue converts a rubric level (0-10) into its stored value.
func LevelToValue(level int) int {
	return level * LevelScale
}

// ValueToLevel is the inverse of LevelToValue.
func ValueToLevel(value int) int {
	return value / LevelScale
}

// Mean returns the unweighted arithmetic mean of values. ok is false for an
// empty input, in which case no composite exists.
func Mean(values []int) (mean float64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values)), true
}

// GroupComposites regroups ledger entries by (judge, competitor) and returns one
// composite per group, ordered by judge id then competitor id.
func GroupComposites(answers []models.Answer) []models.CompositeScore {
	groups := make(map[models.PairKey][]int)
	for _, a := range answers {
		key := models.PairKey{JudgeID: a.JudgeID, CompetitorID: a.CompetitorID}
		groups[key] = append(groups[key], a.Value)
	}

	composites := make([]models.CompositeScore, 0, len(groups))
	for key, values := range groups {
		mean, ok := Mean(values)
		if !ok {
			continue
		}
		composites = append(composites, models.CompositeScore{
			JudgeID:      key.JudgeID,
			CompetitorID: key.CompetitorID,
			Value:        mean,
		})
	}

	sort.Slice(composites, func(i, j int) bool {
		if composites[i].JudgeID != composites[j].JudgeID {
			return composites[i].JudgeID < composites[j].JudgeID
		}
		return composites[i].CompetitorID < composites[j].CompetitorID
	})
	return composites
}
