package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/judging-system/models"
)

func competitorsN(n int) []models.Competitor {
	out := make([]models.Competitor, n)
	for i := range out {
		out[i] = models.Competitor{ID: i + 1, Name: string(rune('A' + i))}
	}
	return out
}

func ranksOf(rows []models.LeaderboardRow) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Rank
	}
	return out
}

func TestRankLeaderboard_DenseRanks(t *testing.T) {
	// One composite per competitor so avg equals the composite value.
	avgs := []float64{90, 70, 80, 90, 70}
	comps := competitorsN(len(avgs))
	composites := make([]models.CompositeScore, 0, len(avgs))
	for i, v := range avgs {
		composites = append(composites, models.CompositeScore{JudgeID: 1, CompetitorID: comps[i].ID, Value: v})
	}

	rows := RankLeaderboard(comps, composites)

	require.Len(t, rows, 5)
	assert.Equal(t, []int{1, 1, 2, 3, 3}, ranksOf(rows))
	// ties keep competitor id order
	assert.Equal(t, 1, rows[0].CompetitorID)
	assert.Equal(t, 4, rows[1].CompetitorID)
	assert.Equal(t, 3, rows[2].CompetitorID)
	assert.Equal(t, 2, rows[3].CompetitorID)
	assert.Equal(t, 5, rows[4].CompetitorID)
}

func TestRankLeaderboard_Aggregates(t *testing.T) {
	comps := []models.Competitor{{ID: 1, Name: "C1"}, {ID: 2, Name: "C2"}}
	composites := []models.CompositeScore{
		{JudgeID: 1, CompetitorID: 1, Value: 90},
		{JudgeID: 2, CompetitorID: 1, Value: 60},
	}

	rows := RankLeaderboard(comps, composites)

	require.Len(t, rows, 2)
	assert.Equal(t, models.LeaderboardRow{
		Rank: 1, CompetitorID: 1, CompetitorName: "C1", NumScores: 2, TotalScore: 150, AvgScore: 75,
	}, rows[0])
	assert.Equal(t, models.LeaderboardRow{
		Rank: 2, CompetitorID: 2, CompetitorName: "C2",
	}, rows[1])
}

func TestRankLeaderboard_Empty(t *testing.T) {
	assert.Empty(t, RankLeaderboard(nil, nil))

	rows := RankLeaderboard(competitorsN(3), nil)
	require.Len(t, rows, 3)
	assert.Equal(t, []int{1, 1, 1}, ranksOf(rows))
	for _, r := range rows {
		assert.Zero(t, r.NumScores)
		assert.Zero(t, r.TotalScore)
		assert.Zero(t, r.AvgScore)
	}
}

func TestRankLeaderboard_RoundsBeforeComparing(t *testing.T) {
	comps := competitorsN(2)
	// 0.1+0.2 style noise: both averages round to 70.00
	composites := []models.CompositeScore{
		{JudgeID: 1, CompetitorID: 1, Value: 70.000000001},
		{JudgeID: 1, CompetitorID: 2, Value: 69.999999999},
	}

	rows := RankLeaderboard(comps, composites)

	assert.Equal(t, []int{1, 1}, ranksOf(rows))
}

func TestRankLeaderboard_StableAcrossCalls(t *testing.T) {
	comps := competitorsN(4)
	composites := []models.CompositeScore{
		{JudgeID: 1, CompetitorID: 1, Value: 50},
		{JudgeID: 1, CompetitorID: 2, Value: 50},
		{JudgeID: 1, CompetitorID: 3, Value: 50},
		{JudgeID: 1, CompetitorID: 4, Value: 60},
	}

	first := RankLeaderboard(comps, composites)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, RankLeaderboard(comps, composites))
	}
}
