package services

import (
	"context"
	"testing"

	"github.com/Dosada05/judging-system/live"
	"github.com/Dosada05/judging-system/models"
	"github.com/Dosada05/judging-system/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLeaderboard_DenseRanks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	j := f.judge(t, "alice")
	q := f.question(t, "q")

	values := []int{90, 70, 90, 80, 70}
	ids := make([]int, len(values))
	for i, v := range values {
		c := f.competitor(t, "c"+string(rune('a'+i)))
		ids[i] = c.ID
		require.NoError(t, f.scoring.RecordAnswers(ctx, j.ID, c.ID, map[int]int{q.ID: v}))
	}
	unscored := f.competitor(t, "unscored")

	rows, err := f.leaderboard.ComputeLeaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 6)

	gotRanks := make([]int, 0, len(rows))
	gotIDs := make([]int, 0, len(rows))
	for _, r := range rows {
		gotRanks = append(gotRanks, r.Rank)
		gotIDs = append(gotIDs, r.CompetitorID)
	}
	assert.Equal(t, []int{1, 1, 2, 3, 3, 4}, gotRanks)
	assert.Equal(t, []int{ids[0], ids[2], ids[3], ids[1], ids[4], unscored.ID}, gotIDs)
	assert.Zero(t, rows[5].NumScores)
	assert.Zero(t, rows[5].AvgScore)
}

func TestNotifyChanged_Broadcasts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.competitor(t, "solo")

	b := &recordingBroadcaster{}
	svc := NewLeaderboardService(
		repositories.NewCompetitorRepository(f.db),
		repositories.NewCompositeScoreRepository(f.db),
		b, nil, nil,
	)

	svc.NotifyChanged(ctx)
	assert.Empty(t, b.messages, "no subscribers, no broadcast")

	b.size = 1
	svc.NotifyChanged(ctx)
	require.Len(t, b.messages, 1)
	assert.Equal(t, live.MessageLeaderboardUpdated, b.messages[0].Type)
	rows, ok := b.messages[0].Payload.([]models.LeaderboardRow)
	require.True(t, ok)
	require.Len(t, rows, 1)
	assert.Equal(t, "solo", rows[0].CompetitorName)
}
