package scoring

import (
	"math"
	"sort"

	"github.com/Dosada05/judging-system/models"
)

// RankPrecision is the number of decimal digits an average is rounded to
// before two averages are compared for a tie.
const RankPrecision = 2

func roundAverage(v float64) float64 {
	p := math.Pow(10, RankPrecision)
	return math.Round(v*p) / p
}

// RankLeaderboard aggregates composites per competitor and assigns dense ranks
// by descending average. Every competitor gets a row, including those without
// composites. Tied rows keep the order of competitors as passed in, so callers
// should pass competitors in a fixed order (by id).
func RankLeaderboard(competitors []models.Competitor, composites []models.CompositeScore) []models.LeaderboardRow {
	type acc struct {
		count int
		total float64
	}
	byCompetitor := make(map[int]*acc, len(competitors))
	for _, c := range composites {
		a, ok := byCompetitor[c.CompetitorID]
		if !ok {
			a = &acc{}
			byCompetitor[c.CompetitorID] = a
		}
		a.count++
		a.total += c.Value
	}

	rows := make([]models.LeaderboardRow, 0, len(competitors))
	for _, comp := range competitors {
		row := models.LeaderboardRow{
			CompetitorID:   comp.ID,
			CompetitorName: comp.Name,
		}
		if a, ok := byCompetitor[comp.ID]; ok && a.count > 0 {
			row.NumScores = a.count
			row.TotalScore = a.total
			row.AvgScore = a.total / float64(a.count)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return roundAverage(rows[i].AvgScore) > roundAverage(rows[j].AvgScore)
	})

	AssignDenseRanks(rows)
	return rows
}

// AssignDenseRanks sets Rank on rows already sorted by descending average.
// Equal rounded averages share a rank; the next distinct average gets rank+1.
func AssignDenseRanks(rows []models.LeaderboardRow) {
	for i := range rows {
		if i == 0 {
			rows[i].Rank = 1
			continue
		}
		if roundAverage(rows[i].AvgScore) == roundAverage(rows[i-1].AvgScore) {
			rows[i].Rank = rows[i-1].Rank
		} else {
			rows[i].Rank = rows[i-1].Rank + 1
		}
	}
}
