package models

// LeaderboardRow is computed on read and never persisted.
type LeaderboardRow struct {
	Rank           int     `json:"rank"`
	CompetitorID   int     `json:"competitor_id"`
	CompetitorName string  `json:"competitor_name"`
	NumScores      int     `json:"num_scores"`
	TotalScore     float64 `json:"total_score"`
	AvgScore       float64 `json:"avg_score"`
}
