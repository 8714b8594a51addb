package models

// Answer is one judge's stored value for one competitor on one question.
// Value is a rubric level scaled by ten (0, 10, ..., 100).
type Answer struct {
	JudgeID      int `json:"judge_id" db:"judge_id"`
	CompetitorID int `json:"competitor_id" db:"competitor_id"`
	QuestionID   int `json:"question_id" db:"question_id"`
	Value        int `json:"value" db:"value"`
}

// CompositeScore is the cached mean of all answers for a (judge, competitor) pair.
type CompositeScore struct {
	JudgeID      int     `json:"judge_id" db:"judge_id"`
	CompetitorID int     `json:"competitor_id" db:"competitor_id"`
	Value        float64 `json:"value" db:"value"`
}

// PairKey identifies a (judge, competitor) pair.
type PairKey struct {
	JudgeID      int
	CompetitorID int
}
