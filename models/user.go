package models

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleJudge UserRole = "judge"
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	JudgeID      *int      `json:"judge_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
