package models

import "time"

type Question struct {
	ID        int       `json:"id" db:"id"`
	Prompt    string    `json:"prompt" db:"prompt"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
