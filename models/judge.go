package models

import "time"

// Judge is a scoring judge. Username is the linked account's username and is
// populated only by listings that join the users table.
type Judge struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Username  *string   `json:"username,omitempty" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
