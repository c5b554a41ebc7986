package models

import "time"

// Course is the subject a 1:1 session is booked against.
type Course struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Subject   string    `db:"subject" json:"subject"`
	Level     string    `db:"level" json:"level,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
