package models

import "time"

// Student represents a learner registered at the waste bank.
type Student struct {
	ID        string    `db:"id" json:"id"`
	NIS       string    `db:"nis" json:"nis"`
	Name      string    `db:"name" json:"name"`
	Class     string    `db:"class" json:"class"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search    string
	Class     string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
