package models

import "time"

// Savings is the legacy per-student Rupiah balance. Unlike the trashbag
// ledger it is a stored counter: credited when a deposit carries a legacy
// value, debited when a Rupiah withdrawal is approved.
type Savings struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	Balance   float64   `db:"balance" json:"balance"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
