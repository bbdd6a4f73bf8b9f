package models

import "time"

// WithdrawalStatus is the lifecycle state shared by both withdrawal kinds.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// Valid reports whether s is a known lifecycle state.
func (s WithdrawalStatus) Valid() bool {
	switch s {
	case WithdrawalPending, WithdrawalApproved, WithdrawalRejected:
		return true
	}
	return false
}

// Terminal reports whether s is an end state.
func (s WithdrawalStatus) Terminal() bool {
	return s == WithdrawalApproved || s == WithdrawalRejected
}

// TrashbagWithdrawal is a student request to redeem earned trashbags.
type TrashbagWithdrawal struct {
	ID          string           `db:"id" json:"id"`
	StudentID   string           `db:"student_id" json:"student_id"`
	Amount      int              `db:"amount" json:"amount"`
	Description string           `db:"description" json:"description"`
	Status      WithdrawalStatus `db:"status" json:"status"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
}

// Withdrawal is a legacy Rupiah savings withdrawal request.
type Withdrawal struct {
	ID          string           `db:"id" json:"id"`
	StudentID   string           `db:"student_id" json:"student_id"`
	Amount      float64          `db:"amount" json:"amount"`
	Description string           `db:"description" json:"description"`
	Status      WithdrawalStatus `db:"status" json:"status"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
}

// WithdrawalFilter captures query parameters for listing withdrawal requests.
type WithdrawalFilter struct {
	StudentID string
	Status    WithdrawalStatus
	Page      int
	PageSize  int
	SortOrder string
}
