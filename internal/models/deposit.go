package models

import "time"

// Deposit is a single waste deposit event. The record is flat across both
// regimes: BottleCount/TrashbagReward belong to the current bottle-based
// reward model, Weight/TotalValue to the legacy Rupiah savings model. Rows
// predating either regime simply carry zeroes in the missing fields.
//
// TrashbagReward is frozen at write time: once stored it is never recomputed,
// even if the waste type's conversion rate changes later.
type Deposit struct {
	ID             string    `db:"id" json:"id"`
	StudentID      string    `db:"student_id" json:"student_id"`
	WasteTypeID    string    `db:"waste_type_id" json:"waste_type_id"`
	BottleCount    int       `db:"bottle_count" json:"bottle_count"`
	TrashbagReward int       `db:"trashbag_reward" json:"trashbag_reward"`
	Weight         float64   `db:"weight" json:"weight"`
	TotalValue     float64   `db:"total_value" json:"total_value"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// DepositDetail joins student and waste type display fields for listings
// and exports.
type DepositDetail struct {
	Deposit
	StudentName   string `db:"student_name" json:"student_name"`
	StudentNIS    string `db:"student_nis" json:"student_nis"`
	WasteTypeName string `db:"waste_type_name" json:"waste_type_name"`
}

// DepositFilter captures query parameters for listing deposits.
type DepositFilter struct {
	StudentID   string
	WasteTypeID string
	Page        int
	PageSize    int
	SortOrder   string
}
