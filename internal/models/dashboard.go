package models

import "time"

// WasteTypeTotals aggregates deposits per waste type across all students.
type WasteTypeTotals struct {
	Name      string  `db:"name" json:"name"`
	Bottles   int     `db:"bottles" json:"bottles"`
	Trashbags int     `db:"trashbags" json:"trashbags"`
	Value     float64 `db:"value" json:"value"`
}

// MonthlyTotals aggregates deposit activity per calendar month.
type MonthlyTotals struct {
	Month   string  `db:"month" json:"month"`
	Bottles int     `db:"bottles" json:"bottles"`
	Value   float64 `db:"value" json:"value"`
}

// TopCollector ranks students by collected bottles.
type TopCollector struct {
	StudentID    string `db:"student_id" json:"student_id"`
	StudentName  string `db:"student_name" json:"student_name"`
	StudentClass string `db:"student_class" json:"student_class"`
	Deposits     int    `db:"deposits" json:"deposits"`
	Bottles      int    `db:"bottles" json:"bottles"`
}

// DashboardStats is the admin overview aggregate.
type DashboardStats struct {
	TotalStudents              int               `json:"total_students"`
	TotalBottles               int               `json:"total_bottles"`
	TotalTrashbags             int               `json:"total_trashbags"`
	TotalSavings               float64           `json:"total_savings"`
	PendingTrashbagWithdrawals int               `json:"pending_trashbag_withdrawals"`
	PendingWithdrawals         int               `json:"pending_withdrawals"`
	WasteByType                []WasteTypeTotals `json:"waste_by_type"`
	MonthlyData                []MonthlyTotals   `json:"monthly_data"`
	TopStudents                []TopCollector    `json:"top_students"`
	GeneratedAt                time.Time         `json:"generated_at"`
}
