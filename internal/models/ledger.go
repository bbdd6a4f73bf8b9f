package models

// WasteTally is a per-waste-type subtotal within a student's ledger.
type WasteTally struct {
	Bottles   int `json:"bottles"`
	Trashbags int `json:"trashbags"`
}

// BottleStats is the aggregate of a deposit history against the waste type
// catalog. It is derived, never stored.
type BottleStats struct {
	TotalBottles   int                   `json:"total_bottles"`
	TotalTrashbags int                   `json:"total_trashbags"`
	WasteBreakdown map[string]WasteTally `json:"waste_breakdown"`
}

// LedgerSummary is the authoritative view of a student's reward position.
// AvailableTrashbags nets approved withdrawals out of the earned total.
// NextTrashbagBottles reports, per waste type name, how many bottles the
// student has banked toward the next trashbag at the current conversion
// rate; it is informational and never feeds the earned total.
type LedgerSummary struct {
	StudentID            string                `json:"student_id"`
	TotalBottles         int                   `json:"total_bottles"`
	TotalTrashbagsEarned int                   `json:"total_trashbags_earned"`
	AvailableTrashbags   int                   `json:"available_trashbags"`
	WasteBreakdown       map[string]WasteTally `json:"waste_breakdown"`
	NextTrashbagBottles  map[string]int        `json:"next_trashbag_bottles"`
}
