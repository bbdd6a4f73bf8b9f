package models

import "time"

// WasteType is catalog reference data. TrashbagsPerBottle is the number of
// bottles a student must collect to earn one trashbag of this type.
// PricePerKg only feeds the legacy Rupiah savings ledger.
type WasteType struct {
	ID                 string    `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	TrashbagsPerBottle int       `db:"trashbags_per_bottle" json:"trashbags_per_bottle"`
	PricePerKg         float64   `db:"price_per_kg" json:"price_per_kg"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}
