package model

import (
	"hotel/shared/model"
	"strings"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldNumber      = "number"
	FieldCategory    = "category"
	FieldCapacity    = "capacity"
	FieldNightlyRate = "nightly_rate"
	FieldActive      = "active"
)

// Room is never deleted; retiring a room flips Active.
type Room struct {
	ID          string  `db:"id"`
	Number      string  `db:"number"`
	Category    string  `db:"category"`
	Capacity    int     `db:"capacity"`
	NightlyRate float64 `db:"nightly_rate"`
	Active      bool    `db:"active"`
	model.Metadata
}

// NormalizeCategory is the stored form of a category name.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
