package model

import "time"

// Metadata is the creation and modification stamp carried by rooms and bookings.
// The actor columns hold staff user ids.
type Metadata struct {
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at"`
	CreatedBy  string    `db:"created_by"  json:"created_by"`
	ModifiedBy string    `db:"modified_by" json:"modified_by"`
}

// Touch records a modification by actor and returns the columns to persist alongside it.
func (m *Metadata) Touch(actor string, now time.Time) map[string]any {
	m.ModifiedAt = now
	m.ModifiedBy = actor

	return map[string]any{
		"modified_at": now,
		"modified_by": actor,
	}
}
