package model

import "time"

const (
	AuditTableName  = "booking_audits"
	AuditEntityName = "booking_audit"

	FieldAuditBookingID = "booking_id"
	FieldAuditCreatedAt = "created_at"
)

const (
	ActionCreated    = "created"
	ActionCheckedIn  = "checked_in"
	ActionCheckedOut = "checked_out"
	ActionCancelled  = "cancelled"
)

// Audit is one append-only row per lifecycle transition.
type Audit struct {
	ID        string    `db:"id"`
	BookingID string    `db:"booking_id"`
	Action    string    `db:"action"`
	Note      string    `db:"note"`
	Actor     string    `db:"actor"`
	Amount    float64   `db:"amount"`
	CreatedAt time.Time `db:"created_at"`
}
