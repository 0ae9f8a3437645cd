package model

import "time"

// Event is published on the booking topic after every committed transition.
type Event struct {
	BookingID        string    `json:"booking_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	Action           string    `json:"action"`
	Status           string    `json:"status"`
	OccurredAt       time.Time `json:"occurred_at"`
	Actor            string    `json:"actor"`
}

// Archivable reports whether the event closes the booking for good.
func (e Event) Archivable() bool {
	return e.Action == ActionCheckedOut || e.Action == ActionCancelled
}
