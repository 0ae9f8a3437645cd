package model

import (
	"hotel/shared/model"
	"hotel/shared/stay"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldConfirmationCode = "confirmation_code"
	FieldGuestID          = "guest_id"
	FieldRoomID           = "room_id"
	FieldCheckInDate      = "checkin_date"
	FieldCheckOutDate     = "checkout_date"
	FieldNights           = "nights"
	FieldGuestCount       = "guest_count"
	FieldTotal            = "total"
	FieldNotes            = "notes"
	FieldStatus           = "status"
	FieldCheckInActualAt  = "checkin_actual_at"
	FieldCheckOutActualAt = "checkout_actual_at"
)

const (
	StatusConfirmed = "confirmed"
	StatusInStay    = "in_stay"
	StatusFinalized = "finalized"
	StatusCancelled = "cancelled"
)

// ActiveStatuses are the statuses that hold a room.
var ActiveStatuses = []string{StatusConfirmed, StatusInStay}

// Booking moves forward only: confirmed, then in_stay, then finalized. A confirmed
// booking may be cancelled instead. Rows are never deleted.
type Booking struct {
	ID               string     `db:"id"`
	ConfirmationCode string     `db:"confirmation_code"`
	GuestID          string     `db:"guest_id"`
	RoomID           string     `db:"room_id"`
	CheckInDate      time.Time  `db:"checkin_date"`
	CheckOutDate     time.Time  `db:"checkout_date"`
	Nights           int        `db:"nights"`
	GuestCount       int        `db:"guest_count"`
	Total            float64    `db:"total"`
	Notes            string     `db:"notes"`
	Status           string     `db:"status"`
	CheckInActualAt  *time.Time `db:"checkin_actual_at"`
	CheckOutActualAt *time.Time `db:"checkout_actual_at"`
	model.Metadata
}

func (b Booking) Range() stay.Range {
	return stay.Range{CheckIn: stay.Date(b.CheckInDate), CheckOut: stay.Date(b.CheckOutDate)}
}

// Holding reports whether the booking still occupies its room.
func (b Booking) Holding() bool {
	return b.Status == StatusConfirmed || b.Status == StatusInStay
}

func (b Booking) Terminal() bool {
	return b.Status == StatusFinalized || b.Status == StatusCancelled
}

// BookingDetail is a booking joined with its room number and guest name for listings.
type BookingDetail struct {
	Booking
	RoomNumber   string `column:"number"      db:"room_number"   table:"rooms"`
	RoomCategory string `column:"category"    db:"room_category" table:"rooms"`
	GuestName    string `column:"name"        db:"guest_name"    table:"guests"`
	NationalID   string `column:"national_id" db:"national_id"   table:"guests"`
}

func (BookingDetail) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = bookings.room_id JOIN guests ON guests.id = bookings.guest_id"
}
