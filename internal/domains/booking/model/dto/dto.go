package dto

import (
	"hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/stay"
	"hotel/shared/timezone"
	"time"
)

type CreateBookingRequest struct {
	GuestID    string `json:"guest_id"    validate:"required,uuid"`
	Category   string `json:"category"    validate:"notblank,max=50"`
	CheckIn    string `json:"checkin"     validate:"required,dateonly"`
	CheckOut   string `json:"checkout"    validate:"required,dateonly"`
	GuestCount int    `json:"guest_count" validate:"gte=1"`
	Notes      string `json:"notes"       validate:"omitempty,max=500"`
}

func (c *CreateBookingRequest) Range() (stay.Range, error) {
	checkIn, err := stay.ParseDate(c.CheckIn)
	if err != nil {
		return stay.Range{}, err
	}

	checkOut, err := stay.ParseDate(c.CheckOut)
	if err != nil {
		return stay.Range{}, err
	}

	return stay.NewRange(checkIn, checkOut) //nolint:wrapcheck
}

// ToModel builds the confirmed booking for room. Total and code are set by the caller.
func (c *CreateBookingRequest) ToModel(id string, room roomModel.Room, r stay.Range, user string, now time.Time) model.Booking {
	return model.Booking{
		ID:           id,
		GuestID:      c.GuestID,
		RoomID:       room.ID,
		CheckInDate:  r.CheckIn,
		CheckOutDate: r.CheckOut,
		Nights:       r.Nights(),
		GuestCount:   c.GuestCount,
		Notes:        c.Notes,
		Status:       model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CheckInRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=500"`
}

type CheckOutRequest struct {
	Notes        string  `json:"notes"         validate:"omitempty,max=500"`
	ExtraCharges float64 `json:"extra_charges" validate:"gte=0"`
}

type CancelRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type BookingResponse struct {
	ID               string  `json:"id"`
	ConfirmationCode string  `json:"confirmation_code"`
	GuestID          string  `json:"guest_id"`
	GuestName        string  `json:"guest_name,omitempty"`
	RoomID           string  `json:"room_id"`
	RoomNumber       string  `json:"room_number,omitempty"`
	Category         string  `json:"category,omitempty"`
	CheckIn          string  `json:"checkin"`
	CheckOut         string  `json:"checkout"`
	Nights           int     `json:"nights"`
	GuestCount       int     `json:"guest_count"`
	Total            float64 `json:"total"`
	Notes            string  `json:"notes"`
	Status           string  `json:"status"`
	CheckInActualAt  *string `json:"checkin_actual_at"`
	CheckOutActualAt *string `json:"checkout_actual_at"`
	Late             bool    `json:"late,omitempty"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(model model.Booking) {
	b.ID = model.ID
	b.ConfirmationCode = model.ConfirmationCode
	b.GuestID = model.GuestID
	b.RoomID = model.RoomID
	b.CheckIn = stay.FormatDate(model.CheckInDate)
	b.CheckOut = stay.FormatDate(model.CheckOutDate)
	b.Nights = model.Nights
	b.GuestCount = model.GuestCount
	b.Total = model.Total
	b.Notes = model.Notes
	b.Status = model.Status
	b.CheckInActualAt = formatTime(model.CheckInActualAt)
	b.CheckOutActualAt = formatTime(model.CheckOutActualAt)
	b.Metadata.FromModel(model.Metadata)
}

func (b *BookingResponse) FromDetail(detail model.BookingDetail) {
	b.FromModel(detail.Booking)
	b.GuestName = detail.GuestName
	b.RoomNumber = detail.RoomNumber
	b.Category = detail.RoomCategory
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.BookingDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromDetail(mod)
	}
}

// PendingResponse is a front-desk queue as of a given day.
type PendingResponse struct {
	AsOf     string            `json:"as_of"`
	Bookings []BookingResponse `json:"bookings"`
}

type AuditResponse struct {
	ID        string  `json:"id"`
	Action    string  `json:"action"`
	Note      string  `json:"note"`
	Actor     string  `json:"actor"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

func (a *AuditResponse) FromModel(model model.Audit) {
	a.ID = model.ID
	a.Action = model.Action
	a.Note = model.Note
	a.Actor = model.Actor
	a.Amount = model.Amount
	a.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type AuditTrailResponse struct {
	BookingID string          `json:"booking_id"`
	Entries   []AuditResponse `json:"entries"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}
