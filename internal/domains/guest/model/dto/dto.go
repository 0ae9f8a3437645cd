package dto

import (
	bookingDto "hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/guest/model"
	"hotel/shared"
	"hotel/shared/constant"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"strings"
	"time"
)

type RegisterGuestRequest struct {
	NationalID  string `json:"national_id" validate:"notblank,max=30"`
	Name        string `json:"name"        validate:"notblank,max=100"`
	Phone       string `json:"phone"       validate:"omitempty,max=20"`
	Email       string `json:"email"       validate:"omitempty,email,max=100"`
	Address     string `json:"address"     validate:"omitempty,max=200"`
	Nationality string `json:"nationality" validate:"omitempty,max=50"`
}

func (r *RegisterGuestRequest) ToModel(id, user string, now time.Time) model.Guest {
	return model.Guest{
		ID:           id,
		NationalID:   strings.TrimSpace(r.NationalID),
		Name:         strings.TrimSpace(r.Name),
		Phone:        strings.TrimSpace(r.Phone),
		Email:        strings.ToLower(strings.TrimSpace(r.Email)),
		Address:      strings.TrimSpace(r.Address),
		Nationality:  strings.TrimSpace(r.Nationality),
		RegisteredAt: now,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type GuestResponse struct {
	ID           string `json:"id"`
	NationalID   string `json:"national_id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	Nationality  string `json:"nationality"`
	RegisteredAt string `json:"registered_at"`
}

func (g *GuestResponse) FromModel(model model.Guest) {
	g.ID = model.ID
	g.NationalID = model.NationalID
	g.Name = model.Name
	g.Phone = model.Phone
	g.Email = model.Email
	g.Address = model.Address
	g.Nationality = model.Nationality
	g.RegisteredAt = timezone.Format(model.RegisteredAt, constant.DateFormat)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}

// HistoryResponse is a guest's stays, newest first. Totals leave out cancelled bookings.
type HistoryResponse struct {
	Guest         GuestResponse                `json:"guest"`
	Bookings      []bookingDto.BookingResponse `json:"bookings"`
	TotalBookings int                          `json:"total_bookings"`
	TotalNights   int                          `json:"total_nights"`
	TotalSpent    float64                      `json:"total_spent"`
}
