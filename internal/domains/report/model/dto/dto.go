package dto

import (
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	guestModel "hotel/internal/domains/guest/model"
	"hotel/internal/domains/report"
	"hotel/shared"
	"hotel/shared/stay"
	"time"
)

type OccupancyResponse struct {
	Date          string  `json:"date"`
	ActiveRooms   int     `json:"active_rooms"`
	OccupiedRooms int     `json:"occupied_rooms"`
	Rate          float64 `json:"rate"`
}

func (o *OccupancyResponse) FromOccupancy(occupancy report.Occupancy, day time.Time) {
	o.Date = stay.FormatDate(day)
	o.ActiveRooms = occupancy.ActiveRooms
	o.OccupiedRooms = occupancy.OccupiedRooms
	o.Rate = occupancy.Rate
}

type CategoryOccupancy struct {
	Category      string  `json:"category"`
	ActiveRooms   int     `json:"active_rooms"`
	OccupiedRooms int     `json:"occupied_rooms"`
	Rate          float64 `json:"rate"`
}

type CategoryOccupancyResponse struct {
	Date       string              `json:"date"`
	Categories []CategoryOccupancy `json:"categories"`
}

func (c *CategoryOccupancyResponse) FromOccupancies(occupancies []report.Occupancy, day time.Time) {
	c.Date = stay.FormatDate(day)

	c.Categories = make([]CategoryOccupancy, len(occupancies))
	for i, occupancy := range occupancies {
		c.Categories[i] = CategoryOccupancy{
			Category:      occupancy.Category,
			ActiveRooms:   occupancy.ActiveRooms,
			OccupiedRooms: occupancy.OccupiedRooms,
			Rate:          occupancy.Rate,
		}
	}
}

type RevenueResponse struct {
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

type GuestTotalResponse struct {
	GuestID    string  `json:"guest_id"`
	Name       string  `json:"name"`
	NationalID string  `json:"national_id"`
	Bookings   int     `json:"bookings"`
	Nights     int     `json:"nights"`
	Spent      float64 `json:"spent"`
}

type GuestTotalsResponse struct {
	Guests    []GuestTotalResponse `json:"guests"`
	TotalPage int                  `json:"total_page"`
	TotalData int                  `json:"total_data"`
}

func (g *GuestTotalsResponse) FromModels(guests []guestModel.Guest, totals map[string]report.GuestTotal, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Guests = make([]GuestTotalResponse, len(guests))
	for i, guest := range guests {
		total := totals[guest.ID]

		g.Guests[i] = GuestTotalResponse{
			GuestID:    guest.ID,
			Name:       guest.Name,
			NationalID: guest.NationalID,
			Bookings:   total.Bookings,
			Nights:     total.Nights,
			Spent:      total.Spent,
		}
	}
}

type StatusBreakdownResponse struct {
	Since    string         `json:"since"`
	Total    int            `json:"total"`
	Statuses map[string]int `json:"statuses"`
}

type UpcomingResponse struct {
	From     string                       `json:"from"`
	To       string                       `json:"to"`
	Bookings []bookingDto.BookingResponse `json:"bookings"`
}

func (u *UpcomingResponse) FromDetails(details []bookingModel.BookingDetail, r stay.Range) {
	u.From = stay.FormatDate(r.CheckIn)
	u.To = stay.FormatDate(r.CheckOut)

	u.Bookings = make([]bookingDto.BookingResponse, len(details))
	for i, detail := range details {
		u.Bookings[i].FromDetail(detail)
	}
}

// DailySummaryResponse is the front-desk dashboard for one day. MonthRevenue covers
// the calendar month of Date.
type DailySummaryResponse struct {
	Date          string  `json:"date"`
	ActiveRooms   int     `json:"active_rooms"`
	OccupiedRooms int     `json:"occupied_rooms"`
	OccupancyRate float64 `json:"occupancy_rate"`
	Arrivals      int     `json:"arrivals"`
	Departures    int     `json:"departures"`
	MonthRevenue  float64 `json:"month_revenue"`
}
