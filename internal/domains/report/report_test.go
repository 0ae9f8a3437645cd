package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/report"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/stay"
)

func date(month time.Month, day int) time.Time {
	return time.Date(2024, month, day, 0, 0, 0, 0, time.UTC)
}

func booking(id, roomID, status string, checkIn, checkOut time.Time, total float64) bookingModel.Booking {
	return bookingModel.Booking{
		ID:           id,
		GuestID:      "guest-" + id,
		RoomID:       roomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Nights:       stay.Range{CheckIn: checkIn, CheckOut: checkOut}.Nights(),
		Status:       status,
		Total:        total,
	}
}

var rooms = []roomModel.Room{
	{ID: "r1", Number: "101", Category: "standard", Active: true},
	{ID: "r2", Number: "102", Category: "standard", Active: true},
	{ID: "r3", Number: "201", Category: "suite", Active: true},
	{ID: "r4", Number: "202", Category: "suite", Active: false},
}

func TestOccupancyOf(t *testing.T) {
	bookings := []bookingModel.Booking{
		booking("a", "r1", bookingModel.StatusConfirmed, date(6, 1), date(6, 3), 100),
		booking("b", "r3", bookingModel.StatusInStay, date(5, 30), date(6, 2), 300),
		booking("c", "r2", bookingModel.StatusCancelled, date(6, 1), date(6, 2), 50),
		booking("d", "r4", bookingModel.StatusConfirmed, date(6, 1), date(6, 2), 80),
		booking("e", "r2", bookingModel.StatusFinalized, date(5, 30), date(6, 1), 50),
	}

	tests := []struct {
		name     string
		day      time.Time
		occupied int
		rate     float64
	}{
		{name: "first night", day: date(6, 1), occupied: 2, rate: 66.67},
		{name: "checkout day is free", day: date(6, 2), occupied: 1, rate: 33.33},
		{name: "after every stay", day: date(6, 3), occupied: 0, rate: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occupancy := report.OccupancyOf(rooms, bookings, tt.day)

			assert.Equal(t, 3, occupancy.ActiveRooms)
			assert.Equal(t, tt.occupied, occupancy.OccupiedRooms)
			assert.InDelta(t, tt.rate, occupancy.Rate, 0.001)
		})
	}
}

func TestOccupancyOf_NoRooms(t *testing.T) {
	occupancy := report.OccupancyOf(nil, nil, date(6, 1))

	assert.Zero(t, occupancy.ActiveRooms)
	assert.Zero(t, occupancy.Rate)
}

func TestOccupancyByCategory(t *testing.T) {
	bookings := []bookingModel.Booking{
		booking("a", "r1", bookingModel.StatusConfirmed, date(6, 1), date(6, 3), 100),
		booking("b", "r3", bookingModel.StatusInStay, date(5, 30), date(6, 2), 300),
	}

	res := report.OccupancyByCategory(rooms, bookings, date(6, 1))

	require.Len(t, res, 2)
	assert.Equal(t, report.Occupancy{Category: "standard", ActiveRooms: 2, OccupiedRooms: 1, Rate: 50}, res[0])
	assert.Equal(t, report.Occupancy{Category: "suite", ActiveRooms: 1, OccupiedRooms: 1, Rate: 100}, res[1])
}

func TestRevenue(t *testing.T) {
	bookings := []bookingModel.Booking{
		booking("a", "r1", bookingModel.StatusFinalized, date(6, 1), date(6, 3), 115),
		booking("b", "r2", bookingModel.StatusConfirmed, date(6, 30), date(7, 2), 100.1),
		booking("c", "r3", bookingModel.StatusCancelled, date(6, 10), date(6, 12), 600),
		booking("d", "r1", bookingModel.StatusConfirmed, date(7, 1), date(7, 3), 100),
		booking("e", "r1", bookingModel.StatusInStay, date(5, 31), date(6, 2), 50),
	}

	count, total := report.Revenue(bookings, report.Month(date(6, 15)))

	assert.Equal(t, 2, count)
	assert.InDelta(t, 215.1, total, 0.001)
}

func TestTotalsByGuest(t *testing.T) {
	a := booking("a", "r1", bookingModel.StatusFinalized, date(6, 1), date(6, 3), 115)
	b := booking("b", "r2", bookingModel.StatusConfirmed, date(6, 10), date(6, 11), 50)
	c := booking("c", "r3", bookingModel.StatusCancelled, date(6, 20), date(6, 25), 500)
	b.GuestID, c.GuestID = a.GuestID, a.GuestID

	totals := report.TotalsByGuest([]bookingModel.Booking{a, b, c})

	require.Len(t, totals, 1)
	assert.Equal(t, report.GuestTotal{Bookings: 2, Nights: 3, Spent: 165}, totals[a.GuestID])
}

func TestStatusCounts(t *testing.T) {
	counts := report.StatusCounts([]bookingModel.Booking{
		{Status: bookingModel.StatusConfirmed},
		{Status: bookingModel.StatusConfirmed},
		{Status: bookingModel.StatusCancelled},
	})

	assert.Equal(t, map[string]int{
		bookingModel.StatusConfirmed: 2,
		bookingModel.StatusInStay:    0,
		bookingModel.StatusFinalized: 0,
		bookingModel.StatusCancelled: 1,
	}, counts)
}

func TestMonthAndWindow(t *testing.T) {
	month := report.Month(time.Date(2024, 2, 17, 15, 0, 0, 0, time.UTC))

	assert.Equal(t, date(2, 1), month.CheckIn)
	assert.Equal(t, date(3, 1), month.CheckOut)
	assert.Equal(t, 29, month.Nights())

	window := report.Window(time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC), 2)

	assert.Equal(t, date(6, 1), window.CheckIn)
	assert.Equal(t, date(6, 3), window.CheckOut)
}
