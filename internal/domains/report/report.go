package report

import (
	bookingModel "hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/stay"
	"sort"
	"time"
)

// Occupancy is the share of active rooms held on one night.
type Occupancy struct {
	Category      string
	ActiveRooms   int
	OccupiedRooms int
	Rate          float64
}

// Occupied returns the ids of the rooms held by a confirmed or in-stay booking on
// the night of day.
func Occupied(bookings []bookingModel.Booking, day time.Time) map[string]bool {
	day = stay.Date(day)
	held := make(map[string]bool)

	for _, booking := range bookings {
		if booking.Holding() && booking.Range().Covers(day) {
			held[booking.RoomID] = true
		}
	}

	return held
}

// Rate is occupied over active as a percentage rounded to cents. No rooms means 0.
func Rate(occupied, active int) float64 {
	if active == 0 {
		return 0
	}

	return shared.RoundMoney(float64(occupied) / float64(active) * 100) //nolint:mnd
}

// OccupancyOf measures active rooms against the bookings covering day. Bookings on
// inactive rooms are ignored.
func OccupancyOf(rooms []roomModel.Room, bookings []bookingModel.Booking, day time.Time) Occupancy {
	held := Occupied(bookings, day)
	res := Occupancy{}

	for _, room := range rooms {
		if !room.Active {
			continue
		}

		res.ActiveRooms++

		if held[room.ID] {
			res.OccupiedRooms++
		}
	}

	res.Rate = Rate(res.OccupiedRooms, res.ActiveRooms)

	return res
}

// OccupancyByCategory is OccupancyOf per room category, ordered by category.
func OccupancyByCategory(rooms []roomModel.Room, bookings []bookingModel.Booking, day time.Time) []Occupancy {
	grouped := make(map[string][]roomModel.Room)
	for _, room := range rooms {
		grouped[room.Category] = append(grouped[room.Category], room)
	}

	res := make([]Occupancy, 0, len(grouped))

	for category, members := range grouped {
		occupancy := OccupancyOf(members, bookings, day)
		if occupancy.ActiveRooms == 0 {
			continue
		}

		occupancy.Category = category
		res = append(res, occupancy)
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Category < res[j].Category
	})

	return res
}

// Revenue sums the totals of the non-cancelled bookings checking in within r.
func Revenue(bookings []bookingModel.Booking, r stay.Range) (count int, total float64) {
	for _, booking := range bookings {
		if booking.Status == bookingModel.StatusCancelled || !r.Covers(booking.CheckInDate) {
			continue
		}

		count++
		total += booking.Total
	}

	return count, shared.RoundMoney(total)
}

// GuestTotal is a guest's billed activity. Cancelled bookings never count.
type GuestTotal struct {
	Bookings int
	Nights   int
	Spent    float64
}

func TotalsByGuest(bookings []bookingModel.Booking) map[string]GuestTotal {
	totals := make(map[string]GuestTotal)

	for _, booking := range bookings {
		if booking.Status == bookingModel.StatusCancelled {
			continue
		}

		total := totals[booking.GuestID]
		total.Bookings++
		total.Nights += booking.Nights
		total.Spent = shared.RoundMoney(total.Spent + booking.Total)
		totals[booking.GuestID] = total
	}

	return totals
}

// StatusCounts counts bookings per status. Every status is present, even at zero.
func StatusCounts(bookings []bookingModel.Booking) map[string]int {
	counts := map[string]int{
		bookingModel.StatusConfirmed: 0,
		bookingModel.StatusInStay:    0,
		bookingModel.StatusFinalized: 0,
		bookingModel.StatusCancelled: 0,
	}

	for _, booking := range bookings {
		counts[booking.Status]++
	}

	return counts
}

// Month is the range of the calendar month containing day.
func Month(day time.Time) stay.Range {
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)

	return stay.Range{CheckIn: start, CheckOut: start.AddDate(0, 1, 0)}
}

// Window is the range of days starting at from.
func Window(from time.Time, days int) stay.Range {
	from = stay.Date(from)

	return stay.Range{CheckIn: from, CheckOut: from.AddDate(0, 0, days)}
}
