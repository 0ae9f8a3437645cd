// Package availability decides which rooms are free for a stay. Allocate and Classify
// are pure so the booking lifecycle can run them on rows it has locked.
package availability

import (
	bookingModel "hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/stay"
	"slices"
	"strconv"
	"strings"
)

// Slot is one room of a listing and whether it is free for the requested range.
type Slot struct {
	Room roomModel.Room
	Free bool
}

// Allocate returns the free room with the lowest number, ties broken by id.
func Allocate(rooms []roomModel.Room, bookings []bookingModel.Booking, r stay.Range) (roomModel.Room, bool) {
	held := heldRooms(bookings, r)

	for _, room := range SortByNumber(rooms) {
		if !held[room.ID] {
			return room, true
		}
	}

	return roomModel.Room{}, false
}

// Classify marks every room free or taken, ordered by category then number.
func Classify(rooms []roomModel.Room, bookings []bookingModel.Booking, r stay.Range) []Slot {
	held := heldRooms(bookings, r)

	sorted := slices.Clone(rooms)
	slices.SortStableFunc(sorted, func(a, b roomModel.Room) int {
		if c := strings.Compare(a.Category, b.Category); c != 0 {
			return c
		}

		return compareRooms(a, b)
	})

	slots := make([]Slot, len(sorted))
	for i, room := range sorted {
		slots[i] = Slot{Room: room, Free: !held[room.ID]}
	}

	return slots
}

// SortByNumber returns a copy of rooms ordered by number, numerically when both numbers
// are integers, then by id.
func SortByNumber(rooms []roomModel.Room) []roomModel.Room {
	sorted := slices.Clone(rooms)
	slices.SortStableFunc(sorted, compareRooms)

	return sorted
}

func heldRooms(bookings []bookingModel.Booking, r stay.Range) map[string]bool {
	held := make(map[string]bool, len(bookings))

	for _, b := range bookings {
		if b.Holding() && b.Range().Overlaps(r) {
			held[b.RoomID] = true
		}
	}

	return held
}

func compareRooms(a, b roomModel.Room) int {
	if c := compareNumbers(a.Number, b.Number); c != 0 {
		return c
	}

	return strings.Compare(a.ID, b.ID)
}

func compareNumbers(a, b string) int {
	x, errX := strconv.Atoi(a)
	y, errY := strconv.Atoi(b)

	switch {
	case errX == nil && errY == nil:
		return x - y
	case errX == nil:
		return -1
	case errY == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
