package dto

import (
	"hotel/internal/domains/availability"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/shared/stay"
)

type AvailabilityRequest struct {
	Category string `json:"category" validate:"omitempty,max=50"`
	CheckIn  string `json:"checkin"  validate:"required,dateonly"`
	CheckOut string `json:"checkout" validate:"required,dateonly"`
}

func (a *AvailabilityRequest) Range() (stay.Range, error) {
	checkIn, err := stay.ParseDate(a.CheckIn)
	if err != nil {
		return stay.Range{}, err
	}

	checkOut, err := stay.ParseDate(a.CheckOut)
	if err != nil {
		return stay.Range{}, err
	}

	return stay.NewRange(checkIn, checkOut) //nolint:wrapcheck
}

type FreeRoomRequest struct {
	Category string `json:"category" validate:"notblank,max=50"`
	CheckIn  string `json:"checkin"  validate:"required,dateonly"`
	CheckOut string `json:"checkout" validate:"required,dateonly"`
}

func (f *FreeRoomRequest) Range() (stay.Range, error) {
	req := AvailabilityRequest{CheckIn: f.CheckIn, CheckOut: f.CheckOut}

	return req.Range()
}

type SlotResponse struct {
	roomDto.RoomResponse
	Free bool `json:"free"`
}

type AvailabilityResponse struct {
	CheckIn   string         `json:"checkin"`
	CheckOut  string         `json:"checkout"`
	Nights    int            `json:"nights"`
	FreeCount int            `json:"free_count"`
	Rooms     []SlotResponse `json:"rooms"`
}

func (a *AvailabilityResponse) FromSlots(slots []availability.Slot, r stay.Range) {
	a.CheckIn = stay.FormatDate(r.CheckIn)
	a.CheckOut = stay.FormatDate(r.CheckOut)
	a.Nights = r.Nights()

	a.Rooms = make([]SlotResponse, len(slots))
	for i, slot := range slots {
		a.Rooms[i].FromModel(slot.Room)
		a.Rooms[i].Free = slot.Free

		if slot.Free {
			a.FreeCount++
		}
	}
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
