package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Number      string  `json:"number"       validate:"notblank,max=10"`
	Category    string  `json:"category"     validate:"notblank,max=50"`
	Capacity    int     `json:"capacity"     validate:"gte=1,lte=20"`
	NightlyRate float64 `json:"nightly_rate" validate:"gt=0"`
	Active      *bool   `json:"active"       validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	now := timezone.Now()

	return model.Room{
		ID:          uuid.NewString(),
		Number:      strings.TrimSpace(c.Number),
		Category:    model.NormalizeCategory(c.Category),
		Capacity:    c.Capacity,
		NightlyRate: shared.RoundMoney(c.NightlyRate),
		Active:      active,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateRoomRequest carries the only administrative edits a room accepts.
type UpdateRoomRequest struct {
	NightlyRate *float64 `db:"nightly_rate" json:"nightly_rate" validate:"omitempty,gt=0"`
	Active      *bool    `db:"active"       json:"active"       validate:"omitempty"`
}

func (u *UpdateRoomRequest) Empty() bool {
	return u.NightlyRate == nil && u.Active == nil
}

type RoomResponse struct {
	ID          string  `json:"id"`
	Number      string  `json:"number"`
	Category    string  `json:"category"`
	Capacity    int     `json:"capacity"`
	NightlyRate float64 `json:"nightly_rate"`
	Active      bool    `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Category = model.Category
	r.Capacity = model.Capacity
	r.NightlyRate = model.NightlyRate
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
