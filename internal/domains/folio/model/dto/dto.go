package dto

import (
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	guestModel "hotel/internal/domains/guest/model"
	guestDto "hotel/internal/domains/guest/model/dto"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/shared/constant"
	"hotel/shared/timezone"
	"time"
)

// Folio is the closed record of one booking as written to the archive.
type Folio struct {
	ArchivedAt string                     `json:"archived_at"`
	Booking    bookingDto.BookingResponse `json:"booking"`
	Room       roomDto.RoomResponse       `json:"room"`
	Guest      guestDto.GuestResponse     `json:"guest"`
	Audit      []bookingDto.AuditResponse `json:"audit"`
}

func (f *Folio) FromModels(
	booking bookingModel.BookingDetail,
	room roomModel.Room,
	guest guestModel.Guest,
	audits []bookingModel.Audit,
	archivedAt time.Time,
) {
	f.ArchivedAt = timezone.Format(archivedAt, constant.DateFormat)
	f.Booking.FromDetail(booking)
	f.Room.FromModel(room)
	f.Guest.FromModel(guest)

	f.Audit = make([]bookingDto.AuditResponse, len(audits))
	for i, audit := range audits {
		f.Audit[i].FromModel(audit)
	}
}

type ArchiveResponse struct {
	BookingID string `json:"booking_id"`
	URL       string `json:"url"`
}
