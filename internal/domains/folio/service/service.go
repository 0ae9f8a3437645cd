package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/s3"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/folio/model/dto"
	guestModel "hotel/internal/domains/guest/model"
	guestRepo "hotel/internal/domains/guest/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/event"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"path"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	folioDirectory   = "folios"
	folioContentType = "application/json"
)

// Folio archives closed bookings to object storage.
type Folio interface {
	Archive(ctx context.Context, bookingID string) (dto.ArchiveResponse, error)
	Handle(ctx context.Context, message event.Message) error
}

type serviceImpl struct {
	details bookingRepo.Detail
	audits  bookingRepo.Audit
	rooms   roomRepo.Room
	guests  guestRepo.Guest
	storage s3.S3
	otel    otel.Otel
	clock   timezone.Clock
}

func New(
	details bookingRepo.Detail,
	audits bookingRepo.Audit,
	rooms roomRepo.Room,
	guests guestRepo.Guest,
	storage s3.S3,
	otel otel.Otel,
	clock timezone.Clock,
) Folio {
	return &serviceImpl{
		details: details,
		audits:  audits,
		rooms:   rooms,
		guests:  guests,
		storage: storage,
		otel:    otel,
		clock:   clock,
	}
}

// Handle archives the booking behind a checked_out or cancelled event and skips
// every other action.
func (s *serviceImpl) Handle(ctx context.Context, message event.Message) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".Folio.Handle")
	defer scope.End()
	defer scope.TraceIfError(err)

	evt, err := event.Decode[bookingModel.Event](message)
	if err != nil {
		log.Error().Err(err).Str("key", string(message.Key)).Msg("failed to decode booking event")

		return err //nolint:wrapcheck
	}

	if !evt.Archivable() {
		log.Debug().Str("booking_id", evt.BookingID).Str("action", evt.Action).Msg("skipping booking event")

		return nil
	}

	res, err := s.Archive(ctx, evt.BookingID)
	if err != nil {
		return err
	}

	log.Info().Str("booking_id", evt.BookingID).Str("url", res.URL).Msg("folio archived")

	return nil
}

// Archive writes folios/<year of checkout>/<confirmation code>.json. Writing the same
// booking twice overwrites the object.
func (s *serviceImpl) Archive(ctx context.Context, bookingID string) (res dto.ArchiveResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Folio.Archive")
	defer scope.End()
	defer scope.TraceIfError(err)

	if uuid.Validate(bookingID) != nil {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	booking, err := s.details.Get(ctx, bookingRepo.ByID(bookingID))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get booking for folio")

		return res, fmt.Errorf("failed to get booking for folio: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if !booking.Terminal() {
		return res, failure.InvalidState("only finalized or cancelled bookings are archived") // nolint:wrapcheck
	}

	room, guest, audits, err := s.load(ctx, booking)
	if err != nil {
		return res, err
	}

	var folio dto.Folio
	folio.FromModels(booking, room, guest, audits, s.clock.Now())

	body, err := event.Encode(folio)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to encode folio")

		return res, err //nolint:wrapcheck
	}

	directory := path.Join(folioDirectory, strconv.Itoa(booking.CheckOutDate.Year()))

	url, err := s.storage.UploadBytes(ctx, directory, booking.ConfirmationCode+".json", folioContentType, body)
	if err != nil {
		return res, fmt.Errorf("failed to upload folio: %w", err)
	}

	res.BookingID = booking.ID
	res.URL = url

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, booking bookingModel.BookingDetail) (roomModel.Room, guestModel.Guest, []bookingModel.Audit, error) {
	room, err := s.rooms.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("room_id", booking.RoomID).Msg("failed to get room for folio")

		return room, guestModel.Guest{}, nil, fmt.Errorf("failed to get room for folio: %w", err)
	}

	guest, err := s.guests.Get(ctx, shared.FilterByID(booking.GuestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("guest_id", booking.GuestID).Msg("failed to get guest for folio")

		return room, guest, nil, fmt.Errorf("failed to get guest for folio: %w", err)
	}

	audits, err := s.audits.GetAll(ctx, bookingRepo.AuditTrail, bookingRepo.ForBooking(booking.ID))
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to get audit trail for folio")

		return room, guest, nil, fmt.Errorf("failed to get audit trail for folio: %w", err)
	}

	return room, guest, audits, nil
}
