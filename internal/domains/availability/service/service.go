package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/internal/domains/availability"
	"hotel/internal/domains/availability/model/dto"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/stay"

	"github.com/rs/zerolog/log"
)

// Availability answers read-only questions about free rooms. It takes no locks, so an
// answer may be stale by the time a booking is created; the lifecycle re-checks.
type Availability interface {
	FindFreeRoom(ctx context.Context, req dto.FreeRoomRequest) (roomDto.RoomResponse, error)
	ListAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	Categories(ctx context.Context) (dto.CategoriesResponse, error)
}

type serviceImpl struct {
	rooms    roomRepo.Room
	bookings bookingRepo.Booking
	otel     otel.Otel
}

func New(rooms roomRepo.Room, bookings bookingRepo.Booking, otel otel.Otel) Availability {
	return &serviceImpl{
		rooms:    rooms,
		bookings: bookings,
		otel:     otel,
	}
}

func (s *serviceImpl) FindFreeRoom(ctx context.Context, req dto.FreeRoomRequest) (res roomDto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability.FindFreeRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	r, err := req.Range()
	if err != nil {
		return res, err
	}

	rooms, bookings, err := s.load(ctx, req.Category, r, roomRepo.ByNumber)
	if err != nil {
		return res, err
	}

	if len(rooms) == 0 {
		return res, failure.NoRoomAvailable("no active rooms in category " + req.Category) // nolint:wrapcheck
	}

	room, ok := availability.Allocate(rooms, bookings, r)
	if !ok {
		return res, failure.NoRoomAvailable("no " + req.Category + " room is free for the requested dates") // nolint:wrapcheck
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) ListAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability.ListAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	r, err := req.Range()
	if err != nil {
		return res, err
	}

	rooms, bookings, err := s.load(ctx, req.Category, r, roomRepo.ByCategoryAndNumber)
	if err != nil {
		return res, err
	}

	res.FromSlots(availability.Classify(rooms, bookings, r), r)

	return res, nil
}

func (s *serviceImpl) Categories(ctx context.Context) (res dto.CategoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability.Categories")
	defer scope.End()
	defer scope.TraceIfError(err)

	rooms, err := s.rooms.GetAll(ctx, roomRepo.ByCategoryAndNumber, roomRepo.ActiveInCategory(""), roomModel.FieldCategory)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room categories")

		return res, fmt.Errorf("failed to get room categories: %w", err)
	}

	res.Categories = []string{}

	for _, room := range rooms {
		if n := len(res.Categories); n == 0 || res.Categories[n-1] != room.Category {
			res.Categories = append(res.Categories, room.Category)
		}
	}

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, category string, r stay.Range, order gDto.QueryParams) ([]roomModel.Room, []bookingModel.Booking, error) {
	category = roomModel.NormalizeCategory(category)

	rooms, err := s.rooms.GetAll(ctx, order, roomRepo.ActiveInCategory(category))
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("failed to get rooms")

		return nil, nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	if len(rooms) == 0 {
		return rooms, nil, nil
	}

	ids := make([]string, len(rooms))
	for i, room := range rooms {
		ids[i] = room.ID
	}

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, bookingRepo.HoldingRooms(ids, r))
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("failed to get bookings")

		return nil, nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return rooms, bookings, nil
}
