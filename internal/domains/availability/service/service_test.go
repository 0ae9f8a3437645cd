package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/availability/model/dto"
	"hotel/internal/domains/availability/service"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/failure"
)

func newService(t *testing.T) (service.Availability, *roomMocks.MockRoom, *bookingMocks.MockBooking) {
	t.Helper()

	ctrl := gomock.NewController(t)
	rooms := roomMocks.NewMockRoom(ctrl)
	bookings := bookingMocks.NewMockBooking(ctrl)

	return service.New(rooms, bookings, mocks.NewOtel()), rooms, bookings
}

func standardRooms() []roomModel.Room {
	return []roomModel.Room{
		{ID: "r-102", Number: "102", Category: "standard", Capacity: 2, NightlyRate: 50, Active: true},
		{ID: "r-101", Number: "101", Category: "standard", Capacity: 2, NightlyRate: 50, Active: true},
	}
}

func held(roomID string) bookingModel.Booking {
	return bookingModel.Booking{
		RoomID:       roomID,
		CheckInDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Status:       bookingModel.StatusConfirmed,
	}
}

func TestAvailabilityService_FindFreeRoom(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.FreeRoomRequest
		setupMock func(rooms *roomMocks.MockRoom, bookings *bookingMocks.MockBooking)
		wantRoom  string
		wantKind  failure.Kind
	}{
		{
			name: "lowest free number",
			req:  dto.FreeRoomRequest{Category: "Standard", CheckIn: "2024-06-01", CheckOut: "2024-06-03"},
			setupMock: func(rooms *roomMocks.MockRoom, bookings *bookingMocks.MockBooking) {
				rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(standardRooms(), nil)
				bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantRoom: "r-101",
		},
		{
			name: "booked room is skipped",
			req:  dto.FreeRoomRequest{Category: "standard", CheckIn: "2024-06-02", CheckOut: "2024-06-04"},
			setupMock: func(rooms *roomMocks.MockRoom, bookings *bookingMocks.MockBooking) {
				rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(standardRooms(), nil)
				bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]bookingModel.Booking{held("r-101")}, nil)
			},
			wantRoom: "r-102",
		},
		{
			name: "all rooms booked",
			req:  dto.FreeRoomRequest{Category: "standard", CheckIn: "2024-06-01", CheckOut: "2024-06-02"},
			setupMock: func(rooms *roomMocks.MockRoom, bookings *bookingMocks.MockBooking) {
				rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(standardRooms(), nil)
				bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]bookingModel.Booking{held("r-101"), held("r-102")}, nil)
			},
			wantKind: failure.KindNoRoomAvailable,
		},
		{
			name: "unknown category",
			req:  dto.FreeRoomRequest{Category: "penthouse", CheckIn: "2024-06-01", CheckOut: "2024-06-02"},
			setupMock: func(rooms *roomMocks.MockRoom, _ *bookingMocks.MockBooking) {
				rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantKind: failure.KindNoRoomAvailable,
		},
		{
			name:      "zero nights",
			req:       dto.FreeRoomRequest{Category: "standard", CheckIn: "2024-06-01", CheckOut: "2024-06-01"},
			setupMock: func(_ *roomMocks.MockRoom, _ *bookingMocks.MockBooking) {},
			wantKind:  failure.KindInvalidDateRange,
		},
		{
			name: "repository error",
			req:  dto.FreeRoomRequest{Category: "standard", CheckIn: "2024-06-01", CheckOut: "2024-06-02"},
			setupMock: func(rooms *roomMocks.MockRoom, _ *bookingMocks.MockBooking) {
				rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantKind: failure.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, rooms, bookings := newService(t)
			tt.setupMock(rooms, bookings)

			res, err := svc.FindFreeRoom(context.Background(), tt.req)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRoom, res.ID)
		})
	}
}

func TestAvailabilityService_ListAvailability(t *testing.T) {
	svc, rooms, bookings := newService(t)

	rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(standardRooms(), nil).Times(2)
	bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]bookingModel.Booking{held("r-101")}, nil).Times(2)

	req := dto.AvailabilityRequest{CheckIn: "2024-06-02", CheckOut: "2024-06-05"}

	first, err := svc.ListAvailability(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 3, first.Nights)
	assert.Equal(t, 1, first.FreeCount)
	require.Len(t, first.Rooms, 2)
	assert.Equal(t, "101", first.Rooms[0].Number)
	assert.False(t, first.Rooms[0].Free)
	assert.Equal(t, "102", first.Rooms[1].Number)
	assert.True(t, first.Rooms[1].Free)

	second, err := svc.ListAvailability(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAvailabilityService_ListAvailability_NoRooms(t *testing.T) {
	svc, rooms, _ := newService(t)

	rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{}, nil)

	res, err := svc.ListAvailability(context.Background(), dto.AvailabilityRequest{CheckIn: "2024-06-02", CheckOut: "2024-06-05"})

	require.NoError(t, err)
	assert.Empty(t, res.Rooms)
	assert.Zero(t, res.FreeCount)
}

func TestAvailabilityService_Categories(t *testing.T) {
	svc, rooms, _ := newService(t)

	rooms.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any(), roomModel.FieldCategory).
		Return([]roomModel.Room{{Category: "deluxe"}, {Category: "deluxe"}, {Category: "standard"}}, nil)

	res, err := svc.Categories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"deluxe", "standard"}, res.Categories)
}
