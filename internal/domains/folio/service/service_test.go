package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/folio/model/dto"
	"hotel/internal/domains/folio/service"
	guestMocks "hotel/internal/domains/guest/mocks"
	guestModel "hotel/internal/domains/guest/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/event"
	"hotel/shared/failure"
	"hotel/shared/timezone"
)

const bookingID = "0b6d2c8e-5f4a-4e1b-8c3d-7a9f1e2d3c4b"

var now = time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC)

type fixture struct {
	svc     service.Folio
	details *bookingMocks.MockDetail
	audits  *bookingMocks.MockAudit
	rooms   *roomMocks.MockRoom
	guests  *guestMocks.MockGuest
	storage *s3Mocks.MockS3
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		details: bookingMocks.NewMockDetail(ctrl),
		audits:  bookingMocks.NewMockAudit(ctrl),
		rooms:   roomMocks.NewMockRoom(ctrl),
		guests:  guestMocks.NewMockGuest(ctrl),
		storage: s3Mocks.NewMockS3(ctrl),
	}

	f.svc = service.New(f.details, f.audits, f.rooms, f.guests, f.storage, mocks.NewOtel(), timezone.FixedClock{At: now})

	return f
}

var finalized = bookingModel.BookingDetail{
	Booking: bookingModel.Booking{
		ID:               bookingID,
		ConfirmationCode: "RES20240601-A1B2C3",
		GuestID:          "guest-1",
		RoomID:           "room-101",
		CheckInDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate:     time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Nights:           2,
		Total:            115,
		Status:           bookingModel.StatusFinalized,
	},
	RoomNumber: "101",
	GuestName:  "Ada",
}

func (f *fixture) expectLoad() {
	f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: "room-101", Number: "101", Category: "standard", NightlyRate: 50}, nil)
	f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestModel.Guest{ID: "guest-1", Name: "Ada"}, nil)
	f.audits.EXPECT().
		GetAll(gomock.Any(), bookingRepo.AuditTrail, bookingRepo.ForBooking(bookingID)).
		Return([]bookingModel.Audit{
			{ID: "a1", BookingID: bookingID, Action: bookingModel.ActionCreated},
			{ID: "a2", BookingID: bookingID, Action: bookingModel.ActionCheckedIn},
			{ID: "a3", BookingID: bookingID, Action: bookingModel.ActionCheckedOut, Amount: 15},
		}, nil)
}

func TestFolioService_Archive(t *testing.T) {
	f := newFixture(t)

	f.details.EXPECT().Get(gomock.Any(), bookingRepo.ByID(bookingID)).Return(finalized, nil)
	f.expectLoad()
	f.storage.EXPECT().
		UploadBytes(gomock.Any(), "folios/2024", "RES20240601-A1B2C3.json", "application/json", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, _ string, data []byte) (string, error) {
			var folio dto.Folio
			require.NoError(t, json.Unmarshal(data, &folio))

			assert.Equal(t, "RES20240601-A1B2C3", folio.Booking.ConfirmationCode)
			assert.Equal(t, "101", folio.Room.Number)
			assert.Equal(t, "Ada", folio.Guest.Name)
			assert.Len(t, folio.Audit, 3)
			assert.Contains(t, folio.ArchivedAt, "2024-06-03")

			return "https://cdn.example.com/folios/2024/RES20240601-A1B2C3.json", nil
		})

	res, err := f.svc.Archive(context.Background(), bookingID)

	require.NoError(t, err)
	assert.Equal(t, bookingID, res.BookingID)
	assert.Equal(t, "https://cdn.example.com/folios/2024/RES20240601-A1B2C3.json", res.URL)
}

func TestFolioService_ArchiveRejects(t *testing.T) {
	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		f.details.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.BookingDetail{}, nil)

		_, err := f.svc.Archive(context.Background(), bookingID)

		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})

	t.Run("booking still held", func(t *testing.T) {
		f := newFixture(t)

		held := finalized
		held.Status = bookingModel.StatusInStay

		f.details.EXPECT().Get(gomock.Any(), gomock.Any()).Return(held, nil)

		_, err := f.svc.Archive(context.Background(), bookingID)

		assert.True(t, failure.IsKind(err, failure.KindInvalidState))
	})

	t.Run("upload failure", func(t *testing.T) {
		f := newFixture(t)

		f.details.EXPECT().Get(gomock.Any(), gomock.Any()).Return(finalized, nil)
		f.expectLoad()
		f.storage.EXPECT().UploadBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bucket missing"))

		_, err := f.svc.Archive(context.Background(), bookingID)

		require.Error(t, err)
	})
}

func TestFolioService_Handle(t *testing.T) {
	message := func(action string) event.Message {
		body, err := event.Encode(bookingModel.Event{BookingID: bookingID, Action: action})
		require.NoError(t, err)

		return event.Message{Key: []byte(bookingID), Value: body}
	}

	t.Run("archives checked out bookings", func(t *testing.T) {
		f := newFixture(t)

		f.details.EXPECT().Get(gomock.Any(), gomock.Any()).Return(finalized, nil)
		f.expectLoad()
		f.storage.EXPECT().UploadBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("url", nil)

		require.NoError(t, f.svc.Handle(context.Background(), message(bookingModel.ActionCheckedOut)))
	})

	t.Run("skips open bookings", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.svc.Handle(context.Background(), message(bookingModel.ActionCheckedIn)))
		require.NoError(t, f.svc.Handle(context.Background(), message(bookingModel.ActionCreated)))
	})

	t.Run("malformed payload", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Handle(context.Background(), event.Message{Value: []byte("{")})

		assert.ErrorIs(t, err, event.ErrMalformed)
		assert.False(t, event.Retryable(err), "a payload that cannot be decoded is never redelivered")
	})
}
