package service_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	pgMocks "hotel/infras/postgres/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/service"
	guestMocks "hotel/internal/domains/guest/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	eventMocks "hotel/shared/event/mocks"
	"hotel/shared/failure"
	"hotel/shared/timezone"
)

const guestID = "8d1f7a52-0b7e-4c5e-9a51-4f2d7c9e6b10"

var now = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	svc     service.Booking
	txr     *pgMocks.MockTransactor
	repo    *bookingMocks.MockBooking
	details *bookingMocks.MockDetail
	audits  *bookingMocks.MockAudit
	rooms   *roomMocks.MockRoom
	guests  *guestMocks.MockGuest
	bus     *eventMocks.MockBus
	cache   *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := newStrictFixture(t)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

// newStrictFixture leaves every cache call to the test.
func newStrictFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		txr:     pgMocks.NewMockTransactor(ctrl),
		repo:    bookingMocks.NewMockBooking(ctrl),
		details: bookingMocks.NewMockDetail(ctrl),
		audits:  bookingMocks.NewMockAudit(ctrl),
		rooms:   roomMocks.NewMockRoom(ctrl),
		guests:  guestMocks.NewMockGuest(ctrl),
		bus:     eventMocks.NewMockBus(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.txr, f.repo, f.details, f.audits, f.rooms, f.guests, f.bus, cfg, f.cache, mocks.NewOtel(), timezone.FixedClock{At: now})

	return f
}

// runInline executes every transaction body directly.
func (f *fixture) runInline() {
	f.txr.EXPECT().
		WithinTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		}).
		AnyTimes()
}

func staffContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
}

func date(month time.Month, day int) time.Time {
	return time.Date(2024, month, day, 0, 0, 0, 0, time.UTC)
}

var room101 = roomModel.Room{ID: "room-101", Number: "101", Category: "standard", Capacity: 2, NightlyRate: 50, Active: true}

func scenarioRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		GuestID:    guestID,
		Category:   "Standard",
		CheckIn:    "2024-06-01",
		CheckOut:   "2024-06-03",
		GuestCount: 2,
		Notes:      "late arrival",
	}
}

func TestBookingService_Create(t *testing.T) {
	f := newFixture(t)
	f.runInline()

	f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.rooms.EXPECT().
		GetAllForUpdateTx(gomock.Any(), gomock.Any(), roomRepo.ByNumber, roomRepo.ActiveInCategory("standard")).
		Return([]roomModel.Room{room101}, nil)
	f.repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	var inserted model.Booking

	f.repo.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
			inserted = b

			return nil
		})
	f.audits.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, a model.Audit) error {
			assert.Equal(t, model.ActionCreated, a.Action)
			assert.Equal(t, "late arrival", a.Note)
			assert.Equal(t, "staff-1", a.Actor)
			assert.Equal(t, inserted.ID, a.BookingID)

			return nil
		})
	f.bus.EXPECT().
		Publish(gomock.Any(), constant.DefaultEventTopic, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, key string, payload any) error {
			evt, ok := payload.(model.Event)
			require.True(t, ok)
			assert.Equal(t, inserted.ID, key)
			assert.Equal(t, model.ActionCreated, evt.Action)
			assert.Equal(t, model.StatusConfirmed, evt.Status)
			assert.Equal(t, "staff-1", evt.Actor)

			return nil
		})

	res, err := f.svc.Create(staffContext(), scenarioRequest())

	require.NoError(t, err)
	assert.Equal(t, 2, res.Nights)
	assert.InDelta(t, 100.0, res.Total, 0.001)
	assert.Equal(t, model.StatusConfirmed, res.Status)
	assert.Equal(t, "room-101", res.RoomID)
	assert.Equal(t, "101", res.RoomNumber)
	assert.Equal(t, "2024-06-01", res.CheckIn)
	assert.Equal(t, "2024-06-03", res.CheckOut)
	assert.Regexp(t, regexp.MustCompile(`^RES20240601-[0-9A-F]{6}$`), res.ConfirmationCode)
	assert.Nil(t, res.CheckInActualAt)
	assert.Equal(t, res.ConfirmationCode, inserted.ConfirmationCode)
}

func TestBookingService_CreateFailures(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(req *dto.CreateBookingRequest)
		setupMock func(f *fixture)
		wantKind  failure.Kind
	}{
		{
			name:      "zero nights",
			mutate:    func(req *dto.CreateBookingRequest) { req.CheckOut = req.CheckIn },
			setupMock: func(_ *fixture) {},
			wantKind:  failure.KindInvalidDateRange,
		},
		{
			name:      "checkout before checkin",
			mutate:    func(req *dto.CreateBookingRequest) { req.CheckOut = "2024-05-30" },
			setupMock: func(_ *fixture) {},
			wantKind:  failure.KindInvalidDateRange,
		},
		{
			name:      "too many guests",
			mutate:    func(req *dto.CreateBookingRequest) { req.GuestCount = 7 },
			setupMock: func(_ *fixture) {},
			wantKind:  failure.KindInvalidInput,
		},
		{
			name:   "unknown guest",
			mutate: func(_ *dto.CreateBookingRequest) {},
			setupMock: func(f *fixture) {
				f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantKind: failure.KindNotFound,
		},
		{
			name:   "overlapping booking on the only room",
			mutate: func(_ *dto.CreateBookingRequest) {},
			setupMock: func(f *fixture) {
				f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.rooms.EXPECT().GetAllForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{room101}, nil)
				f.repo.EXPECT().
					GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{{ID: "b-1", RoomID: "room-101", CheckInDate: date(6, 2), CheckOutDate: date(6, 4), Status: model.StatusConfirmed}}, nil)
			},
			wantKind: failure.KindNoRoomAvailable,
		},
		{
			name:   "no active rooms in category",
			mutate: func(req *dto.CreateBookingRequest) { req.Category = "suite" },
			setupMock: func(f *fixture) {
				f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.rooms.EXPECT().GetAllForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), roomRepo.ActiveInCategory("suite")).Return(nil, nil)
			},
			wantKind: failure.KindNoRoomAvailable,
		},
		{
			name:   "no room large enough",
			mutate: func(req *dto.CreateBookingRequest) { req.GuestCount = 3 },
			setupMock: func(f *fixture) {
				f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.rooms.EXPECT().GetAllForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{room101}, nil)
			},
			wantKind: failure.KindNoRoomAvailable,
		},
		{
			name:   "exclusion constraint backstop",
			mutate: func(_ *dto.CreateBookingRequest) {},
			setupMock: func(f *fixture) {
				f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.rooms.EXPECT().GetAllForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{room101}, nil)
				f.repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(fmt.Errorf("failed to insert data (booking): %w", &pq.Error{Code: "23P01"}))
			},
			wantKind: failure.KindConflictRetry,
		},
		{
			name:   "confirmation code collision",
			mutate: func(_ *dto.CreateBookingRequest) {},
			setupMock: func(f *fixture) {
				f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.rooms.EXPECT().GetAllForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{room101}, nil)
				f.repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505", Constraint: "bookings_confirmation_code_key"})
			},
			wantKind: failure.KindConflictRetry,
		},
		{
			name:   "lock error",
			mutate: func(_ *dto.CreateBookingRequest) {},
			setupMock: func(f *fixture) {
				f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.rooms.EXPECT().GetAllForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			wantKind: failure.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.runInline()
			tt.setupMock(f)

			req := scenarioRequest()
			tt.mutate(&req)

			_, err := f.svc.Create(staffContext(), req)

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, failure.GetKind(err))
		})
	}
}

func TestBookingService_CreateSerializationFailure(t *testing.T) {
	f := newFixture(t)

	f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.txr.EXPECT().
		WithinTransaction(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("failed to commit transaction: %w", &pq.Error{Code: "40001"}))

	_, err := f.svc.Create(staffContext(), scenarioRequest())

	require.Error(t, err)
	assert.Equal(t, failure.KindConflictRetry, failure.GetKind(err))
}

func TestBookingService_CreateSkipsRoomsTooSmall(t *testing.T) {
	f := newFixture(t)
	f.runInline()

	family := roomModel.Room{ID: "room-103", Number: "103", Category: "standard", Capacity: 4, NightlyRate: 80, Active: true}

	f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.rooms.EXPECT().GetAllForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{room101, family}, nil)
	f.repo.EXPECT().
		GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), repository.HoldingRooms([]string{"room-103"}, mustRange(t, date(6, 1), date(6, 3)))).
		Return(nil, nil)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.audits.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.bus.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	req := scenarioRequest()
	req.GuestCount = 3

	res, err := f.svc.Create(staffContext(), req)

	require.NoError(t, err)
	assert.Equal(t, "103", res.RoomNumber)
	assert.InDelta(t, 160.0, res.Total, 0.001)
}

func TestBookingService_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		checkIn  time.Time
		run      func(svc service.Booking, id string) (dto.BookingResponse, error)
		wantKind failure.Kind
		want     string
	}{
		{
			name:    "check in confirmed",
			status:  model.StatusConfirmed,
			checkIn: date(6, 1),
			run: func(svc service.Booking, id string) (dto.BookingResponse, error) {
				return svc.CheckIn(staffContext(), id, dto.CheckInRequest{})
			},
			want: model.StatusInStay,
		},
		{
			name:    "check in after the booked check-out date",
			status:  model.StatusConfirmed,
			checkIn: date(5, 28),
			run: func(svc service.Booking, id string) (dto.BookingResponse, error) {
				return svc.CheckIn(staffContext(), id, dto.CheckInRequest{})
			},
			want: model.StatusInStay,
		},
		{
			name:    "check in before due date",
			status:  model.StatusConfirmed,
			checkIn: date(6, 2),
			run: func(svc service.Booking, id string) (dto.BookingResponse, error) {
				return svc.CheckIn(staffContext(), id, dto.CheckInRequest{})
			},
			wantKind: failure.KindInvalidState,
		},
		{
			name:    "check in twice",
			status:  model.StatusInStay,
			checkIn: date(6, 1),
			run: func(svc service.Booking, id string) (dto.BookingResponse, error) {
				return svc.CheckIn(staffContext(), id, dto.CheckInRequest{})
			},
			wantKind: failure.KindInvalidState,
		},
		{
			name:    "check out confirmed",
			status:  model.StatusConfirmed,
			checkIn: date(6, 1),
			run: func(svc service.Booking, id string) (dto.BookingResponse, error) {
				return svc.CheckOut(staffContext(), id, dto.CheckOutRequest{})
			},
			wantKind: failure.KindInvalidState,
		},
		{
			name:    "cancel confirmed",
			status:  model.StatusConfirmed,
			checkIn: date(6, 5),
			run: func(svc service.Booking, id string) (dto.BookingResponse, error) {
				return svc.Cancel(staffContext(), id, dto.CancelRequest{Reason: "guest request"})
			},
			want: model.StatusCancelled,
		},
		{
			name:    "cancel in stay",
			status:  model.StatusInStay,
			checkIn: date(6, 1),
			run: func(svc service.Booking, id string) (dto.BookingResponse, error) {
				return svc.Cancel(staffContext(), id, dto.CancelRequest{})
			},
			wantKind: failure.KindInvalidState,
		},
		{
			name:    "cancel cancelled",
			status:  model.StatusCancelled,
			checkIn: date(6, 1),
			run: func(svc service.Booking, id string) (dto.BookingResponse, error) {
				return svc.Cancel(staffContext(), id, dto.CancelRequest{})
			},
			wantKind: failure.KindTerminalState,
		},
		{
			name:    "check out finalized",
			status:  model.StatusFinalized,
			checkIn: date(6, 1),
			run: func(svc service.Booking, id string) (dto.BookingResponse, error) {
				return svc.CheckOut(staffContext(), id, dto.CheckOutRequest{})
			},
			wantKind: failure.KindTerminalState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.runInline()

			id := "5c0d8f43-7f0a-4f0e-8d7b-2c1b3a4d5e6f"
			current := model.Booking{
				ID:               id,
				ConfirmationCode: "RES20240520-ABC123",
				RoomID:           "room-101",
				CheckInDate:      tt.checkIn,
				CheckOutDate:     tt.checkIn.AddDate(0, 0, 2),
				Total:            100,
				Status:           tt.status,
			}

			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), repository.ByID(id)).Return(current, nil)

			if tt.wantKind == "" {
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), repository.ByID(id)).Return(nil)
				f.audits.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.bus.EXPECT().Publish(gomock.Any(), gomock.Any(), id, gomock.Any()).Return(nil)
			}

			res, err := tt.run(f.svc, id)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))
				assert.True(t, failure.IsKind(err, failure.KindInvalidState))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
		})
	}
}

func TestBookingService_TransitionNotFound(t *testing.T) {
	f := newFixture(t)
	f.runInline()

	id := "5c0d8f43-7f0a-4f0e-8d7b-2c1b3a4d5e6f"
	f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

	_, err := f.svc.CheckIn(staffContext(), id, dto.CheckInRequest{})
	assert.Equal(t, failure.KindNotFound, failure.GetKind(err))

	_, err = f.svc.Cancel(staffContext(), "not-a-uuid", dto.CancelRequest{})
	assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
}

func TestBookingService_CheckOutNegativeExtra(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CheckOut(staffContext(), "5c0d8f43-7f0a-4f0e-8d7b-2c1b3a4d5e6f", dto.CheckOutRequest{ExtraCharges: -5})

	require.Error(t, err)
	assert.Equal(t, failure.KindInvalidInput, failure.GetKind(err))
}

func TestBookingService_Get(t *testing.T) {
	t.Run("by confirmation code", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "booking:get:RES20240601-ABC123", gomock.Any()).Return(cache.Nil)
		f.details.EXPECT().
			Get(gomock.Any(), repository.ByCode("RES20240601-ABC123")).
			Return(model.BookingDetail{
				Booking:      model.Booking{ID: "b-1", ConfirmationCode: "RES20240601-ABC123", Status: model.StatusConfirmed, CheckInDate: date(6, 1), CheckOutDate: date(6, 3)},
				RoomNumber:   "101",
				RoomCategory: "standard",
				GuestName:    "Ana Ruiz",
			}, nil)

		res, err := f.svc.Get(context.Background(), " res20240601-abc123 ")

		require.NoError(t, err)
		assert.Equal(t, "b-1", res.ID)
		assert.Equal(t, "Ana Ruiz", res.GuestName)
		assert.Equal(t, "101", res.RoomNumber)
	})

	t.Run("by id not found", func(t *testing.T) {
		f := newFixture(t)

		id := "5c0d8f43-7f0a-4f0e-8d7b-2c1b3a4d5e6f"
		f.cache.EXPECT().Get(gomock.Any(), "booking:get:"+id, gomock.Any()).Return(cache.Nil)
		f.details.EXPECT().Get(gomock.Any(), repository.ByID(id)).Return(model.BookingDetail{}, nil)

		_, err := f.svc.Get(context.Background(), id)

		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}

func TestBookingService_GetCachesOnlySettledBookings(t *testing.T) {
	tests := []struct {
		status    string
		wantSaved bool
	}{
		{status: model.StatusConfirmed},
		{status: model.StatusInStay},
		{status: model.StatusFinalized, wantSaved: true},
		{status: model.StatusCancelled, wantSaved: true},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			f := newStrictFixture(t)

			id := "5c0d8f43-7f0a-4f0e-8d7b-2c1b3a4d5e6f"
			saved := make(chan string, 1)

			f.cache.EXPECT().Get(gomock.Any(), "booking:get:"+id, gomock.Any()).Return(cache.Nil)
			f.details.EXPECT().
				Get(gomock.Any(), repository.ByID(id)).
				Return(model.BookingDetail{Booking: model.Booking{ID: id, Status: tt.status, CheckInDate: date(6, 1), CheckOutDate: date(6, 3)}}, nil)

			if tt.wantSaved {
				f.cache.EXPECT().
					Save(gomock.Any(), "booking:get:"+id, gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, key string, _ any, _ int) error {
						saved <- key

						return nil
					})
			}

			res, err := f.svc.Get(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, tt.status, res.Status)

			if tt.wantSaved {
				select {
				case <-saved:
				case <-time.After(time.Second):
					t.Fatal("settled booking was not cached")
				}
			}
		})
	}
}

func TestBookingService_TransitionClearsCachesBeforeReturning(t *testing.T) {
	f := newStrictFixture(t)
	f.runInline()

	id := "5c0d8f43-7f0a-4f0e-8d7b-2c1b3a4d5e6f"

	var cleared []string

	f.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pattern string) error {
			cleared = append(cleared, pattern)

			return nil
		}).
		AnyTimes()

	f.repo.EXPECT().
		GetForUpdateTx(gomock.Any(), gomock.Any(), repository.ByID(id)).
		Return(model.Booking{ID: id, ConfirmationCode: "RES20240520-ABC123", RoomID: "room-101", CheckInDate: date(6, 1), CheckOutDate: date(6, 3), Total: 100, Status: model.StatusConfirmed}, nil)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), repository.ByID(id)).Return(nil)
	f.audits.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.bus.EXPECT().Publish(gomock.Any(), gomock.Any(), id, gomock.Any()).Return(nil)

	_, err := f.svc.CheckIn(staffContext(), id, dto.CheckInRequest{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"booking:gets*", "booking:count*", constant.CacheReportPrefix + constant.Asterix}, cleared)
}

func TestBookingService_GetAll(t *testing.T) {
	f := newFixture(t)

	filter := repository.ListFilter{Status: model.StatusConfirmed}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
	f.details.EXPECT().Count(gomock.Any(), filter.FilterGroup()).Return(11, nil)
	f.details.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{Page: 2, Limit: 10, SortBy: "bookings.checkin_date", SortDir: gDto.SortDirAsc}, filter.FilterGroup()).
		Return([]model.BookingDetail{{Booking: model.Booking{ID: "b-11", Status: model.StatusConfirmed}}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 2, Limit: 10, SortBy: "checkin_date", SortDir: gDto.SortDirAsc}, filter)

	require.NoError(t, err)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, "b-11", res.Bookings[0].ID)
}

func TestBookingService_Audit(t *testing.T) {
	f := newFixture(t)

	id := "5c0d8f43-7f0a-4f0e-8d7b-2c1b3a4d5e6f"
	f.repo.EXPECT().Get(gomock.Any(), repository.ByID(id), model.FieldID).Return(model.Booking{ID: id}, nil)
	f.audits.EXPECT().
		GetAll(gomock.Any(), repository.AuditTrail, repository.ForBooking(id)).
		Return([]model.Audit{
			{ID: "a-1", BookingID: id, Action: model.ActionCreated, Actor: "staff-1", CreatedAt: now},
			{ID: "a-2", BookingID: id, Action: model.ActionCheckedIn, Note: "early", Actor: "staff-2", CreatedAt: now.Add(time.Hour)},
		}, nil)

	res, err := f.svc.Audit(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, res.BookingID)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, model.ActionCheckedIn, res.Entries[1].Action)
	assert.Equal(t, "early", res.Entries[1].Note)
}

func TestBookingService_PendingCheckIns(t *testing.T) {
	f := newFixture(t)

	f.details.EXPECT().
		GetAll(gomock.Any(), repository.ByCheckIn, repository.PendingCheckIns(date(6, 1))).
		Return([]model.BookingDetail{
			{Booking: model.Booking{ConfirmationCode: "RES-A", CheckInDate: date(5, 31), CheckOutDate: date(6, 2), Status: model.StatusConfirmed}},
			{Booking: model.Booking{ConfirmationCode: "RES-B", CheckInDate: date(6, 1), CheckOutDate: date(6, 3), Status: model.StatusConfirmed}},
		}, nil)

	res, err := f.svc.PendingCheckIns(context.Background(), time.Time{})

	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", res.AsOf)
	assert.Len(t, res.Bookings, 2)
}

func TestBookingService_PendingCheckOuts(t *testing.T) {
	f := newFixture(t)

	asOf := date(6, 10)

	f.details.EXPECT().
		GetAll(gomock.Any(), repository.ByCheckOut, repository.PendingCheckOuts(asOf)).
		Return([]model.BookingDetail{
			{Booking: model.Booking{ConfirmationCode: "RES-LATE", CheckInDate: date(6, 5), CheckOutDate: date(6, 9), Status: model.StatusInStay}},
			{Booking: model.Booking{ConfirmationCode: "RES-TODAY", CheckInDate: date(6, 8), CheckOutDate: date(6, 10), Status: model.StatusInStay}},
			{Booking: model.Booking{ConfirmationCode: "RES-TOMORROW", CheckInDate: date(6, 9), CheckOutDate: date(6, 11), Status: model.StatusInStay}},
		}, nil)

	res, err := f.svc.PendingCheckOuts(context.Background(), asOf.Add(15*time.Hour))

	require.NoError(t, err)
	require.Len(t, res.Bookings, 3)
	assert.True(t, res.Bookings[0].Late)
	assert.False(t, res.Bookings[1].Late)
	assert.False(t, res.Bookings[2].Late)
}
