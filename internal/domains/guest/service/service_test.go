package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	guestMocks "hotel/internal/domains/guest/mocks"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/repository"
	"hotel/internal/domains/guest/service"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
)

const guestID = "8d1f7a52-0b7e-4c5e-9a51-4f2d7c9e6b10"

var now = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	svc      service.Guest
	repo     *guestMocks.MockGuest
	bookings *bookingMocks.MockDetail
	cache    *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:     guestMocks.NewMockGuest(ctrl),
		bookings: bookingMocks.NewMockDetail(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, f.bookings, cfg, f.cache, mocks.NewOtel(), timezone.FixedClock{At: now})

	return f
}

func (f *fixture) miss() {
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
}

var ada = model.Guest{ID: guestID, NationalID: "3174000000000001", Name: "Ada Lovelace", RegisteredAt: now}

func TestGuestService_Register(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), repository.ByNationalID("3174000000000001")).Return(false, nil)
	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, guest model.Guest) error {
			assert.Equal(t, "Ada Lovelace", guest.Name)
			assert.Equal(t, "ada@example.com", guest.Email)
			assert.Equal(t, now, guest.RegisteredAt)
			assert.NotEmpty(t, guest.ID)

			return nil
		})

	res, err := f.svc.Register(context.Background(), dto.RegisterGuestRequest{
		NationalID: " 3174000000000001 ",
		Name:       "Ada Lovelace ",
		Email:      "Ada@Example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "3174000000000001", res.NationalID)
	assert.Equal(t, "2024-06-01", res.RegisteredAt[:10])
}

func TestGuestService_RegisterClearsReports(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := guestMocks.NewMockGuest(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	cleared := make(chan string, 8)

	redisCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pattern string) error {
			cleared <- pattern

			return nil
		}).
		AnyTimes()

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	svc := service.New(repo, bookingMocks.NewMockDetail(ctrl), cfg, redisCache, mocks.NewOtel(), timezone.FixedClock{At: now})

	_, err := svc.Register(context.Background(), dto.RegisterGuestRequest{NationalID: "3174000000000002", Name: "Grace Hopper"})
	require.NoError(t, err)

	want := constant.CacheReportPrefix + constant.Asterix
	timeout := time.After(time.Second)

	for {
		select {
		case got := <-cleared:
			if got == want {
				return
			}
		case <-timeout:
			t.Fatalf("cache pattern %q was never cleared", want)
		}
	}
}

func TestGuestService_RegisterFailures(t *testing.T) {
	tests := []struct {
		name  string
		req   dto.RegisterGuestRequest
		setup func(f *fixture)
		kind  failure.Kind
	}{
		{
			name: "blank name",
			req:  dto.RegisterGuestRequest{NationalID: "1", Name: "  "},
			kind: failure.KindInvalidInput,
		},
		{
			name: "blank national id",
			req:  dto.RegisterGuestRequest{NationalID: "", Name: "Ada"},
			kind: failure.KindInvalidInput,
		},
		{
			name: "already registered",
			req:  dto.RegisterGuestRequest{NationalID: "1", Name: "Ada"},
			setup: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			kind: failure.KindDuplicateGuest,
		},
		{
			name: "lost the race on the unique index",
			req:  dto.RegisterGuestRequest{NationalID: "1", Name: "Ada"},
			setup: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			kind: failure.KindDuplicateGuest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.svc.Register(context.Background(), tt.req)

			require.Error(t, err)
			assert.True(t, failure.IsKind(err, tt.kind), err.Error())
		})
	}
}

func TestGuestService_RegisterStorageError(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	_, err := f.svc.Register(context.Background(), dto.RegisterGuestRequest{NationalID: "1", Name: "Ada"})

	require.Error(t, err)
	assert.False(t, failure.IsKind(err, failure.KindDuplicateGuest))
}

func TestGuestService_Get(t *testing.T) {
	f := newFixture(t)
	f.miss()

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ada, nil)

	res, err := f.svc.Get(context.Background(), guestID)

	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", res.Name)
}

func TestGuestService_GetNotFound(t *testing.T) {
	f := newFixture(t)
	f.miss()

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)

	_, err := f.svc.Get(context.Background(), guestID)
	assert.True(t, failure.IsKind(err, failure.KindNotFound))

	_, err = f.svc.Get(context.Background(), "not-a-uuid")
	assert.True(t, failure.IsKind(err, failure.KindNotFound))
}

func TestGuestService_GetAll(t *testing.T) {
	f := newFixture(t)
	f.miss()

	filter := repository.Search("ada")

	f.repo.EXPECT().Count(gomock.Any(), filter).Return(1, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), filter).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Guest, error) {
			assert.Equal(t, repository.ByName.SortBy, params.SortBy)

			return []model.Guest{ada}, nil
		})

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, " ada ")

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	require.Len(t, res.Guests, 1)
	assert.Equal(t, guestID, res.Guests[0].ID)
}

func TestGuestService_History(t *testing.T) {
	f := newFixture(t)
	f.miss()

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ada, nil)
	f.bookings.EXPECT().
		GetAll(gomock.Any(), bookingRepo.Newest, bookingRepo.ByGuest(guestID)).
		Return([]bookingModel.BookingDetail{
			{Booking: bookingModel.Booking{ID: "b3", GuestID: guestID, Nights: 1, Total: 80, Status: bookingModel.StatusCancelled}},
			{Booking: bookingModel.Booking{ID: "b2", GuestID: guestID, Nights: 3, Total: 150.5, Status: bookingModel.StatusConfirmed}},
			{Booking: bookingModel.Booking{ID: "b1", GuestID: guestID, Nights: 2, Total: 115, Status: bookingModel.StatusFinalized}},
		}, nil)

	res, err := f.svc.History(context.Background(), guestID)

	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", res.Guest.Name)
	require.Len(t, res.Bookings, 3)
	assert.Equal(t, "b3", res.Bookings[0].ID)
	assert.Equal(t, 2, res.TotalBookings)
	assert.Equal(t, 5, res.TotalNights)
	assert.InDelta(t, 265.5, res.TotalSpent, 0.001)
}

func TestGuestService_HistoryUnknownGuest(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)

	_, err := f.svc.History(context.Background(), guestID)

	assert.True(t, failure.IsKind(err, failure.KindNotFound))
}
