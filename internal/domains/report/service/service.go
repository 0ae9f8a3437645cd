package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	guestModel "hotel/internal/domains/guest/model"
	guestRepo "hotel/internal/domains/guest/repository"
	"hotel/internal/domains/report"
	"hotel/internal/domains/report/model/dto"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/stay"
	"hotel/shared/timezone"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheOccupancy         = constant.CacheReportPrefix + "occupancy"
	cacheOccupancyCategory = constant.CacheReportPrefix + "occupancy-category"
	cacheRevenue           = constant.CacheReportPrefix + "revenue"
	cacheGuestTotals       = constant.CacheReportPrefix + "guests"
	cacheStatusBreakdown   = constant.CacheReportPrefix + "status"
	cacheArrivals          = constant.CacheReportPrefix + "arrivals"
	cacheDepartures        = constant.CacheReportPrefix + "departures"
	cacheSummary           = constant.CacheReportPrefix + "summary"
)

// Report is read-only. A zero date means today in the application timezone; empty
// stores give empty reports, never errors.
type Report interface {
	OccupancyRate(ctx context.Context, date time.Time) (dto.OccupancyResponse, error)
	OccupancyByCategory(ctx context.Context, date time.Time) (dto.CategoryOccupancyResponse, error)
	RevenueForPeriod(ctx context.Context, start, end time.Time) (dto.RevenueResponse, error)
	GuestTotals(ctx context.Context, req gDto.QueryParams, search string) (dto.GuestTotalsResponse, error)
	StatusBreakdown(ctx context.Context, since time.Time) (dto.StatusBreakdownResponse, error)
	UpcomingArrivals(ctx context.Context, asOf time.Time, days int) (dto.UpcomingResponse, error)
	UpcomingDepartures(ctx context.Context, asOf time.Time, days int) (dto.UpcomingResponse, error)
	DailySummary(ctx context.Context, date time.Time) (dto.DailySummaryResponse, error)
}

type serviceImpl struct {
	rooms    roomRepo.Room
	bookings bookingRepo.Booking
	details  bookingRepo.Detail
	guests   guestRepo.Guest
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	clock    timezone.Clock
}

func New(
	rooms roomRepo.Room,
	bookings bookingRepo.Booking,
	details bookingRepo.Detail,
	guests guestRepo.Guest,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	clock timezone.Clock,
) Report {
	return &serviceImpl{
		rooms:    rooms,
		bookings: bookings,
		details:  details,
		guests:   guests,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		clock:    clock,
	}
}

func (s *serviceImpl) OccupancyRate(ctx context.Context, date time.Time) (res dto.OccupancyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Report.OccupancyRate")
	defer scope.End()
	defer scope.TraceIfError(err)

	day := s.dayOrToday(date)
	cacheKey := shared.BuildCacheKey(cacheOccupancy, stay.FormatDate(day))

	if s.cached(ctx, cacheKey, &res) {
		return res, nil
	}

	rooms, bookings, err := s.occupancyInputs(ctx, day)
	if err != nil {
		return res, err
	}

	res.FromOccupancy(report.OccupancyOf(rooms, bookings, day), day)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) OccupancyByCategory(ctx context.Context, date time.Time) (res dto.CategoryOccupancyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Report.OccupancyByCategory")
	defer scope.End()
	defer scope.TraceIfError(err)

	day := s.dayOrToday(date)
	cacheKey := shared.BuildCacheKey(cacheOccupancyCategory, stay.FormatDate(day))

	if s.cached(ctx, cacheKey, &res) {
		return res, nil
	}

	rooms, bookings, err := s.occupancyInputs(ctx, day)
	if err != nil {
		return res, err
	}

	res.FromOccupancies(report.OccupancyByCategory(rooms, bookings, day), day)

	s.save(ctx, cacheKey, res)

	return res, nil
}

// RevenueForPeriod sums bookings checking in within [start, end).
func (s *serviceImpl) RevenueForPeriod(ctx context.Context, start, end time.Time) (res dto.RevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Report.RevenueForPeriod")
	defer scope.End()
	defer scope.TraceIfError(err)

	r, err := stay.NewRange(start, end)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.Start, res.End = stay.FormatDate(r.CheckIn), stay.FormatDate(r.CheckOut)
	cacheKey := shared.BuildCacheKey(cacheRevenue, res.Start, res.End)

	if s.cached(ctx, cacheKey, &res) {
		return res, nil
	}

	res.Bookings, res.Revenue, err = s.revenue(ctx, r)
	if err != nil {
		return res, err
	}

	s.save(ctx, cacheKey, res)

	return res, nil
}

// GuestTotals pages through guests by name, each with its non-cancelled bookings,
// nights and spend.
func (s *serviceImpl) GuestTotals(ctx context.Context, req gDto.QueryParams, search string) (res dto.GuestTotalsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Report.GuestTotals")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.SortBy, req.SortDir = guestRepo.ByName.SortBy, guestRepo.ByName.SortDir

	filter := guestRepo.Search(strings.TrimSpace(search))
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGuestTotals, req, filter)

	if s.cached(ctx, cacheKey, &res) {
		return res, nil
	}

	total, err := s.guests.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count guests")

		return res, fmt.Errorf("failed to count guests: %w", err)
	}

	guests, err := s.guests.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return res, fmt.Errorf("failed to get guests: %w", err)
	}

	totals := map[string]report.GuestTotal{}

	if len(guests) > 0 {
		bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, bookingRepo.BilledTo(guestIDs(guests)))
		if err != nil {
			log.Error().Err(err).Msg("failed to get guest bookings")

			return res, fmt.Errorf("failed to get guest bookings: %w", err)
		}

		totals = report.TotalsByGuest(bookings)
	}

	res.FromModels(guests, totals, total, req.Limit)

	s.save(ctx, cacheKey, res)

	return res, nil
}

// StatusBreakdown counts bookings created on or after since by status.
func (s *serviceImpl) StatusBreakdown(ctx context.Context, since time.Time) (res dto.StatusBreakdownResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Report.StatusBreakdown")
	defer scope.End()
	defer scope.TraceIfError(err)

	if since.IsZero() {
		since = report.Month(s.clock.Today()).CheckIn
	}

	since = stay.Date(since)
	res.Since = stay.FormatDate(since)
	cacheKey := shared.BuildCacheKey(cacheStatusBreakdown, res.Since)

	if s.cached(ctx, cacheKey, &res) {
		return res, nil
	}

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, bookingRepo.CreatedSince(since), bookingModel.FieldStatus)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for status breakdown")

		return res, fmt.Errorf("failed to get bookings for status breakdown: %w", err)
	}

	res.Total = len(bookings)
	res.Statuses = report.StatusCounts(bookings)

	s.save(ctx, cacheKey, res)

	return res, nil
}

// UpcomingArrivals lists confirmed bookings checking in within days of asOf.
func (s *serviceImpl) UpcomingArrivals(ctx context.Context, asOf time.Time, days int) (res dto.UpcomingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Report.UpcomingArrivals")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.upcoming(ctx, cacheArrivals, asOf, days, bookingRepo.ByCheckIn, bookingRepo.Arriving)
}

// UpcomingDepartures lists held bookings checking out within days of asOf.
func (s *serviceImpl) UpcomingDepartures(ctx context.Context, asOf time.Time, days int) (res dto.UpcomingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Report.UpcomingDepartures")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.upcoming(ctx, cacheDepartures, asOf, days, bookingRepo.ByCheckOut, bookingRepo.Departing)
}

func (s *serviceImpl) upcoming(
	ctx context.Context,
	prefix string,
	asOf time.Time,
	days int,
	order gDto.QueryParams,
	filter func(stay.Range) gDto.FilterGroup,
) (res dto.UpcomingResponse, err error) {
	if days == 0 {
		days = s.cfg.Booking.UpcomingWindowDays
	}

	if days <= 0 {
		days = constant.DefaultUpcomingWindowDays
	}

	window := report.Window(s.dayOrToday(asOf), days)
	cacheKey := shared.BuildCacheKey(prefix, stay.FormatDate(window.CheckIn), strconv.Itoa(days))

	if s.cached(ctx, cacheKey, &res) {
		return res, nil
	}

	details, err := s.details.GetAll(ctx, order, filter(window))
	if err != nil {
		log.Error().Err(err).Str("report", prefix).Msg("failed to get upcoming bookings")

		return res, fmt.Errorf("failed to get upcoming bookings: %w", err)
	}

	res.FromDetails(details, window)

	s.save(ctx, cacheKey, res)

	return res, nil
}

// DailySummary is occupancy, arrivals and departures for date plus revenue for its month.
func (s *serviceImpl) DailySummary(ctx context.Context, date time.Time) (res dto.DailySummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Report.DailySummary")
	defer scope.End()
	defer scope.TraceIfError(err)

	day := s.dayOrToday(date)
	res.Date = stay.FormatDate(day)
	cacheKey := shared.BuildCacheKey(cacheSummary, res.Date)

	if s.cached(ctx, cacheKey, &res) {
		return res, nil
	}

	rooms, bookings, err := s.occupancyInputs(ctx, day)
	if err != nil {
		return res, err
	}

	occupancy := report.OccupancyOf(rooms, bookings, day)
	res.ActiveRooms, res.OccupiedRooms, res.OccupancyRate = occupancy.ActiveRooms, occupancy.OccupiedRooms, occupancy.Rate

	today := report.Window(day, 1)

	res.Arrivals, err = s.bookings.Count(ctx, bookingRepo.Arriving(today))
	if err != nil {
		log.Error().Err(err).Msg("failed to count arrivals")

		return res, fmt.Errorf("failed to count arrivals: %w", err)
	}

	res.Departures, err = s.bookings.Count(ctx, bookingRepo.Departing(today))
	if err != nil {
		log.Error().Err(err).Msg("failed to count departures")

		return res, fmt.Errorf("failed to count departures: %w", err)
	}

	_, res.MonthRevenue, err = s.revenue(ctx, report.Month(day))
	if err != nil {
		return res, err
	}

	s.save(ctx, cacheKey, res)

	return res, nil
}

// occupancyInputs loads active rooms and the held bookings covering day.
func (s *serviceImpl) occupancyInputs(ctx context.Context, day time.Time) ([]roomModel.Room, []bookingModel.Booking, error) {
	rooms, err := s.rooms.GetAll(ctx, roomRepo.ByCategoryAndNumber, roomRepo.ActiveInCategory(constant.Empty))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms for occupancy")

		return nil, nil, fmt.Errorf("failed to get rooms for occupancy: %w", err)
	}

	if len(rooms) == 0 {
		return rooms, nil, nil
	}

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, bookingRepo.Covering(day))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for occupancy")

		return nil, nil, fmt.Errorf("failed to get bookings for occupancy: %w", err)
	}

	return rooms, bookings, nil
}

func (s *serviceImpl) revenue(ctx context.Context, r stay.Range) (int, float64, error) {
	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, bookingRepo.CheckingInWithin(r))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for revenue")

		return 0, 0, fmt.Errorf("failed to get bookings for revenue: %w", err)
	}

	count, total := report.Revenue(bookings, r)

	return count, total, nil
}

func (s *serviceImpl) dayOrToday(date time.Time) time.Time {
	if date.IsZero() {
		return s.clock.Today()
	}

	return stay.Date(date)
}

func (s *serviceImpl) cached(ctx context.Context, key string, value any) bool {
	if err := s.cache.Get(ctx, key, value); err != nil {
		return false
	}

	log.Info().Str("cacheKey", key).Msg("cache hit for report")

	return true
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save report to cache")
		}
	}()
}

func guestIDs(guests []guestModel.Guest) []string {
	ids := make([]string, len(guests))
	for i, guest := range guests {
		ids[i] = guest.ID
	}

	return ids
}
