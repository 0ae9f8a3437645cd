package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Guest=MockGuestService

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetGuest    = "guest:get"
	cacheGetAllGuest = "guest:gets"
	cacheCountGuest  = "guest:count"
)

type Guest interface {
	Register(ctx context.Context, req dto.RegisterGuestRequest) (dto.GuestResponse, error)
	Get(ctx context.Context, id string) (dto.GuestResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, search string) (dto.GetGuestsResponse, error)
	History(ctx context.Context, id string) (dto.HistoryResponse, error)
}

type serviceImpl struct {
	repo     repository.Guest
	bookings bookingRepo.Detail
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	clock    timezone.Clock
}

func New(repo repository.Guest, bookings bookingRepo.Detail, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, clock timezone.Clock) Guest {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		clock:    clock,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterGuestRequest) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	if strings.TrimSpace(req.NationalID) == constant.Empty || strings.TrimSpace(req.Name) == constant.Empty {
		return res, failure.InvalidInput("national id and name are required") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	guest := req.ToModel(uuid.NewString(), user, s.clock.Now())

	exist, err := s.repo.Exist(ctx, repository.ByNationalID(guest.NationalID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check national id")

		return res, fmt.Errorf("failed to check national id: %w", err)
	}

	if exist {
		return res, failure.DuplicateGuest("a guest with national id " + guest.NationalID + " is already registered") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, guest); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.DuplicateGuest("a guest with national id " + guest.NationalID + " is already registered") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to register guest")

		return res, fmt.Errorf("failed to register guest: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllGuest)
		shared.InvalidateCaches(c, s.cache, cacheCountGuest)
		shared.InvalidateCaches(c, s.cache, constant.CacheReportPrefix)
	}()

	res.FromModel(guest)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetGuest, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for guest")

		return res, nil
	}

	guest, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(guest)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save guest to cache")
		}
	}()

	return res, nil
}

// GetAll lists guests by name, optionally narrowed to names or national ids
// containing search.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, search string) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.SortBy == constant.Empty {
		req.SortBy, req.SortDir = repository.ByName.SortBy, repository.ByName.SortDir
	}

	filter := repository.Search(strings.TrimSpace(search))
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllGuest, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for guests")

		return res, nil
	}

	total, err := s.count(ctx, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return res, fmt.Errorf("failed to get guests: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save guests to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountGuest, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count guests")

		return res, fmt.Errorf("failed to count guests: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save guest count to cache")
		}
	}()

	return res, nil
}

// History returns every booking of the guest, newest first.
func (s *serviceImpl) History(ctx context.Context, id string) (res dto.HistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.History")
	defer scope.End()
	defer scope.TraceIfError(err)

	guest, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	details, err := s.bookings.GetAll(ctx, bookingRepo.Newest, bookingRepo.ByGuest(id))
	if err != nil {
		log.Error().Err(err).Str("guest_id", id).Msg("failed to get guest bookings")

		return res, fmt.Errorf("failed to get guest bookings: %w", err)
	}

	res.Guest.FromModel(guest)
	res.Bookings = make([]bookingDto.BookingResponse, len(details))

	for i, detail := range details {
		res.Bookings[i].FromDetail(detail)

		if detail.Status == bookingModel.StatusCancelled {
			continue
		}

		res.TotalBookings++
		res.TotalNights += detail.Nights
		res.TotalSpent += detail.Total
	}

	res.TotalSpent = shared.RoundMoney(res.TotalSpent)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Guest, error) {
	if uuid.Validate(id) != nil {
		return model.Guest{}, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	guest, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return guest, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return guest, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	return guest, nil
}
