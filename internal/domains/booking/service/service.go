package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/availability"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	guestModel "hotel/internal/domains/guest/model"
	guestRepo "hotel/internal/domains/guest/repository"
	"hotel/internal/domains/pricing"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/event"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"
	"hotel/shared/stay"
	"hotel/shared/timezone"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

const codeEntropyLength = 6

// Booking drives a booking through confirmed, in_stay and finalized, or cancelled.
// Every mutation runs in one transaction and appends an audit entry.
type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	CheckIn(ctx context.Context, id string, req dto.CheckInRequest) (dto.BookingResponse, error)
	CheckOut(ctx context.Context, id string, req dto.CheckOutRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string, req dto.CancelRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, idOrCode string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter repository.ListFilter) (dto.GetBookingsResponse, error)
	Audit(ctx context.Context, id string) (dto.AuditTrailResponse, error)
	PendingCheckIns(ctx context.Context, asOf time.Time) (dto.PendingResponse, error)
	PendingCheckOuts(ctx context.Context, asOf time.Time) (dto.PendingResponse, error)
}

type serviceImpl struct {
	txr     postgres.Transactor
	repo    repository.Booking
	details repository.Detail
	audits  repository.Audit
	rooms   roomRepo.Room
	guests  guestRepo.Guest
	bus     event.Bus
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	clock   timezone.Clock
}

func New(
	txr postgres.Transactor,
	repo repository.Booking,
	details repository.Detail,
	audits repository.Audit,
	rooms roomRepo.Room,
	guests guestRepo.Guest,
	bus event.Bus,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	clock timezone.Clock,
) Booking {
	return &serviceImpl{
		txr:     txr,
		repo:    repo,
		details: details,
		audits:  audits,
		rooms:   rooms,
		guests:  guests,
		bus:     bus,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		clock:   clock,
	}
}

// Create locks the category's active rooms, so concurrent creates for one category
// run one after another and each sees the bookings committed before it.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	r, err := req.Range()
	if err != nil {
		return res, err
	}

	if maxGuests := s.maxGuests(); req.GuestCount < 1 || req.GuestCount > maxGuests {
		return res, failure.InvalidInput(fmt.Sprintf("guest count must be between 1 and %d", maxGuests)) // nolint:wrapcheck
	}

	exist, err := s.guests.Exist(ctx, shared.FilterByID(req.GuestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check guest existence")

		return res, fmt.Errorf("failed to check guest existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	user := actor(ctx)
	category := roomModel.NormalizeCategory(req.Category)
	now := s.clock.Now()

	var (
		booking model.Booking
		room    roomModel.Room
	)

	err = s.txr.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		rooms, err := s.rooms.GetAllForUpdateTx(ctx, tx, roomRepo.ByNumber, roomRepo.ActiveInCategory(category))
		if err != nil {
			return fmt.Errorf("failed to lock rooms: %w", err)
		}

		if len(rooms) == 0 {
			return failure.NoRoomAvailable("no active rooms in category " + category) // nolint:wrapcheck
		}

		fitting := make([]roomModel.Room, 0, len(rooms))
		ids := make([]string, 0, len(rooms))

		for _, candidate := range rooms {
			if candidate.Capacity >= req.GuestCount {
				fitting = append(fitting, candidate)
				ids = append(ids, candidate.ID)
			}
		}

		if len(fitting) == 0 {
			return failure.NoRoomAvailable(fmt.Sprintf("no %s room holds %d guests", category, req.GuestCount)) // nolint:wrapcheck
		}

		held, err := s.repo.GetAllTx(ctx, tx, gDto.QueryParams{}, repository.HoldingRooms(ids, r))
		if err != nil {
			return fmt.Errorf("failed to get held bookings: %w", err)
		}

		var ok bool

		room, ok = availability.Allocate(fitting, held, r)
		if !ok {
			return failure.NoRoomAvailable(fmt.Sprintf("no %s room is free from %s to %s", category, stay.FormatDate(r.CheckIn), stay.FormatDate(r.CheckOut))) // nolint:wrapcheck
		}

		total, err := pricing.ComputeBase(room.NightlyRate, r.Nights())
		if err != nil {
			return err
		}

		booking = req.ToModel(uuid.NewString(), room, r, user, now)
		booking.Total = total
		booking.ConfirmationCode = s.confirmationCode(now)

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		return s.audits.InsertTx(ctx, tx, newAudit(booking.ID, model.ActionCreated, req.Notes, user, 0, now)) //nolint:wrapcheck
	})
	if err != nil {
		return res, mapTxError(err, "failed to create booking")
	}

	log.Info().
		Str("confirmation_code", booking.ConfirmationCode).
		Str("room", room.Number).
		Msg("booking created")

	s.afterCommit(ctx, booking, model.ActionCreated, user)

	res.FromModel(booking)
	res.RoomNumber = room.Number
	res.Category = room.Category

	return res, nil
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string, req dto.CheckInRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	today := s.clock.Today()

	booking, err := s.transition(ctx, id, model.ActionCheckedIn, req.Notes, 0, func(b *model.Booking, now time.Time) (map[string]any, error) {
		if b.Status != model.StatusConfirmed {
			return nil, failure.InvalidState(fmt.Sprintf("booking %s is %s, only confirmed bookings can be checked in", b.ConfirmationCode, b.Status)) // nolint:wrapcheck
		}

		if stay.Date(b.CheckInDate).After(today) {
			return nil, failure.InvalidState(fmt.Sprintf("booking %s is not due until %s", b.ConfirmationCode, stay.FormatDate(b.CheckInDate))) // nolint:wrapcheck
		}

		b.Status = model.StatusInStay
		b.CheckInActualAt = &now

		return map[string]any{
			model.FieldStatus:          b.Status,
			model.FieldCheckInActualAt: now,
		}, nil
	})
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string, req dto.CheckOutRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.ExtraCharges < 0 {
		return res, failure.InvalidInput("extra charges must not be negative") // nolint:wrapcheck
	}

	extra := shared.RoundMoney(req.ExtraCharges)

	booking, err := s.transition(ctx, id, model.ActionCheckedOut, req.Notes, extra, func(b *model.Booking, now time.Time) (map[string]any, error) {
		if b.Status != model.StatusInStay {
			return nil, failure.InvalidState(fmt.Sprintf("booking %s is %s, only in-stay bookings can be checked out", b.ConfirmationCode, b.Status)) // nolint:wrapcheck
		}

		total, err := pricing.ComputeFinal(b.Total, extra)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		b.Status = model.StatusFinalized
		b.Total = total
		b.CheckOutActualAt = &now

		return map[string]any{
			model.FieldStatus:           b.Status,
			model.FieldTotal:            b.Total,
			model.FieldCheckOutActualAt: now,
		}, nil
	})
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// Cancel is allowed before check-in only. A guest already in the room is checked out.
func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.transition(ctx, id, model.ActionCancelled, req.Reason, 0, func(b *model.Booking, _ time.Time) (map[string]any, error) {
		if b.Status != model.StatusConfirmed {
			return nil, failure.InvalidState(fmt.Sprintf("booking %s is %s, only confirmed bookings can be cancelled", b.ConfirmationCode, b.Status)) // nolint:wrapcheck
		}

		b.Status = model.StatusCancelled

		return map[string]any{model.FieldStatus: b.Status}, nil
	})
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

type applyFunc func(b *model.Booking, now time.Time) (map[string]any, error)

// transition locks the booking row, lets apply check and mutate it, then writes the
// changed fields and one audit entry in the same transaction.
func (s *serviceImpl) transition(ctx context.Context, id, action, note string, amount float64, apply applyFunc) (model.Booking, error) {
	if uuid.Validate(id) != nil {
		return model.Booking{}, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	user := actor(ctx)
	now := s.clock.Now()

	var booking model.Booking

	err := s.txr.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		var err error

		booking, err = s.repo.GetForUpdateTx(ctx, tx, repository.ByID(id))
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if booking.Terminal() {
			return failure.TerminalState(fmt.Sprintf("booking %s is already %s", booking.ConfirmationCode, booking.Status)) // nolint:wrapcheck
		}

		fields, err := apply(&booking, now)
		if err != nil {
			return err
		}

		maps.Copy(fields, booking.Touch(user, now))

		if err := s.repo.UpdateTx(ctx, tx, fields, repository.ByID(booking.ID)); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		return s.audits.InsertTx(ctx, tx, newAudit(booking.ID, action, note, user, amount, now)) //nolint:wrapcheck
	})
	if err != nil {
		return booking, mapTxError(err, "failed to "+strings.ReplaceAll(action, "_", " ")+" booking")
	}

	log.Info().
		Str("confirmation_code", booking.ConfirmationCode).
		Str("status", booking.Status).
		Msg("booking " + action)

	s.afterCommit(ctx, booking, action, user)

	return booking, nil
}

func (s *serviceImpl) Get(ctx context.Context, idOrCode string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	key := strings.TrimSpace(idOrCode)
	filter := repository.ByID(key)

	if uuid.Validate(key) != nil {
		key = strings.ToUpper(key)
		filter = repository.ByCode(key)
	}

	cacheKey := shared.BuildCacheKey(cacheGetBooking, key)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	detail, err := s.details.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromDetail(detail)

	// Only finalized and cancelled bookings are cached: their rows never change again.
	if detail.Terminal() {
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter repository.ListFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	switch {
	case req.SortBy == constant.Empty:
		req.SortBy, req.SortDir = repository.Newest.SortBy, repository.Newest.SortDir
	case !strings.Contains(req.SortBy, "."):
		req.SortBy = model.TableName + "." + req.SortBy
	}

	group := filter.FilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, group)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, group)
	if err != nil {
		return res, err
	}

	models, err := s.details.GetAll(ctx, req, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, group gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, group)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.details.Count(ctx, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Audit(ctx context.Context, id string) (res dto.AuditTrailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Audit")
	defer scope.End()
	defer scope.TraceIfError(err)

	if uuid.Validate(id) != nil {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	booking, err := s.repo.Get(ctx, repository.ByID(id), model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	entries, err := s.audits.GetAll(ctx, repository.AuditTrail, repository.ForBooking(id))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking audit trail")

		return res, fmt.Errorf("failed to get booking audit trail: %w", err)
	}

	res.BookingID = id
	res.Entries = make([]dto.AuditResponse, len(entries))

	for i, entry := range entries {
		res.Entries[i].FromModel(entry)
	}

	return res, nil
}

// PendingCheckIns lists confirmed bookings due on or before asOf, today when asOf is zero.
func (s *serviceImpl) PendingCheckIns(ctx context.Context, asOf time.Time) (res dto.PendingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.PendingCheckIns")
	defer scope.End()
	defer scope.TraceIfError(err)

	asOf = s.dayOrToday(asOf)

	models, err := s.details.GetAll(ctx, repository.ByCheckIn, repository.PendingCheckIns(asOf))
	if err != nil {
		log.Error().Err(err).Msg("failed to get pending check-ins")

		return res, fmt.Errorf("failed to get pending check-ins: %w", err)
	}

	res.AsOf = stay.FormatDate(asOf)
	res.Bookings = make([]dto.BookingResponse, len(models))

	for i, mod := range models {
		res.Bookings[i].FromDetail(mod)
	}

	return res, nil
}

// PendingCheckOuts lists in-stay bookings leaving by tomorrow. Late marks those whose
// checkout date has already passed.
func (s *serviceImpl) PendingCheckOuts(ctx context.Context, asOf time.Time) (res dto.PendingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.PendingCheckOuts")
	defer scope.End()
	defer scope.TraceIfError(err)

	asOf = s.dayOrToday(asOf)

	models, err := s.details.GetAll(ctx, repository.ByCheckOut, repository.PendingCheckOuts(asOf))
	if err != nil {
		log.Error().Err(err).Msg("failed to get pending check-outs")

		return res, fmt.Errorf("failed to get pending check-outs: %w", err)
	}

	res.AsOf = stay.FormatDate(asOf)
	res.Bookings = make([]dto.BookingResponse, len(models))

	for i, mod := range models {
		res.Bookings[i].FromDetail(mod)
		res.Bookings[i].Late = stay.Date(mod.CheckOutDate).Before(asOf)
	}

	return res, nil
}

// afterCommit clears the listing and report caches before the mutation returns, then
// publishes the lifecycle event.
func (s *serviceImpl) afterCommit(ctx context.Context, booking model.Booking, action, user string) {
	c := context.WithoutCancel(ctx)

	shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	shared.InvalidateCaches(c, s.cache, constant.CacheReportPrefix)

	evt := model.Event{
		BookingID:        booking.ID,
		ConfirmationCode: booking.ConfirmationCode,
		Action:           action,
		Status:           booking.Status,
		OccurredAt:       booking.ModifiedAt,
		Actor:            user,
	}

	if err := s.bus.Publish(c, event.Topic(s.cfg.Event.Topic), booking.ID, evt); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Str("action", action).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) confirmationCode(now time.Time) string {
	prefix := s.cfg.Booking.CodePrefix
	if prefix == constant.Empty {
		prefix = constant.DefaultCodePrefix
	}

	entropy := strings.ReplaceAll(uuid.NewString(), "-", "")[:codeEntropyLength]

	return prefix + now.Format("20060102") + "-" + strings.ToUpper(entropy)
}

func (s *serviceImpl) maxGuests() int {
	if s.cfg.Booking.MaxGuests > 0 {
		return s.cfg.Booking.MaxGuests
	}

	return constant.DefaultMaxGuests
}

func (s *serviceImpl) dayOrToday(day time.Time) time.Time {
	if day.IsZero() {
		return s.clock.Today()
	}

	return stay.Date(day)
}

func newAudit(bookingID, action, note, user string, amount float64, now time.Time) model.Audit {
	return model.Audit{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		Action:    action,
		Note:      note,
		Actor:     user,
		Amount:    amount,
		CreatedAt: now,
	}
}

// mapTxError passes typed failures through and turns concurrent-writer errors into
// ConflictRetry. Nothing was committed in either case.
func mapTxError(err error, msg string) error {
	var fail *failure.Failure
	if errors.As(err, &fail) {
		return err
	}

	if gRepo.IsRetryable(err) || gRepo.IsUniqueViolation(err) {
		log.Warn().Err(err).Str("pq_code", gRepo.PqCode(err)).Msg(msg)

		return failure.ConflictRetry("booking changed concurrently, please retry") // nolint:wrapcheck
	}

	log.Error().Err(err).Msg(msg)

	return fmt.Errorf("%s: %w", msg, err)
}

func actor(ctx context.Context) string {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return constant.ContextSystem
	}

	return user
}
