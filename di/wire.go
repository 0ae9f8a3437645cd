//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/shared/timezone"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"
	"hotel/transport/worker"

	"github.com/google/wire"

	authService "hotel/internal/domains/auth/service"
	availabilityService "hotel/internal/domains/availability/service"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	folioService "hotel/internal/domains/folio/service"
	guestRepository "hotel/internal/domains/guest/repository"
	guestService "hotel/internal/domains/guest/service"
	reportService "hotel/internal/domains/report/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	staffRepository "hotel/internal/domains/staff/repository"
	authHandler "hotel/internal/handlers/auth"
	availabilityHandler "hotel/internal/handlers/availability"
	bookingHandler "hotel/internal/handlers/booking"
	guestHandler "hotel/internal/handlers/guest"
	reportHandler "hotel/internal/handlers/report"
	roomHandler "hotel/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	provideEventBus,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	timezone.NewClock,
)

var repositories = wire.NewSet(
	roomRepository.New,
	guestRepository.New,
	staffRepository.New,
	bookingRepository.New,
	bookingRepository.NewDetail,
	bookingRepository.NewAudit,
)

var domains = wire.NewSet(
	repositories,
	authService.New,
	roomService.New,
	guestService.New,
	availabilityService.New,
	bookingService.New,
	reportService.New,
	folioService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	guestHandler.New,
	bookingHandler.New,
	availabilityHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		s3.New,
		provideEventBus,
		timezone.NewClock,
		bookingRepository.NewDetail,
		bookingRepository.NewAudit,
		roomRepository.New,
		guestRepository.New,
		folioService.New,
		worker.New,
	)

	return &worker.Worker{}
}
