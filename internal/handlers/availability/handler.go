package availability

import (
	"hotel/infras/otel"
	"hotel/internal/domains/availability/model/dto"
	"hotel/internal/domains/availability/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/request"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.ListAvailability)
		routerGroup.Get("/free-room", handler.FindFreeRoom)
		routerGroup.Get("/categories", handler.Categories)
	})
}

// ListAvailability shows every active room with whether it is free for the stay.
// @Summary Room availability
// @Tags Availability
// @Produce json
// @Param category query string false "Room category"
// @Param checkin query string true "Check-in date (YYYY-MM-DD)"
// @Param checkout query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
// @Security BearerAuth
func (handler *Handler) ListAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListAvailability")
	defer scope.End()

	req := dto.AvailabilityRequest{
		Category: request.String(r, constant.RequestParamCategory),
		CheckIn:  request.String(r, constant.RequestParamCheckIn),
		CheckOut: request.String(r, constant.RequestParamCheckOut),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate availability query")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.ListAvailability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// FindFreeRoom returns the room a booking for the stay would be given.
// @Summary Free room for a stay
// @Tags Availability
// @Produce json
// @Param category query string true "Room category"
// @Param checkin query string true "Check-in date (YYYY-MM-DD)"
// @Param checkout query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} object "The room a booking would be given"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/free-room [get]
// @Security BearerAuth
func (handler *Handler) FindFreeRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FindFreeRoom")
	defer scope.End()

	req := dto.FreeRoomRequest{
		Category: request.String(r, constant.RequestParamCategory),
		CheckIn:  request.String(r, constant.RequestParamCheckIn),
		CheckOut: request.String(r, constant.RequestParamCheckOut),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate free room query")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.FindFreeRoom(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to find free room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// Categories lists the categories that have at least one active room.
// @Summary Room categories
// @Tags Availability
// @Produce json
// @Success 200 {object} response.Data[dto.CategoriesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/availability/categories [get]
// @Security BearerAuth
func (handler *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Categories")
	defer scope.End()

	res, err := handler.service.Categories(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get categories")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
