package guest

import (
	"hotel/infras/otel"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/request"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Guest
	otel    otel.Otel
}

func New(service service.Guest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/guests", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.RegisterGuest)
		routerGroup.Get("/", handler.GetGuests)
		routerGroup.Get("/{id}", handler.GetGuest)
		routerGroup.Get("/{id}/history", handler.History)
	})
}

// RegisterGuest handles guest registration.
// @Summary Register a guest
// @Description National ids are unique across guests.
// @Tags Guest
// @Accept json
// @Produce json
// @Param request body dto.RegisterGuestRequest true "Register Guest Request"
// @Success 201 {object} response.Data[dto.GuestResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests [post]
// @Security BearerAuth
func (handler *Handler) RegisterGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RegisterGuest")
	defer scope.End()

	req := dto.RegisterGuestRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	guest, err := handler.service.Register(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register guest")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest registered successfully")

	response.WithJSON(w, http.StatusCreated, guest)
}

// GetGuests lists guests by name.
// @Summary List guests
// @Tags Guest
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Matches name or national id"
// @Success 200 {object} response.Data[dto.GetGuestsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/guests [get]
// @Security BearerAuth
func (handler *Handler) GetGuests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sanitize(model.FieldName, model.FieldNationalID, model.FieldRegisteredAt)

	guests, err := handler.service.GetAll(ctx, queryParams, request.String(r, constant.RequestParamSearch))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, guests)
}

// GetGuest fetches a guest by id.
// @Summary Get a guest
// @Tags Guest
// @Produce json
// @Param id path string true "Guest ID"
// @Success 200 {object} response.Data[dto.GuestResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuest")
	defer scope.End()

	guest, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guest")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, guest)
}

// History lists a guest's bookings with billed totals.
// @Summary Guest history
// @Tags Guest
// @Produce json
// @Param id path string true "Guest ID"
// @Success 200 {object} response.Data[dto.HistoryResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/{id}/history [get]
// @Security BearerAuth
func (handler *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".History")
	defer scope.End()

	history, err := handler.service.History(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guest history")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, history)
}
