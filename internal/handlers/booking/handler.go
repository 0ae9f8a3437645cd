package booking

import (
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/service"
	folioService "hotel/internal/domains/folio/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/request"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryStatus  = "status"
	queryGuestID = "guest_id"
	queryRoomID  = "room_id"
	queryFrom    = "from"
	queryTo      = "to"
)

type Handler struct {
	service service.Booking
	folio   folioService.Folio
	otel    otel.Otel
}

func New(service service.Booking, folio folioService.Folio, otel otel.Otel) Handler {
	return Handler{
		service: service,
		folio:   folio,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/pending/check-ins", handler.PendingCheckIns)
		routerGroup.Get("/pending/check-outs", handler.PendingCheckOuts)
		routerGroup.Get("/{id}", handler.GetBooking)
		routerGroup.Post("/{id}/check-in", handler.CheckIn)
		routerGroup.Post("/{id}/check-out", handler.CheckOut)
		routerGroup.Post("/{id}/cancel", handler.Cancel)
		routerGroup.Get("/{id}/audit", handler.Audit)
		routerGroup.Post("/{id}/folio", handler.ArchiveFolio)
	})
}

// CreateBooking reserves the first free room of a category.
// @Summary Create a booking
// @Description Allocates the lowest-numbered free active room in the category and quotes the stay.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking created " + booking.ConfirmationCode)

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetBookings lists bookings, newest first unless sorted otherwise.
// @Summary List bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "confirmed, in_stay, finalized or cancelled"
// @Param guest_id query string false "Filter by guest"
// @Param room_id query string false "Filter by room"
// @Param from query string false "Check-in on or after (YYYY-MM-DD)"
// @Param to query string false "Check-in before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sanitize(model.FieldCheckInDate, model.FieldCheckOutDate, model.FieldTotal, model.FieldStatus, model.FieldConfirmationCode, constant.DefaultValueSortBy)

	filter, err := listFilter(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read booking filter")

		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

func listFilter(r *http.Request) (filter repository.ListFilter, err error) {
	filter.Status = request.String(r, queryStatus)
	if err = validator.ValidateVar(filter.Status, "omitempty,oneof="+model.StatusConfirmed+" "+model.StatusInStay+" "+model.StatusFinalized+" "+model.StatusCancelled); err != nil {
		return filter, err
	}

	filter.GuestID = request.String(r, queryGuestID)
	filter.RoomID = request.String(r, queryRoomID)

	if filter.From, err = request.OptionalDate(r, queryFrom); err != nil {
		return filter, err
	}

	filter.To, err = request.OptionalDate(r, queryTo)

	return filter, err
}

// GetBooking fetches a booking by id or confirmation code.
// @Summary Get a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID or confirmation code"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBooking")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// CheckIn moves a confirmed booking in stay.
// @Summary Check in
// @Description Allowed once the check-in date has arrived. Late arrivals are not bounded by the check-out date.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CheckInRequest false "Check-in Request"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/check-in [post]
// @Security BearerAuth
func (handler *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckIn")
	defer scope.End()

	req := dto.CheckInRequest{}

	if err := validator.ValidateOptional(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.CheckIn(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check in")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking checked in " + booking.ConfirmationCode)

	response.WithJSON(w, http.StatusOK, booking)
}

// CheckOut finalizes an in-stay booking.
// @Summary Check out
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CheckOutRequest false "Check-out Request"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/check-out [post]
// @Security BearerAuth
func (handler *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckOut")
	defer scope.End()

	req := dto.CheckOutRequest{}

	if err := validator.ValidateOptional(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.CheckOut(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check out")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking checked out " + booking.ConfirmationCode)

	response.WithJSON(w, http.StatusOK, booking)
}

// Cancel cancels a confirmed booking and frees its room.
// @Summary Cancel a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CancelRequest false "Cancel Request"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Cancel")
	defer scope.End()

	req := dto.CancelRequest{}

	if err := validator.ValidateOptional(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Cancel(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking cancelled " + booking.ConfirmationCode)

	response.WithJSON(w, http.StatusOK, booking)
}

// Audit returns the state changes of a booking, oldest first.
// @Summary Booking audit trail
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.AuditTrailResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/audit [get]
// @Security BearerAuth
func (handler *Handler) Audit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Audit")
	defer scope.End()

	trail, err := handler.service.Audit(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get audit trail")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, trail)
}

// PendingCheckIns lists confirmed bookings due to arrive.
// @Summary Pending check-ins
// @Tags Booking
// @Produce json
// @Param as_of query string false "Reference day (YYYY-MM-DD), today by default"
// @Success 200 {object} response.Data[dto.PendingResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/pending/check-ins [get]
// @Security BearerAuth
func (handler *Handler) PendingCheckIns(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PendingCheckIns")
	defer scope.End()

	asOf, err := request.Date(r, constant.RequestParamAsOf)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	pending, err := handler.service.PendingCheckIns(ctx, asOf)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pending check-ins")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, pending)
}

// PendingCheckOuts lists in-stay bookings due to leave.
// @Summary Pending check-outs
// @Tags Booking
// @Produce json
// @Param as_of query string false "Reference day (YYYY-MM-DD), today by default"
// @Success 200 {object} response.Data[dto.PendingResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/pending/check-outs [get]
// @Security BearerAuth
func (handler *Handler) PendingCheckOuts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PendingCheckOuts")
	defer scope.End()

	asOf, err := request.Date(r, constant.RequestParamAsOf)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	pending, err := handler.service.PendingCheckOuts(ctx, asOf)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pending check-outs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, pending)
}

// ArchiveFolio uploads the folio of a finished booking to object storage.
// @Summary Archive a folio
// @Description The worker archives folios on its own; this re-runs it for one booking.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 201 {object} object "booking_id and url of the archived folio"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/folio [post]
// @Security BearerAuth
func (handler *Handler) ArchiveFolio(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ArchiveFolio")
	defer scope.End()

	res, err := handler.folio.Archive(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to archive folio")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}
