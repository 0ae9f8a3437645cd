package report

import (
	"hotel/infras/otel"
	guestModel "hotel/internal/domains/guest/model"
	"hotel/internal/domains/report/model/dto"
	"hotel/internal/domains/report/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/transport/http/request"
	"hotel/transport/http/response"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/occupancy", handler.Occupancy)
		routerGroup.Get("/occupancy-by-category", handler.OccupancyByCategory)
		routerGroup.Get("/revenue", handler.Revenue)
		routerGroup.Get("/guests", handler.GuestTotals)
		routerGroup.Get("/status-breakdown", handler.StatusBreakdown)
		routerGroup.Get("/arrivals", handler.Arrivals)
		routerGroup.Get("/departures", handler.Departures)
		routerGroup.Get("/summary", handler.Summary)
	})
}

func (handler *Handler) fail(w http.ResponseWriter, err error, msg string) {
	log.Error().Err(err).Msg(msg)

	response.WithError(w, err)
}

// Occupancy is the occupied share of active rooms on one night.
// @Summary Occupancy rate
// @Tags Report
// @Produce json
// @Param date query string false "Night (YYYY-MM-DD), today by default"
// @Success 200 {object} response.Data[dto.OccupancyResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/occupancy [get]
// @Security BearerAuth
func (handler *Handler) Occupancy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Occupancy")
	defer scope.End()

	date, err := request.Date(r, constant.RequestParamDate)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.OccupancyRate(ctx, date)
	if err != nil {
		scope.TraceError(err)
		handler.fail(w, err, "failed to get occupancy rate")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// OccupancyByCategory splits Occupancy per room category.
// @Summary Occupancy by category
// @Tags Report
// @Produce json
// @Param date query string false "Night (YYYY-MM-DD), today by default"
// @Success 200 {object} response.Data[dto.CategoryOccupancyResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/occupancy-by-category [get]
// @Security BearerAuth
func (handler *Handler) OccupancyByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OccupancyByCategory")
	defer scope.End()

	date, err := request.Date(r, constant.RequestParamDate)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.OccupancyByCategory(ctx, date)
	if err != nil {
		scope.TraceError(err)
		handler.fail(w, err, "failed to get occupancy by category")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Revenue sums non-cancelled bookings checking in within [start, end).
// @Summary Revenue for a period
// @Tags Report
// @Produce json
// @Param start query string true "First day (YYYY-MM-DD)"
// @Param end query string true "Day after the last (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.RevenueResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/revenue [get]
// @Security BearerAuth
func (handler *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Revenue")
	defer scope.End()

	start, err := request.Date(r, constant.RequestParamStart)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	end, err := request.Date(r, constant.RequestParamEnd)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.RevenueForPeriod(ctx, start, end)
	if err != nil {
		scope.TraceError(err)
		handler.fail(w, err, "failed to get revenue")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GuestTotals pages through guests with their billed bookings, nights and spend.
// @Summary Guest totals
// @Tags Report
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Matches name or national id"
// @Success 200 {object} response.Data[dto.GuestTotalsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/reports/guests [get]
// @Security BearerAuth
func (handler *Handler) GuestTotals(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GuestTotals")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sanitize(guestModel.FieldName, guestModel.FieldNationalID, guestModel.FieldRegisteredAt)

	var (
		res dto.GuestTotalsResponse
		err error
	)

	res, err = handler.service.GuestTotals(ctx, queryParams, request.String(r, constant.RequestParamSearch))
	if err != nil {
		scope.TraceError(err)
		handler.fail(w, err, "failed to get guest totals")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// StatusBreakdown counts bookings created since a day by status.
// @Summary Booking status breakdown
// @Tags Report
// @Produce json
// @Param since query string false "First day (YYYY-MM-DD), start of this month by default"
// @Success 200 {object} response.Data[dto.StatusBreakdownResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/status-breakdown [get]
// @Security BearerAuth
func (handler *Handler) StatusBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StatusBreakdown")
	defer scope.End()

	since, err := request.Date(r, constant.RequestParamSince)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.StatusBreakdown(ctx, since)
	if err != nil {
		scope.TraceError(err)
		handler.fail(w, err, "failed to get status breakdown")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Arrivals lists confirmed bookings checking in within the next days.
// @Summary Upcoming arrivals
// @Tags Report
// @Produce json
// @Param as_of query string false "First day (YYYY-MM-DD), today by default"
// @Param days query int false "Window length in days"
// @Success 200 {object} response.Data[dto.UpcomingResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/arrivals [get]
// @Security BearerAuth
func (handler *Handler) Arrivals(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Arrivals")
	defer scope.End()

	asOf, days, err := window(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpcomingArrivals(ctx, asOf, days)
	if err != nil {
		scope.TraceError(err)
		handler.fail(w, err, "failed to get upcoming arrivals")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Departures lists in-stay bookings checking out within the next days.
// @Summary Upcoming departures
// @Tags Report
// @Produce json
// @Param as_of query string false "First day (YYYY-MM-DD), today by default"
// @Param days query int false "Window length in days"
// @Success 200 {object} response.Data[dto.UpcomingResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/departures [get]
// @Security BearerAuth
func (handler *Handler) Departures(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Departures")
	defer scope.End()

	asOf, days, err := window(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpcomingDepartures(ctx, asOf, days)
	if err != nil {
		scope.TraceError(err)
		handler.fail(w, err, "failed to get upcoming departures")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Summary is the front-desk dashboard for one day.
// @Summary Daily summary
// @Tags Report
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD), today by default"
// @Success 200 {object} response.Data[dto.DailySummaryResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/summary [get]
// @Security BearerAuth
func (handler *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Summary")
	defer scope.End()

	date, err := request.Date(r, constant.RequestParamDate)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.DailySummary(ctx, date)
	if err != nil {
		scope.TraceError(err)
		handler.fail(w, err, "failed to get daily summary")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func window(r *http.Request) (asOf time.Time, days int, err error) {
	if asOf, err = request.Date(r, constant.RequestParamAsOf); err != nil {
		return asOf, 0, err
	}

	days, err = request.Int(r, constant.RequestParamDays)

	return asOf, days, err
}
