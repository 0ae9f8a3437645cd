package guest_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	guestMocks "hotel/internal/domains/guest/mocks"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/handlers/guest"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const guestID = "6f1d2c3b-4a5e-4f60-8b7a-9c0d1e2f3a4b"

func setup(t *testing.T) (*guestMocks.MockGuestService, chi.Router) {
	t.Helper()

	service := guestMocks.NewMockGuestService(gomock.NewController(t))
	handler := guest.New(service, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return service, router
}

func serve(router chi.Router, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestHandler_RegisterGuest(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(service *guestMocks.MockGuestService)
		wantCode  int
		wantKind  failure.Kind
	}{
		{
			name: "registered",
			body: `{"national_id":"ID-7781","name":"Ada Lovelace","email":"ada@example.com"}`,
			setupMock: func(service *guestMocks.MockGuestService) {
				service.EXPECT().
					Register(gomock.Any(), dto.RegisterGuestRequest{NationalID: "ID-7781", Name: "Ada Lovelace", Email: "ada@example.com"}).
					Return(dto.GuestResponse{ID: guestID, NationalID: "ID-7781", Name: "Ada Lovelace"}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "blank national id",
			body:      `{"national_id":"  ","name":"Ada Lovelace"}`,
			setupMock: func(*guestMocks.MockGuestService) {},
			wantCode:  http.StatusBadRequest,
			wantKind:  failure.KindInvalidInput,
		},
		{
			name: "duplicate national id",
			body: `{"national_id":"ID-7781","name":"Ada Lovelace"}`,
			setupMock: func(service *guestMocks.MockGuestService) {
				service.EXPECT().Register(gomock.Any(), gomock.Any()).Return(dto.GuestResponse{}, failure.DuplicateGuest("a guest with this national id already exists"))
			},
			wantCode: http.StatusConflict,
			wantKind: failure.KindDuplicateGuest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, router := setup(t)
			tt.setupMock(service)

			rec := serve(router, http.MethodPost, "/guests/", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantKind != "" {
				assert.Contains(t, rec.Body.String(), string(tt.wantKind))
			}
		})
	}
}

func TestHandler_GetGuests(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{Page: 1, Limit: 10}, "ada").
		Return(dto.GetGuestsResponse{Guests: []dto.GuestResponse{{ID: guestID, Name: "Ada Lovelace"}}, TotalData: 1, TotalPage: 1}, nil)

	rec := serve(router, http.MethodGet, "/guests/?search=ada&sort_by=password", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ada Lovelace")
}

func TestHandler_GetGuest(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().Get(gomock.Any(), "missing").Return(dto.GuestResponse{}, failure.NotFound("guest"))

	rec := serve(router, http.MethodGet, "/guests/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_History(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().
		History(gomock.Any(), guestID).
		Return(dto.HistoryResponse{Guest: dto.GuestResponse{ID: guestID}, TotalBookings: 2, TotalNights: 5, TotalSpent: 375}, nil)

	rec := serve(router, http.MethodGet, "/guests/"+guestID+"/history", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_nights":5`)
}

func TestHandler_HistoryStoreDown(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().History(gomock.Any(), guestID).Return(dto.HistoryResponse{}, errors.New("connection reset"))

	rec := serve(router, http.MethodGet, "/guests/"+guestID+"/history", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
