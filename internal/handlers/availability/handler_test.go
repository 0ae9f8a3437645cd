package availability_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/infras/otel/mocks"
	availabilityMocks "hotel/internal/domains/availability/mocks"
	"hotel/internal/domains/availability/model/dto"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/internal/handlers/availability"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*availabilityMocks.MockAvailability, chi.Router) {
	t.Helper()

	service := availabilityMocks.NewMockAvailability(gomock.NewController(t))
	handler := availability.New(service, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return service, router
}

func get(router chi.Router, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestHandler_ListAvailability(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().
		ListAvailability(gomock.Any(), dto.AvailabilityRequest{Category: "Deluxe", CheckIn: "2026-03-01", CheckOut: "2026-03-03"}).
		Return(dto.AvailabilityResponse{}, nil)

	rec := get(router, "/availability/?category=Deluxe&checkin=2026-03-01&checkout=2026-03-03")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_ListAvailabilityMissingDates(t *testing.T) {
	_, router := setup(t)

	rec := get(router, "/availability/?category=Deluxe")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_FindFreeRoom(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().
		FindFreeRoom(gomock.Any(), dto.FreeRoomRequest{Category: "Suite", CheckIn: "2026-03-01", CheckOut: "2026-03-02"}).
		Return(roomDto.RoomResponse{Number: "301", Category: "Suite"}, nil)

	rec := get(router, "/availability/free-room?category=Suite&checkin=2026-03-01&checkout=2026-03-02")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"301"`)
}

func TestHandler_FindFreeRoomRequiresCategory(t *testing.T) {
	_, router := setup(t)

	rec := get(router, "/availability/free-room?checkin=2026-03-01&checkout=2026-03-02")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_FindFreeRoomNoneFree(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().
		FindFreeRoom(gomock.Any(), gomock.Any()).
		Return(roomDto.RoomResponse{}, failure.NoRoomAvailable("no Suite room is free for the stay"))

	rec := get(router, "/availability/free-room?category=Suite&checkin=2026-03-01&checkout=2026-03-02")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_Categories(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().
		Categories(gomock.Any()).
		Return(dto.CategoriesResponse{Categories: []string{"Deluxe", "Suite"}}, nil)

	rec := get(router, "/availability/categories")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Suite")
}
