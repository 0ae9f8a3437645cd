package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	authMocks "hotel/internal/domains/auth/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/handlers/auth"
	"hotel/shared/constant"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T, staffID string) (*authMocks.MockAuth, chi.Router) {
	t.Helper()

	service := authMocks.NewMockAuth(gomock.NewController(t))
	handler := auth.New(service, mocks.NewOtel())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if staffID != "" {
				r = r.WithContext(context.WithValue(r.Context(), constant.ContextKeyUserID, staffID))
			}

			next.ServeHTTP(w, r)
		})
	})
	handler.Router(router)

	return service, router
}

func serve(router chi.Router, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestHandler_Login(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(service *authMocks.MockAuth)
		wantCode int
		wantBody string
	}{
		{
			name: "success",
			body: `{"username":"admin","password":"admin12345"}`,
			setup: func(service *authMocks.MockAuth) {
				service.EXPECT().
					Login(gomock.Any(), dto.LoginRequest{Username: "admin", Password: "admin12345"}).
					Return(dto.LoginResponse{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"access_token":"access"`,
		},
		{
			name: "bad credentials",
			body: `{"username":"admin","password":"nope"}`,
			setup: func(service *authMocks.MockAuth) {
				service.EXPECT().
					Login(gomock.Any(), gomock.Any()).
					Return(dto.LoginResponse{}, failure.Unauthorized("invalid username or password"))
			},
			wantCode: http.StatusUnauthorized,
			wantBody: `"kind":"unauthorized"`,
		},
		{
			name: "deactivated account",
			body: `{"username":"clerk","password":"secret123"}`,
			setup: func(service *authMocks.MockAuth) {
				service.EXPECT().
					Login(gomock.Any(), gomock.Any()).
					Return(dto.LoginResponse{}, failure.Forbidden("staff account is deactivated"))
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "missing password",
			body:     `{"username":"admin"}`,
			setup:    func(_ *authMocks.MockAuth) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed json",
			body:     `{"username":`,
			setup:    func(_ *authMocks.MockAuth) {},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, router := setup(t, "")
			tt.setup(service)

			rec := serve(router, http.MethodPost, "/auth/login", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandler_Profile(t *testing.T) {
	service, router := setup(t, "staff-1")

	service.EXPECT().
		Profile(gomock.Any(), "staff-1").
		Return(dto.ProfileResponse{ID: "staff-1", Username: "clerk", Role: constant.RoleReceptionist}, nil)

	rec := serve(router, http.MethodGet, "/auth/me", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"clerk"`)
}

func TestHandler_ChangePassword(t *testing.T) {
	service, router := setup(t, "staff-1")

	service.EXPECT().
		ChangePassword(gomock.Any(), dto.ChangePasswordRequest{CurrentPassword: "old-secret", NewPassword: "new-secret"}, "staff-1").
		Return(nil)

	rec := serve(router, http.MethodPut, "/auth/password", `{"current_password":"old-secret","new_password":"new-secret"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password changed successfully")
}

func TestHandler_ChangePasswordSameAsCurrent(t *testing.T) {
	_, router := setup(t, "staff-1")

	rec := serve(router, http.MethodPut, "/auth/password", `{"current_password":"same-secret","new_password":"same-secret"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_RegisterStaffInvalidRole(t *testing.T) {
	_, router := setup(t, "admin-1")

	rec := serve(router, http.MethodPost, "/auth/staff", `{"username":"clerk2","password":"secret123","full_name":"Clerk Two","role":"manager"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
