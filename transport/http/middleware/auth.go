package middleware

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/permissions"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

const skipAuth = SkipAuthKey("skip")

// Auth authenticates staff requests.
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role authorizes an authenticated staff member against permissions.json.
type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// route resolves the registered pattern for the request and its permission entry. Both
// are empty when the request matches no route; chi answers those with 404 or 405.
func (m *authRoleImpl) route(request *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return "", permissions.Permission{}
	}

	pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
	if m.permission == nil {
		return pattern, permissions.Permission{}
	}

	return pattern, m.permission.FindPermissions(pattern, request.Method)
}

func skipped(ctx context.Context) bool {
	skip, _ := ctx.Value(skipAuth).(bool)

	return skip
}

func reject(writer http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	scope.End()
	response.WithError(writer, err)
}

func tokenMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, jwt.ErrInvalidToken):
		return "Invalid token"
	case errors.Is(err, jwt.ErrInvalidClaim):
		return "Invalid token claims"
	default:
		return "Token validation failed"
	}
}

// Auth validates the bearer access token and puts the staff identity on the context.
// Routes marked skip in permissions.json and internal API key calls pass through.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		pattern, permission := m.route(request)
		if skipped(ctx) || permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       pattern,
			"http.method":     request.Method,
		})

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			reject(writer, scope, failure.Unauthorized("Missing authorization header"))

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			reject(writer, scope, failure.Unauthorized("Invalid authorization header format"))

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
		if err != nil {
			reject(writer, scope, failure.Unauthorized(tokenMessage(err)))

			return
		}

		if claims.UserID == "" || claims.Username == "" || claims.Role == "" {
			log.Error().Str("token_id", claims.TokenID).Msg("JWT claims: staff id, username or role is empty")
			reject(writer, scope, failure.Unauthorized("Invalid token claims"))

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserName, claims.Username)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		scope.SetAttribute("staff.role", claims.Role)
		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC lets the request through when the staff role is listed for the route. Routes
// without an entry in permissions.json are open to any authenticated staff member.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if skipped(ctx) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		_, permission := m.route(request)
		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !m.permission.Skip && !permission.Allows(role) {
			scope.SetAttributes(map[string]any{
				"staff.role":    role,
				"allowed_roles": permission.Permissions,
			})
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey marks calls from internal services. A wrong key is rejected outright; no key
// means a staff request that goes through Auth and RBAC.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, skipAuth, false)))

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == "" || apiKey != m.cfg.App.APIKey {
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, skipAuth, true)))
	})
}
