package constant

import (
	"time"
)

const (
	ContextGuest  = "guest"
	ContextSystem = "system"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID   contextKey = "user_id"
	ContextKeyUserName contextKey = "user_name"
	ContextKeyUserRole contextKey = "user_role"
	ContextKeyTokenID  contextKey = "token_id"
)

const (
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
)

const (
	RequestParamID       = "id"
	RequestParamCategory = "category"
	RequestParamCheckIn  = "checkin"
	RequestParamCheckOut = "checkout"
	RequestParamDate     = "date"
	RequestParamStart    = "start"
	RequestParamEnd      = "end"
	RequestParamAsOf     = "as_of"
	RequestParamDays     = "days"
	RequestParamSearch   = "search"
	RequestParamSince    = "since"
)

const (
	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	MaxValueLimit       = 100
	DefaultValueSortBy  = "created_at"
	DefaultValueSortDir = "DESC"
)

const (
	FieldCreatedAt  = "created_at"
	FieldCreatedBy  = "created_by"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation      = "23505"
	PqErrorCodeFkViolation          = "23503"
	PqErrorCodeExclusionViolation   = "23P01"
	PqErrorCodeSerializationFailure = "40001"
	PqErrorCodeDeadlockDetected     = "40P01"
)

const (
	DateFormat     = time.RFC3339
	DateOnlyFormat = time.DateOnly
)

const (
	MinutesToSeconds = 60
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelExternalScopeName   = "external"
	OtelWorkerScopeName     = "worker"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRetryAfter         = "Retry-After"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderAPIKey             = "X-API-Key"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	EventDriverKafka    = "kafka"
	EventDriverRabbitMQ = "rabbitmq"
	EventDriverNoop     = "noop"

	DefaultEventTopic = "booking.lifecycle"
)

const (
	DefaultMaxGuests          = 6
	DefaultCodePrefix         = "RES"
	DefaultUpcomingWindowDays = 2
)

const (
	Asterix = "*"
	Empty   = ""
)

// CacheReportPrefix scopes every cached report. Writes that change rooms, guests or bookings clear it.
const CacheReportPrefix = "report:"
