package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

// Booking is the write side of the bookings table. Lifecycle mutations always go
// through a transaction.
type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

// Detail reads bookings joined with their room and guest.
type Detail interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingDetail, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingDetail, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type Audit interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Audit) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Audit, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type detailImpl struct {
	gRepo.Repository[model.BookingDetail]
}

func NewDetail(db *postgres.Connection, otel otel.Otel) Detail {
	return &detailImpl{
		Repository: gRepo.NewRepository[model.BookingDetail](model.EntityName+"_detail", model.TableName, model.FieldID, db, otel),
	}
}

type auditImpl struct {
	gRepo.Repository[model.Audit]
}

func NewAudit(db *postgres.Connection, otel otel.Otel) Audit {
	return &auditImpl{
		Repository: gRepo.NewRepository[model.Audit](model.AuditEntityName, model.AuditTableName, model.FieldID, db, otel),
	}
}
