package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/room/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	GetAllForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// ActiveInCategory matches the active rooms of category, or every active room when
// category is empty.
func ActiveInCategory(category string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}

	if category != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldCategory, Value: category, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

// ByNumber orders rooms the way the allocator tie-breaks: room number, then id.
var ByNumber = gDto.QueryParams{
	SortBy:  model.FieldNumber + " " + gDto.SortDirAsc + ", " + model.FieldID,
	SortDir: gDto.SortDirAsc,
}

// ByCategoryAndNumber orders rooms for availability listings.
var ByCategoryAndNumber = gDto.QueryParams{
	SortBy:  model.FieldCategory + " " + gDto.SortDirAsc + ", " + model.FieldNumber + " " + gDto.SortDirAsc + ", " + model.FieldID,
	SortDir: gDto.SortDirAsc,
}
