package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/guest/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Guest interface {
	Insert(ctx context.Context, model model.Guest) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Guest, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Guest, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Guest]
}

func New(db *postgres.Connection, otel otel.Otel) Guest {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Guest](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// Search matches guests by name or national id. An empty term matches everyone.
func Search(term string) gDto.FilterGroup {
	if term == "" {
		return gDto.FilterGroup{}
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{ArgName: "search_name", Field: model.FieldName, Value: term, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			gDto.Filter{ArgName: "search_national_id", Field: model.FieldNationalID, Value: term, Operator: gDto.FilterOperatorLike, Table: model.TableName},
		},
	}
}

func ByNationalID(nationalID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldNationalID, Value: nationalID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

// ByName orders guest listings alphabetically.
var ByName = gDto.QueryParams{
	SortBy:  model.FieldName + " " + gDto.SortDirAsc + ", " + model.FieldID,
	SortDir: gDto.SortDirAsc,
}
