package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/staff/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Staff interface {
	Insert(ctx context.Context, model model.StaffUser) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.StaffUser, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.StaffUser]
}

func New(db *postgres.Connection, otel otel.Otel) Staff {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.StaffUser](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func ByUsername(username string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldUsername, Value: username, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}
