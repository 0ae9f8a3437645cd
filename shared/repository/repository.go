package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/logger"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("required filter")

const lockForUpdate = "FOR UPDATE"

type column struct {
	name  string
	table string
	alias string
}

func (c column) expression() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return fmt.Sprintf("%s.%s AS %s", c.table, c.name, c.alias)
	default:
		return c.table + "." + c.name
	}
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository maps T onto one table through its db tags. Fields tagged with another
// table are read through the join T returns from GetJoinQuery and never written.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []column
	insertColumns []string
	join          string
}

type joiner interface {
	GetJoinQuery() string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	join := ""
	if j, ok := any(zero).(joiner); ok {
		join = j.GetJoinQuery()
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columns,
		insertColumns: insertColumns,
		join:          join,
	}
}

func (repo *Repository[T]) scope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, operation))
}

func (repo *Repository[T]) fail(scope otel.Scope, err error, action string) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) insertQuery() string {
	placeholders := make([]string, len(repo.insertColumns))
	for i, col := range repo.insertColumns {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.insertColumns, ", "), strings.Join(placeholders, ", "))
}

func (repo *Repository[T]) selectList(only ...string) string {
	expressions := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		expressions = append(expressions, col.expression())
	}

	return strings.Join(expressions, ", ")
}

// selectQuery renders a SELECT over the table and its join. Pagination applies only
// with a positive Limit; ordering only with both SortBy and SortDir.
func (repo *Repository[T]) selectQuery(params dto.QueryParams, filter dto.FilterGroup, lock string, only ...string) (string, map[string]any) {
	where, args := whereClause(filter)
	parts := []string{"SELECT", repo.selectList(only...), "FROM", repo.table, repo.join, where}

	if params.SortBy != "" && params.SortDir != "" {
		parts = append(parts, "ORDER BY", params.SortBy, params.SortDir)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		parts = append(parts, "LIMIT :limit")

		if params.Page > 0 {
			args["offset"] = (params.Page - 1) * params.Limit
			parts = append(parts, "OFFSET :offset")
		}
	}

	parts = append(parts, lock)

	return join(parts), args
}

func (repo *Repository[T]) countQuery(filter dto.FilterGroup) (string, map[string]any) {
	where, args := whereClause(filter)

	return join([]string{fmt.Sprintf("SELECT COUNT(%s.%s) FROM", repo.table, repo.primaryColumn), repo.table, repo.join, where}), args
}

func (repo *Repository[T]) existQuery(filter dto.FilterGroup) (string, map[string]any, error) {
	where, args := whereClause(filter)
	if where == "" {
		return "", nil, errRequiredFilter
	}

	return fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where), args, nil
}

// updateQuery sets the given columns in a stable order. An empty filter is refused so a
// missing predicate never rewrites the whole table.
func (repo *Repository[T]) updateQuery(fields map[string]any, filter dto.FilterGroup) (string, map[string]any, error) {
	where, args := whereClause(filter)
	if where == "" {
		return "", nil, errRequiredFilter
	}

	assignments := []string{}
	for _, col := range slices.Sorted(maps.Keys(fields)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
	}

	maps.Copy(args, fields)

	return fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments, ", "), where), args, nil
}

func (repo *Repository[T]) insert(ctx context.Context, exec execer, operation string, model T) error {
	ctx, scope := repo.scope(ctx, operation)
	defer scope.End()

	query := repo.insertQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, err, "insert data")
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, repo.db.Write, "Insert", model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.insert(ctx, sqltx, "InsertTx", model)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	query, args, err := repo.existQuery(filter)
	if err != nil {
		return false, err
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	exist := false
	if err := getOne(ctx, repo.db.Read, query, args, &exist); err != nil {
		return false, repo.fail(scope, err, "check exist data")
	}

	return exist, nil
}

func (repo *Repository[T]) get(ctx context.Context, db preparer, operation string, filter dto.FilterGroup, lock string, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, operation)
	defer scope.End()

	query, args := repo.selectQuery(dto.QueryParams{}, filter, lock, columns...)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var model T

	err := getOne(ctx, db, query, args, &model)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, err, "get data")
	}

	return model, nil
}

// Get returns the zero value of T when no row matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, repo.db.Read, "Get", filter, "", columns...)
}

// GetForUpdateTx locks the matched row until sqltx ends.
func (repo *Repository[T]) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, sqltx, "GetForUpdateTx", filter, lockForUpdate, columns...)
}

func (repo *Repository[T]) getAll(ctx context.Context, db preparer, operation string, params dto.QueryParams, filter dto.FilterGroup, lock string, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, operation)
	defer scope.End()

	query, args := repo.selectQuery(params, filter, lock, columns...)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var models []T

	prepare, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return models, repo.fail(scope, err, "prepare statement")
	}
	defer prepare.Close()

	if err := prepare.SelectContext(ctx, &models, args); err != nil {
		return models, repo.fail(scope, err, "get all data")
	}

	return models, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, repo.db.Read, "GetAll", params, filter, "", columns...)
}

func (repo *Repository[T]) GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, sqltx, "GetAllTx", params, filter, "", columns...)
}

// GetAllForUpdateTx locks every matched row until sqltx ends. Callers pass a stable
// ordering so concurrent lockers acquire rows in the same sequence.
func (repo *Repository[T]) GetAllForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, sqltx, "GetAllForUpdateTx", params, filter, lockForUpdate, columns...)
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	query, args := repo.countQuery(filter)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int
	if err := getOne(ctx, repo.db.Read, query, args, &count); err != nil {
		return 0, repo.fail(scope, err, "count data")
	}

	return count, nil
}

func (repo *Repository[T]) update(ctx context.Context, exec execer, operation string, fields map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, operation)
	defer scope.End()

	query, args, err := repo.updateQuery(fields, filter)
	if err != nil {
		return err
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, err, "update data")
	}

	return nil
}

func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, repo.db.Write, "Update", fields, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, fields map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, sqltx, "UpdateTx", fields, filter)
}

func getOne(ctx context.Context, db preparer, query string, args map[string]any, dest any) error {
	prepare, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer prepare.Close()

	return prepare.GetContext(ctx, dest, args) //nolint:wrapcheck
}

func whereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

func join(parts []string) string {
	return strings.Join(slices.DeleteFunc(parts, func(part string) bool { return part == "" }), " ")
}

// getColumns walks db tags, descending into embedded structs. A table tag marks a
// joined column; a column tag reads another column name into the db-tagged field.
func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, embeddedInsert := getColumns(table, field.Type)
			columns = append(columns, embedded...)
			insertColumns = append(insertColumns, embeddedInsert...)
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}

		fieldTable := field.Tag.Get("table")
		if fieldTable == "" {
			fieldTable = table
		}

		if fieldTable == table {
			insertColumns = append(insertColumns, dbTag)
		}

		if name := field.Tag.Get("column"); name != "" {
			columns = append(columns, column{name: name, table: fieldTable, alias: dbTag})
		} else {
			columns = append(columns, column{name: dbTag, table: fieldTable})
		}
	}

	return columns, insertColumns
}
