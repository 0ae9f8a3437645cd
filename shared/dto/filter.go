package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterOperatorLess      = "less"
	FilterOperatorGreater   = "greater"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLess:      "<",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreater:   ">",
	FilterOperatorGreaterEq: ">=",
}

// Filter is one named-parameter predicate. ArgName defaults to Field and must be unique
// within a FilterGroup when the same column is bound twice (a date range, say).
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq less greater"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	column, argName := f.column(), f.argName()

	if op, ok := comparisons[f.Operator]; ok {
		args[argName] = f.Value

		return fmt.Sprintf("%s %s :%s", column, op, argName), args
	}

	switch f.Operator {
	case FilterOperatorLike:
		args[argName] = fmt.Sprintf("%%%s%%", f.Value)

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s) ", column, argName), args
	case FilterOperatorIn:
		return f.in(column, argName, args)
	default:
		return "", args
	}
}

// in expands a slice into one bind per element. An empty slice matches nothing.
func (f *Filter) in(column, argName string, args map[string]any) (string, map[string]any) {
	val := reflect.ValueOf(f.Value)
	if kind := val.Kind(); kind != reflect.Array && kind != reflect.Slice {
		args[argName] = f.Value

		return fmt.Sprintf("%s IN (:%s) ", column, argName), args
	}

	if val.Len() == 0 {
		return "FALSE", args
	}

	named := make([]string, val.Len())

	for idx := range val.Len() {
		name := fmt.Sprintf("%s_%d", argName, idx)
		args[name] = val.Index(idx).Interface()
		named[idx] = ":" + name
	}

	return fmt.Sprintf("%s IN (%s) ", column, strings.Join(named, ", ")), args
}

type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	whereClause := []string{}

	add := func(where string, arg map[string]any) {
		if where == "" {
			return
		}

		whereClause = append(whereClause, where)
		maps.Copy(args, arg)
	}

	for _, filter := range f.Filters {
		switch fill := filter.(type) {
		case Filter:
			add(fill.GetWhereClause())
		case FilterGroup:
			add(fill.GetWhereClause())
		}
	}

	if len(whereClause) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return fmt.Sprintf("(%s)", strings.Join(whereClause, " "+operator+" ")), args
}
