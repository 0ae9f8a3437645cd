package dto

import (
	"hotel/shared/constant"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

func positive(values url.Values, key string) int {
	n, err := strconv.Atoi(values.Get(key))
	if err != nil || n < 1 {
		return 0
	}

	return n
}

// FromRequest reads page, limit, sort_by and sort_dir. Malformed or non-positive numbers
// are ignored and limit is capped at constant.MaxValueLimit. With withDefaults, a missing
// page or limit falls back to the first page of constant.DefaultValueLimit rows.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	values := r.URL.Query()

	if page := positive(values, constant.RequestParamPage); page > 0 {
		q.Page = page
	}

	if limit := positive(values, constant.RequestParamLimit); limit > 0 {
		q.Limit = min(limit, constant.MaxValueLimit)
	}

	if sortBy := strings.TrimSpace(values.Get(constant.RequestParamSortBy)); sortBy != "" {
		q.SortBy = sortBy
	}

	if dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir == SortDirAsc || dir == SortDirDesc {
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

// Sanitize keeps SortBy only when it names an allowed column, since it is placed into the
// query verbatim. A kept column without a direction sorts ascending.
func (q *QueryParams) Sanitize(allowed ...string) {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy, q.SortDir = "", ""

		return
	}

	if q.SortDir == "" {
		q.SortDir = SortDirAsc
	}
}
