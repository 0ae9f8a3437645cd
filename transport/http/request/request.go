package request

import (
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/stay"
	"net/http"
	"strconv"
	"time"
)

// Date reads a YYYY-MM-DD query parameter. A missing parameter yields the zero time.
func Date(r *http.Request, key string) (time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == constant.Empty {
		return time.Time{}, nil
	}

	day, err := stay.ParseDate(value)
	if err != nil {
		return time.Time{}, failure.InvalidInput(key + " must use the YYYY-MM-DD format") // nolint:wrapcheck
	}

	return day, nil
}

// OptionalDate is Date returning nil when the parameter is missing.
func OptionalDate(r *http.Request, key string) (*time.Time, error) {
	day, err := Date(r, key)
	if err != nil || day.IsZero() {
		return nil, err
	}

	return &day, nil
}

// Int reads a non-negative integer query parameter. A missing parameter yields 0.
func Int(r *http.Request, key string) (int, error) {
	value := r.URL.Query().Get(key)
	if value == constant.Empty {
		return 0, nil
	}

	number, err := strconv.Atoi(value)
	if err != nil || number < 0 {
		return 0, failure.InvalidInput(key + " must be a non-negative integer") // nolint:wrapcheck
	}

	return number, nil
}

func String(r *http.Request, key string) string {
	return r.URL.Query().Get(key)
}
