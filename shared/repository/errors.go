package repository

import (
	"errors"
	"hotel/shared/constant"

	"github.com/lib/pq"
)

// PqCode returns the SQLSTATE carried by a wrapped *pq.Error, or "".
func PqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// PqConstraint returns the violated constraint name carried by a wrapped *pq.Error.
func PqConstraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}

	return ""
}

// IsRetryable reports failures caused by a concurrent writer: serialization failures,
// deadlocks and exclusion constraint violations on overlapping stays.
func IsRetryable(err error) bool {
	switch PqCode(err) {
	case constant.PqErrorCodeSerializationFailure,
		constant.PqErrorCodeDeadlockDetected,
		constant.PqErrorCodeExclusionViolation:
		return true
	}

	return false
}

func IsUniqueViolation(err error) bool {
	return PqCode(err) == constant.PqErrorCodeUniqueViolation
}
