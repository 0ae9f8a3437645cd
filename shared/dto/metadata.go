package dto

import (
	"hotel/shared/constant"
	"hotel/shared/model"
	"hotel/shared/timezone"
)

// Metadata renders model.Metadata in the property timezone. Actor ids are left out when
// the row was written by a migration or the worker.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	*m = Metadata{
		CreatedAt:  timezone.Format(source.CreatedAt, constant.DateFormat),
		ModifiedAt: timezone.Format(source.ModifiedAt, constant.DateFormat),
		CreatedBy:  source.CreatedBy,
		ModifiedBy: source.ModifiedBy,
	}

	if source.ModifiedAt.IsZero() {
		m.ModifiedAt = m.CreatedAt
	}
}
