package model

import (
	"hotel/shared/model"
	"time"
)

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID           = "id"
	FieldNationalID   = "national_id"
	FieldName         = "name"
	FieldPhone        = "phone"
	FieldEmail        = "email"
	FieldRegisteredAt = "registered_at"
)

type Guest struct {
	ID           string    `db:"id"`
	NationalID   string    `db:"national_id"`
	Name         string    `db:"name"`
	Phone        string    `db:"phone"`
	Email        string    `db:"email"`
	Address      string    `db:"address"`
	Nationality  string    `db:"nationality"`
	RegisteredAt time.Time `db:"registered_at"`
	model.Metadata
}
