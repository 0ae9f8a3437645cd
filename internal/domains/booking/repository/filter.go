package repository

import (
	"hotel/internal/domains/booking/model"
	gDto "hotel/shared/dto"
	"hotel/shared/stay"
	"time"
)

var (
	// ByCheckIn orders front-desk queues by arrival date, then confirmation code.
	ByCheckIn = gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldCheckInDate + " " + gDto.SortDirAsc + ", " + model.TableName + "." + model.FieldConfirmationCode,
		SortDir: gDto.SortDirAsc,
	}

	// ByCheckOut orders departure queues by checkout date, then confirmation code.
	ByCheckOut = gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldCheckOutDate + " " + gDto.SortDirAsc + ", " + model.TableName + "." + model.FieldConfirmationCode,
		SortDir: gDto.SortDirAsc,
	}

	// Newest lists the most recent bookings first.
	Newest = gDto.QueryParams{
		SortBy:  model.TableName + ".created_at " + gDto.SortDirDesc + ", " + model.TableName + "." + model.FieldID,
		SortDir: gDto.SortDirDesc,
	}

	AuditTrail = gDto.QueryParams{
		SortBy:  model.FieldAuditCreatedAt + " " + gDto.SortDirAsc + ", " + model.FieldID,
		SortDir: gDto.SortDirAsc,
	}
)

func field(name string, value any, operator string) gDto.Filter {
	return gDto.Filter{ArgName: name + "_" + operator, Field: name, Value: value, Operator: operator, Table: model.TableName}
}

func and(filters ...any) gDto.FilterGroup {
	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

func StatusIn(statuses ...string) gDto.Filter {
	return field(model.FieldStatus, statuses, gDto.FilterOperatorIn)
}

func ByID(id string) gDto.FilterGroup {
	return and(field(model.FieldID, id, gDto.FilterOperatorEq))
}

func ByCode(code string) gDto.FilterGroup {
	return and(field(model.FieldConfirmationCode, code, gDto.FilterOperatorEq))
}

func ByGuest(guestID string) gDto.FilterGroup {
	return and(field(model.FieldGuestID, guestID, gDto.FilterOperatorEq))
}

// HoldingRooms matches the confirmed and in-stay bookings of roomIDs whose stay
// overlaps r. The SQL bounds are the overlap test itself; callers re-check with stay.
func HoldingRooms(roomIDs []string, r stay.Range) gDto.FilterGroup {
	return and(
		StatusIn(model.ActiveStatuses...),
		field(model.FieldRoomID, roomIDs, gDto.FilterOperatorIn),
		field(model.FieldCheckInDate, stay.FormatDate(r.CheckOut), gDto.FilterOperatorLess),
		field(model.FieldCheckOutDate, stay.FormatDate(r.CheckIn), gDto.FilterOperatorGreater),
	)
}

// Holding matches every confirmed and in-stay booking overlapping r.
func Holding(r stay.Range) gDto.FilterGroup {
	return and(
		StatusIn(model.ActiveStatuses...),
		field(model.FieldCheckInDate, stay.FormatDate(r.CheckOut), gDto.FilterOperatorLess),
		field(model.FieldCheckOutDate, stay.FormatDate(r.CheckIn), gDto.FilterOperatorGreater),
	)
}

// Covering matches the bookings occupying a room on the night of day.
func Covering(day time.Time) gDto.FilterGroup {
	return and(
		StatusIn(model.ActiveStatuses...),
		field(model.FieldCheckInDate, stay.FormatDate(day), gDto.FilterOperatorLessEq),
		field(model.FieldCheckOutDate, stay.FormatDate(day), gDto.FilterOperatorGreater),
	)
}

// PendingCheckIns matches confirmed bookings due on or before asOf.
func PendingCheckIns(asOf time.Time) gDto.FilterGroup {
	return and(
		field(model.FieldStatus, model.StatusConfirmed, gDto.FilterOperatorEq),
		field(model.FieldCheckInDate, stay.FormatDate(asOf), gDto.FilterOperatorLessEq),
	)
}

// PendingCheckOuts matches in-stay bookings leaving by the day after asOf.
func PendingCheckOuts(asOf time.Time) gDto.FilterGroup {
	return and(
		field(model.FieldStatus, model.StatusInStay, gDto.FilterOperatorEq),
		field(model.FieldCheckOutDate, stay.FormatDate(asOf.AddDate(0, 0, 1)), gDto.FilterOperatorLessEq),
	)
}

// CheckingInWithin matches non-cancelled bookings whose check-in date falls in r.
func CheckingInWithin(r stay.Range) gDto.FilterGroup {
	return and(
		field(model.FieldStatus, model.StatusCancelled, gDto.FilterOperatorNotEq),
		field(model.FieldCheckInDate, stay.FormatDate(r.CheckIn), gDto.FilterOperatorGreaterEq),
		field(model.FieldCheckInDate, stay.FormatDate(r.CheckOut), gDto.FilterOperatorLess),
	)
}

// Arriving matches confirmed bookings whose check-in date falls in r.
func Arriving(r stay.Range) gDto.FilterGroup {
	return and(
		field(model.FieldStatus, model.StatusConfirmed, gDto.FilterOperatorEq),
		field(model.FieldCheckInDate, stay.FormatDate(r.CheckIn), gDto.FilterOperatorGreaterEq),
		field(model.FieldCheckInDate, stay.FormatDate(r.CheckOut), gDto.FilterOperatorLess),
	)
}

// Departing matches held bookings whose checkout date falls in r.
func Departing(r stay.Range) gDto.FilterGroup {
	return and(
		StatusIn(model.ActiveStatuses...),
		field(model.FieldCheckOutDate, stay.FormatDate(r.CheckIn), gDto.FilterOperatorGreaterEq),
		field(model.FieldCheckOutDate, stay.FormatDate(r.CheckOut), gDto.FilterOperatorLess),
	)
}

// CreatedSince matches bookings created on or after since, any status.
func CreatedSince(since time.Time) gDto.FilterGroup {
	return and(field("created_at", since, gDto.FilterOperatorGreaterEq))
}

// ListFilter narrows a booking listing. Empty fields are ignored; From and To bound
// the check-in date as [From, To).
type ListFilter struct {
	Status  string
	GuestID string
	RoomID  string
	From    *time.Time
	To      *time.Time
}

func (f ListFilter) FilterGroup() gDto.FilterGroup {
	filters := []any{}

	if f.Status != "" {
		filters = append(filters, field(model.FieldStatus, f.Status, gDto.FilterOperatorEq))
	}

	if f.GuestID != "" {
		filters = append(filters, field(model.FieldGuestID, f.GuestID, gDto.FilterOperatorEq))
	}

	if f.RoomID != "" {
		filters = append(filters, field(model.FieldRoomID, f.RoomID, gDto.FilterOperatorEq))
	}

	if f.From != nil {
		filters = append(filters, field(model.FieldCheckInDate, stay.FormatDate(*f.From), gDto.FilterOperatorGreaterEq))
	}

	if f.To != nil {
		filters = append(filters, field(model.FieldCheckInDate, stay.FormatDate(*f.To), gDto.FilterOperatorLess))
	}

	return and(filters...)
}

func ForBooking(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldAuditBookingID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: model.AuditTableName},
		},
	}
}

// BilledTo matches the non-cancelled bookings of guestIDs.
func BilledTo(guestIDs []string) gDto.FilterGroup {
	return and(
		field(model.FieldStatus, model.StatusCancelled, gDto.FilterOperatorNotEq),
		field(model.FieldGuestID, guestIDs, gDto.FilterOperatorIn),
	)
}
