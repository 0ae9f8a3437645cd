// Package stay holds the date-interval rules shared by availability, the booking
// lifecycle and reporting. Every stay is the half-open interval [CheckIn, CheckOut):
// the checkout day itself is free for the next arrival.
package stay

import (
	"hotel/shared/constant"
	"hotel/shared/failure"
	"time"
)

const hoursPerDay = 24

// Date truncates t to its civil date, expressed as midnight UTC.
func Date(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a YYYY-MM-DD string.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(constant.DateOnlyFormat, value)
	if err != nil {
		return time.Time{}, failure.InvalidInput("date must use the YYYY-MM-DD format") // nolint:wrapcheck
	}

	return t, nil
}

// FormatDate renders a civil date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return Date(t).Format(constant.DateOnlyFormat)
}

type Range struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewRange normalises both ends to civil dates and rejects empty or inverted ranges.
func NewRange(checkIn, checkOut time.Time) (Range, error) {
	r := Range{CheckIn: Date(checkIn), CheckOut: Date(checkOut)}

	if !r.CheckOut.After(r.CheckIn) {
		return Range{}, failure.InvalidDateRange("checkout date must be after checkin date") // nolint:wrapcheck
	}

	return r, nil
}

// Overlaps applies NOT (a.checkout <= b.checkin OR a.checkin >= b.checkout).
func (r Range) Overlaps(other Range) bool {
	return !(!r.CheckOut.After(other.CheckIn) || !r.CheckIn.Before(other.CheckOut))
}

// Covers reports whether day falls in [CheckIn, CheckOut): a night of a stay, or a day of a
// reporting window.
func (r Range) Covers(day time.Time) bool {
	d := Date(day)

	return !d.Before(r.CheckIn) && d.Before(r.CheckOut)
}

func (r Range) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / hoursPerDay)
}
