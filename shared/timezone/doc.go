// Package timezone pins wall-clock time to the property's timezone (APP_TIMEZONE).
//
// Stay dates are civil dates: a booking from 2024-06-01 to 2024-06-03 covers two nights
// wherever the server runs. Today and Clock.Today return the property's current date as
// midnight UTC, the same representation shared/stay uses, so "is check-in due" and
// "which night is occupied" compare dates and never instants.
//
// Timestamps that are instants (check-in/out actual times, audit entries, metadata) go
// through Now and Format and are rendered in the property timezone.
//
// Services take a Clock instead of calling Now directly; tests pass a FixedClock.
package timezone
