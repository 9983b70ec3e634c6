package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusCheckedIn  ReservationStatus = "checked_in"
	StatusCheckedOut ReservationStatus = "checked_out"
	StatusCancelled  ReservationStatus = "cancelled"
	StatusNoShow     ReservationStatus = "no_show"
)

// Reservation represents a room reservation read from the reservation store.
// The occupied range is the half-open interval [CheckIn, CheckOut).
type Reservation struct {
	ID       int64
	RoomID   int64
	GuestID  int64
	CheckIn  time.Time
	CheckOut time.Time
	Status   ReservationStatus

	// Denormalized for display
	GuestName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation occupies its room range,
// i.e. it has not been cancelled and the guest did show up
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled && r.Status != StatusNoShow
}

// Overlaps reports whether the reservation's range shares at least one
// instant with [start, end). Touching endpoints do not overlap: a checkout
// at 11:00 and a new check-in at 11:00 the same day are compatible.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return RangesOverlap(r.CheckIn, r.CheckOut, start, end)
}

// Nights returns the number of nights covered by the reservation
func (r *Reservation) Nights() int {
	return NightsBetween(r.CheckIn, r.CheckOut)
}

// RangesOverlap reports whether the half-open ranges [a1, a2) and [b1, b2)
// share at least one instant: a1 < b2 AND a2 > b1
func RangesOverlap(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && a2.After(b1)
}

// NightsBetween returns the number of hotel nights between two timestamps,
// counted on calendar days (check-in 2025-08-10 15:00 to check-out
// 2025-08-11 11:00 is one night)
func NightsBetween(checkIn, checkOut time.Time) int {
	inDay := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, checkIn.Location())
	outDay := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, checkOut.Location())
	return int(outDay.Sub(inDay).Hours() / 24)
}

// IsWeekend returns true if the timestamp falls on a Saturday or Sunday
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
