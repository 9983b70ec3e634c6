package domain

import "github.com/m04kA/HMS-ReservationService/pkg/types"

// Default front-desk turnover policy
const (
	DefaultCheckInTime     types.TimeString = "15:00"
	DefaultCheckOutTime    types.TimeString = "11:00"
	DefaultLateCheckInTime types.TimeString = "22:00"
)

// Business validation constants
const (
	// MaxAlternativeRooms caps the number of alternative rooms suggested for a conflicted range
	MaxAlternativeRooms = 3

	// SingleNightStay number of nights that triggers the short-stay advisory
	SingleNightStay = 1
)

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04" // YYYY-MM-DD HH:MM
)

// InactiveStatuses список статусов, не участвующих в проверке пересечений
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses список статусов, занимающих номер
var ActiveStatuses = []ReservationStatus{
	StatusConfirmed,
	StatusCheckedIn,
	StatusCheckedOut,
}
