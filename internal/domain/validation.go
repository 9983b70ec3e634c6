package domain

// ConflictKind classifies a blocking conflict found during availability validation
type ConflictKind string

const (
	// ConflictRoomUnavailable unknown room id, nothing else was checked
	ConflictRoomUnavailable ConflictKind = "room_unavailable"

	// ConflictInvalidRange candidate check-out is not strictly after check-in
	ConflictInvalidRange ConflictKind = "invalid_range"

	// ConflictReservationOverlap the candidate range overlaps an existing reservation
	ConflictReservationOverlap ConflictKind = "reservation_overlap"

	// ConflictDataUnavailable the reservation store could not be read
	ConflictDataUnavailable ConflictKind = "data_unavailable"
)

// ConflictSeverity severity of a conflict descriptor; blocking conflicts are errors
type ConflictSeverity string

const (
	SeverityError ConflictSeverity = "error"
)

// Conflict is a blocking conflict descriptor. Any conflict makes the
// validated range invalid.
type Conflict struct {
	Kind          ConflictKind
	Severity      ConflictSeverity
	Message       string
	ReservationID *int64 // set for reservation_overlap conflicts
}

// WarningKind classifies a non-blocking advisory emitted during validation
type WarningKind string

const (
	WarningSingleNight     WarningKind = "single_night"
	WarningWeekendCheckIn  WarningKind = "weekend_checkin"
	WarningWeekendCheckOut WarningKind = "weekend_checkout"
	WarningEarlyCheckIn    WarningKind = "early_checkin"
	WarningLateCheckIn     WarningKind = "late_checkin"
)

// Warning is a non-blocking advisory descriptor. Warnings never affect validity.
type Warning struct {
	Kind    WarningKind
	Message string
}

// ValidationResult is the outcome of classifying a candidate (room, range)
// against existing reservations and policy rules.
//
// Invariant: Conflicts is non-empty if and only if Valid is false.
// AlternativeRooms, when present, are free for the exact candidate range,
// ordered same-or-higher category first, and capped at MaxAlternativeRooms.
type ValidationResult struct {
	Valid            bool
	Conflicts        []Conflict
	Warnings         []Warning
	AlternativeRooms []Room
}

// HasConflicts returns true if at least one blocking conflict was found
func (v *ValidationResult) HasConflicts() bool {
	return len(v.Conflicts) > 0
}

// HasWarnings returns true if at least one advisory was emitted
func (v *ValidationResult) HasWarnings() bool {
	return len(v.Warnings) > 0
}
