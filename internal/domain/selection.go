package domain

import "time"

// SelectionState represents the state of the drag-to-create selection machine
type SelectionState string

const (
	StateIdle              SelectionState = "idle"
	StateSelectingCheckIn  SelectionState = "selecting_checkin"
	StateSelectingCheckOut SelectionState = "selecting_checkout"
	StateConfirming        SelectionState = "confirming"
	StateCreating          SelectionState = "creating"
)

// IsValid returns true if the state is one of the machine's states
func (s SelectionState) IsValid() bool {
	switch s {
	case StateIdle, StateSelectingCheckIn, StateSelectingCheckOut, StateConfirming, StateCreating:
		return true
	}
	return false
}

// Selection is the transient in-progress choice of a room and a candidate
// date range, owned by the selection machine. It is created when the user
// picks a check-in slot and discarded on cancel or on hand-off to booking
// creation.
type Selection struct {
	RoomID   int64
	CheckIn  time.Time
	CheckOut time.Time
}

// Nights returns the number of nights in the candidate range
func (s *Selection) Nights() int {
	return NightsBetween(s.CheckIn, s.CheckOut)
}

// IsChronological returns true if the candidate check-out is strictly after
// the check-in
func (s *Selection) IsChronological() bool {
	return s.CheckOut.After(s.CheckIn)
}
