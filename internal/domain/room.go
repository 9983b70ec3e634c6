package domain

// RoomCategory represents the comfort category of a room
type RoomCategory string

const (
	CategoryStandard RoomCategory = "standard"
	CategorySuperior RoomCategory = "superior"
	CategoryDeluxe   RoomCategory = "deluxe"
	CategorySuite    RoomCategory = "suite"
)

// categoryTiers порядок категорий от низшей к высшей
var categoryTiers = map[RoomCategory]int{
	CategoryStandard: 0,
	CategorySuperior: 1,
	CategoryDeluxe:   2,
	CategorySuite:    3,
}

// Tier returns the numeric tier of the category (higher is better).
// Unknown categories rank below standard.
func (c RoomCategory) Tier() int {
	tier, ok := categoryTiers[c]
	if !ok {
		return -1
	}
	return tier
}

// IsValid returns true if the category is one of the known categories
func (c RoomCategory) IsValid() bool {
	_, ok := categoryTiers[c]
	return ok
}

// Room represents a hotel room known to the front desk
type Room struct {
	ID           int64
	Number       string // display number, e.g. "301"
	Category     RoomCategory
	Premium      bool
	MaxOccupancy int
}

// SameOrHigherCategory returns true if the room's category is at the same
// tier as other or above it
func (r *Room) SameOrHigherCategory(other RoomCategory) bool {
	return r.Category.Tier() >= other.Tier()
}
