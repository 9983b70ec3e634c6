package check_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// collectWarnings собирает неблокирующие предупреждения для кандидатного диапазона
// Порядок фиксированный: короткое проживание, выходные, раннее время заезда, позднее время заезда
// Предупреждения не влияют на валидность результата
func collectWarnings(checkIn, checkOut time.Time, policy Policy) []domain.Warning {
	warnings := make([]domain.Warning, 0)

	if domain.NightsBetween(checkIn, checkOut) == domain.SingleNightStay {
		warnings = append(warnings, domain.Warning{
			Kind:    domain.WarningSingleNight,
			Message: "Short stay: only one night selected",
		})
	}

	if domain.IsWeekend(checkIn) {
		warnings = append(warnings, domain.Warning{
			Kind:    domain.WarningWeekendCheckIn,
			Message: "Check-in falls on a weekend, expect peak occupancy",
		})
	}

	if domain.IsWeekend(checkOut) {
		warnings = append(warnings, domain.Warning{
			Kind:    domain.WarningWeekendCheckOut,
			Message: "Check-out falls on a weekend, expect peak occupancy",
		})
	}

	checkInTime := types.NewTimeString(checkIn)

	if checkInTime.IsBefore(policy.CheckInTime) {
		warnings = append(warnings, domain.Warning{
			Kind:    domain.WarningEarlyCheckIn,
			Message: fmt.Sprintf("Check-in before standard %s check-in time, early arrival must be arranged", policy.CheckInTime),
		})
	}

	if !checkInTime.IsBefore(policy.LateCheckInTime) {
		warnings = append(warnings, domain.Warning{
			Kind:    domain.WarningLateCheckIn,
			Message: fmt.Sprintf("Check-in after %s, late arrival must be arranged with reception", policy.LateCheckInTime),
		})
	}

	return warnings
}
