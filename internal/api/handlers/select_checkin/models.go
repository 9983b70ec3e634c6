package select_checkin

import (
	"fmt"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// SelectCheckInRequest HTTP запрос выбора даты заезда
type SelectCheckInRequest struct {
	RoomID int64  `json:"roomId"`
	Date   string `json:"date"` // YYYY-MM-DD
}

// ParseDate парсит дату заезда из тела запроса
func (r *SelectCheckInRequest) ParseDate() (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", r.Date, err)
	}
	return date, nil
}
