package select_checkout

import (
	"fmt"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// SelectCheckOutRequest HTTP запрос выбора даты выезда
// Confirm=true означает намерение сразу перейти к подтверждению,
// если выбранный диапазон валиден
type SelectCheckOutRequest struct {
	RoomID  int64  `json:"roomId"`
	Date    string `json:"date"` // YYYY-MM-DD
	Confirm bool   `json:"confirm"`
}

// ParseDate парсит дату выезда из тела запроса
func (r *SelectCheckOutRequest) ParseDate() (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", r.Date, err)
	}
	return date, nil
}
