package check_availability

import (
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// Request модель запроса проверки доступности номера
type Request struct {
	RoomID               int64     // ID номера
	CheckIn              time.Time // Начало кандидатного диапазона
	CheckOut             time.Time // Конец кандидатного диапазона (полуоткрытый интервал)
	ExcludeReservationID *int64    // Бронирование, исключаемое из проверки (при перемещении существующего)
}

// Response результат классификации кандидатного диапазона
// Инвариант: Conflicts непуст тогда и только тогда, когда Valid == false;
// предупреждения на валидность не влияют
type Response struct {
	RoomID   int64
	CheckIn  time.Time
	CheckOut time.Time

	Valid            bool
	Conflicts        []domain.Conflict
	Warnings         []domain.Warning
	AlternativeRooms []domain.Room // до domain.MaxAlternativeRooms свободных номеров той же или выше категории
}

// Policy политика стойки регистрации, влияющая на предупреждения
type Policy struct {
	CheckInTime     types.TimeString // якорное время заезда
	CheckOutTime    types.TimeString // якорное время выезда
	LateCheckInTime types.TimeString // порог позднего заезда
}

// DefaultPolicy возвращает стандартную политику отеля
func DefaultPolicy() Policy {
	return Policy{
		CheckInTime:     domain.DefaultCheckInTime,
		CheckOutTime:    domain.DefaultCheckOutTime,
		LateCheckInTime: domain.DefaultLateCheckInTime,
	}
}
