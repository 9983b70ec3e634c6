package selection

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/internal/integrations/bookingservice"
	checkAvailability "github.com/m04kA/HMS-ReservationService/internal/usecase/check_availability"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// AvailabilityChecker интерфейс детектора конфликтов
// Вся логика доступности делегируется ему; машина выбора только хранит
// состояние и управляет переходами
type AvailabilityChecker interface {
	Execute(ctx context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error)
}

// RoomRepository интерфейс репозитория номерного фонда
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]*domain.Room, error)
}

// BookingCreator интерфейс клиента сервиса создания бронирований
// Вызывается после подтверждения выбора с финализированной тройкой
type BookingCreator interface {
	CreateReservation(ctx context.Context, req *bookingservice.CreateReservationRequest) (*bookingservice.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Anchors якорное время заезда и выезда, применяемое к выбранным датам
// Кодирует стандартные часы пересменки отеля: заезд днём, выезд утром
type Anchors struct {
	CheckInTime  types.TimeString
	CheckOutTime types.TimeString
}

// DefaultAnchors возвращает стандартные якоря отеля
func DefaultAnchors() Anchors {
	return Anchors{
		CheckInTime:  domain.DefaultCheckInTime,
		CheckOutTime: domain.DefaultCheckOutTime,
	}
}
