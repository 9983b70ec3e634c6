package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория чтения бронирований
type ReservationRepository interface {
	// ListForRoomInRange получает активные бронирования номера, пересекающиеся с [rangeStart, rangeEnd)
	ListForRoomInRange(ctx context.Context, roomID int64, rangeStart, rangeEnd time.Time, excludeID *int64) ([]*domain.Reservation, error)
}

// RoomRepository интерфейс репозитория номерного фонда
type RoomRepository interface {
	// List получает все номера отеля в стабильном порядке
	List(ctx context.Context) ([]*domain.Room, error)
}

// TransactionManager интерфейс для управления транзакциями
// Проверка и подбор альтернатив выполняются в одной read-only транзакции,
// чтобы сканирование видело согласованный снимок бронирований
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
