package models

import (
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	checkAvailability "github.com/m04kA/HMS-ReservationService/internal/usecase/check_availability"
)

// SelectionInfo неизменяемая копия текущего выбора (номер + кандидатный диапазон)
type SelectionInfo struct {
	RoomID     int64
	RoomNumber string
	CheckIn    time.Time
	CheckOut   time.Time
	Nights     int
}

// PreviewInfo неизменяемая копия последнего результата валидации выбора
// AlternativeRooms вынесены отдельным полем, чтобы UI мог предложить
// замену номера одним кликом
type PreviewInfo struct {
	Valid            bool
	Conflicts        []domain.Conflict
	Warnings         []domain.Warning
	AlternativeRooms []domain.Room
}

// FromValidation строит PreviewInfo из ответа детектора конфликтов
// Слайсы копируются: снимок не должен делить память с внутренним состоянием
func FromValidation(resp *checkAvailability.Response) *PreviewInfo {
	if resp == nil {
		return nil
	}

	preview := &PreviewInfo{
		Valid:            resp.Valid,
		Conflicts:        make([]domain.Conflict, len(resp.Conflicts)),
		Warnings:         make([]domain.Warning, len(resp.Warnings)),
		AlternativeRooms: make([]domain.Room, len(resp.AlternativeRooms)),
	}
	copy(preview.Conflicts, resp.Conflicts)
	copy(preview.Warnings, resp.Warnings)
	copy(preview.AlternativeRooms, resp.AlternativeRooms)

	return preview
}

// Snapshot неизменяемый снимок состояния машины выбора
// Возвращается каждой мутирующей операцией вместо доступа к внутренним структурам
type Snapshot struct {
	State     domain.SelectionState
	Selection *SelectionInfo // nil, пока заезд не выбран
	Preview   *PreviewInfo   // nil, пока не было ни одной валидации
}

// SessionView снимок сессии выбора вместе с данными для рендеринга:
// какие номера сейчас кликабельны для заезда и для выезда
type SessionView struct {
	SessionID string
	Snapshot  *Snapshot

	// SelectableCheckInRooms все номера фонда; непустой только в selecting_checkin
	SelectableCheckInRooms []int64

	// SelectableCheckOutRoom номер текущего выбора; задан только в selecting_checkout
	SelectableCheckOutRoom *int64
}

// CompletionResult результат завершения создания бронирования
// Reservation задан, только если машина была в состоянии creating и
// сервис бронирований подтвердил запись
type CompletionResult struct {
	Snapshot    *Snapshot
	Reservation *CreatedReservation
}

// CreatedReservation созданное бронирование, возвращённое сервисом бронирований
type CreatedReservation struct {
	ID       int64
	RoomID   int64
	CheckIn  time.Time
	CheckOut time.Time
	Status   string
}
