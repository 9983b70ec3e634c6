package selection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	roomRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/room"
	"github.com/m04kA/HMS-ReservationService/internal/service/selection/models"
	checkAvailability "github.com/m04kA/HMS-ReservationService/internal/usecase/check_availability"
)

// Machine конечный автомат выбора диапазона "в два клика":
// сначала слот заезда, затем слот выезда с живой валидацией через
// детектор конфликтов
//
// Состояния: idle -> selecting_checkin -> selecting_checkout -> confirming -> creating -> idle
// Отмена из любого неначального состояния возвращает машину в idle
//
// Машина не потокобезопасна: сериализацию обращений обеспечивает
// владеющая ею сессия (единственный путь мутации состояния)
type Machine struct {
	state     domain.SelectionState
	selection *domain.Selection
	room      *domain.Room                // резолвленный номер текущего выбора
	preview   *checkAvailability.Response // последний результат валидации

	checker AvailabilityChecker
	rooms   RoomRepository
	anchors Anchors
	logger  Logger
}

// NewMachine создает машину выбора в состоянии idle
func NewMachine(checker AvailabilityChecker, rooms RoomRepository, anchors Anchors, logger Logger) *Machine {
	return &Machine{
		state:   domain.StateIdle,
		checker: checker,
		rooms:   rooms,
		anchors: anchors,
		logger:  logger,
	}
}

// State возвращает текущее состояние машины
func (m *Machine) State() domain.SelectionState {
	return m.state
}

// Enable включает режим выбора
// Допустимо только из idle; из любого другого состояния возвращается
// ErrIllegalTransition, состояние не меняется
func (m *Machine) Enable() (*models.Snapshot, error) {
	if m.state != domain.StateIdle {
		return nil, fmt.Errorf("%w: enable is only valid in %s, current state is %s",
			ErrIllegalTransition, domain.StateIdle, m.state)
	}

	m.state = domain.StateSelectingCheckIn
	return m.snapshot(), nil
}

// SelectCheckIn фиксирует слот заезда
//
// Строит выбор с заездом в якорное время на выбранную дату и выездом
// по умолчанию через одну ночь, сразу валидирует диапазон и переходит в
// selecting_checkout независимо от валидности: конфликт диапазона по
// умолчанию показывается в предпросмотре, пользователь исправляет его
// перетаскиванием выезда
func (m *Machine) SelectCheckIn(ctx context.Context, roomID int64, date time.Time) (*models.Snapshot, error) {
	if m.state != domain.StateSelectingCheckIn {
		return nil, fmt.Errorf("%w: selectCheckIn is only valid in %s, current state is %s",
			ErrIllegalTransition, domain.StateSelectingCheckIn, m.state)
	}

	room, err := m.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, fmt.Errorf("%w: room %d", ErrRoomNotFound, roomID)
		}
		return nil, fmt.Errorf("%w: failed to resolve room %d: %v", ErrInternal, roomID, err)
	}

	checkIn := m.anchors.CheckInTime.At(date)
	checkOut := m.anchors.CheckOutTime.At(date.AddDate(0, 0, 1))

	preview, err := m.checker.Execute(ctx, &checkAvailability.Request{
		RoomID:   roomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		// Детектор выражает недоступность данных конфликтом, а не ошибкой;
		// ошибка здесь означает некорректный запрос и состояние не меняет
		return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}

	m.selection = &domain.Selection{
		RoomID:   roomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}
	m.room = room
	m.preview = preview
	m.state = domain.StateSelectingCheckOut

	m.logger.Info("Selection: check-in picked, room=%d, range=[%s, %s), valid=%t",
		roomID, checkIn.Format(domain.DateTimeFormat), checkOut.Format(domain.DateTimeFormat), preview.Valid)

	return m.snapshot(), nil
}

// SelectCheckOut двигает слот выезда
//
// Вызывается на каждом шаге перетаскивания (isConfirming=false) и на
// отпускании (isConfirming=true). Выбор другого номера и выезд не позже
// заезда отклоняются без изменения состояния и предпросмотра. Переход в
// confirming происходит только при isConfirming=true и валидном свежем
// результате; иначе машина остаётся в selecting_checkout с обновлённым
// предпросмотром
func (m *Machine) SelectCheckOut(ctx context.Context, roomID int64, date time.Time, isConfirming bool) (*models.Snapshot, error) {
	if m.state != domain.StateSelectingCheckOut {
		return nil, fmt.Errorf("%w: selectCheckOut is only valid in %s, current state is %s",
			ErrIllegalTransition, domain.StateSelectingCheckOut, m.state)
	}

	if roomID != m.selection.RoomID {
		return nil, fmt.Errorf("%w: selection is for room %d, got %d", ErrRoomMismatch, m.selection.RoomID, roomID)
	}

	checkOut := m.anchors.CheckOutTime.At(date)
	if !checkOut.After(m.selection.CheckIn) {
		return nil, fmt.Errorf("%w: %s is not after %s", ErrCheckOutNotAfterCheckIn,
			checkOut.Format(domain.DateTimeFormat), m.selection.CheckIn.Format(domain.DateTimeFormat))
	}

	preview, err := m.checker.Execute(ctx, &checkAvailability.Request{
		RoomID:   roomID,
		CheckIn:  m.selection.CheckIn,
		CheckOut: checkOut,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}

	m.selection.CheckOut = checkOut
	m.preview = preview

	if isConfirming && preview.Valid {
		m.state = domain.StateConfirming
	}

	m.logger.Info("Selection: check-out moved, room=%d, range=[%s, %s), valid=%t, confirming=%t, state=%s",
		roomID, m.selection.CheckIn.Format(domain.DateTimeFormat), checkOut.Format(domain.DateTimeFormat),
		preview.Valid, isConfirming, m.state)

	return m.snapshot(), nil
}

// ConfirmSelection подтверждает выбор и передаёт финализированную тройку
// (номер, заезд, выезд) на создание бронирования
// Допустимо только из confirming; машина переходит в creating
func (m *Machine) ConfirmSelection() (*models.Snapshot, error) {
	if m.state != domain.StateConfirming {
		return nil, fmt.Errorf("%w: confirmSelection is only valid in %s, current state is %s",
			ErrIllegalTransition, domain.StateConfirming, m.state)
	}

	m.state = domain.StateCreating
	return m.snapshot(), nil
}

// CompleteCreation завершает цикл создания и возвращает машину в idle
// Штатно вызывается из creating, но терпим к любому состоянию:
// работает как страховочный сброс
func (m *Machine) CompleteCreation() (*models.Snapshot, error) {
	m.reset()
	return m.snapshot(), nil
}

// Disable выключает режим выбора, отбрасывая незавершённый выбор и
// предпросмотр. Всегда успешен; в idle является no-op
func (m *Machine) Disable() (*models.Snapshot, error) {
	m.reset()
	return m.snapshot(), nil
}

// reset отбрасывает выбор и предпросмотр, возвращая машину в idle
func (m *Machine) reset() {
	m.state = domain.StateIdle
	m.selection = nil
	m.room = nil
	m.preview = nil
}

// Selection возвращает копию текущего выбора или nil, если заезд не выбран
func (m *Machine) Selection() *domain.Selection {
	if m.selection == nil {
		return nil
	}
	copied := *m.selection
	return &copied
}

// Snapshot возвращает неизменяемый снимок текущего состояния машины
func (m *Machine) Snapshot() *models.Snapshot {
	return m.snapshot()
}

// snapshot строит снимок текущего состояния
// Снимки не делят память с внутренними структурами машины
func (m *Machine) snapshot() *models.Snapshot {
	snap := &models.Snapshot{
		State:   m.state,
		Preview: models.FromValidation(m.preview),
	}

	if m.selection != nil {
		snap.Selection = &models.SelectionInfo{
			RoomID:     m.selection.RoomID,
			RoomNumber: m.room.Number,
			CheckIn:    m.selection.CheckIn,
			CheckOut:   m.selection.CheckOut,
			Nights:     m.selection.Nights(),
		}
	}

	return snap
}
