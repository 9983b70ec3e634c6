package selection

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/internal/integrations/bookingservice"
	"github.com/m04kA/HMS-ReservationService/internal/service/selection/models"
	"github.com/m04kA/HMS-ReservationService/pkg/ptr"
)

// sessionTTL сессии без активности дольше этого срока вычищаются
// при создании новой сессии; фоновых таймеров сервис не держит
const sessionTTL = 12 * time.Hour

// session одна сессия выбора: машина плюс мьютекс, сериализующий
// обращения к ней. Мьютекс - единственный путь мутации машины,
// параллельные запросы от двух вкладок одной стойки не гоняются
type session struct {
	mu         sync.Mutex
	machine    *Machine
	userID     int64
	lastActive time.Time
}

// Service реестр сессий выбора: одна живая машина на UI-сессию стойки
type Service struct {
	mu       sync.Mutex
	sessions map[string]*session

	checker        AvailabilityChecker
	roomRepo       RoomRepository
	bookingCreator BookingCreator
	anchors        Anchors
	logger         Logger
}

// NewService создает новый реестр сессий выбора
func NewService(
	checker AvailabilityChecker,
	roomRepo RoomRepository,
	bookingCreator BookingCreator,
	anchors Anchors,
	logger Logger,
) *Service {
	return &Service{
		sessions:       make(map[string]*session),
		checker:        checker,
		roomRepo:       roomRepo,
		bookingCreator: bookingCreator,
		anchors:        anchors,
		logger:         logger,
	}
}

// CreateSession создает новую сессию выбора и сразу включает машину
// Возвращает идентификатор сессии и снимок состояния selecting_checkin
func (s *Service) CreateSession(ctx context.Context, userID int64) (string, *models.Snapshot, error) {
	if userID <= 0 {
		return "", nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	machine := NewMachine(s.checker, s.roomRepo, s.anchors, s.logger)
	snap, err := machine.Enable()
	if err != nil {
		// Свежесозданная машина всегда в idle, сюда попасть нельзя
		return "", nil, fmt.Errorf("%w: enable on fresh machine: %v", ErrInternal, err)
	}

	sessionID := uuid.NewString()

	s.mu.Lock()
	s.pruneLocked(time.Now())
	s.sessions[sessionID] = &session{
		machine:    machine,
		userID:     userID,
		lastActive: time.Now(),
	}
	s.mu.Unlock()

	s.logger.Info("Selection: session %s created for user=%d", sessionID, userID)

	return sessionID, snap, nil
}

// pruneLocked удаляет давно неактивные сессии; вызывается под s.mu
func (s *Service) pruneLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastActive) > sessionTTL {
			delete(s.sessions, id)
			s.logger.Info("Selection: session %s expired and removed", id)
		}
	}
}

// getSession находит сессию по идентификатору
func (s *Service) getSession(sessionID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return sess, nil
}

// SelectCheckIn фиксирует слот заезда в сессии
func (s *Service) SelectCheckIn(ctx context.Context, sessionID string, roomID int64, date time.Time) (*models.Snapshot, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastActive = time.Now()

	return sess.machine.SelectCheckIn(ctx, roomID, date)
}

// SelectCheckOut двигает слот выезда в сессии
func (s *Service) SelectCheckOut(ctx context.Context, sessionID string, roomID int64, date time.Time, isConfirming bool) (*models.Snapshot, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastActive = time.Now()

	return sess.machine.SelectCheckOut(ctx, roomID, date, isConfirming)
}

// ConfirmSelection подтверждает выбор сессии
// Снимок содержит финализированную тройку для формы создания бронирования
func (s *Service) ConfirmSelection(ctx context.Context, sessionID string) (*models.Snapshot, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastActive = time.Now()

	return sess.machine.ConfirmSelection()
}

// CompleteCreation завершает цикл создания бронирования
//
// Если машина в состоянии creating, финализированная тройка передаётся
// сервису бронирований; его окончательная перепроверка доступности -
// последняя линия защиты от диапазона, занятого между предпросмотром и
// записью. В любом другом состоянии работает как страховочный сброс без
// создания бронирования. После успешного завершения сессия удаляется
func (s *Service) CompleteCreation(ctx context.Context, sessionID string) (*models.CompletionResult, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	result := &models.CompletionResult{}

	if sess.machine.State() == domain.StateCreating {
		sel := sess.machine.Selection()

		created, err := s.bookingCreator.CreateReservation(ctx, &bookingservice.CreateReservationRequest{
			RoomID:    sel.RoomID,
			CheckIn:   sel.CheckIn,
			CheckOut:  sel.CheckOut,
			CreatedBy: sess.userID,
		})
		if err != nil {
			if errors.Is(err, bookingservice.ErrReservationConflict) {
				// Диапазон успели занять: выбор сохраняется, пользователь
				// видит конфликт и двигает диапазон заново
				s.logger.Warn("Selection: session %s creation conflict, room=%d", sessionID, sel.RoomID)
				return nil, ErrCreationConflict
			}
			s.logger.Error("Selection: session %s creation failed: %v", sessionID, err)
			return nil, fmt.Errorf("%w: booking creation failed: %v", ErrInternal, err)
		}

		result.Reservation = &models.CreatedReservation{
			ID:       created.ID,
			RoomID:   created.RoomID,
			CheckIn:  created.CheckIn,
			CheckOut: created.CheckOut,
			Status:   created.Status,
		}

		s.logger.Info("Selection: session %s completed, reservation id=%d", sessionID, created.ID)
	}

	snap, err := sess.machine.CompleteCreation()
	if err != nil {
		return nil, fmt.Errorf("%w: complete creation: %v", ErrInternal, err)
	}
	result.Snapshot = snap

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	return result, nil
}

// Cancel выключает режим выбора, отбрасывая незавершённый выбор
// Сессия остаётся в реестре в состоянии idle
func (s *Service) Cancel(ctx context.Context, sessionID string) (*models.Snapshot, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastActive = time.Now()

	return sess.machine.Disable()
}

// View возвращает снимок сессии вместе с данными для рендеринга:
// какие номера сейчас кликабельны для заезда и для выезда
func (s *Service) View(ctx context.Context, sessionID string) (*models.SessionView, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	view := &models.SessionView{
		SessionID: sessionID,
		Snapshot:  sess.machine.Snapshot(),
	}

	switch sess.machine.State() {
	case domain.StateSelectingCheckIn:
		rooms, err := s.roomRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
		}
		ids := make([]int64, 0, len(rooms))
		for _, room := range rooms {
			ids = append(ids, room.ID)
		}
		view.SelectableCheckInRooms = ids

	case domain.StateSelectingCheckOut:
		sel := sess.machine.Selection()
		view.SelectableCheckOutRoom = ptr.Ptr(sel.RoomID)
	}

	return view, nil
}

// TimelineCell классифицирует ячейку таймлайна для рендеринга
func (s *Service) TimelineCell(sessionID string, roomID int64, date time.Time, half CellHalf) (CellState, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return CellNone, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.machine.CellState(roomID, date, half), nil
}
