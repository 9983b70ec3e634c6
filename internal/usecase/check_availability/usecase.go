package check_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

const msgDataUnavailable = "Availability data is temporarily unavailable, please retry"

// UseCase use case проверки доступности номера на кандидатный диапазон
// Только читает состояние бронирований; ничего не записывает
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	txManager       TransactionManager
	policy          Policy
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	policy Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		txManager:       txManager,
		policy:          policy,
		logger:          logger,
	}
}

// Execute выполняет проверку доступности
//
// Ошибка возвращается только при некорректных входных данных; все
// содержательные исходы (номер не найден, диапазон занят, хранилище
// недоступно) выражаются конфликтами в Response, чтобы путь обработки
// на стороне UI был единообразным
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: room=%d, range=[%s, %s), exclude=%v",
		req.RoomID, req.CheckIn.Format(domain.DateTimeFormat), req.CheckOut.Format(domain.DateTimeFormat), req.ExcludeReservationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{
		RoomID:   req.RoomID,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
	}

	// 2. Проверка и подбор альтернатив в одной read-only транзакции:
	// сканирование номеров должно видеть один снимок бронирований
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		return uc.classify(txCtx, req, resp)
	})

	if err != nil {
		// Сбой чтения хранилища наружу не пробрасываем: результат принимает
		// форму конфликта, UI предлагает повторить попытку
		uc.logger.Error("CheckAvailability: reservation read failed for room=%d: %v", req.RoomID, err)
		return &Response{
			RoomID:   req.RoomID,
			CheckIn:  req.CheckIn,
			CheckOut: req.CheckOut,
			Valid:    false,
			Conflicts: []domain.Conflict{{
				Kind:     domain.ConflictDataUnavailable,
				Severity: domain.SeverityError,
				Message:  msgDataUnavailable,
			}},
		}, nil
	}

	uc.logger.Info("CheckAvailability: room=%d valid=%t conflicts=%d warnings=%d alternatives=%d",
		req.RoomID, resp.Valid, len(resp.Conflicts), len(resp.Warnings), len(resp.AlternativeRooms))

	return resp, nil
}

// classify наполняет resp конфликтами, предупреждениями и альтернативами
// Возвращает ошибку только при сбое чтения хранилища
func (uc *UseCase) classify(ctx context.Context, req *Request, resp *Response) error {
	// 2.1. Резолвим номер по списку номерного фонда
	rooms, err := uc.roomRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
	}

	room := findRoom(rooms, req.RoomID)
	if room == nil {
		// Неизвестный номер: единственный конфликт, дальнейшие проверки не выполняются
		resp.Valid = false
		resp.Conflicts = []domain.Conflict{{
			Kind:     domain.ConflictRoomUnavailable,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("Room %d is not available for booking", req.RoomID),
		}}
		return nil
	}

	// 2.2. Хронология диапазона: нарушение выражается конфликтом, не ошибкой
	if !req.CheckOut.After(req.CheckIn) {
		resp.Valid = false
		resp.Conflicts = []domain.Conflict{{
			Kind:     domain.ConflictInvalidRange,
			Severity: domain.SeverityError,
			Message:  "Check-out must be after check-in",
		}}
		return nil
	}

	// 2.3. Пересечения с существующими бронированиями
	reservations, err := uc.reservationRepo.ListForRoomInRange(ctx, req.RoomID, req.CheckIn, req.CheckOut, req.ExcludeReservationID)
	if err != nil {
		return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	conflicts := make([]domain.Conflict, 0)
	for _, res := range reservations {
		// Репозиторий уже фильтрует по пересечению, повторяем доменную
		// проверку как страховку от расхождения SQL условия с правилом
		if !res.IsActive() || !res.Overlaps(req.CheckIn, req.CheckOut) {
			continue
		}
		conflicts = append(conflicts, overlapConflict(res))
	}
	resp.Conflicts = conflicts
	resp.Valid = len(conflicts) == 0

	// 2.4. Предупреждения собираются независимо от конфликтов
	resp.Warnings = collectWarnings(req.CheckIn, req.CheckOut, uc.policy)

	// 2.5. Альтернативы подбираются только для занятого диапазона
	if len(conflicts) > 0 {
		alternatives, err := uc.findAlternatives(ctx, rooms, room, req.CheckIn, req.CheckOut)
		if err != nil {
			return err
		}
		resp.AlternativeRooms = alternatives
	}

	return nil
}

// overlapConflict строит конфликт пересечения с человекочитаемым сообщением,
// называющим занятый диапазон
func overlapConflict(res *domain.Reservation) domain.Conflict {
	id := res.ID
	return domain.Conflict{
		Kind:     domain.ConflictReservationOverlap,
		Severity: domain.SeverityError,
		Message: fmt.Sprintf("Room is occupied from %s to %s",
			res.CheckIn.Format(domain.DateTimeFormat), res.CheckOut.Format(domain.DateTimeFormat)),
		ReservationID: &id,
	}
}

// findRoom ищет номер по ID в списке номерного фонда
func findRoom(rooms []*domain.Room, roomID int64) *domain.Room {
	for _, room := range rooms {
		if room.ID == roomID {
			return room
		}
	}
	return nil
}
