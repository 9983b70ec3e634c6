package selection

import "errors"

var (
	// ErrIllegalTransition возвращается, когда операция вызвана из состояния,
	// которое её не поддерживает; состояние машины при этом не меняется
	ErrIllegalTransition = errors.New("selection: illegal state transition")

	// ErrRoomNotFound возвращается, когда номер не найден в номерном фонде
	ErrRoomNotFound = errors.New("selection: room not found")

	// ErrRoomMismatch возвращается, когда выезд выбран не в том номере,
	// в котором начат выбор заезда
	ErrRoomMismatch = errors.New("selection: room does not match in-progress selection")

	// ErrCheckOutNotAfterCheckIn возвращается, когда кандидатный выезд
	// не позже сохранённого заезда
	ErrCheckOutNotAfterCheckIn = errors.New("selection: check-out must be after check-in")

	// ErrSessionNotFound возвращается, когда сессия выбора не найдена
	ErrSessionNotFound = errors.New("selection: session not found")

	// ErrCreationConflict возвращается, когда сервис бронирований отклонил
	// финализированный диапазон (его успели занять)
	ErrCreationConflict = errors.New("selection: reservation range was taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("selection: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса выбора
	ErrInternal = errors.New("selection: internal error")
)
