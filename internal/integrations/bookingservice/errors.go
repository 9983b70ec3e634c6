package bookingservice

import "errors"

var (
	// ErrReservationConflict возвращается, когда сервис бронирований отклонил
	// создание из-за занятого диапазона (финальная проверка на стороне записи)
	ErrReservationConflict = errors.New("bookingservice: reservation range conflict")

	// ErrRoomNotFound возвращается, когда сервис бронирований не знает номер
	ErrRoomNotFound = errors.New("bookingservice: room not found")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса бронирований
	ErrInvalidResponse = errors.New("bookingservice: invalid response")

	// ErrInternal возвращается при сетевых и прочих внутренних ошибках клиента
	ErrInternal = errors.New("bookingservice: internal error")
)
