package check_availability

import "fmt"

// validateRequest валидирует входные данные запроса
// Хронология диапазона здесь не проверяется: неправильный порядок дат
// по контракту превращается в конфликт invalid_range, а не в ошибку
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.CheckIn.IsZero() {
		return fmt.Errorf("%w: checkIn is required", ErrInvalidInput)
	}

	if req.CheckOut.IsZero() {
		return fmt.Errorf("%w: checkOut is required", ErrInvalidInput)
	}

	if req.ExcludeReservationID != nil && *req.ExcludeReservationID <= 0 {
		return fmt.Errorf("%w: excludeReservationID must be positive", ErrInvalidInput)
	}

	return nil
}
