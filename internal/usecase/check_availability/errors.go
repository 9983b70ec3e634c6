package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	// Содержательные проблемы (номер не найден, диапазон занят, БД недоступна)
	// ошибками не являются - они возвращаются конфликтами в Response
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
