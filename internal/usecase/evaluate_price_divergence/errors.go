package evaluate_price_divergence

import "errors"

var (
	// ErrBookingNotFound - бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidInput - некорректные входные данные
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal - внутренняя ошибка сервиса
	ErrInternal = errors.New("internal error")
)
