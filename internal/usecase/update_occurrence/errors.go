package update_occurrence

import "errors"

var (
	// ErrBookingNotFound - бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrNotASeries - запрошено изменение серии для одиночного бронирования
	ErrNotASeries = errors.New("booking is not part of a series")

	// ErrCannotUpdate - бронирование в статусе, не допускающем изменение
	ErrCannotUpdate = errors.New("booking cannot be updated")

	// ErrSlotConflict - новое время пересекается с другим бронированием или блокировкой
	ErrSlotConflict = errors.New("slot conflict")

	// ErrInvalidInput - некорректные входные данные
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal - внутренняя ошибка сервиса
	ErrInternal = errors.New("internal error")
)
