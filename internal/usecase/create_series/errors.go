package create_series

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("create_series: court not found")

	// ErrCourtInactive возвращается при попытке бронирования выключенного корта
	ErrCourtInactive = errors.New("create_series: court is inactive")

	// ErrInvalidInput возвращается при некорректных входных данных
	// (неположительная длительность, некорректный occupant, невалидное правило)
	ErrInvalidInput = errors.New("create_series: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_series: internal error")
)
