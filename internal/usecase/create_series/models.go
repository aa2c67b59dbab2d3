package create_series

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/internal/scheduling"
)

// Request модель запроса на создание бронирования или серии
type Request struct {
	CourtID         int64                 // ID корта
	StartAt         time.Time             // Момент начала первого вхождения (UTC)
	DurationMinutes int                   // Длительность каждого вхождения
	Rule            domain.RecurrenceRule // Правило повторения (kind=none - разовое)
	Occupant        domain.Occupant       // Кто бронирует: пользователь или walk-in
	IsLesson        bool                  // Тренировка (тариф hourly_rate_lesson)
	NegotiatedPrice *float64              // Договорная цена (опционально)
	Notes           *string               // Заметки (опционально)
}

// Result результат создания: принятые вхождения и пропущенные с причинами.
// Ноль созданных вхождений - валидный результат, а не ошибка: решение,
// считать ли его неудачей, остаётся за вызывающей стороной.
type Result struct {
	SeriesID *uuid.UUID           // nil для разового бронирования
	Created  []*domain.Booking    // Созданные вхождения в хронологическом порядке
	Skipped  []scheduling.Skipped // Пропущенные вхождения с причинами
}
