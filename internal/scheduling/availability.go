package scheduling

import (
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// ConflictReason причина, по которой кандидат не проходит проверку доступности
type ConflictReason string

const (
	ConflictInvalidRange    ConflictReason = "invalid-range"
	ConflictBooking         ConflictReason = "booking"
	ConflictBlackoutFullDay ConflictReason = "blackout-full-day"
	ConflictBlackoutPartial ConflictReason = "blackout-partial"

	// ConflictNotUpdatable используется пакетными операциями над серией
	// для членов в статусе, не допускающем изменение
	ConflictNotUpdatable ConflictReason = "not-updatable"
)

// CheckResult результат проверки доступности слота
// При конфликте Reason и ConflictID указывают на мешающую сущность
type CheckResult struct {
	Available  bool
	Reason     ConflictReason
	ConflictID int64
}

// Skipped одно пропущенное вхождение при пакетной операции над серией
type Skipped struct {
	StartAt    time.Time
	Reason     ConflictReason
	ConflictID int64
}

// Check проверяет, помещается ли кандидат на корт.
// Правила применяются по порядку, первая ошибка выигрывает:
//  1. Положительная длительность.
//  2. Пересечение с активным бронированием того же корта
//     (полуоткрытые интервалы: касание границами - не пересечение).
//  3. Активное окно блокировки, покрывающее корт и дату кандидата:
//     без минутных границ - блокирует весь день, иначе проверяется
//     пересечение минутных интервалов.
//
// Отменённые бронирования и бронирования других кортов не участвуют.
func Check(courtID int64, candidate domain.TimeRange, bookings []*domain.Booking, blackouts []*domain.BlackoutWindow) CheckResult {
	if !candidate.IsValid() {
		return CheckResult{Reason: ConflictInvalidRange}
	}

	for _, booking := range bookings {
		if booking.CourtID != courtID || !booking.IsActive() {
			continue
		}
		if candidate.Overlaps(booking.Range()) {
			return CheckResult{Reason: ConflictBooking, ConflictID: booking.ID}
		}
	}

	for _, window := range blackouts {
		if !window.Active || !window.AppliesToCourt(courtID) {
			continue
		}
		// Дата кандидата - календарная дата его начала (UTC)
		if !window.CoversDate(candidate.Date()) {
			continue
		}
		if window.IsFullDay() {
			return CheckResult{Reason: ConflictBlackoutFullDay, ConflictID: window.ID}
		}
		if window.BlocksMinutes(candidate.StartMinuteOfDay(), candidate.EndMinuteOfDay()) {
			return CheckResult{Reason: ConflictBlackoutPartial, ConflictID: window.ID}
		}
	}

	return CheckResult{Available: true}
}

// ExcludeBooking возвращает копию списка без бронирования с указанным ID
// Используется при переносе: собственный текущий слот не считается конфликтом
func ExcludeBooking(bookings []*domain.Booking, id int64) []*domain.Booking {
	filtered := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID == id {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}
