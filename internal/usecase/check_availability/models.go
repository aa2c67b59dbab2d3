package check_availability

import (
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/scheduling"
)

// Request модель запроса проверки доступности слота
type Request struct {
	CourtID         int64     // ID корта
	StartAt         time.Time // Момент начала кандидата (UTC)
	DurationMinutes int       // Длительность кандидата
}

// Response результат проверки
// При конфликте Reason и ConflictID указывают на мешающую сущность
type Response struct {
	Available  bool
	Reason     scheduling.ConflictReason // пустая строка при Available=true
	ConflictID int64
}
