package scheduling

import (
	"math"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// ResolveRate находит почасовой тариф для минуты дня.
// Полосы передаются в сохранённом порядке (start_minute ASC); среди активных
// выигрывает первая, содержащая минуту (полуоткрытое сравнение: минута,
// равная endMinute полосы, относится к следующей полосе).
//
// Второе значение false означает "тариф не настроен" - это не ошибка:
// бронирование создаётся без расчётной цены и тарифицируется вручную.
func ResolveRate(bands []*domain.PriceBand, minuteOfDay int, isLesson bool) (float64, bool) {
	for _, band := range bands {
		if !band.Active {
			continue
		}
		if band.Contains(minuteOfDay) {
			return band.RateFor(isLesson), true
		}
	}
	return 0, false
}

// ComputePrice вычисляет цену: rate * minutes / 60, округление half-up до копеек
// Цена считается один раз при создании/изменении и снимается снапшотом на
// бронирование; при чтении она не пересчитывается.
func ComputePrice(hourlyRate float64, durationMinutes int) float64 {
	raw := hourlyRate * float64(durationMinutes) / 60
	return math.Floor(raw*100+0.5) / 100
}

// PriceDiverges сравнивает старую и новую расчётные цены с допуском на
// субкопеечный шум. Отсутствие новой цены (тариф удалён) расхождением не
// считается; появление цены там, где её не было, считается.
func PriceDiverges(oldPrice, newPrice *float64) bool {
	if newPrice == nil {
		return false
	}
	if oldPrice == nil {
		return true
	}
	return math.Abs(*newPrice-*oldPrice) > domain.PriceEpsilon
}
