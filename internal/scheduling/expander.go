package scheduling

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// Expander лениво разворачивает правило повторения в упорядоченную
// последовательность моментов начала. Последовательность конечна, строго
// возрастает и потребляется один раз; первый элемент - seed (если он
// удовлетворяет собственному правилу, см. weekly с набором дней недели).
type Expander struct {
	seed time.Time
	rule domain.RecurrenceRule

	limit   int // максимум вхождений: count либо потолок безопасности
	endDate *time.Time

	emitted int
	done    bool

	step       int   // номер блока (день/неделя/месяц)
	weekdays   []int // отсортированный набор дней недели (weekly)
	weekdayIdx int   // позиция в weekdays внутри текущей недели
	weekStart  time.Time
}

// NewExpander создает expander для seed и правила
// Правило валидируется до начала разворачивания (fail fast)
func NewExpander(seed time.Time, rule domain.RecurrenceRule) (*Expander, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	seed = seed.UTC()

	limit := domain.MaxSeriesOccurrences
	if !rule.IsRecurring() {
		limit = 1
	} else if rule.Count != nil && *rule.Count < limit {
		limit = *rule.Count
	}

	var endDate *time.Time
	if rule.EndDate != nil {
		d := dateOf(rule.EndDate.UTC())
		endDate = &d
	}

	e := &Expander{
		seed:    seed,
		rule:    rule,
		limit:   limit,
		endDate: endDate,
	}

	if rule.Kind == domain.RecurrenceWeekly && len(rule.Weekdays) > 0 {
		e.weekdays = append(e.weekdays, rule.Weekdays...)
		sort.Ints(e.weekdays)
		e.weekStart = startOfWeek(seed)
	}

	return e, nil
}

// Next возвращает следующий момент начала.
// Второе значение false означает, что последовательность исчерпана.
func (e *Expander) Next() (time.Time, bool) {
	if e.done {
		return time.Time{}, false
	}

	candidate, ok := e.advance()
	if !ok {
		e.done = true
		return time.Time{}, false
	}

	// Проверяем ограничения завершения: endDate (включительно) и лимит
	if e.endDate != nil && dateOf(candidate).After(*e.endDate) {
		e.done = true
		return time.Time{}, false
	}

	e.emitted++
	if e.emitted >= e.limit {
		e.done = true
	}

	return candidate, true
}

// Expand разворачивает правило целиком в слайс
// Валидация правила выполняется до генерации первого вхождения
func Expand(seed time.Time, rule domain.RecurrenceRule) ([]time.Time, error) {
	expander, err := NewExpander(seed, rule)
	if err != nil {
		return nil, err
	}

	occurrences := make([]time.Time, 0)
	for {
		occ, ok := expander.Next()
		if !ok {
			return occurrences, nil
		}
		occurrences = append(occurrences, occ)
	}
}

// advance вычисляет следующего кандидата без учёта ограничений завершения
func (e *Expander) advance() (time.Time, bool) {
	switch e.rule.Kind {
	case domain.RecurrenceNone, "":
		if e.step > 0 {
			return time.Time{}, false
		}
		e.step++
		return e.seed, true

	case domain.RecurrenceDaily:
		candidate := e.seed.AddDate(0, 0, e.step*e.rule.Interval)
		e.step++
		return candidate, true

	case domain.RecurrenceWeekly:
		if len(e.weekdays) == 0 {
			// Без набора дней ведём себя как daily с шагом interval недель
			candidate := e.seed.AddDate(0, 0, e.step*e.rule.Interval*7)
			e.step++
			return candidate, true
		}
		return e.advanceWeekly()

	case domain.RecurrenceMonthly:
		return e.advanceMonthly(), true
	}

	return time.Time{}, false
}

// advanceWeekly перебирает недельные блоки с шагом interval недель;
// внутри блока дни идут в порядке возрастания дня недели.
// Дни раньше даты seed пропускаются.
func (e *Expander) advanceWeekly() (time.Time, bool) {
	for {
		if e.weekdayIdx >= len(e.weekdays) {
			e.step++
			e.weekdayIdx = 0
		}

		wd := e.weekdays[e.weekdayIdx]
		e.weekdayIdx++

		day := e.weekStart.AddDate(0, 0, e.step*e.rule.Interval*7+wd)
		candidate := atClockOf(day, e.seed)

		if candidate.Before(e.seed) {
			continue
		}
		return candidate, true
	}
}

// advanceMonthly эмитит dayOfMonth (или день seed) каждого месяца с шагом
// interval. Если в целевом месяце меньше дней, берётся последний день месяца
// (политика clamp, месяц не пропускается). Первое вхождение - сам seed.
func (e *Expander) advanceMonthly() time.Time {
	if e.step == 0 {
		e.step++
		return e.seed
	}

	targetDay := e.rule.DayOfMonth
	if targetDay == 0 {
		targetDay = e.seed.Day()
	}

	monthOffset := e.step * e.rule.Interval
	e.step++

	firstOfMonth := time.Date(e.seed.Year(), e.seed.Month()+time.Month(monthOffset), 1,
		e.seed.Hour(), e.seed.Minute(), e.seed.Second(), e.seed.Nanosecond(), time.UTC)
	lastDay := daysInMonth(firstOfMonth)

	day := targetDay
	if day > lastDay {
		day = lastDay
	}

	return firstOfMonth.AddDate(0, 0, day-1)
}

// startOfWeek возвращает полночь воскресенья недели, содержащей t (0 = Sunday)
func startOfWeek(t time.Time) time.Time {
	t = t.UTC()
	return dateOf(t).AddDate(0, 0, -int(t.Weekday()))
}

// atClockOf переносит время суток from на дату day
func atClockOf(day time.Time, from time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		from.Hour(), from.Minute(), from.Second(), from.Nanosecond(), time.UTC)
}

// dateOf обнуляет время, оставляя только дату (UTC)
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysInMonth возвращает число дней в месяце, которому принадлежит t
func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
