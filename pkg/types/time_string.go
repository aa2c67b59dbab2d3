package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString время в формате "HH:MM" (без даты и секунд)
// Используется в API моделях и для проекции минуты дня
type TimeString string

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")
)

const timeStringLayout = "15:04"

// parseStrict требует ровно формат "HH:MM" с ведущими нулями.
// time.Parse сам по себе принимает "9:30", что ломало бы
// лексикографическое сравнение в IsBefore/IsAfter.
func parseStrict(s string) (time.Time, error) {
	if len(s) != len(timeStringLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	parsed, err := time.Parse(timeStringLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return parsed, nil
}

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := parseStrict(s); err != nil {
		return "", err
	}
	return TimeString(s), nil
}

// NewTimeStringFromMinutes создает TimeString из минуты дня (0-1439)
// Минута 1440 трактуется как "24:00" (конец дня)
func NewTimeStringFromMinutes(m int) TimeString {
	if m == 24*60 {
		return TimeString("24:00")
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет корректность формата
func (t TimeString) Validate() error {
	_, err := parseStrict(string(t))
	return err
}

// Minutes возвращает минуту дня (0-1439)
func (t TimeString) Minutes() (int, error) {
	parsed, err := parseStrict(string(t))
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает время, сдвинутое на m минут вперед
// Результат может выйти за пределы суток - тогда возвращается ошибка
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total := current + m
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: result out of day bounds", ErrInvalidTimeString)
	}
	return NewTimeStringFromMinutes(total), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}
