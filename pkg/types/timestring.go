package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

// TimeString время в формате "HH:MM" (24-часовой формат)
// Используется для хранения и передачи времени без даты
type TimeString string

// NewTimeString создает TimeString из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString создает TimeString из строки с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток
// Значение нормализуется по модулю 1440 (перенос через полночь)
func NewTimeStringFromMinutes(minutes int) TimeString {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

const minutesPerDay = 24 * 60

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	parts := strings.Split(string(t), ":")
	if len(parts) != 2 {
		return ErrInvalidTimeString
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return ErrInvalidTimeString
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return ErrInvalidTimeString
	}

	return nil
}

// IsZero проверяет, что время не задано
func (t TimeString) IsZero() bool {
	return string(t) == ""
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// MinuteOfDay возвращает количество минут с начала суток
func (t TimeString) MinuteOfDay() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}

	parts := strings.Split(string(t), ":")
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])

	return hours*60 + minutes, nil
}

// AddMinutes возвращает новое время, сдвинутое на указанное количество минут
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.MinuteOfDay()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes), nil
}

// IsBefore проверяет, что время строго раньше other
// Невалидные значения считаются равными (сравнение не выполняется)
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.MinuteOfDay()
	if err != nil {
		return false
	}
	b, err := other.MinuteOfDay()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter проверяет, что время строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(t)
}

// Clock12 возвращает время в 12-часовом формате с AM/PM (например, "10:30 AM")
func (t TimeString) Clock12() string {
	minute, err := t.MinuteOfDay()
	if err != nil {
		return string(t)
	}
	return FormatClock12(minute)
}

// FormatClock12 форматирует минуты с начала суток в 12-часовой формат с AM/PM
// Значение нормализуется по модулю 1440
func FormatClock12(minuteOfDay int) string {
	minuteOfDay = ((minuteOfDay % minutesPerDay) + minutesPerDay) % minutesPerDay

	hours := minuteOfDay / 60
	minutes := minuteOfDay % 60

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}

	hour12 := hours % 12
	if hour12 == 0 {
		hour12 = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour12, minutes, period)
}
