package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeFormat формат времени HH:MM
const TimeFormat = "15:04"

// ErrInvalidTimeString возвращается, когда строка не соответствует формату HH:MM
var ErrInvalidTimeString = errors.New("types: invalid time string, expected HH:MM")

// TimeString время суток в формате HH:MM
// Используется для границ слотов и хранения в колонках TIME
type TimeString string

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// ParseTimeString разбирает строку HH:MM (допускается HH:MM:SS из БД)
func ParseTimeString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if len(s) == len("15:04:05") {
		s = s[:len(TimeFormat)]
	}

	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return NewTimeString(t), nil
}

// MustTimeString разбирает строку и паникует при ошибке
// Используется только для констант
func MustTimeString(s string) TimeString {
	t, err := ParseTimeString(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// AddMinutes возвращает время, сдвинутое на указанное количество минут (в пределах суток)
func (t TimeString) AddMinutes(minutes int) TimeString {
	total := ((t.Minutes()+minutes)%(24*60) + 24*60) % (24 * 60)
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60))
}

// Before возвращает true, если t раньше other
func (t TimeString) Before(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// After возвращает true, если t позже other
func (t TimeString) After(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Format12h возвращает время в 12-часовом формате, например "02:00 PM"
func (t TimeString) Format12h() string {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return string(t)
	}
	return parsed.Format("03:04 PM")
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		parsed, err := ParseTimeString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := ParseTimeString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}
