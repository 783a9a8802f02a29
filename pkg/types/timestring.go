package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString время суток в формате "HH:MM" без привязки к дате и таймзоне.
// Используется для границ окон доступности и времени начала слотов.
type TimeString string

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("invalid time string format, expected HH:MM")

	// ErrOutOfDayRange возвращается, когда результат сдвига выходит за пределы суток
	ErrOutOfDayRange = errors.New("time is out of day range")
)

const timeLayout = "15:04"

// endOfDay служебное значение конца суток: его порождает только AddMinutes,
// в пользовательском вводе и в БД оно не встречается
const endOfDay = TimeString("24:00")

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет, что строка соответствует формату HH:MM
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// IsZero возвращает true, если значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут с начала суток.
// Конец суток "24:00" считается как 1440 минут, чтобы сравнения
// и арифметика работали для слотов, упирающихся в полночь.
func (t TimeString) Minutes() (int, error) {
	if t == endOfDay {
		return 24 * 60, nil
	}
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	tm, err1 := t.Minutes()
	om, err2 := other.Minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return tm < om
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	tm, err1 := t.Minutes()
	om, err2 := other.Minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return tm > om
}

// AddMinutes возвращает новое время, сдвинутое на minutes минут вперёд.
// Возвращает ошибку при выходе за пределы суток (границы окон не пересекают полночь).
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total := m + minutes
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrOutOfDayRange, t, minutes)
	}
	// 24:00 представляем как конец суток
	if total == 24*60 {
		return endOfDay, nil
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// At привязывает время суток к конкретной дате в указанной таймзоне
func (t TimeString) At(date time.Time, loc *time.Location) (time.Time, error) {
	m, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := date.Date()
	return time.Date(y, mo, d, m/60, m%60, 0, 0, loc), nil
}

// Value реализует driver.Valuer для записи в БД (колонки типа TIME)
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД.
// lib/pq возвращает колонки TIME как time.Time или строку в зависимости от запроса.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
}

func (t *TimeString) scanString(s string) error {
	// Postgres отдаёт TIME как "HH:MM:SS", обрезаем секунды
	if len(s) > 5 {
		s = s[:5]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}
