package interval

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidFormat = errors.New("invalid time format, expected HH:MM")
	ErrInvalidRange  = errors.New("end time must be after start time")
	ErrInvalidDate   = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidDay    = errors.New("invalid day of week")
)

var clockPattern = regexp.MustCompile(`^([0-9]{2}):([0-9]{2})$`)

// Clock is a time of day expressed as minutes since midnight.
// It travels as "HH:MM" over the wire and as an integer in the database.
type Clock int

// ParseClock parses a zero-padded 24-hour "HH:MM" string.
func ParseClock(raw string) (Clock, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return 0, ErrInvalidFormat
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours > 23 || minutes > 59 {
		return 0, ErrInvalidFormat
	}

	return Clock(hours*60 + minutes), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	raw, err := strconv.Unquote(string(data))
	if err != nil {
		return ErrInvalidFormat
	}

	parsed, err := ParseClock(raw)
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}

func (c Clock) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *Clock) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*c = Clock(v)
		return nil
	case nil:
		*c = 0
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Clock", src)
	}
}

// Interval is a half-open [Start, End) window within a single day.
type Interval struct {
	Start Clock
	End   Clock
}

// New builds an interval, rejecting zero-length and overnight windows.
func New(start, end Clock) (Interval, error) {
	if end <= start {
		return Interval{}, ErrInvalidRange
	}
	return Interval{Start: start, End: end}, nil
}

// Parse builds an interval from two "HH:MM" strings.
func Parse(startRaw, endRaw string) (Interval, error) {
	start, err := ParseClock(startRaw)
	if err != nil {
		return Interval{}, err
	}

	end, err := ParseClock(endRaw)
	if err != nil {
		return Interval{}, err
	}

	return New(start, end)
}

// Overlaps reports whether two intervals on the same date overlap.
// This is the single authoritative overlap predicate for the whole system.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

func (iv Interval) Overlaps(other Interval) bool {
	return Overlaps(iv, other)
}

// DayOfWeek is a symbolic weekday, stored as 0 (MON) through 6 (SUN).
type DayOfWeek int

const (
	Monday DayOfWeek = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [7]string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

func ParseDayOfWeek(raw string) (DayOfWeek, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	for i, n := range dayNames {
		if n == name {
			return DayOfWeek(i), nil
		}
	}
	return 0, ErrInvalidDay
}

func (d DayOfWeek) String() string {
	if d < 0 || int(d) >= len(dayNames) {
		return "???"
	}
	return dayNames[d]
}

func (d DayOfWeek) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *DayOfWeek) UnmarshalJSON(data []byte) error {
	raw, err := strconv.Unquote(string(data))
	if err != nil {
		return ErrInvalidDay
	}

	parsed, err := ParseDayOfWeek(raw)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d DayOfWeek) Value() (driver.Value, error) {
	return int64(d), nil
}

func (d *DayOfWeek) Scan(src interface{}) error {
	v, ok := src.(int64)
	if !ok {
		return fmt.Errorf("cannot scan %T into DayOfWeek", src)
	}
	*d = DayOfWeek(v)
	return nil
}

const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day or timezone component.
// It travels as "YYYY-MM-DD" over the wire and as a DATE column in the database.
type Date struct {
	time.Time
}

func ParseDate(raw string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// DateOf truncates a point in time to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ClockOf extracts the wall-clock minute of day from a point in time.
func ClockOf(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw, err := strconv.Unquote(string(data))
	if err != nil {
		return ErrInvalidDate
	}

	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(src interface{}) error {
	t, ok := src.(time.Time)
	if !ok {
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}

func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}
