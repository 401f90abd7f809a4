package tds

import (
	"fmt"
	"time"
)

// Date is a calendar date as returned by the server. Components are stored as
// parsed; no calendar validation is applied.
type Date struct {
	Day   int
	Month int
	Year  int
}

// String renders the date as "month day, year"
func (d Date) String() string {
	return fmt.Sprintf("%d %d, %d", d.Month, d.Day, d.Year)
}

// GoTime returns the date at midnight UTC
func (d Date) GoTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Time is a wall-clock time of day without fractional seconds
type Time struct {
	Hour   int
	Minute int
	Second int
}

func (t Time) String() string {
	return fmt.Sprintf("%d:%d:%d", t.Hour, t.Minute, t.Second)
}

// GoTime returns the time of day on 0000-01-01 UTC
func (t Time) GoTime() time.Time {
	return time.Date(0, time.January, 1, t.Hour, t.Minute, t.Second, 0, time.UTC)
}

// DateTime is a date with a time of day.
//
// FractionalSecond holds the fraction exactly as it appeared in the source
// text, as an unscaled integer: ".123" is 123 and ".1234567" is 1234567.
// FractionDigits records how many digits the source used so the value can be
// rescaled; use Nanosecond for a canonical scale.
type DateTime struct {
	Date             Date
	Hour             int
	Minute           int
	Second           int
	FractionalSecond int
	FractionDigits   int
}

// Nanosecond returns the fractional second scaled to nanoseconds
func (dt DateTime) Nanosecond() int {
	return scaleFraction(dt.FractionalSecond, dt.FractionDigits)
}

// Clock returns the time-of-day part
func (dt DateTime) Clock() Time {
	return Time{Hour: dt.Hour, Minute: dt.Minute, Second: dt.Second}
}

func (dt DateTime) String() string {
	return fmt.Sprintf("%s, %d:%d:%d.%s", dt.Date, dt.Hour, dt.Minute, dt.Second,
		formatFraction(dt.FractionalSecond, dt.FractionDigits))
}

// GoTime converts to a time.Time in UTC
func (dt DateTime) GoTime() time.Time {
	return time.Date(dt.Date.Year, time.Month(dt.Date.Month), dt.Date.Day,
		dt.Hour, dt.Minute, dt.Second, dt.Nanosecond(), time.UTC)
}

// DateTimeOffset is a date and time with a UTC offset in minutes
type DateTimeOffset struct {
	Date             Date
	Time             Time
	FractionalSecond int
	FractionDigits   int
	OffsetMinutes    int
}

// Nanosecond returns the fractional second scaled to nanoseconds
func (o DateTimeOffset) Nanosecond() int {
	return scaleFraction(o.FractionalSecond, o.FractionDigits)
}

// OffsetString renders the offset as "+hh:mm" or "-hh:mm"
func (o DateTimeOffset) OffsetString() string {
	sign := '+'
	m := o.OffsetMinutes
	if m < 0 {
		sign = '-'
		m = -m
	}
	return fmt.Sprintf("%c%02d:%02d", sign, m/60, m%60)
}

func (o DateTimeOffset) String() string {
	return fmt.Sprintf("%s, %s.%s (Offset: %d minutes)", o.Date, o.Time,
		formatFraction(o.FractionalSecond, o.FractionDigits), o.OffsetMinutes)
}

// GoTime converts to a time.Time in a fixed zone carrying the offset
func (o DateTimeOffset) GoTime() time.Time {
	loc := time.FixedZone(o.OffsetString(), o.OffsetMinutes*60)
	return time.Date(o.Date.Year, time.Month(o.Date.Month), o.Date.Day,
		o.Time.Hour, o.Time.Minute, o.Time.Second, o.Nanosecond(), loc)
}

// scaleFraction converts an unscaled fraction with the given digit count to
// nanoseconds. Digits beyond nanosecond precision are truncated.
func scaleFraction(frac, digits int) int {
	if frac <= 0 || digits <= 0 {
		return 0
	}
	for digits < 9 {
		frac *= 10
		digits++
	}
	for digits > 9 {
		frac /= 10
		digits--
	}
	return frac
}

func formatFraction(frac, digits int) string {
	if digits <= 0 {
		return fmt.Sprintf("%d", frac)
	}
	return fmt.Sprintf("%0*d", digits, frac)
}
