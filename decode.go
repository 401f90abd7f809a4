package tds

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Decode converts the textual rendering of a cell into a typed Value
// according to its column type code.
//
// Decode is total: unknown codes and text that does not parse under a known
// code both yield Null. Textual input is read up to the first zero byte;
// binary input is taken at its full length.
func Decode(code ColumnType, text []byte) Value {
	switch code {
	case SYBINT1:
		n, err := strconv.ParseUint(cstring(text), 10, 8)
		if err != nil {
			return Null()
		}
		return TinyInt(uint8(n))
	case SYBINT2:
		n, err := strconv.ParseInt(cstring(text), 10, 16)
		if err != nil {
			return Null()
		}
		return SmallInt(int16(n))
	case SYBINT4:
		n, err := strconv.ParseInt(cstring(text), 10, 32)
		if err != nil {
			return Null()
		}
		return Int(int(n))
	case SYBINT8:
		n, err := strconv.ParseInt(cstring(text), 10, 64)
		if err != nil {
			return Null()
		}
		return BigInt(n)

	case SYBREAL:
		f, err := strconv.ParseFloat(cstring(text), 32)
		if err != nil {
			return Null()
		}
		return Real(float32(f))
	case SYBFLT8, SYBFLTN:
		f, err := strconv.ParseFloat(cstring(text), 64)
		if err != nil {
			return Null()
		}
		return Double(f)

	case SYBDECIMAL:
		d, ok := parseDecimal(text)
		if !ok {
			return Null()
		}
		return Decimal(d)
	case SYBNUMERIC:
		d, ok := parseDecimal(text)
		if !ok {
			return Null()
		}
		return Numeric(d)
	case SYBMONEY, SYBMONEY4, SYBMONEYN:
		d, ok := parseDecimal(text)
		if !ok {
			return Null()
		}
		return Money(d.RoundBank(2))

	case SYBCHAR, XSYBCHAR:
		return Char(cstring(text))
	case SYBVARCHAR, XSYBVARCHAR:
		return VarChar(cstring(text))
	case XSYBNCHAR:
		return NChar(cstring(text))
	case SYBNVARCHAR, XSYBNVARCHAR:
		return NVarChar(cstring(text))
	case SYBTEXT, SYBNTEXT:
		return Text(cstring(text))

	case SYBBIT, SYBBITN:
		switch strings.ToLower(cstring(text)) {
		case "1", "true":
			return Bit(true)
		case "0", "false":
			return Bit(false)
		}
		return Null()

	case SYBUNIQUE:
		s := cstring(text)
		if len(s) != 36 {
			return Null()
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return Null()
		}
		return UniqueIdentifier(id)

	case SYBMSDATE:
		d, ok := parseDate(cstring(text))
		if !ok {
			return Null()
		}
		return DateValue(d)
	case SYBMSTIME:
		t, ok := parseClock(cstring(text))
		if !ok {
			return Null()
		}
		return TimeValue(t)
	case SYBMSDATETIME2:
		dt, ok := parseDateTime2(cstring(text))
		if !ok {
			return Null()
		}
		return DateTime2(dt)
	case SYBMSDATETIMEOFFSET:
		o, ok := parseDateTimeOffset(cstring(text))
		if !ok {
			return Null()
		}
		return DateTimeOffsetValue(o)
	case SYBDATETIME4:
		dt, ok := parseSmallDateTime(cstring(text))
		if !ok {
			return Null()
		}
		return SmallDateTime(dt)
	case SYBDATETIME, SYBDATETIMN:
		dt, ok := parseDateTime(cstring(text))
		if !ok {
			return Null()
		}
		return DateTimeValue(dt)

	case SYBBINARY, XSYBBINARY:
		return Binary(text)
	case SYBVARBINARY, XSYBVARBINARY, SYBIMAGE:
		return VarBinary(text)

	case SYBGEOGRAPHY, SYBGEOMETRY:
		return Spatial(cstring(text))
	}

	logger().Warn("unknown column type", "code", int32(code))
	return Null()
}

// cstring returns the text up to the first zero byte
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func parseDecimal(text []byte) (decimal.Decimal, bool) {
	s := cstring(text)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// parseInts splits s on sep and parses exactly n decimal integers
func parseInts(s string, sep string, n int) ([]int, bool) {
	parts := strings.Split(s, sep)
	if len(parts) != n {
		return nil, false
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func parseDate(s string) (Date, bool) {
	p, ok := parseInts(s, "-", 3)
	if !ok {
		return Date{}, false
	}
	return Date{Year: p[0], Month: p[1], Day: p[2]}, true
}

func parseClock(s string) (Time, bool) {
	p, ok := parseInts(s, ":", 3)
	if !ok {
		return Time{}, false
	}
	return Time{Hour: p[0], Minute: p[1], Second: p[2]}, true
}

// parseFraction parses the digits after the decimal point. An empty fraction
// is rejected.
func parseFraction(s string) (value, digits int, ok bool) {
	if s == "" {
		return 0, 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, false
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, false
	}
	return v, len(s), true
}

// parseClockFraction parses "H:M:S" with an optional ".fraction"
func parseClockFraction(s string) (Time, int, int, bool) {
	clock, frac, hasFrac := strings.Cut(s, ".")
	t, ok := parseClock(clock)
	if !ok {
		return Time{}, 0, 0, false
	}
	if !hasFrac {
		return t, 0, 0, true
	}
	v, digits, ok := parseFraction(frac)
	if !ok {
		return Time{}, 0, 0, false
	}
	return t, v, digits, true
}

func splitDateTime(s string) (string, string, bool) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func parseDateTime2(s string) (DateTime, bool) {
	datePart, timePart, ok := splitDateTime(s)
	if !ok {
		return DateTime{}, false
	}
	d, ok := parseDate(datePart)
	if !ok {
		return DateTime{}, false
	}
	t, frac, digits, ok := parseClockFraction(timePart)
	if !ok {
		return DateTime{}, false
	}
	return DateTime{
		Date:             d,
		Hour:             t.Hour,
		Minute:           t.Minute,
		Second:           t.Second,
		FractionalSecond: frac,
		FractionDigits:   digits,
	}, true
}

func parseDateTime(s string) (DateTime, bool) {
	datePart, timePart, ok := splitDateTime(s)
	if !ok {
		return DateTime{}, false
	}
	d, ok := parseDate(datePart)
	if !ok {
		return DateTime{}, false
	}
	t, ok := parseClock(timePart)
	if !ok {
		return DateTime{}, false
	}
	return DateTime{Date: d, Hour: t.Hour, Minute: t.Minute, Second: t.Second}, true
}

// parseSmallDateTime accepts "H:M" and, as rendered by some servers, "H:M:S".
// Seconds are always reported as zero.
func parseSmallDateTime(s string) (DateTime, bool) {
	datePart, timePart, ok := splitDateTime(s)
	if !ok {
		return DateTime{}, false
	}
	d, ok := parseDate(datePart)
	if !ok {
		return DateTime{}, false
	}
	p, ok := parseInts(timePart, ":", 2)
	if !ok {
		t, ok := parseClock(timePart)
		if !ok {
			return DateTime{}, false
		}
		p = []int{t.Hour, t.Minute}
	}
	return DateTime{Date: d, Hour: p[0], Minute: p[1]}, true
}

func parseDateTimeOffset(s string) (DateTimeOffset, bool) {
	parts := strings.Fields(s)
	if len(parts) != 3 {
		return DateTimeOffset{}, false
	}
	d, ok := parseDate(parts[0])
	if !ok {
		return DateTimeOffset{}, false
	}
	t, frac, digits, ok := parseClockFraction(parts[1])
	if !ok {
		return DateTimeOffset{}, false
	}
	offset, ok := parseOffset(parts[2])
	if !ok {
		return DateTimeOffset{}, false
	}
	return DateTimeOffset{
		Date:             d,
		Time:             t,
		FractionalSecond: frac,
		FractionDigits:   digits,
		OffsetMinutes:    offset,
	}, true
}

// parseOffset parses "+hh:mm" or "-hh:mm" into signed minutes
func parseOffset(s string) (int, bool) {
	if len(s) < 2 {
		return 0, false
	}
	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, false
	}
	p, ok := parseInts(s[1:], ":", 2)
	if !ok || p[0] < 0 || p[1] < 0 {
		return 0, false
	}
	return sign * (p[0]*60 + p[1]), true
}
