package tds

import (
	"bytes"
	"encoding/hex"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind identifies which variant of Value is populated
type Kind int

const (
	KindNull Kind = iota
	KindUniqueIdentifier
	KindChar
	KindVarChar
	KindNChar
	KindNVarChar
	KindText
	KindNumeric
	KindDecimal
	KindMoney
	KindInt
	KindSmallInt
	KindBigInt
	KindTinyInt
	KindFloat
	KindReal
	KindDouble
	KindDate
	KindTime
	KindDateTime
	KindSmallDateTime
	KindDateTime2
	KindDateTimeOffset
	KindBit
	KindBinary
	KindVarBinary
	KindSpatial
)

var kindNames = [...]string{
	KindNull:             "null",
	KindUniqueIdentifier: "uniqueIdentifier",
	KindChar:             "char",
	KindVarChar:          "varChar",
	KindNChar:            "nChar",
	KindNVarChar:         "nVarChar",
	KindText:             "text",
	KindNumeric:          "numeric",
	KindDecimal:          "decimal",
	KindMoney:            "money",
	KindInt:              "int",
	KindSmallInt:         "smallInt",
	KindBigInt:           "bigInt",
	KindTinyInt:          "tinyInt",
	KindFloat:            "float",
	KindReal:             "real",
	KindDouble:           "double",
	KindDate:             "date",
	KindTime:             "time",
	KindDateTime:         "dateTime",
	KindSmallDateTime:    "smallDateTime",
	KindDateTime2:        "dateTime2",
	KindDateTimeOffset:   "dateTimeOffset",
	KindBit:              "bit",
	KindBinary:           "binary",
	KindVarBinary:        "varBinary",
	KindSpatial:          "spatial",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// IsText reports whether the kind carries character data
func (k Kind) IsText() bool {
	switch k {
	case KindChar, KindVarChar, KindNChar, KindNVarChar, KindText:
		return true
	}
	return false
}

// IsTemporal reports whether the kind carries a date, time or both
func (k Kind) IsTemporal() bool {
	switch k {
	case KindDate, KindTime, KindDateTime, KindSmallDateTime, KindDateTime2, KindDateTimeOffset:
		return true
	}
	return false
}

// Value is a single decoded cell. Exactly one variant, selected by Kind, is
// populated. The zero Value is null.
//
// A null Value stands both for SQL NULL and for a cell whose text could not
// be decoded under its column type.
type Value struct {
	kind Kind

	i   int64
	f   float64
	s   string
	b   []byte
	dec decimal.Decimal
	id  uuid.UUID

	date   Date
	clock  Time
	dt     DateTime
	offset DateTimeOffset
}

// Constructors

func Null() Value { return Value{} }
func UniqueIdentifier(id uuid.UUID) Value { return Value{kind: KindUniqueIdentifier, id: id} }
func Char(s string) Value { return Value{kind: KindChar, s: s} }
func VarChar(s string) Value { return Value{kind: KindVarChar, s: s} }
func NChar(s string) Value { return Value{kind: KindNChar, s: s} }
func NVarChar(s string) Value { return Value{kind: KindNVarChar, s: s} }
func Text(s string) Value { return Value{kind: KindText, s: s} }
func Numeric(d decimal.Decimal) Value { return Value{kind: KindNumeric, dec: d} }
func Decimal(d decimal.Decimal) Value { return Value{kind: KindDecimal, dec: d} }
func Money(d decimal.Decimal) Value { return Value{kind: KindMoney, dec: d} }
func Int(n int) Value { return Value{kind: KindInt, i: int64(n)} }
func SmallInt(n int16) Value { return Value{kind: KindSmallInt, i: int64(n)} }
func BigInt(n int64) Value { return Value{kind: KindBigInt, i: n} }
func TinyInt(n uint8) Value { return Value{kind: KindTinyInt, i: int64(n)} }
func Float(f float32) Value { return Value{kind: KindFloat, f: float64(f)} }
func Real(f float32) Value { return Value{kind: KindReal, f: float64(f)} }
func Double(f float64) Value { return Value{kind: KindDouble, f: f} }
func DateValue(d Date) Value { return Value{kind: KindDate, date: d} }
func TimeValue(t Time) Value { return Value{kind: KindTime, clock: t} }
func DateTimeValue(dt DateTime) Value { return Value{kind: KindDateTime, dt: dt} }
func SmallDateTime(dt DateTime) Value { return Value{kind: KindSmallDateTime, dt: dt} }
func DateTime2(dt DateTime) Value { return Value{kind: KindDateTime2, dt: dt} }
func DateTimeOffsetValue(o DateTimeOffset) Value { return Value{kind: KindDateTimeOffset, offset: o} }
func Spatial(wkt string) Value { return Value{kind: KindSpatial, s: wkt} }

// Bit returns a bit value
func Bit(v bool) Value {
	if v {
		return Value{kind: KindBit, i: 1}
	}
	return Value{kind: KindBit}
}

// Binary returns a fixed-length binary value. The slice is copied.
func Binary(b []byte) Value {
	return Value{kind: KindBinary, b: bytes.Clone(b)}
}

// VarBinary returns a variable-length binary value. The slice is copied.
func VarBinary(b []byte) Value {
	return Value{kind: KindVarBinary, b: bytes.Clone(b)}
}

// Kind returns the active variant
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsInt returns the value as an int. Integer kinds and bit are accepted;
// bit yields 0 or 1. A bigInt that does not fit in int is rejected.
func (v Value) AsInt() (int, bool) {
	switch v.kind {
	case KindInt, KindSmallInt, KindTinyInt, KindBit:
		return int(v.i), true
	case KindBigInt:
		if v.i < math.MinInt || v.i > math.MaxInt {
			return 0, false
		}
		return int(v.i), true
	}
	return 0, false
}

// AsInt16 returns smallInt and tinyInt values
func (v Value) AsInt16() (int16, bool) {
	switch v.kind {
	case KindSmallInt, KindTinyInt:
		return int16(v.i), true
	}
	return 0, false
}

// AsInt64 returns any integer kind or bit widened to int64
func (v Value) AsInt64() (int64, bool) {
	switch v.kind {
	case KindInt, KindSmallInt, KindBigInt, KindTinyInt, KindBit:
		return v.i, true
	}
	return 0, false
}

// AsUint8 returns tinyInt values
func (v Value) AsUint8() (uint8, bool) {
	if v.kind == KindTinyInt {
		return uint8(v.i), true
	}
	return 0, false
}

// AsString returns the text of character kinds and the WKT of spatial values
func (v Value) AsString() (string, bool) {
	if v.kind.IsText() || v.kind == KindSpatial {
		return v.s, true
	}
	return "", false
}

// AsFloat32 returns real and float values
func (v Value) AsFloat32() (float32, bool) {
	switch v.kind {
	case KindReal, KindFloat:
		return float32(v.f), true
	}
	return 0, false
}

// AsFloat64 returns floating and exact numeric kinds as float64. Exact kinds
// may lose precision.
func (v Value) AsFloat64() (float64, bool) {
	switch v.kind {
	case KindDouble, KindReal, KindFloat:
		return v.f, true
	case KindNumeric, KindDecimal, KindMoney:
		f, _ := v.dec.Float64()
		return f, true
	}
	return 0, false
}

// AsDecimal returns exact numeric kinds and integers as a decimal
func (v Value) AsDecimal() (decimal.Decimal, bool) {
	switch v.kind {
	case KindNumeric, KindDecimal, KindMoney:
		return v.dec, true
	case KindInt, KindSmallInt, KindBigInt, KindTinyInt:
		return decimal.NewFromInt(v.i), true
	}
	return decimal.Decimal{}, false
}

// AsBool returns bit values
func (v Value) AsBool() (bool, bool) {
	if v.kind == KindBit {
		return v.i != 0, true
	}
	return false, false
}

// AsUUID returns uniqueIdentifier values
func (v Value) AsUUID() (uuid.UUID, bool) {
	if v.kind == KindUniqueIdentifier {
		return v.id, true
	}
	return uuid.Nil, false
}

// AsDate returns the date of date, dateTime and dateTimeOffset kinds
func (v Value) AsDate() (Date, bool) {
	switch v.kind {
	case KindDate:
		return v.date, true
	case KindDateTime, KindSmallDateTime, KindDateTime2:
		return v.dt.Date, true
	case KindDateTimeOffset:
		return v.offset.Date, true
	}
	return Date{}, false
}

// AsTime returns time values
func (v Value) AsTime() (Time, bool) {
	if v.kind == KindTime {
		return v.clock, true
	}
	return Time{}, false
}

// AsDateTime returns dateTime, smallDateTime and dateTime2 values
func (v Value) AsDateTime() (DateTime, bool) {
	switch v.kind {
	case KindDateTime, KindSmallDateTime, KindDateTime2:
		return v.dt, true
	}
	return DateTime{}, false
}

// AsDateTimeOffset returns dateTimeOffset values
func (v Value) AsDateTimeOffset() (DateTimeOffset, bool) {
	if v.kind == KindDateTimeOffset {
		return v.offset, true
	}
	return DateTimeOffset{}, false
}

// AsGoTime converts any temporal kind to a time.Time
func (v Value) AsGoTime() (time.Time, bool) {
	switch v.kind {
	case KindDate:
		return v.date.GoTime(), true
	case KindTime:
		return v.clock.GoTime(), true
	case KindDateTime, KindSmallDateTime, KindDateTime2:
		return v.dt.GoTime(), true
	case KindDateTimeOffset:
		return v.offset.GoTime(), true
	}
	return time.Time{}, false
}

// AsBytes returns a copy of binary and varBinary payloads
func (v Value) AsBytes() ([]byte, bool) {
	switch v.kind {
	case KindBinary, KindVarBinary:
		return bytes.Clone(v.b), true
	}
	return nil, false
}

// AsSpatial returns the well-known-text of spatial values
func (v Value) AsSpatial() (string, bool) {
	if v.kind == KindSpatial {
		return v.s, true
	}
	return "", false
}

// Equal reports whether both values have the same kind and payload
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindUniqueIdentifier:
		return v.id == o.id
	case KindNumeric, KindDecimal, KindMoney:
		return v.dec.Equal(o.dec)
	case KindInt, KindSmallInt, KindBigInt, KindTinyInt, KindBit:
		return v.i == o.i
	case KindFloat, KindReal, KindDouble:
		return v.f == o.f
	case KindDate:
		return v.date == o.date
	case KindTime:
		return v.clock == o.clock
	case KindDateTime, KindSmallDateTime, KindDateTime2:
		return v.dt == o.dt
	case KindDateTimeOffset:
		return v.offset == o.offset
	case KindBinary, KindVarBinary:
		return bytes.Equal(v.b, o.b)
	default:
		return v.s == o.s
	}
}

// Any returns the payload as a plain Go value, or nil for null
func (v Value) Any() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindUniqueIdentifier:
		return v.id
	case KindNumeric, KindDecimal, KindMoney:
		return v.dec
	case KindInt:
		return int(v.i)
	case KindSmallInt:
		return int16(v.i)
	case KindBigInt:
		return v.i
	case KindTinyInt:
		return uint8(v.i)
	case KindDouble:
		return v.f
	case KindFloat, KindReal:
		return float32(v.f)
	case KindDate:
		return v.date
	case KindTime:
		return v.clock
	case KindDateTime, KindSmallDateTime, KindDateTime2:
		return v.dt
	case KindDateTimeOffset:
		return v.offset
	case KindBit:
		return v.i != 0
	case KindBinary, KindVarBinary:
		return bytes.Clone(v.b)
	default:
		return v.s
	}
}

// String returns a human-readable rendering of the value
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindUniqueIdentifier:
		return strings.ToUpper(v.id.String())
	case KindNumeric, KindDecimal, KindMoney:
		return v.dec.String()
	case KindInt, KindSmallInt, KindBigInt, KindTinyInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat, KindReal:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case KindDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindDate:
		return v.date.String()
	case KindTime:
		return v.clock.String()
	case KindDateTime, KindSmallDateTime, KindDateTime2:
		return v.dt.String()
	case KindDateTimeOffset:
		return v.offset.String()
	case KindBit:
		return strconv.FormatBool(v.i != 0)
	case KindBinary, KindVarBinary:
		return hex.EncodeToString(v.b)
	default:
		return v.s
	}
}

// GoString makes %#v print the kind alongside the payload
func (v Value) GoString() string {
	if v.kind == KindNull {
		return "tds.Null()"
	}
	return "tds." + v.kind.String() + "(" + strconv.Quote(v.String()) + ")"
}
