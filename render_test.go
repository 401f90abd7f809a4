package tds

import (
	"encoding/binary"
	"math"
	"testing"
)

// =============================================================================
// Native Rendering Tests (render.go)
// =============================================================================

func TestRenderKindOf(t *testing.T) {
	tests := []struct {
		t    ColumnType
		want renderKind
	}{
		{SYBINT1, renderInt},
		{SYBINT8, renderInt},
		{SYBFLTN, renderFloat},
		{SYBREAL, renderFloat},
		{SYBBITN, renderBit},
		{SYBMONEYN, renderConvert},
		{SYBNUMERIC, renderConvert},
		{SYBUNIQUE, renderConvert},
		{SYBMSDATETIMEOFFSET, renderDate},
		{SYBDATETIMN, renderDate},
		{SYBVARCHAR, renderCopy},
		{SYBVARBINARY, renderCopy},
		{SYBGEOGRAPHY, renderCopy},
		{ColumnType(999), renderCopy},
	}
	for _, tt := range tests {
		if got := renderKindOf(tt.t); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.t, tt.want, got)
		}
	}
}

func TestConcreteType(t *testing.T) {
	tests := []struct {
		t      ColumnType
		length int
		want   ColumnType
	}{
		{SYBMONEYN, 4, SYBMONEY4},
		{SYBMONEYN, 8, SYBMONEY},
		{SYBDATETIMN, 4, SYBDATETIME4},
		{SYBDATETIMN, 8, SYBDATETIME},
		{SYBFLTN, 4, SYBREAL},
		{SYBFLTN, 8, SYBFLT8},
		{SYBINT4, 4, SYBINT4},
	}
	for _, tt := range tests {
		if got := concreteType(tt.t, tt.length); got != tt.want {
			t.Errorf("concreteType(%s, %d) = %s, want %s", tt.t, tt.length, got, tt.want)
		}
	}
}

func TestFormatInt(t *testing.T) {
	i2 := make([]byte, 2)
	binary.NativeEndian.PutUint16(i2, uint16(0x8000))
	i4 := make([]byte, 4)
	binary.NativeEndian.PutUint32(i4, uint32(0xFFFFFFFF))
	i8 := make([]byte, 8)
	binary.NativeEndian.PutUint64(i8, uint64(math.MaxInt64))

	tests := []struct {
		t    ColumnType
		data []byte
		want string
		ok   bool
	}{
		{SYBINT1, []byte{255}, "255", true},
		{SYBINT2, i2, "-32768", true},
		{SYBINT4, i4, "-1", true},
		{SYBINT8, i8, "9223372036854775807", true},
		{SYBINT4, []byte{1}, "", false},
		{SYBINT1, nil, "", false},
	}
	for _, tt := range tests {
		got, ok := formatInt(tt.t, tt.data)
		if ok != tt.ok || string(got) != tt.want {
			t.Errorf("%s % x: got (%q, %t), want (%q, %t)", tt.t, tt.data, got, ok, tt.want, tt.ok)
		}
		if ok && Decode(tt.t, got).IsNull() {
			t.Errorf("%s: rendered %q does not decode", tt.t, got)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	f4 := make([]byte, 4)
	binary.NativeEndian.PutUint32(f4, math.Float32bits(3.1415))
	f8 := make([]byte, 8)
	binary.NativeEndian.PutUint64(f8, math.Float64bits(2.718281828))

	got, ok := formatFloat(f4)
	if !ok || string(got) != "3.1415" {
		t.Errorf("real: got (%q, %t)", got, ok)
	}
	if v, _ := Decode(SYBREAL, got).AsFloat32(); v != float32(3.1415) {
		t.Errorf("real round trip: got %v", v)
	}

	got, ok = formatFloat(f8)
	if !ok || string(got) != "2.718281828" {
		t.Errorf("float: got (%q, %t)", got, ok)
	}

	if _, ok := formatFloat([]byte{1, 2}); ok {
		t.Error("expected 2 bytes to be rejected")
	}
}

func TestFormatBit(t *testing.T) {
	if got, ok := formatBit([]byte{1}); !ok || string(got) != "1" {
		t.Errorf("got (%q, %t)", got, ok)
	}
	if got, ok := formatBit([]byte{0}); !ok || string(got) != "0" {
		t.Errorf("got (%q, %t)", got, ok)
	}
	if _, ok := formatBit(nil); ok {
		t.Error("expected empty data to be rejected")
	}
}

func TestFormatDateRec(t *testing.T) {
	rec := DBDATEREC2{
		DateYear:    2024,
		DateMonth:   12,
		DateDMonth:  28,
		DateHour:    14,
		DateMinute:  45,
		DateSecond:  30,
		DateNSecond: 123456700,
		DateTZone:   -480,
	}
	tests := []struct {
		t    ColumnType
		want string
		kind Kind
	}{
		{SYBMSDATE, "2024-12-28", KindDate},
		{SYBMSTIME, "14:45:30", KindTime},
		{SYBMSDATETIME2, "2024-12-28 14:45:30.1234567", KindDateTime2},
		{SYBMSDATETIMEOFFSET, "2024-12-28 14:45:30.1234567 -08:00", KindDateTimeOffset},
		{SYBDATETIME4, "2024-12-28 14:45", KindSmallDateTime},
		{SYBDATETIME, "2024-12-28 14:45:30", KindDateTime},
	}
	for _, tt := range tests {
		got := string(formatDateRec(tt.t, rec))
		if got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.t, tt.want, got)
			continue
		}
		if v := Decode(tt.t, []byte(got)); v.Kind() != tt.kind {
			t.Errorf("%s: %q decoded as %s, want %s", tt.t, got, v.Kind(), tt.kind)
		}
	}
}

func TestFormatDateRec_OffsetRoundTrip(t *testing.T) {
	rec := DBDATEREC2{DateYear: 2000, DateMonth: 2, DateDMonth: 29, DateTZone: 330}
	v := Decode(SYBMSDATETIMEOFFSET, formatDateRec(SYBMSDATETIMEOFFSET, rec))
	o, ok := v.AsDateTimeOffset()
	if !ok {
		t.Fatalf("expected dateTimeOffset, got %s", v.Kind())
	}
	if o.OffsetMinutes != 330 || o.Date != (Date{Day: 29, Month: 2, Year: 2000}) {
		t.Errorf("unexpected %+v", o)
	}
}
