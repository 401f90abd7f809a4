package tds

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestValue_ZeroIsNull(t *testing.T) {
	var v Value
	if !v.IsNull() || v.Kind() != KindNull {
		t.Errorf("expected zero Value to be null, got %s", v.Kind())
	}
	if v.Any() != nil {
		t.Errorf("expected nil payload, got %v", v.Any())
	}
	if v.String() != "null" {
		t.Errorf("expected %q, got %q", "null", v.String())
	}
}

// =============================================================================
// Accessor Tests
// =============================================================================

func TestValue_AsInt(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want int
		ok   bool
	}{
		{"int", Int(12345), 12345, true},
		{"smallInt", SmallInt(-7), -7, true},
		{"tinyInt", TinyInt(255), 255, true},
		{"bigInt", BigInt(1 << 40), 1 << 40, true},
		{"bit true", Bit(true), 1, true},
		{"bit false", Bit(false), 0, true},
		{"varChar", VarChar("12"), 0, false},
		{"double", Double(1), 0, false},
		{"decimal", Decimal(decimal.NewFromInt(1)), 0, false},
		{"null", Null(), 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.v.AsInt()
		if ok != tt.ok || got != tt.want {
			t.Errorf("%s: AsInt() = (%d, %t), want (%d, %t)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestValue_AsIntNarrowsBigInt(t *testing.T) {
	v := BigInt(math.MaxInt64)
	got, ok := v.AsInt()
	if math.MaxInt == math.MaxInt64 {
		if !ok || int64(got) != math.MaxInt64 {
			t.Errorf("expected max int64 to fit, got (%d, %t)", got, ok)
		}
	} else if ok {
		t.Errorf("expected overflow to be rejected, got %d", got)
	}
}

func TestValue_NarrowAccessors(t *testing.T) {
	if n, ok := SmallInt(32767).AsInt16(); !ok || n != 32767 {
		t.Errorf("AsInt16 on smallInt = (%d, %t)", n, ok)
	}
	if n, ok := TinyInt(200).AsInt16(); !ok || n != 200 {
		t.Errorf("AsInt16 on tinyInt = (%d, %t)", n, ok)
	}
	if _, ok := Int(1).AsInt16(); ok {
		t.Error("AsInt16 should reject int")
	}
	if n, ok := TinyInt(255).AsUint8(); !ok || n != 255 {
		t.Errorf("AsUint8 = (%d, %t)", n, ok)
	}
	if _, ok := SmallInt(1).AsUint8(); ok {
		t.Error("AsUint8 should reject smallInt")
	}
	if n, ok := BigInt(math.MinInt64).AsInt64(); !ok || n != math.MinInt64 {
		t.Errorf("AsInt64 = (%d, %t)", n, ok)
	}
	if n, ok := Bit(true).AsInt64(); !ok || n != 1 {
		t.Errorf("AsInt64 on bit = (%d, %t)", n, ok)
	}
}

func TestValue_AsString(t *testing.T) {
	for _, v := range []Value{Char("x"), VarChar("x"), NChar("x"), NVarChar("x"), Text("x"), Spatial("x")} {
		if s, ok := v.AsString(); !ok || s != "x" {
			t.Errorf("%s: AsString() = (%q, %t)", v.Kind(), s, ok)
		}
	}
	for _, v := range []Value{Int(1), Bit(true), Null(), Binary([]byte("x"))} {
		if _, ok := v.AsString(); ok {
			t.Errorf("%s: AsString() should fail", v.Kind())
		}
	}
}

func TestValue_AsFloat(t *testing.T) {
	if f, ok := Real(3.1415).AsFloat32(); !ok || f != float32(3.1415) {
		t.Errorf("AsFloat32 = (%v, %t)", f, ok)
	}
	if _, ok := Double(1).AsFloat32(); ok {
		t.Error("AsFloat32 should reject double")
	}
	if f, ok := Double(2.718281828).AsFloat64(); !ok || f != 2.718281828 {
		t.Errorf("AsFloat64 = (%v, %t)", f, ok)
	}
	if f, ok := Money(decimal.RequireFromString("19.99")).AsFloat64(); !ok || f != 19.99 {
		t.Errorf("AsFloat64 on money = (%v, %t)", f, ok)
	}
	if _, ok := Int(1).AsFloat64(); ok {
		t.Error("AsFloat64 should reject int")
	}
}

func TestValue_FloatIsSinglePrecision(t *testing.T) {
	v := Float(0.1)
	if v.Kind() != KindFloat {
		t.Fatalf("expected float, got %s", v.Kind())
	}
	if got, ok := v.Any().(float32); !ok || got != float32(0.1) {
		t.Errorf("Any() = %#v, want float32(0.1)", v.Any())
	}
	if got := v.String(); got != "0.1" {
		t.Errorf("String() = %q, want %q", got, "0.1")
	}
	if f, ok := v.AsFloat32(); !ok || f != float32(0.1) {
		t.Errorf("AsFloat32 = (%v, %t)", f, ok)
	}
	if !v.Equal(Float(0.1)) || v.Equal(Real(0.1)) {
		t.Error("float equality should match kind and payload")
	}
}

func TestValue_AsDecimal(t *testing.T) {
	d, ok := Int(42).AsDecimal()
	if !ok || !d.Equal(decimal.NewFromInt(42)) {
		t.Errorf("AsDecimal on int = (%s, %t)", d, ok)
	}
	d, ok = Numeric(decimal.RequireFromString("1.005")).AsDecimal()
	if !ok || d.String() != "1.005" {
		t.Errorf("AsDecimal on numeric = (%s, %t)", d, ok)
	}
	if _, ok := Double(1).AsDecimal(); ok {
		t.Error("AsDecimal should reject double")
	}
}

func TestValue_AsBool(t *testing.T) {
	if b, ok := Bit(true).AsBool(); !ok || !b {
		t.Errorf("AsBool = (%t, %t)", b, ok)
	}
	if _, ok := Int(1).AsBool(); ok {
		t.Error("AsBool should reject int")
	}
}

func TestValue_AsUUID(t *testing.T) {
	id := uuid.MustParse("6F9619FF-8B86-D011-B42D-00C04FC964FF")
	if got, ok := UniqueIdentifier(id).AsUUID(); !ok || got != id {
		t.Errorf("AsUUID = (%s, %t)", got, ok)
	}
	if got, ok := VarChar(id.String()).AsUUID(); ok || got != uuid.Nil {
		t.Error("AsUUID should reject varChar")
	}
}

func TestValue_TemporalAccessors(t *testing.T) {
	d := Date{Day: 28, Month: 12, Year: 2024}
	dt := DateTime{Date: d, Hour: 14, Minute: 45, Second: 30}
	o := DateTimeOffset{Date: d, Time: Time{Hour: 14, Minute: 45, Second: 30}, OffsetMinutes: 60}

	for _, v := range []Value{DateValue(d), DateTimeValue(dt), SmallDateTime(dt), DateTime2(dt), DateTimeOffsetValue(o)} {
		got, ok := v.AsDate()
		if !ok || got != d {
			t.Errorf("%s: AsDate() = (%+v, %t)", v.Kind(), got, ok)
		}
		if _, ok := v.AsGoTime(); !ok {
			t.Errorf("%s: AsGoTime() failed", v.Kind())
		}
	}

	if _, ok := DateValue(d).AsDateTime(); ok {
		t.Error("AsDateTime should reject date")
	}
	if _, ok := DateTimeOffsetValue(o).AsDateTime(); ok {
		t.Error("AsDateTime should reject dateTimeOffset")
	}
	if got, ok := TimeValue(Time{Hour: 1}).AsTime(); !ok || got.Hour != 1 {
		t.Errorf("AsTime = (%+v, %t)", got, ok)
	}
	if _, ok := DateValue(d).AsTime(); ok {
		t.Error("AsTime should reject date")
	}
	if _, ok := VarChar("2024-12-28").AsDate(); ok {
		t.Error("AsDate should reject varChar")
	}

	gt, _ := DateTime2(dt).AsGoTime()
	if !gt.Equal(time.Date(2024, 12, 28, 14, 45, 30, 0, time.UTC)) {
		t.Errorf("unexpected go time %v", gt)
	}
}

func TestValue_AsBytes(t *testing.T) {
	data := []byte{1, 2, 3}
	v := VarBinary(data)
	b, ok := v.AsBytes()
	if !ok || !bytes.Equal(b, data) {
		t.Fatalf("AsBytes = (%x, %t)", b, ok)
	}
	b[0] = 9
	if again, _ := v.AsBytes(); again[0] != 1 {
		t.Error("AsBytes returned a slice aliasing the value")
	}
	if _, ok := VarChar("abc").AsBytes(); ok {
		t.Error("AsBytes should reject varChar")
	}
}

// =============================================================================
// Equality and Description Tests
// =============================================================================

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same int", Int(1), Int(1), true},
		{"different int", Int(1), Int(2), false},
		{"int vs bigInt", Int(1), BigInt(1), false},
		{"char vs varChar", Char("a"), VarChar("a"), false},
		{"null", Null(), Null(), true},
		{"decimal scale", Decimal(decimal.RequireFromString("1.50")), Decimal(decimal.RequireFromString("1.5")), true},
		{"binary", Binary([]byte{1}), Binary([]byte{1}), true},
		{"binary differs", Binary([]byte{1}), Binary([]byte{2}), false},
		{"bit", Bit(true), Bit(true), true},
		{"date", DateValue(Date{1, 2, 3}), DateValue(Date{1, 2, 3}), true},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%s: Equal = %t, want %t", tt.name, got, tt.want)
		}
	}
}

func TestValue_String(t *testing.T) {
	id := uuid.MustParse("6f9619ff-8b86-d011-b42d-00c04fc964ff")
	tests := []struct {
		v    Value
		want string
	}{
		{UniqueIdentifier(id), "6F9619FF-8B86-D011-B42D-00C04FC964FF"},
		{Bit(true), "true"},
		{Bit(false), "false"},
		{Binary([]byte{0x01, 0x02, 0x03, 0x04}), "01020304"},
		{VarBinary([]byte{0xAB, 0xCD}), "abcd"},
		{Null(), "null"},
		{Int(-42), "-42"},
		{TinyInt(255), "255"},
		{Real(3.1415), "3.1415"},
		{Double(2.718281828), "2.718281828"},
		{Decimal(decimal.RequireFromString("12345.67")), "12345.67"},
		{VarChar("hello"), "hello"},
		{Spatial("POINT(1 2)"), "POINT(1 2)"},
		{DateValue(Date{Day: 28, Month: 12, Year: 2024}), "12 28, 2024"},
		{TimeValue(Time{Hour: 12, Minute: 30, Second: 45}), "12:30:45"},
		{Decode(SYBMSDATETIME2, []byte("2024-12-28 14:45:30.123")), "12 28, 2024, 14:45:30.123"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%s: String() = %q, want %q", tt.v.Kind(), got, tt.want)
		}
	}
}

func TestValue_Any(t *testing.T) {
	if got, ok := Int(7).Any().(int); !ok || got != 7 {
		t.Errorf("Any on int = %#v", Int(7).Any())
	}
	if got, ok := SmallInt(7).Any().(int16); !ok || got != 7 {
		t.Errorf("Any on smallInt = %#v", SmallInt(7).Any())
	}
	if got, ok := Real(1.5).Any().(float32); !ok || got != 1.5 {
		t.Errorf("Any on real = %#v", Real(1.5).Any())
	}
	if got, ok := Bit(true).Any().(bool); !ok || !got {
		t.Errorf("Any on bit = %#v", Bit(true).Any())
	}
	if _, ok := Money(decimal.NewFromInt(1)).Any().(decimal.Decimal); !ok {
		t.Errorf("Any on money = %#v", Money(decimal.NewFromInt(1)).Any())
	}
}

func TestKind_String(t *testing.T) {
	if KindDateTimeOffset.String() != "dateTimeOffset" {
		t.Errorf("unexpected %q", KindDateTimeOffset.String())
	}
	if Kind(999).String() != "kind(999)" {
		t.Errorf("unexpected %q", Kind(999).String())
	}
}

func TestColumnType_String(t *testing.T) {
	if SYBMSDATETIMEOFFSET.String() != "datetimeoffset" {
		t.Errorf("unexpected %q", SYBMSDATETIMEOFFSET.String())
	}
	if ColumnType(9999).String() != "type(9999)" {
		t.Errorf("unexpected %q", ColumnType(9999).String())
	}
	if !SYBINT4.Known() || ColumnType(38).Known() {
		t.Error("unexpected Known result")
	}
}
