package tds

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// renderKind says how a native column is turned into the text Decode reads
type renderKind int

const (
	renderCopy    renderKind = iota // character and binary data, taken verbatim
	renderInt                       // fixed-width integers
	renderFloat                     // IEEE floats
	renderBit                       // single byte flag
	renderConvert                   // dbconvert to SYBCHAR
	renderDate                      // dbanydatecrack
)

// renderKindOf classifies a column type. Unknown types are copied and left
// for Decode to reject.
func renderKindOf(t ColumnType) renderKind {
	switch t {
	case SYBINT1, SYBINT2, SYBINT4, SYBINT8:
		return renderInt
	case SYBREAL, SYBFLT8, SYBFLTN:
		return renderFloat
	case SYBBIT, SYBBITN:
		return renderBit
	case SYBMONEY, SYBMONEY4, SYBMONEYN, SYBDECIMAL, SYBNUMERIC, SYBUNIQUE:
		return renderConvert
	case SYBMSDATE, SYBMSTIME, SYBMSDATETIME2, SYBMSDATETIMEOFFSET,
		SYBDATETIME4, SYBDATETIME, SYBDATETIMN:
		return renderDate
	}
	return renderCopy
}

// concreteType resolves the nullable "N" types to the fixed type matching
// the data length, as dbconvert and dbanydatecrack expect.
func concreteType(t ColumnType, length int) ColumnType {
	switch t {
	case SYBMONEYN:
		if length == 4 {
			return SYBMONEY4
		}
		return SYBMONEY
	case SYBDATETIMN:
		if length == 4 {
			return SYBDATETIME4
		}
		return SYBDATETIME
	case SYBFLTN:
		if length == 4 {
			return SYBREAL
		}
		return SYBFLT8
	}
	return t
}

// formatInt renders a native-endian integer of 1, 2, 4 or 8 bytes
func formatInt(t ColumnType, data []byte) ([]byte, bool) {
	switch {
	case t == SYBINT1 && len(data) >= 1:
		return strconv.AppendUint(nil, uint64(data[0]), 10), true
	case t == SYBINT2 && len(data) >= 2:
		return strconv.AppendInt(nil, int64(int16(binary.NativeEndian.Uint16(data))), 10), true
	case t == SYBINT4 && len(data) >= 4:
		return strconv.AppendInt(nil, int64(int32(binary.NativeEndian.Uint32(data))), 10), true
	case t == SYBINT8 && len(data) >= 8:
		return strconv.AppendInt(nil, int64(binary.NativeEndian.Uint64(data)), 10), true
	}
	return nil, false
}

// formatFloat renders a 4 or 8 byte native-endian IEEE value
func formatFloat(data []byte) ([]byte, bool) {
	switch len(data) {
	case 4:
		f := math.Float32frombits(binary.NativeEndian.Uint32(data))
		return strconv.AppendFloat(nil, float64(f), 'g', -1, 32), true
	case 8:
		f := math.Float64frombits(binary.NativeEndian.Uint64(data))
		return strconv.AppendFloat(nil, f, 'g', -1, 64), true
	}
	return nil, false
}

func formatBit(data []byte) ([]byte, bool) {
	if len(data) == 0 {
		return nil, false
	}
	if data[0] != 0 {
		return []byte("1"), true
	}
	return []byte("0"), true
}

// formatDateRec renders a cracked date in the layout Decode parses for t.
// Months from dbanydatecrack are 1-based when the connection was opened in
// Microsoft mode.
func formatDateRec(t ColumnType, rec DBDATEREC2) []byte {
	date := fmt.Sprintf("%04d-%02d-%02d", rec.DateYear, rec.DateMonth, rec.DateDMonth)
	switch t {
	case SYBMSDATE:
		return []byte(date)
	case SYBMSTIME:
		return fmt.Appendf(nil, "%02d:%02d:%02d", rec.DateHour, rec.DateMinute, rec.DateSecond)
	case SYBMSDATETIME2:
		return fmt.Appendf(nil, "%s %02d:%02d:%02d.%07d", date, rec.DateHour, rec.DateMinute, rec.DateSecond, rec.DateNSecond/100)
	case SYBMSDATETIMEOFFSET:
		return fmt.Appendf(nil, "%s %02d:%02d:%02d.%07d %s", date, rec.DateHour, rec.DateMinute, rec.DateSecond,
			rec.DateNSecond/100, DateTimeOffset{OffsetMinutes: int(rec.DateTZone)}.OffsetString())
	case SYBDATETIME4:
		return fmt.Appendf(nil, "%s %02d:%02d", date, rec.DateHour, rec.DateMinute)
	default:
		return fmt.Appendf(nil, "%s %02d:%02d:%02d", date, rec.DateHour, rec.DateMinute, rec.DateSecond)
	}
}
