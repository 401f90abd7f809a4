package tds

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var timeType = reflect.TypeOf(time.Time{})

// DecodeRow decodes a row into a T, usually a struct.
//
// Fields are matched to columns by their `db` tag, else by field name,
// ignoring case. Columns without a field are ignored and fields without a
// column keep their zero value. Temporal values convert to time.Time, and
// decimals and uniqueidentifiers convert to numeric or string fields.
func DecodeRow[T any](row Row) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       valueHook,
		WeaklyTypedInput: true,
		TagName:          "db",
		Result:           &out,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(row.Map()); err != nil {
		return out, fmt.Errorf("decode row into %T: %w", out, err)
	}
	return out, nil
}

// valueHook converts payloads produced by Value.Any into the destination
// field's type where mapstructure cannot do so itself.
func valueHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch v := data.(type) {
	case Date:
		if to == timeType {
			return v.GoTime(), nil
		}
		if to.Kind() == reflect.String {
			return v.GoTime().Format(time.DateOnly), nil
		}
	case Time:
		if to == timeType {
			return v.GoTime(), nil
		}
		if to.Kind() == reflect.String {
			return v.GoTime().Format(time.TimeOnly), nil
		}
	case DateTime:
		if to == timeType {
			return v.GoTime(), nil
		}
		if to.Kind() == reflect.String {
			return v.GoTime().Format(time.RFC3339Nano), nil
		}
	case DateTimeOffset:
		if to == timeType {
			return v.GoTime(), nil
		}
		if to.Kind() == reflect.String {
			return v.GoTime().Format(time.RFC3339Nano), nil
		}
	case decimal.Decimal:
		switch to.Kind() {
		case reflect.Float32, reflect.Float64:
			f, _ := v.Float64()
			return f, nil
		case reflect.String:
			return v.String(), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if !v.IsInteger() {
				return nil, fmt.Errorf("decimal %s is not an integer", v)
			}
			return v.IntPart(), nil
		}
	case uuid.UUID:
		if to.Kind() == reflect.String {
			return v.String(), nil
		}
	}
	return data, nil
}
