package data

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ConvertValue turns a decoded JSON value from a query response into its
// native representation based on the reported column type. Numeric values
// must have been decoded with json.Decoder.UseNumber so that large epoch
// milliseconds survive without loss. A nil input stays nil regardless of the
// column type.
func ConvertValue(metaType string, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	switch NormalizeType(metaType) {
	case "BOOLEAN", "BIT":
		return asBool(metaType, v)
	case "TINYINT", "SMALLINT", "INTEGER", "INT", "BIGINT":
		return asInt64(metaType, v)
	case "FLOAT", "DOUBLE", "DECIMAL", "VARDECIMAL", "MONEY":
		return asFloat64(metaType, v)
	case "DATE":
		ms, err := asInt64(metaType, v)
		if err != nil {
			return nil, err
		}
		return DateFromMillis(ms), nil
	case "TIMESTAMP":
		ms, err := asInt64(metaType, v)
		if err != nil {
			return nil, err
		}
		return TimestampFromMillis(ms), nil
	case "TIME":
		ms, err := asInt64(metaType, v)
		if err != nil {
			return nil, err
		}
		return TimeOfDayFromMillis(ms), nil
	case "BINARY", "VARBINARY":
		s, err := asString(metaType, v)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	default:
		return asString(metaType, v)
	}
}

func asBool(metaType string, v interface{}) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return false, convErr(metaType, v)
		}
		return b, nil
	}
	return false, convErr(metaType, v)
}

// asInt64 accepts the representations the REST API has used across versions:
// plain JSON numbers and stringified numbers.
func asInt64(metaType string, v interface{}) (int64, error) {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		// some servers render integral values with an exponent
		f, err := val.Float64()
		if err != nil {
			return 0, convErr(metaType, v)
		}
		return int64(f), nil
	case string:
		if val == "" {
			return 0, convErr(metaType, v)
		}
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, convErr(metaType, v)
		}
		return int64(f), nil
	case float64:
		return int64(val), nil
	case int:
		return int64(val), nil
	case int64:
		return val, nil
	}
	return 0, convErr(metaType, v)
}

func asFloat64(metaType string, v interface{}) (float64, error) {
	switch val := v.(type) {
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, convErr(metaType, v)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, convErr(metaType, v)
		}
		return f, nil
	case float64:
		return val, nil
	}
	return 0, convErr(metaType, v)
}

func asString(metaType string, v interface{}) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	}

	// complex values (maps, lists) render back to their JSON form
	encoded, err := json.Marshal(v)
	if err != nil {
		return "", convErr(metaType, v)
	}
	return string(encoded), nil
}

func convErr(metaType string, v interface{}) error {
	return fmt.Errorf("drill: cannot convert value %v (%T) for column type %s", v, v, metaType)
}

// TimestampFromMillis converts epoch milliseconds to a UTC time. The int64
// math covers the full sentinel range, a high date of 9999-12-31 converts
// exactly rather than overflowing or becoming a missing value.
func TimestampFromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// DateFromMillis converts epoch milliseconds carrying a calendar date.
func DateFromMillis(ms int64) time.Time {
	return TimestampFromMillis(ms)
}

// TimeOfDayFromMillis converts milliseconds since midnight to a clock
// reading on the zero date.
func TimeOfDayFromMillis(ms int64) time.Time {
	t := time.UnixMilli(ms).UTC()
	h, m, s := t.Clock()
	return time.Date(0, 1, 1, h, m, s, t.Nanosecond(), time.UTC)
}
