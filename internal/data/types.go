package data

import (
	"reflect"
	"strings"
	"time"
)

// NormalizeType reduces the type names found in the metadata list of a query
// response down to the bare SQL type. Drill reports parameterized and
// annotated forms such as "VARCHAR(10)", "DECIMAL(38, 2)" or
// "BIGINT NOT NULL".
func NormalizeType(metaType string) string {
	t := strings.ToUpper(strings.TrimSpace(metaType))
	if idx := strings.IndexByte(t, '('); idx != -1 {
		t = t[:idx]
	}
	if idx := strings.IndexByte(t, ' '); idx != -1 {
		t = t[:idx]
	}
	return t
}

// IsTemporal reports whether the column type carries an epoch-millisecond
// value on the wire that needs converting to a time.Time.
func IsTemporal(metaType string) bool {
	switch NormalizeType(metaType) {
	case "DATE", "TIME", "TIMESTAMP":
		return true
	}
	return false
}

// TypeFromName returns the native scan type for a reported column type.
func TypeFromName(metaType string) reflect.Type {
	switch NormalizeType(metaType) {
	case "BOOLEAN", "BIT":
		return reflect.TypeOf(false)
	case "TINYINT", "SMALLINT", "INTEGER", "INT", "BIGINT":
		return reflect.TypeOf(int64(0))
	case "FLOAT", "DOUBLE", "DECIMAL", "VARDECIMAL", "MONEY":
		return reflect.TypeOf(float64(0))
	case "DATE", "TIME", "TIMESTAMP":
		return reflect.TypeOf(time.Time{})
	case "BINARY", "VARBINARY":
		return reflect.TypeOf([]byte{})
	default:
		return reflect.TypeOf(string(""))
	}
}
