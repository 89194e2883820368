package data

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"VARCHAR(10)", "VARCHAR"},
		{"DECIMAL(38, 2)", "DECIMAL"},
		{"BIGINT NOT NULL", "BIGINT"},
		{"timestamp", "TIMESTAMP"},
		{" DATE ", "DATE"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.out, NormalizeType(tt.in))
	}
}

func TestIsTemporal(t *testing.T) {
	assert.True(t, IsTemporal("DATE"))
	assert.True(t, IsTemporal("TIMESTAMP"))
	assert.True(t, IsTemporal("TIME(3)"))
	assert.False(t, IsTemporal("VARCHAR"))
	assert.False(t, IsTemporal("BIGINT"))
}

func TestTypeFromName(t *testing.T) {
	assert.Equal(t, reflect.TypeOf(time.Time{}), TypeFromName("DATE"))
	assert.Equal(t, reflect.TypeOf(time.Time{}), TypeFromName("TIMESTAMP"))
	assert.Equal(t, reflect.TypeOf(int64(0)), TypeFromName("BIGINT"))
	assert.Equal(t, reflect.TypeOf(float64(0)), TypeFromName("DOUBLE"))
	assert.Equal(t, reflect.TypeOf(false), TypeFromName("BOOLEAN"))
	assert.Equal(t, reflect.TypeOf([]byte{}), TypeFromName("VARBINARY"))
	assert.Equal(t, reflect.TypeOf(""), TypeFromName("VARCHAR(20)"))
	assert.Equal(t, reflect.TypeOf(""), TypeFromName(""))
}
