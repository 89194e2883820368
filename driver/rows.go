package driver

import (
	"database/sql/driver"
	"encoding/json"
	"reflect"

	drill "github.com/factset/go-drill-rest"
	"github.com/factset/go-drill-rest/internal/data"
)

type rows struct {
	handle drill.DataHandler
}

func (r *rows) Close() error {
	return r.handle.Close()
}

func (r *rows) Columns() []string {
	return r.handle.GetCols()
}

func (r *rows) Next(dest []driver.Value) error {
	row, err := r.handle.Next()
	if err != nil {
		return err
	}

	for i := range dest {
		switch v := row[i].(type) {
		case json.Number:
			// columns without reported metadata pass through raw
			dest[i] = v.String()
		default:
			dest[i] = v
		}
	}
	return nil
}

func (r *rows) colType(index int) string {
	types := r.handle.GetColTypes()
	if index >= len(types) {
		return ""
	}
	return types[index]
}

func (r *rows) ColumnTypeScanType(index int) reflect.Type {
	return data.TypeFromName(r.colType(index))
}

func (r *rows) ColumnTypeDatabaseTypeName(index int) string {
	return data.NormalizeType(r.colType(index))
}

func (r *rows) ColumnTypeNullable(index int) (nullable, ok bool) {
	// the query response metadata doesn't carry nullability
	return true, false
}
