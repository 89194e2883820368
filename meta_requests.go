package drill

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/factset/go-drill-rest/internal/log"
)

// An ObjectDescriptor names a table-like object inside a schema along with
// its reported kind (TABLE, VIEW, SYNONYM, FILE, DIRECTORY).
type ObjectDescriptor struct {
	Name string
	Type string
}

// A ColumnDescriptor describes one column of a table as reported by
// INFORMATION_SCHEMA.
type ColumnDescriptor struct {
	Name     string
	DataType string
	Nullable bool
}

// ListSchemas returns the names of all storage plugin schemas known to the
// cluster, sorted by name.
func (d *Client) ListSchemas(ctx context.Context) ([]string, error) {
	log.Print("fetching storage schemas")
	handle, err := d.SubmitQuery(ctx, TypeSQL,
		"SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA ORDER BY SCHEMA_NAME")
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	var schemas []string
	err = eachRow(handle, func(row []interface{}) error {
		if len(row) == 0 {
			return errors.New("drill: empty row in SCHEMATA result")
		}
		name, ok := row[0].(string)
		if !ok {
			return fmt.Errorf("drill: unexpected SCHEMA_NAME value %v", row[0])
		}
		schemas = append(schemas, name)
		return nil
	})
	return schemas, err
}

// ListObjects returns descriptors for the tables, views and synonyms inside
// the given schema. Filesystem backed plugins (dfs, cp) are listed via SHOW
// FILES, everything else via SHOW TABLES with a fallback onto the plugin's
// SYS.ALL_OBJECTS for RDBMS plugins that hide synonyms from SHOW TABLES.
//
// Returns an error wrapping ErrNotFound if the schema does not exist.
func (d *Client) ListObjects(ctx context.Context, schema string) ([]ObjectDescriptor, error) {
	log.Printf("listing objects in schema: %s", schema)

	plugin := strings.SplitN(schema, ".", 2)[0]
	if strings.EqualFold(plugin, "dfs") || strings.EqualFold(plugin, "cp") {
		return d.listFiles(ctx, schema)
	}

	handle, err := d.SubmitQuery(ctx, TypeSQL, fmt.Sprintf("SHOW TABLES IN `%s`", schema))
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	nameIdx := colIndex(handle.GetCols(), "TABLE_NAME")
	schemaIdx := colIndex(handle.GetCols(), "TABLE_SCHEMA")

	var objects []ObjectDescriptor
	err = eachRow(handle, func(row []interface{}) error {
		if schemaIdx >= 0 {
			if owner, ok := row[schemaIdx].(string); ok && !strings.EqualFold(owner, schema) {
				return nil
			}
		}
		if nameIdx >= 0 {
			if name, ok := row[nameIdx].(string); ok {
				objects = append(objects, ObjectDescriptor{Name: name, Type: "TABLE"})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(objects) == 0 {
		return d.listRDBMSObjects(ctx, schema)
	}
	return objects, nil
}

func (d *Client) listFiles(ctx context.Context, schema string) ([]ObjectDescriptor, error) {
	handle, err := d.SubmitQuery(ctx, TypeSQL, fmt.Sprintf("SHOW FILES IN `%s`", schema))
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	nameIdx := colIndex(handle.GetCols(), "name")
	dirIdx := colIndex(handle.GetCols(), "isDirectory")
	if nameIdx < 0 {
		return nil, errors.New("drill: SHOW FILES response missing name column")
	}

	var objects []ObjectDescriptor
	err = eachRow(handle, func(row []interface{}) error {
		name, ok := row[nameIdx].(string)
		if !ok {
			return nil
		}

		typ := "FILE"
		if dirIdx >= 0 {
			if isDir, ok := row[dirIdx].(bool); ok && isDir {
				typ = "DIRECTORY"
			}
		}
		objects = append(objects, ObjectDescriptor{Name: name, Type: typ})
		return nil
	})
	return objects, err
}

// listRDBMSObjects queries the data dictionary of the plugin's backing
// database directly. Oracle synonyms and views owned by application schemas
// don't always show up in SHOW TABLES.
func (d *Client) listRDBMSObjects(ctx context.Context, schema string) ([]ObjectDescriptor, error) {
	parts := strings.Split(schema, ".")
	ownerFilter := "IS NOT NULL"
	if len(parts) > 1 {
		ownerFilter = fmt.Sprintf("= '%s'", strings.ToUpper(parts[1]))
	}

	sql := fmt.Sprintf("SELECT OWNER || '.' || OBJECT_NAME AS NAME, OBJECT_TYPE AS TYPE "+
		"FROM `%s`.SYS.ALL_OBJECTS WHERE OBJECT_TYPE IN ('TABLE', 'VIEW', 'SYNONYM') "+
		"AND OWNER %s AND OWNER NOT IN ('SYS', 'SYSTEM') ORDER BY OWNER, OBJECT_NAME",
		parts[0], ownerFilter)

	handle, err := d.SubmitQuery(ctx, TypeSQL, sql)
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	nameIdx := colIndex(handle.GetCols(), "NAME")
	typeIdx := colIndex(handle.GetCols(), "TYPE")

	var objects []ObjectDescriptor
	err = eachRow(handle, func(row []interface{}) error {
		desc := ObjectDescriptor{}
		if nameIdx >= 0 {
			desc.Name, _ = row[nameIdx].(string)
		}
		if typeIdx >= 0 {
			desc.Type, _ = row[typeIdx].(string)
		}
		if desc.Name != "" {
			objects = append(objects, desc)
		}
		return nil
	})
	return objects, err
}

// ListColumns returns the column metadata of one table within a schema.
func (d *Client) ListColumns(ctx context.Context, schema, table string) ([]ColumnDescriptor, error) {
	sql := fmt.Sprintf("SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE FROM INFORMATION_SCHEMA.`COLUMNS` "+
		"WHERE TABLE_SCHEMA = '%s' AND TABLE_NAME = '%s' ORDER BY ORDINAL_POSITION", schema, table)

	handle, err := d.SubmitQuery(ctx, TypeSQL, sql)
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	var cols []ColumnDescriptor
	err = eachRow(handle, func(row []interface{}) error {
		if len(row) < 3 {
			return errors.New("drill: short row in COLUMNS result")
		}

		col := ColumnDescriptor{}
		col.Name, _ = row[0].(string)
		col.DataType, _ = row[1].(string)
		if nullable, ok := row[2].(string); ok {
			col.Nullable = strings.EqualFold(nullable, "YES") || strings.EqualFold(nullable, "true")
		} else if nullable, ok := row[2].(bool); ok {
			col.Nullable = nullable
		}
		cols = append(cols, col)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: table %s.%s", ErrNotFound, schema, table)
	}
	return cols, nil
}

func eachRow(handle DataHandler, f func(row []interface{}) error) error {
	for {
		row, err := handle.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		if err = f(row); err != nil {
			return err
		}
	}
}

func colIndex(cols []string, name string) int {
	for i, c := range cols {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}
