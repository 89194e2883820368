// Package driver registers a database/sql driver named "drill-rest" backed
// by the REST API client.
//
//   import (
//     "database/sql"
//
//     _ "github.com/factset/go-drill-rest/driver"
//   )
//
//   db, err := sql.Open("drill-rest", "host=drillbit1;user=scott;pass=tiger")
package driver

import (
	"context"
	"database/sql"
	"database/sql/driver"
)

func init() {
	sql.Register("drill-rest", Driver{})
}

type Driver struct{}

func (d Driver) Open(dsn string) (driver.Conn, error) {
	cn, err := d.OpenConnector(dsn)
	if err != nil {
		return nil, err
	}

	return cn.Connect(context.Background())
}

func (d Driver) OpenConnector(name string) (driver.Connector, error) {
	return parseConnectStr(name)
}
