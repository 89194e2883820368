package driver

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"

	drill "github.com/factset/go-drill-rest"
)

var errNoPrepSupport = errors.New("drill does not support parameters in prepared statements")

type conn struct {
	drill.Conn
}

func (c *conn) Begin() (driver.Tx, error) {
	return nil, errors.New("not implemented")
}

func (c *conn) Prepare(query string) (driver.Stmt, error) {
	// the REST API has no server side prepared statements, the statement
	// is held client side and executed verbatim
	return &prepared{query: query, conn: c}, nil
}

func (c *conn) Ping(ctx context.Context) error {
	return c.Conn.Ping(ctx)
}

func (c *conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if len(args) > 0 {
		return nil, errNoPrepSupport
	}

	handle, err := c.Conn.SubmitQuery(ctx, drill.TypeSQL, query)
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	var affectedRows int64
	for {
		if _, err := handle.Next(); err != nil {
			if err == io.EOF {
				err = nil
			}
			return result{rowsAffected: affectedRows, rowsError: err}, nil
		}
		affectedRows++
	}
}

func (c *conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if len(args) > 0 {
		return nil, errNoPrepSupport
	}

	handle, err := c.Conn.SubmitQuery(ctx, drill.TypeSQL, query)
	if err != nil {
		return nil, err
	}

	return &rows{handle: handle}, nil
}
