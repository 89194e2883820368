package driver

import (
	"context"
	"database/sql/driver"
	"errors"
)

type prepared struct {
	query string
	conn  *conn
}

func (p *prepared) Close() error {
	p.conn = nil
	return nil
}

func (p *prepared) NumInput() int {
	// drill does not support parameters for prepared statements
	return 0
}

func (p *prepared) Exec(args []driver.Value) (driver.Result, error) {
	return nil, errors.New("Exec is deprecated, use ExecContext instead")
}

func (p *prepared) Query(args []driver.Value) (driver.Rows, error) {
	return nil, errors.New("Query is deprecated, use QueryContext instead")
}

func (p *prepared) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	if len(args) > 0 {
		return nil, errNoPrepSupport
	}

	return p.conn.ExecContext(ctx, p.query, nil)
}

func (p *prepared) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	if len(args) > 0 {
		return nil, errNoPrepSupport
	}

	return p.conn.QueryContext(ctx, p.query, nil)
}

type result struct {
	rowsAffected int64
	rowsError    error
}

func (r result) LastInsertId() (int64, error) {
	return driver.ResultNoRows.LastInsertId()
}

func (r result) RowsAffected() (int64, error) {
	return r.rowsAffected, r.rowsError
}
