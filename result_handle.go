package drill

import (
	"context"
	"errors"
	"io"

	"github.com/factset/go-drill-rest/internal/data"
	"github.com/factset/go-drill-rest/internal/log"
)

// ErrQueryCancelled is returned when the server reports a cancelled state.
var ErrQueryCancelled = errors.New("drill: query cancelled")

// A DataHandler iterates over the rows of a query result. It is implemented
// by ResultHandle and exists so consumers like the driver subpackage can
// mock results in tests.
type DataHandler interface {
	GetCols() []string
	GetColTypes() []string
	QueryID() string
	Next() ([]interface{}, error)
	Cancel()
	Close() error
}

// A ResultHandle holds one fully materialized result set. The REST API
// returns the entire result in a single response, so unlike a streaming
// protocol client there is nothing left in flight once this exists, Cancel
// is only meaningful for the server side bookkeeping of the query profile.
type ResultHandle struct {
	cols  []string
	types []string
	rows  [][]interface{}
	cur   int

	queryID string
	client  *Client
}

func newResultHandle(cl *Client, resp *queryResponse) (*ResultHandle, error) {
	rows, err := convertRows(resp)
	if err != nil {
		return nil, err
	}

	return &ResultHandle{
		cols:    resp.Columns,
		types:   resp.Metadata,
		rows:    rows,
		queryID: resp.QueryID,
		client:  cl,
	}, nil
}

// GetCols returns the column names of the result set in query order.
func (r *ResultHandle) GetCols() []string {
	return r.cols
}

// GetColTypes returns the type names the server reported for each column,
// parallel to GetCols. Empty for servers that don't send metadata.
func (r *ResultHandle) GetColTypes() []string {
	return r.types
}

// QueryID returns the server assigned id of the query, empty on servers
// that don't report one.
func (r *ResultHandle) QueryID() string {
	return r.queryID
}

// Next returns the next row with all values converted to their native
// representations. Returns io.EOF once the result set is exhausted.
func (r *ResultHandle) Next() ([]interface{}, error) {
	if r.cur >= len(r.rows) {
		return nil, io.EOF
	}

	row := r.rows[r.cur]
	r.cur++
	return row, nil
}

// Rows returns the remaining rows without advancing the cursor.
func (r *ResultHandle) Rows() [][]interface{} {
	return r.rows[r.cur:]
}

// ScanType returns the native type for the column index, falling back to
// string when the server sent no metadata.
func (r *ResultHandle) ScanType(index int) string {
	if index < len(r.types) {
		return data.NormalizeType(r.types[index])
	}
	return ""
}

// Cancel asks the server to cancel the query via its profile. Since the
// result set is already fully delivered this is best effort only.
func (r *ResultHandle) Cancel() {
	if r.queryID == "" || r.client == nil {
		return
	}

	if err := r.client.CancelQuery(context.Background(), r.queryID); err != nil {
		log.Printf("cancel for query %s failed: %v", r.queryID, err)
	}
}

// Close drops the buffered rows and detaches from the client.
func (r *ResultHandle) Close() error {
	r.rows = nil
	r.cur = 0
	r.client = nil
	return nil
}
