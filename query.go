package drill

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/factset/go-drill-rest/internal/data"
	"github.com/factset/go-drill-rest/internal/log"
)

type QueryType string

const (
	TypeSQL      QueryType = "SQL"
	TypeLogical  QueryType = "LOGICAL"
	TypePhysical QueryType = "PHYSICAL"
)

type queryRequest struct {
	QueryType     QueryType `json:"queryType"`
	Query         string    `json:"query"`
	DefaultSchema string    `json:"defaultSchema,omitempty"`
	AutoLimit     int32     `json:"autoLimit,omitempty"`
}

// queryResponse is the shape of a /query.json response. Row values are
// decoded with UseNumber so that large epoch milliseconds survive intact.
type queryResponse struct {
	QueryID      string                   `json:"queryId"`
	Columns      []string                 `json:"columns"`
	Metadata     []string                 `json:"metadata"`
	Rows         []map[string]interface{} `json:"rows"`
	QueryState   string                   `json:"queryState"`
	ErrorMessage string                   `json:"errorMessage"`
}

// SubmitQuery submits the specified query, blocking until the full result
// set has been returned by the server. Columns whose reported metadata marks
// them DATE, TIME or TIMESTAMP arrive as epoch milliseconds and are converted
// to time.Time values, including sentinel high dates such as 9999-12-31.
//
// A missing schema or table inside the query surfaces as an error wrapping
// ErrNotFound, any other server side failure wraps ErrQueryFailed.
func (d *Client) SubmitQuery(ctx context.Context, t QueryType, query string) (DataHandler, error) {
	if !d.connected {
		return nil, errors.New("drill: no active session")
	}

	req := &queryRequest{
		QueryType:     t,
		Query:         query,
		DefaultSchema: d.Opts.DefaultSchema,
	}

	start := time.Now()
	resp := &queryResponse{}
	if err := d.doPost(ctx, "/query.json", req, resp); err != nil {
		return nil, err
	}

	if resp.ErrorMessage != "" {
		log.Printf("query failed (%s): %s", time.Since(start).Round(10*time.Millisecond), resp.ErrorMessage)
		return nil, classifyQueryError(resp.ErrorMessage)
	}

	switch resp.QueryState {
	case "", "COMPLETED":
	case "CANCELED":
		return nil, ErrQueryCancelled
	case "FAILED":
		return nil, fmt.Errorf("%w: state FAILED", ErrQueryFailed)
	default:
		return nil, fmt.Errorf("%w: %s", ErrQueryUnknownState, resp.QueryState)
	}

	handle, err := newResultHandle(d, resp)
	if err != nil {
		return nil, err
	}

	log.Printf("query completed in %s, returned %d rows", time.Since(start).Round(10*time.Millisecond), len(resp.Rows))
	return handle, nil
}

// Exec submits a SQL statement and drains the result, returning the number
// of rows the statement reported. Useful for DDL such as CREATE VIEW.
func (d *Client) Exec(ctx context.Context, query string) (int64, error) {
	handle, err := d.SubmitQuery(ctx, TypeSQL, query)
	if err != nil {
		return 0, err
	}
	defer handle.Close()

	var affected int64
	for {
		if _, err := handle.Next(); err != nil {
			if errors.Is(err, io.EOF) {
				return affected, nil
			}
			return affected, err
		}
		affected++
	}
}

func convertRows(resp *queryResponse) ([][]interface{}, error) {
	if len(resp.Metadata) != 0 && len(resp.Metadata) != len(resp.Columns) {
		return nil, fmt.Errorf("drill: malformed metadata: %d types for %d columns", len(resp.Metadata), len(resp.Columns))
	}

	rows := make([][]interface{}, 0, len(resp.Rows))
	for _, raw := range resp.Rows {
		vals := make([]interface{}, len(resp.Columns))
		for i, col := range resp.Columns {
			v, ok := raw[col]
			if !ok || v == nil {
				continue
			}

			// servers predating DRILL-2373 omit the metadata list, in
			// that case values are passed through untouched
			if len(resp.Metadata) == 0 {
				vals[i] = v
				continue
			}

			converted, err := data.ConvertValue(resp.Metadata[i], v)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", col, err)
			}
			vals[i] = converted
		}
		rows = append(rows, vals)
	}
	return rows, nil
}
