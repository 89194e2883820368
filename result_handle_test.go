package drill

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultHandleIteration(t *testing.T) {
	handle, err := newResultHandle(nil, &queryResponse{
		QueryID:  "qid-1",
		Columns:  []string{"A", "B"},
		Metadata: []string{"BIGINT", "VARCHAR"},
		Rows: []map[string]interface{}{
			{"A": 1, "B": "one"},
			{"A": 2, "B": "two"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, handle.GetCols())
	assert.Equal(t, []string{"BIGINT", "VARCHAR"}, handle.GetColTypes())
	assert.Equal(t, "qid-1", handle.QueryID())
	assert.Len(t, handle.Rows(), 2)

	row, err := handle.Next()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(1), "one"}, row)
	assert.Len(t, handle.Rows(), 1)

	row, err = handle.Next()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(2), "two"}, row)

	_, err = handle.Next()
	assert.Same(t, io.EOF, err)
	_, err = handle.Next()
	assert.Same(t, io.EOF, err)
}

func TestResultHandleEmpty(t *testing.T) {
	handle, err := newResultHandle(nil, &queryResponse{
		Columns:  []string{"A"},
		Metadata: []string{"BIGINT"},
	})
	require.NoError(t, err)

	_, err = handle.Next()
	assert.Same(t, io.EOF, err)
}

func TestResultHandleScanType(t *testing.T) {
	handle, err := newResultHandle(nil, &queryResponse{
		Columns:  []string{"A", "B"},
		Metadata: []string{"DECIMAL(38, 2)", "DATE"},
	})
	require.NoError(t, err)

	assert.Equal(t, "DECIMAL", handle.ScanType(0))
	assert.Equal(t, "DATE", handle.ScanType(1))
	assert.Equal(t, "", handle.ScanType(5))
}

func TestResultHandleClose(t *testing.T) {
	handle, err := newResultHandle(nil, &queryResponse{
		Columns:  []string{"A"},
		Metadata: []string{"BIGINT"},
		Rows:     []map[string]interface{}{{"A": 1}},
	})
	require.NoError(t, err)

	require.NoError(t, handle.Close())
	_, err = handle.Next()
	assert.Same(t, io.EOF, err)
}

func TestResultHandleImplementsDataHandler(t *testing.T) {
	assert.Implements(t, (*DataHandler)(nil), new(ResultHandle))
}
