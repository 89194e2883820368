package driver

import (
	"context"

	"github.com/stretchr/testify/mock"

	drill "github.com/factset/go-drill-rest"
)

type mockConn struct {
	mock.Mock
}

func (m *mockConn) Connect(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockConn) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockConn) SubmitQuery(ctx context.Context, t drill.QueryType, query string) (drill.DataHandler, error) {
	args := m.Called(ctx, t, query)

	var handle drill.DataHandler
	if args.Get(0) != nil {
		handle = args.Get(0).(drill.DataHandler)
	}
	return handle, args.Error(1)
}

func (m *mockConn) ListSchemas(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockConn) ListObjects(ctx context.Context, schema string) ([]drill.ObjectDescriptor, error) {
	args := m.Called(ctx, schema)
	return args.Get(0).([]drill.ObjectDescriptor), args.Error(1)
}

func (m *mockConn) ListColumns(ctx context.Context, schema, table string) ([]drill.ColumnDescriptor, error) {
	args := m.Called(ctx, schema, table)
	return args.Get(0).([]drill.ColumnDescriptor), args.Error(1)
}

func (m *mockConn) NewConnection(ctx context.Context) (drill.Conn, error) {
	args := m.Called(ctx)

	var cn drill.Conn
	if args.Get(0) != nil {
		cn = args.Get(0).(drill.Conn)
	}
	return cn, args.Error(1)
}

func (m *mockConn) Close() error {
	return m.Called().Error(0)
}

type mockResHandle struct {
	mock.Mock
}

func (m *mockResHandle) GetCols() []string {
	return m.Called().Get(0).([]string)
}

func (m *mockResHandle) GetColTypes() []string {
	return m.Called().Get(0).([]string)
}

func (m *mockResHandle) QueryID() string {
	return m.Called().String(0)
}

func (m *mockResHandle) Next() ([]interface{}, error) {
	args := m.Called()

	var row []interface{}
	if args.Get(0) != nil {
		row = args.Get(0).([]interface{})
	}
	return row, args.Error(1)
}

func (m *mockResHandle) Cancel() {
	m.Called()
}

func (m *mockResHandle) Close() error {
	return m.Called().Error(0)
}
