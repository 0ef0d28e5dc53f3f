package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vvka-141/shpload/pkg/shpload"
)

// fakeConn records every Exec call and can be programmed to fail on a
// specific statement index.
type fakeConn struct {
	executed []string
	failOn   int // 1-based index of the call that fails; 0 = never
	failWith error
}

func (f *fakeConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.executed = append(f.executed, sql)
	if f.failOn != 0 && len(f.executed) == f.failOn {
		err := f.failWith
		if err == nil {
			err = errors.New("exec failed")
		}
		return pgconn.CommandTag{}, err
	}
	return pgconn.NewCommandTag("OK"), nil
}

// fakeConverter returns a canned script or error and records the request it
// was handed.
type fakeConverter struct {
	script []byte
	err    error
	called int
	gotReq *shpload.LoadRequest
}

func (f *fakeConverter) Convert(ctx context.Context, req *shpload.LoadRequest) ([]byte, error) {
	f.called++
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.script, nil
}

// panicConnectorFactory fails the test if the load reaches connection setup.
func panicConnectorFactory(*shpload.ConnectionConfig) (shpload.Connector, error) {
	panic("connector factory must not be called")
}
