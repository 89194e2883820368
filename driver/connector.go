package driver

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"

	drill "github.com/factset/go-drill-rest"
)

type Connector struct {
	base drill.Conn
}

func (c *Connector) Connect(ctx context.Context) (driver.Conn, error) {
	dc, err := c.base.NewConnection(ctx)
	if err != nil {
		return nil, err
	}
	return &conn{dc}, nil
}

func (c *Connector) Driver() driver.Driver {
	return Driver{}
}

func parseConnectStr(connectStr string) (driver.Connector, error) {
	opts := drill.Options{}

	var hosts []string
	args := strings.Split(connectStr, ";")
	for _, kv := range args {
		parsed := strings.SplitN(kv, "=", 2)
		if len(parsed) != 2 {
			return nil, fmt.Errorf("invalid format for connector string")
		}

		switch parsed[0] {
		case "host":
			hosts = strings.Split(parsed[1], ",")
		case "user":
			opts.User = parsed[1]
		case "pass":
			opts.Password = parsed[1]
		case "auth":
			opts.Auth = parsed[1]
		case "service":
			opts.ServiceName = parsed[1]
		case "schema":
			opts.DefaultSchema = parsed[1]
		case "port":
			port, err := strconv.ParseInt(parsed[1], 10, 32)
			if err != nil {
				return nil, err
			}
			opts.HTTPPort = int32(port)
		case "timeout":
			sec, err := strconv.Atoi(parsed[1])
			if err != nil {
				return nil, err
			}
			opts.QueryTimeout = time.Duration(sec) * time.Second
		case "insecure-tls":
			val, err := strconv.ParseBool(parsed[1])
			if err != nil {
				return nil, err
			}
			opts.TLSInsecureSkipVerify = val
		case "disable-tls":
			val, err := strconv.ParseBool(parsed[1])
			if err != nil {
				return nil, err
			}
			opts.DisableTLS = val
		}
	}

	return &Connector{base: drill.NewClient(opts, hosts...)}, nil
}
