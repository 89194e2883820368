package drill

import "time"

const clientName = "Apache Drill Golang REST Client"
const defaultHTTPPort = 8047
const defaultQueryTimeout = 120 * time.Second

type Options struct {
	// User and Password are submitted to the web server's form login
	// endpoint when Auth is empty or "basic".
	User     string
	Password string
	// Auth may be "", "basic" or "kerberos". With "kerberos" the requests
	// are authenticated via SPNEGO using the local credential cache and no
	// form login is performed.
	Auth string
	// ServiceName is the kerberos service principal name of the drillbits,
	// only used when Auth is "kerberos".
	ServiceName string
	// DefaultSchema is sent along with every query submission.
	DefaultSchema string
	// ApplicationName is reported to the server via the User-Agent header.
	ApplicationName string

	// DisableTLS switches the base URL to http. The web UI of a secured
	// cluster only accepts https, this exists for test and dev clusters.
	DisableTLS bool
	// TLSInsecureSkipVerify disables certificate verification, matching
	// clusters running with self-signed certs.
	TLSInsecureSkipVerify bool

	// HTTPPort is the web server port of the drillbits, 8047 if zero.
	HTTPPort int32
	// QueryTimeout bounds a single query round trip, 120s if zero.
	QueryTimeout time.Duration
}

func (o *Options) port() int32 {
	if o.HTTPPort == 0 {
		return defaultHTTPPort
	}
	return o.HTTPPort
}

func (o *Options) queryTimeout() time.Duration {
	if o.QueryTimeout == 0 {
		return defaultQueryTimeout
	}
	return o.QueryTimeout
}
