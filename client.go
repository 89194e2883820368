package drill

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/factset/go-drill-rest/internal/log"
)

// A Conn represents a single authenticated session against the REST API of
// a drill cluster. This interface is useful for things consuming the Client
// to maintain a separation so that it is easy to mock out for testing.
type Conn interface {
	Connect(context.Context) error
	Ping(context.Context) error
	SubmitQuery(context.Context, QueryType, string) (DataHandler, error)
	ListSchemas(context.Context) ([]string, error)
	ListObjects(context.Context, string) ([]ObjectDescriptor, error)
	ListColumns(context.Context, string, string) ([]ColumnDescriptor, error)
	NewConnection(context.Context) (Conn, error)
	Close() error
}

// doer is the slice of http.Client the client relies on, the kerberos path
// substitutes a SPNEGO negotiating implementation.
type doer interface {
	Do(*http.Request) (*http.Response, error)
}

// A Client is used for communicating with the web server of a drill cluster.
//
// After creating a client via NewClient, Connect must be called to perform
// the authentication bootstrap. The session cookie obtained there is held by
// the client and is read-only afterwards, there is no refresh.
type Client struct {
	// Modifying the options after connecting does not affect the current
	// session, only future connections created from this client.
	Opts Options

	hosts   []string
	baseURL string
	hc      doer

	connected bool

	drillBits []string
	nextBit   int
}

// NewClient initializes a Client with the given options and the hostnames of
// one or more drillbits, but does not authenticate yet.
func NewClient(opts Options, hosts ...string) *Client {
	return &Client{Opts: opts, hosts: hosts}
}

// Connect authenticates against the first configured host. Bad credentials
// and unreachable hosts both surface as an error wrapping ErrAuthFailed.
func (d *Client) Connect(ctx context.Context) error {
	if len(d.hosts) == 0 {
		return errors.New("drill: no hosts specified")
	}

	return d.connectEndpoint(ctx, d.hosts[0])
}

func (d *Client) connectEndpoint(ctx context.Context, host string) error {
	d.baseURL = d.endpointURL(host)

	var err error
	if d.hc, err = d.makeHTTPClient(host); err != nil {
		return err
	}

	log.Printf("attempting connection to %s", host)
	if d.Opts.Auth != "kerberos" && d.Opts.User != "" {
		if err = d.authenticate(ctx); err != nil {
			return err
		}
	} else if err = d.Ping(ctx); err != nil {
		return fmt.Errorf("%w: host %s unreachable", ErrAuthFailed, host)
	}

	d.connected = true
	return nil
}

func (d *Client) endpointURL(host string) string {
	scheme := "https"
	if d.Opts.DisableTLS {
		scheme = "http"
	}

	if !strings.Contains(host, ":") {
		host = fmt.Sprintf("%s:%d", host, d.Opts.port())
	}
	return scheme + "://" + host
}

// NewConnection returns a new connected client for the same cluster, rotating
// through the drillbits reported by the cluster endpoint in order to spread
// out the load.
func (d *Client) NewConnection(ctx context.Context) (Conn, error) {
	newClient := NewClient(d.Opts, d.hosts...)

	if len(d.drillBits) == 0 {
		if err := newClient.Connect(ctx); err != nil {
			return nil, err
		}

		if info, err := newClient.GetClusterInfo(ctx); err == nil {
			for _, bit := range info.Drillbits {
				d.drillBits = append(d.drillBits, bit.Address)
			}
			d.nextBit = 1
		}
		return newClient, nil
	}

	eindex := d.nextBit % len(d.drillBits)
	d.nextBit = (eindex + 1) % len(d.drillBits)
	newClient.drillBits = d.drillBits
	newClient.nextBit = d.nextBit

	return newClient, newClient.connectEndpoint(ctx, d.drillBits[eindex])
}

// Ping checks that the web server is up and the session is still usable.
// Returns database/sql/driver.ErrBadConn if it fails or nil if it succeeds.
func (d *Client) Ping(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}

	if err := d.doGet(ctx, "/status.json", &status); err != nil {
		return driver.ErrBadConn
	}
	return nil
}

// Close discards the session. The server side session simply expires, there
// is no logout handshake to perform for the REST API.
func (d *Client) Close() error {
	d.connected = false
	d.hc = nil
	return nil
}

func (d *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	ua := clientName
	if d.Opts.ApplicationName != "" {
		ua = d.Opts.ApplicationName
	}
	req.Header.Set("User-Agent", ua)
	return req, nil
}

func (d *Client) doGet(ctx context.Context, path string, out interface{}) error {
	req, err := d.newRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	return d.doJSON(req, out)
}

func (d *Client) doPost(ctx context.Context, path string, body interface{}, out interface{}) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := d.newRequest(ctx, http.MethodPost, path, strings.NewReader(string(encoded)), "application/json")
	if err != nil {
		return err
	}
	return d.doJSON(req, out)
}

func (d *Client) doJSON(req *http.Request, out interface{}) error {
	if d.hc == nil {
		return errors.New("drill: no active session")
	}

	resp, err := d.hc.Do(req)
	if err != nil {
		return fmt.Errorf("drill: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: session rejected (status %d)", ErrAuthFailed, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, req.URL.Path)
	case resp.StatusCode >= 400:
		return responseError(resp)
	}

	if out == nil {
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(out)
}

func responseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))

	var errResp errorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.ErrorMessage != "" {
		return classifyQueryError(errResp.ErrorMessage)
	}
	return fmt.Errorf("drill: server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

// escapePath keeps plugin and profile names safe to splice into a path.
func escapePath(segment string) string {
	return url.PathEscape(segment)
}
