package drill

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionCookie = "JSESSIONID"

// fakeDrillbit stands in for the web server of a drillbit. Query responses
// are canned per exact SQL text, anything unknown is answered with a
// validation error the way a real server reports a missing schema.
type fakeDrillbit struct {
	user, pass     string
	requireSession bool

	queries map[string]*queryResponse

	lastQuery    queryRequest
	lastProfiles url.Values
}

func (f *fakeDrillbit) addQuery(sql string, resp *queryResponse) {
	if f.queries == nil {
		f.queries = make(map[string]*queryResponse)
	}
	f.queries[sql] = resp
}

func (f *fakeDrillbit) hasSession(r *http.Request) bool {
	_, err := r.Cookie(testSessionCookie)
	return err == nil
}

func (f *fakeDrillbit) start() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/j_security_check", func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostFormValue("j_username") != f.user || r.PostFormValue("j_password") != f.pass {
			w.Write([]byte("<html><body>Invalid username/password credentials.</body></html>"))
			return
		}

		http.SetCookie(w, &http.Cookie{Name: testSessionCookie, Value: "deadbeef", Path: "/"})
		w.Write([]byte("<html><body>Number of Drill Bits 1</body></html>"))
	})

	mux.HandleFunc("/status.json", func(w http.ResponseWriter, r *http.Request) {
		if f.requireSession && !f.hasSession(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "Running"})
	})

	mux.HandleFunc("/query.json", func(w http.ResponseWriter, r *http.Request) {
		if f.requireSession && !f.hasSession(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		json.NewDecoder(r.Body).Decode(&f.lastQuery)

		resp, ok := f.queries[f.lastQuery.Query]
		if !ok {
			resp = &queryResponse{ErrorMessage: "VALIDATION ERROR: Schema [[unknown]] is not valid with respect to either root schema or current default schema."}
		}
		json.NewEncoder(w).Encode(resp)
	})

	mux.HandleFunc("/cluster.json", func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		json.NewEncoder(w).Encode(&ClusterInfo{
			CurrentVersion: "1.20.0",
			Drillbits: []Drillbit{
				{DrillbitID: "bit-1", Address: host, Current: true, VersionMatch: true, State: "ONLINE"},
			},
		})
	})

	mux.HandleFunc("/storage.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"name": "cp", "config": map[string]interface{}{"type": "file", "enabled": true}},
			{"name": "ora", "config": map[string]interface{}{"type": "jdbc", "enabled": false}},
		})
	})

	mux.HandleFunc("/storage/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/storage/")
		switch {
		case strings.HasSuffix(rest, "/enable/true"), strings.HasSuffix(rest, "/enable/false"):
			json.NewEncoder(w).Encode(map[string]string{"result": "success"})
		case rest == "ora.json":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"name": "ora", "config": map[string]interface{}{"type": "jdbc", "enabled": true},
			})
		default:
			// unknown plugins answer with a null config, not a 404
			json.NewEncoder(w).Encode(map[string]interface{}{"name": nil, "config": nil})
		}
	})

	mux.HandleFunc("/profiles.json", func(w http.ResponseWriter, r *http.Request) {
		f.lastProfiles = r.URL.Query()
		json.NewEncoder(w).Encode(&ProfilesList{
			FinishedQueries: []ProfileSummary{
				{QueryID: "2b1a...01", Query: "SELECT 1", State: "COMPLETED", User: "scott"},
			},
		})
	})

	mux.HandleFunc("/profiles/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/profiles/")
		if strings.HasPrefix(rest, "cancel/") {
			w.Write([]byte("Cancelled query 2b1a...01"))
			return
		}
		json.NewEncoder(w).Encode(&QueryProfile{Query: "SELECT 1", User: "scott", State: 2})
	})

	return httptest.NewServer(mux)
}

func testClient(ts *httptest.Server, opts Options) *Client {
	opts.DisableTLS = true
	return NewClient(opts, strings.TrimPrefix(ts.URL, "http://"))
}

func connectedClient(t *testing.T, ts *httptest.Server, opts Options) *Client {
	cl := testClient(ts, opts)
	require.NoError(t, cl.Connect(context.Background()))
	return cl
}

func TestNewClient(t *testing.T) {
	opts := Options{User: "scott", DefaultSchema: "ora.BLUE"}
	cl := NewClient(opts, "bit1", "bit2")

	assert.Equal(t, opts, cl.Opts)
	assert.ElementsMatch(t, []string{"bit1", "bit2"}, cl.hosts)
	assert.False(t, cl.connected)
}

func TestConnectSuccess(t *testing.T) {
	fake := &fakeDrillbit{user: "scott", pass: "tiger", requireSession: true}
	ts := fake.start()
	defer ts.Close()

	cl := connectedClient(t, ts, Options{User: "scott", Password: "tiger"})
	defer cl.Close()

	// the session cookie must ride along on later calls
	assert.NoError(t, cl.Ping(context.Background()))
}

func TestConnectBadCredentials(t *testing.T) {
	fake := &fakeDrillbit{user: "scott", pass: "tiger"}
	ts := fake.start()
	defer ts.Close()

	cl := testClient(ts, Options{User: "scott", Password: "hunter2"})
	err := cl.Connect(context.Background())
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestConnectUnreachableHost(t *testing.T) {
	cl := NewClient(Options{User: "scott", Password: "tiger", DisableTLS: true}, "localhost:1")
	err := cl.Connect(context.Background())
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestConnectNoHosts(t *testing.T) {
	cl := NewClient(Options{})
	assert.Error(t, cl.Connect(context.Background()))
}

func TestConnectWithoutCredentials(t *testing.T) {
	fake := &fakeDrillbit{}
	ts := fake.start()
	defer ts.Close()

	cl := testClient(ts, Options{})
	assert.NoError(t, cl.Connect(context.Background()))
}

func TestPingBadConn(t *testing.T) {
	fake := &fakeDrillbit{user: "scott", pass: "tiger"}
	ts := fake.start()

	cl := connectedClient(t, ts, Options{User: "scott", Password: "tiger"})
	ts.Close()

	assert.Same(t, driver.ErrBadConn, cl.Ping(context.Background()))
}

func TestSessionExpiry(t *testing.T) {
	fake := &fakeDrillbit{requireSession: true}
	ts := fake.start()
	defer ts.Close()

	// no form login performed, so no session cookie exists
	cl := testClient(ts, Options{})
	cl.baseURL = cl.endpointURL(cl.hosts[0])
	var err error
	cl.hc, err = cl.makeHTTPClient(cl.hosts[0])
	require.NoError(t, err)
	cl.connected = true

	_, err = cl.SubmitQuery(context.Background(), TypeSQL, "SELECT 1")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestGetClusterInfo(t *testing.T) {
	fake := &fakeDrillbit{user: "scott", pass: "tiger"}
	ts := fake.start()
	defer ts.Close()

	cl := connectedClient(t, ts, Options{User: "scott", Password: "tiger"})
	info, err := cl.GetClusterInfo(context.Background())
	require.NoError(t, err)

	require.Len(t, info.Drillbits, 1)
	assert.Equal(t, "1.20.0", info.CurrentVersion)
	assert.True(t, info.Drillbits[0].Current)
	assert.Equal(t, strings.TrimPrefix(ts.URL, "http://"), info.Drillbits[0].Address)
}

func TestNewConnectionRotates(t *testing.T) {
	fake := &fakeDrillbit{user: "scott", pass: "tiger"}
	ts := fake.start()
	defer ts.Close()

	cl := testClient(ts, Options{User: "scott", Password: "tiger"})

	first, err := cl.NewConnection(context.Background())
	require.NoError(t, err)
	assert.NoError(t, first.Ping(context.Background()))

	// second connection comes from the drillbit list discovered above
	second, err := cl.NewConnection(context.Background())
	require.NoError(t, err)
	assert.NoError(t, second.Ping(context.Background()))
}

func TestEndpointURL(t *testing.T) {
	cl := NewClient(Options{}, "drillbit1")
	assert.Equal(t, "https://drillbit1:8047", cl.endpointURL("drillbit1"))

	cl = NewClient(Options{DisableTLS: true, HTTPPort: 8080}, "drillbit1")
	assert.Equal(t, "http://drillbit1:8080", cl.endpointURL("drillbit1"))
	assert.Equal(t, "http://drillbit1:1234", cl.endpointURL("drillbit1:1234"))
}

func TestClientImplementsConn(t *testing.T) {
	assert.Implements(t, (*Conn)(nil), new(Client))
}
