package drill

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"os/user"
	"strings"

	"github.com/factset/go-drill-rest/internal/log"
	"github.com/jcmturner/gokrb5/v8/client"
	"github.com/jcmturner/gokrb5/v8/config"
	"github.com/jcmturner/gokrb5/v8/credentials"
	"github.com/jcmturner/gokrb5/v8/spnego"
)

const loginPath = "/j_security_check"

func (d *Client) makeHTTPClient(host string) (doer, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{}
	if d.Opts.TLSInsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	hc := &http.Client{
		Jar:       jar,
		Transport: transport,
		Timeout:   d.Opts.queryTimeout(),
	}

	if d.Opts.Auth == "kerberos" {
		return d.makeSpnegoClient(hc, host)
	}
	return hc, nil
}

// authenticate performs the form login against the web server. The session
// cookie ends up in the client's cookie jar and rides along on every
// subsequent request. Drill answers a failed login with a 200 carrying the
// login error page, so the body has to be inspected as well.
func (d *Client) authenticate(ctx context.Context) error {
	form := url.Values{}
	form.Set("j_username", d.Opts.User)
	form.Set("j_password", d.Opts.Password)

	req, err := d.newRequest(ctx, http.MethodPost, loginPath, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return err
	}

	resp, err := d.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: login returned status %d", ErrAuthFailed, resp.StatusCode)
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if bytes.Contains(body, []byte("Invalid username/password")) {
		return fmt.Errorf("%w: invalid username/password credentials", ErrAuthFailed)
	}

	log.Printf("authentication successful for %s", d.Opts.User)
	return nil
}

func (d *Client) makeSpnegoClient(hc *http.Client, host string) (doer, error) {
	krb, err := getKrbClient()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	var spn string
	if d.Opts.ServiceName != "" {
		if h, _, found := strings.Cut(host, ":"); found {
			host = h
		}
		spn = d.Opts.ServiceName + "/" + host
	}

	return spnego.NewClient(krb, hc, spn), nil
}

func getKrbClient() (*client.Client, error) {
	configPath := os.Getenv("KRB5_CONFIG")
	if configPath == "" {
		configPath = "/etc/krb5.conf"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	ccachePath := os.Getenv("KRB5CCNAME")
	if strings.Contains(ccachePath, ":") {
		if strings.HasPrefix(ccachePath, "FILE:") {
			ccachePath = strings.SplitN(ccachePath, ":", 2)[1]
		} else {
			return nil, fmt.Errorf("unusable cache: %s", ccachePath)
		}
	} else if ccachePath == "" {
		u, err := user.Current()
		if err != nil {
			return nil, err
		}
		ccachePath = fmt.Sprintf("/tmp/krb5cc_%s", u.Uid)
	}

	ccache, err := credentials.LoadCCache(ccachePath)
	if err != nil {
		return nil, err
	}

	return client.NewFromCCache(ccache, cfg)
}
