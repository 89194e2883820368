package drill

import (
	"context"

	"github.com/google/go-querystring/query"
)

// ProfilesOptions narrows the profile listing. The zero value asks for the
// server default.
type ProfilesOptions struct {
	// Limit caps the number of finished queries returned.
	Limit int `url:"limit,omitempty"`
}

// A ProfileSummary is one entry of the profile listing.
type ProfileSummary struct {
	QueryID  string `json:"queryId"`
	Time     int64  `json:"time"`
	Location string `json:"location"`
	Foreman  string `json:"foreman"`
	Query    string `json:"query"`
	State    string `json:"state"`
	User     string `json:"user"`
	Duration string `json:"duration"`
}

// A ProfilesList splits the profile listing the way the server reports it.
type ProfilesList struct {
	RunningQueries  []ProfileSummary `json:"runningQueries"`
	FinishedQueries []ProfileSummary `json:"finishedQueries"`
}

// A QueryProfile is the detailed execution profile of a single query.
type QueryProfile struct {
	Query   string `json:"query"`
	Plan    string `json:"plan"`
	State   int32  `json:"state"`
	User    string `json:"user"`
	Foreman string `json:"foreman"`
	Start   int64  `json:"start"`
	End     int64  `json:"end"`
}

// ListProfiles returns the query profiles known to the webserver. Pass nil
// for the server side defaults.
func (d *Client) ListProfiles(ctx context.Context, opts *ProfilesOptions) (*ProfilesList, error) {
	path := "/profiles.json"
	if opts != nil {
		vals, err := query.Values(opts)
		if err != nil {
			return nil, err
		}
		if encoded := vals.Encode(); encoded != "" {
			path += "?" + encoded
		}
	}

	list := &ProfilesList{}
	if err := d.doGet(ctx, path, list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetProfile returns the execution profile for a query id, an error wrapping
// ErrNotFound if the server doesn't know the id.
func (d *Client) GetProfile(ctx context.Context, queryID string) (*QueryProfile, error) {
	profile := &QueryProfile{}
	if err := d.doGet(ctx, "/profiles/"+escapePath(queryID)+".json", profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// CancelQuery asks the foreman to cancel a running query.
func (d *Client) CancelQuery(ctx context.Context, queryID string) error {
	return d.doGet(ctx, "/profiles/cancel/"+escapePath(queryID), nil)
}
