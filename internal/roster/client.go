package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Shivanand-hulikatti/activity-roster/internal/model"
)

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// TransportError is a request that never produced a usable answer: the
// network failed, the status was wrong for a read, or the body was not the
// expected JSON.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// Outcome is the server's answer to a mutation. OK is set for 2xx; Message
// comes from a success body and Detail from a rejection body.
type Outcome struct {
	OK      bool
	Status  int
	Message string
	Detail  string
}

// Client talks to the activity API.
type Client struct {
	base string
	http *http.Client
}

// NewClient returns a Client for the API rooted at baseURL. A nil hc uses
// http.DefaultClient.
func NewClient(baseURL string, hc *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(u.String(), "/"), http: hc}, nil
}

// Activities reads the full collection, bypassing any HTTP cache.
func (c *Client) Activities(ctx context.Context) (model.Collection, error) {
	const op = "fetch activities"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/activities", nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var out model.Collection
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&out); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("decode body: %w", err)}
	}
	return out, nil
}

// Signup asks the server to add email to activity.
func (c *Client) Signup(ctx context.Context, activity, email string) (Outcome, error) {
	return c.mutate(ctx, "signup", activity, email)
}

// Unregister asks the server to remove email from activity.
func (c *Client) Unregister(ctx context.Context, activity, email string) (Outcome, error) {
	return c.mutate(ctx, "unregister", activity, email)
}

// MutationURL returns the address of action for (activity, email), with the
// path segment and the query value percent-encoded.
func (c *Client) MutationURL(action, activity, email string) string {
	return c.base + "/activities/" + url.PathEscape(activity) + "/" + action +
		"?" + url.Values{"email": {email}}.Encode()
}

func (c *Client) mutate(ctx context.Context, action, activity, email string) (Outcome, error) {
	op := action + " " + activity

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.MutationURL(action, activity, email), nil)
	if err != nil {
		return Outcome{}, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Outcome{}, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	out := Outcome{Status: resp.StatusCode, OK: resp.StatusCode >= 200 && resp.StatusCode <= 299}
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBody))
	if out.OK {
		var body model.MessageResponse
		if err := dec.Decode(&body); err != nil {
			return Outcome{}, &TransportError{Op: op, Err: fmt.Errorf("decode body: %w", err)}
		}
		out.Message = body.Message
		return out, nil
	}

	var body model.ErrorResponse
	if err := dec.Decode(&body); err != nil {
		return Outcome{}, &TransportError{Op: op, Err: fmt.Errorf("decode body: %w", err)}
	}
	out.Detail = body.Detail
	return out, nil
}
