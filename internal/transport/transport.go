// Package transport provides the authenticated HTTP client used to talk to
// the remote repository API.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	stderrors "errors"

	"github.com/infotecha/modhub/pkg/errors"
)

// DefaultTimeout bounds every request so a hung remote cannot stall a whole
// organization scan.
const DefaultTimeout = 30 * time.Second

// Client provides HTTP client functionality with authentication.
type Client struct {
	http *http.Client
	auth Authenticator
}

// New creates a new transport client with the specified authenticator.
func New(auth Authenticator) *Client {
	return &Client{
		http: &http.Client{Timeout: DefaultTimeout},
		auth: auth,
	}
}

// WithHTTPClient replaces the underlying http.Client. Used by tests and by
// callers that need custom timeouts.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// Get performs an authenticated GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapAPI(url, 0, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.auth != nil {
		c.auth.Apply(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Timed-out requests carry the timeout sentinel so callers can treat
		// them like any other absent response instead of a hard failure.
		var netErr net.Error
		if stderrors.As(err, &netErr) && netErr.Timeout() {
			return nil, &errors.APIError{
				Host:     req.URL.Host,
				Endpoint: req.URL.Path,
				Message:  "request timed out",
				Err:      errors.ErrTimeout,
			}
		}
		return nil, err
	}
	return resp, nil
}

// DecodeResponse decodes a JSON response into the target structure. Non-200
// statuses are returned as APIError values carrying the status code so
// callers can distinguish a 404 from a transport failure.
func DecodeResponse(resp *http.Response, target any) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &errors.APIError{
			Host:       resp.Request.URL.Host,
			Endpoint:   resp.Request.URL.Path,
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}
