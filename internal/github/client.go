// Package github implements the thin authenticated client over the remote
// repository API: listing an organization's repositories and fetching decoded
// file contents at a ref.
package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/infotecha/modhub/internal/transport"
	"github.com/infotecha/modhub/pkg/errors"
	"github.com/infotecha/modhub/pkg/logging"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.github.com"

// listPageSize bounds the single listing request. Organization size is tens
// of repositories, well under one page.
const listPageSize = 100

// Repository is a remote repository descriptor. Only the name is required by
// the scanner; the remaining fields ride along for logging.
type Repository struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name,omitempty"`
	DefaultBranch string `json:"default_branch,omitempty"`
}

// contentResponse is the shape of the contents endpoint response.
type contentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// Client talks to the remote repository API.
type Client struct {
	baseURL   string
	transport *transport.Client
	logger    *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithToken sets an explicit credential instead of reading the environment.
func WithToken(token string) Option {
	return func(c *Client) {
		c.transport = transport.New(&transport.TokenAuth{Token: token})
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client. The bearer credential is read from GITHUB_TOKEN when
// present; without it requests are unauthenticated and rate-limited harder.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		transport: transport.New(&transport.TokenAuth{Token: os.Getenv("GITHUB_TOKEN")}),
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListRepositories lists the organization's repositories whose names start
// with prefix. A single bounded listing request is issued; filtering happens
// client-side. The caller downgrades errors to an empty result so one failed
// listing cannot abort a scan.
func (c *Client) ListRepositories(ctx context.Context, org, prefix string) ([]Repository, error) {
	listURL := fmt.Sprintf("%s/orgs/%s/repos?type=all&per_page=%d", c.baseURL, url.PathEscape(org), listPageSize)

	resp, err := c.transport.Get(ctx, listURL)
	if err != nil {
		return nil, errors.WrapAPI(c.host(), 0, err)
	}

	var repos []Repository
	if err := transport.DecodeResponse(resp, &repos); err != nil {
		return nil, err
	}

	filtered := make([]Repository, 0, len(repos))
	for _, repo := range repos {
		if strings.HasPrefix(repo.Name, prefix) {
			filtered = append(filtered, repo)
		}
	}

	c.logger.Debug().
		Str("org", org).
		Str("prefix", prefix).
		Int("total", len(repos)).
		Int("matched", len(filtered)).
		Msg("listed repositories")

	return filtered, nil
}

// FetchFile fetches a file's decoded content from a repository at the given
// ref. A missing file is an expected, non-exceptional outcome: found is false
// and no error is surfaced. Other failures also resolve to absent, logged at
// debug level distinctly from "file does not exist".
func (c *Client) FetchFile(ctx context.Context, org, repo, path, ref string) (string, bool) {
	fileURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		c.baseURL, url.PathEscape(org), url.PathEscape(repo), path, url.QueryEscape(ref))

	resp, err := c.transport.Get(ctx, fileURL)
	if err != nil {
		if errors.IsTimeout(err) {
			c.logger.Debug().Err(err).Str("repo", repo).Str("path", path).Msg("content fetch timed out")
		} else {
			c.logger.Debug().Err(err).Str("repo", repo).Str("path", path).Msg("content fetch failed")
		}
		return "", false
	}

	var content contentResponse
	if err := transport.DecodeResponse(resp, &content); err != nil {
		var apiErr *errors.APIError
		if errors.AsAPIError(err, &apiErr) && apiErr.StatusCode == 404 {
			c.logger.Debug().Str("repo", repo).Str("path", path).Msg("file does not exist")
		} else {
			c.logger.Debug().Err(err).Str("repo", repo).Str("path", path).Msg("content fetch failed")
		}
		return "", false
	}

	if content.Content == "" {
		c.logger.Debug().Str("repo", repo).Str("path", path).Msg("file does not exist")
		return "", false
	}

	decoded, err := decodeContent(content)
	if err != nil {
		c.logger.Debug().Err(err).Str("repo", repo).Str("path", path).Msg("content decode failed")
		return "", false
	}

	return decoded, true
}

// host extracts the API host for error reporting, honoring base URL overrides.
func (c *Client) host() string {
	if u, err := url.Parse(c.baseURL); err == nil && u.Host != "" {
		return u.Host
	}
	return c.baseURL
}

// decodeContent decodes the contents payload. The API wraps base64 content in
// newlines, which the decoder rejects unless stripped.
func decodeContent(content contentResponse) (string, error) {
	if content.Encoding != "" && content.Encoding != "base64" {
		return "", errors.New("unsupported content encoding " + content.Encoding)
	}

	compact := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' {
			return -1
		}
		return r
	}, content.Content)

	decoded, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
