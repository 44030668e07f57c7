package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/infotecha/modhub/pkg/errors"
	"github.com/infotecha/modhub/pkg/logging"
)

// newTestClient wires a client against a httptest server.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(
		WithBaseURL(server.URL),
		WithToken(""),
		WithLogger(logging.NewNopLogger()),
	)
	return client, server
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encoding response: %v", err)
	}
}

func TestListRepositoriesFiltersByPrefix(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orgs/info-tech-io/repos" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("per_page") != "100" {
			t.Errorf("expected per_page=100, got %s", r.URL.Query().Get("per_page"))
		}
		writeJSON(t, w, []Repository{
			{Name: "mod_linux_base"},
			{Name: "landing-page"},
			{Name: "mod_docker"},
			{Name: "hugo-templates"},
		})
	}))

	repos, err := client.ListRepositories(context.Background(), "info-tech-io", "mod_")
	if err != nil {
		t.Fatalf("ListRepositories: %v", err)
	}

	if len(repos) != 2 {
		t.Fatalf("expected 2 repositories, got %d", len(repos))
	}
	if repos[0].Name != "mod_linux_base" || repos[1].Name != "mod_docker" {
		t.Errorf("unexpected filtering result: %+v", repos)
	}
}

func TestListRepositoriesStatusError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	repos, err := client.ListRepositories(context.Background(), "info-tech-io", "mod_")
	if err == nil {
		t.Fatal("expected an error for a 403 response")
	}
	if len(repos) != 0 {
		t.Errorf("expected no repositories, got %d", len(repos))
	}
}

func TestListRepositoriesSendsToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, []Repository{})
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL), WithToken("ghp_secret"), WithLogger(logging.NewNopLogger()))
	if _, err := client.ListRepositories(context.Background(), "info-tech-io", "mod_"); err != nil {
		t.Fatalf("ListRepositories: %v", err)
	}

	if gotAuth != "token ghp_secret" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "token ghp_secret")
	}
}

func TestListRepositoriesTransportErrorReportsHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // every request now fails at the transport level

	client := New(WithBaseURL(server.URL), WithToken(""), WithLogger(logging.NewNopLogger()))

	_, err := client.ListRepositories(context.Background(), "info-tech-io", "mod_")
	if err == nil {
		t.Fatal("expected an error against a closed server")
	}

	var apiErr *errors.APIError
	if !errors.AsAPIError(err, &apiErr) {
		t.Fatalf("error %v is not an APIError", err)
	}
	wantHost := strings.TrimPrefix(server.URL, "http://")
	if apiErr.Host != wantHost {
		t.Errorf("Host = %q, want %q", apiErr.Host, wantHost)
	}
}

func TestFetchFileDecodesContent(t *testing.T) {
	raw := `{"schema_version": "1.0", "name": "linux-base"}`
	// The contents API wraps base64 payloads in newlines.
	encoded := base64.StdEncoding.EncodeToString([]byte(raw))
	wrapped := encoded[:20] + "\n" + encoded[20:] + "\n"

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/info-tech-io/mod_linux_base/contents/module.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("ref") != "main" {
			t.Errorf("expected ref=main, got %s", r.URL.Query().Get("ref"))
		}
		writeJSON(t, w, map[string]string{"content": wrapped, "encoding": "base64"})
	}))

	content, found := client.FetchFile(context.Background(), "info-tech-io", "mod_linux_base", "module.json", "main")
	if !found {
		t.Fatal("expected file to be found")
	}
	if content != raw {
		t.Errorf("content = %q, want %q", content, raw)
	}
}

func TestFetchFileAbsence(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "404 means absent",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "missing content field means absent",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"name": "module.json"}`))
			},
		},
		{
			name: "server error downgrades to absent",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "invalid base64 downgrades to absent",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"content": "%%%not-base64%%%", "encoding": "base64"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler)

			content, found := client.FetchFile(context.Background(), "info-tech-io", "mod_docker", "module.json", "main")
			if found {
				t.Error("expected file to be reported absent")
			}
			if content != "" {
				t.Errorf("expected empty content, got %q", content)
			}
		})
	}
}

func TestFetchFileTimeoutDowngradesToAbsent(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(200 * time.Millisecond):
		}
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, found := client.FetchFile(ctx, "info-tech-io", "mod_docker", "module.json", "main")
	if found {
		t.Error("expected a timed-out fetch to be reported absent")
	}
}
