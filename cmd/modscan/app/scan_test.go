package app

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infotecha/modhub/internal/github"
	"github.com/infotecha/modhub/internal/scanner"
	"github.com/infotecha/modhub/pkg/descriptor"
	"github.com/infotecha/modhub/pkg/logging"
)

const testOrg = "info-tech-io"

func descriptorJSON(name string) string {
	repo := descriptor.RepositoryFor(name)
	return fmt.Sprintf(`{
		"schema_version": "1.0",
		"name": %q,
		"title": "Module %s",
		"description": "Test module.",
		"version": "1.0.0",
		"type": "educational",
		"deployment": {"subdomain": %q, "repository": %q, "build_system": "hugo-templates"},
		"hugo_config": {"template": "educational-module", "theme": "compose", "hugo_version": %q},
		"metadata": {"author": "infotecha", "difficulty": "beginner", "estimated_time": "4 hours",
			"language": "ru", "tags": ["a", "b", "c"]},
		"urls": {"production": %q, "repository": "https://github.com/info-tech-io/%s"},
		"status": {"lifecycle": "stable", "last_updated": "2025-06-10"}
	}`, name, name, name, repo, descriptor.PinnedHugoVersion, descriptor.CanonicalURL(name), repo)
}

// newTestApp wires an App against a fake remote API serving the given
// repositories and descriptors.
func newTestApp(t *testing.T, repos []string, descriptors map[string]string) *App {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/orgs/"+testOrg+"/repos":
			list := make([]map[string]string, 0, len(repos))
			for _, name := range repos {
				list = append(list, map[string]string{"name": name})
			}
			_ = json.NewEncoder(w).Encode(list)

		case strings.HasPrefix(r.URL.Path, "/repos/"+testOrg+"/"):
			repo := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/repos/"+testOrg+"/"), "/", 2)[0]
			content, ok := descriptors[repo]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{
				"content":  base64.StdEncoding.EncodeToString([]byte(content)),
				"encoding": "base64",
			})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	registryPath := filepath.Join(t.TempDir(), "modules.json")
	require.NoError(t, os.WriteFile(registryPath, []byte(`{"modules": []}`), 0o644))

	client := github.New(
		github.WithBaseURL(server.URL),
		github.WithToken(""),
		github.WithLogger(logging.NewNopLogger()),
	)
	s := scanner.New(testOrg,
		scanner.WithClient(client),
		scanner.WithRegistryPath(registryPath),
		scanner.WithLogger(logging.NewNopLogger()),
	)

	application, err := New("test", "none", "now", "tests",
		WithLogger(logging.NewNopLogger()),
		WithScanner(s),
	)
	require.NoError(t, err)
	return application
}

func executeApp(t *testing.T, application *App, args ...string) (string, error) {
	t.Helper()
	cmd := application.createRootCommand()

	var buf strings.Builder
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestScanPrintsCatalog(t *testing.T) {
	application := newTestApp(t,
		[]string{"mod_linux_base"},
		map[string]string{"mod_linux_base": descriptorJSON("linux-base")},
	)

	out, err := executeApp(t, application, "--format", "json")
	require.NoError(t, err)

	var catalog descriptor.Catalog
	require.NoError(t, json.Unmarshal([]byte(out), &catalog))
	assert.Equal(t, "1.0", catalog.Version)
	require.Len(t, catalog.Modules, 1)
	assert.Equal(t, "linux-base", catalog.Modules[0].Name)
	assert.Equal(t, descriptor.SourceModuleJSON, catalog.Modules[0].EntrySource)
}

func TestScanRejectsUnknownFormat(t *testing.T) {
	application := newTestApp(t, nil, nil)

	_, err := executeApp(t, application, "--format", "xml")
	assert.Error(t, err)
}

func TestModuleFlagResolvesSingleModule(t *testing.T) {
	application := newTestApp(t,
		[]string{"mod_linux_base"},
		map[string]string{"mod_linux_base": descriptorJSON("linux-base")},
	)

	out, err := executeApp(t, application, "--module", "linux-base")
	require.NoError(t, err)

	var m descriptor.Module
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "linux-base", m.Name)
}

func TestModuleFlagFailsWhenUnresolvable(t *testing.T) {
	application := newTestApp(t, nil, nil)

	out, err := executeApp(t, application, "--module", "ghost")
	require.Error(t, err)
	assert.Contains(t, out, scanner.NoConfigurationFound)
}

func TestValidateFlagReportsPerRepository(t *testing.T) {
	application := newTestApp(t,
		[]string{"mod_linux_base", "mod_broken", "mod_bare"},
		map[string]string{
			"mod_linux_base": descriptorJSON("linux-base"),
			"mod_broken":     `{"schema_version": "1.0", "name": "broken"}`,
		},
	)

	out, err := executeApp(t, application, "--validate")
	require.Error(t, err)
	assert.Contains(t, out, "PASS mod_linux_base")
	assert.Contains(t, out, "FAIL mod_broken")
	assert.Contains(t, out, "SKIP mod_bare")
}

func TestConfigFlagReloadsConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "modscan.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("github_org: acme-modules\ncache_ttl: 90s\n"), 0o644))

	application := newTestApp(t, nil, nil)
	_, err := executeApp(t, application, "version", "--config", configPath)
	require.NoError(t, err)

	assert.Equal(t, "acme-modules", application.config.Org)
	assert.Equal(t, 90*time.Second, application.config.CacheTTL)
	assert.Equal(t, configPath, application.config.ConfigFile)
}

func TestConfigFlagLosesToExplicitOrg(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "modscan.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("github_org: acme-modules\n"), 0o644))

	application := newTestApp(t, nil, nil)
	_, err := executeApp(t, application, "version", "--config", configPath, "--org", "flag-org")
	require.NoError(t, err)

	assert.Equal(t, "flag-org", application.config.Org)
}

func TestConfigFlagMissingFile(t *testing.T) {
	application := newTestApp(t, nil, nil)

	_, err := executeApp(t, application, "version", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	application := newTestApp(t, nil, nil)

	out, err := executeApp(t, application, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "modscan test")
}
