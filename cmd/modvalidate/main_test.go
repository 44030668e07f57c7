package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// writeTemplate materializes the --template output as a descriptor file.
func writeTemplate(t *testing.T) string {
	t.Helper()
	out, err := runCommand(t, "--template")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "module.json")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))
	return path
}

func TestTemplateIsValidDescriptor(t *testing.T) {
	out, err := runCommand(t, writeTemplate(t))
	require.NoError(t, err)
	assert.Contains(t, out, "VALID")
	assert.Contains(t, out, "0 warnings")
}

func TestTemplateOutputShape(t *testing.T) {
	out, err := runCommand(t, "--template")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "1.0", doc["schema_version"])
	assert.Equal(t, "my-module", doc["name"])
}

func TestValidateFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "module.json")
	doc := `{"schema_version": "1.0", "name": "x", "title": "X"}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := runCommand(t, path)
	require.Error(t, err)
	assert.Contains(t, out, "INVALID")
}

func TestValidateFileMissing(t *testing.T) {
	_, err := runCommand(t, filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestValidateRemote(t *testing.T) {
	doc, readErr := os.ReadFile(writeTemplate(t))
	require.NoError(t, readErr)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(doc)
	}))
	defer server.Close()

	out, err := runCommand(t, "--url", server.URL+"/module.json")
	require.NoError(t, err)
	assert.Contains(t, out, "VALID")
}

func TestValidateRemoteNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := runCommand(t, "--url", server.URL+"/module.json")
	assert.Error(t, err)
}

func TestNoArguments(t *testing.T) {
	_, err := runCommand(t)
	assert.Error(t, err)
}
