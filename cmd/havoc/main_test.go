package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pingProto = `syntax = "proto3";
package ping.v1;

service PingService {
  rpc Ping (PingRequest) returns (PingReply);
}

message PingRequest {
  string text = 1;
}

message PingReply {
  string text = 1;
  int64 received_at = 2;
}
`

const pingConfig = `metadata:
  name: ping-gateway
  version: 0.1.0
spec:
  host: 127.0.0.1
  port: 3000
  services:
    - name: PingService
      proto: ping.proto
      url: http://localhost:50051
      endpoints:
        - rpc: Ping
          method: POST
          path: /ping
          request: {}
          response: {}
`

func writeProject(t *testing.T, proto string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ping.proto"), []byte(proto), 0o644))
	cfg := filepath.Join(dir, "gateway.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(pingConfig), 0o644))
	return cfg
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListFrameworks(t *testing.T) {
	for _, name := range []string{"list-frameworks", "list-fw"} {
		t.Run(name, func(t *testing.T) {
			out, err := run(t, name)
			require.NoError(t, err)
			assert.Equal(t, "Available frameworks:\n• axum\n• nestjs\n• spring\n", out)
		})
	}
}

func TestNew(t *testing.T) {
	cfg := writeProject(t, pingProto)
	dir := filepath.Join(t.TempDir(), "api")

	out, err := run(t, "new", cfg, "-o", dir, "-f", "NestJS")
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Project generated at `"+dir+"` (nestjs,")

	assert.FileExists(t, filepath.Join(dir, "package.json"))
	assert.FileExists(t, filepath.Join(dir, "proto", "ping.proto"))
}

func TestNewUnsupportedFramework(t *testing.T) {
	cfg := writeProject(t, pingProto)
	dir := filepath.Join(t.TempDir(), "api")

	out, err := run(t, "generate", cfg, "-o", dir, "-f", "rails")
	require.Error(t, err)
	assert.Contains(t, out, "Unsupported framework: rails")
	assert.NoDirExists(t, dir)
}

func TestNewUnknownMethodWritesNothing(t *testing.T) {
	cfg := writeProject(t, `service PingService { rpc Echo (PingRequest) returns (PingReply); }
message PingRequest {}
message PingReply {}
`)
	dir := filepath.Join(t.TempDir(), "api")

	_, err := run(t, "new", cfg, "-o", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RPC method 'Ping' not found in service 'PingService'")
	assert.NoDirExists(t, dir)
}

func TestValidate(t *testing.T) {
	cfg := writeProject(t, pingProto)

	out, err := run(t, "val", cfg)
	require.NoError(t, err)
	assert.Equal(t, "✅ Configuration is valid.\n", out)

	out, err = run(t, "validate", "--strict", cfg)
	require.NoError(t, err)
	assert.Equal(t, "✅ Configuration is valid.\n", out)
}

func TestValidateStrict(t *testing.T) {
	cfg := writeProject(t, pingProto+`
message PingReply {
  string a = 1;
  string b = 1;
}
`)

	_, err := run(t, "validate", cfg)
	require.NoError(t, err)

	_, err = run(t, "validate", "--strict", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate message PingReply")
	assert.Contains(t, err.Error(), "field number 1 used by both a and b")
}

func TestValidateReportsProblems(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "gateway.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{"metadata":{"name":"","version":"1.0.0"},"spec":{"host":"h","port":0,"services":[]}}`), 0o644))

	_, err := run(t, "validate", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 problems")
}

func TestParse(t *testing.T) {
	cfg := writeProject(t, pingProto)
	proto := filepath.Join(filepath.Dir(cfg), "ping.proto")

	out, err := run(t, "parse", proto)
	require.NoError(t, err)
	var doc struct {
		Package  string `json:"package"`
		Messages []struct {
			Name string `json:"name"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "ping.v1", doc.Package)
	assert.Len(t, doc.Messages, 2)

	out, err = run(t, "parse", "--tokens", proto)
	require.NoError(t, err)
	var tokens []struct {
		Kind    string `json:"kind"`
		Literal string `json:"literal"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &tokens))
	require.NotEmpty(t, tokens)
	assert.Equal(t, "syntax", tokens[0].Kind)
	assert.Equal(t, "EOF", tokens[len(tokens)-1].Kind)
}

func TestGrammar(t *testing.T) {
	out, err := run(t, "grammar")
	require.NoError(t, err)
	assert.Contains(t, out, "Proto = { Statement } .")

	out, err = run(t, "grammar", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Grammar is valid")
}

func TestSchema(t *testing.T) {
	out, err := run(t, "schema")
	require.NoError(t, err)
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Contains(t, schema, "properties")
}

func TestWatchedPaths(t *testing.T) {
	cfg := writeProject(t, pingProto)
	dir := filepath.Dir(cfg)

	assert.Equal(t, []string{
		filepath.Join(dir, "gateway.yaml"),
		filepath.Join(dir, "ping.proto"),
	}, watchedPaths(cfg))

	missing := filepath.Join(dir, "missing.yaml")
	assert.Equal(t, []string{missing}, watchedPaths(missing))
}
