package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/roconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGetCommand(t *testing.T) {
	path := writeConfig(t, "app.yaml", "db:\n  host: localhost\n  replicas:\n    - r0\n    - r1\n")

	out, err := execute(t, "--file", path, "get", "db:host")
	require.NoError(t, err)
	assert.Equal(t, "localhost\n", out)

	out, err = execute(t, "-f", path, "--set", "db__replicas__1=r9", "get", "db:replicas")
	require.NoError(t, err)
	assert.JSONEq(t, `["r0", "r9"]`, out)

	_, err = execute(t, "-f", path, "get", "db:port")
	assert.ErrorIs(t, err, roconfig.ErrKeyNotFound)
}

func TestKeysCommand(t *testing.T) {
	path := writeConfig(t, "app.ini", "[DEFAULT]\nshared = 1\n\n[b]\nx = 1\n\n[a]\ny = 2\n")

	out, err := execute(t, "-f", path, "keys")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", out)

	out, err = execute(t, "-f", path, "keys", "a")
	require.NoError(t, err)
	assert.Equal(t, "shared\ny\n", out)

	_, err = execute(t, "-f", path, "keys", "a:y")
	assert.ErrorIs(t, err, roconfig.ErrTypeMismatch)
}

func TestFlatCommand(t *testing.T) {
	path := writeConfig(t, "app.json", `{"b": {"c": 1}, "a": [true]}`)

	out, err := execute(t, "-f", path, "flat")
	require.NoError(t, err)
	assert.Equal(t, "a:0=true\nb:c=1\n", out)
}

func TestEnvCommand(t *testing.T) {
	path := writeConfig(t, "app.json", `{"db": {"host": "localhost", "port": 5432}}`)

	out, err := execute(t, "-f", path, "env", "--prefix", "app_")
	require.NoError(t, err)
	assert.Equal(t, "APP_DB__HOST=localhost\nAPP_DB__PORT=5432\n", out)
}

func TestDumpCommand(t *testing.T) {
	path := writeConfig(t, "app.toml", "[server]\nport = 8080\n")

	out, err := execute(t, "-f", path, "dump")
	require.NoError(t, err)
	assert.JSONEq(t, `{"server": {"port": 8080}}`, out)

	out, err = execute(t, "-f", path, "dump", "--format", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "server:\n  port: 8080\n", out)

	out, err = execute(t, "-f", path, "dump", "--format", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[server]")
	assert.Contains(t, out, "port = 8080")

	_, err = execute(t, "-f", path, "dump", "--format", "xml")
	assert.Error(t, err)
}

func TestSourceFlags(t *testing.T) {
	path := writeConfig(t, "app.yaml", "server:\n  port: 80\n")

	t.Run("EnvPrefix", func(t *testing.T) {
		t.Setenv("ROCONF_CLI_SERVER__PORT", "9090")
		out, err := execute(t, "-f", path, "--env-prefix", "ROCONF_CLI_", "--strip-prefix", "get", "server:port")
		require.NoError(t, err)
		assert.Equal(t, "9090\n", out)
	})

	t.Run("OptionalFile", func(t *testing.T) {
		out, err := execute(t, "--optional-file", filepath.Join(t.TempDir(), "none.yaml"), "--set", "a=b", "get", "a")
		require.NoError(t, err)
		assert.Equal(t, "b\n", out)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := execute(t, "-f", filepath.Join(t.TempDir(), "none.yaml"), "keys")
		assert.ErrorIs(t, err, roconfig.ErrConfigNotFound)
	})

	t.Run("MalformedSet", func(t *testing.T) {
		_, err := execute(t, "--set", "novalue", "keys")
		assert.Error(t, err)
	})

	t.Run("OverrideConflict", func(t *testing.T) {
		_, err := execute(t, "-f", path, "--set", "server:port:x=1", "keys")
		assert.ErrorIs(t, err, roconfig.ErrStructuralConflict)
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel("warning").String())
	assert.Equal(t, "INFO", parseLevel("bogus").String())
}
