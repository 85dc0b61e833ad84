package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", ""))
	err := cmd.Execute()
	return out.String(), err
}

func TestRender_Stdout(t *testing.T) {
	out, err := run(t, "render", "--username", "Ada", "--message", "Hello there")
	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Hello there")
}

func TestRender_DesignToFile(t *testing.T) {
	dir := t.TempDir()
	design := filepath.Join(dir, "design.json")
	require.NoError(t, os.WriteFile(design, []byte(`{"blocks":[{"id":"1","kind":"markdown","content":"# Hi"}]}`), 0o600))
	output := filepath.Join(dir, "email.html")

	_, err := run(t, "render", "--design", design, "-o", output)
	require.NoError(t, err)

	html, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1")
}

func TestRender_Blocks(t *testing.T) {
	out, err := run(t, "render",
		"--block", "markdown=**Thanks** for joining",
		"--block", "text",
		"--message", "See you soon",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>Thanks</strong>")
	assert.Less(t, strings.Index(out, "Thanks"), strings.Index(out, "See you soon"))
}

func TestSend_ValidationFailsWithoutNetwork(t *testing.T) {
	_, err := run(t, "send", "--to", "not-an-email", "--username", "Ada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to must be a valid email address")
}

func TestLoadEnvFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), ".env")

	require.NoError(t, loadEnvFile(missing, false))
	require.Error(t, loadEnvFile(missing, true))
	require.NoError(t, loadEnvFile("", true))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MAILFORGE_TEST_VALUE=from-file\n"), 0o600))
	t.Setenv("MAILFORGE_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("MAILFORGE_TEST_VALUE"))
	require.NoError(t, loadEnvFile(path, true))
	assert.Equal(t, "from-file", os.Getenv("MAILFORGE_TEST_VALUE"))
}
