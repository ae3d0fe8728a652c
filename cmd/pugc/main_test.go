package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCLI executes the command tree with args, capturing whatever the run
// wrote to the real os.Stdout — build/render write their output with
// fmt.Print rather than through cobra's own output writer.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	realStdout := os.Stdout
	os.Stdout = w

	cmdErr := cmd.Execute()

	os.Stdout = realStdout
	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)

	return buf.String(), cmdErr
}

func writeTemplate(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildCommandWritesArtifactToStdout(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "index.pug", "p hi\n")
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	out, err := runCLI(t, "build", "index.pug")
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestBuildCommandWritesArtifactToFile(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "index.pug", "p hi\n")
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	_, err = runCLI(t, "build", "index.pug", "--out", "out.js")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "out.js"))
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestRenderCommandWithDataFile(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "index.pug", "p Hello #{$data.name}\n")
	writeTemplate(t, dir, "data.json", `{"name": "Ada"}`)
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	out, err := runCLI(t, "render", "index.pug", "--data", "data.json")
	require.NoError(t, err)
	require.Contains(t, out, "<p>Hello Ada</p>")
}

func TestBuildCommandFailsOnMissingTemplate(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	_, err = runCLI(t, "build", "missing.pug")
	require.Error(t, err)
	require.Equal(t, exitCompileError, exitCodeFor(err))
}

func TestExitCodeForCLIError(t *testing.T) {
	err := &cliError{code: exitIOError, err: os.ErrNotExist}
	require.Equal(t, exitIOError, exitCodeFor(err))
}
