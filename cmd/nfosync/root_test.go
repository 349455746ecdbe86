package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating fixture directories")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing fixture file")
}

func TestRun_EndToEnd(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "mirror")
	writeFixture(t, filepath.Join(src, "Movies", "movie.nfo"), "<movie/>")
	writeFixture(t, filepath.Join(src, "Movies", "movie.mkv"), "payload")

	configPath := filepath.Join(t.TempDir(), "nfosync.json")
	writeFixture(t, configPath, fmt.Sprintf(`{
  "folder_pairs": [{"src_folder": %q, "dst_folder": %q}],
  "exclude_exts": [".mkv"],
  "max_size_mb": 100,
  "on_duplicate": "skip",
  "log_level": "ERROR"
}`, src, dst))

	cmd := newRootCmd()
	cmd.SetArgs([]string{configPath})
	require.NoError(t, cmd.Execute(), "run should complete")

	assert.FileExists(t, filepath.Join(dst, "Movies", "movie.nfo"), "metadata file should be mirrored")
	assert.NoFileExists(t, filepath.Join(dst, "Movies", "movie.mkv"), "video payload should be filtered out")
}

func TestRun_MissingSourceStillSucceeds(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	dst := filepath.Join(t.TempDir(), "mirror")

	configPath := filepath.Join(t.TempDir(), "nfosync.json")
	writeFixture(t, configPath, fmt.Sprintf(`{
  "folder_pairs": [{"src_folder": %q, "dst_folder": %q}],
  "exclude_exts": [],
  "max_size_mb": 100,
  "on_duplicate": "skip",
  "log_level": "CRITICAL"
}`, missing, dst))

	cmd := newRootCmd()
	cmd.SetArgs([]string{configPath})
	assert.NoError(t, cmd.Execute(), "a run with pair errors still completes cleanly")
}

func TestRun_LevelGatesLoadTimeLogging(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "mirror")
	writeFixture(t, filepath.Join(src, "movie.nfo"), "<movie/>")

	configPath := filepath.Join(t.TempDir(), "nfosync.json")
	writeFixture(t, configPath, fmt.Sprintf(`{
  "folder_pairs": [{"src_folder": %q, "dst_folder": %q}],
  "exclude_exts": [],
  "max_size_mb": 100,
  "on_duplicate": "skip",
  "log_level": "ERROR"
}`, src, dst))

	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err, "creating pipe")
	os.Stderr = w
	defer func() { os.Stderr = oldStderr }()

	cmd := newRootCmd()
	cmd.SetArgs([]string{configPath})
	execErr := cmd.Execute()

	require.NoError(t, w.Close(), "closing pipe writer")
	os.Stderr = oldStderr
	out, err := io.ReadAll(r)
	require.NoError(t, err, "reading captured output")

	require.NoError(t, execErr, "run should complete")
	assert.NotContains(t, string(out), "loading configuration",
		"config-load debug line should stay below the info gate")
	assert.NotContains(t, string(out), "starting sync",
		"info lines should be suppressed once log_level ERROR applies")
}

func TestRun_ConfigErrorFails(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nfosync.json")
	writeFixture(t, configPath, `{"folder_pairs": []}`)

	cmd := newRootCmd()
	cmd.SetArgs([]string{configPath})
	err := cmd.Execute()
	require.Error(t, err, "invalid config should fail the command")
	assert.Contains(t, err.Error(), "loading config", "error should come from config loading")
}

func TestRun_MissingConfigFileFails(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, cmd.Execute(), "missing config file should fail the command")
}
