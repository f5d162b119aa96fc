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

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "disabled"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: dev")
}

func TestClassifyCmd(t *testing.T) {
	out, err := execute(t, "classify", "When was the meeting on 2024-01-15?")
	require.NoError(t, err)

	assert.Contains(t, out, "primary:    date")
	assert.Contains(t, out, "confidence: 0.90")
	assert.Contains(t, out, "relevant:   date")
	assert.Contains(t, out, "date_kw:when")
}

func TestChunkCmd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# Title\n\nHello world. Bye now.\n"), 0o600))

	out, err := execute(t, "chunk", "--compact", dir)
	require.NoError(t, err)

	var results []struct {
		Documents []struct {
			Path   string `json:"path"`
			Chunks []struct {
				Content string `json:"content"`
			} `json:"chunks"`
		} `json:"documents"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	require.Len(t, results[0].Documents, 1)
	assert.Equal(t, "a.md", results[0].Documents[0].Path)
	require.NotEmpty(t, results[0].Documents[0].Chunks)
	assert.Contains(t, results[0].Documents[0].Chunks[0].Content, "Hello world.")
}

func TestRootCmd_FlagValidation(t *testing.T) {
	_, err := execute(t, "--chunk-size", "50", "version")
	require.Error(t, err)

	_, err = execute(t, "--log-level", "loud", "version")
	require.Error(t, err)
}

func TestChunkCmd_MissingPath(t *testing.T) {
	_, err := execute(t, "chunk", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
