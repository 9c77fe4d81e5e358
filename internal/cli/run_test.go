package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingSession = `name: cli_session
description: Import three users and page through them
steps:
  - import: '[{"name":"Ali","age":30,"email":"a@x.com"},{"name":"Bob","age":25,"email":"b@x.com"},{"name":"Cy","age":40,"email":"c@x.com"}]'
    expect:
      total_items: 3
  - sort: ageDesc
    expect:
      page: 1
      items: [user-3, user-1, user-2]
`

const failingSession = `name: cli_failing
description: Expects the wrong number of users
steps:
  - add: {name: Ali, age: "30", email: a@x.com}
    expect:
      total_items: 2
`

func writeSession(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func executeRun(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRunCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRunSession_Pass(t *testing.T) {
	out, err := executeRun(t, "text", writeSession(t, passingSession))
	require.NoError(t, err)

	assert.Contains(t, out, "✓ cli_session (2 steps)")
	assert.Contains(t, out, "Cy")
	assert.Contains(t, out, "Page 1 of 1 (3 users)")
}

func TestRunSession_PassJSON(t *testing.T) {
	out, err := executeRun(t, "json", writeSession(t, passingSession))
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   SessionResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Pass)
	assert.Equal(t, 2, resp.Data.Steps)
	assert.Equal(t, "ageDesc", resp.Data.View.Sort)
	require.Len(t, resp.Data.View.Items, 3)
	assert.Equal(t, "user-3", resp.Data.View.Items[0].ID)
}

func TestRunSession_FailedExpectation(t *testing.T) {
	out, err := executeRun(t, "text", writeSession(t, failingSession))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✗ cli_failing")
	assert.Contains(t, out, "total_items = 1, expected 2")
}

func TestRunSession_FailedExpectationJSON(t *testing.T) {
	out, err := executeRun(t, "json", writeSession(t, failingSession))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeExpect, resp.Error.Code)
}

func TestRunSession_InvalidFile(t *testing.T) {
	path := writeSession(t, "name: broken\nsteps: []\n")

	out, err := executeRun(t, "text", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeSession)
}

func TestRunSession_MissingFile(t *testing.T) {
	_, err := executeRun(t, "text", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunSession_GoldenUpdateThenCompare(t *testing.T) {
	session := writeSession(t, passingSession)
	golden := filepath.Join(t.TempDir(), "cli_session.golden")

	_, err := executeRun(t, "text", session, "--golden", golden, "--update")
	require.NoError(t, err)

	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"session": "cli_session"`)

	_, err = executeRun(t, "text", session, "--golden", golden)
	require.NoError(t, err)
}

func TestRunSession_GoldenMismatch(t *testing.T) {
	golden := filepath.Join(t.TempDir(), "stale.golden")
	require.NoError(t, os.WriteFile(golden, []byte("{}\n"), 0644))

	out, err := executeRun(t, "text", writeSession(t, passingSession), "--golden", golden)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "snapshot differs")
}

func TestRunSession_UpdateWithoutGolden(t *testing.T) {
	_, err := executeRun(t, "text", writeSession(t, passingSession), "--update")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
