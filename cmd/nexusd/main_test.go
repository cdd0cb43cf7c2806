package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/nexus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetArgs(append([]string{"--home", home}, args...))
	err := cmd.Execute()
	return out.String(), err
}

const scenario = `
blocks:
  - time: 2023-01-01T00:00:00Z
    actions:
      - signer: alice
        path: cash/send
        msg: {token: yluna, to: "@vault", amount: 10}
        hook:
          path: vault/deposit
`

func TestInitReplayQuery(t *testing.T) {
	home := t.TempDir()

	out, err := run(t, home, "init", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "genesis.json")

	_, err = run(t, home, "init", "alice")
	require.Error(t, err, "genesis must not be overwritten")
	_, err = run(t, home, "init", "--force", "alice", "bob")
	require.NoError(t, err)

	path := filepath.Join(home, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0o600))
	out, err = run(t, home, "replay", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	var outcome struct {
		Path string `json:"path"`
		Err  string `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &outcome))
	assert.Equal(t, "cash/send", outcome.Path)
	assert.Empty(t, outcome.Err)

	out, err = run(t, home, "query", "balance", "nyluna", "@alice")
	require.NoError(t, err)
	var bal struct {
		Balance string `json:"balance"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &bal))
	assert.Equal(t, "10", bal.Balance)

	out, err = run(t, home, "query", "vault")
	require.NoError(t, err)
	assert.Contains(t, out, `"ratio_a": "0.5"`)

	_, err = run(t, home, "query", "pool", "nyluna_pool", "@alice")
	require.NoError(t, err)
}

func TestVersionAndPaths(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, nexus.Version()+"\n", out)

	out, err = run(t, t.TempDir(), "paths")
	require.NoError(t, err)
	assert.Contains(t, out, "vault/claim_virtual_rewards\n")
}
