package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"deploy_networks/internal/domain/entity"
	"deploy_networks/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const testMnemonic = "test test test test test test test test test test test junk"

// run executes the app with args and returns stdout and the action error.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DEPLOY_MNEMONIC", "")
	t.Setenv("DEPLOY_PROJECT_ID", "")

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"networks", "--verbosity", "error"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestListPrintsEveryNetwork(t *testing.T) {
	out, err := run(t, "--secrets", filepath.Join(t.TempDir(), "missing.json"), "list")
	require.NoError(t, err)

	for _, name := range []string{"development", "rinkeby", "ropsten"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "http://localhost:7545")
	assert.Contains(t, out, "6721975")
}

func TestShowJSONHidesSecrets(t *testing.T) {
	dir := t.TempDir()
	secrets := writeFile(t, dir, "secrets.json", `{"projectId":"hidden-project","mnemonic":"`+testMnemonic+`"}`)

	out, err := run(t, "--secrets", secrets, "show", "--json", "ropsten")
	require.NoError(t, err)

	var view map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "ropsten", view["name"])
	assert.Equal(t, "3", view["networkId"])
	assert.Equal(t, true, view["provider"])
	assert.NotContains(t, out, "hidden-project")
}

func TestShowUnknownNetwork(t *testing.T) {
	_, err := run(t, "--secrets", filepath.Join(t.TempDir(), "missing.json"), "show", "mainnet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown network")
}

func TestCheckRequiresNames(t *testing.T) {
	_, err := run(t, "check")
	require.Error(t, err)
}

func TestCheckRemoteNetwork(t *testing.T) {
	srv := testutil.NewRPCServer(t)
	dir := t.TempDir()
	secrets := writeFile(t, dir, "secrets.json", `{"projectId":"abc","mnemonic":"`+testMnemonic+`"}`)
	config := writeFile(t, dir, "config.yml", `
rpc:
  endpointTemplate: "`+srv.URL+`/{network}/{projectId}"
wallet:
  numberOfAddresses: 1
`)

	out, err := run(t, "--config", config, "--secrets", secrets, "check", "--json", "ropsten")
	require.NoError(t, err)
	var statuses []entity.NetworkStatus
	require.NoError(t, json.Unmarshal([]byte(out), &statuses))
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].Healthy)
	assert.Equal(t, uint64(3), statuses[0].ChainID)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", statuses[0].Account)
	assert.Positive(t, srv.Calls("eth_getBalance"))
}

func TestCheckFailsWithoutSecrets(t *testing.T) {
	out, err := run(t, "--secrets", filepath.Join(t.TempDir(), "missing.json"), "check", "rinkeby")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 network checks failed")
	assert.Contains(t, out, "rinkeby")
}
