package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFlagsOnly(t *testing.T) {
	opts, err := Load([]string{"--connect=127.0.0.1:8767", "--network=testnet"})
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8767", opts.Connect)
	require.Equal(t, "testnet", opts.Network)
	require.Equal(t, defaultConnectTimeout, opts.ConnectTimeout)
}

func TestLoadMissingConnectFails(t *testing.T) {
	_, err := Load([]string{"--network=mainnet"})
	require.Error(t, err)
}

func TestLoadUnknownNetworkFails(t *testing.T) {
	_, err := Load([]string{"--connect=127.0.0.1:8767", "--network=nope"})
	require.Error(t, err)
}

func TestLoadMergesYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rvnpeerctl.yaml")
	err := os.WriteFile(path, []byte("connect: 10.0.0.1:8767\nnetwork: regtest\n"), 0o644)
	require.NoError(t, err)

	opts, err := Load([]string{"--configfile=" + path})
	require.NoError(t, err)
	require.Equal(t, "10.0.0.1:8767", opts.Connect)
	require.Equal(t, "regtest", opts.Network)
}

func TestChainParamsResolution(t *testing.T) {
	opts, err := Load([]string{"--connect=127.0.0.1:8767", "--network=regtest"})
	require.NoError(t, err)
	params, err := opts.ChainParams()
	require.NoError(t, err)
	require.Equal(t, "regtest", params.Name)
}
