package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMeshConfigDefaults(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	SetupMeshFlags(flagSet)
	require.NoError(t, flagSet.Parse(nil))

	cfg, err := LoadMeshConfig(flagSet)
	require.NoError(t, err)

	assert.Equal(t, "localhost:50051", cfg.RendezvousAddr)
	assert.Equal(t, "mlx4_0", cfg.DeviceName)
	assert.Equal(t, uint8(1), cfg.Port)
	assert.Equal(t, uint8(0), cfg.GIDIndex)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.Hostname)
}

func TestLoadMeshConfigFromFlags(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	SetupMeshFlags(flagSet)
	require.NoError(t, flagSet.Parse([]string{
		"--rendezvous-addr", "coord0:6000",
		"--device-name", "mlx5_1",
		"--port", "2",
		"--log-level", "debug",
	}))

	cfg, err := LoadMeshConfig(flagSet)
	require.NoError(t, err)

	assert.Equal(t, "coord0:6000", cfg.RendezvousAddr)
	assert.Equal(t, "mlx5_1", cfg.DeviceName)
	assert.Equal(t, uint8(2), cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMeshConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ibmesh.yaml")
	content := `rendezvous_addr: "coord9:7000"
device_name: "mlx5_2"
port: 2
gid_index: 3
log_level: "warn"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	SetupMeshFlags(flagSet)
	require.NoError(t, flagSet.Parse([]string{"--config", path}))

	cfg, err := LoadMeshConfig(flagSet)
	require.NoError(t, err)

	assert.Equal(t, "coord9:7000", cfg.RendezvousAddr)
	assert.Equal(t, "mlx5_2", cfg.DeviceName)
	assert.Equal(t, uint8(2), cfg.Port)
	assert.Equal(t, uint8(3), cfg.GIDIndex)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadMeshConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ibmesh.yaml")
	require.NoError(t, os.WriteFile(path, []byte("device_name: \"mlx5_2\"\nlog_level: \"warn\"\n"), 0644))

	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	SetupMeshFlags(flagSet)
	require.NoError(t, flagSet.Parse([]string{"--config", path, "--log-level", "debug"}))

	cfg, err := LoadMeshConfig(flagSet)
	require.NoError(t, err)

	// A flag set on the command line wins; file values fill the rest.
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "mlx5_2", cfg.DeviceName)
}

func TestCreateDefaultMeshConfigRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ibmesh.yaml")
	require.NoError(t, CreateDefaultMeshConfig(path))

	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	SetupMeshFlags(flagSet)
	require.NoError(t, flagSet.Parse([]string{"--config", path}))

	cfg, err := LoadMeshConfig(flagSet)
	require.NoError(t, err)

	// Every key the generated file documents must be picked up.
	assert.Equal(t, "localhost:50051", cfg.RendezvousAddr)
	assert.Equal(t, "mlx4_0", cfg.DeviceName)
	assert.Equal(t, uint8(1), cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRendezvousdConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rendezvousd.yaml")
	content := `listen_addr: "0.0.0.0:6000"
world_size: 8
max_conns: 32
database_uri: "http://localhost:4001"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	SetupRendezvousdFlags(flagSet)
	require.NoError(t, flagSet.Parse([]string{"--config", path}))

	cfg, err := LoadRendezvousdConfig(flagSet)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:6000", cfg.ListenAddr)
	assert.Equal(t, 8, cfg.WorldSize)
	assert.Equal(t, 32, cfg.MaxConns)
	assert.Equal(t, "http://localhost:4001", cfg.DatabaseURI)
}

func TestLoadRendezvousdConfigRequiresWorldSize(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	SetupRendezvousdFlags(flagSet)
	require.NoError(t, flagSet.Parse(nil))

	_, err := LoadRendezvousdConfig(flagSet)
	assert.Error(t, err)

	flagSet = pflag.NewFlagSet("test", pflag.ContinueOnError)
	SetupRendezvousdFlags(flagSet)
	require.NoError(t, flagSet.Parse([]string{"--world-size", "4"}))

	cfg, err := LoadRendezvousdConfig(flagSet)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.WorldSize)
	assert.Equal(t, "0.0.0.0:50051", cfg.ListenAddr)
	assert.Equal(t, 256, cfg.MaxConns)
}

func TestCreateDefaultConfigs(t *testing.T) {
	dir := t.TempDir()

	meshPath := filepath.Join(dir, "sub", "ibmesh.yaml")
	require.NoError(t, CreateDefaultMeshConfig(meshPath))
	content, err := os.ReadFile(meshPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "device_name")

	rdvPath := filepath.Join(dir, "rendezvousd.yaml")
	require.NoError(t, CreateDefaultRendezvousdConfig(rdvPath))
	content, err = os.ReadFile(rdvPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "world_size")
}
