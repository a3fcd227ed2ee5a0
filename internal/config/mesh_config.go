package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// MeshConfig holds configuration for a mesh worker process
type MeshConfig struct {
	Hostname          string
	RendezvousAddr    string
	DeviceName        string
	Port              uint8
	GIDIndex          uint8
	LogLevel          string
	OtelCollectorAddr string // empty disables metrics export
}

// meshFlagKeys maps config file keys to their command line flag names.
var meshFlagKeys = map[string]string{
	"config":              "config",
	"rendezvous_addr":     "rendezvous-addr",
	"device_name":         "device-name",
	"port":                "port",
	"gid_index":           "gid-index",
	"log_level":           "log-level",
	"otel_collector_addr": "otel-collector-addr",
}

// SetupMeshFlags sets up the command line flags for a mesh worker
func SetupMeshFlags(flagSet *pflag.FlagSet) {
	flagSet.String("config", "", "Path to configuration file")
	flagSet.Bool("create-config", false, "Create a default configuration file")
	flagSet.String("config-output", "ibmesh.yaml", "Path where to write the default configuration")
	flagSet.Bool("version", false, "Show version information")
	flagSet.String("rendezvous-addr", "localhost:50051", "Address of the rendezvous service")
	flagSet.String("device-name", "mlx4_0", "RDMA device to use")
	flagSet.Uint8("port", 1, "Physical port number on the device")
	flagSet.Uint8("gid-index", 0, "GID table index for the local port")
	flagSet.String("log-level", "info", "Log level (debug, info, warn, error)")
	flagSet.String("otel-collector-addr", "", "OTLP collector address (empty disables metrics)")
}

// LoadMeshConfig loads the configuration for a mesh worker from flags,
// environment variables and an optional config file
func LoadMeshConfig(flagSet *pflag.FlagSet) (*MeshConfig, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("hostname", getSystemHostname())
	v.SetDefault("rendezvous_addr", "localhost:50051")
	v.SetDefault("device_name", "mlx4_0")
	v.SetDefault("port", 1)
	v.SetDefault("gid_index", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("otel_collector_addr", "")

	// Environment variables
	v.SetEnvPrefix("IBMESH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind the hyphenated command line flags onto the underscore keys
	// used by config files and environment variables
	for key, name := range meshFlagKeys {
		if flag := flagSet.Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("error binding flag %s: %w", name, err)
			}
		}
	}

	// Try to load config file if provided
	configPath := v.GetString("config")
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		// Look for config in default locations if no explicit path provided
		v.SetConfigName("ibmesh")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.ibmesh")
		v.AddConfigPath("/etc/ibmesh")

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file is not found, but other errors should be handled
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	port := v.GetUint("port")
	gidIndex := v.GetUint("gid_index")
	if port == 0 || port > 255 {
		return nil, fmt.Errorf("port %d out of range", port)
	}
	if gidIndex > 255 {
		return nil, fmt.Errorf("gid_index %d out of range", gidIndex)
	}

	config := &MeshConfig{
		Hostname:          v.GetString("hostname"),
		RendezvousAddr:    v.GetString("rendezvous_addr"),
		DeviceName:        v.GetString("device_name"),
		Port:              uint8(port),
		GIDIndex:          uint8(gidIndex),
		LogLevel:          v.GetString("log_level"),
		OtelCollectorAddr: v.GetString("otel_collector_addr"),
	}

	return config, nil
}

// CreateDefaultMeshConfig creates a default configuration file for a mesh worker
func CreateDefaultMeshConfig(path string) error {
	configContent := `# IBMesh Worker Configuration
rendezvous_addr: "localhost:50051"
device_name: "mlx4_0"
port: 1
gid_index: 0
log_level: "info" # debug, info, warn, error
otel_collector_addr: "" # e.g. grpc://localhost:4317, empty disables metrics
`

	return writeConfigFile(path, configContent)
}
