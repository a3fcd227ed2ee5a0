package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// RendezvousdConfig holds configuration for the rendezvous service
type RendezvousdConfig struct {
	ListenAddr  string
	WorldSize   int
	MaxConns    int
	DatabaseURI string // empty disables the rqlite job registry
	LogLevel    string
}

// rendezvousdFlagKeys maps config file keys to their command line flag names.
var rendezvousdFlagKeys = map[string]string{
	"config":       "config",
	"listen_addr":  "listen-addr",
	"world_size":   "world-size",
	"max_conns":    "max-conns",
	"database_uri": "database-uri",
	"log_level":    "log-level",
}

// SetupRendezvousdFlags sets up the command line flags for the rendezvous service
func SetupRendezvousdFlags(flagSet *pflag.FlagSet) {
	flagSet.String("config", "", "Path to configuration file")
	flagSet.Bool("create-config", false, "Create a default configuration file")
	flagSet.String("config-output", "rendezvousd.yaml", "Path where to write the default configuration")
	flagSet.Bool("version", false, "Show version information")
	flagSet.String("listen-addr", "0.0.0.0:50051", "Address to listen on for gRPC connections")
	flagSet.Int("world-size", 0, "Number of processes in the job (required)")
	flagSet.Int("max-conns", 256, "Maximum concurrent client connections")
	flagSet.String("database-uri", "", "URI of the rqlite registry database (empty disables it)")
	flagSet.String("log-level", "info", "Log level (debug, info, warn, error)")
}

// LoadRendezvousdConfig loads the configuration for the rendezvous service
// from flags, environment variables and an optional config file
func LoadRendezvousdConfig(flagSet *pflag.FlagSet) (*RendezvousdConfig, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("listen_addr", "0.0.0.0:50051")
	v.SetDefault("world_size", 0)
	v.SetDefault("max_conns", 256)
	v.SetDefault("database_uri", "")
	v.SetDefault("log_level", "info")

	// Environment variables
	v.SetEnvPrefix("IBMESH_RENDEZVOUSD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind the hyphenated command line flags onto the underscore keys
	// used by config files and environment variables
	for key, name := range rendezvousdFlagKeys {
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
		v.SetConfigName("rendezvousd")
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

	config := &RendezvousdConfig{
		ListenAddr:  v.GetString("listen_addr"),
		WorldSize:   v.GetInt("world_size"),
		MaxConns:    v.GetInt("max_conns"),
		DatabaseURI: v.GetString("database_uri"),
		LogLevel:    v.GetString("log_level"),
	}

	if config.WorldSize <= 0 {
		return nil, fmt.Errorf("world_size must be positive, got %d", config.WorldSize)
	}
	if config.MaxConns <= 0 {
		return nil, fmt.Errorf("max_conns must be positive, got %d", config.MaxConns)
	}

	return config, nil
}

// CreateDefaultRendezvousdConfig creates a default configuration file for the rendezvous service
func CreateDefaultRendezvousdConfig(path string) error {
	configContent := `# IBMesh Rendezvous Service Configuration
listen_addr: "0.0.0.0:50051"
world_size: 2
max_conns: 256
database_uri: "" # e.g. http://localhost:4001, empty disables the registry
log_level: "info" # debug, info, warn, error
`

	return writeConfigFile(path, configContent)
}
