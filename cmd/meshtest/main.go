package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/ibmesh/ibmesh/internal/config"
	"github.com/ibmesh/ibmesh/internal/worker"
)

func main() {
	// Set up command line flags
	flagSet := pflag.NewFlagSet("meshtest", pflag.ExitOnError)
	config.SetupMeshFlags(flagSet)
	flagSet.Int("iterations", 100, "Number of ring iterations to run")
	flagSet.Int("message-size", 1024, "Message size in bytes")
	flagSet.Int("rate", 0, "Messages per second (0 disables pacing)")

	// Parse flags
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	// Handle version flag
	version, _ := flagSet.GetBool("version")
	if version {
		fmt.Println("IBMesh Meshtest v0.1.0")
		os.Exit(0)
	}

	// Handle create-config flag
	createConfig, _ := flagSet.GetBool("create-config")
	if createConfig {
		configOutput, _ := flagSet.GetString("config-output")
		if err := config.CreateDefaultMeshConfig(configOutput); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating default config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created default configuration at %s\n", configOutput)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.LoadMeshConfig(flagSet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	initLogging(cfg.LogLevel)

	iterations, _ := flagSet.GetInt("iterations")
	messageSize, _ := flagSet.GetInt("message-size")
	rate, _ := flagSet.GetInt("rate")

	// Cancel the run on SIGINT/SIGTERM so teardown still happens.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := worker.New(cfg, worker.Options{
		Iterations:  iterations,
		MessageSize: messageSize,
		Rate:        rate,
	})
	if err := w.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Meshtest failed")
	}
}

// initLogging initializes the logging configuration
func initLogging(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
