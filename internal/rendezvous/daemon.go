package rendezvous

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/netutil"
	"google.golang.org/grpc"

	"github.com/ibmesh/ibmesh/internal/config"
	"github.com/ibmesh/ibmesh/proto/meshcoord"
)

// Daemon hosts the rendezvous service for one job.
type Daemon struct {
	ctx      context.Context
	cancel   context.CancelFunc
	config   *config.RendezvousdConfig
	server   *grpc.Server
	registry *JobRegistry
	wg       sync.WaitGroup
}

// New creates a daemon from a loaded configuration.
func New(cfg *config.RendezvousdConfig) (*Daemon, error) {
	ctx, cancel := context.WithCancel(context.Background())

	var registry *JobRegistry
	if cfg.DatabaseURI != "" {
		var err error
		registry, err = NewJobRegistry(cfg.DatabaseURI)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to create job registry: %w", err)
		}
	}

	return &Daemon{
		ctx:      ctx,
		cancel:   cancel,
		config:   cfg,
		registry: registry,
	}, nil
}

// Start starts the gRPC server.
func (d *Daemon) Start() error {
	d.server = grpc.NewServer()
	meshcoord.RegisterRendezvousServer(d.server, NewService(d.config.WorldSize, d.registry))

	listener, err := net.Listen("tcp", d.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	// Register, Exchange and Barrier all park server-side, so each
	// client holds a connection for the whole bootstrap. Cap the count
	// so a misconfigured launcher cannot exhaust the host.
	listener = netutil.LimitListener(listener, d.config.MaxConns)

	log.Info().
		Str("addr", d.config.ListenAddr).
		Int("worldSize", d.config.WorldSize).
		Int("maxConns", d.config.MaxConns).
		Msg("Starting rendezvous gRPC server")

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.server.Serve(listener); err != nil {
			log.Error().Err(err).Msg("gRPC server error")
		}
	}()

	return nil
}

// Stop stops the daemon.
func (d *Daemon) Stop() {
	if d.server != nil {
		d.server.GracefulStop()
	}

	d.cancel()
	d.wg.Wait()

	if d.registry != nil {
		if err := d.registry.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close job registry")
		}
	}

	log.Info().Msg("Rendezvous daemon stopped")
}

// Run runs the daemon until signaled to stop.
func (d *Daemon) Run() error {
	if err := d.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")

	d.Stop()
	return nil
}
