package verbs

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Config selects the adapter and sizes the shared completion queue.
// The zero value selects DefaultDeviceName, DefaultPort, GID index 0
// and CompletionQueueDepth.
type Config struct {
	DeviceName string
	Port       uint8
	GIDIndex   uint8
	CQDepth    int
}

func (c Config) withDefaults() Config {
	if c.DeviceName == "" {
		c.DeviceName = DefaultDeviceName
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.CQDepth == 0 {
		c.CQDepth = CompletionQueueDepth
	}
	return c
}

// Transport owns the per-process adapter resources: the open device,
// one protection domain and one completion queue shared by every queue
// pair of the mesh. Create it with Open before Connect, release it with
// Finalize after the mesh is torn down.
type Transport struct {
	cfg      Config
	dev      deviceHandle
	pd       pdHandle
	cq       cqHandle
	devAttrs deviceAttrs
	port     portAttrs

	regions   []*MemoryRegion
	finalized bool
}

// Open selects the adapter named in cfg, verifies the port is active
// and allocates the protection domain and completion queue.
func Open(cfg Config) (*Transport, error) {
	return openWith(defaultProvider(), cfg)
}

func openWith(p provider, cfg Config) (*Transport, error) {
	cfg = cfg.withDefaults()

	dev, err := selectDevice(p, cfg.DeviceName)
	if err != nil {
		return nil, err
	}

	devAttrs, err := dev.queryDevice()
	if err != nil {
		dev.close()
		return nil, fmt.Errorf("querying device %s: %w", cfg.DeviceName, err)
	}
	if cfg.Port > devAttrs.PortCount {
		dev.close()
		return nil, fmt.Errorf("%w: device %s has %d ports, requested %d",
			ErrPortUnavailable, cfg.DeviceName, devAttrs.PortCount, cfg.Port)
	}

	port, err := dev.queryPort(cfg.Port)
	if err != nil {
		dev.close()
		return nil, fmt.Errorf("querying port %d: %w", cfg.Port, err)
	}
	if !port.Active {
		dev.close()
		return nil, fmt.Errorf("%w: port %d of %s is not active",
			ErrPortUnavailable, cfg.Port, cfg.DeviceName)
	}
	port.GID, err = dev.queryGID(cfg.Port, cfg.GIDIndex)
	if err != nil {
		dev.close()
		return nil, fmt.Errorf("querying GID index %d: %w", cfg.GIDIndex, err)
	}

	pd, err := dev.allocPD()
	if err != nil {
		dev.close()
		return nil, fmt.Errorf("allocating protection domain: %w", err)
	}
	cq, err := dev.createCQ(cfg.CQDepth)
	if err != nil {
		pd.dealloc()
		dev.close()
		return nil, fmt.Errorf("creating completion queue: %w", err)
	}

	log.Info().
		Str("device", cfg.DeviceName).
		Uint8("port", cfg.Port).
		Uint16("lid", port.LID).
		Int("cq_depth", cfg.CQDepth).
		Msg("RDMA transport ready")

	return &Transport{
		cfg:      cfg,
		dev:      dev,
		pd:       pd,
		cq:       cq,
		devAttrs: devAttrs,
		port:     port,
	}, nil
}

// LID is the local port identifier exchanged with peers.
func (t *Transport) LID() uint16 { return t.port.LID }

// GID is the global identifier of the configured GID index.
func (t *Transport) GID() [16]byte { return t.port.GID }

// Port is the physical port number queue pairs bind to.
func (t *Transport) Port() uint8 { return t.cfg.Port }

// Finalize releases everything the transport owns in reverse creation
// order: memory regions, completion queue, protection domain, device.
// It is idempotent; resource release errors are logged and the first
// one is returned.
func (t *Transport) Finalize() error {
	if t.finalized {
		return nil
	}
	t.finalized = true

	var firstErr error
	record := func(err error, what string) {
		if err == nil {
			return
		}
		log.Error().Err(err).Str("resource", what).Msg("Failed to release transport resource")
		if firstErr == nil {
			firstErr = fmt.Errorf("releasing %s: %w", what, err)
		}
	}

	for i := len(t.regions) - 1; i >= 0; i-- {
		record(t.regions[i].Deregister(), "memory region")
	}
	t.regions = nil
	record(t.cq.destroy(), "completion queue")
	record(t.pd.dealloc(), "protection domain")
	record(t.dev.close(), "device")
	return firstErr
}
