// Package worker drives one process of a mesh smoke test job: register
// with the rendezvous service, bootstrap the queue pair mesh, run a
// paced ring of two-sided sends, and tear everything down.
package worker

import (
	"context"
	"fmt"
	"os"
	"time"
	"unsafe"

	"github.com/rs/zerolog/log"
	"go.uber.org/ratelimit"

	"github.com/ibmesh/ibmesh/internal/config"
	"github.com/ibmesh/ibmesh/internal/coord"
	"github.com/ibmesh/ibmesh/internal/telemetry"
	"github.com/ibmesh/ibmesh/internal/topology"
	"github.com/ibmesh/ibmesh/internal/verbs"
)

// Options tune the traffic phase of the smoke test.
type Options struct {
	Iterations  int
	MessageSize int
	Rate        int // messages per second, 0 means unpaced
}

// Worker is one process of the smoke test job.
type Worker struct {
	cfg     *config.MeshConfig
	opts    Options
	metrics *telemetry.Metrics
}

// New creates a worker from a loaded configuration.
func New(cfg *config.MeshConfig, opts Options) *Worker {
	if opts.Iterations <= 0 {
		opts.Iterations = 100
	}
	if opts.MessageSize <= 0 {
		opts.MessageSize = 1024
	}
	return &Worker{cfg: cfg, opts: opts}
}

// Run executes the whole job phase of this process.
func (w *Worker) Run(ctx context.Context) error {
	client := coord.NewRendezvousClient(w.cfg.RendezvousAddr)
	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer client.Close()

	launchIndex, hosts, err := client.Register(ctx, w.cfg.Hostname, os.Getpid())
	if err != nil {
		return err
	}

	topo, err := topology.Compute(hosts, launchIndex)
	if err != nil {
		return fmt.Errorf("computing topology: %w", err)
	}
	client.SetRank(topo.Rank)
	log.Info().
		Int("rank", topo.Rank).
		Int("worldSize", topo.WorldSize).
		Int("node", topo.Node).
		Int("localRank", topo.LocalRank).
		Msg("Topology computed")

	if w.cfg.OtelCollectorAddr != "" {
		instanceID := fmt.Sprintf("%s-rank%d", w.cfg.Hostname, topo.Rank)
		w.metrics, err = telemetry.NewMetrics(ctx, instanceID, w.cfg.OtelCollectorAddr)
		if err != nil {
			return fmt.Errorf("initializing metrics: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := w.metrics.Shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("Failed to shut down metrics provider")
			}
		}()
	}

	transport, err := verbs.Open(verbs.Config{
		DeviceName: w.cfg.DeviceName,
		Port:       w.cfg.Port,
		GIDIndex:   w.cfg.GIDIndex,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	mesh, err := verbs.Connect(ctx, transport, topo, client)
	if err != nil {
		transport.Finalize()
		return err
	}
	defer mesh.Finalize()
	if w.metrics != nil {
		w.metrics.RecordBootstrap(ctx, time.Since(start))
	}

	if topo.WorldSize > 1 {
		if err := w.runRing(ctx, mesh, topo, client); err != nil {
			return err
		}
	}

	// Node-local checkpoint before the global teardown barrier, so
	// per-host logs line up.
	if topo.LocalSize > 1 {
		if err := coord.SubgroupBarrier(ctx, client, topo.Rank, topo.LocalRanks()); err != nil {
			return fmt.Errorf("node-local barrier: %w", err)
		}
	}
	if err := client.Barrier(ctx); err != nil {
		return fmt.Errorf("teardown barrier: %w", err)
	}

	log.Info().Int("rank", topo.Rank).Msg("Smoke test finished")
	return nil
}

// runRing passes messages around the rank ring: each iteration this
// process sends to the next rank and receives from the previous one.
// The receive queue holds a single buffer and queue pairs are
// configured without receiver-not-ready retries, so a barrier separates
// posting the receives from posting the sends each iteration.
func (w *Worker) runRing(ctx context.Context, mesh *verbs.Mesh, topo *topology.Topology, c coord.Coordinator) error {
	next := (topo.Rank + 1) % topo.WorldSize
	prev := (topo.Rank - 1 + topo.WorldSize) % topo.WorldSize

	sendBuf := make([]byte, w.opts.MessageSize)
	recvBuf := make([]byte, w.opts.MessageSize)
	sendRegion, err := mesh.Transport().RegisterBytes(sendBuf)
	if err != nil {
		return err
	}
	recvRegion, err := mesh.Transport().RegisterBytes(recvBuf)
	if err != nil {
		return err
	}

	var limiter ratelimit.Limiter
	if w.opts.Rate > 0 {
		limiter = ratelimit.New(w.opts.Rate)
	} else {
		limiter = ratelimit.NewUnlimited()
	}

	log.Info().
		Int("iterations", w.opts.Iterations).
		Int("messageSize", w.opts.MessageSize).
		Int("next", next).
		Int("prev", prev).
		Msg("Starting ring traffic")

	for i := 0; i < w.opts.Iterations; i++ {
		limiter.Take()

		err := mesh.PostRecv(prev, &verbs.RecvRequest{
			WRID:      uint64(i),
			LocalAddr: unsafe.Pointer(&recvBuf[0]),
			Length:    uint32(len(recvBuf)),
			Region:    recvRegion,
		})
		if err != nil {
			return fmt.Errorf("iteration %d: posting receive: %w", i, err)
		}

		// Every rank has its receive in place before anyone sends.
		if err := c.Barrier(ctx); err != nil {
			return fmt.Errorf("iteration %d: barrier: %w", i, err)
		}

		err = mesh.PostSend(next, &verbs.SendRequest{
			WRID:      uint64(i),
			Op:        verbs.OpSend,
			LocalAddr: unsafe.Pointer(&sendBuf[0]),
			Length:    uint32(len(sendBuf)),
			Region:    sendRegion,
		})
		if err != nil {
			return fmt.Errorf("iteration %d: posting send: %w", i, err)
		}
		if w.metrics != nil {
			w.metrics.RecordPost(ctx)
		}

		if err := w.awaitIteration(ctx, mesh, i); err != nil {
			return err
		}
	}
	return nil
}

// awaitIteration polls until the iteration's send and receive both
// completed.
func (w *Worker) awaitIteration(ctx context.Context, mesh *verbs.Mesh, iteration int) error {
	var sendDone, recvDone bool
	for !sendDone || !recvDone {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("iteration %d interrupted: %w", iteration, err)
		}

		entries, err := mesh.Poll(verbs.CompletionQueueDepth)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			time.Sleep(10 * time.Microsecond)
			continue
		}
		if w.metrics != nil {
			w.metrics.RecordCompletions(ctx, len(entries))
		}

		for _, entry := range entries {
			if err := entry.Err(); err != nil {
				if w.metrics != nil {
					w.metrics.RecordFailure(ctx)
				}
				return err
			}
			switch entry.Kind {
			case verbs.CompletionSend:
				sendDone = true
			case verbs.CompletionRecv:
				recvDone = true
			}
		}
	}
	return nil
}
