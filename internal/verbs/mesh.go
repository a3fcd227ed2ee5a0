package verbs

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ibmesh/ibmesh/internal/coord"
	"github.com/ibmesh/ibmesh/internal/topology"
)

// endpoint pairs a ready queue pair with the addressing record learned
// from its remote rank.
type endpoint struct {
	rank   int
	qp     *queuePair
	remote coord.PeerRecord
}

// Mesh is the fully-connected set of reliable queue pairs, one per
// remote rank, all feeding the transport's shared completion queue.
type Mesh struct {
	transport *Transport
	topo      *topology.Topology
	endpoints []*endpoint // indexed by rank, nil at the self slot
	byQPN     map[uint32]*endpoint
	finalized bool
}

// Connect builds the mesh: it creates one queue pair per remote rank,
// exchanges addressing records through the coordinator, drives every
// pair through Init, Ready-to-Receive and Ready-to-Send, and finally
// joins a barrier so no process sends before all peers can receive.
// Any failure aborts the whole bootstrap.
func Connect(ctx context.Context, t *Transport, topo *topology.Topology, c coord.Coordinator) (*Mesh, error) {
	if t.finalized {
		return nil, ErrFinalized
	}

	m := &Mesh{
		transport: t,
		topo:      topo,
		endpoints: make([]*endpoint, topo.WorldSize),
		byQPN:     make(map[uint32]*endpoint, topo.WorldSize-1),
	}

	for rank := 0; rank < topo.WorldSize; rank++ {
		if rank == topo.Rank {
			continue
		}
		qp, err := newQueuePair(t.pd, t.cq, rank)
		if err != nil {
			m.destroyQueuePairs()
			return nil, fmt.Errorf("creating queue pair for rank %d: %w", rank, err)
		}
		if err := qp.toInit(t.cfg.Port); err != nil {
			qp.destroy()
			m.destroyQueuePairs()
			return nil, err
		}
		ep := &endpoint{rank: rank, qp: qp}
		m.endpoints[rank] = ep
		m.byQPN[qp.handle.num()] = ep
	}

	for rank := 0; rank < topo.WorldSize; rank++ {
		ep := m.endpoints[rank]
		if ep == nil {
			continue
		}
		local := coord.PeerRecord{
			Rank: topo.Rank,
			GID:  t.port.GID,
			LID:  t.port.LID,
			QPN:  ep.qp.handle.num(),
			PSN:  ep.qp.localPSN,
		}
		remote, err := c.Exchange(ctx, rank, local)
		if err != nil {
			m.destroyQueuePairs()
			return nil, fmt.Errorf("exchanging endpoint record with rank %d: %w", rank, err)
		}
		ep.remote = remote

		attrs := remoteAttrs{
			QPN:      remote.QPN,
			PSN:      remote.PSN,
			LID:      remote.LID,
			GID:      remote.GID,
			MTU:      t.port.ActiveMTU,
			Port:     t.cfg.Port,
			GIDIndex: t.cfg.GIDIndex,
			// A zero local LID means the link has no subnet manager
			// addressing (RoCE); route by GID instead.
			Global: t.port.LID == 0,
		}
		if err := ep.qp.toRTR(attrs); err != nil {
			m.destroyQueuePairs()
			return nil, err
		}
		if err := ep.qp.toRTS(); err != nil {
			m.destroyQueuePairs()
			return nil, err
		}
		log.Debug().
			Int("rank", topo.Rank).
			Int("peer", rank).
			Uint32("qpn", local.QPN).
			Uint32("dest_qpn", remote.QPN).
			Msg("Queue pair ready")
	}

	if err := c.Barrier(ctx); err != nil {
		m.destroyQueuePairs()
		return nil, fmt.Errorf("waiting for mesh barrier: %w", err)
	}

	log.Info().
		Int("rank", topo.Rank).
		Int("world_size", topo.WorldSize).
		Int("endpoints", topo.WorldSize-1).
		Msg("Queue pair mesh connected")
	return m, nil
}

// Topology reports the rank layout the mesh was built for.
func (m *Mesh) Topology() *topology.Topology { return m.topo }

// Transport exposes the underlying transport, e.g. for registering
// buffers against its protection domain.
func (m *Mesh) Transport() *Transport { return m.transport }

// Peers lists the remote ranks the mesh holds an endpoint for.
func (m *Mesh) Peers() []int {
	peers := make([]int, 0, len(m.endpoints))
	for _, ep := range m.endpoints {
		if ep != nil {
			peers = append(peers, ep.rank)
		}
	}
	return peers
}

// Remote returns the addressing record learned from the given rank.
func (m *Mesh) Remote(rank int) (coord.PeerRecord, error) {
	ep, err := m.endpoint(rank)
	if err != nil {
		return coord.PeerRecord{}, err
	}
	return ep.remote, nil
}

func (m *Mesh) endpoint(rank int) (*endpoint, error) {
	if m.finalized {
		return nil, ErrFinalized
	}
	if rank < 0 || rank >= len(m.endpoints) || m.endpoints[rank] == nil {
		return nil, fmt.Errorf("%w: rank %d", ErrUnknownRank, rank)
	}
	return m.endpoints[rank], nil
}

// PostSend enqueues one send-side work request on the queue pair for
// the given remote rank. It never blocks; a full send queue is reported
// as ErrQueueFull and the caller must poll completions first.
func (m *Mesh) PostSend(rank int, req *SendRequest) error {
	ep, err := m.endpoint(rank)
	if err != nil {
		return err
	}
	return ep.qp.postSend(req)
}

// PostRecv enqueues one receive buffer on the queue pair for the given
// remote rank.
func (m *Mesh) PostRecv(rank int, req *RecvRequest) error {
	ep, err := m.endpoint(rank)
	if err != nil {
		return err
	}
	return ep.qp.postRecv(req)
}

// Poll drains at most max entries from the shared completion queue and
// returns them with the remote rank resolved from the queue pair
// number. It never blocks; an empty queue yields an empty slice. A
// failed entry leaves its queue pair in the error state, and the caller
// can inspect it through Completion.Err.
func (m *Mesh) Poll(max int) ([]Completion, error) {
	if m.finalized {
		return nil, ErrFinalized
	}
	if max <= 0 {
		return nil, nil
	}

	entries := make([]Completion, max)
	n, err := m.transport.cq.poll(entries)
	if err != nil {
		return nil, fmt.Errorf("polling completion queue: %w", err)
	}
	entries = entries[:n]

	for i := range entries {
		ep, ok := m.byQPN[entries[i].QPN]
		if !ok {
			entries[i].Rank = -1
			continue
		}
		entries[i].Rank = ep.rank
		ep.qp.completed(entries[i].Kind)
		if entries[i].Status != StatusSuccess {
			ep.qp.state = stateError
			log.Warn().
				Int("peer", ep.rank).
				Str("status", entries[i].Status.String()).
				Uint64("wr_id", entries[i].WRID).
				Msg("Work completion failed")
		}
	}
	return entries, nil
}

// Err converts a failed completion into an OperationError; successful
// entries yield nil.
func (c Completion) Err() error {
	if c.Status == StatusSuccess {
		return nil
	}
	return &OperationError{Rank: c.Rank, Status: c.Status}
}

func (m *Mesh) destroyQueuePairs() {
	for i := len(m.endpoints) - 1; i >= 0; i-- {
		if m.endpoints[i] == nil {
			continue
		}
		if err := m.endpoints[i].qp.destroy(); err != nil {
			log.Error().Err(err).Int("peer", i).Msg("Failed to destroy queue pair")
		}
		m.endpoints[i] = nil
	}
	m.byQPN = nil
}

// Finalize destroys every queue pair and then releases the transport's
// resources, mirroring the creation order in reverse. Idempotent.
func (m *Mesh) Finalize() error {
	if m.finalized {
		return nil
	}
	m.finalized = true
	m.destroyQueuePairs()
	return m.transport.Finalize()
}
