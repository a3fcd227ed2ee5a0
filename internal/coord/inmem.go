package coord

import (
	"context"
	"fmt"
	"sync"
)

// Hub is an in-process coordination service for tests and single-node
// runs: every "process" is a goroutine holding one member Coordinator.
// Semantics match the rendezvous service: pairwise FIFO mailboxes and a
// generation-counted full-group barrier.
type Hub struct {
	world int

	mu       sync.Mutex
	boxes    map[pairKey][]PeerRecord
	barriers map[uint64]*barrierGen
	signal   chan struct{} // closed and replaced on every state change
}

type pairKey struct {
	from, to int
}

type barrierGen struct {
	arrived map[int]bool
	release chan struct{}
}

// NewHub creates a hub for a job of the given size.
func NewHub(world int) *Hub {
	return &Hub{
		world:    world,
		boxes:    make(map[pairKey][]PeerRecord),
		barriers: make(map[uint64]*barrierGen),
		signal:   make(chan struct{}),
	}
}

// Member returns the Coordinator for one rank.
func (h *Hub) Member(rank int) Coordinator {
	return &hubMember{hub: h, rank: rank}
}

// broadcast wakes every waiter. Callers must hold h.mu.
func (h *Hub) broadcast() {
	close(h.signal)
	h.signal = make(chan struct{})
}

type hubMember struct {
	hub      *Hub
	rank     int
	sequence uint64
}

func (m *hubMember) Exchange(ctx context.Context, peer int, local PeerRecord) (PeerRecord, error) {
	h := m.hub
	if peer < 0 || peer >= h.world || peer == m.rank {
		return PeerRecord{}, fmt.Errorf("exchange peer %d invalid for rank %d of %d", peer, m.rank, h.world)
	}

	h.mu.Lock()
	h.boxes[pairKey{m.rank, peer}] = append(h.boxes[pairKey{m.rank, peer}], local)
	h.broadcast()

	inbox := pairKey{peer, m.rank}
	for {
		if queue := h.boxes[inbox]; len(queue) > 0 {
			record := queue[0]
			h.boxes[inbox] = queue[1:]
			h.mu.Unlock()
			return record, nil
		}
		wait := h.signal
		h.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
			return PeerRecord{}, ctx.Err()
		}
		h.mu.Lock()
	}
}

func (m *hubMember) Barrier(ctx context.Context) error {
	h := m.hub
	m.sequence++

	h.mu.Lock()
	gen, ok := h.barriers[m.sequence]
	if !ok {
		gen = &barrierGen{arrived: make(map[int]bool), release: make(chan struct{})}
		h.barriers[m.sequence] = gen
	}
	gen.arrived[m.rank] = true
	if len(gen.arrived) == h.world {
		close(gen.release)
		delete(h.barriers, m.sequence)
	}
	h.mu.Unlock()

	select {
	case <-gen.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *hubMember) Close() error { return nil }
