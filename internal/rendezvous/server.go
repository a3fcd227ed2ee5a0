// Package rendezvous implements the coordination service consumed by
// queue-pair bootstrap: blocking registration of all job processes,
// pairwise exchange of addressing records, and a full-group barrier.
// All state is per-job and in-memory; an optional rqlite-backed job
// registry mirrors registrations for inspection.
package rendezvous

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ibmesh/ibmesh/proto/meshcoord"
)

// Service implements the Rendezvous gRPC service for a single job.
type Service struct {
	meshcoord.UnimplementedRendezvousServer

	world    int
	registry *JobRegistry // optional, may be nil

	mu       sync.Mutex
	hosts    []string
	pids     []int32
	regDone  chan struct{}
	boxes    map[pairKey][]*meshcoord.PeerRecord
	signal   chan struct{} // closed and replaced on every deposit
	barriers map[uint64]*barrierGen
}

type pairKey struct {
	from, to uint32
}

type barrierGen struct {
	arrived map[uint32]bool
	release chan struct{}
}

// NewService creates a rendezvous service for a job of worldSize
// processes. registry may be nil.
func NewService(worldSize int, registry *JobRegistry) *Service {
	return &Service{
		world:    worldSize,
		registry: registry,
		regDone:  make(chan struct{}),
		boxes:    make(map[pairKey][]*meshcoord.PeerRecord),
		signal:   make(chan struct{}),
		barriers: make(map[uint64]*barrierGen),
	}
}

// Register records one process and blocks until the whole job has
// registered, then returns the caller's launch index and the full host
// list in launch order.
func (s *Service) Register(ctx context.Context, req *meshcoord.RegisterRequest) (*meshcoord.RegisterResponse, error) {
	if req.Hostname == "" {
		return nil, status.Error(codes.InvalidArgument, "hostname is required")
	}

	s.mu.Lock()
	if len(s.hosts) >= s.world {
		s.mu.Unlock()
		return nil, status.Errorf(codes.ResourceExhausted, "job already has %d registered processes", s.world)
	}
	launchIndex := uint32(len(s.hosts))
	s.hosts = append(s.hosts, req.Hostname)
	s.pids = append(s.pids, req.Pid)
	full := len(s.hosts) == s.world
	if full {
		close(s.regDone)
	}
	s.mu.Unlock()

	log.Info().
		Str("hostname", req.Hostname).
		Int32("pid", req.Pid).
		Uint32("launchIndex", launchIndex).
		Int("registered", int(launchIndex)+1).
		Int("worldSize", s.world).
		Msg("Process registered")

	if s.registry != nil {
		if err := s.registry.RecordRegistration(ctx, req.Hostname, req.Pid, launchIndex); err != nil {
			// The registry is observability only; a failed mirror must
			// not fail the bootstrap.
			log.Warn().Err(err).Str("hostname", req.Hostname).Msg("Failed to mirror registration to job registry")
		}
	}

	select {
	case <-s.regDone:
	case <-ctx.Done():
		return nil, status.FromContextError(ctx.Err()).Err()
	}

	s.mu.Lock()
	hosts := append([]string(nil), s.hosts...)
	s.mu.Unlock()

	return &meshcoord.RegisterResponse{
		LaunchIndex: launchIndex,
		Hosts:       hosts,
	}, nil
}

// Exchange deposits the caller's record for the target rank and blocks
// until the target's matching record for the caller arrives. Deposits
// between the same ordered pair are matched first-in first-out.
func (s *Service) Exchange(ctx context.Context, req *meshcoord.ExchangeRequest) (*meshcoord.ExchangeResponse, error) {
	if req.FromRank >= uint32(s.world) || req.ToRank >= uint32(s.world) {
		return nil, status.Errorf(codes.InvalidArgument, "rank out of range for world size %d", s.world)
	}
	if req.FromRank == req.ToRank {
		return nil, status.Error(codes.InvalidArgument, "cannot exchange with self")
	}
	if req.Record == nil {
		return nil, status.Error(codes.InvalidArgument, "record is required")
	}

	s.mu.Lock()
	s.boxes[pairKey{req.FromRank, req.ToRank}] = append(s.boxes[pairKey{req.FromRank, req.ToRank}], req.Record)
	close(s.signal)
	s.signal = make(chan struct{})

	inbox := pairKey{req.ToRank, req.FromRank}
	for {
		if queue := s.boxes[inbox]; len(queue) > 0 {
			record := queue[0]
			s.boxes[inbox] = queue[1:]
			s.mu.Unlock()
			return &meshcoord.ExchangeResponse{Record: record}, nil
		}
		wait := s.signal
		s.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
			return nil, status.FromContextError(ctx.Err()).Err()
		}
		s.mu.Lock()
	}
}

// Barrier blocks until every rank of the job has entered the barrier of
// the same sequence number.
func (s *Service) Barrier(ctx context.Context, req *meshcoord.BarrierRequest) (*meshcoord.BarrierResponse, error) {
	if req.Rank >= uint32(s.world) {
		return nil, status.Errorf(codes.InvalidArgument, "rank %d out of range for world size %d", req.Rank, s.world)
	}

	s.mu.Lock()
	gen, ok := s.barriers[req.Sequence]
	if !ok {
		gen = &barrierGen{arrived: make(map[uint32]bool), release: make(chan struct{})}
		s.barriers[req.Sequence] = gen
	}
	gen.arrived[req.Rank] = true
	if len(gen.arrived) == s.world {
		close(gen.release)
		delete(s.barriers, req.Sequence)
		log.Debug().Uint64("sequence", req.Sequence).Msg("Barrier released")
	}
	s.mu.Unlock()

	select {
	case <-gen.release:
		return &meshcoord.BarrierResponse{}, nil
	case <-ctx.Done():
		return nil, status.FromContextError(ctx.Err()).Err()
	}
}
