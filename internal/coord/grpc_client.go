package coord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/ibmesh/ibmesh/proto/meshcoord"
)

// RendezvousClient is the gRPC-backed Coordinator. One instance per
// process, pointed at the job's rendezvous service.
type RendezvousClient struct {
	addr   string
	conn   *grpc.ClientConn
	client meshcoord.RendezvousClient
	mutex  sync.Mutex

	rank     int
	sequence uint64 // barrier generation, client-side counter
}

// NewRendezvousClient creates a client for the rendezvous service.
func NewRendezvousClient(addr string) *RendezvousClient {
	return &RendezvousClient{addr: addr, rank: -1}
}

// Connect dials the rendezvous service and waits for the connection to
// become ready.
func (c *RendezvousClient) Connect(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.conn != nil {
		return nil
	}

	conn, err := grpc.NewClient(
		"dns:///"+c.addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return fmt.Errorf("failed to create client for rendezvous at %s: %w", c.addr, err)
	}

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conn.Connect()
	for {
		state := conn.GetState()
		if state == connectivity.Ready {
			break
		}
		if !conn.WaitForStateChange(dialCtx, state) {
			conn.Close()
			return fmt.Errorf("connection to rendezvous at %s failed to become ready within timeout", c.addr)
		}
	}

	c.conn = conn
	c.client = meshcoord.NewRendezvousClient(conn)
	log.Info().Str("addr", c.addr).Msg("Connected to rendezvous service")

	return nil
}

// Register announces this process and blocks until the whole job has
// registered. Returns this process's launch index and the host of every
// process in launch order.
func (c *RendezvousClient) Register(ctx context.Context, hostname string, pid int) (int, []string, error) {
	if c.client == nil {
		return 0, nil, fmt.Errorf("rendezvous client is not connected")
	}

	resp, err := c.client.Register(ctx, &meshcoord.RegisterRequest{
		Hostname: hostname,
		Pid:      int32(pid),
	})
	if err != nil {
		return 0, nil, fmt.Errorf("rendezvous registration failed: %w", err)
	}

	log.Info().
		Str("hostname", hostname).
		Uint32("launchIndex", resp.LaunchIndex).
		Int("worldSize", len(resp.Hosts)).
		Msg("Registered with rendezvous service")

	return int(resp.LaunchIndex), resp.Hosts, nil
}

// SetRank fixes this process's global rank after topology computation.
// Must be called before Exchange or Barrier.
func (c *RendezvousClient) SetRank(rank int) {
	c.rank = rank
}

// Exchange deposits this process's record for peer and blocks until the
// peer's record for this process arrives.
func (c *RendezvousClient) Exchange(ctx context.Context, peer int, local PeerRecord) (PeerRecord, error) {
	if c.client == nil {
		return PeerRecord{}, fmt.Errorf("rendezvous client is not connected")
	}
	if c.rank < 0 {
		return PeerRecord{}, fmt.Errorf("rank not set before exchange")
	}

	resp, err := c.client.Exchange(ctx, &meshcoord.ExchangeRequest{
		FromRank: uint32(c.rank),
		ToRank:   uint32(peer),
		Record:   recordToProto(local),
	})
	if err != nil {
		return PeerRecord{}, fmt.Errorf("exchange with rank %d failed: %w", peer, err)
	}
	if resp.Record == nil {
		return PeerRecord{}, fmt.Errorf("exchange with rank %d returned no record", peer)
	}

	return recordFromProto(resp.Record), nil
}

// Barrier blocks until every process in the job has entered the barrier
// of the same generation.
func (c *RendezvousClient) Barrier(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("rendezvous client is not connected")
	}
	if c.rank < 0 {
		return fmt.Errorf("rank not set before barrier")
	}

	c.sequence++
	_, err := c.client.Barrier(ctx, &meshcoord.BarrierRequest{
		Rank:     uint32(c.rank),
		Sequence: c.sequence,
	})
	if err != nil {
		return fmt.Errorf("barrier %d failed: %w", c.sequence, err)
	}
	return nil
}

// Close closes the connection to the rendezvous service.
func (c *RendezvousClient) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.client = nil
	return err
}

func recordToProto(r PeerRecord) *meshcoord.PeerRecord {
	return &meshcoord.PeerRecord{
		Rank: uint32(r.Rank),
		Gid:  append([]byte(nil), r.GID[:]...),
		Lid:  uint32(r.LID),
		Qpn:  r.QPN,
		Psn:  r.PSN,
	}
}

func recordFromProto(p *meshcoord.PeerRecord) PeerRecord {
	r := PeerRecord{
		Rank: int(p.Rank),
		LID:  uint16(p.Lid),
		QPN:  p.Qpn,
		PSN:  p.Psn,
	}
	copy(r.GID[:], p.Gid)
	return r
}
