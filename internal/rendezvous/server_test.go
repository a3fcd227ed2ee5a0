package rendezvous

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/ibmesh/ibmesh/proto/meshcoord"
)

func startTestService(t *testing.T, worldSize int) meshcoord.RendezvousClient {
	t.Helper()

	listener := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer()
	meshcoord.RegisterRendezvousServer(server, NewService(worldSize, nil))
	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return meshcoord.NewRendezvousClient(conn)
}

func TestRegisterBlocksUntilJobComplete(t *testing.T) {
	client := startTestService(t, 2)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first := make(chan *meshcoord.RegisterResponse, 1)
	go func() {
		resp, err := client.Register(ctx, &meshcoord.RegisterRequest{Hostname: "node0", Pid: 100})
		assert.NoError(t, err)
		first <- resp
	}()

	select {
	case <-first:
		t.Fatal("registration returned before the job was complete")
	case <-time.After(50 * time.Millisecond):
	}

	resp1, err := client.Register(ctx, &meshcoord.RegisterRequest{Hostname: "node1", Pid: 200})
	require.NoError(t, err)

	resp0 := <-first
	assert.Equal(t, uint32(0), resp0.LaunchIndex)
	assert.Equal(t, uint32(1), resp1.LaunchIndex)
	assert.Equal(t, []string{"node0", "node1"}, resp0.Hosts)
	assert.Equal(t, []string{"node0", "node1"}, resp1.Hosts)
}

func TestRegisterRejectsExtraProcess(t *testing.T) {
	client := startTestService(t, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Register(ctx, &meshcoord.RegisterRequest{Hostname: "node0", Pid: 1})
	require.NoError(t, err)

	_, err = client.Register(ctx, &meshcoord.RegisterRequest{Hostname: "node0", Pid: 2})
	assert.Error(t, err)
}

func TestExchangeDeliversPeerRecord(t *testing.T) {
	client := startTestService(t, 2)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rec0 := &meshcoord.PeerRecord{Rank: 0, Lid: 11, Qpn: 101, Psn: 7}
	rec1 := &meshcoord.PeerRecord{Rank: 1, Lid: 22, Qpn: 202, Psn: 9}

	var wg sync.WaitGroup
	wg.Add(1)
	var got0 *meshcoord.PeerRecord
	go func() {
		defer wg.Done()
		resp, err := client.Exchange(ctx, &meshcoord.ExchangeRequest{FromRank: 0, ToRank: 1, Record: rec0})
		assert.NoError(t, err)
		got0 = resp.Record
	}()

	resp, err := client.Exchange(ctx, &meshcoord.ExchangeRequest{FromRank: 1, ToRank: 0, Record: rec1})
	require.NoError(t, err)
	wg.Wait()

	assert.Equal(t, rec0.Qpn, resp.Record.Qpn)
	assert.Equal(t, rec0.Lid, resp.Record.Lid)
	assert.Equal(t, rec1.Qpn, got0.Qpn)
	assert.Equal(t, rec1.Psn, got0.Psn)
}

func TestExchangeValidatesRanks(t *testing.T) {
	client := startTestService(t, 2)
	ctx := context.Background()

	_, err := client.Exchange(ctx, &meshcoord.ExchangeRequest{FromRank: 0, ToRank: 0, Record: &meshcoord.PeerRecord{}})
	assert.Error(t, err)

	_, err = client.Exchange(ctx, &meshcoord.ExchangeRequest{FromRank: 0, ToRank: 9, Record: &meshcoord.PeerRecord{}})
	assert.Error(t, err)

	_, err = client.Exchange(ctx, &meshcoord.ExchangeRequest{FromRank: 0, ToRank: 1})
	assert.Error(t, err)
}

func TestBarrierReleasesWholeGroup(t *testing.T) {
	const world = 3
	client := startTestService(t, world)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	released := make(chan uint32, world)
	var wg sync.WaitGroup
	for rank := uint32(0); rank < world-1; rank++ {
		wg.Add(1)
		go func(rank uint32) {
			defer wg.Done()
			_, err := client.Barrier(ctx, &meshcoord.BarrierRequest{Rank: rank, Sequence: 1})
			assert.NoError(t, err)
			released <- rank
		}(rank)
	}

	select {
	case r := <-released:
		t.Fatalf("rank %d passed the barrier early", r)
	case <-time.After(50 * time.Millisecond):
	}

	_, err := client.Barrier(ctx, &meshcoord.BarrierRequest{Rank: world - 1, Sequence: 1})
	require.NoError(t, err)
	wg.Wait()
	assert.Len(t, released, world-1)
}

func TestBarrierGenerationsAreIndependent(t *testing.T) {
	client := startTestService(t, 2)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	done := make(chan error, 2)
	go func() {
		_, err := client.Barrier(ctx, &meshcoord.BarrierRequest{Rank: 0, Sequence: 1})
		done <- err
	}()
	go func() {
		_, err := client.Barrier(ctx, &meshcoord.BarrierRequest{Rank: 1, Sequence: 2})
		done <- err
	}()

	// Different sequence numbers must not release each other.
	assert.Error(t, <-done)
	assert.Error(t, <-done)
}
