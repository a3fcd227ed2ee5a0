package coord

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubExchangeIsPairwise(t *testing.T) {
	hub := NewHub(3)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	records := make([]PeerRecord, 3)
	for r := range records {
		records[r] = PeerRecord{Rank: r, LID: uint16(100 + r), QPN: uint32(1000 + r), PSN: uint32(r)}
	}

	// Every ordered pair exchanges; each side must see exactly what the
	// other deposited.
	var wg sync.WaitGroup
	got := make([]map[int]PeerRecord, 3)
	for r := 0; r < 3; r++ {
		got[r] = make(map[int]PeerRecord)
	}
	var mu sync.Mutex

	for r := 0; r < 3; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			c := hub.Member(r)
			for peer := 0; peer < 3; peer++ {
				if peer == r {
					continue
				}
				remote, err := c.Exchange(ctx, peer, records[r])
				require.NoError(t, err)
				mu.Lock()
				got[r][peer] = remote
				mu.Unlock()
			}
		}(r)
	}
	wg.Wait()

	for r := 0; r < 3; r++ {
		for peer := 0; peer < 3; peer++ {
			if peer == r {
				continue
			}
			assert.Equal(t, records[peer], got[r][peer],
				"rank %d must hold the record rank %d sent", r, peer)
		}
	}
}

func TestHubExchangeRejectsSelf(t *testing.T) {
	hub := NewHub(2)
	_, err := hub.Member(0).Exchange(context.Background(), 0, PeerRecord{})
	assert.Error(t, err)

	_, err = hub.Member(0).Exchange(context.Background(), 5, PeerRecord{})
	assert.Error(t, err)
}

func TestHubBarrierBlocksUntilAllArrive(t *testing.T) {
	hub := NewHub(2)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	released := make(chan int, 2)
	go func() {
		require.NoError(t, hub.Member(0).Barrier(ctx))
		released <- 0
	}()

	// Rank 0 alone must not get through.
	select {
	case <-released:
		t.Fatal("barrier released before all ranks arrived")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, hub.Member(1).Barrier(ctx))
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("barrier did not release after all ranks arrived")
	}
}

func TestHubBarrierTimesOutWhenPeerMissing(t *testing.T) {
	hub := NewHub(2)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := hub.Member(0).Barrier(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubgroupBarrierIgnoresOtherNodes(t *testing.T) {
	// 2 nodes x 2 processes. Node 0 (ranks 0,1) barriers among itself
	// while node 1 never participates; the subgroup barrier must still
	// complete.
	hub := NewHub(4)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for _, rank := range []int{0, 1} {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			err := SubgroupBarrier(ctx, hub.Member(rank), rank, []int{0, 1})
			assert.NoError(t, err)
		}(rank)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("node-local barrier blocked on ranks outside the node")
	}
}

func TestSubgroupBarrierHoldsBackEarlyMember(t *testing.T) {
	hub := NewHub(3)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	members := []int{0, 1, 2}
	passed := make(chan int, 3)

	var wg sync.WaitGroup
	for _, rank := range []int{0, 1} {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			require.NoError(t, SubgroupBarrier(ctx, hub.Member(rank), rank, members))
			passed <- rank
		}(rank)
	}

	select {
	case r := <-passed:
		t.Fatalf("rank %d passed the barrier before rank 2 entered", r)
	case <-time.After(50 * time.Millisecond):
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		require.NoError(t, SubgroupBarrier(ctx, hub.Member(2), 2, members))
		passed <- 2
	}()
	wg.Wait()
	assert.Len(t, passed, 3)
}
