package verbs

import (
	"context"
	"sync"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibmesh/ibmesh/internal/coord"
	"github.com/ibmesh/ibmesh/internal/topology"
)

// connectWorld bootstraps one mesh per process of a simulated job, each
// process backed by its own fake adapter and coordinated through an
// in-process hub. The result is indexed by rank.
func connectWorld(t *testing.T, hosts []string) []*Mesh {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub := coord.NewHub(len(hosts))
	meshes := make([]*Mesh, len(hosts))
	errs := make([]error, len(hosts))

	var wg sync.WaitGroup
	for i := range hosts {
		wg.Add(1)
		go func(selfIndex int) {
			defer wg.Done()
			topo, err := topology.Compute(hosts, selfIndex)
			if err != nil {
				errs[selfIndex] = err
				return
			}
			transport, err := openWith(newFakeProvider(), Config{})
			if err != nil {
				errs[topo.Rank] = err
				return
			}
			mesh, err := Connect(ctx, transport, topo, hub.Member(topo.Rank))
			if err != nil {
				errs[topo.Rank] = err
				return
			}
			meshes[topo.Rank] = mesh
		}(i)
	}
	wg.Wait()

	for rank, err := range errs {
		require.NoError(t, err, "rank %d failed to connect", rank)
	}
	t.Cleanup(func() {
		for _, m := range meshes {
			m.Finalize()
		}
	})
	return meshes
}

func TestConnectBuildsFullMesh(t *testing.T) {
	// Four processes on two hosts.
	meshes := connectWorld(t, []string{"nodeA", "nodeA", "nodeB", "nodeB"})

	// Every rank holds one endpoint per remote rank and none for itself.
	assert.Equal(t, []int{0, 2, 3}, meshes[1].Peers())
	for rank, m := range meshes {
		assert.Len(t, m.Peers(), 3, "rank %d", rank)
		_, err := m.Remote(rank)
		assert.ErrorIs(t, err, ErrUnknownRank, "rank %d must have no self endpoint", rank)
	}
}

func TestConnectEndpointRecordsAreMutual(t *testing.T) {
	meshes := connectWorld(t, []string{"nodeA", "nodeA", "nodeB"})

	for a := range meshes {
		for b := range meshes {
			if a == b {
				continue
			}
			fromB, err := meshes[a].Remote(b)
			require.NoError(t, err)
			fromA, err := meshes[b].Remote(a)
			require.NoError(t, err)

			// The record rank a learned about b names b, and the queue
			// pair numbers cross-reference: a's record of b is the pair
			// b created for a.
			assert.Equal(t, b, fromB.Rank)
			assert.Equal(t, a, fromA.Rank)
			assert.NotEqual(t, fromA.QPN, fromB.QPN)
			assert.NotZero(t, fromB.QPN)
			assert.NotZero(t, fromB.PSN)
		}
	}
}

func TestPostSendEnforcesQueueDepth(t *testing.T) {
	meshes := connectWorld(t, []string{"nodeA", "nodeB"})
	mesh := meshes[0]

	buf := make([]byte, 64)
	region, err := mesh.transport.RegisterBytes(buf)
	require.NoError(t, err)

	req := &SendRequest{
		Op:        OpSend,
		LocalAddr: unsafe.Pointer(&buf[0]),
		Length:    uint32(len(buf)),
		Region:    region,
	}
	for i := 0; i < SendQueueDepth; i++ {
		req.WRID = uint64(i)
		require.NoError(t, mesh.PostSend(1, req), "post %d", i)
	}

	// The queue is at capacity until completions are drained.
	req.WRID = uint64(SendQueueDepth)
	assert.ErrorIs(t, mesh.PostSend(1, req), ErrQueueFull)

	entries, err := mesh.Poll(CompletionQueueDepth)
	require.NoError(t, err)
	assert.Len(t, entries, SendQueueDepth)
	assert.NoError(t, mesh.PostSend(1, req))
}

func TestPollNeverExceedsRequestedCount(t *testing.T) {
	meshes := connectWorld(t, []string{"nodeA", "nodeB"})
	mesh := meshes[0]

	buf := make([]byte, 8)
	region, err := mesh.transport.RegisterBytes(buf)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		err := mesh.PostSend(1, &SendRequest{
			WRID:      uint64(i),
			Op:        OpSend,
			LocalAddr: unsafe.Pointer(&buf[0]),
			Length:    8,
			Region:    region,
		})
		require.NoError(t, err)
	}

	entries, err := mesh.Poll(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	for _, c := range entries {
		assert.Equal(t, 1, c.Rank)
		assert.Equal(t, CompletionSend, c.Kind)
		assert.NoError(t, c.Err())
	}

	entries, err = mesh.Poll(CompletionQueueDepth)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	// An empty completion queue yields an empty result, never a block.
	entries, err = mesh.Poll(CompletionQueueDepth)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPostRejectsUnknownRank(t *testing.T) {
	meshes := connectWorld(t, []string{"nodeA", "nodeB"})
	mesh := meshes[0]

	buf := make([]byte, 8)
	region, err := mesh.transport.RegisterBytes(buf)
	require.NoError(t, err)

	req := &SendRequest{Op: OpSend, LocalAddr: unsafe.Pointer(&buf[0]), Length: 8, Region: region}
	assert.ErrorIs(t, mesh.PostSend(0, req), ErrUnknownRank, "self rank has no endpoint")
	assert.ErrorIs(t, mesh.PostSend(-1, req), ErrUnknownRank)
	assert.ErrorIs(t, mesh.PostSend(2, req), ErrUnknownRank)
	assert.ErrorIs(t, mesh.PostRecv(7, &RecvRequest{}), ErrUnknownRank)
}

func TestPostRejectedBeforeReady(t *testing.T) {
	transport, err := openWith(newFakeProvider(), Config{})
	require.NoError(t, err)
	defer transport.Finalize()

	qp, err := newQueuePair(transport.pd, transport.cq, 1)
	require.NoError(t, err)
	defer qp.destroy()

	buf := make([]byte, 8)
	region, err := transport.RegisterBytes(buf)
	require.NoError(t, err)

	req := &SendRequest{Op: OpSend, LocalAddr: unsafe.Pointer(&buf[0]), Length: 8, Region: region}
	assert.ErrorIs(t, qp.postSend(req), ErrNotReady, "reset state accepts no work")

	require.NoError(t, qp.toInit(1))
	assert.ErrorIs(t, qp.postSend(req), ErrNotReady, "init state accepts no work")
	rreq := &RecvRequest{LocalAddr: unsafe.Pointer(&buf[0]), Length: 8, Region: region}
	assert.ErrorIs(t, qp.postRecv(rreq), ErrNotReady)

	require.NoError(t, qp.toRTR(remoteAttrs{QPN: 99, LID: 5, MTU: 5, Port: 1}))
	require.NoError(t, qp.toRTS())
	assert.NoError(t, qp.postSend(req))
}

func TestTransitionFailureReportsRankAndStates(t *testing.T) {
	transport, err := openWith(newFakeProvider(), Config{})
	require.NoError(t, err)
	defer transport.Finalize()

	qp, err := newQueuePair(transport.pd, transport.cq, 3)
	require.NoError(t, err)
	defer qp.destroy()

	qp.handle.(*fakeQP).failTransition = stateRTR
	require.NoError(t, qp.toInit(1))
	err = qp.toRTR(remoteAttrs{QPN: 42, MTU: 5, Port: 1})
	require.Error(t, err)

	var terr *TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 3, terr.Rank)
	assert.Equal(t, "init", terr.From)
	assert.Equal(t, "rtr", terr.To)
	assert.Equal(t, stateError, qp.state)
}

func TestPollSurfacesFailedCompletion(t *testing.T) {
	meshes := connectWorld(t, []string{"nodeA", "nodeB"})
	mesh := meshes[0]

	// The adapter reports a failed entry for the queue pair of rank 1.
	qpn := mesh.endpoints[1].qp.handle.num()
	mesh.transport.cq.(*fakeCQ).push(Completion{
		WRID:   7,
		Kind:   CompletionSend,
		Status: CompletionStatus(12),
		QPN:    qpn,
	})

	entries, err := mesh.Poll(4)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Rank)

	var opErr *OperationError
	require.ErrorAs(t, entries[0].Err(), &opErr)
	assert.Equal(t, 1, opErr.Rank)
	assert.Equal(t, CompletionStatus(12), opErr.Status)

	// The pair is dead after one failed operation; no further work is
	// accepted on it.
	buf := make([]byte, 8)
	region, err := mesh.transport.RegisterBytes(buf)
	require.NoError(t, err)
	err = mesh.PostSend(1, &SendRequest{
		Op:        OpSend,
		LocalAddr: unsafe.Pointer(&buf[0]),
		Length:    8,
		Region:    region,
	})
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestPostValidatesRequest(t *testing.T) {
	meshes := connectWorld(t, []string{"nodeA", "nodeB"})
	mesh := meshes[0]

	buf := make([]byte, 8)
	region, err := mesh.transport.RegisterBytes(buf)
	require.NoError(t, err)

	err = mesh.PostSend(1, &SendRequest{Op: OpSend, LocalAddr: unsafe.Pointer(&buf[0]), Length: 8})
	assert.ErrorIs(t, err, ErrInvalidRequest, "missing region")

	err = mesh.PostSend(1, &SendRequest{Op: OpSend, Length: 8, Region: region})
	assert.ErrorIs(t, err, ErrInvalidRequest, "missing local address")

	err = mesh.PostRecv(1, &RecvRequest{LocalAddr: unsafe.Pointer(&buf[0]), Length: 8})
	assert.ErrorIs(t, err, ErrInvalidRequest, "missing region")
}

func TestMeshFinalizeIsIdempotent(t *testing.T) {
	meshes := connectWorld(t, []string{"nodeA", "nodeB"})
	mesh := meshes[0]

	require.NoError(t, mesh.Finalize())
	require.NoError(t, mesh.Finalize())

	_, err := mesh.Poll(1)
	assert.ErrorIs(t, err, ErrFinalized)
	assert.ErrorIs(t, mesh.PostSend(1, &SendRequest{}), ErrFinalized)
	_, err = mesh.Remote(1)
	assert.ErrorIs(t, err, ErrFinalized)
}
