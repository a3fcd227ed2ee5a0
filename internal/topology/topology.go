// Package topology derives the two rank coordinate spaces of a job:
// job-wide global ranks, kept contiguous per node, and node-local ranks
// used for node-scoped synchronization.
package topology

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidTopology is returned when a supplied node grouping cannot
// produce node-contiguous global ranks.
var ErrInvalidTopology = errors.New("node grouping is not rank-contiguous")

// Topology holds the rank assignment for one process and the node map
// for the whole job.
type Topology struct {
	WorldSize int
	Rank      int // global rank of this process
	Node      int // node index of this process
	LocalRank int // rank of this process within its node
	LocalSize int // number of processes on this node

	nodes      []int // node index per global rank
	localRanks []int // local rank per global rank
}

// Compute assigns global and local ranks from the per-process host list
// reported by the coordination service. hosts[i] is the host of the
// process with launch index i; selfIndex is this process's launch index.
//
// Node indices follow first appearance in launch order. Global ranks
// order processes by (node index, launch index), which makes every
// node's ranks a contiguous range by construction.
func Compute(hosts []string, selfIndex int) (*Topology, error) {
	if len(hosts) == 0 {
		return nil, fmt.Errorf("%w: empty host list", ErrInvalidTopology)
	}
	if selfIndex < 0 || selfIndex >= len(hosts) {
		return nil, fmt.Errorf("%w: launch index %d out of range for %d processes", ErrInvalidTopology, selfIndex, len(hosts))
	}

	nodeIndex := make(map[string]int)
	launchNode := make([]int, len(hosts))
	for i, h := range hosts {
		n, ok := nodeIndex[h]
		if !ok {
			n = len(nodeIndex)
			nodeIndex[h] = n
		}
		launchNode[i] = n
	}

	// Order launch indices by (node, launch index); position in that
	// order is the global rank.
	order := make([]int, len(hosts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return launchNode[order[a]] < launchNode[order[b]]
	})

	nodes := make([]int, len(hosts))
	for rank, launch := range order {
		nodes[rank] = launchNode[launch]
	}

	t, err := fromNodes(nodes)
	if err != nil {
		return nil, err
	}
	for rank, launch := range order {
		if launch == selfIndex {
			t.setSelf(rank)
			break
		}
	}
	return t, nil
}

// FromAssignment validates an externally supplied rank-to-node map and
// builds the topology for the process with the given global rank. It
// fails if any node's ranks are not a single contiguous range.
func FromAssignment(nodes []int, selfRank int) (*Topology, error) {
	if selfRank < 0 || selfRank >= len(nodes) {
		return nil, fmt.Errorf("%w: rank %d out of range for %d processes", ErrInvalidTopology, selfRank, len(nodes))
	}
	t, err := fromNodes(nodes)
	if err != nil {
		return nil, err
	}
	t.setSelf(selfRank)
	return t, nil
}

func fromNodes(nodes []int) (*Topology, error) {
	seen := make(map[int]bool)
	localRanks := make([]int, len(nodes))
	local := 0
	for rank, n := range nodes {
		if rank == 0 || n != nodes[rank-1] {
			if seen[n] {
				return nil, fmt.Errorf("%w: node %d appears in disjoint rank ranges", ErrInvalidTopology, n)
			}
			seen[n] = true
			local = 0
		}
		localRanks[rank] = local
		local++
	}
	return &Topology{
		WorldSize:  len(nodes),
		nodes:      nodes,
		localRanks: localRanks,
	}, nil
}

func (t *Topology) setSelf(rank int) {
	t.Rank = rank
	t.Node = t.nodes[rank]
	t.LocalRank = t.localRanks[rank]
	first, last := t.RangeOf(rank)
	t.LocalSize = last - first + 1
}

// NodeOf returns the node index of a global rank.
func (t *Topology) NodeOf(rank int) int { return t.nodes[rank] }

// LocalRankOf returns the node-local rank of a global rank.
func (t *Topology) LocalRankOf(rank int) int { return t.localRanks[rank] }

// SameNode reports whether two global ranks share a node.
func (t *Topology) SameNode(a, b int) bool { return t.nodes[a] == t.nodes[b] }

// RangeOf returns the inclusive global-rank range of the node hosting
// the given rank. Contiguity makes this a simple scan.
func (t *Topology) RangeOf(rank int) (first, last int) {
	n := t.nodes[rank]
	first, last = rank, rank
	for first > 0 && t.nodes[first-1] == n {
		first--
	}
	for last < len(t.nodes)-1 && t.nodes[last+1] == n {
		last++
	}
	return first, last
}

// LocalRanks returns the global ranks co-located with this process, in
// rank order. Includes this process's own rank.
func (t *Topology) LocalRanks() []int {
	first, last := t.RangeOf(t.Rank)
	ranks := make([]int, 0, last-first+1)
	for r := first; r <= last; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

// NodeCount returns the number of nodes in the job.
func (t *Topology) NodeCount() int {
	max := -1
	for _, n := range t.nodes {
		if n > max {
			max = n
		}
	}
	return max + 1
}
