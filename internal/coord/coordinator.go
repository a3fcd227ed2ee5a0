// Package coord is the boundary to the job's coordination service. The
// queue-pair bootstrap consumes exactly three primitives from it: the
// launch-order host list, a reliable point-to-point exchange of one
// fixed-size addressing record between any two processes, and a
// full-group barrier.
package coord

import (
	"context"
	"fmt"
	"sort"
)

// PeerRecord is the addressing record exchanged once per queue pair:
// the link-layer identifiers a remote process needs to connect to us.
type PeerRecord struct {
	Rank int
	GID  [16]byte
	LID  uint16
	QPN  uint32
	PSN  uint32
}

// Coordinator is the per-process handle to the coordination service.
//
// Exchange is symmetric and pairwise: both sides deposit their record
// for the other and block until the counterpart arrives. Barrier blocks
// until every process in the job has entered it.
type Coordinator interface {
	Exchange(ctx context.Context, peer int, local PeerRecord) (PeerRecord, error)
	Barrier(ctx context.Context) error
	Close() error
}

// SubgroupBarrier synchronizes a subset of ranks using only the
// pairwise exchange primitive, so processes outside the subgroup are
// never involved. Used for node-local barriers over the node's
// contiguous rank range.
//
// The lowest member acts as the root: one exchange round gathers every
// member, a second round releases them. A member's second exchange can
// only complete after the root finished the first round with everyone.
func SubgroupBarrier(ctx context.Context, c Coordinator, self int, members []int) error {
	if len(members) == 0 {
		return fmt.Errorf("subgroup barrier: empty member list")
	}
	sorted := make([]int, len(members))
	copy(sorted, members)
	sort.Ints(sorted)

	root := sorted[0]
	token := PeerRecord{Rank: self}

	for round := 0; round < 2; round++ {
		if self == root {
			for _, m := range sorted[1:] {
				if _, err := c.Exchange(ctx, m, token); err != nil {
					return fmt.Errorf("subgroup barrier round %d with rank %d: %w", round, m, err)
				}
			}
		} else {
			if _, err := c.Exchange(ctx, root, token); err != nil {
				return fmt.Errorf("subgroup barrier round %d with rank %d: %w", round, root, err)
			}
		}
	}
	return nil
}
