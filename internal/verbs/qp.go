package verbs

import (
	"fmt"
	"math/rand"
)

type qpState int

const (
	stateReset qpState = iota
	stateInit
	stateRTR
	stateRTS
	stateError
)

func (s qpState) String() string {
	switch s {
	case stateReset:
		return "reset"
	case stateInit:
		return "init"
	case stateRTR:
		return "rtr"
	case stateRTS:
		return "rts"
	case stateError:
		return "error"
	default:
		return "unknown"
	}
}

// queuePair tracks one reliable connection to a remote rank. The state
// and occupancy counters shadow the adapter so capacity violations and
// premature posts are rejected here instead of surfacing as asynchronous
// work completion errors.
type queuePair struct {
	rank     int
	handle   qpHandle
	state    qpState
	localPSN uint32
	caps     queueCaps

	sendOutstanding int
	recvOutstanding int
}

func newQueuePair(pd pdHandle, cq cqHandle, rank int) (*queuePair, error) {
	caps := queueCaps{
		SendDepth: SendQueueDepth,
		RecvDepth: RecvQueueDepth,
		MaxSGE:    MaxScatterGather,
		MaxInline: MaxInlineData,
	}
	handle, err := pd.createQP(cq, caps)
	if err != nil {
		return nil, err
	}
	return &queuePair{
		rank:   rank,
		handle: handle,
		state:  stateReset,
		// Packet sequence numbers are 24 bits wide.
		localPSN: rand.Uint32() & 0xffffff,
		caps:     caps,
	}, nil
}

func (q *queuePair) transitionErr(to qpState, err error) error {
	from := q.state
	q.state = stateError
	return &TransitionError{Rank: q.rank, From: from.String(), To: to.String(), Err: err}
}

func (q *queuePair) toInit(port uint8) error {
	access := accessLocalWrite | accessRemoteRead | accessRemoteWrite
	if err := q.handle.toInit(port, access); err != nil {
		return q.transitionErr(stateInit, err)
	}
	q.state = stateInit
	return nil
}

func (q *queuePair) toRTR(remote remoteAttrs) error {
	if err := q.handle.toRTR(remote); err != nil {
		return q.transitionErr(stateRTR, err)
	}
	q.state = stateRTR
	return nil
}

func (q *queuePair) toRTS() error {
	if err := q.handle.toRTS(q.localPSN); err != nil {
		return q.transitionErr(stateRTS, err)
	}
	q.state = stateRTS
	return nil
}

func (q *queuePair) postSend(req *SendRequest) error {
	if req.Region == nil {
		return fmt.Errorf("%w: no memory region", ErrInvalidRequest)
	}
	if req.LocalAddr == nil {
		return fmt.Errorf("%w: nil local address", ErrInvalidRequest)
	}
	if q.state != stateRTS {
		return ErrNotReady
	}
	if q.sendOutstanding >= q.caps.SendDepth {
		return ErrQueueFull
	}
	if err := q.handle.postSend(req); err != nil {
		return err
	}
	q.sendOutstanding++
	return nil
}

func (q *queuePair) postRecv(req *RecvRequest) error {
	if req.Region == nil {
		return fmt.Errorf("%w: no memory region", ErrInvalidRequest)
	}
	if req.LocalAddr == nil {
		return fmt.Errorf("%w: nil local address", ErrInvalidRequest)
	}
	if q.state != stateRTS {
		return ErrNotReady
	}
	if q.recvOutstanding >= q.caps.RecvDepth {
		return ErrQueueFull
	}
	if err := q.handle.postRecv(req); err != nil {
		return err
	}
	q.recvOutstanding++
	return nil
}

// completed releases one unit of queue occupancy for a drained entry.
func (q *queuePair) completed(kind CompletionKind) {
	switch kind {
	case CompletionSend:
		if q.sendOutstanding > 0 {
			q.sendOutstanding--
		}
	case CompletionRecv:
		if q.recvOutstanding > 0 {
			q.recvOutstanding--
		}
	}
}

func (q *queuePair) destroy() error {
	return q.handle.destroy()
}
