// Package verbs bootstraps a fully-connected mesh of reliable-connected
// RDMA queue pairs between every process of a distributed job.
//
// Usage is two-phase: Open selects the adapter and creates the
// per-process hardware resources (context, protection domain, one
// shared completion queue), then Connect exchanges addressing records
// with every other process through the coordination service and drives
// each queue pair to its ready state. After Connect returns on every
// process, PostSend, PostRecv and Poll are non-blocking and never touch
// the coordination service again.
//
// The package is synchronous and not internally locked: posting and
// polling from multiple goroutines must be serialized by the caller.
package verbs

import (
	"errors"
	"fmt"
	"unsafe"
)

// Queue tuning constants. The inline threshold favors message rate over
// payload size for small transfers; the timer and retry values are the
// Mellanox RDMA-Aware Programming manual defaults.
const (
	CompletionQueueDepth = 256
	SendQueueDepth       = 16
	RecvQueueDepth       = 1
	MaxScatterGather     = 1
	MaxInlineData        = 16

	maxDestRdAtomic = 16
	maxRdAtomic     = 16
	minRnrTimer     = 0x12
	ackTimeout      = 0x12
	retryCount      = 6
	rnrRetry        = 0
)

// Defaults for Config.
const (
	DefaultDeviceName = "mlx4_0"
	DefaultPort       = 1
)

var (
	// ErrDeviceNotFound means no visible adapter matched the requested name.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrPortUnavailable means the requested port does not exist or is not active.
	ErrPortUnavailable = errors.New("port unavailable")
	// ErrRegistrationFailed means the adapter rejected a memory registration,
	// or the region was empty.
	ErrRegistrationFailed = errors.New("memory registration failed")
	// ErrUnknownRank means no endpoint exists for the requested rank.
	ErrUnknownRank = errors.New("unknown rank")
	// ErrInvalidRequest means a work request is missing its buffer or
	// memory region.
	ErrInvalidRequest = errors.New("invalid work request")
	// ErrQueueFull means the target queue is at its configured depth. The
	// depth is a hard capacity limit; the caller must poll completions
	// before posting more.
	ErrQueueFull = errors.New("queue full")
	// ErrNotReady means the queue pair has not completed its state
	// transitions and cannot accept work.
	ErrNotReady = errors.New("queue pair not ready")
	// ErrFinalized means the mesh or transport has been torn down.
	ErrFinalized = errors.New("already finalized")
)

// TransitionError reports a failed queue-pair state transition. Full
// mesh connectivity is required, so one failed transition aborts the
// whole bootstrap.
type TransitionError struct {
	Rank     int    // remote rank of the affected queue pair
	From, To string // state names
	Err      error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("queue pair for rank %d failed transition %s -> %s: %v", e.Rank, e.From, e.To, e.Err)
}

func (e *TransitionError) Unwrap() error { return e.Err }

// OperationError reports a failed completion. The adapter marks the
// queue pair unusable after one failed operation; no retry is attempted.
type OperationError struct {
	Rank   int
	Status CompletionStatus
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation for rank %d failed: %s", e.Rank, e.Status)
}

// OpCode selects the kind of send-side work request.
type OpCode int

const (
	// OpSend is a two-sided send consumed by a posted receive.
	OpSend OpCode = iota
	// OpWrite is a one-sided RDMA write to remote memory.
	OpWrite
	// OpRead is a one-sided RDMA read from remote memory.
	OpRead
)

func (o OpCode) String() string {
	switch o {
	case OpSend:
		return "send"
	case OpWrite:
		return "write"
	case OpRead:
		return "read"
	default:
		return fmt.Sprintf("opcode(%d)", int(o))
	}
}

// SendRequest describes one send-side operation. The local buffer must
// lie inside Region, which must stay registered until the completion is
// polled. RemoteAddr and RemoteKey are required for OpWrite and OpRead.
type SendRequest struct {
	WRID       uint64
	Op         OpCode
	LocalAddr  unsafe.Pointer
	Length     uint32
	Region     *MemoryRegion
	RemoteAddr uint64
	RemoteKey  uint32
}

// RecvRequest describes one receive buffer for two-sided sends.
type RecvRequest struct {
	WRID      uint64
	LocalAddr unsafe.Pointer
	Length    uint32
	Region    *MemoryRegion
}

// CompletionStatus is the adapter's outcome code for one operation.
// Zero is success; nonzero values are adapter specific failure codes
// (ibv_wc_status values on InfiniBand hardware).
type CompletionStatus int

// StatusSuccess is the successful completion outcome.
const StatusSuccess CompletionStatus = 0

func (s CompletionStatus) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// CompletionKind distinguishes send-side from receive-side completions.
type CompletionKind int

const (
	CompletionSend CompletionKind = iota
	CompletionRecv
)

// Completion is one drained completion-queue entry. Rank identifies the
// remote peer of the queue pair the operation ran on.
type Completion struct {
	Rank    int
	WRID    uint64
	Kind    CompletionKind
	Status  CompletionStatus
	ByteLen uint32
	QPN     uint32 // local queue pair number the entry arrived on
}
