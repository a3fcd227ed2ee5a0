package verbs

import "unsafe"

// The provider interfaces below are the package's only path to the
// adapter driver. The production implementation wraps libibverbs
// (hca_linux.go); tests substitute an in-memory fake so the state
// machine, endpoint table and capacity accounting can be exercised
// without hardware.

// deviceInfo identifies one visible adapter.
type deviceInfo struct {
	Name string
	GUID uint64
}

// deviceAttrs are the capability limits captured when the device is
// opened, immutable afterwards.
type deviceAttrs struct {
	PortCount uint8
	MaxQP     int
	MaxSGE    int
	MaxCQE    int
}

// portAttrs are the active link's addressing attributes, read once at
// setup and assumed stable for the job's duration.
type portAttrs struct {
	Active    bool
	LID       uint16
	GID       [16]byte
	ActiveMTU uint32 // ibv_mtu enum value, 1 (256B) .. 5 (4096B)
	Width     uint8
	Speed     uint8
}

type accessFlags uint32

// ibv_access_flags values.
const (
	accessLocalWrite   accessFlags = 1 << 0
	accessRemoteWrite  accessFlags = 1 << 1
	accessRemoteRead   accessFlags = 1 << 2
	accessRemoteAtomic accessFlags = 1 << 3
)

// queueCaps fixes a queue pair's capacity at creation.
type queueCaps struct {
	SendDepth int
	RecvDepth int
	MaxSGE    int
	MaxInline int
}

// remoteAttrs carry the peer identifiers learned during the address
// exchange, consumed by the Ready-to-Receive transition.
type remoteAttrs struct {
	QPN      uint32
	PSN      uint32
	LID      uint16
	GID      [16]byte
	MTU      uint32
	Port     uint8
	GIDIndex uint8
	Global   bool // use the GID route (RoCE) instead of the LID
}

type provider interface {
	listDevices() ([]deviceInfo, error)
	openDevice(name string) (deviceHandle, error)
}

type deviceHandle interface {
	queryDevice() (deviceAttrs, error)
	queryPort(port uint8) (portAttrs, error)
	queryGID(port uint8, index uint8) ([16]byte, error)
	allocPD() (pdHandle, error)
	createCQ(depth int) (cqHandle, error)
	close() error
}

type pdHandle interface {
	createQP(cq cqHandle, caps queueCaps) (qpHandle, error)
	registerMR(base unsafe.Pointer, length uintptr, access accessFlags) (mrHandle, error)
	dealloc() error
}

type qpHandle interface {
	num() uint32
	toInit(port uint8, access accessFlags) error
	toRTR(remote remoteAttrs) error
	toRTS(localPSN uint32) error
	postSend(req *SendRequest) error
	postRecv(req *RecvRequest) error
	destroy() error
}

type cqHandle interface {
	// poll fills entries with drained completions and returns the count.
	// It never blocks; an empty queue yields 0.
	poll(entries []Completion) (int, error)
	destroy() error
}

type mrHandle interface {
	localKey() uint32
	remoteKey() uint32
	deregister() error
}
