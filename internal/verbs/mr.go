package verbs

import (
	"fmt"
	"unsafe"
)

// MemoryRegion is a buffer pinned and registered with the adapter.
// The registration stays valid until Deregister or Transport.Finalize;
// the caller must keep the underlying memory alive for that long.
type MemoryRegion struct {
	handle       mrHandle
	base         unsafe.Pointer
	length       uintptr
	deregistered bool
}

// RegisterMemoryRegion registers length bytes starting at base with
// local write and remote read/write access. A nil base or zero length
// is rejected with ErrRegistrationFailed before reaching the adapter.
func (t *Transport) RegisterMemoryRegion(base unsafe.Pointer, length int) (*MemoryRegion, error) {
	if t.finalized {
		return nil, ErrFinalized
	}
	if base == nil {
		return nil, fmt.Errorf("%w: nil base address", ErrRegistrationFailed)
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: non-positive length %d", ErrRegistrationFailed, length)
	}

	access := accessLocalWrite | accessRemoteRead | accessRemoteWrite
	handle, err := t.pd.registerMR(base, uintptr(length), access)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	mr := &MemoryRegion{handle: handle, base: base, length: uintptr(length)}
	t.regions = append(t.regions, mr)
	return mr, nil
}

// RegisterBytes registers a byte slice. The slice must not be moved or
// freed while registered.
func (t *Transport) RegisterBytes(buf []byte) (*MemoryRegion, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrRegistrationFailed)
	}
	return t.RegisterMemoryRegion(unsafe.Pointer(&buf[0]), len(buf))
}

// Addr is the region's base address as exchanged with remote peers for
// one-sided operations.
func (m *MemoryRegion) Addr() uint64 { return uint64(uintptr(m.base)) }

// Length is the registered size in bytes.
func (m *MemoryRegion) Length() int { return int(m.length) }

// LocalKey authorizes local scatter/gather access.
func (m *MemoryRegion) LocalKey() uint32 { return m.handle.localKey() }

// RemoteKey authorizes remote one-sided access; peers need it together
// with Addr.
func (m *MemoryRegion) RemoteKey() uint32 { return m.handle.remoteKey() }

// Deregister releases the registration. Idempotent.
func (m *MemoryRegion) Deregister() error {
	if m.deregistered {
		return nil
	}
	m.deregistered = true
	return m.handle.deregister()
}
