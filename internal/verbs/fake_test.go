package verbs

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// The fake provider below stands in for the adapter driver so the state
// machine, endpoint table and capacity accounting can be tested without
// hardware. Send-side posts complete immediately into the fake
// completion queue; receive completions are injected by tests.

var fakeQPNCounter atomic.Uint32

type fakeProvider struct {
	devices []deviceInfo
	ports   map[uint8]portAttrs
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		devices: []deviceInfo{{Name: DefaultDeviceName, GUID: 0xfa4e}},
		ports: map[uint8]portAttrs{
			1: {Active: true, LID: 0x11, ActiveMTU: 5},
		},
	}
}

func (p *fakeProvider) listDevices() ([]deviceInfo, error) { return p.devices, nil }

func (p *fakeProvider) openDevice(name string) (deviceHandle, error) {
	for _, d := range p.devices {
		if d.Name == name {
			return &fakeDevice{provider: p}, nil
		}
	}
	return nil, fmt.Errorf("no such device %s", name)
}

type fakeDevice struct {
	provider *fakeProvider
	events   []string // teardown order, shared by all child resources
	closed   bool
}

func (d *fakeDevice) record(event string) { d.events = append(d.events, event) }

func (d *fakeDevice) queryDevice() (deviceAttrs, error) {
	var maxPort uint8
	for p := range d.provider.ports {
		if p > maxPort {
			maxPort = p
		}
	}
	return deviceAttrs{PortCount: maxPort, MaxQP: 1024, MaxSGE: 4, MaxCQE: 4096}, nil
}

func (d *fakeDevice) queryPort(port uint8) (portAttrs, error) {
	attrs, ok := d.provider.ports[port]
	if !ok {
		return portAttrs{}, fmt.Errorf("no such port %d", port)
	}
	return attrs, nil
}

func (d *fakeDevice) queryGID(port uint8, index uint8) ([16]byte, error) {
	var gid [16]byte
	gid[0] = 0xfe
	gid[15] = port + index
	return gid, nil
}

func (d *fakeDevice) allocPD() (pdHandle, error) { return &fakePD{dev: d}, nil }

func (d *fakeDevice) createCQ(depth int) (cqHandle, error) {
	return &fakeCQ{dev: d, depth: depth}, nil
}

func (d *fakeDevice) close() error {
	if d.closed {
		return fmt.Errorf("device closed twice")
	}
	d.closed = true
	d.record("device")
	return nil
}

type fakePD struct {
	dev *fakeDevice
}

func (p *fakePD) createQP(cq cqHandle, caps queueCaps) (qpHandle, error) {
	return &fakeQP{
		dev:  p.dev,
		cq:   cq.(*fakeCQ),
		qpn:  fakeQPNCounter.Add(1),
		caps: caps,
	}, nil
}

func (p *fakePD) registerMR(base unsafe.Pointer, length uintptr, access accessFlags) (mrHandle, error) {
	return &fakeMR{dev: p.dev, lkey: uint32(length), rkey: uint32(length) + 1}, nil
}

func (p *fakePD) dealloc() error {
	p.dev.record("pd")
	return nil
}

type fakeQP struct {
	dev   *fakeDevice
	cq    *fakeCQ
	qpn   uint32
	caps  queueCaps
	state qpState

	failTransition qpState // transition to this state returns an error
}

func (q *fakeQP) num() uint32 { return q.qpn }

func (q *fakeQP) modify(from, to qpState) error {
	if q.failTransition == to {
		return fmt.Errorf("injected transition failure")
	}
	if q.state != from {
		return fmt.Errorf("invalid transition from %s to %s", q.state, to)
	}
	q.state = to
	return nil
}

func (q *fakeQP) toInit(port uint8, access accessFlags) error {
	return q.modify(stateReset, stateInit)
}

func (q *fakeQP) toRTR(remote remoteAttrs) error {
	if remote.QPN == 0 {
		return fmt.Errorf("missing destination queue pair number")
	}
	return q.modify(stateInit, stateRTR)
}

func (q *fakeQP) toRTS(localPSN uint32) error {
	return q.modify(stateRTR, stateRTS)
}

func (q *fakeQP) postSend(req *SendRequest) error {
	if q.state != stateRTS {
		return fmt.Errorf("queue pair in state %s", q.state)
	}
	q.cq.push(Completion{
		WRID:    req.WRID,
		Kind:    CompletionSend,
		Status:  StatusSuccess,
		ByteLen: req.Length,
		QPN:     q.qpn,
	})
	return nil
}

func (q *fakeQP) postRecv(req *RecvRequest) error {
	if q.state != stateRTS {
		return fmt.Errorf("queue pair in state %s", q.state)
	}
	return nil
}

func (q *fakeQP) destroy() error {
	q.dev.record(fmt.Sprintf("qp:%d", q.qpn))
	return nil
}

type fakeCQ struct {
	dev     *fakeDevice
	depth   int
	pending []Completion
}

func (c *fakeCQ) push(entry Completion) { c.pending = append(c.pending, entry) }

func (c *fakeCQ) poll(entries []Completion) (int, error) {
	n := copy(entries, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

func (c *fakeCQ) destroy() error {
	c.dev.record("cq")
	return nil
}

type fakeMR struct {
	dev  *fakeDevice
	lkey uint32
	rkey uint32
}

func (m *fakeMR) localKey() uint32  { return m.lkey }
func (m *fakeMR) remoteKey() uint32 { return m.rkey }

func (m *fakeMR) deregister() error {
	m.dev.record(fmt.Sprintf("mr:%d", m.lkey))
	return nil
}
