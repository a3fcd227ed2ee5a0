package verbs

// #cgo LDFLAGS: -libverbs
// #include <stdlib.h>
// #include <string.h>
// #include <infiniband/verbs.h>
//
// // ibv_query_port is a macro in some libibverbs versions; wrap it so
// // cgo can call it.
// static int ibmesh_query_port(struct ibv_context *ctx, uint8_t port, struct ibv_port_attr *attr) {
//     return ibv_query_port(ctx, port, attr);
// }
import "C"
import (
	"encoding/binary"
	"fmt"
	"syscall"
	"unsafe"

	"github.com/rs/zerolog/log"
)

// cProvider is the libibverbs-backed provider.
type cProvider struct{}

func defaultProvider() provider { return cProvider{} }

func (cProvider) listDevices() ([]deviceInfo, error) {
	var numDevices C.int
	deviceList := C.ibv_get_device_list(&numDevices)
	if deviceList == nil {
		return nil, fmt.Errorf("failed to get RDMA device list")
	}
	defer C.ibv_free_device_list(deviceList)

	var infos []deviceInfo
	for i := 0; i < int(numDevices); i++ {
		device := *(**C.struct_ibv_device)(unsafe.Pointer(uintptr(unsafe.Pointer(deviceList)) + uintptr(i)*unsafe.Sizeof(uintptr(0))))
		if device == nil {
			continue
		}
		name := C.GoString(C.ibv_get_device_name(device))
		infos = append(infos, deviceInfo{
			Name: name,
			GUID: uint64(C.ibv_get_device_guid(device)),
		})
		log.Debug().Str("device", name).Msg("Found RDMA device")
	}
	return infos, nil
}

func (cProvider) openDevice(name string) (deviceHandle, error) {
	var numDevices C.int
	deviceList := C.ibv_get_device_list(&numDevices)
	if deviceList == nil {
		return nil, fmt.Errorf("failed to get RDMA device list")
	}
	defer C.ibv_free_device_list(deviceList)

	for i := 0; i < int(numDevices); i++ {
		device := *(**C.struct_ibv_device)(unsafe.Pointer(uintptr(unsafe.Pointer(deviceList)) + uintptr(i)*unsafe.Sizeof(uintptr(0))))
		if device == nil || C.GoString(C.ibv_get_device_name(device)) != name {
			continue
		}
		ctx := C.ibv_open_device(device)
		if ctx == nil {
			return nil, fmt.Errorf("failed to open device %s", name)
		}
		return &cDevice{ctx: ctx}, nil
	}
	return nil, fmt.Errorf("device %s disappeared between enumeration and open", name)
}

type cDevice struct {
	ctx *C.struct_ibv_context
}

func (d *cDevice) queryDevice() (deviceAttrs, error) {
	var attr C.struct_ibv_device_attr
	if ret := C.ibv_query_device(d.ctx, &attr); ret != 0 {
		return deviceAttrs{}, fmt.Errorf("ibv_query_device failed: %s", syscall.Errno(ret))
	}
	return deviceAttrs{
		PortCount: uint8(attr.phys_port_cnt),
		MaxQP:     int(attr.max_qp),
		MaxSGE:    int(attr.max_sge),
		MaxCQE:    int(attr.max_cqe),
	}, nil
}

func (d *cDevice) queryPort(port uint8) (portAttrs, error) {
	var attr C.struct_ibv_port_attr
	if ret := C.ibmesh_query_port(d.ctx, C.uint8_t(port), &attr); ret != 0 {
		return portAttrs{}, fmt.Errorf("ibv_query_port(%d) failed: %s", port, syscall.Errno(ret))
	}
	return portAttrs{
		Active:    attr.state == C.IBV_PORT_ACTIVE,
		LID:       uint16(attr.lid),
		ActiveMTU: uint32(attr.active_mtu),
		Width:     uint8(attr.active_width),
		Speed:     uint8(attr.active_speed),
	}, nil
}

func (d *cDevice) queryGID(port uint8, index uint8) ([16]byte, error) {
	var gid C.union_ibv_gid
	if ret := C.ibv_query_gid(d.ctx, C.uint8_t(port), C.int(index), &gid); ret != 0 {
		return [16]byte{}, fmt.Errorf("ibv_query_gid(%d, %d) failed: %s", port, index, syscall.Errno(ret))
	}
	var out [16]byte
	copy(out[:], unsafe.Slice((*byte)(unsafe.Pointer(&gid)), 16))
	return out, nil
}

func (d *cDevice) allocPD() (pdHandle, error) {
	pd := C.ibv_alloc_pd(d.ctx)
	if pd == nil {
		return nil, fmt.Errorf("ibv_alloc_pd failed")
	}
	return &cPD{pd: pd}, nil
}

func (d *cDevice) createCQ(depth int) (cqHandle, error) {
	cq := C.ibv_create_cq(d.ctx, C.int(depth), nil, nil, 0)
	if cq == nil {
		return nil, fmt.Errorf("ibv_create_cq(%d) failed", depth)
	}
	wcBuf := (*C.struct_ibv_wc)(C.malloc(C.size_t(depth) * C.size_t(unsafe.Sizeof(C.struct_ibv_wc{}))))
	if wcBuf == nil {
		C.ibv_destroy_cq(cq)
		return nil, fmt.Errorf("failed to allocate completion buffer for %d entries", depth)
	}
	return &cCQ{cq: cq, wcBuf: wcBuf, depth: depth}, nil
}

func (d *cDevice) close() error {
	if d.ctx == nil {
		return nil
	}
	if ret := C.ibv_close_device(d.ctx); ret != 0 {
		return fmt.Errorf("ibv_close_device failed: %d", ret)
	}
	d.ctx = nil
	return nil
}

type cPD struct {
	pd *C.struct_ibv_pd
}

func (p *cPD) createQP(cq cqHandle, caps queueCaps) (qpHandle, error) {
	ccq, ok := cq.(*cCQ)
	if !ok {
		return nil, fmt.Errorf("completion queue does not belong to this provider")
	}

	var initAttr C.struct_ibv_qp_init_attr
	initAttr.qp_type = C.IBV_QPT_RC
	initAttr.send_cq = ccq.cq
	initAttr.recv_cq = ccq.cq
	initAttr.cap.max_send_wr = C.uint32_t(caps.SendDepth)
	initAttr.cap.max_recv_wr = C.uint32_t(caps.RecvDepth)
	initAttr.cap.max_send_sge = C.uint32_t(caps.MaxSGE)
	initAttr.cap.max_recv_sge = C.uint32_t(caps.MaxSGE)
	initAttr.cap.max_inline_data = C.uint32_t(caps.MaxInline)
	// Every work request is signaled so completion accounting can track
	// queue occupancy.
	initAttr.sq_sig_all = 1

	qp := C.ibv_create_qp(p.pd, &initAttr)
	if qp == nil {
		return nil, fmt.Errorf("ibv_create_qp failed")
	}

	// Work request and scatter/gather scratch structures live in C
	// memory so pointers stored in them never reference Go memory.
	sendWR := (*C.struct_ibv_send_wr)(C.malloc(C.size_t(unsafe.Sizeof(C.struct_ibv_send_wr{}))))
	recvWR := (*C.struct_ibv_recv_wr)(C.malloc(C.size_t(unsafe.Sizeof(C.struct_ibv_recv_wr{}))))
	sendSGE := (*C.struct_ibv_sge)(C.malloc(C.size_t(unsafe.Sizeof(C.struct_ibv_sge{}))))
	recvSGE := (*C.struct_ibv_sge)(C.malloc(C.size_t(unsafe.Sizeof(C.struct_ibv_sge{}))))
	if sendWR == nil || recvWR == nil || sendSGE == nil || recvSGE == nil {
		C.ibv_destroy_qp(qp)
		return nil, fmt.Errorf("failed to allocate work request scratch memory")
	}

	return &cQP{qp: qp, sendWR: sendWR, recvWR: recvWR, sendSGE: sendSGE, recvSGE: recvSGE}, nil
}

func (p *cPD) registerMR(base unsafe.Pointer, length uintptr, access accessFlags) (mrHandle, error) {
	mr := C.ibv_reg_mr(p.pd, base, C.size_t(length), C.int(access))
	if mr == nil {
		return nil, fmt.Errorf("ibv_reg_mr(%d bytes) failed", length)
	}
	return &cMR{mr: mr}, nil
}

func (p *cPD) dealloc() error {
	if p.pd == nil {
		return nil
	}
	if ret := C.ibv_dealloc_pd(p.pd); ret != 0 {
		return fmt.Errorf("ibv_dealloc_pd failed: %d", ret)
	}
	p.pd = nil
	return nil
}

type cQP struct {
	qp      *C.struct_ibv_qp
	sendWR  *C.struct_ibv_send_wr
	recvWR  *C.struct_ibv_recv_wr
	sendSGE *C.struct_ibv_sge
	recvSGE *C.struct_ibv_sge
}

func (q *cQP) num() uint32 { return uint32(q.qp.qp_num) }

func (q *cQP) modify(attr *C.struct_ibv_qp_attr, mask C.int) error {
	if ret := C.ibv_modify_qp(q.qp, attr, mask); ret != 0 {
		return fmt.Errorf("ibv_modify_qp failed: %s", syscall.Errno(ret))
	}
	return nil
}

func (q *cQP) toInit(port uint8, access accessFlags) error {
	var attr C.struct_ibv_qp_attr
	attr.qp_state = C.IBV_QPS_INIT
	attr.pkey_index = 0
	attr.port_num = C.uint8_t(port)
	attr.qp_access_flags = C.uint(access)
	mask := C.int(C.IBV_QP_STATE | C.IBV_QP_PKEY_INDEX | C.IBV_QP_PORT | C.IBV_QP_ACCESS_FLAGS)
	return q.modify(&attr, mask)
}

func (q *cQP) toRTR(remote remoteAttrs) error {
	var attr C.struct_ibv_qp_attr
	attr.qp_state = C.IBV_QPS_RTR
	attr.path_mtu = C.enum_ibv_mtu(remote.MTU)
	attr.dest_qp_num = C.uint32_t(remote.QPN)
	attr.rq_psn = C.uint32_t(remote.PSN)
	attr.max_dest_rd_atomic = maxDestRdAtomic
	attr.min_rnr_timer = minRnrTimer
	attr.ah_attr.dlid = C.uint16_t(remote.LID)
	attr.ah_attr.sl = 0
	attr.ah_attr.src_path_bits = 0
	attr.ah_attr.port_num = C.uint8_t(remote.Port)
	if remote.Global {
		// RoCE: route by GID instead of LID.
		attr.ah_attr.is_global = 1
		copy(unsafe.Slice((*byte)(unsafe.Pointer(&attr.ah_attr.grh.dgid)), 16), remote.GID[:])
		attr.ah_attr.grh.flow_label = 0
		attr.ah_attr.grh.hop_limit = 255
		attr.ah_attr.grh.sgid_index = C.uint8_t(remote.GIDIndex)
		attr.ah_attr.grh.traffic_class = 0
	}
	mask := C.int(C.IBV_QP_STATE | C.IBV_QP_AV | C.IBV_QP_PATH_MTU | C.IBV_QP_DEST_QPN |
		C.IBV_QP_RQ_PSN | C.IBV_QP_MAX_DEST_RD_ATOMIC | C.IBV_QP_MIN_RNR_TIMER)
	return q.modify(&attr, mask)
}

func (q *cQP) toRTS(localPSN uint32) error {
	var attr C.struct_ibv_qp_attr
	attr.qp_state = C.IBV_QPS_RTS
	attr.timeout = ackTimeout
	attr.retry_cnt = retryCount
	attr.rnr_retry = rnrRetry
	attr.sq_psn = C.uint32_t(localPSN)
	attr.max_rd_atomic = maxRdAtomic
	mask := C.int(C.IBV_QP_STATE | C.IBV_QP_TIMEOUT | C.IBV_QP_RETRY_CNT | C.IBV_QP_RNR_RETRY |
		C.IBV_QP_SQ_PSN | C.IBV_QP_MAX_QP_RD_ATOMIC)
	return q.modify(&attr, mask)
}

func (q *cQP) postSend(req *SendRequest) error {
	C.memset(unsafe.Pointer(q.sendWR), 0, C.size_t(unsafe.Sizeof(C.struct_ibv_send_wr{})))

	q.sendSGE.addr = C.uint64_t(uintptr(req.LocalAddr))
	q.sendSGE.length = C.uint32_t(req.Length)
	q.sendSGE.lkey = C.uint32_t(req.Region.LocalKey())

	q.sendWR.wr_id = C.uint64_t(req.WRID)
	q.sendWR.sg_list = q.sendSGE
	q.sendWR.num_sge = 1
	q.sendWR.next = nil

	flags := C.uint(C.IBV_SEND_SIGNALED)
	switch req.Op {
	case OpSend:
		q.sendWR.opcode = C.IBV_WR_SEND
	case OpWrite:
		q.sendWR.opcode = C.IBV_WR_RDMA_WRITE
	case OpRead:
		q.sendWR.opcode = C.IBV_WR_RDMA_READ
	default:
		return fmt.Errorf("unsupported opcode %s", req.Op)
	}
	if req.Op != OpRead && req.Length <= MaxInlineData {
		flags |= C.IBV_SEND_INLINE
	}
	q.sendWR.send_flags = flags

	if req.Op == OpWrite || req.Op == OpRead {
		// wr.rdma lives in a union; remote_addr at offset 0, rkey at 8.
		binary.LittleEndian.PutUint64(q.sendWR.wr[0:8], req.RemoteAddr)
		binary.LittleEndian.PutUint32(q.sendWR.wr[8:12], req.RemoteKey)
	}

	var bad *C.struct_ibv_send_wr
	if ret := C.ibv_post_send(q.qp, q.sendWR, &bad); ret != 0 {
		return fmt.Errorf("ibv_post_send failed: %s", syscall.Errno(ret))
	}
	return nil
}

func (q *cQP) postRecv(req *RecvRequest) error {
	C.memset(unsafe.Pointer(q.recvWR), 0, C.size_t(unsafe.Sizeof(C.struct_ibv_recv_wr{})))

	q.recvSGE.addr = C.uint64_t(uintptr(req.LocalAddr))
	q.recvSGE.length = C.uint32_t(req.Length)
	q.recvSGE.lkey = C.uint32_t(req.Region.LocalKey())

	q.recvWR.wr_id = C.uint64_t(req.WRID)
	q.recvWR.sg_list = q.recvSGE
	q.recvWR.num_sge = 1
	q.recvWR.next = nil

	var bad *C.struct_ibv_recv_wr
	if ret := C.ibv_post_recv(q.qp, q.recvWR, &bad); ret != 0 {
		return fmt.Errorf("ibv_post_recv failed: %s", syscall.Errno(ret))
	}
	return nil
}

func (q *cQP) destroy() error {
	if q.qp == nil {
		return nil
	}
	ret := C.ibv_destroy_qp(q.qp)
	q.qp = nil
	C.free(unsafe.Pointer(q.sendWR))
	C.free(unsafe.Pointer(q.recvWR))
	C.free(unsafe.Pointer(q.sendSGE))
	C.free(unsafe.Pointer(q.recvSGE))
	if ret != 0 {
		return fmt.Errorf("ibv_destroy_qp failed: %d", ret)
	}
	return nil
}

type cCQ struct {
	cq    *C.struct_ibv_cq
	wcBuf *C.struct_ibv_wc
	depth int
}

func (c *cCQ) poll(entries []Completion) (int, error) {
	want := len(entries)
	if want > c.depth {
		want = c.depth
	}
	n := C.ibv_poll_cq(c.cq, C.int(want), c.wcBuf)
	if n < 0 {
		return 0, fmt.Errorf("ibv_poll_cq failed: %d", n)
	}
	for i := 0; i < int(n); i++ {
		wc := (*C.struct_ibv_wc)(unsafe.Pointer(uintptr(unsafe.Pointer(c.wcBuf)) + uintptr(i)*unsafe.Sizeof(C.struct_ibv_wc{})))
		kind := CompletionSend
		if wc.opcode == C.IBV_WC_RECV || wc.opcode == C.IBV_WC_RECV_RDMA_WITH_IMM {
			kind = CompletionRecv
		}
		entries[i] = Completion{
			WRID:    uint64(wc.wr_id),
			Kind:    kind,
			Status:  CompletionStatus(wc.status),
			ByteLen: uint32(wc.byte_len),
			QPN:     uint32(wc.qp_num),
		}
	}
	return int(n), nil
}

func (c *cCQ) destroy() error {
	if c.cq == nil {
		return nil
	}
	ret := C.ibv_destroy_cq(c.cq)
	c.cq = nil
	C.free(unsafe.Pointer(c.wcBuf))
	if ret != 0 {
		return fmt.Errorf("ibv_destroy_cq failed: %d", ret)
	}
	return nil
}

type cMR struct {
	mr *C.struct_ibv_mr
}

func (m *cMR) localKey() uint32  { return uint32(m.mr.lkey) }
func (m *cMR) remoteKey() uint32 { return uint32(m.mr.rkey) }

func (m *cMR) deregister() error {
	if m.mr == nil {
		return nil
	}
	if ret := C.ibv_dereg_mr(m.mr); ret != 0 {
		return fmt.Errorf("ibv_dereg_mr failed: %d", ret)
	}
	m.mr = nil
	return nil
}
