package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/devsettings/cecsource-go/pkg/cec"
)

// Peer is a simulated device on a Loopback bus. A responsive peer
// acknowledges frames addressed to it and answers the give-info requests.
type Peer struct {
	Address         cec.LogicalAddress
	PhysicalAddress cec.PhysicalAddress
	DeviceType      cec.DeviceType
	OSDName         string
	VendorID        cec.VendorID
	Version         cec.Version
	PowerStatus     cec.PowerStatus

	// Silent peers acknowledge but never reply.
	Silent bool
}

// SentFrame is one frame transmitted through a Loopback bus.
type SentFrame struct {
	To    cec.LogicalAddress
	Data  []byte
	Async bool
	Err   error
}

// Loopback is an in-memory Bus. Received frames are queued and delivered
// serially on one goroutine; Sync waits until the queue is empty.
type Loopback struct {
	mu   sync.Mutex
	idle *sync.Cond

	open      bool
	listeners []FrameListener
	peers     map[cec.LogicalAddress]*Peer
	failures  map[cec.LogicalAddress]error
	physical  cec.PhysicalAddress
	local     cec.LogicalAddress

	queue      [][]byte
	delivering bool
	wake       chan struct{}
	done       chan struct{}
	wg         sync.WaitGroup

	sent  []SentFrame
	pings []cec.LogicalAddress
}

// NewLoopback creates a closed loopback bus.
func NewLoopback() *Loopback {
	lb := &Loopback{
		peers:    make(map[cec.LogicalAddress]*Peer),
		failures: make(map[cec.LogicalAddress]error),
		physical: cec.InvalidPhysicalAddress,
		local:    cec.AddrUnregistered,
	}
	lb.idle = sync.NewCond(&lb.mu)
	return lb
}

// Open starts frame delivery.
func (lb *Loopback) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lb.mu.Lock()
	defer lb.mu.Unlock()
	if lb.open {
		return ErrAlreadyOpen
	}
	lb.open = true
	lb.wake = make(chan struct{}, 1)
	lb.done = make(chan struct{})
	lb.wg.Add(1)
	go lb.deliverLoop(lb.wake, lb.done)
	return nil
}

// Close stops frame delivery. Queued frames are discarded.
func (lb *Loopback) Close() error {
	lb.mu.Lock()
	if !lb.open {
		lb.mu.Unlock()
		return nil
	}
	lb.open = false
	close(lb.done)
	lb.queue = nil
	lb.idle.Broadcast()
	lb.mu.Unlock()

	lb.wg.Wait()
	return nil
}

// IsOpen reports whether the bus is open.
func (lb *Loopback) IsOpen() bool {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.open
}

// AddFrameListener registers a listener for received frames.
func (lb *Loopback) AddFrameListener(l FrameListener) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.listeners = append(lb.listeners, l)
}

// SendTo transmits a frame. Broadcasts always succeed; direct frames need a
// peer at the destination.
func (lb *Loopback) SendTo(ctx context.Context, to cec.LogicalAddress, frame []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return lb.transmit(to, frame, false)
}

// SendToAsync transmits a frame and discards the result.
func (lb *Loopback) SendToAsync(to cec.LogicalAddress, frame []byte) error {
	err := lb.transmit(to, frame, true)
	if errors.Is(err, ErrNotOpen) || errors.Is(err, ErrInvalidFrame) {
		return err
	}
	return nil
}

// Ping succeeds when a peer holds the destination address.
func (lb *Loopback) Ping(ctx context.Context, from, to cec.LogicalAddress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lb.mu.Lock()
	defer lb.mu.Unlock()
	if !lb.open {
		return ErrNotOpen
	}
	lb.pings = append(lb.pings, to)
	if err, ok := lb.failures[to]; ok {
		return err
	}
	if _, ok := lb.peers[to]; !ok {
		return fmt.Errorf("ping %d->%d: %w", from, to, ErrNoAck)
	}
	return nil
}

// Inject queues a frame as if received from the bus.
func (lb *Loopback) Inject(frame []byte) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.enqueueLocked(frame)
}

// InjectMessage encodes and injects a message.
func (lb *Loopback) InjectMessage(from, to cec.LogicalAddress, m cec.Message) {
	lb.Inject(cec.Encode(cec.Header{Source: from, Destination: to}, m))
}

// Sync waits until every queued frame, including replies generated while
// delivering, has been delivered. It must not be called from a listener.
func (lb *Loopback) Sync() {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	for lb.open && (len(lb.queue) > 0 || lb.delivering) {
		lb.idle.Wait()
	}
}

// AddPeer places a simulated device on the bus.
func (lb *Loopback) AddPeer(p Peer) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	cp := p
	lb.peers[p.Address] = &cp
}

// RemovePeer takes a simulated device off the bus.
func (lb *Loopback) RemovePeer(addr cec.LogicalAddress) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	delete(lb.peers, addr)
}

// SetFailure makes sends and pings to addr fail with err. A nil err clears
// the failure.
func (lb *Loopback) SetFailure(addr cec.LogicalAddress, err error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	if err == nil {
		delete(lb.failures, addr)
		return
	}
	lb.failures[addr] = err
}

// SetPhysicalAddress sets the address reported by PhysicalAddress.
func (lb *Loopback) SetPhysicalAddress(pa cec.PhysicalAddress) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.physical = pa
}

// PhysicalAddress returns the configured physical address.
func (lb *Loopback) PhysicalAddress() (cec.PhysicalAddress, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	if !lb.physical.IsValid() {
		return lb.physical, fmt.Errorf("physical address: %w", ErrIO)
	}
	return lb.physical, nil
}

// SetLogicalAddress records the address this device claimed.
func (lb *Loopback) SetLogicalAddress(addr cec.LogicalAddress) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.local = addr
	return nil
}

// LogicalAddress returns the address recorded by SetLogicalAddress.
func (lb *Loopback) LogicalAddress() cec.LogicalAddress {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.local
}

// Sent returns a copy of every transmitted frame.
func (lb *Loopback) Sent() []SentFrame {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	out := make([]SentFrame, len(lb.sent))
	copy(out, lb.sent)
	return out
}

// Pings returns the destinations of every ping.
func (lb *Loopback) Pings() []cec.LogicalAddress {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return append([]cec.LogicalAddress(nil), lb.pings...)
}

// ResetSent clears the transmit and ping records.
func (lb *Loopback) ResetSent() {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.sent = nil
	lb.pings = nil
}

func (lb *Loopback) transmit(to cec.LogicalAddress, frame []byte, async bool) error {
	if len(frame) == 0 || len(frame) > cec.MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrInvalidFrame, len(frame))
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()
	if !lb.open {
		return ErrNotOpen
	}

	err := lb.ackLocked(to)
	lb.sent = append(lb.sent, SentFrame{
		To:    to,
		Data:  append([]byte(nil), frame...),
		Async: async,
		Err:   err,
	})
	if err != nil {
		return err
	}

	if peer, ok := lb.peers[to]; ok && !peer.Silent {
		if reply := peer.reply(frame); reply != nil {
			lb.enqueueLocked(reply)
		}
	}
	return nil
}

func (lb *Loopback) ackLocked(to cec.LogicalAddress) error {
	if err, ok := lb.failures[to]; ok {
		return err
	}
	if to == cec.AddrBroadcast {
		return nil
	}
	if _, ok := lb.peers[to]; !ok {
		return fmt.Errorf("send to %d: %w", to, ErrNoAck)
	}
	return nil
}

func (lb *Loopback) enqueueLocked(frame []byte) {
	if !lb.open {
		return
	}
	lb.queue = append(lb.queue, append([]byte(nil), frame...))
	select {
	case lb.wake <- struct{}{}:
	default:
	}
}

func (lb *Loopback) deliverLoop(wake <-chan struct{}, done <-chan struct{}) {
	defer lb.wg.Done()
	for {
		select {
		case <-done:
			return
		case <-wake:
		}

		for {
			lb.mu.Lock()
			if !lb.open || len(lb.queue) == 0 {
				lb.delivering = false
				lb.idle.Broadcast()
				lb.mu.Unlock()
				break
			}
			frame := lb.queue[0]
			lb.queue = lb.queue[1:]
			lb.delivering = true
			listeners := append([]FrameListener(nil), lb.listeners...)
			lb.mu.Unlock()

			for _, l := range listeners {
				l(frame)
			}
		}
	}
}

// reply builds the peer's answer to a give-info request, or nil.
func (p *Peer) reply(frame []byte) []byte {
	h, msg, err := cec.Decode(frame)
	if err != nil || h.Destination != p.Address {
		return nil
	}
	direct := cec.Header{Source: p.Address, Destination: h.Source}
	broadcast := cec.Header{Source: p.Address, Destination: cec.AddrBroadcast}

	switch msg.(type) {
	case cec.GivePhysicalAddress:
		return cec.Encode(broadcast, cec.ReportPhysicalAddress{PhysicalAddress: p.PhysicalAddress, DeviceType: p.DeviceType})
	case cec.GiveOSDName:
		return cec.Encode(direct, cec.SetOSDName{Name: p.OSDName})
	case cec.GiveDeviceVendorID:
		return cec.Encode(broadcast, cec.DeviceVendorID{VendorID: p.VendorID})
	case cec.GetCECVersion:
		return cec.Encode(direct, cec.CECVersion{Version: p.Version})
	case cec.GiveDevicePowerStatus:
		return cec.Encode(direct, cec.ReportPowerStatus{Status: p.PowerStatus})
	default:
		return nil
	}
}

// Compile-time interface satisfaction checks.
var (
	_ Bus                   = (*Loopback)(nil)
	_ PhysicalAddressReader = (*Loopback)(nil)
	_ LogicalAddressSetter  = (*Loopback)(nil)
)
