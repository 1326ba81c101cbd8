//go:build linux

package linuxcec

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/transport"
)

// DefaultDevice is the first CEC adapter.
const DefaultDevice = "/dev/cec0"

// receiveTimeoutMs bounds one CEC_RECEIVE call so Close is noticed.
const receiveTimeoutMs = 500

// Config configures an Adapter.
type Config struct {
	// Device is the character device path. Empty means DefaultDevice.
	Device string

	// OSDName and VendorID are announced to the kernel when claiming a
	// logical address.
	OSDName  string
	VendorID cec.VendorID

	// OnLost is called once from the receive goroutine when the device
	// disappears. It must not call Close synchronously.
	OnLost func(err error)

	Logger *slog.Logger
}

// Adapter is a transport.Bus backed by a kernel CEC device.
type Adapter struct {
	cfg    Config
	logger *slog.Logger

	mu        sync.Mutex
	fd        int
	open      bool
	listeners []transport.FrameListener

	async chan asyncFrame
	done  chan struct{}
	wg    sync.WaitGroup
}

type asyncFrame struct {
	to    cec.LogicalAddress
	frame []byte
}

// New creates a closed adapter.
func New(cfg Config) *Adapter {
	if cfg.Device == "" {
		cfg.Device = DefaultDevice
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{cfg: cfg, logger: logger, fd: -1}
}

// Open opens the device and starts the receive and async transmit loops.
func (a *Adapter) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.open {
		return transport.ErrAlreadyOpen
	}

	fd, err := unix.Open(a.cfg.Device, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w: %v", a.cfg.Device, transport.ErrIO, err)
	}
	mode := uint32(modeInitiator | modeFollowerPassthru)
	if err := ioctl(fd, ioctlSetMode, unsafe.Pointer(&mode)); err != nil {
		_ = unix.Close(fd)
		return fmt.Errorf("set mode: %w: %v", transport.ErrIO, err)
	}

	a.fd = fd
	a.open = true
	a.async = make(chan asyncFrame, 32)
	a.done = make(chan struct{})
	a.wg.Add(2)
	go a.receiveLoop(fd, a.done)
	go a.transmitLoop(a.async, a.done)

	a.logger.Info("CEC adapter opened", "device", a.cfg.Device)
	return nil
}

// Close stops both loops and closes the device.
func (a *Adapter) Close() error {
	a.mu.Lock()
	if !a.open {
		a.mu.Unlock()
		return nil
	}
	a.open = false
	close(a.done)
	fd := a.fd
	a.fd = -1
	a.mu.Unlock()

	a.wg.Wait()
	if err := unix.Close(fd); err != nil {
		return fmt.Errorf("close %s: %w", a.cfg.Device, err)
	}
	return nil
}

// AddFrameListener registers a listener for received frames.
func (a *Adapter) AddFrameListener(l transport.FrameListener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, l)
}

// SendTo transmits a frame and waits for the transmit status.
func (a *Adapter) SendTo(ctx context.Context, _ cec.LogicalAddress, frame []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := newMsg(frame)
	if err != nil {
		return err
	}
	fd, err := a.currentFD()
	if err != nil {
		return err
	}
	if err := ioctl(fd, ioctlTransmit, unsafe.Pointer(&msg)); err != nil {
		if errors.Is(err, unix.ENONET) {
			return fmt.Errorf("transmit: %w: no logical address", transport.ErrBus)
		}
		return fmt.Errorf("transmit: %w: %v", transport.ErrIO, err)
	}
	return txError(msg.TxStatus)
}

// SendToAsync queues a frame on the transmit goroutine.
func (a *Adapter) SendToAsync(to cec.LogicalAddress, frame []byte) error {
	if _, err := newMsg(frame); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.open {
		return transport.ErrNotOpen
	}
	select {
	case a.async <- asyncFrame{to: to, frame: append([]byte(nil), frame...)}:
		return nil
	default:
		return fmt.Errorf("transmit queue full: %w", transport.ErrBus)
	}
}

// Ping transmits a polling message.
func (a *Adapter) Ping(ctx context.Context, from, to cec.LogicalAddress) error {
	h := cec.Header{Source: from, Destination: to}
	return a.SendTo(ctx, to, []byte{h.Byte()})
}

// PhysicalAddress returns the physical address the kernel read from EDID.
func (a *Adapter) PhysicalAddress() (cec.PhysicalAddress, error) {
	fd, err := a.currentFD()
	if err != nil {
		return cec.InvalidPhysicalAddress, err
	}
	var pa uint16
	if err := ioctl(fd, ioctlAdapGetPhysAddr, unsafe.Pointer(&pa)); err != nil {
		return cec.InvalidPhysicalAddress, fmt.Errorf("get physical address: %w: %v", transport.ErrIO, err)
	}
	return cec.PhysicalAddress(pa), nil
}

// ClaimLogicalAddress asks the kernel to claim a logical address of type
// t. The kernel picks from its own candidate list for the type; candidates
// only bound the result.
func (a *Adapter) ClaimLogicalAddress(ctx context.Context, t cec.DeviceType, candidates []cec.LogicalAddress) (cec.LogicalAddress, error) {
	if err := ctx.Err(); err != nil {
		return cec.AddrUnregistered, err
	}
	fd, err := a.currentFD()
	if err != nil {
		return cec.AddrUnregistered, err
	}

	// Clear any previous claim first.
	var reset cecLogAddrs
	if err := ioctl(fd, ioctlAdapSetLogAddrs, unsafe.Pointer(&reset)); err != nil {
		return cec.AddrUnregistered, fmt.Errorf("clear logical addresses: %w: %v", transport.ErrIO, err)
	}

	la := newLogAddrs(t, a.cfg.OSDName, a.cfg.VendorID)
	if err := ioctl(fd, ioctlAdapSetLogAddrs, unsafe.Pointer(&la)); err != nil {
		return cec.AddrUnregistered, fmt.Errorf("claim logical address: %w: %v", transport.ErrIO, err)
	}
	if err := ioctl(fd, ioctlAdapGetLogAddrs, unsafe.Pointer(&la)); err != nil {
		return cec.AddrUnregistered, fmt.Errorf("get logical addresses: %w: %v", transport.ErrIO, err)
	}

	claimed := la.LogAddr[0]
	if claimed == logAddrInvalid {
		return cec.AddrUnregistered, nil
	}
	addr := cec.LogicalAddress(claimed)
	for _, c := range candidates {
		if c == addr {
			return addr, nil
		}
	}
	a.logger.Warn("kernel claimed address outside candidates", "address", addr)
	return addr, nil
}

func (a *Adapter) currentFD() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.open {
		return -1, transport.ErrNotOpen
	}
	return a.fd, nil
}

func (a *Adapter) receiveLoop(fd int, done <-chan struct{}) {
	defer a.wg.Done()
	for {
		select {
		case <-done:
			return
		default:
		}

		msg := cecMsg{Timeout: receiveTimeoutMs}
		err := ioctl(fd, ioctlReceive, unsafe.Pointer(&msg))
		switch {
		case err == nil:
		case errors.Is(err, unix.ETIMEDOUT), errors.Is(err, unix.EAGAIN):
			continue
		case errors.Is(err, unix.ENODEV), errors.Is(err, unix.EBADF):
			a.logger.Error("CEC adapter lost", "device", a.cfg.Device, "error", err)
			if a.cfg.OnLost != nil {
				a.cfg.OnLost(fmt.Errorf("receive: %w: %v", transport.ErrIO, err))
			}
			return
		default:
			a.logger.Warn("CEC receive failed", "error", err)
			continue
		}

		frame := msg.frame()
		a.mu.Lock()
		listeners := append([]transport.FrameListener(nil), a.listeners...)
		a.mu.Unlock()
		for _, l := range listeners {
			l(frame)
		}
	}
}

func (a *Adapter) transmitLoop(queue <-chan asyncFrame, done <-chan struct{}) {
	defer a.wg.Done()
	for {
		select {
		case <-done:
			return
		case f := <-queue:
			if err := a.SendTo(context.Background(), f.to, f.frame); err != nil {
				a.logger.Debug("async transmit failed", "to", f.to, "error", err)
			}
		}
	}
}

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
		switch errno {
		case 0:
			return nil
		case unix.EINTR:
			continue
		default:
			return errno
		}
	}
}

// Compile-time interface satisfaction checks.
var (
	_ transport.Bus                   = (*Adapter)(nil)
	_ transport.PhysicalAddressReader = (*Adapter)(nil)
	_ transport.AddressClaimer        = (*Adapter)(nil)
)
