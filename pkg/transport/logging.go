package transport

import (
	"context"
	"sync"
	"time"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/log"
)

// LoggingBus wraps a Bus and records every frame and ping to a capture
// logger. Optional interfaces of the wrapped bus are forwarded.
type LoggingBus struct {
	Bus

	mu        sync.RWMutex
	logger    log.Logger
	sessionID string
	local     cec.LogicalAddress
	physical  cec.PhysicalAddress
}

// NewLoggingBus wraps bus. A nil logger disables capture.
func NewLoggingBus(bus Bus, logger log.Logger) *LoggingBus {
	return &LoggingBus{
		Bus:      bus,
		logger:   logger,
		local:    cec.AddrUnregistered,
		physical: cec.InvalidPhysicalAddress,
	}
}

// SetLogger configures capture. Pass nil to disable it.
func (b *LoggingBus) SetLogger(logger log.Logger, sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger = logger
	b.sessionID = sessionID
}

// SetIdentity records the addresses stamped on captured events.
func (b *LoggingBus) SetIdentity(local cec.LogicalAddress, physical cec.PhysicalAddress) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.local = local
	b.physical = physical
}

// SendTo transmits and records the outcome.
func (b *LoggingBus) SendTo(ctx context.Context, to cec.LogicalAddress, frame []byte) error {
	err := b.Bus.SendTo(ctx, to, frame)
	b.logFrame(frame, log.DirectionOut, TxResultOf(err))
	return err
}

// SendToAsync queues and records the frame as queued.
func (b *LoggingBus) SendToAsync(to cec.LogicalAddress, frame []byte) error {
	err := b.Bus.SendToAsync(to, frame)
	result := log.TxQueued
	if err != nil {
		result = log.TxFailed
	}
	b.logFrame(frame, log.DirectionOut, result)
	return err
}

// Ping polls and records whether the target acknowledged.
func (b *LoggingBus) Ping(ctx context.Context, from, to cec.LogicalAddress) error {
	err := b.Bus.Ping(ctx, from, to)
	if logger, ev := b.event(log.DirectionOut, log.CategoryControl); logger != nil {
		ev.Ping = &log.PingEvent{Target: uint8(to), Acked: err == nil}
		logger.Log(ev)
	}
	return err
}

// AddFrameListener registers l behind a capture hook.
func (b *LoggingBus) AddFrameListener(l FrameListener) {
	b.Bus.AddFrameListener(func(frame []byte) {
		b.logFrame(frame, log.DirectionIn, log.TxNone)
		l(frame)
	})
}

// PhysicalAddress forwards to the wrapped bus when it supports it.
func (b *LoggingBus) PhysicalAddress() (cec.PhysicalAddress, error) {
	if r, ok := b.Bus.(PhysicalAddressReader); ok {
		return r.PhysicalAddress()
	}
	return cec.InvalidPhysicalAddress, ErrNotSupported
}

// ClaimLogicalAddress forwards to the wrapped bus when it supports it.
func (b *LoggingBus) ClaimLogicalAddress(ctx context.Context, t cec.DeviceType, candidates []cec.LogicalAddress) (cec.LogicalAddress, error) {
	if c, ok := b.Bus.(AddressClaimer); ok {
		return c.ClaimLogicalAddress(ctx, t, candidates)
	}
	return cec.AddrUnregistered, ErrNotSupported
}

// SetLogicalAddress forwards to the wrapped bus when it supports it.
func (b *LoggingBus) SetLogicalAddress(addr cec.LogicalAddress) error {
	if s, ok := b.Bus.(LogicalAddressSetter); ok {
		return s.SetLogicalAddress(addr)
	}
	return nil
}

// Unwrap returns the wrapped bus.
func (b *LoggingBus) Unwrap() Bus {
	return b.Bus
}

func (b *LoggingBus) logFrame(frame []byte, dir log.Direction, result log.TxResult) {
	logger, ev := b.event(dir, log.CategoryMessage)
	if logger == nil || len(frame) == 0 {
		return
	}
	h := cec.ParseHeader(frame[0])
	fe := &log.FrameEvent{
		Data:        append([]byte(nil), frame...),
		Source:      uint8(h.Source),
		Destination: uint8(h.Destination),
		Result:      result,
	}
	if len(frame) > 1 {
		op := frame[1]
		fe.OpCode = &op
	}
	ev.Frame = fe
	logger.Log(ev)
}

// event returns the logger and a stamped event, or a nil logger when
// capture is off.
func (b *LoggingBus) event(dir log.Direction, cat log.Category) (log.Logger, log.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.logger == nil {
		return nil, log.Event{}
	}
	ev := log.Event{
		Timestamp:    time.Now(),
		SessionID:    b.sessionID,
		Direction:    dir,
		Layer:        log.LayerBus,
		Category:     cat,
		LocalAddress: uint8(b.local),
	}
	if b.physical != cec.InvalidPhysicalAddress {
		ev.PhysicalAddress = b.physical.String()
	}
	return b.logger, ev
}

// Compile-time interface satisfaction checks.
var (
	_ Bus                   = (*LoggingBus)(nil)
	_ PhysicalAddressReader = (*LoggingBus)(nil)
	_ AddressClaimer        = (*LoggingBus)(nil)
	_ LogicalAddressSetter  = (*LoggingBus)(nil)
)
