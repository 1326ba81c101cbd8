package transport_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/log"
	"github.com/devsettings/cecsource-go/pkg/transport"
	"github.com/devsettings/cecsource-go/pkg/transport/mocks"
)

type captureLog struct {
	mu     sync.Mutex
	events []log.Event
}

func (c *captureLog) Log(e log.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *captureLog) all() []log.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]log.Event(nil), c.events...)
}

func TestLoggingBusSend(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		sendErr error
		want    log.TxResult
	}{
		{"Ack", nil, log.TxAck},
		{"NoAck", fmt.Errorf("send: %w", transport.ErrNoAck), log.TxNoAck},
		{"IOError", transport.ErrIO, log.TxFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := mocks.NewMockBus(t)
			frame := []byte{0x40, 0x9E, 0x05}
			bus.EXPECT().SendTo(mock.Anything, cec.AddrTV, frame).Return(tt.sendErr)

			capture := &captureLog{}
			lb := transport.NewLoggingBus(bus, nil)
			lb.SetLogger(capture, "session-1")
			lb.SetIdentity(cec.AddrPlayback1, 0x1000)

			err := lb.SendTo(ctx, cec.AddrTV, frame)
			assert.Equal(t, tt.sendErr, err)

			events := capture.all()
			require.Len(t, events, 1)
			ev := events[0]
			assert.Equal(t, "session-1", ev.SessionID)
			assert.Equal(t, log.DirectionOut, ev.Direction)
			assert.Equal(t, log.LayerBus, ev.Layer)
			assert.Equal(t, uint8(4), ev.LocalAddress)
			assert.Equal(t, "1.0.0.0", ev.PhysicalAddress)
			require.NotNil(t, ev.Frame)
			assert.Equal(t, frame, ev.Frame.Data)
			assert.Equal(t, uint8(4), ev.Frame.Source)
			assert.Equal(t, uint8(0), ev.Frame.Destination)
			require.NotNil(t, ev.Frame.OpCode)
			assert.Equal(t, uint8(0x9E), *ev.Frame.OpCode)
			assert.Equal(t, tt.want, ev.Frame.Result)
		})
	}
}

func TestLoggingBusAsyncAndPing(t *testing.T) {
	ctx := context.Background()
	bus := mocks.NewMockBus(t)
	bus.EXPECT().SendToAsync(cec.AddrBroadcast, []byte{0x4F}).Return(nil)
	bus.EXPECT().Ping(mock.Anything, cec.AddrPlayback1, cec.AddrAudioSystem).Return(transport.ErrNoAck)

	capture := &captureLog{}
	lb := transport.NewLoggingBus(bus, capture)

	require.NoError(t, lb.SendToAsync(cec.AddrBroadcast, []byte{0x4F}))
	assert.ErrorIs(t, lb.Ping(ctx, cec.AddrPlayback1, cec.AddrAudioSystem), transport.ErrNoAck)

	events := capture.all()
	require.Len(t, events, 2)

	assert.Equal(t, log.TxQueued, events[0].Frame.Result)
	assert.Nil(t, events[0].Frame.OpCode, "polling frame has no opcode")
	assert.Empty(t, events[0].PhysicalAddress)

	require.NotNil(t, events[1].Ping)
	assert.Equal(t, log.CategoryControl, events[1].Category)
	assert.Equal(t, uint8(5), events[1].Ping.Target)
	assert.False(t, events[1].Ping.Acked)
}

func TestLoggingBusReceive(t *testing.T) {
	bus := mocks.NewMockBus(t)
	var registered transport.FrameListener
	bus.EXPECT().AddFrameListener(mock.Anything).Run(func(l transport.FrameListener) {
		registered = l
	}).Return()

	capture := &captureLog{}
	lb := transport.NewLoggingBus(bus, capture)

	var got []byte
	lb.AddFrameListener(func(frame []byte) { got = frame })
	require.NotNil(t, registered)

	registered([]byte{0x0F, 0x36})

	assert.Equal(t, []byte{0x0F, 0x36}, got)
	events := capture.all()
	require.Len(t, events, 1)
	assert.Equal(t, log.DirectionIn, events[0].Direction)
	assert.Equal(t, log.TxNone, events[0].Frame.Result)
}

func TestLoggingBusCaptureDisabled(t *testing.T) {
	bus := mocks.NewMockBus(t)
	bus.EXPECT().SendTo(mock.Anything, cec.AddrTV, mock.Anything).Return(nil)

	lb := transport.NewLoggingBus(bus, nil)
	assert.NoError(t, lb.SendTo(context.Background(), cec.AddrTV, []byte{0x40, 0x04}))
}

func TestLoggingBusOptionalInterfaces(t *testing.T) {
	t.Run("Unsupported", func(t *testing.T) {
		lb := transport.NewLoggingBus(mocks.NewMockBus(t), nil)

		_, err := lb.PhysicalAddress()
		assert.ErrorIs(t, err, transport.ErrNotSupported)

		addr, err := lb.ClaimLogicalAddress(context.Background(), cec.DeviceTypePlayback, cec.PlaybackAddresses)
		assert.ErrorIs(t, err, transport.ErrNotSupported)
		assert.Equal(t, cec.AddrUnregistered, addr)

		assert.NoError(t, lb.SetLogicalAddress(cec.AddrPlayback1))
	})

	t.Run("Forwarded", func(t *testing.T) {
		loop := transport.NewLoopback()
		loop.SetPhysicalAddress(0x3100)
		lb := transport.NewLoggingBus(loop, nil)

		pa, err := lb.PhysicalAddress()
		require.NoError(t, err)
		assert.Equal(t, cec.PhysicalAddress(0x3100), pa)

		require.NoError(t, lb.SetLogicalAddress(cec.AddrPlayback3))
		assert.Equal(t, cec.AddrPlayback3, loop.LogicalAddress())
		assert.Same(t, loop, lb.Unwrap())
	})
}

func TestIsSendFailure(t *testing.T) {
	assert.True(t, transport.IsSendFailure(fmt.Errorf("x: %w", transport.ErrNoAck)))
	assert.True(t, transport.IsSendFailure(transport.ErrIO))
	assert.True(t, transport.IsSendFailure(transport.ErrBus))
	assert.True(t, transport.IsSendFailure(transport.ErrNotOpen))
	assert.False(t, transport.IsSendFailure(transport.ErrInvalidFrame))
	assert.False(t, transport.IsSendFailure(nil))

	assert.Equal(t, log.TxAck, transport.TxResultOf(nil))
	assert.Equal(t, log.TxNoAck, transport.TxResultOf(transport.ErrNoAck))
	assert.Equal(t, log.TxFailed, transport.TxResultOf(transport.ErrBus))
}
