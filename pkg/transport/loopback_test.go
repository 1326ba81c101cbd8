package transport

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsettings/cecsource-go/pkg/cec"
)

func openLoopback(t *testing.T) *Loopback {
	t.Helper()
	lb := NewLoopback()
	require.NoError(t, lb.Open(context.Background()))
	t.Cleanup(func() { _ = lb.Close() })
	return lb
}

type frameCollector struct {
	mu     sync.Mutex
	frames [][]byte
}

func (c *frameCollector) listen(frame []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, append([]byte(nil), frame...))
}

func (c *frameCollector) all() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.frames...)
}

var tvPeer = Peer{
	Address:         cec.AddrTV,
	PhysicalAddress: 0x0000,
	DeviceType:      cec.DeviceTypeTV,
	OSDName:         "TV",
	VendorID:        cec.VendorIDLG,
	Version:         cec.Version1_4,
	PowerStatus:     cec.PowerStatusOn,
}

func TestLoopbackLifecycle(t *testing.T) {
	lb := NewLoopback()
	ctx := context.Background()

	t.Run("SendBeforeOpen", func(t *testing.T) {
		err := lb.SendTo(ctx, cec.AddrBroadcast, []byte{0x4F})
		assert.ErrorIs(t, err, ErrNotOpen)
		assert.ErrorIs(t, lb.Ping(ctx, 4, 0), ErrNotOpen)
	})

	t.Run("OpenTwice", func(t *testing.T) {
		require.NoError(t, lb.Open(ctx))
		assert.ErrorIs(t, lb.Open(ctx), ErrAlreadyOpen)
		assert.True(t, lb.IsOpen())
	})

	t.Run("CloseIdempotent", func(t *testing.T) {
		assert.NoError(t, lb.Close())
		assert.NoError(t, lb.Close())
		assert.False(t, lb.IsOpen())
	})
}

func TestLoopbackSend(t *testing.T) {
	ctx := context.Background()

	t.Run("BroadcastAlwaysAcked", func(t *testing.T) {
		lb := openLoopback(t)
		assert.NoError(t, lb.SendTo(ctx, cec.AddrBroadcast, []byte{0x4F, 0x85}))
	})

	t.Run("MissingPeerNotAcked", func(t *testing.T) {
		lb := openLoopback(t)
		err := lb.SendTo(ctx, cec.AddrPlayback2, []byte{0x48, 0x46})
		assert.ErrorIs(t, err, ErrNoAck)
		assert.True(t, IsSendFailure(err))

		sent := lb.Sent()
		require.Len(t, sent, 1)
		assert.ErrorIs(t, sent[0].Err, ErrNoAck)
	})

	t.Run("InvalidFrame", func(t *testing.T) {
		lb := openLoopback(t)
		assert.ErrorIs(t, lb.SendTo(ctx, 0, nil), ErrInvalidFrame)
		assert.ErrorIs(t, lb.SendToAsync(0, make([]byte, 17)), ErrInvalidFrame)
	})

	t.Run("AsyncSwallowsNoAck", func(t *testing.T) {
		lb := openLoopback(t)
		assert.NoError(t, lb.SendToAsync(cec.AddrTuner1, []byte{0x43, 0x8F}))
		sent := lb.Sent()
		require.Len(t, sent, 1)
		assert.True(t, sent[0].Async)
	})

	t.Run("InjectedFailure", func(t *testing.T) {
		lb := openLoopback(t)
		lb.AddPeer(tvPeer)
		lb.SetFailure(cec.AddrTV, ErrIO)
		assert.ErrorIs(t, lb.SendTo(ctx, cec.AddrTV, []byte{0x40, 0x04}), ErrIO)
		assert.ErrorIs(t, lb.Ping(ctx, 4, cec.AddrTV), ErrIO)

		lb.SetFailure(cec.AddrTV, nil)
		assert.NoError(t, lb.Ping(ctx, 4, cec.AddrTV))
	})

	t.Run("CanceledContext", func(t *testing.T) {
		lb := openLoopback(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, lb.SendTo(cctx, cec.AddrBroadcast, []byte{0x4F}), context.Canceled)
	})
}

func TestLoopbackPeerReplies(t *testing.T) {
	ctx := context.Background()
	me := cec.AddrPlayback1

	tests := []struct {
		name    string
		request cec.Message
		want    []byte
	}{
		{"GivePhysicalAddress", cec.GivePhysicalAddress{}, []byte{0x0F, 0x84, 0x00, 0x00, 0x00}},
		{"GiveOSDName", cec.GiveOSDName{}, []byte{0x04, 0x47, 'T', 'V'}},
		{"GiveDeviceVendorID", cec.GiveDeviceVendorID{}, []byte{0x0F, 0x87, 0x00, 0xE0, 0x91}},
		{"GetCECVersion", cec.GetCECVersion{}, []byte{0x04, 0x9E, 0x05}},
		{"GiveDevicePowerStatus", cec.GiveDevicePowerStatus{}, []byte{0x04, 0x90, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lb := openLoopback(t)
			lb.AddPeer(tvPeer)
			var c frameCollector
			lb.AddFrameListener(c.listen)

			frame := cec.Encode(cec.Header{Source: me, Destination: cec.AddrTV}, tt.request)
			require.NoError(t, lb.SendTo(ctx, cec.AddrTV, frame))
			lb.Sync()

			got := c.all()
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}

	t.Run("SilentPeer", func(t *testing.T) {
		lb := openLoopback(t)
		silent := tvPeer
		silent.Silent = true
		lb.AddPeer(silent)
		var c frameCollector
		lb.AddFrameListener(c.listen)

		frame := cec.Encode(cec.Header{Source: me, Destination: cec.AddrTV}, cec.GiveOSDName{})
		require.NoError(t, lb.SendTo(ctx, cec.AddrTV, frame))
		lb.Sync()
		assert.Empty(t, c.all())
	})
}

func TestLoopbackDelivery(t *testing.T) {
	t.Run("InOrder", func(t *testing.T) {
		lb := openLoopback(t)
		var c frameCollector
		lb.AddFrameListener(c.listen)

		for i := 0; i < 10; i++ {
			lb.Inject([]byte{0x0F, 0x82, 0x10, byte(i)})
		}
		lb.Sync()

		got := c.all()
		require.Len(t, got, 10)
		for i, f := range got {
			assert.Equal(t, byte(i), f[3])
		}
	})

	t.Run("SyncCoversCascade", func(t *testing.T) {
		lb := openLoopback(t)
		lb.AddPeer(tvPeer)
		var c frameCollector
		lb.AddFrameListener(c.listen)
		lb.AddFrameListener(func(frame []byte) {
			h, msg, err := cec.Decode(frame)
			if err != nil || h.Source != cec.AddrTV {
				return
			}
			if _, ok := msg.(cec.ReportPowerStatus); ok {
				return
			}
			req := cec.Encode(cec.Header{Source: 4, Destination: 0}, cec.GiveDevicePowerStatus{})
			_ = lb.SendTo(context.Background(), cec.AddrTV, req)
		})

		lb.InjectMessage(cec.AddrTV, cec.AddrBroadcast, cec.ActiveSource{PhysicalAddress: 0})
		lb.Sync()

		got := c.all()
		require.Len(t, got, 2)
		assert.Equal(t, byte(cec.OpReportPowerStatus), got[1][1])
	})

	t.Run("DroppedWhileClosed", func(t *testing.T) {
		lb := NewLoopback()
		var c frameCollector
		lb.AddFrameListener(c.listen)
		lb.Inject([]byte{0x0F})
		require.NoError(t, lb.Open(context.Background()))
		lb.Sync()
		assert.Empty(t, c.all())
		require.NoError(t, lb.Close())
	})
}

func TestLoopbackAddresses(t *testing.T) {
	lb := NewLoopback()

	_, err := lb.PhysicalAddress()
	assert.ErrorIs(t, err, ErrIO)

	lb.SetPhysicalAddress(0x2000)
	pa, err := lb.PhysicalAddress()
	require.NoError(t, err)
	assert.Equal(t, cec.PhysicalAddress(0x2000), pa)

	assert.Equal(t, cec.AddrUnregistered, lb.LogicalAddress())
	require.NoError(t, lb.SetLogicalAddress(cec.AddrPlayback2))
	assert.Equal(t, cec.AddrPlayback2, lb.LogicalAddress())
}

func TestPingRecordsTargets(t *testing.T) {
	lb := openLoopback(t)
	lb.AddPeer(Peer{Address: cec.AddrAudioSystem})
	ctx := context.Background()

	assert.NoError(t, lb.Ping(ctx, 4, cec.AddrAudioSystem))
	err := lb.Ping(ctx, 4, cec.AddrTuner1)
	assert.True(t, errors.Is(err, ErrNoAck))
	assert.Equal(t, []cec.LogicalAddress{cec.AddrAudioSystem, cec.AddrTuner1}, lb.Pings())

	lb.ResetSent()
	assert.Empty(t, lb.Pings())
	assert.Empty(t, lb.Sent())
}
