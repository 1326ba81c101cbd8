package processor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/notify"
	"github.com/devsettings/cecsource-go/pkg/transport"
)

var audioPeer = transport.Peer{
	Address:         cec.AddrAudioSystem,
	PhysicalAddress: 0x2000,
	DeviceType:      cec.DeviceTypeAudioSystem,
	OSDName:         "Soundbar",
	VendorID:        cec.NewVendorID(0x00, 0x80, 0x45),
	Version:         cec.Version1_4,
	PowerStatus:     cec.PowerStatusOn,
}

func TestProbePopulatesDirectory(t *testing.T) {
	h := newHarness(t)
	h.bus.AddPeer(audioPeer)

	res := h.p.Probe(context.Background())
	h.bus.Sync()
	h.em.Flush()

	assert.Equal(t, []cec.LogicalAddress{cec.AddrAudioSystem}, res.Present)
	assert.Equal(t, []cec.LogicalAddress{cec.AddrAudioSystem}, res.Added)
	assert.Empty(t, res.Removed)

	// Every peer address but our own is pinged.
	pings := h.bus.Pings()
	assert.Len(t, pings, 13)
	assert.NotContains(t, pings, selfAddr)

	r, err := h.dir.Get(cec.AddrAudioSystem)
	require.NoError(t, err)
	assert.True(t, r.Present)
	assert.Equal(t, "Soundbar", r.OSDName)
	assert.Equal(t, cec.PhysicalAddress(0x2000), r.PhysicalAddress)
	assert.Equal(t, cec.DeviceTypeAudioSystem, r.DeviceType)
	assert.Equal(t, cec.NewVendorID(0x00, 0x80, 0x45), r.VendorID)
	assert.Equal(t, cec.PowerStatusOn, r.PowerStatus)
	assert.Equal(t, cec.Version1_4, r.CECVersion)
	assert.True(t, r.InfoReady)

	assert.Equal(t, 1, h.rec.Count(notify.KindDeviceAdded))
	assert.Equal(t, 0, h.rec.Count(notify.KindDeviceRemoved))

	var requests []cec.Message
	for _, f := range h.bus.Sent() {
		_, m, _ := cec.Decode(f.Data)
		requests = append(requests, m)
	}
	assert.Equal(t, giveInfo, requests)
}

func TestProbeEvictsMissingPeer(t *testing.T) {
	h := newHarness(t)
	h.bus.AddPeer(audioPeer)
	h.p.Probe(context.Background())
	h.bus.Sync()
	h.em.Flush()
	h.rec.Reset()

	h.bus.RemovePeer(cec.AddrAudioSystem)
	res := h.p.Probe(context.Background())
	h.em.Flush()

	assert.Equal(t, []cec.LogicalAddress{cec.AddrAudioSystem}, res.Removed)
	assert.Equal(t, []notify.Event{notify.DeviceRemoved(cec.AddrAudioSystem)}, h.rec.Events())

	r, _ := h.dir.Get(cec.AddrAudioSystem)
	assert.True(t, r.IsDefault())
	assert.Equal(t, "NA", r.OSDName)

	// A second miss does not report the removal again.
	h.rec.Reset()
	h.p.Probe(context.Background())
	h.em.Flush()
	assert.Empty(t, h.rec.Events())
}

func TestPingFailureEvictsPeerKnownOnlyByInfo(t *testing.T) {
	h := newHarness(t)
	h.receive(cec.AddrAudioSystem, cec.AddrBroadcast, cec.SetOSDName{Name: "Soundbar"})
	r, _ := h.dir.Get(cec.AddrAudioSystem)
	require.False(t, r.Present)
	require.True(t, r.InfoReady)
	h.rec.Reset()

	h.bus.SetFailure(cec.AddrAudioSystem, transport.ErrIO)
	res := h.p.Probe(context.Background())
	h.em.Flush()

	assert.Equal(t, []cec.LogicalAddress{cec.AddrAudioSystem}, res.Removed)
	assert.Equal(t, []notify.Event{notify.DeviceRemoved(cec.AddrAudioSystem)}, h.rec.Events())

	r, _ = h.dir.Get(cec.AddrAudioSystem)
	assert.True(t, r.IsDefault())
	assert.Equal(t, "NA", r.OSDName)
	assert.False(t, r.InfoReady)
}

func TestProbeToleratesFailures(t *testing.T) {
	h := newHarness(t)
	h.bus.AddPeer(audioPeer)
	h.bus.AddPeer(transport.Peer{Address: cec.AddrTuner1, OSDName: "Tuner"})
	h.bus.SetFailure(cec.AddrRecording1, transport.ErrIO)
	h.bus.SetFailure(cec.AddrRecording2, transport.ErrBus)

	var res ProbeResult
	assert.NotPanics(t, func() { res = h.p.Probe(context.Background()) })

	assert.ElementsMatch(t, []cec.LogicalAddress{cec.AddrTuner1, cec.AddrAudioSystem}, res.Present)
	assert.Len(t, h.bus.Pings(), 13)
}

func TestProbeStopsOnCancel(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := h.p.Probe(ctx)
	assert.Empty(t, res.Present)
	assert.Empty(t, h.bus.Pings())
}

func TestProbeLoop(t *testing.T) {
	h := newHarness(t)
	h.bus.AddPeer(audioPeer)

	loop := NewProbeLoop(h.p, time.Hour)
	loop.Start(context.Background())
	assert.True(t, loop.IsRunning())

	require.Eventually(t, func() bool { return loop.Stats().Runs >= 1 }, time.Second, 5*time.Millisecond)

	loop.Trigger()
	require.Eventually(t, func() bool { return loop.Stats().Runs >= 2 }, time.Second, 5*time.Millisecond)

	loop.Stop()
	assert.False(t, loop.IsRunning())
	loop.Stop()

	stats := loop.Stats()
	assert.False(t, stats.LastRun.IsZero())
	assert.Equal(t, []cec.LogicalAddress{cec.AddrAudioSystem}, stats.Last.Present)
}

func TestProbeLoopDefaultInterval(t *testing.T) {
	loop := NewProbeLoop(nil, 0)
	assert.Equal(t, DefaultProbeInterval, loop.interval)
}
