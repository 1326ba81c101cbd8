package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/connection"
	"github.com/devsettings/cecsource-go/pkg/log"
	"github.com/devsettings/cecsource-go/pkg/notify"
	"github.com/devsettings/cecsource-go/pkg/persistence"
	"github.com/devsettings/cecsource-go/pkg/transport"
	"github.com/devsettings/cecsource-go/pkg/transport/mocks"
)

const busPA = cec.PhysicalAddress(0x1000)

var (
	tvPeer = transport.Peer{
		Address:     cec.AddrTV,
		DeviceType:  cec.DeviceTypeTV,
		OSDName:     "TV",
		Version:     cec.Version1_4,
		PowerStatus: cec.PowerStatusOn,
	}
	soundbarPeer = transport.Peer{
		Address:         cec.AddrAudioSystem,
		PhysicalAddress: 0x2000,
		DeviceType:      cec.DeviceTypeAudioSystem,
		OSDName:         "Soundbar",
		VendorID:        cec.NewVendorID(0x00, 0x80, 0x45),
		Version:         cec.Version1_4,
		PowerStatus:     cec.PowerStatusOn,
	}
)

// edidSource is an edid.Reader whose contents can change between hotplugs.
type edidSource struct {
	mu   sync.Mutex
	data []byte
}

func (e *edidSource) ReadEDID() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.data) == 0 {
		return nil, errors.New("no sink")
	}
	return append([]byte(nil), e.data...), nil
}

func (e *edidSource) set(data []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.data = data
}

func manufacturerEDID(b8, b9 byte) []byte {
	b := make([]byte, 128)
	b[8], b[9] = b8, b9
	return b
}

// captureLog records capture events.
type captureLog struct {
	mu     sync.Mutex
	events []log.Event
}

func (c *captureLog) Log(e log.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *captureLog) states(layer log.Layer) []log.StateChangeEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []log.StateChangeEvent
	for _, e := range c.events {
		if e.Layer == layer && e.StateChange != nil {
			out = append(out, *e.StateChange)
		}
	}
	return out
}

type testEnv struct {
	bus     *transport.Loopback
	edid    *edidSource
	rec     *notify.Recorder
	capture *captureLog
	svc     *SourceService
	path    string
}

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.SettingsPath = filepath.Join(t.TempDir(), "cecData_2.json")
	cfg.ProbeInterval = time.Hour
	cfg.OpenBackoff = connection.BackoffConfig{Initial: time.Millisecond, Max: 5 * time.Millisecond}
	return cfg
}

func newTestEnv(t *testing.T, cfg Config, peers ...transport.Peer) *testEnv {
	t.Helper()

	env := &testEnv{
		bus:     transport.NewLoopback(),
		edid:    &edidSource{},
		rec:     &notify.Recorder{},
		capture: &captureLog{},
		path:    cfg.SettingsPath,
	}
	env.bus.SetPhysicalAddress(busPA)
	for _, p := range peers {
		env.bus.AddPeer(p)
	}
	cfg.CaptureLogger = env.capture

	svc, err := NewSourceService(cfg, env.bus, env.edid)
	require.NoError(t, err)
	svc.RegisterListener(env.rec)
	env.svc = svc
	return env
}

func (env *testEnv) start(t *testing.T) {
	t.Helper()
	require.NoError(t, env.svc.Start(context.Background()))
	t.Cleanup(func() { _ = env.svc.Stop() })
}

// settle waits for the first probe pass and every event it caused.
func (env *testEnv) settle(t *testing.T) {
	t.Helper()
	require.Eventually(t, func() bool { return env.svc.ProbeStats().Runs >= 1 }, 2*time.Second, 5*time.Millisecond)
	env.bus.Sync()
	env.svc.Flush()
}

func (env *testEnv) sent(t *testing.T) []cec.Message {
	t.Helper()
	var out []cec.Message
	for _, f := range env.bus.Sent() {
		_, m, err := cec.Decode(f.Data)
		require.NoError(t, err)
		out = append(out, m)
	}
	return out
}

func TestNewSourceServiceValidation(t *testing.T) {
	bus := transport.NewLoopback()

	t.Run("NilBus", func(t *testing.T) {
		_, err := NewSourceService(testConfig(t), nil, nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"NoSettingsPath", func(c *Config) { c.SettingsPath = "" }},
		{"NoCandidates", func(c *Config) { c.Candidates = nil }},
		{"BroadcastCandidate", func(c *Config) { c.Candidates = []cec.LogicalAddress{cec.AddrBroadcast} }},
		{"TVCandidate", func(c *Config) { c.Candidates = []cec.LogicalAddress{cec.AddrTV} }},
		{"NegativeProbeInterval", func(c *Config) { c.ProbeInterval = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(&cfg)
			_, err := NewSourceService(cfg, bus, nil)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, persistence.DefaultSettingsPath, cfg.SettingsPath)
	assert.Equal(t, cec.DeviceTypePlayback, cfg.DeviceType)
	assert.Equal(t, []cec.LogicalAddress{cec.AddrPlayback1, cec.AddrPlayback2, cec.AddrPlayback3}, cfg.Candidates)
}

func TestStartEnabled(t *testing.T) {
	env := newTestEnv(t, testConfig(t), tvPeer, soundbarPeer)
	env.start(t)
	env.settle(t)

	assert.Equal(t, StateEnabled, env.svc.State())
	assert.Equal(t, connection.StateOpen, env.svc.LinkState())
	assert.True(t, env.bus.IsOpen())

	id := env.svc.Identity()
	assert.Equal(t, cec.AddrPlayback1, id.LogicalAddress)
	assert.Equal(t, busPA, id.PhysicalAddress)
	assert.Equal(t, cec.AddrPlayback1, env.bus.LogicalAddress())

	sent := env.sent(t)
	require.GreaterOrEqual(t, len(sent), 2)
	assert.Equal(t, cec.ReportPhysicalAddress{PhysicalAddress: busPA, DeviceType: cec.DeviceTypePlayback}, sent[0])
	assert.Equal(t, cec.DeviceVendorID{VendorID: cec.VendorIDDefault}, sent[1])

	records := env.svc.GetDeviceList()
	require.Len(t, records, 14)
	sb := records[cec.AddrAudioSystem-1]
	assert.True(t, sb.Present)
	assert.Equal(t, "Soundbar", sb.OSDName)
	assert.Equal(t, cec.PhysicalAddress(0x2000), sb.PhysicalAddress)

	assert.Equal(t, 1, env.rec.Count(notify.KindDeviceAdded))
	assert.False(t, env.svc.GetActiveSourceStatus())

	_, err := uuid.Parse(env.svc.SessionID())
	assert.NoError(t, err)
}

func TestStartTwice(t *testing.T) {
	env := newTestEnv(t, testConfig(t))
	env.start(t)
	assert.ErrorIs(t, env.svc.Start(context.Background()), ErrAlreadyStarted)
}

func TestStopNotStarted(t *testing.T) {
	env := newTestEnv(t, testConfig(t))
	assert.ErrorIs(t, env.svc.Stop(), ErrNotStarted)
}

func TestStartDisabled(t *testing.T) {
	cfg := testConfig(t)
	store := persistence.NewSettingsStore(cfg.SettingsPath)
	settings := persistence.DefaultSettings()
	settings.Enabled = false
	require.NoError(t, store.Save(settings))

	env := newTestEnv(t, cfg, tvPeer)
	env.start(t)

	assert.Equal(t, StateDisabled, env.svc.State())
	assert.False(t, env.bus.IsOpen())
	assert.False(t, env.svc.Enabled())

	ctx := context.Background()
	assert.ErrorIs(t, env.svc.SendStandbyMessage(ctx), ErrNotEnabled)
	assert.ErrorIs(t, env.svc.RequestActiveSource(ctx), ErrNotEnabled)
	assert.ErrorIs(t, env.svc.SendKeyPressEvent(ctx, 0, int(cec.UIVolumeUp)), ErrNotEnabled)
	assert.ErrorIs(t, env.svc.PerformOTPAction(ctx), ErrNotEnabled)

	// The directory answers queries while disabled.
	assert.Len(t, env.svc.GetDeviceList(), 14)
	assert.Empty(t, env.bus.Sent())
}

func TestCommandsWithoutConnection(t *testing.T) {
	bus := mocks.NewMockBus(t)
	bus.EXPECT().AddFrameListener(mock.Anything).Return().Once()
	bus.EXPECT().Open(mock.Anything).Return(transport.ErrIO)
	bus.EXPECT().Close().Return(nil).Maybe()

	cfg := testConfig(t)
	cfg.OpenBackoff = connection.BackoffConfig{Initial: time.Hour}
	svc, err := NewSourceService(cfg, bus, nil)
	require.NoError(t, err)
	require.NoError(t, svc.Start(context.Background()))
	defer func() { _ = svc.Stop() }()

	assert.Equal(t, StateConnecting, svc.State())
	assert.Equal(t, connection.StateRetrying, svc.LinkState())

	ctx := context.Background()
	assert.ErrorIs(t, svc.SendStandbyMessage(ctx), ErrNoConnection)
	assert.ErrorIs(t, svc.PerformOTPAction(ctx), ErrNoConnection)
	bus.AssertNotCalled(t, "SendTo", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetEnabled(t *testing.T) {
	env := newTestEnv(t, testConfig(t), tvPeer, soundbarPeer)
	env.start(t)
	env.settle(t)
	first := env.svc.SessionID()
	env.rec.Reset()

	require.NoError(t, env.svc.SetEnabled(false))
	env.svc.Flush()

	assert.Equal(t, StateDisabled, env.svc.State())
	assert.False(t, env.bus.IsOpen())
	assert.Equal(t, cec.AddrUnregistered, env.svc.Identity().LogicalAddress)
	assert.Equal(t, []notify.Event{notify.ActiveSourceStatusUpdated(false)}, env.rec.Events())
	for _, r := range env.svc.GetDeviceList() {
		assert.True(t, r.IsDefault())
	}

	loaded, err := persistence.NewSettingsStore(env.path).Load()
	require.NoError(t, err)
	assert.False(t, loaded.Enabled)

	require.NoError(t, env.svc.SetEnabled(true))
	env.settle(t)
	assert.Equal(t, StateEnabled, env.svc.State())
	assert.True(t, env.bus.IsOpen())
	assert.NotEqual(t, first, env.svc.SessionID())
	require.Eventually(t, func() bool {
		return env.svc.Directory().IsPresent(cec.AddrAudioSystem)
	}, 2*time.Second, 5*time.Millisecond)

	states := env.capture.states(log.LayerService)
	var names []string
	for _, s := range states {
		if s.Entity == log.StateEntityService {
			names = append(names, s.NewState)
		}
	}
	assert.Equal(t, []string{"DISABLED", "CONNECTING", "ENABLED", "DISABLED", "CONNECTING", "ENABLED"}, names)
}

func TestStopDisables(t *testing.T) {
	env := newTestEnv(t, testConfig(t), tvPeer)
	require.NoError(t, env.svc.Start(context.Background()))
	env.settle(t)

	require.NoError(t, env.svc.Stop())
	assert.Equal(t, StateStopped, env.svc.State())
	assert.False(t, env.bus.IsOpen())
	assert.Equal(t, connection.StateShutdown, env.svc.LinkState())

	// Stopped services can be started again.
	require.NoError(t, env.svc.Start(context.Background()))
	t.Cleanup(func() { _ = env.svc.Stop() })
	assert.Equal(t, StateEnabled, env.svc.State())
}

func TestBusLostReopens(t *testing.T) {
	env := newTestEnv(t, testConfig(t), tvPeer)
	env.start(t)
	env.settle(t)

	env.svc.NotifyBusLost(errors.New("adapter removed"))

	require.Eventually(t, func() bool {
		return env.svc.State() == StateEnabled && env.svc.LinkState() == connection.StateOpen && env.bus.IsOpen()
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, cec.AddrPlayback1, env.svc.Identity().LogicalAddress)
}

func TestBusLostWhileDisabledIgnored(t *testing.T) {
	env := newTestEnv(t, testConfig(t))
	env.svc.busLost(errors.New("adapter removed"))
	assert.Equal(t, StateIdle, env.svc.State())
}

func TestPhysicalAddressFallbacks(t *testing.T) {
	t.Run("FromEDID", func(t *testing.T) {
		env := newTestEnv(t, testConfig(t))
		env.bus.SetPhysicalAddress(cec.InvalidPhysicalAddress)
		env.edid.set(hdmiEDID(0x30, 0x00))
		env.start(t)

		assert.Equal(t, cec.PhysicalAddress(0x3000), env.svc.Identity().PhysicalAddress)
	})

	t.Run("FromConfig", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.FallbackPhysicalAddress = 0x4000
		env := newTestEnv(t, cfg)
		env.bus.SetPhysicalAddress(cec.InvalidPhysicalAddress)
		env.start(t)

		assert.Equal(t, cec.PhysicalAddress(0x4000), env.svc.Identity().PhysicalAddress)
	})
}

// hdmiEDID returns a base block plus a CEA extension carrying an HDMI
// vendor-specific data block with physical address ab.cd.
func hdmiEDID(ab, cd byte) []byte {
	b := make([]byte, 256)
	b[126] = 1
	ext := b[128:]
	ext[0] = 0x02
	ext[1] = 0x03
	ext[2] = 4 + 6
	ext[4] = 0x65
	ext[5], ext[6], ext[7] = 0x03, 0x0C, 0x00
	ext[8], ext[9] = ab, cd
	return b
}

func TestSettingsLoadedAtConstruction(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.SettingsPath,
		[]byte(`{"cecEnabled":true,"cecOTPEnabled":false,"cecOSDName":"Den","cecVendorId":1193046}`), 0o644))

	env := newTestEnv(t, cfg)
	assert.False(t, env.svc.OTPEnabled())
	assert.Equal(t, "Den", env.svc.OSDName())
	assert.Equal(t, "123456", env.svc.VendorID())
}

func TestCorruptSettingsUseDefaults(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.SettingsPath, []byte("not json"), 0o644))

	env := newTestEnv(t, cfg)
	assert.Equal(t, persistence.DefaultSettings(), env.svc.Settings())
	assert.Equal(t, "0019fb", env.svc.VendorID())
}
