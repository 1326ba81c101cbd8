package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/edid"
	"github.com/devsettings/cecsource-go/pkg/transport"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
simulate: true
settings: /tmp/cec/settings.json
log_level: debug
probe_interval: 45s
bus_physical_address: 2.1.0.0
peers:
  - address: 0
    physical_address: 0.0.0.0
    type: tv
    name: Living Room TV
    vendor: "0x00E091"
  - address: 8
    type: playback
    standby: true
    silent: true
`)

	cfg := defaultConfig()
	require.NoError(t, loadConfigFile(path, &cfg))
	require.NoError(t, cfg.validate())

	assert.True(t, cfg.Simulate)
	assert.Equal(t, "/tmp/cec/settings.json", cfg.SettingsPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 45*time.Second, cfg.ProbeEvery)
	require.Len(t, cfg.Peers, 2)

	peers, err := cfg.simulatedPeers()
	require.NoError(t, err)
	assert.Equal(t, transport.Peer{
		Address:         cec.AddrTV,
		PhysicalAddress: 0,
		DeviceType:      cec.DeviceTypeTV,
		OSDName:         "Living Room TV",
		VendorID:        cec.VendorIDLG,
		Version:         cec.Version1_4,
		PowerStatus:     cec.PowerStatusOn,
	}, peers[0])
	assert.Equal(t, cec.InvalidPhysicalAddress, peers[1].PhysicalAddress)
	assert.Equal(t, cec.PowerStatusStandby, peers[1].PowerStatus)
	assert.True(t, peers[1].Silent)
}

func TestLoadConfigFileErrors(t *testing.T) {
	cfg := defaultConfig()
	assert.Error(t, loadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"), &cfg))
	assert.Error(t, loadConfigFile(writeConfig(t, "peers: [unterminated"), &cfg))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"LogLevel", func(c *Config) { c.LogLevel = "chatty" }},
		{"ProbeInterval", func(c *Config) { c.ProbeEvery = -time.Second }},
		{"FallbackPA", func(c *Config) { c.FallbackPhysicalAddress = "1.2.3" }},
		{"BusPA", func(c *Config) { c.Simulate = true; c.BusPhysicalAddress = "x" }},
		{"PeerAddress", func(c *Config) { c.Simulate = true; c.Peers = []PeerConfig{{Address: 15}} }},
		{"PeerType", func(c *Config) { c.Simulate = true; c.Peers = []PeerConfig{{Address: 5, Type: "toaster"}} }},
		{"PeerVendor", func(c *Config) { c.Simulate = true; c.Peers = []PeerConfig{{Address: 5, Vendor: "zz"}} }},
		{"DuplicatePeer", func(c *Config) { c.Simulate = true; c.Peers = []PeerConfig{{Address: 5}, {Address: 5}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.validate())
		})
	}

	t.Run("Defaults", func(t *testing.T) {
		assert.NoError(t, defaultConfig().validate())
		cfg := defaultConfig()
		cfg.Simulate = true
		assert.NoError(t, cfg.validate())
	})
}

func TestBuildEDID(t *testing.T) {
	pa := cec.NewPhysicalAddress(3, 1, 0, 0)

	data, err := buildEDID("GSM", pa)
	require.NoError(t, err)
	assert.True(t, edid.IsLG(data))
	got, err := edid.PhysicalAddress(data)
	require.NoError(t, err)
	assert.Equal(t, pa, got)

	data, err = buildEDID("sam", pa)
	require.NoError(t, err)
	assert.False(t, edid.IsLG(data))
	id, err := edid.ManufacturerID(data)
	require.NoError(t, err)
	assert.Equal(t, "SAM", id)

	_, err = buildEDID("LG", pa)
	assert.Error(t, err)
	_, err = buildEDID("L9X", pa)
	assert.Error(t, err)
}

func TestSimSink(t *testing.T) {
	s := &simSink{}
	_, err := s.ReadEDID()
	assert.ErrorIs(t, err, errNoSink)

	require.NoError(t, s.Plug("GSM", cec.NewPhysicalAddress(1, 0, 0, 0)))
	data, err := s.ReadEDID()
	require.NoError(t, err)
	assert.True(t, edid.IsLG(data))

	s.Unplug()
	_, err = s.ReadEDID()
	assert.ErrorIs(t, err, errNoSink)
}

func TestNewSimulatedBus(t *testing.T) {
	bus, err := newSimulatedBus(defaultConfig())
	require.NoError(t, err)
	require.NoError(t, bus.Open(context.Background()))
	defer bus.Close()

	pa, err := bus.PhysicalAddress()
	require.NoError(t, err)
	assert.Equal(t, cec.NewPhysicalAddress(1, 0, 0, 0), pa)
	assert.NoError(t, bus.Ping(context.Background(), cec.AddrPlayback1, cec.AddrTV))
	assert.NoError(t, bus.Ping(context.Background(), cec.AddrPlayback1, cec.AddrAudioSystem))
	assert.ErrorIs(t, bus.Ping(context.Background(), cec.AddrPlayback1, cec.AddrTuner1), transport.ErrNoAck)
}
