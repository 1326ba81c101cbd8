package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/persistence"
	"github.com/devsettings/cecsource-go/pkg/service"
	"github.com/devsettings/cecsource-go/pkg/transport"
)

// Config holds the command configuration. Fields are filled from the YAML
// file first; flags given on the command line override them.
type Config struct {
	Device       string        `yaml:"device"`
	Simulate     bool          `yaml:"simulate"`
	SettingsPath string        `yaml:"settings"`
	EDIDPath     string        `yaml:"edid"`
	Capture      string        `yaml:"capture"`
	LogLevel     string        `yaml:"log_level"`
	Interactive  bool          `yaml:"interactive"`
	ProbeEvery   time.Duration `yaml:"probe_interval"`

	// FallbackPhysicalAddress is used when neither the adapter nor the
	// EDID provides one, e.g. "2.0.0.0".
	FallbackPhysicalAddress string `yaml:"fallback_physical_address"`

	// BusPhysicalAddress is the address of the simulated bus.
	BusPhysicalAddress string `yaml:"bus_physical_address"`

	// Peers populate the simulated bus.
	Peers []PeerConfig `yaml:"peers"`
}

// PeerConfig describes one simulated peer.
type PeerConfig struct {
	Address         uint8  `yaml:"address"`
	PhysicalAddress string `yaml:"physical_address"`
	Type            string `yaml:"type"`
	Name            string `yaml:"name"`
	Vendor          string `yaml:"vendor"`
	Standby         bool   `yaml:"standby"`
	Silent          bool   `yaml:"silent"`
}

// defaultConfig returns the configuration used without a file.
func defaultConfig() Config {
	return Config{
		SettingsPath:       persistence.DefaultSettingsPath,
		LogLevel:           "info",
		BusPhysicalAddress: "1.0.0.0",
		Peers: []PeerConfig{
			{Address: 0, PhysicalAddress: "0.0.0.0", Type: "tv", Name: "TV", Vendor: "00e091"},
			{Address: 5, PhysicalAddress: "2.0.0.0", Type: "audio", Name: "Soundbar", Vendor: "008045"},
		},
	}
}

// loadConfigFile reads path into cfg. Keys absent from the file keep
// their current values.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c Config) validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.ProbeEvery < 0 {
		return fmt.Errorf("probe_interval must not be negative")
	}
	if c.FallbackPhysicalAddress != "" {
		if _, err := cec.ParsePhysicalAddress(c.FallbackPhysicalAddress); err != nil {
			return fmt.Errorf("fallback_physical_address: %w", err)
		}
	}
	if c.Simulate {
		if _, err := cec.ParsePhysicalAddress(c.BusPhysicalAddress); err != nil {
			return fmt.Errorf("bus_physical_address: %w", err)
		}
		if _, err := c.simulatedPeers(); err != nil {
			return err
		}
	}
	return nil
}

// simulatedPeers converts the peer list for the loopback bus.
func (c Config) simulatedPeers() ([]transport.Peer, error) {
	seen := make(map[uint8]bool)
	peers := make([]transport.Peer, 0, len(c.Peers))
	for i, pc := range c.Peers {
		p, err := pc.peer()
		if err != nil {
			return nil, fmt.Errorf("peers[%d]: %w", i, err)
		}
		if seen[pc.Address] {
			return nil, fmt.Errorf("peers[%d]: duplicate address %d", i, pc.Address)
		}
		seen[pc.Address] = true
		peers = append(peers, p)
	}
	return peers, nil
}

func (pc PeerConfig) peer() (transport.Peer, error) {
	addr := cec.LogicalAddress(pc.Address)
	if pc.Address > 14 {
		return transport.Peer{}, fmt.Errorf("address %d out of range 0-14", pc.Address)
	}

	p := transport.Peer{
		Address:         addr,
		PhysicalAddress: cec.InvalidPhysicalAddress,
		DeviceType:      addr.DeviceType(),
		OSDName:         pc.Name,
		Version:         cec.Version1_4,
		PowerStatus:     cec.PowerStatusOn,
		Silent:          pc.Silent,
	}
	if pc.PhysicalAddress != "" {
		pa, err := cec.ParsePhysicalAddress(pc.PhysicalAddress)
		if err != nil {
			return p, err
		}
		p.PhysicalAddress = pa
	}
	if pc.Type != "" {
		t, err := cec.ParseDeviceType(strings.ToLower(pc.Type))
		if err != nil {
			return p, err
		}
		p.DeviceType = t
	}
	if pc.Vendor != "" {
		v, err := service.ParseVendorID(pc.Vendor)
		if err != nil {
			return p, fmt.Errorf("vendor: %w", err)
		}
		p.VendorID = cec.VendorID(v)
	}
	if pc.Standby {
		p.PowerStatus = cec.PowerStatusStandby
	}
	return p, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", s)
	}
}
