package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/connection"
	"github.com/devsettings/cecsource-go/pkg/log"
	"github.com/devsettings/cecsource-go/pkg/persistence"
	"github.com/devsettings/cecsource-go/pkg/processor"
)

// Service errors.
var (
	ErrNotStarted       = errors.New("service not started")
	ErrAlreadyStarted   = errors.New("service already started")
	ErrNotEnabled       = errors.New("cec not enabled")
	ErrNoConnection     = errors.New("no active bus connection")
	ErrOTPDisabled      = errors.New("one touch play disabled")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// ServiceState represents the service state.
type ServiceState uint8

const (
	// StateIdle - service created but not started.
	StateIdle ServiceState = iota

	// StateDisabled - service started with CEC disabled.
	StateDisabled

	// StateConnecting - CEC enabled, waiting for the bus to open.
	StateConnecting

	// StateEnabled - CEC enabled and the bus is open.
	StateEnabled

	// StateStopped - service has stopped.
	StateStopped
)

// String returns the state name.
func (s ServiceState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateDisabled:
		return "DISABLED"
	case StateConnecting:
		return "CONNECTING"
	case StateEnabled:
		return "ENABLED"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// PowerMode is the host power state reported by the power manager.
type PowerMode uint8

const (
	PowerModeOn PowerMode = iota
	PowerModeStandby
	PowerModeLightSleep
	PowerModeDeepSleep
)

// String returns the power mode name.
func (m PowerMode) String() string {
	switch m {
	case PowerModeOn:
		return "ON"
	case PowerModeStandby:
		return "STANDBY"
	case PowerModeLightSleep:
		return "LIGHT_SLEEP"
	case PowerModeDeepSleep:
		return "DEEP_SLEEP"
	default:
		return "UNKNOWN"
	}
}

// IsOn reports whether the host is fully on.
func (m PowerMode) IsOn() bool {
	return m == PowerModeOn
}

// ParsePowerMode parses a power mode name as returned by String.
func ParsePowerMode(s string) (PowerMode, error) {
	for m := PowerModeOn; m <= PowerModeDeepSleep; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return PowerModeOn, fmt.Errorf("%w: power mode %q", ErrInvalidParameter, s)
}

// Config configures a SourceService.
type Config struct {
	// SettingsPath is the persisted settings file.
	SettingsPath string

	// DeviceType is this device's CEC device type.
	DeviceType cec.DeviceType

	// Candidates are the logical addresses tried, in order, when enabling.
	Candidates []cec.LogicalAddress

	// FallbackPhysicalAddress is used when neither the bus nor the EDID
	// yields a physical address.
	FallbackPhysicalAddress cec.PhysicalAddress

	// ProbeInterval is the period of the background liveness probe.
	// Zero means processor.DefaultProbeInterval.
	ProbeInterval time.Duration

	// OpenBackoff configures retries of a failed bus open.
	OpenBackoff connection.BackoffConfig

	// ReplyTimeout bounds each reply sent while handling a frame.
	ReplyTimeout time.Duration

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// CaptureLogger receives bus, processor and service capture events.
	// If nil, capture is disabled.
	CaptureLogger log.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SettingsPath:            persistence.DefaultSettingsPath,
		DeviceType:              cec.DeviceTypePlayback,
		Candidates:              append([]cec.LogicalAddress(nil), cec.PlaybackAddresses...),
		FallbackPhysicalAddress: cec.InvalidPhysicalAddress,
		ProbeInterval:           processor.DefaultProbeInterval,
		OpenBackoff:             connection.DefaultBackoffConfig(),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.SettingsPath == "" {
		return fmt.Errorf("%w: settings path required", ErrInvalidConfig)
	}
	if len(c.Candidates) == 0 {
		return fmt.Errorf("%w: no candidate logical addresses", ErrInvalidConfig)
	}
	for _, a := range c.Candidates {
		if !a.IsPeer() {
			return fmt.Errorf("%w: candidate address %d outside 1..14", ErrInvalidConfig, a)
		}
	}
	if c.ProbeInterval < 0 {
		return fmt.Errorf("%w: negative probe interval", ErrInvalidConfig)
	}
	return nil
}
