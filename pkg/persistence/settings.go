package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultSettingsPath is where the platform keeps the CEC settings.
const DefaultSettingsPath = "/opt/persistent/ds/cecData_2.json"

// maxVendorID is the largest 24-bit OUI.
const maxVendorID = 0xFFFFFF

// ErrCorrupt is wrapped by Load when the file exists but some or all of it
// could not be used.
var ErrCorrupt = errors.New("settings file corrupt")

// Settings are the persisted CEC settings.
type Settings struct {
	Enabled    bool
	OTPEnabled bool
	OSDName    string
	VendorID   uint32
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		Enabled:    true,
		OTPEnabled: true,
	}
}

// settingsFile is the on-disk form.
type settingsFile struct {
	Enabled    bool   `json:"cecEnabled"`
	OTPEnabled bool   `json:"cecOTPEnabled"`
	OSDName    string `json:"cecOSDName"`
	VendorID   uint32 `json:"cecVendorId"`
}

// SettingsStore reads and writes Settings as a JSON file.
type SettingsStore struct {
	mu   sync.Mutex
	path string
}

// NewSettingsStore creates a store for path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Path returns the file path.
func (s *SettingsStore) Path() string {
	return s.path
}

// Load reads the settings. A missing file yields the defaults and no error.
// A file that cannot be parsed yields the defaults for every unusable field
// and an error wrapping ErrCorrupt; the returned settings are always usable.
func (s *SettingsStore) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := DefaultSettings()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("read settings: %w", err)
	}
	if len(data) == 0 {
		return settings, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return settings, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}

	var bad []string
	field := func(key string, dst any) bool {
		msg, ok := raw[key]
		if !ok || string(msg) == "null" {
			return false
		}
		if err := json.Unmarshal(msg, dst); err != nil {
			bad = append(bad, key)
			return false
		}
		return true
	}

	var (
		enabled, otp bool
		name         string
		vendor       uint32
	)
	if field("cecEnabled", &enabled) {
		settings.Enabled = enabled
	}
	if field("cecOTPEnabled", &otp) {
		settings.OTPEnabled = otp
	}
	if field("cecOSDName", &name) {
		settings.OSDName = name
	}
	if field("cecVendorId", &vendor) {
		if vendor > maxVendorID {
			bad = append(bad, "cecVendorId")
		} else {
			settings.VendorID = vendor
		}
	}

	if len(bad) > 0 {
		return settings, fmt.Errorf("%w: %s: bad fields %v", ErrCorrupt, s.path, bad)
	}
	return settings, nil
}

// Save writes all four settings.
func (s *SettingsStore) Save(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings.VendorID > maxVendorID {
		return fmt.Errorf("vendor id 0x%x exceeds 24 bits", settings.VendorID)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f := settingsFile{
		Enabled:    settings.Enabled,
		OTPEnabled: settings.OTPEnabled,
		OSDName:    settings.OSDName,
		VendorID:   settings.VendorID,
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Clear removes the settings file.
func (s *SettingsStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
