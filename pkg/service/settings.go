package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/persistence"
)

// Settings returns a copy of the persisted settings.
func (s *SourceService) Settings() persistence.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetEnabled enables or disables CEC and persists the choice. On a running
// service the bus is opened or closed accordingly.
func (s *SourceService) SetEnabled(enabled bool) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	err := s.update(func(st *persistence.Settings) { st.Enabled = enabled })

	s.mu.RLock()
	started := s.state != StateIdle && s.state != StateStopped
	s.mu.RUnlock()
	if started {
		if enabled {
			s.enable()
		} else {
			s.disable("disabled by host")
		}
	}
	return err
}

// Enabled reports whether CEC is enabled.
func (s *SourceService) Enabled() bool {
	return s.Settings().Enabled
}

// SetOTPEnabled enables or disables One Touch Play and persists the choice.
func (s *SourceService) SetOTPEnabled(enabled bool) error {
	return s.update(func(st *persistence.Settings) { st.OTPEnabled = enabled })
}

// OTPEnabled reports whether One Touch Play is enabled.
func (s *SourceService) OTPEnabled() bool {
	return s.Settings().OTPEnabled
}

// SetOSDName sets and persists this device's OSD name. Names longer than 14
// characters are truncated. When CEC is active the new name is sent to the
// TV and a failed send is returned after the name has been stored.
func (s *SourceService) SetOSDName(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty OSD name", ErrInvalidParameter)
	}
	name = cec.TruncateOSDName(name)

	err := s.update(func(st *persistence.Settings) { st.OSDName = name })
	s.proc.SetOSDName(name)
	if err != nil {
		return err
	}

	if s.ready() != nil {
		return nil
	}
	return s.proc.AnnounceOSDName(ctx)
}

// OSDName returns this device's OSD name.
func (s *SourceService) OSDName() string {
	return s.proc.Identity().OSDName
}

// SetVendorID sets and persists this device's vendor ID. Zero selects the
// default. When CEC is active the new ID is broadcast.
func (s *SourceService) SetVendorID(ctx context.Context, id uint32) error {
	if id > 0xFFFFFF {
		return fmt.Errorf("%w: vendor id 0x%x wider than 24 bits", ErrInvalidParameter, id)
	}

	err := s.update(func(st *persistence.Settings) { st.VendorID = id })
	s.proc.SetVendorID(cec.VendorID(id))
	if err != nil {
		return err
	}

	if s.ready() != nil {
		return nil
	}
	return s.proc.AnnounceVendorID(ctx)
}

// VendorID returns the configured vendor ID as six lowercase hex digits,
// e.g. "0019fb". The sink vendor quirk is not applied.
func (s *SourceService) VendorID() string {
	return s.proc.ConfiguredVendorID().Hex()
}

// ParseVendorID parses a vendor ID written in hex, with or without a 0x
// prefix, e.g. "0x0019FB" or "0019fb".
func ParseVendorID(str string) (uint32, error) {
	str = strings.TrimSpace(str)
	str = strings.TrimPrefix(strings.TrimPrefix(str, "0x"), "0X")
	v, err := strconv.ParseUint(str, 16, 32)
	if err != nil || str == "" {
		return 0, fmt.Errorf("%w: vendor id %q", ErrInvalidParameter, str)
	}
	if v > 0xFFFFFF {
		return 0, fmt.Errorf("%w: vendor id %q wider than 24 bits", ErrInvalidParameter, str)
	}
	return uint32(v), nil
}

// update applies fn to the settings and persists them. The in-memory
// settings change even when saving fails.
func (s *SourceService) update(fn func(*persistence.Settings)) error {
	s.mu.Lock()
	fn(&s.settings)
	settings := s.settings
	s.mu.Unlock()

	if err := s.store.Save(settings); err != nil {
		s.warnLog("saving settings failed", "path", s.store.Path(), "error", err)
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
