package service

import (
	"context"
	"fmt"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/directory"
)

// ready reports whether commands can reach the bus.
func (s *SourceService) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.settings.Enabled {
		return ErrNotEnabled
	}
	if s.state != StateEnabled {
		return ErrNoConnection
	}
	return nil
}

// SendStandbyMessage broadcasts Standby.
func (s *SourceService) SendStandbyMessage(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.proc.SendStandby(ctx)
}

// RequestActiveSource broadcasts Request Active Source.
func (s *SourceService) RequestActiveSource(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.proc.RequestActiveSource(ctx)
}

// SendKeyPressEvent sends a key press and release to the device at address
// (0..15). key is a UI command code.
func (s *SourceService) SendKeyPressEvent(ctx context.Context, address, key int) error {
	if address < 0 || address > int(cec.AddrBroadcast) {
		return fmt.Errorf("%w: logical address %d", ErrInvalidParameter, address)
	}
	if key < 0 || key > 0xFF {
		return fmt.Errorf("%w: key code %d", ErrInvalidParameter, key)
	}
	if err := s.ready(); err != nil {
		return err
	}
	return s.proc.SendKeyPress(ctx, cec.LogicalAddress(address), cec.UICommand(key))
}

// PerformOTPAction wakes the TV and makes this device the active source.
func (s *SourceService) PerformOTPAction(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !s.OTPEnabled() {
		return ErrOTPDisabled
	}
	return s.proc.OneTouchPlay(ctx)
}

// GetDeviceList returns a snapshot of all 14 peer records.
func (s *SourceService) GetDeviceList() []directory.Record {
	return s.dir.List()
}

// GetActiveSourceStatus reports whether this device is the active source.
func (s *SourceService) GetActiveSourceStatus() bool {
	return s.dir.IsActiveSource()
}
