package service

import (
	"context"
	"fmt"

	"github.com/devsettings/cecsource-go/pkg/log"
)

// OnHotplug handles an HDMI hotplug signal. On connect the physical address
// and the vendor quirk are refreshed from the new sink and the bus is
// probed. On disconnect the quirk is cleared and the physical address is
// reset.
func (s *SourceService) OnHotplug(ctx context.Context, connected bool) {
	s.mu.Lock()
	old := s.sinkConnected
	s.sinkConnected = connected
	enabled := s.state == StateEnabled
	s.mu.Unlock()

	s.logState(log.StateEntityAddress, hotplugState(old), hotplugState(connected), "hotplug")
	s.infoLog("hotplug", "connected", connected)

	if !connected {
		s.proc.ClearVendorQuirk()
		s.proc.SetPhysicalAddress(s.config.FallbackPhysicalAddress)
		s.bus.SetIdentity(s.proc.LogicalAddress(), s.config.FallbackPhysicalAddress)
		return
	}
	if !enabled {
		return
	}

	s.refreshPhysicalAddress()
	s.applyEDID()
	if err := s.proc.AnnouncePhysicalAddress(ctx); err != nil {
		s.debugLog("physical address announcement failed", "error", err)
	}
	s.prober.Trigger()
}

// SinkConnected reports the last hotplug state.
func (s *SourceService) SinkConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sinkConnected
}

// OnPowerModeChanged handles a host power transition. Leaving On puts the
// device in standby: it stops being active source and reports Standby power
// status. Returning to On re-reads the physical address, probes the bus and
// performs One Touch Play when enabled.
func (s *SourceService) OnPowerModeChanged(ctx context.Context, previous, next PowerMode) {
	s.mu.Lock()
	s.power = next
	enabled := s.state == StateEnabled
	s.mu.Unlock()

	s.logState(log.StateEntityPower, previous.String(), next.String(), "power manager")
	s.infoLog("power mode changed", "previous", previous.String(), "next", next.String())

	switch {
	case previous.IsOn() && !next.IsOn():
		s.proc.EnterStandby()
	case !previous.IsOn() && next.IsOn():
		s.proc.Resume()
		if !enabled {
			return
		}
		s.refreshPhysicalAddress()
		s.prober.Trigger()
		if s.OTPEnabled() {
			if err := s.proc.OneTouchPlay(ctx); err != nil {
				s.warnLog("one touch play on resume failed", "error", err)
				s.logError("resume", fmt.Errorf("one touch play: %w", err))
			}
		}
	}
}

// PowerMode returns the last reported host power mode.
func (s *SourceService) PowerMode() PowerMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.power
}

func hotplugState(connected bool) string {
	if connected {
		return "CONNECTED"
	}
	return "DISCONNECTED"
}
