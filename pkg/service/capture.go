package service

import (
	"time"

	"github.com/devsettings/cecsource-go/pkg/log"
)

// captureEvent returns the capture logger and a stamped service event, or a
// nil logger when capture is off.
func (s *SourceService) captureEvent(cat log.Category) (log.Logger, log.Event) {
	if s.capture == nil {
		return nil, log.Event{}
	}
	s.mu.RLock()
	sessionID := s.sessionID
	s.mu.RUnlock()

	id := s.proc.Identity()
	ev := log.Event{
		Timestamp:    time.Now(),
		SessionID:    sessionID,
		Direction:    log.DirectionIn,
		Layer:        log.LayerService,
		Category:     cat,
		LocalAddress: uint8(id.LogicalAddress),
	}
	if id.PhysicalAddress.IsValid() {
		ev.PhysicalAddress = id.PhysicalAddress.String()
	}
	return s.capture, ev
}

func (s *SourceService) logState(entity log.StateEntity, oldState, newState, reason string) {
	logger, ev := s.captureEvent(log.CategoryState)
	if logger == nil {
		return
	}
	ev.StateChange = &log.StateChangeEvent{
		Entity:   entity,
		OldState: oldState,
		NewState: newState,
		Reason:   reason,
	}
	logger.Log(ev)
}

func (s *SourceService) logError(context string, err error) {
	logger, ev := s.captureEvent(log.CategoryError)
	if logger == nil {
		return
	}
	ev.Error = &log.ErrorEventData{
		Layer:   log.LayerService,
		Message: err.Error(),
		Context: context,
	}
	logger.Log(ev)
}
