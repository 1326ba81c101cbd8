package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/connection"
	"github.com/devsettings/cecsource-go/pkg/directory"
	"github.com/devsettings/cecsource-go/pkg/edid"
	"github.com/devsettings/cecsource-go/pkg/log"
	"github.com/devsettings/cecsource-go/pkg/notify"
	"github.com/devsettings/cecsource-go/pkg/persistence"
	"github.com/devsettings/cecsource-go/pkg/processor"
	"github.com/devsettings/cecsource-go/pkg/transport"
	"github.com/devsettings/cecsource-go/pkg/version"
)

// SourceService orchestrates a CEC source device.
type SourceService struct {
	mu sync.RWMutex

	// lifecycle serializes enable, disable and bus loss handling. It is
	// never taken by link callbacks.
	lifecycle sync.Mutex

	config Config
	state  ServiceState

	// Persisted settings
	store    *persistence.SettingsStore
	settings persistence.Settings

	// Capture session, regenerated on every enable
	sessionID string

	// Bus and collaborators
	bus  *transport.LoggingBus
	edid edid.Reader
	link *connection.Manager

	// Frame processing
	dir     *directory.Directory
	emitter *notify.Emitter
	proc    *processor.Processor
	prober  *processor.ProbeLoop

	// Host signals
	sinkConnected bool
	power         PowerMode

	// Context for cancellation
	ctx    context.Context
	cancel context.CancelFunc

	// Logger for debug output (optional)
	logger *slog.Logger

	// Capture logger for structured event capture (optional)
	capture log.Logger
}

// NewSourceService creates a source service on bus. The EDID reader may be
// nil, in which case vendor adaptation and EDID physical addresses are
// unavailable.
func NewSourceService(config Config, bus transport.Bus, edidReader edid.Reader) (*SourceService, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if bus == nil {
		return nil, fmt.Errorf("%w: bus required", ErrInvalidConfig)
	}

	s := &SourceService{
		config:  config,
		state:   StateIdle,
		store:   persistence.NewSettingsStore(config.SettingsPath),
		edid:    edidReader,
		dir:     directory.New(),
		emitter: notify.NewEmitter(config.Logger),
		power:   PowerModeOn,
		logger:  config.Logger,
		capture: config.CaptureLogger,
	}

	settings, err := s.store.Load()
	if err != nil {
		s.warnLog("settings file unreadable, using defaults for bad fields",
			"path", s.store.Path(), "error", err)
	}
	s.settings = settings

	s.bus = transport.NewLoggingBus(bus, nil)
	s.proc = processor.New(processor.Config{
		DeviceType:   config.DeviceType,
		Version:      version.CEC,
		OSDName:      settings.OSDName,
		VendorID:     cec.VendorID(settings.VendorID),
		ReplyTimeout: config.ReplyTimeout,
		Logger:       config.Logger,
	}, s.bus, s.dir, s.emitter)
	s.proc.SetPhysicalAddress(config.FallbackPhysicalAddress)
	s.proc.Attach()
	s.prober = processor.NewProbeLoop(s.proc, config.ProbeInterval)

	return s, nil
}

// State returns the current service state.
func (s *SourceService) State() ServiceState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SessionID returns the capture session of the current enable cycle.
func (s *SourceService) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// Processor returns the frame processor.
func (s *SourceService) Processor() *processor.Processor {
	return s.proc
}

// Directory returns the peer directory.
func (s *SourceService) Directory() *directory.Directory {
	return s.dir
}

// Identity returns this device's bus identity.
func (s *SourceService) Identity() processor.Identity {
	return s.proc.Identity()
}

// ProbeStats returns statistics of the background prober.
func (s *SourceService) ProbeStats() processor.ProbeStats {
	return s.prober.Stats()
}

// LinkState returns the state of the bus connection.
func (s *SourceService) LinkState() connection.State {
	s.mu.RLock()
	link := s.link
	s.mu.RUnlock()
	if link == nil {
		return connection.StateClosed
	}
	return link.State()
}

// RegisterListener adds an event listener and returns its ID.
func (s *SourceService) RegisterListener(l notify.Listener) uint64 {
	return s.emitter.Register(l)
}

// RegisterSink adds a host callback set and returns its ID.
func (s *SourceService) RegisterSink(sink notify.Sink) uint64 {
	return s.emitter.Register(notify.SinkListener(sink))
}

// Unregister removes a listener added with RegisterListener or RegisterSink.
func (s *SourceService) Unregister(id uint64) {
	s.emitter.Unregister(id)
}

// Flush blocks until every queued event has been delivered.
func (s *SourceService) Flush() {
	s.emitter.Flush()
}

// Start starts the service. The bus is opened when CEC is enabled in the
// persisted settings.
func (s *SourceService) Start(ctx context.Context) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.mu.Lock()
	if s.state != StateIdle && s.state != StateStopped {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.link = s.newLink()
	s.state = StateDisabled
	enabled := s.settings.Enabled
	s.mu.Unlock()

	s.emitter.Start()
	s.logState(log.StateEntityService, StateIdle.String(), StateDisabled.String(), "start")
	s.infoLog("source service started", "enabled", enabled, "api", version.Current)

	if enabled {
		s.enable()
	}
	return nil
}

// Stop disables CEC and stops the service.
func (s *SourceService) Stop() error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.mu.Lock()
	if s.state == StateIdle || s.state == StateStopped {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.mu.Unlock()

	s.disable("stop")

	s.mu.Lock()
	link := s.link
	if s.cancel != nil {
		s.cancel()
	}
	s.state = StateStopped
	s.mu.Unlock()

	link.Shutdown()
	s.emitter.Stop()
	s.logState(log.StateEntityService, StateDisabled.String(), StateStopped.String(), "stop")
	return nil
}

// NotifyBusLost reports that the open bus stopped working, e.g. the adapter
// was unplugged. The service stops processing and reopens the bus in the
// background. It does not block.
func (s *SourceService) NotifyBusLost(cause error) {
	go s.busLost(cause)
}

func (s *SourceService) newLink() *connection.Manager {
	link := connection.NewManagerWithBackoff(s.openBus, connection.NewBackoffWithConfig(s.config.OpenBackoff))
	link.SetCallbacks(connection.Callbacks{
		OnOpen: s.onBusOpen,
		OnStateChange: func(old, new connection.State) {
			s.debugLog("bus link state", "old", old.String(), "new", new.String())
		},
		OnRetry: func(attempt int, delay time.Duration, err error) {
			s.warnLog("bus open failed, retrying", "attempt", attempt, "delay", delay, "error", err)
		},
	})
	return link
}

func (s *SourceService) openBus(ctx context.Context) error {
	err := s.bus.Open(ctx)
	if errors.Is(err, transport.ErrAlreadyOpen) {
		return nil
	}
	return err
}

// enable opens the bus. A failed open is retried in the background. The
// caller holds s.lifecycle.
func (s *SourceService) enable() {
	s.mu.Lock()
	if s.state != StateDisabled {
		s.mu.Unlock()
		return
	}
	s.state = StateConnecting
	s.sessionID = uuid.NewString()
	sessionID, ctx, link := s.sessionID, s.ctx, s.link
	s.mu.Unlock()

	if s.capture != nil {
		s.bus.SetLogger(s.capture, sessionID)
		s.proc.SetCaptureLogger(s.capture, sessionID)
	}
	s.logState(log.StateEntityService, StateDisabled.String(), StateConnecting.String(), "enable")

	if err := link.Open(ctx, true); err != nil && !errors.Is(err, connection.ErrAlreadyOpen) {
		s.warnLog("bus not available", "error", err)
	}
}

// onBusOpen brings the device onto the bus once the adapter is open.
func (s *SourceService) onBusOpen() {
	s.mu.RLock()
	state, ctx := s.state, s.ctx
	s.mu.RUnlock()
	if state != StateConnecting {
		return
	}

	addr, err := s.proc.AllocateLogicalAddress(ctx, s.config.Candidates)
	if err != nil {
		s.warnLog("logical address allocation failed", "error", err)
	}
	if addr == cec.AddrUnregistered {
		s.warnLog("no free logical address, staying unregistered")
	}
	s.refreshPhysicalAddress()
	s.applyEDID()
	s.proc.Start()

	s.mu.Lock()
	if s.state != StateConnecting {
		s.mu.Unlock()
		s.proc.Stop()
		return
	}
	s.state = StateEnabled
	s.mu.Unlock()
	s.logState(log.StateEntityService, StateConnecting.String(), StateEnabled.String(), "bus open")

	if err := s.proc.AnnouncePhysicalAddress(ctx); err != nil {
		s.debugLog("physical address announcement failed", "error", err)
	}
	if err := s.proc.AnnounceVendorID(ctx); err != nil {
		s.debugLog("vendor id announcement failed", "error", err)
	}

	s.prober.Start(ctx)
	s.infoLog("cec enabled", "logical", uint8(addr), "physical", s.proc.PhysicalAddress().String())
}

// disable stops frame intake and probing and closes the bus. The caller
// holds s.lifecycle.
func (s *SourceService) disable(reason string) {
	s.mu.Lock()
	if s.state != StateConnecting && s.state != StateEnabled {
		s.mu.Unlock()
		return
	}
	old := s.state
	s.state = StateDisabled
	link := s.link
	s.mu.Unlock()

	// Close waits for a retry in progress, including its OnOpen callback.
	link.Close()
	s.proc.Stop()
	s.prober.Stop()
	if err := s.bus.Close(); err != nil && !errors.Is(err, transport.ErrNotOpen) {
		s.debugLog("bus close failed", "error", err)
	}

	s.proc.ClearVendorQuirk()
	s.proc.SetActive(false)
	s.proc.SetLogicalAddress(cec.AddrUnregistered)
	s.bus.SetIdentity(cec.AddrUnregistered, s.proc.PhysicalAddress())
	s.dir.Reset()

	s.logState(log.StateEntityService, old.String(), StateDisabled.String(), reason)
	s.infoLog("cec disabled", "reason", reason)
}

func (s *SourceService) busLost(cause error) {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.mu.Lock()
	if s.state != StateEnabled {
		s.mu.Unlock()
		return
	}
	s.state = StateConnecting
	link := s.link
	s.mu.Unlock()

	s.warnLog("bus lost", "error", cause)
	s.logError("bus", cause)
	s.logState(log.StateEntityService, StateEnabled.String(), StateConnecting.String(), "bus lost")

	s.proc.Stop()
	s.prober.Stop()
	_ = s.bus.Close()
	link.NotifyLost(cause)
}

// refreshPhysicalAddress asks the bus, then the EDID, for this device's
// physical address.
func (s *SourceService) refreshPhysicalAddress() {
	pa := s.config.FallbackPhysicalAddress
	source := "fallback"

	if got, err := s.bus.PhysicalAddress(); err == nil && got.IsValid() {
		pa, source = got, "bus"
	} else if s.edid != nil {
		if data, err := s.edid.ReadEDID(); err == nil {
			if got, err := edid.PhysicalAddress(data); err == nil {
				pa, source = got, "edid"
			}
		}
	}

	old := s.proc.PhysicalAddress()
	s.proc.SetPhysicalAddress(pa)
	s.bus.SetIdentity(s.proc.LogicalAddress(), pa)
	if old != pa {
		s.logState(log.StateEntityAddress, old.String(), pa.String(), source)
		s.debugLog("physical address", "address", pa.String(), "source", source)
	}
}

// applyEDID updates the vendor quirk from the sink's EDID.
func (s *SourceService) applyEDID() {
	if s.edid == nil {
		return
	}
	data, err := s.edid.ReadEDID()
	if err != nil {
		s.debugLog("edid unavailable", "error", err)
		s.proc.ClearVendorQuirk()
		return
	}
	s.proc.ApplySinkEDID(data)
}

// debugLog logs a debug message if logging is enabled.
func (s *SourceService) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *SourceService) infoLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *SourceService) warnLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
