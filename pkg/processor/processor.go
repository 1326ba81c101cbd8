package processor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/directory"
	"github.com/devsettings/cecsource-go/pkg/log"
	"github.com/devsettings/cecsource-go/pkg/notify"
	"github.com/devsettings/cecsource-go/pkg/transport"
	"github.com/devsettings/cecsource-go/pkg/version"
)

// Processor errors.
var (
	ErrNoBus      = errors.New("no bus attached")
	ErrNotRunning = errors.New("processor not running")
)

// DefaultOSDName is sent in Set OSD Name while no name is configured.
const DefaultOSDName = "Playback"

// Config configures a Processor.
type Config struct {
	// DeviceType is reported in Report Physical Address.
	DeviceType cec.DeviceType

	// Version is reported in CEC Version.
	Version cec.Version

	// OSDName is reported in Set OSD Name. Longer names are truncated and
	// an empty name is sent as DefaultOSDName.
	OSDName string

	// VendorID is reported in Device Vendor ID. Zero means
	// cec.VendorIDDefault.
	VendorID cec.VendorID

	// ReplyTimeout bounds each reply sent while handling a frame. Zero
	// leaves the bound to the bus.
	ReplyTimeout time.Duration

	// Logger is used for operational logging. Nil disables it.
	Logger *slog.Logger

	// CaptureLogger receives a MessageEvent for every decoded frame.
	CaptureLogger log.Logger
}

// DefaultConfig returns the configuration of a playback device.
func DefaultConfig() Config {
	return Config{
		DeviceType: cec.DeviceTypePlayback,
		Version:    version.CEC,
		VendorID:   cec.VendorIDDefault,
	}
}

// Identity is this device's bus identity.
type Identity struct {
	LogicalAddress  cec.LogicalAddress
	PhysicalAddress cec.PhysicalAddress
	DeviceType      cec.DeviceType
	OSDName         string
	VendorID        cec.VendorID
	PowerStatus     cec.PowerStatus
}

// Processor decodes, filters and dispatches CEC frames.
type Processor struct {
	cfg     Config
	bus     transport.Bus
	dir     *directory.Directory
	emitter *notify.Emitter
	logger  *slog.Logger

	mu          sync.RWMutex
	self        cec.LogicalAddress
	physical    cec.PhysicalAddress
	osdName     string
	vendorID    cec.VendorID
	vendorQuirk bool
	power       cec.PowerStatus
	capture     log.Logger
	sessionID   string

	running atomic.Bool
}

// New creates a processor writing to dir and emitting through emitter.
// Start with DefaultConfig; the emitter is not started here.
func New(cfg Config, bus transport.Bus, dir *directory.Directory, emitter *notify.Emitter) *Processor {
	if cfg.VendorID == 0 {
		cfg.VendorID = cec.VendorIDDefault
	}
	return &Processor{
		cfg:      cfg,
		bus:      bus,
		dir:      dir,
		emitter:  emitter,
		logger:   cfg.Logger,
		self:     cec.AddrUnregistered,
		physical: cec.InvalidPhysicalAddress,
		osdName:  cec.TruncateOSDName(cfg.OSDName),
		vendorID: cfg.VendorID,
		power:    cec.PowerStatusOn,
		capture:  cfg.CaptureLogger,
	}
}

// Attach registers the processor as a frame listener on its bus.
func (p *Processor) Attach() {
	if p.bus != nil {
		p.bus.AddFrameListener(p.HandleFrame)
	}
}

// Start begins accepting frames.
func (p *Processor) Start() {
	p.running.Store(true)
}

// Stop stops accepting frames. A frame being handled completes.
func (p *Processor) Stop() {
	p.running.Store(false)
}

// IsRunning reports whether frames are accepted.
func (p *Processor) IsRunning() bool {
	return p.running.Load()
}

// Directory returns the device directory.
func (p *Processor) Directory() *directory.Directory {
	return p.dir
}

// SetCaptureLogger replaces the capture logger and session ID.
func (p *Processor) SetCaptureLogger(l log.Logger, sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.capture = l
	p.sessionID = sessionID
}

// Identity returns a copy of this device's identity.
func (p *Processor) Identity() Identity {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Identity{
		LogicalAddress:  p.self,
		PhysicalAddress: p.physical,
		DeviceType:      p.cfg.DeviceType,
		OSDName:         p.osdName,
		VendorID:        p.effectiveVendorLocked(),
		PowerStatus:     p.power,
	}
}

// SetLogicalAddress sets the address replies are sent from and direct
// messages are accepted on.
func (p *Processor) SetLogicalAddress(addr cec.LogicalAddress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.self = addr
}

// LogicalAddress returns this device's logical address.
func (p *Processor) LogicalAddress() cec.LogicalAddress {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.self
}

// SetPhysicalAddress sets this device's physical address.
func (p *Processor) SetPhysicalAddress(pa cec.PhysicalAddress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.physical = pa
}

// PhysicalAddress returns this device's physical address.
func (p *Processor) PhysicalAddress() cec.PhysicalAddress {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.physical
}

// SetOSDName sets the name reported in Set OSD Name.
func (p *Processor) SetOSDName(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.osdName = cec.TruncateOSDName(name)
}

// announcedName is the operand of Set OSD Name, which may not be empty.
func (p *Processor) announcedName() string {
	if name := p.Identity().OSDName; name != "" {
		return name
	}
	return DefaultOSDName
}

// SetVendorID sets the configured vendor ID. Zero restores the default.
func (p *Processor) SetVendorID(v cec.VendorID) {
	if v == 0 {
		v = cec.VendorIDDefault
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vendorID = v
}

// SetPowerStatus sets the status reported in Report Power Status.
func (p *Processor) SetPowerStatus(s cec.PowerStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.power = s
}

// HandleFrame decodes and dispatches one frame. It is the bus frame
// listener and never panics on malformed input.
func (p *Processor) HandleFrame(frame []byte) {
	if !p.running.Load() {
		return
	}
	h, msg, err := cec.Decode(frame)
	if err != nil {
		p.debugLog("dropping frame", "len", len(frame), "error", err)
		return
	}
	p.Dispatch(h, msg)
}

// Dispatch runs the handler for msg if it passes the destination filter.
func (p *Processor) Dispatch(h cec.Header, msg cec.Message) {
	if _, ok := msg.(cec.Unhandled); ok {
		p.logMessage(h, msg, log.DispositionUnhandled)
		return
	}

	self := p.LogicalAddress()
	rule := addressingOf(msg)
	if !rule.accepts(h, self) {
		p.debugLog("ignoring message",
			"message", cec.Name(msg), "header", h.String(), "rule", rule.String())
		p.logMessage(h, msg, log.DispositionIgnored)
		return
	}

	p.logMessage(h, msg, log.DispositionHandled)
	p.handle(h, msg)
}

// emit queues an event for the host.
func (p *Processor) emit(ev notify.Event) {
	if p.emitter != nil {
		p.emitter.Emit(ev)
	}
}

// send encodes msg from this device to the destination.
func (p *Processor) send(ctx context.Context, to cec.LogicalAddress, msg cec.Message) error {
	if p.bus == nil {
		return ErrNoBus
	}
	h := cec.Header{Source: p.LogicalAddress(), Destination: to}
	err := p.bus.SendTo(ctx, to, cec.Encode(h, msg))
	p.logSent(h, msg, err)
	return err
}

// reply sends msg and swallows any failure.
func (p *Processor) reply(to cec.LogicalAddress, msg cec.Message) {
	ctx := context.Background()
	if p.cfg.ReplyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.ReplyTimeout)
		defer cancel()
	}
	if err := p.send(ctx, to, msg); err != nil {
		p.debugLog("reply not delivered", "message", cec.Name(msg), "to", uint8(to), "error", err)
		p.logError("reply "+cec.Name(msg), err)
	}
}

func (p *Processor) debugLog(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Processor) infoLog(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}
