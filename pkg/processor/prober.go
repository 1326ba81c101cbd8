package processor

import (
	"context"
	"sync"
	"time"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/log"
	"github.com/devsettings/cecsource-go/pkg/notify"
)

// ProbeResult summarizes one probe pass.
type ProbeResult struct {
	// Present lists the peers that acknowledged.
	Present []cec.LogicalAddress

	// Added lists peers that were not present before this pass.
	Added []cec.LogicalAddress

	// Removed lists known peers that did not acknowledge. A peer is known
	// once it was present or reported its info.
	Removed []cec.LogicalAddress
}

// giveInfo is sent to every peer that answers a ping.
var giveInfo = []cec.Message{
	cec.GivePhysicalAddress{},
	cec.GiveOSDName{},
	cec.GiveDeviceVendorID{},
	cec.GiveDevicePowerStatus{},
	cec.GetCECVersion{},
}

// Probe pings every peer address except this device's own. Failures are
// logged and never abort the pass; only ctx cancellation stops it early.
func (p *Processor) Probe(ctx context.Context) ProbeResult {
	var res ProbeResult
	if p.bus == nil {
		return res
	}
	self := p.LogicalAddress()

	for addr := cec.MinPeerAddress; addr <= cec.MaxPeerAddress; addr++ {
		if ctx.Err() != nil {
			break
		}
		if addr == self {
			continue
		}

		if err := p.bus.Ping(ctx, self, addr); err != nil {
			if ctx.Err() != nil {
				break
			}
			p.probeLost(addr, &res)
			continue
		}
		p.probeFound(ctx, addr, &res)
	}

	p.debugLog("probe complete",
		"present", len(res.Present), "added", len(res.Added), "removed", len(res.Removed))
	return res
}

func (p *Processor) probeFound(ctx context.Context, addr cec.LogicalAddress, res *ProbeResult) {
	res.Present = append(res.Present, addr)

	added, err := p.dir.MarkPresent(addr)
	if err != nil {
		p.debugLog("probe mark failed", "address", uint8(addr), "error", err)
		return
	}
	if added {
		res.Added = append(res.Added, addr)
		p.logState(log.StateEntityDevice, "", "PRESENT", "ping")
		p.emit(notify.DeviceAdded(addr))
	}

	for _, req := range giveInfo {
		if err := p.send(ctx, addr, req); err != nil {
			p.debugLog("probe request not delivered",
				"address", uint8(addr), "message", cec.Name(req), "error", err)
			if ctx.Err() != nil {
				return
			}
		}
	}
}

func (p *Processor) probeLost(addr cec.LogicalAddress, res *ProbeResult) {
	known, err := p.dir.Evict(addr)
	if err != nil {
		p.debugLog("probe evict failed", "address", uint8(addr), "error", err)
		return
	}
	if known {
		res.Removed = append(res.Removed, addr)
		p.infoLog("device removed", "address", uint8(addr))
		p.logState(log.StateEntityDevice, "PRESENT", "ABSENT", "ping")
		p.emit(notify.DeviceRemoved(addr))
	}
}

// DefaultProbeInterval is the default interval between periodic probes.
const DefaultProbeInterval = 30 * time.Second

// ProbeStats describes the periodic probe loop.
type ProbeStats struct {
	Runs    int
	LastRun time.Time
	Last    ProbeResult
}

// ProbeLoop runs Probe on an interval until stopped.
type ProbeLoop struct {
	p        *Processor
	interval time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	trigger chan struct{}
	stats   ProbeStats
}

// NewProbeLoop creates a loop probing every interval. Zero means
// DefaultProbeInterval.
func NewProbeLoop(p *Processor, interval time.Duration) *ProbeLoop {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &ProbeLoop{
		p:        p,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// Start begins probing. The first probe runs immediately.
func (l *ProbeLoop) Start(ctx context.Context) {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.stopCh = make(chan struct{})
	l.doneCh = make(chan struct{})
	stop, done := l.stopCh, l.doneCh
	l.mu.Unlock()

	go l.loop(ctx, stop, done)
}

// Stop stops probing and waits for a running probe to finish.
func (l *ProbeLoop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	close(l.stopCh)
	done := l.doneCh
	l.mu.Unlock()

	<-done
}

// Trigger requests an immediate probe. It does not block.
func (l *ProbeLoop) Trigger() {
	select {
	case l.trigger <- struct{}{}:
	default:
	}
}

// IsRunning reports whether the loop is active.
func (l *ProbeLoop) IsRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Stats returns loop statistics.
func (l *ProbeLoop) Stats() ProbeStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

func (l *ProbeLoop) loop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	probeCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-stop:
			cancel()
		case <-probeCtx.Done():
		}
	}()

	l.runOnce(probeCtx)
	for {
		select {
		case <-probeCtx.Done():
			return
		case <-ticker.C:
			l.runOnce(probeCtx)
		case <-l.trigger:
			l.runOnce(probeCtx)
		}
	}
}

func (l *ProbeLoop) runOnce(ctx context.Context) {
	res := l.p.Probe(ctx)
	l.mu.Lock()
	l.stats.Runs++
	l.stats.LastRun = time.Now()
	l.stats.Last = res
	l.mu.Unlock()
}
