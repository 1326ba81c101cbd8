package processor

import (
	"fmt"
	"time"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/log"
	"github.com/devsettings/cecsource-go/pkg/transport"
)

// captureEvent returns the capture logger and a stamped event, or a nil
// logger when capture is off.
func (p *Processor) captureEvent(dir log.Direction, cat log.Category) (log.Logger, log.Event) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.capture == nil {
		return nil, log.Event{}
	}
	ev := log.Event{
		Timestamp:    time.Now(),
		SessionID:    p.sessionID,
		Direction:    dir,
		Layer:        log.LayerProcessor,
		Category:     cat,
		LocalAddress: uint8(p.self),
	}
	if p.physical.IsValid() {
		ev.PhysicalAddress = p.physical.String()
	}
	return p.capture, ev
}

func (p *Processor) logMessage(h cec.Header, msg cec.Message, d log.Disposition) {
	logger, ev := p.captureEvent(log.DirectionIn, log.CategoryMessage)
	if logger == nil {
		return
	}
	ev.Message = messageEvent(h, msg, d)
	logger.Log(ev)
}

// logSent records an outgoing message with its transmit result.
func (p *Processor) logSent(h cec.Header, msg cec.Message, err error) {
	logger, ev := p.captureEvent(log.DirectionOut, log.CategoryMessage)
	if logger == nil {
		return
	}
	me := messageEvent(h, msg, log.DispositionSent)
	me.Result = transport.TxResultOf(err)
	ev.Message = me
	logger.Log(ev)
}

func messageEvent(h cec.Header, msg cec.Message, d log.Disposition) *log.MessageEvent {
	me := &log.MessageEvent{
		Name:        cec.Name(msg),
		Source:      uint8(h.Source),
		Destination: uint8(h.Destination),
		Disposition: d,
		Detail:      detail(msg),
	}
	if !cec.IsPolling(msg) {
		op := uint8(msg.OpCode())
		me.OpCode = &op
	}
	return me
}

func (p *Processor) logError(context string, err error) {
	logger, ev := p.captureEvent(log.DirectionOut, log.CategoryError)
	if logger == nil {
		return
	}
	ev.Error = &log.ErrorEventData{
		Layer:   log.LayerProcessor,
		Message: err.Error(),
		Context: context,
	}
	logger.Log(ev)
}

func (p *Processor) logState(entity log.StateEntity, oldState, newState, reason string) {
	logger, ev := p.captureEvent(log.DirectionIn, log.CategoryState)
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

// detail summarizes the operands of msg for the capture log.
func detail(msg cec.Message) string {
	switch m := msg.(type) {
	case cec.ActiveSource:
		return m.PhysicalAddress.String()
	case cec.InactiveSource:
		return m.PhysicalAddress.String()
	case cec.RoutingChange:
		return m.From.String() + " -> " + m.To.String()
	case cec.RoutingInformation:
		return m.PhysicalAddress.String()
	case cec.SetStreamPath:
		return m.PhysicalAddress.String()
	case cec.ReportPhysicalAddress:
		return fmt.Sprintf("%s %s", m.PhysicalAddress, m.DeviceType)
	case cec.SetOSDName:
		return fmt.Sprintf("%q", m.Name)
	case cec.DeviceVendorID:
		return m.VendorID.Hex()
	case cec.CECVersion:
		return m.Version.String()
	case cec.ReportPowerStatus:
		return m.Status.String()
	case cec.UserControlPressed:
		return m.Command.String()
	case cec.FeatureAbort:
		return fmt.Sprintf("%s %s", m.Rejected, m.Reason)
	case cec.Unhandled:
		return fmt.Sprintf("% x", m.Operands)
	default:
		return ""
	}
}
