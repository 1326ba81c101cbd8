package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/log"
	"github.com/devsettings/cecsource-go/pkg/transport"
)

// AllocateLogicalAddress claims the first free candidate and makes it this
// device's address. A candidate is free when a poll from it to itself is
// not acknowledged. When every candidate is taken the device stays
// unregistered (15). Buses that claim addresses in their driver do so
// instead of polling.
func (p *Processor) AllocateLogicalAddress(ctx context.Context, candidates []cec.LogicalAddress) (cec.LogicalAddress, error) {
	if p.bus == nil {
		return cec.AddrUnregistered, ErrNoBus
	}

	addr, err := p.claim(ctx, candidates)
	if err != nil {
		return cec.AddrUnregistered, err
	}

	old := p.LogicalAddress()
	p.SetLogicalAddress(addr)
	if setter, ok := p.bus.(transport.LogicalAddressSetter); ok {
		if err := setter.SetLogicalAddress(addr); err != nil {
			return addr, fmt.Errorf("set logical address: %w", err)
		}
	}
	if old != addr {
		p.logState(log.StateEntityAddress, fmt.Sprint(uint8(old)), fmt.Sprint(uint8(addr)), "allocation")
	}
	p.infoLog("logical address allocated", "address", uint8(addr), "name", addr.String())
	return addr, nil
}

func (p *Processor) claim(ctx context.Context, candidates []cec.LogicalAddress) (cec.LogicalAddress, error) {
	if claimer, ok := p.bus.(transport.AddressClaimer); ok {
		addr, err := claimer.ClaimLogicalAddress(ctx, p.cfg.DeviceType, candidates)
		if !errors.Is(err, transport.ErrNotSupported) {
			return addr, err
		}
	}

	for _, c := range candidates {
		err := p.bus.Ping(ctx, c, c)
		switch {
		case errors.Is(err, transport.ErrNoAck):
			return c, nil
		case err == nil:
			p.debugLog("logical address taken", "address", uint8(c))
		case ctx.Err() != nil:
			return cec.AddrUnregistered, ctx.Err()
		default:
			p.debugLog("logical address poll failed", "address", uint8(c), "error", err)
		}
	}
	return cec.AddrUnregistered, nil
}
