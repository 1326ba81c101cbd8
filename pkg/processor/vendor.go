package processor

import (
	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/edid"
)

// ApplySinkEDID inspects the connected sink's EDID and sets the vendor
// quirk when the sink is an LG TV. It returns the new flag.
func (p *Processor) ApplySinkEDID(data []byte) bool {
	quirk := edid.IsLG(data)

	p.mu.Lock()
	changed := p.vendorQuirk != quirk
	p.vendorQuirk = quirk
	p.mu.Unlock()

	if changed {
		mfr, _ := edid.ManufacturerID(data)
		p.infoLog("sink vendor quirk", "enabled", quirk, "manufacturer", mfr)
	}
	return quirk
}

// ClearVendorQuirk clears the flag set by ApplySinkEDID.
func (p *Processor) ClearVendorQuirk() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vendorQuirk = false
}

// VendorQuirk reports whether the LG vendor quirk is active.
func (p *Processor) VendorQuirk() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.vendorQuirk
}

// ConfiguredVendorID returns the vendor ID without the quirk applied.
func (p *Processor) ConfiguredVendorID() cec.VendorID {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.vendorID
}

// effectiveVendorLocked returns the vendor ID to report. LG sinks only
// route CEC key presses to sources announcing the LG vendor ID.
func (p *Processor) effectiveVendorLocked() cec.VendorID {
	if p.vendorQuirk {
		return cec.VendorIDLG
	}
	return p.vendorID
}
