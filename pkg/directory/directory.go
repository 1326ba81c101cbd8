// Package directory holds the fixed table of CEC peers seen on the bus and the
// active-source state derived from routing messages.
//
// The directory has exactly one record per peer logical address 1..14. Records
// are created with defaults when the directory is created and are reset, never
// removed, when a device disappears. All state is guarded by one lock; every
// query returns a copy.
package directory

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/devsettings/cecsource-go/pkg/cec"
)

// Size is the number of peer slots.
const Size = int(cec.MaxPeerAddress - cec.MinPeerAddress + 1)

// DefaultOSDName is the OSD name of a record that has not reported one.
const DefaultOSDName = "NA"

// ErrAddressRange is returned for logical addresses outside 1..14.
var ErrAddressRange = errors.New("logical address out of directory range")

// Record describes one peer.
type Record struct {
	LogicalAddress  cec.LogicalAddress
	PhysicalAddress cec.PhysicalAddress
	DeviceType      cec.DeviceType
	OSDName         string
	VendorID        cec.VendorID
	CECVersion      cec.Version
	PowerStatus     cec.PowerStatus

	// InfoReady is set once the peer has reported its version, name or vendor.
	InfoReady bool

	// Present is set once the peer has answered a ping or reported its
	// physical address, and cleared on eviction.
	Present bool
}

// defaultRecord returns the record every slot starts with.
func defaultRecord(addr cec.LogicalAddress) Record {
	return Record{
		LogicalAddress:  addr,
		PhysicalAddress: cec.InvalidPhysicalAddress,
		DeviceType:      addr.DeviceType(),
		OSDName:         DefaultOSDName,
		CECVersion:      cec.VersionUnknown,
		PowerStatus:     cec.PowerStatusUnknown,
	}
}

// IsDefault reports whether the record carries no observed data.
func (r Record) IsDefault() bool {
	return r == defaultRecord(r.LogicalAddress)
}

// Vendor returns the vendor ID in directory notation, e.g. "000".
func (r Record) Vendor() string {
	return r.VendorID.String()
}

// ActiveSourceState is this device's view of who is showing content.
type ActiveSourceState struct {
	// IsActiveSource is true when this device is the active source.
	IsActiveSource bool

	// ActiveAddress is the logical address of the last reported active
	// source. Valid only when HasActiveAddress is set.
	ActiveAddress    cec.LogicalAddress
	HasActiveAddress bool

	// ActivePhysicalAddress is the physical address of the active source.
	ActivePhysicalAddress cec.PhysicalAddress

	// RoutingPath is the last path announced by a routing message.
	RoutingPath cec.PhysicalAddress
}

// Directory is the fixed-size peer table plus active-source state.
type Directory struct {
	mu      sync.RWMutex
	records [Size]Record
	active  ActiveSourceState
	asleep  bool
}

// New creates a directory with every slot at its default.
func New() *Directory {
	d := &Directory{}
	d.resetLocked()
	return d
}

func index(addr cec.LogicalAddress) (int, error) {
	if !addr.IsPeer() {
		return 0, fmt.Errorf("%w: %d", ErrAddressRange, addr)
	}
	return int(addr - cec.MinPeerAddress), nil
}

func (d *Directory) resetLocked() {
	for i := range d.records {
		d.records[i] = defaultRecord(cec.LogicalAddress(i) + cec.MinPeerAddress)
	}
	d.active = ActiveSourceState{
		ActivePhysicalAddress: cec.InvalidPhysicalAddress,
		RoutingPath:           cec.InvalidPhysicalAddress,
	}
}

// Len always returns Size.
func (d *Directory) Len() int {
	return Size
}

// Get returns a copy of the record for addr.
func (d *Directory) Get(addr cec.LogicalAddress) (Record, error) {
	i, err := index(addr)
	if err != nil {
		return Record{}, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.records[i], nil
}

// List returns a copy of all Size records in address order.
func (d *Directory) List() []Record {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Record, Size)
	copy(out, d.records[:])
	return out
}

// update applies fn to the record for addr under the write lock.
func (d *Directory) update(addr cec.LogicalAddress, fn func(r *Record)) error {
	i, err := index(addr)
	if err != nil {
		return err
	}
	d.mu.Lock()
	fn(&d.records[i])
	d.mu.Unlock()
	return nil
}

// SetOSDName stores a reported OSD name.
func (d *Directory) SetOSDName(addr cec.LogicalAddress, name string) error {
	return d.update(addr, func(r *Record) {
		r.OSDName = cec.TruncateOSDName(name)
		r.InfoReady = true
	})
}

// SetVendorID stores a reported vendor ID.
func (d *Directory) SetVendorID(addr cec.LogicalAddress, v cec.VendorID) error {
	return d.update(addr, func(r *Record) {
		r.VendorID = v
		r.InfoReady = true
	})
}

// SetCECVersion stores a reported CEC version.
func (d *Directory) SetCECVersion(addr cec.LogicalAddress, v cec.Version) error {
	return d.update(addr, func(r *Record) {
		r.CECVersion = v
		r.InfoReady = true
	})
}

// SetPowerStatus stores a reported power status.
func (d *Directory) SetPowerStatus(addr cec.LogicalAddress, s cec.PowerStatus) error {
	return d.update(addr, func(r *Record) {
		r.PowerStatus = s
	})
}

// SetPhysicalAddress stores a reported physical address and device type and
// marks the peer present. added is true when the peer was not present before.
func (d *Directory) SetPhysicalAddress(addr cec.LogicalAddress, pa cec.PhysicalAddress, t cec.DeviceType) (added bool, err error) {
	err = d.update(addr, func(r *Record) {
		added = !r.Present
		r.PhysicalAddress = pa
		r.DeviceType = t
		r.Present = true
	})
	return added, err
}

// MarkPresent records a successful ping. added is true when the peer was not
// present before.
func (d *Directory) MarkPresent(addr cec.LogicalAddress) (added bool, err error) {
	err = d.update(addr, func(r *Record) {
		added = !r.Present
		r.Present = true
	})
	return added, err
}

// IsPresent reports whether addr is a present peer.
func (d *Directory) IsPresent(addr cec.LogicalAddress) bool {
	r, err := d.Get(addr)
	return err == nil && r.Present
}

// Evict resets the record for addr to its defaults. known reports whether
// the peer had been present or had reported its info.
func (d *Directory) Evict(addr cec.LogicalAddress) (known bool, err error) {
	err = d.update(addr, func(r *Record) {
		known = r.Present || r.InfoReady
		*r = defaultRecord(addr)
	})
	return known, err
}

// Reset returns every record and the active-source state to defaults.
func (d *Directory) Reset() {
	d.mu.Lock()
	d.resetLocked()
	d.asleep = false
	d.mu.Unlock()
}

// ActiveSource returns a copy of the active-source state.
func (d *Directory) ActiveSource() ActiveSourceState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.active
}

// IsActiveSource reports whether this device is the active source.
func (d *Directory) IsActiveSource() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.active.IsActiveSource
}

// ActiveChange is the outcome of an active-source update, taken under the
// same lock as the update.
type ActiveChange struct {
	// Was and Now are IsActiveSource before and after the update.
	Was, Now bool

	// Woke is true when the update named this device while asleep.
	Woke bool
}

// Changed reports whether IsActiveSource flipped.
func (c ActiveChange) Changed() bool { return c.Was != c.Now }

// ReportActiveSource records an Active Source broadcast from src naming pa.
// self is this device's physical address. The asleep flag is cleared when
// the report names this device.
func (d *Directory) ReportActiveSource(src cec.LogicalAddress, pa, self cec.PhysicalAddress) ActiveChange {
	d.mu.Lock()
	defer d.mu.Unlock()

	c := ActiveChange{Was: d.active.IsActiveSource}
	c.Now = self.IsValid() && pa == self
	d.active.IsActiveSource = c.Now
	d.active.ActiveAddress = src
	d.active.HasActiveAddress = true
	d.active.ActivePhysicalAddress = pa
	d.active.RoutingPath = pa

	if c.Now && d.asleep {
		d.asleep = false
		c.Woke = true
	}
	return c
}

// SetRoutingPath records the path from a routing message and re-evaluates
// whether this device is the active source.
func (d *Directory) SetRoutingPath(path, self cec.PhysicalAddress) ActiveChange {
	d.mu.Lock()
	defer d.mu.Unlock()

	c := ActiveChange{Was: d.active.IsActiveSource}
	d.active.RoutingPath = path
	c.Now = self.IsValid() && path == self
	d.active.IsActiveSource = c.Now
	if !c.Now && d.active.ActivePhysicalAddress == self {
		d.active.HasActiveAddress = false
		d.active.ActivePhysicalAddress = cec.InvalidPhysicalAddress
	}
	return c
}

// SetSelfActive marks this device as active source (or not). changed reports
// whether IsActiveSource flipped.
func (d *Directory) SetSelfActive(addr cec.LogicalAddress, pa cec.PhysicalAddress, active bool) (changed bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	changed = d.active.IsActiveSource != active
	d.active.IsActiveSource = active
	if active {
		d.active.ActiveAddress = addr
		d.active.HasActiveAddress = true
		d.active.ActivePhysicalAddress = pa
		d.active.RoutingPath = pa
	}
	return changed
}

// SetAsleep records whether the host is in standby.
func (d *Directory) SetAsleep(asleep bool) {
	d.mu.Lock()
	d.asleep = asleep
	d.mu.Unlock()
}

// Asleep reports whether the host is in standby.
func (d *Directory) Asleep() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.asleep
}

// String dumps the table, one present or populated peer per line.
func (d *Directory) String() string {
	records := d.List()
	active := d.ActiveSource()

	var b strings.Builder
	fmt.Fprintf(&b, "active source: %t", active.IsActiveSource)
	if active.HasActiveAddress {
		fmt.Fprintf(&b, " (current %d @ %s)", active.ActiveAddress, active.ActivePhysicalAddress)
	}
	b.WriteByte('\n')
	for _, r := range records {
		if r.IsDefault() {
			continue
		}
		fmt.Fprintf(&b, "%2d %-20s %s name=%q vendor=%s version=%s power=%s ready=%t present=%t\n",
			r.LogicalAddress, r.LogicalAddress, r.PhysicalAddress, r.OSDName, r.Vendor(),
			r.CECVersion, r.PowerStatus, r.InfoReady, r.Present)
	}
	return b.String()
}
