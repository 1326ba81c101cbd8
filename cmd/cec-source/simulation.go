package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/transport"
)

// errNoSink is returned by simSink while no sink is plugged in.
var errNoSink = errors.New("no sink connected")

// simSink is the EDID of the simulated sink. Hotplug commands swap it.
type simSink struct {
	mu   sync.Mutex
	edid []byte
}

// ReadEDID implements edid.Reader.
func (s *simSink) ReadEDID() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.edid) == 0 {
		return nil, errNoSink
	}
	return append([]byte(nil), s.edid...), nil
}

// Plug connects a sink made by manufacturer which places this device at pa.
func (s *simSink) Plug(manufacturer string, pa cec.PhysicalAddress) error {
	data, err := buildEDID(manufacturer, pa)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.edid = data
	s.mu.Unlock()
	return nil
}

// Unplug disconnects the sink.
func (s *simSink) Unplug() {
	s.mu.Lock()
	s.edid = nil
	s.mu.Unlock()
}

// buildEDID returns a base block plus one CEA-861 extension carrying an
// HDMI vendor-specific data block.
func buildEDID(manufacturer string, pa cec.PhysicalAddress) ([]byte, error) {
	if len(manufacturer) != 3 {
		return nil, fmt.Errorf("manufacturer %q must be three letters", manufacturer)
	}
	var id uint16
	for _, c := range strings.ToUpper(manufacturer) {
		if c < 'A' || c > 'Z' {
			return nil, fmt.Errorf("manufacturer %q must be three letters", manufacturer)
		}
		id = id<<5 | uint16(c-'A'+1)
	}

	b := make([]byte, 256)
	copy(b, []byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00})
	b[8], b[9] = byte(id>>8), byte(id)
	b[126] = 1

	ext := b[128:]
	ext[0], ext[1] = 0x02, 0x03
	ext[2] = 4 + 6
	ext[4] = 3<<5 | 5
	ext[5], ext[6], ext[7] = 0x03, 0x0C, 0x00
	pab := pa.Bytes()
	ext[8], ext[9] = pab[0], pab[1]
	return b, nil
}

// newSimulatedBus returns a loopback bus populated from cfg.
func newSimulatedBus(cfg Config) (*transport.Loopback, error) {
	peers, err := cfg.simulatedPeers()
	if err != nil {
		return nil, err
	}
	pa, err := cec.ParsePhysicalAddress(cfg.BusPhysicalAddress)
	if err != nil {
		return nil, fmt.Errorf("bus_physical_address: %w", err)
	}

	bus := transport.NewLoopback()
	bus.SetPhysicalAddress(pa)
	for _, p := range peers {
		bus.AddPeer(p)
	}
	return bus, nil
}
