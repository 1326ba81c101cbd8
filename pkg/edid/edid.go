// Package edid extracts the few sink EDID fields the CEC source needs: the
// manufacturer ID for vendor quirks and the HDMI physical address.
package edid

import (
	"errors"
	"fmt"
	"os"

	"github.com/devsettings/cecsource-go/pkg/cec"
)

const (
	blockSize = 128

	manufacturerOffset = 8
	extensionCount     = 126

	ceaTag         = 0x02
	vendorBlockTag = 3
)

// hdmiOUI is the HDMI Licensing IEEE OUI, stored LSB first in the VSDB.
var hdmiOUI = [3]byte{0x03, 0x0C, 0x00}

// lgManufacturer is "GSM" packed into bytes 8..9.
var lgManufacturer = [2]byte{0x1E, 0x6D}

var (
	ErrTooShort  = errors.New("edid too short")
	ErrNoAddress = errors.New("edid has no HDMI physical address")
)

// Reader returns the connected sink's raw EDID.
type Reader interface {
	ReadEDID() ([]byte, error)
}

// Static is a Reader returning fixed bytes.
type Static []byte

// ReadEDID returns a copy of the bytes.
func (s Static) ReadEDID() ([]byte, error) {
	if len(s) == 0 {
		return nil, ErrTooShort
	}
	return append([]byte(nil), s...), nil
}

// FileReader reads EDID from a file such as
// /sys/class/drm/card0-HDMI-A-1/edid.
type FileReader struct {
	Path string
}

// ReadEDID reads the file.
func (r FileReader) ReadEDID() ([]byte, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("read edid: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("read edid %s: %w", r.Path, ErrTooShort)
	}
	return data, nil
}

// ManufacturerID decodes the three-letter PNP ID from bytes 8..9.
func ManufacturerID(edid []byte) (string, error) {
	if len(edid) < manufacturerOffset+2 {
		return "", ErrTooShort
	}
	v := uint16(edid[manufacturerOffset])<<8 | uint16(edid[manufacturerOffset+1])
	letters := [3]byte{
		byte(v>>10&0x1F) + 'A' - 1,
		byte(v>>5&0x1F) + 'A' - 1,
		byte(v&0x1F) + 'A' - 1,
	}
	return string(letters[:]), nil
}

// IsLG reports whether the sink's manufacturer is LG (GSM).
func IsLG(edid []byte) bool {
	if len(edid) < manufacturerOffset+2 {
		return false
	}
	return edid[manufacturerOffset] == lgManufacturer[0] && edid[manufacturerOffset+1] == lgManufacturer[1]
}

// PhysicalAddress finds the physical address in the HDMI vendor-specific
// data block of the first CEA-861 extension.
func PhysicalAddress(edid []byte) (cec.PhysicalAddress, error) {
	if len(edid) < blockSize {
		return cec.InvalidPhysicalAddress, ErrTooShort
	}
	exts := int(edid[extensionCount])
	for i := 1; i <= exts; i++ {
		start := i * blockSize
		if len(edid) < start+blockSize {
			return cec.InvalidPhysicalAddress, ErrTooShort
		}
		if pa, ok := ceaPhysicalAddress(edid[start : start+blockSize]); ok {
			return pa, nil
		}
	}
	return cec.InvalidPhysicalAddress, ErrNoAddress
}

func ceaPhysicalAddress(block []byte) (cec.PhysicalAddress, bool) {
	if block[0] != ceaTag {
		return 0, false
	}
	end := int(block[2])
	if end < 4 {
		return 0, false
	}
	if end > len(block) {
		end = len(block)
	}
	for off := 4; off < end; {
		tag := block[off] >> 5
		n := int(block[off] & 0x1F)
		if off+1+n > end {
			break
		}
		data := block[off+1 : off+1+n]
		if tag == vendorBlockTag && n >= 5 &&
			data[0] == hdmiOUI[0] && data[1] == hdmiOUI[1] && data[2] == hdmiOUI[2] {
			return cec.PhysicalAddress(uint16(data[3])<<8 | uint16(data[4])), true
		}
		off += 1 + n
	}
	return 0, false
}
