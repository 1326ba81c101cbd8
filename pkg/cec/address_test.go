package cec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhysicalAddressString(t *testing.T) {
	tests := []struct {
		pa   PhysicalAddress
		want string
	}{
		{0x0000, "0.0.0.0"},
		{0x1000, "1.0.0.0"},
		{0x2130, "2.1.3.0"},
		{InvalidPhysicalAddress, "f.f.f.f"},
	}
	for _, tt := range tests {
		if got := tt.pa.String(); got != tt.want {
			t.Errorf("PhysicalAddress(0x%04x).String() = %q, want %q", uint16(tt.pa), got, tt.want)
		}
	}
}

func TestParsePhysicalAddress(t *testing.T) {
	pa, err := ParsePhysicalAddress("2.1.0.0")
	assert.NoError(t, err)
	assert.Equal(t, NewPhysicalAddress(2, 1, 0, 0), pa)
	assert.Equal(t, uint8(1), pa.Nibble(1))

	for _, bad := range []string{"", "1.0.0", "1.0.0.10", "g.0.0.0", "1.0.0.0.0"} {
		_, err := ParsePhysicalAddress(bad)
		if !errors.Is(err, ErrInvalidPhysicalAddress) {
			t.Errorf("ParsePhysicalAddress(%q) error = %v, want ErrInvalidPhysicalAddress", bad, err)
		}
	}
}

func TestPhysicalAddressBytes(t *testing.T) {
	b := NewPhysicalAddress(1, 2, 3, 4).Bytes()
	assert.Equal(t, [2]byte{0x12, 0x34}, b)
	assert.False(t, InvalidPhysicalAddress.IsValid())
}

func TestHeader(t *testing.T) {
	h := ParseHeader(0x4F)
	assert.Equal(t, AddrPlayback1, h.Source)
	assert.True(t, h.IsBroadcast())
	assert.Equal(t, byte(0x4F), h.Byte())
	assert.Equal(t, "4->F", h.String())
}

func TestLogicalAddressIsPeer(t *testing.T) {
	assert.False(t, AddrTV.IsPeer())
	assert.True(t, AddrRecording1.IsPeer())
	assert.True(t, AddrSpecificUse.IsPeer())
	assert.False(t, AddrBroadcast.IsPeer())
	assert.Equal(t, DeviceTypePlayback, AddrPlayback2.DeviceType())
}

func TestVendorIDFormatting(t *testing.T) {
	assert.Equal(t, "000", VendorID(0).String())
	assert.Equal(t, "aabbcc", NewVendorID(0xAA, 0xBB, 0xCC).String())
	assert.Equal(t, "019fb", VendorIDDefault.String())
	assert.Equal(t, "0019fb", VendorIDDefault.Hex())
	assert.Equal(t, [3]byte{0x00, 0xE0, 0x91}, VendorIDLG.Bytes())
}

func TestUICommandString(t *testing.T) {
	assert.Equal(t, "Number 7", UINumber7.String())
	assert.Equal(t, "Volume Up", UIVolumeUp.String())
	assert.Equal(t, "Key(0x99)", UICommand(0x99).String())
}
