package directory

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsettings/cecsource-go/pkg/cec"
)

func TestNewDirectoryDefaults(t *testing.T) {
	d := New()
	list := d.List()

	require.Len(t, list, 14)
	assert.Equal(t, 14, d.Len())
	for i, r := range list {
		assert.Equal(t, cec.LogicalAddress(i+1), r.LogicalAddress)
		assert.Equal(t, "NA", r.OSDName)
		assert.Equal(t, "000", r.Vendor())
		assert.Equal(t, cec.InvalidPhysicalAddress, r.PhysicalAddress)
		assert.Equal(t, cec.VersionUnknown, r.CECVersion)
		assert.Equal(t, cec.PowerStatusUnknown, r.PowerStatus)
		assert.False(t, r.InfoReady)
		assert.False(t, r.Present)
		assert.True(t, r.IsDefault())
	}

	as := d.ActiveSource()
	assert.False(t, as.IsActiveSource)
	assert.False(t, as.HasActiveAddress)
}

func TestAddressRange(t *testing.T) {
	d := New()
	for _, addr := range []cec.LogicalAddress{cec.AddrTV, cec.AddrBroadcast, 16, 200} {
		if _, err := d.Get(addr); !errors.Is(err, ErrAddressRange) {
			t.Errorf("Get(%d) error = %v, want ErrAddressRange", addr, err)
		}
		if err := d.SetOSDName(addr, "x"); !errors.Is(err, ErrAddressRange) {
			t.Errorf("SetOSDName(%d) error = %v, want ErrAddressRange", addr, err)
		}
		if _, err := d.Evict(addr); !errors.Is(err, ErrAddressRange) {
			t.Errorf("Evict(%d) error = %v, want ErrAddressRange", addr, err)
		}
	}
	assert.Len(t, d.List(), Size)
}

func TestReportUpdates(t *testing.T) {
	d := New()

	t.Run("osd name", func(t *testing.T) {
		require.NoError(t, d.SetOSDName(cec.AddrPlayback1, "Player"))
		r, _ := d.Get(cec.AddrPlayback1)
		assert.Equal(t, "Player", r.OSDName)
		assert.True(t, r.InfoReady)
	})

	t.Run("osd name truncated", func(t *testing.T) {
		require.NoError(t, d.SetOSDName(cec.AddrTuner1, "ABCDEFGHIJKLMNOPQ"))
		r, _ := d.Get(cec.AddrTuner1)
		assert.Equal(t, "ABCDEFGHIJKLMN", r.OSDName)
	})

	t.Run("vendor id", func(t *testing.T) {
		require.NoError(t, d.SetVendorID(cec.AddrAudioSystem, cec.NewVendorID(0xAA, 0xBB, 0xCC)))
		r, _ := d.Get(cec.AddrAudioSystem)
		assert.Equal(t, "aabbcc", r.Vendor())
		assert.True(t, r.InfoReady)
	})

	t.Run("cec version", func(t *testing.T) {
		require.NoError(t, d.SetCECVersion(cec.AddrRecording1, cec.Version1_4))
		r, _ := d.Get(cec.AddrRecording1)
		assert.Equal(t, cec.Version1_4, r.CECVersion)
		assert.True(t, r.InfoReady)
	})

	t.Run("power status", func(t *testing.T) {
		require.NoError(t, d.SetPowerStatus(cec.AddrPlayback2, cec.PowerStatusStandby))
		r, _ := d.Get(cec.AddrPlayback2)
		assert.Equal(t, cec.PowerStatusStandby, r.PowerStatus)
		assert.False(t, r.InfoReady)
	})
}

func TestPhysicalAddressAddsOnce(t *testing.T) {
	d := New()
	pa := cec.NewPhysicalAddress(2, 0, 0, 0)

	added, err := d.SetPhysicalAddress(cec.AddrPlayback1, pa, cec.DeviceTypePlayback)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = d.SetPhysicalAddress(cec.AddrPlayback1, pa, cec.DeviceTypePlayback)
	require.NoError(t, err)
	assert.False(t, added)

	list := d.List()
	assert.Equal(t, pa, list[3].PhysicalAddress)
	assert.True(t, d.IsPresent(cec.AddrPlayback1))
}

func TestEvict(t *testing.T) {
	d := New()

	known, err := d.Evict(cec.AddrPlayback1)
	require.NoError(t, err)
	assert.False(t, known)

	_, _ = d.MarkPresent(cec.AddrPlayback1)
	_ = d.SetOSDName(cec.AddrPlayback1, "Player")

	known, err = d.Evict(cec.AddrPlayback1)
	require.NoError(t, err)
	assert.True(t, known)

	r, _ := d.Get(cec.AddrPlayback1)
	assert.True(t, r.IsDefault())
	assert.Len(t, d.List(), Size)

	t.Run("info without presence", func(t *testing.T) {
		d := New()
		require.NoError(t, d.SetOSDName(cec.AddrAudioSystem, "Soundbar"))
		r, _ := d.Get(cec.AddrAudioSystem)
		require.False(t, r.Present)
		require.True(t, r.InfoReady)

		known, err := d.Evict(cec.AddrAudioSystem)
		require.NoError(t, err)
		assert.True(t, known)

		r, _ = d.Get(cec.AddrAudioSystem)
		assert.True(t, r.IsDefault())
	})
}

func TestReportActiveSource(t *testing.T) {
	self := cec.NewPhysicalAddress(1, 0, 0, 0)
	other := cec.NewPhysicalAddress(2, 0, 0, 0)

	t.Run("names self", func(t *testing.T) {
		d := New()
		c := d.ReportActiveSource(cec.AddrTV, self, self)
		assert.Equal(t, ActiveChange{Was: false, Now: true}, c)
		assert.True(t, c.Changed())
		assert.True(t, d.IsActiveSource())
	})

	t.Run("names other", func(t *testing.T) {
		d := New()
		d.SetSelfActive(cec.AddrPlayback1, self, true)
		c := d.ReportActiveSource(cec.AddrPlayback2, other, self)
		assert.True(t, c.Was)
		assert.False(t, c.Now)
		as := d.ActiveSource()
		assert.Equal(t, cec.AddrPlayback2, as.ActiveAddress)
		assert.Equal(t, other, as.ActivePhysicalAddress)
	})

	t.Run("repeat is not a change", func(t *testing.T) {
		d := New()
		d.ReportActiveSource(cec.AddrTV, self, self)
		assert.False(t, d.ReportActiveSource(cec.AddrTV, self, self).Changed())
	})

	t.Run("wakes once", func(t *testing.T) {
		d := New()
		d.SetAsleep(true)
		assert.True(t, d.ReportActiveSource(cec.AddrTV, self, self).Woke)
		assert.False(t, d.Asleep())
		assert.False(t, d.ReportActiveSource(cec.AddrTV, self, self).Woke)
	})

	t.Run("invalid self never active", func(t *testing.T) {
		d := New()
		c := d.ReportActiveSource(cec.AddrTV, cec.InvalidPhysicalAddress, cec.InvalidPhysicalAddress)
		assert.False(t, c.Now)
	})
}

func TestSetRoutingPath(t *testing.T) {
	self := cec.NewPhysicalAddress(1, 0, 0, 0)
	d := New()

	c := d.SetRoutingPath(self, self)
	assert.Equal(t, ActiveChange{Was: false, Now: true}, c)
	assert.Equal(t, self, d.ActiveSource().RoutingPath)

	c = d.SetRoutingPath(cec.NewPhysicalAddress(3, 0, 0, 0), self)
	assert.Equal(t, ActiveChange{Was: true, Now: false}, c)
	assert.False(t, d.IsActiveSource())
}

// Concurrent updates must each see the state left by the previous one, so
// the reported flips account for the final state.
func TestActiveChangeConcurrent(t *testing.T) {
	self := cec.NewPhysicalAddress(1, 0, 0, 0)
	other := cec.NewPhysicalAddress(2, 0, 0, 0)
	d := New()

	var flips atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				var c ActiveChange
				pa := other
				if (i+j)%2 == 0 {
					pa = self
				}
				if j%3 == 0 {
					c = d.SetRoutingPath(pa, self)
				} else {
					c = d.ReportActiveSource(cec.AddrTV, pa, self)
				}
				if c.Changed() {
					flips.Add(1)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, flips.Load()%2 == 1, d.IsActiveSource())
}

func TestSetSelfActive(t *testing.T) {
	d := New()
	pa := cec.NewPhysicalAddress(1, 0, 0, 0)

	assert.True(t, d.SetSelfActive(cec.AddrPlayback1, pa, true))
	assert.False(t, d.SetSelfActive(cec.AddrPlayback1, pa, true))
	assert.True(t, d.SetSelfActive(cec.AddrPlayback1, pa, false))
}

func TestReset(t *testing.T) {
	d := New()
	_, _ = d.SetPhysicalAddress(cec.AddrPlayback1, 0x1000, cec.DeviceTypePlayback)
	d.SetSelfActive(cec.AddrPlayback2, 0x2000, true)
	d.SetAsleep(true)

	d.Reset()

	for _, r := range d.List() {
		assert.True(t, r.IsDefault())
	}
	assert.False(t, d.IsActiveSource())
	assert.False(t, d.Asleep())
}

func TestString(t *testing.T) {
	d := New()
	_ = d.SetOSDName(cec.AddrPlayback1, "Player")

	out := d.String()
	assert.True(t, strings.HasPrefix(out, "active source: false"))
	assert.Contains(t, out, `name="Player"`)
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestConcurrentAccess(t *testing.T) {
	d := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			addr := cec.LogicalAddress(n%14) + 1
			for j := 0; j < 100; j++ {
				_ = d.SetOSDName(addr, "dev")
				_, _ = d.MarkPresent(addr)
				_ = d.List()
				_, _ = d.Evict(addr)
			}
		}(i)
	}
	wg.Wait()
	assert.Len(t, d.List(), Size)
}
