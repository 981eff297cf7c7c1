package pcibar

import (
	"errors"
	"testing"
	"time"

	"github.com/soypat/phylink"
	"github.com/soypat/phylink/internal/ltesto"
	"github.com/soypat/phylink/phy"
)

func TestBARAccess(t *testing.T) {
	b := &BAR{mem: make([]byte, 0x100)}
	b.Write32(0x10, 0xdeadbeef)
	if got := b.Read32(0x10); got != 0xdeadbeef {
		t.Errorf("read %#x", got)
	}
	if got := b.mem[0x10]; got != 0xef {
		t.Errorf("byte order: first byte %#x", got)
	}
	// Misaligned and out of range accesses.
	b.Write32(0x11, 1)
	b.Write32(0x100, 1)
	if got := b.Read32(0x11); got != 0xffffffff {
		t.Errorf("misaligned read %#x", got)
	}
	if got := b.Read32(0xfc); got != 0 {
		t.Errorf("last word %#x", got)
	}
	if got := b.Read32(0x100); got != 0xffffffff {
		t.Errorf("out of range read %#x", got)
	}
	if b.Len() != 0x100 {
		t.Errorf("len %d", b.Len())
	}
}

// master emulates the MAC MDIO master in front of a simulated PHY register
// file. A transaction completes after busyReads reads of the command
// register.
type master struct {
	phys      *ltesto.RegFile
	sca, scd  uint32
	busyReads int
	pending   int
	lastDev   uint8
}

func (m *master) Read32(off uint32) uint32 {
	switch off {
	case regMDIOSCA:
		return m.sca
	case regMDIOSCD:
		if m.scd&scdBusy != 0 {
			if m.pending > 0 {
				m.pending--
				return m.scd
			}
			m.complete()
		}
		return m.scd
	}
	return 0
}

func (m *master) Write32(off, value uint32) {
	switch off {
	case regMDIOSCA:
		m.sca = value
	case regMDIOSCD:
		m.scd = value
		if value&scdBusy != 0 {
			m.pending = m.busyReads
		}
	}
}

func (m *master) complete() {
	reg := uint16(m.sca)
	port := uint8(m.sca>>scaPortShift) & 0x1f
	m.lastDev = uint8(m.sca>>scaDevShift) & 0x1f
	if (m.scd>>scdClockShift)&0x7 != scdClockDiv {
		m.scd = 0xdead
		return
	}
	switch (m.scd >> scdCmdShift) & 0x3 {
	case scdCmdRead:
		v, _ := m.phys.Read(port, m.lastDev, reg)
		m.scd = uint32(v)
	case scdCmdWrite:
		m.phys.Write(port, m.lastDev, reg, uint16(m.scd))
		m.scd = 0
	}
}

func newTestMDIO(t *testing.T, busyReads int) (*MDIO, *master, *int) {
	t.Helper()
	mm := &master{phys: &ltesto.RegFile{}, busyReads: busyReads}
	sleeps := new(int)
	var m MDIO
	err := m.Configure(mm, MDIOConfig{Sleep: func(d time.Duration) {
		if d != DefaultBusyInterval {
			t.Errorf("sleep %s", d)
		}
		*sleeps++
	}})
	if err != nil {
		t.Fatal(err)
	}
	return &m, mm, sleeps
}

func TestMDIOReadWrite(t *testing.T) {
	m, mm, sleeps := newTestMDIO(t, 3)
	mm.phys.Set(5, 0, phy.AddrBMSR, 0x796d)
	v, err := m.Read(5, 0, phy.AddrBMSR)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x796d {
		t.Errorf("read %#04x", v)
	}
	if *sleeps != 3 {
		t.Errorf("got %d busy sleeps, want 3", *sleeps)
	}
	err = m.Write(5, 0, phy.AddrANAR, 0x01e1)
	if err != nil {
		t.Fatal(err)
	}
	if got := mm.phys.Get(5, 0, phy.AddrANAR); got != 0x01e1 {
		t.Errorf("wrote %#04x", got)
	}
	_, err = m.Read(3, 7, 1)
	if err != nil {
		t.Fatal(err)
	}
	if mm.lastDev != 7 {
		t.Errorf("device address %d", mm.lastDev)
	}
}

func TestMDIOBusyTimeout(t *testing.T) {
	m, _, sleeps := newTestMDIO(t, 1000)
	_, err := m.Read(1, 0, 0)
	if !errors.Is(err, ErrBusyTimeout) {
		t.Fatalf("want ErrBusyTimeout, got %v", err)
	}
	if *sleeps != DefaultBusyPolls {
		t.Errorf("got %d sleeps, want %d", *sleeps, DefaultBusyPolls)
	}
}

func TestMDIOInvalid(t *testing.T) {
	var m MDIO
	if err := m.Configure(nil, MDIOConfig{}); err != phylink.ErrInvalidConfig {
		t.Errorf("nil regs: %v", err)
	}
	mm, _, _ := newTestMDIO(t, 0)
	if _, err := mm.Read(32, 0, 0); err != phylink.ErrInvalidAddr {
		t.Errorf("phy 32: %v", err)
	}
	if err := mm.Write(0, 32, 0, 0); err != phylink.ErrInvalidAddr {
		t.Errorf("dev 32: %v", err)
	}
}

func TestMDIOWithClause22Scan(t *testing.T) {
	m, mm, _ := newTestMDIO(t, 0)
	mm.phys.Set(3, 0, phy.AddrBMSR, 0x796d)
	var addrs [32]uint8
	n, err := phy.FindClause22PHYs(m, addrs[:])
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || addrs[0] != 3 {
		t.Errorf("found %d PHYs: %v", n, addrs[:n])
	}
}
