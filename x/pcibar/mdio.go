package pcibar

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/soypat/phylink"
	"github.com/soypat/phylink/internal"
	"github.com/soypat/phylink/phy"
)

var _ phy.MDIOBus = (*MDIO)(nil)

// MDIO master registers of the MAC.
const (
	regMDIOSCA = 0x11200 // Address: register, port and device.
	regMDIOSCD = 0x11204 // Command and data.

	scaPortShift = 16
	scaDevShift  = 21

	scdCmdShift   = 16
	scdCmdWrite   = 1
	scdCmdRead    = 3
	scdClockShift = 19
	scdClockDiv   = 6
	scdBusy       = 1 << 22
)

// Busy polling defaults.
const (
	DefaultBusyPolls    = 100
	DefaultBusyInterval = 100 * time.Microsecond
)

// ErrBusyTimeout is returned when an MDIO transaction does not complete.
var ErrBusyTimeout = errors.New("pcibar: mdio busy timeout")

// MDIOConfig configures an [MDIO] master.
type MDIOConfig struct {
	// BusyPolls bounds the completion polls per transaction.
	// Zero uses DefaultBusyPolls.
	BusyPolls int
	// BusyInterval is slept between completion polls.
	// Zero uses DefaultBusyInterval.
	BusyInterval time.Duration
	// Sleep replaces time.Sleep when non-nil.
	Sleep  func(time.Duration)
	Logger *slog.Logger
}

// MDIO drives the MDIO master of the MAC through its register window.
// It implements [phy.MDIOBus]. MDIO is not safe for concurrent use.
type MDIO struct {
	regs     Regs
	polls    int
	interval time.Duration
	sleep    func(time.Duration)
	log      *slog.Logger
}

// Configure binds m to the register window regs.
func (m *MDIO) Configure(regs Regs, cfg MDIOConfig) error {
	if regs == nil || cfg.BusyPolls < 0 || cfg.BusyInterval < 0 {
		return phylink.ErrInvalidConfig
	}
	if cfg.BusyPolls == 0 {
		cfg.BusyPolls = DefaultBusyPolls
	}
	if cfg.BusyInterval == 0 {
		cfg.BusyInterval = DefaultBusyInterval
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	*m = MDIO{
		regs:     regs,
		polls:    cfg.BusyPolls,
		interval: cfg.BusyInterval,
		sleep:    cfg.Sleep,
		log:      cfg.Logger,
	}
	return nil
}

// Read performs a read transaction on the MDIO bus.
func (m *MDIO) Read(phyAddr, devAddr uint8, regAddr uint16) (uint16, error) {
	err := m.transact(phyAddr, devAddr, regAddr, scdCmdRead, 0)
	if err != nil {
		return 0, err
	}
	v := uint16(m.regs.Read32(regMDIOSCD))
	internal.LogAttrs(m.log, internal.LevelTrace, "mdio:read",
		slog.Uint64("phy", uint64(phyAddr)), slog.Uint64("reg", uint64(regAddr)), slog.Uint64("val", uint64(v)))
	return v, nil
}

// Write performs a write transaction on the MDIO bus.
func (m *MDIO) Write(phyAddr, devAddr uint8, regAddr, value uint16) error {
	internal.LogAttrs(m.log, internal.LevelTrace, "mdio:write",
		slog.Uint64("phy", uint64(phyAddr)), slog.Uint64("reg", uint64(regAddr)), slog.Uint64("val", uint64(value)))
	return m.transact(phyAddr, devAddr, regAddr, scdCmdWrite, value)
}

func (m *MDIO) transact(phyAddr, devAddr uint8, regAddr uint16, cmd uint32, value uint16) error {
	if phyAddr > 31 || devAddr > 31 {
		return phylink.ErrInvalidAddr
	}
	m.regs.Write32(regMDIOSCA, uint32(regAddr)|uint32(phyAddr)<<scaPortShift|uint32(devAddr)<<scaDevShift)
	m.regs.Write32(regMDIOSCD, uint32(value)|cmd<<scdCmdShift|scdClockDiv<<scdClockShift|scdBusy)
	for i := 0; i < m.polls; i++ {
		if m.regs.Read32(regMDIOSCD)&scdBusy == 0 {
			return nil
		}
		m.sleep(m.interval)
	}
	internal.LogAttrs(m.log, slog.LevelError, "mdio:busy-timeout",
		slog.Uint64("phy", uint64(phyAddr)), slog.Uint64("reg", uint64(regAddr)))
	return fmt.Errorf("phy %d reg %#x: %w", phyAddr, regAddr, ErrBusyTimeout)
}
