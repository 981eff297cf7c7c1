// Package rtl implements link management for the Realtek RTL8211F PHY
// attached to the MAC through its PHY configuration register window.
package rtl

import (
	"log/slog"
	"time"

	"github.com/soypat/phylink"
	"github.com/soypat/phylink/phy"
)

var _ phy.RegAccess = (*PHY)(nil)

// Window is the 32-bit register window of the MAC. The PHY registers of the
// currently selected page appear at offsets 0x14000+4*reg.
type Window interface {
	Read32(off uint32) uint32
	Write32(off, value uint32)
}

// Config holds the parameters for attaching a Realtek PHY.
type Config struct {
	// Logger receives debug and trace output. Nil disables logging.
	Logger *slog.Logger
	// Sleep is used between reset polls. Nil uses time.Sleep.
	Sleep func(time.Duration)
}

// PHY is a Realtek PHY bound to a MAC descriptor and register window.
// PHY is not safe for concurrent use.
type PHY struct {
	desc  *phy.Descriptor
	win   Window
	log   *slog.Logger
	sleep func(time.Duration)
}

// Configure binds p to desc and win. If desc has no register access
// installed p installs itself.
func (p *PHY) Configure(desc *phy.Descriptor, win Window, cfg Config) error {
	if desc == nil || win == nil {
		return phylink.ErrInvalidConfig
	}
	*p = PHY{
		desc:  desc,
		win:   win,
		log:   cfg.Logger,
		sleep: cfg.Sleep,
	}
	if desc.Regs == nil {
		desc.Regs = p
	}
	return nil
}

// Descriptor returns the descriptor p was configured with.
func (p *PHY) Descriptor() *phy.Descriptor { return p.desc }

// ReadReg selects the register page and reads the mapped register through
// the window. Window accesses cannot fail so the error is always nil.
func (p *PHY) ReadReg(r phy.DevReg) (uint16, error) {
	m := phy.MapRegister(r)
	p.win.Write32(phyConfig(regPageSelect), uint32(m.Page))
	return uint16(p.win.Read32(phyConfig(m.Addr)) & 0xffff), nil
}

// WriteReg selects the register page and writes the mapped register through
// the window.
func (p *PHY) WriteReg(r phy.DevReg, value uint16) error {
	m := phy.MapRegister(r)
	p.win.Write32(phyConfig(regPageSelect), uint32(m.Page))
	p.win.Write32(phyConfig(m.Addr), uint32(value))
	return nil
}

// Reset issues a software reset through the basic mode control register and
// waits for the reset bit to clear. The returned error matches
// [phylink.ErrResetFailed] if it does not clear in time.
func (p *PHY) Reset() error {
	d := p.desc
	err := d.WriteReg(phy.AddrBMCR, pageZero, uint16(phy.BMCRReset))
	if err != nil {
		return err
	}
	polls, err := phy.PollReset(func() (uint16, error) {
		return d.ReadReg(phy.AddrBMCR, pageZero)
	}, uint16(phy.BMCRReset), p.sleep)
	if err != nil {
		p.logerr("rtl:reset-timeout", slog.Int("polls", polls), slog.String("err", err.Error()))
		return err
	}
	p.debug("rtl:reset", slog.Int("polls", polls))
	return nil
}

// SetupLink configures the link according to the descriptor's Autoneg flag.
//
// With autonegotiation disabled the PHY is reset and forced to the single
// full duplex speed in speeds; a speed set with more or fewer than one known
// speed selects the reserved speed encoding. With autonegotiation enabled
// half duplex abilities are dropped, each of the 10/100/1000 full duplex
// abilities is advertised if and only if present in speeds and
// autonegotiation is restarted.
// In both modes the LED configuration is then programmed and EEE LED
// indication disabled. waitToComplete has no effect: SetupLink never waits
// for autonegotiation to finish.
func (p *PHY) SetupLink(speeds phylink.LinkSpeed, waitToComplete bool) error {
	d := p.desc
	// Clear latched interrupts, best effort.
	_, _ = d.ReadReg(regINSR, pageA43)
	var err error
	if !d.Autoneg {
		err = p.setupForced(speeds)
	} else {
		err = p.setupAutoneg(speeds)
	}
	if err != nil {
		return err
	}

	err = d.WriteReg(regLCR, pageD04, lcrDefault)
	if err != nil {
		return err
	}
	err = d.WriteReg(regEEELCR, pageD04, 0)
	if err != nil {
		return err
	}
	v, err := d.ReadReg(regLPCR, pageD04)
	if err != nil {
		return err
	}
	v = v&^lpcrBlinkMask | lpcrBlink60ms
	err = d.WriteReg(regLPCR, pageD04, v)
	if err != nil {
		return err
	}
	p.debug("rtl:setup", slog.Bool("autoneg", d.Autoneg), slog.String("speeds", speeds.String()),
		slog.String("adv", d.AutonegAdvertised.String()), slog.Bool("wait", waitToComplete))
	return nil
}

func (p *PHY) setupForced(speeds phylink.LinkSpeed) error {
	d := p.desc
	err := p.Reset()
	if err != nil {
		return err
	}
	mode := phy.LinkModeFromSpeed(speeds)
	if mode == phy.LinkDown {
		p.debug("rtl:forced-unknown-speed", slog.String("speeds", speeds.String()))
	}
	d.AutonegAdvertised = 0
	return d.WriteReg(phy.AddrBMCR, pageZero, uint16(phy.ForcedBMCR(mode)))
}

func (p *PHY) setupAutoneg(speeds phylink.LinkSpeed) error {
	d := p.desc
	if speeds != 0 {
		d.AutonegAdvertised = speeds & phylink.SpeedAll
	}
	v, err := d.ReadReg(phy.AddrANAR, pageZero)
	if err != nil {
		return err
	}
	err = d.WriteReg(phy.AddrANAR, pageZero, uint16(phy.ANAR(v).FullDuplexOnly()))
	if err != nil {
		return err
	}

	v, err = d.ReadReg(phy.AddrGBCR, pageZero)
	if err != nil {
		return err
	}
	gbcr := phy.GBCR(v) &^ phy.GBCR1000Full
	if speeds.Has(phylink.Speed1GFull) {
		gbcr |= phy.GBCR1000Full
	}
	err = d.WriteReg(phy.AddrGBCR, pageZero, uint16(gbcr))
	if err != nil {
		return err
	}

	v, err = d.ReadReg(phy.AddrANAR, pageZero)
	if err != nil {
		return err
	}
	ana := phy.ANAR(v)
	if speeds.Has(phylink.Speed100MFull) {
		ana |= phy.ANAR100Full
	} else {
		ana = ana.Without100M()
	}
	err = d.WriteReg(phy.AddrANAR, pageZero, uint16(ana))
	if err != nil {
		return err
	}

	v, err = d.ReadReg(phy.AddrANAR, pageZero)
	if err != nil {
		return err
	}
	ana = phy.ANAR(v)
	if speeds.Has(phylink.Speed10MFull) {
		ana |= phy.ANAR10Full
	} else {
		ana = ana.Without10M()
	}
	err = d.WriteReg(phy.AddrANAR, pageZero, uint16(ana))
	if err != nil {
		return err
	}
	return d.WriteReg(phy.AddrBMCR, pageZero, uint16(phy.BMCRANRestart|phy.BMCRANEnable))
}

// CheckLink reads the PHY specific status register and reports link state
// and resolved speed. The result is link down with unknown speed unless the
// status register was read successfully.
func (p *PHY) CheckLink() (phylink.LinkResult, error) {
	var res phylink.LinkResult
	d := p.desc
	// Clear latched interrupts, best effort.
	_, _ = d.ReadReg(regINSR, pageA43)
	physr, err := d.ReadReg(regPHYSR, pageA43)
	if err != nil {
		return res, err
	}
	res = DecodeStatus(physr)
	p.trace("rtl:check", slog.Uint64("physr", uint64(physr)), slog.String("link", res.String()))
	return res, nil
}

// DecodeStatus decodes the PHY specific status register 0x1a of page 0xa43.
// Only full duplex links resolve to a speed; link up at half duplex or with
// the reserved speed encoding yields [phylink.SpeedUnknown].
func DecodeStatus(physr uint16) (res phylink.LinkResult) {
	if physr&physrLink == 0 {
		return res
	}
	res.Up = true
	switch physr & (physrSpeedMask | physrDuplex) {
	case physrSpeed1000 | physrDuplex:
		res.Speed = phylink.Speed1GFull
	case physrSpeed100 | physrDuplex:
		res.Speed = phylink.Speed100MFull
	case physrSpeed10 | physrDuplex:
		res.Speed = phylink.Speed10MFull
	}
	return res
}
