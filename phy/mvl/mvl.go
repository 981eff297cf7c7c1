// Package mvl implements link management for the Marvell 88E1512 PHY in
// RGMII-to-copper and RGMII-to-1000BASE-X (SFI) modes.
//
// Register accesses through the descriptor select the media page (copper or
// fiber) before every access. Reset and autonegotiation restart talk to the
// raw MDIO bus since they target pages or registers outside the media page.
package mvl

import (
	"log/slog"
	"time"

	"github.com/soypat/phylink"
	"github.com/soypat/phylink/phy"
)

var _ phy.RegAccess = (*PHY)(nil)

// Config holds the parameters for attaching a Marvell PHY.
type Config struct {
	// PHYAddr is the MDIO address of the PHY, 0-31.
	PHYAddr uint8
	// Logger receives debug and trace output. Nil disables logging.
	Logger *slog.Logger
	// Sleep is used between reset polls. Nil uses time.Sleep.
	Sleep func(time.Duration)
}

// PHY is a Marvell PHY bound to a MAC descriptor and an MDIO bus.
// PHY is not safe for concurrent use; callers sharing the bus must
// serialize all calls.
type PHY struct {
	desc  *phy.Descriptor
	mdio  phy.MDIOBus
	addr  uint8
	log   *slog.Logger
	sleep func(time.Duration)
}

// Configure binds p to desc and mdio. If desc has no register access
// installed p installs itself, so descriptor accesses go through the media
// page select of [PHY.ReadReg] and [PHY.WriteReg].
func (p *PHY) Configure(desc *phy.Descriptor, mdio phy.MDIOBus, cfg Config) error {
	if desc == nil || mdio == nil {
		return phylink.ErrInvalidConfig
	} else if cfg.PHYAddr > 31 {
		return phylink.ErrInvalidAddr
	}
	*p = PHY{
		desc:  desc,
		mdio:  mdio,
		addr:  cfg.PHYAddr,
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

// ReadReg selects the media page and reads the mapped register.
func (p *PHY) ReadReg(r phy.DevReg) (uint16, error) {
	err := p.selectMediaPage()
	if err != nil {
		return 0, err
	}
	m := phy.MapRegister(r)
	return p.mdio.Read(p.addr, uint8(m.DevType), m.Addr)
}

// WriteReg selects the media page and writes the mapped register.
func (p *PHY) WriteReg(r phy.DevReg, value uint16) error {
	err := p.selectMediaPage()
	if err != nil {
		return err
	}
	m := phy.MapRegister(r)
	return p.mdio.Write(p.addr, uint8(m.DevType), m.Addr, value)
}

func (p *PHY) selectMediaPage() error {
	page := uint16(pageCopper)
	if p.desc.Media == phy.MediaFiber {
		page = pageFiber
	}
	return p.writeMDI(regPageSelect, page)
}

func (p *PHY) readMDI(reg uint16) (uint16, error) {
	return p.mdio.Read(p.addr, 0, reg)
}

func (p *PHY) writeMDI(reg, value uint16) error {
	return p.mdio.Write(p.addr, 0, reg, value)
}

// Reset switches the PHY into the operating mode of its type (copper or
// fiber) and performs a mode reset through general control register 20 of
// page 18. It returns [phylink.ErrTypeMismatch] without bus traffic if the
// descriptor is not a Marvell PHY and an error matching
// [phylink.ErrResetFailed] if the reset bit does not clear in time.
func (p *PHY) Reset() error {
	var mode uint16
	switch p.desc.Type {
	case phy.TypeMVL:
		mode = genCtlModeCopper
	case phy.TypeMVLSFI:
		mode = genCtlModeFiber
	default:
		return phylink.ErrTypeMismatch
	}
	err := p.writeMDI(regPageSelect, pageGeneral)
	if err != nil {
		return err
	}
	err = p.writeMDI(regGenCtl, mode)
	if err != nil {
		return err
	}
	err = p.writeMDI(regGenCtl, mode|genCtlReset)
	if err != nil {
		return err
	}
	polls, err := phy.PollReset(func() (uint16, error) {
		return p.readMDI(regGenCtl)
	}, genCtlReset, p.sleep)
	if err != nil {
		p.logerr("mvl:reset-timeout", slog.Int("polls", polls), slog.String("err", err.Error()))
		return err
	}
	p.debug("mvl:reset", slog.String("type", p.desc.Type.String()), slog.Int("polls", polls))
	return nil
}

// SetupLink programs the advertisement registers and restarts
// autonegotiation.
//
// On copper only the 10/100/1000 full duplex abilities in speeds are
// advertised; other bits of the advertisement registers are preserved.
// On fiber speeds is ignored and 1000BASE-X full duplex is advertised.
// waitToComplete is accepted for parity with other drivers and has no
// effect: SetupLink never waits for autonegotiation to finish.
func (p *PHY) SetupLink(speeds phylink.LinkSpeed, waitToComplete bool) error {
	d := p.desc
	d.AutonegAdvertised = 0
	switch d.Type {
	case phy.TypeMVL:
		var ana phy.ANAR
		var gbcr phy.GBCR
		if speeds.Has(phylink.Speed1GFull) {
			gbcr |= phy.GBCR1000Full
			d.AutonegAdvertised |= phylink.Speed1GFull
		}
		if speeds.Has(phylink.Speed100MFull) {
			ana |= phy.ANAR100Full
			d.AutonegAdvertised |= phylink.Speed100MFull
		}
		if speeds.Has(phylink.Speed10MFull) {
			ana |= phy.ANAR10Full
			d.AutonegAdvertised |= phylink.Speed10MFull
		}
		v, err := d.ReadReg(phy.AddrANAR, 0)
		if err != nil {
			return err
		}
		ana |= phy.ANAR(v) &^ phy.ANAR10100Mask
		err = d.WriteReg(phy.AddrANAR, 0, uint16(ana))
		if err != nil {
			return err
		}
		v, err = d.ReadReg(phy.AddrGBCR, 0)
		if err != nil {
			return err
		}
		gbcr |= phy.GBCR(v) &^ (phy.GBCR1000Full | phy.GBCR1000Half)
		err = d.WriteReg(phy.AddrGBCR, 0, uint16(gbcr))
		if err != nil {
			return err
		}
	case phy.TypeMVLSFI:
		d.AutonegAdvertised = fiberAdvertised
		v, err := d.ReadReg(phy.AddrANAR, 0)
		if err != nil {
			return err
		}
		v &^= ana1000XHalf | ana1000XFull
		v |= ana1000XFull
		err = d.WriteReg(phy.AddrANAR, 0, v)
		if err != nil {
			return err
		}
	default:
		return phylink.ErrTypeMismatch
	}

	err := p.writeMDI(regCtrl, ctrlRestartAN|ctrlANEnable)
	if err != nil {
		return err
	}
	// Clear latched interrupts, best effort.
	_, _ = d.ReadReg(regIntr, 0)
	p.debug("mvl:setup", slog.String("adv", d.AutonegAdvertised.String()), slog.Bool("wait", waitToComplete))
	return nil
}

// CheckLink reads the PHY specific status register and reports link state
// and resolved speed. The result is link down with unknown speed unless the
// status register was read successfully.
func (p *PHY) CheckLink() (phylink.LinkResult, error) {
	var res phylink.LinkResult
	d := p.desc
	// Clear latched interrupts, best effort.
	_, _ = d.ReadReg(regIntr, 0)
	physr, err := d.ReadReg(regPHYSR, 0)
	if err != nil {
		return res, err
	}
	res = DecodeStatus(physr)
	p.trace("mvl:check", slog.Uint64("physr", uint64(physr)), slog.String("link", res.String()))
	return res, nil
}

// DecodeStatus decodes the copper/fiber specific status register 17.
// Link up with the reserved speed encoding yields [phylink.SpeedUnknown].
func DecodeStatus(physr uint16) (res phylink.LinkResult) {
	if physr&physrLink == 0 {
		return res
	}
	res.Up = true
	switch physr & physrSpeedMask {
	case physrSpeed1000:
		res.Speed = phylink.Speed1GFull
	case physrSpeed100:
		res.Speed = phylink.Speed100MFull
	case physrSpeed10:
		res.Speed = phylink.Speed10MFull
	}
	return res
}
