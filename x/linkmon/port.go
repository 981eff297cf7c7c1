package linkmon

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soypat/phylink"
	"github.com/soypat/phylink/phy"
	"github.com/soypat/phylink/phy/mvl"
	"github.com/soypat/phylink/phy/rtl"
	"github.com/soypat/phylink/x/pcibar"
)

// Link is the link management surface shared by the vendor PHY drivers.
type Link interface {
	Reset() error
	SetupLink(speeds phylink.LinkSpeed, waitToComplete bool) error
	CheckLink() (phylink.LinkResult, error)
}

var (
	_ Link = (*mvl.PHY)(nil)
	_ Link = (*rtl.PHY)(nil)
)

// Bus is the register access a port's PHY is reached through.
type Bus struct {
	// Window is the MAC register window. Realtek PHYs require it.
	Window pcibar.Regs
	// MDIO is the management bus of Marvell PHYs. When nil and Window is
	// set the MAC MDIO master behind Window is used.
	MDIO phy.MDIOBus
	// Close releases the bus. May be nil.
	Close func() error
}

// PortOptions are the optional dependencies of a [Port].
type PortOptions struct {
	Logger *slog.Logger
	// Sleep replaces time.Sleep in reset and MDIO polling.
	Sleep func(time.Duration)
}

// Port is a configured PHY ready to be attached and monitored.
type Port struct {
	Name   string
	Desc   *phy.Descriptor
	Link   Link
	speeds phylink.LinkSpeed
	close  func() error
}

// OpenBus maps the register BAR named by pc.
func OpenBus(pc PortConfig) (Bus, error) {
	if pc.BAR == "" {
		return Bus{}, fmt.Errorf("port %s: no bar: %w", pc.Name, phylink.ErrInvalidConfig)
	}
	bar, err := pcibar.Open(pc.BAR)
	if err != nil {
		return Bus{}, fmt.Errorf("port %s: %w", pc.Name, err)
	}
	return Bus{Window: bar, Close: bar.Close}, nil
}

// NewPort binds the PHY driver selected by pc to bus. pc must have been
// validated with [Config.Validate].
func NewPort(pc PortConfig, bus Bus, opts PortOptions) (*Port, error) {
	speeds, err := pc.speeds()
	if err != nil {
		return nil, err
	}
	media, err := pc.media()
	if err != nil {
		return nil, err
	}
	if bus.MDIO == nil && bus.Window != nil {
		var m pcibar.MDIO
		err = m.Configure(bus.Window, pcibar.MDIOConfig{Sleep: opts.Sleep, Logger: opts.Logger})
		if err != nil {
			return nil, err
		}
		bus.MDIO = &m
	}
	var typ phy.Type
	if pc.Type == "auto" {
		typ, err = detectType(bus, pc.PHYAddr, media)
	} else {
		typ, err = ParseType(pc.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("port %s: %w", pc.Name, err)
	}
	if typ == phy.TypeMVLSFI {
		media = phy.MediaFiber
	}
	desc := &phy.Descriptor{Type: typ, Media: media, Autoneg: pc.Autoneg}
	logger := opts.Logger
	if logger != nil {
		logger = logger.With(slog.String("port", pc.Name))
	}
	port := &Port{Name: pc.Name, Desc: desc, speeds: speeds, close: bus.Close}
	switch typ {
	case phy.TypeMVL, phy.TypeMVLSFI:
		var p mvl.PHY
		err = p.Configure(desc, bus.MDIO, mvl.Config{PHYAddr: pc.PHYAddr, Logger: logger, Sleep: opts.Sleep})
		port.Link = &p
	case phy.TypeRTL:
		var p rtl.PHY
		err = p.Configure(desc, bus.Window, rtl.Config{Logger: logger, Sleep: opts.Sleep})
		port.Link = &p
	}
	if err != nil {
		return nil, fmt.Errorf("port %s: %s: %w", pc.Name, typ, err)
	}
	return port, nil
}

// detectType identifies the PHY from its identifier registers. The register
// window is tried first since it reaches a Realtek PHY without the MDIO
// master, then the MDIO bus.
func detectType(bus Bus, addr uint8, media phy.MediaType) (phy.Type, error) {
	var id uint32
	if bus.Window != nil {
		var p rtl.PHY
		err := p.Configure(&phy.Descriptor{}, bus.Window, rtl.Config{})
		if err != nil {
			return phy.TypeUnknown, err
		}
		id1, _ := p.ReadReg(phy.DevReg{Addr: 2})
		id2, _ := p.ReadReg(phy.DevReg{Addr: 3})
		id = uint32(id1)<<16 | uint32(id2)
		if typ := phy.Identify(id, media); typ != phy.TypeUnknown {
			return typ, nil
		}
	}
	if bus.MDIO != nil {
		var dev phy.Device
		err := dev.ConfigureAs22(bus.MDIO, addr)
		if err != nil {
			return phy.TypeUnknown, err
		}
		id, err = dev.ID()
		if err != nil {
			return phy.TypeUnknown, err
		}
	} else if bus.Window == nil {
		return phy.TypeUnknown, phylink.ErrInvalidConfig
	}
	typ := phy.Identify(id, media)
	if typ == phy.TypeUnknown {
		return typ, fmt.Errorf("phy id %#08x: %w", id, phylink.ErrUnsupported)
	}
	return typ, nil
}

// Attach resets the PHY and programs the configured speeds.
func (p *Port) Attach() error {
	err := p.Link.Reset()
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	err = p.Link.SetupLink(p.speeds, false)
	if err != nil {
		return fmt.Errorf("setup %s: %w", p.speeds, err)
	}
	return nil
}

// Speeds returns the configured speed set.
func (p *Port) Speeds() phylink.LinkSpeed { return p.speeds }

// Close releases the port's bus.
func (p *Port) Close() error {
	if p.close == nil {
		return nil
	}
	err := p.close()
	p.close = nil
	return err
}
