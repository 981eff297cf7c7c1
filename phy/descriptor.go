package phy

import (
	"errors"

	"github.com/soypat/phylink"
)

// Type is the PHY variant attached to the MAC.
type Type uint8

const (
	TypeUnknown Type = iota // unknown
	TypeMVL                 // mvl
	TypeMVLSFI              // mvl-sfi
	TypeRTL                 // rtl
)

// MediaType is the physical medium of the link.
type MediaType uint8

const (
	MediaUnknown MediaType = iota // unknown
	MediaCopper                   // copper
	MediaFiber                    // fiber
)

// RegAccess is the register capability a bus layer installs on a
// [Descriptor]. Drivers read and write PHY registers only through it, except
// for the few vendor sequences that must talk to the raw bus.
type RegAccess interface {
	ReadReg(reg DevReg) (uint16, error)
	WriteReg(reg DevReg, value uint16) error
}

// Descriptor describes a PHY attached to a MAC. It is owned by the MAC
// driver for the lifetime of the attachment.
type Descriptor struct {
	Type  Type
	Media MediaType
	// Autoneg is the MAC autonegotiation setting. When false, drivers that
	// support it program a forced speed instead of advertising.
	Autoneg bool
	// AutonegAdvertised is the speed set last programmed by SetupLink.
	// It is written only by link setup and is zero in forced-speed mode.
	AutonegAdvertised phylink.LinkSpeed
	// Regs is the register capability, see [RegAccess].
	Regs RegAccess
}

var errNoRegs = errors.New("phy: descriptor has no register access")

// ReadReg reads register addr of device (page) devType.
func (d *Descriptor) ReadReg(addr, devType uint16) (uint16, error) {
	if d.Regs == nil {
		return 0, errNoRegs
	}
	return d.Regs.ReadReg(DevReg{DevType: devType, Addr: addr})
}

// WriteReg writes value to register addr of device (page) devType.
func (d *Descriptor) WriteReg(addr, devType, value uint16) error {
	if d.Regs == nil {
		return errNoRegs
	}
	return d.Regs.WriteReg(DevReg{DevType: devType, Addr: addr}, value)
}

// PHY identifiers as read from registers 2 and 3.
const (
	IDMarvell88E1512 = 0x01410DD0
	IDRealtek8211F   = 0x001CC800

	idMaskMarvell = 0xFFFFFFF0 // low nibble is revision.
	idMaskRealtek = 0xFFFFFC00 // low 10 bits are model and revision.
)

// Identify returns the PHY type for a 32-bit identifier as returned by
// [Device.ID]. Marvell PHYs on fiber media are of type [TypeMVLSFI].
func Identify(id uint32, media MediaType) Type {
	switch {
	case id&idMaskMarvell == IDMarvell88E1512:
		if media == MediaFiber {
			return TypeMVLSFI
		}
		return TypeMVL
	case id&idMaskRealtek == IDRealtek8211F:
		return TypeRTL
	}
	return TypeUnknown
}
