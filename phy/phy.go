// Package phy provides Ethernet PHY management via MDIO.
// It holds the register access abstractions shared by the vendor drivers in
// its subpackages: the [MDIOBus] HAL, the generic to paged register mapping,
// the [Descriptor] a MAC driver keeps per attached PHY, and a generic
// IEEE 802.3 Clause 22 [Device] used for probing.
package phy

// Add more stringers in linecomment mode by adding them to type flag (comma separated).
//go:generate stringer -type=LinkMode,Type,MediaType -linecomment -output=phy_stringers.go

import (
	"time"

	"github.com/soypat/phylink"
)

// FindClause22PHYs finds all regular non-clause45 PHYs on the MDIO bus and writes their addresses to dst.
// FindClause22PHYs returns error only if unable to find any PHY.
func FindClause22PHYs(mdio MDIOBus, dst []uint8) (n int, err error) {
	const maxAddr = 31
	if len(dst) < maxAddr+1 {
		return -1, phylink.ErrShortBuffer
	}
	for addr := uint8(0); addr <= maxAddr; addr++ {
		val, err := mdio.Read(addr, 0, AddrBMSR)
		if err != nil {
			continue
		}
		// Basic status has some bits that must be zero and one, so all ones or all zeros is an empty address.
		if val != 0xffff && val != 0x0000 {
			dst[n] = addr
			n++
		}
		time.Sleep(150 * time.Microsecond)
	}
	if n <= 0 {
		err = phylink.ErrNoPHY
	}
	return n, err
}

// Device is a generic Clause 22 PHY on an MDIO bus.
type Device struct {
	mdio    MDIOBus
	phyaddr uint8
	// isClause45 is 0 for clause 22 devices and 1 for clause45 devices.
	isClause45 uint8
}

// ConfigureAs22 resets all state of device to be used as a Clause22 device. Does not do a software reset.
func (phy *Device) ConfigureAs22(mdio MDIOBus, phyAddr uint8) error {
	if phyAddr > 31 {
		return phylink.ErrInvalidAddr
	} else if mdio == nil {
		return phylink.ErrInvalidConfig
	}
	phy.mdio = mdio
	phy.phyaddr = phyAddr
	phy.isClause45 = 0
	return nil
}

// PHYAddr returns the PHY address on the MDIO bus (0-31).
func (phy *Device) PHYAddr() uint8 {
	return phy.phyaddr
}

// BasicControl reads the Basic Mode Control Register (BMCR, register 0).
func (phy *Device) BasicControl() (BMCR, error) {
	ctl, err := phy.rread(AddrBMCR)
	return BMCR(ctl), err
}

// BasicStatus reads the Basic Mode Status Register (BMSR, register 1).
func (phy *Device) BasicStatus() (BMSR, error) {
	stat, err := phy.rread(AddrBMSR)
	return BMSR(stat), err
}

// ID reads the PHY identifier registers 2 and 3. The OUI occupies the upper
// bits, followed by model and revision numbers. See [Identify].
func (phy *Device) ID() (uint32, error) {
	id1, err := phy.rread(regPhyID1)
	if err != nil {
		return 0, err
	}
	id2, err := phy.rread(regPhyID2)
	if err != nil {
		return 0, err
	}
	return uint32(id1)<<16 | uint32(id2), nil
}

// ResetPHY performs a standard BMCR software reset and waits for completion.
// IEEE 802.3 allows up to 500ms for the reset bit to clear, vendor drivers
// with tighter bounds use [PollReset] instead.
func (phy *Device) ResetPHY() error {
	err := phy.rwrite(AddrBMCR, uint16(BMCRReset))
	if err != nil {
		return err
	}
	const maxPolls = 50
	const resetTimeout = 500 * time.Millisecond
	_, err = pollReset(func() (uint16, error) {
		return phy.rread(AddrBMCR)
	}, uint16(BMCRReset), maxPolls, resetTimeout/maxPolls, nil)
	return err
}

// IsLinkUp returns true if link is established.
func (phy *Device) IsLinkUp() (bool, error) {
	status, err := phy.BasicStatus()
	if err != nil {
		return false, err
	}
	return status.LinkUp(), nil
}

func (phy *Device) rread(regaddr uint16) (uint16, error) {
	return phy.mdio.Read(phy.phyaddr, phy.isClause45, regaddr)
}

func (phy *Device) rwrite(regaddr, value uint16) error {
	return phy.mdio.Write(phy.phyaddr, phy.isClause45, regaddr, value)
}

// LinkModeFromSpeed returns the full duplex [LinkMode] of a single link speed.
// Unknown speeds and multi-speed masks return [LinkDown].
func LinkModeFromSpeed(s phylink.LinkSpeed) LinkMode {
	switch s {
	case phylink.Speed10MFull:
		return Link10FDX
	case phylink.Speed100MFull:
		return Link100FDX
	case phylink.Speed1GFull:
		return Link1000FDX
	}
	return LinkDown
}
