package rtl

// Realtek RTL8211F register map. Registers 0-15 follow IEEE 802.3 Clause 22
// on page 0, see the phy package types. Vendor registers live on pages
// selected through register 31.
const (
	regPageSelect = 0x1f

	pageZero = 0
	pageA43  = 0xa43 // PHY specific status and interrupts.
	pageD04  = 0xd04 // LED and EEE control.

	// PHY specific status register, page 0xa43.
	regPHYSR       = 0x1a
	physrLink      = 1 << 2 // Real time link status.
	physrDuplex    = 1 << 3
	physrSpeedMask = 0x3 << 4
	physrSpeed10   = 0 << 4
	physrSpeed100  = 1 << 4
	physrSpeed1000 = 2 << 4

	// Interrupt status register, page 0xa43. Reading clears it.
	regINSR = 0x1d

	// LED control registers, page 0xd04.
	regLCR    = 0x10
	regEEELCR = 0x11
	regLPCR   = 0x12

	// lcrDefault drives LED0 on 10/100/1000 link and activity.
	lcrDefault = 0x205b
	// lpcrBlinkMask selects the activity blink period; 60ms is 0b10.
	lpcrBlinkMask = 0x3
	lpcrBlink60ms = 0x2
)

// MAC window offsets of the PHY configuration region. PHY register r maps to
// a 32-bit window word.
const phyConfigBase = 0x14000

func phyConfig(reg uint16) uint32 { return phyConfigBase + 4*uint32(reg) }
