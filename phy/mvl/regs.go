package mvl

// Marvell 88E1512 register map. Registers 0-15 follow IEEE 802.3 Clause 22
// on the copper (0) and fiber (1) pages, see the phy package types.
const (
	regCtrl       = 0x00
	ctrlRestartAN = 1 << 9
	ctrlANEnable  = 1 << 12

	// Fiber page advertisement bits of register 4.
	ana1000XFull = 1 << 5
	ana1000XHalf = 1 << 6

	// Copper/fiber specific status register 1.
	regPHYSR        = 0x11
	physrLink       = 1 << 10
	physrSpeedShift = 14
	physrSpeedMask  = 0x3 << physrSpeedShift
	physrSpeed10    = 0 << physrSpeedShift
	physrSpeed100   = 1 << physrSpeedShift
	physrSpeed1000  = 2 << physrSpeedShift

	// Interrupt status register. Reading clears the latched bits.
	regIntr = 0x13

	// regPageSelect selects the page of registers 0-21, 23-28 and 30.
	regPageSelect = 22
	pageCopper    = 0
	pageFiber     = 1
	pageGeneral   = 18

	// General control register 1 on page 18.
	regGenCtl        = 0x14
	genCtlReset      = 1 << 15
	genCtlModeCopper = 0 // RGMII to copper.
	genCtlModeFiber  = 2 // RGMII to 1000BASE-X.
)

// fiberAdvertised is stored as advertised speed set in fixed 1000BASE-X mode.
const fiberAdvertised = 1
