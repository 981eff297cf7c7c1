package phy

// See https://github.com/PieVo/mdio-tool/blob/master/mii.h

// Identifier registers as defined by 802.3.
const (
	regPhyID1 = 0x02
	regPhyID2 = 0x03
)

// BMCR represents the Basic Mode Control Register at address 0x00.
// Reference: IEEE 802.3 Clause 22.2.4.1
type BMCR uint16

const (
	AddrBMCR = 0x00 // Address of Basic Mode Control Register.

	BMCRSpeed1000  BMCR = 0x0040 // MSB of Speed (1000Mbps), speed select 1.
	BMCRCollision  BMCR = 0x0080 // Collision test
	BMCRFullDuplex BMCR = 0x0100 // Full duplex mode
	BMCRANRestart  BMCR = 0x0200 // Restart auto-negotiation
	BMCRIsolate    BMCR = 0x0400 // Isolate PHY from MII
	BMCRPowerDown  BMCR = 0x0800 // Power down PHY
	BMCRANEnable   BMCR = 0x1000 // Enable auto-negotiation
	BMCRSpeed100   BMCR = 0x2000 // Select 100Mbps, speed select 0.
	BMCRLoopback   BMCR = 0x4000 // Enable TXD loopback
	BMCRReset      BMCR = 0x8000 // Software reset (self-clearing)
)

// ForcedBMCR returns the control value that forces a full duplex link at
// speed with auto-negotiation disabled. Speeds it does not know set both
// speed select bits, which is the reserved encoding.
func ForcedBMCR(mode LinkMode) BMCR {
	var ctl BMCR
	switch mode.SpeedMbps() {
	case 1000:
		ctl = BMCRSpeed1000
	case 100:
		ctl = BMCRSpeed100
	case 10:
		// No speed bits = 10Mbps
	default:
		ctl = BMCRSpeed1000 | BMCRSpeed100
	}
	return ctl | BMCRFullDuplex
}

// BMSR represents the Basic Mode Status Register at address 0x01.
// Reference: IEEE 802.3 Clause 22.2.4.2
type BMSR uint16

const (
	AddrBMSR = 0x01 // Address of Basic Mode Status Register.

	BMSRExtCap      BMSR = 0x0001 // Extended register capability
	BMSRJabber      BMSR = 0x0002 // Jabber detected
	BMSRLinkStatus  BMSR = 0x0004 // Link status (1=up)
	BMSRANCap       BMSR = 0x0008 // Auto-negotiation capable
	BMSRRemoteFault BMSR = 0x0010 // Remote fault detected
	BMSRANComplete  BMSR = 0x0020 // Auto-negotiation complete
	BMSRNoPreamble  BMSR = 0x0040 // Preamble suppression capable
	BMSRExtStatus   BMSR = 0x0100 // Extended status in register 15
	BMSR10Half      BMSR = 0x0800 // 10Mbps half-duplex capable
	BMSR10Full      BMSR = 0x1000 // 10Mbps full-duplex capable
	BMSR100Half     BMSR = 0x2000 // 100Mbps half-duplex capable
	BMSR100Full     BMSR = 0x4000 // 100Mbps full-duplex capable
)

// LinkUp reports the (latched low) link status bit.
func (s BMSR) LinkUp() bool { return s&BMSRLinkStatus != 0 }

// AutoNegotiationComplete reports the auto-negotiation complete bit.
func (s BMSR) AutoNegotiationComplete() bool { return s&BMSRANComplete != 0 }

// ANAR represents the Auto-Negotiation Advertisement Register value at address 0x04.
// ANLPAR (Link Partner Ability Register at 0x05) shares the same bit layout.
// Reference: IEEE 802.3 Clause 28.2.4.1
type ANAR uint16

const (
	AddrANAR   = 0x04 // Address of Auto-Negotiation Advertisement Register.
	AddrANLPAR = 0x05 // Address of Auto-Negotiation Link Partner Advertisement Register.

	ANARSelector8023 ANAR = 0x0001 // IEEE 802.3 selector value (required)
	ANAR10Half       ANAR = 0x0020 // 10BASE-T half-duplex
	ANAR10Full       ANAR = 0x0040 // 10BASE-T full-duplex
	ANAR100Half      ANAR = 0x0080 // 100BASE-TX half-duplex
	ANAR100Full      ANAR = 0x0100 // 100BASE-TX full-duplex
	ANAR100BaseT4    ANAR = 0x0200 // 100BASE-T4
	ANARPause        ANAR = 0x0400 // Pause capability
	ANARPauseAsym    ANAR = 0x0800 // Asymmetric pause
	ANARRemoteFault  ANAR = 0x2000 // Remote fault
	ANARNextPage     ANAR = 0x8000 // Next page capable

	// ANAR10100Mask covers the 10 and 100 Mbps twisted pair abilities.
	ANAR10100Mask ANAR = ANAR10Half | ANAR10Full | ANAR100Half | ANAR100Full
)

// FullDuplexOnly returns ANAR with half-duplex modes cleared.
func (a ANAR) FullDuplexOnly() ANAR {
	return a &^ (ANAR10Half | ANAR100Half)
}

// Without10M returns ANAR with 10Mbps modes cleared.
func (a ANAR) Without10M() ANAR {
	return a &^ (ANAR10Half | ANAR10Full)
}

// Without100M returns ANAR with 100BASE-TX modes cleared.
func (a ANAR) Without100M() ANAR {
	return a &^ (ANAR100Half | ANAR100Full)
}

// GBCR represents the 1000BASE-T Control Register at address 0x09.
// Reference: IEEE 802.3 Clause 40.5.1.1
type GBCR uint16

const (
	AddrGBCR = 0x09 // Address of 1000BASE-T Control Register.

	GBCR1000Half GBCR = 0x0100 // Advertise 1000BASE-T half-duplex
	GBCR1000Full GBCR = 0x0200 // Advertise 1000BASE-T full-duplex
)

// LinkMode represents the negotiated/force-set Ethernet link speed and duplex mode.
//
// Naming convention:
//   - H/HDX: Half-duplex (one direction at a time)
//   - F/FDX: Full-duplex (simultaneous bidirectional)
//   - T4: 100BASE-T4 (100Mbps over 4 twisted pairs, legacy)
type LinkMode uint8

const (
	LinkDown    LinkMode = iota // down
	Link10HDX                   // 10M-H
	Link10FDX                   // 10M-F
	Link100HDX                  // 100M-H
	Link100FDX                  // 100M-F
	Link100T4                   // 100M-T4
	Link1000HDX                 // 1000M-H
	Link1000FDX                 // 1000M-F
)

// SpeedMbps returns the link speed in megabits per second.
func (lm LinkMode) SpeedMbps() int {
	switch lm {
	case Link10HDX, Link10FDX:
		return 10
	case Link100HDX, Link100FDX, Link100T4:
		return 100
	case Link1000HDX, Link1000FDX:
		return 1000
	default:
		return 0
	}
}

// IsFullDuplex returns true if the link mode is full duplex.
func (lm LinkMode) IsFullDuplex() bool {
	return lm == Link10FDX || lm == Link100FDX || lm == Link1000FDX
}
