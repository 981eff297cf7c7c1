package phy

import (
	"errors"

	"github.com/soypat/phylink"
)

var _ MDIOBus = (*MDIOBitBang)(nil)

// Management frame fields, IEEE 802.3 Clause 22.2.4.5 and Clause 45.3.
const (
	mdioPreambleBits = 32

	mdioStart22 = 0b01
	mdioStart45 = 0b00

	mdioRead  = 0b10
	mdioWrite = 0b01

	mdio45Addr  = 0b00
	mdio45Write = 0b01
	mdio45Read  = 0b11
)

var errTurnaround = errors.New("phy: no PHY drove MDIO turnaround low")

// MDIOBitBang is a software management station (STA) driving MDC and MDIO
// through callbacks. Modeled after linux drivers/net/phy/mdio-bitbang.c.
//
// MDC is the clock line, MDIO the open-drain data line. Pin control is
// provided through [MDIOBitBang.Configure] callbacks, or through
// [MDIOBitBang.ConfigureGPIO] for periph.io GPIO pins.
type MDIOBitBang struct {
	sendBitFn func(bit bool)
	getBitFn  func() bool
	setDirFn  func(output bool)
}

// Configure sets the pin control callbacks and releases the bus.
//   - sendBit sets the data line, then pulses the clock high and low.
//   - getBit pulses the clock high and low and samples the data line.
//   - setDir switches the data line to output or to input.
func (m *MDIOBitBang) Configure(sendBit func(bit bool), getBit func() bool, setDir func(output bool)) {
	if sendBit == nil || getBit == nil || setDir == nil {
		panic("nil callback")
	}
	m.sendBitFn = sendBit
	m.getBitFn = getBit
	m.setDirFn = setDir
	m.setDirFn(true)
}

// Read reads a PHY register. A non-zero devAddr selects Clause 45 framing,
// preceded by an address frame for regAddr.
func (m *MDIOBitBang) Read(phyAddr, devAddr uint8, regAddr uint16) (uint16, error) {
	err := checkMDIOAddr(phyAddr, devAddr, regAddr)
	if err != nil {
		return 0, err
	}
	if devAddr != 0 {
		m.address45(phyAddr, devAddr, regAddr)
		m.header(mdioStart45, mdio45Read, phyAddr, devAddr)
	} else {
		m.header(mdioStart22, mdioRead, phyAddr, uint8(regAddr))
	}
	m.setDirFn(false)
	if m.getBitFn() {
		// Nobody answered. Clock out the rest of the frame.
		for range 17 {
			m.getBitFn()
		}
		return 0xffff, errTurnaround
	}
	v := m.recv16()
	m.getBitFn() // Idle.
	return v, nil
}

// Write writes a PHY register. A non-zero devAddr selects Clause 45 framing.
func (m *MDIOBitBang) Write(phyAddr, devAddr uint8, regAddr, value uint16) error {
	err := checkMDIOAddr(phyAddr, devAddr, regAddr)
	if err != nil {
		return err
	}
	if devAddr != 0 {
		m.address45(phyAddr, devAddr, regAddr)
		m.header(mdioStart45, mdio45Write, phyAddr, devAddr)
	} else {
		m.header(mdioStart22, mdioWrite, phyAddr, uint8(regAddr))
	}
	m.sendData(value)
	return nil
}

func checkMDIOAddr(phyAddr, devAddr uint8, regAddr uint16) error {
	if phyAddr > 31 || devAddr > 31 || (devAddr == 0 && regAddr > 31) {
		return phylink.ErrInvalidAddr
	}
	return nil
}

// address45 sends the Clause 45 address frame selecting regAddr.
func (m *MDIOBitBang) address45(phyAddr, devAddr uint8, regAddr uint16) {
	m.header(mdioStart45, mdio45Addr, phyAddr, devAddr)
	m.sendData(regAddr)
}

// header sends preamble, start, opcode and the two 5-bit address fields.
func (m *MDIOBitBang) header(start, op uint16, phyAddr, regOrDev uint8) {
	m.setDirFn(true)
	for range mdioPreambleBits {
		m.sendBitFn(true)
	}
	hdr := start<<12 | op<<10 | uint16(phyAddr&0x1f)<<5 | uint16(regOrDev&0x1f)
	m.send(hdr, 14)
}

// sendData sends the write turnaround and a 16-bit data field, then
// releases the line.
func (m *MDIOBitBang) sendData(v uint16) {
	m.send(0b10, 2)
	m.send(v, 16)
	m.setDirFn(false)
	m.getBitFn()
}

func (m *MDIOBitBang) send(v uint16, bits int) {
	for i := bits - 1; i >= 0; i-- {
		m.sendBitFn(v&(1<<i) != 0)
	}
}

func (m *MDIOBitBang) recv16() (v uint16) {
	for range 16 {
		v <<= 1
		if m.getBitFn() {
			v |= 1
		}
	}
	return v
}
