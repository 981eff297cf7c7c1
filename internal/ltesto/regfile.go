package ltesto

import (
	"errors"
	"fmt"
)

// PHY register window of the MAC as seen through a 32-bit register BAR.
const (
	WindowPHYBase = 0x14000
	windowPHYEnd  = WindowPHYBase + 32*4
)

// ErrInjected is returned by fault hooks that do not provide their own error.
var ErrInjected = errors.New("ltesto: injected bus fault")

// Access is a single data access recorded by a [RegFile].
// Page select writes are recorded like any other write with Page set to
// the page that was active before the write.
type Access struct {
	Write bool
	PHY   uint8
	Page  uint16
	Reg   uint16
	Value uint16
}

func (a Access) String() string {
	op := "R"
	if a.Write {
		op = "W"
	}
	return fmt.Sprintf("%s phy=%d page=%#x reg=%#x val=%#04x", op, a.PHY, a.Page, a.Reg, a.Value)
}

type regKey struct {
	phy  uint8
	page uint16
	reg  uint16
}

type selfClear struct {
	mask  uint16
	after int
	reads int
}

// RegFile simulates the paged register space of one or more PHYs. It
// implements the MDIO bus HAL (Read/Write) and the 32-bit MAC register
// window (Read32/Write32) so the same file backs both kinds of bus.
// The zero value has no paging; set PageSelect to the vendor page register.
type RegFile struct {
	// PageSelect is the register number that selects the page of the
	// following accesses. Zero disables paging.
	PageSelect uint16
	// WindowPHY is the PHY address accessed through the register window.
	WindowPHY uint8
	// ReadErr, when non-nil, is consulted before each read. A non-nil
	// return fails the read without touching state.
	ReadErr func(phy uint8, page, reg uint16) error
	// WriteErr is the write counterpart of ReadErr.
	WriteErr func(phy uint8, page, reg uint16) error

	regs   map[regKey]uint16
	clear  map[regKey]*selfClear
	page   map[uint8]uint16
	window map[uint32]uint32
	trace  []Access
}

// Set sets a register value without recording an access.
func (rf *RegFile) Set(phy uint8, page, reg, value uint16) {
	rf.init()
	rf.regs[regKey{phy, page, reg}] = value
}

// Get returns a register value without recording an access.
func (rf *RegFile) Get(phy uint8, page, reg uint16) uint16 {
	return rf.regs[regKey{phy, page, reg}]
}

// SelfClear makes the bits in mask of a register clear themselves after
// they were read as set afterReads times since last being written.
// A negative afterReads keeps them set forever.
func (rf *RegFile) SelfClear(phy uint8, page, reg, mask uint16, afterReads int) {
	rf.init()
	rf.clear[regKey{phy, page, reg}] = &selfClear{mask: mask, after: afterReads}
}

// Page returns the page currently selected for a PHY.
func (rf *RegFile) Page(phy uint8) uint16 { return rf.page[phy] }

// Trace returns the accesses recorded since the last [RegFile.ResetTrace].
func (rf *RegFile) Trace() []Access { return rf.trace }

// ResetTrace discards recorded accesses.
func (rf *RegFile) ResetTrace() { rf.trace = rf.trace[:0] }

// Reads returns the number of recorded reads of a register.
func (rf *RegFile) Reads(phy uint8, page, reg uint16) (n int) {
	for _, a := range rf.trace {
		if !a.Write && a.PHY == phy && a.Page == page && a.Reg == reg {
			n++
		}
	}
	return n
}

// Read implements the MDIO bus read. devAddr is ignored.
func (rf *RegFile) Read(phyAddr, devAddr uint8, regAddr uint16) (uint16, error) {
	return rf.read(phyAddr, regAddr)
}

// Write implements the MDIO bus write. devAddr is ignored.
func (rf *RegFile) Write(phyAddr, devAddr uint8, regAddr, value uint16) error {
	return rf.write(phyAddr, regAddr, value)
}

// Read32 implements the MAC register window. Offsets in the PHY
// configuration region access the registers of WindowPHY.
func (rf *RegFile) Read32(off uint32) uint32 {
	if off >= WindowPHYBase && off < windowPHYEnd {
		v, err := rf.read(rf.WindowPHY, uint16((off-WindowPHYBase)/4))
		if err != nil {
			return 0xffffffff
		}
		return uint32(v)
	}
	return rf.window[off]
}

// Write32 implements the MAC register window.
func (rf *RegFile) Write32(off, value uint32) {
	if off >= WindowPHYBase && off < windowPHYEnd {
		rf.write(rf.WindowPHY, uint16((off-WindowPHYBase)/4), uint16(value))
		return
	}
	rf.init()
	rf.window[off] = value
}

func (rf *RegFile) read(phy uint8, reg uint16) (uint16, error) {
	rf.init()
	page := rf.page[phy]
	if rf.ReadErr != nil {
		if err := rf.ReadErr(phy, page, reg); err != nil {
			return 0, err
		}
	}
	var v uint16
	if rf.PageSelect != 0 && reg == rf.PageSelect {
		v = page
	} else {
		key := regKey{phy, page, reg}
		v = rf.regs[key]
		if sc := rf.clear[key]; sc != nil && v&sc.mask != 0 && sc.after >= 0 {
			if sc.reads >= sc.after {
				v &^= sc.mask
				rf.regs[key] = v
			} else {
				sc.reads++
			}
		}
	}
	rf.trace = append(rf.trace, Access{PHY: phy, Page: page, Reg: reg, Value: v})
	return v, nil
}

func (rf *RegFile) write(phy uint8, reg, value uint16) error {
	rf.init()
	page := rf.page[phy]
	if rf.WriteErr != nil {
		if err := rf.WriteErr(phy, page, reg); err != nil {
			return err
		}
	}
	rf.trace = append(rf.trace, Access{Write: true, PHY: phy, Page: page, Reg: reg, Value: value})
	if rf.PageSelect != 0 && reg == rf.PageSelect {
		rf.page[phy] = value
		return nil
	}
	key := regKey{phy, page, reg}
	rf.regs[key] = value
	if sc := rf.clear[key]; sc != nil && value&sc.mask != 0 {
		sc.reads = 0
	}
	return nil
}

func (rf *RegFile) init() {
	if rf.regs == nil {
		rf.regs = make(map[regKey]uint16)
		rf.clear = make(map[regKey]*selfClear)
		rf.page = make(map[uint8]uint16)
		rf.window = make(map[uint32]uint32)
	}
}

// FailOn returns a fault hook that fails accesses to one register of a page.
func FailOn(page, reg uint16) func(phy uint8, pg, r uint16) error {
	return func(_ uint8, pg, r uint16) error {
		if pg == page && r == reg {
			return ErrInjected
		}
		return nil
	}
}
