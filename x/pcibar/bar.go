// Package pcibar maps the register BAR of a PCI network controller into
// memory and implements the controller's MDIO master on top of it.
//
// A [BAR] satisfies the 32-bit register window consumed by the rtl package
// and, wrapped in an [MDIO], the bus consumed by the mvl package.
package pcibar

import (
	"sync/atomic"
	"unsafe"
)

// Regs is a 32-bit register window.
type Regs interface {
	Read32(off uint32) uint32
	Write32(off, value uint32)
}

var _ Regs = (*BAR)(nil)

// BAR is a memory mapped PCI base address register region.
// Accesses are single aligned 32-bit loads and stores.
type BAR struct {
	mem  []byte
	path string
}

// Path returns the resource file the BAR was mapped from.
func (b *BAR) Path() string { return b.path }

// Len returns the size of the mapped region in bytes.
func (b *BAR) Len() int { return len(b.mem) }

// Read32 reads the register at byte offset off. Misaligned and out of range
// offsets read as all ones, like a PCI master abort.
func (b *BAR) Read32(off uint32) uint32 {
	p := b.word(off)
	if p == nil {
		return 0xffffffff
	}
	return atomic.LoadUint32(p)
}

// Write32 writes the register at byte offset off. Misaligned and out of
// range writes are dropped.
func (b *BAR) Write32(off, value uint32) {
	p := b.word(off)
	if p == nil {
		return
	}
	atomic.StoreUint32(p, value)
}

func (b *BAR) word(off uint32) *uint32 {
	if off%4 != 0 || uint64(off)+4 > uint64(len(b.mem)) {
		return nil
	}
	return (*uint32)(unsafe.Pointer(&b.mem[off]))
}
