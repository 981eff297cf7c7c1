//go:build linux

package pcibar

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open maps a sysfs PCI resource file such as
// /sys/bus/pci/devices/0000:03:00.0/resource0 for reading and writing.
func Open(path string) (*BAR, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := fi.Size()
	if size <= 0 || size > 1<<30 {
		return nil, fmt.Errorf("pcibar: %s: bad resource size %d", path, size)
	}
	mem, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("pcibar: mmap %s: %w", path, err)
	}
	return &BAR{mem: mem, path: path}, nil
}

// Close unmaps the BAR. The BAR must not be used afterwards.
func (b *BAR) Close() error {
	if b.mem == nil {
		return nil
	}
	err := unix.Munmap(b.mem)
	b.mem = nil
	if err != nil {
		return fmt.Errorf("pcibar: munmap %s: %w", b.path, err)
	}
	return nil
}
