//go:build !linux

package pcibar

import "github.com/soypat/phylink"

// Open is only supported on linux.
func Open(path string) (*BAR, error) {
	return nil, phylink.ErrUnsupported
}

// Close is a no-op on unsupported platforms.
func (b *BAR) Close() error {
	b.mem = nil
	return nil
}
