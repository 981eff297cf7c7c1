package phy

// DevReg is a bus agnostic register reference: a device type tag and a
// register address. For paged PHYs the device type selects the page.
type DevReg struct {
	DevType uint16
	Addr    uint16
}

// PagedReg is the vendor form of a [DevReg] as produced by [MapRegister].
type PagedReg struct {
	Page    uint16
	Addr    uint16
	DevType uint16
}

// MapRegister translates a generic register reference into its paged form.
// The device type doubles as register page: Realtek PHYs use the page
// numbers 0xa43/0xd04 as device type while Marvell PHYs pass 0 and rely on
// a separate media page select.
func MapRegister(r DevReg) PagedReg {
	return PagedReg{
		Page:    r.DevType,
		Addr:    r.Addr,
		DevType: r.DevType,
	}
}
