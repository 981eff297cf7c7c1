package phy

import (
	"time"

	"github.com/soypat/phylink"
	"periph.io/x/conn/v3/gpio"
)

// MDIOMaxTurnaround is the MDIO maximum clock to data delay. It is a
// reasonable half period for [MDIOBitBang.ConfigureGPIO].
const MDIOMaxTurnaround = 340 * time.Nanosecond

// ConfigureGPIO initializes the bit-bang interface over periph.io GPIO pins.
// mdio is driven open-drain: a one releases the line to its pull-up, a zero
// drives it low. halfPeriod is the delay around each MDC edge.
func (m *MDIOBitBang) ConfigureGPIO(mdc gpio.PinOut, mdio gpio.PinIO, halfPeriod time.Duration) error {
	if mdc == nil || mdio == nil {
		return phylink.ErrInvalidConfig
	}
	if err := mdc.Out(gpio.Low); err != nil {
		return err
	}
	delay := func() {
		if halfPeriod > 0 {
			time.Sleep(halfPeriod)
		}
	}
	pulse := func() {
		delay()
		mdc.Out(gpio.High)
		delay()
		mdc.Out(gpio.Low)
	}
	m.Configure(func(bit bool) {
		if bit {
			mdio.In(gpio.PullUp, gpio.NoEdge)
		} else {
			mdio.Out(gpio.Low)
		}
		pulse()
	}, func() bool {
		pulse()
		return mdio.Read() == gpio.High
	}, func(setOut bool) {
		if setOut {
			mdio.In(gpio.PullUp, gpio.NoEdge)
		} else {
			mdio.In(gpio.Float, gpio.NoEdge)
		}
	})
	return nil
}
