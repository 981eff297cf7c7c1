// Package phylink holds the definitions shared by the PHY drivers of this
// module: link speed masks, link results and the common error values.
package phylink

//go:generate stringer -type=errGeneric -linecomment -output stringers.go .

import (
	"errors"
	"strconv"
	"strings"
)

// LinkSpeed is a bitmask of full-duplex link speed capabilities as used by
// the MAC driver. The zero value [SpeedUnknown] is not part of the mask and
// denotes an unrecognized or absent speed.
type LinkSpeed uint32

const (
	SpeedUnknown  LinkSpeed = 0
	Speed10MFull  LinkSpeed = 0x0002
	Speed100MFull LinkSpeed = 0x0008
	Speed1GFull   LinkSpeed = 0x0020

	// SpeedAll is every speed a copper PHY of this module can advertise.
	SpeedAll = Speed10MFull | Speed100MFull | Speed1GFull
)

// Has reports whether all bits of speed are set in s. Has(SpeedUnknown) is always false.
func (s LinkSpeed) Has(speed LinkSpeed) bool { return speed != 0 && s&speed == speed }

// IsSingle reports whether s names exactly one known speed.
func (s LinkSpeed) IsSingle() bool {
	return s == Speed10MFull || s == Speed100MFull || s == Speed1GFull
}

// Mbps returns the speed in megabits per second of a single speed value.
// Masks with more than one bit set and unknown speeds return 0.
func (s LinkSpeed) Mbps() int {
	switch s {
	case Speed10MFull:
		return 10
	case Speed100MFull:
		return 100
	case Speed1GFull:
		return 1000
	}
	return 0
}

// String returns a '|' separated list of the speeds in s, highest first.
// Bits outside of [SpeedAll] are printed in hexadecimal.
func (s LinkSpeed) String() string {
	if s == SpeedUnknown {
		return "unknown"
	}
	var buf []byte
	add := func(str string) {
		if len(buf) > 0 {
			buf = append(buf, '|')
		}
		buf = append(buf, str...)
	}
	if s.Has(Speed1GFull) {
		add("1G-F")
	}
	if s.Has(Speed100MFull) {
		add("100M-F")
	}
	if s.Has(Speed10MFull) {
		add("10M-F")
	}
	if rest := s &^ SpeedAll; rest != 0 {
		add("0x" + strconv.FormatUint(uint64(rest), 16))
	}
	return string(buf)
}

var errBadSpeed = errors.New("bad link speed")

// ParseLinkSpeed parses a comma or '|' separated list of speeds such as
// "1G,100M" or "1G-F|10M-F". The words "all" and "auto" select [SpeedAll].
func ParseLinkSpeed(str string) (LinkSpeed, error) {
	var s LinkSpeed
	fields := strings.FieldsFunc(str, func(r rune) bool { return r == ',' || r == '|' || r == ' ' })
	if len(fields) == 0 {
		return SpeedUnknown, errBadSpeed
	}
	for _, f := range fields {
		switch strings.TrimSuffix(strings.ToUpper(f), "-F") {
		case "10M", "10":
			s |= Speed10MFull
		case "100M", "100":
			s |= Speed100MFull
		case "1G", "1000M", "1000":
			s |= Speed1GFull
		case "ALL", "AUTO":
			s |= SpeedAll
		default:
			return SpeedUnknown, errBadSpeed
		}
	}
	return s, nil
}

// LinkResult is the outcome of a single link status query. It is produced
// fresh on each query; the zero value means link down with unknown speed.
// Up with Speed equal to [SpeedUnknown] is a valid result: link detected
// but the PHY reported a speed encoding the driver does not recognize.
type LinkResult struct {
	Up    bool
	Speed LinkSpeed
}

func (r LinkResult) String() string {
	if !r.Up {
		return "down"
	}
	return "up " + r.Speed.String()
}
