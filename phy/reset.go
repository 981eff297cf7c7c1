package phy

import (
	"errors"
	"time"

	"github.com/soypat/phylink"
)

const (
	// ResetPolls is the number of reads of a self-clearing reset bit
	// before a vendor reset is declared failed.
	ResetPolls = 5
	// ResetPollInterval is the sleep between two reset bit reads.
	ResetPollInterval = time.Millisecond
)

// PollReset reads a control register with read until bit reads as cleared.
// It performs at most [ResetPolls] reads separated by [ResetPollInterval]
// sleeps and returns the number of reads performed.
// A failed read counts as a read with the bit still set. When the bit never
// clears the returned error matches [phylink.ErrResetFailed]; if the last
// read failed its error is joined.
// A nil sleep uses [time.Sleep].
func PollReset(read func() (uint16, error), bit uint16, sleep func(time.Duration)) (polls int, err error) {
	return pollReset(read, bit, ResetPolls, ResetPollInterval, sleep)
}

func pollReset(read func() (uint16, error), bit uint16, maxPolls int, interval time.Duration, sleep func(time.Duration)) (polls int, err error) {
	if sleep == nil {
		sleep = time.Sleep
	}
	var lastErr error
	for polls < maxPolls {
		if polls > 0 {
			sleep(interval)
		}
		var v uint16
		v, lastErr = read()
		polls++
		if lastErr == nil && v&bit == 0 {
			return polls, nil
		}
	}
	if lastErr != nil {
		return polls, errors.Join(phylink.ErrResetFailed, lastErr)
	}
	return polls, phylink.ErrResetFailed
}
