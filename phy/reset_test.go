package phy

import (
	"errors"
	"testing"
	"time"

	"github.com/soypat/phylink"
)

func TestPollReset(t *testing.T) {
	const bit = 0x8000
	for clearAt := 0; clearAt < ResetPolls; clearAt++ {
		reads, sleeps := 0, 0
		read := func() (uint16, error) {
			defer func() { reads++ }()
			if reads == clearAt {
				return 0x1140, nil
			}
			return bit | 0x1140, nil
		}
		polls, err := PollReset(read, bit, func(d time.Duration) {
			if d != ResetPollInterval {
				t.Errorf("slept %s, want %s", d, ResetPollInterval)
			}
			sleeps++
		})
		if err != nil {
			t.Fatalf("clear at %d: %v", clearAt, err)
		}
		if polls != clearAt+1 || reads != clearAt+1 {
			t.Errorf("clear at %d: got %d polls and %d reads, want %d", clearAt, polls, reads, clearAt+1)
		}
		if sleeps != clearAt {
			t.Errorf("clear at %d: got %d sleeps, want %d", clearAt, sleeps, clearAt)
		}
	}
}

func TestPollResetTimeout(t *testing.T) {
	reads, sleeps := 0, 0
	polls, err := PollReset(func() (uint16, error) {
		reads++
		return 0xffff, nil
	}, 0x8000, func(time.Duration) { sleeps++ })
	if !errors.Is(err, phylink.ErrResetFailed) {
		t.Fatalf("want ErrResetFailed, got %v", err)
	}
	if polls != ResetPolls || reads != ResetPolls || sleeps != ResetPolls-1 {
		t.Errorf("got polls=%d reads=%d sleeps=%d", polls, reads, sleeps)
	}
}

func TestPollResetBusError(t *testing.T) {
	busErr := errors.New("mdio timeout")
	reads := 0
	_, err := PollReset(func() (uint16, error) {
		reads++
		return 0, busErr
	}, 0x8000, func(time.Duration) {})
	if !errors.Is(err, phylink.ErrResetFailed) {
		t.Fatalf("bus errors must collapse into ErrResetFailed, got %v", err)
	}
	if !errors.Is(err, busErr) {
		t.Error("last bus error should be joined")
	}
	if reads != ResetPolls {
		t.Errorf("bus error must not stop polling early: %d reads", reads)
	}

	// A transient error followed by a cleared bit is a successful reset.
	reads = 0
	_, err = PollReset(func() (uint16, error) {
		reads++
		if reads == 1 {
			return 0, busErr
		}
		return 0, nil
	}, 0x8000, func(time.Duration) {})
	if err != nil || reads != 2 {
		t.Errorf("got err=%v after %d reads", err, reads)
	}
}
