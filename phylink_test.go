package phylink

import (
	"errors"
	"testing"
)

func TestParseLinkSpeed(t *testing.T) {
	tests := []struct {
		in      string
		want    LinkSpeed
		wantErr bool
	}{
		{in: "1G", want: Speed1GFull},
		{in: "100M,10M", want: Speed100MFull | Speed10MFull},
		{in: "1G-F|100M-F|10M-F", want: SpeedAll},
		{in: "auto", want: SpeedAll},
		{in: "1000 100", want: Speed1GFull | Speed100MFull},
		{in: "", wantErr: true},
		{in: "2.5G", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLinkSpeed(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLinkSpeed(%q) err=%v, wantErr=%v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLinkSpeed(%q)=%s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLinkSpeedString(t *testing.T) {
	tests := []struct {
		s    LinkSpeed
		want string
	}{
		{SpeedUnknown, "unknown"},
		{Speed1GFull, "1G-F"},
		{SpeedAll, "1G-F|100M-F|10M-F"},
		{1, "0x1"},
		{Speed10MFull | 1, "10M-F|0x1"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("LinkSpeed(%#x).String()=%q, want %q", uint32(tt.s), got, tt.want)
		}
	}
	for _, s := range []LinkSpeed{Speed10MFull, Speed100MFull, Speed1GFull} {
		if !s.IsSingle() || s.Mbps() == 0 {
			t.Errorf("%s should be a single speed", s)
		}
	}
	if SpeedAll.IsSingle() || SpeedAll.Mbps() != 0 {
		t.Error("SpeedAll is not a single speed")
	}
	if SpeedAll.Has(SpeedUnknown) {
		t.Error("Has(SpeedUnknown) must be false")
	}
}

func TestErrors(t *testing.T) {
	var err error = ErrResetFailed
	if !errors.Is(err, ErrResetFailed) || errors.Is(err, ErrTypeMismatch) {
		t.Fatal("error identity")
	}
	if ErrTypeMismatch.Error() != "PHY type mismatch" {
		t.Errorf("got %q", ErrTypeMismatch.Error())
	}
	if (LinkResult{}).String() != "down" {
		t.Error("zero LinkResult must read as down")
	}
}
