package linkmon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/soypat/phylink"
	"github.com/soypat/phylink/phy"
)

const tomlConfig = `
poll_interval = "500ms"

[[port]]
name = "wan"
type = "rtl"
autoneg = true
speeds = "1G,100M"
bar = "/sys/bus/pci/devices/0000:03:00.0/resource0"

[[port]]
type = "mvl-sfi"
media = "fiber"
phy_addr = 1
bar = "/sys/bus/pci/devices/0000:04:00.0/resource0"
`

const yamlConfig = `
poll_interval: 500ms
ports:
  - name: wan
    type: rtl
    autoneg: true
    speeds: 1G,100M
    bar: /sys/bus/pci/devices/0000:03:00.0/resource0
  - type: mvl-sfi
    media: fiber
    phy_addr: 1
    bar: /sys/bus/pci/devices/0000:04:00.0/resource0
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	want := Config{
		PollInterval: "500ms",
		RetryMax:     DefaultRetryMax.String(),
		Ports: []PortConfig{
			{Name: "wan", Type: "rtl", Autoneg: true, Speeds: "1G,100M", BAR: "/sys/bus/pci/devices/0000:03:00.0/resource0"},
			{Name: "port1", Type: "mvl-sfi", Media: "fiber", Speeds: "all", PHYAddr: 1, BAR: "/sys/bus/pci/devices/0000:04:00.0/resource0"},
		},
	}
	for _, file := range []struct{ name, content string }{
		{"phylink.toml", tomlConfig},
		{"phylink.yaml", yamlConfig},
		{"phylink.YML", yamlConfig},
	} {
		cfg, err := LoadConfig(writeFile(t, file.name, file.content))
		if err != nil {
			t.Fatalf("%s: %v", file.name, err)
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("%s: config mismatch (-want +got):\n%s", file.name, diff)
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{name: "extension", file: "cfg.json", content: "{}"},
		{name: "syntax", file: "cfg.toml", content: "poll_interval = "},
		{name: "empty", file: "cfg.yaml", content: "poll_interval: 1s\n", wantErr: phylink.ErrInvalidConfig},
		{name: "type", file: "cfg.yaml", content: "ports:\n  - type: bcm\n", wantErr: phylink.ErrUnsupported},
		{name: "media", file: "cfg.yaml", content: "ports:\n  - type: mvl\n    media: radio\n", wantErr: phylink.ErrInvalidConfig},
		{name: "addr", file: "cfg.yaml", content: "ports:\n  - type: mvl\n    phy_addr: 40\n", wantErr: phylink.ErrInvalidAddr},
		{name: "speeds", file: "cfg.yaml", content: "ports:\n  - type: rtl\n    speeds: 2.5G\n"},
		{name: "interval", file: "cfg.yaml", content: "poll_interval: -1s\nports:\n  - type: rtl\n", wantErr: phylink.ErrInvalidConfig},
		{name: "duplicate", file: "cfg.yaml", content: "ports:\n  - {name: a, type: rtl}\n  - {name: a, type: rtl}\n", wantErr: phylink.ErrInvalidConfig},
	}
	for _, tt := range tests {
		_, err := LoadConfig(writeFile(t, tt.file, tt.content))
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
		} else if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.wantErr)
		}
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: %v", err)
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range []phy.Type{phy.TypeMVL, phy.TypeMVLSFI, phy.TypeRTL} {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Errorf("%s: got %s, %v", typ, got, err)
		}
	}
	if _, err := ParseType("unknown"); err == nil {
		t.Error("unknown type parsed")
	}
}
