package linkmon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/soypat/phylink"
	"github.com/soypat/phylink/phy"
)

// Config describes the ports a [Monitor] manages.
type Config struct {
	// PollInterval is the link status poll period, e.g. "1s".
	// Empty uses DefaultPollInterval.
	PollInterval string `toml:"poll_interval" yaml:"poll_interval"`
	// RetryMax caps the backoff delay after a failed attach or poll.
	// Empty uses DefaultRetryMax.
	RetryMax string       `toml:"retry_max" yaml:"retry_max"`
	Ports    []PortConfig `toml:"port" yaml:"ports"`
}

// PortConfig describes one PHY attached to a MAC.
type PortConfig struct {
	Name string `toml:"name" yaml:"name"`
	// Type is "mvl", "mvl-sfi", "rtl" or "auto". Auto reads the PHY
	// identifier registers and requires an MDIO capable bus.
	Type string `toml:"type" yaml:"type"`
	// Media is "copper" or "fiber". Empty means copper.
	Media string `toml:"media" yaml:"media"`
	// Autoneg enables autonegotiation; false forces Speeds.
	Autoneg bool `toml:"autoneg" yaml:"autoneg"`
	// Speeds is the speed set to advertise or force, see
	// [phylink.ParseLinkSpeed]. Empty means all.
	Speeds string `toml:"speeds" yaml:"speeds"`
	// PHYAddr is the MDIO address of the PHY.
	PHYAddr uint8 `toml:"phy_addr" yaml:"phy_addr"`
	// BAR is the sysfs PCI resource file of the MAC register BAR.
	BAR string `toml:"bar" yaml:"bar"`
}

// Defaults applied by [Config.Validate].
const (
	DefaultPollInterval = time.Second
	DefaultRetryMax     = 30 * time.Second
	retryMin            = 100 * time.Millisecond
)

// LoadConfig reads a monitor configuration from a TOML (.toml) or YAML
// (.yaml, .yml) file and validates it.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("config %s: unknown format", path)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	err = cfg.Validate()
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cfg and fills in defaults.
func (cfg *Config) Validate() error {
	if len(cfg.Ports) == 0 {
		return fmt.Errorf("no ports: %w", phylink.ErrInvalidConfig)
	}
	if cfg.PollInterval == "" {
		cfg.PollInterval = DefaultPollInterval.String()
	}
	if cfg.RetryMax == "" {
		cfg.RetryMax = DefaultRetryMax.String()
	}
	if _, err := cfg.pollInterval(); err != nil {
		return err
	}
	if _, err := cfg.retryMax(); err != nil {
		return err
	}
	names := make(map[string]bool)
	for i := range cfg.Ports {
		p := &cfg.Ports[i]
		if p.Name == "" {
			p.Name = fmt.Sprintf("port%d", i)
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate port %q: %w", p.Name, phylink.ErrInvalidConfig)
		}
		names[p.Name] = true
		if p.Speeds == "" {
			p.Speeds = "all"
		}
		if p.PHYAddr > 31 {
			return fmt.Errorf("port %s: phy_addr %d: %w", p.Name, p.PHYAddr, phylink.ErrInvalidAddr)
		}
		if _, err := p.speeds(); err != nil {
			return fmt.Errorf("port %s: %w", p.Name, err)
		}
		if _, err := p.media(); err != nil {
			return fmt.Errorf("port %s: %w", p.Name, err)
		}
		if p.Type != "auto" {
			if _, err := ParseType(p.Type); err != nil {
				return fmt.Errorf("port %s: %w", p.Name, err)
			}
		}
	}
	return nil
}

func (cfg *Config) pollInterval() (time.Duration, error) {
	return parsePositiveDuration("poll_interval", cfg.PollInterval, DefaultPollInterval)
}

func (cfg *Config) retryMax() (time.Duration, error) {
	return parsePositiveDuration("retry_max", cfg.RetryMax, DefaultRetryMax)
}

func parsePositiveDuration(key, s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	} else if d <= 0 {
		return 0, fmt.Errorf("%s: %s not positive: %w", key, s, phylink.ErrInvalidConfig)
	}
	return d, nil
}

func (p *PortConfig) speeds() (phylink.LinkSpeed, error) {
	return phylink.ParseLinkSpeed(p.Speeds)
}

func (p *PortConfig) media() (phy.MediaType, error) {
	switch p.Media {
	case "", "copper":
		return phy.MediaCopper, nil
	case "fiber":
		return phy.MediaFiber, nil
	}
	return phy.MediaUnknown, fmt.Errorf("media %q: %w", p.Media, phylink.ErrInvalidConfig)
}

// ParseType parses the names printed by [phy.Type.String].
func ParseType(s string) (phy.Type, error) {
	for _, t := range []phy.Type{phy.TypeMVL, phy.TypeMVLSFI, phy.TypeRTL} {
		if s == t.String() {
			return t, nil
		}
	}
	return phy.TypeUnknown, fmt.Errorf("phy type %q: %w", s, phylink.ErrUnsupported)
}
