// Package linkmon attaches the PHYs of one or more network ports and
// watches their link state.
//
// Each port is driven by its own goroutine and must own its bus: ports never
// share a PHY or an MDIO master. Failed attaches and status polls are retried
// with exponential backoff.
package linkmon

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jpillora/backoff"
	"golang.org/x/sync/errgroup"

	"github.com/soypat/phylink"
	"github.com/soypat/phylink/internal"
)

// Event reports a link state change on a port.
type Event struct {
	Port string
	Link phylink.LinkResult
}

// MonitorOptions are the optional dependencies of a [Monitor].
type MonitorOptions struct {
	Logger *slog.Logger
	// OnChange is called from the port goroutine on every link state
	// change, including the first successful poll.
	OnChange func(Event)
}

// Monitor polls the link state of a set of ports.
type Monitor struct {
	ports    []*Port
	interval time.Duration
	retryMax time.Duration
	log      *slog.Logger
	onChange func(Event)
}

// NewMonitor returns a monitor for ports using the intervals of cfg.
func NewMonitor(cfg Config, ports []*Port, opts MonitorOptions) (*Monitor, error) {
	if len(ports) == 0 {
		return nil, phylink.ErrInvalidConfig
	}
	interval, err := cfg.pollInterval()
	if err != nil {
		return nil, err
	}
	retryMax, err := cfg.retryMax()
	if err != nil {
		return nil, err
	}
	return &Monitor{
		ports:    ports,
		interval: interval,
		retryMax: retryMax,
		log:      opts.Logger,
		onChange: opts.OnChange,
	}, nil
}

// Open maps the BAR of every port in cfg and returns a monitor over them.
func Open(cfg Config, opts PortOptions) (*Monitor, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	var ports []*Port
	for _, pc := range cfg.Ports {
		var bus Bus
		bus, err = OpenBus(pc)
		if err != nil {
			break
		}
		var p *Port
		p, err = NewPort(pc, bus, opts)
		if err != nil {
			if bus.Close != nil {
				bus.Close()
			}
			break
		}
		ports = append(ports, p)
	}
	if err != nil {
		for _, p := range ports {
			p.Close()
		}
		return nil, err
	}
	return NewMonitor(cfg, ports, MonitorOptions{Logger: opts.Logger})
}

// SetOnChange sets the link change callback. It must not be called while
// Run is executing.
func (m *Monitor) SetOnChange(fn func(Event)) { m.onChange = fn }

// Ports returns the monitored ports.
func (m *Monitor) Ports() []*Port { return m.ports }

// Run attaches every port and polls link state until ctx is done.
// Run returns nil after cancellation.
func (m *Monitor) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range m.ports {
		g.Go(func() error {
			return m.watch(ctx, p)
		})
	}
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}

// Close releases the bus of every port.
func (m *Monitor) Close() error {
	var errs []error
	for _, p := range m.ports {
		errs = append(errs, p.Close())
	}
	return errors.Join(errs...)
}

func (m *Monitor) watch(ctx context.Context, p *Port) error {
	b := &backoff.Backoff{
		Min:    min(retryMin, m.interval),
		Max:    m.retryMax,
		Factor: 2,
	}
	timer := time.NewTimer(0)
	defer timer.Stop()
	attached := false
	var last phylink.LinkResult
	var polled bool
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		var err error
		if !attached {
			err = p.Attach()
			if err == nil {
				attached = true
				m.info("linkmon:attached", slog.String("port", p.Name), slog.String("type", p.Desc.Type.String()),
					slog.String("adv", p.Desc.AutonegAdvertised.String()))
			}
		}
		if attached {
			var res phylink.LinkResult
			res, err = p.Link.CheckLink()
			if err == nil && (!polled || res != last) {
				polled = true
				last = res
				m.info("linkmon:link", slog.String("port", p.Name), slog.Bool("up", res.Up), slog.String("speed", res.Speed.String()))
				if m.onChange != nil {
					m.onChange(Event{Port: p.Name, Link: res})
				}
			}
		}
		wait := m.interval
		if err != nil {
			wait = b.Duration()
			m.warn("linkmon:retry", slog.String("port", p.Name), slog.Bool("attached", attached),
				slog.String("err", err.Error()), slog.Duration("wait", wait))
		} else {
			b.Reset()
		}
		timer.Reset(wait)
	}
}

func (m *Monitor) info(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(m.log, slog.LevelInfo, msg, attrs...)
}

func (m *Monitor) warn(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(m.log, slog.LevelWarn, msg, attrs...)
}
