package rtl

import (
	"log/slog"

	"github.com/soypat/phylink/internal"
)

func (p *PHY) logattrs(lvl slog.Level, msg string, attrs ...slog.Attr) {
	internal.LogAttrs(p.log, lvl, msg, attrs...)
}

func (p *PHY) debug(msg string, attrs ...slog.Attr) {
	p.logattrs(slog.LevelDebug, msg, attrs...)
}

func (p *PHY) trace(msg string, attrs ...slog.Attr) {
	p.logattrs(internal.LevelTrace, msg, attrs...)
}

func (p *PHY) logerr(msg string, attrs ...slog.Attr) {
	p.logattrs(slog.LevelError, msg, attrs...)
}
