//go:build debugheaplog

package internal

import (
	"log/slog"
	"time"
	"unsafe"
)

const (
	HeapAllocDebugging = true
	timefmt            = "[15:04:05.000000]"
)

var timebuf [len(timefmt) * 2]byte

func LogEnabled(l *slog.Logger, lvl slog.Level) bool {
	return true
}

// LogAttrs prints records with the runtime print builtins, which do not
// allocate, and reports heap growth caused by the caller since the last
// record.
func LogAttrs(_ *slog.Logger, level slog.Level, msg string, attrs ...slog.Attr) {
	LogAllocs(msg)
	n := len(time.Now().AppendFormat(timebuf[:0], timefmt))
	print(unsafe.String(&timebuf[0], n), " ")
	if level == LevelTrace {
		print("TRACE ")
	} else {
		print(level.String(), " ")
	}
	print(msg)
	for _, a := range attrs {
		switch a.Value.Kind() {
		case slog.KindString:
			print(" ", a.Key, "=", a.Value.String())
		case slog.KindInt64:
			print(" ", a.Key, "=", a.Value.Int64())
		case slog.KindUint64:
			print(" ", a.Key, "=0x")
			printHex(a.Value.Uint64())
		case slog.KindBool:
			print(" ", a.Key, "=", a.Value.Bool())
		case slog.KindDuration:
			print(" ", a.Key, "=", int64(a.Value.Duration()), "ns")
		}
	}
	println()
}

func printHex(v uint64) {
	const digits = "0123456789abcdef"
	var buf [16]byte
	i := len(buf)
	for {
		i--
		buf[i] = digits[v&0xf]
		v >>= 4
		if v == 0 {
			break
		}
	}
	print(unsafe.String(&buf[i], len(buf)-i))
}
