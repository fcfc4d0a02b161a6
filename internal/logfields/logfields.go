// Package logfields holds the canonical slog attribute keys used across folio.
package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyCollection = "collection"
	KeySlug       = "slug"
	KeyID         = "id"
	KeyLocale     = "locale"
	KeyKind       = "kind"
	KeyPath       = "path"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyAddr       = "addr"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyEvent      = "event"
	KeyError      = "error"
)

func Collection(name string) slog.Attr { return slog.String(KeyCollection, name) }
func Slug(s string) slog.Attr          { return slog.String(KeySlug, s) }
func ID(id string) slog.Attr           { return slog.String(KeyID, id) }
func Locale(l string) slog.Attr        { return slog.String(KeyLocale, l) }
func Kind(k string) slog.Attr          { return slog.String(KeyKind, k) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Addr(a string) slog.Attr          { return slog.String(KeyAddr, a) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func Event(e string) slog.Attr         { return slog.String(KeyEvent, e) }

// Duration reports d in milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d)/float64(time.Millisecond))
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
