package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/AdamGardelov/paneboard/internal/limits"
)

var includeCaptures atomic.Bool

func setIncludeCaptures(v bool) {
	includeCaptures.Store(v)
}

func IncludeCaptures() bool {
	return includeCaptures.Load()
}

// CaptureAttr returns a log attribute for captured pane content.
// Captures hold whatever the user had on screen, so by default only
// the length and a hash prefix are recorded.
func CaptureAttr(key string, capture []byte) slog.Attr {
	if key == "" {
		key = "capture"
	}
	if len(capture) == 0 {
		return slog.String(key, `""`)
	}
	if !IncludeCaptures() {
		return slog.String(key, redactedCaptureString(capture))
	}
	const preview = 256
	if len(capture) <= preview {
		return slog.String(key, fmt.Sprintf("%q", capture))
	}
	head := capture[:preview]
	return slog.String(key, fmt.Sprintf("%q...(+%d bytes)", head, len(capture)-preview))
}

func redactedCaptureString(capture []byte) string {
	data := capture
	prefixLen := len(capture)
	if limit := limits.CaptureInspectLimit; limit > 0 && len(data) > limit {
		data = data[:limit]
		prefixLen = limit
	}
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	if len(hash) > 12 {
		hash = hash[:12]
	}
	return fmt.Sprintf("redacted(len=%d sha256_prefix=%s prefix_len=%d)", len(capture), hash, prefixLen)
}
