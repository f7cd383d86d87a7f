package limits

const (
	// DefaultCaptureLines is the fallback capture depth when neither the
	// pane height nor the configuration provides one.
	DefaultCaptureLines = 12

	// CaptureSlackLines is fetched beyond the visible pane height so status
	// classification still sees output that just scrolled off.
	CaptureSlackLines = 20

	// MaxCaptureLines bounds a single capture-pane call. Captures are
	// re-issued on every refresh tick, so the cap is per-call, not total.
	MaxCaptureLines = 400

	// CaptureInspectLimit bounds how many capture bytes are hashed or
	// scanned when building redacted log attributes.
	CaptureInspectLimit = 4096
)

// CaptureLinesFor returns the number of lines to capture for a pane of the
// given height when the caller wants at least want lines of preview.
func CaptureLinesFor(paneHeight, want int) int {
	lines := want
	if paneHeight > 0 {
		if candidate := paneHeight + CaptureSlackLines; candidate > lines {
			lines = candidate
		}
	}
	if lines <= 0 {
		lines = DefaultCaptureLines
	}
	if lines > MaxCaptureLines {
		lines = MaxCaptureLines
	}
	return lines
}
