package ansi

import "strings"

const bel = 0x07

// Strip removes ANSI escape sequences and stray control bytes from s,
// leaving printable text. Unlike the render scanner it recognizes the full
// CSI grammar plus OSC and other string sequences: captured lines fed into
// status matching or the clipboard should not keep cursor or title noise,
// terminated or not.
func Strip(s string) string {
	if !strings.ContainsAny(s, "\x1b\x07") && printableOnly(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c == esc {
			i = skipEscape(s, i)
			continue
		}
		if c >= 0x20 || c == '\n' || c == '\r' || c == '\t' {
			b.WriteByte(c)
		}
		i++
	}
	return b.String()
}

func printableOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x20 && c != '\n' && c != '\r' && c != '\t' {
			return false
		}
	}
	return true
}

// skipEscape returns the index just past the escape sequence starting at i.
// Unterminated sequences swallow the rest of the string.
func skipEscape(s string, i int) int {
	if i+1 >= len(s) {
		return len(s)
	}
	switch s[i+1] {
	case '[': // CSI: parameter and intermediate bytes, then one final byte
		j := i + 2
		for j < len(s) {
			c := s[j]
			j++
			if c >= 0x40 && c <= 0x7e {
				break
			}
		}
		return j
	case ']': // OSC: BEL or ESC \ terminated
		for j := i + 2; j < len(s); j++ {
			if s[j] == bel {
				return j + 1
			}
			if s[j] == esc && j+1 < len(s) && s[j+1] == '\\' {
				return j + 2
			}
		}
		return len(s)
	case 'P', 'X', '^', '_': // DCS/SOS/PM/APC: ESC \ terminated
		for j := i + 2; j < len(s); j++ {
			if s[j] == esc && j+1 < len(s) && s[j+1] == '\\' {
				return j + 2
			}
		}
		return len(s)
	default:
		return i + 2
	}
}

// IsBlank reports whether the line is empty after stripping.
func IsBlank(line string) bool {
	return strings.TrimSpace(Strip(line)) == ""
}

// LastNonEmpty returns the last line that still has content after
// stripping, trimmed of surrounding whitespace.
func LastNonEmpty(lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(Strip(lines[i])); line != "" {
			return line
		}
	}
	return ""
}
