// Package termrender encodes styled pane lines back into ANSI escape
// sequences. The capture pipeline parses raw tmux output into segments,
// clips them to a width, and this package turns the surviving segments
// into text a terminal (or a file) can display: colors are downsampled
// to the requested profile and the style state is reset at the end of
// every line so partial output never bleeds.
package termrender

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/colorprofile"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/AdamGardelov/paneboard/internal/ansi"
)

// Options controls how segments are encoded.
type Options struct {
	// Profile is the target color capability. Colors are converted with
	// colorprofile, so a truecolor style degrades to 256-color or basic
	// ANSI parameters as needed. NoTTY disables styling entirely.
	Profile colorprofile.Profile
	// Plain strips all styling regardless of Profile.
	Plain bool
}

func (o Options) plain() bool {
	return o.Plain || o.Profile == colorprofile.NoTTY
}

// Encode renders lines of segments joined by newlines.
func Encode(lines [][]ansi.Segment, opts Options) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		encodeLine(&b, line, opts)
	}
	return b.String()
}

// EncodeLine renders a single line of segments without a trailing newline.
func EncodeLine(line []ansi.Segment, opts Options) string {
	var b strings.Builder
	encodeLine(&b, line, opts)
	return b.String()
}

func encodeLine(b *strings.Builder, line []ansi.Segment, opts Options) {
	plain := opts.plain()
	pen := ""
	for _, seg := range line {
		if seg.LineBreak {
			break
		}
		if seg.Text == "" {
			continue
		}
		if plain {
			b.WriteString(seg.Text)
			continue
		}
		params := sgrParams(seg.Style, opts.Profile)
		if params != pen {
			if params == "" {
				b.WriteString(xansi.ResetStyle)
			} else {
				// Restate the full rendition instead of diffing against
				// the pen; a leading 0 clears whatever came before.
				b.WriteString("\x1b[0;" + params + "m")
			}
			pen = params
		}
		b.WriteString(seg.Text)
	}
	if pen != "" {
		b.WriteString(xansi.ResetStyle)
	}
}

// sgrParams builds the SGR parameter list for a style, without the leading
// reset or the CSI framing. The zero style yields the empty string.
func sgrParams(s ansi.Style, profile colorprofile.Profile) string {
	if s.IsZero() {
		return ""
	}
	var params []string
	if s.Attrs.Has(ansi.AttrBold) {
		params = append(params, "1")
	}
	if s.Attrs.Has(ansi.AttrDim) {
		params = append(params, "2")
	}
	if s.Attrs.Has(ansi.AttrItalic) {
		params = append(params, "3")
	}
	if s.Attrs.Has(ansi.AttrUnderline) {
		params = append(params, "4")
	}
	if s.FgSet {
		params = appendColor(params, s.Fg, profile, false)
	}
	if s.BgSet {
		params = appendColor(params, s.Bg, profile, true)
	}
	return strings.Join(params, ";")
}

// appendColor converts a resolved RGB color through the profile and appends
// the matching SGR parameters. Profiles without color support drop it.
func appendColor(params []string, c ansi.Color, profile colorprofile.Profile, background bool) []string {
	converted := profile.Convert(xansi.RGBColor{R: c.R, G: c.G, B: c.B})
	if converted == nil {
		return params
	}
	switch v := converted.(type) {
	case xansi.BasicColor:
		n := int(v)
		base := 30
		if n >= 8 {
			base = 90
			n -= 8
		}
		if background {
			base += 10
		}
		return append(params, strconv.Itoa(base+n))
	case xansi.IndexedColor:
		return append(params, extendedLead(background), "5", strconv.Itoa(int(v)))
	case xansi.RGBColor:
		return append(params, extendedLead(background), "2",
			strconv.Itoa(int(v.R)), strconv.Itoa(int(v.G)), strconv.Itoa(int(v.B)))
	default:
		r, g, b, a := converted.RGBA()
		if a == 0 {
			return params
		}
		return append(params, extendedLead(background), "2",
			strconv.Itoa(int(r>>8)), strconv.Itoa(int(g>>8)), strconv.Itoa(int(b>>8)))
	}
}

func extendedLead(background bool) string {
	if background {
		return "48"
	}
	return "38"
}
