package ansi

import (
	"strconv"
	"strings"
)

// sgrFinal selects SGR, the only CSI sequence this package acts on.
const sgrFinal = 'm'

// parseSGRParams splits a raw CSI parameter span into numeric values.
// Empty and unparseable positions become 0, which SGR reads as a reset;
// that permissive fallback matches how terminals treat junk parameters and
// is relied on by the reset tests.
func parseSGRParams(raw string) []int {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	params := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			v = 0
		}
		params[i] = v
	}
	return params
}

// applySGR folds one SGR parameter list into st, left to right. A nil or
// empty list is a full reset, matching the bare ESC[m form. Unknown codes
// are skipped without effect.
func applySGR(st *Style, params []int) {
	if len(params) == 0 {
		*st = Style{}
		return
	}
	for i := 0; i < len(params); i++ {
		switch p := params[i]; {
		case p == 0:
			*st = Style{}
		case p == 1:
			st.Attrs |= AttrBold
		case p == 2:
			st.Attrs |= AttrDim
		case p == 3:
			st.Attrs |= AttrItalic
		case p == 4:
			st.Attrs |= AttrUnderline
		case p == 22:
			st.Attrs &^= AttrBold | AttrDim
		case p == 23:
			st.Attrs &^= AttrItalic
		case p == 24:
			st.Attrs &^= AttrUnderline
		case p >= 30 && p <= 37:
			st.Fg, st.FgSet = BasicColor(p-30), true
		case p == 38:
			c, n, ok := extendedColor(params[i+1:])
			if ok {
				st.Fg, st.FgSet = c, true
			}
			i += n
		case p == 39:
			st.Fg, st.FgSet = Color{}, false
		case p >= 40 && p <= 47:
			st.Bg, st.BgSet = BasicColor(p-40), true
		case p == 48:
			c, n, ok := extendedColor(params[i+1:])
			if ok {
				st.Bg, st.BgSet = c, true
			}
			i += n
		case p == 49:
			st.Bg, st.BgSet = Color{}, false
		case p >= 90 && p <= 97:
			st.Fg, st.FgSet = BrightColor(p-90), true
		case p >= 100 && p <= 107:
			st.Bg, st.BgSet = BrightColor(p-100), true
		}
	}
}

// extendedColor interprets the parameters following a 38/48 introducer and
// returns how many of them it consumed. Incomplete or unknown forms swallow
// the parameters they examined without producing a color; the caller must
// never read past the reported count.
func extendedColor(rest []int) (Color, int, bool) {
	if len(rest) == 0 {
		return Color{}, 0, false
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return Color{}, len(rest), false
		}
		return PaletteColor(rest[1]), 2, true
	case 2:
		if len(rest) < 4 {
			return Color{}, len(rest), false
		}
		return TrueColor(rest[1], rest[2], rest[3]), 4, true
	default:
		return Color{}, 1, false
	}
}
