package ansi

// Attr is a bitset of text decoration flags.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
)

// Has reports whether every flag in mask is set.
func (a Attr) Has(mask Attr) bool {
	return a&mask == mask
}

// Style is the graphic rendition in effect for a run of text. The zero
// value means the terminal default: no colors, no decorations. Style is a
// plain value; assigning it snapshots the state, so a segment emitted with
// one Style is unaffected by later mutation of the source.
type Style struct {
	Fg, Bg Color
	FgSet  bool
	BgSet  bool
	Attrs  Attr
}

// IsZero reports whether s is the terminal default rendition.
func (s Style) IsZero() bool {
	return s == Style{}
}
