package ansi

import "unicode/utf8"

// Segment is one styled run of a rendered line. The final item of every
// rendered line is a Segment with LineBreak set and no text; everything
// before it carries a snapshot of the style active when it was emitted.
type Segment struct {
	Text      string
	Style     Style
	LineBreak bool
}

// SegmentIter lazily yields the segments of one rendered line. It is
// forward-only and single-use; render again to start over. All state lives
// in the iterator, so concurrent renders of different lines are safe.
type SegmentIter struct {
	scan   lineScanner
	style  Style
	budget int
	phase  iterPhase
}

type iterPhase uint8

const (
	phasePad iterPhase = iota
	phaseScan
	phaseBreak
	phaseDone
)

// RenderLine renders one raw captured line into width-bounded styled
// segments. maxWidth counts display cells and includes one reserved leading
// padding cell, so the emitted text occupies at most maxWidth-1 cells;
// widths of zero or less produce only the line break. Width is measured in
// runes: wide and combining characters count one cell each, which keeps the
// bound conservative for the layouts this feeds.
func RenderLine(raw string, maxWidth int) *SegmentIter {
	it := &SegmentIter{scan: lineScanner{raw: raw}}
	if maxWidth <= 0 {
		it.phase = phaseBreak
		return it
	}
	it.budget = maxWidth - 1
	return it
}

// Next returns the next segment and whether one was produced. After the
// LineBreak segment it reports false forever.
func (it *SegmentIter) Next() (Segment, bool) {
	switch it.phase {
	case phasePad:
		it.phase = phaseScan
		return Segment{Text: " "}, true
	case phaseScan:
		if seg, ok := it.scanSegment(); ok {
			return seg, true
		}
		it.phase = phaseDone
		return Segment{LineBreak: true}, true
	case phaseBreak:
		it.phase = phaseDone
		return Segment{LineBreak: true}, true
	default:
		return Segment{}, false
	}
}

// scanSegment walks the raw line until one non-empty literal segment can be
// emitted, folding SGR sequences into the running style on the way. It
// stops pulling tokens the moment the width budget is spent, so style
// mutations past the truncation point are never observed.
func (it *SegmentIter) scanSegment() (Segment, bool) {
	for it.budget > 0 {
		tok, ok := it.scan.next()
		if !ok {
			break
		}
		if tok.kind == tokenCSI {
			if tok.final == sgrFinal {
				applySGR(&it.style, parseSGRParams(tok.params))
			}
			continue
		}
		text := truncateRunes(tok.text, it.budget)
		it.budget -= utf8.RuneCountInString(text)
		return Segment{Text: text, Style: it.style}, true
	}
	return Segment{}, false
}

// truncateRunes keeps at most n leading runes of s.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
