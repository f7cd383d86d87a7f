package ansi

const esc = 0x1b

type tokenKind uint8

const (
	tokenLiteral tokenKind = iota
	tokenCSI
)

// token is one scanned span of a raw line: a run of literal text, or a
// complete CSI sequence with its raw parameter bytes and final letter.
// Both text and params are substrings of the scanned line.
type token struct {
	kind   tokenKind
	text   string
	params string
	final  byte
}

// lineScanner splits a raw line into literal runs and CSI sequences. Only
// the strict form ESC '[' followed by digits/semicolons and one ASCII
// letter counts as a sequence; anything else, including an unterminated
// trailer or a private-mode prefix, stays inside the literal text exactly
// as captured.
type lineScanner struct {
	raw string
	pos int
}

func (s *lineScanner) next() (token, bool) {
	if s.pos >= len(s.raw) {
		return token{}, false
	}
	if end, params, final, ok := matchCSI(s.raw, s.pos); ok {
		s.pos = end
		return token{kind: tokenCSI, params: params, final: final}, true
	}
	start := s.pos
	s.pos++
	for s.pos < len(s.raw) {
		if s.raw[s.pos] == esc {
			if _, _, _, ok := matchCSI(s.raw, s.pos); ok {
				break
			}
		}
		s.pos++
	}
	return token{kind: tokenLiteral, text: s.raw[start:s.pos]}, true
}

// matchCSI reports whether a full CSI sequence starts at pos, and when it
// does, the index just past its final byte plus the parameter span.
func matchCSI(raw string, pos int) (end int, params string, final byte, ok bool) {
	if pos+1 >= len(raw) || raw[pos] != esc || raw[pos+1] != '[' {
		return 0, "", 0, false
	}
	i := pos + 2
	for i < len(raw) && isParamByte(raw[i]) {
		i++
	}
	if i >= len(raw) || !isFinalLetter(raw[i]) {
		return 0, "", 0, false
	}
	return i + 1, raw[pos+2 : i], raw[i], true
}

func isParamByte(b byte) bool {
	return b == ';' || (b >= '0' && b <= '9')
}

func isFinalLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
