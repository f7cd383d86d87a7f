package termrender

import (
	"strings"
	"testing"

	"github.com/charmbracelet/colorprofile"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/AdamGardelov/paneboard/internal/ansi"
)

func styled(text string, style ansi.Style) ansi.Segment {
	return ansi.Segment{Text: text, Style: style}
}

func TestEncodeLinePlainStripsStyling(t *testing.T) {
	line := []ansi.Segment{
		styled("err", ansi.Style{Fg: ansi.Color{R: 255}, FgSet: true, Attrs: ansi.AttrBold}),
	}
	out := EncodeLine(line, Options{Profile: colorprofile.TrueColor, Plain: true})
	if out != "err" {
		t.Fatalf("expected plain text, got %q", out)
	}
	out = EncodeLine(line, Options{Profile: colorprofile.NoTTY})
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("unexpected ansi sequence without a tty: %q", out)
	}
}

func TestEncodeLineTrueColor(t *testing.T) {
	line := []ansi.Segment{
		{Text: " "},
		styled("ok", ansi.Style{Fg: ansi.Color{R: 255}, FgSet: true, Attrs: ansi.AttrBold}),
	}
	out := EncodeLine(line, Options{Profile: colorprofile.TrueColor})
	want := " \x1b[0;1;38;2;255;0;0mok" + xansi.ResetStyle
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestEncodeLineSharedStyleWritesOneSequence(t *testing.T) {
	style := ansi.Style{Fg: ansi.Color{G: 200}, FgSet: true}
	line := []ansi.Segment{styled("build ", style), styled("passed", style)}
	out := EncodeLine(line, Options{Profile: colorprofile.TrueColor})
	if got := strings.Count(out, "\x1b[0;"); got != 1 {
		t.Fatalf("expected a single style sequence, got %d in %q", got, out)
	}
	if !strings.Contains(out, "build passed") {
		t.Fatalf("expected joined text, got %q", out)
	}
}

func TestEncodeLineResetBetweenStyledAndDefault(t *testing.T) {
	line := []ansi.Segment{
		styled("hot", ansi.Style{Attrs: ansi.AttrBold}),
		{Text: " cold"},
	}
	out := EncodeLine(line, Options{Profile: colorprofile.TrueColor})
	want := "\x1b[0;1mhot" + xansi.ResetStyle + " cold"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestEncodeLineDecorations(t *testing.T) {
	line := []ansi.Segment{
		styled("x", ansi.Style{Attrs: ansi.AttrDim | ansi.AttrItalic | ansi.AttrUnderline}),
	}
	out := EncodeLine(line, Options{Profile: colorprofile.TrueColor})
	if !strings.Contains(out, "\x1b[0;2;3;4m") {
		t.Fatalf("expected decoration parameters, got %q", out)
	}
}

func TestEncodeLineBackground(t *testing.T) {
	line := []ansi.Segment{
		styled("sel", ansi.Style{Bg: ansi.Color{R: 30, G: 30, B: 46}, BgSet: true}),
	}
	out := EncodeLine(line, Options{Profile: colorprofile.TrueColor})
	if !strings.Contains(out, "48;2;30;30;46") {
		t.Fatalf("expected background parameters, got %q", out)
	}
}

func TestEncodeLineDownsamplesToProfile(t *testing.T) {
	line := []ansi.Segment{
		styled("warn", ansi.Style{Fg: ansi.Color{R: 255, G: 135}, FgSet: true}),
	}
	out := EncodeLine(line, Options{Profile: colorprofile.ANSI256})
	if !strings.Contains(out, ";5;") {
		t.Fatalf("expected indexed color under 256-color profile, got %q", out)
	}
	if strings.Contains(out, ";2;") {
		t.Fatalf("unexpected truecolor parameters under 256-color profile: %q", out)
	}
}

func TestEncodeLineStopsAtLineBreak(t *testing.T) {
	line := []ansi.Segment{
		{Text: "kept"},
		{LineBreak: true},
		{Text: "dropped"},
	}
	out := EncodeLine(line, Options{Profile: colorprofile.TrueColor})
	if out != "kept" {
		t.Fatalf("expected encoding to stop at the line break, got %q", out)
	}
}

func TestEncodeJoinsLinesAndResetsEach(t *testing.T) {
	style := ansi.Style{Fg: ansi.Color{B: 255}, FgSet: true}
	lines := [][]ansi.Segment{
		{styled("one", style)},
		{styled("two", style)},
	}
	out := Encode(lines, Options{Profile: colorprofile.TrueColor})
	parts := strings.Split(out, "\n")
	if len(parts) != 2 {
		t.Fatalf("expected two lines, got %d in %q", len(parts), out)
	}
	for i, part := range parts {
		if !strings.HasSuffix(part, xansi.ResetStyle) {
			t.Fatalf("line %d missing trailing reset: %q", i, part)
		}
	}
}

func TestSGRParamsZeroStyle(t *testing.T) {
	if got := sgrParams(ansi.Style{}, colorprofile.TrueColor); got != "" {
		t.Fatalf("expected no parameters for the default style, got %q", got)
	}
}
