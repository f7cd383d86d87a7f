package ansi

// Color is a fully resolved 24-bit terminal color.
type Color struct {
	R, G, B uint8
}

// The base 16 colors follow the VS Code terminal defaults, which is what
// most captured tool output is tuned against in practice.
var basicColors = [8]Color{
	{0, 0, 0},       // black
	{205, 49, 49},   // red
	{13, 188, 121},  // green
	{229, 229, 16},  // yellow
	{36, 114, 200},  // blue
	{188, 63, 188},  // magenta
	{17, 168, 205},  // cyan
	{229, 229, 229}, // white
}

var brightColors = [8]Color{
	{102, 102, 102}, // bright black
	{241, 76, 76},   // bright red
	{35, 209, 139},  // bright green
	{245, 245, 67},  // bright yellow
	{59, 142, 234},  // bright blue
	{214, 112, 214}, // bright magenta
	{41, 184, 219},  // bright cyan
	{255, 255, 255}, // bright white
}

// BasicColor resolves an SGR 30-37/40-47 style index (0-7). Out-of-range
// indices are clamped rather than rejected.
func BasicColor(i int) Color {
	return basicColors[clampIndex(i, 7)]
}

// BrightColor resolves an SGR 90-97/100-107 style index (0-7).
func BrightColor(i int) Color {
	return brightColors[clampIndex(i, 7)]
}

// PaletteColor resolves an xterm 256-color palette index: 0-7 base, 8-15
// bright, 16-231 the 6x6x6 cube, 232-255 the grayscale ramp.
func PaletteColor(i int) Color {
	i = clampIndex(i, 255)
	switch {
	case i < 8:
		return basicColors[i]
	case i < 16:
		return brightColors[i-8]
	case i < 232:
		c := i - 16
		return Color{
			R: cubeChannel(c / 36),
			G: cubeChannel(c / 6 % 6),
			B: cubeChannel(c % 6),
		}
	default:
		v := uint8(8 + 10*(i-232))
		return Color{R: v, G: v, B: v}
	}
}

// TrueColor builds a color from explicit channels, clamping each to 0-255.
func TrueColor(r, g, b int) Color {
	return Color{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}
}

func cubeChannel(coord int) uint8 {
	if coord == 0 {
		return 0
	}
	return uint8(55 + 40*coord)
}

func clampChannel(v int) uint8 {
	return uint8(clampIndex(v, 255))
}

func clampIndex(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
