package core

// Color represents a foreground color for a screen cell.
// Values are ANSI 256-color codes for terminal compatibility.
type Color uint8

// ColorDefault leaves the terminal's own foreground in place.
const ColorDefault Color = 0

// nesToANSI approximates the 64-entry 2C02 master palette with xterm-256 codes.
var nesToANSI = [64]Color{
	// 0x00
	244, 19, 20, 55, 89, 125, 124, 94, 58, 22, 22, 23, 24, 16, 16, 16,
	// 0x10
	250, 26, 27, 99, 163, 162, 166, 172, 100, 28, 29, 30, 31, 16, 16, 16,
	// 0x20
	231, 75, 105, 141, 207, 205, 209, 215, 184, 112, 78, 80, 81, 240, 16, 16,
	// 0x30
	231, 153, 183, 189, 219, 218, 223, 229, 229, 194, 158, 159, 159, 252, 16, 16,
}

// PaletteColor maps a 6-bit console palette entry to a terminal color.
func PaletteColor(entry uint8) Color {
	return nesToANSI[entry&0x3F]
}
