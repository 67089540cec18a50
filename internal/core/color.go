package core

// Color represents a foreground color for a screen cell.
// The platform maps these to ANSI 256-color codes.
type Color uint8

// Predefined colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// levelPalette cycles through distinguishable colors for tile levels.
var levelPalette = []Color{
	ColorCyan,
	ColorGreen,
	ColorYellow,
	ColorOrange,
	ColorRed,
	ColorMagenta,
	ColorBlue,
	ColorBrightCyan,
	ColorBrightGreen,
	ColorBrightYellow,
	ColorBrightRed,
	ColorBrightMagenta,
}

// LevelColor returns the display color for a tile level.
func LevelColor(level int) Color {
	if level < 0 {
		return ColorGray
	}
	return levelPalette[level%len(levelPalette)]
}
