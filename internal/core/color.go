package core

// Color is a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

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

// Attr is a set of text attributes applied on top of a Color.
type Attr uint8

const (
	AttrBold    Attr = 1 << iota // Emphasis (score changes, titles)
	AttrReverse                  // Swap foreground and background (cursor, hint)
	AttrFaint                    // Dimmed (inactive board)

	AttrNone Attr = 0
)

// Has returns true if every attribute in other is set.
func (a Attr) Has(other Attr) bool {
	return a&other == other
}

// Style is the color and attributes of a single cell.
type Style struct {
	Color Color
	Attr  Attr
}

// Fg returns a style with only a foreground color.
func Fg(c Color) Style {
	return Style{Color: c}
}
