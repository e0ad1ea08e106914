package draw

// ANSI foreground colors.
const (
	ColorReset         = "\033[0m"
	ColorRed           = "\033[31m"
	ColorGreen         = "\033[32m"
	ColorYellow        = "\033[33m"
	ColorMagenta       = "\033[35m"
	ColorGray          = "\033[90m"
	ColorBrightRed     = "\033[91m"
	ColorBrightGreen   = "\033[92m"
	ColorBrightYellow  = "\033[93m"
	ColorBrightMagenta = "\033[95m"
	ColorBrightCyan    = "\033[96m"
	ColorBrightWhite   = "\033[97m"
)

// Pen selects the color a canvas pixel is drawn with. The zero Pen is an
// unset pixel.
type Pen uint8

const (
	PenNone Pen = iota
	PenWhite
	PenCyan
	PenGreen
	PenDimGreen
	PenYellow
	PenRed
	PenMagenta
	PenGray
)

var penColors = [...]string{
	PenNone:     ColorReset,
	PenWhite:    ColorBrightWhite,
	PenCyan:     ColorBrightCyan,
	PenGreen:    ColorBrightGreen,
	PenDimGreen: ColorGreen,
	PenYellow:   ColorBrightYellow,
	PenRed:      ColorBrightRed,
	PenMagenta:  ColorBrightMagenta,
	PenGray:     ColorGray,
}

// Color returns the ANSI sequence for p.
func (p Pen) Color() string {
	if int(p) >= len(penColors) {
		return ColorReset
	}
	return penColors[p]
}
