package object

// FloatingText is a label that drifts upward and fades out, such as "+10".
// X is the horizontal centre of the text.
type FloatingText struct {
	X, Y    float64
	Rise    float64 // Units moved up per frame
	Text    string
	Life    int
	MaxLife int
}

// NewFloatingText creates a label centred at x.
func NewFloatingText(x, y float64, text string, rise float64, life int) FloatingText {
	return FloatingText{X: x, Y: y, Rise: rise, Text: text, Life: life, MaxLife: life}
}

// Update moves the label up and consumes one frame of life.
func (t *FloatingText) Update() {
	t.Y -= t.Rise
	t.Life--
}

// Expired reports whether the label should be removed.
func (t FloatingText) Expired() bool {
	return t.Life <= 0
}

// Alpha returns the remaining life fraction in [0, 1].
func (t FloatingText) Alpha() float64 {
	return lifeFraction(t.Life, t.MaxLife)
}
