package engine

// State is the session phase.
type State int

const (
	StatePlaying State = iota
	StateLost
	StateWonLevel
	StateWonGame
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateLost:
		return "lost"
	case StateWonLevel:
		return "won_level"
	case StateWonGame:
		return "won_game"
	default:
		return "unknown"
	}
}

// Terminal reports whether Advance no longer changes the session.
func (s State) Terminal() bool {
	return s == StateLost || s == StateWonGame
}
