package engine

import "github.com/tomz197/invaders/internal/object"

// EventType identifies something that happened during a frame.
type EventType int

const (
	EventInvaderKilled EventType = iota
	EventPowerUpSpawned
	EventPowerUpCollected
	EventPlayerHit
	EventShieldAbsorbed
	EventEffectExpired
	EventWaveDropped
	EventLevelCleared
	EventLevelStarted
	EventGameLost
	EventGameWon
)

var eventNames = [...]string{
	EventInvaderKilled:    "invader_killed",
	EventPowerUpSpawned:   "powerup_spawned",
	EventPowerUpCollected: "powerup_collected",
	EventPlayerHit:        "player_hit",
	EventShieldAbsorbed:   "shield_absorbed",
	EventEffectExpired:    "effect_expired",
	EventWaveDropped:      "wave_dropped",
	EventLevelCleared:     "level_cleared",
	EventLevelStarted:     "level_started",
	EventGameLost:         "game_lost",
	EventGameWon:          "game_won",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

// Event is emitted by Advance. Only the fields relevant to Type are set.
type Event struct {
	Type    EventType
	X, Y    float64            // Where it happened, if anywhere
	Score   int                // InvaderKilled: points awarded
	PowerUp object.PowerUpKind // PowerUp* and EffectExpired
	Level   int                // LevelCleared, LevelStarted, GameWon
	Lives   int                // PlayerHit: lives left
}
