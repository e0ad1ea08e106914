// Package config centralizes the host-side timing and display parameters.
// Gameplay constants live in the file-backed internal/config package.
package config

import "time"

// Terminal rendering limits. The canvas keeps the playfield aspect ratio
// inside these bounds and is centred in larger terminals.
const (
	MaxTermWidth  = 120 // Columns
	MaxTermHeight = 60  // Rows
	MinTermWidth  = 30
	MinTermHeight = 20
	HUDRows       = 1 // Rows reserved above the playfield
)

// Player
const (
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Effects
const (
	HitShakeSeconds     = 0.3 // Screen shake after losing a life
	LevelBannerSeconds  = 1.5 // "LEVEL n CLEAR" banner duration
	TextFadeShadeCutoff = 0.3 // Floating text below this alpha is drawn dim
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate. One tick advances every session by one frame.
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)

// Channel sizes
const (
	InputQueueSize  = 256
	EventQueueSize  = 64
	RegisterBacklog = 16
)
