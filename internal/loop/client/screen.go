package client

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/engine"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// hudRow is the HUD line, one row above the canvas border.
const hudRow = -1

var powerUpPens = [object.NumPowerUpKinds]draw.Pen{
	object.PowerUpMultishot: draw.PenYellow,
	object.PowerUpShield:    draw.PenCyan,
	object.PowerUpSpeedup:   draw.PenMagenta,
}

var effectLabels = [object.NumPowerUpKinds]string{
	object.PowerUpMultishot: "MULTI",
	object.PowerUpShield:    "SHIELD",
	object.PowerUpSpeedup:   "SPEED",
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	snap := c.state.Snapshot
	if snap != nil && c.state.GameState != GameStateStart && !c.state.tooSmall {
		c.drawWorld(snap)
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)

	if snap != nil && c.state.GameState == GameStatePlaying {
		c.drawTexts(snap)
	}

	// Draw UI overlay
	c.drawUI(snap)

	return c.chunkWriter.Flush()
}

// drawWorld paints every entity of the snapshot onto the canvas, shifted by
// the current screen shake.
func (c *Client) drawWorld(snap *engine.Snapshot) {
	dx, dy := c.shakeOffset()
	cv := c.canvas

	for _, cluster := range snap.Shields {
		for _, b := range cluster.Blocks {
			if !b.Live() {
				continue
			}
			pen := draw.PenGreen
			if b.HP*2 <= b.MaxHP {
				pen = draw.PenDimGreen
			}
			cv.FillRect(b.X+dx, b.Y+dy, b.Size, b.Size, pen)
		}
	}

	for _, inv := range snap.Invaders {
		if inv.Alive {
			cv.FillRect(inv.X+dx, inv.Y+dy, inv.W, inv.H, draw.PenGreen)
		}
	}

	for _, p := range snap.PowerUps {
		cv.FillRect(p.X+dx, p.Y+dy, p.Size, p.Size, powerUpPens[p.Kind])
	}

	for _, b := range snap.PlayerBullets {
		cv.FillRect(b.X+dx, b.Y+dy, b.W, b.H, draw.PenYellow)
	}
	for _, b := range snap.InvaderBullets {
		cv.FillRect(b.X+dx, b.Y+dy, b.W, b.H, draw.PenRed)
	}

	for _, p := range snap.Particles {
		pen := draw.PenYellow
		if p.Alpha() < 0.5 {
			pen = draw.PenRed
		}
		cv.FillRect(p.X-p.Radius+dx, p.Y-p.Radius+dy, 2*p.Radius, 2*p.Radius, pen)
	}

	if snap.State != engine.StateLost {
		pen := draw.PenWhite
		if snap.EffectActive(object.PowerUpShield) {
			pen = draw.PenCyan
		}
		pl := snap.Player
		cv.FillRect(pl.X+dx, pl.Y+dy, pl.W, pl.H, pen)
	}
}

// shakeOffset returns the playfield displacement while the screen shakes.
func (c *Client) shakeOffset() (float64, float64) {
	if c.state.shakeTimer <= 0 {
		return 0, 0
	}
	return (rand.Float64() - 0.5) * 5, (rand.Float64() - 0.5) * 5
}

// drawTexts draws floating labels over the canvas.
// Marks the drawn cells as dirty so the canvas overwrites them next frame.
func (c *Client) drawTexts(snap *engine.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()

	for _, t := range snap.Texts {
		col, row := c.canvas.LogicalToTerminal(t.X, t.Y)
		col = draw.CenterCol(col, t.Text)
		width := draw.DisplayWidth(t.Text)
		if row < 1 || row > termHeight || col < 1 || col+width-1 > termWidth {
			continue
		}
		color := draw.ColorBrightWhite
		if t.Alpha() < config.TextFadeShadeCutoff {
			color = draw.ColorGray
		}
		c.chunkWriter.WriteColorAt(col, row, color, t.Text)
		c.canvas.MarkTextDirty(col, row, width)
	}
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snap *engine.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.tooSmall {
		c.writeCentered(centerX, centerY, "Terminal too small")
		return
	}

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		if snap != nil {
			c.drawPlayingHUD(termWidth, snap)
			c.drawBanner(centerX, centerY)
		}
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateGameOver:
		c.drawEndScreen(centerX, centerY, gameOverArt, snap)
	case GameStateVictory:
		c.drawEndScreen(centerX, centerY, victoryArt, snap)
	}
}

// writeCentered writes s centred on column centerX and marks it dirty.
func (c *Client) writeCentered(centerX, row int, s string) {
	col := c.chunkWriter.WriteCentered(centerX, row, s)
	c.canvas.MarkTextDirty(col, row, draw.DisplayWidth(s))
}

// writeArt writes a block of lines centred on centerX starting at row.
func (c *Client) writeArt(centerX, row int, art []string) {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	for i, line := range art {
		c.chunkWriter.WriteAt(centerX-width/2, row+i, line)
		c.canvas.MarkTextDirty(centerX-width/2, row+i, len(line))
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")
	c.writeCentered(centerX, centerY, fmt.Sprintf(
		"Disconnecting in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	))
	c.writeCentered(centerX, centerY+2, "Press any key to continue")
}

// figlet "small"
var titleArt = []string{
	` ___ _  ___   ___   ___  ___ ___  ___ `,
	`|_ _| \| \ \ / /_\ |   \| __| _ \/ __|`,
	" | || .` |\\ V / _ \\| |) | _||   /\\__ \\",
	`|___|_|\_| \_/_/ \_\___/|___|_|_\|___/`,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

var victoryArt = []string{
	`__   _____  _   _  __      _____ _  _ `,
	`\ \ / / _ \| | | | \ \    / /_ _| \| |`,
	" \\ V / (_) | |_| |  \\ \\/\\/ / | || .` |",
	`  |_| \___/ \___/    \_/\_/ |___|_|\_|`,
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	titleStartY := centerY - 8
	c.writeArt(centerX, titleStartY, titleArt)

	c.writeCentered(centerX, titleStartY+len(titleArt)+1, "~ Space Invaders over SSH ~")

	controlsY := titleStartY + len(titleArt) + 3
	c.writeCentered(centerX, controlsY, "Controls")
	controlLines := []string{
		"A D / < >  . . . .  Move",
		"SPACE  . . . . . .  Fire",
		"R  . . . . . . . Restart",
		"Q  . . . . . . . .  Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, controlsY+1+i, line)
	}

	legendY := controlsY + len(controlLines) + 2
	for i, kind := range []object.PowerUpKind{object.PowerUpMultishot, object.PowerUpShield, object.PowerUpSpeedup} {
		label := fmt.Sprintf("%c %-9s", draw.BlockFull, kind)
		col := draw.CenterCol(centerX, label)
		c.chunkWriter.WriteColorAt(col, legendY+i, powerUpPens[kind].Color(), label)
		c.canvas.MarkTextDirty(col, legendY+i, len(label))
	}

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, legendY+4, ">>  Press SPACE to Start  <<")
	} else {
		c.canvas.MarkTextDirty(1, legendY+4, c.canvas.TerminalWidth())
	}
}

// drawPlayingHUD draws the status line above the playfield.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth int, snap *engine.Snapshot) {
	left := fmt.Sprintf("Score: %-7d Level: %-3d Lives: %-2d", snap.Score, snap.Level, snap.Lives)
	c.chunkWriter.WriteAt(1, hudRow, left)

	right := formatEffects(snap, c.frameRate)
	c.chunkWriter.WriteAt(termWidth-len(right)+1, hudRow, right)
}

// formatEffects lists the active timed effects with their remaining seconds.
// The result has a fixed width so expiring effects are overwritten.
func formatEffects(snap *engine.Snapshot, frameRate int) string {
	var b strings.Builder
	for kind, st := range snap.Effects {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		field := ""
		if st.Active {
			field = fmt.Sprintf("%s %.1fs", effectLabels[kind], float64(st.Remaining)/float64(frameRate))
		}
		fmt.Fprintf(&b, "%-12s", field)
	}
	return b.String()
}

// drawBanner shows the level transition message.
func (c *Client) drawBanner(centerX, centerY int) {
	if c.state.bannerTimer <= 0 {
		return
	}
	c.writeCentered(centerX, centerY-1, c.state.banner)
	if c.state.subBanner != "" {
		c.writeCentered(centerX, centerY+1, c.state.subBanner)
	}
}

// drawEndScreen draws the game over or victory screen.
func (c *Client) drawEndScreen(centerX, centerY int, art []string, snap *engine.Snapshot) {
	titleStartY := centerY - 5
	c.writeArt(centerX, titleStartY, art)

	if snap != nil {
		c.writeCentered(centerX, titleStartY+len(art)+1, fmt.Sprintf("Score: %d", snap.Score))
		c.writeCentered(centerX, titleStartY+len(art)+2, fmt.Sprintf("Level reached: %d", snap.Level))
	}

	promptY := titleStartY + len(art) + 4
	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, promptY, ">>  Press R to Restart  <<")
	} else {
		c.canvas.MarkTextDirty(1, promptY, c.canvas.TerminalWidth())
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
