package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/invaders/internal/engine"
	"github.com/tomz197/invaders/internal/object"
)

var (
	colorBackground    = color.RGBA{0x05, 0x05, 0x10, 0xff}
	colorStar          = color.RGBA{0x80, 0x80, 0x90, 0xff}
	colorPlayer        = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorPlayerShield  = color.RGBA{0x40, 0xe0, 0xff, 0xff}
	colorInvader       = color.RGBA{0x40, 0xff, 0x40, 0xff}
	colorShield        = color.RGBA{0x20, 0xc0, 0x20, 0xff}
	colorShieldDamaged = color.RGBA{0x10, 0x60, 0x10, 0xff}
	colorPlayerBullet  = color.RGBA{0xff, 0xff, 0x40, 0xff}
	colorInvaderBullet = color.RGBA{0xff, 0x40, 0x40, 0xff}
	colorParticle      = color.RGBA{0xff, 0xa0, 0x20, 0xff}
)

var powerUpColors = [object.NumPowerUpKinds]color.RGBA{
	object.PowerUpMultishot: {0xff, 0xff, 0x40, 0xff},
	object.PowerUpShield:    {0x40, 0xe0, 0xff, 0xff},
	object.PowerUpSpeedup:   {0xff, 0x40, 0xff, 0xff},
}

var effectLabels = [object.NumPowerUpKinds]string{
	object.PowerUpMultishot: "MULTI",
	object.PowerUpShield:    "SHIELD",
	object.PowerUpSpeedup:   "SPEED",
}

// Draw renders the latest snapshot.
func (g *Game) Draw(dst *ebiten.Image) {
	dst.Fill(colorBackground)
	for _, s := range g.stars {
		vector.DrawFilledRect(dst, float32(s.x), float32(s.y), float32(s.size), float32(s.size), colorStar, false)
	}

	switch g.screen {
	case screenStart:
		g.drawCentered(dst, "INVADERS", g.snap.Height/2-40, 1)
		g.drawCentered(dst, "A D / arrows: move   SPACE: fire", g.snap.Height/2, 1)
		g.drawCentered(dst, "Press SPACE to start", g.snap.Height/2+30, 1)
		return
	case screenGameOver:
		g.drawWorld(dst)
		g.drawCentered(dst, "GAME OVER", g.snap.Height/2-20, 1)
		g.drawCentered(dst, fmt.Sprintf("Score: %d", g.snap.Score), g.snap.Height/2, 1)
		g.drawCentered(dst, "Press R to restart", g.snap.Height/2+30, 1)
		return
	case screenVictory:
		g.drawWorld(dst)
		g.drawCentered(dst, "YOU WIN", g.snap.Height/2-20, 1)
		g.drawCentered(dst, fmt.Sprintf("Score: %d", g.snap.Score), g.snap.Height/2, 1)
		g.drawCentered(dst, "Press R to play again", g.snap.Height/2+30, 1)
		return
	}

	g.drawWorld(dst)
	g.drawHUD(dst)
	if g.bannerFrames > 0 {
		g.drawCentered(dst, g.banner, g.snap.Height/2, 1)
		if g.snap.LevelName != "" {
			g.drawCentered(dst, g.snap.LevelName, g.snap.Height/2+20, 1)
		}
	}
}

// drawWorld paints every entity, shifted while the screen shakes.
func (g *Game) drawWorld(dst *ebiten.Image) {
	s := g.snap
	var dx, dy float64
	if g.shake > 0 {
		dx = (g.rnd.Float64() - 0.5) * 5
		dy = (g.rnd.Float64() - 0.5) * 5
	}
	rect := func(x, y, w, h float64, clr color.Color) {
		vector.DrawFilledRect(dst, float32(x+dx), float32(y+dy), float32(w), float32(h), clr, false)
	}

	for _, cluster := range s.Shields {
		for _, b := range cluster.Blocks {
			if !b.Live() {
				continue
			}
			clr := colorShield
			if b.HP*2 <= b.MaxHP {
				clr = colorShieldDamaged
			}
			rect(b.X, b.Y, b.Size, b.Size, clr)
		}
	}
	for _, inv := range s.Invaders {
		if inv.Alive {
			rect(inv.X, inv.Y, inv.W, inv.H, colorInvader)
		}
	}
	for _, p := range s.PowerUps {
		r := p.Size / 2
		vector.DrawFilledCircle(dst, float32(p.X+r+dx), float32(p.Y+r+dy), float32(r), powerUpColors[p.Kind], true)
	}
	for _, b := range s.PlayerBullets {
		rect(b.X, b.Y, b.W, b.H, colorPlayerBullet)
	}
	for _, b := range s.InvaderBullets {
		rect(b.X, b.Y, b.W, b.H, colorInvaderBullet)
	}
	for i := range s.Particles {
		p := &s.Particles[i]
		clr := colorParticle
		clr.A = uint8(255 * p.Alpha())
		vector.DrawFilledCircle(dst, float32(p.X+dx), float32(p.Y+dy), float32(p.Radius), premultiply(clr), true)
	}
	if s.State != engine.StateLost {
		clr := colorPlayer
		if s.EffectActive(object.PowerUpShield) {
			clr = colorPlayerShield
		}
		rect(s.Player.X, s.Player.Y, s.Player.W, s.Player.H, clr)
	}
	for _, t := range s.Texts {
		g.drawText(dst, t.Text, t.X, t.Y, text.AlignCenter, t.Alpha())
	}
}

// premultiply converts a straight-alpha colour into the premultiplied form
// color.RGBA expects.
func premultiply(c color.RGBA) color.RGBA {
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: c.A,
	}
}

func (g *Game) drawHUD(dst *ebiten.Image) {
	s := g.snap
	g.drawText(dst, fmt.Sprintf("Score: %d  Level: %d  Lives: %d", s.Score, s.Level, s.Lives), 8, 4, text.AlignStart, 1)

	y := 4.0
	for kind, st := range s.Effects {
		if !st.Active {
			continue
		}
		label := fmt.Sprintf("%s %.1fs", effectLabels[kind], float64(st.Remaining)/float64(g.frameRate))
		g.drawText(dst, label, s.Width-8, y, text.AlignEnd, 1)
		y += 14
	}
}

func (g *Game) drawCentered(dst *ebiten.Image, s string, y, alpha float64) {
	g.drawText(dst, s, g.snap.Width/2, y, text.AlignCenter, alpha)
}

func (g *Game) drawText(dst *ebiten.Image, s string, x, y float64, align text.Align, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = align
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(dst, s, g.face, op)
}
