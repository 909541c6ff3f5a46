package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gstrike/internal/briefing"
	"gstrike/internal/config"
	"gstrike/internal/sim"
)

const (
	groundChar = '━'
	bossBar    = 20
)

var (
	floorStyle    = tcell.StyleDefault.Foreground(tcell.Color(240)) // dark gray
	platformStyle = tcell.StyleDefault.Foreground(tcell.Color(51))  // cyan
	playerStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	hudStyle      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	overStyle     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	dimStyle      = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Renderer draws simulation scenes onto a terminal screen. World pixels are
// mapped onto cells with the configured pixels-per-cell.
type Renderer struct {
	screen tcell.Screen
	cellW  float64
	cellH  float64
	p      *message.Printer
}

func New(screen tcell.Screen, cfg config.DisplayConfig) *Renderer {
	return &Renderer{
		screen: screen,
		cellW:  cfg.CellWidth,
		cellH:  cfg.CellHeight,
		p:      message.NewPrinter(language.English),
	}
}

// WorldSize is the viewport in world pixels for the current terminal size.
func (r *Renderer) WorldSize() (float64, float64) {
	w, h := r.screen.Size()
	return float64(w) * r.cellW, float64(h) * r.cellH
}

func (r *Renderer) cell(v sim.Vec2) (int, int) {
	return int(v.X / r.cellW), int(v.Y / r.cellH)
}

func (r *Renderer) cells(s sim.Size) (int, int) {
	w := int(s.W/r.cellW + 0.5)
	h := int(s.H/r.cellH + 0.5)
	return max(w, 1), max(h, 1)
}

func color(c uint32) tcell.Color {
	return tcell.NewHexColor(int32(c))
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func (r *Renderer) centered(y int, s string, style tcell.Style) {
	w, _ := r.screen.Size()
	r.text((w-len([]rune(s)))/2, y, s, style)
}

// Scene draws a full frame of play and the HUD line.
func (r *Renderer) Scene(scene sim.Scene, hud sim.HUD) {
	r.screen.Clear()
	r.drawPlatforms(scene.Platforms)
	for i := range scene.Powerups {
		r.drawPowerup(&scene.Powerups[i])
	}
	for i := range scene.Enemies {
		r.drawEnemy(&scene.Enemies[i], scene.Frame)
	}
	if scene.Player.HP > 0 {
		r.drawPlayer(&scene.Player, scene.Frame)
	}
	for i := range scene.Bullets {
		r.drawBullet(&scene.Bullets[i], scene.Frame)
	}
	for i := range scene.Shots {
		s := &scene.Shots[i]
		x, y := r.cell(s.Center())
		r.screen.SetContent(x, y, '•', nil, tcell.StyleDefault.Foreground(color(s.Color)))
	}
	for i := range scene.Particles {
		pt := &scene.Particles[i]
		ch := '*'
		if pt.TTL < 8 {
			ch = '.'
		}
		x, y := r.cell(pt.Pos)
		r.screen.SetContent(x, y, ch, nil, tcell.StyleDefault.Foreground(color(pt.Color)))
	}
	r.drawHUD(hud)
}

func (r *Renderer) drawPlatforms(platforms []sim.Platform) {
	for i := range platforms {
		pl := &platforms[i]
		style := platformStyle
		if i == 0 {
			style = floorStyle
		}
		x0, y := r.cell(pl.Pos)
		x1 := int((pl.Pos.X + pl.Size.W) / r.cellW)
		for x := x0; x < x1; x++ {
			r.screen.SetContent(x, y, groundChar, nil, style)
		}
	}
}

func (r *Renderer) drawPlayer(p *sim.Player, frame int) {
	// Blink while invulnerable.
	if p.Invulnerable > 0 && frame%4 < 2 {
		return
	}
	x, y := r.cell(p.Pos)
	rows := [3]string{"~0 ", "(|\\", "/ )"}
	if p.Dir < 0 {
		rows = [3]string{" 0~", "/|)", "( \\"}
	}
	for dy, row := range rows {
		r.text(x, y+dy, row, playerStyle)
	}
}

func (r *Renderer) drawEnemy(e *sim.Enemy, frame int) {
	style := tcell.StyleDefault.Foreground(color(e.Color))
	x, y := r.cell(e.Pos)

	switch e.Subtype {
	case sim.Runner:
		rows := [3]string{" O ", "(|\\", "/ )"}
		if e.Dir < 0 {
			rows = [3]string{" O ", "/|)", "( \\"}
		}
		for dy, row := range rows {
			r.text(x, y+dy, row, style)
		}
	case sim.Drone:
		rotor := "-=-"
		if frame%6 < 3 {
			rotor = "=-="
		}
		r.text(x, y, "<"+rotor+">", style)
	case sim.Jumper:
		top := "/^\\"
		if !e.Grounded {
			top = "\\^/"
		}
		r.text(x, y, top, style)
		r.text(x, y+1, "(_)", style)
	case sim.Boss:
		w, h := r.cells(e.Size)
		for dy := 0; dy < h; dy++ {
			for dx := 0; dx < w; dx++ {
				ch := '█'
				if dy == h/3 && (dx == w/4 || dx == w-1-w/4) {
					ch = '◉'
				}
				r.screen.SetContent(x+dx, y+dy, ch, nil, style)
			}
		}
	}
}

func (r *Renderer) drawBullet(b *sim.Bullet, frame int) {
	style := tcell.StyleDefault.Foreground(color(b.Color))
	x, y := r.cell(b.Pos)
	switch b.Weapon {
	case sim.Laser:
		w, _ := r.cells(b.Size)
		for dx := 0; dx < w; dx++ {
			r.screen.SetContent(x+dx, y, '═', nil, style)
		}
	case sim.Flame:
		ch := '*'
		if frame%2 == 0 {
			ch = '^'
		}
		r.screen.SetContent(x, y, ch, nil, style)
	default:
		// Animate between '-' and '+'
		ch := '-'
		if frame%2 == 1 {
			ch = '+'
		}
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

func (r *Renderer) drawPowerup(pu *sim.Powerup) {
	style := tcell.StyleDefault.Foreground(color(pu.Color)).Bold(true)
	x, y := r.cell(pu.Pos)
	r.text(x, y, "["+strings.ToUpper(pu.Weapon.String()[:1])+"]", style)
}

func (r *Renderer) drawHUD(h sim.HUD) {
	line := r.p.Sprintf("HP %d/%d  SCORE %d  %s", h.HP, h.MaxHP, h.Score, strings.ToUpper(h.Weapon.String()))
	r.text(0, 0, line, hudStyle)

	if !h.BossActive || h.BossMaxHP <= 0 {
		return
	}
	filled := h.BossHP * bossBar / h.BossMaxHP
	bar := strings.Repeat("█", filled) + strings.Repeat("░", bossBar-filled)
	r.centered(1, r.p.Sprintf("BOSS %s %d", bar, h.BossHP), overStyle)
}

// Menu draws the title screen with the mission briefing. A nil briefing
// means it is still being fetched.
func (r *Renderer) Menu(b *briefing.Briefing) {
	r.screen.Clear()
	_, h := r.screen.Size()
	y := h/2 - 4

	r.centered(y, "GSTRIKE", titleStyle)
	if b == nil {
		r.centered(y+2, "Receiving briefing...", dimStyle)
	} else {
		r.centered(y+2, b.Codename, hudStyle.Bold(true))
		r.centered(y+3, b.Objective, hudStyle)
		r.centered(y+4, b.Intel, dimStyle)
	}
	r.centered(y+6, "Press Space to start", tcell.StyleDefault)
	r.centered(y+7, "Arrows move, Up jumps, Space fires, M mutes", dimStyle)
}

// GameOver overlays the final score on the last frame.
func (r *Renderer) GameOver(over sim.GameOver) {
	r.centered(3, "GAME OVER", overStyle)
	r.centered(5, r.p.Sprintf("Final score %d", over.Score), hudStyle)
	r.centered(7, "Press ENTER to restart", hudStyle)
	r.centered(8, "Press ESC to exit", hudStyle)
}

func (r *Renderer) Show() {
	r.screen.Show()
}
