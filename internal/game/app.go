package game

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gstrike/internal/briefing"
	"gstrike/internal/config"
	"gstrike/internal/render"
	"gstrike/internal/sim"
)

type Status uint8

const (
	StatusMenu Status = iota
	StatusPlaying
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusMenu:
		return "menu"
	case StatusPlaying:
		return "playing"
	case StatusGameOver:
		return "game_over"
	}
	return "unknown"
}

// Sounds plays feedback for simulation events.
type Sounds interface {
	Handle(events []sim.Event)
	ToggleMute() bool
}

// App is the terminal shell around a World: it owns the screen, turns key
// presses into the input snapshot and schedules ticks while a run is live.
type App struct {
	screen   tcell.Screen
	world    *sim.World
	renderer *render.Renderer
	sounds   Sounds
	brief    briefing.Source
	log      *zap.Logger
	tickDur  time.Duration

	status   Status
	input    sim.Input
	keys     keyState
	briefing *briefing.Briefing
	hud      sim.HUD
	over     sim.GameOver

	ticker   *time.Ticker
	finiOnce sync.Once
}

func New(screen tcell.Screen, world *sim.World, sounds Sounds, brief briefing.Source, cfg *config.Config, log *zap.Logger) *App {
	a := &App{
		screen:   screen,
		world:    world,
		renderer: render.New(screen, cfg.Display),
		sounds:   sounds,
		brief:    brief,
		log:      log,
		tickDur:  time.Second / time.Duration(cfg.Display.FPS),
		status:   StatusMenu,
	}
	a.resize()
	return a
}

func (a *App) Status() Status { return a.status }

// Run drives the app until ESC, a fatal error or ctx cancellation. The
// event pump, the briefing fetch and the game loop share one errgroup.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 16)
	briefs := make(chan briefing.Briefing, 1)

	g.Go(func() error {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return nil // screen finalized
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		b, err := a.brief.Fetch(ctx)
		if err != nil {
			a.log.Warn("briefing fetch failed", zap.Error(err))
			b = briefing.Fallback
		}
		briefs <- b
		return nil
	})

	g.Go(func() error {
		defer a.Close()
		return a.loop(ctx, events, briefs)
	})

	return g.Wait()
}

// Close stops ticking and releases the terminal. It is safe to call more than once.
func (a *App) Close() {
	a.stopTicker()
	a.finiOnce.Do(a.screen.Fini)
}

func (a *App) loop(ctx context.Context, events <-chan tcell.Event, briefs <-chan briefing.Briefing) error {
	a.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case b := <-briefs:
			a.briefing = &b
			a.log.Info("briefing received", zap.String("codename", b.Codename))
		case ev := <-events:
			if a.handleEvent(ev) {
				return nil
			}
		case now := <-a.tickC():
			a.tick(now)
		}
		a.draw()
	}
}

// tickC is nil, and so never ready, unless a run is being played.
func (a *App) tickC() <-chan time.Time {
	if a.ticker == nil {
		return nil
	}
	return a.ticker.C
}

func (a *App) stopTicker() {
	if a.ticker != nil {
		a.ticker.Stop()
		a.ticker = nil
	}
}

func (a *App) setStatus(s Status) {
	if s == a.status {
		return
	}
	a.log.Info("status changed", zap.Stringer("from", a.status), zap.Stringer("to", s))
	a.status = s

	a.stopTicker()
	if s == StatusPlaying {
		a.ticker = time.NewTicker(a.tickDur)
	}
}

// handleEvent applies one terminal event and reports whether to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if ev.Key() == tcell.KeyRune && (ev.Rune() == 'm' || ev.Rune() == 'M') {
		muted := a.sounds.ToggleMute()
		a.log.Debug("mute toggled", zap.Bool("muted", muted))
		return false
	}

	switch a.status {
	case StatusMenu:
		if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
			a.start()
		}
	case StatusPlaying:
		if act, ok := actionFor(ev); ok {
			a.keys.press(act, ev.When())
		}
	case StatusGameOver:
		if ev.Key() == tcell.KeyEnter {
			a.setStatus(StatusMenu)
		}
	}
	return false
}

func (a *App) start() {
	a.world.Reset()
	a.input.Clear()
	a.keys.reset()
	a.hud = a.world.HUD()
	a.log.Info("run started", zap.String("run", a.world.RunID()))
	a.setStatus(StatusPlaying)
}

func (a *App) resize() {
	w, h := a.renderer.WorldSize()
	a.world.Resize(w, h)
	a.hud = a.world.HUD()
	a.log.Info("viewport resized", zap.Float64("width", w), zap.Float64("height", h))
}

// tick advances the simulation once. Dropped ticks are not made up.
func (a *App) tick(now time.Time) {
	if a.status != StatusPlaying {
		return
	}
	a.keys.apply(&a.input, now)
	out := a.world.Step(&a.input)

	a.sounds.Handle(out.Events)
	if out.HUD != nil {
		a.hud = *out.HUD
	}
	if out.GameOver != nil {
		a.over = *out.GameOver
		a.setStatus(StatusGameOver)
	}
}

func (a *App) draw() {
	switch a.status {
	case StatusMenu:
		a.renderer.Menu(a.briefing)
	case StatusPlaying:
		a.renderer.Scene(a.world.Scene(), a.hud)
	case StatusGameOver:
		a.renderer.Scene(a.world.Scene(), a.hud)
		a.renderer.GameOver(a.over)
	}
	a.renderer.Show()
}
