package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"gstrike/internal/audio"
	"gstrike/internal/briefing"
	"gstrike/internal/config"
	"gstrike/internal/data"
	"gstrike/internal/game"
	"gstrike/internal/sim"
)

const defaultConfigPath = "config/gstrike.toml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfgPath := defaultConfigPath
	if p := os.Getenv("GSTRIKE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	tables, err := data.Load(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}

	seed := time.Now().UnixNano()
	if s := os.Getenv("GSTRIKE_SEED"); s != "" {
		if seed, err = strconv.ParseInt(s, 10, 64); err != nil {
			return fmt.Errorf("parse GSTRIKE_SEED: %w", err)
		}
	}
	log.Info("starting",
		zap.String("config", cfgPath),
		zap.Int64("seed", seed),
		zap.Int("weapons", tables.Weapons.Count()),
		zap.Int("enemies", tables.Enemies.Count()),
	)

	world, err := sim.NewWorld(cfg, tables, rand.New(rand.NewSource(seed)), log.Named("sim"))
	if err != nil {
		return fmt.Errorf("create world: %w", err)
	}

	sounds := audio.New(cfg.Audio, log.Named("audio"))
	defer sounds.Close()

	brief := briefing.WithFallback(
		briefing.NewHTTPSource(cfg.Briefing.URL, cfg.Briefing.Timeout),
		log.Named("briefing"),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorDefault).
		Foreground(tcell.ColorWhite))
	screen.Clear()

	app := game.New(screen, world, sounds, brief, cfg, log.Named("game"))
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		return err
	}
	log.Info("shutdown complete")
	return nil
}
