// Package main provides the dicetray binary: a headless dice tray that places
// the requested dice, rolls them through the simulated tray and prints each
// settled readout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicetray/internal/config"
	"github.com/cory-johannsen/dicetray/internal/game/dice"
	"github.com/cory-johannsen/dicetray/internal/game/haptics"
	"github.com/cory-johannsen/dicetray/internal/game/motion"
	"github.com/cory-johannsen/dicetray/internal/game/skin"
	"github.com/cory-johannsen/dicetray/internal/game/tray"
	"github.com/cory-johannsen/dicetray/internal/observability"
	"github.com/cory-johannsen/dicetray/internal/server"
	"github.com/cory-johannsen/dicetray/internal/settings"
	"github.com/cory-johannsen/dicetray/internal/sim"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = defaults and DICE_* environment")
	diceList := flag.String("dice", "d20", "dice to place, e.g. \"2d6, d20\"")
	rolls := flag.Int("rolls", 1, "number of rolls to perform")
	skinName := flag.String("skin", "", "skin to use; empty = saved preference")
	seed := flag.Uint64("seed", 0, "seed for a reproducible session; 0 = crypto randomness")
	swipe := flag.String("swipe", "", "launch along a swipe translation \"dx,dy\" instead of random angles")
	shake := flag.Bool("shake", false, "gate each roll on a simulated shake when shake-to-roll is on")
	save := flag.Bool("save", false, "persist -skin to the preferences file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	base, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer base.Sync()
	logger, sessionID := observability.SessionLogger(base)

	kinds, err := dice.ParseList(*diceList)
	if err != nil {
		logger.Fatal("parsing dice", zap.Error(err))
	}
	if *rolls < 1 {
		logger.Fatal("rolls must be >= 1", zap.Int("rolls", *rolls))
	}

	store := settings.NewFileStore(cfg.Settings.Path)
	prefs, err := store.Load()
	if err != nil {
		logger.Fatal("loading settings", zap.Error(err))
	}

	catalog, err := loadCatalog(cfg.Content)
	if err != nil {
		logger.Fatal("loading skins", zap.Error(err))
	}
	if *skinName != "" {
		prefs.Skin = *skinName
		if *save {
			if err := store.Save(prefs); err != nil {
				logger.Fatal("saving settings", zap.Error(err))
			}
		}
	}
	selector := skin.NewSelector(catalog, prefs.Skin)

	var src dice.Source = dice.NewCryptoSource()
	if *seed != 0 {
		src = dice.NewSeededSource(*seed)
	}
	roller := dice.NewLoggedRoller(src, observability.Component(logger, "dice"))

	hm := haptics.NewManager(
		haptics.LogActuator{Logger: observability.Component(logger, "haptics")},
		cfg.Haptics.Interval,
		logger,
	)
	hm.SetEnabled(cfg.Haptics.Enabled && prefs.Vibration)

	world := sim.NewWorld(simConfig(cfg))
	t := tray.New(trayConfig(cfg, prefs), selector, world, roller, hm, observability.Component(logger, "tray"))
	world.OnContact(t.OnContact)

	for _, k := range kinds {
		t.Add(k)
	}

	loop := sim.NewLoop(world, t, cfg.Sim.FrameRate, observability.Component(logger, "loop"))
	session := newRollSession(t, loop, *rolls, os.Stdout, logger)
	if *swipe != "" {
		a, err := parseSwipe(*swipe)
		if err != nil {
			logger.Fatal("parsing swipe", zap.Error(err))
		}
		session.swipe = &a
	}
	if *shake && prefs.ShakeToRoll {
		session.shake = motion.NewShakeDetector(cfg.Motion.ShakeThreshold, cfg.Motion.ShakeCooldown)
		session.shakeG = cfg.Motion.ShakeThreshold + 1
	}

	logger.Info("dice tray ready",
		zap.String("session", sessionID),
		zap.String("skin", string(selector.Active().Name)),
		zap.Int("dice", t.Len()),
		zap.Int("rolls", *rolls),
		zap.Bool("haptics", hm.Enabled()),
		zap.Duration("startup", time.Since(start)),
	)

	lc := server.NewLifecycle(logger)
	lc.Add("frame-loop", &server.FuncService{StartFn: loop.Start, StopFn: loop.Stop})
	lc.Add("roll-session", session)
	if err := lc.Run(context.Background()); err != nil {
		logger.Fatal("dice tray failed", zap.Error(err))
	}
}

// loadCatalog merges the built-in skins with any found in c.SkinsDir.
func loadCatalog(c config.ContentConfig) (*skin.Catalog, error) {
	skins := skin.Builtin()
	if c.SkinsDir != "" {
		extra, err := skin.LoadDir(c.SkinsDir)
		if err != nil {
			return nil, err
		}
		skins = append(skins, extra...)
	}
	return skin.NewCatalog(skins...), nil
}

func simConfig(cfg config.Config) sim.Config {
	return sim.Config{
		Width:          cfg.Tray.Width,
		Height:         cfg.Tray.Height,
		Mass:           cfg.Sim.Mass,
		Inertia:        cfg.Sim.Inertia,
		LinearDamping:  cfg.Sim.LinearDamping,
		AngularDamping: cfg.Sim.AngularDamping,
		Restitution:    cfg.Sim.Restitution,
		RestSpeed:      cfg.Sim.RestSpeed,
		RestSpin:       cfg.Sim.RestSpin,
	}
}

func trayConfig(cfg config.Config, prefs settings.Preferences) tray.Config {
	tc := tray.DefaultConfig()
	tc.Radius = cfg.Tray.Radius * prefs.DiceSizeModifier
	tc.Width = cfg.Tray.Width
	tc.Height = cfg.Tray.Height
	tc.Roll = tray.RollConfig{
		ImpulseSpeed:    cfg.Tray.ImpulseSpeed,
		AngularImpulse:  cfg.Tray.AngularImpulse,
		SpinThreshold:   cfg.Tray.SpinThreshold,
		RefreshInterval: cfg.Tray.FaceRefreshInterval,
		LightIntensity:  cfg.Haptics.LightIntensity,
	}
	return tc
}

// parseSwipe turns "dx,dy" into a launch angle.
func parseSwipe(s string) (float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, fmt.Errorf("swipe %q: want \"dx,dy\"", s)
	}
	dx, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, fmt.Errorf("swipe dx: %w", err)
	}
	dy, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, fmt.Errorf("swipe dy: %w", err)
	}
	if dx == 0 && dy == 0 {
		return 0, fmt.Errorf("swipe %q has no direction", s)
	}
	return motion.SwipeAngle(dx, dy), nil
}
