package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/thirdperson/character"
	"github.com/oomph-ac/thirdperson/event"
	"github.com/oomph-ac/thirdperson/omath"
	"github.com/oomph-ac/thirdperson/settings"
	"github.com/oomph-ac/thirdperson/utils"
	"github.com/oomph-ac/thirdperson/worker"
	"github.com/oomph-ac/thirdperson/world"
)

type config struct {
	TuningPath   string        `env:"THIRDPERSON_TUNING"`
	Characters   int           `env:"THIRDPERSON_CHARACTERS" envDefault:"16"`
	Ticks        int           `env:"THIRDPERSON_TICKS" envDefault:"600"`
	TickRate     time.Duration `env:"THIRDPERSON_TICK_RATE" envDefault:"20ms"`
	Realtime     bool          `env:"THIRDPERSON_REALTIME"`
	Workers      int           `env:"THIRDPERSON_WORKERS"`
	Debug        bool          `env:"THIRDPERSON_DEBUG"`
	SentryDSN    string        `env:"SENTRY_DSN"`
	StatsviewAdr string        `env:"STATSVIEW_ADDR"`
}

// The following program drops a crowd of characters onto a floor with a few platforms, drives
// them with scripted input and verifies that the first one replays deterministically.
func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "parse env: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.Error("unable to init sentry", "err", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if cfg.StatsviewAdr != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(cfg.StatsviewAdr))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	if err := run(cfg, log); err != nil {
		log.Error("sandbox failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config, log *slog.Logger) error {
	tuning := settings.DefaultTuning()
	tuning.Simulation.HistorySize = 16
	if cfg.TuningPath != "" {
		t, err := settings.Load(cfg.TuningPath)
		if err != nil {
			return err
		}
		tuning = t
	}
	if cfg.Ticks > tuning.Simulation.RecordingSize {
		return fmt.Errorf("%d ticks do not fit a recording of %d", cfg.Ticks, tuning.Simulation.RecordingSize)
	}

	w := world.New(log,
		cube.Box(-64, -1, -64, 64, 0, 64),
		cube.Box(4, 0, 4, 8, 1, 8),
		cube.Box(-8, 0, -8, -4, 2, -4),
	)

	chars := make([]*character.Character, cfg.Characters)
	for i := range chars {
		pos := mgl32.Vec3{float32(i%4)*3 - 6, 3 + float32(i%3), float32(i/4)*3 - 6}
		c, err := character.New(tuning, w, pos, mgl32.Vec3{0, 0, 1}, log)
		if err != nil {
			return err
		}
		chars[i] = c
	}
	if len(chars) == 0 {
		return nil
	}

	lead := chars[0]
	lead.Gravity().UseLogging(cfg.Debug)
	lead.Wall().UseLogging(cfg.Debug)
	lead.Jump().UseLogging(cfg.Debug)
	for _, evt := range event.BaseEvents {
		lead.Events().Bind(evt, func() {
			log.Debug("event", "tick", lead.State().Next().Tick, "event", evt)
		})
	}

	rec, err := character.NewRecording(tuning.Simulation.RecordingSize)
	if err != nil {
		return err
	}

	timings, err := utils.NewHistory[float64](50)
	if err != nil {
		return err
	}
	samples := make([]float64, 0, timings.Cap())

	pool := worker.New(cfg.Workers, log)
	defer pool.Close()

	delta := float32(cfg.TickRate.Seconds())
	ticker := time.NewTicker(cfg.TickRate)
	defer ticker.Stop()

	inputs := make([]character.Input, len(chars))
	for tick := range cfg.Ticks {
		for i := range inputs {
			inputs[i] = script(tick + i*7)
		}

		if err := rec.Step(lead, delta, inputs[0]); err != nil {
			return err
		}
		start := time.Now()
		if err := pool.Step(delta, chars[1:], inputs[1:]); err != nil {
			return err
		}
		timings.Add(float64(time.Since(start).Microseconds()))

		if tick%50 == 0 {
			next := lead.State().Next()
			idle := 0
			for _, c := range chars {
				if c.State().IsIdle(tuning.Idle.SqrSpeedThreshold) {
					idle++
				}
			}
			log.Info("lead character", "tick", next.Tick, "pos", next.Position, "phases", lead.Phases(), "idle", idle)

			samples = samples[:0]
			for _, us := range timings.All() {
				samples = append(samples, us)
			}
			sum := omath.Summarize(samples)
			log.Info("crowd step time", "mean_us", sum.Mean, "stddev_us", sum.StdDev, "max_us", sum.Max)
		}
		if cfg.Realtime {
			<-ticker.C
		}
	}

	if err := character.Replay(lead, rec); err != nil {
		return err
	}
	log.Info("replay matched", "ticks", rec.Len())
	return nil
}

// script returns a walk-and-jump pattern repeating every 200 ticks.
func script(tick int) character.Input {
	t := tick % 200
	switch {
	case t < 40:
		return character.Input{}
	case t < 100:
		return character.Input{Move: mgl32.Vec2{1, 0}}
	case t < 110:
		return character.Input{Move: mgl32.Vec2{1, 1}, Jump: true}
	case t < 160:
		return character.Input{Move: mgl32.Vec2{-1, 0}}
	default:
		return character.Input{Move: mgl32.Vec2{0, -1}, Jump: t%20 == 0}
	}
}
