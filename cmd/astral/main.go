package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/astral/audio"
	"github.com/lixenwraith/astral/config"
	"github.com/lixenwraith/astral/ctxlog"
	"github.com/lixenwraith/astral/event"
	"github.com/lixenwraith/astral/grid"
	"github.com/lixenwraith/astral/input"
	"github.com/lixenwraith/astral/maze"
	"github.com/lixenwraith/astral/metrics"
	"github.com/lixenwraith/astral/parameter"
	"github.com/lixenwraith/astral/render"
	"github.com/lixenwraith/astral/search"
	"github.com/lixenwraith/astral/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	configFlag  = flag.String("config", "astral.toml", "TOML config file (missing is fine)")
	envFlag     = flag.String("env", ".env", "dotenv file (missing is fine)")
	debugFlag   = flag.Bool("debug", false, "Write logs to logs/astral.log")
	sizeFlag    = flag.Int("size", 0, "Grid rows and columns")
	stepsFlag   = flag.Int("steps", 0, "Replay steps applied per frame")
	colorFlag   = flag.String("color", "", "Color mode: truecolor, basic")
	metricsFlag = flag.String("metrics", "", "Serve Prometheus metrics on this address")
	seedFlag    = flag.Int64("seed", 0, "Maze seed (0 = random)")
	muteFlag    = flag.Bool("mute", false, "Disable audio")
)

// screen is restored by the crash handler
var screen tcell.Screen

// crash restores the terminal and exits with the panic and stack trace
func crash(where string, r any) {
	if screen != nil {
		screen.Fini()
	}
	// \r\n keeps output aligned if the terminal is still raw
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31m%s CRASHED: %v\x1b[0m\r\n", where, r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}

func main() {
	// Panic Recovery: Ensure terminal is reset even if the app crashes
	defer func() {
		if r := recover(); r != nil {
			crash("ASTRAL", r)
		}
	}()

	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}
	logger := slog.Default()
	logger.Info("starting", "size", cfg.GridSize, "steps_per_frame", cfg.StepsPerFrame, "color", cfg.ColorMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = ctxlog.WithLogger(ctx, logger)

	// Metrics endpoint
	var collector *metrics.Collector
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		collector = metrics.New(reg)

		srv := startMetricsServer(cfg.MetricsAddr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	sess, err := session.New(cfg.GridSize,
		session.WithLogger(logger),
		session.WithMetrics(collector),
		session.WithMazeConfig(maze.Config{Braiding: cfg.Maze.Braiding, Seed: cfg.Maze.Seed}),
		session.WithScatterDensity(cfg.Maze.Density),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create grid: %v\n", err)
		os.Exit(1)
	}

	// Initialize terminal
	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create terminal screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	screen.HideCursor()

	colorMode, _ := render.ParseColorMode(cfg.ColorMode) // validated by config
	renderer := render.NewTerminalRenderer(screen, render.NewPalette(colorMode), cfg.CellWidth)

	w, h := screen.Size()
	if needW, needH := renderer.RequiredSize(cfg.GridSize); w < needW || h < needH {
		logger.Warn("terminal smaller than grid", "have", fmt.Sprintf("%dx%d", w, h), "need", fmt.Sprintf("%dx%d", needW, needH))
	}

	ox, oy := renderer.Origin()
	machine := input.NewMachine(input.Mapper{OriginX: ox, OriginY: oy, CellWidth: renderer.CellWidth(), Size: cfg.GridSize})

	// Audio is optional; the app runs silent without a device
	var sound *audio.SoundManager
	if cfg.Audio {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio initialization failed, continuing without audio", "err", err)
		} else {
			defer sm.Cleanup()
			sound = sm
			wireAudio(sess, sm)
		}
	}

	queue := event.NewQueue()
	closed := make(chan struct{})

	// Input polling owns the input machine; the session stays on the main goroutine
	go func() {
		defer func() {
			if r := recover(); r != nil {
				crash("EVENT POLLER", r)
			}
		}()
		defer close(closed)

		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
				continue
			}
			if cmd, ok := machine.Process(ev); ok {
				queue.Push(cmd)
			}
		}
	}()

	frameTicker := time.NewTicker(cfg.FrameInterval())
	defer frameTicker.Stop()

	renderer.RenderFrame(sess.Grid(), sess.Status())

	var reportedDrops uint64
	for {
		select {
		case <-ctx.Done():
			logger.Info("interrupted")
			return

		case <-closed:
			return

		case <-frameTicker.C:
			if n := queue.Len(); n >= parameter.CommandBacklogWarn {
				logger.Debug("command backlog", "pending", n)
			}
			if dropped := queue.Dropped(); dropped != reportedDrops {
				logger.Warn("paint commands dropped", "count", dropped-reportedDrops)
				reportedDrops = dropped
			}

			for _, cmd := range queue.Consume() {
				if cmd.Type == event.CmdMute && sound != nil {
					logger.Info("audio toggled", "muted", sound.ToggleMute())
				}
				quit, err := sess.Apply(ctx, cmd)
				if quit {
					logger.Info("quit requested")
					return
				}
				if err != nil && !isUserError(err) {
					logger.Error("command failed", "cmd", cmd.Type, "err", err)
				}
			}

			sess.Advance(cfg.StepsPerFrame)
			renderer.RenderFrame(sess.Grid(), sess.Status())
		}
	}
}

// loadConfig layers command line flags over the config file and environment
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFlag, *envFlag)
	if err != nil {
		return config.Config{}, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Debug = *debugFlag
		case "size":
			cfg.GridSize = *sizeFlag
		case "steps":
			cfg.StepsPerFrame = *stepsFlag
		case "color":
			cfg.ColorMode = *colorFlag
		case "metrics":
			cfg.MetricsAddr = *metricsFlag
		case "seed":
			cfg.Maze.Seed = *seedFlag
		case "mute":
			cfg.Audio = !*muteFlag
		}
	})
	return cfg, cfg.Validate()
}

// isUserError reports rejections caused by ordinary interaction
func isUserError(err error) bool {
	return errors.Is(err, session.ErrInvalidTransition) ||
		errors.Is(err, search.ErrInvalidSearchRequest) ||
		errors.Is(err, grid.ErrInvalidDimension) // maze key on a grid too small for one
}

// cuePlayer is the part of audio.SoundManager driven by replay
type cuePlayer interface {
	PlayTick(pathIndex int)
	PlayFound()
	PlayNotFound()
}

// wireAudio plays a rising tick per replayed path cell and an outcome cue when replay ends
func wireAudio(sess *session.Session, sm cuePlayer) {
	pathIndex := 0
	sess.OnReplayStart(func(session.Status) {
		pathIndex = 0
	})
	sess.OnStep(func(st search.Step) {
		if st.Kind == search.StepPath {
			sm.PlayTick(pathIndex)
			pathIndex++
		}
	})
	sess.OnReplayDone(func(st session.Status) {
		if st.Phase == session.PhaseFound {
			sm.PlayFound()
		} else {
			sm.PlayNotFound()
		}
	})
}

func startMetricsServer(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics endpoint listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics endpoint failed", "err", err)
		}
	}()
	return srv
}
