// Package main is the entry point for the clickfx host.
//
// Two modes are supported. The default mode listens for global pointer
// button presses over evdev and logs each animation it would draw. The
// --demo mode runs a self-contained terminal playground that renders
// the click animations with tcell.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/clickfx/internal/adapters/evdevinput"
	"github.com/dshills/clickfx/internal/adapters/x11screen"
	"github.com/dshills/clickfx/internal/anim"
	"github.com/dshills/clickfx/internal/applet"
	"github.com/dshills/clickfx/internal/click"
	"github.com/dshills/clickfx/internal/icon"
	"github.com/dshills/clickfx/internal/render"
	"github.com/dshills/clickfx/internal/settings"
)

const appID = "clickfx"

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type config struct {
	demo        bool
	listDevices bool
	devicePath  string
	settings    string
	cacheDir    string
	logLevel    string
	showVersion bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if cfg.showVersion {
		fmt.Fprintf(stderr, "clickfx %s (%s)\n", version, commit)
		return 0
	}

	if cfg.listDevices {
		return listDevices(stderr)
	}

	logger, err := newLogger(cfg.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	meta, err := prepareMetadata()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to prepare install dir: %v\n", err)
		return 1
	}

	if cfg.settings == "" {
		cfg.settings, err = settings.DefaultPath(appID)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	if cfg.cacheDir == "" {
		cfg.cacheDir, err = icon.DefaultDir(appID)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	if cfg.demo {
		return runDemo(cfg, meta, logger, stderr)
	}
	return runEvdev(cfg, meta, logger, stderr)
}

func parseConfig(args []string, stderr io.Writer) (config, error) {
	var cfg config
	flags := flag.NewFlagSet("clickfx", flag.ContinueOnError)
	flags.SetOutput(stderr)

	flags.BoolVar(&cfg.demo, "demo", false, "Run the terminal animation playground instead of listening globally")
	flags.BoolVar(&cfg.listDevices, "list-devices", false, "List input devices and exit")
	flags.StringVar(&cfg.devicePath, "device", "", "Input event device to listen on, e.g. /dev/input/event4. Auto-detected if omitted.")
	flags.StringVar(&cfg.settings, "settings", "", "Path to the settings file (default: user config dir)")
	flags.StringVar(&cfg.cacheDir, "cache-dir", "", "Directory for generated icons (default: user cache dir)")
	flags.StringVar(&cfg.logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	flags.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	if err := flags.Parse(args); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q (expected debug|info|warn|error)", level)
	}
	if lvl == zapcore.DebugLevel {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// prepareMetadata resolves the install dir and materializes the base
// icon set there on first run.
func prepareMetadata() (applet.Metadata, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return applet.Metadata{}, err
	}
	meta := applet.Metadata{
		UUID: appID,
		Path: filepath.Join(configDir, appID),
	}
	if err := icon.WriteBaseIcons(meta.IconsDir()); err != nil {
		return applet.Metadata{}, err
	}
	return meta, nil
}

func listDevices(stderr io.Writer) int {
	devices, err := evdevinput.ListDevices()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	for _, dev := range devices {
		tag := ""
		if dev.IsPointer {
			tag = " [pointer]"
		}
		if dev.IsVirtual {
			tag += " [virtual]"
		}
		fmt.Fprintf(stderr, "%s\t%s%s\n", dev.Path, dev.Name, tag)
	}
	return 0
}

// logRenderer satisfies anim.Renderer for the headless evdev mode. The
// animation itself is the host compositor's job; this binary reports
// what it would draw.
type logRenderer struct {
	logger *zap.Logger
}

func (r logRenderer) Animate(handle icon.Handle, x, y int, opts anim.Options) {
	r.logger.Info("animate",
		zap.String("icon", handle.Path),
		zap.Int("x", x),
		zap.Int("y", y),
		zap.Int("size", opts.IconSize),
		zap.Float64("opacity", opts.Opacity),
		zap.Duration("timeout", opts.Timeout),
		zap.String("mode", opts.Mode))
}

func runEvdev(cfg config, meta applet.Metadata, logger *zap.Logger, stderr io.Writer) int {
	var position evdevinput.PositionFunc
	screen, err := x11screen.NewScreen()
	if err != nil {
		logger.Warn("x11 unavailable, animations placed at origin", zap.Error(err))
	} else {
		defer screen.Close()
		position = screen.PointerPosition
	}

	source, err := evdevinput.NewSource(cfg.devicePath, position, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to open input devices: %v\n", err)
		return 1
	}
	defer source.Close()

	applet.Init(meta, applet.Deps{
		Source:       source,
		Renderer:     logRenderer{logger: logger},
		Monitor:      screenMonitor(screen),
		Logger:       logger,
		SettingsPath: cfg.settings,
		CacheDir:     cfg.cacheDir,
	})
	if err := applet.Enable(); err != nil {
		fmt.Fprintf(stderr, "Error: failed to enable: %v\n", err)
		return 1
	}
	defer applet.Disable()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	fullscreenTick := time.NewTicker(time.Second)
	defer fullscreenTick.Stop()

	logger.Info("listening for pointer buttons", zap.String("settings", cfg.settings))
	for {
		select {
		case <-signals:
			logger.Info("shutting down")
			return 0
		case <-fullscreenTick.C:
			if a := applet.Instance(); a != nil {
				a.HandleFullscreenChange()
			}
		}
	}
}

// screenMonitor adapts the X11 screen to applet.Monitor while keeping
// a typed nil out of the interface when X11 is unavailable.
func screenMonitor(screen *x11screen.Screen) applet.Monitor {
	if screen == nil {
		return nil
	}
	return screen
}

// demoSource feeds pointer events from the demo's own tcell screen.
type demoSource struct {
	mu      sync.Mutex
	handler func(click.Event)
}

func (s *demoSource) Subscribe(handler func(click.Event)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = handler
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.handler = nil
	}, nil
}

func (s *demoSource) emit(ev click.Event) {
	s.mu.Lock()
	handler := s.handler
	s.mu.Unlock()
	if handler != nil {
		handler(ev)
	}
}

// demoMonitor simulates fullscreen state, toggled with the f key.
type demoMonitor struct {
	mu         sync.Mutex
	fullscreen bool
}

func (m *demoMonitor) InFullscreen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fullscreen
}

func (m *demoMonitor) toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fullscreen = !m.fullscreen
	return m.fullscreen
}

func runDemo(cfg config, meta applet.Metadata, logger *zap.Logger, stderr io.Writer) int {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse()

	source := &demoSource{}
	monitor := &demoMonitor{}
	renderer := render.NewTerminal(screen)

	applet.Init(meta, applet.Deps{
		Source:       source,
		Renderer:     renderer,
		Monitor:      monitor,
		Logger:       logger,
		SettingsPath: cfg.settings,
		CacheDir:     cfg.cacheDir,
	})
	if err := applet.Enable(); err != nil {
		fmt.Fprintf(stderr, "Error: failed to enable: %v\n", err)
		return 1
	}
	defer applet.Disable()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)

	frame := time.NewTicker(33 * time.Millisecond)
	defer frame.Stop()

	var lastButtons tcell.ButtonMask
	drawStatus(screen, monitor.InFullscreen())
	for {
		select {
		case <-frame.C:
			screen.Clear()
			drawStatus(screen, monitor.InFullscreen())
			renderer.Render(time.Now())
			screen.Show()
		case ev, ok := <-events:
			if !ok {
				return 0
			}
			switch tev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case tev.Key() == tcell.KeyEscape, tev.Rune() == 'q':
					close(quit)
					return 0
				case tev.Rune() == 'f':
					monitor.toggle()
					if a := applet.Instance(); a != nil {
						a.HandleFullscreenChange()
					}
				}
			case *tcell.EventMouse:
				lastButtons = dispatchMouse(source, tev, lastButtons)
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}
}

// dispatchMouse emits a click event for each button whose bit newly
// appeared in the mask.
func dispatchMouse(source *demoSource, ev *tcell.EventMouse, last tcell.ButtonMask) tcell.ButtonMask {
	buttons := ev.Buttons()
	pressed := buttons &^ last
	x, y := ev.Position()

	for mask, button := range map[tcell.ButtonMask]click.Button{
		tcell.Button1: click.ButtonLeft,
		tcell.Button2: click.ButtonRight,
		tcell.Button3: click.ButtonMiddle,
	} {
		if pressed&mask != 0 {
			source.emit(click.Event{Button: button, X: x, Y: y, Time: ev.When()})
		}
	}
	return buttons
}

func drawStatus(screen tcell.Screen, fullscreen bool) {
	status := "clickfx demo: click anywhere | f toggles fullscreen | q quits"
	if fullscreen {
		status = "clickfx demo: [fullscreen] animations paused | f resumes | q quits"
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, r := range status {
		screen.SetContent(i, 0, r, nil, style)
	}
}
