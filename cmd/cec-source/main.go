// Command cec-source runs an HDMI-CEC source device.
//
// It claims a playback logical address, keeps a directory of the other
// devices on the bus, answers their requests and reports what happens on
// the bus as events. Settings (enabled, One Touch Play, OSD name, vendor ID)
// persist across restarts.
//
// Usage:
//
//	cec-source [flags]
//
// Flags:
//
//	-config string          YAML configuration file
//	-device string          CEC character device (default "/dev/cec0")
//	-simulate               Use an in-memory bus with simulated peers
//	-settings string        Settings file path
//	-edid string            Sink EDID file (e.g. /sys/class/drm/card0-HDMI-A-1/edid)
//	-capture string         Write a capture file for cec-log
//	-log-level string       Log level: debug, info, warn, error (default "info")
//	-interactive            Start the interactive console
//	-probe-interval duration  Liveness probe period (default 30s)
//	-fallback-pa string     Physical address used when none can be read
//
// Examples:
//
//	# Run against the kernel adapter
//	cec-source -device /dev/cec0 -edid /sys/class/drm/card0-HDMI-A-1/edid
//
//	# Explore the protocol on a simulated bus
//	cec-source -simulate -interactive -capture /tmp/source.clog
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/devsettings/cecsource-go/cmd/cec-source/interactive"
	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/edid"
	"github.com/devsettings/cecsource-go/pkg/log"
	"github.com/devsettings/cecsource-go/pkg/notify"
	"github.com/devsettings/cecsource-go/pkg/service"
	"github.com/devsettings/cecsource-go/pkg/transport"
	"github.com/devsettings/cecsource-go/pkg/transport/linuxcec"
	"github.com/devsettings/cecsource-go/pkg/version"
)

var (
	configFile string
	flags      = defaultConfig()
)

func init() {
	flag.StringVar(&configFile, "config", "", "YAML configuration file")
	flag.StringVar(&flags.Device, "device", linuxcec.DefaultDevice, "CEC character device")
	flag.BoolVar(&flags.Simulate, "simulate", false, "Use an in-memory bus with simulated peers")
	flag.StringVar(&flags.SettingsPath, "settings", flags.SettingsPath, "Settings file path")
	flag.StringVar(&flags.EDIDPath, "edid", "", "Sink EDID file")
	flag.StringVar(&flags.Capture, "capture", "", "Write a capture file for cec-log")
	flag.StringVar(&flags.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&flags.Interactive, "interactive", false, "Start the interactive console")
	flag.DurationVar(&flags.ProbeEvery, "probe-interval", 0, "Liveness probe period (0 means the default)")
	flag.StringVar(&flags.FallbackPhysicalAddress, "fallback-pa", "", "Physical address used when none can be read")
}

// resolveConfig loads the configuration file and applies the flags that
// were set explicitly on top of it.
func resolveConfig() (Config, error) {
	cfg := defaultConfig()
	cfg.Device = linuxcec.DefaultDevice
	if configFile != "" {
		if err := loadConfigFile(configFile, &cfg); err != nil {
			return cfg, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "device":
			cfg.Device = flags.Device
		case "simulate":
			cfg.Simulate = flags.Simulate
		case "settings":
			cfg.SettingsPath = flags.SettingsPath
		case "edid":
			cfg.EDIDPath = flags.EDIDPath
		case "capture":
			cfg.Capture = flags.Capture
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		case "interactive":
			cfg.Interactive = flags.Interactive
		case "probe-interval":
			cfg.ProbeEvery = flags.ProbeEvery
		case "fallback-pa":
			cfg.FallbackPhysicalAddress = flags.FallbackPhysicalAddress
		}
	})
	return cfg, cfg.validate()
}

func main() {
	flag.Parse()

	cfg, err := resolveConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// lateWriter forwards to a writer chosen after the logger was built, so
// log lines can move to the console once it exists.
type lateWriter struct{ w io.Writer }

func (l *lateWriter) Write(p []byte) (int, error) { return l.w.Write(p) }

func run(cfg Config) error {
	level, _ := parseLevel(cfg.LogLevel)
	logOut := &lateWriter{w: os.Stderr}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	logger.Info("CEC source", "version", version.Current, "cec", version.CEC.String(), "simulate", cfg.Simulate)

	svcConfig := service.DefaultConfig()
	svcConfig.SettingsPath = cfg.SettingsPath
	svcConfig.Logger = logger
	if cfg.ProbeEvery > 0 {
		svcConfig.ProbeInterval = cfg.ProbeEvery
	}
	if cfg.FallbackPhysicalAddress != "" {
		svcConfig.FallbackPhysicalAddress, _ = cec.ParsePhysicalAddress(cfg.FallbackPhysicalAddress)
	}

	capture, closeCapture, err := openCapture(cfg, logger)
	if err != nil {
		return err
	}
	defer closeCapture()
	svcConfig.CaptureLogger = capture

	var (
		svc    *service.SourceService
		bus    transport.Bus
		reader edid.Reader
		sim    *interactive.Simulation
	)

	if cfg.Simulate {
		loop, err := newSimulatedBus(cfg)
		if err != nil {
			return err
		}
		sink := &simSink{}
		if pa, err := cec.ParsePhysicalAddress(cfg.BusPhysicalAddress); err == nil {
			_ = sink.Plug("GSM", pa)
		}
		bus, reader = loop, sink
		sim = &interactive.Simulation{Bus: loop, Sink: sink}
	} else {
		bus = linuxcec.New(linuxcec.Config{
			Device: cfg.Device,
			Logger: logger,
			OnLost: func(err error) {
				if svc != nil {
					svc.NotifyBusLost(err)
				}
			},
		})
		if cfg.EDIDPath != "" {
			reader = edid.FileReader{Path: cfg.EDIDPath}
		}
	}

	svc, err = service.NewSourceService(svcConfig, bus, reader)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var console *interactive.Console
	if cfg.Interactive {
		console, err = interactive.New(svc, sim)
		if err != nil {
			return err
		}
		logOut.w = console.Stderr()
	} else {
		svc.RegisterListener(notify.ListenerFunc(func(e notify.Event) {
			logger.Info("event", "event", e.String())
		}))
	}

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	logger.Info("service started", "state", svc.State().String(), "enabled", svc.Enabled())

	if console != nil {
		go console.Run(ctx, cancel)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig.String())
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	if err := svc.Stop(); err != nil {
		logger.Warn("stop service", "error", err)
	}
	return nil
}

// openCapture returns the capture logger described by cfg. At debug level
// capture events are also written to the debug log.
func openCapture(cfg Config, logger *slog.Logger) (log.Logger, func(), error) {
	var loggers []log.Logger
	closeFn := func() {}

	if cfg.Capture != "" {
		fl, err := log.NewFileLogger(cfg.Capture)
		if err != nil {
			return nil, closeFn, fmt.Errorf("open capture: %w", err)
		}
		loggers = append(loggers, fl)
		closeFn = func() {
			if err := fl.Close(); err != nil {
				logger.Warn("close capture", "error", err)
			}
			logger.Info("capture closed", "path", cfg.Capture, "events", fl.Written())
		}
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		loggers = append(loggers, log.NewSlogAdapter(logger))
	}

	switch len(loggers) {
	case 0:
		return nil, closeFn, nil
	case 1:
		return loggers[0], closeFn, nil
	default:
		return log.NewMultiLogger(loggers...), closeFn, nil
	}
}
