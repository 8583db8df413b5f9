// Package main is the entry point for edkit, a headless driver for the
// clipboard history, word highlighter and navigation history.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/dshills/edkit/internal/app"
	"github.com/dshills/edkit/internal/config"
	"github.com/dshills/edkit/internal/driver"
	"github.com/dshills/edkit/internal/host/memhost"
	"github.com/dshills/edkit/internal/luaapi"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Options holds the command line.
type Options struct {
	ConfigPath      string
	LogLevel        string
	ScriptPath      string
	Watch           bool
	SystemClipboard bool
	Commands        []string
	Files           []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	loader := config.NewLoader()
	cfg, err := loader.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.SystemClipboard {
		cfg.Clipboard.System = true
	}

	logCfg := app.DefaultLoggerConfig()
	logCfg.Level = app.ParseLogLevel(cfg.Logging.Level)
	logger := app.NewLogger(logCfg)

	var hostOpts []memhost.Option
	if cfg.Clipboard.System {
		hostOpts = append(hostOpts, memhost.WithClipboard(memhost.SystemClipboard{}))
	}
	h := memhost.New(hostOpts...)

	application, err := app.New(h, cfg, app.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	drv := driver.New(h, application)
	for _, path := range opts.Files {
		if err := drv.Open(path, 1); err != nil {
			logger.Error("open %s: %v", path, err)
			return 1
		}
	}

	if err := application.Start(); err != nil {
		logger.Error("start: %v", err)
		return 1
	}
	defer application.Stop()

	if opts.Watch && opts.ConfigPath != "" {
		watchLog := logger.WithComponent("config")
		w, err := config.NewWatcher(loader, opts.ConfigPath, func(cfg *config.Config) {
			if opts.LogLevel != "" {
				cfg.Logging.Level = opts.LogLevel
			}
			if err := application.Reconfigure(cfg); err != nil {
				watchLog.Error("reload: %v", err)
			}
		}, config.WithErrorHandler(func(err error) {
			watchLog.Warn("reload rejected: %v", err)
		}))
		if err != nil {
			logger.Error("watch %s: %v", opts.ConfigPath, err)
			return 1
		}
		defer w.Close()
		watchLog.Info("watching %s", w.Path())
	}

	for _, name := range opts.Commands {
		if err := application.RunCommand(name); err != nil {
			if app.IsNoTarget(err) {
				logger.Warn("%s: open a file first", name)
				continue
			}
			logger.Error("%s: %v", name, err)
			return 1
		}
	}

	if opts.ScriptPath != "" {
		if err := runScript(ctx, application, drv, h, opts.ScriptPath); err != nil {
			logger.Error("script %s: %v", opts.ScriptPath, err)
			return 1
		}
	}

	if opts.Watch && opts.ScriptPath == "" {
		<-ctx.Done()
	}

	logger.WithFields(map[string]any{
		"clipboard": application.ClipboardRing().Len(),
		"windows":   application.Navigation().Len(),
	}).Debug("done")
	return 0
}

func runScript(ctx context.Context, a *app.App, drv *driver.Driver, h *memhost.Host, path string) error {
	registry, err := luaapi.DefaultRegistry(a, drv, h.Clock())
	if err != nil {
		return err
	}
	state, err := luaapi.NewState(registry)
	if err != nil {
		return err
	}
	defer state.Close()

	return state.DoFile(ctx, path)
}

// commandList collects repeated -command flags.
type commandList []string

func (c *commandList) String() string { return strings.Join(*c, ",") }

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

func parseFlags() Options {
	var opts Options
	var commands commandList
	var showVersion bool
	var showHelp bool
	var listCommands bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the configuration")
	flag.StringVar(&opts.ScriptPath, "script", "", "Lua script to run")
	flag.StringVar(&opts.ScriptPath, "s", "", "Lua script to run (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the configuration file when it changes")
	flag.BoolVar(&opts.SystemClipboard, "system-clipboard", false, "Use the operating system clipboard")
	flag.Var(&commands, "command", "Command to run after opening files (repeatable)")
	flag.BoolVar(&listCommands, "list-commands", false, "List command names and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "edkit - clipboard history, word highlighting and navigation history\n\n")
		fmt.Fprintf(os.Stderr, "Usage: edkit [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  %s\n", strings.Join(sortedEnvVars(), "\n  "))
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  edkit -s demo.lua main.go           Run a script against main.go\n")
		fmt.Fprintf(os.Stderr, "  edkit -c edkit.toml -watch          Reload edkit.toml on change\n")
		fmt.Fprintf(os.Stderr, "  edkit -command clipboard_history_copy main.go\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("edkit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if listCommands {
		a, err := app.New(memhost.New(), nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, name := range a.Commands() {
			fmt.Println(name)
		}
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	opts.Commands = commands
	opts.Files = flag.Args()
	return opts
}

func sortedEnvVars() []string {
	vars := config.EnvVars()
	sort.Strings(vars)
	return vars
}
