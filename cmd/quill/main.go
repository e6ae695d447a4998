// Package main is the entry point for the quill text editor engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ashdyer/quill/internal/config"
	"github.com/ashdyer/quill/internal/engine/editor"
	"github.com/ashdyer/quill/internal/log"
	"github.com/ashdyer/quill/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Flags override both the file and environment settings.
	if opts.capacity > 0 {
		cfg.History.Capacity = opts.capacity
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()

	edOpts := []editor.Option{
		editor.WithCapacity(cfg.History.Capacity),
		editor.WithLogger(logger),
	}

	switch {
	case opts.scriptPath != "":
		return runScript(editor.New(edOpts...), logger, cfg, opts.scriptPath)
	case opts.interactive:
		return runREPL(editor.New(edOpts...), logger, opts)
	default:
		runDemo(os.Stdout, edOpts...)
		return 0
	}
}

type options struct {
	configPath  string
	scriptPath  string
	capacity    int
	logLevel    string
	interactive bool
	watch       bool
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.scriptPath, "script", "", "Run a Lua script and exit")
	flag.StringVar(&opts.scriptPath, "s", "", "Run a Lua script and exit (shorthand)")
	flag.IntVar(&opts.capacity, "capacity", 0, "Undo history capacity (overrides config)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.interactive, "interactive", false, "Start an interactive session")
	flag.BoolVar(&opts.interactive, "i", false, "Start an interactive session (shorthand)")
	flag.BoolVar(&opts.watch, "watch", false, "Reload configuration when the file changes (interactive mode)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Quill - text editing engine with undo/redo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quill [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  quill                       Run the guided demonstration\n")
		fmt.Fprintf(os.Stderr, "  quill -s edits.lua          Apply a Lua edit script\n")
		fmt.Fprintf(os.Stderr, "  quill -i                    Start an interactive session\n")
		fmt.Fprintf(os.Stderr, "  quill -i -c quill.toml -watch   Reload settings on change\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Quill %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.watch && opts.configPath == "" {
		fmt.Fprintf(os.Stderr, "Error: -watch requires -config\n")
		os.Exit(1)
	}

	return opts
}

// runScript executes a Lua script against the editor and prints the
// resulting document.
func runScript(ed *editor.Editor, logger *log.Logger, cfg config.Config, path string) int {
	eng := script.New(ed,
		script.WithLogger(logger),
		script.WithInstructionLimit(cfg.Script.InstructionLimit),
	)
	defer eng.Close()

	if err := eng.DoFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: script failed: %v\n", err)
		return 1
	}

	fmt.Println(ed.Content())
	return 0
}

// newLogger builds the logger from configuration. The returned close
// function releases the log file, if any.
func newLogger(cfg config.LoggingConfig) (*log.Logger, func(), error) {
	logCfg := log.Config{
		Level:  log.ParseLevel(cfg.Level),
		Prefix: "quill",
	}

	if cfg.File == "" {
		return log.New(logCfg), func() {}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logCfg.Output = f
	return log.New(logCfg), func() { f.Close() }, nil
}
