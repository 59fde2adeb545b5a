// Package cmd implements the CLI command structure for cathy.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/cathy-go/internal/config"
	"github.com/nibzard/cathy-go/internal/logging"
	"github.com/nibzard/cathy-go/internal/loop"
	"github.com/nibzard/cathy-go/internal/storage"
	"github.com/nibzard/cathy-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ErrCommandFailed is returned by exec when the command line was rejected. The
// reason has already been printed.
var ErrCommandFailed = errors.New("command failed")

// streams are the process streams a command talks to.
type streams struct {
	in       io.Reader
	out, err io.Writer
}

// Run executes the cathy CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
}

func run(ctx context.Context, args []string, s streams) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("cathy", flag.ContinueOnError)
	fs.SetOutput(s.err)
	fs.Usage = func() {
		printUsage(fs, s.err)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, s.out)
		return nil
	}
	if *showVersion {
		return versionCommand(s.out)
	}

	// Determine the subcommand
	subcommand := cfg.UI
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "version":
		return versionCommand(s.out)
	case "help":
		printUsage(fs, s.out)
		return nil
	case "config":
		return configCommand(cws, remainingArgs, s)
	}

	logger, closeLog, err := openLogger(cfg, s.err)
	if err != nil {
		return err
	}
	defer closeLog.Close()
	store := storage.New(cfg.DataFile, logger)

	switch subcommand {
	case config.UIRepl:
		return replCommand(ctx, cfg, store, logger, s)
	case config.UITUI:
		return tuiCommand(ctx, cfg, store, logger)
	case "exec":
		return execCommand(cfg, store, logger, remainingArgs, s)
	case "doctor":
		return doctorCommand(cws, store, s)
	default:
		fmt.Fprintf(s.err, "Unknown command: %s\n", subcommand)
		printUsage(fs, s.err)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openLogger builds the logger described by cfg. Without a log file it writes to w.
func openLogger(cfg *config.Config, w io.Writer) (*log.Logger, io.Closer, error) {
	opts := logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	if cfg.LogFile == "" {
		return logging.New(w, opts), nopCloser{}, nil
	}
	logger, closer, err := logging.Open(cfg.LogFile, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newLoop(cfg *config.Config, store *storage.Storage, logger *log.Logger) *loop.Loop {
	return loop.New(loop.Options{
		Store:                 store,
		Logger:                logger,
		RejectDuplicateEvents: cfg.RejectDuplicateEvents,
	})
}

// replCommand runs a line-mode session on the process streams.
func replCommand(ctx context.Context, cfg *config.Config, store *storage.Storage, logger *log.Logger, s streams) error {
	logger.Debug("starting session", "ui", config.UIRepl, "data", store.Path())
	return newLoop(cfg, store, logger).Run(ctx, s.in, s.out)
}

// tuiCommand runs the bubbletea session.
func tuiCommand(ctx context.Context, cfg *config.Config, store *storage.Storage, logger *log.Logger) error {
	logger.Debug("starting session", "ui", config.UITUI, "data", store.Path())
	return ui.RunTUI(ctx, newLoop(cfg, store, logger))
}

// execCommand runs a single command line and prints the reply.
func execCommand(cfg *config.Config, store *storage.Storage, logger *log.Logger, args []string, s streams) error {
	line := strings.Join(args, " ")
	if strings.TrimSpace(line) == "" {
		return fmt.Errorf("exec: missing command line")
	}
	reply := newLoop(cfg, store, logger).Respond(line)
	fmt.Fprintln(s.out, reply.String())
	if reply.Err != nil {
		return ErrCommandFailed
	}
	return nil
}

// configCommand prints the effective configuration and where each value came from.
func configCommand(cws *config.ConfigWithSources, args []string, s streams) error {
	fs := flag.NewFlagSet("cathy config", flag.ContinueOnError)
	fs.SetOutput(s.err)
	example := fs.Bool("example", false, "Print an example config file")
	schema := fs.Bool("schema", false, "Print the config file JSON Schema")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	switch {
	case *example:
		fmt.Fprint(s.out, config.ExampleConfig())
		return nil
	case *schema:
		_, err := s.out.Write(config.SchemaJSON())
		return err
	}

	if file := cws.GetConfigFile(); file != "" {
		fmt.Fprintf(s.out, "# config file: %s\n", file)
	}
	if err := config.WriteTOML(s.out, cws.Config); err != nil {
		return err
	}
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "# sources")
	return cws.WriteSources(s.out)
}

// doctorCommand checks the task file and reports records that cannot be loaded.
func doctorCommand(cws *config.ConfigWithSources, store *storage.Storage, s streams) error {
	w := s.out
	fmt.Fprintln(w, "Cathy Doctor")
	fmt.Fprintln(w, "============")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintln(w, "Config:")
	if file := cws.GetConfigFile(); file != "" {
		fmt.Fprintf(w, "  ✅ %s\n", file)
	} else {
		fmt.Fprintln(w, "  ✅ defaults (no config file)")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Task file: %s\n", store.Path())
	report, err := store.Check()
	switch {
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	case !report.Exists:
		fmt.Fprintln(w, "  ⚠️  Not found (will be created on first change)")
	default:
		fmt.Fprintf(w, "  ✅ %d tasks\n", report.Loaded)
		for _, skipped := range report.Skipped {
			fmt.Fprintf(w, "  ❌ %v\n", skipped)
			fmt.Fprintf(w, "     %q\n", skipped.Text)
		}
		if !report.OK() {
			fmt.Fprintf(w, "  %d corrupted records will be dropped on the next save\n", len(report.Skipped))
			allOK = false
		}
	}
	fmt.Fprintln(w)

	if logFile := cws.Config.LogFile; logFile != "" {
		fmt.Fprintf(w, "Log file: %s\n", logFile)
		if info, err := os.Stat(logFile); err == nil && info.IsDir() {
			fmt.Fprintln(w, "  ❌ Error: path is a directory")
			allOK = false
		} else {
			fmt.Fprintln(w, "  ✅ OK")
		}
		fmt.Fprintln(w)
	}

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "cathy version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Cathy - a task manager with opinions")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cathy [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  repl          Line-mode session on stdin/stdout (default)")
	fmt.Fprintln(w, "  tui           Terminal UI session")
	fmt.Fprintln(w, "  exec <line>   Run one command line and exit")
	fmt.Fprintln(w, "  doctor        Report corrupted records in the task file")
	fmt.Fprintln(w, "  config        Print the effective configuration and its sources")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file")
	fmt.Fprintln(w, "  -schema")
	fmt.Fprintln(w, "        Print the config file JSON Schema")
}
