// Package main is the entry point for the diffscope viewer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/diffscope/internal/app"
	"github.com/dshills/diffscope/internal/config"
	"github.com/dshills/diffscope/internal/git"
	"github.com/dshills/diffscope/internal/session"
	"github.com/dshills/diffscope/internal/tui"
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

type options struct {
	configPath string
	noConfig   bool
	staged     bool
	hexPath    string
	logFile    string
	logLevel   string
	set        map[string]bool
	args       []string
}

func run() int {
	settings := config.Default()
	opts := parseFlags(&settings)

	cfgFile, err := config.Load(opts.configPath, opts.noConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	settings = config.Apply(settings, cfgFile, opts.set)

	logger := app.NullLogger
	if opts.logFile != "" {
		logger, err = app.NewFileLogger(opts.logFile, app.ParseLogLevel(opts.logLevel))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			return 1
		}
		defer logger.Close()
	}

	store, err := session.NewStore()
	if err != nil {
		logger.Warn("session store unavailable: %v", err)
		store = nil
	}
	staged := opts.staged
	if store != nil {
		state := store.Load()
		if settings.Encoding == "" && !opts.set[config.FlagNameEncoding] {
			settings.Encoding = state.Encoding
		}
		if !opts.staged {
			staged = state.StagedView
		}
	}

	viewer, err := openViewer(settings, staged, logger, opts.args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if store != nil {
		state := store.Load()
		state.Encoding = settings.Encoding
		state.StagedView = staged
		if state.HexPreview && opts.hexPath != "" {
			if bin, err := viewer.IsBinaryFile(opts.hexPath); err == nil && bin {
				viewer.ToggleHexPreview()
			}
		}
		if err := store.Save(state); err != nil {
			logger.Warn("save session: %v", err)
		}
	}

	ui, err := tui.New(tui.Config{
		Viewer:    viewer,
		Logger:    logger,
		ThemeName: settings.Theme,
		HexPath:   opts.hexPath,
		Session:   store,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if err := ui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openViewer builds the viewer from the positional arguments. Two paths
// compare a plain file pair; zero or one selects a git repository diff.
func openViewer(settings config.Settings, staged bool, logger *app.Logger, args []string) (*app.Viewer, error) {
	switch len(args) {
	case 0, 1:
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		manager := git.NewManager(git.ManagerConfig{})
		repo, err := manager.Discover(root)
		if err != nil {
			return nil, fmt.Errorf("no git repository at %s: %w", root, err)
		}
		viewer, err := app.NewViewer(app.ViewerConfig{
			Settings: settings,
			Repo:     repo,
			Logger:   logger,
		})
		if err != nil {
			return nil, err
		}
		if err := viewer.LoadGitDiff(git.DiffOptions{
			Staged:  staged,
			Context: settings.ContextLines,
		}); err != nil {
			return nil, err
		}
		return viewer, nil
	case 2:
		viewer, err := app.NewViewer(app.ViewerConfig{
			Settings: settings,
			Logger:   logger,
		})
		if err != nil {
			return nil, err
		}
		if err := viewer.LoadFilePair(args[0], args[1]); err != nil {
			return nil, err
		}
		return viewer, nil
	default:
		return nil, fmt.Errorf("expected at most two paths, got %d", len(args))
	}
}

func parseFlags(settings *config.Settings) options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.noConfig, "no-config", false, "Skip loading the configuration file")
	flag.BoolVar(&opts.staged, "staged", false, "Show the staged diff instead of the worktree diff")
	flag.StringVar(&opts.hexPath, "hex", "", "File to show in the hex preview panel")
	flag.StringVar(&opts.logFile, "log-file", "", "Append operational logging to a file")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&settings.Theme, config.FlagNameTheme, settings.Theme, "Color theme (default, mono)")
	flag.StringVar(&settings.Encoding, config.FlagNameEncoding, settings.Encoding, "IANA charset for built patches (empty for UTF-8)")
	flag.IntVar(&settings.ContextLines, config.FlagNameContext, settings.ContextLines, "Context lines in produced diffs")
	flag.StringVar(&settings.LineEnding, config.FlagNameLineEnding, settings.LineEnding, "Line ending for copied text (lf, crlf, cr)")
	flag.StringVar(&settings.AutoCRLF, config.FlagNameAutoCRLF, settings.AutoCRLF, "CRLF conversion policy for file pairs (true, input, false)")
	flag.IntVar(&settings.HexColumnWidth, config.FlagNameHexWidth, settings.HexColumnWidth, "Bytes per column in the hex preview")
	flag.IntVar(&settings.HexColumnCount, config.FlagNameHexColumns, settings.HexColumnCount, "Columns per row in the hex preview")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Diffscope - diff-aware terminal viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: diffscope [options] [repo | old new]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  diffscope                   Diff the worktree of the current repository\n")
		fmt.Fprintf(os.Stderr, "  diffscope -staged           Diff the index against HEAD\n")
		fmt.Fprintf(os.Stderr, "  diffscope old.go new.go     Compare two files\n")
		fmt.Fprintf(os.Stderr, "  diffscope -hex data.bin     Enable the hex panel for a file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Diffscope %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	opts.args = flag.Args()
	return opts
}
