package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/alecthomas/kong"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
	"github.com/tartampluch/go-contacts/internal/server"
	"github.com/tartampluch/go-contacts/internal/ui"
)

// CLI holds the command-line flags.
type CLI struct {
	Version kong.VersionFlag `help:"${help_version}" short:"V"`
	Debug   bool             `help:"${help_debug}"`
	Reset   bool             `help:"${help_reset}"`
}

// main is the application entry point.
// It delegates execution to runMain so that deferred calls (like closing the
// log file) run before the process terminates.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	cli, err := parseCLI(os.Args[1:], kong.Exit(os.Exit))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	logCloser := setupLogging(cli.Debug)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, cli); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// parseCLI parses args into a CLI. Extra kong options are appended, which
// lets tests intercept the exit triggered by --version.
func parseCLI(args []string, options ...kong.Option) (*CLI, error) {
	var cli CLI
	opts := append([]kong.Option{
		kong.Name(filepath.Base(os.Args[0])),
		kong.Description(config.CLIDescription),
		kong.Vars{
			"version":      versionString(),
			"help_version": config.FlagDescVersion,
			"help_debug":   config.FlagDescDebug,
			"help_reset":   config.FlagDescReset,
		},
	}, options...)

	parser, err := kong.New(&cli, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse(args); err != nil {
		return nil, err
	}
	return &cli, nil
}

// run initializes the Fyne application, wires dependencies, and starts the UI loop.
func run(ctx context.Context, cli *CLI) error {
	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	store := contacts.NewStore(a.Preferences())
	if cli.Reset {
		store.Reset()
	} else {
		store.Initialize()
	}

	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	srv := server.NewContactsServer(port)
	importer := &contacts.Importer{Fetcher: contacts.NewHTTPFetcher()}

	gui := ui.NewContactsApp(a, ctx, store, srv, importer)

	// Quit the UI when the root context is cancelled.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	// Blocks until the main window closes.
	gui.Run()

	return nil
}

func versionString() string {
	return fmt.Sprintf(config.FormatVersionOut,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyDate, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs a JSON slog logger writing to stdout and, when
// possible, to a log file in the user cache directory.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stdout}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	slog.SetDefault(newLogger(io.MultiWriter(writers...), debugMode))

	if logFile == nil {
		return nil
	}
	return logFile
}

func newLogger(w io.Writer, debugMode bool) *slog.Logger {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}))
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
