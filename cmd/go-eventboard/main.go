package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-eventboard/internal/api"
	"github.com/tartampluch/go-eventboard/internal/board"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/engine"
	"github.com/tartampluch/go-eventboard/internal/server"
	"github.com/tartampluch/go-eventboard/internal/ui"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	headless := flag.Bool(config.FlagHeadless, false, config.FlagDescHeadless)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	// We configure structured logging (slog) early to capture startup issues.
	logCloser := setupLogging(*debugMode, *headless)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	env, err := config.LoadEnv()
	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	runner := run
	if *headless {
		runner = runHeadless
	}

	if err := runner(ctx, env); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run initializes the Fyne application, wires dependencies, and starts the UI loop.
func run(ctx context.Context, env config.Env) error {
	// Initialize Fyne App.
	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	// The desktop server only carries the calendar feed and the health check:
	// the hub behind the boards is replaced whenever the settings change.
	port := a.Preferences().StringWithFallback(config.PrefServerPort, env.Port)
	srv := server.New(port, nil)

	// Initialize the UI Controller (MVC pattern).
	gui := ui.NewEventboardApp(a, ctx, srv, env)

	// Lifecycle Bridge:
	// Watch for context cancellation to quit the UI gracefully.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	// Start the Application (blocks until main window closes).
	gui.Run()

	return nil
}

// runHeadless runs the refresh loops and the full local server from env alone.
// It blocks until ctx is cancelled.
func runHeadless(ctx context.Context, env config.Env) error {
	slog.Info(config.MsgHeadless,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyURL, env.APIBaseURL,
		config.LogKeyPort, env.Port,
		config.LogKeyInterval, env.Refresh,
	)

	client, err := api.NewClient(env.APIBaseURL)
	if err != nil {
		return err
	}

	clock := engine.RealClock{}
	hub := board.NewHub(client, board.Settings{
		Session:  api.Session{Token: env.Token, UserID: env.UserID},
		AdminID:  env.AdminID,
		Interval: env.Refresh,
	}, clock)

	srv := server.New(env.Port, hub)
	builder := &engine.CalendarBuilder{Clock: clock}
	hub.OnData = func(d board.Data) {
		entries := board.BuildSchedule(d, env.UserID, clock.Now()).Entries
		if err := srv.PublishSchedule(builder, entries); err != nil {
			slog.Error(config.ErrICalEncode,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyError, err,
			)
		}
	}

	stop := hub.Start(ctx)
	defer stop()

	return srv.Start(ctx)
}

// printVersion outputs the build information to stdout and exits.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
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
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs the default slog logger. The desktop app also writes
// to a log file in the user cache dir; headless runs log to stdout only.
// The returned closer is nil when no file was opened.
func setupLogging(debugMode, headless bool) io.Closer {
	out := io.Writer(os.Stdout)

	var logFile *os.File
	if !headless {
		logFile = openLogFile()
		if logFile != nil {
			out = io.MultiWriter(os.Stdout, logFile)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	})))

	if logFile == nil {
		return nil
	}
	return logFile
}

// openLogFile truncates and opens the log file, or returns nil after
// printing a warning to stderr.
func openLogFile() *os.File {
	path, err := logFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, config.LogFileName, err)
		return nil
	}

	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, path, err)
		return nil
	}
	return f
}

// logFilePath returns the log file location inside the app's cache dir,
// creating the dir (0700) if needed.
func logFilePath() (string, error) {
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
