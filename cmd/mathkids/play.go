package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mathkids/internal/core"
	"github.com/vovakirdan/mathkids/internal/platform/tui"
	"github.com/vovakirdan/mathkids/internal/session"
	"github.com/vovakirdan/mathkids/internal/storage"
)

var (
	flagVerbose bool
	flagScreen  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the app in this terminal",
	Long: `Start the app in this terminal, beginning at the sign-in screen.

Any email signs in unless it contains the configured failure marker.

Controls:
  Arrows/WASD  - Move between cards, walk in the platformer
  Enter        - Open a card, confirm an answer
  Space        - Jump
  1-3          - Pick an answer
  B/Esc        - Back
  X            - Sign out
  Ctrl+S       - Save a screenshot of the game
  Q/Ctrl+C     - Quit

Logs are written to ~/.mathkids/mathkids.log.

Examples:
  mathkids play
  mathkids play --db ~/.mathkids/scores.db
  mathkids play --level ./castle.yaml --seed 42
  mathkids play --screen platformer-game`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug events")
	playCmd.Flags().StringVar(&flagScreen, "screen", "", "Screen to open after signing in (see 'mathkids play --help')")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := openLogFile(filepath.Join(dataDir(), "mathkids.log"))
	defer closeLog()
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	appCfg := loadAppConfig(logger)
	store := session.New(appCfg.Session, session.WithLogger(logger))
	if flagScreen != "" {
		screen, err := session.ParseScreen(flagScreen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "Screens: %s\n", screenTags())
			os.Exit(1)
		}
		store.SetScreen(screen)
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	scores, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage
		scores = nil
	} else if err := scores.SeedLeaderboard(appCfg.Leaderboard.Seed); err != nil {
		logger.Warn("could not seed leaderboard", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := tui.Run(ctx, tui.Options{
		Store:  store,
		Scores: scores,
		Logger: logger,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Input:         appCfg.Input,
		ConfigPaths:   gameConfigPaths(),
		LevelPath:     flagLevel,
		ScreenshotDir: filepath.Join(dataDir(), "screenshots"),
	})

	if scores != nil {
		if err := scores.Close(); err != nil {
			logger.Warn("could not close scores database", "err", err)
		}
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", runErr)
		os.Exit(1)
	}
}

// openLogFile returns a logger writing to path. The terminal belongs to
// the UI, so when the file cannot be opened logs are dropped.
func openLogFile(path string) (*log.Logger, func()) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "mathkids",
	})
	return logger, func() { f.Close() }
}

// screenTags lists every screen tag accepted by --screen.
func screenTags() string {
	screens := session.Screens()
	tags := make([]string, len(screens))
	for i, s := range screens {
		tags[i] = s.String()
	}
	return strings.Join(tags, ", ")
}
