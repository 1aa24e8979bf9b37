package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/faiface/pixel/pixelgl"
	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/they4kman/gobingo/audio"
	"github.com/they4kman/gobingo/director/caller"
	"github.com/they4kman/gobingo/director/random"
	"github.com/they4kman/gobingo/game"
	"github.com/they4kman/gobingo/gui"
	"github.com/they4kman/gobingo/term"
)

const (
	envSaveDir  = "GOBINGO_SAVE_DIR"
	envLogLevel = "GOBINGO_LOG_LEVEL"
)

type options struct {
	ui           uiKind
	director     directorKind
	auto         bool
	autoInterval time.Duration
	snapshotPath string
	mute         bool
	logLevel     string
	logFile      string
}

var gameConfig = game.NewGameConfig()
var opts = options{
	ui:           WindowUI,
	director:     NoDirector,
	autoInterval: 700 * time.Millisecond,
	logLevel:     "info",
}

// closeLog releases the --log-file handle, if one was opened
var closeLog = func() error { return nil }

var rootCmd = &cobra.Command{
	Use:   "gobingo",
	Short: "Play single-player 5x5 bingo",
	Long: `gobingo is a bingo game on a 5x5 board of the numbers 1 to 25.
Mark numbers until five lines (rows, columns or diagonals) are complete.

Run with no arguments to play in a window
	gobingo

Play in the terminal instead
	gobingo --ui terminal

Let a bingo caller play for you
	gobingo --director caller --auto
`,
	SilenceUsage: true,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, "load .env")
		}
		applyEnv(cmd, &gameConfig, &opts)

		closer, err := configureLogging(opts)
		if err != nil {
			return err
		}
		closeLog = closer
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer func() {
			if err := closeLog(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}()

		if !cmd.Flags().Changed("seed") {
			gameConfig.Seed = time.Now().UnixNano()
		}
		return run(gameConfig, opts)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// applyEnv fills in settings from the environment which were not given as flags
func applyEnv(cmd *cobra.Command, config *game.GameConfig, opts *options) {
	if dir, ok := os.LookupEnv(envSaveDir); ok && !cmd.Flags().Changed("save-dir") {
		config.SavedSnapshotsDir = dir
	}
	if level, ok := os.LookupEnv(envLogLevel); ok && !cmd.Flags().Changed("log-level") {
		opts.logLevel = level
	}
}

// configureLogging sets the log level and output. The returned func closes the
// log file, if any, sending logs back to stderr.
func configureLogging(opts options) (func() error, error) {
	noop := func() error { return nil }

	level, err := log.ParseLevel(opts.logLevel)
	if err != nil {
		return noop, err
	}
	log.SetLevel(level)

	switch {
	case opts.logFile != "":
		file, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return noop, errors.Wrap(err, "open log file")
		}
		log.SetOutput(file)
		return func() error {
			log.SetOutput(os.Stderr)
			return errors.Wrap(file.Close(), "close log file")
		}, nil
	case opts.ui == TerminalUI:
		// Anything written to the terminal would be drawn over
		log.SetOutput(io.Discard)
	}
	return noop, nil
}

func loadSnapshot(path string) (*game.BoardSnapshot, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot")
	}
	snapshot, err := game.LoadSnapshot(string(contents))
	if err != nil {
		return nil, errors.Wrapf(err, "load snapshot %s", path)
	}
	return snapshot, nil
}

func newDirector(kind directorKind, seed int64) game.Director {
	switch kind {
	case RandomDirector:
		return random.New(seed)
	case CallerDirector:
		return caller.New(seed)
	default:
		return nil
	}
}

// hooks chains the sound and animation callbacks onto the game config
func hooks(config *game.GameConfig, player *audio.Player, flasher *gui.Flasher) {
	config.OnToggle = func(g *game.Game, number int, marked bool) {
		if marked {
			player.PlayMark()
		} else {
			player.PlayUnmark()
		}
		if flasher != nil {
			flasher.Record(g, number, marked)
		}
	}
	config.OnWin = func(*game.Game) {
		player.PlayWin()
	}
}

func run(config game.GameConfig, opts options) error {
	if opts.snapshotPath != "" {
		snapshot, err := loadSnapshot(opts.snapshotPath)
		if err != nil {
			return err
		}
		config.Snapshot = snapshot
	}

	config.Director = newDirector(opts.director, config.Seed)

	player := audio.NewPlayer()
	if !opts.mute {
		if err := player.Initialize(); err != nil {
			log.WithError(err).Warn("audio unavailable")
		}
		defer player.Close()
	}

	var flasher *gui.Flasher
	if opts.ui == WindowUI {
		flasher = gui.NewFlasher()
	}
	hooks(&config, player, flasher)

	g, err := game.NewGame(config)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"seed":     config.Seed,
		"ui":       opts.ui,
		"director": opts.director,
	}).Info("starting game")

	var autoInterval time.Duration
	if opts.auto {
		autoInterval = opts.autoInterval
	}

	switch opts.ui {
	case TerminalUI:
		screen, err := tcell.NewScreen()
		if err != nil {
			return errors.Wrap(err, "open terminal")
		}
		ui := term.New(screen, g)
		ui.AutoInterval = autoInterval
		return ui.Run()

	default:
		guiConfig := gui.NewConfig()
		guiConfig.AutoInterval = autoInterval

		var runErr error
		pixelgl.Run(func() {
			runErr = gui.Run(guiConfig, g, flasher)
		})
		return runErr
	}
}

func init() {
	rootCmd.Flags().Int64VarP(&gameConfig.Seed, "seed", "s", 0, "Seed for board generation (default: current time)")
	rootCmd.Flags().StringVar(&gameConfig.SavedSnapshotsDir, "save-dir", "", "Directory to save snapshots of won games to (env "+envSaveDir+")")
	rootCmd.Flags().BoolVar(&gameConfig.LoadSnapshotFresh, "fresh", false, "Ignore the marks recorded in --snapshot")
	rootCmd.Flags().StringVar(&opts.snapshotPath, "snapshot", "", "Path of a saved snapshot to load the first board from")

	rootCmd.Flags().Var(newEnumValue(WindowUI, &opts.ui, uiKinds), "ui", `Front-end to play in.
window: a graphical window
terminal: the current terminal`)
	rootCmd.Flags().VarP(newEnumValue(NoDirector, &opts.director, directorKinds), "director", "d", `Computer player.
none: play by hand
random: marks random numbers
caller: calls numbers in random order, like a bingo hall`)
	rootCmd.Flags().BoolVar(&opts.auto, "auto", false, "Let the director play on its own")
	rootCmd.Flags().DurationVar(&opts.autoInterval, "auto-interval", opts.autoInterval, "Time between director steps with --auto")

	rootCmd.Flags().BoolVar(&opts.mute, "mute", false, "Disable sound")
	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level: trace, debug, info, warn, error (env "+envLogLevel+")")
	rootCmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
}
