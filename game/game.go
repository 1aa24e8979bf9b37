package game

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/they4kman/gobingo/util/collections"
)

type GameConfig struct {
	// Seeds the source every new board's seed is drawn from
	Seed int64

	// Snapshot to load the first board from
	Snapshot *BoardSnapshot
	// Whether to drop the marks recorded in the Snapshot
	LoadSnapshotFresh bool

	Director Director

	// Path to directory where snapshots of won games should be saved
	SavedSnapshotsDir string

	// Called once each time a game is won
	OnWin func(*Game)
	// Called after every mark or unmark
	OnToggle func(game *Game, number int, marked bool)
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Seed:              1,
		Director:          nil,
		Snapshot:          nil,
		LoadSnapshotFresh: false,
	}
}

// Game is the state of a single bingo board: the board itself, the marked
// numbers, the lines they complete, and whether the game has been won.
// A Game is not safe for concurrent use; every front-end drives it from one
// goroutine.
type Game struct {
	config GameConfig
	rand   *rand.Rand

	board          Board
	marked         collections.Set[int]
	completedLines []Line
	state          GameState
}

// NewGame creates a game, either from config.Snapshot or from a freshly
// generated board.
func NewGame(config GameConfig) (*Game, error) {
	game := &Game{
		config: config,
		rand:   rand.New(rand.NewSource(config.Seed)),
	}

	if config.Snapshot == nil {
		game.Regenerate()
		return game, nil
	}

	board, marked, err := config.Snapshot.restore()
	if err != nil {
		return nil, err
	}
	if config.LoadSnapshotFresh {
		marked = collections.NewSet[int]()
	}

	game.reset(board)
	game.marked = marked
	game.evaluate()
	if game.state == Won && game.config.Director != nil {
		game.config.Director.End()
	}

	log.WithFields(log.Fields{
		"seed":   board.Seed(),
		"marked": len(marked),
		"lines":  len(game.completedLines),
	}).Debug("restored game from snapshot")

	return game, nil
}

// Regenerate replaces the board with a freshly shuffled one and clears all
// marks, completed lines, and the win.
func (game *Game) Regenerate() {
	game.reset(GenerateBoard(game.rand.Int63()))
	log.WithField("seed", game.board.Seed()).Debug("generated new board")
}

func (game *Game) reset(board Board) {
	if game.config.Director != nil && game.state == Ongoing && game.marked != nil {
		game.config.Director.End()
	}

	game.board = board
	game.marked = collections.NewSet[int]()
	game.completedLines = nil
	game.state = Ongoing

	if game.config.Director != nil {
		game.config.Director.Init(game)
	}
}

// Toggle marks number if it is unmarked, or unmarks it otherwise. Once the
// game is won, or if number is not on the board, Toggle does nothing.
func (game *Game) Toggle(number int) {
	if !game.CanPlay() {
		return
	}
	if !game.board.Contains(number) {
		log.WithField("number", number).Debug("ignoring toggle of number not on board")
		return
	}

	marked := game.marked.Toggle(number)
	game.evaluate()

	log.WithFields(log.Fields{
		"number": number,
		"marked": marked,
		"lines":  len(game.completedLines),
	}).Debug("toggled number")

	if game.config.OnToggle != nil {
		game.config.OnToggle(game, number, marked)
	}
	if game.state == Won {
		game.win()
	}
}

// evaluate recomputes the completed lines, and latches the win once enough
// lines are complete
func (game *Game) evaluate() {
	game.completedLines = CompletedLines(game.board, game.marked)
	if len(game.completedLines) >= WinningLines && game.state != Won {
		game.state = Won
	}
}

func (game *Game) win() {
	log.WithFields(log.Fields{
		"seed":  game.board.Seed(),
		"lines": len(game.completedLines),
	}).Info("BINGO!")

	if game.config.Director != nil {
		game.config.Director.End()
	}
	if err := game.saveSnapshot(time.Now()); err != nil {
		log.WithError(err).Error("could not save snapshot")
	}
	if game.config.OnWin != nil {
		game.config.OnWin(game)
	}
}

// RequestDirectorAct asks the configured director, if any, to perform one step
func (game *Game) RequestDirectorAct() {
	if game.config.Director != nil && game.CanPlay() {
		game.config.Director.Act()
	}
}

func (game *Game) HasDirector() bool {
	return game.config.Director != nil
}

func (game *Game) Board() Board {
	return game.board
}

// Marked returns a copy of the set of marked numbers
func (game *Game) Marked() collections.Set[int] {
	return game.marked.Clone()
}

func (game *Game) IsMarked(number int) bool {
	return game.marked.Contains(number)
}

func (game *Game) CompletedLineCount() int {
	return len(game.completedLines)
}

func (game *Game) CompletedLines() []Line {
	return append([]Line(nil), game.completedLines...)
}

// IsLineCell returns whether the cell at pos lies on a completed line
func (game *Game) IsLineCell(pos Position) bool {
	for _, line := range game.completedLines {
		for _, cell := range line.Cells() {
			if cell == pos {
				return true
			}
		}
	}
	return false
}

func (game *Game) State() GameState {
	return game.state
}

func (game *Game) IsWon() bool {
	return game.state == Won
}

func (game *Game) CanPlay() bool {
	return game.state == Ongoing
}

func (game *Game) saveSnapshot(t time.Time) error {
	dir := game.config.SavedSnapshotsDir
	if dir == "" {
		return nil
	}

	stat, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(err, "stat %s", dir)
		}
		if err := os.MkdirAll(dir, 0777); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	} else if !stat.Mode().IsDir() {
		return errors.Errorf("%s is not a directory; cannot save snapshots to it", dir)
	}

	path := filepath.Join(dir, game.generateSnapshotFilename(t))
	if err := os.WriteFile(path, []byte(game.Snapshot().Serialize()), 0666); err != nil {
		return errors.Wrap(err, "write snapshot")
	}

	log.WithField("path", path).Info("saved snapshot")
	return nil
}

// generateSnapshotFilename names the snapshot of a won game
func (game *Game) generateSnapshotFilename(t time.Time) string {
	filenameBuilder := strings.Builder{}

	filenameBuilder.WriteString(t.Format("20060102_150405"))
	filenameBuilder.WriteString("_win.yaml")

	return filenameBuilder.String()
}
