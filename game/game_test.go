package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRowMajorGame(t *testing.T, config GameConfig) *Game {
	t.Helper()
	config.Snapshot = &BoardSnapshot{Seed: 3, Board: rowMajorRows()}
	game, err := NewGame(config)
	require.NoError(t, err)
	return game
}

func toggleAll(game *Game, numbers ...int) {
	for _, number := range numbers {
		game.Toggle(number)
	}
}

func TestNewGame(t *testing.T) {
	game, err := NewGame(NewGameConfig())
	require.NoError(t, err)

	assert.Equal(t, 0, game.Marked().Len())
	assert.Equal(t, 0, game.CompletedLineCount())
	assert.False(t, game.IsWon())
	assert.True(t, game.CanPlay())
}

func TestNewGameIsReproducible(t *testing.T) {
	config := NewGameConfig()
	config.Seed = 99

	a, err := NewGame(config)
	require.NoError(t, err)
	b, err := NewGame(config)
	require.NoError(t, err)

	assert.Equal(t, a.Board(), b.Board())

	a.Regenerate()
	b.Regenerate()
	assert.Equal(t, a.Board(), b.Board())
}

func TestToggle(t *testing.T) {
	game := newRowMajorGame(t, NewGameConfig())

	game.Toggle(13)
	assert.True(t, game.IsMarked(13))

	game.Toggle(13)
	assert.False(t, game.IsMarked(13))
	assert.Equal(t, 0, game.Marked().Len())
}

func TestToggleIgnoresNumbersOffBoard(t *testing.T) {
	game := newRowMajorGame(t, NewGameConfig())

	game.Toggle(0)
	game.Toggle(26)
	assert.Equal(t, 0, game.Marked().Len())
}

func TestMarkedIsCopy(t *testing.T) {
	game := newRowMajorGame(t, NewGameConfig())
	game.Toggle(1)

	marked := game.Marked()
	marked.Add(2)
	assert.False(t, game.IsMarked(2))
}

func TestFirstRowIsOneLine(t *testing.T) {
	game := newRowMajorGame(t, NewGameConfig())
	toggleAll(game, 1, 2, 3, 4, 5)

	assert.Equal(t, 1, game.CompletedLineCount())
	assert.Equal(t, []Line{{Kind: Row, Index: 0}}, game.CompletedLines())
	assert.False(t, game.IsWon())
	assert.True(t, game.IsLineCell(Position{3, 0}))
	assert.False(t, game.IsLineCell(Position{3, 1}))
}

func TestUnmarkingUncompletesLine(t *testing.T) {
	game := newRowMajorGame(t, NewGameConfig())
	toggleAll(game, 1, 2, 3, 4, 5)
	game.Toggle(3)

	assert.Equal(t, 0, game.CompletedLineCount())
}

func TestWinLocksMarks(t *testing.T) {
	wins := 0
	config := NewGameConfig()
	config.OnWin = func(*Game) { wins++ }
	game := newRowMajorGame(t, config)

	// Column 0, then the remaining numbers of rows 0 through 3
	toggleAll(game, 1, 6, 11, 16, 21)
	toggleAll(game, 2, 3, 4, 5)
	toggleAll(game, 7, 8, 9, 10)
	toggleAll(game, 12, 13, 14, 15)
	assert.False(t, game.IsWon())
	toggleAll(game, 17, 18, 19, 20)

	assert.GreaterOrEqual(t, game.CompletedLineCount(), WinningLines)
	assert.True(t, game.IsWon())
	assert.Equal(t, Won, game.State())
	assert.Equal(t, 1, wins)

	before := game.Marked()
	game.Toggle(25)
	game.Toggle(1)
	assert.Equal(t, before, game.Marked())
	assert.Equal(t, 1, wins)
}

func TestRegenerateResets(t *testing.T) {
	game := newRowMajorGame(t, NewGameConfig())
	toggleAll(game, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21)
	require.True(t, game.IsWon())

	game.Regenerate()

	assert.Equal(t, 0, game.Marked().Len())
	assert.Equal(t, 0, game.CompletedLineCount())
	assert.Empty(t, game.CompletedLines())
	assert.False(t, game.IsWon())

	number := game.Board().At(0, 0)
	game.Toggle(number)
	assert.True(t, game.IsMarked(number))
}

func TestOnToggle(t *testing.T) {
	var toggled []int
	var states []bool
	config := NewGameConfig()
	config.OnToggle = func(_ *Game, number int, marked bool) {
		toggled = append(toggled, number)
		states = append(states, marked)
	}
	game := newRowMajorGame(t, config)

	toggleAll(game, 4, 4, 30)

	assert.Equal(t, []int{4, 4}, toggled)
	assert.Equal(t, []bool{true, false}, states)
}

func TestWinSavesSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "wins")
	config := NewGameConfig()
	config.SavedSnapshotsDir = dir
	game := newRowMajorGame(t, config)

	for number := 1; number <= 25; number++ {
		game.Toggle(number)
	}
	require.True(t, game.IsWon())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^\d{8}_\d{6}_win\.yaml$`, entries[0].Name())

	contents, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	snapshot, err := LoadSnapshot(string(contents))
	require.NoError(t, err)
	assert.Equal(t, rowMajorRows(), snapshot.Board)
}

func TestSaveSnapshotRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, nil, 0666))

	config := NewGameConfig()
	config.SavedSnapshotsDir = path
	game := newRowMajorGame(t, config)

	assert.Error(t, game.saveSnapshot(time.Now()))
}

func TestGenerateSnapshotFilename(t *testing.T) {
	game := newRowMajorGame(t, NewGameConfig())
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	assert.Equal(t, "20240309_140507_win.yaml", game.generateSnapshotFilename(at))
}

type countingDirector struct {
	inits, acts, ends int
	game              *Game
}

func (director *countingDirector) Init(game *Game) {
	director.game = game
	director.inits++
}

func (director *countingDirector) Act() {
	director.acts++
}

func (director *countingDirector) End() {
	director.ends++
}

func TestDirectorLifecycle(t *testing.T) {
	director := &countingDirector{}
	config := NewGameConfig()
	config.Director = director
	game := newRowMajorGame(t, config)

	assert.Equal(t, 1, director.inits)
	assert.Same(t, game, director.game)
	assert.True(t, game.HasDirector())

	game.RequestDirectorAct()
	assert.Equal(t, 1, director.acts)

	game.Regenerate()
	assert.Equal(t, 2, director.inits)
	assert.Equal(t, 1, director.ends)

	// Finish the game; the director ends, and no longer acts
	for number := 1; number <= 25; number++ {
		game.Toggle(number)
	}
	require.True(t, game.IsWon())
	assert.Equal(t, 2, director.ends)

	game.RequestDirectorAct()
	assert.Equal(t, 1, director.acts)

	// A won game's director already ended
	game.Regenerate()
	assert.Equal(t, 2, director.ends)
	assert.Equal(t, 3, director.inits)
}

func TestDirectorEndsForWonSnapshot(t *testing.T) {
	director := &countingDirector{}
	config := NewGameConfig()
	config.Director = director
	config.Snapshot = &BoardSnapshot{
		Seed:   3,
		Board:  rowMajorRows(),
		Marked: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21},
	}

	game, err := NewGame(config)
	require.NoError(t, err)
	require.True(t, game.IsWon())

	assert.Equal(t, 1, director.inits)
	assert.Equal(t, 1, director.ends)

	// Already ended, so a new board does not end it again
	game.Regenerate()
	assert.Equal(t, 1, director.ends)
	assert.Equal(t, 2, director.inits)
}
