package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/pkg/errors"
)

// Board is a 5x5 arrangement of the numbers 1 through 25, each appearing once.
// Boards are values; a new game means a new Board.
type Board struct {
	seed  int64
	cells [Size][Size]int
}

type Position struct {
	X, Y int
}

// GenerateBoard shuffles 1..25 with a source seeded by seed, and lays the
// numbers out row by row. The same seed always yields the same board.
func GenerateBoard(seed int64) Board {
	rnd := rand.New(rand.NewSource(seed))

	numbers := make([]int, NumCells)
	for i := range numbers {
		numbers[i] = i + 1
	}
	rnd.Shuffle(len(numbers), func(i, j int) {
		numbers[i], numbers[j] = numbers[j], numbers[i]
	})

	board := Board{seed: seed}
	for i, number := range numbers {
		board.cells[i/Size][i%Size] = number
	}
	return board
}

// NewBoard builds a Board from explicit rows, which must hold each of 1..25
// exactly once in a 5x5 grid.
func NewBoard(rows [][]int) (Board, error) {
	var board Board

	if len(rows) != Size {
		return board, errors.Errorf("board must have %d rows, got %d", Size, len(rows))
	}

	seen := make(map[int]Position, NumCells)
	for y, row := range rows {
		if len(row) != Size {
			return board, errors.Errorf("row %d must have %d numbers, got %d", y, Size, len(row))
		}

		for x, number := range row {
			if number < 1 || number > NumCells {
				return board, errors.Errorf("number %d at (%d, %d) is outside 1..%d", number, x, y, NumCells)
			}
			if prev, dup := seen[number]; dup {
				return board, errors.Errorf("number %d appears at both (%d, %d) and (%d, %d)", number, prev.X, prev.Y, x, y)
			}
			seen[number] = Position{x, y}
			board.cells[y][x] = number
		}
	}

	return board, nil
}

func (board Board) Seed() int64 {
	return board.seed
}

// At returns the number at column x, row y
func (board Board) At(x, y int) int {
	return board.cells[y][x]
}

func (board Board) Position(number int) (Position, bool) {
	for y, row := range board.cells {
		for x, n := range row {
			if n == number {
				return Position{x, y}, true
			}
		}
	}
	return Position{}, false
}

func (board Board) Contains(number int) bool {
	_, ok := board.Position(number)
	return ok
}

// Rows returns a copy of the board's numbers, row by row
func (board Board) Rows() [][]int {
	rows := make([][]int, Size)
	for y := range board.cells {
		rows[y] = append([]int(nil), board.cells[y][:]...)
	}
	return rows
}

func (board Board) String() string {
	var b strings.Builder
	for y, row := range board.cells {
		for x, number := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%2d", number)
		}
		if y < Size-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
