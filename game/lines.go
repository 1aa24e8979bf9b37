package game

import (
	"fmt"

	"github.com/they4kman/gobingo/util/collections"
)

// Line is one of the twelve ways to complete five cells: a row, a column, or
// one of the two diagonals. Index is unused for diagonals.
type Line struct {
	Kind  LineKind
	Index int
}

func (line Line) String() string {
	switch line.Kind {
	case Row, Column:
		return fmt.Sprintf("%s %d", line.Kind, line.Index)
	default:
		return line.Kind.String()
	}
}

func (line Line) Cells() [Size]Position {
	var cells [Size]Position
	for i := range cells {
		switch line.Kind {
		case Row:
			cells[i] = Position{i, line.Index}
		case Column:
			cells[i] = Position{line.Index, i}
		case Diagonal:
			cells[i] = Position{i, i}
		case AntiDiagonal:
			cells[i] = Position{Size - 1 - i, i}
		}
	}
	return cells
}

var allLines = func() []Line {
	lines := make([]Line, 0, 2*Size+2)
	for i := 0; i < Size; i++ {
		lines = append(lines, Line{Kind: Row, Index: i})
	}
	for i := 0; i < Size; i++ {
		lines = append(lines, Line{Kind: Column, Index: i})
	}
	return append(lines, Line{Kind: Diagonal}, Line{Kind: AntiDiagonal})
}()

// AllLines returns rows 0-4, columns 0-4, the main diagonal and the
// anti-diagonal, in that order
func AllLines() []Line {
	return append([]Line(nil), allLines...)
}

func (board Board) LineNumbers(line Line) [Size]int {
	var numbers [Size]int
	for i, pos := range line.Cells() {
		numbers[i] = board.At(pos.X, pos.Y)
	}
	return numbers
}

// CompletedLines returns the lines of board whose every number is marked
func CompletedLines(board Board, marked collections.Set[int]) []Line {
	var completed []Line
	for _, line := range allLines {
		numbers := board.LineNumbers(line)
		if marked.ContainsAll(numbers[:]...) {
			completed = append(completed, line)
		}
	}
	return completed
}

// Evaluate counts the completed lines of board
func Evaluate(board Board, marked collections.Set[int]) int {
	return len(CompletedLines(board, marked))
}
