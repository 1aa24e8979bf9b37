package game

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/they4kman/gobingo/util/collections"
)

type BoardSnapshot struct {
	Seed   int64   `yaml:"seed"`
	Board  [][]int `yaml:"board,flow"`
	Marked []int   `yaml:"marked,flow"`
}

func (game *Game) Snapshot() *BoardSnapshot {
	return &BoardSnapshot{
		Seed:   game.board.Seed(),
		Board:  game.board.Rows(),
		Marked: collections.Sorted(game.marked),
	}
}

func (snapshot *BoardSnapshot) Serialize() string {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		panic(err)
	}

	return string(out)
}

// restore validates the snapshot, returning its board and marked numbers
func (snapshot *BoardSnapshot) restore() (Board, collections.Set[int], error) {
	board, err := NewBoard(snapshot.Board)
	if err != nil {
		return Board{}, nil, errors.Wrap(err, "invalid snapshot board")
	}
	board.seed = snapshot.Seed

	marked := collections.NewSet(snapshot.Marked...)
	if len(marked) != len(snapshot.Marked) {
		return Board{}, nil, errors.New("invalid snapshot: marked numbers repeat")
	}

	onBoard := collections.NewSet[int]()
	for _, row := range snapshot.Board {
		for _, number := range row {
			onBoard.Add(number)
		}
	}
	if stray := marked.Difference(onBoard); len(stray) > 0 {
		return Board{}, nil, errors.Errorf("invalid snapshot: marked numbers %v are not on the board", collections.Sorted(stray))
	}

	return board, marked, nil
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, errors.Wrap(err, "parse snapshot")
	}
	if _, _, err := snapshot.restore(); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
