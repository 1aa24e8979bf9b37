package random

import (
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/they4kman/gobingo/game"
)

// Director marks one randomly chosen unmarked number per step
type Director struct {
	rand *rand.Rand
	game *game.Game
}

func New(seed int64) *Director {
	return &Director{rand: rand.New(rand.NewSource(seed))}
}

func (director *Director) Init(g *game.Game) {
	if director.rand == nil {
		director.rand = rand.New(rand.NewSource(g.Board().Seed()))
	}
	director.game = g
}

func (director *Director) Act() {
	if director.game == nil {
		return
	}

	var unmarked []int
	for number := 1; number <= game.NumCells; number++ {
		if !director.game.IsMarked(number) {
			unmarked = append(unmarked, number)
		}
	}
	if len(unmarked) == 0 {
		return
	}

	number := unmarked[director.rand.Intn(len(unmarked))]
	log.WithField("number", number).Debug("random director marks")
	director.game.Toggle(number)
}

func (director *Director) End() {
	director.game = nil
}
