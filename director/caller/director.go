// Package caller plays bingo the way a hall does: numbers are called one at a
// time, in random order, and every called number on the board gets marked.
package caller

import (
	"math/rand"

	"github.com/gammazero/deque"
	log "github.com/sirupsen/logrus"

	"github.com/they4kman/gobingo/game"
)

type Director struct {
	rand *rand.Rand
	game *game.Game

	pending *deque.Deque[int]
	called  []int
}

func New(seed int64) *Director {
	return &Director{rand: rand.New(rand.NewSource(seed))}
}

// Init shuffles a fresh set of calls for the game
func (director *Director) Init(g *game.Game) {
	if director.rand == nil {
		director.rand = rand.New(rand.NewSource(g.Board().Seed()))
	}
	director.game = g
	director.called = nil

	calls := director.rand.Perm(game.NumCells)
	director.pending = deque.New[int](len(calls))
	for _, call := range calls {
		director.pending.PushBack(call + 1)
	}
}

// Act calls the next number, marking it unless the player already has
func (director *Director) Act() {
	if director.game == nil || !director.game.CanPlay() {
		return
	}

	for director.pending.Len() > 0 {
		number := director.pending.PopFront()
		director.called = append(director.called, number)

		if director.game.IsMarked(number) {
			continue
		}

		log.WithFields(log.Fields{
			"number": number,
			"calls":  len(director.called),
		}).Info("called")
		director.game.Toggle(number)
		return
	}
}

func (director *Director) End() {
	director.game = nil
}

// Called returns the numbers called so far, in order
func (director *Director) Called() []int {
	return append([]int(nil), director.called...)
}

// Remaining returns how many numbers have yet to be called
func (director *Director) Remaining() int {
	if director.pending == nil {
		return 0
	}
	return director.pending.Len()
}
