// Package geometry maps between board cells and window coordinates. Window
// coordinates have their origin at the bottom-left, as in pixel.
package geometry

import (
	"github.com/faiface/pixel"

	"github.com/they4kman/gobingo/game"
)

type Layout struct {
	CellWidth    float64
	Margin       float64
	HeaderHeight float64
	FooterHeight float64
}

func Default() Layout {
	return Layout{
		CellWidth:    64,
		Margin:       20,
		HeaderHeight: 50,
		FooterHeight: 60,
	}
}

func (layout Layout) gridSize() float64 {
	return layout.CellWidth * game.Size
}

func (layout Layout) WindowBounds() pixel.Rect {
	return pixel.R(
		0, 0,
		layout.gridSize()+2*layout.Margin,
		layout.FooterHeight+layout.gridSize()+layout.HeaderHeight,
	)
}

// gridTopLeft is the window position of the top-left corner of cell (0, 0)
func (layout Layout) gridTopLeft() pixel.Vec {
	return pixel.V(layout.Margin, layout.FooterHeight+layout.gridSize())
}

func (layout Layout) CellRect(pos game.Position) pixel.Rect {
	topLeft := layout.gridTopLeft()
	min := pixel.V(
		topLeft.X+layout.CellWidth*float64(pos.X),
		topLeft.Y-layout.CellWidth*float64(pos.Y+1),
	)
	return pixel.R(min.X, min.Y, min.X+layout.CellWidth, min.Y+layout.CellWidth)
}

func (layout Layout) ScreenToGridCoords(v pixel.Vec) (game.Position, bool) {
	topLeft := layout.gridTopLeft()
	dx, dy := v.X-topLeft.X, topLeft.Y-v.Y
	if dx < 0 || dy < 0 {
		return game.Position{}, false
	}

	x, y := int(dx/layout.CellWidth), int(dy/layout.CellWidth)
	if x >= game.Size || y >= game.Size {
		return game.Position{}, false
	}
	return game.Position{X: x, Y: y}, true
}

// ProgressRect is the bar showing completed lines, between grid and help text
func (layout Layout) ProgressRect() pixel.Rect {
	top := layout.FooterHeight - 15
	return pixel.R(layout.Margin, top-12, layout.Margin+layout.gridSize(), top)
}

// InOutCubic eases t in [0, 1], slow at both ends
func InOutCubic(t float64) float64 {
	t *= 2
	if t < 1 {
		return 0.5 * t * t * t
	} else {
		t -= 2
		return 0.5 * (t*t*t + 2)
	}
}
