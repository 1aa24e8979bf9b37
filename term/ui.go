// Package term plays bingo in a terminal
package term

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"github.com/they4kman/gobingo/game"
)

const (
	cellWidth  = 5
	cellHeight = 2
	gridLeft   = 2
	gridTop    = 2

	progressWidth = 20
)

var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Bold(true)
	styleMarked   = tcell.StyleDefault.Reverse(true)
	styleLine     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Reverse(true)
	styleProgress = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleWon      = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// directorTick is posted by the auto-play ticker, so director steps run on
// the event loop like every other action
type directorTick struct{}

type UI struct {
	screen tcell.Screen
	game   *game.Game
	cursor game.Position

	// Mouse buttons held as of the last mouse event
	buttons tcell.ButtonMask

	// Interval between director steps, when auto-playing
	AutoInterval time.Duration
}

func New(screen tcell.Screen, g *game.Game) *UI {
	return &UI{
		screen: screen,
		game:   g,
		cursor: game.Position{X: game.Size / 2, Y: game.Size / 2},
	}
}

// Run draws the game and handles events until the player quits. The screen
// is finalized before returning.
func (ui *UI) Run() error {
	if err := ui.screen.Init(); err != nil {
		return err
	}
	defer ui.screen.Fini()

	ui.screen.EnableMouse(tcell.MouseButtonEvents)
	ui.screen.HideCursor()

	done := make(chan struct{})
	defer close(done)
	if ui.AutoInterval > 0 && ui.game.HasDirector() {
		go ui.tick(done)
	}

	for {
		ui.Draw()

		ev := ui.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if quit := ui.HandleEvent(ev); quit {
			return nil
		}
	}
}

func (ui *UI) tick(done <-chan struct{}) {
	ticker := time.NewTicker(ui.AutoInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := ui.screen.PostEvent(tcell.NewEventInterrupt(directorTick{})); err != nil {
				log.WithError(err).Trace("dropped director tick")
			}
		}
	}
}

// HandleEvent applies a single event to the game, returning whether the
// player asked to quit
func (ui *UI) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		ui.screen.Sync()

	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(directorTick); ok {
			ui.game.RequestDirectorAct()
		}

	case *tcell.EventMouse:
		pressed := ev.Buttons() &^ ui.buttons
		ui.buttons = ev.Buttons()

		// Only a fresh press toggles; drags and releases do not
		if pressed&tcell.Button1 == 0 {
			return false
		}
		if pos, ok := ui.cellAt(ev.Position()); ok {
			ui.cursor = pos
			ui.toggleCursor()
		}

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			ui.moveCursor(0, -1)
		case tcell.KeyDown:
			ui.moveCursor(0, 1)
		case tcell.KeyLeft:
			ui.moveCursor(-1, 0)
		case tcell.KeyRight:
			ui.moveCursor(1, 0)
		case tcell.KeyEnter:
			ui.toggleCursor()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case ' ':
				ui.toggleCursor()
			case 'n':
				ui.game.Regenerate()
			case 'd':
				ui.game.RequestDirectorAct()
			case 'h':
				ui.moveCursor(-1, 0)
			case 'j':
				ui.moveCursor(0, 1)
			case 'k':
				ui.moveCursor(0, -1)
			case 'l':
				ui.moveCursor(1, 0)
			}
		}
	}

	return false
}

func (ui *UI) moveCursor(dx, dy int) {
	ui.cursor.X = (ui.cursor.X + dx + game.Size) % game.Size
	ui.cursor.Y = (ui.cursor.Y + dy + game.Size) % game.Size
}

func (ui *UI) toggleCursor() {
	ui.game.Toggle(ui.game.Board().At(ui.cursor.X, ui.cursor.Y))
}

func (ui *UI) Cursor() game.Position {
	return ui.cursor
}

// cellAt converts screen coordinates to the board cell drawn there
func (ui *UI) cellAt(sx, sy int) (game.Position, bool) {
	if sx < gridLeft || sy < gridTop {
		return game.Position{}, false
	}
	x, y := (sx-gridLeft)/cellWidth, (sy-gridTop)/cellHeight
	if x >= game.Size || y >= game.Size || (sy-gridTop)%cellHeight != 0 {
		return game.Position{}, false
	}
	return game.Position{X: x, Y: y}, true
}

func (ui *UI) Draw() {
	ui.screen.Clear()

	ui.drawText(gridLeft, 0, styleTitle, "Bingo (1-25)")

	board := ui.game.Board()
	for y := 0; y < game.Size; y++ {
		for x := 0; x < game.Size; x++ {
			pos := game.Position{X: x, Y: y}
			number := board.At(x, y)

			style := styleDefault
			switch {
			case ui.game.IsLineCell(pos):
				style = styleLine
			case ui.game.IsMarked(number):
				style = styleMarked
			}
			if pos == ui.cursor && ui.game.CanPlay() {
				style = style.Underline(true).Bold(true)
			}

			ui.drawText(gridLeft+x*cellWidth, gridTop+y*cellHeight, style, fmt.Sprintf(" %2d ", number))
		}
	}

	statusTop := gridTop + game.Size*cellHeight
	lines := ui.game.CompletedLineCount()
	ui.drawText(gridLeft, statusTop, styleDefault, fmt.Sprintf("Progress: %d / %d lines", lines, game.WinningLines))
	ui.drawText(gridLeft, statusTop+1, styleProgress, progressBar(lines))

	if ui.game.IsWon() {
		ui.drawText(gridLeft, statusTop+3, styleWon, "BINGO! You won!")
	}

	help := "arrows/hjkl move  space toggle  n new game  q quit"
	if ui.game.HasDirector() {
		help += "  d director"
	}
	ui.drawText(gridLeft, statusTop+5, styleHelp, help)

	ui.screen.Show()
}

func (ui *UI) drawText(x, y int, style tcell.Style, s string) {
	for i, r := range []rune(s) {
		ui.screen.SetContent(x+i, y, r, nil, style)
	}
}

// progressBar fills a fifth of the bar per completed line, up to full
func progressBar(lines int) string {
	filled := lines * progressWidth / game.WinningLines
	if filled > progressWidth {
		filled = progressWidth
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", progressWidth-filled) + "]"
}
