package gui

import (
	"fmt"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"github.com/gammazero/deque"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/they4kman/gobingo/game"
	"github.com/they4kman/gobingo/gui/geometry"
)

var layout = geometry.Default()

type Config struct {
	// Interval between director steps, when auto-playing; zero disables
	AutoInterval time.Duration

	// Total time a flash over a toggled cell is displayed
	FlashDuration time.Duration
	// Transparency of a flash when first displayed
	FlashBaseAlpha float64
}

func NewConfig() Config {
	return Config{
		FlashDuration:  300 * time.Millisecond,
		FlashBaseAlpha: 0.5,
	}
}

// flash highlights a cell briefly after it was toggled
type flash struct {
	pos        game.Position
	marked     bool
	firstShown time.Time
}

// Flasher records toggles for the window to animate. Pass Record as the
// game's OnToggle hook.
type Flasher struct {
	flashes *deque.Deque[flash]
}

func NewFlasher() *Flasher {
	return &Flasher{flashes: deque.New[flash]()}
}

func (flasher *Flasher) Record(g *game.Game, number int, marked bool) {
	pos, ok := g.Board().Position(number)
	if !ok {
		return
	}
	flasher.flashes.PushBack(flash{pos: pos, marked: marked, firstShown: time.Now()})
}

// Run opens the window and plays until it is closed. It must be called from
// within pixelgl.Run.
func Run(config Config, g *game.Game, flasher *Flasher) error {
	bounds := layout.WindowBounds()
	cfg := pixelgl.WindowConfig{
		Title:  "gobingo",
		Bounds: bounds,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return err
	}
	defer win.Destroy()

	basicAtlas := text.NewAtlas(basicfont.Face7x13, text.ASCII)
	topLeft := bounds.Vertices()[1]

	statusText := text.New(topLeft.Add(pixel.V(layout.Margin, -30)), basicAtlas)
	helpText := text.New(pixel.V(layout.Margin, 12), basicAtlas)
	helpText.Color = colornames.Dimgray
	fmt.Fprint(helpText, "Click: toggle  Enter: new game")
	if g.HasDirector() {
		fmt.Fprint(helpText, "  Space: director")
	}

	var (
		frames      = 0
		second      = time.Tick(time.Second)
		lastAutoAct = time.Now()
	)

	bgColor := colornames.Gainsboro
	for !win.Closed() {
		win.Update()
		win.Clear(bgColor)

		frames++
		select {
		case <-second:
			win.SetTitle(fmt.Sprintf("%s | FPS: %d", cfg.Title, frames))
			frames = 0
		default:
		}

		statusText.Clear()
		statusText.Color = colornames.Black
		fmt.Fprintf(statusText, "%d / %d lines", g.CompletedLineCount(), game.WinningLines)
		if g.IsWon() {
			statusText.Color = colornames.Green
			fmt.Fprint(statusText, "   BINGO! You won!")
		}
		statusText.Draw(win, pixel.IM)
		helpText.Draw(win, pixel.IM)

		imd := imdraw.New(nil)
		drawCells(imd, g)
		drawProgress(imd, g.CompletedLineCount())
		if flasher != nil {
			drawFlashes(imd, config, flasher.flashes)
		}
		imd.Draw(win)
		drawNumbers(win, g, basicAtlas)

		// Start a new game with Enter or N
		if win.JustPressed(pixelgl.KeyEnter) || win.JustPressed(pixelgl.KeyN) {
			g.Regenerate()
			continue
		}

		if !g.CanPlay() {
			continue
		}

		// Perform single director step with Space
		if win.JustPressed(pixelgl.KeySpace) || win.Repeated(pixelgl.KeySpace) {
			g.RequestDirectorAct()
		}
		if config.AutoInterval > 0 && time.Since(lastAutoAct) >= config.AutoInterval {
			g.RequestDirectorAct()
			lastAutoAct = time.Now()
		}

		if win.JustPressed(pixelgl.MouseButtonLeft) && win.MouseInsideWindow() {
			if pos, ok := layout.ScreenToGridCoords(win.MousePosition()); ok {
				g.Toggle(g.Board().At(pos.X, pos.Y))
			}
		}
	}

	return nil
}

func drawCells(imd *imdraw.IMDraw, g *game.Game) {
	board := g.Board()
	for y := 0; y < game.Size; y++ {
		for x := 0; x < game.Size; x++ {
			pos := game.Position{X: x, Y: y}
			rect := layout.CellRect(pos)

			switch {
			case g.IsLineCell(pos):
				imd.Color = colornames.Seagreen
			case g.IsMarked(board.At(x, y)):
				imd.Color = colornames.Steelblue
			default:
				imd.Color = colornames.White
			}
			imd.Push(rect.Min, rect.Max)
			imd.Rectangle(0) // 0 = filled

			imd.Color = colornames.Darkgray
			imd.Push(rect.Min, rect.Max)
			imd.Rectangle(1)
		}
	}
}

func drawNumbers(win *pixelgl.Window, g *game.Game, atlas *text.Atlas) {
	board := g.Board()
	for y := 0; y < game.Size; y++ {
		for x := 0; x < game.Size; x++ {
			number := board.At(x, y)
			center := layout.CellRect(game.Position{X: x, Y: y}).Center()

			label := text.New(center, atlas)
			label.Color = colornames.Black
			if g.IsMarked(number) {
				label.Color = colornames.White
			}
			s := fmt.Sprint(number)
			label.Dot.X -= label.BoundsOf(s).W() / 2
			label.Dot.Y -= atlas.Ascent() / 2
			fmt.Fprint(label, s)
			label.Draw(win, pixel.IM.Scaled(center, 2))
		}
	}
}

func drawProgress(imd *imdraw.IMDraw, lines int) {
	bar := layout.ProgressRect()

	imd.Color = colornames.Lightgray
	imd.Push(bar.Min, bar.Max)
	imd.Rectangle(0)

	fraction := float64(lines) / float64(game.WinningLines)
	if fraction > 1 {
		fraction = 1
	}
	if fraction > 0 {
		imd.Color = colornames.Seagreen
		imd.Push(bar.Min, pixel.V(bar.Min.X+bar.W()*fraction, bar.Max.Y))
		imd.Rectangle(0)
	}
}

// drawFlashes fades out recently toggled cells, dropping the expired ones
func drawFlashes(imd *imdraw.IMDraw, config Config, flashes *deque.Deque[flash]) {
	now := time.Now()
	for flashes.Len() > 0 && now.Sub(flashes.Front().firstShown) > config.FlashDuration {
		flashes.PopFront()
	}

	for i := 0; i < flashes.Len(); i++ {
		f := flashes.At(i)

		baseColor := pixel.RGB(1, 1, 0)
		if !f.marked {
			baseColor = pixel.RGB(1, 0, 0)
		}

		progress := 1 - float64(now.Sub(f.firstShown))/float64(config.FlashDuration)
		alpha := config.FlashBaseAlpha * geometry.InOutCubic(progress)

		rect := layout.CellRect(f.pos)
		imd.Color = baseColor.Mul(pixel.Alpha(alpha))
		imd.Push(rect.Min, rect.Max)
		imd.Rectangle(0)
	}
}
