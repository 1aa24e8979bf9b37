package game

const (
	// Size is the number of cells along each side of the board
	Size = 5
	// NumCells is also the highest number placed on the board
	NumCells = Size * Size

	// WinningLines is the number of completed lines which wins the game
	WinningLines = 5
)

type GameState int

const (
	Ongoing GameState = iota
	Won
)

func (state GameState) String() string {
	switch state {
	case Ongoing:
		return "ongoing"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

type LineKind int

const (
	Row LineKind = iota
	Column
	Diagonal
	AntiDiagonal
)

var lineKindNames = map[LineKind]string{
	Row:          "row",
	Column:       "column",
	Diagonal:     "diagonal",
	AntiDiagonal: "anti-diagonal",
}

func (kind LineKind) String() string {
	if name, ok := lineKindNames[kind]; ok {
		return name
	}
	return "unknown"
}
