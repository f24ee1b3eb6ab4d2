package domain

var BotNames = map[string]string{
	"easy":   "Alice",
	"medium": "Bob",
	"hard":   "Charles",
}

func GetBotName(difficulty string) string {
	if name, ok := BotNames[difficulty]; ok {
		return name
	}
	return "BOT"
}

// Piece is the content of a single cell.
type Piece int

const (
	Empty     Piece = 0
	PlayerOne Piece = 1 // human
	PlayerTwo Piece = 2 // computer
)

// Opponent returns the other player's piece. Empty has no opponent.
func (p Piece) Opponent() Piece {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	}
	return Empty
}

func (p Piece) String() string {
	switch p {
	case PlayerOne:
		return "human"
	case PlayerTwo:
		return "computer"
	}
	return "empty"
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn Error = "invalid column"
	ErrColumnFull    Error = "column is full"
	ErrNoLegalMoves  Error = "no legal moves"
	ErrGameOver      Error = "game is already over"
	ErrNotYourTurn   Error = "not your turn"
	ErrInvalidDepth  Error = "search depth must be at least 1"
)
