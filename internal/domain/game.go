package domain

// Move is a resolved drop.
type Move struct {
	Column int   `json:"column"`
	Row    int   `json:"row"`
	Piece  Piece `json:"player"`
}

type Game struct {
	Board         Board
	CurrentPlayer Piece
	Status        GameStatus
	Winner        Piece
	MoveCount     int
	Moves         []Move
}

// NewGame starts an empty board with the human to move.
func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: PlayerOne,
		Status:        StatusActive,
		Winner:        Empty,
	}
}

func (g *Game) MakeMove(piece Piece, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameOver
	}

	if piece != g.CurrentPlayer {
		return -1, ErrNotYourTurn
	}

	if !g.Board.IsValidColumn(column) {
		return -1, ErrInvalidColumn
	}

	row, err := g.Board.NextOpenRow(column)
	if err != nil {
		return -1, err
	}
	if err := g.Board.DropPiece(row, column, piece); err != nil {
		return -1, err
	}

	g.MoveCount++
	g.Moves = append(g.Moves, Move{Column: column, Row: row, Piece: piece})

	if g.Board.IsWinningMove(piece) {
		g.Status = StatusWon
		g.Winner = piece
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = piece.Opponent()
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
