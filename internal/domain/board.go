package domain

import (
	"fmt"
	"strings"
)

// Board is the grid of cells, indexed [row][column] with row 0 at the bottom.
// It is a value type: assigning or passing a Board copies every cell.
type Board [Rows][Columns]Piece

func NewBoard() Board {
	return Board{}
}

// IsValidColumn reports whether a piece can still be dropped into column.
func (b Board) IsValidColumn(column int) bool {
	if column < 0 || column >= Columns {
		return false
	}
	return b[Rows-1][column] == Empty
}

// NextOpenRow returns the lowest empty row of column.
func (b Board) NextOpenRow(column int) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrInvalidColumn
	}
	for row := 0; row < Rows; row++ {
		if b[row][column] == Empty {
			return row, nil
		}
	}
	return -1, ErrColumnFull
}

// DropPiece places piece at (row, column). Callers resolve the row with
// NextOpenRow first; only bounds and occupancy are checked here.
func (b *Board) DropPiece(row, column int, piece Piece) error {
	if row < 0 || row >= Rows || column < 0 || column >= Columns {
		return ErrInvalidColumn
	}
	if b[row][column] != Empty {
		return ErrInvalidColumn
	}
	b[row][column] = piece
	return nil
}

// Copy returns an independent copy of the board.
func (b Board) Copy() Board {
	return b
}

// this will simulate a move and give the result to the caller
func (b Board) SimulateMove(column int, piece Piece) (Board, int, error) {
	if !b.IsValidColumn(column) {
		return b, -1, ErrInvalidColumn
	}
	next := b.Copy()
	row, err := next.NextOpenRow(column)
	if err != nil {
		return b, -1, err
	}
	if err := next.DropPiece(row, column, piece); err != nil {
		return b, -1, err
	}
	return next, row, nil
}

// Cells converts the board to plain ints for JSON, row 0 first (bottom).
func (b Board) Cells() [][]int {
	cells := make([][]int, Rows)
	for r := range b {
		cells[r] = make([]int, Columns)
		for c := range b[r] {
			cells[r][c] = int(b[r][c])
		}
	}
	return cells
}

// BoardFromCells is the inverse of Cells.
func BoardFromCells(cells [][]int) (Board, error) {
	var b Board
	if len(cells) != Rows {
		return b, fmt.Errorf("board has %d rows, want %d", len(cells), Rows)
	}
	for r, row := range cells {
		if len(row) != Columns {
			return b, fmt.Errorf("row %d has %d columns, want %d", r, len(row), Columns)
		}
		for c, v := range row {
			p := Piece(v)
			if p != Empty && p != PlayerOne && p != PlayerTwo {
				return b, fmt.Errorf("cell (%d,%d) holds unknown piece %d", r, c, v)
			}
			b[r][c] = p
		}
	}
	return b, nil
}

// String renders the board with the top row first.
func (b Board) String() string {
	var sb strings.Builder
	for r := Rows - 1; r >= 0; r-- {
		for c := 0; c < Columns; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			switch b[r][c] {
			case PlayerOne:
				sb.WriteByte('X')
			case PlayerTwo:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	for c := 0; c < Columns; c++ {
		if c > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte('1' + c))
	}
	sb.WriteByte('\n')
	return sb.String()
}
