package domain

// IsWinningMove reports whether piece has four in a row anywhere on the board.
// All four orientations are scanned: horizontal, vertical, then both diagonals.
func (b Board) IsWinningMove(piece Piece) bool {
	// horizontal
	for c := 0; c <= Columns-ToWin; c++ {
		for r := 0; r < Rows; r++ {
			if b[r][c] == piece && b[r][c+1] == piece && b[r][c+2] == piece && b[r][c+3] == piece {
				return true
			}
		}
	}

	// vertical
	for c := 0; c < Columns; c++ {
		for r := 0; r <= Rows-ToWin; r++ {
			if b[r][c] == piece && b[r+1][c] == piece && b[r+2][c] == piece && b[r+3][c] == piece {
				return true
			}
		}
	}

	// diagonal /
	for c := 0; c <= Columns-ToWin; c++ {
		for r := 0; r <= Rows-ToWin; r++ {
			if b[r][c] == piece && b[r+1][c+1] == piece && b[r+2][c+2] == piece && b[r+3][c+3] == piece {
				return true
			}
		}
	}

	// diagonal \ (starts high, goes down to the right)
	for c := 0; c <= Columns-ToWin; c++ {
		for r := ToWin - 1; r < Rows; r++ {
			if b[r][c] == piece && b[r-1][c+1] == piece && b[r-2][c+2] == piece && b[r-3][c+3] == piece {
				return true
			}
		}
	}

	return false
}

// ValidMoves lists the playable columns from left to right.
func (b Board) ValidMoves() []int {
	moves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.IsValidColumn(col) {
			moves = append(moves, col)
		}
	}
	return moves
}

// IsFull reports whether every column is filled to the top.
func (b Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b[Rows-1][c] == Empty {
			return false
		}
	}
	return true
}

// IsTerminal reports a win for either player or a full board.
func (b Board) IsTerminal() bool {
	return b.IsWinningMove(PlayerOne) || b.IsWinningMove(PlayerTwo) || b.IsFull()
}
