package bot

import (
	"github.com/iamasit07/connect4-solo/internal/domain"
)

const (
	SCORE_CENTER      = 3   // per piece in the center column
	SCORE_FOUR        = 100 // four of ours in a window
	SCORE_THREE_OPEN  = 5   // three of ours and one empty
	SCORE_TWO_OPEN    = 2   // two of ours and two empty
	SCORE_BLOCK_THREE = -4  // three of theirs and one empty
)

// Score is the static evaluation of board from piece's point of view.
func Score(board domain.Board, piece domain.Piece) int {
	score := 0

	// Center column preference
	centerCol := domain.Columns / 2
	for row := 0; row < domain.Rows; row++ {
		if board[row][centerCol] == piece {
			score += SCORE_CENTER
		}
	}

	var window [domain.ToWin]domain.Piece

	// horizontal
	for r := 0; r < domain.Rows; r++ {
		for c := 0; c <= domain.Columns-domain.ToWin; c++ {
			for i := range window {
				window[i] = board[r][c+i]
			}
			score += evaluateWindow(window, piece)
		}
	}

	// vertical
	for c := 0; c < domain.Columns; c++ {
		for r := 0; r <= domain.Rows-domain.ToWin; r++ {
			for i := range window {
				window[i] = board[r+i][c]
			}
			score += evaluateWindow(window, piece)
		}
	}

	// diagonal /
	for r := 0; r <= domain.Rows-domain.ToWin; r++ {
		for c := 0; c <= domain.Columns-domain.ToWin; c++ {
			for i := range window {
				window[i] = board[r+i][c+i]
			}
			score += evaluateWindow(window, piece)
		}
	}

	// diagonal \
	for r := 0; r <= domain.Rows-domain.ToWin; r++ {
		for c := 0; c <= domain.Columns-domain.ToWin; c++ {
			for i := range window {
				window[i] = board[r+domain.ToWin-1-i][c+i]
			}
			score += evaluateWindow(window, piece)
		}
	}

	return score
}

// evaluateWindow scores a single run of four cells
func evaluateWindow(window [domain.ToWin]domain.Piece, piece domain.Piece) int {
	opponent := piece.Opponent()
	mine, theirs, empty := 0, 0, 0
	for _, cell := range window {
		switch cell {
		case piece:
			mine++
		case opponent:
			theirs++
		default:
			empty++
		}
	}

	score := 0
	switch {
	case mine == 4:
		score += SCORE_FOUR
	case mine == 3 && empty == 1:
		score += SCORE_THREE_OPEN
	case mine == 2 && empty == 2:
		score += SCORE_TWO_OPEN
	}

	if theirs == 3 && empty == 1 {
		score += SCORE_BLOCK_THREE
	}

	return score
}
