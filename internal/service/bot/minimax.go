package bot

import (
	"math"

	"github.com/iamasit07/connect4-solo/internal/domain"
)

const (
	MINIMAX_DEPTH = 4

	// NoColumn is reported for leaves, which have no move to make.
	NoColumn = -1
)

// Search values are int64: the win sentinel does not fit a 32-bit int.
const (
	MINIMAX_WIN  int64 = 100000000000000 // computer has four
	MINIMAX_LOSS int64 = -10000000000000 // human has four
	MINIMAX_DRAW int64 = 0
)

// Result is the outcome of a root search.
type Result struct {
	Column int
	Value  int64
	Nodes  int // positions visited, root included
}

// ChooseComputerMove picks the column for the computer (PlayerTwo).
func ChooseComputerMove(board domain.Board, depth int) (int, error) {
	res, err := Search(board, depth)
	if err != nil {
		return NoColumn, err
	}
	return res.Column, nil
}

// Search runs minimax with alpha-beta pruning from the computer's side
// with a full window.
func Search(board domain.Board, depth int) (Result, error) {
	if depth < 1 {
		return Result{Column: NoColumn}, domain.ErrInvalidDepth
	}
	if board.IsFull() {
		return Result{Column: NoColumn}, domain.ErrNoLegalMoves
	}
	if board.IsTerminal() {
		return Result{Column: NoColumn}, domain.ErrGameOver
	}

	var s searcher
	col, value := s.minimax(board, depth, math.MinInt64, math.MaxInt64, true)
	return Result{Column: col, Value: value, Nodes: s.nodes}, nil
}

// Minimax evaluates board to the given depth and returns the best column
// for the side to move and its value. Leaves return NoColumn.
func Minimax(board domain.Board, depth int, alpha, beta int64, maximizing bool) (int, int64) {
	var s searcher
	return s.minimax(board, depth, alpha, beta, maximizing)
}

type searcher struct {
	nodes int
}

func (s *searcher) minimax(board domain.Board, depth int, alpha, beta int64, maximizing bool) (int, int64) {
	s.nodes++

	validColumns := board.ValidMoves()

	// Terminal conditions
	if board.IsTerminal() {
		switch {
		case board.IsWinningMove(domain.PlayerTwo):
			return NoColumn, MINIMAX_WIN
		case board.IsWinningMove(domain.PlayerOne):
			return NoColumn, MINIMAX_LOSS
		default:
			return NoColumn, MINIMAX_DRAW
		}
	}
	if depth <= 0 {
		return NoColumn, int64(Score(board, domain.PlayerTwo))
	}

	if maximizing {
		maxEval := int64(math.MinInt64)
		bestCol := validColumns[0]
		for _, col := range validColumns {
			testBoard, _, err := board.SimulateMove(col, domain.PlayerTwo)
			if err != nil {
				continue
			}

			_, eval := s.minimax(testBoard, depth-1, alpha, beta, false)
			if eval > maxEval {
				maxEval = eval
				bestCol = col
			}
			alpha = max(alpha, maxEval)

			if alpha >= beta {
				break // Beta cutoff
			}
		}
		return bestCol, maxEval
	}

	minEval := int64(math.MaxInt64)
	bestCol := validColumns[0]
	for _, col := range validColumns {
		testBoard, _, err := board.SimulateMove(col, domain.PlayerOne)
		if err != nil {
			continue
		}

		_, eval := s.minimax(testBoard, depth-1, alpha, beta, true)
		if eval < minEval {
			minEval = eval
			bestCol = col
		}
		beta = min(beta, minEval)

		if alpha >= beta {
			break // Alpha cutoff
		}
	}
	return bestCol, minEval
}
