package domain

import (
	"errors"
	"testing"
)

func TestNewGameHumanMovesFirst(t *testing.T) {
	g := NewGame()
	if g.CurrentPlayer != PlayerOne || g.Status != StatusActive || g.IsFinished() {
		t.Fatalf("unexpected initial state: %+v", g)
	}
}

func TestMakeMoveAlternatesTurns(t *testing.T) {
	g := NewGame()
	row, err := g.MakeMove(PlayerOne, 3)
	if err != nil || row != 0 {
		t.Fatalf("MakeMove = (%d, %v)", row, err)
	}
	if g.CurrentPlayer != PlayerTwo {
		t.Fatalf("turn did not pass, current = %v", g.CurrentPlayer)
	}
	if _, err := g.MakeMove(PlayerOne, 3); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("out of turn move: got %v", err)
	}
	row, err = g.MakeMove(PlayerTwo, 3)
	if err != nil || row != 1 {
		t.Fatalf("MakeMove = (%d, %v)", row, err)
	}
	if g.MoveCount != 2 || len(g.Moves) != 2 {
		t.Fatalf("move bookkeeping off: count=%d moves=%v", g.MoveCount, g.Moves)
	}
	if g.Moves[1] != (Move{Column: 3, Row: 1, Piece: PlayerTwo}) {
		t.Fatalf("unexpected move record %+v", g.Moves[1])
	}
}

func TestMakeMoveRejectsInvalidColumn(t *testing.T) {
	g := NewGame()
	if _, err := g.MakeMove(PlayerOne, 7); !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("got %v", err)
	}
	if g.CurrentPlayer != PlayerOne || g.MoveCount != 0 {
		t.Fatal("rejected move changed the game")
	}
}

func TestMakeMoveDetectsWin(t *testing.T) {
	g := NewGame()
	for i := 0; i < 3; i++ {
		if _, err := g.MakeMove(PlayerOne, 0); err != nil {
			t.Fatal(err)
		}
		if _, err := g.MakeMove(PlayerTwo, 1); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := g.MakeMove(PlayerOne, 0); err != nil {
		t.Fatal(err)
	}
	if g.Status != StatusWon || g.Winner != PlayerOne {
		t.Fatalf("expected human win, got %v / %v", g.Status, g.Winner)
	}
	if _, err := g.MakeMove(PlayerTwo, 1); !errors.Is(err, ErrGameOver) {
		t.Fatalf("move after win: got %v", err)
	}
}

func TestMakeMoveDetectsDraw(t *testing.T) {
	g := NewGame()
	g.Board = drawBoard()
	// open the top of column 0 and let the human fill it
	g.Board[Rows-1][0] = Empty
	if _, err := g.MakeMove(PlayerOne, 0); err != nil {
		t.Fatal(err)
	}
	if g.Status != StatusDraw || g.Winner != Empty {
		t.Fatalf("expected draw, got %v / %v", g.Status, g.Winner)
	}
}
