package domain

import (
	"errors"
	"testing"
)

func TestNewBoardIsEmpty(t *testing.T) {
	b := NewBoard()
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if b[r][c] != Empty {
				t.Fatalf("cell (%d,%d) = %v, want empty", r, c, b[r][c])
			}
		}
	}
	if got := b.ValidMoves(); len(got) != Columns {
		t.Fatalf("expected %d valid moves on an empty board, got %v", Columns, got)
	}
}

func TestIsValidColumnBounds(t *testing.T) {
	b := NewBoard()
	for _, col := range []int{-1, Columns, Columns + 5} {
		if b.IsValidColumn(col) {
			t.Errorf("column %d should be invalid", col)
		}
	}
	for col := 0; col < Columns; col++ {
		if !b.IsValidColumn(col) {
			t.Errorf("column %d should be valid on an empty board", col)
		}
	}
}

func TestNextOpenRowStacksFromBottom(t *testing.T) {
	b := NewBoard()
	for want := 0; want < Rows; want++ {
		row, err := b.NextOpenRow(2)
		if err != nil {
			t.Fatalf("unexpected error at height %d: %v", want, err)
		}
		if row != want {
			t.Fatalf("NextOpenRow = %d, want %d", row, want)
		}
		if err := b.DropPiece(row, 2, PlayerOne); err != nil {
			t.Fatalf("DropPiece: %v", err)
		}
	}
}

func TestDroppingLastRowInvalidatesColumn(t *testing.T) {
	b := NewBoard()
	for i := 0; i < Rows; i++ {
		if !b.IsValidColumn(4) {
			t.Fatalf("column became invalid after only %d pieces", i)
		}
		row, err := b.NextOpenRow(4)
		if err != nil {
			t.Fatal(err)
		}
		piece := PlayerOne
		if i%2 == 1 {
			piece = PlayerTwo
		}
		if err := b.DropPiece(row, 4, piece); err != nil {
			t.Fatal(err)
		}
	}
	if b.IsValidColumn(4) {
		t.Fatal("full column still reported valid")
	}
	if _, err := b.NextOpenRow(4); !errors.Is(err, ErrColumnFull) {
		t.Fatalf("NextOpenRow on full column: got %v, want %v", err, ErrColumnFull)
	}
	for _, col := range b.ValidMoves() {
		if col == 4 {
			t.Fatal("full column listed in ValidMoves")
		}
	}
}

func TestDropPieceRejectsBadTargets(t *testing.T) {
	b := NewBoard()
	if err := b.DropPiece(0, Columns, PlayerOne); !errors.Is(err, ErrInvalidColumn) {
		t.Errorf("out of range column: got %v", err)
	}
	if err := b.DropPiece(Rows, 0, PlayerOne); !errors.Is(err, ErrInvalidColumn) {
		t.Errorf("out of range row: got %v", err)
	}
	if err := b.DropPiece(0, 0, PlayerOne); err != nil {
		t.Fatal(err)
	}
	if err := b.DropPiece(0, 0, PlayerTwo); !errors.Is(err, ErrInvalidColumn) {
		t.Errorf("occupied cell: got %v", err)
	}
	if b[0][0] != PlayerOne {
		t.Errorf("occupied cell was overwritten: %v", b[0][0])
	}
	if _, err := b.NextOpenRow(-1); !errors.Is(err, ErrInvalidColumn) {
		t.Errorf("NextOpenRow(-1): got %v", err)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	b := NewBoard()
	_ = b.DropPiece(0, 3, PlayerOne)

	c := b.Copy()
	_ = c.DropPiece(1, 3, PlayerTwo)

	if b[1][3] != Empty {
		t.Fatal("mutating the copy changed the original")
	}
	if c[0][3] != PlayerOne || c[1][3] != PlayerTwo {
		t.Fatal("copy lost its contents")
	}
}

func TestSimulateMoveLeavesBoardUntouched(t *testing.T) {
	b := NewBoard()
	next, row, err := b.SimulateMove(5, PlayerTwo)
	if err != nil {
		t.Fatal(err)
	}
	if row != 0 || next[0][5] != PlayerTwo {
		t.Fatalf("simulated drop landed at row %d: %v", row, next[0][5])
	}
	if b[0][5] != Empty {
		t.Fatal("SimulateMove mutated the source board")
	}
}

func TestStringPrintsTopRowFirst(t *testing.T) {
	b := NewBoard()
	_ = b.DropPiece(0, 0, PlayerOne)
	_ = b.DropPiece(0, 6, PlayerTwo)

	want := "" +
		". . . . . . .\n" +
		". . . . . . .\n" +
		". . . . . . .\n" +
		". . . . . . .\n" +
		". . . . . . .\n" +
		"X . . . . . O\n" +
		"1 2 3 4 5 6 7\n"
	if got := b.String(); got != want {
		t.Fatalf("unexpected rendering:\n%s\nwant:\n%s", got, want)
	}
}

func TestCellsKeepsBottomRowFirst(t *testing.T) {
	b := NewBoard()
	_ = b.DropPiece(0, 1, PlayerTwo)
	cells := b.Cells()
	if len(cells) != Rows || len(cells[0]) != Columns {
		t.Fatalf("unexpected shape %dx%d", len(cells), len(cells[0]))
	}
	if cells[0][1] != int(PlayerTwo) {
		t.Fatalf("cells[0][1] = %d", cells[0][1])
	}
}

func TestBoardFromCells(t *testing.T) {
	b := NewBoard()
	_ = b.DropPiece(0, 3, PlayerOne)
	_ = b.DropPiece(1, 3, PlayerTwo)

	back, err := BoardFromCells(b.Cells())
	if err != nil {
		t.Fatal(err)
	}
	if back != b {
		t.Fatalf("round trip changed the board:\n%s", back)
	}

	bad := b.Cells()
	bad[2][0] = 7
	if _, err := BoardFromCells(bad); err == nil {
		t.Fatal("expected error for unknown piece")
	}
	if _, err := BoardFromCells(bad[:3]); err == nil {
		t.Fatal("expected error for short board")
	}
}
