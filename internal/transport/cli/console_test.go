package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/logger"
	"github.com/iamasit07/connect4-solo/internal/service/game"
)

func newConsole(input string) (*Console, *bytes.Buffer) {
	sm := game.NewSessionManager(nil, nil, nil, game.Settings{HardDepth: 2}, logger.Nop())
	out := &bytes.Buffer{}
	return NewConsole(sm, strings.NewReader(input), out, logger.Nop()), out
}

func TestPlayRejectsBadInputAndQuits(t *testing.T) {
	console, out := newConsole("x\n9\n0\n4\nq\n")

	if err := console.Play("easy"); err != nil {
		t.Fatal(err)
	}

	text := out.String()
	for _, want := range []string{
		"New game against",
		"search depth 1",
		"Please enter a column from 1 to 7.",
		"You drop into column 4.",
		"Computer drops into column",
		"Goodbye.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if n := strings.Count(text, "Please enter a column"); n != 3 {
		t.Errorf("got %d input errors, want 3", n)
	}
	if console.Sessions.Count() != 0 {
		t.Error("session should be removed when play ends")
	}
}

func TestPlayEndsOnEOF(t *testing.T) {
	console, out := newConsole("1\n")

	if err := console.Play("medium"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out.String(), "Goodbye.\n") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRenderGameOver(t *testing.T) {
	tests := []struct {
		msg  domain.ServerMessage
		want string
	}{
		{domain.ServerMessage{Type: "game_over", Winner: "human", Reason: game.ReasonConnectFour}, "You win!\n"},
		{domain.ServerMessage{Type: "game_over", Winner: "computer", Reason: game.ReasonConnectFour}, "Computer wins!\n"},
		{domain.ServerMessage{Type: "game_over", Winner: "draw", Reason: game.ReasonDraw}, "It's a draw.\n"},
		{domain.ServerMessage{Type: "game_over", Winner: "computer", Reason: game.ReasonAbandoned}, "Game abandoned.\n"},
	}

	for _, tt := range tests {
		console, out := newConsole("")
		console.SendMessage("g", tt.msg)
		if out.String() != tt.want {
			t.Errorf("%+v: got %q, want %q", tt.msg, out.String(), tt.want)
		}
	}
}

func TestRenderMovePrintsBoard(t *testing.T) {
	b := domain.NewBoard()
	_ = b.DropPiece(0, 6, domain.PlayerTwo)
	column, row := 6, 0

	console, out := newConsole("")
	console.SendMessage("g", domain.ServerMessage{Type: "move_made", Column: &column, Row: &row, Player: 2, Board: b.Cells()})

	want := "Computer drops into column 7.\n\n" + b.String() + "\n"
	if out.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", out.String(), want)
	}
}
