package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/service/game"
)

// Console plays one game in a terminal. It is the game's Notifier: every
// server message is rendered as text instead of JSON.
type Console struct {
	Sessions *game.SessionManager
	in       *bufio.Scanner
	out      io.Writer
	log      *zap.SugaredLogger
}

func NewConsole(sm *game.SessionManager, in io.Reader, out io.Writer, log *zap.SugaredLogger) *Console {
	return &Console{
		Sessions: sm,
		in:       bufio.NewScanner(in),
		out:      out,
		log:      log.Named("cli"),
	}
}

// Play runs a game until someone wins, the board fills, the player types q
// or input ends.
func (c *Console) Play(difficulty string) error {
	session, err := c.Sessions.CreateSession(difficulty)
	if err != nil {
		return err
	}
	defer c.Sessions.RemoveSession(session.GameID)

	if err := session.Start(c); err != nil {
		return err
	}

	for !session.IsFinished() {
		fmt.Fprintf(c.out, "Your move (1-%d, q to quit): ", domain.Columns)
		if !c.in.Scan() {
			fmt.Fprintln(c.out, "\nGoodbye.")
			return c.in.Err()
		}

		line := strings.TrimSpace(c.in.Text())
		if line == "q" || line == "quit" {
			fmt.Fprintln(c.out, "Goodbye.")
			return nil
		}

		column, err := strconv.Atoi(line)
		if err != nil || column < 1 || column > domain.Columns {
			fmt.Fprintf(c.out, "Please enter a column from 1 to %d.\n", domain.Columns)
			continue
		}

		err = session.HandleMove(column-1, c)
		switch {
		case errors.Is(err, domain.ErrInvalidColumn):
			fmt.Fprintf(c.out, "Column %d is full, pick another.\n", column)
		case err != nil:
			return err
		}
	}
	return nil
}

func (c *Console) SendMessage(gameID string, msg domain.ServerMessage) error {
	switch msg.Type {
	case "game_start":
		fmt.Fprintf(c.out, "New game against %s (search depth %d). You are X, the computer is O.\n\n", msg.Opponent, msg.Depth)
		c.renderBoard(msg.Board)
	case "move_made":
		if msg.Column == nil {
			return nil
		}
		who := "You drop"
		if msg.Player == int(domain.PlayerTwo) {
			who = "Computer drops"
		}
		fmt.Fprintf(c.out, "%s into column %d.\n\n", who, *msg.Column+1)
		c.renderBoard(msg.Board)
	case "game_over":
		switch {
		case msg.Reason == game.ReasonAbandoned:
			fmt.Fprintln(c.out, "Game abandoned.")
		case msg.Winner == domain.PlayerOne.String():
			fmt.Fprintln(c.out, "You win!")
		case msg.Winner == domain.PlayerTwo.String():
			fmt.Fprintln(c.out, "Computer wins!")
		default:
			fmt.Fprintln(c.out, "It's a draw.")
		}
	case "error":
		fmt.Fprintln(c.out, msg.Message)
	}
	return nil
}

func (c *Console) RemoveConnection(gameID string) {}

func (c *Console) renderBoard(cells [][]int) {
	board, err := domain.BoardFromCells(cells)
	if err != nil {
		c.log.Errorw("cannot render board", "error", err)
		return
	}
	fmt.Fprintln(c.out, board.String())
}
