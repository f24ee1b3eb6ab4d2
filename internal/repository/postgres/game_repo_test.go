package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*GameRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return NewGameRepo(db), mock
}

var resultRowColumns = []string{
	"game_id", "difficulty", "depth", "winner", "reason",
	"total_moves", "duration_seconds", "created_at", "finished_at",
}

func TestSaveGame(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	finished := created.Add(90 * time.Second)

	mock.ExpectExec("INSERT INTO game_result").
		WithArgs("g1", "hard", 4, "computer", "connect_four", 11, 90, created, finished, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveGame(context.Background(), GameResult{
		GameID:          "g1",
		Difficulty:      "hard",
		Depth:           4,
		Winner:          "computer",
		Reason:          "connect_four",
		TotalMoves:      11,
		DurationSeconds: 90,
		CreatedAt:       created,
		FinishedAt:      finished,
	}, [][]int{{1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetGameByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM game_result WHERE game_id").
		WithArgs("g1").
		WillReturnRows(sqlmock.NewRows(resultRowColumns).
			AddRow("g1", "easy", 1, "human", "connect_four", 7, 12, now, now))

	got, err := repo.GetGameByID(context.Background(), "g1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Winner != "human" || got.Depth != 1 || got.TotalMoves != 7 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestGetGameByIDMissing(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM game_result WHERE game_id").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(resultRowColumns))

	got, err := repo.GetGameByID(context.Background(), "nope")
	if err != nil || got != nil {
		t.Fatalf("got (%v, %v), want (nil, nil)", got, err)
	}
}

func TestListRecent(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM game_result ORDER BY finished_at DESC LIMIT").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(resultRowColumns).
			AddRow("g2", "hard", 4, "draw", "draw", 42, 300, now, now).
			AddRow("g1", "hard", 4, "computer", "connect_four", 15, 80, now, now))

	games, err := repo.ListRecent(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 2 || games[0].GameID != "g2" || games[1].Winner != "computer" {
		t.Fatalf("unexpected games %+v", games)
	}
}

func TestGetGameBoard(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT board_state FROM game_result").
		WithArgs("g1").
		WillReturnRows(sqlmock.NewRows([]string{"board_state"}).AddRow([]byte(`[[1,2,0],[0,0,0]]`)))

	board, err := repo.GetGameBoard(context.Background(), "g1")
	if err != nil {
		t.Fatal(err)
	}
	if len(board) != 2 || board[0][1] != 2 {
		t.Fatalf("unexpected board %v", board)
	}
}

func TestGetGameBoardMissingIsEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT board_state FROM game_result").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"board_state"}))

	board, err := repo.GetGameBoard(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if len(board) != 6 || len(board[0]) != 7 {
		t.Fatalf("expected an empty 6x7 board, got %v", board)
	}
}

func TestTally(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT winner, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"winner", "count"}).
			AddRow("computer", int64(5)).
			AddRow("draw", int64(1)))

	tally, err := repo.Tally(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if tally["computer"] != 5 || tally["draw"] != 1 || tally["human"] != 0 {
		t.Fatalf("unexpected tally %v", tally)
	}
}

func TestRunMigrations(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS game_result").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := RunMigrations(repo.DB); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
