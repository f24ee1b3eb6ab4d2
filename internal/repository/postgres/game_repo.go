package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iamasit07/connect4-solo/internal/domain"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// GameResult is the ledger row for a finished game
type GameResult struct {
	GameID          string    `json:"gameId"`
	Difficulty      string    `json:"difficulty"`
	Depth           int       `json:"depth"`
	Winner          string    `json:"winner"` // "human", "computer" or "draw"
	Reason          string    `json:"reason"`
	TotalMoves      int       `json:"totalMoves"`
	DurationSeconds int       `json:"durationSeconds"`
	CreatedAt       time.Time `json:"createdAt"`
	FinishedAt      time.Time `json:"finishedAt"`
}

// SaveGame records a finished game. Saving the same game twice overwrites it.
func (r *GameRepo) SaveGame(ctx context.Context, result GameResult, boardState [][]int) error {
	boardJSON, err := json.Marshal(boardState)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}

	query := `
	INSERT INTO game_result (game_id, difficulty, depth, winner, reason, total_moves, duration_seconds, created_at, finished_at, board_state)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (game_id) DO UPDATE SET
		winner = EXCLUDED.winner,
		reason = EXCLUDED.reason,
		total_moves = EXCLUDED.total_moves,
		duration_seconds = EXCLUDED.duration_seconds,
		finished_at = EXCLUDED.finished_at,
		board_state = EXCLUDED.board_state;
	`

	_, err = r.DB.ExecContext(ctx, query, result.GameID, result.Difficulty, result.Depth, result.Winner, result.Reason,
		result.TotalMoves, result.DurationSeconds, result.CreatedAt, result.FinishedAt, boardJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert game result: %w", err)
	}
	return nil
}

const resultColumns = `game_id, difficulty, depth, winner, reason, total_moves, duration_seconds, created_at, finished_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (GameResult, error) {
	var result GameResult
	err := row.Scan(
		&result.GameID,
		&result.Difficulty,
		&result.Depth,
		&result.Winner,
		&result.Reason,
		&result.TotalMoves,
		&result.DurationSeconds,
		&result.CreatedAt,
		&result.FinishedAt,
	)
	return result, err
}

// GetGameByID returns nil, nil when the game is unknown
func (r *GameRepo) GetGameByID(ctx context.Context, gameID string) (*GameResult, error) {
	query := `SELECT ` + resultColumns + ` FROM game_result WHERE game_id = $1;`

	result, err := scanResult(r.DB.QueryRowContext(ctx, query, gameID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}
	return &result, nil
}

// ListRecent returns the latest finished games, newest first
func (r *GameRepo) ListRecent(ctx context.Context, limit int) ([]GameResult, error) {
	query := `SELECT ` + resultColumns + ` FROM game_result ORDER BY finished_at DESC LIMIT $1;`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %w", err)
	}
	defer rows.Close()

	games := []GameResult{}
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game history: %w", err)
	}
	return games, nil
}

// GetGameBoard returns the final board of a game, bottom row first.
// Unknown games and games stored without a board yield an empty board.
func (r *GameRepo) GetGameBoard(ctx context.Context, gameID string) ([][]int, error) {
	query := `SELECT board_state FROM game_result WHERE game_id = $1;`

	var boardJSON []byte
	err := r.DB.QueryRowContext(ctx, query, gameID).Scan(&boardJSON)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && boardJSON == nil) {
		return domain.NewBoard().Cells(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get board state: %w", err)
	}

	var board [][]int
	if err := json.Unmarshal(boardJSON, &board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board state: %w", err)
	}
	return board, nil
}

// Tally counts finished games per winner
func (r *GameRepo) Tally(ctx context.Context) (map[string]int64, error) {
	query := `SELECT winner, COUNT(*) FROM game_result GROUP BY winner;`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to tally results: %w", err)
	}
	defer rows.Close()

	tally := map[string]int64{}
	for rows.Next() {
		var winner string
		var count int64
		if err := rows.Scan(&winner, &count); err != nil {
			return nil, fmt.Errorf("failed to scan tally row: %w", err)
		}
		tally[winner] = count
	}
	return tally, rows.Err()
}
