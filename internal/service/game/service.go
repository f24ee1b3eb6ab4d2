package game

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/repository/postgres"
	"github.com/iamasit07/connect4-solo/internal/service/bot"
	"github.com/iamasit07/connect4-solo/pkg/uid"
)

const (
	ReasonConnectFour = "connect_four"
	ReasonDraw        = "draw"
	ReasonAbandoned   = "abandoned"

	saveTimeout = 10 * time.Second
)

// Notifier delivers server messages to whatever front-end owns the game.
type Notifier interface {
	SendMessage(gameID string, message domain.ServerMessage) error
	RemoveConnection(gameID string)
}

type GameRepository interface {
	SaveGame(ctx context.Context, result postgres.GameResult, boardState [][]int) error
}

type ScoreRecorder interface {
	Record(ctx context.Context, outcome string) error
}

type TicketIssuer interface {
	Generate(gameID string) (string, error)
}

// Settings are the knobs a SessionManager applies to every game it creates.
type Settings struct {
	HardDepth         int
	DefaultDifficulty bot.BotDifficulty
	BotDelay          time.Duration
	FinishedTTL       time.Duration
	IdleTimeout       time.Duration
}

type GameSession struct {
	GameID       string
	Difficulty   bot.BotDifficulty
	Depth        int
	Game         *domain.Game
	Reason       string
	CreatedAt    time.Time
	FinishedAt   time.Time
	LastActivity time.Time
	ticket       string
	abandoned    bool
	mu           sync.Mutex
	manager      *SessionManager
}

// SessionManager manages active game sessions
type SessionManager struct {
	Session  map[string]*GameSession // gameID → GameSession
	mu       sync.RWMutex
	repo     GameRepository
	scores   ScoreRecorder
	tickets  TicketIssuer
	settings Settings
	log      *zap.SugaredLogger
	now      func() time.Time
	saves    sync.WaitGroup
}

// NewSessionManager wires the optional collaborators; repo, scores and
// tickets may each be nil.
func NewSessionManager(repo GameRepository, scores ScoreRecorder, tickets TicketIssuer, settings Settings, log *zap.SugaredLogger) *SessionManager {
	if settings.DefaultDifficulty == "" {
		settings.DefaultDifficulty = bot.DifficultyHard
	}
	return &SessionManager{
		Session:  make(map[string]*GameSession),
		repo:     repo,
		scores:   scores,
		tickets:  tickets,
		settings: settings,
		log:      log.Named("session"),
		now:      time.Now,
	}
}

// CreateSession registers a new game against the computer. Call Start once
// the front-end is ready to receive game_start.
func (sm *SessionManager) CreateSession(difficulty string) (*GameSession, error) {
	level := bot.ParseDifficulty(difficulty, sm.settings.DefaultDifficulty)
	now := sm.now()

	session := &GameSession{
		GameID:       uid.GenerateGameID(),
		Difficulty:   level,
		Depth:        level.Depth(sm.settings.HardDepth),
		Game:         domain.NewGame(),
		CreatedAt:    now,
		LastActivity: now,
		manager:      sm,
	}

	if sm.tickets != nil {
		ticket, err := sm.tickets.Generate(session.GameID)
		if err != nil {
			return nil, fmt.Errorf("failed to issue resume ticket: %w", err)
		}
		session.ticket = ticket
	}

	sm.mu.Lock()
	sm.Session[session.GameID] = session
	sm.mu.Unlock()

	sm.log.Infow("created session", "game_id", session.GameID, "difficulty", level, "depth", session.Depth)
	return session, nil
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.removeSessionLocked(gameID)
}

// removeSessionLocked removes session from maps without acquiring lock (caller must hold it)
func (sm *SessionManager) removeSessionLocked(gameID string) error {
	if _, exists := sm.Session[gameID]; !exists {
		return fmt.Errorf("session not found")
	}

	sm.log.Debugw("removing session", "game_id", gameID)
	delete(sm.Session, gameID)
	return nil
}

// LiveGame is a read-only summary of a game still in progress.
type LiveGame struct {
	GameID     string    `json:"gameId"`
	Difficulty string    `json:"difficulty"`
	Depth      int       `json:"depth"`
	MoveCount  int       `json:"moveCount"`
	StartedAt  time.Time `json:"startedAt"`
}

// sessions copies the registry so each game can be locked without holding
// sm.mu.
func (sm *SessionManager) sessions() []*GameSession {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	out := make([]*GameSession, 0, len(sm.Session))
	for _, session := range sm.Session {
		out = append(out, session)
	}
	return out
}

// ActiveGames lists unfinished games, oldest first.
func (sm *SessionManager) ActiveGames() []LiveGame {
	all := sm.sessions()
	games := make([]LiveGame, 0, len(all))
	for _, session := range all {
		session.mu.Lock()
		if !session.isFinished() {
			games = append(games, LiveGame{
				GameID:     session.GameID,
				Difficulty: string(session.Difficulty),
				Depth:      session.Depth,
				MoveCount:  session.Game.MoveCount,
				StartedAt:  session.CreatedAt,
			})
		}
		session.mu.Unlock()
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].StartedAt.Before(games[j].StartedAt)
	})
	return games
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}

// CleanupOldSessions drops finished games after FinishedTTL and ends idle
// games as abandoned after IdleTimeout. A game busy with a move only delays
// its own check; lookups and new games proceed meanwhile.
func (sm *SessionManager) CleanupOldSessions(conn Notifier) {
	count := 0
	now := sm.now()

	for _, session := range sm.sessions() {
		session.mu.Lock()
		remove := false
		switch {
		case session.isFinished():
			remove = sm.settings.FinishedTTL > 0 && now.Sub(session.FinishedAt) > sm.settings.FinishedTTL
		case sm.settings.IdleTimeout > 0 && now.Sub(session.LastActivity) > sm.settings.IdleTimeout:
			session.abandoned = true
			session.finish(conn, ReasonAbandoned)
			remove = true
		}
		session.mu.Unlock()

		if !remove {
			continue
		}
		conn.RemoveConnection(session.GameID)
		sm.mu.Lock()
		if sm.Session[session.GameID] == session {
			sm.removeSessionLocked(session.GameID)
			count++
		}
		sm.mu.Unlock()
	}

	if count > 0 {
		sm.log.Infow("memory cleanup", "removed", count)
	}
}

// Wait blocks until every pending result save has completed.
func (sm *SessionManager) Wait() {
	sm.saves.Wait()
}

// recordResult saves game data in the background to avoid blocking game_over messages
func (sm *SessionManager) recordResult(result postgres.GameResult, boardState [][]int) {
	if sm.repo == nil && sm.scores == nil {
		return
	}

	sm.saves.Add(1)
	go func() {
		defer sm.saves.Done()
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		if sm.repo != nil {
			if err := sm.repo.SaveGame(ctx, result, boardState); err != nil {
				sm.log.Errorw("error saving game", "game_id", result.GameID, "error", err)
			} else {
				sm.log.Infow("game saved", "game_id", result.GameID, "winner", result.Winner)
			}
		}
		if sm.scores != nil {
			if err := sm.scores.Record(ctx, result.Winner); err != nil {
				sm.log.Warnw("error updating scoreboard", "game_id", result.GameID, "error", err)
			}
		}
	}()
}

// Start sends game_start, including the resume ticket when one was issued.
func (gs *GameSession) Start(conn Notifier) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	msg := gs.startMessage()
	msg.Ticket = gs.ticket
	return conn.SendMessage(gs.GameID, msg)
}

// HandleMove plays the human's column and, if the game goes on, the
// computer's reply. The search runs on this goroutine before returning.
func (gs *GameSession) HandleMove(column int, conn Notifier) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.abandoned {
		return domain.ErrGameOver
	}
	gs.LastActivity = gs.manager.now()

	row, err := gs.Game.MakeMove(domain.PlayerOne, column)
	if err != nil {
		return err
	}
	gs.announceMove(conn, column, row, domain.PlayerOne)

	if gs.Game.IsFinished() {
		gs.finish(conn, gs.finishReason())
		return nil
	}

	if delay := gs.manager.settings.BotDelay; delay > 0 {
		time.Sleep(delay)
	}
	return gs.playComputerMove(conn)
}

func (gs *GameSession) playComputerMove(conn Notifier) error {
	column, err := bot.ChooseComputerMove(gs.Game.Board, gs.Depth)
	if err != nil {
		return fmt.Errorf("computer could not move: %w", err)
	}

	row, err := gs.Game.MakeMove(domain.PlayerTwo, column)
	if err != nil {
		return fmt.Errorf("computer move rejected: %w", err)
	}
	gs.manager.log.Debugw("computer moved", "game_id", gs.GameID, "column", column, "depth", gs.Depth)
	gs.announceMove(conn, column, row, domain.PlayerTwo)

	if gs.Game.IsFinished() {
		gs.finish(conn, gs.finishReason())
	}
	return nil
}

func (gs *GameSession) announceMove(conn Notifier, column, row int, player domain.Piece) {
	conn.SendMessage(gs.GameID, domain.ServerMessage{
		Type:     "move_made",
		Column:   &column,
		Row:      &row,
		Player:   int(player),
		Board:    gs.Game.Board.Cells(),
		NextTurn: int(gs.Game.CurrentPlayer),
	})
}

func (gs *GameSession) finishReason() string {
	if gs.Game.Status == domain.StatusDraw {
		return ReasonDraw
	}
	return ReasonConnectFour
}

// Outcome names the result from the scoreboard's point of view.
func (gs *GameSession) Outcome() string {
	switch {
	case gs.abandoned:
		return domain.PlayerTwo.String()
	case gs.Game.Status == domain.StatusWon:
		return gs.Game.Winner.String()
	case gs.Game.Status == domain.StatusDraw:
		return "draw"
	}
	return ""
}

// finish must be called with gs.mu held.
func (gs *GameSession) finish(conn Notifier, reason string) {
	gs.FinishedAt = gs.manager.now()
	gs.Reason = reason
	outcome := gs.Outcome()

	gs.manager.log.Infow("game over", "game_id", gs.GameID, "winner", outcome, "reason", reason, "moves", gs.Game.MoveCount)

	board := gs.Game.Board.Cells()
	conn.SendMessage(gs.GameID, domain.ServerMessage{
		Type:   "game_over",
		Winner: outcome,
		Reason: reason,
		Board:  board,
	})

	gs.manager.recordResult(postgres.GameResult{
		GameID:          gs.GameID,
		Difficulty:      string(gs.Difficulty),
		Depth:           gs.Depth,
		Winner:          outcome,
		Reason:          reason,
		TotalMoves:      gs.Game.MoveCount,
		DurationSeconds: int(gs.FinishedAt.Sub(gs.CreatedAt).Seconds()),
		CreatedAt:       gs.CreatedAt,
		FinishedAt:      gs.FinishedAt,
	}, board)
}

func (gs *GameSession) IsFinished() bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.isFinished()
}

func (gs *GameSession) isFinished() bool {
	return gs.abandoned || gs.Game.IsFinished()
}

// Snapshot describes the whole game for a client that reattaches.
func (gs *GameSession) Snapshot() domain.ServerMessage {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.LastActivity = gs.manager.now()
	msg := gs.startMessage()
	msg.Type = "game_state"
	msg.Moves = append([]domain.Move(nil), gs.Game.Moves...)
	if gs.isFinished() {
		msg.Winner = gs.Outcome()
		msg.Reason = gs.Reason
	}
	return msg
}

func (gs *GameSession) startMessage() domain.ServerMessage {
	return domain.ServerMessage{
		Type:        "game_start",
		GameID:      gs.GameID,
		Opponent:    gs.Difficulty.Name(),
		Difficulty:  string(gs.Difficulty),
		Depth:       gs.Depth,
		YourPlayer:  int(domain.PlayerOne),
		CurrentTurn: int(gs.Game.CurrentPlayer),
		Board:       gs.Game.Board.Cells(),
	}
}
