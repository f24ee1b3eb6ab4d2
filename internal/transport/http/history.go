package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-solo/internal/repository/postgres"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type HistoryStore interface {
	ListRecent(ctx context.Context, limit int) ([]postgres.GameResult, error)
	GetGameByID(ctx context.Context, gameID string) (*postgres.GameResult, error)
	GetGameBoard(ctx context.Context, gameID string) ([][]int, error)
}

// HistoryHandler serves the results ledger. Store is nil when the server
// runs without PostgreSQL.
type HistoryHandler struct {
	Store HistoryStore
	log   *zap.SugaredLogger
}

func NewHistoryHandler(store HistoryStore, log *zap.SugaredLogger) *HistoryHandler {
	return &HistoryHandler{Store: store, log: log.Named("history")}
}

func (h *HistoryHandler) GetHistory(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "History is not enabled"})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	history, err := h.Store.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.log.Errorw("failed to fetch history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, history)
}

func (h *HistoryHandler) GetGameDetails(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "History is not enabled"})
		return
	}

	gameID := c.Param("id")
	ctx := c.Request.Context()

	game, err := h.Store.GetGameByID(ctx, gameID)
	if err != nil {
		h.log.Errorw("failed to fetch game", "game_id", gameID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game"})
		return
	}
	if game == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	board, err := h.Store.GetGameBoard(ctx, gameID)
	if err != nil {
		// If board fails, just return game info
		h.log.Warnw("failed to fetch board", "game_id", gameID, "error", err)
		c.JSON(http.StatusOK, game)
		return
	}

	c.JSON(http.StatusOK, struct {
		*postgres.GameResult
		Board [][]int `json:"boardState"`
	}{
		GameResult: game,
		Board:      board,
	})
}
