package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ScoreSource interface {
	Tally(ctx context.Context) (map[string]int64, error)
}

type scoreboardResponse struct {
	Human    int64  `json:"human"`
	Computer int64  `json:"computer"`
	Draw     int64  `json:"draw"`
	Source   string `json:"source"`
}

// ScoreboardHandler reads Redis counters when available and falls back to
// aggregating the PostgreSQL ledger. Either source may be nil.
type ScoreboardHandler struct {
	Cache  ScoreSource
	Ledger ScoreSource
	log    *zap.SugaredLogger
}

func NewScoreboardHandler(cache, ledger ScoreSource, log *zap.SugaredLogger) *ScoreboardHandler {
	return &ScoreboardHandler{Cache: cache, Ledger: ledger, log: log.Named("scoreboard")}
}

func (h *ScoreboardHandler) GetScoreboard(c *gin.Context) {
	ctx := c.Request.Context()

	if h.Cache != nil {
		tally, err := h.Cache.Tally(ctx)
		if err == nil {
			c.JSON(http.StatusOK, newScoreboardResponse(tally, "redis"))
			return
		}
		h.log.Warnw("redis scoreboard unavailable, using ledger", "error", err)
	}

	if h.Ledger == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Scoreboard is not enabled"})
		return
	}

	tally, err := h.Ledger.Tally(ctx)
	if err != nil {
		h.log.Errorw("failed to tally ledger", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch scoreboard"})
		return
	}
	c.JSON(http.StatusOK, newScoreboardResponse(tally, "postgres"))
}

func newScoreboardResponse(tally map[string]int64, source string) scoreboardResponse {
	return scoreboardResponse{
		Human:    tally["human"],
		Computer: tally["computer"],
		Draw:     tally["draw"],
		Source:   source,
	}
}
