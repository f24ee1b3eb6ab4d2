package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect4-solo/internal/service/game"
)

type LiveGameLister interface {
	ActiveGames() []game.LiveGame
}

type WatchHandler struct {
	SessionManager LiveGameLister
}

func NewWatchHandler(sm LiveGameLister) *WatchHandler {
	return &WatchHandler{SessionManager: sm}
}

// GetLiveGames returns every game still being played against the computer
func (h *WatchHandler) GetLiveGames(c *gin.Context) {
	c.JSON(http.StatusOK, h.SessionManager.ActiveGames())
}
