package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type SessionStats interface {
	LiveGameLister
	Count() int
}

type ConnectionCounter interface {
	Count() int
}

// HealthHandler reports liveness, unfinished games, every session still held
// in memory and open sockets.
type HealthHandler struct {
	Sessions    SessionStats
	Connections ConnectionCounter
}

func NewHealthHandler(sessions SessionStats, connections ConnectionCounter) *HealthHandler {
	return &HealthHandler{Sessions: sessions, Connections: connections}
}

func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{
		"status":      "ok",
		"activeGames": len(h.Sessions.ActiveGames()),
		"sessions":    h.Sessions.Count(),
	}
	if h.Connections != nil {
		body["connections"] = h.Connections.Count()
	}
	c.JSON(http.StatusOK, body)
}
