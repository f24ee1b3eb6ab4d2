package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/service/game"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

type TicketValidator interface {
	Validate(ticket string) (string, error)
}

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Tickets        TicketValidator
	Upgrader       websocket.Upgrader
	log            *zap.SugaredLogger
}

// NewHandler creates a new WebSocket handler. Origins are enforced by the
// CORS middleware in front of the route, so the upgrader accepts any.
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, tickets TicketValidator, log *zap.SugaredLogger) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Tickets:        tickets,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: log.Named("ws"),
	}
}

// HandleWebSocket upgrades the request and serves one client until it leaves.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warnw("upgrade error", "error", err)
		return
	}

	h.handleConnection(conn)
}

// connState tracks the game a single socket is currently playing.
type connState struct {
	conn   *websocket.Conn
	gameID string
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn) {
	h.ConnManager.Register(conn)
	state := &connState{conn: conn}

	done := make(chan struct{})
	defer func() {
		close(done)
		h.log.Debugw("connection closed", "game_id", state.gameID)
		h.ConnManager.Unregister(conn)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := h.ConnManager.Ping(conn); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Infow("client disconnected unexpectedly", "game_id", state.gameID, "error", err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Debugw("invalid message format", "error", err)
			h.sendError(conn, "Invalid message format")
			continue
		}

		h.processMessage(state, msg)
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(state *connState, msg domain.ClientMessage) {
	switch msg.Type {
	case "new_game":
		session, err := h.SessionManager.CreateSession(msg.Difficulty)
		if err != nil {
			h.log.Errorw("failed to create game", "error", err)
			h.sendError(state.conn, "Failed to start game")
			return
		}
		h.bind(state, session.GameID)
		session.Start(h.ConnManager)

	case "move":
		if state.gameID == "" {
			h.sendError(state.conn, "No game in progress")
			return
		}
		session, exists := h.SessionManager.GetSessionByGameID(state.gameID)
		if !exists || !h.ConnManager.IsCurrentConnection(state.gameID, state.conn) {
			h.sendError(state.conn, "Game not found")
			return
		}
		if err := session.HandleMove(msg.Column, h.ConnManager); err != nil {
			h.sendError(state.conn, err.Error())
		}

	case "resume":
		gameID, err := h.Tickets.Validate(msg.Ticket)
		if err != nil {
			h.log.Debugw("rejected resume ticket", "error", err)
			h.sendError(state.conn, "Invalid or expired ticket")
			return
		}
		session, exists := h.SessionManager.GetSessionByGameID(gameID)
		if !exists {
			h.sendError(state.conn, "Game not found")
			return
		}
		h.bind(state, gameID)
		h.ConnManager.SendMessage(gameID, session.Snapshot())
		h.log.Infow("game resumed", "game_id", gameID)

	default:
		h.sendError(state.conn, "Unknown message type")
	}
}

// bind moves this socket onto gameID, releasing whatever game it had before.
func (h *Handler) bind(state *connState, gameID string) {
	if state.gameID != "" && state.gameID != gameID {
		h.ConnManager.Detach(state.gameID, state.conn)
	}
	state.gameID = gameID
	h.ConnManager.AddConnection(gameID, state.conn)
}

func (h *Handler) sendError(conn *websocket.Conn, message string) {
	h.ConnManager.Write(conn, domain.ErrorMessage{Type: "error", Message: message})
}
