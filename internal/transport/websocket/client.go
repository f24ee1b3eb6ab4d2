package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect4-solo/internal/domain"
)

const writeWait = 10 * time.Second

// ConnectionManager maps each live game to the socket currently playing it.
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// writeMu ensures only one goroutine writes to a specific socket at a time.
	// conn.WriteJSON is not safe for concurrent use.
	writeMu map[*websocket.Conn]*sync.Mutex

	mu sync.RWMutex // Protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Register prepares the write lock for a freshly upgraded socket.
func (cm *ConnectionManager) Register(conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if _, exists := cm.writeMu[conn]; !exists {
		cm.writeMu[conn] = &sync.Mutex{}
	}
}

// AddConnection binds gameID to conn. A different socket already bound to
// the game is closed, so a resumed game has exactly one owner.
func (cm *ConnectionManager) AddConnection(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[gameID]; exists && oldConn != conn {
		oldConn.Close()
	}
	cm.connections[gameID] = conn
	if _, exists := cm.writeMu[conn]; !exists {
		cm.writeMu[conn] = &sync.Mutex{}
	}
}

// RemoveConnection drops the game's binding and closes its socket.
func (cm *ConnectionManager) RemoveConnection(gameID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn, exists := cm.connections[gameID]; exists {
		conn.Close()
		delete(cm.connections, gameID)
	}
}

// Detach unbinds gameID only if it still points at conn, leaving the socket
// open. It avoids dropping a newer socket that resumed the same game.
func (cm *ConnectionManager) Detach(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if currentConn, exists := cm.connections[gameID]; exists && currentConn == conn {
		delete(cm.connections, gameID)
	}
}

// Unregister forgets a closed socket and every game still bound to it.
func (cm *ConnectionManager) Unregister(conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for gameID, current := range cm.connections {
		if current == conn {
			delete(cm.connections, gameID)
		}
	}
	delete(cm.writeMu, conn)
}

func (cm *ConnectionManager) IsCurrentConnection(gameID string, conn *websocket.Conn) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	currentConn, exists := cm.connections[gameID]
	return exists && currentConn == conn
}

// SendMessage writes message to the socket bound to gameID. Games nobody is
// watching are silently skipped.
func (cm *ConnectionManager) SendMessage(gameID string, message domain.ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[gameID]
	cm.mu.RUnlock()

	if !exists {
		return nil
	}
	return cm.Write(conn, message)
}

// Write sends any JSON payload to conn under its write lock.
func (cm *ConnectionManager) Write(conn *websocket.Conn, payload any) error {
	cm.mu.RLock()
	mu, exists := cm.writeMu[conn]
	cm.mu.RUnlock()

	if !exists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(payload)
}

// Ping sends a keep-alive control frame under the socket's write lock.
func (cm *ConnectionManager) Ping(conn *websocket.Conn) error {
	cm.mu.RLock()
	mu, exists := cm.writeMu[conn]
	cm.mu.RUnlock()

	if !exists {
		return websocket.ErrCloseSent
	}

	mu.Lock()
	defer mu.Unlock()
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}
