package domain

// ClientMessage is what the front-end sends over the websocket.
type ClientMessage struct {
	Type       string `json:"type"`
	Column     int    `json:"column"`
	Difficulty string `json:"difficulty,omitempty"`
	Ticket     string `json:"ticket,omitempty"`
}

// ServerMessage is every frame the server sends. Column and Row are set only
// on move_made, where 0 is a real position.
type ServerMessage struct {
	Type        string  `json:"type"`
	Message     string  `json:"message,omitempty"`
	GameID      string  `json:"gameId,omitempty"`
	Ticket      string  `json:"ticket,omitempty"`
	Opponent    string  `json:"opponent,omitempty"`
	Difficulty  string  `json:"difficulty,omitempty"`
	Depth       int     `json:"depth,omitempty"`
	YourPlayer  int     `json:"yourPlayer,omitempty"`
	CurrentTurn int     `json:"currentTurn,omitempty"`
	Column      *int    `json:"column,omitempty"`
	Row         *int    `json:"row,omitempty"`
	Player      int     `json:"player,omitempty"`
	Board       [][]int `json:"board,omitempty"`
	NextTurn    int     `json:"nextTurn,omitempty"`
	Winner      string  `json:"winner,omitempty"`
	Reason      string  `json:"reason,omitempty"`
	Moves       []Move  `json:"moves,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
