package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TicketClaims identifies the live game a websocket client may reattach to.
type TicketClaims struct {
	GameID string `json:"game_id"`
	jwt.RegisteredClaims
}

// Tickets signs and checks resume tickets with a shared HMAC secret.
type Tickets struct {
	secret []byte
	ttl    time.Duration
}

func NewTickets(secret string, ttl time.Duration) *Tickets {
	return &Tickets{secret: []byte(secret), ttl: ttl}
}

// Generate creates a ticket for gameID that expires after the configured TTL
func (t *Tickets) Generate(gameID string) (string, error) {
	now := time.Now()
	claims := &TicketClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate checks the signature and expiry and returns the game id
func (t *Tickets) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TicketClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return t.secret, nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*TicketClaims); ok && token.Valid && claims.GameID != "" {
		return claims.GameID, nil
	}

	return "", errors.New("invalid ticket")
}
