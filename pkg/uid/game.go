package uid

import "github.com/google/uuid"

// GenerateGameID returns a random (v4) UUID string
func GenerateGameID() string {
	return uuid.NewString()
}
