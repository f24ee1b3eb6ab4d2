package uid

import (
	"testing"

	"github.com/google/uuid"
)

func TestGenerateGameID(t *testing.T) {
	a, b := GenerateGameID(), GenerateGameID()
	if a == b {
		t.Fatal("two ids collided")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("not a uuid: %q", a)
	}
}
