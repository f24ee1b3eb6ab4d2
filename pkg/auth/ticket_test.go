package auth

import (
	"testing"
	"time"
)

func TestTicketRoundTrip(t *testing.T) {
	tickets := NewTickets("secret", time.Minute)
	ticket, err := tickets.Generate("game-1")
	if err != nil {
		t.Fatal(err)
	}
	gameID, err := tickets.Validate(ticket)
	if err != nil {
		t.Fatal(err)
	}
	if gameID != "game-1" {
		t.Fatalf("gameID = %q", gameID)
	}
}

func TestTicketWrongSecret(t *testing.T) {
	ticket, err := NewTickets("secret", time.Minute).Generate("game-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTickets("other", time.Minute).Validate(ticket); err == nil {
		t.Fatal("ticket signed with another secret was accepted")
	}
}

func TestTicketExpired(t *testing.T) {
	tickets := NewTickets("secret", -time.Minute)
	ticket, err := tickets.Generate("game-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tickets.Validate(ticket); err == nil {
		t.Fatal("expired ticket was accepted")
	}
}

func TestTicketGarbage(t *testing.T) {
	if _, err := NewTickets("secret", time.Minute).Validate("not-a-jwt"); err == nil {
		t.Fatal("garbage accepted")
	}
}
