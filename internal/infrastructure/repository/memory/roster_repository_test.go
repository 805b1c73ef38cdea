package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/karimzakaria/fantasy-backend/internal/domain/roster"
)

func TestRosterRepositoryCreateRejectsSecondTeamForUser(t *testing.T) {
	ctx := context.Background()
	repo := NewRosterRepository(NewPlayerRepository(), NewTeamRepository())

	first, err := repo.Create(ctx, roster.UserTeam{
		UserID:    42,
		Name:      "Dream XI",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create first team: %v", err)
	}
	if first.ID == 0 {
		t.Fatalf("expected assigned id, got zero")
	}

	_, err = repo.Create(ctx, roster.UserTeam{
		UserID:    42,
		Name:      "Second Squad",
		CreatedAt: time.Now().UTC(),
	})
	if !errors.Is(err, roster.ErrUserTeamExists) {
		t.Fatalf("expected ErrUserTeamExists, got %v", err)
	}

	teams, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("expected one stored team, got %d", len(teams))
	}
}
