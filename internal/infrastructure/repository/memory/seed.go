package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/karimzakaria/fantasy-backend/internal/domain/fixture"
	"github.com/karimzakaria/fantasy-backend/internal/domain/matchweek"
	"github.com/karimzakaria/fantasy-backend/internal/domain/player"
	"github.com/karimzakaria/fantasy-backend/internal/domain/team"
)

// Bootstrap fills the in-process repositories with a small player pool so the
// API is usable when the service runs without a database.
func Bootstrap(
	ctx context.Context,
	teams *TeamRepository,
	players *PlayerRepository,
	matchweeks *MatchweekRepository,
	fixtures *FixtureRepository,
) error {
	seedTeams := []team.Team{
		{Name: "Jakarta United", LogoURL: "https://cdn.example.com/logos/jakarta-united.png"},
		{Name: "Bandung Rovers", LogoURL: "https://cdn.example.com/logos/bandung-rovers.png"},
		{Name: "Surabaya City", LogoURL: "https://cdn.example.com/logos/surabaya-city.png"},
		{Name: "Medan Warriors", LogoURL: "https://cdn.example.com/logos/medan-warriors.png"},
	}

	teamIDs := make([]int64, 0, len(seedTeams))
	for _, t := range seedTeams {
		t.CreatedAt = time.Now().UTC()
		created, err := teams.Create(ctx, t)
		if err != nil {
			return fmt.Errorf("seed team %s: %w", t.Name, err)
		}
		teamIDs = append(teamIDs, created.ID)
	}

	names := [][]string{
		{"Rizky Pratama", "Andi Saputra", "Bagus Wijaya", "Dimas Nugroho", "Eko Santoso"},
		{"Fajar Hidayat", "Galih Permana", "Hendra Kusuma", "Ilham Ramadhan", "Joko Susilo"},
		{"Kevin Tanuwijaya", "Lukman Hakim", "Made Artha", "Nanda Putra", "Oscar Siregar"},
		{"Putu Mahendra", "Qori Abdullah", "Reza Firmansyah", "Surya Darma", "Teguh Prasetyo"},
	}
	positions := []player.Position{
		player.PositionGoalkeeper,
		player.PositionDefender,
		player.PositionDefender,
		player.PositionMidfielder,
		player.PositionForward,
	}

	for i, teamID := range teamIDs {
		for j, name := range names[i] {
			p := player.Player{
				TeamID:    teamID,
				Name:      name,
				Position:  positions[j],
				CreatedAt: time.Now().UTC(),
			}
			if _, err := players.Create(ctx, p); err != nil {
				return fmt.Errorf("seed player %s: %w", name, err)
			}
		}
	}

	now := time.Now().UTC()
	seedWeeks := []matchweek.Matchweek{
		{WeekNumber: 1, Deadline: now.Add(-7 * 24 * time.Hour), Status: matchweek.StatusCompleted, CreatedAt: now},
		{WeekNumber: 2, Deadline: now.Add(72 * time.Hour), Status: matchweek.StatusUpcoming, CreatedAt: now},
	}

	weekIDs := make([]int64, 0, len(seedWeeks))
	for _, mw := range seedWeeks {
		created, err := matchweeks.Create(ctx, mw)
		if err != nil {
			return fmt.Errorf("seed matchweek %d: %w", mw.WeekNumber, err)
		}
		weekIDs = append(weekIDs, created.ID)
	}

	seedFixtures := []fixture.Fixture{
		{MatchweekID: weekIDs[0], HomeTeamID: teamIDs[0], AwayTeamID: teamIDs[1], KickoffAt: now.Add(-7 * 24 * time.Hour).Add(3 * time.Hour), IsCompleted: true, CreatedAt: now},
		{MatchweekID: weekIDs[0], HomeTeamID: teamIDs[2], AwayTeamID: teamIDs[3], KickoffAt: now.Add(-7 * 24 * time.Hour).Add(5 * time.Hour), IsCompleted: true, CreatedAt: now},
		{MatchweekID: weekIDs[1], HomeTeamID: teamIDs[0], AwayTeamID: teamIDs[2], KickoffAt: now.Add(75 * time.Hour), CreatedAt: now},
		{MatchweekID: weekIDs[1], HomeTeamID: teamIDs[1], AwayTeamID: teamIDs[3], KickoffAt: now.Add(77 * time.Hour), CreatedAt: now},
	}
	for _, f := range seedFixtures {
		if _, err := fixtures.Create(ctx, f); err != nil {
			return fmt.Errorf("seed fixture week %d: %w", f.MatchweekID, err)
		}
	}

	return nil
}
