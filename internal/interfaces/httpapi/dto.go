package httpapi

import (
	"context"
	"time"

	"github.com/karimzakaria/fantasy-backend/internal/domain/fixture"
	"github.com/karimzakaria/fantasy-backend/internal/domain/matchweek"
	"github.com/karimzakaria/fantasy-backend/internal/domain/player"
	"github.com/karimzakaria/fantasy-backend/internal/domain/roster"
	"github.com/karimzakaria/fantasy-backend/internal/domain/scoring"
	"github.com/karimzakaria/fantasy-backend/internal/domain/team"
	"github.com/karimzakaria/fantasy-backend/internal/usecase"
)

type upsertTeamRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	LogoURL string `json:"logo_url" validate:"omitempty,url,max=500"`
}

type upsertPlayerRequest struct {
	TeamID   int64  `json:"team_id" validate:"required,gt=0"`
	Name     string `json:"name" validate:"required,max=100"`
	Position string `json:"position" validate:"required,oneof=GK DEF MID FWD"`
}

type createFixtureRequest struct {
	MatchweekID int64     `json:"matchweek_id" validate:"required,gt=0"`
	HomeTeamID  int64     `json:"home_team_id" validate:"required,gt=0"`
	AwayTeamID  int64     `json:"away_team_id" validate:"required,gt=0"`
	KickoffAt   time.Time `json:"kickoff_at" validate:"required"`
}

type updateFixtureRequest struct {
	KickoffAt   *time.Time `json:"kickoff_at"`
	IsCompleted *bool      `json:"is_completed"`
}

type createMatchweekRequest struct {
	WeekNumber int       `json:"week_number" validate:"required,gt=0"`
	Deadline   time.Time `json:"deadline" validate:"required"`
	Status     string    `json:"status" validate:"omitempty,oneof=UPCOMING ACTIVE COMPLETED"`
}

type updateMatchweekRequest struct {
	Deadline *time.Time `json:"deadline"`
	Status   *string    `json:"status" validate:"omitempty,oneof=UPCOMING ACTIVE COMPLETED"`
}

type createUserTeamRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type updateUserTeamRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	TotalPoints *int    `json:"total_points"`
	Locked      *bool   `json:"locked"`
}

type addRosterPlayerRequest struct {
	PlayerID int64 `json:"player_id" validate:"required,gt=0"`
}

type recordEventRequest struct {
	FixtureID int64  `json:"fixture_id" validate:"required,gt=0"`
	PlayerID  int64  `json:"player_id" validate:"required,gt=0"`
	Type      string `json:"type" validate:"required"`
	Minute    *int   `json:"minute" validate:"omitempty,gte=0,lte=120"`
}

type teamDTO struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	LogoURL   string     `json:"logo_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type playerDTO struct {
	ID        int64      `json:"id"`
	TeamID    int64      `json:"team_id"`
	Name      string     `json:"name"`
	Position  string     `json:"position"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type fixtureDTO struct {
	ID          int64      `json:"id"`
	MatchweekID int64      `json:"matchweek_id"`
	HomeTeamID  int64      `json:"home_team_id"`
	AwayTeamID  int64      `json:"away_team_id"`
	KickoffAt   time.Time  `json:"kickoff_at"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type matchweekDTO struct {
	ID         int64      `json:"id"`
	WeekNumber int        `json:"week_number"`
	Deadline   time.Time  `json:"deadline"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type userTeamDTO struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Name        string     `json:"name"`
	TotalPoints int        `json:"total_points"`
	Locked      bool       `json:"locked"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type rosterMemberDTO struct {
	PlayerID   int64     `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Position   string    `json:"position"`
	TeamID     int64     `json:"team_id"`
	TeamName   string    `json:"team_name"`
	AddedAt    time.Time `json:"added_at"`
}

type compositionStatsDTO struct {
	PlayerCount        int     `json:"player_count"`
	GoalkeeperCount    int     `json:"goalkeeper_count"`
	DefenderCount      int     `json:"defender_count"`
	MidfielderCount    int     `json:"midfielder_count"`
	ForwardCount       int     `json:"forward_count"`
	SourceTeamCount    int     `json:"source_team_count"`
	RepresentedTeamIDs []int64 `json:"represented_team_ids"`
	MeetsPlayerCount   bool    `json:"meets_player_count"`
	MeetsGoalkeeper    bool    `json:"meets_goalkeeper"`
	MeetsUniqueTeams   bool    `json:"meets_unique_teams"`
	ValidForLock       bool    `json:"valid_for_lock"`
}

type userTeamDetailsDTO struct {
	Team    userTeamDTO         `json:"team"`
	Members []rosterMemberDTO   `json:"members"`
	Stats   compositionStatsDTO `json:"stats"`
}

type matchEventDTO struct {
	ID        int64     `json:"id"`
	FixtureID int64     `json:"fixture_id"`
	PlayerID  int64     `json:"player_id"`
	Type      string    `json:"type"`
	Points    int       `json:"points"`
	Minute    *int      `json:"minute,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type snapshotPlayerDTO struct {
	PlayerID   int64     `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Position   string    `json:"position"`
	TeamName   string    `json:"team_name"`
	AddedAt    time.Time `json:"added_at"`
}

type snapshotDTO struct {
	ID          int64               `json:"id"`
	UserTeamID  int64               `json:"user_team_id"`
	MatchweekID int64               `json:"matchweek_id"`
	TeamName    string              `json:"team_name"`
	SnapshotAt  time.Time           `json:"snapshot_at"`
	Players     []snapshotPlayerDTO `json:"players"`
}

type matchweekPointsDTO struct {
	UserTeamID   int64     `json:"user_team_id"`
	MatchweekID  int64     `json:"matchweek_id"`
	Points       int       `json:"points"`
	Goals        int       `json:"goals"`
	Assists      int       `json:"assists"`
	CleanSheets  int       `json:"clean_sheets"`
	YellowCards  int       `json:"yellow_cards"`
	RedCards     int       `json:"red_cards"`
	Saves        int       `json:"saves"`
	Penalties    int       `json:"penalties"`
	CalculatedAt time.Time `json:"calculated_at"`
}

func teamToDTO(ctx context.Context, v team.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		ID:        v.ID,
		Name:      v.Name,
		LogoURL:   v.LogoURL,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func playerToDTO(ctx context.Context, v player.Player) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		ID:        v.ID,
		TeamID:    v.TeamID,
		Name:      v.Name,
		Position:  string(v.Position),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func fixtureToDTO(ctx context.Context, v fixture.Fixture) fixtureDTO {
	ctx, span := startSpan(ctx, "httpapi.fixtureToDTO")
	defer span.End()

	return fixtureDTO{
		ID:          v.ID,
		MatchweekID: v.MatchweekID,
		HomeTeamID:  v.HomeTeamID,
		AwayTeamID:  v.AwayTeamID,
		KickoffAt:   v.KickoffAt,
		IsCompleted: v.IsCompleted,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func matchweekToDTO(ctx context.Context, v matchweek.Matchweek) matchweekDTO {
	ctx, span := startSpan(ctx, "httpapi.matchweekToDTO")
	defer span.End()

	return matchweekDTO{
		ID:         v.ID,
		WeekNumber: v.WeekNumber,
		Deadline:   v.Deadline,
		Status:     string(v.Status),
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func userTeamToDTO(ctx context.Context, v roster.UserTeam) userTeamDTO {
	ctx, span := startSpan(ctx, "httpapi.userTeamToDTO")
	defer span.End()

	return userTeamDTO{
		ID:          v.ID,
		UserID:      v.UserID,
		Name:        v.Name,
		TotalPoints: v.TotalPoints,
		Locked:      v.Locked,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func rosterMemberToDTO(ctx context.Context, v roster.MemberInfo) rosterMemberDTO {
	ctx, span := startSpan(ctx, "httpapi.rosterMemberToDTO")
	defer span.End()

	return rosterMemberDTO{
		PlayerID:   v.PlayerID,
		PlayerName: v.PlayerName,
		Position:   string(v.Position),
		TeamID:     v.TeamID,
		TeamName:   v.TeamName,
		AddedAt:    v.AddedAt,
	}
}

func compositionStatsToDTO(ctx context.Context, v roster.CompositionStats) compositionStatsDTO {
	ctx, span := startSpan(ctx, "httpapi.compositionStatsToDTO")
	defer span.End()

	return compositionStatsDTO{
		PlayerCount:        v.PlayerCount,
		GoalkeeperCount:    v.GoalkeeperCount,
		DefenderCount:      v.DefenderCount,
		MidfielderCount:    v.MidfielderCount,
		ForwardCount:       v.ForwardCount,
		SourceTeamCount:    v.SourceTeamCount,
		RepresentedTeamIDs: v.RepresentedTeamIDs,
		MeetsPlayerCount:   v.MeetsPlayerCount,
		MeetsGoalkeeper:    v.MeetsGoalkeeper,
		MeetsUniqueTeams:   v.MeetsUniqueTeams,
		ValidForLock:       v.ValidForLock,
	}
}

func userTeamDetailsToDTO(ctx context.Context, v usecase.UserTeamDetails) userTeamDetailsDTO {
	ctx, span := startSpan(ctx, "httpapi.userTeamDetailsToDTO")
	defer span.End()

	members := make([]rosterMemberDTO, 0, len(v.Members))
	for _, m := range v.Members {
		members = append(members, rosterMemberToDTO(ctx, m))
	}

	return userTeamDetailsDTO{
		Team:    userTeamToDTO(ctx, v.Team),
		Members: members,
		Stats:   compositionStatsToDTO(ctx, v.Stats),
	}
}

func matchEventToDTO(ctx context.Context, v scoring.MatchEvent) matchEventDTO {
	ctx, span := startSpan(ctx, "httpapi.matchEventToDTO")
	defer span.End()

	return matchEventDTO{
		ID:        v.ID,
		FixtureID: v.FixtureID,
		PlayerID:  v.PlayerID,
		Type:      string(v.Type),
		Points:    v.Points,
		Minute:    v.Minute,
		CreatedAt: v.CreatedAt,
	}
}

func snapshotToDTO(ctx context.Context, v scoring.Snapshot) snapshotDTO {
	ctx, span := startSpan(ctx, "httpapi.snapshotToDTO")
	defer span.End()

	players := make([]snapshotPlayerDTO, 0, len(v.Players))
	for _, p := range v.Players {
		players = append(players, snapshotPlayerDTO{
			PlayerID:   p.PlayerID,
			PlayerName: p.PlayerName,
			Position:   string(p.Position),
			TeamName:   p.TeamName,
			AddedAt:    p.AddedAt,
		})
	}

	return snapshotDTO{
		ID:          v.ID,
		UserTeamID:  v.UserTeamID,
		MatchweekID: v.MatchweekID,
		TeamName:    v.TeamName,
		SnapshotAt:  v.SnapshotAt,
		Players:     players,
	}
}

func matchweekPointsToDTO(ctx context.Context, v scoring.MatchweekPoints) matchweekPointsDTO {
	ctx, span := startSpan(ctx, "httpapi.matchweekPointsToDTO")
	defer span.End()

	return matchweekPointsDTO{
		UserTeamID:   v.UserTeamID,
		MatchweekID:  v.MatchweekID,
		Points:       v.Points,
		Goals:        v.Goals,
		Assists:      v.Assists,
		CleanSheets:  v.CleanSheets,
		YellowCards:  v.YellowCards,
		RedCards:     v.RedCards,
		Saves:        v.Saves,
		Penalties:    v.Penalties,
		CalculatedAt: v.CalculatedAt,
	}
}
