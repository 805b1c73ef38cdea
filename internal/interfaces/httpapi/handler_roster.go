package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/karimzakaria/fantasy-backend/internal/usecase"
)

func (h *Handler) CreateUserTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateUserTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createUserTeamRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.rosterService.CreateUserTeam(ctx, principal, usecase.CreateUserTeamInput{Name: req.Name})
	if err != nil {
		h.logger.WarnContext(ctx, "create user team failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, userTeamToDTO(ctx, created))
}

func (h *Handler) GetMyUserTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyUserTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	details, err := h.rosterService.MyTeamDetails(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "get my team failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userTeamDetailsToDTO(ctx, details))
}

func (h *Handler) GetUserTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUserTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	userTeamID, err := pathID(r, "userTeamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	details, err := h.rosterService.GetUserTeamDetails(ctx, principal, userTeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get user team failed", "user_id", principal.UserID, "user_team_id", userTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userTeamDetailsToDTO(ctx, details))
}

func (h *Handler) GetUserTeamByUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUserTeamByUser")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	team, err := h.rosterService.GetUserTeamByUserID(ctx, principal, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get user team by user failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userTeamToDTO(ctx, team))
}

// UserHasTeam lets clients probe for an existing team before offering the
// create flow; only the owner or an admin may probe a user id.
func (h *Handler) UserHasTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UserHasTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !principal.CanAccess(userID) {
		writeError(ctx, w, fmt.Errorf("%w: cannot access another user's team", usecase.ErrForbidden))
		return
	}

	hasTeam, err := h.rosterService.HasTeam(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "check user team failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"has_team": hasTeam})
}

func (h *Handler) UpdateUserTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateUserTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	userTeamID, err := pathID(r, "userTeamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateUserTeamRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.rosterService.UpdateUserTeam(ctx, principal, userTeamID, usecase.UpdateUserTeamInput{
		Name:        req.Name,
		TotalPoints: req.TotalPoints,
		Locked:      req.Locked,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update user team failed", "user_id", principal.UserID, "user_team_id", userTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userTeamToDTO(ctx, updated))
}

func (h *Handler) DeleteUserTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteUserTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	userTeamID, err := pathID(r, "userTeamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.DeleteUserTeam(ctx, principal, userTeamID); err != nil {
		h.logger.WarnContext(ctx, "delete user team failed", "user_id", principal.UserID, "user_team_id", userTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) AddRosterPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddRosterPlayer")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	userTeamID, err := pathID(r, "userTeamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req addRosterPlayerRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.AddPlayer(ctx, principal, userTeamID, req.PlayerID); err != nil {
		h.logger.WarnContext(ctx, "add roster player failed", "user_id", principal.UserID, "user_team_id", userTeamID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	details, err := h.rosterService.GetUserTeamDetails(ctx, principal, userTeamID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userTeamDetailsToDTO(ctx, details))
}

func (h *Handler) RemoveRosterPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveRosterPlayer")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	userTeamID, err := pathID(r, "userTeamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.RemovePlayer(ctx, principal, userTeamID, playerID); err != nil {
		h.logger.WarnContext(ctx, "remove roster player failed", "user_id", principal.UserID, "user_team_id", userTeamID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	details, err := h.rosterService.GetUserTeamDetails(ctx, principal, userTeamID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userTeamDetailsToDTO(ctx, details))
}

func (h *Handler) LockUserTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LockUserTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	userTeamID, err := pathID(r, "userTeamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	locked, err := h.rosterService.LockTeam(ctx, principal, userTeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "lock user team failed", "user_id", principal.UserID, "user_team_id", userTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userTeamToDTO(ctx, locked))
}

func (h *Handler) UnlockUserTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnlockUserTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	userTeamID, err := pathID(r, "userTeamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	unlocked, err := h.rosterService.UnlockTeam(ctx, principal, userTeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "unlock user team failed", "user_id", principal.UserID, "user_team_id", userTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userTeamToDTO(ctx, unlocked))
}

func (h *Handler) GetRosterComposition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosterComposition")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	userTeamID, err := pathID(r, "userTeamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.rosterService.GetCompositionStats(ctx, principal, userTeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster composition failed", "user_id", principal.UserID, "user_team_id", userTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, compositionStatsToDTO(ctx, stats))
}

func (h *Handler) ListUserTeamSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUserTeamSnapshots")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	userTeamID, err := pathID(r, "userTeamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	// Ownership check happens here; the matchweek service has no notion
	// of principals.
	if _, err := h.rosterService.GetUserTeam(ctx, principal, userTeamID); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshots, err := h.matchweekService.ListUserTeamSnapshots(ctx, userTeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list user team snapshots failed", "user_team_id", userTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]snapshotDTO, 0, len(snapshots))
	for _, s := range snapshots {
		items = append(items, snapshotToDTO(ctx, s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListUserTeamPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUserTeamPoints")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	userTeamID, err := pathID(r, "userTeamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if _, err := h.rosterService.GetUserTeam(ctx, principal, userTeamID); err != nil {
		writeError(ctx, w, err)
		return
	}

	points, err := h.scoringService.GetUserTeamPoints(ctx, userTeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list user team points failed", "user_team_id", userTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchweekPointsDTO, 0, len(points))
	for _, p := range points {
		items = append(items, matchweekPointsToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
