package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/karimzakaria/fantasy-backend/internal/domain/scoring"
	"github.com/karimzakaria/fantasy-backend/internal/usecase"
)

func (h *Handler) RecordMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatchEvent")
	defer span.End()

	var req recordEventRequest
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

	event, err := h.scoringService.RecordEvent(ctx, usecase.RecordEventInput{
		FixtureID: req.FixtureID,
		PlayerID:  req.PlayerID,
		Type:      scoring.EventType(req.Type),
		Minute:    req.Minute,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record match event failed", "fixture_id", req.FixtureID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchEventToDTO(ctx, event))
}

func (h *Handler) ListFixtureEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtureEvents")
	defer span.End()

	fixtureID, err := pathID(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	events, err := h.scoringService.ListEventsByFixture(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixture events failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchEventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, matchEventToDTO(ctx, e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) DeleteMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatchEvent")
	defer span.End()

	eventID, err := pathID(r, "eventID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.scoringService.DeleteEvent(ctx, eventID); err != nil {
		h.logger.WarnContext(ctx, "delete match event failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) RecalculateMatchweekPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateMatchweekPoints")
	defer span.End()

	matchweekID, err := pathID(r, "matchweekID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.scoringService.RecalculateMatchweek(ctx, matchweekID); err != nil {
		h.logger.WarnContext(ctx, "recalculate matchweek failed", "matchweek_id", matchweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "recalculated"})
}

func (h *Handler) ListMatchweekPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchweekPoints")
	defer span.End()

	matchweekID, err := pathID(r, "matchweekID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	points, err := h.scoringService.ListPointsByMatchweek(ctx, matchweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matchweek points failed", "matchweek_id", matchweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchweekPointsDTO, 0, len(points))
	for _, p := range points {
		items = append(items, matchweekPointsToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
