package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/karimzakaria/fantasy-backend/internal/domain/matchweek"
	"github.com/karimzakaria/fantasy-backend/internal/usecase"
)

func (h *Handler) ListMatchweeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchweeks")
	defer span.End()

	weeks, err := h.matchweekService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matchweeks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchweekDTO, 0, len(weeks))
	for _, m := range weeks {
		items = append(items, matchweekToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatchweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchweek")
	defer span.End()

	matchweekID, err := pathID(r, "matchweekID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchweekService.GetByID(ctx, matchweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get matchweek failed", "matchweek_id", matchweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchweekToDTO(ctx, m))
}

// GetCurrentMatchweek returns null data when no matchweek is open, which
// clients treat as the off-season state.
func (h *Handler) GetCurrentMatchweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentMatchweek")
	defer span.End()

	current, exists, err := h.matchweekService.Current(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get current matchweek failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchweekToDTO(ctx, current))
}

func (h *Handler) CreateMatchweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatchweek")
	defer span.End()

	var req createMatchweekRequest
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

	m, err := h.matchweekService.Create(ctx, usecase.CreateMatchweekInput{
		WeekNumber: req.WeekNumber,
		Deadline:   req.Deadline,
		Status:     matchweek.Status(req.Status),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create matchweek failed", "week_number", req.WeekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchweekToDTO(ctx, m))
}

func (h *Handler) UpdateMatchweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchweek")
	defer span.End()

	matchweekID, err := pathID(r, "matchweekID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateMatchweekRequest
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

	input := usecase.UpdateMatchweekInput{Deadline: req.Deadline}
	if req.Status != nil {
		status := matchweek.Status(*req.Status)
		input.Status = &status
	}

	m, err := h.matchweekService.Update(ctx, matchweekID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update matchweek failed", "matchweek_id", matchweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchweekToDTO(ctx, m))
}

func (h *Handler) DeleteMatchweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatchweek")
	defer span.End()

	matchweekID, err := pathID(r, "matchweekID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.matchweekService.Delete(ctx, matchweekID); err != nil {
		h.logger.WarnContext(ctx, "delete matchweek failed", "matchweek_id", matchweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) CompleteMatchweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteMatchweek")
	defer span.End()

	matchweekID, err := pathID(r, "matchweekID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchweekService.Complete(ctx, matchweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "complete matchweek failed", "matchweek_id", matchweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchweekToDTO(ctx, m))
}

func (h *Handler) ListMatchweekSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchweekSnapshots")
	defer span.End()

	matchweekID, err := pathID(r, "matchweekID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshots, err := h.matchweekService.ListSnapshots(ctx, matchweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matchweek snapshots failed", "matchweek_id", matchweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]snapshotDTO, 0, len(snapshots))
	for _, s := range snapshots {
		items = append(items, snapshotToDTO(ctx, s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
