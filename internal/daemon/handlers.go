package daemon

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/thenoetrevino/dealboard/internal/database"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// maxBody caps request bodies; a move is a few dozen bytes
const maxBody = 1 << 16

func (s *Server) handleListPipelines(w http.ResponseWriter, r *http.Request) {
	pipelines, err := s.store.ListPipelines(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pipelines)
}

func (s *Server) handleGetPipeline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	detail, err := s.store.GetPipelineDetail(r.Context(), types.PipelineID(id))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleListDeals(w http.ResponseWriter, r *http.Request) {
	var pipelineID *types.PipelineID
	if raw := r.URL.Query().Get("pipelineId"); raw != "" {
		id, err := types.ParsePipelineID(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid pipelineId")
			return
		}
		pipelineID = &id
	}

	deals, err := s.store.ListDeals(r.Context(), pipelineID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deals)
}

func (s *Server) handleGetDeal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	deal, err := s.store.GetDeal(r.Context(), types.DealID(id))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

func (s *Server) handleMoveDeal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var move models.StageMove
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&move); err != nil {
		s.metrics.IncMovesRejected()
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if move.StageID <= 0 {
		s.metrics.IncMovesRejected()
		writeError(w, http.StatusBadRequest, "stageId is required")
		return
	}

	deal, err := s.store.MoveDeal(r.Context(), types.DealID(id), move)
	if err != nil {
		s.metrics.IncMovesRejected()
		writeStoreError(w, err)
		return
	}

	s.metrics.IncMovesAccepted()
	slog.Info("deal moved", "deal_id", id, "stage_id", move.StageID)
	writeJSON(w, http.StatusOK, deal)
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.GetSnapshot())
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		writeError(w, http.StatusInternalServerError, "encoding failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Debug("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	data, _ := json.Marshal(map[string]string{"error": msg})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, database.ErrStageNotInPipeline):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, database.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("store error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
