package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/abhisek/probgen/internal/llm"
	"github.com/abhisek/probgen/internal/problemgen"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleGenerateProblem(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if noData(body) {
		s.logger.Warn("No data provided in the request")
		WriteError(w, http.StatusBadRequest, "No data provided")
		return
	}

	var req problemgen.GenerationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.logger.Warn("invalid request body", zap.Error(err))
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ctx := llm.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
	problem, err := s.generator.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, problemgen.ErrGenerationFailed) {
			s.logger.Error("Problem generation failed")
		} else {
			s.logger.Error("Error occurred while generating problem", zap.Error(err))
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("Successfully generated problem",
		zap.String("problem_id", problem.Problem.ID),
		zap.String("title", problem.Problem.Title),
	)
	WriteJSON(w, http.StatusOK, problem)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// noData reports whether a body carries nothing to act on: it is blank, or
// holds a JSON null, false, zero, empty string, empty array or empty object.
// Bodies that are not valid JSON are left for the decoder to reject.
func noData(body []byte) bool {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return true
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case string:
		return t == ""
	case float64:
		return t == 0
	case bool:
		return !t
	}
	return false
}
