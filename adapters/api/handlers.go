package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tidwall/gjson"

	"titrate/adapters/report"
	"titrate/domain/core"
	"titrate/domain/titration"
	"titrate/internal/config"
	"titrate/internal/errors"
	"titrate/ports"
)

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

type curveResponse struct {
	*titration.Run
	Chart  titration.Chart `json:"chart"`
	Report string          `json:"report"`
}

func newCurveResponse(run *titration.Run) curveResponse {
	return curveResponse{Run: run, Chart: run.Chart(), Report: report.Text(run.Summary)}
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeConfigInvalid:
		return http.StatusBadRequest
	case errors.CodeNotImplemented:
		return http.StatusNotImplemented
	case errors.CodeInvalidState, errors.CodeEmptyResult:
		return http.StatusUnprocessableEntity
	case errors.CodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	} else {
		s.logger.Debug("request rejected: %v", err)
	}
	s.writeJSON(w, status, errorResponse{Code: errors.GetCode(err), Error: err.Error()})
}

// readScenario overlays the request body on the server's base scenario
func (s *Server) readScenario(w http.ResponseWriter, r *http.Request) (titration.Scenario, []byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return s.base, nil, errors.ConfigInvalid("failed to read request body: %v", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return s.base, body, nil
	}
	sc, err := config.OverlayScenario(body, s.base)
	return sc, body, err
}

func (s *Server) archive() (ports.RunArchive, error) {
	a := s.service.Archive()
	if a == nil {
		return nil, errors.NotFound("run archive")
	}
	return a, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreateCurve computes a curve for the posted scenario
func (s *Server) handleCreateCurve(w http.ResponseWriter, r *http.Request) {
	sc, _, err := s.readScenario(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	run, err := s.service.Run(r.Context(), sc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, newCurveResponse(run))
}

func (s *Server) handleListCurves(w http.ResponseWriter, r *http.Request) {
	a, err := s.archive()
	if err != nil {
		s.writeError(w, err)
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, errors.ConfigInvalid("limit must be a positive integer, got %q", v))
			return
		}
		limit = n
	}
	runs, err := a.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, runs)
}

func (s *Server) loadRun(r *http.Request) (*titration.Run, error) {
	a, err := s.archive()
	if err != nil {
		return nil, err
	}
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		return nil, errors.ConfigInvalid("%v", err)
	}
	return a.Get(r.Context(), id)
}

func (s *Server) handleGetCurve(w http.ResponseWriter, r *http.Request) {
	run, err := s.loadRun(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newCurveResponse(run))
}

func (s *Server) handleCurveReport(w http.ResponseWriter, r *http.Request) {
	run, err := s.loadRun(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(report.HTML(run))
}

// handleReact evaluates one titrant volume. The body is a scenario overlay
// plus a required "volume" in the scenario's unit.
func (s *Server) handleReact(w http.ResponseWriter, r *http.Request) {
	sc, body, err := s.readScenario(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	v := gjson.GetBytes(body, "volume")
	if v.Type != gjson.Number {
		s.writeError(w, errors.ConfigInvalid("volume is required and must be a number"))
		return
	}
	sample, err := s.service.Probe(sc, v.Float())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sample)
}
