package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"titrate/adapters/archive"
	"titrate/app"
	"titrate/domain/titration"
	"titrate/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, withArchive bool) *Server {
	t.Helper()
	logger := internal.NewLogger(internal.LogLevelError, io.Discard)
	svc := app.NewCurveService(2, logger, nil)
	if withArchive {
		db, err := archive.Open(context.Background(), "sqlite3", ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		svc = app.NewCurveService(2, logger, archive.NewRunRepository(db))
	}
	return NewServer(svc, titration.DefaultScenario(), logger)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t, false), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateCurve_DefaultScenario(t *testing.T) {
	rec := do(t, newTestServer(t, false), http.MethodPost, "/api/curves", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID      string            `json:"id"`
		Summary titration.Summary `json:"summary"`
		Chart   titration.Chart   `json:"chart"`
		Report  string            `json:"report"`
	}
	decode(t, rec, &resp)
	assert.NotEmpty(t, resp.ID)
	assert.InDelta(t, 50.0, resp.Summary.TitrantVolNeededML, 1e-9)
	assert.Greater(t, resp.Summary.EquivalencePH, 7.0)
	assert.Equal(t, "Weak Acid-Strong Base Titration Curve", resp.Chart.Title)
	assert.Equal(t, len(resp.Chart.X), len(resp.Chart.Y))
	assert.Contains(t, resp.Report, "Volume of Titrant Needed for Equivalence: 50 mL")
}

func TestCreateCurve_ErrorStatuses(t *testing.T) {
	s := newTestServer(t, false)
	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"bad unit", `{"unit":"gal"}`, http.StatusBadRequest, "CONFIG_INVALID"},
		{"bad ratio", `{"ratio":[1,1]}`, http.StatusBadRequest, "CONFIG_INVALID"},
		{"malformed json", `{"unit":`, http.StatusBadRequest, "CONFIG_INVALID"},
		{"weak weak", `{"strong_titrant":false}`, http.StatusNotImplemented, "NOT_IMPLEMENTED"},
		{"all discarded", `{"strong_analyte":true,"c_analyte":20,"c_titrant":0.001,"final_vol":10,"increment":1}`, http.StatusUnprocessableEntity, "EMPTY_RESULT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/curves", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			var resp errorResponse
			decode(t, rec, &resp)
			assert.Equal(t, tc.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestReact(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodPost, "/api/react", `{"volume":50}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var sample struct {
		Volume float64 `json:"volume"`
		PH     float64 `json:"ph"`
		State  struct {
			Regime string `json:"regime"`
		} `json:"state"`
	}
	decode(t, rec, &sample)
	assert.Equal(t, 50.0, sample.Volume)
	assert.Equal(t, "at_equivalence", sample.State.Regime)
	assert.Greater(t, sample.PH, 7.0)

	rec = do(t, s, http.MethodPost, "/api/react", `{"unit":"L"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArchiveRoutes(t *testing.T) {
	s := newTestServer(t, true)

	rec := do(t, s, http.MethodPost, "/api/curves", `{"kind":"base","k":1.8e-5,"c_analyte":0.1,"c_titrant":0.1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	decode(t, rec, &created)

	rec = do(t, s, http.MethodGet, "/api/curves", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []titration.RunInfo
	decode(t, rec, &runs)
	require.Len(t, runs, 1)
	assert.Equal(t, created.ID, runs[0].ID.String())

	rec = do(t, s, http.MethodGet, "/api/curves/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Chart titration.Chart `json:"chart"`
	}
	decode(t, rec, &got)
	assert.Equal(t, "Weak Base-Strong Acid Titration Curve", got.Chart.Title)

	rec = do(t, s, http.MethodGet, "/api/curves/"+created.ID+"/report", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Weak Base-Strong Acid Titration Curve")

	rec = do(t, s, http.MethodGet, "/api/curves/0190b3e1-0000-7000-8000-000000000000", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/curves/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/curves?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArchiveRoutes_Disabled(t *testing.T) {
	rec := do(t, newTestServer(t, false), http.MethodGet, "/api/curves", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
