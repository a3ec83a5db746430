package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bakery-commerce-platform/internal/services"
)

type stubCleanupRunner struct {
	result *services.CleanupResult
	err    error
	runs   int
}

func (s *stubCleanupRunner) Run(now time.Time) (*services.CleanupResult, error) {
	s.runs++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestCleanupHandler_Run(t *testing.T) {
	const secret = "sweep-secret"

	tests := []struct {
		name       string
		header     string
		query      string
		runnerErr  error
		wantStatus int
		wantRuns   int
	}{
		{
			name:       "valid bearer secret",
			header:     "Bearer " + secret,
			wantStatus: http.StatusOK,
			wantRuns:   1,
		},
		{
			name:       "query parameter secret is rejected",
			query:      "?secret=" + secret,
			wantStatus: http.StatusUnauthorized,
			wantRuns:   0,
		},
		{
			name:       "wrong secret",
			header:     "Bearer wrong",
			wantStatus: http.StatusUnauthorized,
			wantRuns:   0,
		},
		{
			name:       "missing secret",
			wantStatus: http.StatusUnauthorized,
			wantRuns:   0,
		},
		{
			name:       "sweep failure",
			header:     "Bearer " + secret,
			runnerErr:  errors.New("database gone"),
			wantStatus: http.StatusInternalServerError,
			wantRuns:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &stubCleanupRunner{
				result: &services.CleanupResult{
					DeletedOrders:       2,
					DeletedReservations: 3,
					Timestamp:           time.Now(),
				},
				err: tt.runnerErr,
			}
			handler := NewCleanupHandler(runner, secret)

			req := httptest.NewRequest(http.MethodGet, "/api/cleanup"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.Run(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			// An unauthorized call must never reach the sweep
			if runner.runs != tt.wantRuns {
				t.Errorf("sweep runs = %d, want %d", runner.runs, tt.wantRuns)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}

			switch tt.wantStatus {
			case http.StatusOK:
				if body["success"] != true {
					t.Error("success flag missing or false")
				}
				if body["deletedOrders"] != float64(2) {
					t.Errorf("deletedOrders = %v, want 2", body["deletedOrders"])
				}
				if body["deletedReservations"] != float64(3) {
					t.Errorf("deletedReservations = %v, want 3", body["deletedReservations"])
				}
				if _, ok := body["timestamp"]; !ok {
					t.Error("timestamp missing")
				}
			default:
				if _, ok := body["error"]; !ok {
					t.Error("error message missing")
				}
				if _, ok := body["success"]; ok {
					t.Error("failure response carries success flag")
				}
			}
		})
	}
}

func TestCleanupHandler_EmptySecretNeverAuthorizes(t *testing.T) {
	runner := &stubCleanupRunner{result: &services.CleanupResult{}}
	handler := NewCleanupHandler(runner, "")

	req := httptest.NewRequest(http.MethodGet, "/api/cleanup", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	handler.Run(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if runner.runs != 0 {
		t.Errorf("sweep runs = %d, want 0", runner.runs)
	}
}
