package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/robinvdvleuten/costbasis"
	"github.com/robinvdvleuten/costbasis/telemetry"
	"github.com/robinvdvleuten/costbasis/txn"
)

// ErrorResponse is the JSON body of a rejected request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON body of the health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version,omitempty"`
	CommitSHA string `json:"commitSHA,omitempty"`
}

func writeJSONResponse(w http.ResponseWriter, data any) {
	writeJSONStatus(w, http.StatusOK, data)
}

func writeJSONStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSONStatus(w, status, ErrorResponse{Error: message})
}

// handleCalculate handles POST requests to /api/calculate.
//
// Query parameters:
//   - strict: "true" rejects invalid numeric fields per transaction instead
//     of coercing them. Defaults to the server configuration.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := telemetry.Logger(ctx)

	config := s.Config.Clone()
	if strictParam := r.URL.Query().Get("strict"); strictParam != "" {
		strict, err := strconv.ParseBool(strictParam)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid strict parameter: "+strictParam)
			return
		}
		config.Strict = strict
	}

	body := r.Body
	if s.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)
	}

	report, err := costbasis.CalculateRequest(config.WithContext(ctx), body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		var validationErr *txn.InputValidationError
		switch {
		case errors.As(err, &maxBytesErr):
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
		case errors.As(err, &validationErr):
			writeJSONError(w, http.StatusBadRequest, validationErr.Error())
		default:
			logger.Error("calculation failed", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "calculation failed")
		}
		return
	}

	logger.Info("calculated",
		"transactions", report.Summary.Transactions,
		"failures", report.Summary.Failures,
		"strict", config.Strict,
	)

	writeJSONResponse(w, report)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, HealthResponse{
		Status:    "ok",
		Version:   s.Version,
		CommitSHA: s.CommitSHA,
	})
}

// handleGetReport handles GET requests to /api/report.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	report := s.cachedReport()
	if report == nil {
		writeJSONError(w, http.StatusNotFound, "no file is being served")
		return
	}
	writeJSONResponse(w, report)
}
