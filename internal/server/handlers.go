package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/growthcast/growthcast/internal/engagement"
	"github.com/growthcast/growthcast/internal/predictor"
	"github.com/rs/zerolog"
)

// HTTP Handlers

// APIError is the error body returned by the JSON API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// predict runs the pipeline on a JSON body
func (s *Server) predict(w http.ResponseWriter, r *http.Request) {
	in := predictor.DefaultInput()

	decoder := gojson.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&in); err != nil {
		s.metrics.ObserveValidationFailure("api")
		respondError(w, r, http.StatusBadRequest, "INVALID_JSON", fmt.Sprintf("Invalid JSON: %v", err), nil)
		return
	}

	result, err := s.runPrediction(r, "api", in)
	if err != nil {
		var ve *predictor.ValidationError
		if errors.As(err, &ve) {
			respondError(w, r, http.StatusBadRequest, ve.Code(), ve.Error(), ve.Issues)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "PREDICTION_FAILED", err.Error(), nil)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// runPrediction wraps the service call with metrics
func (s *Server) runPrediction(r *http.Request, source string, in predictor.Input) (*predictor.Result, error) {
	start := time.Now()
	result, err := s.service.Predict(r.Context(), in)
	if err != nil {
		if predictor.IsValidationError(err) {
			s.metrics.ObserveValidationFailure(source)
		}
		return nil, err
	}

	s.metrics.ObservePrediction(source, result.Category, time.Since(start).Seconds(), result.EngagementRate)
	return result, nil
}

// rateRequest carries the three counts the engagement rate is derived from
type rateRequest struct {
	TotalEngagements int64 `json:"total_engagements"`
	Followers        int64 `json:"followers"`
	Posts            int64 `json:"posts"`
}

type rateResponse struct {
	RatePercent float64 `json:"rate_percent"`
	Display     string  `json:"display"`
	Available   bool    `json:"available"`
}

func newRateResponse(req rateRequest) rateResponse {
	rate := engagement.ComputeRate(req.TotalEngagements, req.Followers, req.Posts)
	return rateResponse{
		RatePercent: rate,
		Display:     engagement.Format(rate),
		Available:   req.Followers > 0 && req.Posts > 0,
	}
}

// engagementRate computes the rate from query parameters
func (s *Server) engagementRate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	var err error
	query := r.URL.Query()

	if req.TotalEngagements, err = queryInt(query.Get("total_engagements")); err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_PARAMETER", "total_engagements must be a whole number", nil)
		return
	}
	if req.Followers, err = queryInt(query.Get("followers")); err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_PARAMETER", "followers must be a whole number", nil)
		return
	}
	if req.Posts, err = queryInt(query.Get("posts")); err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_PARAMETER", "posts must be a whole number", nil)
		return
	}

	respondJSON(w, http.StatusOK, newRateResponse(req))
}

// streamEngagementRate answers every websocket message with the recomputed
// rate, so the form can preview it while the user types
func (s *Server) streamEngagementRate(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		var req rateRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug().Err(err).Msg("Engagement stream closed")
			}
			return
		}

		if err := conn.WriteJSON(newRateResponse(req)); err != nil {
			logger.Debug().Err(err).Msg("Engagement stream write failed")
			return
		}
	}
}

// listModels returns metadata of the loaded artifacts
func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"artifacts": s.service.Store().Artifacts(),
	})
}

// healthCheck returns server health status
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":           "healthy",
		"artifacts_loaded": len(s.service.Store().Artifacts()),
		"timestamp":        time.Now(),
	})
}

func queryInt(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseInt(value, 10, 64)
}

// respondJSON writes data with the given status
func respondJSON(w http.ResponseWriter, status int, data any) {
	body, err := gojson.Marshal(data)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// respondError writes an APIError body and logs it
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	zerolog.Ctx(r.Context()).Warn().
		Str("code", code).
		Int("status", status).
		Msg(message)

	respondJSON(w, status, map[string]any{
		"error": APIError{Code: code, Message: message, Details: details},
	})
}
