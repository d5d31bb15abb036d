package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/intelligrit/attraction-scout/internal/cache"
	"github.com/intelligrit/attraction-scout/internal/pipeline"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 10

type attractionsRequest struct {
	City   string `json:"city"`
	Verify bool   `json:"verify"`
}

type verifyRequest struct {
	City string `json:"city"`
	Name string `json:"name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAttractions(w http.ResponseWriter, r *http.Request) {
	var req attractionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.City) == "" {
		writeError(w, http.StatusBadRequest, "city is required")
		return
	}

	attractions, err := s.Service.Lookup(r.Context(), req.City, pipeline.Options{Verify: req.Verify})
	if err != nil {
		s.logger().Error("attraction search failed", zap.String("city", req.City), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, attractions)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	writeJSON(w, s.Service.Verify(r.Context(), req.Name, req.City))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		writeJSON(w, nil)
		return
	}

	limit := defaultHistoryLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid 'limit' parameter")
			return
		}
		limit = n
	}

	var cityKey string
	if city := r.URL.Query().Get("city"); city != "" {
		cityKey = cache.Key(city)
	}

	runs, err := s.History.ReadLookups(cityKey, limit)
	if err != nil {
		s.logger().Error("reading history", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "reading history failed")
		return
	}
	if runs == nil {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, runs)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	setHeaders(w)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, v any) {
	setHeaders(w)
	if v == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func setHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	// Wildcard CORS; the API is meant for local use.
	w.Header().Set("Access-Control-Allow-Origin", "*")
}
