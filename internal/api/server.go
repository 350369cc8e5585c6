// Package api exposes the application over HTTP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pvmelo/focuserp/internal/holidays"
	"github.com/pvmelo/focuserp/internal/ingest"
	"github.com/pvmelo/focuserp/internal/service"
	"github.com/pvmelo/focuserp/internal/store"
)

// Server bundles the services behind the HTTP handlers.
type Server struct {
	Store    *store.Store
	Tasks    *service.TaskService
	Finance  *service.FinanceService
	Ingestor *ingest.Ingestor
	Holidays *holidays.Client
	Log      *slog.Logger
}

func (s *Server) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
