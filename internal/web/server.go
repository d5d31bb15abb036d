package web

import (
	"net/http"

	"github.com/intelligrit/attraction-scout/internal/model"
	"github.com/intelligrit/attraction-scout/internal/pipeline"
	"go.uber.org/zap"
)

// HistoryReader lists recorded lookups.
type HistoryReader interface {
	ReadLookups(cityKey string, limit int) ([]model.LookupRun, error)
}

// Server serves the attraction lookup API.
type Server struct {
	Service *pipeline.Service
	History HistoryReader
	Logger  *zap.Logger
	Addr    string
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /attractions", s.handleAttractions)
	mux.HandleFunc("POST /verify", s.handleVerify)
	mux.HandleFunc("GET /history", s.handleHistory)

	return mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.logger().Info("serving", zap.String("addr", "http://"+s.Addr))
	return http.ListenAndServe(s.Addr, s.Handler())
}

func (s *Server) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
