package api

import (
	"context"
	"encoding/json"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/rainbow-hash/common/consul"
	"github.com/ykhdr/rainbow-hash/common/http/middleware"
	"github.com/ykhdr/rainbow-hash/cracker/internal/hashcrack"
	"github.com/ykhdr/rainbow-hash/pkg/messages"
	"net"
	"net/http"
	"strconv"
	"time"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	l        zerolog.Logger
	addr     string
	cracker  *hashcrack.Cracker
	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

// NewRegistry returns the registry the server exposes on /metrics, with the
// Go runtime and process collectors already registered.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func NewServer(addr string, cracker *hashcrack.Cracker, registry *prometheus.Registry) *Server {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rainbow",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})
	registry.MustRegister(requests)
	return &Server{
		addr:     addr,
		cracker:  cracker,
		registry: registry,
		requests: requests,
		l: log.With().
			Str("domain", "api-server").
			Str("type", "http").
			Str("content-type", "application/json").
			Logger(),
	}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(s.l), middleware.MetricsMiddleware(s.requests))
	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")
	router.HandleFunc(consul.HealthPath, s.handleHealth).Methods("GET")
	apiRouter := router.PathPrefix("/api/hash").Subrouter()
	apiRouter.Use(middleware.ApplicationJsonContentTypeMiddleware())
	apiRouter.HandleFunc("/crack", s.handleHashCrackQuery).Methods("GET")
	apiRouter.HandleFunc("/crack", s.handleHashCrackBody).Methods("POST")
	return router
}

// Start serves until ctx is done and then shuts the server down.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.l.Warn().Err(err).Msg("api server shutdown failed")
		}
	}()
	s.l.Info().Str("address", s.addr).Msg("api server is running")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.l.Error().Err(err).Msg("api server failed")
		return errors.Wrap(err, "api server failed")
	}
	s.l.Debug().Msg("api server stopped")
	return nil
}

func (s *Server) handleHashCrackQuery(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	hash := query.Get("hash")
	if hash == "" {
		http.Error(w, "Missing hash", http.StatusBadRequest)
		return
	}
	salted := false
	if raw := query.Get("salted"); raw != "" {
		var err error
		if salted, err = strconv.ParseBool(raw); err != nil {
			http.Error(w, "Invalid salted flag", http.StatusBadRequest)
			return
		}
	}
	s.crack(w, r, messages.NewCrackHashRequest(hash, salted))
}

func (s *Server) handleHashCrackBody(w http.ResponseWriter, r *http.Request) {
	var req messages.CrackHashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.l.Warn().Err(err).Msg("invalid request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Hash == "" {
		http.Error(w, "Missing hash", http.StatusBadRequest)
		return
	}
	if req.RequestId == "" {
		req.RequestId = messages.NewCrackHashRequest(req.Hash, req.UseSalts).RequestId
	}
	s.crack(w, r, &req)
}

func (s *Server) crack(w http.ResponseWriter, r *http.Request, req *messages.CrackHashRequest) {
	resp := s.cracker.Crack(r.Context(), req)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.l.Warn().Err(err).Msg("failed to encode response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		s.l.Warn().Err(err).Msg("failed to write health response")
	}
}
