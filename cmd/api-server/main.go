package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"mutadjacency/internal/analysis"
	"mutadjacency/internal/model"
	"mutadjacency/internal/sweep"
)

// maxTrials caps per-request simulation work so a single caller cannot
// pin a CPU indefinitely.
const maxTrials = 10_000_000

// APIServer provides stateless HTTP endpoints for the adjacency
// estimators. Every request is an independent computation; nothing is
// persisted between calls.
type APIServer struct {
	rateLimiter *rate.Limiter
	metrics     *Metrics
}

// Metrics tracks API performance.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	activeRequests  prometheus.Gauge
}

func newMetrics() *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"endpoint", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "api_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		activeRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "api_active_requests",
				Help: "Number of active API requests",
			},
		),
	}

	prometheus.MustRegister(m.requestsTotal, m.requestDuration, m.activeRequests)
	return m
}

func NewAPIServer(rps float64) *APIServer {
	return &APIServer{
		rateLimiter: rate.NewLimiter(rate.Limit(rps), int(2*rps)),
		metrics:     newMetrics(),
	}
}

// EstimateRequest is the payload shared by both estimator endpoints.
type EstimateRequest struct {
	N      int   `json:"n"`
	K      int   `json:"k"`
	Trials int   `json:"trials"`
	Seed   int64 `json:"seed,omitempty"`
}

// EstimateResponse carries a probability estimate with its binomial
// standard error.
type EstimateResponse struct {
	N           int     `json:"n"`
	K           int     `json:"k"`
	Trials      int     `json:"trials"`
	Probability float64 `json:"probability"`
	StdError    float64 `json:"std_error"`
}

// SweepRequest describes a sweep over a contiguous k range.
type SweepRequest struct {
	Mode     string `json:"mode"` // "next" or "any"
	N        int    `json:"n"`
	KMin     int    `json:"k_min"`
	KMax     int    `json:"k_max"`
	Trials   int    `json:"trials"`
	Seed     int64  `json:"seed,omitempty"`
	Parallel bool   `json:"parallel,omitempty"`
}

// SweepRow is one sweep result row; failed points carry Error instead of
// a probability.
type SweepRow struct {
	K           int     `json:"k"`
	Probability float64 `json:"probability"`
	Source      string  `json:"source"`
	Error       string  `json:"error,omitempty"`
}

// HealthResponse represents health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

func (s *APIServer) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow() {
			s.metrics.requestsTotal.WithLabelValues(r.URL.Path, "429").Inc()
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *APIServer) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.activeRequests.Inc()
		defer s.metrics.activeRequests.Dec()

		next.ServeHTTP(w, r)

		duration := time.Since(start).Seconds()
		s.metrics.requestDuration.WithLabelValues(r.URL.Path).Observe(duration)
	})
}

// HandleHealth returns API health status.
func (s *APIServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleNextAdjacency estimates the next-mutation adjacency probability.
func (s *APIServer) HandleNextAdjacency(w http.ResponseWriter, r *http.Request) {
	s.handleEstimate(w, r, "/api/v1/next-adjacency", model.NextAdjacency)
}

// HandleAnyAdjacency estimates the any-adjacent-pair probability.
func (s *APIServer) HandleAnyAdjacency(w http.ResponseWriter, r *http.Request) {
	s.handleEstimate(w, r, "/api/v1/any-adjacency", model.AnyAdjacency)
}

func (s *APIServer) handleEstimate(w http.ResponseWriter, r *http.Request, endpoint string, fn sweep.Estimator) {
	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Trials > maxTrials {
		http.Error(w, "trials exceeds server limit", http.StatusBadRequest)
		return
	}

	p, err := fn(model.NewStream(req.Seed), req.N, req.K, req.Trials)
	if err != nil {
		// Parameter validation is the only failure mode of the
		// estimators, so surface the message to the caller.
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := EstimateResponse{
		N:           req.N,
		K:           req.K,
		Trials:      req.Trials,
		Probability: p,
		StdError:    analysis.StdError(p, req.Trials),
	}

	s.metrics.requestsTotal.WithLabelValues(endpoint, "200").Inc()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleHeuristic returns the deterministic closed-form bound.
func (s *APIServer) HandleHeuristic(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	if err != nil {
		http.Error(w, "query parameter n must be an integer", http.StatusBadRequest)
		return
	}
	k, err := strconv.Atoi(r.URL.Query().Get("k"))
	if err != nil {
		http.Error(w, "query parameter k must be an integer", http.StatusBadRequest)
		return
	}

	bound, err := model.HeuristicBound(n, k)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.metrics.requestsTotal.WithLabelValues("/api/v1/heuristic", "200").Inc()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]float64{"bound": bound})
}

// HandleSweep runs a sweep over a contiguous k range.
func (s *APIServer) HandleSweep(w http.ResponseWriter, r *http.Request) {
	var req SweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var fn sweep.Estimator
	var source string
	switch req.Mode {
	case "next":
		fn, source = model.NextAdjacency, sweep.SourceNext
	case "any":
		fn, source = model.AnyAdjacency, sweep.SourceAny
	default:
		http.Error(w, "mode must be next or any", http.StatusBadRequest)
		return
	}

	if req.KMin < 0 || req.KMax < req.KMin {
		http.Error(w, "invalid k range", http.StatusBadRequest)
		return
	}
	if req.Trials < 1 || req.Trials > maxTrials {
		http.Error(w, "trials out of range", http.StatusBadRequest)
		return
	}

	ks := make([]int, 0, req.KMax-req.KMin+1)
	for k := req.KMin; k <= req.KMax; k++ {
		ks = append(ks, k)
	}

	var points []sweep.Point
	if req.Parallel {
		points = sweep.RunParallel(r.Context(), sweep.DefaultConfig(req.Seed), fn, source, req.N, ks, req.Trials)
	} else {
		points = sweep.Run(fn, source, req.N, ks, req.Trials, req.Seed)
	}

	rows := make([]SweepRow, len(points))
	for i, p := range points {
		rows[i] = SweepRow{K: p.K, Probability: p.Probability, Source: p.Source}
		if p.Err != nil {
			rows[i] = SweepRow{K: p.K, Source: p.Source, Error: p.Err.Error()}
		}
	}

	s.metrics.requestsTotal.WithLabelValues("/api/v1/sweep", "200").Inc()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

func main() {
	rps := getEnvFloat("RATE_LIMIT", 100)
	server := NewAPIServer(rps)

	// Setup router
	r := mux.NewRouter()
	r.Use(server.rateLimitMiddleware)
	r.Use(server.metricsMiddleware)

	// API endpoints
	r.HandleFunc("/health", server.HandleHealth).Methods("GET")
	r.HandleFunc("/api/v1/next-adjacency", server.HandleNextAdjacency).Methods("POST")
	r.HandleFunc("/api/v1/any-adjacency", server.HandleAnyAdjacency).Methods("POST")
	r.HandleFunc("/api/v1/heuristic", server.HandleHeuristic).Methods("GET")
	r.HandleFunc("/api/v1/sweep", server.HandleSweep).Methods("POST")

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// HTTP server
	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("API server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
