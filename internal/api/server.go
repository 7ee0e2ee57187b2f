// Package api exposes a trie.Trie[[]byte] over HTTP, the "network serving"
// collaborator spec.md §1 treats as external to the core. It holds one
// trie behind a mutex — the trie itself stays single-threaded (spec.md
// §5) — so this server has no multi-writer concurrency story, matching
// that Non-goal.
package api

import (
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jaiminpan/mtrie/pkg/log"
	"github.com/jaiminpan/mtrie/trie"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mtrie",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Number of trie HTTP requests by operation and outcome.",
	}, []string{"op", "outcome"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mtrie",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Latency of trie HTTP requests by operation.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}

// Server serves a single trie.Trie[[]byte] over HTTP.
type Server struct {
	mu  sync.Mutex
	tr  *trie.Trie[[]byte]
	log *log.Logger
}

// New builds a Server around tr, logging through logger (or the package
// default if nil).
func New(tr *trie.Trie[[]byte], logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{tr: tr, log: logger.Module("api")}
}

// Handler returns the server's http.Handler, routed with gorilla/mux.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/keys/{key}", s.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/keys/{key}", s.handlePut).Methods(http.MethodPut)
	r.HandleFunc("/keys/{key}", s.handleDelete).Methods(http.MethodDelete)
	r.HandleFunc("/digest", s.handleDigest).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (s *Server) observe(op string, start time.Time, outcome string) {
	requestsTotal.WithLabelValues(op, outcome).Inc()
	requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	key, err := decodeKey(r)
	if err != nil {
		s.observe("get", start, "bad_request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	value, ok := s.tr.Get(key)
	s.mu.Unlock()

	if !ok {
		s.observe("get", start, "not_found")
		http.NotFound(w, r)
		return
	}
	s.observe("get", start, "ok")
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(*value)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	key, err := decodeKey(r)
	if err != nil {
		s.observe("put", start, "bad_request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	value, err := io.ReadAll(r.Body)
	if err != nil {
		s.observe("put", start, "bad_request")
		http.Error(w, "reading body: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err = s.tr.Insert(key, value)
	s.mu.Unlock()

	switch {
	case err == nil:
		s.observe("put", start, "ok")
		w.WriteHeader(http.StatusCreated)
	case errors.Is(err, trie.KeyAlreadyPresent):
		s.observe("put", start, "conflict")
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		s.observe("put", start, "error")
		s.log.Error("insert failed", "key", hex.EncodeToString(key), "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	key, err := decodeKey(r)
	if err != nil {
		s.observe("delete", start, "bad_request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	_, ok := s.tr.Remove(key)
	s.mu.Unlock()

	if !ok {
		s.observe("delete", start, "not_found")
		http.NotFound(w, r)
		return
	}
	s.observe("delete", start, "ok")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mu.Lock()
	digest := s.tr.RootDigest()
	s.mu.Unlock()

	s.observe("digest", start, "ok")
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(hex.EncodeToString(digest[:])))
}

func decodeKey(r *http.Request) ([]byte, error) {
	raw := mux.Vars(r)["key"]
	return []byte(raw), nil
}
