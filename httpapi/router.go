package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"
)

// NewRouter mounts every endpoint behind request ID, access log, panic
// recovery and CORS middleware.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(chimid.RequestID)
	r.Use(echoRequestID)
	r.Use(chimid.RealIP)
	r.Use(accessLog)
	r.Use(chimid.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{chimid.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/healthz", h.Health)

	r.Route("/players/{playerID}", func(rr chi.Router) {
		rr.Get("/balance", h.Balance)
		rr.Post("/deposit", h.Deposit)
		rr.Post("/withdraw", h.Withdraw)

		rr.Post("/rounds", h.PlayRound)
		rr.Get("/odds", h.Odds)
		rr.Post("/state/reset", h.ResetState)

		rr.Get("/history", h.History)
		rr.Delete("/history", h.ClearHistory)
		rr.Get("/stats", h.Stats)
	})

	return r
}

// echoRequestID returns the request ID to the caller
func echoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimid.GetReqID(r.Context()); id != "" {
			w.Header().Set(chimid.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog logs one line per request through logrus
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		entry := log.WithFields(log.Fields{
			"request_id": chimid.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start),
		})
		if ww.Status() >= http.StatusInternalServerError {
			entry.Warn("HTTP request")
		} else {
			entry.Debug("HTTP request")
		}
	})
}

// NewServer wraps the router in an http.Server with conservative timeouts
func NewServer(addr string, h *Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
