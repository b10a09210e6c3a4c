package app

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pennywise/pennywise/internal/rest"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {

	// Request logging
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			log.Debugf("%s %s (%s)", req.Method, req.URL.Path, time.Since(start))
		})
	})

	// Reject writes while storage is unavailable, so the UI can surface a
	// persistent warning instead of silently losing data.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if isWrite(req) && strings.HasPrefix(req.URL.Path, "/api/") {
				if !deps.Store.IsAvailable(req.Context()) {
					log.Warnf("storage unavailable, rejecting %s %s", req.Method, req.URL.Path)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusServiceUnavailable)
					_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
						Error:   "Storage unavailable",
						Details: "changes cannot be saved right now",
					})
					return
				}
			}
			next.ServeHTTP(w, req)
		})
	})
}

func isWrite(req *http.Request) bool {
	switch req.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
