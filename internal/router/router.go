package router

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/arkadyv/noteboard/internal/auth"
	"github.com/arkadyv/noteboard/internal/config"
	"github.com/arkadyv/noteboard/internal/httperr"
	"github.com/arkadyv/noteboard/internal/note"
	noterepo "github.com/arkadyv/noteboard/internal/note/repo"
	"github.com/arkadyv/noteboard/internal/user"
	userrepo "github.com/arkadyv/noteboard/internal/user/repo"
	"github.com/arkadyv/noteboard/internal/weather"
)

// PublicPaths is the exact-match allow-list of routes that bypass the auth
// gate.
var PublicPaths = []string{"/", "/api/health", "/api/register", "/api/login"}

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware returns a middleware that logs requests at debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// RecoveryMiddleware converts handler panics into a 500 response so a single
// bad request can never crash the process.
func RecoveryMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Errorw("panic recovered",
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					httperr.Write(w, logger, httperr.Internal())
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RegisterRoutes mounts HTTP handlers on the standard library's http.ServeMux
// and wraps them with the middleware chain: request logging, panic recovery,
// security headers, then the auth gate in front of every non-public route.
func RegisterRoutes(cfg *config.Config, logger *zap.SugaredLogger, db *sqlx.DB) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		httperr.WriteJSON(w, http.StatusOK, map[string]string{"message": "noteboard api"})
	})

	userHandler := user.NewHandler(
		user.NewUserService(userrepo.NewUserRepo(db), user.BcryptHasher{Cost: cfg.HashCost}),
		cfg.Secret, logger,
	)
	mux.HandleFunc("PUT /api/register", userHandler.Register)
	mux.HandleFunc("POST /api/login", userHandler.Login)

	noteHandler := note.NewHandler(note.NewNoteService(noterepo.NewNoteRepo(db)), logger)
	mux.HandleFunc("POST /api/todos", noteHandler.Create)
	mux.HandleFunc("GET /api/todos", noteHandler.List)
	mux.HandleFunc("GET /api/todos/{id}", noteHandler.Get)
	mux.HandleFunc("DELETE /api/todos/{id}", noteHandler.Delete)

	weatherHandler := weather.NewHandler(weather.NewWeatherService(cfg.WeatherAPIKey), logger)
	mux.HandleFunc("GET /api/weather", weatherHandler.Get)

	gate := auth.Gate(cfg.Secret, PublicPaths, logger)
	handler := LoggingMiddleware(logger)(RecoveryMiddleware(logger)(SecurityHeadersMiddleware()(gate(mux))))
	return handler
}
