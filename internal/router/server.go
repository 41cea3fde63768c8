package router

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/marketdata-cli/internal/provider"
	"github.com/sells-group/marketdata-cli/internal/query"
)

// ServerOptions configures the HTTP surface.
type ServerOptions struct {
	// RequestsPerSecond throttles the whole surface at the request
	// boundary. 0 disables throttling.
	RequestsPerSecond float64
	Burst             int
}

// NewHandler builds the chi router serving every declared operation under
// /v1, plus /health.
func NewHandler(exec *query.Executor, opts ServerOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = int(opts.RequestsPerSecond)
			if burst < 1 {
				burst = 1
			}
		}
		r.Use(throttle(rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		for _, op := range Operations {
			r.Get(op.Path, handleOperation(exec, op))
		}
	})

	return r
}

// throttle rejects requests above the configured rate with 429. The
// fetchers themselves never rate-limit; this guards the serve boundary
// only.
func throttle(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func handleOperation(exec *query.Executor, op Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := provider.Params{}
		providerName := ""
		for key, vals := range r.URL.Query() {
			if key == "provider" {
				providerName = vals[0]
				continue
			}
			if len(vals) == 1 {
				params[key] = vals[0]
			} else {
				params[key] = vals
			}
		}

		result, err := exec.Execute(r.Context(), op.Name, op.Model, providerName, params)
		if err != nil {
			status, code := classify(err)
			if status >= http.StatusInternalServerError {
				zap.L().Error("operation failed",
					zap.String("operation", op.Name),
					zap.String("provider", providerName),
					zap.Error(err),
				)
			}
			writeError(w, status, code, eris.ToString(err, false))
			return
		}

		if op.Deprecated {
			result.Warnings = append(result.Warnings, op.DeprecationNote)
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// classify maps executor errors onto HTTP status codes: validation 400,
// empty payload 404 with its own code, anything upstream 502.
func classify(err error) (int, string) {
	if provider.IsValidation(err) {
		return http.StatusBadRequest, "invalid_params"
	}
	if errors.Is(err, provider.ErrEmptyData) {
		return http.StatusNotFound, "empty_data"
	}
	var apiErr *provider.APIError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway, "upstream_error"
	}
	return http.StatusBadGateway, "upstream_error"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error": msg, "code": code})
}
