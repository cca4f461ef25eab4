package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"harmonicd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Models() []types.ModelSpec
	Profiles() []types.HardwareProfile
	Allocate(req types.AllocateRequest) types.AllocationPlan
	Observe(req types.ObserveRequest)
	RecordSuccess(req types.SuccessRequest)
	RecordFailure(req types.FailureRequest)
	RecordProfile(req types.ProfileRequest)
	GetContext(ctx context.Context, req types.ContextRequest) string
	Status() types.StatusResponse
	Ready() bool
}

// serverBaseCtx is a process-level context that can be canceled on shutdown.
// Defaults to Background if not set.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts returns a context that is canceled when either a or b is done.
// The returned cancel func must be called to release the goroutine when the
// handler ends.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-a.Done():
			cancel()
		case <-b.Done():
			cancel()
		}
	}()
	return ctx, cancel
}

// NewMux builds the daemon's router.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.ModelsResponse{Models: svc.Models()})
	})

	r.Get("/profiles", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.ProfilesResponse{Profiles: svc.Profiles()})
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.Status())
	})

	r.Post("/allocate", func(w http.ResponseWriter, r *http.Request) {
		var req types.AllocateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		start := time.Now()
		plan := svc.Allocate(req)
		if lvl := requestLogLevel(r); lvl >= LevelInfo && zlog != nil {
			z := zlog.Info().
				Str("path", r.URL.Path).
				Str("profile", plan.Hardware.ID).
				Int("models", len(plan.Entries)).
				Int("max_parallel", plan.MaxParallel).
				Float64("total_gb", plan.TotalGB).
				Dur("dur", time.Since(start))
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Msg("allocate")
		}
		writeJSON(w, plan)
	})

	r.Post("/observe", func(w http.ResponseWriter, r *http.Request) {
		var req types.ObserveRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.TaskID) == "" {
			writeJSONError(w, http.StatusBadRequest, "task_id is required")
			return
		}
		svc.Observe(req)
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/outcomes/success", func(w http.ResponseWriter, r *http.Request) {
		var req types.SuccessRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		svc.RecordSuccess(req)
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/outcomes/failure", func(w http.ResponseWriter, r *http.Request) {
		var req types.FailureRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		svc.RecordFailure(req)
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/profile", func(w http.ResponseWriter, r *http.Request) {
		var req types.ProfileRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.TaskID) == "" {
			writeJSONError(w, http.StatusBadRequest, "task_id is required")
			return
		}
		svc.RecordProfile(req)
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/context", func(w http.ResponseWriter, r *http.Request) {
		var req types.ContextRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.TaskID) == "" {
			writeJSONError(w, http.StatusBadRequest, "task_id is required")
			return
		}
		start := time.Now()
		// Join server base context with request context so shutdown cancels
		// the briefing call too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		text := svc.GetContext(joinedCtx, req)
		CountContextServed(text != "")
		if lvl := requestLogLevel(r); lvl >= LevelInfo && zlog != nil {
			z := zlog.Info().
				Str("path", r.URL.Path).
				Str("task_id", req.TaskID).
				Str("category", req.Category).
				Int("context_len", len(text)).
				Dur("dur", time.Since(start))
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Msg("context")
		}
		writeJSON(w, types.ContextResponse{Context: text})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// decodeJSON validates Content-Type, applies the body cap, and decodes into
// dst. On failure it writes the error response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		// If exceeded size, MaxBytesReader may cause an error; still return
		// 400 to avoid size leak details
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}
