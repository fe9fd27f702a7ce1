package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/minivoetbal/internal/domain/access"
	"github.com/riskibarqy/minivoetbal/internal/platform/logging"
	"github.com/riskibarqy/minivoetbal/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ActorResolver maps a bearer token onto the acting user.
type ActorResolver interface {
	ResolveActor(ctx context.Context, token string) (access.Actor, error)
}

// ResolveActor attaches the request's actor to the context. Requests
// without a usable session continue as the anonymous actor.
func ResolveActor(resolver ActorResolver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.ResolveActor")
		defer span.End()

		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			next.ServeHTTP(w, r.WithContext(withActor(ctx, access.Anonymous(), "")))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			writeError(ctx, w, fmt.Errorf("%w: invalid Authorization header format", usecase.ErrUnauthorized))
			return
		}

		token := strings.TrimSpace(parts[1])
		actor, err := resolver.ResolveActor(ctx, token)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: resolve session: %v", usecase.ErrDependencyUnavailable, err))
			return
		}

		next.ServeHTTP(w, r.WithContext(withActor(ctx, actor, token)))
	})
}

// RequireAuthenticated refuses the anonymous actor with 401.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequireAuthenticated")
		defer span.End()

		if !access.IsAuthenticated(actorFromContext(ctx).Role) {
			writeError(ctx, w, fmt.Errorf("%w: login required", usecase.ErrUnauthorized))
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole lets authenticated actors through only when allow accepts them.
func RequireRole(allow func(access.Actor) bool, next http.Handler) http.Handler {
	return RequireAuthenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequireRole")
		defer span.End()

		actor := actorFromContext(ctx)
		if !allow(actor) {
			writeError(ctx, w, fmt.Errorf("%w: role %s may not access %s", usecase.ErrForbidden, actor.Role, r.URL.Path))
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	}))
}

func adminOnly(actor access.Actor) bool {
	return access.CanManageCompetition(actor.Role)
}

func officialsOnly(actor access.Actor) bool {
	return access.CanOfficiate(actor.Role)
}

func teamManagers(actor access.Actor) bool {
	return actor.Role == access.RolePlayerManager && access.CanManageTeam(actor)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func RequestLogging(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequestLogging")
		defer span.End()

		started := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(ctx))

		logger.InfoContext(ctx, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}

// TracingOptions controls what RequestTracing records beyond the span.
type TracingOptions struct {
	CaptureRequestBody  bool
	RequestBodyMaxBytes int
}

func RequestTracing(opts TracingOptions, next http.Handler) http.Handler {
	if opts.CaptureRequestBody && opts.RequestBodyMaxBytes > 0 {
		next = captureRequestBody(opts.RequestBodyMaxBytes, next)
	}
	return otelhttp.NewHandler(next, "minivoetbal-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)
}

func shouldTraceRequest(path string) bool {
	normalized := strings.ToLower(strings.TrimSpace(path))
	switch normalized {
	case "/healthz", "/health", "/livez", "/readyz", "/metrics":
		return false
	default:
		return true
	}
}

// captureRequestBody copies the head of write payloads onto the active
// span. Credential carrying routes are never captured.
func captureRequestBody(maxBytes int, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := trace.SpanFromContext(r.Context())
		if !span.SpanContext().IsValid() || r.Body == nil || !shouldCaptureBody(r) {
			next.ServeHTTP(w, r)
			return
		}

		head, err := io.ReadAll(io.LimitReader(r.Body, int64(maxBytes)))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		span.SetAttributes(attribute.String("http.request.body", string(head)))
		r.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(head), r.Body), Closer: r.Body}

		next.ServeHTTP(w, r)
	})
}

func shouldCaptureBody(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return false
	}
	path := strings.ToLower(r.URL.Path)
	return !strings.HasPrefix(path, "/v1/auth/") && !strings.HasPrefix(path, "/v1/admin/users")
}

type readCloser struct {
	io.Reader
	io.Closer
}

func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := false
	allowMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		candidate := strings.TrimSpace(origin)
		if candidate == "" {
			continue
		}
		if candidate == "*" {
			allowAll = true
			continue
		}
		allowMap[candidate] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.CORS")
		defer span.End()

		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		allowed := allowAll
		if !allowed {
			_, allowed = allowMap[origin]
		}
		if allowed {
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type,Accept")
			w.Header().Set("Access-Control-Max-Age", "600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
