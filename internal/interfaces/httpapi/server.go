package httpapi

import (
	"net/http"

	"github.com/riskibarqy/minivoetbal/internal/observability"
	"github.com/riskibarqy/minivoetbal/internal/platform/logging"
)

// RouterConfig carries the transport level settings of NewRouter.
type RouterConfig struct {
	CORSAllowedOrigins []string
	Tracing            TracingOptions
	Metrics            *observability.Metrics
}

func NewRouter(handler *Handler, resolver ActorResolver, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.Metrics)
	registerPublicRoutes(mux, handler)
	registerAuthRoutes(mux, handler)
	registerMatchActionRoutes(mux, handler)
	registerTeamManagerRoutes(mux, handler)
	registerAdminRoutes(mux, handler)

	instrumented := observability.HTTPMetricsMiddleware(cfg.Metrics)(mux)
	return RequestTracing(cfg.Tracing,
		RequestLogging(logger,
			CORS(cfg.CORSAllowedOrigins,
				recoverPanic(logger,
					ResolveActor(resolver, instrumented)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
