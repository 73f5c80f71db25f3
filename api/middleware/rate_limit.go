package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/synapsehq/synapse-backend/api/responses"
	"github.com/synapsehq/synapse-backend/pkg/config"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
	"github.com/synapsehq/synapse-backend/pkg/logger"
	pkgredis "github.com/synapsehq/synapse-backend/pkg/redis"
)

// RateLimit applies a fixed-window per-user limit to authenticated routes.
// Limiter errors fail open.
func RateLimit(cfg config.RateLimitConfig, client *pkgredis.Client, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled || client == nil || cfg.Limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			scope := UserIDFromContext(r.Context())
			if scope == "" {
				scope = remoteScope(r)
			}

			allowed, count, err := client.FixedWindowAllow(r.Context(), scope, cfg.Limit, cfg.Window)
			if err != nil {
				if logg != nil {
					logg.Error(r.Context(), "rate limit check failed", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				w.Header().Set("Retry-After", strconv.FormatInt(int64(cfg.Window.Seconds()), 10))
				if logg != nil {
					ctx := logg.WithFields(r.Context(), map[string]any{
						"scope": scope,
						"count": count,
						"limit": cfg.Limit,
					})
					logg.Warn(ctx, "rate limit exceeded")
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeRateLimited, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func remoteScope(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return fmt.Sprintf("ip:%s", forwarded)
	}
	return fmt.Sprintf("ip:%s", r.RemoteAddr)
}
