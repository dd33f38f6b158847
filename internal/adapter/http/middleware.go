package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kasirapp/kasir/internal/adapter/logger"
	"github.com/kasirapp/kasir/internal/domain"
	"github.com/kasirapp/kasir/internal/interfaces"
)

type contextKey string

const customerKey contextKey = "customer_id"

// WithCustomer stores the resolved customer id on the request context.
func WithCustomer(ctx context.Context, customerID string) context.Context {
	return context.WithValue(ctx, customerKey, customerID)
}

// CustomerID reads the customer id resolved by AuthMiddleware; ok is false
// for unauthenticated requests.
func CustomerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(customerKey).(string)
	return id, ok && id != ""
}

// AuthMiddleware resolves the bearer token through the identity provider
// and attaches the customer id to the context. Requests without a
// resolvable identity pass through without one; handlers that require an
// identity reject them with 401.
func AuthMiddleware(resolver interfaces.IdentityResolver, logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token != "" {
				customerID, err := resolver.Resolve(r.Context(), token)
				switch {
				case err == nil:
					r = r.WithContext(WithCustomer(r.Context(), customerID))
				case !errors.Is(err, domain.ErrUnauthenticated):
					logger.Error("identity_resolve_failed", "Failed to resolve session", "", nil, err)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func LoggingMiddleware(logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := fmt.Sprintf("req-%d", time.Now().UnixNano())

			logger.Debug("http_request", fmt.Sprintf("%s %s", r.Method, r.URL.Path), requestID, map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			next.ServeHTTP(w, r)

			duration := time.Since(start)
			logger.Debug("http_response", "Request completed", requestID, map[string]interface{}{
				"duration_ms": duration.Milliseconds(),
			})
		})
	}
}

func RecoveryMiddleware(logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					requestID := fmt.Sprintf("req-%d", time.Now().UnixNano())
					logger.Error("panic_recovered", "Panic recovered", requestID, nil, fmt.Errorf("%v", err))
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
