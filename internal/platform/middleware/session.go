package middleware

import (
	"log/slog"
	"net/http"

	"resourcehub/internal/auth/cookies"
	"resourcehub/internal/auth/store/revocation"
	"resourcehub/internal/platform/metrics"
	"resourcehub/internal/token"
	dErrors "resourcehub/pkg/domain-errors"
	"resourcehub/pkg/platform/httputil"
	"resourcehub/pkg/requestcontext"
)

// SessionAuth is the cookie session gate. Per request it walks the token
// state machine:
//
//	access cookie valid                  -> proceed, no cookie mutation
//	access missing/expired, refresh good -> rotate: revoke old refresh jti,
//	                                        issue a fresh pair, set cookies
//	both exhausted                       -> 401, no mutation
//
// Rotation limits a leaked refresh token to a single use; the revocation list
// makes the old jti fail verification for the rest of its natural lifetime.
// Silent refresh is invisible to handlers: they only ever see an
// authenticated user ID in the context.
func SessionAuth(
	tokens *token.Service,
	trl revocation.List,
	m *metrics.Metrics,
	logger *slog.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			if access, err := r.Cookie(cookies.AccessCookie); err == nil {
				if claims, verr := tokens.Validate(access.Value, token.TypeAccess); verr == nil {
					userID, uerr := claims.UserUUID()
					if uerr == nil {
						next.ServeHTTP(w, r.WithContext(requestcontext.WithUserID(ctx, userID)))
						return
					}
				}
			}

			refresh, err := r.Cookie(cookies.RefreshCookie)
			if err != nil {
				unauthorized(w)
				return
			}

			claims, err := tokens.Validate(refresh.Value, token.TypeRefresh)
			if err != nil {
				unauthorized(w)
				return
			}

			revoked, err := trl.IsRevoked(ctx, claims.ID)
			if err != nil {
				logger.ErrorContext(ctx, "failed to check token revocation",
					"error", err,
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to validate session"))
				return
			}
			if revoked {
				logger.WarnContext(ctx, "refresh token revoked",
					"jti", claims.ID,
					"request_id", requestID,
				)
				unauthorized(w)
				return
			}

			userID, err := claims.UserUUID()
			if err != nil {
				unauthorized(w)
				return
			}

			pair, err := tokens.IssuePair(userID)
			if err != nil {
				logger.ErrorContext(ctx, "failed to issue refreshed token pair",
					"error", err,
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to refresh session"))
				return
			}

			// Rotate: the old refresh token must not survive its single use.
			// Best-effort; a TRL outage should not kill an otherwise valid session.
			if ttl := tokens.RemainingLifetime(claims); ttl > 0 {
				if err := trl.Revoke(ctx, claims.ID, ttl); err != nil {
					logger.ErrorContext(ctx, "failed to revoke rotated refresh token",
						"error", err,
						"jti", claims.ID,
						"request_id", requestID,
					)
				}
			}

			cookies.Set(w, pair, tokens.AccessTTL(), tokens.RefreshTTL())
			m.TokenRefreshes.Inc()

			next.ServeHTTP(w, r.WithContext(requestcontext.WithUserID(ctx, userID)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized,
		"authentication credentials were not provided or are invalid"))
}
