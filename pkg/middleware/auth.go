package middleware

import (
	"errors"
	"net/http"

	"pgstay/pkg/auth"
	apperrors "pgstay/pkg/errors"
	httputil "pgstay/pkg/http"
	"pgstay/pkg/logger"
	"pgstay/pkg/notify"
)

// Authenticate resolves the bearer token into an identity on the request
// context. Requests without a token continue anonymously; gated operations
// decide for themselves. A token that fails verification is rejected.
func Authenticate(verifier *auth.Verifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r)
			if errors.Is(err, auth.ErrNoToken) {
				next.ServeHTTP(w, r)
				return
			}
			if err == nil {
				var id *auth.Identity
				id, err = verifier.Verify(token)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
					return
				}
			}

			log.Warn("Rejected bearer token",
				"request_id", requestIDFrom(r),
				"path", r.URL.Path,
				"error", err,
			)
			httputil.WriteError(w, apperrors.Unauthorized("Invalid or expired session").
				WithNotification(notify.Destructive(notify.TitleLoginRequired, "Your session has expired. Please login again.")).
				WithRedirect(notify.RedirectAuth))
		})
	}
}
