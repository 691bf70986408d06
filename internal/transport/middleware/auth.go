package middleware

import (
	"net/http"
	"strings"

	"github.com/streletskiy/archimap-sub000/internal/domain"
	"github.com/streletskiy/archimap-sub000/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (domain.Actor, error)
}

// Auth attaches the bearer token's actor to the request context. Requests
// without a token pass through anonymously; handlers decide whether an
// actor or a reviewer is required.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			actor, err := validator.ValidateAccessToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, unauthorizedBody)
				return
			}
			ctx := ctxutil.WithIdentity(r.Context(), actor.Identity, actor.Reviewer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromCtx returns the caller stored by Auth. The zero Actor means an
// anonymous request.
func ActorFromCtx(r *http.Request) domain.Actor {
	identity, ok := ctxutil.IdentityFromCtx(r.Context())
	if !ok {
		return domain.Actor{}
	}
	return domain.Actor{Identity: identity, Reviewer: ctxutil.IsReviewerCtx(r.Context())}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
