package rest

import (
	"log/slog"
	"net/http"

	"github.com/streletskiy/archimap-sub000/internal/config"
	"github.com/streletskiy/archimap-sub000/internal/domain"
	"github.com/streletskiy/archimap-sub000/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (domain.Actor, error)
}

// RouterDeps holds everything the HTTP surface is built from.
type RouterDeps struct {
	Proposals   *ProposalHandler
	Merge       *MergeHandler
	Health      *HealthHandler
	Tokens      tokenValidator
	RateLimiter *middleware.RateLimiter
	RateLimit   config.RateLimitConfig
	CORS        config.CORSConfig
	Logger      *slog.Logger
}

// NewRouter builds the API mux wrapped in the middleware chain. Health
// probes bypass authentication and request logging.
func NewRouter(d RouterDeps) http.Handler {
	api := http.NewServeMux()

	var submitLimit middleware.Middleware
	if d.RateLimiter != nil {
		submitLimit = d.RateLimiter.Limit(d.RateLimit.SubmitPerMinute, d.RateLimit.Burst)
	}
	api.Handle("POST /api/proposals", middleware.Chain(submitLimit)(http.HandlerFunc(d.Proposals.Submit)))

	api.HandleFunc("GET /api/account/proposals", d.Proposals.ListOwn)
	api.HandleFunc("GET /api/account/proposals/{id}", d.Proposals.GetOwn)

	api.HandleFunc("GET /api/admin/proposals", d.Proposals.ListAll)
	api.HandleFunc("GET /api/admin/proposals/{id}", d.Proposals.Get)
	api.HandleFunc("POST /api/admin/proposals/{id}/reject", d.Proposals.Reject)
	api.HandleFunc("POST /api/admin/proposals/{id}/merge", d.Merge.Merge)
	api.HandleFunc("GET /api/admin/authors/{author}/stats", d.Proposals.AuthorStats)

	api.HandleFunc("GET /api/buildings/{kind}/{id}", d.Proposals.EntityView)
	api.HandleFunc("GET /api/fields", d.Proposals.Fields)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)
	// Logger runs inside Auth so the request line carries the actor.
	mux.Handle("/api/", middleware.Chain(
		middleware.CORS(d.CORS),
		middleware.Auth(d.Tokens),
		middleware.Logger(d.Logger),
	)(api))

	return middleware.Chain(
		middleware.Recovery(d.Logger),
		middleware.RequestID,
	)(mux)
}
