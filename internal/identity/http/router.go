package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/stallworks/identity/internal/identity/service"
	"github.com/stallworks/identity/internal/identity/store"
	"github.com/stallworks/identity/pkg/httpx"
	"github.com/stallworks/identity/pkg/jwtx"
	"github.com/stallworks/identity/pkg/slogx"

	_ "github.com/stallworks/identity/api/identity" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	SessionService      *service.SessionService
	RegistrationService *service.RegistrationService
}

func NewRouter(
	keys *jwtx.KeySet,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTokens()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Marketplace Identity Service API
//	@version		0.1.0
//	@description	Credential verification, two-step registration with email confirmation, and JWT access / opaque refresh token lifecycle management.
//	@description
//	@description	Access tokens are signed with EdDSA (Ed25519); refresh and confirmation tokens are opaque and stored only as fingerprints.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /login - strict rate limit (credential guessing)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(&LoginHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /register - strict rate limit (account farming)
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(&RegisterHandler{RegistrationService: r.RegistrationService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /confirm-email - moderate rate limit (token is single use anyway)
	r.Mux.Handle("POST /v1/auth/confirm-email",
		httpx.Chain(&ConfirmEmailHandler{RegistrationService: r.RegistrationService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /register/complete - moderate rate limit (step-two alias)
	r.Mux.Handle("POST /v1/auth/register/complete",
		httpx.Chain(&CompleteRegistrationHandler{RegistrationService: r.RegistrationService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerTokens() {
	// POST /token/refresh - strict rate limit (token guessing)
	r.Mux.Handle("POST /v1/auth/token/refresh",
		httpx.Chain(&RefreshHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /token/revoke - moderate rate limit
	r.Mux.Handle("POST /v1/auth/token/revoke",
		httpx.Chain(&RevokeHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
