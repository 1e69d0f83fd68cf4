package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/briefdesk-backend/internal/auth"
	"github.com/heartmarshall/briefdesk-backend/internal/config"
	"github.com/heartmarshall/briefdesk-backend/internal/transport/middleware"
	"github.com/heartmarshall/briefdesk-backend/internal/transport/rest"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (auth.Identity, error)
}

type handlerDeps struct {
	cfg       config.Config
	logger    *slog.Logger
	validator tokenValidator
	limiter   *middleware.RateLimiter
	health    *rest.HealthHandler
	briefs    *rest.BriefHandler
	me        *rest.MeHandler
}

// newHandler mounts every route and wraps the API in the middleware chain.
// Probes skip auth and rate limiting.
func newHandler(d handlerDeps) http.Handler {
	api := http.NewServeMux()
	d.briefs.Register(api)
	d.me.Register(api)

	apiHandler := middleware.Chain(
		middleware.Auth(d.validator),
		middleware.Logger(d.logger),
		d.limiter.Limit(d.cfg.Server.RateLimitPerMinute),
	)(api)

	root := http.NewServeMux()
	d.health.Register(root)
	root.Handle("/v1/", apiHandler)

	return middleware.Chain(
		middleware.Recovery(d.logger),
		middleware.RequestID(),
		middleware.CORS(d.cfg.CORS),
	)(root)
}
