// Package httpapi implements component H: the authenticated query and
// orchestration API fronting the catalog, indicator, and score tables.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/db"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/interfaces"
)

// Server wires the full HTTP surface over the shared repositories. cache
// is optional: a nil cache simply disables read-through caching.
type Server struct {
	catalog    *db.CatalogRepo
	indicators *db.IndicatorsRepo
	scores     *db.ScoresRepo
	authRepo   *db.AuthRepo
	broker     interfaces.BrokerPublisher
	cache      interfaces.Cache
	auth       *authenticator
	router     *http.ServeMux
	httpServer *http.Server
	log        arbor.ILogger
}

func New(cfg *common.Config, catalog *db.CatalogRepo, indicators *db.IndicatorsRepo, scores *db.ScoresRepo, authRepo *db.AuthRepo, broker interfaces.BrokerPublisher, cache interfaces.Cache) *Server {
	s := &Server{
		catalog:    catalog,
		indicators: indicators,
		scores:     scores,
		authRepo:   authRepo,
		broker:     broker,
		cache:      cache,
		auth:       newAuthenticator(authRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.RateLimitRPS, cfg.Auth.RateLimitBurst),
		log:        common.GetLogger(),
	}
	s.router = s.setupRoutes()
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      withMiddleware(s.log, s.router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) Start() error {
	s.log.Info().Str("address", s.httpServer.Addr).Msg("httpapi: starting")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return common.Wrap(common.PermanentSystem, "httpapi: start", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
