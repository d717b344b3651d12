package main

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/funcroute/auth"
	"github.com/kbukum/funcroute/auth/jwt"
	"github.com/kbukum/funcroute/logger"
	"github.com/kbukum/funcroute/observability"
	"github.com/kbukum/funcroute/route"
	"github.com/kbukum/funcroute/route/ginroute"
	"github.com/kbukum/funcroute/route/httproute"
	"github.com/kbukum/funcroute/server"
)

// Names of the auth schemes in the route registry.
const (
	schemeSecret = "secret"
	schemeJWT    = "jwt"
)

// Claims are the claims of tokens issued by /api/token.
type Claims struct {
	gojwt.RegisteredClaims
}

// Registered implements jwt.RegisteredClaimsHolder.
func (c *Claims) Registered() *gojwt.RegisteredClaims { return &c.RegisteredClaims }

type deps struct {
	cfg     *Config
	log     *logger.Logger
	metrics *observability.RouteMetrics
	now     func() time.Time
}

func (d deps) opts(name string, extra ...route.Option) []route.Option {
	return append([]route.Option{
		route.WithName(name),
		route.WithLogger(d.log),
		route.WithMetrics(d.metrics),
	}, extra...)
}

// registerRoutes mounts the hello routes on gin (/api) and on a chi router
// (/std), plus the JWT routes when a JWT secret is configured.
func registerRoutes(srv *server.Server, d deps) error {
	g := greeter{now: d.now}
	schemes := auth.NewRegistry()
	if err := schemes.Register(schemeSecret, secretChecker(d.cfg.Auth)); err != nil {
		return err
	}
	secretCore, err := schemes.Checker(schemeSecret)
	if err != nil {
		return err
	}
	secret := route.AdaptChecker(secretCore)

	api := srv.Engine().Group("/api")
	api.POST("/hello", ginroute.Handle(g.greet, d.opts("greet", route.WithAuth(secret))...))
	api.GET("/hello", ginroute.Handle(g.hello, d.opts("hello", route.WithMethod(route.GET), route.WithAuth(route.NoAuth))...))

	std := chi.NewRouter()
	std.Post("/hello", httproute.Handle(g.greet, d.opts("std.greet", route.WithAuth(secret))...))
	std.Get("/hello", httproute.Handle(g.hello, d.opts("std.hello", route.WithMethod(route.GET))...))
	root := chi.NewRouter()
	root.Mount("/std", std)
	srv.Handle("/std/", root)

	if d.cfg.Auth.JWT.Secret == "" {
		return nil
	}
	return registerJWTRoutes(srv, d, g, schemes)
}

// secretChecker guards the routes that need the shared secret, preferring
// the bcrypt hash when one is configured.
func secretChecker(cfg AuthConfig) auth.Checker {
	if cfg.SecretTokenHash != "" {
		return auth.BearerValidator(auth.BcryptValidator(cfg.SecretTokenHash))
	}
	return auth.BearerToken(cfg.SecretToken)
}

// registerJWTRoutes adds token issuing and the routes that accept issued
// tokens: /api/secure takes only JWTs, /api/either JWTs or the secret.
func registerJWTRoutes(srv *server.Server, d deps, g greeter, schemes *auth.Registry) error {
	svc, err := jwt.NewService(&d.cfg.Auth.JWT, func() *Claims { return &Claims{} })
	if err != nil {
		return err
	}

	if err := schemes.RegisterValidator(schemeJWT, svc.AsValidator()); err != nil {
		return err
	}
	jwtOnly, err := schemes.Checker(schemeJWT)
	if err != nil {
		return err
	}
	either, err := schemes.AnyOf(schemeJWT, schemeSecret)
	if err != nil {
		return err
	}
	secret, err := schemes.Checker(schemeSecret)
	if err != nil {
		return err
	}

	ttl := d.cfg.Auth.JWT.AccessTokenTTL
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	issue := func(_ context.Context, in GreetInput) (TokenResponse, error) {
		token, err := svc.GenerateAccess(&Claims{RegisteredClaims: gojwt.RegisteredClaims{Subject: in.Name}})
		if err != nil {
			return TokenResponse{}, err
		}
		return TokenResponse{Token: token, ExpiresIn: int64(ttl.Seconds())}, nil
	}

	api := srv.Engine().Group("/api")
	api.POST("/token", ginroute.Handle(issue, d.opts("token", route.WithAuth(route.AdaptChecker(secret)))...))

	secure := api.Group("/secure", ginroute.RequireAuth(jwtOnly))
	secure.POST("/hello", ginroute.Handle(g.greet, d.opts("secure.greet")...))

	api.POST("/either/hello", ginroute.Handle(g.greet, d.opts("either.greet", route.WithAuth(route.AdaptChecker(either)))...))

	d.log.Info("JWT routes enabled", map[string]any{"schemes": schemes.Names()})
	return nil
}
