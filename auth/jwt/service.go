// Package jwt provides a generic JWT token service.
//
// The service is parameterized by a claims type T, typically a struct
// embedding jwt.RegisteredClaims:
//
//	type Claims struct {
//	    gojwt.RegisteredClaims
//	    Scope string `json:"scope"`
//	}
//
//	svc, err := jwt.NewService(cfg, func() *Claims { return &Claims{} })
//	token, err := svc.GenerateAccess(&Claims{RegisteredClaims: gojwt.RegisteredClaims{Subject: "u1"}})
//	checker := auth.BearerValidator(svc.AsValidator())
package jwt

import (
	stderrors "errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/funcroute/auth"
	"github.com/kbukum/funcroute/errors"
)

// Service generates and parses JWTs carrying claims of type T.
type Service[T gojwt.Claims] struct {
	cfg      Config
	newEmpty func() T
	now      func() time.Time
}

// NewService creates a JWT service. newEmpty returns a fresh T for parsing.
func NewService[T gojwt.Claims](cfg *Config, newEmpty func() T) (*Service[T], error) {
	c := *cfg
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	return &Service[T]{cfg: c, newEmpty: newEmpty, now: time.Now}, nil
}

// Generate signs claims as they are.
func (s *Service[T]) Generate(claims T) (string, error) {
	signed, err := gojwt.NewWithClaims(s.cfg.signingMethod(), claims).SignedString(s.cfg.signKey())
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// GenerateAccess signs claims after filling their unset standard fields from
// the configuration when the claims type implements RegisteredClaimsHolder.
func (s *Service[T]) GenerateAccess(claims T) (string, error) {
	if h, ok := any(claims).(RegisteredClaimsHolder); ok {
		rc := h.Registered()
		now := s.now()
		if rc.IssuedAt == nil {
			rc.IssuedAt = gojwt.NewNumericDate(now)
		}
		if rc.ExpiresAt == nil {
			rc.ExpiresAt = gojwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL))
		}
		if rc.Issuer == "" {
			rc.Issuer = s.cfg.Issuer
		}
		if len(rc.Audience) == 0 && len(s.cfg.Audience) > 0 {
			rc.Audience = s.cfg.Audience
		}
	}
	return s.Generate(claims)
}

// RegisteredClaimsHolder exposes the registered claims of a custom claims type
// so GenerateAccess can fill in standard fields.
type RegisteredClaimsHolder interface {
	Registered() *gojwt.RegisteredClaims
}

// Parse verifies the token signature, expiry and configured issuer/audience,
// and returns its claims.
func (s *Service[T]) Parse(tokenString string) (T, error) {
	var zero T
	claims := s.newEmpty()
	token, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		return zero, fmt.Errorf("jwt: parse token: %w", err)
	}
	if !token.Valid {
		return zero, stderrors.New("jwt: invalid token")
	}
	parsed, ok := token.Claims.(T)
	if !ok {
		return zero, stderrors.New("jwt: unexpected claims type")
	}
	return parsed, nil
}

// ValidateToken implements auth.TokenValidator. Expired tokens are reported
// as TOKEN_EXPIRED, every other failure as INVALID_TOKEN.
func (s *Service[T]) ValidateToken(token string) (any, error) {
	claims, err := s.Parse(token)
	if err != nil {
		if stderrors.Is(err, gojwt.ErrTokenExpired) {
			return nil, errors.TokenExpired().WithCause(err)
		}
		return nil, errors.InvalidToken(err)
	}
	return claims, nil
}

// AsValidator returns the service as an auth.TokenValidator.
func (s *Service[T]) AsValidator() auth.TokenValidator {
	return auth.TokenValidatorFunc(s.ValidateToken)
}

func (s *Service[T]) keyFunc(token *gojwt.Token) (any, error) {
	if token.Method.Alg() != string(s.cfg.Method) {
		return nil, fmt.Errorf("jwt: unexpected signing method: %s", token.Method.Alg())
	}
	return s.cfg.verifyKey(), nil
}

func (s *Service[T]) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{string(s.cfg.Method)}),
		gojwt.WithTimeFunc(s.now),
	}
	if s.cfg.Leeway > 0 {
		opts = append(opts, gojwt.WithLeeway(s.cfg.Leeway))
	}
	if s.cfg.RequireExpiry {
		opts = append(opts, gojwt.WithExpirationRequired())
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}
	if len(s.cfg.Audience) > 0 {
		opts = append(opts, gojwt.WithAudience(s.cfg.Audience[0]))
	}
	return opts
}
