package jwt

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod names a supported JWT signing algorithm.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
	RS256 SigningMethod = "RS256"
	RS384 SigningMethod = "RS384"
	RS512 SigningMethod = "RS512"
	ES256 SigningMethod = "ES256"
	ES384 SigningMethod = "ES384"
	ES512 SigningMethod = "ES512"
)

type keyKind int

const (
	keyHMAC keyKind = iota + 1
	keyRSA
	keyECDSA
)

var methodKeys = map[SigningMethod]keyKind{
	HS256: keyHMAC, HS384: keyHMAC, HS512: keyHMAC,
	RS256: keyRSA, RS384: keyRSA, RS512: keyRSA,
	ES256: keyECDSA, ES384: keyECDSA, ES512: keyECDSA,
}

// Config configures the JWT token service.
type Config struct {
	// Secret is the HMAC signing key (required for HS* methods).
	Secret string `yaml:"secret" mapstructure:"secret"`

	// PrivateKey is the *rsa.PrivateKey or *ecdsa.PrivateKey for RS*/ES* methods.
	PrivateKey any `yaml:"-" mapstructure:"-"`
	// PublicKey verifies RS*/ES* tokens. Derived from PrivateKey when unset.
	PublicKey any `yaml:"-" mapstructure:"-"`

	Method         SigningMethod `yaml:"method" mapstructure:"method"`
	Issuer         string        `yaml:"issuer" mapstructure:"issuer"`
	Audience       []string      `yaml:"audience" mapstructure:"audience"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" mapstructure:"access_token_ttl"`

	// Leeway tolerates clock skew when checking exp, nbf and iat.
	Leeway time.Duration `yaml:"leeway" mapstructure:"leeway"`
	// RequireExpiry rejects tokens without an exp claim.
	RequireExpiry bool `yaml:"require_expiry" mapstructure:"require_expiry"`
}

// ApplyDefaults fills zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = 15 * time.Minute
	}
}

// Validate checks the keys required by the signing method.
func (c *Config) Validate() error {
	if c.Leeway < 0 {
		return errors.New("leeway must not be negative")
	}
	switch methodKeys[c.Method] {
	case keyHMAC:
		if c.Secret == "" {
			return errors.New("secret is required for HMAC signing methods")
		}
	case keyRSA:
		if _, ok := c.PrivateKey.(*rsa.PrivateKey); !ok {
			return errors.New("private key must be *rsa.PrivateKey for RSA signing methods")
		}
	case keyECDSA:
		if _, ok := c.PrivateKey.(*ecdsa.PrivateKey); !ok {
			return errors.New("private key must be *ecdsa.PrivateKey for ECDSA signing methods")
		}
	default:
		return errors.New("unsupported signing method: " + string(c.Method))
	}
	return nil
}

func (c *Config) signingMethod() gojwt.SigningMethod {
	return gojwt.GetSigningMethod(string(c.Method))
}

func (c *Config) signKey() any {
	if methodKeys[c.Method] == keyHMAC {
		return []byte(c.Secret)
	}
	return c.PrivateKey
}

func (c *Config) verifyKey() any {
	if methodKeys[c.Method] == keyHMAC {
		return []byte(c.Secret)
	}
	if c.PublicKey != nil {
		return c.PublicKey
	}
	switch pk := c.PrivateKey.(type) {
	case *rsa.PrivateKey:
		return &pk.PublicKey
	case *ecdsa.PrivateKey:
		return &pk.PublicKey
	}
	return c.PrivateKey
}
