package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashToken returns the bcrypt hash of token. A cost of 0 means
// bcrypt.DefaultCost.
func HashToken(token string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), cost)
	if err != nil {
		return "", fmt.Errorf("auth: hash token: %w", err)
	}
	return string(hash), nil
}

// BcryptValidator accepts the token whose bcrypt hash is hash, so the
// service never has to store the plain secret.
//
//	checker := auth.BearerValidator(auth.BcryptValidator(cfg.SecretTokenHash))
func BcryptValidator(hash string) TokenValidator {
	return TokenValidatorFunc(func(token string) (any, error) {
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
			return nil, fmt.Errorf("auth: token does not match: %w", err)
		}
		return nil, nil
	})
}
