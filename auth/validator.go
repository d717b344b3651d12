package auth

import (
	"strings"

	"github.com/kbukum/funcroute/errors"
)

// TokenValidator validates a token string and returns the parsed claims.
// Implementations: jwt.Service[T].AsValidator(), or any TokenValidatorFunc.
type TokenValidator interface {
	ValidateToken(token string) (any, error)
}

// TokenValidatorFunc adapts an ordinary function to the TokenValidator interface.
type TokenValidatorFunc func(token string) (any, error)

// ValidateToken implements TokenValidator.
func (f TokenValidatorFunc) ValidateToken(token string) (any, error) {
	return f(token)
}

// BearerValidator returns a Checker that extracts the bearer token from the
// Authorization header and verifies it with v.
//
// A missing or malformed header is rejected like BearerToken does. A token
// rejected by v yields the validator's *errors.AppError response when it
// returns one, and a 401 INVALID_TOKEN response otherwise.
func BearerValidator(v TokenValidator) Checker {
	return CheckerFunc(func(r Request) AuthResult {
		token, ok := strings.CutPrefix(r.GetHeader(HeaderAuthorization), bearerPrefix)
		if !ok || token == "" {
			return Rejected(errors.Unauthorized(ReasonInvalidBearer))
		}
		if _, err := v.ValidateToken(token); err != nil {
			if appErr, ok := errors.AsAppError(err); ok {
				return Rejected(appErr)
			}
			return Rejected(errors.InvalidToken(err))
		}
		return Authorized()
	})
}
