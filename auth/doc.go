// Package auth decides whether an incoming request may reach a route.
//
// A Checker inspects a Request (anything with a header lookup) and returns
// an AuthResult. When the request is rejected the result carries the
// ErrorResponse to send back; host adapters translate it into their own
// response type.
//
// Built-in checkers:
//
//   - NoAuth                authorizes every request
//   - BearerToken(secret)   Authorization header must equal "Bearer " + secret
//   - BearerValidator(v)    bearer token verified by a TokenValidator (e.g. auth/jwt,
//     or BcryptValidator for a stored bcrypt hash)
//
// *gin.Context satisfies Request directly; wrap a *http.Request with FromHTTP:
//
//	res := auth.BearerToken(secret).Check(auth.FromHTTP(r))
//	if !res.IsAuthorized {
//	    // res.Error.Status, res.Error.Body
//	}
//
// Checkers can be registered by name and combined:
//
//	reg := auth.NewRegistry()
//	_ = reg.Register("secret", auth.BearerToken(secret))
//	_ = reg.RegisterValidator("jwt", jwtSvc.AsValidator())
//	either, _ := reg.AnyOf("jwt", "secret")
package auth
