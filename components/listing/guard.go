package listing

import (
	"net/http"

	"github.com/goliatone/go-recipebook/pkg/session"
)

// AdminGuard admits requests only while store holds an admin session. A
// missing token answers 401, a non-admin session 403.
func AdminGuard(store session.Store) GuardFunc {
	return func(*http.Request) error {
		creds := session.Read(store)
		if !creds.Authenticated() {
			return StatusError{Code: http.StatusUnauthorized, Err: session.ErrAccessDenied}
		}
		if !creds.IsAdmin {
			return StatusError{Code: http.StatusForbidden, Err: session.ErrAccessDenied}
		}
		return nil
	}
}
