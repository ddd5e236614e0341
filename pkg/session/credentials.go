package session

import (
	"errors"
	"strings"
)

// ErrAccessDenied is returned by RequireAdmin when the session lacks a token
// or the admin flag.
var ErrAccessDenied = errors.New("session: access denied")

// Credentials is the snapshot of a session.
type Credentials struct {
	Token   string
	IsAdmin bool
}

// Authenticated reports whether a token is present.
func (c Credentials) Authenticated() bool {
	return c.Token != ""
}

// Read returns the current credentials. A nil store yields empty credentials.
func Read(store Store) Credentials {
	if store == nil {
		return Credentials{}
	}
	token, _ := store.Get(KeyToken)
	admin, _ := store.Get(KeyIsAdmin)
	return Credentials{
		Token:   strings.TrimSpace(token),
		IsAdmin: admin == "true",
	}
}

// Token returns the current bearer token, or "" when none is stored.
func Token(store Store) string {
	return Read(store).Token
}

// Save records credentials obtained at login. The admin key is removed rather
// than set to "false" when the user is not an admin.
func Save(store Store, creds Credentials) error {
	if store == nil {
		return errors.New("session: store is nil")
	}
	if err := store.Set(KeyToken, creds.Token); err != nil {
		return err
	}
	if creds.IsAdmin {
		return store.Set(KeyIsAdmin, "true")
	}
	return store.Remove(KeyIsAdmin)
}

// Clear removes both credential keys.
func Clear(store Store) error {
	if store == nil {
		return nil
	}
	if err := store.Remove(KeyToken); err != nil {
		return err
	}
	return store.Remove(KeyIsAdmin)
}

// Controls describes which restricted controls a page may show.
type Controls struct {
	Logout    bool
	AdminLink bool
}

// Visibility evaluates the optional admin UI of a page. It never blocks.
func Visibility(store Store) Controls {
	creds := Read(store)
	return Controls{
		Logout:    creds.Authenticated(),
		AdminLink: creds.IsAdmin,
	}
}

// RequireAdmin blocks pages that are admin only.
func RequireAdmin(store Store) error {
	creds := Read(store)
	if !creds.Authenticated() || !creds.IsAdmin {
		return ErrAccessDenied
	}
	return nil
}
