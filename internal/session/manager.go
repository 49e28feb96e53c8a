package session

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	cookieName = "dietician_session"
	idKey      = "id"
)

var ErrNoSession = errors.New("session: no session id")

// Manager hands out a stable id per browser through a signed cookie.
// The state itself lives in a Store keyed by that id.
type Manager struct {
	store *sessions.CookieStore
}

func NewManager(secret []byte, maxAge int) *Manager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

// ID returns the caller's session id, minting one on first visit. The cookie
// is written on every call so its expiry follows the last use, not the first.
func (m *Manager) ID(w http.ResponseWriter, r *http.Request) (string, error) {
	// A cookie signed with an old secret decodes with an error but still
	// yields a fresh session, which we then overwrite.
	sess, _ := m.store.Get(r, cookieName)

	id, ok := sess.Values[idKey].(string)
	if !ok || id == "" {
		id = uuid.NewString()
		sess.Values[idKey] = id
	}
	if err := sess.Save(r, w); err != nil {
		return "", err
	}
	return id, nil
}

// Keep is ID without minting: it refreshes the cookie of an existing session
// and returns ErrNoSession when there is none.
func (m *Manager) Keep(w http.ResponseWriter, r *http.Request) (string, error) {
	sess, err := m.store.Get(r, cookieName)
	if err != nil {
		return "", ErrNoSession
	}
	id, ok := sess.Values[idKey].(string)
	if !ok || id == "" {
		return "", ErrNoSession
	}
	if err := sess.Save(r, w); err != nil {
		return "", err
	}
	return id, nil
}

// Lookup returns the caller's id without minting one or touching the cookie.
func (m *Manager) Lookup(r *http.Request) (string, error) {
	sess, err := m.store.Get(r, cookieName)
	if err != nil {
		return "", ErrNoSession
	}
	id, ok := sess.Values[idKey].(string)
	if !ok || id == "" {
		return "", ErrNoSession
	}
	return id, nil
}
