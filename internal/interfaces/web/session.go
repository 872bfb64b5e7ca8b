package web

import (
	"net/http"

	"github.com/gorilla/securecookie"
)

const sessionName = "farmhouse_session"

// SessionManager tracks whether the browser has passed the shared-password
// gate. There are no per-user accounts, only the one flag.
type SessionManager struct{ sc *securecookie.SecureCookie }

func NewSessionManager(hashKey, blockKey []byte) *SessionManager {
	return &SessionManager{sc: securecookie.New(hashKey, blockKey)}
}

func (s *SessionManager) SetGate(w http.ResponseWriter) error {
	encoded, err := s.sc.Encode(sessionName, map[string]string{"gate": "ok"})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name: sessionName, Value: encoded, Path: "/",
		HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name: sessionName, Value: "", Path: "/", MaxAge: -1,
		HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
}

func (s *SessionManager) HasGate(r *http.Request) bool {
	c, err := r.Cookie(sessionName)
	if err != nil {
		return false
	}
	value := map[string]string{}
	if err := s.sc.Decode(sessionName, c.Value, &value); err != nil {
		return false
	}
	return value["gate"] == "ok"
}
