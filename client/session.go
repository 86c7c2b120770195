package client

import (
	"encoding/json"
	"errors"

	"campuseats-be/internal/user"
)

const sessionKey = "campuseats-user"

// ErrSessionExpired is surfaced when the server answers 401: the
// stored credentials are cleared and the caller should prompt for a
// fresh login.
var ErrSessionExpired = errors.New("client: session expired")

// Credentials is the persisted auth record.
type Credentials struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// Session wraps the stored credentials.
type Session struct {
	store Store
}

func NewSession(store Store) *Session {
	return &Session{store: store}
}

// Current returns the stored credentials, or nil when signed out.
func (s *Session) Current() (*Credentials, error) {
	data, err := s.store.Load(sessionKey)
	if errors.Is(err, ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (s *Session) Save(creds *Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return s.store.Save(sessionKey, data)
}

func (s *Session) Clear() error {
	return s.store.Delete(sessionKey)
}
