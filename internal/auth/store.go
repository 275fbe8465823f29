// Package auth owns the persisted session files and the in-memory
// session state machine.
package auth

import (
	"encoding/json"
	"os"

	"taskchat/internal/config"
	"taskchat/internal/service"
)

// Store reads and writes the two durable session entries: the opaque
// bearer token and the signed-in user. Reads return absent on any
// error, so a missing or unreadable config dir degrades to signed-out
// rather than failing.
type Store struct {
	cfg *config.Config
}

// NewStore creates a Store over the config directory.
func NewStore(cfg *config.Config) *Store {
	return &Store{cfg: cfg}
}

type tokenFile struct {
	Token string `json:"token"`
}

// SaveToken persists the session token.
func (s *Store) SaveToken(token string) error {
	if err := s.cfg.EnsureDir(); err != nil {
		return err
	}
	data, err := json.Marshal(tokenFile{Token: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.cfg.TokenPath(), data, 0600)
}

// Token returns the persisted token, or false if absent.
func (s *Store) Token() (string, bool) {
	data, err := os.ReadFile(s.cfg.TokenPath())
	if err != nil {
		return "", false
	}
	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil || tf.Token == "" {
		return "", false
	}
	return tf.Token, true
}

// RemoveToken deletes the token file. Removing an absent token is not
// an error.
func (s *Store) RemoveToken() error {
	err := os.Remove(s.cfg.TokenPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// SaveUser persists the signed-in user.
func (s *Store) SaveUser(u service.User) error {
	if err := s.cfg.EnsureDir(); err != nil {
		return err
	}
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return os.WriteFile(s.cfg.UserPath(), data, 0600)
}

// User returns the persisted user, or false if absent.
func (s *Store) User() (service.User, bool) {
	data, err := os.ReadFile(s.cfg.UserPath())
	if err != nil {
		return service.User{}, false
	}
	var u service.User
	if err := json.Unmarshal(data, &u); err != nil || u.ID == "" {
		return service.User{}, false
	}
	return u, true
}

// RemoveUser deletes the user file. Removing an absent user is not an
// error.
func (s *Store) RemoveUser() error {
	err := os.Remove(s.cfg.UserPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes both session entries. The first failure is reported but
// both removals are attempted.
func (s *Store) Clear() error {
	tokenErr := s.RemoveToken()
	userErr := s.RemoveUser()
	if tokenErr != nil {
		return tokenErr
	}
	return userErr
}
