package auth

import (
	"context"

	"taskchat/internal/api"
	"taskchat/internal/service"
)

// Session owns the in-memory session state and keeps it synchronized
// with the Store and the API client token. Token and user are both
// present or both absent, in memory and on disk.
type Session struct {
	store  *Store
	client *api.Client

	user          service.User
	authenticated bool
}

// NewSession creates a Session. Call Hydrate before use.
func NewSession(store *Store, client *api.Client) *Session {
	return &Session{store: store, client: client}
}

// Hydrate loads persisted session state. If both token and user are
// present the session becomes authenticated and the token is pushed
// into the API client; otherwise it is anonymous. Never touches the
// network.
func (s *Session) Hydrate() {
	token, okToken := s.store.Token()
	user, okUser := s.store.User()
	if !okToken || !okUser {
		// Half-written state counts as signed out.
		s.authenticated = false
		s.user = service.User{}
		s.client.SetToken("")
		return
	}
	s.user = user
	s.authenticated = true
	s.client.SetToken(token)
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	return s.authenticated
}

// User returns the signed-in user, or false when anonymous.
func (s *Session) User() (service.User, bool) {
	if !s.authenticated {
		return service.User{}, false
	}
	return s.user, true
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	Message string `json:"message"`
}

type signinResponse struct {
	Token string       `json:"token"`
	User  service.User `json:"user"`
}

// SignUp registers a new account. It does not establish a session; the
// caller must sign in separately.
func (s *Session) SignUp(ctx context.Context, email, password string) (string, error) {
	var resp signupResponse
	if err := s.client.PostAnon(ctx, "/api/auth/signup", credentials{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// SignIn authenticates, persists token and user, and pushes the token
// into the API client. On failure the session is left unchanged.
func (s *Session) SignIn(ctx context.Context, email, password string) error {
	var resp signinResponse
	if err := s.client.PostAnon(ctx, "/api/auth/signin", credentials{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	if err := s.store.SaveToken(resp.Token); err != nil {
		return err
	}
	if err := s.store.SaveUser(resp.User); err != nil {
		// Keep the both-or-neither invariant on disk.
		_ = s.store.RemoveToken()
		return err
	}
	s.user = resp.User
	s.authenticated = true
	s.client.SetToken(resp.Token)
	return nil
}

// SignOut ends the session. The remote call is best-effort and its
// outcome is ignored; local state is always cleared. Idempotent.
func (s *Session) SignOut(ctx context.Context) {
	// Sign-out is a client-side guarantee, independent of server
	// acknowledgment.
	_ = s.client.PostAnon(ctx, "/api/auth/signout", struct{}{}, nil)
	s.ForceSignOut()
}

// ForceSignOut clears local session state without contacting the
// server. Used when an authenticated call comes back 401.
func (s *Session) ForceSignOut() {
	_ = s.store.Clear()
	s.user = service.User{}
	s.authenticated = false
	s.client.SetToken("")
}

// CurrentUser fetches the authenticated identity from the server.
func (s *Session) CurrentUser(ctx context.Context) (service.User, error) {
	var u service.User
	if err := s.client.Get(ctx, "/api/auth/me", &u); err != nil {
		return service.User{}, err
	}
	return u, nil
}
