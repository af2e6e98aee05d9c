// Package session owns the authenticated identity and credential
// token for the client. Exactly one session is active at a time, or
// none. State reaches the UI layer through accessors and the
// subscription mechanism only.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	slogctx "github.com/veqryn/slog-context"

	"github.com/Mitch2826/Hostel-Hunt/internal/api"
	"github.com/Mitch2826/Hostel-Hunt/internal/model"
	"github.com/Mitch2826/Hostel-Hunt/internal/serviceerr"
	"github.com/Mitch2826/Hostel-Hunt/internal/storage"
)

// Session is the current authenticated state. The zero value means
// no one is signed in.
type Session struct {
	Identity        model.Identity
	Token           string
	IsAuthenticated bool
}

// Credentials is a login request.
type Credentials struct {
	Email    string
	Password string
}

// Registration is a signup request. Password policy checks happen at
// the form boundary, not here.
type Registration struct {
	FullName string
	Email    string
	Password string
}

type Store struct {
	api     *api.Client
	storage storage.Store

	mu          sync.Mutex
	session     Session
	isLoading   bool
	subscribers map[int]func()
	nextSubID   int
}

// NewStore builds a session store. The store reports isLoading until
// Restore has run.
func NewStore(apiClient *api.Client, persistence storage.Store) *Store {
	return &Store{
		api:         apiClient,
		storage:     persistence,
		isLoading:   true,
		subscribers: make(map[int]func()),
	}
}

// Restore rebuilds the session from persistence at process start. It
// requires both the token and the identity blob; partial presence
// counts as no session. No round-trip validates the token. The store
// always leaves the loading phase, whatever the outcome.
func (s *Store) Restore(ctx context.Context) {
	defer s.finishLoading()

	token, err := s.storage.Get(ctx, storage.KeyToken)
	if err != nil {
		if !errors.Is(err, serviceerr.ErrNotFound) {
			slogctx.Warn(ctx, "Reading persisted token", "error", err)
		}
		return
	}

	rawIdentity, err := s.storage.Get(ctx, storage.KeyUser)
	if err != nil {
		if !errors.Is(err, serviceerr.ErrNotFound) {
			slogctx.Warn(ctx, "Reading persisted identity", "error", err)
		}
		return
	}

	var identity model.Identity
	if err := json.Unmarshal([]byte(rawIdentity), &identity); err != nil {
		slogctx.Warn(ctx, "Decoding persisted identity", "error", err)
		return
	}

	s.mu.Lock()
	s.session = Session{
		Identity:        identity,
		Token:           token,
		IsAuthenticated: true,
	}
	s.mu.Unlock()
	s.notify()

	slogctx.Debug(ctx, "Restored session from persistence", "user_id", identity.ID)
}

func (s *Store) finishLoading() {
	s.mu.Lock()
	s.isLoading = false
	s.mu.Unlock()
	s.notify()
}

// Login authenticates against the remote service. Credential
// rejections surface as *serviceerr.AuthError with the server message;
// transport failures keep serviceerr.ErrUnavailable in the chain. The
// session is unchanged on any failure.
func (s *Store) Login(ctx context.Context, creds Credentials) error {
	remote, err := s.api.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return authFailure(ctx, err, "Login failed")
	}

	if err := s.adopt(ctx, remote); err != nil {
		return err
	}

	slogctx.Info(ctx, "Logged in", "user_id", remote.Identity.ID)

	return nil
}

// Signup registers a new account, with the same contract as Login.
func (s *Store) Signup(ctx context.Context, reg Registration) error {
	remote, err := s.api.Register(ctx, reg.FullName, reg.Email, reg.Password)
	if err != nil {
		return authFailure(ctx, err, "Signup failed")
	}

	if err := s.adopt(ctx, remote); err != nil {
		return err
	}

	slogctx.Info(ctx, "Signed up", "user_id", remote.Identity.ID)

	return nil
}

// Logout clears the persisted credentials and resets the in-memory
// session. It never fails; persistence errors are logged only.
func (s *Store) Logout(ctx context.Context) {
	if err := s.storage.Delete(ctx, storage.KeyToken); err != nil {
		slogctx.Warn(ctx, "Deleting persisted token", "error", err)
	}
	if err := s.storage.Delete(ctx, storage.KeyUser); err != nil {
		slogctx.Warn(ctx, "Deleting persisted identity", "error", err)
	}

	s.mu.Lock()
	s.session = Session{}
	s.mu.Unlock()
	s.notify()

	slogctx.Info(ctx, "Logged out")
}

// Current returns a copy of the active session.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session
}

// Token returns the active credential token, empty when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.Token
}

// IsLoading reports whether the initial restore is still pending.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.isLoading
}

// Subscribe registers fn to run after every state change. The
// returned function cancels the subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// adopt persists the credentials and installs them in memory.
func (s *Store) adopt(ctx context.Context, remote api.Credentials) error {
	rawIdentity, err := json.Marshal(remote.Identity)
	if err != nil {
		return fmt.Errorf("encoding identity: %w", err)
	}

	if err := s.storage.Set(ctx, storage.KeyToken, remote.Token); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}
	if err := s.storage.Set(ctx, storage.KeyUser, string(rawIdentity)); err != nil {
		return fmt.Errorf("persisting identity: %w", err)
	}

	s.mu.Lock()
	s.session = Session{
		Identity:        remote.Identity,
		Token:           remote.Token,
		IsAuthenticated: true,
	}
	s.mu.Unlock()
	s.notify()

	return nil
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// authFailure maps a client error: remote rejections become
// *serviceerr.AuthError with the server message or the fallback;
// transport errors pass through unchanged so callers can still see
// serviceerr.ErrUnavailable.
func authFailure(ctx context.Context, err error, fallback string) error {
	var remoteErr *api.RemoteError
	if errors.As(err, &remoteErr) {
		message := remoteErr.Message
		if message == "" {
			message = fallback
		}
		slogctx.Warn(ctx, "Authentication rejected", "status", remoteErr.StatusCode)

		return &serviceerr.AuthError{Message: message}
	}

	return fmt.Errorf("calling auth endpoint: %w", err)
}
