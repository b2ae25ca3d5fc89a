// Package session holds the single authoritative record of who is logged
// in. The store moves through an explicit phase machine so consumers
// (route guards in particular) can tell "still initializing" apart from
// "no credential", and it persists the credential through a
// CredentialStore so a session survives client restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopfront/shopfront/internal/resilience"
	"github.com/shopfront/shopfront/pkg/models"
)

// Phase is the session lifecycle state.
type Phase int

const (
	// PhaseUninitialized is the state before Initialize has run.
	PhaseUninitialized Phase = iota

	// PhaseInitializing means the persisted credential is being read.
	// Route guards must not make gating decisions yet.
	PhaseInitializing

	// PhaseAuthenticated means a credential is present.
	PhaseAuthenticated

	// PhaseAnonymous means no credential is present.
	PhaseAnonymous
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseInitializing:
		return "initializing"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseAnonymous:
		return "anonymous"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ErrNotAuthenticated indicates an operation that requires a session ran
// without one.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// ProfileFetcher fetches the authenticated user's profile. Implemented by
// the API client.
type ProfileFetcher interface {
	Profile(ctx context.Context) (*models.User, error)
}

// profileRetryPolicy backs the lazy profile fetch after startup. A couple
// of quick retries cover transient network failures without holding up
// anything user-visible.
var profileRetryPolicy = resilience.Policy{
	MaxRetries: 2,
	BaseDelay:  500 * time.Millisecond,
	MaxDelay:   5 * time.Second,
	UseJitter:  true,
}

// Store is the auth session store.
type Store struct {
	mu         sync.RWMutex
	phase      Phase
	credential string
	user       *models.User

	creds    CredentialStore
	profiles ProfileFetcher
	logger   *slog.Logger
	subs     []func()
}

// NewStore creates a Store in PhaseUninitialized. profiles may be nil
// when the caller never uses RefreshProfile.
func NewStore(creds CredentialStore, profiles ProfileFetcher, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		phase:    PhaseUninitialized,
		creds:    creds,
		profiles: profiles,
		logger:   logger,
	}
}

// Initialize reads the persisted credential and settles the session into
// PhaseAuthenticated or PhaseAnonymous. The profile is not fetched here;
// call RefreshProfile separately when authenticated. Initialize is the
// only way out of PhaseUninitialized and is safe to call once at startup.
func (s *Store) Initialize() Phase {
	s.mu.Lock()
	s.phase = PhaseInitializing
	s.mu.Unlock()
	s.notify()

	credential := s.creds.Current()

	s.mu.Lock()
	s.credential = credential
	if credential != "" {
		s.phase = PhaseAuthenticated
	} else {
		s.phase = PhaseAnonymous
	}
	phase := s.phase
	s.mu.Unlock()
	s.notify()

	return phase
}

// Login stores the credential and profile and transitions to
// PhaseAuthenticated. No network call happens here; the view layer has
// already authenticated against the API. The in-memory session is set
// even when persisting fails, so the current process keeps working; the
// persistence error is returned for the caller to surface.
func (s *Store) Login(credential string, user *models.User) error {
	s.mu.Lock()
	s.credential = credential
	s.user = user
	s.phase = PhaseAuthenticated
	s.mu.Unlock()
	s.notify()

	if err := s.creds.Save(credential); err != nil {
		s.logger.Warn("credential not persisted, session will not survive restart", "error", err)
		return err
	}
	return nil
}

// Logout clears the credential and profile and transitions to
// PhaseAnonymous. Idempotent: logging out an anonymous session is a
// no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	alreadyAnonymous := s.phase == PhaseAnonymous && s.credential == ""
	s.credential = ""
	s.user = nil
	s.phase = PhaseAnonymous
	s.mu.Unlock()

	if !alreadyAnonymous {
		s.notify()
	}

	return s.creds.Clear()
}

// Phase returns the current session phase.
func (s *Store) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Credential returns the in-memory credential, or empty.
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// User returns the current profile, or nil when not yet populated.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetUser replaces the profile wholesale, e.g. after a profile update.
func (s *Store) SetUser(user *models.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.notify()
}

// RefreshProfile fetches the profile for an authenticated session and
// replaces the stored one. Transient failures are retried with backoff;
// on terminal failure the session stays authenticated with its previous
// profile.
func (s *Store) RefreshProfile(ctx context.Context) error {
	if s.Phase() != PhaseAuthenticated {
		return ErrNotAuthenticated
	}
	if s.profiles == nil {
		return errors.New("session: no profile fetcher configured")
	}

	var user *models.User
	err := resilience.Do(ctx, profileRetryPolicy, func() error {
		u, fetchErr := s.profiles.Profile(ctx)
		if fetchErr != nil {
			return fetchErr
		}
		user = u
		return nil
	})
	if err != nil {
		s.logger.Debug("profile refresh failed", "error", err)
		return fmt.Errorf("session: refresh profile: %w", err)
	}

	s.SetUser(user)
	return nil
}

// Subscribe registers fn to run after every session change. Callbacks
// run synchronously on the mutating goroutine and must not call back
// into the store's mutators.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// notify runs the subscriber callbacks outside the state lock.
func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}
