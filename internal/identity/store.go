package identity

import (
	"context"
	"log"
	"reflect"
	"sync"
	"time"
)

// Store holds at most one authenticated identity and its bearer token, the
// single piece of shared mutable state in the whole client. It restores
// itself from Storage on construction, persists token and identity as one
// atomic pair on login/registration, and can watch the storage for
// out-of-band changes (another process logging in or out against the same
// session file).
type Store struct {
	auth    *Client
	storage Storage

	mu    sync.RWMutex
	user  *User
	token string
	subs  []chan *User
}

// NewStore restores the session from storage. A missing or unreadable
// session just starts the store unauthenticated.
func NewStore(storage Storage, auth *Client) *Store {
	s := &Store{auth: auth, storage: storage}
	creds, err := storage.Load()
	if err != nil {
		log.Printf("session: restore failed, starting unauthenticated: %v", err)
		return s
	}
	if !creds.empty() {
		s.user = creds.User
		s.token = creds.Token
	}
	return s
}

// Current returns the authenticated identity, or false when logged out.
func (s *Store) Current() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Token implements backend.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Login(ctx context.Context, email, password string) (User, error) {
	user, token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return User{}, err
	}
	s.adopt(user, token)
	return user, nil
}

func (s *Store) Register(ctx context.Context, reg Registration) (User, error) {
	user, token, err := s.auth.Register(ctx, reg)
	if err != nil {
		return User{}, err
	}
	s.adopt(user, token)
	return user, nil
}

// Logout clears the in-memory identity unconditionally; a storage failure
// is reported but cannot keep the session alive.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
	return s.storage.Clear()
}

// Subscribe returns a channel that receives the new identity whenever the
// session changes under the watcher's feet (nil means logged out).
func (s *Store) Subscribe() <-chan *User {
	ch := make(chan *User, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// Watch polls the storage until ctx is done and folds external changes into
// the in-memory state. This is how one session observes another process
// logging out of the shared session file.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reconcile()
		}
	}
}

func (s *Store) adopt(user User, token string) {
	s.mu.Lock()
	u := user
	s.user = &u
	s.token = token
	s.mu.Unlock()
	if err := s.storage.Save(Credentials{Token: token, User: &u}); err != nil {
		log.Printf("session: persist failed: %v", err)
	}
}

func (s *Store) reconcile() {
	creds, err := s.storage.Load()
	if err != nil {
		log.Printf("session: watch reload failed: %v", err)
		return
	}
	if creds.empty() {
		creds = Credentials{}
	}

	s.mu.Lock()
	changed := s.token != creds.Token || !reflect.DeepEqual(s.user, creds.User)
	if changed {
		s.user = creds.User
		s.token = creds.Token
	}
	subs := s.subs
	current := s.user
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, ch := range subs {
		select {
		case ch <- current:
		default:
		}
	}
}
