package client

import (
	"context"
	"sync"
)

// State is a snapshot of the session. The zero value means logged out.
type State struct {
	Token string
	User  *User
}

func (s State) LoggedIn() bool {
	return s.Token != "" && s.User != nil
}

// Session is the client's authentication state, backed by a SessionStore.
// Every change is written through to the store and announced to subscribers.
type Session struct {
	mu    sync.RWMutex
	store SessionStore
	state State

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(State)
}

func NewSession(store SessionStore) *Session {
	return &Session{
		store: store,
		subs:  make(map[int]func(State)),
	}
}

// Hydrate loads the persisted session. It must run before the session is used.
func (s *Session) Hydrate(ctx context.Context) error {
	token, user, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.set(State{Token: token, User: user})
	return nil
}

func (s *Session) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Token() string {
	return s.Current().Token
}

// Save stores a freshly issued token with its user.
func (s *Session) Save(ctx context.Context, token string, user *User) error {
	if err := s.store.Save(ctx, token, user); err != nil {
		return err
	}
	s.set(State{Token: token, User: user})
	return nil
}

// Clear logs out locally. The in-memory state is cleared even when the store
// fails.
func (s *Session) Clear(ctx context.Context) error {
	err := s.store.Clear(ctx)
	s.set(State{})
	return err
}

// Subscribe registers fn for session changes and returns a function that
// removes it.
func (s *Session) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Session) set(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	s.subMu.Lock()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
