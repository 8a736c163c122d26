package models

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-process Store used for local development and tests.
// It mirrors the Mongo backend's semantics, including the conditional join.
type MemoryRepo struct {
	mu     sync.RWMutex
	users  map[primitive.ObjectID]*User
	emails map[string]primitive.ObjectID
	events map[primitive.ObjectID]*Event
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:  make(map[primitive.ObjectID]*User),
		emails: make(map[string]primitive.ObjectID),
		events: make(map[primitive.ObjectID]*Event),
	}
}

func (m *MemoryRepo) CreateUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.emails[user.Email]; taken {
		return NewConflictError(EmailTakenMessage)
	}
	user.BeforeCreate()
	stored := *user
	m.users[user.ID] = &stored
	m.emails[user.Email] = user.ID
	return nil
}

func (m *MemoryRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.emails[email]
	if !ok {
		return nil, NewNotFoundError("User not found")
	}
	user := *m.users[id]
	return &user, nil
}

func (m *MemoryRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.users[id]
	if !ok {
		return nil, NewNotFoundError("User not found")
	}
	user := *stored
	return &user, nil
}

func (m *MemoryRepo) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*User, 0, len(ids))
	for _, id := range ids {
		if stored, ok := m.users[id]; ok {
			user := *stored
			users = append(users, &user)
		}
	}
	return users, nil
}

func (m *MemoryRepo) CreateEvent(ctx context.Context, event *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	event.BeforeCreate()
	m.events[event.ID] = cloneEvent(event)
	return nil
}

func (m *MemoryRepo) GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	event, ok := m.events[id]
	if !ok {
		return nil, NewNotFoundError(EventNotFoundMessage)
	}
	return cloneEvent(event), nil
}

func (m *MemoryRepo) ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := []*Event{}
	for _, event := range m.events {
		if filter.Owner != nil && event.Owner != *filter.Owner {
			continue
		}
		events = append(events, cloneEvent(event))
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}

func (m *MemoryRepo) UpdateEvent(ctx context.Context, id, owner primitive.ObjectID, changes EventChanges) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	event, ok := m.events[id]
	if !ok || event.Owner != owner {
		return nil, NewNotFoundError(EventNotFoundMessage)
	}
	event.Apply(changes)
	event.UpdatedAt = time.Now().UTC()
	return cloneEvent(event), nil
}

func (m *MemoryRepo) DeleteEvent(ctx context.Context, id, owner primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	event, ok := m.events[id]
	if !ok || event.Owner != owner {
		return NewNotFoundError(EventNotFoundMessage)
	}
	delete(m.events, id)
	return nil
}

func (m *MemoryRepo) AddAttendee(ctx context.Context, id, userID primitive.ObjectID) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	event, ok := m.events[id]
	if !ok {
		return nil, NewNotFoundError(EventNotFoundMessage)
	}
	if event.HasAttendee(userID) {
		return nil, NewConflictError(AlreadyJoinedMessage)
	}
	event.Attendees = append(event.Attendees, userID)
	event.UpdatedAt = time.Now().UTC()
	return cloneEvent(event), nil
}

func (m *MemoryRepo) RemoveAttendee(ctx context.Context, id, userID primitive.ObjectID) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	event, ok := m.events[id]
	if !ok {
		return nil, NewNotFoundError(EventNotFoundMessage)
	}
	event.Attendees = slices.DeleteFunc(event.Attendees, func(a primitive.ObjectID) bool {
		return a == userID
	})
	event.UpdatedAt = time.Now().UTC()
	return cloneEvent(event), nil
}

func cloneEvent(e *Event) *Event {
	c := *e
	c.Attendees = slices.Clone(e.Attendees)
	if c.Attendees == nil {
		c.Attendees = []primitive.ObjectID{}
	}
	return &c
}
