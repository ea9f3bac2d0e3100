package storage

import "sync"

// ListRepository is a thread-safe repository backed by an ordered slice.
// Create is an O(1) append, every keyed operation is a linear scan.
// FindAll preserves insertion order
type ListRepository struct {
	users []User
	ids   IDGenerator
	mu    sync.RWMutex
}

// NewListRepository creates a new instance of ListRepository
func NewListRepository() *ListRepository {
	return &ListRepository{
		users: make([]User, 0),
	}
}

// Create assigns the next id, appends the user and returns a copy of it
func (l *ListRepository) Create(attrs Attributes) User {
	l.mu.Lock()
	defer l.mu.Unlock()

	// id is taken under the lock so that slice order matches id order
	u := User{ID: l.ids.Next()}
	u.apply(attrs)
	l.users = append(l.users, u)

	return u
}

// indexOf returns the position of id in the slice or -1. Caller must hold the lock
func (l *ListRepository) indexOf(id int64) int {
	for i := range l.users {
		if l.users[i].ID == id {
			return i
		}
	}
	return -1
}

// FindByID returns the user and true if the id is stored. Otherwise, User{}, false
func (l *ListRepository) FindByID(id int64) (User, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i := l.indexOf(id); i >= 0 {
		return l.users[i], true
	}
	return User{}, false
}

// FindByEmail returns the first user with the given email or ErrNotFound
func (l *ListRepository) FindByEmail(email string) (User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, u := range l.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// FindAll returns a snapshot copy of all stored users in insertion order
func (l *ListRepository) FindAll() []User {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]User, len(l.users))
	copy(out, l.users)
	return out
}

// Update replaces name and email of the stored user. Returns ErrNotFound if the id is not stored
func (l *ListRepository) Update(id int64, attrs Attributes) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	l.users[i].apply(attrs)

	return nil
}

// Delete is not supported
func (l *ListRepository) Delete(int64) error {
	return ErrUnsupported
}

// Len returns the number of stored users
func (l *ListRepository) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.users)
}
