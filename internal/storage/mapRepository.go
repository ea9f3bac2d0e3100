package storage

import "sync"

// MapRepository is a thread-safe hash-indexed repository.
// Create, FindByID and Update are O(1), FindByEmail and FindAll are O(n)
type MapRepository struct {
	users map[int64]User // id - user
	ids   *IDGenerator
	mu    sync.RWMutex
}

// NewMapRepository creates a new instance of MapRepository with its own id generator
func NewMapRepository() *MapRepository {
	return newMapRepository(&IDGenerator{})
}

func newMapRepository(ids *IDGenerator) *MapRepository {
	return &MapRepository{
		users: make(map[int64]User),
		ids:   ids,
	}
}

// Create assigns the next id, stores the user and returns a copy of it
func (m *MapRepository) Create(attrs Attributes) User {
	u := User{ID: m.ids.Next()}
	u.apply(attrs)

	m.insert(u)
	return u
}

func (m *MapRepository) insert(u User) {
	m.mu.Lock()
	m.users[u.ID] = u
	m.mu.Unlock()
}

// FindByID returns the user and true if the id is stored. Otherwise, User{}, false
func (m *MapRepository) FindByID(id int64) (User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	return u, ok
}

// FindByEmail returns the earliest created user with the given email or ErrNotFound
func (m *MapRepository) FindByEmail(email string) (User, error) {
	u, ok := m.firstByEmail(email)
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

// firstByEmail picks the lowest id among matches, map iteration order is random
func (m *MapRepository) firstByEmail(email string) (User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var found User
	ok := false
	for _, u := range m.users {
		if u.Email != email {
			continue
		}
		if !ok || u.ID < found.ID {
			found = u
			ok = true
		}
	}
	return found, ok
}

// FindAll returns a snapshot copy of all stored users in no particular order
func (m *MapRepository) FindAll() []User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out
}

// Update replaces name and email of the stored user. Returns ErrNotFound if the id is not stored
func (m *MapRepository) Update(id int64, attrs Attributes) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.apply(attrs)
	m.users[id] = u

	return nil
}

// Delete is not supported
func (m *MapRepository) Delete(int64) error {
	return ErrUnsupported
}

// Len returns the number of stored users
func (m *MapRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}
