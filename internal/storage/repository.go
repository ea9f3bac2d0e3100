package storage

import (
	"errors"
	"fmt"
)

// Repository is a common interface for in-memory user repositories.
// Implementations differ only in the backing structure, callers must not depend on which one they got
type Repository interface {
	// Create assigns the next id, stores the user and returns a copy of it
	Create(attrs Attributes) User

	// FindByID returns the user and true if the id is stored. Otherwise, User{}, false
	FindByID(id int64) (User, bool)

	// FindByEmail returns the first user with the given email or ErrNotFound
	FindByEmail(email string) (User, error)

	// FindAll returns a snapshot copy of all stored users
	FindAll() []User

	// Update replaces name and email of the stored user. Returns ErrNotFound if the id is not stored
	Update(id int64, attrs Attributes) error

	// Delete always returns ErrUnsupported
	Delete(id int64) error

	// Len returns the number of stored users
	Len() int
}

// Kind names a backing strategy
type Kind string

const (
	KindHash    Kind = "hash"
	KindList    Kind = "list"
	KindSharded Kind = "sharded"
)

var ErrUnknownKind = errors.New("unknown repository kind")

// New builds a repository of the given kind. shards is used only by KindSharded
func New(kind Kind, shards uint) (Repository, error) {
	switch kind {
	case KindHash:
		return NewMapRepository(), nil
	case KindList:
		return NewListRepository(), nil
	case KindSharded:
		s, err := NewShardedMapRepository(shards)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
