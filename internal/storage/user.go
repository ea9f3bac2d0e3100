package storage

import "errors"

var (
	// ErrNotFound is returned when no user matches a lookup
	ErrNotFound = errors.New("user not found")
	// ErrUnsupported is returned by operations the repository does not implement
	ErrUnsupported = errors.New("operation is not supported")
)

// User is the entity owned by a Repository. ID is assigned on Create and never changes
type User struct {
	ID    int64
	Name  string
	Email string
}

// Attributes holds the mutable part of a User
type Attributes struct {
	Name  string
	Email string
}

// apply replaces mutable fields, the id is left untouched
func (u *User) apply(attrs Attributes) {
	u.Name = attrs.Name
	u.Email = attrs.Email
}
