package blogdesk

import (
	"strings"
	"sync"
)

// UserDirectory is a read-mostly, in-memory list of known users.
type UserDirectory struct {
	mu    sync.RWMutex
	users []User
}

// NewUserDirectory creates a directory holding a copy of users.
func NewUserDirectory(users []User) *UserDirectory {
	return &UserDirectory{users: append([]User(nil), users...)}
}

// List returns every user in insertion order.
func (d *UserDirectory) List() []User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]User{}, d.users...)
}

// Get returns the user with the given id, or ErrNotFound.
func (d *UserDirectory) Get(id string) (User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, u := range d.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// ByEmail finds a user by email, ignoring case and surrounding space.
func (d *UserDirectory) ByEmail(email string) (User, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, u := range d.users {
		if strings.ToLower(u.Email) == email {
			return u, true
		}
	}
	return User{}, false
}
