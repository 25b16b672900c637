package domain

import (
	"context"
	"time"
)

// User is the single persisted record of the users API.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserStore is the data store adapter behind the users resource.
// Create always assigns a fresh ID and defaults a zero CreatedAt to now.
// List returns every record ordered by CreatedAt, then ID; store ids grow
// with insertion so ties keep insertion order.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	List(ctx context.Context) ([]User, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
