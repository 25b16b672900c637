package utils

import "github.com/oklog/ulid/v2"

// NewID returns a ULID: 26 chars, lexically sortable, monotonic within a
// millisecond in this process.
func NewID() string {
	return ulid.Make().String()
}
