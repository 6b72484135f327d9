package model

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID identifies one presentation. IDs sort by creation time.
type ID string

// NewID generates a new presentation ID.
func NewID() ID {
	return ID(ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String())
}

// Time returns the creation time encoded in the ID.
func (id ID) Time() (time.Time, bool) {
	u, err := ulid.Parse(string(id))
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(u.Time()), true
}
