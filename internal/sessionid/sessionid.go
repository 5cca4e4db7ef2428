// Package sessionid generates identifiers for market sessions: UUIDv7 values
// (time ordered) rendered as 26 lowercase Crockford base32 characters.
package sessionid

import (
	"encoding/base32"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet, as used by TypeID.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// New returns a fresh session identifier. The random bits are read from r,
// or from crypto/rand when r is nil.
func New(r io.Reader) (string, error) {
	var (
		id  uuid.UUID
		err error
	)
	if r == nil {
		id, err = uuid.NewV7()
	} else {
		id, err = uuid.NewV7FromReader(r)
	}
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return encoding.EncodeToString(id[:]), nil
}

// Parse decodes an identifier produced by New.
func Parse(id string) (uuid.UUID, error) {
	if len(id) != 26 {
		return uuid.Nil, fmt.Errorf("session id must be exactly 26 characters, got %d", len(id))
	}
	raw, err := encoding.DecodeString(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session id %q: %w", id, err)
	}
	u, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, err
	}
	if u.Version() != 7 {
		return uuid.Nil, fmt.Errorf("session id %q is not a version 7 uuid", id)
	}
	return u, nil
}
