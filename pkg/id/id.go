// Package id generates the opaque identifiers used for accounts, owners,
// ledger entries and loans.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

var re32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewID32 returns 32 lowercase hex characters from a crypto random source,
// with no separators or prefix.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Valid reports whether s is a well-formed 32-char id.
func Valid(s string) bool { return re32.MatchString(s) }
