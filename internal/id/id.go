package id

import (
	"strings"

	"github.com/google/uuid"
)

// Entity kinds used as identifier prefixes.
const (
	KindAccount     = "acc"
	KindTransaction = "txn"
	KindDebt        = "debt"
	KindReminder    = "rem"
	KindMessage     = "msg"
)

// New returns a fresh identifier like "txn_7f9c...". Identifiers are
// assigned by the store at creation time and are stable for the
// entity's lifetime.
func New(kind string) string {
	return kind + "_" + uuid.NewString()
}

// Kind returns the prefix of an identifier, or "" if it has none.
func Kind(id string) string {
	i := strings.IndexByte(id, '_')
	if i <= 0 {
		return ""
	}
	return id[:i]
}

// Valid reports whether id is a well-formed identifier of the given kind.
func Valid(kind, id string) bool {
	if Kind(id) != kind {
		return false
	}
	_, err := uuid.Parse(id[len(kind)+1:])
	return err == nil
}
