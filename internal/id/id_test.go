package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKind(t *testing.T) {
	got := New(KindTransaction)
	assert.Equal(t, KindTransaction, Kind(got))
	assert.True(t, Valid(KindTransaction, got))
	assert.False(t, Valid(KindAccount, got))
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		v := New(KindDebt)
		assert.False(t, seen[v], "duplicate id %s", v)
		seen[v] = true
	}
}

func TestKindMalformed(t *testing.T) {
	assert.Equal(t, "", Kind("noseparator"))
	assert.Equal(t, "", Kind("_leading"))
	assert.False(t, Valid(KindAccount, "acc_not-a-uuid"))
	assert.False(t, Valid(KindAccount, ""))
}
