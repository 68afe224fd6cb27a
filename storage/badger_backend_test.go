package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadgerBackend(t *testing.T) {
	backend := NewBadgerBackend(TestBadgerDB())
	defer backend.Close()

	testBackendRoundTrip(t, backend)
}

func TestBadgerBackendOverwrite(t *testing.T) {
	backend := NewBadgerBackend(TestBadgerDB())
	defer backend.Close()

	assert.NoError(t, backend.Put("key", []byte("old")))
	assert.NoError(t, backend.Put("key", []byte("new")))

	blob, err := backend.Get("key")
	assert.NoError(t, err)
	assert.Equal(t, []byte("new"), blob)
}

func TestBadgerBackendDeleteMissingKey(t *testing.T) {
	backend := NewBadgerBackend(TestBadgerDB())
	defer backend.Close()

	assert.NoError(t, backend.Delete("missing"))

	_, err := backend.Get("missing")
	assert.True(t, errors.Is(err, ErrKeyNotFound))
}
