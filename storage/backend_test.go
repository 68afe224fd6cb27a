package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testBackendRoundTrip(t *testing.T, backend Backend) {
	key := "wait-times_v1b_sf-muni/2022-03-12/wait-times_v1b_sf-muni_2022-03-12_median.json"
	blob := []byte(`{"routes":{}}`)

	_, err := backend.Get(key)
	assert.True(t, errors.Is(err, ErrKeyNotFound))

	assert.NoError(t, backend.Put(key, blob))

	cached, err := backend.Get(key)
	assert.NoError(t, err)
	assert.Equal(t, blob, cached)

	assert.NoError(t, backend.Delete(key))

	_, err = backend.Get(key)
	assert.True(t, errors.Is(err, ErrKeyNotFound))
}

func TestInMemoryBackend(t *testing.T) {
	backend := NewInMemoryBackend()
	defer backend.Close()

	testBackendRoundTrip(t, backend)
}

func TestFileBackend(t *testing.T) {
	backend := NewFileBackend(t.TempDir())
	defer backend.Close()

	testBackendRoundTrip(t, backend)
}

func TestFileBackendDeleteMissingKey(t *testing.T) {
	backend := NewFileBackend(t.TempDir())
	defer backend.Close()

	assert.NoError(t, backend.Delete("never/stored.json"))
}

func TestFileBackendPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	blob := []byte(`{"routes":{"1":{}}}`)

	first := NewFileBackend(dir)
	assert.NoError(t, first.Put("a/b.json", blob))
	assert.NoError(t, first.Close())

	second := NewFileBackend(dir)
	cached, err := second.Get("a/b.json")
	assert.NoError(t, err)
	assert.Equal(t, blob, cached)
}
