package storage

import (
	"errors"
	"sync"
)

// ErrKeyNotFound is returned by Backend.Get when the key has no cached
// value.
var ErrKeyNotFound = errors.New("key not found")

// Backend is a local cache of raw statistic blobs keyed by sanitized
// cache paths.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, buf []byte) error
	Delete(key string) error

	Close() error
}

type InMemoryBackend struct {
	blobMap      map[string][]byte
	blobMapMutex sync.Mutex
}

func NewInMemoryBackend() *InMemoryBackend {
	return &InMemoryBackend{
		blobMap: make(map[string][]byte),
	}
}

func (backend *InMemoryBackend) Get(key string) ([]byte, error) {
	backend.blobMapMutex.Lock()
	defer backend.blobMapMutex.Unlock()
	buf, ok := backend.blobMap[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return buf, nil
}

func (backend *InMemoryBackend) Put(key string, buf []byte) error {
	backend.blobMapMutex.Lock()
	defer backend.blobMapMutex.Unlock()
	backend.blobMap[key] = buf
	return nil
}

func (backend *InMemoryBackend) Delete(key string) error {
	backend.blobMapMutex.Lock()
	defer backend.blobMapMutex.Unlock()
	delete(backend.blobMap, key)
	return nil
}

func (backend *InMemoryBackend) Close() error {
	backend.blobMapMutex.Lock()
	defer backend.blobMapMutex.Unlock()
	backend.blobMap = nil
	return nil
}
