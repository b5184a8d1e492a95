package lock

import (
	"context"
	"errors"
	"sync"
)

// ErrNotObtained is returned when a key is already locked by someone else
var ErrNotObtained = errors.New("lock not obtained")

// LocalLocker serialises work per key inside one process
type LocalLocker struct {
	mutex sync.Mutex
	held  map[string]bool
}

// NewLocalLocker creates an in-process locker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]bool)}
}

// Lock marks key as held and returns the function releasing it.
// It fails fast with ErrNotObtained instead of waiting.
func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.held[key] {
		return nil, ErrNotObtained
	}
	l.held[key] = true

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mutex.Lock()
			delete(l.held, key)
			l.mutex.Unlock()
		})
	}, nil
}
