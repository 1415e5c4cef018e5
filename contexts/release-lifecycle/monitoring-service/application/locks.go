package application

import (
	"context"
	"sync"
)

// KeyedLocks serializes work per monitoring id.
type KeyedLocks struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedLocks() *KeyedLocks {
	return &KeyedLocks{locks: make(map[string]*keyedLock)}
}

// Lock blocks until key is free and returns the unlock func.
func (k *KeyedLocks) Lock(key string) func() {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &keyedLock{}
		k.locks[key] = lock
	}
	lock.refs++
	k.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		k.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// CycleRegistry tracks the cancel func of the cycle running for a monitoring.
type CycleRegistry struct {
	mu      sync.Mutex
	next    uint64
	running map[string]registeredCycle
}

type registeredCycle struct {
	token  uint64
	cancel context.CancelFunc
}

func NewCycleRegistry() *CycleRegistry {
	return &CycleRegistry{running: make(map[string]registeredCycle)}
}

func (r *CycleRegistry) Register(monitoringID string, cancel context.CancelFunc) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.running[monitoringID] = registeredCycle{token: r.next, cancel: cancel}
	return r.next
}

func (r *CycleRegistry) Release(monitoringID string, token uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.running[monitoringID]; ok && current.token == token {
		delete(r.running, monitoringID)
	}
}

// Cancel stops the running cycle, if any, and reports whether one was found.
func (r *CycleRegistry) Cancel(monitoringID string) bool {
	r.mu.Lock()
	current, ok := r.running[monitoringID]
	r.mu.Unlock()
	if ok {
		current.cancel()
	}
	return ok
}

func (r *CycleRegistry) Running(monitoringID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.running[monitoringID]
	return ok
}
