package lockmap

import "sync"

// KeyedMutex hands out one mutex per key so operations on different keys
// proceed concurrently while operations on the same key are linearized.
// Mutexes are created lazily and never evicted; the key space here is
// account ids, which is small enough not to matter.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

func (k *KeyedMutex) Lock(key string) { k.get(key).Lock() }

func (k *KeyedMutex) Unlock(key string) { k.get(key).Unlock() }

// LockPair acquires both keys in lexicographic order, so two callers
// locking the same pair from opposite directions cannot deadlock.
func (k *KeyedMutex) LockPair(a, b string) {
	if b < a {
		a, b = b, a
	}
	k.get(a).Lock()
	k.get(b).Lock()
}

func (k *KeyedMutex) UnlockPair(a, b string) {
	k.get(a).Unlock()
	k.get(b).Unlock()
}
