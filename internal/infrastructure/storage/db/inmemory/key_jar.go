package inmemory

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"

	"github.com/otsproject/ots/internal/core/domain"
	"github.com/otsproject/ots/pkg/crypto"
)

// DefaultKeyJarCapacity bounds the number of custodied keys before the
// opportunistic cleanup pass starts evicting.
const DefaultKeyJarCapacity = 64

type keyEntry struct {
	key         crypto.SecretKey
	label       string
	seed        domain.Seed
	accessCount uint64
	lastAccess  time.Time
}

type keyJar struct {
	lock     *sync.Mutex
	entries  map[domain.KeyHandle]*keyEntry
	capacity int
}

// NewKeyJar returns an in-memory implementation of domain.KeyJar. A
// capacity of zero or less selects DefaultKeyJarCapacity.
//
// Retention policy: after every store, anonymous entries (no label, no seed
// back-reference) are evicted least-recently-accessed first until the jar
// fits its capacity. Labeled and seed-linked entries are never evicted,
// only removed explicitly.
func NewKeyJar(capacity int) domain.KeyJar {
	if capacity <= 0 {
		capacity = DefaultKeyJarCapacity
	}
	return &keyJar{
		lock:     &sync.Mutex{},
		entries:  make(map[domain.KeyHandle]*keyEntry),
		capacity: capacity,
	}
}

func (j *keyJar) Store(
	key crypto.SecretKey, label string,
) (domain.KeyHandle, error) {
	return j.StoreForSeed(key, label, nil)
}

func (j *keyJar) StoreForSeed(
	key crypto.SecretKey, label string, seed domain.Seed,
) (domain.KeyHandle, error) {
	j.lock.Lock()
	defer j.lock.Unlock()

	for handle, entry := range j.entries {
		if entry.key == key && entry.label == label {
			return handle, nil
		}
	}

	handle, err := j.generateHandle()
	if err != nil {
		return 0, err
	}
	j.entries[handle] = &keyEntry{
		key:        key,
		label:      label,
		seed:       seed,
		lastAccess: time.Now(),
	}
	j.cleanup()
	return handle, nil
}

func (j *keyJar) Use(
	handle domain.KeyHandle, fn func(key crypto.SecretKey) error,
) error {
	j.lock.Lock()
	defer j.lock.Unlock()

	entry, ok := j.entries[handle]
	if !ok {
		return domain.ErrKeyNotFound
	}
	entry.accessCount++
	entry.lastAccess = time.Now()
	return fn(entry.key)
}

func (j *keyJar) Remove(handle domain.KeyHandle) bool {
	j.lock.Lock()
	defer j.lock.Unlock()

	entry, ok := j.entries[handle]
	if !ok {
		return false
	}
	crypto.Zero(entry.key[:])
	delete(j.entries, handle)
	return true
}

func (j *keyJar) Has(handle domain.KeyHandle) bool {
	j.lock.Lock()
	defer j.lock.Unlock()

	_, ok := j.entries[handle]
	return ok
}

func (j *keyJar) Seed(handle domain.KeyHandle) (domain.Seed, error) {
	j.lock.Lock()
	defer j.lock.Unlock()

	entry, ok := j.entries[handle]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	if entry.seed == nil {
		return nil, domain.ErrSeedNotFound
	}
	return entry.seed, nil
}

func (j *keyJar) Label(handle domain.KeyHandle) (string, error) {
	j.lock.Lock()
	defer j.lock.Unlock()

	entry, ok := j.entries[handle]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return entry.label, nil
}

func (j *keyJar) Count() int {
	j.lock.Lock()
	defer j.lock.Unlock()

	return len(j.entries)
}

// generateHandle draws from the full 64-bit space, rejecting 0 and values
// already in use. Collisions are negligible but still retried.
func (j *keyJar) generateHandle() (domain.KeyHandle, error) {
	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, err
		}
		handle := domain.KeyHandle(binary.BigEndian.Uint64(buf[:]))
		if handle == 0 {
			continue
		}
		if _, used := j.entries[handle]; used {
			continue
		}
		return handle, nil
	}
}

// cleanup is the opportunistic pass run after every store. Must be called
// with the lock held.
func (j *keyJar) cleanup() {
	for len(j.entries) > j.capacity {
		var (
			oldest       domain.KeyHandle
			oldestAccess time.Time
			found        bool
		)
		for handle, entry := range j.entries {
			if entry.label != "" || entry.seed != nil {
				continue
			}
			if !found || entry.lastAccess.Before(oldestAccess) {
				oldest, oldestAccess, found = handle, entry.lastAccess, true
			}
		}
		if !found {
			return
		}
		crypto.Zero(j.entries[oldest].key[:])
		delete(j.entries, oldest)
	}
}
