package inmemory

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"github.com/otsproject/ots/internal/core/domain"
)

type seedJar struct {
	lock     *sync.Mutex
	byHandle map[domain.SeedHandle]domain.Seed
	order    []domain.SeedHandle
}

// NewSeedJar returns an in-memory implementation of domain.SeedJar.
func NewSeedJar() domain.SeedJar {
	return &seedJar{
		lock:     &sync.Mutex{},
		byHandle: make(map[domain.SeedHandle]domain.Seed),
	}
}

func (j *seedJar) Store(seed domain.Seed) (domain.SeedHandle, error) {
	j.lock.Lock()
	defer j.lock.Unlock()

	for handle, registered := range j.byHandle {
		if registered == seed {
			return handle, nil
		}
	}

	handle, err := j.generateHandle()
	if err != nil {
		return 0, err
	}
	j.byHandle[handle] = seed
	j.order = append(j.order, handle)
	return handle, nil
}

func (j *seedJar) Get(handle domain.SeedHandle) (domain.Seed, error) {
	j.lock.Lock()
	defer j.lock.Unlock()

	seed, ok := j.byHandle[handle]
	if !ok {
		return nil, domain.ErrSeedNotFound
	}
	return seed, nil
}

// GetByFingerprint scans the registered seeds instead of keeping an index:
// a seed's fingerprint changes when it gets encrypted or decrypted, so the
// lookup must always reflect the current value.
func (j *seedJar) GetByFingerprint(fingerprint string) (domain.Seed, error) {
	j.lock.Lock()
	defer j.lock.Unlock()

	for _, handle := range j.order {
		if seed := j.byHandle[handle]; seed.Fingerprint() == fingerprint {
			return seed, nil
		}
	}
	return nil, domain.ErrSeedNotFound
}

func (j *seedJar) Has(handle domain.SeedHandle) bool {
	j.lock.Lock()
	defer j.lock.Unlock()

	_, ok := j.byHandle[handle]
	return ok
}

func (j *seedJar) HasFingerprint(fingerprint string) bool {
	j.lock.Lock()
	defer j.lock.Unlock()

	for _, seed := range j.byHandle {
		if seed.Fingerprint() == fingerprint {
			return true
		}
	}
	return false
}

func (j *seedJar) Remove(handle domain.SeedHandle) bool {
	j.lock.Lock()
	defer j.lock.Unlock()

	if _, ok := j.byHandle[handle]; !ok {
		return false
	}
	delete(j.byHandle, handle)
	for i, h := range j.order {
		if h == handle {
			j.order = append(j.order[:i], j.order[i+1:]...)
			break
		}
	}
	return true
}

func (j *seedJar) List() []domain.Seed {
	j.lock.Lock()
	defer j.lock.Unlock()

	seeds := make([]domain.Seed, 0, len(j.order))
	for _, handle := range j.order {
		seeds = append(seeds, j.byHandle[handle])
	}
	return seeds
}

func (j *seedJar) generateHandle() (domain.SeedHandle, error) {
	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, err
		}
		handle := domain.SeedHandle(binary.BigEndian.Uint64(buf[:]))
		if handle == 0 {
			continue
		}
		if _, used := j.byHandle[handle]; used {
			continue
		}
		return handle, nil
	}
}
