package inmemory

import (
	"context"
	"sync"

	"github.com/otsproject/ots/internal/core/domain"
)

type seedRecordRepository struct {
	lock    *sync.RWMutex
	records map[string]*domain.SeedRecord
	order   []string
}

// NewSeedRecordRepository returns an in-memory implementation of
// domain.SeedRecordRepository, mainly for tests and ephemeral sessions.
func NewSeedRecordRepository() domain.SeedRecordRepository {
	return &seedRecordRepository{
		lock:    &sync.RWMutex{},
		records: make(map[string]*domain.SeedRecord),
	}
}

func (r *seedRecordRepository) AddRecord(
	_ context.Context, record *domain.SeedRecord,
) error {
	if err := record.Validate(); err != nil {
		return err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.records[record.Fingerprint]; ok {
		return domain.ErrRecordAlreadyExisting
	}
	r.records[record.Fingerprint] = record
	r.order = append(r.order, record.Fingerprint)
	return nil
}

func (r *seedRecordRepository) GetRecord(
	_ context.Context, fingerprint string,
) (*domain.SeedRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	record, ok := r.records[fingerprint]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return record, nil
}

func (r *seedRecordRepository) ListRecords(
	_ context.Context,
) ([]domain.SeedRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	records := make([]domain.SeedRecord, 0, len(r.order))
	for _, fingerprint := range r.order {
		records = append(records, *r.records[fingerprint])
	}
	return records, nil
}

func (r *seedRecordRepository) DeleteRecord(
	_ context.Context, fingerprint string,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.records[fingerprint]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.records, fingerprint)
	for i, fp := range r.order {
		if fp == fingerprint {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *seedRecordRepository) Close() {}
