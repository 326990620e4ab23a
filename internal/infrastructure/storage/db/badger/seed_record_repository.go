package dbbadger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"

	"github.com/otsproject/ots/internal/core/domain"
)

type seedRecordRepository struct {
	store *badgerhold.Store
}

// NewSeedRecordRepository returns a badger implementation of
// domain.SeedRecordRepository. It creates the db files in the given dir, or
// an in-memory db if no dir is provided (to be used only for testing
// purposes).
func NewSeedRecordRepository(
	baseDbDir string, logger badger.Logger,
) (domain.SeedRecordRepository, error) {
	store, err := createDb(baseDbDir, logger)
	if err != nil {
		return nil, err
	}
	return &seedRecordRepository{store: store}, nil
}

func (r *seedRecordRepository) AddRecord(
	_ context.Context, record *domain.SeedRecord,
) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if err := r.store.Insert(record.Fingerprint, *record); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrRecordAlreadyExisting
		}
		return err
	}
	return nil
}

func (r *seedRecordRepository) GetRecord(
	_ context.Context, fingerprint string,
) (*domain.SeedRecord, error) {
	var record domain.SeedRecord
	if err := r.store.Get(fingerprint, &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *seedRecordRepository) ListRecords(
	_ context.Context,
) ([]domain.SeedRecord, error) {
	var records []domain.SeedRecord
	if err := r.store.Find(&records, &badgerhold.Query{}); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *seedRecordRepository) DeleteRecord(
	_ context.Context, fingerprint string,
) error {
	if err := r.store.Delete(fingerprint, domain.SeedRecord{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrRecordNotFound
		}
		return err
	}
	return nil
}

func (r *seedRecordRepository) Close() {
	if err := r.store.Close(); err != nil {
		log.Warnf("seed record repository: error while closing db: %s", err)
	}
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil && err != badger.ErrNoRewrite {
					log.Warnf("garbage collector: %s", err)
				}
			}
		}()
	}

	return db, nil
}
