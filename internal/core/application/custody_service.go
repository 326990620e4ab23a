package application

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/otsproject/ots/internal/core/domain"
	"github.com/otsproject/ots/pkg/crypto"
)

// CustodyService is responsible for operations related to the custody of
// seeds and keys:
// 	* Generate a new random seed (25-word or polyseed scheme).
// 	* Import a seed from its phrase in any catalog language.
// 	* Encrypt/decrypt a registered seed with a password.
// 	* Persist a seed record at rest (phrase ciphered with a password) and
// 	  restore it in a later session.
// 	* Export a seed phrase in any language supporting its scheme.
// 	* Store, list and remove standalone keys.
//
// The service owns no secret material itself: seeds live in the seed jar,
// keys in the key jar, and both jars are injected so several services can
// share one custody context.
type CustodyService struct {
	keyJar    domain.KeyJar
	seedJar   domain.SeedJar
	repo      domain.SeedRecordRepository
	cypher    domain.SeedCypher
	estimator domain.ChainEstimator

	keyHandles  map[string]domain.KeyHandle
	ownHandles  []domain.KeyHandle
	seedHandles map[string]domain.SeedHandle
	lock        *sync.RWMutex

	log  func(format string, a ...interface{})
	warn func(err error, format string, a ...interface{})
}

func NewCustodyService(
	keyJar domain.KeyJar, seedJar domain.SeedJar,
	repo domain.SeedRecordRepository, cypher domain.SeedCypher,
	estimator domain.ChainEstimator,
) *CustodyService {
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("custody service: %s", format)
		log.Debugf(format, a...)
	}
	warnFn := func(err error, format string, a ...interface{}) {
		format = fmt.Sprintf("custody service: %s", format)
		log.WithError(err).Warnf(format, a...)
	}

	return &CustodyService{
		keyJar:      keyJar,
		seedJar:     seedJar,
		repo:        repo,
		cypher:      cypher,
		estimator:   estimator,
		keyHandles:  make(map[string]domain.KeyHandle),
		seedHandles: make(map[string]domain.SeedHandle),
		lock:        &sync.RWMutex{},
		log:         logFn,
		warn:        warnFn,
	}
}

// GenerateSeed mints a fresh seed of the given scheme, registers it and
// issues a key handle for its spend key.
func (cs *CustodyService) GenerateSeed(
	ctx context.Context, args GenerateSeedArgs, network domain.Network,
) (*SeedInfo, error) {
	var seed domain.Seed
	var err error
	switch args.Type {
	case domain.SeedTypeMonero.String(), "":
		seed, err = domain.GenerateMoneroSeed(domain.GenerateMoneroSeedArgs{
			Birthday: args.Birthday,
			Height:   args.Height,
			Network:  network,
		})
	case domain.SeedTypePolyseed.String():
		seed, err = domain.CreatePolyseed(domain.CreatePolyseedArgs{
			Birthday: args.Birthday,
			Network:  network,
		})
	default:
		err = fmt.Errorf("unknown seed type %q", args.Type)
	}
	if err != nil {
		return nil, err
	}

	info, err := cs.registerSeed(seed)
	if err != nil {
		return nil, err
	}
	cs.log("generated %s seed %s", info.Type, info.Fingerprint)
	return info, nil
}

// ImportSeed decodes a phrase and registers the resulting seed. The scheme
// is detected from the word count.
func (cs *CustodyService) ImportSeed(
	ctx context.Context, args ImportSeedArgs, network domain.Network,
) (*SeedInfo, error) {
	wordCount := len(strings.Fields(args.Phrase))

	var seed domain.Seed
	switch wordCount {
	case domain.LegacySeedWordCount:
		language, err := cs.resolveLanguage(
			args.LanguageCode, domain.SeedTypeMonero,
		)
		if err != nil {
			return nil, err
		}
		seed, err = domain.DecodeLegacySeed(domain.DecodeLegacySeedArgs{
			Phrase:   args.Phrase,
			Language: language,
			Birthday: args.Birthday,
			Height:   args.Height,
			Network:  network,
		})
		if err != nil {
			return nil, err
		}
	case domain.MoneroSeedWordCount:
		language, err := cs.resolveLanguage(
			args.LanguageCode, domain.SeedTypeMonero,
		)
		if err != nil {
			return nil, err
		}
		seed, err = domain.DecodeMoneroSeed(domain.DecodeMoneroSeedArgs{
			Phrase:    args.Phrase,
			Language:  language,
			Encrypted: args.Encrypted,
			Birthday:  args.Birthday,
			Height:    args.Height,
			Network:   network,
		})
		if err != nil {
			return nil, err
		}
	case domain.PolyseedWordCount:
		language, err := cs.resolveLanguage(
			args.LanguageCode, domain.SeedTypePolyseed,
		)
		if err != nil {
			return nil, err
		}
		seed, err = domain.DecodePolyseed(domain.DecodePolyseedArgs{
			Phrase:   args.Phrase,
			Language: language,
			Network:  network,
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrSeedInvalidWordCount
	}

	info, err := cs.registerSeed(seed)
	if err != nil {
		return nil, err
	}
	cs.log("imported %s seed %s", info.Type, info.Fingerprint)
	return info, nil
}

// ListSeeds returns the registered seeds in registration order.
func (cs *CustodyService) ListSeeds(ctx context.Context) []SeedInfo {
	seeds := cs.seedJar.List()
	infos := make([]SeedInfo, 0, len(seeds))
	for _, seed := range seeds {
		infos = append(infos, *cs.seedInfo(seed))
	}
	return infos
}

// GetSeedInfo returns the read-model of the registered seed with the given
// fingerprint.
func (cs *CustodyService) GetSeedInfo(
	ctx context.Context, fingerprint string,
) (*SeedInfo, error) {
	seed, err := cs.seedJar.GetByFingerprint(fingerprint)
	if err != nil {
		return nil, err
	}
	return cs.seedInfo(seed), nil
}

// ExportSeed returns the seed's phrase in the given language, or in the
// scheme's default language if none is given.
func (cs *CustodyService) ExportSeed(
	ctx context.Context, fingerprint, languageCode string,
) (string, error) {
	seed, err := cs.seedJar.GetByFingerprint(fingerprint)
	if err != nil {
		return "", err
	}
	language, err := cs.resolveLanguage(languageCode, dictTypeOf(seed))
	if err != nil {
		return "", err
	}
	return seed.Phrase(language)
}

// EncryptSeed scrambles the registered seed with the password and revokes
// its key handle. Encrypting changes the fingerprint, so the updated info
// is returned for the caller to keep addressing the seed.
func (cs *CustodyService) EncryptSeed(
	ctx context.Context, fingerprint, password string,
) (*SeedInfo, error) {
	seed, err := cs.seedJar.GetByFingerprint(fingerprint)
	if err != nil {
		return nil, err
	}
	encryptable, ok := seed.(domain.EncryptableSeed)
	if !ok {
		return nil, domain.ErrSeedNotEncryptable
	}
	if err := encryptable.Encrypt(password); err != nil {
		return nil, err
	}

	cs.lock.Lock()
	if handle, ok := cs.keyHandles[fingerprint]; ok {
		cs.keyJar.Remove(handle)
		delete(cs.keyHandles, fingerprint)
	}
	cs.rekeySeedHandle(fingerprint, seed.Fingerprint())
	cs.lock.Unlock()
	cs.log("encrypted seed %s as %s", fingerprint, seed.Fingerprint())
	return cs.seedInfo(seed), nil
}

// DecryptSeed unscrambles the registered seed and issues a fresh key handle
// for its spend key. The returned info carries the restored fingerprint.
func (cs *CustodyService) DecryptSeed(
	ctx context.Context, fingerprint, password string,
) (*SeedInfo, error) {
	seed, err := cs.seedJar.GetByFingerprint(fingerprint)
	if err != nil {
		return nil, err
	}
	encryptable, ok := seed.(domain.EncryptableSeed)
	if !ok {
		return nil, domain.ErrSeedNotEncryptable
	}
	if err := encryptable.Decrypt(password); err != nil {
		return nil, err
	}
	cs.lock.Lock()
	cs.rekeySeedHandle(fingerprint, seed.Fingerprint())
	cs.lock.Unlock()
	if err := cs.custodyKey(seed); err != nil {
		return nil, err
	}
	cs.log("decrypted seed %s as %s", fingerprint, seed.Fingerprint())
	return cs.seedInfo(seed), nil
}

// PersistSeed ciphers the seed's phrase with the password and stores it as a
// record, so the seed survives the process.
func (cs *CustodyService) PersistSeed(
	ctx context.Context, fingerprint, label, password string,
) error {
	seed, err := cs.seedJar.GetByFingerprint(fingerprint)
	if err != nil {
		return err
	}
	language, err := domain.DefaultLanguage(dictTypeOf(seed))
	if err != nil {
		return err
	}
	phrase, err := seed.Phrase(language)
	if err != nil {
		return err
	}
	encryptedPhrase, err := cs.cypher.Encrypt([]byte(phrase), []byte(password))
	if err != nil {
		return err
	}

	record := &domain.SeedRecord{
		Fingerprint:     seed.Fingerprint(),
		Label:           label,
		Network:         seed.Network(),
		Birthday:        seed.Birthday(cs.estimator),
		Height:          seed.Height(cs.estimator),
		LanguageCode:    language.Code(),
		Encrypted:       seedEncrypted(seed),
		EncryptedPhrase: encryptedPhrase,
		CreatedAt:       time.Now(),
	}
	if err := cs.repo.AddRecord(ctx, record); err != nil {
		return err
	}
	cs.log("persisted seed %s", fingerprint)
	return nil
}

// RestoreSeed loads a persisted record, deciphers the phrase with the
// password and registers the seed for the session.
func (cs *CustodyService) RestoreSeed(
	ctx context.Context, fingerprint, password string,
) (*SeedInfo, error) {
	record, err := cs.repo.GetRecord(ctx, fingerprint)
	if err != nil {
		return nil, err
	}
	phrase, err := cs.cypher.Decrypt(
		record.EncryptedPhrase, []byte(password),
	)
	if err != nil {
		return nil, err
	}

	info, err := cs.ImportSeed(ctx, ImportSeedArgs{
		Phrase:       string(phrase),
		LanguageCode: record.LanguageCode,
		Encrypted:    record.Encrypted,
		Birthday:     record.Birthday,
		Height:       record.Height,
	}, record.Network)
	if err != nil {
		return nil, err
	}
	cs.log("restored seed %s", info.Fingerprint)
	return info, nil
}

// ListRecords returns the metadata of all persisted seed records.
func (cs *CustodyService) ListRecords(
	ctx context.Context,
) ([]RecordInfo, error) {
	records, err := cs.repo.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]RecordInfo, 0, len(records))
	for _, record := range records {
		infos = append(infos, RecordInfo{
			Fingerprint:  record.Fingerprint,
			Label:        record.Label,
			Network:      record.Network.String(),
			Birthday:     record.Birthday,
			Height:       record.Height,
			LanguageCode: record.LanguageCode,
			Encrypted:    record.Encrypted,
			CreatedAt:    record.CreatedAt.Unix(),
		})
	}
	return infos, nil
}

// ForgetSeed unregisters the seed, wipes its material and revokes its key
// handle. When deleteRecord is set the persisted record is dropped too.
func (cs *CustodyService) ForgetSeed(
	ctx context.Context, fingerprint string, deleteRecord bool,
) error {
	seed, err := cs.seedJar.GetByFingerprint(fingerprint)
	if err != nil {
		if !deleteRecord {
			return err
		}
		return cs.repo.DeleteRecord(ctx, fingerprint)
	}

	cs.lock.Lock()
	if handle, ok := cs.keyHandles[fingerprint]; ok {
		cs.keyJar.Remove(handle)
		delete(cs.keyHandles, fingerprint)
	}
	if handle, ok := cs.seedHandles[fingerprint]; ok {
		cs.seedJar.Remove(handle)
		delete(cs.seedHandles, fingerprint)
	}
	cs.lock.Unlock()
	seed.Wipe()

	if deleteRecord {
		if err := cs.repo.DeleteRecord(ctx, fingerprint); err != nil &&
			err != domain.ErrRecordNotFound {
			return err
		}
	}
	cs.log("forgot seed %s", fingerprint)
	return nil
}

// Address derives the address of the seed's wallet at the given account and
// index coordinates.
func (cs *CustodyService) Address(
	ctx context.Context, fingerprint string, account, index uint32,
) (string, error) {
	seed, err := cs.seedJar.GetByFingerprint(fingerprint)
	if err != nil {
		return "", err
	}
	w, err := seed.Wallet(cs.estimator)
	if err != nil {
		return "", err
	}
	defer w.Wipe()
	return w.Address(account, index)
}

// SignData signs arbitrary data with the seed's spend key and returns the
// hex-encoded compact signature.
func (cs *CustodyService) SignData(
	ctx context.Context, fingerprint string, data []byte,
) (string, error) {
	seed, err := cs.seedJar.GetByFingerprint(fingerprint)
	if err != nil {
		return "", err
	}
	w, err := seed.Wallet(cs.estimator)
	if err != nil {
		return "", err
	}
	defer w.Wipe()
	return w.SignData(data)
}

// StoreKey custodies a standalone hex-encoded key under the given label.
func (cs *CustodyService) StoreKey(
	ctx context.Context, hexKey, label string,
) (domain.KeyHandle, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil || len(raw) != crypto.SecretKeySize {
		return 0, domain.ErrKeyInvalid
	}
	var key crypto.SecretKey
	copy(key[:], raw)
	crypto.Zero(raw)

	handle, err := cs.keyJar.Store(key, label)
	if err != nil {
		return 0, err
	}

	cs.lock.Lock()
	cs.ownHandles = append(cs.ownHandles, handle)
	cs.lock.Unlock()
	cs.log("stored key %d (%s)", handle, label)
	return handle, nil
}

// RemoveKey revokes a key handle, reporting whether it existed.
func (cs *CustodyService) RemoveKey(
	ctx context.Context, handle domain.KeyHandle,
) bool {
	removed := cs.keyJar.Remove(handle)
	if removed {
		cs.log("removed key %d", handle)
	}
	return removed
}

// ListKeys returns the keys issued through this service that are still
// custodied.
func (cs *CustodyService) ListKeys(ctx context.Context) []KeyInfo {
	cs.lock.RLock()
	handles := make([]domain.KeyHandle, 0, len(cs.ownHandles)+len(cs.keyHandles))
	handles = append(handles, cs.ownHandles...)
	for _, handle := range cs.keyHandles {
		handles = append(handles, handle)
	}
	cs.lock.RUnlock()

	infos := make([]KeyInfo, 0, len(handles))
	for _, handle := range handles {
		if !cs.keyJar.Has(handle) {
			continue
		}
		label, err := cs.keyJar.Label(handle)
		if err != nil {
			continue
		}
		info := KeyInfo{Handle: handle, Label: label}
		if seed, err := cs.keyJar.Seed(handle); err == nil && seed != nil {
			info.SeedFingerprint = seed.Fingerprint()
		}
		infos = append(infos, info)
	}
	return infos
}

func (cs *CustodyService) registerSeed(seed domain.Seed) (*SeedInfo, error) {
	seedHandle, err := cs.seedJar.Store(seed)
	if err != nil {
		return nil, err
	}
	cs.lock.Lock()
	cs.seedHandles[seed.Fingerprint()] = seedHandle
	cs.lock.Unlock()

	if err := cs.custodyKey(seed); err != nil {
		return nil, err
	}
	return cs.seedInfo(seed), nil
}

// custodyKey issues a key-jar handle for the seed's spend key. Encrypted
// seeds can't derive their key and get no handle until decrypted.
func (cs *CustodyService) custodyKey(seed domain.Seed) error {
	key, err := seed.Key()
	if err != nil {
		if err == domain.ErrSeedEncrypted {
			return nil
		}
		return err
	}
	handle, err := cs.keyJar.StoreForSeed(key, seed.Fingerprint(), seed)
	if err != nil {
		return err
	}
	cs.lock.Lock()
	cs.keyHandles[seed.Fingerprint()] = handle
	cs.lock.Unlock()
	return nil
}

// rekeySeedHandle moves the seed-handle bookkeeping to the seed's new
// fingerprint after an encryption state change. Caller holds cs.lock.
func (cs *CustodyService) rekeySeedHandle(oldFingerprint, newFingerprint string) {
	if oldFingerprint == newFingerprint {
		return
	}
	if handle, ok := cs.seedHandles[oldFingerprint]; ok {
		delete(cs.seedHandles, oldFingerprint)
		cs.seedHandles[newFingerprint] = handle
	}
}

func (cs *CustodyService) seedInfo(seed domain.Seed) *SeedInfo {
	info := &SeedInfo{
		Fingerprint: seed.Fingerprint(),
		Type:        seed.Type().String(),
		Network:     seed.Network().String(),
		Birthday:    seed.Birthday(cs.estimator),
		Height:      seed.Height(cs.estimator),
	}
	if encryptable, ok := seed.(domain.EncryptableSeed); ok {
		info.Encrypted = encryptable.Encrypted()
	}
	if w, err := seed.Wallet(cs.estimator); err == nil {
		if addr, err := w.Address(0, 0); err == nil {
			info.Address = addr
		}
		w.Wipe()
	}
	cs.lock.RLock()
	info.KeyHandle = cs.keyHandles[seed.Fingerprint()]
	cs.lock.RUnlock()
	return info
}

func seedEncrypted(seed domain.Seed) bool {
	encryptable, ok := seed.(domain.EncryptableSeed)
	return ok && encryptable.Encrypted()
}

// dictTypeOf maps a seed to the dictionary family its phrase is written in.
func dictTypeOf(seed domain.Seed) domain.SeedType {
	if seed.Type() == domain.SeedTypePolyseed {
		return domain.SeedTypePolyseed
	}
	return domain.SeedTypeMonero
}

func (cs *CustodyService) resolveLanguage(
	code string, dictType domain.SeedType,
) (domain.SeedLanguage, error) {
	if len(code) == 0 {
		return domain.DefaultLanguage(dictType)
	}
	language, err := domain.LanguageFromCode(code)
	if err != nil {
		return domain.SeedLanguage{}, err
	}
	if !language.Supported(dictType) {
		return domain.SeedLanguage{}, domain.ErrLanguageNotSupported
	}
	return language, nil
}
