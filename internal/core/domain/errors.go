package domain

import "errors"

// ErrorKind classifies every failure the custody core can raise, so that a
// process boundary can translate it into a stable numeric code.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindInvalidArgument marks bad input shape: malformed phrase, word not
	// in dictionary, out-of-range index.
	KindInvalidArgument
	// KindOutOfRange marks lookup misses: language, seed or key not found.
	KindOutOfRange
	// KindDomainViolation marks operations violating a library-level
	// precondition, like deriving a key from an encrypted seed.
	KindDomainViolation
	// KindNotImplemented marks explicit stubs. Never expected in a complete
	// build.
	KindNotImplemented
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindOutOfRange:
		return "out of range"
	case KindDomainViolation:
		return "domain violation"
	case KindNotImplemented:
		return "not implemented"
	default:
		return "unknown"
	}
}

// Error is a kinded sentinel error. Failures are raised at the point of
// violation and propagate unhandled to the caller: the core performs no
// retries and no silent fallback.
type Error struct {
	kind ErrorKind
	msg  string
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Kind() ErrorKind { return e.kind }

// KindOf returns the kind of the given error, unwrapping as needed.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind()
	}
	return KindUnknown
}

var (
	ErrLanguageNotFound     = newError(KindOutOfRange, "language not found")
	ErrNoDefaultLanguage    = newError(KindDomainViolation, "no default language set for seed type")
	ErrLanguageNotSupported = newError(KindInvalidArgument, "language not supported for seed type")
	ErrNetworkNotSupported  = newError(KindInvalidArgument, "network not supported")

	ErrSeedMissingPhrase    = newError(KindInvalidArgument, "missing seed phrase")
	ErrSeedInvalidWordCount = newError(KindInvalidArgument, "invalid number of words for seed type")
	ErrSeedInvalidWord      = newError(KindInvalidArgument, "word not in language word list")
	ErrSeedInvalidChecksum  = newError(KindInvalidArgument, "seed phrase checksum mismatch")
	ErrSeedInvalidIndex     = newError(KindInvalidArgument, "word index out of word list range")
	ErrSeedInvalidEntropy   = newError(KindInvalidArgument, "invalid entropy size")
	ErrSeedInvalidFeatures  = newError(KindInvalidArgument, "unsupported seed feature flags")

	ErrSeedEncrypted        = newError(KindDomainViolation, "seed is encrypted")
	ErrSeedNotEncryptable   = newError(KindDomainViolation, "seed type does not support encryption")
	ErrSeedAlreadyEncrypted = newError(KindDomainViolation, "seed is already encrypted")
	ErrSeedNotEncrypted     = newError(KindDomainViolation, "seed is not encrypted")
	ErrSeedMissingPassword  = newError(KindInvalidArgument, "missing password")
	ErrSeedInvalidPassword  = newError(KindInvalidArgument, "wrong password")

	ErrSeedNotFound = newError(KindOutOfRange, "seed not found")
	ErrKeyNotFound  = newError(KindOutOfRange, "key not found")
	ErrKeyInvalid   = newError(KindInvalidArgument, "key must be 32 hex-encoded bytes")

	ErrRecordNotFound        = newError(KindOutOfRange, "seed record not found")
	ErrRecordAlreadyExisting = newError(KindDomainViolation, "seed record already existing")

	ErrNotImplemented = newError(KindNotImplemented, "not implemented yet")
)
