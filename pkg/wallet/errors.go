package wallet

import "errors"

var (
	ErrMissingKey       = errors.New("missing wallet secret key")
	ErrMissingData      = errors.New("missing data to sign")
	ErrAddressNotFound  = errors.New("address not found in wallet")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidSignature = errors.New("invalid signature encoding")
)
