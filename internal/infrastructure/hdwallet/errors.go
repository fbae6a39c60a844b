package hdwallet

import "github.com/pkg/errors"

var (
	// ErrInvalidMnemonic is returned for empty or non BIP-39 mnemonics.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	// ErrUnknownAccount is returned when asked to sign for an address the wallet does not hold.
	ErrUnknownAccount = errors.New("account not managed by wallet")
)
