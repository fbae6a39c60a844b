package hdwallet

import (
	"crypto/ecdsa"
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

const defaultCacheTTL = 10 * time.Minute

// Deriver turns a mnemonic into secp256k1 keys along a BIP-44 path.
// Seed stretching is expensive, so derived key sets are kept for a while.
type Deriver struct {
	keys *cache.Cache
}

// NewDeriver creates a Deriver whose key sets expire after ttl.
func NewDeriver(ttl time.Duration) *Deriver {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Deriver{keys: cache.New(ttl, 2*ttl)}
}

// Derive returns count keys starting at index below basePath (for example m/44'/60'/0'/0).
func (d *Deriver) Derive(mnemonic, basePath string, index, count int) ([]*ecdsa.PrivateKey, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if index < 0 || count < 1 {
		return nil, errors.Errorf("invalid address range: index %d, count %d", index, count)
	}

	// Never key the cache by the mnemonic itself.
	cacheKey := crypto.Keccak256Hash([]byte(fmt.Sprintf("%s|%s|%d|%d", mnemonic, basePath, index, count))).Hex()
	if cached, ok := d.keys.Get(cacheKey); ok {
		return cached.([]*ecdsa.PrivateKey), nil
	}

	keys, err := deriveKeys(mnemonic, basePath, index, count)
	if err != nil {
		return nil, err
	}
	d.keys.SetDefault(cacheKey, keys)
	return keys, nil
}

// Flush drops every cached key set.
func (d *Deriver) Flush() {
	d.keys.Flush()
}

func deriveKeys(mnemonic, basePath string, index, count int) ([]*ecdsa.PrivateKey, error) {
	if mnemonic == "" || !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, errors.Wrap(ErrInvalidMnemonic, err.Error())
	}

	path, err := accounts.ParseDerivationPath(basePath)
	if err != nil {
		return nil, errors.Wrapf(err, "parse derivation path %q", basePath)
	}

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, errors.Wrap(err, "create master key")
	}

	base := master
	for _, component := range path {
		base, err = base.Derive(component)
		if err != nil {
			return nil, errors.Wrapf(err, "derive %s", basePath)
		}
	}

	keys := make([]*ecdsa.PrivateKey, 0, count)
	for i := index; i < index+count; i++ {
		child, err := base.Derive(uint32(i))
		if err != nil {
			return nil, errors.Wrapf(err, "derive %s/%d", basePath, i)
		}
		ecKey, err := child.ECPrivKey()
		if err != nil {
			return nil, errors.Wrapf(err, "private key %s/%d", basePath, i)
		}
		key, err := crypto.ToECDSA(ecKey.Serialize())
		if err != nil {
			return nil, errors.Wrapf(err, "convert key %s/%d", basePath, i)
		}
		keys = append(keys, key)
	}
	return keys, nil
}
