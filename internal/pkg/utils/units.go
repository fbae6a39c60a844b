package utils

import (
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	// EtherDecimals is the number of decimals between wei and ether.
	EtherDecimals = 18
	// GweiDecimals is the number of decimals between wei and gwei.
	GweiDecimals = 9
)

// FormatBigInt renders amount divided by 10^decimals without trailing zeros.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
func FormatBigInt(amount *big.Int, decimals int32) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -decimals).String()
}

// FormatEther renders a wei amount in ether.
func FormatEther(wei *big.Int) string {
	return FormatBigInt(wei, EtherDecimals)
}

// FormatGwei renders a wei amount in gwei.
func FormatGwei(wei *big.Int) string {
	return FormatBigInt(wei, GweiDecimals)
}

// FormatGweiUint renders a wei amount held in a uint64 in gwei.
func FormatGweiUint(wei uint64) string {
	return FormatGwei(new(big.Int).SetUint64(wei))
}
