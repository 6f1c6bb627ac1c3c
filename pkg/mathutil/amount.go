package mathutil

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Divisibility is the number of decimal places of the network currency.
// Zano-like chains denominate one coin as 10^12 atomic units.
const Divisibility = 12

// BigOne represents a single coin in atomic units.
var BigOne = uint64(math.Pow10(Divisibility))

func init() {
	decimal.DivisionPrecision = Divisibility
}

// FromAtomicUnits converts an atomic-unit amount into a coin-denominated
// decimal.
func FromAtomicUnits(amount uint64) decimal.Decimal {
	amountDecimal := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0)
	oneDecimal := decimal.NewFromBigInt(new(big.Int).SetUint64(BigOne), 0)
	return amountDecimal.Div(oneDecimal)
}

// ToAtomicUnits converts a coin-denominated decimal into atomic units,
// truncating anything below one atomic unit.
func ToAtomicUnits(amount decimal.Decimal) uint64 {
	oneDecimal := decimal.NewFromBigInt(new(big.Int).SetUint64(BigOne), 0)
	return amount.Mul(oneDecimal).BigInt().Uint64()
}

// FormatAtomicUnits renders an atomic-unit amount as a fixed-point coin
// string, ie. 500000000000 -> "0.500000000000".
func FormatAtomicUnits(amount uint64) string {
	return FromAtomicUnits(amount).StringFixed(Divisibility)
}
