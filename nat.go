package bigfloat

import (
	"math/big"
	"sync"

	"github.com/remyoudompheng/bigfft"
)

const debugFloat = false

// fftThreshold is the operand size, in words, above which products go through
// bigfft. Below it, big.Int's Karatsuba multiplication is faster.
const fftThreshold = 1800

var bigOne = big.NewInt(1)

// mulInt sets z to x*y and returns z. z may alias x or y.
func mulInt(z, x, y *big.Int) *big.Int {
	if len(x.Bits()) >= fftThreshold && len(y.Bits()) >= fftThreshold {
		return z.Set(bigfft.Mul(x, y))
	}
	return z.Mul(x, y)
}

// normInt strips the trailing zero bits of x and returns their count.
func normInt(x *big.Int) uint {
	tz := x.TrailingZeroBits()
	if tz > 0 {
		x.Rsh(x, tz)
	}
	return tz
}

// pow10 returns 10**n. The result must not be modified.
func pow10(n uint64) *big.Int {
	if n < uint64(len(pow10tab)) {
		return pow10tab[n]
	}
	t := new(big.Int).SetUint64(n)
	return t.Exp(big.NewInt(10), t, nil)
}

var pow10tab = func() (tab [64]*big.Int) {
	tab[0] = big.NewInt(1)
	ten := big.NewInt(10)
	for i := 1; i < len(tab); i++ {
		tab[i] = new(big.Int).Mul(tab[i-1], ten)
	}
	return
}()

func getInt() *big.Int {
	if v := intPool.Get(); v != nil {
		return v.(*big.Int)
	}
	return new(big.Int)
}

func putInt(x *big.Int) {
	intPool.Put(x)
}

var intPool sync.Pool
