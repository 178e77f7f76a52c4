package compute

import (
	"fmt"
	"math/big"
)

// Fibonacci computes Fib(n) with Fib(0)=0, Fib(1)=1.  Results grow
// beyond any machine integer quickly, so values are big.Ints.
type Fibonacci struct {
	// MaxIndex is the largest index Compute will answer; anything
	// larger is out of domain.  Zero means no upper bound.
	MaxIndex int
}

// NewFibonacci returns a Fibonacci service capped at maxIndex.
func NewFibonacci(maxIndex int) *Fibonacci {
	return &Fibonacci{MaxIndex: maxIndex}
}

// Compute returns the n-th Fibonacci number, or ErrOutOfDomain for
// negative n or n above MaxIndex.
func (f *Fibonacci) Compute(n int) (*big.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative index %d", ErrOutOfDomain, n)
	}
	if f.MaxIndex > 0 && n > f.MaxIndex {
		return nil, fmt.Errorf("%w: index %d exceeds maximum %d", ErrOutOfDomain, n, f.MaxIndex)
	}

	a, b := big.NewInt(0), big.NewInt(1)
	for i := 0; i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a, nil
}
