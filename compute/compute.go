// Package compute defines the per-request computation contract and its
// Fibonacci implementation.
package compute

import (
	"errors"
	"math/big"
)

// ErrOutOfDomain is returned for indexes the service will not answer:
// negative values or values above the configured maximum.
var ErrOutOfDomain = errors.New("index out of domain")

// Service maps a parsed request index to a result.  Implementations
// must be deterministic, stateless, and safe for concurrent use; the
// server never inspects the computation beyond formatting its result.
type Service interface {
	Compute(n int) (*big.Int, error)
}
