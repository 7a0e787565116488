// Package depth implements the bounded recursion counter shared by the
// decoder and the encoder. Both engines increment the same kind of counter
// on entering an array or object and decrement on leaving; the guard trips
// before the 129th nested container is entered.
package depth

import "errors"

// Max is the maximum nesting depth for arrays and objects, inclusive.
const Max = 128

// ErrExceeded is returned by Enter when entering would exceed Max.
var ErrExceeded = errors.New("depth: nesting exceeds maximum of 128")

// Guard is a single bounded counter. The zero value is ready to use.
type Guard struct {
	n int
}

// Enter increments the counter. It returns ErrExceeded, without mutating the
// counter, if doing so would exceed Max.
func (g *Guard) Enter() error {
	if g.n >= Max {
		return ErrExceeded
	}
	g.n++
	return nil
}

// Leave decrements the counter. It is the caller's responsibility to pair
// every successful Enter with exactly one Leave.
func (g *Guard) Leave() {
	g.n--
}

// Depth returns the current nesting depth.
func (g *Guard) Depth() int {
	return g.n
}
