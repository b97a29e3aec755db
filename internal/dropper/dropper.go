// Package dropper models strand loss for tests and loss sweeps.
package dropper

// Source yields uniform values in [0, 1). Both *rand.Rand and
// *permute.Rand satisfy it.
type Source interface {
	Float64() float64
}

// Bernoulli implements a simple u<p drop decision.
type Bernoulli struct {
	p   float64
	rng Source
}

func New(p float64, rng Source) *Bernoulli { return &Bernoulli{p: p, rng: rng} }

func (b *Bernoulli) Drop() bool {
	if b.p <= 0 {
		return false
	}
	if b.p >= 1 {
		return true
	}
	return b.rng.Float64() < b.p
}

// Keep returns the items of xs that survive one Drop decision each, in
// their original order.
func Keep[T any](b *Bernoulli, xs []T) []T {
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		if !b.Drop() {
			out = append(out, x)
		}
	}
	return out
}
