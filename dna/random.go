package dna

// Float64Source is the subset of *rand.Rand and permute.Rand used by Random.
type Float64Source interface {
	Float64() float64
}

// Random returns n symbols where each position is G or C with probability gc
// and A or T otherwise, the member of each pair chosen with equal odds.
func Random(n int, gc float64, r Float64Source) Sequence {
	seq := make(Sequence, n)
	for i := range seq {
		base := A
		if r.Float64() < gc {
			base = C
		}
		if r.Float64() < 0.5 {
			base = base.Complement()
		}
		seq[i] = base
	}
	return seq
}
