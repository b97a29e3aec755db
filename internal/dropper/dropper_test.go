package dropper

import (
	"math/rand"
	"testing"
)

func TestBernoulliExtremes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if New(0, rng).Drop() {
		t.Fatal("p=0 dropped")
	}
	if !New(1, rng).Drop() {
		t.Fatal("p=1 kept")
	}
}

func TestKeepRate(t *testing.T) {
	xs := make([]int, 10000)
	for i := range xs {
		xs[i] = i
	}
	kept := Keep(New(0.25, rand.New(rand.NewSource(2))), xs)
	if n := len(kept); n < 7000 || n > 8000 {
		t.Fatalf("kept %d of %d at p=0.25", n, len(xs))
	}
	for i := 1; i < len(kept); i++ {
		if kept[i] <= kept[i-1] {
			t.Fatalf("order lost at %d", i)
		}
	}
}
