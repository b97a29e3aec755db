package main

import (
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/Observe-l/dnastore/dnawire"
	"github.com/Observe-l/dnastore/fecdna"
)

func TestSweepLossless(t *testing.T) {
	packer := dnawire.Default()
	coder, err := fecdna.New(fecdna.Options{Packer: packer, Overhead: 2, Seed: 7})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	pr := params{size: 32, overhead: 2, trials: 5}
	agg, err := sweep(coder, packer, pr, 0, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if agg.ok != agg.trials {
		t.Fatalf("recovered %d of %d at p=0", agg.ok, agg.trials)
	}
}

func TestSweepTotalLoss(t *testing.T) {
	packer := dnawire.Default()
	coder, err := fecdna.New(fecdna.Options{Packer: packer})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	agg, err := sweep(coder, packer, params{size: 16, trials: 3}, 1, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if agg.ok != 0 {
		t.Fatalf("recovered %d payloads with every packet dropped", agg.ok)
	}
}

func TestRunAppendsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.csv")
	args := []string{"--size", "16", "--trials", "2", "--p", "0,0.5", "--csv", path}
	if err := run(args); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := run(args); err != nil {
		t.Fatalf("second run: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	// one header, two rows per run
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}
	if rows[0][0] != "p" || rows[1][0] != "0.0000" {
		t.Fatalf("unexpected rows %v", rows[:2])
	}
}

func TestRunReportsUnwritableCSV(t *testing.T) {
	dir := t.TempDir()
	if err := run([]string{"--trials", "1", "--csv", dir}); err == nil {
		t.Fatalf("expected an error writing csv to a directory")
	}
}
