// Command dnastore-eval measures how well fountain-coded strands survive
// packet loss. For each loss probability it encodes random payloads, drops
// packets with a Bernoulli dropper and records the recovery rate.
package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/Observe-l/dnastore/dnawire"
	"github.com/Observe-l/dnastore/fecdna"
	"github.com/Observe-l/dnastore/internal/dropper"
)

type params struct {
	size     int
	symbol   int
	overhead int
	trials   int
	seed     int64
	ps       []float64
	csvPath  string
}

var csvHeader = []string{"p", "trials", "ok_rate", "avg_packets", "avg_encode_ms", "avg_decode_ms", "size", "overhead", "seed"}

type resultAgg struct {
	ok       int
	trials   int
	symbols  int
	encTotal time.Duration
	decTotal time.Duration
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var pr params
	fs := pflag.NewFlagSet("dnastore-eval", pflag.ContinueOnError)
	fs.IntVar(&pr.size, "size", 64, "payload bytes per trial")
	fs.IntVar(&pr.symbol, "symbol", 0, "fountain symbol size in bytes (0 for size/8)")
	fs.IntVar(&pr.overhead, "overhead", 4, "packets appended after the decodable point")
	fs.IntVar(&pr.trials, "trials", 200, "trials per loss probability")
	fs.Int64Var(&pr.seed, "seed", 1337, "PRNG seed for payloads and loss")
	fs.Float64SliceVar(&pr.ps, "p", []float64{0, 0.05, 0.1, 0.2, 0.3}, "comma-separated loss probabilities")
	fs.StringVar(&pr.csvPath, "csv", "", "optional CSV output path (appended)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if pr.size <= 0 || pr.trials <= 0 {
		return errors.New("size and trials must be positive")
	}

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	packer := dnawire.Default()
	coder, err := fecdna.New(fecdna.Options{
		Packer:     packer,
		SymbolSize: pr.symbol,
		Overhead:   pr.overhead,
		Seed:       uint64(pr.seed),
		Logger:     log,
	})
	if err != nil {
		return err
	}

	var csvw *csv.Writer
	if pr.csvPath != "" {
		f, err := os.OpenFile(pr.csvPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		csvw = csv.NewWriter(f)
		if fi, err := f.Stat(); err == nil && fi.Size() == 0 {
			if err := csvw.Write(csvHeader); err != nil {
				return fmt.Errorf("csv header: %w", err)
			}
			csvw.Flush()
			if err := csvw.Error(); err != nil {
				return fmt.Errorf("csv header: %w", err)
			}
		}
	}

	rng := rand.New(rand.NewSource(pr.seed))
	for _, p := range pr.ps {
		agg, err := sweep(coder, packer, pr, p, rng)
		if err != nil {
			return err
		}
		rate := float64(agg.ok) / float64(agg.trials)
		avgEnc := float64(agg.encTotal.Milliseconds()) / float64(agg.trials)
		avgDec := float64(agg.decTotal.Milliseconds()) / float64(agg.trials)
		avgPk := float64(agg.symbols) / float64(agg.trials)
		fmt.Printf("p=%.3f ok=%.4f packets=%.1f enc(avg)=%.2fms dec(avg)=%.2fms\n", p, rate, avgPk, avgEnc, avgDec)
		if csvw != nil {
			err := csvw.Write([]string{
				strconv.FormatFloat(p, 'f', 4, 64),
				strconv.Itoa(agg.trials),
				strconv.FormatFloat(rate, 'f', 6, 64),
				strconv.FormatFloat(avgPk, 'f', 2, 64),
				strconv.FormatFloat(avgEnc, 'f', 3, 64),
				strconv.FormatFloat(avgDec, 'f', 3, 64),
				strconv.Itoa(pr.size),
				strconv.Itoa(pr.overhead),
				strconv.FormatInt(pr.seed, 10),
			})
			if err != nil {
				return fmt.Errorf("csv row: %w", err)
			}
			csvw.Flush()
			if err := csvw.Error(); err != nil {
				return err
			}
		}
	}
	return nil
}

func sweep(coder *fecdna.Coder, packer *dnawire.Packer, pr params, p float64, rng *rand.Rand) (resultAgg, error) {
	agg := resultAgg{trials: pr.trials}
	drop := dropper.New(p, rng)
	payload := make([]byte, pr.size)
	for i := 0; i < pr.trials; i++ {
		rng.Read(payload)

		t0 := time.Now()
		strand, err := coder.Encode(payload)
		if err != nil {
			return agg, fmt.Errorf("encode: %w", err)
		}
		agg.encTotal += time.Since(t0)

		hdr, packets, err := fecdna.SplitPackets(packer, strand)
		if err != nil {
			return agg, fmt.Errorf("split: %w", err)
		}
		agg.symbols += len(packets)

		t1 := time.Now()
		got, err := coder.DecodePackets(hdr, dropper.Keep(drop, packets))
		agg.decTotal += time.Since(t1)
		if err == nil && bytes.Equal(got, payload) {
			agg.ok++
		}
	}
	return agg, nil
}
