package main

import (
	"os"
	"time"

	"github.com/francoispqt/gojay"

	"github.com/Observe-l/dnastore/dna"
)

// report is the JSON summary written by --report.
type report struct {
	Command   string
	Input     string
	Converter string
	Bytes     int
	Units     int
	Symbols   int
	GCContent float64
	MaxRun    int
	Elapsed   time.Duration
}

func (r *report) fill(bytes int, units []dna.Sequence) {
	r.Bytes = bytes
	r.Units = len(units)
	all := dna.Concat(units...)
	r.Symbols = len(all)
	r.GCContent = all.GCContent()
	for _, u := range units {
		for i := 0; i < len(u); {
			n := u.HomopolymerAt(i)
			r.MaxRun = max(r.MaxRun, n)
			i += n
		}
	}
}

func (r *report) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("command", r.Command)
	enc.StringKey("input", r.Input)
	enc.StringKey("converter", r.Converter)
	enc.IntKey("bytes", r.Bytes)
	enc.IntKey("units", r.Units)
	enc.IntKey("symbols", r.Symbols)
	enc.Float64Key("gc_content", r.GCContent)
	enc.IntKey("max_homopolymer", r.MaxRun)
	enc.Float64Key("elapsed_ms", float64(r.Elapsed)/float64(time.Millisecond))
	if r.Bytes > 0 {
		enc.Float64Key("bits_per_symbol", float64(r.Bytes*8)/float64(max(r.Symbols, 1)))
	}
}

func (r *report) IsNil() bool { return r == nil }

func writeReport(path string, r *report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gojay.NewEncoder(f).EncodeObject(r)
}
