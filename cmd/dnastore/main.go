package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/Observe-l/dnastore/codec"
	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/internal/config"
	"github.com/Observe-l/dnastore/internal/metrics"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 || (args[0] != "encode" && args[0] != "decode") {
		printUsage()
		return errors.New("expected subcommand encode or decode")
	}
	cmd := args[0]

	var (
		in, out, cfgPath, reportPath, logLevel, metricsAddr string
		logJSON                                              bool
	)
	fs := pflag.NewFlagSet("dnastore "+cmd, pflag.ContinueOnError)
	fs.StringVarP(&in, "in", "i", "", "input file (payload bytes for encode, one unit per line for decode)")
	fs.StringVarP(&out, "out", "o", "", "output file (default stdout)")
	fs.StringVarP(&cfgPath, "config", "c", "", "YAML configuration file")
	fs.StringVar(&reportPath, "report", "", "write a JSON run report to this file")
	fs.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.BoolVar(&logJSON, "log-json", false, "log as JSON")
	fs.StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while running")
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if in == "" {
		return errors.New("--in is required")
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	lvl, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	if logJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if metricsAddr != "" {
		srv := &http.Server{Addr: metricsAddr, Handler: promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Warn("metrics server stopped")
			}
		}()
		defer srv.Close()
	}

	cfg := config.Default()
	if cfgPath != "" {
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}
	}
	p, err := codec.NewFromConfig(cfg, log)
	if err != nil {
		return err
	}
	defer p.Close()

	w := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	rep := &report{Command: cmd, Input: in, Converter: cfg.Converter}
	t0 := time.Now()
	switch cmd {
	case "encode":
		data, err := os.ReadFile(in)
		if err != nil {
			return err
		}
		units, err := p.Encode(data)
		if err != nil {
			return err
		}
		if err := writeUnits(w, units); err != nil {
			return fmt.Errorf("write units: %w", err)
		}
		rep.fill(len(data), units)
	case "decode":
		units, err := readUnits(in)
		if err != nil {
			return err
		}
		data, err := p.Decode(units)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write payload: %w", err)
		}
		rep.fill(len(data), units)
	}
	if w != os.Stdout {
		if err := w.Close(); err != nil {
			return err
		}
	}
	rep.Elapsed = time.Since(t0)
	log.WithFields(logrus.Fields{
		"bytes":   rep.Bytes,
		"units":   rep.Units,
		"symbols": rep.Symbols,
		"elapsed": rep.Elapsed,
	}).Info(cmd + " done")

	if reportPath != "" {
		return writeReport(reportPath, rep)
	}
	return nil
}

// writeUnits writes one unit per line and reports any buffered write error.
func writeUnits(w io.Writer, units []dna.Sequence) error {
	bw := bufio.NewWriter(w)
	for _, u := range units {
		if _, err := fmt.Fprintln(bw, u.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func readUnits(path string) ([]dna.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var units []dna.Sequence
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for line := 1; sc.Scan(); line++ {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, ">") {
			continue
		}
		u, err := dna.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		units = append(units, u)
	}
	return units, sc.Err()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `dnastore encodes files into DNA units and back.

Usage:
  dnastore encode -i payload.bin -o units.txt [-c config.yaml]
  dnastore decode -i units.txt -o payload.bin [-c config.yaml]

Units are written one per line. Decode skips blank lines and FASTA
headers starting with '>'.
`)
}
