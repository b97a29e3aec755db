// Package config loads encoder settings from YAML. Every field is optional;
// zero values take defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Observe-l/dnastore/dna"
)

// Config is the on-disk configuration.
type Config struct {
	Converter string `yaml:"converter"` // naive or rotating
	Compress  bool   `yaml:"compress"`
	Workers   int    `yaml:"workers"`

	LSH struct {
		K    int    `yaml:"k"`
		R    int    `yaml:"r"`
		B    int    `yaml:"b"`
		Seed uint64 `yaml:"seed"`
	} `yaml:"lsh"`

	Permutation struct {
		Candidates     int     `yaml:"candidates"`
		ErrorWeight    float64 `yaml:"error_weight"`
		DistanceWeight float64 `yaml:"distance_weight"`
	} `yaml:"permutation"`

	Segmentation struct {
		Enabled       bool `yaml:"enabled"`
		TargetLength  int  `yaml:"target_length"`
		GCCorrections int  `yaml:"gc_corrections"`
		Permute       bool `yaml:"permute"`
	} `yaml:"segmentation"`

	Fountain struct {
		SymbolSize   int    `yaml:"symbol_size"`
		InitialESI   uint32 `yaml:"initial_esi"`
		MaxESI       uint32 `yaml:"max_esi"`
		MaxOrderings int    `yaml:"max_orderings"`
		Overhead     int    `yaml:"overhead"`
		Seed         uint64 `yaml:"seed"`
	} `yaml:"fountain"`

	Rules struct {
		MaxPacketError float64 `yaml:"max_packet_error"`
		MaxStrandError float64 `yaml:"max_strand_error"`
		MinGC          float64 `yaml:"min_gc"`
		MaxGC          float64 `yaml:"max_gc"`
		MaxHomopolymer int     `yaml:"max_homopolymer"`
	} `yaml:"rules"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.setDefaults()
	return c
}

// Load reads path and applies defaults. The result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML bytes, rejecting unknown fields.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %v: %w", err, dna.ErrInvalidConfig)
	}
	c.setDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) setDefaults() {
	if c.Converter == "" {
		c.Converter = "rotating"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LSH.K == 0 {
		c.LSH.K = 6
	}
	if c.LSH.R == 0 {
		c.LSH.R = 200
	}
	if c.LSH.B == 0 {
		c.LSH.B = 20
	}
	if c.Permutation.Candidates == 0 {
		c.Permutation.Candidates = 8
	}
	if c.Permutation.ErrorWeight == 0 && c.Permutation.DistanceWeight == 0 {
		c.Permutation.ErrorWeight = 1
		c.Permutation.DistanceWeight = 1
	}
	if c.Segmentation.TargetLength == 0 {
		c.Segmentation.TargetLength = 150
	}
	if c.Fountain.MaxOrderings == 0 {
		c.Fountain.MaxOrderings = 64
	}
	if c.Rules.MaxPacketError == 0 {
		c.Rules.MaxPacketError = 1
	}
	if c.Rules.MaxStrandError == 0 {
		c.Rules.MaxStrandError = 1
	}
	if c.Rules.MinGC == 0 && c.Rules.MaxGC == 0 {
		c.Rules.MinGC, c.Rules.MaxGC = 0.4, 0.6
	}
	if c.Rules.MaxHomopolymer == 0 {
		c.Rules.MaxHomopolymer = 3
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := dna.LookupConverter(c.Converter); err != nil {
		return err
	}
	switch {
	case c.LSH.B <= 0 || c.LSH.R%c.LSH.B != 0:
		return fmt.Errorf("config: lsh r=%d is not a multiple of b=%d: %w", c.LSH.R, c.LSH.B, dna.ErrInvalidConfig)
	case c.Permutation.Candidates < 1:
		return fmt.Errorf("config: %d permutation candidates: %w", c.Permutation.Candidates, dna.ErrInvalidConfig)
	case c.Fountain.SymbolSize < 0 || c.Fountain.Overhead < 0:
		return fmt.Errorf("config: fountain symbol size %d overhead %d: %w", c.Fountain.SymbolSize, c.Fountain.Overhead, dna.ErrInvalidConfig)
	case c.Rules.MinGC > c.Rules.MaxGC:
		return fmt.Errorf("config: gc range [%g,%g]: %w", c.Rules.MinGC, c.Rules.MaxGC, dna.ErrInvalidConfig)
	}
	return nil
}
