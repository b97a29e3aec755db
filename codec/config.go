package codec

import (
	"github.com/sirupsen/logrus"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/dnawire"
	"github.com/Observe-l/dnastore/fecdna"
	"github.com/Observe-l/dnastore/internal/config"
	"github.com/Observe-l/dnastore/lsh"
	"github.com/Observe-l/dnastore/permcoder"
	"github.com/Observe-l/dnastore/rules"
	"github.com/Observe-l/dnastore/segment"
)

// NewFromConfig wires every coder from cfg. With segmentation permuting
// enabled, each unit goes through a distance coder sharing one index.
func NewFromConfig(cfg *config.Config, log *logrus.Logger) (*Pipeline, error) {
	conv, err := dna.LookupConverter(cfg.Converter)
	if err != nil {
		return nil, err
	}
	packer := dnawire.NewPacker(conv)

	g := rules.DefaultGCHomopolymer()
	g.MinGC, g.MaxGC, g.MaxRun = cfg.Rules.MinGC, cfg.Rules.MaxGC, cfg.Rules.MaxHomopolymer
	rule := g.Rule()

	opts := Options{
		Compress: cfg.Compress,
		Workers:  cfg.Workers,
		Logger:   log,
		Fountain: fecdna.Options{
			SymbolSize:   cfg.Fountain.SymbolSize,
			InitialESI:   cfg.Fountain.InitialESI,
			MaxESI:       cfg.Fountain.MaxESI,
			MaxOrderings: cfg.Fountain.MaxOrderings,
			Overhead:     cfg.Fountain.Overhead,
			Seed:         cfg.Fountain.Seed,
			Workers:      cfg.Workers,
			Packer:       packer,
			PacketRule:   rules.Threshold(rule, cfg.Rules.MaxPacketError),
			StrandRule:   rules.Threshold(rule, cfg.Rules.MaxStrandError),
			Logger:       log,
		},
	}
	if cfg.Segmentation.Enabled {
		sopts := segment.Options{
			TargetLength:  cfg.Segmentation.TargetLength,
			GCCorrections: cfg.Segmentation.GCCorrections,
			Packer:        packer,
		}
		if cfg.Segmentation.Permute {
			idx, err := lsh.New(lsh.Config{K: cfg.LSH.K, R: cfg.LSH.R, B: cfg.LSH.B, Seed: cfg.LSH.Seed})
			if err != nil {
				return nil, err
			}
			dc, err := permcoder.NewDistanceCoder(permcoder.Options{
				Candidates: cfg.Permutation.Candidates,
				Workers:    cfg.Workers,
				Packer:     packer,
			}, idx, rule, cfg.Permutation.ErrorWeight, cfg.Permutation.DistanceWeight)
			if err != nil {
				return nil, err
			}
			sopts.Transform = dc
		}
		seg, err := segment.New(sopts)
		if err != nil {
			return nil, err
		}
		opts.Segmenter = seg
	}
	return New(opts)
}
