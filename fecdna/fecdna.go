// Package fecdna packs a byte payload into a single DNA strand of fountain
// code packets. Packets are generated until a subset that both satisfies the
// per-packet rule and decodes the payload can be ordered into a strand that
// satisfies the strand rule.
//
// Strand layout:
//
//	HEADER   StrandHeader
//	PACKETS  packets in assembly order, see EncodePacket
package fecdna

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/dnawire"
	"github.com/Observe-l/dnastore/fec"
	"github.com/Observe-l/dnastore/internal/metrics"
	"github.com/Observe-l/dnastore/internal/pipeline"
	"github.com/Observe-l/dnastore/permute"
	"github.com/Observe-l/dnastore/rules"
)

// Options configures a Coder.
type Options struct {
	SymbolSize   int    // bytes per symbol, 0 for max(1, len/8) per payload
	InitialESI   uint32 // first symbol id generated
	MaxESI       uint32 // last symbol id that may be generated, 0 for InitialESI+64K+1024
	MaxOrderings int    // orderings tried per packet pool (default 64)
	Overhead     int    // packets appended after the decodable point
	Seed         uint64 // seeds the ordering shuffles
	Workers      int    // packet rule workers (default numCPU)

	Packer     *dnawire.Packer
	Erasure    fec.Erasure     // default fec.RaptorQ
	PacketRule rules.Predicate // nil accepts every packet
	StrandRule rules.Predicate // nil accepts every strand
	Logger     *logrus.Logger
}

func (o *Options) setDefaults() {
	if o.MaxOrderings <= 0 {
		o.MaxOrderings = 64
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Packer == nil {
		o.Packer = dnawire.Default()
	}
	if o.Erasure == nil {
		o.Erasure = fec.RaptorQ{}
	}
	if o.PacketRule == nil {
		o.PacketRule = rules.Always
	}
	if o.StrandRule == nil {
		o.StrandRule = rules.Always
	}
	if o.Logger == nil {
		o.Logger = logrus.New()
		o.Logger.SetLevel(logrus.WarnLevel)
	}
}

// Coder is the fountain transport coder. It is safe for concurrent use.
type Coder struct {
	opts Options
}

func New(opts Options) (*Coder, error) {
	if opts.SymbolSize < 0 || opts.Overhead < 0 {
		return nil, fmt.Errorf("fecdna: symbol size %d overhead %d: %w", opts.SymbolSize, opts.Overhead, dna.ErrInvalidConfig)
	}
	if opts.MaxESI != 0 && opts.MaxESI < opts.InitialESI {
		return nil, fmt.Errorf("fecdna: max esi %d below initial esi %d: %w", opts.MaxESI, opts.InitialESI, dna.ErrInvalidConfig)
	}
	opts.setDefaults()
	return &Coder{opts: opts}, nil
}

// SymbolSize returns the symbol size used for a payload of n bytes.
func (c *Coder) SymbolSize(n int) int {
	if c.opts.SymbolSize > 0 {
		return c.opts.SymbolSize
	}
	return max(1, n/8)
}

// encoded is a packet with its DNA form.
type encoded struct {
	pkt fec.Packet
	seq dna.Sequence
}

type status int

const (
	found status = iota
	notDecodable
	rulesNotSatisfied
)

type assembly struct {
	status  status
	strand  dna.Sequence
	missing int
}

// Encode returns one strand that decodes to data.
func (c *Coder) Encode(data []byte) (dna.Sequence, error) {
	L := c.SymbolSize(len(data))
	if len(data) < L {
		return nil, fmt.Errorf("fecdna: %d bytes is less than symbol size %d: %w", len(data), L, dna.ErrInvalidConfig)
	}
	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("fecdna: %d bytes: %w", len(data), dna.ErrInvalidConfig)
	}
	enc, err := c.opts.Erasure.NewEncoder(data, L)
	if err != nil {
		return nil, fmt.Errorf("fecdna: encoder: %w", err)
	}
	hdr := StrandHeader{Size: uint32(len(data)), SymbolSize: uint32(L)}
	src := c.newSource(enc, hdr)
	log := c.opts.Logger.WithFields(logrus.Fields{"bytes": len(data), "symbol": L})

	rng := permute.NewRand(c.opts.Seed)
	pull := enc.SourceSymbols() + c.opts.Overhead
	var pool []encoded
	for {
		fresh, err := src.take(pull)
		if err != nil {
			return nil, err
		}
		if len(fresh) == 0 {
			return nil, fmt.Errorf("fecdna: no packets left below esi %d with %d in pool: %w", src.max, len(pool), dna.ErrExhausted)
		}
		pool = append(pool, fresh...)

		order := make([]int, len(pool))
		for i := range order {
			order[i] = i
		}
		limit := orderingLimit(len(pool), c.opts.MaxOrderings)
		pull = 1
	orderings:
		for tried := 0; tried < limit; tried++ {
			res, err := c.combine(pool, order, hdr)
			if err != nil {
				return nil, err
			}
			switch res.status {
			case found:
				metrics.OrderingsTried.WithLabelValues(metrics.OutcomeFound).Inc()
				metrics.StrandsAssembled.Inc()
				return res.strand, nil
			case notDecodable:
				metrics.OrderingsTried.WithLabelValues(metrics.OutcomeNotDecodable).Inc()
				pull = max(1, res.missing)
				log.WithFields(logrus.Fields{"pool": len(pool), "pull": pull}).Debug("pool not decodable")
				break orderings
			case rulesNotSatisfied:
				metrics.OrderingsTried.WithLabelValues(metrics.OutcomeRuleRejected).Inc()
				log.WithFields(logrus.Fields{"pool": len(pool), "ordering": tried}).Debug("strand rejected")
				permute.Shuffle(rng, order)
			}
		}
	}
}

// orderingLimit is min(n!, ceiling).
func orderingLimit(n, ceiling int) int {
	f := 1
	for i := 2; i <= n && f < ceiling; i++ {
		f *= i
	}
	return min(f, ceiling)
}

// combine feeds pool in order into a fresh decoder until the payload can be
// decoded, then appends Overhead more packets and checks the strand rule.
func (c *Coder) combine(pool []encoded, order []int, hdr StrandHeader) (assembly, error) {
	dec, err := c.opts.Erasure.NewDecoder(int(hdr.Size), int(hdr.SymbolSize))
	if err != nil {
		return assembly{}, fmt.Errorf("fecdna: decoder: %w", err)
	}
	for i, idx := range order {
		_, done, err := c.feed(dec, pool[idx].pkt, hdr)
		if err != nil {
			return assembly{}, err
		}
		if !done {
			continue
		}
		used := i + 1 + c.opts.Overhead
		if used > len(order) {
			return assembly{status: notDecodable, missing: used - len(order)}, nil
		}
		strand := hdr.MarshalDNA(c.opts.Packer, nil)
		for _, j := range order[:used] {
			strand = append(strand, pool[j].seq...)
		}
		if !c.opts.StrandRule(strand) {
			return assembly{status: rulesNotSatisfied, strand: strand}, nil
		}
		return assembly{status: found, strand: strand}, nil
	}
	return assembly{status: notDecodable, missing: dec.Required() - len(order)}, nil
}

// feed adds one packet, zero padding a short one, and returns the payload
// once it is recoverable. A failed decode attempt only means more packets
// are needed.
func (c *Coder) feed(dec fec.Decoder, p fec.Packet, hdr StrandHeader) ([]byte, bool, error) {
	data := p.Data
	if len(data) < int(hdr.SymbolSize) {
		data = make([]byte, hdr.SymbolSize)
		copy(data, p.Data)
	}
	can, err := dec.AddSymbol(p.ID, data)
	if err != nil {
		return nil, false, fmt.Errorf("fecdna: add symbol %d: %w", p.ID, err)
	}
	if !can {
		return nil, false, nil
	}
	ok, b, err := dec.Decode()
	if err != nil {
		c.opts.Logger.WithError(err).WithField("esi", p.ID).Debug("decode attempt failed")
		return nil, false, nil
	}
	return b, ok, nil
}

// source generates packets in id order and keeps those passing the packet
// rule. Rule checks run on the worker pool; accepted packets beyond a
// request wait in pending for the next one.
type source struct {
	c       *Coder
	enc     fec.Encoder
	hdr     StrandHeader
	next    uint64
	max     uint64
	pending []encoded
}

func (c *Coder) newSource(enc fec.Encoder, hdr StrandHeader) *source {
	maxESI := uint64(c.opts.MaxESI)
	if maxESI == 0 {
		maxESI = min(uint64(c.opts.InitialESI)+uint64(enc.SourceSymbols())*64+1024, math.MaxUint32)
	}
	return &source{c: c, enc: enc, hdr: hdr, next: uint64(c.opts.InitialESI), max: maxESI}
}

// take returns up to count accepted packets; fewer only once the id
// ceiling is reached.
func (s *source) take(count int) ([]encoded, error) {
	out := s.pending
	s.pending = nil
	for len(out) < count && s.next <= s.max {
		n := uint64(max(count-len(out), s.c.opts.Workers))
		n = min(n, s.max-s.next+1)
		ids := make([]uint32, n)
		for i := range ids {
			ids[i] = uint32(s.next + uint64(i))
		}
		s.next += n

		type checked struct {
			e  encoded
			ok bool
		}
		res, err := pipeline.Map(context.Background(), s.c.opts.Workers, ids, func(id uint32) (checked, error) {
			p := fec.Packet{ID: id, Data: s.enc.Symbol(id)}
			if l := s.hdr.symbolLen(id); l < len(p.Data) {
				p.Data = p.Data[:l]
			}
			seq := EncodePacket(s.c.opts.Packer, p, int(s.hdr.SymbolSize))
			return checked{e: encoded{pkt: p, seq: seq}, ok: s.c.opts.PacketRule(seq)}, nil
		})
		if err != nil {
			return nil, err
		}
		metrics.PacketsPulled.Add(float64(len(res)))
		for _, r := range res {
			if !r.ok {
				metrics.PacketsRejected.Inc()
				continue
			}
			out = append(out, r.e)
		}
	}
	if len(out) > count {
		s.pending = out[count:]
		out = out[:count]
	}
	return out, nil
}

// Decode recovers the payload of a strand, scanning packets left to right
// until the payload is recovered.
func (c *Coder) Decode(seq dna.Sequence) ([]byte, error) {
	var hdr StrandHeader
	off, err := hdr.UnmarshalDNA(c.opts.Packer, seq)
	if err != nil {
		return nil, err
	}
	dec, err := c.opts.Erasure.NewDecoder(int(hdr.Size), int(hdr.SymbolSize))
	if err != nil {
		return nil, fmt.Errorf("fecdna: decoder: %w", err)
	}
	for off < len(seq) {
		p, n, err := DecodePacket(c.opts.Packer, seq[off:], int(hdr.SymbolSize))
		if err != nil {
			return nil, err
		}
		off += n
		if b, ok, err := c.feed(dec, p, hdr); err != nil || ok {
			return b, err
		}
	}
	return nil, fmt.Errorf("fecdna: payload not recovered from strand: %w", dna.ErrExhausted)
}

// DecodePackets recovers a payload from individual packet sequences, as
// returned by SplitPackets and possibly thinned out by loss.
func (c *Coder) DecodePackets(hdr StrandHeader, packets []dna.Sequence) ([]byte, error) {
	dec, err := c.opts.Erasure.NewDecoder(int(hdr.Size), int(hdr.SymbolSize))
	if err != nil {
		return nil, fmt.Errorf("fecdna: decoder: %w", err)
	}
	for i, seq := range packets {
		p, _, err := DecodePacket(c.opts.Packer, seq, int(hdr.SymbolSize))
		if err != nil {
			return nil, fmt.Errorf("fecdna: packet %d: %w", i, err)
		}
		if b, ok, err := c.feed(dec, p, hdr); err != nil || ok {
			return b, err
		}
	}
	return nil, fmt.Errorf("fecdna: payload not recovered from %d packets: %w", len(packets), dna.ErrExhausted)
}
