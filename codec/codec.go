// Package codec chains the coders into one byte-to-DNA pipeline:
//
//	bytes -> [zstd] -> fountain strand -> segmentation units
//
// and back.
package codec

import (
	"context"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"

	"github.com/Observe-l/dnastore/dna"
	"github.com/Observe-l/dnastore/fecdna"
	"github.com/Observe-l/dnastore/internal/bitbuf"
	"github.com/Observe-l/dnastore/internal/pipeline"
	"github.com/Observe-l/dnastore/segment"
)

// Payload frame handed to the fountain coder, byte padded by bitbuf:
//
//	COMPRESSED  1 bit
//	METHOD      string, only when COMPRESSED is set
//	PAYLOAD     bytes
const methodZstd = "zstd"

var errUnknownMethod = errors.New("codec: unknown compression method")

// Options configures a Pipeline.
type Options struct {
	Compress  bool
	Fountain  fecdna.Options
	Segmenter segment.Segmenter // default segment.Identity
	Workers   int               // EncodeAll concurrency (default numCPU)
	Logger    *logrus.Logger
}

// Pipeline is safe for concurrent use if its segmenter is.
type Pipeline struct {
	fountain *fecdna.Coder
	seg      segment.Segmenter
	compress bool
	workers  int
	zenc     *zstd.Encoder
	zdec     *zstd.Decoder
	log      *logrus.Logger
}

func New(opts Options) (*Pipeline, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
		opts.Logger.SetLevel(logrus.WarnLevel)
	}
	if opts.Fountain.Logger == nil {
		opts.Fountain.Logger = opts.Logger
	}
	if opts.Segmenter == nil {
		opts.Segmenter = segment.Identity{}
	}
	fc, err := fecdna.New(opts.Fountain)
	if err != nil {
		return nil, err
	}
	zenc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("codec: zstd encoder: %w", err)
	}
	zdec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("codec: zstd decoder: %w", err)
	}
	return &Pipeline{
		fountain: fc,
		seg:      opts.Segmenter,
		compress: opts.Compress,
		workers:  opts.Workers,
		zenc:     zenc,
		zdec:     zdec,
		log:      opts.Logger,
	}, nil
}

// Close releases the zstd decoder.
func (p *Pipeline) Close() {
	p.zdec.Close()
}

// wrap frames the payload, compressing when enabled and smaller.
func (p *Pipeline) wrap(data []byte) []byte {
	var buf bitbuf.Buffer
	if p.compress {
		z := p.zenc.EncodeAll(data, nil)
		if len(z)+2+len(methodZstd) < len(data) {
			buf.AppendBit(true)
			_ = buf.AppendString(methodZstd)
			buf.AppendBytes(z)
			return buf.WithBytePadding().Bytes()
		}
		p.log.WithField("bytes", len(data)).Debug("payload incompressible, storing raw")
	}
	buf.AppendBit(false)
	buf.AppendBytes(data)
	return buf.WithBytePadding().Bytes()
}

func (p *Pipeline) unwrap(b []byte) ([]byte, error) {
	buf, err := bitbuf.FromBytes(b).WithoutBytePadding()
	if err != nil {
		return nil, fmt.Errorf("codec: frame: %v: %w", err, dna.ErrMalformed)
	}
	compressed, err := buf.Bit(0)
	if err != nil {
		return nil, fmt.Errorf("codec: empty frame: %w", dna.ErrMalformed)
	}
	off := 1
	if compressed {
		var method string
		if method, off, err = buf.ReadString(off); err != nil {
			return nil, fmt.Errorf("codec: frame method: %v: %w", err, dna.ErrMalformed)
		}
		if method != methodZstd {
			return nil, fmt.Errorf("%w %q: %w", errUnknownMethod, method, dna.ErrMalformed)
		}
	}
	payload, err := buf.ReadBytes(off, buf.Len())
	if err != nil {
		return nil, fmt.Errorf("codec: frame payload: %v: %w", err, dna.ErrMalformed)
	}
	if !compressed {
		return payload, nil
	}
	out, err := p.zdec.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("codec: zstd: %v: %w", err, dna.ErrMalformed)
	}
	return out, nil
}

// Encode turns data into units.
func (p *Pipeline) Encode(data []byte) ([]dna.Sequence, error) {
	strand, err := p.fountain.Encode(p.wrap(data))
	if err != nil {
		return nil, err
	}
	return p.seg.Encode(strand)
}

// Decode inverts Encode.
func (p *Pipeline) Decode(units []dna.Sequence) ([]byte, error) {
	strand, err := p.seg.Decode(units)
	if err != nil {
		return nil, err
	}
	b, err := p.fountain.Decode(strand)
	if err != nil {
		return nil, err
	}
	return p.unwrap(b)
}

// Result is one EncodeAll outcome.
type Result struct {
	Index int
	Units []dna.Sequence
	Err   error
}

// EncodeAll encodes payloads on the worker pool. Results arrive as they
// complete, tagged with the index of their payload; the channel closes
// after the last one. Cancelling ctx stops further payloads from starting.
func (p *Pipeline) EncodeAll(ctx context.Context, payloads [][]byte) <-chan Result {
	out := make(chan Result)
	go func() {
		defer close(out)
		for r := range pipeline.Stream(ctx, p.workers, payloads, p.Encode) {
			out <- Result{Index: r.Index, Units: r.Value, Err: r.Err}
		}
	}()
	return out
}
