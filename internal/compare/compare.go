// Package compare measures how zpack's DEFLATE output stacks up against
// other codecs on the same input.
package compare

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress"
	kflate "github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/zarghol/zpack/flate"
)

// A Result is the outcome of compressing the input with one codec.
type Result struct {
	Codec    string        `json:"codec"`
	Level    int           `json:"level"`
	Size     int           `json:"size"`
	Ratio    float64       `json:"ratio"` // compressed size over input size
	Duration time.Duration `json:"duration_ns"`
}

// A Report compares several codecs on one input.
type Report struct {
	InputSize int `json:"input_size"`

	// Estimate is the predicted compressibility of the input, between 0
	// (incompressible) and 1.
	Estimate float64 `json:"estimate"`

	// EntropyBits is the order-0 Shannon entropy of the input in bits,
	// a lower bound for any literal-only encoding.
	EntropyBits int `json:"entropy_bits"`

	Results []Result `json:"results"`
}

type codec struct {
	name  string
	level int
	fn    func(dst io.Writer, src []byte) error
}

func zpackCodec(level int) codec {
	return codec{"zpack-zlib", level, func(dst io.Writer, src []byte) error {
		w := flate.NewZlibWriter(dst, level)
		if _, err := w.Write(src); err != nil {
			return err
		}
		return w.Close()
	}}
}

var codecs = []codec{
	zpackCodec(1),
	zpackCodec(6),
	zpackCodec(9),
	{"klauspost-flate", 6, func(dst io.Writer, src []byte) error {
		w, err := kflate.NewWriter(dst, 6)
		if err != nil {
			return err
		}
		if _, err := w.Write(src); err != nil {
			return err
		}
		return w.Close()
	}},
	{"zstd", 3, func(dst io.Writer, src []byte) error {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return err
		}
		defer enc.Close()
		_, err = dst.Write(enc.EncodeAll(src, nil))
		return err
	}},
	{"snappy", 0, func(dst io.Writer, src []byte) error {
		_, err := dst.Write(snappy.Encode(nil, src))
		return err
	}},
	{"brotli", 6, func(dst io.Writer, src []byte) error {
		w := brotli.NewWriterLevel(dst, 6)
		if _, err := w.Write(src); err != nil {
			return err
		}
		return w.Close()
	}},
	{"lz4", 0, func(dst io.Writer, src []byte) error {
		w := lz4.NewWriter(dst)
		if _, err := w.Write(src); err != nil {
			return err
		}
		return w.Close()
	}},
}

// Run compresses data with every codec. A codec that fails is reported
// in the returned error and left out of the results.
func Run(data []byte) (*Report, error) {
	r := &Report{
		InputSize:   len(data),
		Estimate:    compress.Estimate(data),
		EntropyBits: compress.ShannonEntropyBits(data),
	}

	var errlist []error
	var buf bytes.Buffer
	for _, c := range codecs {
		buf.Reset()
		start := time.Now()
		if err := c.fn(&buf, data); err != nil {
			errlist = append(errlist, fmt.Errorf("%s: %w", c.name, err))
			continue
		}
		r.Results = append(r.Results, newResult(c.name, c.level, buf.Len(), len(data), time.Since(start)))
	}

	if len(errlist) != 0 {
		return r, &multierror.Error{Errors: errlist}
	}
	return r, nil
}

// Levels compresses data at every zpack level with every wrapping and
// checks each stream with an independent decoder.
func Levels(data []byte) ([]Result, error) {
	var out []Result
	var buf bytes.Buffer
	for _, wrap := range []flate.Wrap{flate.Raw, flate.Zlib, flate.GZIP} {
		for level := 0; level <= 9; level++ {
			buf.Reset()
			start := time.Now()
			w, err := flate.NewWriterConfig(&buf, flate.Config{Level: level, Wrap: wrap})
			if err != nil {
				return nil, err
			}
			if _, err := w.Write(data); err != nil {
				return nil, err
			}
			if err := w.Close(); err != nil {
				return nil, err
			}
			elapsed := time.Since(start)

			if wrap == flate.Zlib {
				if err := verifyZlib(buf.Bytes(), data); err != nil {
					return nil, fmt.Errorf("level %d: %w", level, err)
				}
			}
			out = append(out, newResult("zpack-"+wrap.String(), level, buf.Len(), len(data), elapsed))
		}
	}
	return out, nil
}

func verifyZlib(stream, want []byte) error {
	zr, err := zlib.NewReader(bytes.NewReader(stream))
	if err != nil {
		return err
	}
	got, err := io.ReadAll(zr)
	if err != nil {
		return err
	}
	if !bytes.Equal(got, want) {
		return fmt.Errorf("decoded %d bytes do not match the input", len(got))
	}
	return nil
}

func newResult(name string, level, size, inputSize int, d time.Duration) Result {
	ratio := 0.0
	if inputSize > 0 {
		ratio = float64(size) / float64(inputSize)
	}
	return Result{
		Codec:    name,
		Level:    level,
		Size:     size,
		Ratio:    ratio,
		Duration: d,
	}
}
