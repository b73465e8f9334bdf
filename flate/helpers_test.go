package flate

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"

	kflate "github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

var allWraps = []Wrap{Raw, Zlib, GZIP}

// compressOneShot compresses data in a single Finish step with an output
// buffer of Bound bytes.
func compressOneShot(t testing.TB, cfg Config, data []byte) []byte {
	t.Helper()
	c, err := NewCompressor(cfg)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]byte, c.Bound(len(data)))
	c.SetInput(data)
	c.SetOutput(out)
	st, err := c.Step(Finish)
	if err != nil {
		t.Fatal(err)
	}
	if st != StreamEnd {
		t.Fatalf("Step(Finish) = %v, want %v", st, StreamEnd)
	}
	if err := c.End(); err != nil {
		t.Fatal(err)
	}
	return out[:c.OutputLen()]
}

// compressFragmented compresses data one input byte at a time, with a one
// byte output buffer for every step.
func compressFragmented(t testing.TB, cfg Config, data []byte) []byte {
	t.Helper()
	c, err := NewCompressor(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var out []byte
	buf := make([]byte, 1)
	step := func(flush Flush) Status {
		c.SetOutput(buf)
		st, err := c.Step(flush)
		if err != nil {
			t.Fatalf("Step(%v): %v", flush, err)
		}
		out = append(out, buf[:c.OutputLen()]...)
		return st
	}
	for i := range data {
		c.SetInput(data[i : i+1])
		for c.AvailIn() > 0 {
			step(NoFlush)
		}
	}
	c.SetInput(nil)
	for step(Finish) != StreamEnd {
	}
	return out
}

// decompress decodes a stream of any wrapping with the klauspost decoders.
func decompress(t testing.TB, wrap Wrap, data []byte) []byte {
	t.Helper()
	var r io.Reader
	switch wrap {
	case Raw:
		r = kflate.NewReader(bytes.NewReader(data))
	case Zlib:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			t.Fatal(err)
		}
		r = zr
	case GZIP:
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			t.Fatal(err)
		}
		r = gr
	}
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("decoding %v stream: %v", wrap, err)
	}
	return out
}

func randomBytes(seed int64, n int) []byte {
	b := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(b)
	return b
}

// textLike returns n bytes of English-looking text.
func textLike(seed int64, n int) []byte {
	words := strings.Fields(`the quick brown fox jumps over lazy dog compression
		window match literal length distance block huffman tree stream header
		of and a to in is that for it as with was on be by this`)
	rng := rand.New(rand.NewSource(seed))
	var sb strings.Builder
	for sb.Len() < n {
		sb.WriteString(words[rng.Intn(len(words))])
		if rng.Intn(12) == 0 {
			sb.WriteString(".\n")
		} else {
			sb.WriteByte(' ')
		}
	}
	return []byte(sb.String()[:n])
}

func repeatedRange(times int) []byte {
	b := make([]byte, 0, 256*times)
	for i := 0; i < times; i++ {
		for j := 0; j < 256; j++ {
			b = append(b, byte(j))
		}
	}
	return b
}

type corpusEntry struct {
	name string
	data []byte
}

func corpus() []corpusEntry {
	return []corpusEntry{
		{"empty", nil},
		{"one-byte", []byte{'x'}},
		{"short", []byte("hello, hello, hello world")},
		{"zeros", make([]byte, 100000)},
		{"text", textLike(1, 200000)},
		{"random", randomBytes(2, 70000)},
		{"range", repeatedRange(10)},
	}
}

func readAll(t testing.TB, r io.Reader) []byte {
	t.Helper()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return out
}
