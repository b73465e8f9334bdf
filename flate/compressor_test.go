package flate

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/adler32"
	"hash/crc32"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	kflate "github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

func TestGoldenVectors(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		input string
		want  []byte
	}{
		{"zlib-empty", DefaultConfig(), "", []byte{0x78, 0x9c, 0x03, 0x00, 0x00, 0x00, 0x00, 0x01}},
		{"zlib-a", DefaultConfig(), "a", []byte{0x78, 0x9c, 0x4b, 0x04, 0x00, 0x00, 0x62, 0x00, 0x62}},
		{"zlib-hello", DefaultConfig(), "hello", []byte{
			0x78, 0x9c, 0xcb, 0x48, 0xcd, 0xc9, 0xc9, 0x07, 0x00, 0x06, 0x2c, 0x02, 0x15,
		}},
		{"zlib-hello-world", DefaultConfig(), "hello world", []byte{
			0x78, 0x9c, 0xcb, 0x48, 0xcd, 0xc9, 0xc9, 0x57, 0x28, 0xcf, 0x2f, 0xca,
			0x49, 0x01, 0x00, 0x1a, 0x0b, 0x04, 0x5d,
		}},
		{"raw-stored-empty", Config{Level: 0, Wrap: Raw}, "", []byte{0x01, 0x00, 0x00, 0xff, 0xff}},
		{"raw-empty", Config{Level: 6, Wrap: Raw}, "", []byte{0x03, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compressOneShot(t, tt.cfg, []byte(tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, entry := range corpus() {
		for _, wrap := range allWraps {
			for level := 0; level <= 9; level++ {
				cfg := Config{Level: level, Wrap: wrap}
				got := decompress(t, wrap, compressOneShot(t, cfg, entry.data))
				if !bytes.Equal(got, entry.data) {
					t.Errorf("%s/%v/level %d: round trip mismatch", entry.name, wrap, level)
				}
			}
		}
	}
}

func TestRoundTripStrategies(t *testing.T) {
	data := textLike(3, 50000)
	for _, strategy := range []Strategy{DefaultStrategy, Filtered, HuffmanOnly} {
		for _, level := range []int{1, 3, 4, 6, 9} {
			cfg := Config{Level: level, Strategy: strategy, Wrap: Zlib}
			got := decompress(t, Zlib, compressOneShot(t, cfg, data))
			if !bytes.Equal(got, data) {
				t.Errorf("%v/level %d: round trip mismatch", strategy, level)
			}
		}
	}
}

func TestRoundTripWindowAndMemLevel(t *testing.T) {
	data := append(textLike(4, 30000), randomBytes(5, 5000)...)
	for wbits := minWindowBits; wbits <= maxWindowBits; wbits++ {
		for _, memLevel := range []int{1, 5, 9} {
			cfg := Config{Level: 6, WindowBits: wbits, MemLevel: memLevel, Wrap: Raw}
			got := decompress(t, Raw, compressOneShot(t, cfg, data))
			if !bytes.Equal(got, data) {
				t.Errorf("wbits %d memLevel %d: round trip mismatch", wbits, memLevel)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	data := textLike(6, 100000)
	for level := 0; level <= 9; level++ {
		cfg := Config{Level: level, Wrap: GZIP}
		a := compressOneShot(t, cfg, data)
		b := compressOneShot(t, cfg, data)
		if !bytes.Equal(a, b) {
			t.Errorf("level %d: two runs differ", level)
		}
	}
}

func TestResumability(t *testing.T) {
	inputs := []corpusEntry{
		{"text", textLike(7, 20000)},
		{"range", repeatedRange(4)},
		{"random", randomBytes(8, 3000)},
	}
	for _, entry := range inputs {
		for level := 1; level <= 9; level++ {
			for _, wbits := range []int{9, 15} {
				cfg := Config{Level: level, WindowBits: wbits, Wrap: Zlib}
				want := compressOneShot(t, cfg, entry.data)
				got := compressFragmented(t, cfg, entry.data)
				if !bytes.Equal(got, want) {
					t.Errorf("%s/level %d/wbits %d: fragmented output differs", entry.name, level, wbits)
				}
			}
		}
	}
}

func TestFragmentedStoredRoundTrip(t *testing.T) {
	data := textLike(9, 5000)
	got := decompress(t, Zlib, compressFragmented(t, Config{Level: 0, Wrap: Zlib}, data))
	if !bytes.Equal(got, data) {
		t.Error("round trip mismatch")
	}
}

func TestZlibHeader(t *testing.T) {
	for wbits := minWindowBits; wbits <= maxWindowBits; wbits++ {
		for level := 0; level <= 9; level++ {
			for _, strategy := range []Strategy{DefaultStrategy, Filtered, HuffmanOnly} {
				out := compressOneShot(t, Config{Level: level, WindowBits: wbits, Strategy: strategy, Wrap: Zlib}, nil)
				hdr := binary.BigEndian.Uint16(out)
				if hdr%31 != 0 {
					t.Errorf("wbits %d level %d %v: header %04x is not a multiple of 31", wbits, level, strategy, hdr)
				}
				if cm := out[0] & 0x0f; cm != 8 {
					t.Errorf("CM = %d, want 8", cm)
				}
				if cinfo := int(out[0] >> 4); cinfo != wbits-8 {
					t.Errorf("CINFO = %d, want %d", cinfo, wbits-8)
				}
				if want := zlibLevelFlags(level, strategy); int(out[1]>>6) != want {
					t.Errorf("level %d %v: FLEVEL = %d, want %d", level, strategy, out[1]>>6, want)
				}
			}
		}
	}
}

func TestZlibLevelFlags(t *testing.T) {
	want := []int{0, 0, 1, 1, 1, 1, 2, 3, 3, 3}
	for level, w := range want {
		if got := zlibLevelFlags(level, DefaultStrategy); got != w {
			t.Errorf("zlibLevelFlags(%d) = %d, want %d", level, got, w)
		}
	}
	if got := zlibLevelFlags(9, HuffmanOnly); got != 0 {
		t.Errorf("zlibLevelFlags(9, HuffmanOnly) = %d, want 0", got)
	}
}

func TestTrailers(t *testing.T) {
	for _, entry := range corpus() {
		zout := compressOneShot(t, Config{Level: 6, Wrap: Zlib}, entry.data)
		if got, want := binary.BigEndian.Uint32(zout[len(zout)-4:]), adler32.Checksum(entry.data); got != want {
			t.Errorf("%s: zlib trailer %08x, want %08x", entry.name, got, want)
		}

		gout := compressOneShot(t, Config{Level: 6, Wrap: GZIP}, entry.data)
		if !bytes.HasPrefix(gout, []byte{0x1f, 0x8b, 0x08}) {
			t.Errorf("%s: gzip magic % x", entry.name, gout[:3])
		}
		trailer := gout[len(gout)-8:]
		if got, want := binary.LittleEndian.Uint32(trailer), crc32.ChecksumIEEE(entry.data); got != want {
			t.Errorf("%s: gzip CRC %08x, want %08x", entry.name, got, want)
		}
		if got, want := binary.LittleEndian.Uint32(trailer[4:]), uint32(len(entry.data)); got != want {
			t.Errorf("%s: gzip ISIZE %d, want %d", entry.name, got, want)
		}
	}
}

func TestChecksumAccessor(t *testing.T) {
	data := textLike(10, 10000)
	c, err := NewCompressor(Config{Level: 6, Wrap: GZIP})
	if err != nil {
		t.Fatal(err)
	}
	c.SetInput(data)
	c.SetOutput(make([]byte, c.Bound(len(data))))
	if _, err := c.Step(Finish); err != nil {
		t.Fatal(err)
	}
	if got, want := c.Checksum(), crc32.ChecksumIEEE(data); got != want {
		t.Errorf("Checksum() = %08x, want %08x", got, want)
	}
	if c.TotalIn() != int64(len(data)) {
		t.Errorf("TotalIn() = %d, want %d", c.TotalIn(), len(data))
	}
	if c.TotalOut() != int64(c.OutputLen()) {
		t.Errorf("TotalOut() = %d, want %d", c.TotalOut(), c.OutputLen())
	}
	if c.DataType() != Text {
		t.Errorf("DataType() = %v, want Text", c.DataType())
	}
}

func TestDataType(t *testing.T) {
	tests := []struct {
		name  string
		level int
		data  []byte
		want  DataType
	}{
		{"text", 6, textLike(22, 4000), Text},
		{"random", 6, randomBytes(23, 4000), Binary},
		{"stored", 0, textLike(22, 4000), Unknown},
	}
	for _, tt := range tests {
		c, err := NewCompressor(Config{Level: tt.level, Wrap: Raw})
		if err != nil {
			t.Fatal(err)
		}
		if c.DataType() != Unknown {
			t.Errorf("%s: DataType() before input = %v, want Unknown", tt.name, c.DataType())
		}
		c.SetInput(tt.data)
		c.SetOutput(make([]byte, c.Bound(len(tt.data))))
		if _, err := c.Step(Finish); err != nil {
			t.Fatal(err)
		}
		if c.DataType() != tt.want {
			t.Errorf("%s: DataType() = %v, want %v", tt.name, c.DataType(), tt.want)
		}
	}
}

func TestStoredExpansion(t *testing.T) {
	for _, n := range []int{0, 1, 1000, 65535, 65536, 200000} {
		data := randomBytes(int64(n), n)
		cfg := Config{Level: 0, Wrap: Zlib}
		out := compressOneShot(t, cfg, data)
		blocks := n/(1<<maxWindowBits-minLookahead) + 1
		if limit := n + 5*blocks + 6; len(out) > limit {
			t.Errorf("level 0, %d bytes: output %d > %d", n, len(out), limit)
		}

		cfg.Level = 6
		out = compressOneShot(t, cfg, data)
		blocks = n/8000 + 1
		if limit := n + 5*blocks + 18; len(out) > limit {
			t.Errorf("level 6, %d random bytes: output %d > %d", n, len(out), limit)
		}
	}
}

func TestRepeatedA(t *testing.T) {
	data := bytes.Repeat([]byte{'a'}, 32)
	out := compressOneShot(t, Config{Level: 9, Wrap: Raw}, data)
	if len(out) >= 32 {
		t.Errorf("compressed size %d, want < 32", len(out))
	}
	if got := decompress(t, Raw, out); !bytes.Equal(got, data) {
		t.Error("round trip mismatch")
	}
}

func TestRepeatedRangeIsMatched(t *testing.T) {
	data := repeatedRange(10)
	for level := 1; level <= 9; level++ {
		out := compressOneShot(t, Config{Level: level, Wrap: Zlib}, data)
		if len(out) >= 600 {
			t.Errorf("level %d: compressed size %d, want well under %d", level, len(out), len(data))
		}
	}
}

func TestEmptyInputEveryLevel(t *testing.T) {
	for _, wrap := range allWraps {
		for level := 0; level <= 9; level++ {
			out := compressOneShot(t, Config{Level: level, Wrap: wrap}, nil)
			if got := decompress(t, wrap, out); len(got) != 0 {
				t.Errorf("%v/level %d: decoded %d bytes", wrap, level, len(got))
			}
		}
	}
}

func TestSetDictionary(t *testing.T) {
	dict := textLike(11, 40000)
	data := append(dict[10000:12000:12000], dict[30000:32000]...)

	for _, wrap := range []Wrap{Raw, Zlib} {
		cfg := Config{Level: 6, Wrap: wrap}
		c, err := NewCompressor(cfg)
		if err != nil {
			t.Fatal(err)
		}
		if err := c.SetDictionary(dict); err != nil {
			t.Fatal(err)
		}
		out := make([]byte, c.Bound(len(data)))
		c.SetInput(data)
		c.SetOutput(out)
		if st, err := c.Step(Finish); err != nil || st != StreamEnd {
			t.Fatalf("Step(Finish) = %v, %v", st, err)
		}
		out = out[:c.OutputLen()]

		if plain := compressOneShot(t, cfg, data); len(out) >= len(plain) {
			t.Errorf("%v: with dictionary %d bytes, without %d", wrap, len(out), len(plain))
		}

		var got []byte
		if wrap == Zlib {
			if out[1]&0x20 == 0 {
				t.Error("FDICT not set")
			}
			if got, want := binary.BigEndian.Uint32(out[2:]), adler32.Checksum(dict); got != want {
				t.Errorf("DICTID %08x, want %08x", got, want)
			}
			zr, err := zlib.NewReaderDict(bytes.NewReader(out), dict)
			if err != nil {
				t.Fatal(err)
			}
			got = readAll(t, zr)
		} else {
			got = readAll(t, kflate.NewReaderDict(bytes.NewReader(out), dict))
		}
		if !bytes.Equal(got, data) {
			t.Errorf("%v: round trip mismatch", wrap)
		}
	}
}

func TestSetDictionaryErrors(t *testing.T) {
	c, err := NewCompressor(Config{Level: 6, Wrap: GZIP})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetDictionary([]byte("abc")); err != ErrDictionaryGZIP {
		t.Errorf("gzip SetDictionary = %v, want %v", err, ErrDictionaryGZIP)
	}

	c, err = NewCompressor(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	c.SetInput([]byte("some input"))
	c.SetOutput(make([]byte, 64))
	if _, err := c.Step(NoFlush); err != nil {
		t.Fatal(err)
	}
	if err := c.SetDictionary([]byte("abc")); err != ErrDictionaryState {
		t.Errorf("late SetDictionary = %v, want %v", err, ErrDictionaryState)
	}
}

func TestStepErrors(t *testing.T) {
	c, err := NewCompressor(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Step(NoFlush); err != ErrNoOutputSpace {
		t.Errorf("Step without output = %v, want %v", err, ErrNoOutputSpace)
	}
	c.SetOutput(make([]byte, 64))
	if _, err := c.Step(Flush(42)); err != ErrInvalidFlush {
		t.Errorf("Step(42) = %v, want %v", err, ErrInvalidFlush)
	}

	if st, err := c.Step(Finish); err != nil || st != StreamEnd {
		t.Fatalf("Step(Finish) = %v, %v", st, err)
	}
	c.SetOutput(make([]byte, 64))
	if _, err := c.Step(NoFlush); err != ErrStreamFinished {
		t.Errorf("Step after Finish = %v, want %v", err, ErrStreamFinished)
	}
	c.SetInput([]byte("more"))
	if _, err := c.Step(Finish); err != ErrStreamFinished {
		t.Errorf("Finish with new input = %v, want %v", err, ErrStreamFinished)
	}
	c.SetInput(nil)
	if _, err := c.Step(Finish); err != ErrStreamFinished {
		t.Errorf("Finish after StreamEnd = %v, want %v", err, ErrStreamFinished)
	}
}

func TestStepErrorsKeepPendingOutput(t *testing.T) {
	data := textLike(20, 5000)
	c, err := NewCompressor(Config{Level: 6, Wrap: Zlib})
	if err != nil {
		t.Fatal(err)
	}
	var out []byte
	buf := make([]byte, 16)
	c.SetInput(data)
	for {
		c.SetOutput(buf)
		st, err := c.Step(Finish)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, buf[:c.OutputLen()]...)
		if st == StreamEnd {
			t.Fatal("stream ended before the output buffer ran out")
		}
		if c.status == finishState && c.pendingLen() != 0 {
			break
		}
	}

	pending, totalOut := c.pendingLen(), c.TotalOut()
	c.SetInput([]byte("more"))
	c.SetOutput(buf)
	if _, err := c.Step(Finish); err != ErrStreamFinished {
		t.Fatalf("Finish with new input = %v, want %v", err, ErrStreamFinished)
	}
	if c.OutputLen() != 0 || c.pendingLen() != pending || c.TotalOut() != totalOut {
		t.Errorf("rejected step wrote %d bytes, pending %d -> %d, total %d -> %d",
			c.OutputLen(), pending, c.pendingLen(), totalOut, c.TotalOut())
	}

	c.SetInput(nil)
	for {
		c.SetOutput(buf)
		st, err := c.Step(Finish)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, buf[:c.OutputLen()]...)
		if st == StreamEnd {
			break
		}
	}
	if got := decompress(t, Zlib, out); !bytes.Equal(got, data) {
		t.Error("round trip mismatch")
	}
}

func TestFinishIntoExactBuffer(t *testing.T) {
	inputs := []corpusEntry{
		{"empty", nil},
		{"short", []byte("hello")},
		{"text", textLike(21, 3000)},
	}
	for _, entry := range inputs {
		for _, wrap := range allWraps {
			for level := 0; level <= 9; level++ {
				cfg := Config{Level: level, Wrap: wrap}
				want := compressOneShot(t, cfg, entry.data)

				c, err := NewCompressor(cfg)
				if err != nil {
					t.Fatal(err)
				}
				out := make([]byte, len(want))
				c.SetInput(entry.data)
				c.SetOutput(out)
				st, err := c.Step(Finish)
				if err != nil || st != StreamEnd {
					t.Errorf("%s/%v/level %d: Step(Finish) = %v, %v, want %v", entry.name, wrap, level, st, err, StreamEnd)
					continue
				}
				if !bytes.Equal(out[:c.OutputLen()], want) {
					t.Errorf("%s/%v/level %d: output differs", entry.name, wrap, level)
				}
			}
		}
	}
}

func TestRepeatedFlushIsNoop(t *testing.T) {
	c, err := NewCompressor(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	c.SetInput([]byte("hello hello hello"))
	c.SetOutput(make([]byte, 256))
	if st, err := c.Step(SyncFlush); err != nil || st != BlockDone {
		t.Fatalf("Step(SyncFlush) = %v, %v", st, err)
	}
	n := c.OutputLen()
	if !bytes.HasSuffix(c.out[:n], []byte{0x00, 0x00, 0xff, 0xff}) {
		t.Errorf("sync flush does not end with an empty stored block: % x", c.out[:n])
	}
	if st, err := c.Step(SyncFlush); err != nil || st != NeedInput {
		t.Errorf("second Step(SyncFlush) = %v, %v, want %v", st, err, NeedInput)
	}
	if c.OutputLen() != n {
		t.Errorf("second flush wrote %d bytes", c.OutputLen()-n)
	}
}

func TestFlushModes(t *testing.T) {
	parts := [][]byte{textLike(12, 3000), textLike(13, 3000), textLike(14, 3000)}
	for _, flush := range []Flush{PartialFlush, SyncFlush, FullFlush} {
		c, err := NewCompressor(Config{Level: 6, Wrap: Zlib})
		if err != nil {
			t.Fatal(err)
		}
		var out []byte
		buf := make([]byte, 1024)
		run := func(f Flush, want Status) {
			for {
				c.SetOutput(buf)
				st, err := c.Step(f)
				if err != nil {
					t.Fatalf("Step(%v): %v", f, err)
				}
				out = append(out, buf[:c.OutputLen()]...)
				if st != NeedOutput {
					if st != want {
						t.Fatalf("Step(%v) = %v, want %v", f, st, want)
					}
					return
				}
			}
		}
		for _, p := range parts {
			c.SetInput(p)
			run(flush, BlockDone)
		}
		run(Finish, StreamEnd)

		want := bytes.Join(parts, nil)
		if got := decompress(t, Zlib, out); !bytes.Equal(got, want) {
			t.Errorf("%v: round trip mismatch", flush)
		}
	}
}

func TestParams(t *testing.T) {
	data := textLike(15, 60000)
	c, err := NewCompressor(Config{Level: 1, Wrap: Zlib})
	if err != nil {
		t.Fatal(err)
	}
	var out []byte
	big := make([]byte, c.Bound(len(data)))

	c.SetInput(data[:20000])
	c.SetOutput(big)
	if _, err := c.Step(NoFlush); err != nil {
		t.Fatal(err)
	}
	out = append(out, big[:c.OutputLen()]...)

	// A tier change needs room for the partial flush.
	tiny := make([]byte, 1)
	c.SetOutput(tiny)
	if err := c.Params(9, DefaultStrategy); err != ErrNoOutputSpace {
		t.Fatalf("Params with a one byte buffer = %v, want %v", err, ErrNoOutputSpace)
	}
	out = append(out, tiny[:c.OutputLen()]...)
	if c.level != 1 {
		t.Errorf("level changed to %d after a failed Params", c.level)
	}

	c.SetOutput(big)
	if err := c.Params(9, DefaultStrategy); err != nil {
		t.Fatal(err)
	}
	out = append(out, big[:c.OutputLen()]...)
	if c.level != 9 || c.maxChainLength != 4096 {
		t.Errorf("after Params: level %d chain %d", c.level, c.maxChainLength)
	}

	c.SetInput(data[20000:40000])
	c.SetOutput(big)
	if _, err := c.Step(NoFlush); err != nil {
		t.Fatal(err)
	}
	out = append(out, big[:c.OutputLen()]...)

	// Same tier, no flush needed.
	if err := c.Params(4, Filtered); err != nil {
		t.Fatal(err)
	}
	c.SetInput(data[40000:])
	c.SetOutput(big)
	if st, err := c.Step(Finish); err != nil || st != StreamEnd {
		t.Fatalf("Step(Finish) = %v, %v", st, err)
	}
	out = append(out, big[:c.OutputLen()]...)

	if got := decompress(t, Zlib, out); !bytes.Equal(got, data) {
		t.Error("round trip mismatch")
	}
	if err := c.Params(12, DefaultStrategy); err != ErrInvalidLevel {
		t.Errorf("Params(12) = %v, want %v", err, ErrInvalidLevel)
	}
}

func TestClone(t *testing.T) {
	data := textLike(16, 80000)
	c, err := NewCompressor(Config{Level: 6, Wrap: GZIP})
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, c.Bound(len(data)))
	c.SetInput(data[:30000])
	c.SetOutput(buf)
	if _, err := c.Step(NoFlush); err != nil {
		t.Fatal(err)
	}
	prefix := append([]byte(nil), buf[:c.OutputLen()]...)

	d := c.Clone()
	finish := func(c *Compressor) []byte {
		out := make([]byte, c.Bound(len(data)))
		c.SetInput(data[30000:])
		c.SetOutput(out)
		if st, err := c.Step(Finish); err != nil || st != StreamEnd {
			t.Fatalf("Step(Finish) = %v, %v", st, err)
		}
		return out[:c.OutputLen()]
	}
	a := finish(c)
	b := finish(d)
	if !bytes.Equal(a, b) {
		t.Fatal("clone produced different output")
	}
	if got := decompress(t, GZIP, append(prefix, a...)); !bytes.Equal(got, data) {
		t.Error("round trip mismatch")
	}
}

func TestEnd(t *testing.T) {
	c, err := NewCompressor(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.End(); err != nil {
		t.Errorf("End on a fresh compressor = %v", err)
	}
	if err := c.End(); err != ErrClosed {
		t.Errorf("second End = %v, want %v", err, ErrClosed)
	}
	c.SetOutput(make([]byte, 16))
	if _, err := c.Step(NoFlush); err != ErrClosed {
		t.Errorf("Step after End = %v, want %v", err, ErrClosed)
	}

	c, err = NewCompressor(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	c.SetInput([]byte("abandoned"))
	c.SetOutput(make([]byte, 64))
	if _, err := c.Step(NoFlush); err != nil {
		t.Fatal(err)
	}
	if err := c.End(); err != ErrStreamIncomplete {
		t.Errorf("End mid-stream = %v, want %v", err, ErrStreamIncomplete)
	}
}

func TestReset(t *testing.T) {
	data := textLike(17, 10000)
	cfg := Config{Level: 6, Wrap: Zlib}
	want := compressOneShot(t, cfg, data)

	c, err := NewCompressor(cfg)
	if err != nil {
		t.Fatal(err)
	}
	c.SetInput(randomBytes(18, 5000))
	c.SetOutput(make([]byte, 8000))
	if _, err := c.Step(NoFlush); err != nil {
		t.Fatal(err)
	}

	c.Reset()
	if c.TotalIn() != 0 || c.TotalOut() != 0 {
		t.Errorf("totals after Reset: %d %d", c.TotalIn(), c.TotalOut())
	}
	out := make([]byte, c.Bound(len(data)))
	c.SetInput(data)
	c.SetOutput(out)
	if st, err := c.Step(Finish); err != nil || st != StreamEnd {
		t.Fatalf("Step(Finish) = %v, %v", st, err)
	}
	if diff := cmp.Diff(want, out[:c.OutputLen()]); diff != "" {
		t.Errorf("output after Reset mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}

	cfg := Config{Level: 12, WindowBits: 20, MemLevel: 10, Strategy: 7, Wrap: Raw, Header: NewHeader()}
	err := cfg.Validate()
	for _, want := range []error{
		ErrInvalidLevel, ErrInvalidWindowBits, ErrInvalidMemLevel, ErrInvalidStrategy, ErrHeaderWithoutGZIP,
	} {
		if !errors.Is(err, want) {
			t.Errorf("Validate() = %v, does not report %#v", err, want)
		}
	}
	var merr *multierror.Error
	if !errors.As(err, &merr) || len(merr.Errors) != 5 {
		t.Errorf("Validate() = %v, want 5 aggregated errors", err)
	}

	if _, err := NewCompressor(cfg); err == nil {
		t.Error("NewCompressor accepted an invalid config")
	}
}

func TestBound(t *testing.T) {
	for _, wrap := range allWraps {
		for _, level := range []int{0, 1, 6, 9} {
			for _, n := range []int{0, 10, 1000, 100000} {
				data := randomBytes(int64(n+level), n)
				c, err := NewCompressor(Config{Level: level, Wrap: wrap})
				if err != nil {
					t.Fatal(err)
				}
				if out := compressOneShot(t, Config{Level: level, Wrap: wrap}, data); len(out) > c.Bound(n) {
					t.Errorf("%v/level %d/%d bytes: output %d > Bound %d", wrap, level, n, len(out), c.Bound(n))
				}
			}
		}
	}
}

func TestLevels(t *testing.T) {
	infos := Levels()
	if len(infos) != 10 {
		t.Fatalf("Levels() has %d entries", len(infos))
	}
	want := LevelInfo{Level: 9, GoodMatch: 32, LazyMatch: 258, NiceMatch: 258, MaxChain: 4096, Tier: "slow"}
	if diff := cmp.Diff(want, infos[9]); diff != "" {
		t.Errorf("level 9 mismatch (-want +got):\n%s", diff)
	}
	if infos[0].Tier != "stored" || infos[1].Tier != "fast" || infos[4].Tier != "slow" {
		t.Errorf("unexpected tiers: %+v", infos)
	}
}

func TestEnumStrings(t *testing.T) {
	if got := HuffmanOnly.String(); got != "huffman" {
		t.Errorf("HuffmanOnly.String() = %q", got)
	}
	if got := SyncFlush.GoString(); got != "SyncFlush" {
		t.Errorf("SyncFlush.GoString() = %q", got)
	}
	if got := ErrClosed.GoString(); got != "ErrClosed" {
		t.Errorf("ErrClosed.GoString() = %q", got)
	}
	for _, name := range []string{"raw", "zlib", "gzip"} {
		w, err := ParseWrap(name)
		if err != nil || w.String() != name {
			t.Errorf("ParseWrap(%q) = %v, %v", name, w, err)
		}
	}
	if _, err := ParseStrategy("bogus"); err == nil {
		t.Error("ParseStrategy accepted an unknown name")
	}
}
