package flate

import "io"

// outputBufferSize is the size of the buffer a Writer compresses into
// before handing bytes to its destination.
const outputBufferSize = 32 << 10

// A Writer compresses everything written to it and writes the result to an
// underlying io.Writer. Data is buffered inside the compressor; call Flush
// to force it out and Close to finish the stream.
type Writer struct {
	dst    io.Writer
	c      *Compressor
	dict   []byte
	buf    []byte
	err    error
	closed bool
}

// NewWriter returns a Writer that produces a raw DEFLATE stream at the given
// level. Levels outside 0-9 are replaced by the closest level available;
// DefaultCompression selects level 6.
func NewWriter(w io.Writer, level int) *Writer {
	return newWriter(w, Config{Level: clampLevel(level), Wrap: Raw})
}

// NewZlibWriter returns a Writer that produces a zlib stream at the given
// level.
func NewZlibWriter(w io.Writer, level int) *Writer {
	return newWriter(w, Config{Level: clampLevel(level), Wrap: Zlib})
}

// NewGZIPWriter returns a Writer that produces a gzip member at the given
// level, with an empty header.
func NewGZIPWriter(w io.Writer, level int) *Writer {
	return newWriter(w, Config{Level: clampLevel(level), Wrap: GZIP})
}

// NewWriterConfig returns a Writer for an arbitrary configuration.
func NewWriterConfig(w io.Writer, cfg Config) (*Writer, error) {
	return NewWriterDict(w, cfg, nil)
}

// NewWriterDict is like NewWriterConfig but preloads a dictionary. The
// dictionary is set again on every Reset.
func NewWriterDict(w io.Writer, cfg Config, dict []byte) (*Writer, error) {
	c, err := NewCompressor(cfg)
	if err != nil {
		return nil, err
	}
	zw := &Writer{
		dst:  w,
		c:    c,
		dict: dict,
		buf:  make([]byte, outputBufferSize),
	}
	if dict != nil {
		if err := c.SetDictionary(dict); err != nil {
			return nil, err
		}
	}
	return zw, nil
}

func newWriter(w io.Writer, cfg Config) *Writer {
	zw, err := NewWriterConfig(w, cfg)
	if err != nil {
		// The shortcut constructors only build valid configurations.
		panic(err)
	}
	return zw
}

func clampLevel(level int) int {
	switch {
	case level == DefaultCompression:
		return 6
	case level < NoCompression:
		return NoCompression
	case level > BestCompression:
		return BestCompression
	}
	return level
}

// step runs the compressor once with a fresh output buffer and passes
// whatever it produced to the destination.
func (w *Writer) step(flush Flush) (Status, error) {
	w.c.SetOutput(w.buf)
	st, err := w.c.Step(flush)
	if n := w.c.OutputLen(); n > 0 {
		if _, werr := w.dst.Write(w.buf[:n]); werr != nil {
			w.err = werr
			return st, werr
		}
	}
	if err != nil {
		w.err = err
	}
	return st, err
}

// Write compresses p. It returns an error only if the destination failed.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.closed {
		return 0, ErrClosed
	}

	w.c.SetInput(p)
	for w.c.AvailIn() > 0 {
		if _, err := w.step(NoFlush); err != nil {
			return len(p) - w.c.AvailIn(), err
		}
	}
	w.c.SetInput(nil)
	return len(p), nil
}

// Flush writes everything compressed so far to the destination, ending the
// current block with an empty stored block so the output is byte aligned.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return nil
	}
	for {
		st, err := w.step(SyncFlush)
		if err != nil {
			return err
		}
		if st != NeedOutput {
			return nil
		}
	}
}

// Close finishes the stream and writes the trailer. It does not close the
// destination.
func (w *Writer) Close() error {
	if w.closed {
		return w.err
	}
	w.closed = true
	if w.err != nil {
		return w.err
	}
	for {
		st, err := w.step(Finish)
		if err != nil {
			return err
		}
		if st == StreamEnd {
			return w.c.End()
		}
	}
}

// Reset discards the Writer's state and makes it equivalent to a new
// Writer with the same configuration writing to dst.
func (w *Writer) Reset(dst io.Writer) {
	w.c.Reset()
	w.dst = dst
	w.err = nil
	w.closed = false
	if w.dict != nil {
		w.err = w.c.SetDictionary(w.dict)
	}
}

// TotalIn returns the number of bytes compressed since the last Reset.
func (w *Writer) TotalIn() int64 { return w.c.TotalIn() }

// TotalOut returns the number of bytes written to the destination since
// the last Reset.
func (w *Writer) TotalOut() int64 { return w.c.TotalOut() }

// Checksum returns the running Adler-32 or CRC-32 of the input for zlib
// and gzip streams.
func (w *Writer) Checksum() uint32 { return w.c.Checksum() }
