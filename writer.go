package zpack

import "io"

// A Writer compresses data by running each block of input through a
// MatchFinder and an Encoder.
type Writer struct {
	Dest        io.Writer
	MatchFinder MatchFinder
	Encoder     Encoder

	// BlockSize is the amount of input handed to the MatchFinder at once.
	// Zero means 64 KiB.
	BlockSize int

	// Stats, if non-nil, accumulates a summary of every block's matches.
	Stats *Stats

	inBuf       []byte
	outBuf      []byte
	matches     []Match
	wroteHeader bool
	err         error
}

func (w *Writer) blockSize() int {
	if w.BlockSize <= 0 {
		return 1 << 16
	}
	return w.BlockSize
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}

	for len(p) > 0 {
		k := min(len(p), w.blockSize()-len(w.inBuf))
		w.inBuf = append(w.inBuf, p[:k]...)
		p = p[k:]
		n += k

		if len(w.inBuf) == w.blockSize() {
			if err := w.encodeBlock(false); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

func (w *Writer) encodeBlock(lastBlock bool) error {
	w.outBuf = w.outBuf[:0]
	if !w.wroteHeader {
		w.outBuf = w.Encoder.Header(w.outBuf)
		w.wroteHeader = true
	}

	w.matches = w.MatchFinder.FindMatches(w.matches[:0], w.inBuf)
	if w.Stats != nil {
		w.Stats.Add(w.matches)
	}
	w.outBuf = w.Encoder.Encode(w.outBuf, w.inBuf, w.matches, lastBlock)
	w.inBuf = w.inBuf[:0]

	if len(w.outBuf) > 0 {
		_, w.err = w.Dest.Write(w.outBuf)
	}
	return w.err
}

// Close encodes any buffered input as the last block. It does not close
// Dest.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if err := w.encodeBlock(true); err != nil {
		return err
	}
	w.err = errWriterClosed
	return nil
}

// Reset discards any buffered data and prepares w to write a new stream to
// dest.
func (w *Writer) Reset(dest io.Writer) {
	w.Dest = dest
	w.MatchFinder.Reset()
	w.Encoder.Reset()
	w.inBuf = w.inBuf[:0]
	w.wroteHeader = false
	w.err = nil
}

type writerError string

func (e writerError) Error() string { return string(e) }

const errWriterClosed = writerError("zpack: write to closed Writer")
