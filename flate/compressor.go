package flate

import (
	"github.com/chronos-tachyon/bzero"
	"github.com/zarghol/zpack/checksum"
)

// A Compressor is a resumable DEFLATE encoder. It owns its window, hash
// chains, event log and pending output for its whole lifetime, and is not
// safe for concurrent use.
type Compressor struct {
	cfg       Config
	status    int
	lastFlush int // value of flush param for previous Step call, or -1
	wrap      Wrap
	header    *Header
	trailer   bool // trailer already written
	ended     bool // StreamEnd already reported
	dataType  DataType
	dictID    uint32
	sum       checksum.Checksum

	// onTally, when set, observes every event added to the log.
	onTally func(dist, lc int)

	totalIn  int64
	totalOut int64
	in       []byte
	out      []byte
	outPos   int

	// Output still pending, waiting for space in out.
	pending        []byte
	pendingOut     int
	pendingBufSize int

	wSize int // LZ77 window size (32K by default)
	wBits int // log2(wSize) (9-15)
	wMask int // wSize - 1

	// Sliding window. Input bytes are read into the second half of the
	// window, and move to the first half later to keep a dictionary of at
	// least wSize bytes. With this organization, matches are limited to a
	// distance of wSize-maxMatch bytes, but this ensures that IO is always
	// performed with a length multiple of the block size.
	window []byte

	// Actual size of window: 2*wSize.
	windowSize int

	// Link to older string with same hash index. To limit the size of
	// this array to 64K, this link is maintained only for the last 32K
	// strings. An index in this array is thus a window index modulo 32K.
	prev []uint16

	head []uint16 // heads of the hash chains or 0

	insH      int // hash index of string to be inserted
	hashSize  int // number of elements in hash table
	hashBits  int // log2(hashSize)
	hashMask  int // hashSize - 1
	hashShift int // number of bits by which insH is shifted at each step

	// Window position at the beginning of the current output block. Gets
	// negative when the window is moved backwards.
	blockStart int

	matchLength    int  // length of best match
	prevMatch      int  // previous match
	matchAvailable bool // set if previous match exists
	strstart       int  // start of string to insert
	matchStart     int  // start of matching string
	lookahead      int  // number of valid bytes ahead in window

	// Length of the best match at previous step. Matches not greater than
	// this are discarded. This is used in the lazy match evaluation.
	prevLength int

	// To speed up deflation, hash chains are never searched beyond this
	// length. A higher limit improves compression ratio but degrades the
	// speed.
	maxChainLength int

	// Attempt to find a better match only when the current match is
	// strictly smaller than this value. Only used for the slow tier. In
	// the fast tier it is the longest match for which skipped strings are
	// still inserted into the hash table.
	maxLazyMatch int

	level    int // compression level (0-9)
	strategy Strategy

	goodMatch int // use a faster search when the previous match is longer than this
	niceMatch int // stop searching when current match exceeds this

	dynLTree [heapSize]treeNode      // literal and length tree
	dynDTree [2*dCodes + 1]treeNode  // distance tree
	blTree   [2*blCodes + 1]treeNode // Huffman tree for bit lengths

	lDesc  treeDesc // desc for literal tree
	dDesc  treeDesc // desc for distance tree
	blDesc treeDesc // desc for bit length tree

	// number of codes at each bit length for an optimal tree
	blCount [maxBits + 1]int

	// The sons of heap[n] are heap[2*n] and heap[2*n+1]. heap[0] is not
	// used. The same heap array is used to build all trees.
	heap    [2*lCodes + 1]int
	heapLen int // number of elements in the heap
	heapMax int // element of largest frequency

	// Depth of each subtree used as tie breaker for trees of equal
	// frequency.
	depth [2*lCodes + 1]uint8

	// The event log. lBuf holds literals or match lengths, dBuf the
	// distance of each match or 0 for a literal. The log size also bounds
	// the block size; litBufsize is 1<<(memLevel+6).
	lBuf       []uint8
	dBuf       []uint16
	litBufsize int
	lastLit    int // running index in the event log

	optLen     int // bit length of current block with optimal trees
	staticLen  int // bit length of current block with static trees
	matches    int // number of string matches in current block
	lastEOBLen int // bit length of EOB code for last block

	// Output buffer. Bits are inserted starting at the bottom (least
	// significant bits).
	biBuf uint16

	// Number of valid bits in biBuf. All bits above the last valid bit
	// are always zero.
	biValid int
}

// NewCompressor validates cfg and returns a Compressor ready to accept
// input.
func NewCompressor(cfg Config) (*Compressor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()

	c := &Compressor{cfg: cfg}
	c.wBits = cfg.WindowBits
	c.wSize = 1 << c.wBits
	c.wMask = c.wSize - 1

	c.hashBits = cfg.MemLevel + 7
	c.hashSize = 1 << c.hashBits
	c.hashMask = c.hashSize - 1
	c.hashShift = (c.hashBits + minMatch - 1) / minMatch

	c.window = make([]byte, 2*c.wSize)
	c.prev = make([]uint16, c.wSize)
	c.head = make([]uint16, c.hashSize)

	c.litBufsize = 1 << (cfg.MemLevel + 6) // 16K elements by default
	c.pendingBufSize = c.litBufsize * 4
	c.pending = make([]byte, 0, c.pendingBufSize)
	c.lBuf = make([]uint8, c.litBufsize)
	c.dBuf = make([]uint16, c.litBufsize)

	c.wrap = cfg.Wrap
	c.header = cfg.Header
	if c.wrap == GZIP {
		c.sum = checksum.NewCRC32()
	} else {
		c.sum = checksum.NewAdler32()
	}

	c.Reset()
	return c, nil
}

// Reset discards all state and prepares c for a new stream with the same
// configuration, keeping its allocations.
func (c *Compressor) Reset() {
	c.totalIn = 0
	c.totalOut = 0
	c.in = nil
	c.out = nil
	c.outPos = 0
	c.dataType = Unknown
	c.dictID = 0

	c.pending = c.pending[:0]
	c.pendingOut = 0
	c.trailer = false
	c.ended = false

	c.status = initState
	c.sum.Reset()
	c.lastFlush = int(NoFlush)

	c.level = c.cfg.Level
	c.strategy = c.cfg.Strategy

	bzero.Uint8(c.window)
	c.trInit()
	c.lmInit()
}

// SetInput replaces the remaining input with p. The Compressor does not
// copy p; it must not be modified until it has been consumed.
func (c *Compressor) SetInput(p []byte) {
	c.in = p
}

// SetOutput sets the buffer that the next calls to Step write into.
func (c *Compressor) SetOutput(p []byte) {
	c.out = p
	c.outPos = 0
}

// AvailIn returns the number of input bytes not yet consumed.
func (c *Compressor) AvailIn() int { return len(c.in) }

// AvailOut returns the free space left in the output buffer.
func (c *Compressor) AvailOut() int { return len(c.out) - c.outPos }

// OutputLen returns the number of bytes written into the output buffer
// since the last SetOutput.
func (c *Compressor) OutputLen() int { return c.outPos }

// TotalIn returns the number of input bytes consumed since the last Reset.
func (c *Compressor) TotalIn() int64 { return c.totalIn }

// TotalOut returns the number of bytes produced since the last Reset.
func (c *Compressor) TotalOut() int64 { return c.totalOut }

// DataType returns the guess made from the first block's literals, or
// Unknown before any block has been compressed.
func (c *Compressor) DataType() DataType { return c.dataType }

// Config returns the configuration c was created with.
func (c *Compressor) Config() Config { return c.cfg }

// Checksum returns the running checksum of the consumed input: Adler-32 for
// zlib streams and CRC-32 for gzip streams. Raw streams do not maintain
// it.
func (c *Compressor) Checksum() uint32 { return c.sum.Value() }

// Step compresses as much input as possible and writes as much output as
// fits, stopping when the input runs out or the output buffer fills up.
//
// With NoFlush the compressor decides how much data to accumulate before
// producing output. Any other mode forces out everything consumed so far;
// if Step returns NeedOutput, call it again with the same flush mode once
// more output space is available. Finish must be repeated until Step
// returns StreamEnd.
func (c *Compressor) Step(flush Flush) (Status, error) {
	if c.status == endedState {
		return 0, ErrClosed
	}
	if flush > Finish {
		return 0, ErrInvalidFlush
	}
	// After Finish only repeats of Finish without new input are allowed,
	// and only until StreamEnd has been reported.
	if c.status == finishState && (flush != Finish || len(c.in) != 0 || c.ended) {
		return 0, ErrStreamFinished
	}
	if c.AvailOut() == 0 {
		return 0, ErrNoOutputSpace
	}

	oldFlush := c.lastFlush
	c.lastFlush = int(flush)

	if c.status == initState {
		c.writeHeader()
		c.status = busyState
	}

	// Flush as much pending output as possible.
	if c.pendingLen() != 0 {
		c.flushPending()
		if c.AvailOut() == 0 {
			// The output is full but the flush is incomplete. Make sure
			// a repeat of the same flush is not mistaken for a no-op.
			c.lastFlush = -1
			return NeedOutput, nil
		}
	} else if len(c.in) == 0 && int(flush) <= oldFlush && flush != Finish {
		// Nothing new to compress and the flush has already been done.
		return NeedInput, nil
	}

	// Start a new block or continue the current one.
	if len(c.in) != 0 || c.lookahead != 0 || (flush != NoFlush && c.status != finishState) {
		var bstate blockState
		switch levels[c.level].tier {
		case tierStored:
			bstate = c.deflateStored(flush)
		case tierFast:
			bstate = c.deflateFast(flush)
		default:
			bstate = c.deflateSlow(flush)
		}

		if bstate == finishStarted || bstate == finishDone {
			c.status = finishState
		}
		if bstate == needMore || bstate == finishStarted {
			if c.AvailOut() == 0 {
				c.lastFlush = -1 // avoid a no-op on the next call
				return NeedOutput, nil
			}
			return NeedInput, nil
		}
		if bstate == blockDone {
			if flush == PartialFlush {
				c.trAlign()
			} else {
				// An empty stored block is a marker for SyncFlush and
				// FullFlush.
				c.trStoredBlock(0, 0, false)
				if flush == FullFlush {
					c.clearHash() // forget history
				}
			}
			c.flushPending()
			if c.AvailOut() == 0 {
				c.lastFlush = -1
				return NeedOutput, nil
			}
		}
	}

	if flush != Finish {
		if flush == NoFlush {
			return NeedInput, nil
		}
		return BlockDone, nil
	}
	if c.wrap == Raw || c.trailer {
		c.ended = true
		return StreamEnd, nil
	}

	c.writeTrailer()
	c.flushPending()
	c.trailer = true // write the trailer only once
	if c.pendingLen() != 0 {
		return NeedOutput, nil
	}
	c.ended = true
	return StreamEnd, nil
}

// SetDictionary preloads the window and hash chains with dict, so that the
// first bytes of input can be matched against it. It must be called before
// the first Step. For zlib streams the dictionary's Adler-32 is written to
// the header; the decoder must be given the same dictionary.
func (c *Compressor) SetDictionary(dict []byte) error {
	if c.status != initState || c.strstart != 0 || c.totalIn != 0 {
		return ErrDictionaryState
	}
	if c.wrap == GZIP {
		return ErrDictionaryGZIP
	}

	a := checksum.NewAdler32()
	a.Update(dict)
	c.dictID = a.Value()

	length := len(dict)
	if length < minMatch {
		return nil
	}
	if length > c.maxDist() {
		dict = dict[length-c.maxDist():] // use the tail of the dictionary
		length = c.maxDist()
	}
	copy(c.window, dict)
	c.strstart = length
	c.blockStart = length

	// Insert all strings in the hash table (except for the last two
	// bytes). c.lookahead stays 0, so insH will be recomputed at the next
	// fillWindow.
	c.insH = int(c.window[0])
	c.insH = c.updateHash(c.insH, c.window[1])
	for n := 0; n <= length-minMatch; n++ {
		c.insertString(n)
	}
	return nil
}

// Params changes the compression level and strategy mid-stream. When the
// change switches between the stored, fast and slow tiers after input has
// been consumed, the data so far is first compressed with the old
// parameters and flushed as with PartialFlush. If that flush does not fit
// in the output buffer, ErrNoOutputSpace is returned and the parameters are
// left unchanged; call Params again with more output space.
func (c *Compressor) Params(level int, strategy Strategy) error {
	if level == DefaultCompression {
		level = 6
	}
	if level < 0 || level > 9 {
		return ErrInvalidLevel
	}
	if strategy > HuffmanOnly {
		return ErrInvalidStrategy
	}
	if c.status == endedState {
		return ErrClosed
	}

	if levels[c.level].tier != levels[level].tier && c.totalIn != 0 {
		st, err := c.Step(PartialFlush)
		if err != nil {
			return err
		}
		if st == NeedOutput {
			return ErrNoOutputSpace
		}
	}
	if c.level != level {
		c.setLevel(level)
	}
	c.strategy = strategy
	return nil
}

// End releases the Compressor. It returns ErrStreamIncomplete if the
// stream was started but not finished, in which case the output so far is
// not a complete stream.
func (c *Compressor) End() error {
	status := c.status
	if status == endedState {
		return ErrClosed
	}
	c.status = endedState
	c.in = nil
	c.out = nil
	if status == busyState {
		return ErrStreamIncomplete
	}
	return nil
}

// Clone returns a deep copy of c, including its buffered input position,
// pending output and checksum. The copy shares the caller's input and
// output slices until they are replaced.
func (c *Compressor) Clone() *Compressor {
	d := *c
	d.window = append([]byte(nil), c.window...)
	d.prev = append([]uint16(nil), c.prev...)
	d.head = append([]uint16(nil), c.head...)
	d.lBuf = append([]uint8(nil), c.lBuf...)
	d.dBuf = append([]uint16(nil), c.dBuf...)
	d.pending = append(make([]byte, 0, c.pendingBufSize), c.pending...)
	d.sum = c.sum.Clone()
	d.onTally = nil

	// The tree descriptors point into the tree arrays, which were copied
	// by value.
	d.lDesc.dynTree = d.dynLTree[:]
	d.dDesc.dynTree = d.dynDTree[:]
	d.blDesc.dynTree = d.blTree[:]
	return &d
}

// Bound returns an upper bound on the compressed size of n bytes of input
// under c's configuration, including the framing.
func (c *Compressor) Bound(n int) int {
	complen := n + (n+7)>>3 + (n+63)>>6 + 5
	switch c.wrap {
	case Zlib:
		complen += 6 // header and trailer
		if c.strstart != 0 {
			complen += 4 // dictionary id
		}
	case GZIP:
		complen += 18 // header and trailer
		if h := c.header; h != nil {
			if h.Extra != nil {
				complen += 2 + len(h.Extra)
			}
			if h.Name != "" {
				complen += len(h.Name) + 1
			}
			if h.Comment != "" {
				complen += len(h.Comment) + 1
			}
			if h.HeaderCRC {
				complen += 2
			}
		}
	}
	return complen
}
