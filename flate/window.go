package flate

import "github.com/chronos-tachyon/assert"

// updateHash rolls the next byte into the running hash. After minMatch
// calls the oldest byte has been shifted out entirely.
func (c *Compressor) updateHash(h int, b byte) int {
	return ((h << c.hashShift) ^ int(b)) & c.hashMask
}

// insertString inserts the string starting at pos into the dictionary and
// returns the previous head of its hash chain. All calls must be made with
// consecutive values of pos, and the three bytes at pos must be valid.
func (c *Compressor) insertString(pos int) int {
	c.insH = c.updateHash(c.insH, c.window[pos+minMatch-1])
	head := c.head[c.insH]
	c.prev[pos&c.wMask] = head
	c.head[c.insH] = uint16(pos)
	return int(head)
}

// clearHash empties the hash table. prev is left alone; its stale links are
// never reached once head no longer points into it.
func (c *Compressor) clearHash() {
	clear(c.head)
}

// lmInit initializes the longest match machinery for a new stream.
func (c *Compressor) lmInit() {
	c.windowSize = 2 * c.wSize
	c.clearHash()

	c.setLevel(c.level)

	c.strstart = 0
	c.blockStart = 0
	c.lookahead = 0
	c.matchLength = minMatch - 1
	c.prevLength = minMatch - 1
	c.matchAvailable = false
	c.matchStart = 0
	c.prevMatch = 0
	c.insH = 0
}

func (c *Compressor) setLevel(level int) {
	c.level = level
	l := levels[level]
	c.maxLazyMatch = l.lazy
	c.goodMatch = l.good
	c.niceMatch = l.nice
	c.maxChainLength = l.chain
}

// readBuf moves up to len(buf) bytes of input into buf, updating the
// running checksum, and returns the number of bytes moved.
func (c *Compressor) readBuf(buf []byte) int {
	n := copy(buf, c.in)
	if n == 0 {
		return 0
	}
	if c.wrap != Raw {
		c.sum.Update(buf[:n])
	}
	c.in = c.in[n:]
	c.totalIn += int64(n)
	return n
}

// fillWindow reads new input when the lookahead becomes insufficient.
// It slides the window first if strstart has reached the upper half, and
// returns with lookahead >= minLookahead unless the input ran out.
func (c *Compressor) fillWindow() {
	for {
		more := c.windowSize - c.lookahead - c.strstart

		// If the window is almost full and there is insufficient
		// lookahead, move the upper half to the lower one to make room
		// in the upper half.
		if c.strstart >= c.wSize+c.maxDist() {
			c.slide()
			more += c.wSize
		}
		if len(c.in) == 0 {
			return
		}

		// There is at least minLookahead-1 bytes of room here because
		// windowSize >= 2*wSize and strstart < wSize+maxDist.
		if debugAsserts {
			assert.Assertf(more >= 2, "more %d < 2", more)
		}
		start := c.strstart + c.lookahead
		n := c.readBuf(c.window[start : start+more])
		c.lookahead += n

		// Initialize the hash with the first two bytes after strstart.
		if c.lookahead >= minMatch {
			c.insH = int(c.window[c.strstart])
			c.insH = c.updateHash(c.insH, c.window[c.strstart+1])
		}

		if c.lookahead >= minLookahead || len(c.in) == 0 {
			return
		}
	}
}

// slide copies the upper half of the window down and rebases every stored
// position by wSize. Positions that fall below zero become zero, which ends
// any chain that reaches them.
func (c *Compressor) slide() {
	copy(c.window, c.window[c.wSize:c.wSize+c.wSize])
	c.matchStart -= c.wSize
	c.strstart -= c.wSize
	c.blockStart -= c.wSize
	println("slide window, strstart", c.strstart)

	wSize := uint16(c.wSize)
	for i, m := range c.head {
		if m >= wSize {
			c.head[i] = m - wSize
		} else {
			c.head[i] = 0
		}
	}
	for i, m := range c.prev {
		if m >= wSize {
			c.prev[i] = m - wSize
		} else {
			c.prev[i] = 0
		}
	}
}

// maxDist is the largest match distance. It is kept below the window size
// so that a match can never read past the bytes the window holds.
func (c *Compressor) maxDist() int {
	return c.wSize - minLookahead
}
