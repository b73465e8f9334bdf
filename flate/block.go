package flate

import "github.com/chronos-tachyon/assert"

// trInit initializes the tree data structures for a new stream.
func (c *Compressor) trInit() {
	c.lDesc = treeDesc{dynTree: c.dynLTree[:], stat: &staticLDesc}
	c.dDesc = treeDesc{dynTree: c.dynDTree[:], stat: &staticDDesc}
	c.blDesc = treeDesc{dynTree: c.blTree[:], stat: &staticBLDesc}

	c.biBuf = 0
	c.biValid = 0
	c.lastEOBLen = 8 // enough lookahead for inflate

	c.initBlock()
}

// initBlock clears the frequencies and the event log for a new block.
func (c *Compressor) initBlock() {
	for n := 0; n < lCodes; n++ {
		c.dynLTree[n].freq = 0
	}
	for n := 0; n < dCodes; n++ {
		c.dynDTree[n].freq = 0
	}
	for n := 0; n < blCodes; n++ {
		c.blTree[n].freq = 0
	}

	c.dynLTree[endBlock].freq = 1
	c.optLen = 0
	c.staticLen = 0
	c.lastLit = 0
	c.matches = 0
}

// tally records a literal (dist == 0, lc is the byte) or a match (dist is
// the distance, lc is the length minus minMatch) and reports whether the
// current block must be flushed.
func (c *Compressor) tally(dist, lc int) bool {
	c.dBuf[c.lastLit] = uint16(dist)
	c.lBuf[c.lastLit] = uint8(lc)
	c.lastLit++
	if c.onTally != nil {
		c.onTally(dist, lc)
	}

	if dist == 0 {
		c.dynLTree[lc].freq++
	} else {
		c.matches++
		dist-- // dist is now the match distance - 1
		if debugAsserts {
			assert.Assertf(dist < c.wSize-minLookahead, "bad match distance %d", dist+1)
			assert.Assertf(lc <= maxMatch-minMatch, "bad match length %d", lc+minMatch)
		}
		c.dynLTree[int(lengthCode[lc])+literals+1].freq++
		c.dynDTree[dCode(dist)].freq++
	}

	if c.lastLit&0x1fff == 0 && c.level > 2 {
		// Compute an upper bound for the compressed length.
		outLength := c.lastLit * 8
		inLength := c.strstart - c.blockStart
		for dcode := 0; dcode < dCodes; dcode++ {
			outLength += int(c.dynDTree[dcode].freq) * (5 + extraDBits[dcode])
		}
		outLength >>= 3
		if c.matches < c.lastLit/2 && outLength < inLength/2 {
			printf("early flush: last_lit %d in %d out~%d", c.lastLit, inLength, outLength)
			return true
		}
	}
	// The event log is one short of its capacity so the final literal of
	// a lazy match always fits.
	return c.lastLit == c.litBufsize-1
}

// compressBlock replays the event log using the given trees.
func (c *Compressor) compressBlock(ltree, dtree []treeNode) {
	for lx := 0; lx < c.lastLit; lx++ {
		dist := int(c.dBuf[lx])
		lc := int(c.lBuf[lx])
		if dist == 0 {
			c.sendCode(lc, ltree) // literal byte
			continue
		}

		// lc is the match length - minMatch
		code := int(lengthCode[lc])
		c.sendCode(code+literals+1, ltree)
		if extra := extraLBits[code]; extra != 0 {
			c.sendBits(lc-baseLength[code], extra)
		}
		dist-- // dist is now the match distance - 1
		code = dCode(dist)
		c.sendCode(code, dtree)
		if extra := extraDBits[code]; extra != 0 {
			c.sendBits(dist-baseDist[code], extra)
		}
	}

	c.sendCode(endBlock, ltree)
	c.lastEOBLen = int(ltree[endBlock].len)
}

// setDataType guesses whether the input is text or binary from the
// literal frequencies of the current block.
func (c *Compressor) setDataType() {
	asciiFreq, binFreq := 0, 0
	n := 0
	for ; n < 7; n++ {
		binFreq += int(c.dynLTree[n].freq)
	}
	for ; n < 128; n++ {
		asciiFreq += int(c.dynLTree[n].freq)
	}
	for ; n < literals; n++ {
		binFreq += int(c.dynLTree[n].freq)
	}
	if binFreq > asciiFreq>>2 {
		c.dataType = Binary
	} else {
		c.dataType = Text
	}
}

// trStoredBlock sends a stored block of length bytes starting at window
// offset buf.
func (c *Compressor) trStoredBlock(buf, length int, last bool) {
	c.sendBits(storedBlock<<1+b2i(last), 3)
	c.copyBlock(buf, length, true)
}

// trAlign sends one empty static block to give enough lookahead for
// inflate. The decoder needs 10 bits of lookahead (7 for the EOB code plus
// the 3 bits of the next block header), so a second empty block is sent
// when the last real EOB code was too short to provide it.
func (c *Compressor) trAlign() {
	c.sendBits(staticTrees<<1, 3)
	c.sendCode(endBlock, staticLTree[:])
	c.biFlush()

	if 1+c.lastEOBLen+10-c.biValid < 9 {
		c.sendBits(staticTrees<<1, 3)
		c.sendCode(endBlock, staticLTree[:])
		c.biFlush()
	}
	c.lastEOBLen = 7
}

// trFlushBlock determines the best encoding for the current block, stored,
// static or dynamic, and writes it out. buf is the window offset of the
// block's raw bytes, or -1 when they are no longer in the window.
func (c *Compressor) trFlushBlock(buf, storedLen int, last bool) {
	var optLenb, staticLenb int
	maxBLIndex := 0

	if c.level > 0 {
		if c.dataType == Unknown {
			c.setDataType()
		}

		c.buildTree(&c.lDesc)
		c.buildTree(&c.dDesc)

		// Build the bit length tree and get the index of the last bit
		// length code to send.
		maxBLIndex = c.buildBLTree()

		optLenb = (c.optLen + 3 + 7) >> 3
		staticLenb = (c.staticLen + 3 + 7) >> 3
		if staticLenb <= optLenb {
			optLenb = staticLenb
		}
	} else {
		optLenb = storedLen + 5 // force a stored block
		staticLenb = optLenb
	}

	switch {
	case storedLen+4 <= optLenb && buf != -1:
		// Four bytes for the two length words. buf cannot be -1 if
		// storedLen fits in a stored block, since the window never
		// slides past the start of an uncompressed block.
		printf("stored block: %d bytes", storedLen)
		c.trStoredBlock(buf, storedLen, last)

	case staticLenb == optLenb:
		printf("static block: %d events", c.lastLit)
		c.sendBits(staticTrees<<1+b2i(last), 3)
		c.compressBlock(staticLTree[:], staticDTree[:])

	default:
		printf("dynamic block: %d events, opt %d static %d", c.lastLit, optLenb, staticLenb)
		c.sendBits(dynTrees<<1+b2i(last), 3)
		c.sendAllTrees(c.lDesc.maxCode+1, c.dDesc.maxCode+1, maxBLIndex+1)
		c.compressBlock(c.dynLTree[:], c.dynDTree[:])
	}

	c.initBlock()

	if last {
		c.biWindup()
	}
}

// flushBlockOnly ends the current block at strstart and hands the output
// to the caller.
func (c *Compressor) flushBlockOnly(last bool) {
	buf := -1
	if c.blockStart >= 0 {
		buf = c.blockStart
	}
	c.trFlushBlock(buf, c.strstart-c.blockStart, last)
	c.blockStart = c.strstart
	c.flushPending()
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
