package flate

// blockState is the result of one run of a match selection strategy.
type blockState byte

const (
	needMore      blockState = iota // block not completed, need more input or more output
	blockDone                       // block flush performed
	finishStarted                   // finish started, need only more output at next call
	finishDone                      // finish done, accept no more input or output
)

// deflateStored copies as much input as possible to stored blocks, without
// any compression. Blocks are bounded by both the pending buffer size and
// the window.
func (c *Compressor) deflateStored(flush Flush) blockState {
	// Stored blocks are limited to 0xffff bytes, and the pending buffer
	// must also hold the block header.
	maxBlockSize := 0xffff
	if maxBlockSize > c.pendingBufSize-5 {
		maxBlockSize = c.pendingBufSize - 5
	}

	for {
		// Fill the window as much as possible.
		if c.lookahead <= 1 {
			c.fillWindow()
			if c.lookahead == 0 && flush == NoFlush {
				return needMore
			}
			if c.lookahead == 0 {
				break // flush the current block
			}
		}

		c.strstart += c.lookahead
		c.lookahead = 0

		// Emit a stored block if the pending buffer would be full.
		maxStart := c.blockStart + maxBlockSize
		if c.strstart >= maxStart {
			c.lookahead = c.strstart - maxStart
			c.strstart = maxStart
			c.flushBlockOnly(false)
			if c.AvailOut() == 0 {
				return needMore
			}
		}

		// Flush if the window would slide past the start of the block,
		// since the block's bytes must still be in the window.
		if c.strstart-c.blockStart >= c.maxDist() {
			c.flushBlockOnly(false)
			if c.AvailOut() == 0 {
				return needMore
			}
		}
	}

	c.flushBlockOnly(flush == Finish)
	return c.finishState(flush)
}

// finishState is the common tail of the strategies, after the last block
// of a flush has been written. The flush is incomplete only while some of
// that block is still pending; an output buffer filled exactly is done.
func (c *Compressor) finishState(flush Flush) blockState {
	if c.pendingLen() != 0 {
		if flush == Finish {
			return finishStarted
		}
		return needMore
	}
	if flush == Finish {
		return finishDone
	}
	return blockDone
}

// deflateFast compresses without lazy evaluation: a match found at the
// current position is taken immediately. New strings are inserted in the
// dictionary only for unmatched strings or for short matches.
func (c *Compressor) deflateFast(flush Flush) blockState {
	hashHead := 0 // head of the hash chain

	for {
		// Make sure there is always enough lookahead, except at the end
		// of the input: minMatch bytes for the next match plus minMatch
		// bytes to insert the string following the next match.
		if c.lookahead < minLookahead {
			c.fillWindow()
			if c.lookahead < minLookahead && flush == NoFlush {
				return needMore
			}
			if c.lookahead == 0 {
				break // flush the current block
			}
		}

		// Insert the string window[strstart:strstart+3] in the dictionary
		// and set hashHead to the head of the hash chain.
		if c.lookahead >= minMatch {
			hashHead = c.insertString(c.strstart)
		}

		// Find the longest match, discarding those <= prevLength. At this
		// point prevLength is always minMatch-1.
		if hashHead != 0 && c.strstart-hashHead <= c.maxDist() {
			if c.strategy != HuffmanOnly {
				c.matchLength = c.longestMatch(hashHead)
			}
			// longestMatch sets matchStart
		}

		var bflush bool
		if c.matchLength >= minMatch {
			bflush = c.tally(c.strstart-c.matchStart, c.matchLength-minMatch)
			c.lookahead -= c.matchLength

			// Insert new strings in the hash table only if the match
			// length is not too large. This saves time but degrades
			// compression.
			if c.matchLength <= c.maxLazyMatch && c.lookahead >= minMatch {
				c.matchLength-- // string at strstart already in hash table
				for {
					c.strstart++
					c.insertString(c.strstart)
					// strstart never exceeds wSize-maxMatch, so there
					// are always minMatch bytes ahead.
					c.matchLength--
					if c.matchLength == 0 {
						break
					}
				}
				c.strstart++
			} else {
				c.strstart += c.matchLength
				c.matchLength = 0
				c.insH = int(c.window[c.strstart])
				c.insH = c.updateHash(c.insH, c.window[c.strstart+1])
				// If lookahead < minMatch, insH is garbage, but it does
				// not matter since it will be recomputed at the next
				// fillWindow.
			}
		} else {
			// No match, output a literal byte.
			bflush = c.tally(0, int(c.window[c.strstart]))
			c.lookahead--
			c.strstart++
		}

		if bflush {
			c.flushBlockOnly(false)
			if c.AvailOut() == 0 {
				return needMore
			}
		}
	}

	c.flushBlockOnly(flush == Finish)
	return c.finishState(flush)
}

// deflateSlow is the lazy evaluation of matches: a match is finally
// adopted only if there is no better match at the next position.
func (c *Compressor) deflateSlow(flush Flush) blockState {
	hashHead := 0 // head of the hash chain

	for {
		// Make sure there is always enough lookahead, except at the end
		// of the input.
		if c.lookahead < minLookahead {
			c.fillWindow()
			if c.lookahead < minLookahead && flush == NoFlush {
				return needMore
			}
			if c.lookahead == 0 {
				break // flush the current block
			}
		}

		if c.lookahead >= minMatch {
			hashHead = c.insertString(c.strstart)
		}

		// Find the longest match, discarding those <= prevLength.
		c.prevLength = c.matchLength
		c.prevMatch = c.matchStart
		c.matchLength = minMatch - 1

		if hashHead != 0 && c.prevLength < c.maxLazyMatch && c.strstart-hashHead <= c.maxDist() {
			if c.strategy != HuffmanOnly {
				c.matchLength = c.longestMatch(hashHead)
			}
			// longestMatch sets matchStart

			if c.matchLength <= 5 && (c.strategy == Filtered ||
				(c.matchLength == minMatch && c.strstart-c.matchStart > tooFar)) {
				// If prevMatch is also minMatch, matchStart is garbage
				// but it will not be used.
				c.matchLength = minMatch - 1
			}
		}

		// If there was a match at the previous step and the current match
		// is not better, output the previous match.
		if c.prevLength >= minMatch && c.matchLength <= c.prevLength {
			maxInsert := c.strstart + c.lookahead - minMatch
			// Do not insert strings in the hash table beyond this.

			bflush := c.tally(c.strstart-1-c.prevMatch, c.prevLength-minMatch)

			// Insert in the hash table all strings up to the end of the
			// match. strstart-1 and strstart are already inserted. If
			// there is not enough lookahead, the last two strings are not
			// inserted.
			c.lookahead -= c.prevLength - 1
			c.prevLength -= 2
			for {
				c.strstart++
				if c.strstart <= maxInsert {
					c.insertString(c.strstart)
				}
				c.prevLength--
				if c.prevLength == 0 {
					break
				}
			}
			c.matchAvailable = false
			c.matchLength = minMatch - 1
			c.strstart++

			if bflush {
				c.flushBlockOnly(false)
				if c.AvailOut() == 0 {
					return needMore
				}
			}
		} else if c.matchAvailable {
			// No better match was found at this position, so output the
			// single literal at the previous position.
			if c.tally(0, int(c.window[c.strstart-1])) {
				c.flushBlockOnly(false)
			}
			c.strstart++
			c.lookahead--
			if c.AvailOut() == 0 {
				return needMore
			}
		} else {
			// There is no previous match to compare with, wait for the
			// next step to decide.
			c.matchAvailable = true
			c.strstart++
			c.lookahead--
		}
	}

	if c.matchAvailable {
		c.tally(0, int(c.window[c.strstart-1]))
		c.matchAvailable = false
	}
	c.flushBlockOnly(flush == Finish)
	return c.finishState(flush)
}
