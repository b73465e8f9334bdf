package flate

// longestMatch walks the hash chain starting at curMatch and returns the
// length of the longest match at strstart, setting matchStart to its
// position. A match is only reported if it is longer than prevLength.
// The result is clamped to the lookahead.
func (c *Compressor) longestMatch(curMatch int) int {
	chainLength := c.maxChainLength // max hash chain length
	scan := c.strstart              // current string
	bestLen := c.prevLength         // best match length so far
	niceMatch := c.niceMatch        // stop if match long enough
	window := c.window
	wMask := c.wMask

	// Stop when curMatch becomes <= limit. To simplify the code, a match
	// with position 0 is never reported.
	limit := 0
	if c.strstart > c.maxDist() {
		limit = c.strstart - c.maxDist()
	}

	strend := c.strstart + maxMatch
	scanEnd1 := window[scan+bestLen-1]
	scanEnd := window[scan+bestLen]

	// Do not waste too much time if we already have a good match.
	if c.prevLength >= c.goodMatch {
		chainLength >>= 2
	}
	// Do not look for matches beyond the end of the input.
	if niceMatch > c.lookahead {
		niceMatch = c.lookahead
	}

	for {
		match := curMatch

		// Skip to the next match if the match length cannot increase or
		// if the match length is less than 2.
		if window[match+bestLen] == scanEnd &&
			window[match+bestLen-1] == scanEnd1 &&
			window[match] == window[scan] &&
			window[match+1] == window[scan+1] {

			// The third byte is not compared: equal hash keys with at
			// least 8 hash bits and equal first two bytes imply it is
			// equal too.
			s := scan + 3
			m := match + 3
			for s < strend && window[s] == window[m] {
				s++
				m++
			}

			l := s - scan
			if l > bestLen {
				c.matchStart = curMatch
				bestLen = l
				if l >= niceMatch {
					break
				}
				scanEnd1 = window[scan+bestLen-1]
				scanEnd = window[scan+bestLen]
			}
		}

		curMatch = int(c.prev[curMatch&wMask])
		if curMatch <= limit {
			break
		}
		chainLength--
		if chainLength == 0 {
			break
		}
	}

	if bestLen <= c.lookahead {
		return bestLen
	}
	return c.lookahead
}
