package flate

import "github.com/chronos-tachyon/assert"

// bufSize is the number of bits in the bit buffer.
const bufSize = 16

func (c *Compressor) putByte(b byte) {
	c.pending = append(c.pending, b)
}

// putShort appends w least significant byte first.
func (c *Compressor) putShort(w uint16) {
	c.pending = append(c.pending, byte(w), byte(w>>8))
}

// putShortMSB appends w most significant byte first, as the zlib framing
// requires.
func (c *Compressor) putShortMSB(w uint16) {
	c.pending = append(c.pending, byte(w>>8), byte(w))
}

func (c *Compressor) putUint32LE(v uint32) {
	c.pending = append(c.pending, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// sendBits appends the low length bits of value to the bit buffer, least
// significant bit first.
func (c *Compressor) sendBits(value, length int) {
	if debugAsserts {
		assert.Assertf(length > 0 && length <= 15, "invalid length %d", length)
		assert.Assertf(value >= 0 && value < 1<<length, "value %d does not fit in %d bits", value, length)
	}
	if c.biValid > bufSize-length {
		c.biBuf |= uint16(value << c.biValid)
		c.putShort(c.biBuf)
		c.biBuf = uint16(value >> (bufSize - c.biValid))
		c.biValid += length - bufSize
	} else {
		c.biBuf |= uint16(value << c.biValid)
		c.biValid += length
	}
}

func (c *Compressor) sendCode(sym int, tree []treeNode) {
	c.sendBits(int(tree[sym].code), int(tree[sym].len))
}

// biFlush moves any complete bytes from the bit buffer to the pending
// buffer.
func (c *Compressor) biFlush() {
	if c.biValid == 16 {
		c.putShort(c.biBuf)
		c.biBuf = 0
		c.biValid = 0
	} else if c.biValid >= 8 {
		c.putByte(byte(c.biBuf))
		c.biBuf >>= 8
		c.biValid -= 8
	}
}

// biWindup flushes the bit buffer and aligns the output on a byte
// boundary.
func (c *Compressor) biWindup() {
	if c.biValid > 8 {
		c.putShort(c.biBuf)
	} else if c.biValid > 0 {
		c.putByte(byte(c.biBuf))
	}
	c.biBuf = 0
	c.biValid = 0
}

// copyBlock copies a stored block from the window, storing first the
// length and its one's complement if requested.
func (c *Compressor) copyBlock(buf, length int, header bool) {
	c.biWindup()
	c.lastEOBLen = 8 // enough lookahead for inflate

	if header {
		c.putShort(uint16(length))
		c.putShort(^uint16(length))
	}
	c.pending = append(c.pending, c.window[buf:buf+length]...)
}

func (c *Compressor) pendingLen() int {
	return len(c.pending) - c.pendingOut
}

// flushPending copies as much pending output as fits into the caller's
// output buffer.
func (c *Compressor) flushPending() {
	n := copy(c.out[c.outPos:], c.pending[c.pendingOut:])
	if n == 0 {
		return
	}
	c.outPos += n
	c.pendingOut += n
	c.totalOut += int64(n)
	if c.pendingOut == len(c.pending) {
		c.pending = c.pending[:0]
		c.pendingOut = 0
	}
}
