package flate

// writeHeader emits the framing header for the configured wrapping.
func (c *Compressor) writeHeader() {
	switch c.wrap {
	case Zlib:
		c.writeZlibHeader()
	case GZIP:
		c.writeGZIPHeader()
	}
}

// writeTrailer emits the framing trailer for the configured wrapping.
func (c *Compressor) writeTrailer() {
	switch c.wrap {
	case Zlib:
		sum := c.sum.Value()
		c.putShortMSB(uint16(sum >> 16))
		c.putShortMSB(uint16(sum))
	case GZIP:
		c.writeGZIPTrailer()
	}
}

// zlibLevelFlags returns the FLEVEL field, a hint of how the stream was
// compressed.
func zlibLevelFlags(level int, strategy Strategy) int {
	switch {
	case strategy == HuffmanOnly || level < 2:
		return 0 // fastest
	case level < 6:
		return 1 // fast
	case level == 6:
		return 2 // default
	default:
		return 3 // maximum compression
	}
}

// writeZlibHeader emits CMF and FLG, followed by the dictionary id when a
// dictionary was set.
func (c *Compressor) writeZlibHeader() {
	header := (deflated + (c.wBits-8)<<4) << 8
	header |= zlibLevelFlags(c.level, c.strategy) << 6
	if c.strstart != 0 {
		header |= presetDict
	}
	header += 31 - header%31

	c.putShortMSB(uint16(header))
	if c.strstart != 0 {
		c.putShortMSB(uint16(c.dictID >> 16))
		c.putShortMSB(uint16(c.dictID))
	}
	c.sum.Reset()
}
