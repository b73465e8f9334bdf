// Package checksum provides the running checksums used by the zlib and gzip
// framings: Adler-32 (RFC 1950) and CRC-32 (RFC 1952).
package checksum

// A Checksum is a running checksum over a byte stream.
type Checksum interface {
	// Update adds p to the running checksum.
	Update(p []byte)

	// Value returns the checksum of everything passed to Update since the
	// last Reset.
	Value() uint32

	// Reset restores the checksum to its initial value.
	Reset()

	// Combine returns the checksum of the concatenation of two streams,
	// given the checksum a of the first, the checksum b of the second, and
	// the length of the second.
	Combine(a, b uint32, lenB int64) uint32

	// Clone returns an independent copy of the running state.
	Clone() Checksum
}
