package flate

import (
	"errors"
	"fmt"
	"hash/crc32"
	"math"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// OSUnknown is the gzip OS value for an unknown operating system.
const OSUnknown = 255

// gzip FLG bits
const (
	flagText    = 0x01
	flagHdrCRC  = 0x02
	flagExtra   = 0x04
	flagName    = 0x08
	flagComment = 0x10
)

// A Header holds the optional fields of a gzip member header.
type Header struct {
	Text      bool      // the input is probably text
	ModTime   time.Time // modification time; zero means none
	OS        byte      // operating system, OSUnknown if not known
	Extra     []byte    // extra field, written when non-nil
	Name      string    // original file name, Latin-1 representable
	Comment   string    // comment, Latin-1 representable
	HeaderCRC bool      // append a CRC-16 of the header
}

// NewHeader returns an empty Header with the OS set to OSUnknown.
func NewHeader() *Header {
	return &Header{OS: OSUnknown}
}

// Validate reports every problem with h.
func (h *Header) Validate() error {
	errlist := h.check(nil)
	if len(errlist) == 0 {
		return nil
	}
	return &multierror.Error{Errors: errlist}
}

func (h *Header) check(errlist []error) []error {
	errlist = checkHeaderString("Header.Name", h.Name, errlist)
	errlist = checkHeaderString("Header.Comment", h.Comment, errlist)
	if len(h.Extra) > math.MaxUint16 {
		errlist = append(errlist, fmt.Errorf("Header.Extra is %d bytes, which is beyond uint16_t", len(h.Extra)))
	}
	if !h.ModTime.IsZero() {
		if t := h.ModTime.Unix(); t < 0 || t > math.MaxUint32 {
			errlist = append(errlist, errors.New("Header.ModTime is out of range for unsigned 32-bit time_t"))
		}
	}
	return errlist
}

func checkHeaderString(field, s string, errlist []error) []error {
	if strings.IndexByte(s, 0) >= 0 {
		errlist = append(errlist, fmt.Errorf("%s contains embedded NUL byte", field))
	}
	for _, r := range s {
		if r > 0xff {
			errlist = append(errlist, fmt.Errorf("%s is not representable in Latin-1", field))
			break
		}
	}
	return errlist
}

func appendLatin1Z(dst []byte, s string) []byte {
	for _, r := range s {
		dst = append(dst, byte(r))
	}
	return append(dst, 0)
}

// gzipXFL returns the XFL byte: 2 for maximum compression, 4 for the
// fastest.
func gzipXFL(level int, strategy Strategy) byte {
	if level == 9 {
		return 2
	}
	if strategy == HuffmanOnly || level < 2 {
		return 4
	}
	return 0
}

// writeGZIPHeader emits the member header: magic number, method, flags,
// mtime, XFL, OS and the optional fields.
func (c *Compressor) writeGZIPHeader() {
	start := len(c.pending)
	h := c.header

	var flags byte
	var mtime uint32
	var os byte = OSUnknown
	if h != nil {
		if h.Text {
			flags |= flagText
		}
		if h.HeaderCRC {
			flags |= flagHdrCRC
		}
		if h.Extra != nil {
			flags |= flagExtra
		}
		if h.Name != "" {
			flags |= flagName
		}
		if h.Comment != "" {
			flags |= flagComment
		}
		if !h.ModTime.IsZero() {
			mtime = uint32(h.ModTime.Unix())
		}
		os = h.OS
	}

	c.pending = append(c.pending,
		0x1f, 0x8b, // magic number
		deflated, // CM
		flags,    // FLG
	)
	c.putUint32LE(mtime)
	c.pending = append(c.pending,
		gzipXFL(c.level, c.strategy),
		os,
	)

	if h != nil {
		if h.Extra != nil {
			c.putShort(uint16(len(h.Extra)))
			c.pending = append(c.pending, h.Extra...)
		}
		if h.Name != "" {
			c.pending = appendLatin1Z(c.pending, h.Name)
		}
		if h.Comment != "" {
			c.pending = appendLatin1Z(c.pending, h.Comment)
		}
		if h.HeaderCRC {
			c.putShort(uint16(crc32.ChecksumIEEE(c.pending[start:])))
		}
	}
	c.sum.Reset()
}

// writeGZIPTrailer emits the CRC-32 of the input and its length modulo
// 2^32, both little endian.
func (c *Compressor) writeGZIPTrailer() {
	c.putUint32LE(c.sum.Value())
	c.putUint32LE(uint32(c.totalIn))
}
