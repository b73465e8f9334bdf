package checksum

import (
	"encoding"
	"hash"
	"hash/adler32"

	"github.com/chronos-tachyon/assert"
)

const adlerBase = 65521 // largest prime smaller than 65536

// Adler32 is the checksum used by the zlib framing. Its zero value is not
// ready for use; call NewAdler32.
type Adler32 struct {
	h hash.Hash32
}

// NewAdler32 returns an Adler-32 checksum with the initial value 1.
func NewAdler32() *Adler32 {
	return &Adler32{h: adler32.New()}
}

func (a *Adler32) Update(p []byte) {
	a.h.Write(p)
}

func (a *Adler32) Value() uint32 {
	return a.h.Sum32()
}

func (a *Adler32) Reset() {
	a.h.Reset()
}

// Clone copies the running state through the digest's binary encoding.
func (a *Adler32) Clone() Checksum {
	state, err := a.h.(encoding.BinaryMarshaler).MarshalBinary()
	assert.Assertf(err == nil, "adler32: marshal state: %v", err)
	h := adler32.New()
	err = h.(encoding.BinaryUnmarshaler).UnmarshalBinary(state)
	assert.Assertf(err == nil, "adler32: unmarshal state: %v", err)
	return &Adler32{h: h}
}

func (*Adler32) Combine(a, b uint32, lenB int64) uint32 {
	return AdlerCombine(a, b, lenB)
}

// AdlerCombine combines two Adler-32 values. lenB is the length of the data
// that produced b.
func AdlerCombine(a, b uint32, lenB int64) uint32 {
	if lenB < 0 {
		return 0xffffffff
	}
	rem := uint64(lenB % adlerBase)
	sum1 := uint64(a & 0xffff)
	sum2 := (rem * sum1) % adlerBase
	sum1 += uint64(b&0xffff) + adlerBase - 1
	sum2 += uint64(a>>16) + uint64(b>>16) + adlerBase - rem
	if sum1 >= adlerBase {
		sum1 -= adlerBase
	}
	if sum1 >= adlerBase {
		sum1 -= adlerBase
	}
	if sum2 >= adlerBase<<1 {
		sum2 -= adlerBase << 1
	}
	if sum2 >= adlerBase {
		sum2 -= adlerBase
	}
	return uint32(sum1 | sum2<<16)
}
