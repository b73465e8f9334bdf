package checksum

import "hash/crc32"

// crcPoly is the reflected IEEE polynomial.
const crcPoly = 0xedb88320

// CRC32 is the checksum used by the gzip framing. The zero value is ready for
// use.
type CRC32 struct {
	value uint32
}

// NewCRC32 returns a CRC-32 checksum with the initial value 0.
func NewCRC32() *CRC32 {
	return new(CRC32)
}

func (c *CRC32) Update(p []byte) {
	c.value = crc32.Update(c.value, crc32.IEEETable, p)
}

func (c *CRC32) Value() uint32 {
	return c.value
}

func (c *CRC32) Reset() {
	c.value = 0
}

func (c *CRC32) Clone() Checksum {
	d := *c
	return &d
}

func (*CRC32) Combine(a, b uint32, lenB int64) uint32 {
	return CRCCombine(a, b, lenB)
}

// CRCCombine combines two CRC-32 values by applying lenB zero bytes to a
// with GF(2) matrix squaring, then folding in b.
func CRCCombine(a, b uint32, lenB int64) uint32 {
	if lenB <= 0 {
		return a
	}

	var even, odd [32]uint32

	// operator for one zero bit
	odd[0] = crcPoly
	row := uint32(1)
	for n := 1; n < 32; n++ {
		odd[n] = row
		row <<= 1
	}

	gf2Square(&even, &odd) // two zero bits
	gf2Square(&odd, &even) // four zero bits

	for {
		gf2Square(&even, &odd)
		if lenB&1 != 0 {
			a = gf2Times(&even, a)
		}
		lenB >>= 1
		if lenB == 0 {
			break
		}

		gf2Square(&odd, &even)
		if lenB&1 != 0 {
			a = gf2Times(&odd, a)
		}
		lenB >>= 1
		if lenB == 0 {
			break
		}
	}
	return a ^ b
}

func gf2Times(mat *[32]uint32, vec uint32) uint32 {
	var sum uint32
	for i := 0; vec != 0; i++ {
		if vec&1 != 0 {
			sum ^= mat[i]
		}
		vec >>= 1
	}
	return sum
}

func gf2Square(square, mat *[32]uint32) {
	for n := 0; n < 32; n++ {
		square[n] = gf2Times(mat, mat[n])
	}
}
