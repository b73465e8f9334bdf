package flate

import (
	"math/bits"

	"github.com/chronos-tachyon/assert"
)

// extra bits for each length code
var extraLBits = [lengthCodes]int{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0}

// extra bits for each distance code
var extraDBits = [dCodes]int{0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13}

// extra bits for each bit length code
var extraBLBits = [blCodes]int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 3, 7}

// The lengths of the bit length codes are sent in order of decreasing
// probability, to avoid transmitting the lengths for unused bit length codes.
var blOrder = [blCodes]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

var (
	// lengthCode maps a match length minus minMatch to its length code.
	lengthCode [maxMatch - minMatch + 1]uint8

	// distCode maps distances 0-255 directly, and the top 8 bits of
	// larger 15 bit distances through distCode[256:].
	distCode [512]uint8

	baseLength [lengthCodes]int
	baseDist   [dCodes]int

	// The static literal tree has codes for 288 symbols; 286 and 287 are
	// never used but take part in the canonical code construction.
	staticLTree [lCodes + 2]treeNode
	staticDTree [dCodes]treeNode
)

// A treeNode is one node of a Huffman tree. Leaves are indexed by symbol;
// internal nodes follow them.
type treeNode struct {
	freq uint16 // frequency count
	code uint16 // bit string, reversed
	dad  uint16 // parent node in the Huffman tree
	len  uint16 // length of bit string
}

type staticTreeDesc struct {
	tree      []treeNode // static tree or nil
	extraBits []int      // extra bits for each code or nil
	extraBase int        // base index for extraBits
	elems     int        // max number of elements in the tree
	maxLength int        // max bit length for the codes
}

var (
	staticLDesc  = staticTreeDesc{staticLTree[:], extraLBits[:], literals + 1, lCodes, maxBits}
	staticDDesc  = staticTreeDesc{staticDTree[:], extraDBits[:], 0, dCodes, maxBits}
	staticBLDesc = staticTreeDesc{nil, extraBLBits[:], 0, blCodes, maxBLBits}
)

type treeDesc struct {
	dynTree []treeNode
	maxCode int // largest code with non zero frequency
	stat    *staticTreeDesc
}

func init() {
	length := 0
	code := 0
	for code = 0; code < lengthCodes-1; code++ {
		baseLength[code] = length
		for n := 0; n < 1<<extraLBits[code]; n++ {
			lengthCode[length] = uint8(code)
			length++
		}
	}
	// Length 258 can be coded as 255+3 with code 27 or as 258 with code 28;
	// the latter wins.
	lengthCode[length-1] = uint8(code)

	dist := 0
	for code = 0; code < 16; code++ {
		baseDist[code] = dist
		for n := 0; n < 1<<extraDBits[code]; n++ {
			distCode[dist] = uint8(code)
			dist++
		}
	}
	dist >>= 7 // from now on, all distances are divided by 128
	for ; code < dCodes; code++ {
		baseDist[code] = dist << 7
		for n := 0; n < 1<<(extraDBits[code]-7); n++ {
			distCode[256+dist] = uint8(code)
			dist++
		}
	}

	var blCount [maxBits + 1]int
	n := 0
	for ; n <= 143; n++ {
		staticLTree[n].len = 8
		blCount[8]++
	}
	for ; n <= 255; n++ {
		staticLTree[n].len = 9
		blCount[9]++
	}
	for ; n <= 279; n++ {
		staticLTree[n].len = 7
		blCount[7]++
	}
	for ; n <= 287; n++ {
		staticLTree[n].len = 8
		blCount[8]++
	}
	genCodes(staticLTree[:], lCodes+1, blCount[:])

	for n := 0; n < dCodes; n++ {
		staticDTree[n].len = 5
		staticDTree[n].code = biReverse(n, 5)
	}
}

// dCode returns the distance code for dist, which is the match distance
// minus one.
func dCode(dist int) int {
	if dist < 256 {
		return int(distCode[dist])
	}
	return int(distCode[256+dist>>7])
}

// biReverse reverses the low n bits of code.
func biReverse(code, n int) uint16 {
	return bits.Reverse16(uint16(code)) >> (16 - n)
}

// genCodes assigns canonical codes to the symbols 0-maxCode of tree, given
// the number of codes of each bit length.
func genCodes(tree []treeNode, maxCode int, blCount []int) {
	var nextCode [maxBits + 1]int
	code := 0
	for b := 1; b <= maxBits; b++ {
		code = (code + blCount[b-1]) << 1
		nextCode[b] = code
	}
	assert.Assertf(code+blCount[maxBits]-1 == (1<<maxBits)-1, "inconsistent bit counts")

	for n := 0; n <= maxCode; n++ {
		l := int(tree[n].len)
		if l == 0 {
			continue
		}
		tree[n].code = biReverse(nextCode[l], l)
		nextCode[l]++
	}
}

// smaller compares two nodes, using the subtree depth as a tie breaker when
// the frequencies are equal.
func smaller(tree []treeNode, n, m int, depth *[heapSize]uint8) bool {
	return tree[n].freq < tree[m].freq ||
		(tree[n].freq == tree[m].freq && depth[n] <= depth[m])
}

// pqDownHeap restores the heap property by moving down the tree, starting
// at node k.
func (c *Compressor) pqDownHeap(tree []treeNode, k int) {
	v := c.heap[k]
	j := k << 1 // left son of k
	for j <= c.heapLen {
		if j < c.heapLen && smaller(tree, c.heap[j+1], c.heap[j], &c.depth) {
			j++
		}
		if smaller(tree, v, c.heap[j], &c.depth) {
			break
		}
		c.heap[k] = c.heap[j]
		k = j
		j <<= 1
	}
	c.heap[k] = v
}

// genBitlen computes the optimal bit lengths for a tree and updates the
// total bit length for the current block. On entry, heap[heapMax:] holds
// the nodes sorted by increasing frequency and every dad field is set.
// Lengths above the tree's maximum are clamped and the counts rebalanced.
func (c *Compressor) genBitlen(desc *treeDesc) {
	tree := desc.dynTree
	maxCode := desc.maxCode
	stree := desc.stat.tree
	extra := desc.stat.extraBits
	base := desc.stat.extraBase
	maxLength := desc.stat.maxLength
	overflow := 0

	for b := range c.blCount {
		c.blCount[b] = 0
	}

	// The root of the heap has length 0.
	tree[c.heap[c.heapMax]].len = 0

	h := c.heapMax + 1
	for ; h < heapSize; h++ {
		n := c.heap[h]
		b := int(tree[tree[n].dad].len) + 1
		if b > maxLength {
			b = maxLength
			overflow++
		}
		tree[n].len = uint16(b)

		if n > maxCode {
			continue // not a leaf node
		}

		c.blCount[b]++
		xbits := 0
		if n >= base {
			xbits = extra[n-base]
		}
		f := int(tree[n].freq)
		c.optLen += f * (b + xbits)
		if stree != nil {
			c.staticLen += f * (int(stree[n].len) + xbits)
		}
	}
	if overflow == 0 {
		return
	}

	printf("bit length overflow: %d leaves", overflow)
	for overflow > 0 {
		b := maxLength - 1
		for c.blCount[b] == 0 {
			b--
		}
		c.blCount[b]--      // move one leaf down the tree
		c.blCount[b+1] += 2 // move one overflow item as its brother
		c.blCount[maxLength]--
		// The brother of the overflow item also moves one step up, but
		// this does not affect blCount[maxLength].
		overflow -= 2
	}

	// Recompute all bit lengths, scanning in increasing frequency.
	for b := maxLength; b != 0; b-- {
		n := c.blCount[b]
		for n != 0 {
			h--
			m := c.heap[h]
			if m > maxCode {
				continue
			}
			if int(tree[m].len) != b {
				c.optLen += (b - int(tree[m].len)) * int(tree[m].freq)
				tree[m].len = uint16(b)
			}
			n--
		}
	}
}

// buildTree constructs the Huffman tree for desc and assigns the codes.
// It updates optLen and staticLen and sets desc.maxCode.
func (c *Compressor) buildTree(desc *treeDesc) {
	tree := desc.dynTree
	stree := desc.stat.tree
	elems := desc.stat.elems
	maxCode := -1

	// Construct the initial heap, with the least frequent element in
	// heap[1]. heap[0] is not used.
	c.heapLen = 0
	c.heapMax = heapSize
	for n := 0; n < elems; n++ {
		if tree[n].freq != 0 {
			c.heapLen++
			c.heap[c.heapLen] = n
			maxCode = n
			c.depth[n] = 0
		} else {
			tree[n].len = 0
		}
	}

	// The format requires at least one distance code, and at least one bit
	// must be generated even when there is a single symbol, so force at
	// least two codes of non zero frequency.
	for c.heapLen < 2 {
		node := 0
		if maxCode < 2 {
			maxCode++
			node = maxCode
		}
		c.heapLen++
		c.heap[c.heapLen] = node
		tree[node].freq = 1
		c.depth[node] = 0
		c.optLen--
		if stree != nil {
			c.staticLen -= int(stree[node].len)
		}
		// node is 0 or 1 so it has no extra bits
	}
	desc.maxCode = maxCode

	// The elements heap[heapLen/2+1 .. heapLen] are leaves of the tree;
	// establish sub-heaps of increasing lengths.
	for n := c.heapLen / 2; n >= 1; n-- {
		c.pqDownHeap(tree, n)
	}

	// Repeatedly combine the two least frequent nodes.
	node := elems
	for {
		n := c.heap[1]
		c.heap[1] = c.heap[c.heapLen]
		c.heapLen--
		c.pqDownHeap(tree, 1)
		m := c.heap[1]

		// keep the nodes sorted by frequency
		c.heapMax--
		c.heap[c.heapMax] = n
		c.heapMax--
		c.heap[c.heapMax] = m

		tree[node].freq = tree[n].freq + tree[m].freq
		d := c.depth[n]
		if c.depth[m] > d {
			d = c.depth[m]
		}
		c.depth[node] = d + 1
		tree[n].dad = uint16(node)
		tree[m].dad = uint16(node)

		c.heap[1] = node
		node++
		c.pqDownHeap(tree, 1)

		if c.heapLen < 2 {
			break
		}
	}
	c.heapMax--
	c.heap[c.heapMax] = c.heap[1]

	c.genBitlen(desc)
	genCodes(tree, maxCode, c.blCount[:])
}

// scanTree counts the bit length codes needed to send tree in compressed
// form.
func (c *Compressor) scanTree(tree []treeNode, maxCode int) {
	prevLen := -1
	nextLen := int(tree[0].len)
	count := 0
	maxCount, minCount := 7, 4
	if nextLen == 0 {
		maxCount, minCount = 138, 3
	}
	tree[maxCode+1].len = 0xffff // guard

	for n := 0; n <= maxCode; n++ {
		curLen := nextLen
		nextLen = int(tree[n+1].len)
		count++
		if count < maxCount && curLen == nextLen {
			continue
		} else if count < minCount {
			c.blTree[curLen].freq += uint16(count)
		} else if curLen != 0 {
			if curLen != prevLen {
				c.blTree[curLen].freq++
			}
			c.blTree[rep3To6].freq++
		} else if count <= 10 {
			c.blTree[repZero3To10].freq++
		} else {
			c.blTree[repZero11To138].freq++
		}
		count = 0
		prevLen = curLen
		switch {
		case nextLen == 0:
			maxCount, minCount = 138, 3
		case curLen == nextLen:
			maxCount, minCount = 6, 3
		default:
			maxCount, minCount = 7, 4
		}
	}
}

// sendTree sends tree in compressed form using the codes in blTree.
func (c *Compressor) sendTree(tree []treeNode, maxCode int) {
	prevLen := -1
	nextLen := int(tree[0].len)
	count := 0
	maxCount, minCount := 7, 4
	if nextLen == 0 {
		maxCount, minCount = 138, 3
	}

	// tree[maxCode+1].len was set to the guard value by scanTree.
	for n := 0; n <= maxCode; n++ {
		curLen := nextLen
		nextLen = int(tree[n+1].len)
		count++
		if count < maxCount && curLen == nextLen {
			continue
		} else if count < minCount {
			for ; count != 0; count-- {
				c.sendCode(curLen, c.blTree[:])
			}
		} else if curLen != 0 {
			if curLen != prevLen {
				c.sendCode(curLen, c.blTree[:])
				count--
			}
			c.sendCode(rep3To6, c.blTree[:])
			c.sendBits(count-3, 2)
		} else if count <= 10 {
			c.sendCode(repZero3To10, c.blTree[:])
			c.sendBits(count-3, 3)
		} else {
			c.sendCode(repZero11To138, c.blTree[:])
			c.sendBits(count-11, 7)
		}
		count = 0
		prevLen = curLen
		switch {
		case nextLen == 0:
			maxCount, minCount = 138, 3
		case curLen == nextLen:
			maxCount, minCount = 6, 3
		default:
			maxCount, minCount = 7, 4
		}
	}
}

// buildBLTree builds the bit length tree for the literal and distance trees
// and returns the index in blOrder of the last bit length code to send.
func (c *Compressor) buildBLTree() int {
	c.scanTree(c.dynLTree[:], c.lDesc.maxCode)
	c.scanTree(c.dynDTree[:], c.dDesc.maxCode)

	c.buildTree(&c.blDesc)
	// optLen now includes the length of the tree representations, except
	// the lengths of the bit length codes and the 5+5+4 bits for the
	// counts.

	// At least 4 bit length codes are always sent.
	maxBLIndex := blCodes - 1
	for ; maxBLIndex >= 3; maxBLIndex-- {
		if c.blTree[blOrder[maxBLIndex]].len != 0 {
			break
		}
	}
	c.optLen += 3*(maxBLIndex+1) + 5 + 5 + 4
	return maxBLIndex
}

// sendAllTrees sends the header of a dynamic block: the counts, the bit
// length codes, then the literal and distance trees.
func (c *Compressor) sendAllTrees(lcodes, dcodes, blcodes int) {
	assert.Assertf(lcodes >= 257 && dcodes >= 1 && blcodes >= 4, "not enough codes: %d %d %d", lcodes, dcodes, blcodes)
	assert.Assertf(lcodes <= lCodes && dcodes <= dCodes && blcodes <= blCodes, "too many codes: %d %d %d", lcodes, dcodes, blcodes)

	c.sendBits(lcodes-257, 5)
	c.sendBits(dcodes-1, 5)
	c.sendBits(blcodes-4, 4)
	for rank := 0; rank < blcodes; rank++ {
		c.sendBits(int(c.blTree[blOrder[rank]].len), 3)
	}
	c.sendTree(c.dynLTree[:], lcodes-1)
	c.sendTree(c.dynDTree[:], dcodes-1)
}
