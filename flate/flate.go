// Package flate implements a resumable DEFLATE (RFC 1951) compressor with
// optional zlib (RFC 1950) and gzip (RFC 1952) framing.
//
// The Compressor is a state machine driven by the caller: input and output
// slices are handed to it with SetInput and SetOutput, and each call to Step
// makes as much progress as the buffers allow. Writer wraps the same state
// machine in an io.WriteCloser.
package flate

import "log"

// enable debug printing
const debugDeflate = false

// Enable extra assertions.
const debugAsserts = debugDeflate || false

const (
	minMatch     = 3
	maxMatch     = 258
	minLookahead = maxMatch + minMatch + 1

	maxBits     = 15
	maxBLBits   = 7
	lengthCodes = 29
	literals    = 256
	lCodes      = literals + 1 + lengthCodes
	dCodes      = 30
	blCodes     = 19
	heapSize    = 2*lCodes + 1
	endBlock    = 256
)

const (
	// repeat previous bit length 3-6 times (2 bits of repeat count)
	rep3To6 = 16
	// repeat a zero length 3-10 times (3 bits of repeat count)
	repZero3To10 = 17
	// repeat a zero length 11-138 times (7 bits of repeat count)
	repZero11To138 = 18
)

const (
	storedBlock = 0
	staticTrees = 1
	dynTrees    = 2
)

// tooFar is the distance beyond which a match of minimum length is dropped
// by the lazy evaluator.
const tooFar = 4096

const (
	deflated   = 8
	presetDict = 0x20

	minWindowBits = 9
	maxWindowBits = 15
	maxMemLevel   = 9
	defMemLevel   = 8
)

// Compressor states.
const (
	endedState  = 0
	initState   = 42
	busyState   = 113
	finishState = 666
)

func println(a ...interface{}) {
	if debugDeflate {
		log.Println(a...)
	}
}

func printf(format string, a ...interface{}) {
	if debugDeflate {
		log.Printf(format, a...)
	}
}
