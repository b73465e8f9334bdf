// Package zpack is a DEFLATE, zlib and gzip compression toolkit.
//
// The compressor itself lives in the flate subpackage. This package holds
// the intermediate representation that lets the LZ77 stage be inspected on
// its own:
//   - a MatchFinder looks for repeated sequences of bytes
//   - an Encoder turns the resulting matches into an output format
//
// flate.NewMatchFinder exposes the exact decisions of the compressor's
// greedy and lazy strategies as a MatchFinder, and TextEncoder renders them
// in readable form.
package zpack

// A Match is the basic unit of LZ77 compression.
type Match struct {
	Unmatched int // the number of unmatched bytes since the previous match
	Length    int // the number of bytes in the matched string; it may be 0 at the end of the input
	Distance  int // how far back in the stream to copy from
}

// A MatchFinder performs the LZ77 stage of compression, looking for matches.
type MatchFinder interface {
	// FindMatches looks for matches in src, appends them to dst, and returns dst.
	// Matches may refer to data passed in earlier calls since the last Reset.
	FindMatches(dst []Match, src []byte) []Match

	// Reset clears any internal state, preparing the MatchFinder to be used with
	// a new stream.
	Reset()
}

// An Encoder encodes the data in its final format.
type Encoder interface {
	// Header appends the appropriate stream header to dst.
	Header(dst []byte) []byte

	// Encode appends the encoded format of src to dst, using the match
	// information from matches.
	Encode(dst []byte, src []byte, matches []Match, lastBlock bool) []byte

	// Reset clears any internal state, preparing the Encoder to be used with
	// a new stream.
	Reset()
}

// Stats summarizes a sequence of matches.
type Stats struct {
	Literals     int // bytes not covered by a match
	Matches      int
	MatchedBytes int
	LongestMatch int
	FarthestBack int
}

// Add accumulates the matches of one block into s.
func (s *Stats) Add(matches []Match) {
	for _, m := range matches {
		s.Literals += m.Unmatched
		if m.Length == 0 {
			continue
		}
		s.Matches++
		s.MatchedBytes += m.Length
		if m.Length > s.LongestMatch {
			s.LongestMatch = m.Length
		}
		if m.Distance > s.FarthestBack {
			s.FarthestBack = m.Distance
		}
	}
}
