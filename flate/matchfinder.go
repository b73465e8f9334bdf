package flate

import "github.com/zarghol/zpack"

// NewMatchFinder returns a zpack.MatchFinder that reports the decisions the
// Compressor makes at the given level. Each call to FindMatches compresses
// its block followed by a sync flush, so matches may reach back into
// earlier blocks but never span a block boundary.
func NewMatchFinder(level int) zpack.MatchFinder {
	c, err := NewCompressor(Config{Level: clampLevel(level), Wrap: Raw})
	if err != nil {
		panic(err)
	}
	m := &matchFinder{
		c:       c,
		scratch: make([]byte, outputBufferSize),
	}
	c.onTally = m.record
	return m
}

type matchFinder struct {
	c         *Compressor
	scratch   []byte
	matches   []zpack.Match
	unmatched int
	covered   int // bytes of the current block reported so far
}

func (m *matchFinder) record(dist, lc int) {
	if dist == 0 {
		m.unmatched++
		m.covered++
		return
	}
	m.covered += lc + minMatch
	m.matches = append(m.matches, zpack.Match{
		Unmatched: m.unmatched,
		Length:    lc + minMatch,
		Distance:  dist,
	})
	m.unmatched = 0
}

func (m *matchFinder) FindMatches(dst []zpack.Match, src []byte) []zpack.Match {
	m.matches = dst
	m.unmatched = 0
	m.covered = 0

	m.c.SetInput(src)
	for {
		m.c.SetOutput(m.scratch)
		st, err := m.c.Step(SyncFlush)
		if err != nil || st != NeedOutput {
			break
		}
	}
	m.c.SetInput(nil)

	// Level 0 stores blocks without looking for matches.
	m.unmatched += len(src) - m.covered
	if m.unmatched > 0 {
		m.matches = append(m.matches, zpack.Match{Unmatched: m.unmatched})
		m.unmatched = 0
	}
	dst, m.matches = m.matches, nil
	return dst
}

func (m *matchFinder) Reset() {
	m.c.Reset()
	m.matches = nil
	m.unmatched = 0
	m.covered = 0
}
