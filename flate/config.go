package flate

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
	"github.com/hashicorp/go-multierror"
)

// Compression levels accepted by Config.Level and the NewWriter shortcuts.
const (
	NoCompression      = 0
	BestSpeed          = 1
	BestCompression    = 9
	DefaultCompression = -1
)

// Strategy tunes the match selection for particular kinds of input.
type Strategy byte

const (
	// DefaultStrategy is for ordinary data.
	DefaultStrategy Strategy = iota

	// Filtered is for data produced by a filter or predictor: small values
	// with a somewhat random distribution. Short matches are dropped in
	// favor of more Huffman coding.
	Filtered

	// HuffmanOnly disables string matching altogether.
	HuffmanOnly
)

var strategyData = [...]enumhelper.EnumData{
	{GoName: "DefaultStrategy"},
	{GoName: "Filtered"},
	{GoName: "HuffmanOnly"},
}

var strategyText = [...]string{"default", "filtered", "huffman"}

// GoString returns the name of the Go constant.
func (s Strategy) GoString() string {
	return enumhelper.DereferenceEnumData("Strategy", strategyData[:], uint(s)).GoName
}

func (s Strategy) String() string {
	return strategyText[s]
}

// ParseStrategy is the inverse of Strategy.String.
func ParseStrategy(str string) (Strategy, error) {
	for i, name := range strategyText {
		if name == str {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStrategy, str)
}

// Wrap selects the framing around the DEFLATE block stream.
type Wrap byte

const (
	// Raw emits the bare block stream.
	Raw Wrap = iota

	// Zlib adds the two byte zlib header and the Adler-32 trailer.
	Zlib

	// GZIP adds the gzip member header and the CRC-32 and length trailer.
	GZIP
)

var wrapData = [...]enumhelper.EnumData{
	{GoName: "Raw"},
	{GoName: "Zlib"},
	{GoName: "GZIP"},
}

var wrapText = [...]string{"raw", "zlib", "gzip"}

// GoString returns the name of the Go constant.
func (w Wrap) GoString() string {
	return enumhelper.DereferenceEnumData("Wrap", wrapData[:], uint(w)).GoName
}

func (w Wrap) String() string {
	return wrapText[w]
}

// ParseWrap is the inverse of Wrap.String.
func ParseWrap(str string) (Wrap, error) {
	for i, name := range wrapText {
		if name == str {
			return Wrap(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWrap, str)
}

// Flush controls how much pending data Step forces out.
type Flush byte

const (
	// NoFlush lets the compressor decide block boundaries.
	NoFlush Flush = iota

	// PartialFlush ends the current block and emits an empty static block,
	// without byte alignment.
	PartialFlush

	// SyncFlush ends the current block and emits an empty stored block, so
	// the output is byte aligned and everything so far can be decoded.
	SyncFlush

	// FullFlush is a SyncFlush that also forgets the history, so decoding
	// can restart from this point.
	FullFlush

	// Finish ends the stream and emits the trailer.
	Finish
)

var flushData = [...]enumhelper.EnumData{
	{GoName: "NoFlush"},
	{GoName: "PartialFlush"},
	{GoName: "SyncFlush"},
	{GoName: "FullFlush"},
	{GoName: "Finish"},
}

var flushText = [...]string{"none", "partial", "sync", "full", "finish"}

// GoString returns the name of the Go constant.
func (f Flush) GoString() string {
	return enumhelper.DereferenceEnumData("Flush", flushData[:], uint(f)).GoName
}

func (f Flush) String() string {
	return flushText[f]
}

// Status reports why Step returned.
type Status byte

const (
	// NeedInput means all input was consumed and the requested flush, if
	// any, is complete.
	NeedInput Status = iota

	// NeedOutput means the output buffer filled up. Supply more space and
	// call Step again with the same flush mode.
	NeedOutput

	// BlockDone means a PartialFlush, SyncFlush or FullFlush completed.
	BlockDone

	// StreamEnd means the trailer has been fully written.
	StreamEnd
)

var statusData = [...]enumhelper.EnumData{
	{GoName: "NeedInput"},
	{GoName: "NeedOutput"},
	{GoName: "BlockDone"},
	{GoName: "StreamEnd"},
}

var statusText = [...]string{"need-input", "need-output", "block-done", "stream-end"}

// GoString returns the name of the Go constant.
func (s Status) GoString() string {
	return enumhelper.DereferenceEnumData("Status", statusData[:], uint(s)).GoName
}

func (s Status) String() string {
	return statusText[s]
}

// DataType is a guess at the kind of input, made from the literal
// frequencies of the first block.
type DataType byte

const (
	// Binary means a sizable share of the literals are control or
	// non-ASCII bytes.
	Binary DataType = iota

	// Text means the literals are mostly printable ASCII.
	Text

	// Unknown means no block has been compressed yet, or the level is 0.
	Unknown
)

var (
	_ fmt.GoStringer = Strategy(0)
	_ fmt.Stringer   = Wrap(0)
	_ fmt.Stringer   = Flush(0)
	_ fmt.Stringer   = Status(0)
)

// Config holds the parameters of a Compressor. The zero value is a raw
// stream at level 0; use DefaultConfig for the usual zlib settings.
type Config struct {
	// Level is 0-9 or DefaultCompression.
	Level int

	// WindowBits is the base two logarithm of the window size, 9-15.
	// Zero means 15.
	WindowBits int

	// MemLevel sets the size of the hash table and of the per-block event
	// log, 1-9. Zero means 8.
	MemLevel int

	Strategy Strategy
	Wrap     Wrap

	// Header holds optional gzip member fields. It requires Wrap == GZIP.
	Header *Header
}

// DefaultConfig returns the configuration of a default zlib stream.
func DefaultConfig() Config {
	return Config{
		Level:      DefaultCompression,
		WindowBits: maxWindowBits,
		MemLevel:   defMemLevel,
		Wrap:       Zlib,
	}
}

// Validate reports every problem with cfg.
func (cfg Config) Validate() error {
	var errlist []error
	if cfg.Level != DefaultCompression && (cfg.Level < 0 || cfg.Level > 9) {
		errlist = append(errlist, fmt.Errorf("%w: got %d", ErrInvalidLevel, cfg.Level))
	}
	if cfg.WindowBits != 0 && (cfg.WindowBits < minWindowBits || cfg.WindowBits > maxWindowBits) {
		errlist = append(errlist, fmt.Errorf("%w: got %d", ErrInvalidWindowBits, cfg.WindowBits))
	}
	if cfg.MemLevel != 0 && (cfg.MemLevel < 1 || cfg.MemLevel > maxMemLevel) {
		errlist = append(errlist, fmt.Errorf("%w: got %d", ErrInvalidMemLevel, cfg.MemLevel))
	}
	if cfg.Strategy > HuffmanOnly {
		errlist = append(errlist, ErrInvalidStrategy)
	}
	if cfg.Wrap > GZIP {
		errlist = append(errlist, ErrInvalidWrap)
	}
	if cfg.Header != nil {
		if cfg.Wrap != GZIP {
			errlist = append(errlist, ErrHeaderWithoutGZIP)
		}
		errlist = cfg.Header.check(errlist)
	}

	if len(errlist) == 0 {
		return nil
	}
	return &multierror.Error{Errors: errlist}
}

func (cfg Config) normalized() Config {
	if cfg.Level == DefaultCompression {
		cfg.Level = 6
	}
	if cfg.WindowBits == 0 {
		cfg.WindowBits = maxWindowBits
	}
	if cfg.MemLevel == 0 {
		cfg.MemLevel = defMemLevel
	}
	return cfg
}

type tier byte

const (
	tierStored tier = iota
	tierFast
	tierSlow
)

// compressionLevel holds the tuning parameters of one level.
type compressionLevel struct {
	good  int // reduce lazy search above this match length
	lazy  int // do not perform lazy search above this match length
	nice  int // quit search above this match length
	chain int // maximum hash chain length to follow
	tier  tier
}

var levels = [10]compressionLevel{
	{0, 0, 0, 0, tierStored}, // store only
	{4, 4, 8, 4, tierFast},   // maximum speed, no lazy matches
	{4, 5, 16, 8, tierFast},
	{4, 6, 32, 32, tierFast},
	{4, 4, 16, 16, tierSlow}, // lazy matches
	{8, 16, 32, 32, tierSlow},
	{8, 16, 128, 128, tierSlow},
	{8, 32, 128, 256, tierSlow},
	{32, 128, 258, 1024, tierSlow},
	{32, 258, 258, 4096, tierSlow}, // maximum compression
}

// LevelInfo describes the tuning of one compression level.
type LevelInfo struct {
	Level     int    `json:"level"`
	GoodMatch int    `json:"good"`
	LazyMatch int    `json:"lazy"`
	NiceMatch int    `json:"nice"`
	MaxChain  int    `json:"chain"`
	Tier      string `json:"tier"`
}

// Levels describes every compression level.
func Levels() []LevelInfo {
	names := [...]string{"stored", "fast", "slow"}
	out := make([]LevelInfo, len(levels))
	for i, l := range levels {
		out[i] = LevelInfo{
			Level:     i,
			GoodMatch: l.good,
			LazyMatch: l.lazy,
			NiceMatch: l.nice,
			MaxChain:  l.chain,
			Tier:      names[l.tier],
		}
	}
	return out
}
