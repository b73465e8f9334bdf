package flate

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// Error is the type for the error constants returned by this package.
type Error byte

const (
	// ErrInvalidLevel is returned when the compression level is outside 0-9
	// and is not DefaultCompression.
	ErrInvalidLevel Error = iota

	// ErrInvalidWindowBits is returned when WindowBits is outside 9-15.
	ErrInvalidWindowBits

	// ErrInvalidMemLevel is returned when MemLevel is outside 1-9.
	ErrInvalidMemLevel

	// ErrInvalidStrategy is returned for an unknown Strategy.
	ErrInvalidStrategy

	// ErrInvalidWrap is returned for an unknown Wrap.
	ErrInvalidWrap

	// ErrInvalidFlush is returned by Step for an unknown Flush mode.
	ErrInvalidFlush

	// ErrHeaderWithoutGZIP is returned when a gzip Header is configured for
	// a stream that is not gzip-wrapped.
	ErrHeaderWithoutGZIP

	// ErrDictionaryState is returned by SetDictionary once the stream has
	// started.
	ErrDictionaryState

	// ErrDictionaryGZIP is returned by SetDictionary on a gzip stream, which
	// has no way to signal a preset dictionary.
	ErrDictionaryGZIP

	// ErrStreamFinished is returned when input or a non-finishing flush is
	// supplied after Finish.
	ErrStreamFinished

	// ErrNoOutputSpace is returned by Step when it is called with an empty
	// output buffer.
	ErrNoOutputSpace

	// ErrStreamIncomplete is returned by End when the stream was abandoned
	// in the middle of a block.
	ErrStreamIncomplete

	// ErrClosed is returned when a Compressor or Writer is used after End
	// or Close.
	ErrClosed
)

var errorData = [...]enumhelper.EnumData{
	{GoName: "ErrInvalidLevel"},
	{GoName: "ErrInvalidWindowBits"},
	{GoName: "ErrInvalidMemLevel"},
	{GoName: "ErrInvalidStrategy"},
	{GoName: "ErrInvalidWrap"},
	{GoName: "ErrInvalidFlush"},
	{GoName: "ErrHeaderWithoutGZIP"},
	{GoName: "ErrDictionaryState"},
	{GoName: "ErrDictionaryGZIP"},
	{GoName: "ErrStreamFinished"},
	{GoName: "ErrNoOutputSpace"},
	{GoName: "ErrStreamIncomplete"},
	{GoName: "ErrClosed"},
}

var errorText = [...]string{
	"compression level must be between 0 and 9",
	"window bits must be between 9 and 15",
	"memory level must be between 1 and 9",
	"unknown compression strategy",
	"unknown stream wrapping",
	"unknown flush mode",
	"gzip header set on a stream without gzip wrapping",
	"dictionary must be set before any input is compressed",
	"preset dictionaries are not supported by the gzip format",
	"stream already finished",
	"no output space available",
	"stream ended in the middle of a block",
	"compressor is closed",
}

// GoString returns the name of the Go constant.
func (err Error) GoString() string {
	return enumhelper.DereferenceEnumData("Error", errorData[:], uint(err)).GoName
}

// Error returns the error message for this error.
func (err Error) Error() string {
	return errorText[err]
}

var _ fmt.GoStringer = Error(0)
var _ error = Error(0)
