package preprocessor

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectiveSequence is an #elif or #else where the current block
	// takes no further branches.
	ErrDirectiveSequence = errors.New("directive out of sequence")
	// ErrMalformedDirective is an #if or #elif not directly followed by a value.
	ErrMalformedDirective = errors.New("malformed directive")
	// ErrUnmatchedEndif is an #endif with no open #if.
	ErrUnmatchedEndif = errors.New("unmatched #endif")
	// ErrMismatchedNesting is input ending with #if blocks still open.
	ErrMismatchedNesting = errors.New("mismatched #if/#endif count")
	// ErrArity is a segment count that is not the value count plus one.
	ErrArity = errors.New("segment/value count mismatch")
)

// DirectiveError locates a preprocessing failure. Segment is the index of
// the literal segment holding the directive and Offset its byte offset in
// that segment; both are -1 when the failure has no location.
type DirectiveError struct {
	Kind      error
	Directive string
	Segment   int
	Offset    int
	Depth     int
	Detail    string
}

func (e *DirectiveError) Error() string {
	var msg string
	switch e.Kind {
	case ErrDirectiveSequence:
		msg = fmt.Sprintf("%s not preceded by an #if or #elif", e.Directive)
	case ErrMalformedDirective:
		msg = fmt.Sprintf("%s must be immediately followed by a value", e.Directive)
	case ErrUnmatchedEndif:
		msg = fmt.Sprintf("%s not preceded by an #if", e.Directive)
	case ErrMismatchedNesting:
		msg = fmt.Sprintf("unclosed %s (%d still open)", e.Directive, e.Depth)
	default:
		msg = e.Kind.Error()
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Segment < 0 {
		return msg
	}
	return fmt.Sprintf("segment %d, offset %d: %s", e.Segment, e.Offset, msg)
}

func (e *DirectiveError) Unwrap() error { return e.Kind }

func arityDetail(segments, values int) string {
	return fmt.Sprintf("%d segments for %d values", segments, values)
}
