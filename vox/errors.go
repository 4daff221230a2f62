package vox

import (
	"strconv"
	"strings"
)

// Kind categorizes a FormatError.
type Kind string

const (
	KindBadMagic     Kind = "bad_magic"
	KindBadRootChunk Kind = "bad_root_chunk"
	KindTruncated    Kind = "truncated"
	KindUTF8         Kind = "utf8_decode"
	KindNumberFormat Kind = "number_format"
	KindMalformed    Kind = "malformed"
)

// FormatError reports why a byte stream could not be decoded as a .vox file.
// Every FormatError is fatal; Decode never returns a partial scene with it.
type FormatError struct {
	Cause  error
	Kind   Kind
	Chunk  string
	Detail string
	Offset int64
}

// Sentinels for errors.Is. They match any FormatError of the same Kind.
var (
	ErrBadMagic     = &FormatError{Kind: KindBadMagic}
	ErrBadRootChunk = &FormatError{Kind: KindBadRootChunk}
	ErrTruncated    = &FormatError{Kind: KindTruncated}
	ErrUTF8         = &FormatError{Kind: KindUTF8}
	ErrNumberFormat = &FormatError{Kind: KindNumberFormat}
	ErrMalformed    = &FormatError{Kind: KindMalformed}
)

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("vox: ")
	b.WriteString(string(e.Kind))
	if e.Chunk != "" {
		b.WriteString(" in ")
		b.WriteString(e.Chunk)
	}
	b.WriteString(" at offset ")
	b.WriteString(strconv.FormatInt(e.Offset, 10))
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a FormatError of the same Kind.
func (e *FormatError) Is(target error) bool {
	if t, ok := target.(*FormatError); ok {
		return e.Kind == t.Kind
	}
	return false
}
