package vox

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// smallRead is the largest length-prefixed field read with a single
// allocation; longer ones grow as bytes arrive so a bogus length cannot
// force a huge allocation up front.
const smallRead = 1 << 16

// chunkReader reads little-endian fields and tracks the stream offset so
// errors can point at the failing byte.
type chunkReader struct {
	r     io.Reader
	off   int64
	chunk string
	buf   [chunkHeaderLen]byte
}

func newChunkReader(r io.Reader) *chunkReader {
	return &chunkReader{r: r}
}

func (r *chunkReader) fail(kind Kind, cause error, format string, args ...any) *FormatError {
	return &FormatError{
		Kind:   kind,
		Chunk:  r.chunk,
		Offset: r.off,
		Detail: fmt.Sprintf(format, args...),
		Cause:  cause,
	}
}

func (r *chunkReader) truncated(n int, err error, what string) *FormatError {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return r.fail(KindTruncated, err, "reading %s: got %d bytes", what, n)
}

func (r *chunkReader) full(p []byte, what string) error {
	n, err := io.ReadFull(r.r, p)
	r.off += int64(n)
	if err != nil {
		return r.truncated(n, err, what)
	}
	return nil
}

func (r *chunkReader) int32(what string) (int32, error) {
	if err := r.full(r.buf[:4], what); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(r.buf[:4])), nil
}

func (r *chunkReader) tag(what string) (string, error) {
	if err := r.full(r.buf[:4], what); err != nil {
		return "", err
	}
	return string(r.buf[:4]), nil
}

// read returns exactly n bytes.
func (r *chunkReader) read(n int64, what string) ([]byte, error) {
	if n <= smallRead {
		p := make([]byte, n)
		if err := r.full(p, what); err != nil {
			return nil, err
		}
		return p, nil
	}
	var buf bytes.Buffer
	buf.Grow(smallRead)
	got, err := io.CopyN(&buf, r.r, n)
	r.off += got
	if err != nil {
		return nil, r.truncated(int(got), err, what)
	}
	return buf.Bytes(), nil
}

// string reads an int32 length followed by that many UTF-8 bytes. It returns
// the number of stream bytes consumed, prefix included.
func (r *chunkReader) string(what string) (string, int64, error) {
	n, err := r.int32(what + " length")
	if err != nil {
		return "", 0, err
	}
	if n < 0 {
		return "", 0, r.fail(KindMalformed, nil, "negative %s length %d", what, n)
	}
	p, err := r.read(int64(n), what)
	if err != nil {
		return "", 0, err
	}
	if !utf8.Valid(p) {
		return "", 0, r.fail(KindUTF8, nil, "%s %q is not valid UTF-8", what, p)
	}
	return string(p), 4 + int64(n), nil
}

func (r *chunkReader) skip(n int64) error {
	got, err := io.CopyN(io.Discard, r.r, n)
	r.off += got
	if err != nil {
		return r.truncated(int(got), err, "skipped payload")
	}
	return nil
}

// nextHeader reads the next chunk header. ok is false when the stream ends
// cleanly on a chunk boundary; a partial header is a truncation.
func (r *chunkReader) nextHeader() (h ChunkHeader, ok bool, err error) {
	r.chunk = ""
	n, err := io.ReadFull(r.r, r.buf[:])
	r.off += int64(n)
	switch {
	case n == 0 && err == io.EOF:
		return h, false, nil
	case err != nil:
		return h, false, r.truncated(n, err, "chunk header")
	}
	h.Tag = string(r.buf[:4])
	h.SelfSize = int32(binary.LittleEndian.Uint32(r.buf[4:8]))
	h.ChildSize = int32(binary.LittleEndian.Uint32(r.buf[8:12]))
	return h, true, nil
}
