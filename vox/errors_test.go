package vox

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestFormatError_Error(t *testing.T) {
	err := &FormatError{
		Kind:   KindTruncated,
		Chunk:  "XYZI",
		Offset: 42,
		Detail: "reading voxel: got 2 bytes",
		Cause:  io.ErrUnexpectedEOF,
	}
	msg := err.Error()
	for _, s := range []string{"vox: truncated", "in XYZI", "offset 42", "reading voxel", "caused by: unexpected EOF"} {
		if !strings.Contains(msg, s) {
			t.Errorf("error message %q does not contain %q", msg, s)
		}
	}
}

func TestFormatError_Is(t *testing.T) {
	err := &FormatError{Kind: KindBadMagic, Detail: "got \"XOXX\""}
	if !errors.Is(err, ErrBadMagic) {
		t.Fatalf("expected match by kind")
	}
	if errors.Is(err, ErrTruncated) {
		t.Fatalf("unexpected match across kinds")
	}
	if errors.Is(err, io.EOF) {
		t.Fatalf("unexpected match with unrelated error")
	}
}
