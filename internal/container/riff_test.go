package container

import (
	"bytes"
	"testing"
)

func TestWriterRoundTrip(t *testing.T) {
	w := NewWriter(FileIDGRF)
	w.WriteBlock(TagPalette, []byte{1, 2, 3})
	w.WriteBlock(TagCharacter, []byte{4, 5, 6, 7, 8})

	var buf bytes.Buffer
	if err := w.Finalize(&buf); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	fileID, blocks, err := ReadAll(buf.Bytes())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if fileID != FileIDGRF {
		t.Fatalf("fileID = %s, want %s", fileID, FileIDGRF)
	}
	if len(blocks) != 2 {
		t.Fatalf("len(blocks) = %d, want 2", len(blocks))
	}
	if blocks[0].Tag != TagPalette || !bytes.Equal(blocks[0].Payload, []byte{1, 2, 3}) {
		t.Errorf("blocks[0] = %+v", blocks[0])
	}
	if blocks[1].Tag != TagCharacter || !bytes.Equal(blocks[1].Payload, []byte{4, 5, 6, 7, 8}) {
		t.Errorf("blocks[1] = %+v", blocks[1])
	}
}

func TestWriterPadding(t *testing.T) {
	w := NewWriter(FileIDGRF)
	w.WriteBlock(TagScreen, []byte{1})

	var buf bytes.Buffer
	if err := w.Finalize(&buf); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	// File header (12) + block header (8) + padded payload (4) = 24.
	if buf.Len() != 24 {
		t.Fatalf("buf.Len() = %d, want 24", buf.Len())
	}
}

func TestReadAllTruncated(t *testing.T) {
	if _, _, err := ReadAll([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for truncated header")
	}
}

func TestReadAllBadSignature(t *testing.T) {
	data := make([]byte, FileHeaderSize)
	copy(data, "NOPE")
	if _, _, err := ReadAll(data); err != ErrInvalidFile {
		t.Fatalf("err = %v, want ErrInvalidFile", err)
	}
}
