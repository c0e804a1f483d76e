package postgres

import (
	"errors"
	"testing"
	"time"
)

func TestCursor_RoundTrip(t *testing.T) {
	in := Cursor{
		CreatedAt: time.Date(2024, 11, 2, 10, 0, 0, 0, time.UTC),
		ID:        "3f1c2a9e-1111-2222-3333-444455556666",
	}

	s, err := EncodeCursor(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	out, err := DecodeCursor(s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out == nil {
		t.Fatal("decoded cursor is nil")
	}
	if !out.CreatedAt.Equal(in.CreatedAt) || out.ID != in.ID {
		t.Fatalf("round trip mismatch: got %+v want %+v", *out, in)
	}
}

func TestDecodeCursor_Empty(t *testing.T) {
	out, err := DecodeCursor("")
	if err != nil {
		t.Fatalf("empty cursor must not error: %v", err)
	}
	if out != nil {
		t.Fatalf("empty cursor must decode to nil, got %+v", *out)
	}
}

func TestDecodeCursor_Garbage(t *testing.T) {
	for _, s := range []string{"%%%not-base64%%%", "bm90LWpzb24"} {
		if _, err := DecodeCursor(s); !errors.Is(err, ErrInvalidCursor) {
			t.Fatalf("expected ErrInvalidCursor for %q, got %v", s, err)
		}
	}
}
