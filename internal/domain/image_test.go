package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"
)

func TestDataURLRoundTrip(t *testing.T) {
	ref := InlineRef("image/png", []byte("pixels"))
	parsed, err := ParseDataURL(ref.DataURL())
	if err != nil {
		t.Fatalf("ParseDataURL returned error: %v", err)
	}
	data, mimeType, err := parsed.Bytes()
	if err != nil {
		t.Fatalf("Bytes returned error: %v", err)
	}
	if string(data) != "pixels" || mimeType != "image/png" {
		t.Fatalf("Bytes = %q, %q", data, mimeType)
	}
	if _, err := ParseDataURL("https://example.com/a.png"); !errors.Is(err, ErrAssetUnreadable) {
		t.Fatalf("ParseDataURL error = %v", err)
	}
}

func TestTransientImageCannotBeMarshalled(t *testing.T) {
	open := func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader([]byte("x"))), nil }
	el := Element{Kind: Logo, Image: TransientRef(NewTransientImage("logo.png", "image/png", 1, open))}
	if _, err := json.Marshal(el); !errors.Is(err, ErrTransientImage) {
		t.Fatalf("Marshal error = %v, want ErrTransientImage", err)
	}

	inlined, err := el.Image.Inlined()
	if err != nil {
		t.Fatalf("Inlined returned error: %v", err)
	}
	el.Image = inlined
	raw, err := json.Marshal(el)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	var back Element
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if back.Image.DataURL() != inlined.DataURL() {
		t.Fatalf("image = %q, want %q", back.Image.DataURL(), inlined.DataURL())
	}
}

func TestCheckSize(t *testing.T) {
	big := NewTransientImage("big.jpg", "image/jpeg", DefaultMaxAssetBytes+1, nil)
	if err := TransientRef(big).CheckSize(DefaultMaxAssetBytes); !errors.Is(err, ErrAssetTooLarge) {
		t.Fatalf("CheckSize error = %v, want ErrAssetTooLarge", err)
	}
	if err := InlineRef("image/png", make([]byte, 1024)).CheckSize(DefaultMaxAssetBytes); err != nil {
		t.Fatalf("CheckSize returned error: %v", err)
	}
	var none *ImageRef
	if err := none.CheckSize(1); err != nil {
		t.Fatalf("CheckSize(nil) returned error: %v", err)
	}
}

func TestInlineAllReadsSharedSourceOnce(t *testing.T) {
	opens := 0
	src := NewTransientImage("product.png", "image/png", 3, func() (io.ReadCloser, error) {
		opens++
		return io.NopCloser(bytes.NewReader([]byte("abc"))), nil
	})
	inline := InlineRef("image/png", []byte("bg"))
	a, b, c := TransientRef(src), TransientRef(src), inline

	if err := InlineAll([]**ImageRef{&a, &b, &c}); err != nil {
		t.Fatalf("InlineAll returned error: %v", err)
	}
	if opens != 1 {
		t.Fatalf("source opened %d times, want 1", opens)
	}
	if a.IsTransient() || a != b {
		t.Fatal("shared slots should hold the same inline reference")
	}
	if c != inline {
		t.Fatal("inline slot should be left alone")
	}
	data, _, err := a.Bytes()
	if err != nil || string(data) != "abc" {
		t.Fatalf("Bytes = %q, %v", data, err)
	}
}

func TestInlineAllReportsUnreadableSource(t *testing.T) {
	ref := TransientRef(NewTransientImage("gone.png", "image/png", 1, func() (io.ReadCloser, error) {
		return nil, errors.New("file removed")
	}))
	if err := InlineAll([]**ImageRef{&ref}); !errors.Is(err, ErrAssetUnreadable) {
		t.Fatalf("InlineAll error = %v, want ErrAssetUnreadable", err)
	}
}
