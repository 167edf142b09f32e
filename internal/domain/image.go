package domain

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxAssetBytes is the upload ceiling for reference images.
const DefaultMaxAssetBytes int64 = 4 << 20

// InlineImage is an image fully embedded as base64 encoded bytes.
type InlineImage struct {
	MIMEType string
	Data     string
}

// TransientImage is an image still backed by a live source, such as an
// uploaded multipart file or a path on local disk.
type TransientImage struct {
	Name     string
	MIMEType string
	Size     int64
	open     func() (io.ReadCloser, error)
}

// NewTransientImage wraps an opener. A missing MIME type is sniffed on read.
func NewTransientImage(name, mimeType string, size int64, open func() (io.ReadCloser, error)) *TransientImage {
	return &TransientImage{Name: name, MIMEType: mimeType, Size: size, open: open}
}

// TransientFromFile references a file on disk without reading it.
func TransientFromFile(path string) (*TransientImage, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetUnreadable, err)
	}
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	return NewTransientImage(filepath.Base(path), mimeType, info.Size(), func() (io.ReadCloser, error) {
		return os.Open(path)
	}), nil
}

// ImageRef is either inline or transient. The zero value references nothing.
type ImageRef struct {
	Inline    *InlineImage
	Transient *TransientImage
}

// InlineRef builds a reference from raw bytes.
func InlineRef(mimeType string, data []byte) *ImageRef {
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return &ImageRef{Inline: &InlineImage{MIMEType: mimeType, Data: base64.StdEncoding.EncodeToString(data)}}
}

// TransientRef wraps a transient source.
func TransientRef(t *TransientImage) *ImageRef {
	return &ImageRef{Transient: t}
}

// IsZero reports whether the reference points at no image.
func (r *ImageRef) IsZero() bool {
	return r == nil || (r.Inline == nil && r.Transient == nil)
}

// IsTransient reports whether the reference still needs inlining.
func (r *ImageRef) IsTransient() bool {
	return r != nil && r.Inline == nil && r.Transient != nil
}

// CheckSize rejects a reference whose known size exceeds limit.
func (r *ImageRef) CheckSize(limit int64) error {
	if r.IsZero() || limit <= 0 {
		return nil
	}
	var size int64
	if r.Inline != nil {
		size = int64(base64.StdEncoding.DecodedLen(len(r.Inline.Data)))
	} else {
		size = r.Transient.Size
	}
	if size > limit {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrAssetTooLarge, size, limit)
	}
	return nil
}

// Bytes returns the raw image payload and its MIME type. Transient sources
// are read on every call.
func (r *ImageRef) Bytes() ([]byte, string, error) {
	switch {
	case r.IsZero():
		return nil, "", fmt.Errorf("%w: empty image reference", ErrAssetUnreadable)
	case r.Inline != nil:
		data, err := base64.StdEncoding.DecodeString(r.Inline.Data)
		if err != nil {
			return nil, "", fmt.Errorf("%w: decode inline image: %v", ErrAssetUnreadable, err)
		}
		return data, r.Inline.MIMEType, nil
	default:
		return r.Transient.read()
	}
}

// Inlined returns an inline copy of the reference, reading a transient source
// exactly once. Inline references are returned unchanged.
func (r *ImageRef) Inlined() (*ImageRef, error) {
	if r.IsZero() || r.Inline != nil {
		return r, nil
	}
	data, mimeType, err := r.Transient.read()
	if err != nil {
		return nil, err
	}
	return InlineRef(mimeType, data), nil
}

// InlineAll rewrites every transient reference in refs in place. A transient
// source shared by several slots is read once and the slots share the result.
func InlineAll(refs []**ImageRef) error {
	done := make(map[*TransientImage]*ImageRef)
	for _, slot := range refs {
		ref := *slot
		if !ref.IsTransient() {
			continue
		}
		if inlined, ok := done[ref.Transient]; ok {
			*slot = inlined
			continue
		}
		inlined, err := ref.Inlined()
		if err != nil {
			return err
		}
		done[ref.Transient] = inlined
		*slot = inlined
	}
	return nil
}

func (t *TransientImage) read() ([]byte, string, error) {
	if t.open == nil {
		return nil, "", fmt.Errorf("%w: %s has no source", ErrAssetUnreadable, t.Name)
	}
	rc, err := t.open()
	if err != nil {
		return nil, "", fmt.Errorf("%w: open %s: %v", ErrAssetUnreadable, t.Name, err)
	}
	defer rc.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		return nil, "", fmt.Errorf("%w: read %s: %v", ErrAssetUnreadable, t.Name, err)
	}
	mimeType := t.MIMEType
	if mimeType == "" {
		mimeType = http.DetectContentType(buf.Bytes())
	}
	return buf.Bytes(), mimeType, nil
}

// DataURL renders an inline reference as a data URL. Transient and empty
// references yield "".
func (r *ImageRef) DataURL() string {
	if r == nil || r.Inline == nil {
		return ""
	}
	return "data:" + r.Inline.MIMEType + ";base64," + r.Inline.Data
}

// ParseDataURL parses a base64 data URL into an inline reference.
func ParseDataURL(s string) (*ImageRef, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return nil, fmt.Errorf("%w: not a data url", ErrAssetUnreadable)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: malformed data url", ErrAssetUnreadable)
	}
	mimeType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return nil, fmt.Errorf("%w: data url must be base64", ErrAssetUnreadable)
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return nil, fmt.Errorf("%w: decode data url: %v", ErrAssetUnreadable, err)
	}
	return &ImageRef{Inline: &InlineImage{MIMEType: mimeType, Data: payload}}, nil
}

// MarshalJSON encodes the reference as a data URL. A transient reference
// cannot be serialized.
func (r ImageRef) MarshalJSON() ([]byte, error) {
	if r.IsTransient() {
		return nil, ErrTransientImage
	}
	if r.Inline == nil {
		return []byte("null"), nil
	}
	return json.Marshal(r.DataURL())
}

// UnmarshalJSON accepts a data URL string or null.
func (r *ImageRef) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("image reference: %w", err)
	}
	if s == nil || *s == "" {
		*r = ImageRef{}
		return nil
	}
	parsed, err := ParseDataURL(*s)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}
