package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"
)

type Asset struct {
	Filename string
	MIME     string
	Data     []byte
}

// Write streams the assets into a zip archive on w. Images are already
// compressed, so entries are stored.
func Write(w io.Writer, assets []Asset, modified time.Time) error {
	zw := zip.NewWriter(w)
	for _, asset := range assets {
		hdr := &zip.FileHeader{Name: asset.Filename, Method: zip.Store, Modified: modified}
		f, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("zip: create %s: %w", asset.Filename, err)
		}
		if _, err := f.Write(asset.Data); err != nil {
			return fmt.Errorf("zip: write %s: %w", asset.Filename, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("zip: close: %w", err)
	}
	return nil
}

// ArchiveAssets returns the archive as bytes.
func ArchiveAssets(assets []Asset, modified time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, assets, modified); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
