package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"
)

func TestArchiveAssetsKeepsOrderAndContent(t *testing.T) {
	assets := []Asset{
		{Filename: "summer-sale-1.png", MIME: "image/png", Data: []byte("first")},
		{Filename: "summer-sale-2.png", MIME: "image/png", Data: []byte("second")},
	}
	data, err := ArchiveAssets(assets, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ArchiveAssets returned error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != len(assets) {
		t.Fatalf("entries = %d, want %d", len(zr.File), len(assets))
	}
	for i, f := range zr.File {
		if f.Name != assets[i].Filename {
			t.Fatalf("entry %d = %q, want %q", i, f.Name, assets[i].Filename)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %d: %v", i, err)
		}
		got, _ := io.ReadAll(rc)
		rc.Close()
		if string(got) != string(assets[i].Data) {
			t.Fatalf("entry %d content = %q, want %q", i, got, assets[i].Data)
		}
	}
}
