package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"adstudio/internal/domain"
	"adstudio/internal/sqlinline"
)

func TestStoreContract(t *testing.T) {
	fileStore, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	stores := map[string]domain.BlobStore{
		"memory": NewMemoryStore(),
		"file":   fileStore,
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := store.Get(ctx, "ad-creator-folders"); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("Get on empty store error = %v, want ErrNotFound", err)
			}
			if err := store.Put(ctx, "ad-creator-folders", []byte(`[{"id":"f1"}]`)); err != nil {
				t.Fatalf("Put returned error: %v", err)
			}
			if err := store.Put(ctx, "ad-creator-folders", []byte(`[]`)); err != nil {
				t.Fatalf("second Put returned error: %v", err)
			}
			got, err := store.Get(ctx, "ad-creator-folders")
			if err != nil {
				t.Fatalf("Get returned error: %v", err)
			}
			if string(got) != "[]" {
				t.Fatalf("Get = %q, want %q", got, "[]")
			}
			if err := store.Delete(ctx, "ad-creator-folders"); err != nil {
				t.Fatalf("Delete returned error: %v", err)
			}
			if err := store.Delete(ctx, "ad-creator-folders"); err != nil {
				t.Fatalf("Delete of absent key returned error: %v", err)
			}
			if _, err := store.Get(ctx, "ad-creator-folders"); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("Get after delete error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "ad-creator-settings", want: "ad-creator-settings"},
		{key: "/nested/key", want: "nested/key"},
		{key: "a\\b", want: "a/b"},
		{key: "../escape", wantErr: true},
		{key: "..", wantErr: true},
		{key: "  ", wantErr: true},
	}
	for _, tc := range tests {
		got, err := sanitizeKey(tc.key)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("sanitizeKey(%q) expected error, got %q", tc.key, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("sanitizeKey(%q) returned error: %v", tc.key, err)
		}
		if got != tc.want {
			t.Fatalf("sanitizeKey(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type fakeSQL struct {
	rows  map[string][]byte
	execs []string
	fail  error
}

func (f *fakeSQL) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, query)
	if f.fail != nil {
		return pgconn.CommandTag{}, f.fail
	}
	switch query {
	case sqlinline.QUpsertCatalogEntry:
		f.rows[args[0].(string)] = args[1].([]byte)
	case sqlinline.QDeleteCatalogEntry:
		delete(f.rows, args[0].(string))
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeSQL) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return fakeRow{scan: func(dest ...any) error {
		v, ok := f.rows[args[0].(string)]
		if !ok {
			return pgx.ErrNoRows
		}
		*(dest[0].(*[]byte)) = v
		return nil
	}}
}

func (f *fakeSQL) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func TestPostgresStoreUsesCatalogQueries(t *testing.T) {
	ctx := context.Background()
	sql := &fakeSQL{rows: map[string][]byte{}}
	store, err := NewPostgresStore(ctx, sql)
	if err != nil {
		t.Fatalf("NewPostgresStore returned error: %v", err)
	}
	if len(sql.execs) != 1 || sql.execs[0] != sqlinline.QEnsureCatalogTable {
		t.Fatalf("expected table bootstrap, got %d execs", len(sql.execs))
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get error = %v, want ErrNotFound", err)
	}
	if err := store.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	got, err := store.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get = %q, %v, want %q", got, err, "v")
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	sql.fail = errors.New("connection refused")
	if err := store.Put(ctx, "k", []byte("v")); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("Put error = %v, want ErrStorageUnavailable", err)
	}
}
