package infra

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

type recordingExecutor struct {
	queries []string
}

func (r *recordingExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	r.queries = append(r.queries, query)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (r *recordingExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	r.queries = append(r.queries, query)
	return errorRow{err: pgx.ErrNoRows}
}

func (r *recordingExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	r.queries = append(r.queries, query)
	return nil, errors.New("unsupported")
}

func TestSQLRunnerStripsMarker(t *testing.T) {
	exec := &recordingExecutor{}
	runner := NewSQLRunner(exec, zerolog.New(io.Discard))

	query := "--sql 2111e2d7-f486-40a3-b8d1-9a8d81f5b30c\nselect 1;\n"
	if _, err := runner.Exec(context.Background(), query); err != nil {
		t.Fatalf("Exec returned error: %v", err)
	}
	if len(exec.queries) != 1 || exec.queries[0] != "select 1;" {
		t.Fatalf("executed %#v, want %q", exec.queries, "select 1;")
	}
}

func TestSQLRunnerRejectsMissingMarker(t *testing.T) {
	exec := &recordingExecutor{}
	runner := NewSQLRunner(exec, zerolog.New(io.Discard))

	if _, err := runner.Exec(context.Background(), "select 1;"); !errors.Is(err, ErrInvalidMarker) {
		t.Fatalf("Exec error = %v, want ErrInvalidMarker", err)
	}
	if err := runner.QueryRow(context.Background(), "select 1;").Scan(); !errors.Is(err, ErrInvalidMarker) {
		t.Fatalf("QueryRow error = %v, want ErrInvalidMarker", err)
	}
	if len(exec.queries) != 0 {
		t.Fatalf("unmarked query reached the executor: %#v", exec.queries)
	}
}

func TestExtractMarker(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		marker  string
		wantErr error
	}{
		{name: "valid", query: "--sql 3edf47eb-d9ae-4c3f-8809-35ff7d06d4ea\nselect 1", marker: "3edf47eb-d9ae-4c3f-8809-35ff7d06d4ea"},
		{name: "empty", query: "  ", wantErr: ErrEmptyQuery},
		{name: "marker only", query: "--sql 3edf47eb-d9ae-4c3f-8809-35ff7d06d4ea", wantErr: ErrEmptyQuery},
		{name: "uppercase uuid", query: "--sql 3EDF47EB-D9AE-4C3F-8809-35FF7D06D4EA\nselect 1", wantErr: ErrInvalidMarker},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			marker, _, err := ExtractMarker(tc.query)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractMarker returned error: %v", err)
			}
			if marker != tc.marker {
				t.Fatalf("marker = %q, want %q", marker, tc.marker)
			}
		})
	}
}
