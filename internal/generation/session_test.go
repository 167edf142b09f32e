package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"adstudio/internal/domain"
)

func TestRunDiscardsStaleResult(t *testing.T) {
	var s Session
	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		_, err := Run(context.Background(), &s, func(context.Context) (string, error) {
			close(started)
			<-release
			return "old", nil
		})
		done <- err
	}()
	<-started

	got, err := Run(context.Background(), &s, func(context.Context) (string, error) {
		return "new", nil
	})
	if err != nil || got != "new" {
		t.Fatalf("Run = %q, %v", got, err)
	}
	if s.Loading() {
		t.Fatal("loading still set after latest call finished")
	}

	close(release)
	if err := <-done; !errors.Is(err, domain.ErrStaleGeneration) {
		t.Fatalf("stale call error = %v, want ErrStaleGeneration", err)
	}
	if s.Loading() {
		t.Fatal("stale call set loading")
	}
}

func TestRunClearsLoadingOnFailure(t *testing.T) {
	var s Session
	boom := errors.New("boom")
	_, err := Run(context.Background(), &s, func(context.Context) (int, error) {
		if !s.Loading() {
			t.Error("loading not set while running")
		}
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want boom", err)
	}
	if s.Loading() {
		t.Fatal("loading still set after failure")
	}
}

func TestSessionsReuseByID(t *testing.T) {
	reg := NewSessions(time.Minute)
	if reg.Get("a") != reg.Get("a") {
		t.Fatal("same id returned different sessions")
	}
	if reg.Get("a") == reg.Get("b") {
		t.Fatal("different ids share a session")
	}
}
