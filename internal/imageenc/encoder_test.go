package imageenc

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/engine"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/recipe"
)

func collect(t *testing.T) (Handler, <-chan Result) {
	t.Helper()
	ch := make(chan Result, 8)
	return func(r Result) { ch <- r }, ch
}

func await(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
	}
	return Result{}
}

func TestEncoderDeliversResults(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	handler, results := collect(t)
	enc := New(handler, log)
	enc.Start(context.Background())
	defer enc.Stop()

	good := writeFile(t, "a.png", pngHeader)
	bad := filepath.Join(t.TempDir(), "missing.png")

	if err := enc.Submit(Job{Path: good, Token: 1}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := enc.Submit(Job{Path: bad, Token: 2}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	first := await(t, results)
	if first.Err != nil || first.Job.Token != 1 || first.DataURL == "" {
		t.Fatalf("unexpected first result %+v", first)
	}
	second := await(t, results)
	if second.Err == nil || second.Job.Token != 2 {
		t.Fatalf("expected failure for missing file, got %+v", second)
	}
}

func TestEncoderSubmitWhenStopped(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	enc := New(func(Result) {}, log)

	if err := enc.Submit(Job{Path: "x.png"}); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning before start, got %v", err)
	}

	enc.Start(context.Background())
	enc.Stop()
	enc.Stop() // idempotent

	if err := enc.Submit(Job{Path: "x.png"}); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning after stop, got %v", err)
	}
}

func TestEncoderQueueFull(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	release := make(chan struct{})
	enc := New(func(Result) { <-release }, log, WithQueueSize(1))
	enc.Start(context.Background())
	defer func() {
		close(release)
		enc.Stop()
	}()

	path := writeFile(t, "a.png", pngHeader)
	var full bool
	for i := 0; i < 4; i++ {
		if err := enc.Submit(Job{Path: path}); errors.Is(err, ErrQueueFull) {
			full = true
			break
		}
	}
	if !full {
		t.Fatal("expected the queue to fill while the handler is blocked")
	}
}

// The encoder result only reaches the draft it was issued for.
func TestEncoderWithControllerDropsStaleResults(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := recipe.NewMemoryStore(log, recipe.WithSeed([]domain.Recipe{
		{ID: "1", Name: "Soup", Ingredients: []string{"water"}},
	}))
	ctl := engine.New(store, log)

	applied := make(chan bool, 4)
	enc := New(func(r Result) {
		if r.Err != nil {
			ctl.ImageFailed(r.Job.Token, r.Err)
			applied <- false
			return
		}
		applied <- ctl.ApplyImage(r.Job.Token, r.DataURL)
	}, log)
	enc.Start(context.Background())
	defer enc.Stop()

	path := writeFile(t, "a.png", pngHeader)

	ctl.StartEdit("1")
	stale, _ := ctl.BeginImageLoad()
	ctl.CancelEdit()
	ctl.StartAdd()
	live, _ := ctl.BeginImageLoad()

	if err := enc.Submit(Job{Path: path, Token: stale}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := awaitBool(t, applied); got {
		t.Fatal("stale result was applied")
	}
	if err := enc.Submit(Job{Path: path, Token: live}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := awaitBool(t, applied); !got {
		t.Fatal("live result was not applied")
	}

	r, _ := store.Get("1")
	if r.Image != "" {
		t.Fatalf("stale image reached stored recipe: %q", r.Image)
	}
	d, _ := ctl.Draft()
	if d.Recipe.Image == "" {
		t.Fatal("open draft has no image")
	}
}

func awaitBool(t *testing.T, ch <-chan bool) bool {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for completion")
	}
	return false
}
