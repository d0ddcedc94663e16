package cached_test

import (
	"context"
	"errors"
	"testing"

	"github.com/membank/membank-go/memory/embedder/cached"
)

type countingEmbedder struct {
	calls int
	err   error
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []float32{float32(len(text)), 1, 0}, nil
}

func (c *countingEmbedder) Dimensions() int { return 3 }

func TestEmbedCachesByText(t *testing.T) {
	inner := &countingEmbedder{}
	e, err := cached.New(inner, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	ctx := context.Background()

	first, err := e.Embed(ctx, "beach day")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	e.Wait()

	second, err := e.Embed(ctx, "beach day")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
	if len(first) != 3 || first[0] != second[0] {
		t.Errorf("cached vector mismatch: %v vs %v", first, second)
	}

	if _, err := e.Embed(ctx, "office party"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2 after distinct text", inner.calls)
	}
}

func TestEmbedErrorNotCached(t *testing.T) {
	inner := &countingEmbedder{err: errors.New("model offline")}
	e, err := cached.New(inner, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	ctx := context.Background()

	if _, err := e.Embed(ctx, "beach day"); err == nil {
		t.Fatal("expected error from inner embedder")
	}
	e.Wait()

	inner.err = nil
	if _, err := e.Embed(ctx, "beach day"); err != nil {
		t.Fatalf("Embed after recovery: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2 (failure must not cache)", inner.calls)
	}
}

func TestDimensionsPassthrough(t *testing.T) {
	e, err := cached.New(&countingEmbedder{}, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	if e.Dimensions() != 3 {
		t.Errorf("Dimensions() = %d, want 3", e.Dimensions())
	}
}
