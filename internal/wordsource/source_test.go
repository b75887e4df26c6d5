package wordsource

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/verte-zerg/timetype/internal/model"
)

type failingSource struct {
	calls int
}

func (f *failingSource) Words(context.Context, int) ([]string, error) {
	f.calls++
	return nil, errors.New("transport down")
}

func TestLocalSamplesFromList(t *testing.T) {
	src := NewLocal([]string{"a", "b", "c"}, rand.New(rand.NewSource(1)))
	words, err := src.Words(context.Background(), 50)
	if err != nil {
		t.Fatalf("Words failed: %v", err)
	}
	if len(words) != 50 {
		t.Fatalf("expected 50 words, got %d", len(words))
	}
	for _, w := range words {
		if w != "a" && w != "b" && w != "c" {
			t.Fatalf("unexpected word %q", w)
		}
	}
}

func TestLocalDeterministicForSeed(t *testing.T) {
	list := []string{"one", "two", "three", "four"}
	a, _ := NewLocal(list, rand.New(rand.NewSource(42))).Words(context.Background(), 20)
	b, _ := NewLocal(list, rand.New(rand.NewSource(42))).Words(context.Background(), 20)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical sequences, differ at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestLocalEmptyList(t *testing.T) {
	src := NewLocal(nil, rand.New(rand.NewSource(1)))
	if _, err := src.Words(context.Background(), 3); !errors.Is(err, ErrNoWords) {
		t.Fatalf("expected ErrNoWords, got %v", err)
	}
}

func TestFallbackUsesSecondaryOnFailure(t *testing.T) {
	primary := &failingSource{}
	var logged int
	src := &Fallback{
		Primary:   primary,
		Secondary: NewLocal([]string{"fallback"}, rand.New(rand.NewSource(1))),
		Logf:      func(string, ...any) { logged++ },
	}
	words, err := src.Words(context.Background(), 4)
	if err != nil {
		t.Fatalf("expected fallback to hide failure, got %v", err)
	}
	if len(words) != 4 {
		t.Fatalf("expected 4 words, got %d", len(words))
	}
	for _, w := range words {
		if w != "fallback" {
			t.Fatalf("expected fallback words only, got %q", w)
		}
	}
	if primary.calls != 1 || logged != 1 {
		t.Fatalf("expected one primary call and one log line, got %d and %d", primary.calls, logged)
	}
}

func TestForModeEasyIsLocal(t *testing.T) {
	src := ForMode(model.ModeEasy, Deps{EasyWords: []string{"easy"}, AdvancedWords: []string{"hard"}, Remote: &Remote{}})
	if _, ok := src.(*Local); !ok {
		t.Fatalf("expected local source for easy mode, got %T", src)
	}
	words, _ := src.Words(context.Background(), 2)
	if words[0] != "easy" {
		t.Fatalf("expected easy words, got %v", words)
	}
}

func TestForModeAdvancedWithoutKeyFallsBack(t *testing.T) {
	src := ForMode(model.ModeAdvanced, Deps{AdvancedWords: []string{"hard"}, Remote: &Remote{}})
	if _, ok := src.(*Fallback); !ok {
		t.Fatalf("expected fallback source, got %T", src)
	}
	words, err := src.Words(context.Background(), 3)
	if err != nil {
		t.Fatalf("Words failed: %v", err)
	}
	for _, w := range words {
		if w != "hard" {
			t.Fatalf("expected advanced fallback words, got %q", w)
		}
	}
}
