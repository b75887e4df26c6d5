// Package wordsource supplies word batches for typing passages.
package wordsource

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"github.com/verte-zerg/timetype/internal/model"
)

var (
	// ErrNoWords is returned by a local source built from an empty list.
	ErrNoWords = errors.New("word source has no words")
	// ErrShortBatch is returned when a remote batch holds fewer words than requested.
	ErrShortBatch = errors.New("word batch shorter than requested")
	// ErrNoAPIKey is returned by a remote source without credentials.
	ErrNoAPIKey = errors.New("dictionary api key is not configured")
)

// Source returns count words, or an error.
type Source interface {
	Words(ctx context.Context, count int) ([]string, error)
}

// Local samples uniformly with replacement from a fixed list.
type Local struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	words []string
}

// NewLocal returns a Local source over words. The list is copied.
func NewLocal(words []string, rnd *rand.Rand) *Local {
	return &Local{
		rnd:   rnd,
		words: append([]string(nil), words...),
	}
}

// Words implements Source.
func (l *Local) Words(_ context.Context, count int) ([]string, error) {
	if len(l.words) == 0 {
		return nil, ErrNoWords
	}
	if count <= 0 {
		return nil, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, l.words[l.rnd.Intn(len(l.words))])
	}
	return out, nil
}

// Fallback serves from Primary and switches to Secondary on any error.
type Fallback struct {
	Primary   Source
	Secondary Source
	Logf      func(format string, args ...any)
}

// Words implements Source.
func (f *Fallback) Words(ctx context.Context, count int) ([]string, error) {
	words, err := f.Primary.Words(ctx, count)
	if err == nil {
		return words, nil
	}
	if f.Logf != nil {
		f.Logf("word source failed, using local fallback: %v", err)
	}
	return f.Secondary.Words(ctx, count)
}

// Deps carries the pieces needed to build a source per mode.
type Deps struct {
	EasyWords     []string
	AdvancedWords []string
	Remote        *Remote
	Seed          int64
	Logf          func(format string, args ...any)
}

// ForMode builds the source for mode. Advanced mode prefers the remote
// dictionary and falls back to the local advanced list. Each call owns
// its random stream, seeded from deps.Seed.
func ForMode(mode model.Mode, deps Deps) Source {
	rnd := rand.New(rand.NewSource(deps.Seed))
	if mode != model.ModeAdvanced {
		return NewLocal(deps.EasyWords, rnd)
	}
	local := NewLocal(deps.AdvancedWords, rnd)
	if deps.Remote == nil {
		return local
	}
	return &Fallback{Primary: deps.Remote, Secondary: local, Logf: deps.Logf}
}
