// Package generator builds typing passages.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/verte-zerg/timetype/internal/model"
	"github.com/verte-zerg/timetype/internal/wordsource"
)

// Separator is the rune placed between consecutive words.
const Separator = ' '

// Generator produces randomized passages.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Count picks a word count uniformly in [minWords, maxWords].
func (g *Generator) Count(minWords, maxWords int) int {
	if minWords < 1 {
		minWords = 1
	}
	if maxWords < minWords {
		maxWords = minWords
	}
	if maxWords == minWords {
		return minWords
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return minWords + g.rnd.Intn(maxWords-minWords+1)
}

// Generate requests a batch of words from src and returns it as a passage.
func (g *Generator) Generate(ctx context.Context, src wordsource.Source, minWords, maxWords int) (model.Passage, error) {
	count := g.Count(minWords, maxWords)
	words, err := src.Words(ctx, count)
	if err != nil {
		return model.Passage{}, fmt.Errorf("failed to generate passage: %w", err)
	}
	return model.Passage{Words: words}, nil
}

// Flatten expands words into character slots with one separator slot
// between consecutive words and none after the last.
func Flatten(words []string) []model.CharacterSlot {
	size := 0
	for _, w := range words {
		size += len(w) + 1
	}
	slots := make([]model.CharacterSlot, 0, size)
	for i, w := range words {
		if i > 0 {
			slots = append(slots, model.CharacterSlot{Expected: Separator, Separator: true})
		}
		for _, r := range w {
			slots = append(slots, model.CharacterSlot{Expected: r})
		}
	}
	return slots
}
