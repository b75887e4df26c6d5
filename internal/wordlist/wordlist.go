// Package wordlist loads word lists from files and embedded defaults.
package wordlist

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmpty is returned when a word list holds no words.
var ErrEmpty = errors.New("word list is empty")

//go:embed data/easy.txt
var easyWords string

//go:embed data/advanced.txt
var advancedWords string

// Easy returns the built-in frequency-ranked list of common words.
func Easy() []string {
	return splitLines(easyWords)
}

// Advanced returns the built-in list of longer words used when the
// dictionary service is unavailable.
func Advanced() []string {
	return splitLines(advancedWords)
}

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return words, nil
}

// LoadOr loads the list at path, or returns fallback when path is empty.
func LoadOr(path string, fallback []string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return fallback, nil
	}
	return LoadWords(path)
}

func splitLines(s string) []string {
	var words []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			words = append(words, line)
		}
	}
	return words
}
