package config

import (
	"strconv"
	"time"

	"github.com/verte-zerg/timetype/internal/model"
)

// Raw holds unvalidated values gathered from flags, environment and file.
type Raw struct {
	Duration      string
	Mode          string
	MinWords      int
	MaxWords      int
	OnExhaust     string
	ComposedInput string
	Theme         string
	EasyWords     string
	AdvancedWords string

	Endpoint       string
	APIKey         string
	MinCorpusCount int
	MinLength      int
	MaxLength      int
	Timeout        string
}

// DefaultRaw returns the built-in defaults in raw form.
func DefaultRaw() Raw {
	return Raw{
		Duration:       "60",
		Mode:           string(DefaultMode),
		MinWords:       DefaultMinWords,
		MaxWords:       DefaultMaxWords,
		OnExhaust:      string(DefaultExhaustion),
		ComposedInput:  string(DefaultComposed),
		Theme:          DefaultTheme,
		MinCorpusCount: DefaultMinCorpusCount,
		MinLength:      DefaultMinLength,
		MaxLength:      DefaultMaxLength,
		Timeout:        DefaultTimeout.String(),
	}
}

// Dictionary holds remote word service settings.
type Dictionary struct {
	Endpoint       string
	APIKey         string
	MinCorpusCount int
	MinLength      int
	MaxLength      int
	Timeout        time.Duration
}

// Resolved is the validated configuration.
type Resolved struct {
	Settings      model.Settings
	Theme         string
	EasyWords     string
	AdvancedWords string
	Dictionary    Dictionary
}

// ApplyFile copies values from the config file into raw for every key
// whose flag was not set explicitly.
func ApplyFile(raw *Raw, file FileConfig, changed func(flag string) bool) {
	p, d := file.Practice, file.Dictionary
	if p.Duration != nil && !changed("duration") {
		raw.Duration = strconv.Itoa(*p.Duration)
	}
	applyString(&raw.Mode, p.Mode, "mode", changed)
	applyInt(&raw.MinWords, p.MinWords, "min-words", changed)
	applyInt(&raw.MaxWords, p.MaxWords, "max-words", changed)
	applyString(&raw.OnExhaust, p.OnExhaust, "on-exhaust", changed)
	applyString(&raw.ComposedInput, p.ComposedInput, "composed-input", changed)
	applyString(&raw.Theme, p.Theme, "theme", changed)
	applyString(&raw.EasyWords, p.EasyWords, "easy-words", changed)
	applyString(&raw.AdvancedWords, p.AdvancedWords, "advanced-words", changed)
	applyString(&raw.Endpoint, d.Endpoint, "endpoint", changed)
	applyString(&raw.APIKey, d.APIKey, "api-key", changed)
	applyInt(&raw.MinCorpusCount, d.MinCorpusCount, "min-corpus-count", changed)
	applyInt(&raw.MinLength, d.MinLength, "min-length", changed)
	applyInt(&raw.MaxLength, d.MaxLength, "max-length", changed)
	applyString(&raw.Timeout, d.Timeout, "timeout", changed)
}

// Resolve validates raw. Invalid values fall back to defaults and are
// reported through warn; Resolve never fails.
func Resolve(raw Raw, warn func(format string, args ...any)) Resolved {
	if warn == nil {
		warn = func(string, ...any) {}
	}
	duration, err := ParseDuration(raw.Duration)
	if err != nil {
		warn("%v; using %ds", err, duration)
	}
	mode, err := ParseMode(raw.Mode)
	if err != nil {
		warn("%v; using %s", err, mode)
	}
	exhaustion, err := ParseExhaustion(raw.OnExhaust)
	if err != nil {
		warn("%v; using %s", err, exhaustion)
	}
	composed, err := ParseComposed(raw.ComposedInput)
	if err != nil {
		warn("%v; using %s", err, composed)
	}
	theme, err := ParseTheme(raw.Theme)
	if err != nil {
		warn("%v; using %s", err, theme)
	}
	timeout, err := ParseTimeout(raw.Timeout)
	if err != nil {
		warn("%v; using %s", err, timeout)
	}

	minWords, maxWords := raw.MinWords, raw.MaxWords
	if minWords <= 0 || maxWords < minWords {
		warn("word range %d-%d: %v; using %d-%d", minWords, maxWords, ErrInvalidValue, DefaultMinWords, DefaultMaxWords)
		minWords, maxWords = DefaultMinWords, DefaultMaxWords
	}
	minLen, maxLen := raw.MinLength, raw.MaxLength
	if minLen <= 0 || maxLen < minLen {
		warn("word length %d-%d: %v; using %d-%d", minLen, maxLen, ErrInvalidValue, DefaultMinLength, DefaultMaxLength)
		minLen, maxLen = DefaultMinLength, DefaultMaxLength
	}
	corpus := raw.MinCorpusCount
	if corpus < 0 {
		warn("min-corpus-count %d: %v; using %d", corpus, ErrInvalidValue, DefaultMinCorpusCount)
		corpus = DefaultMinCorpusCount
	}

	return Resolved{
		Settings: model.Settings{
			Mode:       mode,
			Duration:   duration,
			MinWords:   minWords,
			MaxWords:   maxWords,
			Exhaustion: exhaustion,
			Composed:   composed,
		},
		Theme:         theme,
		EasyWords:     raw.EasyWords,
		AdvancedWords: raw.AdvancedWords,
		Dictionary: Dictionary{
			Endpoint:       raw.Endpoint,
			APIKey:         raw.APIKey,
			MinCorpusCount: corpus,
			MinLength:      minLen,
			MaxLength:      maxLen,
			Timeout:        timeout,
		},
	}
}

func applyString(target *string, value *string, flag string, changed func(string) bool) {
	if value == nil || changed(flag) {
		return
	}
	*target = *value
}

func applyInt(target *int, value *int, flag string, changed func(string) bool) {
	if value == nil || changed(flag) {
		return
	}
	*target = *value
}
