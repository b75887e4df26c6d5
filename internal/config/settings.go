package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/timetype/internal/model"
)

// ErrInvalidValue is wrapped by every parse failure in this file.
var ErrInvalidValue = errors.New("invalid configuration value")

// Defaults used when a value is missing or unparseable.
const (
	DefaultDuration       = 60
	DefaultMode           = model.ModeEasy
	DefaultMinWords       = 60
	DefaultMaxWords       = 70
	DefaultExhaustion     = model.ExhaustExtend
	DefaultComposed       = model.ComposedAll
	DefaultTheme          = "dark"
	DefaultMinCorpusCount = 10000
	DefaultMinLength      = 5
	DefaultMaxLength      = 12
	DefaultTimeout        = 4 * time.Second
)

// Durations lists the selectable session lengths in seconds.
var Durations = []int{15, 30, 60, 120}

// ParseDuration accepts one of Durations, as "30" or "30s".
func ParseDuration(value string) (int, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(value), "s")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return DefaultDuration, fmt.Errorf("duration %q: %w", value, ErrInvalidValue)
	}
	return ValidDuration(n)
}

// ValidDuration checks n against Durations.
func ValidDuration(n int) (int, error) {
	for _, d := range Durations {
		if d == n {
			return n, nil
		}
	}
	return DefaultDuration, fmt.Errorf("duration %d: %w", n, ErrInvalidValue)
}

// NextDuration returns the duration after current in Durations, wrapping.
func NextDuration(current int) int {
	for i, d := range Durations {
		if d == current {
			return Durations[(i+1)%len(Durations)]
		}
	}
	return Durations[0]
}

// ParseMode accepts "easy" or "advanced".
func ParseMode(value string) (model.Mode, error) {
	switch model.Mode(strings.ToLower(strings.TrimSpace(value))) {
	case model.ModeEasy:
		return model.ModeEasy, nil
	case model.ModeAdvanced:
		return model.ModeAdvanced, nil
	default:
		return DefaultMode, fmt.Errorf("mode %q: %w", value, ErrInvalidValue)
	}
}

// ParseExhaustion accepts "extend" or "finish".
func ParseExhaustion(value string) (model.Exhaustion, error) {
	switch model.Exhaustion(strings.ToLower(strings.TrimSpace(value))) {
	case model.ExhaustExtend:
		return model.ExhaustExtend, nil
	case model.ExhaustFinish:
		return model.ExhaustFinish, nil
	default:
		return DefaultExhaustion, fmt.Errorf("on-exhaust %q: %w", value, ErrInvalidValue)
	}
}

// ParseComposed accepts "all" or "last".
func ParseComposed(value string) (model.Composed, error) {
	switch model.Composed(strings.ToLower(strings.TrimSpace(value))) {
	case model.ComposedAll:
		return model.ComposedAll, nil
	case model.ComposedLast:
		return model.ComposedLast, nil
	default:
		return DefaultComposed, fmt.Errorf("composed-input %q: %w", value, ErrInvalidValue)
	}
}

// ParseTheme accepts "light" or "dark".
func ParseTheme(value string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(value)); v {
	case "light", "dark":
		return v, nil
	default:
		return DefaultTheme, fmt.Errorf("theme %q: %w", value, ErrInvalidValue)
	}
}

// ParseTimeout accepts a Go duration string such as "4s".
func ParseTimeout(value string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		return DefaultTimeout, fmt.Errorf("timeout %q: %w", value, ErrInvalidValue)
	}
	return d, nil
}
