// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// Mode selects the word source policy.
type Mode string

const (
	ModeEasy     Mode = "easy"
	ModeAdvanced Mode = "advanced"
)

// Phase is the lifecycle phase of a typing session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Exhaustion selects what happens when the cursor reaches the end of the passage.
type Exhaustion string

const (
	// ExhaustExtend appends another batch of words and keeps running.
	ExhaustExtend Exhaustion = "extend"
	// ExhaustFinish ends the session.
	ExhaustFinish Exhaustion = "finish"
)

// Composed selects how events carrying several runes are judged.
type Composed string

const (
	// ComposedAll judges every rune of the event in order.
	ComposedAll Composed = "all"
	// ComposedLast judges only the final rune of the event.
	ComposedLast Composed = "last"
)

// Settings defines practice settings.
type Settings struct {
	Mode       Mode
	Duration   int
	MinWords   int
	MaxWords   int
	Exhaustion Exhaustion
	Composed   Composed
}

// Passage is the ordered word sequence for a session.
type Passage struct {
	Words []string
}

// SlotStatus is the judgment recorded for a character slot.
type SlotStatus int

const (
	StatusUnset SlotStatus = iota
	StatusCorrect
	StatusIncorrect
)

// CharacterSlot is one typable position in the flattened passage.
type CharacterSlot struct {
	Expected  rune
	Status    SlotStatus
	Separator bool
}

// KeyKind distinguishes insertions from deletions.
type KeyKind int

const (
	KeyInsert KeyKind = iota
	KeyBackspace
)

// Keystroke is a single input event.
type Keystroke struct {
	Kind  KeyKind
	Runes []rune
}

// Metrics holds live session metrics.
type Metrics struct {
	WPM      int
	Accuracy int
	Correct  int
	Typed    int
}

// Characters renders the correct/typed summary.
func (m Metrics) Characters() string {
	return fmt.Sprintf("%d/%d", m.Correct, m.Typed)
}

// ScoreRecord captures a finished session in the history.
type ScoreRecord struct {
	ID          int64
	WPM         int
	Accuracy    int
	Characters  string
	Mode        Mode
	DurationSec int
	CreatedAt   time.Time
}
