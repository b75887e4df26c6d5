// Package session implements the typing session state machine and the
// keystroke judge that drives it.
//
// A Session is not safe for concurrent use. The TUI owns one instance and
// mutates it only from its Update loop, which serializes every keystroke,
// tick and word batch.
package session

import (
	"time"

	"github.com/verte-zerg/timetype/internal/generator"
	"github.com/verte-zerg/timetype/internal/model"
	"github.com/verte-zerg/timetype/internal/stats"
)

// DefaultDuration is used when a non-positive duration is configured.
const DefaultDuration = 60

// Effect reports the transitions caused by a single event.
type Effect struct {
	// Started is set when the session moved from idle to running.
	Started bool
	// Finished is set when the session moved to finished.
	Finished bool
	// NeedWords is set when the passage ran out under the extend policy.
	NeedWords bool
}

func (e *Effect) merge(o Effect) {
	e.Started = e.Started || o.Started
	e.Finished = e.Finished || o.Finished
	e.NeedWords = e.NeedWords || o.NeedWords
}

// Result is the outcome of a finished session.
type Result struct {
	Metrics model.Metrics
	Message string
	Record  model.ScoreRecord
}

// Session holds the state of one typing run and survives resets.
type Session struct {
	settings model.Settings
	now      func() time.Time

	generation uint64
	phase      model.Phase
	remaining  int

	slots     []model.CharacterSlot
	loaded    bool
	extending bool

	cursor       int
	mistakes     int
	typedEntries int

	metrics model.Metrics
	result  *Result
}

// New returns an idle session awaiting its first passage. A nil clock
// defaults to time.Now.
func New(settings model.Settings, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	s := &Session{now: now}
	s.Configure(settings)
	return s
}

// Configure replaces the settings and resets the session.
func (s *Session) Configure(settings model.Settings) uint64 {
	s.settings = normalize(settings)
	return s.Reset()
}

// Reset discards the passage and counters and returns to idle. It returns
// the new generation; ticks and word batches tagged with an older
// generation are ignored afterwards.
func (s *Session) Reset() uint64 {
	s.generation++
	s.phase = model.PhaseIdle
	s.remaining = s.settings.Duration
	s.slots = nil
	s.loaded = false
	s.extending = false
	s.cursor = 0
	s.mistakes = 0
	s.typedEntries = 0
	s.metrics = stats.Initial()
	s.result = nil
	return s.generation
}

// Load installs the passage for generation gen. It returns false when the
// batch is stale or a passage is already loaded.
func (s *Session) Load(gen uint64, passage model.Passage) bool {
	if gen != s.generation || s.phase != model.PhaseIdle || s.loaded {
		return false
	}
	s.slots = generator.Flatten(passage.Words)
	s.loaded = true
	return true
}

// Extend appends a batch requested through Effect.NeedWords. The cursor
// and counters are unchanged.
func (s *Session) Extend(gen uint64, passage model.Passage) bool {
	if gen != s.generation || s.phase != model.PhaseRunning || !s.extending {
		return false
	}
	s.extending = false
	more := generator.Flatten(passage.Words)
	if len(more) == 0 {
		return true
	}
	if len(s.slots) > 0 {
		s.slots = append(s.slots, model.CharacterSlot{Expected: generator.Separator, Separator: true})
	}
	s.slots = append(s.slots, more...)
	return true
}

// Tick advances the countdown by one second. Ticks from an older
// generation or outside the running phase are ignored and reported as
// not accepted.
func (s *Session) Tick(gen uint64) (Effect, bool) {
	if gen != s.generation || s.phase != model.PhaseRunning {
		return Effect{}, false
	}
	s.remaining--
	s.recompute()
	if s.remaining <= 0 {
		s.remaining = 0
		s.finish()
		return Effect{Finished: true}, true
	}
	return Effect{}, true
}

func (s *Session) start() {
	s.phase = model.PhaseRunning
}

func (s *Session) finish() {
	s.phase = model.PhaseFinished
	s.extending = false
	s.recompute()
	s.result = &Result{
		Metrics: s.metrics,
		Message: stats.Message(s.metrics.WPM),
		Record: model.ScoreRecord{
			WPM:         s.metrics.WPM,
			Accuracy:    s.metrics.Accuracy,
			Characters:  s.metrics.Characters(),
			Mode:        s.settings.Mode,
			DurationSec: s.settings.Duration,
			CreatedAt:   s.now(),
		},
	}
}

func (s *Session) recompute() {
	if m, ok := stats.Recompute(s.settings.Duration, s.remaining, s.typedEntries, s.mistakes); ok {
		s.metrics = m
	}
}

// Settings returns the active settings.
func (s *Session) Settings() model.Settings { return s.settings }

// Generation identifies the current passage lifetime.
func (s *Session) Generation() uint64 { return s.generation }

// Phase returns the lifecycle phase.
func (s *Session) Phase() model.Phase { return s.phase }

// Remaining returns the seconds left on the countdown.
func (s *Session) Remaining() int { return s.remaining }

// Slots returns the flattened passage. Callers must not modify it.
func (s *Session) Slots() []model.CharacterSlot { return s.slots }

// Loaded reports whether a passage has been installed since the last reset.
func (s *Session) Loaded() bool { return s.loaded }

// Extending reports whether an extension batch is outstanding.
func (s *Session) Extending() bool { return s.extending }

// Cursor returns the index of the next slot awaiting a keystroke.
func (s *Session) Cursor() int { return s.cursor }

// Mistakes returns the number of incorrect judgments still standing.
func (s *Session) Mistakes() int { return s.mistakes }

// TypedEntries returns the number of judged keystrokes still standing.
func (s *Session) TypedEntries() int { return s.typedEntries }

// Metrics returns the last published metrics.
func (s *Session) Metrics() model.Metrics { return s.metrics }

// Result returns the outcome once the session has finished.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

func normalize(settings model.Settings) model.Settings {
	if settings.Duration <= 0 {
		settings.Duration = DefaultDuration
	}
	if settings.Mode != model.ModeAdvanced {
		settings.Mode = model.ModeEasy
	}
	if settings.MinWords < 1 {
		settings.MinWords = 1
	}
	if settings.MaxWords < settings.MinWords {
		settings.MaxWords = settings.MinWords
	}
	if settings.Exhaustion != model.ExhaustFinish {
		settings.Exhaustion = model.ExhaustExtend
	}
	if settings.Composed != model.ComposedLast {
		settings.Composed = model.ComposedAll
	}
	return settings
}
