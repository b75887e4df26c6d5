package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/verte-zerg/timetype/internal/model"
	"github.com/verte-zerg/timetype/internal/stats"
)

var fixedNow = func() time.Time { return time.Unix(1700000000, 0) }

func newLoaded(t *testing.T, settings model.Settings, words ...string) *Session {
	t.Helper()
	s := New(settings, fixedNow)
	if !s.Load(s.Generation(), model.Passage{Words: words}) {
		t.Fatalf("expected passage to load")
	}
	return s
}

func typeString(s *Session, text string) Effect {
	var eff Effect
	for _, r := range text {
		eff.merge(s.ApplyKeystroke(model.Keystroke{Kind: model.KeyInsert, Runes: []rune{r}}))
	}
	return eff
}

func backspace(s *Session) {
	s.ApplyKeystroke(model.Keystroke{Kind: model.KeyBackspace})
}

func checkInvariants(t *testing.T, s *Session) {
	t.Helper()
	if s.Mistakes() < 0 || s.Mistakes() > s.TypedEntries() {
		t.Fatalf("mistakes %d out of range for %d entries", s.Mistakes(), s.TypedEntries())
	}
	if s.Cursor() < 0 || s.Cursor() > len(s.Slots()) {
		t.Fatalf("cursor %d out of range for %d slots", s.Cursor(), len(s.Slots()))
	}
}

func TestNewSessionIsIdle(t *testing.T) {
	s := New(model.Settings{Duration: 30}, fixedNow)
	if s.Phase() != model.PhaseIdle {
		t.Fatalf("expected idle, got %s", s.Phase())
	}
	if s.Remaining() != 30 || s.Cursor() != 0 || s.Loaded() {
		t.Fatalf("unexpected initial state: remaining=%d cursor=%d loaded=%v", s.Remaining(), s.Cursor(), s.Loaded())
	}
	if s.Metrics() != stats.Initial() {
		t.Fatalf("expected initial metrics, got %+v", s.Metrics())
	}
}

func TestNormalizeDefaults(t *testing.T) {
	s := New(model.Settings{}, nil)
	got := s.Settings()
	if got.Duration != DefaultDuration || got.Mode != model.ModeEasy {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	if got.Exhaustion != model.ExhaustExtend || got.Composed != model.ComposedAll {
		t.Fatalf("unexpected policy defaults: %+v", got)
	}
	if got.MinWords != 1 || got.MaxWords != 1 {
		t.Fatalf("unexpected word bounds: %+v", got)
	}
}

func TestFirstKeystrokeStarts(t *testing.T) {
	s := newLoaded(t, model.Settings{Duration: 60}, "hi")
	eff := typeString(s, "h")
	if !eff.Started || s.Phase() != model.PhaseRunning {
		t.Fatalf("expected the first keystroke to start the session")
	}
	if s.Slots()[0].Status != model.StatusCorrect || s.Cursor() != 1 || s.TypedEntries() != 1 {
		t.Fatalf("expected the first keystroke to be judged")
	}
	if eff := typeString(s, "i"); eff.Started {
		t.Fatalf("expected only the first keystroke to start")
	}
}

func TestKeystrokeBeforeLoadIgnored(t *testing.T) {
	s := New(model.Settings{Duration: 60}, fixedNow)
	eff := typeString(s, "a")
	if eff.Started || s.Phase() != model.PhaseIdle || s.TypedEntries() != 0 {
		t.Fatalf("expected keystroke before load to be ignored")
	}
}

func TestMismatchCountsMistake(t *testing.T) {
	s := newLoaded(t, model.Settings{}, "ab")
	typeString(s, "ax")
	if s.Mistakes() != 1 || s.TypedEntries() != 2 {
		t.Fatalf("expected 1 mistake of 2 entries, got %d of %d", s.Mistakes(), s.TypedEntries())
	}
	if s.Slots()[1].Status != model.StatusIncorrect {
		t.Fatalf("expected second slot incorrect")
	}
}

func TestSeparatorJudged(t *testing.T) {
	s := newLoaded(t, model.Settings{}, "a", "b")
	typeString(s, "a b")
	if s.Mistakes() != 0 || s.Cursor() != 3 {
		t.Fatalf("expected separator to be typed as space, mistakes=%d cursor=%d", s.Mistakes(), s.Cursor())
	}
}

func TestEmptyInsertIgnored(t *testing.T) {
	s := newLoaded(t, model.Settings{}, "ab")
	eff := s.ApplyKeystroke(model.Keystroke{Kind: model.KeyInsert})
	if eff.Started || s.Phase() != model.PhaseIdle || s.Cursor() != 0 {
		t.Fatalf("expected empty event to be ignored")
	}
}

func TestBackspaceAtZeroIsNoop(t *testing.T) {
	s := newLoaded(t, model.Settings{}, "ab")
	backspace(s)
	if s.Cursor() != 0 || s.TypedEntries() != 0 || s.Mistakes() != 0 || s.Phase() != model.PhaseIdle {
		t.Fatalf("expected backspace at zero to be a no-op")
	}
}

func TestBackspaceUndoesMistake(t *testing.T) {
	s := newLoaded(t, model.Settings{}, "abc")
	typeString(s, "ax")
	backspace(s)
	if s.Mistakes() != 0 || s.TypedEntries() != 1 || s.Cursor() != 1 {
		t.Fatalf("unexpected state after undo: mistakes=%d typed=%d cursor=%d", s.Mistakes(), s.TypedEntries(), s.Cursor())
	}
	if s.Slots()[1].Status != model.StatusUnset {
		t.Fatalf("expected slot judgment cleared")
	}
}

func TestBackspaceIsLeftInverse(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	alphabet := []rune("abcdefgh ")
	for trial := 0; trial < 200; trial++ {
		s := newLoaded(t, model.Settings{}, "abcdef", "ghabcd", "efgh")
		prefix := 1 + rnd.Intn(10)
		for i := 0; i < prefix; i++ {
			s.ApplyKeystroke(model.Keystroke{Kind: model.KeyInsert, Runes: []rune{alphabet[rnd.Intn(len(alphabet))]}})
		}
		cursor, typed, mistakes := s.Cursor(), s.TypedEntries(), s.Mistakes()
		status := s.Slots()[cursor].Status

		s.ApplyKeystroke(model.Keystroke{Kind: model.KeyInsert, Runes: []rune{alphabet[rnd.Intn(len(alphabet))]}})
		backspace(s)

		if s.Cursor() != cursor || s.TypedEntries() != typed || s.Mistakes() != mistakes {
			t.Fatalf("trial %d: backspace did not restore counters", trial)
		}
		if s.Slots()[cursor].Status != status {
			t.Fatalf("trial %d: backspace did not restore slot judgment", trial)
		}
	}
}

func TestInvariantsUnderRandomInput(t *testing.T) {
	rnd := rand.New(rand.NewSource(8))
	s := newLoaded(t, model.Settings{Exhaustion: model.ExhaustExtend}, "one", "two", "three")
	for i := 0; i < 2000; i++ {
		if rnd.Intn(3) == 0 {
			backspace(s)
		} else {
			s.ApplyKeystroke(model.Keystroke{Kind: model.KeyInsert, Runes: []rune{rune('a' + rnd.Intn(26))}})
		}
		checkInvariants(t, s)
	}
}

func TestExactTypingIsPerfect(t *testing.T) {
	s := newLoaded(t, model.Settings{Duration: 15}, "the", "quick", "fox")
	typeString(s, "the quick fo")
	for i := 0; i < 15; i++ {
		s.Tick(s.Generation())
	}
	res, ok := s.Result()
	if !ok {
		t.Fatalf("expected a result after the countdown")
	}
	if s.Mistakes() != 0 || res.Metrics.Accuracy != 100 {
		t.Fatalf("expected perfect accuracy, got %+v", res.Metrics)
	}
}

func TestTickCountdownFinishes(t *testing.T) {
	s := newLoaded(t, model.Settings{Duration: 15, Mode: model.ModeAdvanced}, "alpha")
	typeString(s, "alp")
	for i := 0; i < 14; i++ {
		eff, ok := s.Tick(s.Generation())
		if !ok || eff.Finished {
			t.Fatalf("tick %d: expected accepted, unfinished tick", i)
		}
		if s.Remaining() != 15-(i+1) {
			t.Fatalf("tick %d: expected remaining %d, got %d", i, 15-(i+1), s.Remaining())
		}
	}
	eff, ok := s.Tick(s.Generation())
	if !ok || !eff.Finished || s.Phase() != model.PhaseFinished {
		t.Fatalf("expected final tick to finish the session")
	}
	res, _ := s.Result()
	if res.Record.Mode != model.ModeAdvanced || res.Record.DurationSec != 15 || res.Record.Characters != "3/3" {
		t.Fatalf("unexpected record: %+v", res.Record)
	}
	if !res.Record.CreatedAt.Equal(fixedNow()) {
		t.Fatalf("expected record timestamp from clock")
	}
	if res.Message != stats.Message(res.Metrics.WPM) {
		t.Fatalf("expected message from WPM table")
	}
	if _, ok := s.Tick(s.Generation()); ok {
		t.Fatalf("expected ticks after finish to be ignored")
	}
}

func TestFinishedRejectsKeystrokes(t *testing.T) {
	s := newLoaded(t, model.Settings{Duration: 15}, "alpha")
	typeString(s, "a")
	for i := 0; i < 15; i++ {
		s.Tick(s.Generation())
	}
	cursor, typed := s.Cursor(), s.TypedEntries()
	typeString(s, "l")
	backspace(s)
	if s.Cursor() != cursor || s.TypedEntries() != typed {
		t.Fatalf("expected finished session to ignore input")
	}
}

func TestTickWhileIdleIgnored(t *testing.T) {
	s := newLoaded(t, model.Settings{Duration: 30}, "alpha")
	if _, ok := s.Tick(s.Generation()); ok || s.Remaining() != 30 {
		t.Fatalf("expected countdown frozen while idle")
	}
}

func TestResetWhileRunningCancelsTicks(t *testing.T) {
	s := newLoaded(t, model.Settings{Duration: 30}, "alpha")
	typeString(s, "al")
	oldGen := s.Generation()
	s.Tick(oldGen)

	newGen := s.Reset()
	if newGen == oldGen {
		t.Fatalf("expected a new generation")
	}
	if s.Phase() != model.PhaseIdle || s.Remaining() != 30 || s.Cursor() != 0 || s.TypedEntries() != 0 || s.Mistakes() != 0 {
		t.Fatalf("expected a fresh idle session after reset")
	}
	if _, ok := s.Tick(oldGen); ok {
		t.Fatalf("expected stale tick to be ignored")
	}
	if s.Remaining() != 30 {
		t.Fatalf("expected no tick-driven mutation after reset")
	}
}

func TestStaleLoadDiscarded(t *testing.T) {
	s := New(model.Settings{}, fixedNow)
	oldGen := s.Generation()
	s.Reset()
	if s.Load(oldGen, model.Passage{Words: []string{"stale"}}) {
		t.Fatalf("expected stale passage to be discarded")
	}
	if s.Loaded() {
		t.Fatalf("expected session still waiting for a passage")
	}
	if !s.Load(s.Generation(), model.Passage{Words: []string{"fresh"}}) {
		t.Fatalf("expected current passage to load")
	}
	if s.Load(s.Generation(), model.Passage{Words: []string{"twice"}}) {
		t.Fatalf("expected a second load to be rejected")
	}
}

func TestConfigureResets(t *testing.T) {
	s := newLoaded(t, model.Settings{Duration: 30}, "alpha")
	typeString(s, "a")
	gen := s.Configure(model.Settings{Duration: 120, Mode: model.ModeAdvanced})
	if gen != s.Generation() || s.Phase() != model.PhaseIdle || s.Remaining() != 120 || s.Loaded() {
		t.Fatalf("expected configure to reset")
	}
	if s.Settings().Mode != model.ModeAdvanced {
		t.Fatalf("expected advanced mode")
	}
}

func TestExhaustFinish(t *testing.T) {
	s := newLoaded(t, model.Settings{Duration: 60, Exhaustion: model.ExhaustFinish}, "ab")
	typeString(s, "a")
	s.Tick(s.Generation())
	eff := typeString(s, "b")
	if !eff.Finished || s.Phase() != model.PhaseFinished {
		t.Fatalf("expected exhaustion to finish the session")
	}
	if eff.NeedWords {
		t.Fatalf("expected no extension under finish policy")
	}
	res, ok := s.Result()
	if !ok || res.Metrics.Characters() != "2/2" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestExhaustExtend(t *testing.T) {
	s := newLoaded(t, model.Settings{Duration: 60, Exhaustion: model.ExhaustExtend}, "ab")
	typeString(s, "a")
	s.Tick(s.Generation())
	eff := typeString(s, "b")
	if !eff.NeedWords || s.Phase() != model.PhaseRunning || !s.Extending() {
		t.Fatalf("expected extension request while running")
	}
	metrics := s.Metrics()

	if eff := typeString(s, "z"); eff.NeedWords || s.TypedEntries() != 2 {
		t.Fatalf("expected keystrokes at the end to be ignored while extending")
	}

	if !s.Extend(s.Generation(), model.Passage{Words: []string{"cd"}}) {
		t.Fatalf("expected extension to apply")
	}
	if s.Cursor() != 2 || len(s.Slots()) != 5 || !s.Slots()[2].Separator {
		t.Fatalf("unexpected extended passage: cursor=%d slots=%d", s.Cursor(), len(s.Slots()))
	}
	if s.Metrics() != metrics || s.Phase() != model.PhaseRunning {
		t.Fatalf("expected metrics and phase unchanged by extension")
	}
	typeString(s, " cd")
	if s.Mistakes() != 0 || s.TypedEntries() != 5 {
		t.Fatalf("expected extended passage to be typable")
	}
	if s.Extend(s.Generation()-1, model.Passage{Words: []string{"old"}}) {
		t.Fatalf("expected stale extension to be discarded")
	}
}

func TestExtendRejectedWithoutRequest(t *testing.T) {
	s := newLoaded(t, model.Settings{}, "abc")
	typeString(s, "a")
	if s.Extend(s.Generation(), model.Passage{Words: []string{"x"}}) {
		t.Fatalf("expected unrequested extension to be rejected")
	}
}

func TestComposedAll(t *testing.T) {
	s := newLoaded(t, model.Settings{Composed: model.ComposedAll}, "abc")
	s.ApplyKeystroke(model.Keystroke{Kind: model.KeyInsert, Runes: []rune("abx")})
	if s.Cursor() != 3 || s.TypedEntries() != 3 || s.Mistakes() != 1 {
		t.Fatalf("expected every rune judged, cursor=%d typed=%d mistakes=%d", s.Cursor(), s.TypedEntries(), s.Mistakes())
	}
}

func TestComposedLast(t *testing.T) {
	s := newLoaded(t, model.Settings{Composed: model.ComposedLast}, "abc")
	s.ApplyKeystroke(model.Keystroke{Kind: model.KeyInsert, Runes: []rune("za")})
	if s.Cursor() != 1 || s.TypedEntries() != 1 || s.Mistakes() != 0 {
		t.Fatalf("expected only the last rune judged")
	}
}

func TestMetricsRecomputedOnKeystrokes(t *testing.T) {
	s := newLoaded(t, model.Settings{Duration: 60}, "abcdefghij")
	typeString(s, "abcde")
	if s.Metrics() != stats.Initial() {
		t.Fatalf("expected metrics unchanged before time elapses")
	}
	for i := 0; i < 30; i++ {
		s.Tick(s.Generation())
	}
	typeString(s, "fghiz")
	m := s.Metrics()
	if m.Typed != 10 || m.Correct != 9 || m.Accuracy != 90 {
		t.Fatalf("unexpected metrics %+v", m)
	}
	backspace(s)
	if s.Metrics().Typed != 9 || s.Metrics().Accuracy != 100 {
		t.Fatalf("expected backspace to recompute metrics, got %+v", s.Metrics())
	}
}
