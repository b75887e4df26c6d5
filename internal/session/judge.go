package session

import "github.com/verte-zerg/timetype/internal/model"

// ApplyKeystroke judges one input event against the passage.
func (s *Session) ApplyKeystroke(k model.Keystroke) Effect {
	if s.phase == model.PhaseFinished {
		return Effect{}
	}
	switch k.Kind {
	case model.KeyBackspace:
		s.backspace()
		return Effect{}
	case model.KeyInsert:
		runes := k.Runes
		if len(runes) == 0 {
			return Effect{}
		}
		if s.settings.Composed == model.ComposedLast {
			runes = runes[len(runes)-1:]
		}
		var eff Effect
		for _, r := range runes {
			eff.merge(s.insert(r))
			if s.phase == model.PhaseFinished {
				break
			}
		}
		return eff
	default:
		return Effect{}
	}
}

func (s *Session) insert(r rune) Effect {
	if !s.loaded || s.cursor >= len(s.slots) {
		return Effect{}
	}
	var eff Effect
	if s.phase == model.PhaseIdle {
		s.start()
		eff.Started = true
	}

	s.typedEntries++
	slot := &s.slots[s.cursor]
	if r == slot.Expected {
		slot.Status = model.StatusCorrect
	} else {
		slot.Status = model.StatusIncorrect
		s.mistakes++
	}
	s.cursor++
	s.recompute()

	if s.cursor < len(s.slots) {
		return eff
	}
	switch s.settings.Exhaustion {
	case model.ExhaustFinish:
		s.finish()
		eff.Finished = true
	default:
		if !s.extending {
			s.extending = true
			eff.NeedWords = true
		}
	}
	return eff
}

func (s *Session) backspace() {
	if s.cursor == 0 {
		return
	}
	s.cursor--
	slot := &s.slots[s.cursor]
	if slot.Status == model.StatusIncorrect {
		s.mistakes--
	}
	slot.Status = model.StatusUnset
	s.typedEntries--
	s.recompute()
}
