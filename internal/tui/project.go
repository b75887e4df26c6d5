package tui

import "github.com/verte-zerg/timetype/internal/model"

// slotView is the render model for one character slot.
type slotView struct {
	r           rune
	status      model.SlotStatus
	separator   bool
	active      bool
	currentWord bool
}

// project maps the passage and cursor to the render model. At most one
// slot is active, and none when the cursor is past the end.
func project(slots []model.CharacterSlot, cursor int) []slotView {
	start, end := currentWordBounds(slots, cursor)
	out := make([]slotView, len(slots))
	for i, slot := range slots {
		out[i] = slotView{
			r:           slot.Expected,
			status:      slot.Status,
			separator:   slot.Separator,
			active:      i == cursor,
			currentWord: !slot.Separator && i >= start && i < end,
		}
	}
	return out
}

// currentWordBounds returns the half-open range of the word holding the
// cursor. A cursor on a separator belongs to the next word.
func currentWordBounds(slots []model.CharacterSlot, cursor int) (int, int) {
	if cursor < 0 || cursor >= len(slots) {
		return 0, 0
	}
	start := cursor
	if slots[start].Separator {
		start++
	}
	for start > 0 && !slots[start-1].Separator {
		start--
	}
	end := start
	for end < len(slots) && !slots[end].Separator {
		end++
	}
	return start, end
}
