package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/timetype/internal/model"
)

// Drawn in place of a separator that was typed as something else.
const wrongSeparator = '•'

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

func (m *Model) buildStyledRunes(views []slotView) []styledRune {
	out := make([]styledRune, 0, len(views))
	for _, v := range views {
		displayed := v.r
		style := m.styles.pending
		switch v.status {
		case model.StatusCorrect:
			style = m.styles.correct
		case model.StatusIncorrect:
			style = m.styles.incorrect
			if v.separator {
				displayed = wrongSeparator
			}
		default:
			if v.currentWord {
				style = m.styles.currentWord
			}
		}
		if v.active {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: v.separator,
		})
	}
	return out
}

// lineSpan is a half-open range of runes forming one wrapped line.
type lineSpan struct {
	start int
	end   int
}

// wrapLines breaks runes into lines no wider than width, preferring to
// break after a space. A word wider than the line is split hard.
func wrapLines(runes []styledRune, width int) []lineSpan {
	if len(runes) == 0 {
		return nil
	}
	if width <= 0 {
		return []lineSpan{{0, len(runes)}}
	}
	var lines []lineSpan
	start, lineWidth, lastBreak := 0, 0, -1
	for i := 0; i < len(runes); {
		if lineWidth+runes[i].width > width && i > start {
			end := i
			if lastBreak >= start {
				end = lastBreak + 1
			}
			lines = append(lines, lineSpan{start, end})
			start, lineWidth, lastBreak = end, 0, -1
			for j := start; j < i; j++ {
				lineWidth += runes[j].width
				if runes[j].isSpace {
					lastBreak = j
				}
			}
			continue
		}
		lineWidth += runes[i].width
		if runes[i].isSpace {
			lastBreak = i
		}
		i++
	}
	return append(lines, lineSpan{start, len(runes)})
}

// visibleLines picks up to count lines starting one line above the line
// holding index.
func visibleLines(lines []lineSpan, index, count int) []lineSpan {
	if count <= 0 || len(lines) <= count {
		return lines
	}
	current := len(lines) - 1
	for i, l := range lines {
		if index < l.end {
			current = i
			break
		}
	}
	first := max(0, current-1)
	if first+count > len(lines) {
		first = len(lines) - count
	}
	return lines[first : first+count]
}

func renderLines(runes []styledRune, lines []lineSpan) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, item := range runes[l.start:l.end] {
			b.WriteString(item.s)
		}
	}
	return b.String()
}
