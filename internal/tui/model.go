// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/timetype/internal/config"
	"github.com/verte-zerg/timetype/internal/generator"
	"github.com/verte-zerg/timetype/internal/model"
	"github.com/verte-zerg/timetype/internal/session"
	"github.com/verte-zerg/timetype/internal/store"
	"github.com/verte-zerg/timetype/internal/wordlist"
	"github.com/verte-zerg/timetype/internal/wordsource"
)

const (
	defaultFetchTimeout = 4 * time.Second
	visibleLineCount    = 4
)

// History persists finished scores.
type History interface {
	InsertScore(ctx context.Context, rec model.ScoreRecord) (int64, error)
	RecentScores(ctx context.Context, limit int) ([]model.ScoreRecord, error)
}

// Preferences persists small key/value settings.
type Preferences interface {
	Preference(ctx context.Context, key string) (string, bool, error)
	SetPreference(ctx context.Context, key, value string) error
}

// Options configures a Model. History and Preferences may be nil, in
// which case scores and theme changes are not persisted.
type Options struct {
	Settings     model.Settings
	Generator    *generator.Generator
	Sources      map[model.Mode]wordsource.Source
	FetchTimeout time.Duration
	History      History
	Preferences  Preferences
	// Theme is used unless a stored preference exists and ThemeLocked is false.
	Theme       string
	ThemeLocked bool
	Logf        func(format string, args ...any)
	Now         func() time.Time
}

type tickMsg struct {
	gen uint64
}

type passageMsg struct {
	gen     uint64
	extend  bool
	passage model.Passage
	err     error
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	session      *session.Session
	gen          *generator.Generator
	sources      map[model.Mode]wordsource.Source
	rescue       wordsource.Source
	fetchTimeout time.Duration
	cancelFetch  context.CancelFunc
	history      History
	prefs        Preferences
	logf         func(format string, args ...any)

	theme  Theme
	styles styles

	spinner  spinner.Model
	spinning bool

	width   int
	height  int
	focused bool

	scores []model.ScoreRecord
}

// NewModel constructs a typing TUI model.
func NewModel(opts Options) *Model {
	m := &Model{
		session:      session.New(opts.Settings, opts.Now),
		gen:          opts.Generator,
		sources:      opts.Sources,
		fetchTimeout: opts.FetchTimeout,
		history:      opts.History,
		prefs:        opts.Preferences,
		logf:         opts.Logf,
		focused:      true,
	}
	if m.gen == nil {
		m.gen = generator.New()
	}
	if m.fetchTimeout <= 0 {
		m.fetchTimeout = defaultFetchTimeout
	}
	if m.logf == nil {
		m.logf = func(string, ...any) {}
	}
	m.rescue = wordsource.NewLocal(wordlist.Easy(), rand.New(rand.NewSource(time.Now().UnixNano())))
	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.setTheme(m.initialTheme(opts))
	m.loadScores()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.requestPassage(false), m.startSpinner())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.FocusMsg:
		m.focused = true
		return m, nil
	case tea.BlurMsg:
		m.focused = false
		return m, nil
	case spinner.TickMsg:
		if !m.loading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tickMsg:
		return m, m.handleTick(msg)
	case passageMsg:
		return m, m.handlePassage(msg)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.stopFetch()
		return tea.Quit
	case tea.KeyCtrlR, tea.KeyEsc, tea.KeyTab:
		return m.reset()
	case tea.KeyEnter:
		if m.session.Phase() == model.PhaseFinished {
			return m.reset()
		}
		return nil
	case tea.KeyCtrlD:
		settings := m.session.Settings()
		settings.Duration = config.NextDuration(settings.Duration)
		return m.configure(settings)
	case tea.KeyCtrlA:
		settings := m.session.Settings()
		if settings.Mode == model.ModeAdvanced {
			settings.Mode = model.ModeEasy
		} else {
			settings.Mode = model.ModeAdvanced
		}
		return m.configure(settings)
	case tea.KeyCtrlT:
		m.toggleTheme()
		return nil
	case tea.KeyBackspace, tea.KeyDelete:
		return m.apply(model.Keystroke{Kind: model.KeyBackspace})
	case tea.KeySpace:
		return m.apply(model.Keystroke{Kind: model.KeyInsert, Runes: []rune{' '}})
	case tea.KeyRunes:
		return m.apply(model.Keystroke{Kind: model.KeyInsert, Runes: msg.Runes})
	default:
		return nil
	}
}

func (m *Model) apply(k model.Keystroke) tea.Cmd {
	eff := m.session.ApplyKeystroke(k)
	var cmds []tea.Cmd
	if eff.Started {
		cmds = append(cmds, tickCmd(m.session.Generation()))
	}
	if eff.NeedWords {
		cmds = append(cmds, m.requestPassage(true), m.startSpinner())
	}
	if eff.Finished {
		m.onFinish()
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	eff, ok := m.session.Tick(msg.gen)
	if !ok {
		return nil
	}
	if eff.Finished {
		m.onFinish()
		return nil
	}
	return tickCmd(msg.gen)
}

func (m *Model) handlePassage(msg passageMsg) tea.Cmd {
	if msg.gen != m.session.Generation() {
		return nil
	}
	passage := msg.passage
	if msg.err != nil {
		m.logf("failed to load words, using built-in list: %v", msg.err)
		settings := m.session.Settings()
		var err error
		passage, err = m.gen.Generate(context.Background(), m.rescue, settings.MinWords, settings.MaxWords)
		if err != nil {
			m.logf("failed to load built-in words: %v", err)
			return nil
		}
	}
	if msg.extend {
		m.session.Extend(msg.gen, passage)
		return nil
	}
	m.session.Load(msg.gen, passage)
	return nil
}

func (m *Model) reset() tea.Cmd {
	m.stopFetch()
	m.session.Reset()
	return tea.Batch(m.requestPassage(false), m.startSpinner())
}

func (m *Model) configure(settings model.Settings) tea.Cmd {
	m.stopFetch()
	m.session.Configure(settings)
	return tea.Batch(m.requestPassage(false), m.startSpinner())
}

func (m *Model) requestPassage(extend bool) tea.Cmd {
	gen := m.session.Generation()
	settings := m.session.Settings()
	src, ok := m.sources[settings.Mode]
	if !ok || src == nil {
		src = m.rescue
	}
	g := m.gen
	ctx, cancel := context.WithTimeout(context.Background(), m.fetchTimeout)
	m.cancelFetch = cancel
	return func() tea.Msg {
		defer cancel()
		passage, err := g.Generate(ctx, src, settings.MinWords, settings.MaxWords)
		return passageMsg{gen: gen, extend: extend, passage: passage, err: err}
	}
}

func (m *Model) stopFetch() {
	if m.cancelFetch != nil {
		m.cancelFetch()
		m.cancelFetch = nil
	}
}

func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) loading() bool {
	return !m.session.Loaded() || m.session.Extending()
}

func (m *Model) onFinish() {
	m.stopFetch()
	res, ok := m.session.Result()
	if !ok || m.history == nil {
		return
	}
	ctx := context.Background()
	if _, err := m.history.InsertScore(ctx, res.Record); err != nil {
		m.logf("failed to save score: %v", err)
		m.scores = prependScore(m.scores, res.Record)
		return
	}
	m.loadScores()
}

func (m *Model) loadScores() {
	if m.history == nil {
		return
	}
	scores, err := m.history.RecentScores(context.Background(), store.HistoryCap)
	if err != nil {
		m.logf("failed to load score history: %v", err)
		return
	}
	m.scores = scores
}

func prependScore(scores []model.ScoreRecord, rec model.ScoreRecord) []model.ScoreRecord {
	out := append([]model.ScoreRecord{rec}, scores...)
	if len(out) > store.HistoryCap {
		out = out[:store.HistoryCap]
	}
	return out
}

func (m *Model) initialTheme(opts Options) string {
	name := opts.Theme
	if opts.ThemeLocked || m.prefs == nil {
		return name
	}
	stored, ok, err := m.prefs.Preference(context.Background(), ThemePreferenceKey)
	if err != nil {
		m.logf("failed to read theme preference: %v", err)
		return name
	}
	if ok {
		if _, known := Themes[stored]; known {
			return stored
		}
	}
	return name
}

func (m *Model) setTheme(name string) {
	m.theme = ThemeByName(name)
	m.styles = newStyles(m.theme)
	m.spinner.Style = m.styles.accent
}

func (m *Model) toggleTheme() {
	m.setTheme(m.theme.Toggle().Name)
	if m.prefs == nil {
		return
	}
	if err := m.prefs.SetPreference(context.Background(), ThemePreferenceKey, m.theme.Name); err != nil {
		m.logf("failed to save theme preference: %v", err)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{m.renderHeader(), "", m.renderBody(), "", m.renderFooter()}
	if m.session.Phase() != model.PhaseRunning {
		if history := m.renderHistory(); history != "" {
			sections = append(sections, "", history)
		}
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(1, int(float64(m.width)*0.70))
}

func (m *Model) renderHeader() string {
	settings := m.session.Settings()
	counter := m.styles.accent.Render(fmt.Sprintf("%d", m.session.Remaining()))
	return fmt.Sprintf("%s  %s",
		counter,
		m.styles.footer.Render(fmt.Sprintf("%s · %ds · %s", settings.Mode, settings.Duration, m.theme.Name)),
	)
}

func (m *Model) renderBody() string {
	switch {
	case m.session.Phase() == model.PhaseFinished:
		return m.renderResult()
	case !m.session.Loaded():
		return m.spinner.View() + " " + m.styles.footer.Render("loading words...")
	}
	body := m.renderPassage()
	if m.session.Phase() == model.PhaseIdle {
		prompt := "start typing to begin"
		if !m.focused {
			prompt = "focus the terminal to start typing"
		}
		body = m.styles.footer.Render(prompt) + "\n\n" + body
	}
	if m.session.Extending() {
		body += "\n" + m.spinner.View()
	}
	return body
}

func (m *Model) renderPassage() string {
	cursor := m.session.Cursor()
	views := project(m.session.Slots(), cursor)
	runes := m.buildStyledRunes(views)
	width := m.contentWidth()
	lines := wrapLines(runes, width)
	if width > 0 {
		lines = visibleLines(lines, cursor, visibleLineCount)
	}
	return lipgloss.NewStyle().Width(width).Render(renderLines(runes, lines))
}

func (m *Model) renderResult() string {
	res, ok := m.session.Result()
	if !ok {
		return ""
	}
	lines := []string{
		m.styles.accent.Render(res.Message),
		"",
		fmt.Sprintf("%d WPM · %d%% accuracy · %s chars", res.Metrics.WPM, res.Metrics.Accuracy, res.Metrics.Characters()),
		"",
		m.styles.footer.Render("[enter] restart"),
	}
	return m.styles.panel.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	metrics := m.session.Metrics()
	segments := []string{
		fmt.Sprintf("WPM %d", metrics.WPM),
		fmt.Sprintf("Accuracy %d%%", metrics.Accuracy),
		fmt.Sprintf("Chars %s", metrics.Characters()),
	}
	keys := "ctrl+r restart · ctrl+d time · ctrl+a mode · ctrl+t theme · ctrl+c quit"
	return m.styles.footer.Render(strings.Join(segments, "  ") + "\n" + keys)
}

func (m *Model) renderHistory() string {
	if len(m.scores) == 0 {
		return ""
	}
	lines := []string{m.styles.footer.Render("Recent")}
	for _, s := range m.scores {
		lines = append(lines, fmt.Sprintf("%3d WPM  %3d%%  %-9s %s",
			s.WPM, s.Accuracy, s.Characters, s.CreatedAt.Local().Format("Jan 2 15:04")))
	}
	return strings.Join(lines, "\n")
}
