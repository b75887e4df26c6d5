// Package main provides the CLI entrypoint for timetype.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/timetype/internal/config"
	"github.com/verte-zerg/timetype/internal/generator"
	"github.com/verte-zerg/timetype/internal/historyui"
	"github.com/verte-zerg/timetype/internal/model"
	"github.com/verte-zerg/timetype/internal/stats"
	"github.com/verte-zerg/timetype/internal/store"
	"github.com/verte-zerg/timetype/internal/tui"
	"github.com/verte-zerg/timetype/internal/wordlist"
	"github.com/verte-zerg/timetype/internal/wordsource"
)

var (
	practiceRaw   = config.DefaultRaw()
	practiceDebug string

	historyClear bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "timetype",
		Short:         "Timed typing speed trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&practiceRaw.Duration, "duration", practiceRaw.Duration, "test length in seconds (15, 30, 60, 120)")
	flags.StringVar(&practiceRaw.Mode, "mode", practiceRaw.Mode, "word mode: easy or advanced")
	flags.IntVar(&practiceRaw.MinWords, "min-words", practiceRaw.MinWords, "minimum words per passage")
	flags.IntVar(&practiceRaw.MaxWords, "max-words", practiceRaw.MaxWords, "maximum words per passage")
	flags.StringVar(&practiceRaw.OnExhaust, "on-exhaust", practiceRaw.OnExhaust, "at the end of the passage: extend or finish")
	flags.StringVar(&practiceRaw.ComposedInput, "composed-input", practiceRaw.ComposedInput, "multi-character input: all or last")
	flags.StringVar(&practiceRaw.Theme, "theme", practiceRaw.Theme, "color theme: dark or light")
	flags.StringVar(&practiceRaw.EasyWords, "easy-words", "", "path to a custom easy word list")
	flags.StringVar(&practiceRaw.AdvancedWords, "advanced-words", "", "path to a custom advanced word list")
	flags.StringVar(&practiceRaw.Endpoint, "endpoint", "", "dictionary endpoint (default Wordnik)")
	flags.StringVar(&practiceRaw.APIKey, "api-key", "", "dictionary API key (env "+config.EnvAPIKey+")")
	flags.IntVar(&practiceRaw.MinCorpusCount, "min-corpus-count", practiceRaw.MinCorpusCount, "minimum corpus count for dictionary words")
	flags.IntVar(&practiceRaw.MinLength, "min-length", practiceRaw.MinLength, "minimum advanced word length")
	flags.IntVar(&practiceRaw.MaxLength, "max-length", practiceRaw.MaxLength, "maximum advanced word length")
	flags.StringVar(&practiceRaw.Timeout, "timeout", practiceRaw.Timeout, "dictionary request timeout")
	flags.StringVar(&practiceDebug, "debug", "", "write diagnostics to this file")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	logf := func(string, ...any) {}
	if practiceDebug != "" {
		f, err := tea.LogToFile(practiceDebug, "timetype")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logErrf("failed to close debug log: %v\n", cerr)
			}
		}()
		logf = log.Printf
	}

	resolved := resolveConfig(cmd, &practiceRaw)
	easy, advanced := loadWordLists(resolved)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open db, scores will not be saved: %v\n", err)
		st = nil
	}
	if st != nil {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	opts := tui.Options{
		Settings:     resolved.Settings,
		Generator:    generator.New(),
		Sources:      buildSources(easy, advanced, buildRemote(resolved.Dictionary), time.Now().UnixNano(), logf),
		FetchTimeout: resolved.Dictionary.Timeout,
		Theme:        resolved.Theme,
		ThemeLocked:  themeLocked(cmd),
		Logf:         logf,
	}
	if st != nil {
		opts.History = st
		opts.Preferences = st
	}

	program := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveConfig layers the .env file, the config file and the environment
// under the flags already parsed into raw.
func resolveConfig(cmd *cobra.Command, raw *config.Raw) config.Resolved {
	if err := config.LoadEnv(config.DefaultEnvPath()); err != nil {
		logErrf("failed to load .env: %v\n", err)
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		logErrf("failed to load config, using defaults: %v\n", err)
	}
	changed := cmd.Flags().Changed
	config.ApplyFile(raw, fileCfg, changed)
	if !changed("api-key") {
		if key := config.APIKeyFromEnv(); key != "" {
			raw.APIKey = key
		}
	}
	return config.Resolve(*raw, func(format string, args ...any) {
		logErrf("config: "+format+"\n", args...)
	})
}

// themeLocked reports whether the theme was chosen explicitly, in which
// case the stored preference is ignored.
func themeLocked(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("theme")
}

func loadWordLists(res config.Resolved) (easy, advanced []string) {
	easy, err := wordlist.LoadOr(res.EasyWords, wordlist.Easy())
	if err != nil {
		logErrf("failed to load easy word list, using built-in list: %v\n", err)
		easy = wordlist.Easy()
	}
	advanced, err = wordlist.LoadOr(res.AdvancedWords, wordlist.Advanced())
	if err != nil {
		logErrf("failed to load advanced word list, using built-in list: %v\n", err)
		advanced = wordlist.Advanced()
	}
	filtered := wordlist.Apply(advanced, wordlist.FilterLowerASCII, wordlist.FilterLength(res.Dictionary.MinLength, res.Dictionary.MaxLength))
	if len(filtered) == 0 {
		logErrf("no advanced words between %d and %d letters, using the full list\n",
			res.Dictionary.MinLength, res.Dictionary.MaxLength)
		return easy, advanced
	}
	return easy, filtered
}

// buildRemote returns nil when no API key is configured.
func buildRemote(dict config.Dictionary) *wordsource.Remote {
	if strings.TrimSpace(dict.APIKey) == "" {
		return nil
	}
	return &wordsource.Remote{
		Client:   &http.Client{Timeout: dict.Timeout},
		Endpoint: dict.Endpoint,
		APIKey:   dict.APIKey,
		Filter: wordsource.Filter{
			MinCorpusCount: dict.MinCorpusCount,
			MinLength:      dict.MinLength,
			MaxLength:      dict.MaxLength,
		},
	}
}

func buildSources(easy, advanced []string, remote *wordsource.Remote, seed int64, logf func(string, ...any)) map[model.Mode]wordsource.Source {
	deps := wordsource.Deps{
		EasyWords:     easy,
		AdvancedWords: advanced,
		Remote:        remote,
		Seed:          seed,
		Logf:          logf,
	}
	sources := make(map[model.Mode]wordsource.Source, 2)
	for i, mode := range []model.Mode{model.ModeEasy, model.ModeAdvanced} {
		deps.Seed = seed + int64(i)
		sources[mode] = wordsource.ForMode(mode, deps)
	}
	return sources
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent scores",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().BoolVar(&historyClear, "clear", false, "delete all saved scores")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	if historyClear {
		if err := st.ClearScores(ctx); err != nil {
			return fmt.Errorf("failed to clear scores: %w", err)
		}
		logErrln("Cleared score history.")
		return nil
	}

	records, err := st.RecentScores(ctx, store.HistoryCap)
	if err != nil {
		return fmt.Errorf("failed to load scores: %w", err)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return printHistory(cmd.OutOrStdout(), records)
	}
	program := tea.NewProgram(historyui.NewModel(records))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func printHistory(w io.Writer, records []model.ScoreRecord) error {
	if err := stats.RenderHistory(w, records); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the config file unless it already exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# timetype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# duration = %d              # Seconds: 15, 30, 60 or 120
# mode = %q              # easy or advanced
# min-words = %d             # Minimum words per passage
# max-words = %d             # Maximum words per passage
# on-exhaust = %q      # extend or finish
# composed-input = %q     # all or last
# theme = %q             # dark or light
# easy-words = ""            # Path to a custom easy word list
# advanced-words = ""        # Path to a custom advanced word list

[dictionary]
# endpoint = %q
# api-key = ""               # Or set %s
# min-corpus-count = %d
# min-length = %d
# max-length = %d
# timeout = %q
`,
		config.DefaultDuration,
		config.DefaultMode,
		config.DefaultMinWords,
		config.DefaultMaxWords,
		config.DefaultExhaustion,
		config.DefaultComposed,
		config.DefaultTheme,
		wordsource.DefaultEndpoint,
		config.EnvAPIKey,
		config.DefaultMinCorpusCount,
		config.DefaultMinLength,
		config.DefaultMaxLength,
		config.DefaultTimeout.String(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
