// p2048 is 2048 with power-ups, themes and achievements, played in the terminal.
//
// Usage:
//
//	p2048 play               - Play (resumes the saved game)
//	p2048 stats              - Show global statistics
//	p2048 achievements       - List achievements
//	p2048 themes [use <id>]  - List or switch themes
//	p2048 scores             - Show finished games
//	p2048 reset-stats        - Clear global statistics
//	p2048 rules              - Print the effective rule set
//	p2048 serve              - Start SSH server for remote play
//
// Global flags:
//
//	--db <path>         - Database path (default: ~/.p2048/p2048.db)
//	--seed <value>      - RNG seed for reproducible spawns
//	--rules <path>      - Custom rules YAML
//	--player <name>     - Storage namespace (default: local)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048plus/internal/config"
	"github.com/vovakirdan/tui-2048plus/internal/persist"
	"github.com/vovakirdan/tui-2048plus/internal/rng"
	"github.com/vovakirdan/tui-2048plus/internal/storage"
)

var (
	// Global flags
	flagDBPath   string
	flagSeed     int64
	flagRules    string
	flagPlayer   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "p2048",
	Short: "2048+ - sliding tiles with power-ups in your terminal",
	Long: `2048+ is the classic sliding-tile game with power-ups (undo, shuffle,
remove, swap, lock, double), unlockable themes, achievements and statistics.

Available commands:
  play          - Play (resumes your saved game)
  stats         - Show global statistics
  achievements  - List achievements
  themes        - List or switch themes
  scores        - Show finished games
  reset-stats   - Clear global statistics
  rules         - Print the effective rule set
  serve         - Start SSH server for remote play

Examples:
  p2048 play
  p2048 play --size 5
  p2048 --player alice stats
  p2048 serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.p2048/p2048.db", "Path to database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", storage.DefaultNamespace, "Player name (storage namespace)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetStatsCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the CLI logger. Play runs in the alternate screen, so
// logs go to ~/.p2048/p2048.log when toFile is set.
func newLogger(prefix string, toFile bool) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.WarnLevel
	}

	out := os.Stderr
	closeFn := func() {}
	if toFile {
		if f, ferr := openLogFile(); ferr == nil {
			out = f
			closeFn = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn
}

func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".p2048")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "p2048.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// loadRules resolves the rule set using the --rules flag.
func loadRules() config.Rules {
	rules, err := config.LoadRules(flagRules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rules: %v\n", err)
		os.Exit(1)
	}
	return rules
}

// openStore opens the database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// playerSlices returns the persisted slices of the --player namespace.
func playerSlices(store *storage.Store, logger *log.Logger) *persist.Store {
	return persist.New(store.Namespace(flagPlayer), logger)
}

// newSource returns the spawn RNG for the --seed flag.
func newSource() rng.Source {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rng.New(seed)
}
