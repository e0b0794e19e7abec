// Package main provides the CLI entry point for qtab.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/pprof"

	"github.com/spf13/cobra"

	"github.com/halprin/qtab/internal/buffer"
	"github.com/halprin/qtab/internal/config"
	"github.com/halprin/qtab/internal/history"
	"github.com/halprin/qtab/internal/logging"
	"github.com/halprin/qtab/internal/query"
	"github.com/halprin/qtab/internal/table"
	"github.com/halprin/qtab/internal/tui"
)

var version = "dev"

var (
	verbose    bool
	cpuProfile string
	logFile    *os.File
	ringLogs   *logging.RingHandler
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "qtab",
		Version: version,
		Short:   "Interactively query local CSV/JSON files with SQL",
		Long: `qtab loads CSV/JSON files as in-memory tables and lets you explore
them with a SQL subset (SELECT/FROM/WHERE/ORDER BY/LIMIT/OFFSET, string
methods, date helpers) through a full-screen keyboard-driven grid.

Run 'qtab open <file>...' to start the interactive UI, or
'qtab query <file> <sql>' to run one query headlessly.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if verbose {
				ringLogs = logging.NewRingHandler(1000, slog.LevelDebug)
				logWriter := os.Stderr
				if tui.IsTerminal() {
					logPath := filepath.Join(os.TempDir(), "qtab.log")
					f, err := os.Create(logPath)
					if err == nil {
						logFile = f
						logWriter = f
						fmt.Fprintf(os.Stderr, "Verbose logs: %s\n", logPath)
					}
				}
				handlers := slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: slog.LevelDebug})
				slog.SetDefault(slog.New(multiHandler{handlers, ringLogs}))
			}
			if cpuProfile != "" {
				f, err := os.Create(filepath.Clean(cpuProfile))
				if err != nil {
					return fmt.Errorf("creating CPU profile: %w", err)
				}
				if err := pprof.StartCPUProfile(f); err != nil {
					_ = f.Close()
					return fmt.Errorf("starting CPU profile: %w", err)
				}
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logFile != nil {
				_ = logFile.Close()
			}
			if cpuProfile != "" {
				pprof.StopCPUProfile()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file (e.g. cpu.prof)")
	_ = rootCmd.PersistentFlags().MarkHidden("cpuprofile")

	openCmd := &cobra.Command{
		Use:   "open <file> [file...]",
		Short: "Load one or more CSV/JSON files and start the interactive UI",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runOpen,
	}

	queryCmd := &cobra.Command{
		Use:   "query <file> <sql>",
		Short: "Load a file, run one query headlessly, and print the result",
		Args:  cobra.ExactArgs(2),
		RunE:  runQuery,
	}

	rootCmd.AddCommand(openCmd, queryCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	path, err := config.Path()
	if err != nil {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Default()
	}
	return cfg
}

func loadOptionsFromConfig(cfg *config.Config) table.LoadOptions {
	opts := table.DefaultLoadOptions()
	if cfg.SampleSize > 0 {
		opts.SampleSize = cfg.SampleSize
	}
	opts.NullTokens = cfg.NullTokens
	return opts
}

func runOpen(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	opts := loadOptionsFromConfig(cfg)

	mgr := buffer.NewManager()
	for _, path := range args {
		tbl, err := table.Load(path, opts)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		mgr.Add(buffer.New(0, tbl.Name, path, tbl))
	}

	var store *history.Store
	var listener *history.Listener
	if histPath, err := history.DefaultPath(); err == nil {
		if s, err := history.Open(histPath); err == nil {
			store = s
			defer func() { _ = store.Close() }()
		}
	}
	listener = history.NewListener(store, func(err error) {
		if ringLogs != nil {
			slog.Error("recording query history", "error", err)
		}
	})

	return tui.Run(mgr, cfg, listener, store, ringLogs)
}

func runQuery(_ *cobra.Command, args []string) error {
	path, sql := args[0], args[1]
	cfg := loadConfig()
	opts := loadOptionsFromConfig(cfg)

	tbl, err := table.Load(path, opts)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	res, err := query.Execute(tbl, sql, !cfg.CaseInsensitive)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}

	res.View.RenderTable(os.Stdout)
	for _, skipped := range res.SkippedRows {
		fmt.Fprintf(os.Stderr, "row %d skipped: %s\n", skipped.RowIndex, skipped.Reason)
	}
	return nil
}

// multiHandler fans a log record out to both the text handler (stderr
// or the verbose logfile) and the in-app ring buffer used by Debug
// mode, so --verbose still works headlessly while the TUI keeps its
// own overlay populated.
type multiHandler struct {
	text *slog.TextHandler
	ring *logging.RingHandler
}

func (h multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.text.Enabled(ctx, level) || h.ring.Enabled(ctx, level)
}

func (h multiHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.text.Handle(ctx, r); err != nil {
		return err
	}
	return h.ring.Handle(ctx, r)
}

func (h multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return multiHandler{
		text: h.text.WithAttrs(attrs).(*slog.TextHandler),
		ring: h.ring.WithAttrs(attrs).(*logging.RingHandler),
	}
}

func (h multiHandler) WithGroup(name string) slog.Handler {
	return multiHandler{
		text: h.text.WithGroup(name).(*slog.TextHandler),
		ring: h.ring.WithGroup(name).(*logging.RingHandler),
	}
}
