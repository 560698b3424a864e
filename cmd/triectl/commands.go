package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/persist"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// settings resolves config defaults and the global flags into engine options.
func settings() (*config.Config, suggest.Options, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, suggest.Options{}, err
		}
		cfg = loaded
	}
	if match != "" {
		cfg.Dict.Match = match
	}
	if caseSensitive {
		cfg.Dict.Lowercase = false
	}
	opts := suggest.Options{Match: cfg.Dict.MatchMode(), Lowercase: cfg.Dict.Lowercase}
	return cfg, opts, nil
}

// openEngine loads from the row store, the snapshot or the source, whichever
// is given first.
func openEngine(ctx context.Context, source, column, snapshot, rowStore string, opts suggest.Options) (*suggest.Engine, error) {
	switch {
	case rowStore != "":
		store, err := persist.OpenRowStore(rowStore)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return suggest.LoadRows(ctx, store, opts)
	case snapshot != "":
		return suggest.LoadSnapshot(snapshot, opts)
	case source != "":
		return suggest.CreateTrie(source, column, opts)
	}
	return nil, errors.New("one of --source, --snapshot or --rowstore is required")
}

func buildCmd() *cobra.Command {
	var column, snapshot, rowStore string

	cmd := &cobra.Command{
		Use:   "build [source]",
		Short: "Build a trie from a word source and persist it",
		Long: `Build a trie from a CSV column or a plain word list, inserting words in
file order, and write it as a msgpack snapshot, a SQLite row store, or both.
Without --snapshot or --rowstore the configured snapshot path is used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := settings()
			if err != nil {
				return err
			}
			if column == "" {
				column = cfg.Dict.Column
			}
			if snapshot == "" && rowStore == "" {
				snapshot = cfg.Dict.Snapshot
			}
			if snapshot == "" && rowStore == "" {
				return errors.New("nowhere to write: pass --snapshot or --rowstore")
			}

			e, err := suggest.CreateTrie(args[0], column, opts)
			if err != nil {
				return err
			}
			if snapshot != "" {
				if err := e.SaveSnapshot(snapshot); err != nil {
					return err
				}
				log.Debugf("Wrote snapshot %s", snapshot)
			}
			if rowStore != "" {
				store, err := persist.OpenRowStore(rowStore)
				if err != nil {
					return err
				}
				defer store.Close()
				if err := e.SaveRows(cmd.Context(), store); err != nil {
					return err
				}
				log.Debugf("Wrote row store %s", rowStore)
			}

			printStats(cmd, e.Stats())
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "CSV column holding the words (default from config)")
	cmd.Flags().StringVar(&snapshot, "snapshot", "", "Snapshot file to write")
	cmd.Flags().StringVar(&rowStore, "rowstore", "", "SQLite row store to write")

	return cmd
}

func inspectCmd() *cobra.Command {
	var snapshot, rowStore string
	var dump bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print statistics of a snapshot or row store",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, opts, err := settings()
			if err != nil {
				return err
			}
			e, err := openEngine(cmd.Context(), "", "", snapshot, rowStore, opts)
			if err != nil {
				return err
			}
			printStats(cmd, e.Stats())
			if dump {
				fmt.Fprintln(cmd.OutOrStdout(), e.Dump())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshot, "snapshot", "", "Snapshot file to read")
	cmd.Flags().StringVar(&rowStore, "rowstore", "", "SQLite row store to read")
	cmd.Flags().BoolVar(&dump, "dump", false, "Print the arena table")

	return cmd
}

func queryCmd() *cobra.Command {
	var source, column, snapshot, rowStore string
	var limit int
	var session bool

	cmd := &cobra.Command{
		Use:   "query [prefix...]",
		Short: "Complete one or more prefixes",
		Long: `Complete each prefix and print the suggestions in insertion order.

With --session the prefixes are treated as successive keystrokes of one typing
session, so each query resumes the walk of the previous one:

  triectl query --snapshot words.bin --session t tr try`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := settings()
			if err != nil {
				return err
			}
			if column == "" {
				column = cfg.Dict.Column
			}
			if limit <= 0 {
				limit = cfg.CLI.DefaultLimit
			}
			e, err := openEngine(cmd.Context(), source, column, snapshot, rowStore, opts)
			if err != nil {
				return err
			}

			mem := e.NewMemory()
			for _, prefix := range args {
				var words []string
				if session {
					e.UpdateWord(mem, prefix)
					words = e.SuggestedWords(mem, limit)
				} else {
					words = e.Complete(prefix, limit)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", prefix, strings.Join(words, " "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Word source to build from")
	cmd.Flags().StringVar(&column, "column", "", "CSV column holding the words (default from config)")
	cmd.Flags().StringVar(&snapshot, "snapshot", "", "Snapshot file to read")
	cmd.Flags().StringVar(&rowStore, "rowstore", "", "SQLite row store to read")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Suggestions per prefix (default from config)")
	cmd.Flags().BoolVar(&session, "session", false, "Share query memory across prefixes")

	return cmd
}

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported file formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, info := range dictionary.ListSupportedFormats() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", info.Description, strings.Join(info.Extensions, ", "))
			}
		},
	}
}

func configCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the active config file, or rewrite it with defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if reset {
				if err := config.RebuildConfigFile(); err != nil {
					return err
				}
			}
			_, used, err := config.LoadConfigWithPriority(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), config.GetActiveConfigPath(used))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Overwrite the default config.toml with built-in defaults")

	return cmd
}

func printStats(cmd *cobra.Command, stats map[string]int) {
	fmt.Fprintf(cmd.OutOrStdout(), "words: %s\n", utils.FormatWithCommas(stats["words"]))
	fmt.Fprintf(cmd.OutOrStdout(), "nodes: %s\n", utils.FormatWithCommas(stats["nodes"]))
}
