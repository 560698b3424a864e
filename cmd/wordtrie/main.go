// Copyright 2025 The wordtrie Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the word completion server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

wordtrie answers prefix completions from an arena-indexed trie. Suggestions
come back in insertion order, so the order of the word source is the ranking.
It can operate as a MessagePack IPC server for text editors and other
processes, or as a CLI application for testing and debugging.

# Usage

Start the server with default settings:

	wordtrie

Build from a CSV column and enable debug mode:

	wordtrie -source data/words.csv -column lemma -d

Run in CLI mode for interactive testing:

	wordtrie -c -limit 10 -prmin 2

# Dictionary

The trie is loaded from the first of these that is configured and exists:

 1. the SQLite row store (-rowstore)
 2. the msgpack snapshot (-snapshot)
 3. the word source (-source), a CSV table or a plain word list

A trie built from the source is written to the snapshot path, so later starts
skip the rebuild. A corrupt snapshot or row store is reported and skipped.

# Configuration

Runtime configuration lives in a TOML file, created with defaults on first run:

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true
	max_sessions = 256

	[dict]
	source = "data/words.csv"
	column = "word"
	snapshot = "data/words.bin"
	row_store = ""
	match = "exact"
	lowercase = true

Flags override the [dict] values for a single run.

# IPC Protocol

See package server for the message formats:

	{"id": "req1", "p": "tr", "l": 20}
	{"id": "req1", "s": [{"w": "trie", "r": 1}, {"w": "try", "r": 2}], "c": 2, "t": 12, "sid": "..."}

# Command Line Flags

	-config string
	    Path to config.toml
	-source string
	    CSV or word list to build from
	-column string
	    CSV column holding the words
	-snapshot string
	    msgpack snapshot to load from and save to
	-rowstore string
	    SQLite row store to load from
	-match string
	    exact or nearest
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return in CLI mode
	-prmin int
	    Minimum prefix length for suggestions
	-prmax int
	    Maximum prefix length for suggestions
	-no-filter
	    Disable input filtering for debugging
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bastiangx/wordtrie/internal/cli"
	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "wordtrie"
	gh      = "https://github.com/bastiangx/wordtrie"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only manages the flow between config, loading and the chosen mode.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config.toml (default: user config dir)")
	source := flag.String("source", "", "CSV or word list to build the trie from")
	column := flag.String("column", "", "CSV column holding the words")
	snapshot := flag.String("snapshot", "", "msgpack snapshot to load from and save to")
	rowStore := flag.String("rowstore", "", "SQLite row store to load from")
	match := flag.String("match", "", "Match mode: exact or nearest")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", defaultConfig.CLI.DefaultMinLen, "Minimum prefix length for suggestions (1 < n <= prmax)")
	maxPrefix := flag.Int("prmax", defaultConfig.CLI.DefaultMaxLen, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.DefaultNoFilter, "Disable input filtering (DBG only)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	overrideDict(&appConfig.Dict, *source, *column, *snapshot, *rowStore, *match)
	appConfig.Sanitize()

	configDir := ""
	if activePath != "" {
		configDir = filepath.Dir(activePath)
	}
	pathResolver, err := utils.NewPathResolver(configDir)
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	log.Debug("Runtime", "info", pathResolver.GetRuntimeInfo())

	completer, origin, err := loadEngine(appConfig.Dict, pathResolver)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(completer, os.Stdout, *minPrefix, *maxPrefix, *limit, *noFilter)
		if err := inputHandler.Start(os.Stdin); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(completer, appConfig)

	showStartupInfo(origin, completer.Stats())

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// overrideDict applies non-empty flag values over the configured dictionary.
func overrideDict(dict *config.DictConfig, source, column, snapshot, rowStore, match string) {
	if source != "" {
		dict.Source = source
	}
	if column != "" {
		dict.Column = column
	}
	if snapshot != "" {
		dict.Snapshot = snapshot
	}
	if rowStore != "" {
		dict.RowStore = rowStore
	}
	if match != "" {
		dict.Match = match
	}
}

func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ wordtrie ] Prefix completions from an arena trie")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(origin string, stats map[string]int) {
	out := logger.New(AppName)
	out.SetLevel(log.InfoLevel)

	out.Infof("Version: %s", Version)
	out.Infof("Process ID: [ %d ]", os.Getpid())
	out.Infof("dictionary: ( %s )", origin)
	out.Info("trie", "words", utils.FormatWithCommas(stats["words"]), "nodes", utils.FormatWithCommas(stats["nodes"]))
	out.Info("status: ready")
}
