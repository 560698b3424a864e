// Copyright 2025 The wordtrie Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package main provides triectl, the offline companion of wordtrie: it builds
// snapshots and row stores from word sources, inspects them and runs queries.
package main

import (
	"fmt"
	"os"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath    string
	match         string
	caseSensitive bool
	verbose       bool
)

func main() {
	// .env may provide WORDTRIE_CONFIG; a missing file is fine
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "triectl",
		Short: "Build, inspect and query wordtrie dictionaries",
		Long: `triectl works on the files the wordtrie server loads:

- build:   turn a CSV column or word list into a snapshot and/or SQLite row store
- inspect: print node and word counts, or the whole arena table
- query:   complete prefixes, optionally as one typing session
- formats: list the supported file formats
- config:  show or reset the config file`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(verbose)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("WORDTRIE_CONFIG"), "Path to config.toml for defaults")
	rootCmd.PersistentFlags().StringVar(&match, "match", "", "Match mode: exact or nearest (default from config)")
	rootCmd.PersistentFlags().BoolVar(&caseSensitive, "case-sensitive", false, "Do not fold words and queries to lower case")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs")

	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(queryCmd())
	rootCmd.AddCommand(formatsCmd())
	rootCmd.AddCommand(configCmd())

	return rootCmd
}
