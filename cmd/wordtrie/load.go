package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/persist"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
)

// loadEngine restores or builds the trie described by dict and reports where
// it came from. Stores that exist but fail to load are skipped with a warning.
func loadEngine(dict config.DictConfig, pr *utils.PathResolver) (*suggest.Engine, string, error) {
	opts := suggest.Options{Match: dict.MatchMode(), Lowercase: dict.Lowercase}

	if path, ok := pr.Resolve(dict.RowStore); ok {
		e, err := loadRows(path, opts)
		if err == nil {
			return e, path, nil
		}
		log.Warnf("Skipping row store %s: %v", path, err)
	}

	snapshot, haveSnapshot := pr.Resolve(dict.Snapshot)
	if haveSnapshot {
		e, err := suggest.LoadSnapshot(snapshot, opts)
		if err == nil {
			return e, snapshot, nil
		}
		log.Warnf("Skipping snapshot %s: %v", snapshot, err)
	}

	source, ok := pr.Resolve(dict.Source)
	if !ok {
		if dict.Source != "" {
			log.Warnf("Word source %s not found", dict.Source)
		}
		log.Warn("No dictionary available, running with empty trie...")
		return suggest.NewEngine(opts), "empty", nil
	}

	e, err := suggest.CreateTrie(source, dict.Column, opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build trie from %s: %w", source, err)
	}
	if snapshot != "" {
		if err := e.SaveSnapshot(snapshot); err != nil {
			log.Warnf("Could not cache trie to %s: %v", snapshot, err)
		} else {
			log.Debugf("Cached trie to %s", snapshot)
		}
	}
	return e, source, nil
}

func loadRows(path string, opts suggest.Options) (*suggest.Engine, error) {
	store, err := persist.OpenRowStore(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	e, err := suggest.LoadRows(context.Background(), store, opts)
	if errors.Is(err, persist.ErrNoTrie) {
		return nil, fmt.Errorf("row store is empty: %w", err)
	}
	return e, err
}
