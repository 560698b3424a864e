/*
Package persist stores and restores tries.

Two backends are provided. A snapshot is the whole arena in one msgpack blob,
suited to shipping a prebuilt dictionary next to the binary. A row store keeps
one SQLite row per node, keyed by identity, for callers that already manage a
database.

Both go through trie.Export and trie.Import, so a restored trie has the same
identities, runes, child order and terminal words as the one saved. Anything
that fails validation on load is reported as ErrCorrupt.
*/
package persist

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	snapshotMagic   = "WTRIE"
	snapshotVersion = 1
)

var (
	// ErrCorrupt is returned when stored data is truncated, malformed or
	// does not describe a valid trie.
	ErrCorrupt = errors.New("corrupt trie data")
	// ErrNoTrie is returned when a row store holds no trie.
	ErrNoTrie = errors.New("no trie stored")
)

// nodeRecord is the wire form of one arena entry.
type nodeRecord struct {
	ID       int    `msgpack:"id"`
	Char     rune   `msgpack:"ch"`
	Children []int  `msgpack:"c,omitempty"`
	Complete bool   `msgpack:"k,omitempty"`
	Word     string `msgpack:"w,omitempty"`
}

type snapshot struct {
	Magic   string       `msgpack:"magic"`
	Version int          `msgpack:"v"`
	Size    int          `msgpack:"size"`
	Nodes   []nodeRecord `msgpack:"nodes"`
}

func toWire(rec trie.NodeRecord) nodeRecord {
	return nodeRecord{
		ID:       rec.ID,
		Char:     rec.Char,
		Children: rec.Children,
		Complete: rec.Complete,
		Word:     rec.Word,
	}
}

func fromWire(rec nodeRecord) trie.NodeRecord {
	return trie.NodeRecord{
		ID:       rec.ID,
		Char:     rec.Char,
		Children: rec.Children,
		Complete: rec.Complete,
		Word:     rec.Word,
	}
}

// WriteSnapshot encodes t to w.
func WriteSnapshot(w io.Writer, t *trie.Trie) error {
	exported := t.Export()
	snap := snapshot{
		Magic:   snapshotMagic,
		Version: snapshotVersion,
		Size:    t.Size(),
		Nodes:   make([]nodeRecord, len(exported)),
	}
	for i, rec := range exported {
		snap.Nodes[i] = toWire(rec)
	}

	if err := msgpack.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a trie written by WriteSnapshot.
func ReadSnapshot(r io.Reader, opts ...trie.Option) (*trie.Trie, error) {
	var snap snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if snap.Magic != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, snap.Magic)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, snap.Version)
	}

	records := make([]trie.NodeRecord, len(snap.Nodes))
	for i, rec := range snap.Nodes {
		records[i] = fromWire(rec)
	}
	t, err := trie.Import(snap.Size, records, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return t, nil
}

// SaveSnapshot writes t to path through a temporary file, so a failed write
// never leaves a truncated snapshot behind.
func SaveSnapshot(path string, t *trie.Trie) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteSnapshot(tmp, t); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move snapshot into place: %w", err)
	}

	log.Debugf("Saved snapshot of %d nodes to %s", t.Size(), path)
	return nil
}

// LoadSnapshot reads the snapshot at path.
func LoadSnapshot(path string, opts ...trie.Option) (*trie.Trie, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer file.Close()

	t, err := ReadSnapshot(file, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", path, err)
	}

	log.Debugf("Loaded snapshot of %d nodes from %s", t.Size(), path)
	return t, nil
}
