package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/vmihailenco/msgpack/v5"
)

// rowNode is the msgpack payload stored per row. The identity is the row key.
type rowNode struct {
	Char     rune   `msgpack:"ch"`
	Children []int  `msgpack:"c,omitempty"`
	Complete bool   `msgpack:"k,omitempty"`
	Word     string `msgpack:"w,omitempty"`
}

// RowStore keeps a trie in SQLite, one row per node.
// sql.DB handles connection pooling, so a RowStore is safe for concurrent use.
type RowStore struct {
	db *sql.DB
}

// OpenRowStore opens or creates a SQLite database at path.
func OpenRowStore(path string) (*RowStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	return newRowStore(db)
}

// NewRowStoreInMemory creates a store backed by an in-memory database.
func NewRowStoreInMemory() (*RowStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	return newRowStore(db)
}

func newRowStore(db *sql.DB) (*RowStore, error) {
	store := &RowStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *RowStore) Close() error {
	return s.db.Close()
}

func (s *RowStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS nodes (
			id INTEGER PRIMARY KEY,
			node_data BLOB NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save replaces the stored trie with t in a single transaction.
func (s *RowStore) Save(ctx context.Context, t *trie.Trie) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes`); err != nil {
		return fmt.Errorf("failed to clear nodes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO nodes (id, node_data) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range t.Export() {
		data, err := msgpack.Marshal(&rowNode{
			Char:     rec.Char,
			Children: rec.Children,
			Complete: rec.Complete,
			Word:     rec.Word,
		})
		if err != nil {
			return fmt.Errorf("failed to encode node %d: %w", rec.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, data); err != nil {
			return fmt.Errorf("failed to insert node %d: %w", rec.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES ('size', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, t.Size())
	if err != nil {
		return fmt.Errorf("failed to store size: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trie: %w", err)
	}
	log.Debugf("Stored %d nodes in row store", t.Size()+1)
	return nil
}

// Load bulk-loads the stored trie.
func (s *RowStore) Load(ctx context.Context, opts ...trie.Option) (*trie.Trie, error) {
	var size int
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'size'`).Scan(&size)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoTrie
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read size: %w", err)
	}

	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrCorrupt, size)
	}
	// size is untrusted until Import checks it against the rows, so the
	// records are sized by the row count instead
	count, err := s.NodeCount(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, node_data FROM nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	records := make([]trie.NodeRecord, 0, count)
	for rows.Next() {
		var (
			id   int
			data []byte
			node rowNode
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		if err := msgpack.Unmarshal(data, &node); err != nil {
			return nil, fmt.Errorf("%w: node %d: %w", ErrCorrupt, id, err)
		}
		records = append(records, trie.NodeRecord{
			ID:       id,
			Char:     node.Char,
			Children: node.Children,
			Complete: node.Complete,
			Word:     node.Word,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate nodes: %w", err)
	}

	t, err := trie.Import(size, records, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	log.Debugf("Loaded %d nodes from row store", len(records))
	return t, nil
}

// NodeCount returns the number of stored rows, root included.
func (s *RowStore) NodeCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM nodes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count nodes: %w", err)
	}
	return count, nil
}
