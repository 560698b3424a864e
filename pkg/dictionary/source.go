/*
Package dictionary supplies the words a trie is built from.

Words come from a column of a CSV table or from a plain word list, always in
source order, since insertion order decides suggestion order. A Vocabulary
tracks which distinct words were inserted.
*/
package dictionary

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	// ErrColumnNotFound is returned when the requested column is not in the header row.
	ErrColumnNotFound = errors.New("column not found")
	// ErrMalformed is returned when the input cannot be read as well-formed rows.
	ErrMalformed = errors.New("malformed word source")
)

const utf8BOM = "\ufeff"

// ExtractColumn reads a CSV table whose first row is the header and returns
// the value of column for every data row, in row order.
func ExtractColumn(r io.Reader, column string) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	index := -1
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		if strings.TrimSpace(name) == column {
			index = i
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	var words []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if index >= len(record) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d fields, column %q is field %d",
				ErrMalformed, line, len(record), column, index+1)
		}
		words = append(words, strings.TrimSpace(record[index]))
	}

	log.Debugf("Extracted %d words from column '%s'", len(words), column)
	return words, nil
}

// ReadWordList reads one word per line. Blank lines and lines starting with
// '#' are skipped.
func ReadWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return words, nil
}

// Load reads the words in path. CSV files need column; word lists ignore it.
func Load(path, column string) ([]string, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word source %s: %w", path, err)
	}
	defer file.Close()

	var words []string
	switch format {
	case FormatCSV:
		words, err = ExtractColumn(file, column)
	case FormatText:
		words, err = ReadWordList(file)
	default:
		return nil, fmt.Errorf("%w: %s is a %s, not a word source", ErrUnsupportedFormat, path, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	log.Debugf("Loaded %d words from %s", len(words), path)
	return words, nil
}
