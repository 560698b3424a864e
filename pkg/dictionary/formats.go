package dictionary

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrUnsupportedFormat is returned when a file's format cannot be determined
// or is not usable for the requested operation.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// FileFormat represents the kinds of files a trie can be built or loaded from
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatCSV                 // Delimited table, one column holds the words
	FormatText                // One word per line
	FormatSnapshot            // msgpack trie snapshot
	FormatRowStore            // SQLite row store
)

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// FormatInfo contains metadata about a file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatCSV: {
		Format:      FormatCSV,
		Description: "CSV Word Table",
		Extensions:  []string{".csv"},
		MinSize:     1, // At least a header
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word List",
		Extensions:  []string{".txt"},
		MinSize:     1,
	},
	FormatSnapshot: {
		Format:      FormatSnapshot,
		Description: "Trie Snapshot",
		Extensions:  []string{".bin", ".msgpack"},
		MinSize:     8, // Envelope header
	},
	FormatRowStore: {
		Format:      FormatRowStore,
		Description: "SQLite Row Store",
		Extensions:  []string{".db", ".sqlite"},
		MinSize:     0, // sqlite creates the file lazily
	},
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, expectedFormat)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("%w: file %s has extension %q, %s expects %v",
			ErrUnsupportedFormat, filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	switch expectedFormat {
	case FormatCSV, FormatText:
		return validateTextFormat(filename)
	}
	return nil
}

// validateTextFormat checks that a text file can be read
func validateTextFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	buffer := make([]byte, 1024)
	if _, err := file.Read(buffer); err != nil && err != io.EOF {
		return fmt.Errorf("failed to read from text file %s: %w", filename, err)
	}

	log.Debugf("Text file %s validated", filename)
	return nil
}

// DetectFileFormat maps a file to a format by extension, then validates it
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	for format, info := range supportedFormats {
		for _, candidate := range info.Extensions {
			if ext != candidate {
				continue
			}
			if err := ValidateFileFormat(filename, format); err != nil {
				return FormatUnknown, err
			}
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: unable to detect format for file %s", ErrUnsupportedFormat, filename)
}

// ListSupportedFormats returns all supported formats ordered by FileFormat
func ListSupportedFormats() []FormatInfo {
	formats := make([]FormatInfo, 0, len(supportedFormats))
	for _, info := range supportedFormats {
		formats = append(formats, info)
	}
	sort.Slice(formats, func(i, j int) bool {
		return formats[i].Format < formats[j].Format
	})
	return formats
}
