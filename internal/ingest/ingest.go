// Package ingest turns source documents into the two shapes the core
// pipeline consumes: plain term-sheet text and master-sheet rule tables.
// Everything here is mechanical I/O; no extraction or validation logic.
package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxBytes caps how much of a document is read when no limit is
// configured.
const DefaultMaxBytes = 2_000_000

// ReadTermSheet reads a term-sheet document as plain text. HTML documents
// are reduced to their visible text; anything else is read verbatim.
// At most maxBytes bytes are read (DefaultMaxBytes when <= 0).
func ReadTermSheet(path string, maxBytes int64) (string, error) {
	raw, err := readLimited(path, maxBytes)
	if err != nil {
		return "", fmt.Errorf("read term sheet: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err := VisibleText(string(raw))
		if err != nil {
			return "", fmt.Errorf("parse HTML term sheet %s: %w", path, err)
		}
		return text, nil
	default:
		return string(raw), nil
	}
}

func readLimited(path string, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return io.ReadAll(io.LimitReader(f, maxBytes))
}
