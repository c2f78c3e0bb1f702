// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package baginfo summarizes a bag on disk: which storage backend each file
// uses and, for sqlite3 files, the topics and message counts they hold.
// mcap files are identified and sized but not decoded.
package baginfo

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/rosbag-converter/pkg/types"
)

var (
	magicSQLite3 = []byte("SQLite format 3\x00")
	magicMCAP    = []byte("\x89MCAP0\r\n")
)

// bagExts are the file extensions scanned when a bag directory is inspected.
var bagExts = map[string]bool{".db3": true, ".mcap": true}

// Topic describes one topic recorded in a bag file.
type Topic struct {
	Name                string `json:"name" yaml:"name"`
	Type                string `json:"type" yaml:"type"`
	SerializationFormat string `json:"serialization_format" yaml:"serialization_format"`
	MessageCount        int64  `json:"message_count" yaml:"message_count"`
}

// File describes one storage file of a bag.
type File struct {
	Path    string               `json:"path" yaml:"path"`
	Storage types.StorageBackend `json:"storage" yaml:"storage"`
	Size    int64                `json:"size" yaml:"size"`

	// The remaining fields are only populated for sqlite3 files.
	Topics       []Topic   `json:"topics,omitempty" yaml:"topics,omitempty"`
	MessageCount int64     `json:"message_count,omitempty" yaml:"message_count,omitempty"`
	Start        time.Time `json:"start,omitzero" yaml:"start,omitempty"`
	End          time.Time `json:"end,omitzero" yaml:"end,omitempty"`
}

// Summary describes a bag file or bag directory.
type Summary struct {
	Path  string `json:"path" yaml:"path"`
	Files []File `json:"files" yaml:"files"`
}

// Size returns the total size of all bag files in bytes.
func (s *Summary) Size() int64 {
	var n int64
	for _, f := range s.Files {
		n += f.Size
	}
	return n
}

// MessageCount returns the number of messages counted across sqlite3 files.
func (s *Summary) MessageCount() int64 {
	var n int64
	for _, f := range s.Files {
		n += f.MessageCount
	}
	return n
}

// Inspect summarizes the bag at path, which may be a single storage file or
// a bag directory containing *.db3 / *.mcap files.
func Inspect(ctx context.Context, path string) (*Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("inspecting bag: %w", err)
	}

	var files []string
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("reading bag directory %s: %w", path, err)
		}
		for _, e := range entries {
			if !e.IsDir() && bagExts[strings.ToLower(filepath.Ext(e.Name()))] {
				files = append(files, filepath.Join(path, e.Name()))
			}
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no .db3 or .mcap files in %s", path)
		}
	} else {
		files = []string{path}
	}

	s := &Summary{Path: path}
	for _, f := range files {
		fi, err := inspectFile(ctx, f)
		if err != nil {
			return nil, err
		}
		s.Files = append(s.Files, fi)
	}
	return s, nil
}

// DetectStorage identifies the storage backend of a file from its magic bytes.
func DetectStorage(path string) (types.StorageBackend, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, len(magicSQLite3))
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, magicSQLite3):
		return types.BackendSQLite3, nil
	case bytes.HasPrefix(head, magicMCAP):
		return types.BackendMCAP, nil
	}
	return "", fmt.Errorf("%s is neither a sqlite3 nor an mcap bag file", path)
}

func inspectFile(ctx context.Context, path string) (File, error) {
	storage, err := DetectStorage(path)
	if err != nil {
		return File{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("inspecting bag: %w", err)
	}

	f := File{Path: path, Storage: storage, Size: info.Size()}
	if storage == types.BackendSQLite3 {
		if err := readSQLite3(ctx, &f); err != nil {
			return File{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return f, nil
}

// readOnlyDSN returns a read-only SQLite URI for path. The path is
// percent-encoded so that '#', '%' and '?' in file names are not read as
// URI syntax.
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p, RawQuery: "mode=ro"}).String(), nil
}

// readSQLite3 fills f from the rosbag2 topics and messages tables.
func readSQLite3(ctx context.Context, f *File) error {
	dsn, err := readOnlyDSN(f.Path)
	if err != nil {
		return err
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT t.name, t.type, t.serialization_format, COUNT(m.id)
		FROM topics t LEFT JOIN messages m ON m.topic_id = t.id
		GROUP BY t.id
		ORDER BY t.name`)
	if err != nil {
		return fmt.Errorf("querying topics: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t Topic
		if err := rows.Scan(&t.Name, &t.Type, &t.SerializationFormat, &t.MessageCount); err != nil {
			return fmt.Errorf("scanning topic: %w", err)
		}
		f.Topics = append(f.Topics, t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating topics: %w", err)
	}

	var start, end sql.NullInt64
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*), MIN(timestamp), MAX(timestamp) FROM messages`,
	).Scan(&f.MessageCount, &start, &end); err != nil {
		return fmt.Errorf("counting messages: %w", err)
	}
	if start.Valid {
		f.Start = time.Unix(0, start.Int64).UTC()
		f.End = time.Unix(0, end.Int64).UTC()
	}
	return nil
}
