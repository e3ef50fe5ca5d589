package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"formula-pad/internal/logger"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultDocumentExtension is suggested by the save dialog
const DefaultDocumentExtension = ".formula.txt"

var ErrInvalidEncoding = errors.New("file is not valid UTF-8 text")

// DocumentService reads and writes formula files
type DocumentService struct {
	logger logger.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(log logger.Logger) *DocumentService {
	return &DocumentService{logger: log}
}

// Read returns the UTF-8 contents of path with any byte order mark removed
func (ds *DocumentService) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("failed to read %s: %w", filepath.Base(path), ErrInvalidEncoding)
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	ds.logger.Debug("DocumentService", "file read", map[string]interface{}{
		"path":  path,
		"bytes": len(data),
	})

	return string(decoded), nil
}

// Write stores text verbatim at path
func (ds *DocumentService) Write(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	ds.logger.Debug("DocumentService", "file written", map[string]interface{}{
		"path":  path,
		"bytes": len(text),
	})
	return nil
}

// SaveAndReload writes text to path and returns what is now on disk, which
// becomes the new snapshot.
func (ds *DocumentService) SaveAndReload(path, text string) (string, error) {
	if err := ds.Write(path, text); err != nil {
		return "", err
	}
	return ds.Read(path)
}

// WithDefaultExtension appends ext when path has no extension of its own
func WithDefaultExtension(path, ext string) string {
	if path == "" || filepath.Ext(path) != "" {
		return path
	}
	return path + ext
}

// ChangeSummary counts characters inserted and deleted between two texts
type ChangeSummary struct {
	Inserted int
	Deleted  int
}

func (c ChangeSummary) Empty() bool {
	return c.Inserted == 0 && c.Deleted == 0
}

func (c ChangeSummary) String() string {
	return fmt.Sprintf("%d %s inserted, %d deleted", c.Inserted, plural(c.Inserted, "character", "characters"), c.Deleted)
}

// DescribeChanges diffs before against after
func DescribeChanges(before, after string) ChangeSummary {
	var summary ChangeSummary
	if before == after {
		return summary
	}

	d := dmp.New()
	diffs := d.DiffCleanupSemantic(d.DiffMain(before, after, false))
	for _, diff := range diffs {
		switch diff.Type {
		case dmp.DiffInsert:
			summary.Inserted += utf8.RuneCountInString(diff.Text)
		case dmp.DiffDelete:
			summary.Deleted += utf8.RuneCountInString(diff.Text)
		}
	}
	return summary
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
