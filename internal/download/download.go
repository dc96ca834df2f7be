package download

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pfrederiksen/mytime-ics/internal/logger"
)

// Downloader defines the interface for delivering an exported file
type Downloader interface {
	// Download stores data under filename
	Download(filename string, data []byte) error
}

// DirDownloader writes files into a directory
type DirDownloader struct {
	dir string

	mu       sync.Mutex
	lastPath string
}

// NewDirDownloader creates a DirDownloader for dir, creating it if needed.
// A leading "~/" is expanded to the user's home directory.
func NewDirDownloader(dir string) (*DirDownloader, error) {
	dir, err := ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &DirDownloader{dir: dir}, nil
}

// Dir returns the expanded output directory.
func (d *DirDownloader) Dir() string {
	return d.dir
}

// Download writes data to <dir>/<filename> with 0600 permissions, replacing any
// existing file of the same name.
func (d *DirDownloader) Download(filename string, data []byte) error {
	if filename == "" || filename != filepath.Base(filename) {
		return fmt.Errorf("invalid file name: %q", filename)
	}

	path := filepath.Join(d.dir, filename)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}

	d.mu.Lock()
	d.lastPath = path
	d.mu.Unlock()

	logger.Info("calendar written", logger.Fields{
		"path":  path,
		"bytes": len(data),
	})
	return nil
}

// LastPath returns the path of the most recent successful download, or "".
func (d *DirDownloader) LastPath() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastPath
}

// ExpandHome replaces a leading "~/" in path with the user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
