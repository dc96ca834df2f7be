package download

import (
	"fmt"
	"io"
	"os"
)

// DryRunDownloader prints what would be written without touching the disk
type DryRunDownloader struct {
	out io.Writer
}

// NewDryRunDownloader creates a dry-run downloader writing to out (stdout if nil)
func NewDryRunDownloader(out io.Writer) *DryRunDownloader {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunDownloader{out: out}
}

// Download prints the file name and contents
func (d *DryRunDownloader) Download(filename string, data []byte) error {
	if _, err := fmt.Fprintf(d.out, "--- %s (%d bytes) ---\n", filename, len(data)); err != nil {
		return err
	}
	if _, err := d.out.Write(data); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out)
	return err
}
