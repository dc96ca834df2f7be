// Package download delivers exported calendar files.
//
// A Downloader receives a file name and its bytes. DirDownloader writes the file
// into a directory on disk; DryRunDownloader prints it instead, which the CLI uses
// for --dry-run.
package download
