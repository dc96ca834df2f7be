// Package cli implements the command-line interface for mytime-ics.
//
// The cli package provides the Cobra-based CLI with commands to scan a myTime
// weekly schedule page (saved to a file or captured live), print the shifts as
// text or JSON, export them to an .ics calendar file, and watch the page for new
// shifts. It coordinates the config, capture, scanner, calendar, download and
// watch packages.
package cli
