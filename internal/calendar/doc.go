// Package calendar turns a list of shifts into an iCalendar (.ics) file.
//
// Exporter builds one VEVENT per shift with github.com/arran4/golang-ical and
// hands the serialized bytes to a download.Downloader. Event UIDs are derived from
// the shift list's identity so that re-exporting the same shifts produces the same
// UIDs and calendar clients update events instead of duplicating them.
package calendar
