package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/mytime-ics/internal/calendar"
	"github.com/pfrederiksen/mytime-ics/internal/download"
	"github.com/pfrederiksen/mytime-ics/internal/scanner"
	"github.com/pfrederiksen/mytime-ics/internal/shift"
)

// Renders a saved weekly schedule page into an .ics file for manual import testing.
//
//	go run ./scripts/preview-calendar.go [page.html]
func main() {
	page := "testdata/fixtures/week.html"
	if len(os.Args) > 1 {
		page = os.Args[1]
	}

	f, err := os.Open(page)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening page: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	session := scanner.NewSession(scanner.New(scanner.WithAssembleOptions(shift.WithLocation(time.Local))))
	res, err := session.ScanHTML(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning page: %v\n", err)
		os.Exit(1)
	}

	dir, err := download.NewDirDownloader(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing output: %v\n", err)
		os.Exit(1)
	}

	shifts := session.Shifts()
	exporter := calendar.NewExporter(calendar.Options{Downloader: dir, StableUID: true})
	name := calendar.Filename(calendar.NameWeekOf, "preview", shifts)
	if err := exporter.Export(name, shifts); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing calendar: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(dir.LastPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading calendar back: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s (%d shifts across %d days)\n\n", dir.LastPath(), len(shifts), res.DaysScanned)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Print(string(data))
}
