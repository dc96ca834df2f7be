package cli

import (
	"bufio"
	"fmt"

	"github.com/pfrederiksen/mytime-ics/internal/calendar"
	"github.com/pfrederiksen/mytime-ics/internal/config"
	"github.com/pfrederiksen/mytime-ics/internal/download"
	"github.com/pfrederiksen/mytime-ics/internal/logger"
	"github.com/pfrederiksen/mytime-ics/internal/shift"
	"github.com/spf13/cobra"
)

var (
	flagOutput string
	flagName   string
	flagMode   string
	flagYes    bool
	flagDryRun bool
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Scan the schedule once and export the shifts to an .ics file",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}

	addSourceFlags(cmd)
	addExportFlags(cmd)
	cmd.Flags().StringVar(&flagName, "name", "", "File name without extension (default built from --mode)")
	cmd.Flags().StringVar(&flagMode, "mode", "", "File naming: week-of or as-of (default from config)")

	return cmd
}

// addExportFlags registers flags shared by export and watch.
func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagOutput, "output", "", "Directory for .ics files (default from config)")
	cmd.Flags().BoolVar(&flagYes, "yes", false, "Export without asking for confirmation")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the calendar instead of writing a file")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := appConfig

	modeName := flagMode
	if modeName == "" {
		modeName = cfg.FilenameMode
	}
	mode, err := calendar.ParseNameMode(modeName)
	if err != nil {
		return err
	}

	src, origin, err := pageSource(cfg)
	if err != nil {
		return err
	}
	session, err := newSession(cfg)
	if err != nil {
		return err
	}

	if _, err := scanOnce(cmd.Context(), session, src); err != nil {
		return err
	}
	shifts := session.Shifts()

	logger.Info("schedule scanned", logger.Fields{
		"source": origin,
		"shifts": len(shifts),
	})

	name := flagName
	if name == "" {
		name = calendar.Filename(mode, cfg.FilenamePrefix, shifts)
	}

	exp, err := newExporter(cmd, cfg)
	if err != nil {
		return err
	}
	return exp.run(name, shifts)
}

// exporter bundles the calendar exporter with confirmation and reporting.
type exporter struct {
	cmd      *cobra.Command
	in       *bufio.Reader
	calendar *calendar.Exporter
	dir      *download.DirDownloader
}

func newExporter(cmd *cobra.Command, cfg *config.Config) (*exporter, error) {
	e := &exporter{cmd: cmd, in: bufio.NewReader(cmd.InOrStdin())}
	opts := calendar.Options{
		StableUID:      cfg.StableUID,
		LocationPrefix: cfg.LocationPrefix,
	}

	if flagDryRun {
		opts.Downloader = download.NewDryRunDownloader(cmd.OutOrStdout())
	} else {
		outputDir := flagOutput
		if outputDir == "" {
			outputDir = cfg.OutputDir
		}
		dl, err := download.NewDirDownloader(outputDir)
		if err != nil {
			return nil, fmt.Errorf("initializing output directory: %w", err)
		}
		e.dir = dl
		opts.Downloader = dl
	}

	e.calendar = calendar.NewExporter(opts)
	return e, nil
}

// run asks for confirmation (unless --yes) and exports shifts under name.
// An empty shift list fails with calendar.ErrEmptyShiftSet before any prompt.
func (e *exporter) run(name string, shifts []shift.Shift) error {
	if len(shifts) == 0 {
		return e.calendar.Export(name, shifts)
	}

	if !flagYes {
		ok, err := confirm(e.in, e.cmd.ErrOrStderr(), confirmMessage(shifts))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(e.cmd.ErrOrStderr(), "Export cancelled.")
			return nil
		}
	}

	if err := e.calendar.Export(name, shifts); err != nil {
		return fmt.Errorf("exporting calendar: %w", err)
	}

	if e.dir != nil {
		fmt.Fprintf(e.cmd.OutOrStdout(), "Wrote %d shifts to %s\n", len(shifts), e.dir.LastPath())
	}
	return nil
}
