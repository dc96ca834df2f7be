package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/mytime-ics/internal/shift"
	"github.com/spf13/cobra"
)

var (
	flagFormat string
	flagSort   string
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the weekly schedule and print the shifts",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}

	addSourceFlags(cmd)
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", "page", "Sort order: page, start or job")

	return cmd
}

// runScan is the scan command logic
func runScan(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	order := SortOrder(strings.ToLower(flagSort))
	if order != SortByPage && order != SortByStart && order != SortByJob {
		return fmt.Errorf("invalid sort: %s (must be 'page', 'start' or 'job')", flagSort)
	}

	src, origin, err := pageSource(appConfig)
	if err != nil {
		return err
	}
	session, err := newSession(appConfig)
	if err != nil {
		return err
	}

	res, err := scanOnce(cmd.Context(), session, src)
	if err != nil {
		return err
	}

	shifts := session.Shifts()
	result := &OutputResult{
		ScannedAt:   time.Now().UTC(),
		Source:      origin,
		DaysScanned: res.DaysScanned,
		Identity:    shift.DeriveIdentity(shifts),
		ShiftCount:  len(shifts),
	}

	// Identity always follows page order; sorting only affects the listing.
	sortShifts(shifts, order)
	result.Shifts = shifts

	if err := WriteOutput(cmd.OutOrStdout(), result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func newIdentityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Print the identity hash of the scanned shifts",
		Long: `Print the 32-bit identity of the shifts on the page. The identity is
used as the event UID domain, so it only changes when the shifts change.`,
		Args: cobra.NoArgs,
		RunE: runIdentity,
	}

	addSourceFlags(cmd)

	return cmd
}

func runIdentity(cmd *cobra.Command, args []string) error {
	src, _, err := pageSource(appConfig)
	if err != nil {
		return err
	}
	session, err := newSession(appConfig)
	if err != nil {
		return err
	}

	if _, err := scanOnce(cmd.Context(), session, src); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), shift.DeriveIdentity(session.Shifts()))
	return nil
}
