package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pfrederiksen/mytime-ics/internal/capture"
	"github.com/pfrederiksen/mytime-ics/internal/config"
	"github.com/pfrederiksen/mytime-ics/internal/logger"
	"github.com/pfrederiksen/mytime-ics/internal/scanner"
	"github.com/pfrederiksen/mytime-ics/internal/shift"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version is reported by --version.
var Version = "dev"

// ErrNoSchedule is returned when the page has no day containers at all.
var ErrNoSchedule = errors.New("no schedule elements found; make sure you're on the weekly view")

var (
	flagConfig   string
	flagEnvFile  string
	flagVerbose  bool
	flagLogLevel string

	flagFile string
	flagURL  string
	flagHTTP bool

	// appConfig is resolved before any subcommand runs.
	appConfig *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mytime-ics",
		Short: "Export myTime shifts to an iCalendar file",
		Long: `A CLI tool that reads the myTime weekly schedule, parses each shift
and exports the shifts as an .ics file for calendar apps.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Debug("metrics", logger.Fields{"snapshot": logger.GetMetricsSnapshot()})
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath(), "Path to the YAML config file")
	cmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Optional .env file with MYTIME_* overrides")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")

	cmd.AddCommand(
		newScanCmd(),
		newExportCmd(),
		newWatchCmd(),
		newIdentityCmd(),
	)

	return cmd
}

// setup loads configuration and configures logging for every subcommand.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(flagConfig, flagEnvFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	levelName := cfg.LogLevel
	if flagLogLevel != "" {
		levelName = flagLogLevel
	}
	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	logger.Debug("config loaded", logger.Fields{
		"path":       flagConfig,
		"output_dir": cfg.OutputDir,
		"timezone":   cfg.Timezone,
	})

	appConfig = cfg
	return nil
}

// addSourceFlags registers the mutually exclusive --file and --url flags.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFile, "file", "", "Saved HTML of the weekly schedule page")
	cmd.Flags().StringVar(&flagURL, "url", "", "URL of the weekly schedule page to capture (default from config)")
	cmd.Flags().BoolVar(&flagHTTP, "http", false, "Fetch --url with a plain HTTP GET instead of headless Chromium")
	cmd.MarkFlagsMutuallyExclusive("file", "url")
}

// pageSource picks where the schedule HTML comes from.
func pageSource(cfg *config.Config) (capture.Source, string, error) {
	if flagFile != "" {
		return capture.FileSource{Path: flagFile}, flagFile, nil
	}

	url := flagURL
	if url == "" {
		url = cfg.Capture.URL
	}
	if url == "" {
		return nil, "", fmt.Errorf("one of --file or --url is required (or set capture.url in %s)", flagConfig)
	}

	if flagHTTP {
		return capture.NewHTTPSource(url, cfg.Capture.Timeout), url, nil
	}
	return capture.BrowserSource{Options: capture.Options{
		URL:          url,
		WaitSelector: cfg.Capture.WaitSelector,
		Timeout:      cfg.Capture.Timeout,
		UserDataDir:  cfg.Capture.UserDataDir,
	}}, url, nil
}

// newSession creates a scan session interpreting times in the configured zone.
func newSession(cfg *config.Config) (*scanner.Session, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	sc := scanner.New(scanner.WithAssembleOptions(shift.WithLocation(loc)))
	return scanner.NewSession(sc), nil
}

// scanOnce reads the page from src and scans it into session.
func scanOnce(ctx context.Context, session *scanner.Session, src capture.Source) (scanner.ScanResult, error) {
	html, err := src.HTML(ctx)
	if err != nil {
		return scanner.ScanResult{}, fmt.Errorf("reading schedule page: %w", err)
	}

	result, err := session.ScanHTML(strings.NewReader(html))
	if err != nil {
		return result, fmt.Errorf("scanning schedule: %w", err)
	}
	if result.DaysScanned == 0 {
		return result, ErrNoSchedule
	}
	return result, nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
