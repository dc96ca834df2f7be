package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pfrederiksen/mytime-ics/internal/calendar"
	"github.com/pfrederiksen/mytime-ics/internal/capture"
	"github.com/pfrederiksen/mytime-ics/internal/config"
	"github.com/pfrederiksen/mytime-ics/internal/logger"
	"github.com/pfrederiksen/mytime-ics/internal/scanner"
	"github.com/pfrederiksen/mytime-ics/internal/watch"
	"github.com/spf13/cobra"
)

var (
	flagSchedule string
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rescan the schedule on change and export whenever new shifts appear",
		Long: `Watch a saved schedule page for changes (--file), or re-capture a live
page on a cron schedule (--url). Shifts accumulate across scans, so paging
through several weeks collects all of them. Each time a scan finds new shifts,
the whole collection is exported as "<prefix> as of <last date>.ics".`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}

	addSourceFlags(cmd)
	addExportFlags(cmd)
	cmd.Flags().StringVar(&flagSchedule, "schedule", "", "Cron schedule for --url captures (default from config)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	ctx := cmd.Context()

	src, origin, err := pageSource(cfg)
	if err != nil {
		return err
	}
	trigger, err := newTrigger(src, cfg)
	if err != nil {
		return err
	}
	session, err := newSession(cfg)
	if err != nil {
		return err
	}
	exp, err := newExporter(cmd, cfg)
	if err != nil {
		return err
	}

	if err := trigger.Start(ctx); err != nil {
		return err
	}
	defer trigger.Stop()

	logger.Info("watching schedule", logger.Fields{"source": origin})

	w := &watcher{session: session, source: src, exporter: exp, prefix: cfg.FilenamePrefix}
	if err := w.scan(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped", logger.Fields{"shifts": session.Len()})
			return nil
		case <-trigger.C():
			if err := w.scan(ctx); err != nil {
				return err
			}
		}
	}
}

// newTrigger watches a saved file for changes, or re-captures a live page on a schedule.
func newTrigger(src capture.Source, cfg *config.Config) (watch.Trigger, error) {
	if file, ok := src.(capture.FileSource); ok {
		ft, err := watch.NewFileTrigger(file.Path, cfg.Watch.Debounce)
		if err != nil {
			return nil, err
		}
		return ft, nil
	}

	schedule := flagSchedule
	if schedule == "" {
		schedule = cfg.Watch.Schedule
	}
	ct, err := watch.NewCronTrigger(schedule)
	if err != nil {
		return nil, err
	}
	return ct, nil
}

// watcher runs one scan per trigger and exports when the session grows.
type watcher struct {
	session  *scanner.Session
	source   capture.Source
	exporter *exporter
	prefix   string
}

// scan rescans the page. Page problems are logged and the session is kept as
// it was; only export failures stop the watch.
func (w *watcher) scan(ctx context.Context) error {
	res, err := scanOnce(ctx, w.session, w.source)
	switch {
	case errors.Is(err, ErrNoSchedule):
		logger.Warn("no schedule on page", logger.Fields{"hint": err.Error()})
		return nil
	case err != nil:
		logger.Error("scan failed, keeping previous shifts", logger.Fields{"shifts": w.session.Len()}, err)
		return nil
	}

	logger.Info("schedule scanned", logger.Fields{
		"added":   len(res.Added),
		"skipped": res.Skipped,
		"total":   w.session.Len(),
	})
	if len(res.Added) == 0 {
		return nil
	}

	shifts := w.session.Shifts()
	name := calendar.Filename(calendar.NameAsOf, w.prefix, shifts)
	if err := w.exporter.run(name, shifts); err != nil {
		return fmt.Errorf("exporting session: %w", err)
	}
	return nil
}
