// Package watch provides the change triggers that drive repeated scans.
//
// The scanner itself has no timers: the CLI's watch command re-runs a scan each
// time a Trigger fires. FileTrigger fires when a saved page changes on disk and
// CronTrigger fires on a schedule, for re-capturing a live page.
package watch

import "context"

// Trigger signals that the schedule page may have changed.
type Trigger interface {
	// C delivers one value per (coalesced) change.
	C() <-chan struct{}
	// Start begins watching. It does not block.
	Start(ctx context.Context) error
	// Stop ends watching and waits for background work to finish.
	Stop()
}
