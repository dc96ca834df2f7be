package watch

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr bool
	}{
		{"*/15 * * * *", false},
		{"0 */5 * * * *", false},
		{"@every 10m", false},
		{"@hourly", false},
		{"", true},
		{"every five minutes", true},
		{"61 * * * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := ParseSchedule(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseSchedule(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
		})
	}
}

func TestCronTrigger_Fires(t *testing.T) {
	defer goleak.VerifyNone(t)

	ct, err := NewCronTrigger("@every 1s")
	if err != nil {
		t.Fatalf("NewCronTrigger() error = %v", err)
	}
	defer ct.Stop()

	if err := ct.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if !waitSignal(ct.C(), 3*time.Second) {
		t.Fatal("expected the schedule to fire")
	}
}

func TestCronTrigger_InvalidSpec(t *testing.T) {
	if _, err := NewCronTrigger("not a schedule"); err == nil {
		t.Error("expected error for invalid schedule")
	}
}

func TestCronTrigger_StopIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	ct, err := NewCronTrigger("@hourly")
	if err != nil {
		t.Fatalf("NewCronTrigger() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ct.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	ct.Stop()
	ct.Stop()

	// Start after Stop is a no-op.
	if err := ct.Start(ctx); err != nil {
		t.Errorf("Start() after Stop error = %v", err)
	}
}

func TestTriggerInterface(t *testing.T) {
	var _ Trigger = (*FileTrigger)(nil)
	var _ Trigger = (*CronTrigger)(nil)
}
