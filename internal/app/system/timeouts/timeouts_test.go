package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(Reset)

	Configure(Config{Read: time.Second, Upload: time.Minute})

	got := Current()
	want := Config{Read: time.Second, Write: DefaultWrite, Upload: time.Minute}
	if got != want {
		t.Errorf("Current() = %+v, want %+v", got, want)
	}

	Reset()
	if Read() != DefaultRead || Write() != DefaultWrite || Upload() != DefaultUpload {
		t.Errorf("after Reset: %+v", Current())
	}
}

func TestWithTimeout_LogsDeadline(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, logger, "projects.list")
	<-ctx.Done()
	cancel()

	if logs.Len() != 1 {
		t.Fatalf("logged %d entries, want 1", logs.Len())
	}
	entry := logs.All()[0]
	if entry.ContextMap()["operation"] != "projects.list" {
		t.Errorf("operation = %v", entry.ContextMap()["operation"])
	}
}

func TestWithTimeout_QuietWhenCancelledEarly(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	_, cancel := WithTimeout(context.Background(), time.Hour, zap.New(core), "about.get_active")
	cancel()

	if logs.Len() != 0 {
		t.Errorf("logged %d entries, want 0", logs.Len())
	}
}
