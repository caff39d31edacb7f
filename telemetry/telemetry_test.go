package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestNoOpCollector(t *testing.T) {
	collector := noOpCollector{}

	timer := collector.Start("test")
	child := timer.Child("child")
	child.End()
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	if buf.Len() != 0 {
		t.Errorf("NoOp collector should produce no output, got: %s", buf.String())
	}
}

func TestFromContextReturnsNoOpWhenMissing(t *testing.T) {
	collector := FromContext(context.Background())

	if _, ok := collector.(noOpCollector); !ok {
		t.Errorf("FromContext should return noOpCollector when none present, got: %T", collector)
	}
}

func TestWithCollector(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	retrieved, ok := FromContext(ctx).(*TimingCollector)
	if !ok || retrieved != collector {
		t.Error("FromContext should return the same collector that was added")
	}
}

func TestStartTimerUsesContextCollector(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	timer := StartTimer(ctx, "ledger.processing (2 transactions)")
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	if !strings.Contains(buf.String(), "ledger.processing (2 transactions)") {
		t.Errorf("Report should contain the timer name, got: %s", buf.String())
	}
}

func TestTimingCollectorNesting(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("calculate")
	load := collector.Start("loader.csv")
	load.End()
	process := root.Child("ledger.processing")
	time.Sleep(time.Millisecond)
	process.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "calculate: ") {
		t.Errorf("First line should be the root, got: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "├─ loader.csv: ") {
		t.Errorf("Second line should be the first child, got: %s", lines[1])
	}
	if !strings.HasPrefix(lines[2], "└─ ledger.processing: ") {
		t.Errorf("Third line should be the last child, got: %s", lines[2])
	}
}

func TestTimingCollectorSiblingRoots(t *testing.T) {
	collector := NewTimingCollector()

	first := collector.Start("first")
	first.End()
	second := collector.Start("second")
	second.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	output := buf.String()
	if !strings.Contains(output, "first: ") || !strings.Contains(output, "second: ") {
		t.Errorf("Both roots should be reported, got: %s", output)
	}
	if strings.Contains(output, "└─ second") {
		t.Errorf("Second root should not be nested, got: %s", output)
	}
}

func TestTimingCollectorEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	NewTimingCollector().Report(&buf, nil)

	if buf.Len() != 0 {
		t.Errorf("Empty collector should produce no output, got: %s", buf.String())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{5 * time.Millisecond, "5ms"},
		{150 * time.Millisecond, "150ms"},
		{1500 * time.Millisecond, "1.50s"},
		{2 * time.Second, "2.00s"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.duration); got != tt.expected {
			t.Errorf("formatDuration(%v) = %s, want %s", tt.duration, got, tt.expected)
		}
	}
}

func TestLoggerContext(t *testing.T) {
	if Logger(context.Background()) != slog.Default() {
		t.Error("Logger should fall back to slog.Default")
	}

	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug").With("requestID", "abc")
	ctx := WithLogger(context.Background(), logger)

	Logger(ctx).Debug("processing batch", "transactions", 3)

	output := buf.String()
	if !strings.Contains(output, "requestID=abc") || !strings.Contains(output, "transactions=3") {
		t.Errorf("Logger output should carry attributes, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}

	for input, expected := range tests {
		if got := ParseLevel(input); got != expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, expected)
		}
	}
}
