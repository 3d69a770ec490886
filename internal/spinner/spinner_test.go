package spinner

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestNewSpinner(t *testing.T) {
	var buf bytes.Buffer
	message := "Parsing corpus..."

	spinner := New(context.Background(), &buf, message)

	if spinner == nil {
		t.Fatal("New() returned nil")
	}
	if spinner.message != message {
		t.Errorf("Expected message %q, got %q", message, spinner.message)
	}
	if len(spinner.frames) != 4 {
		t.Errorf("Expected 4 frames, got %d", len(spinner.frames))
	}
}

func TestSpinnerStartStop(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "Working...")

	if spinner.IsActive() {
		t.Error("Spinner should not be active initially")
	}

	spinner.Start()
	if !spinner.IsActive() {
		t.Error("Spinner should be active after Start()")
	}

	// allow a few frames to render
	time.Sleep(300 * time.Millisecond)

	spinner.Stop()
	if spinner.IsActive() {
		t.Error("Spinner should not be active after Stop()")
	}

	output := buf.String()
	if output == "" {
		t.Fatal("Expected output to be written to buffer")
	}
	if !strings.Contains(output, "Working...") {
		t.Error("Expected message to appear in output")
	}

	hasFrame := false
	for _, frame := range []string{"|", "/", "-", "\\"} {
		if strings.Contains(output, frame) {
			hasFrame = true
			break
		}
	}
	if !hasFrame {
		t.Error("Expected spinner frames in output")
	}

	// non-terminal writers get a bare carriage return on stop
	if !strings.HasSuffix(output, "\r") {
		t.Error("Expected output to end with carriage return")
	}
}

func TestSpinnerUpdateMessage(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "Initial message")

	spinner.UpdateMessage("Updated message")
	if spinner.message != "Updated message" {
		t.Errorf("Expected message %q, got %q", "Updated message", spinner.message)
	}
}

func TestSpinnerDoubleStart(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "Working...")

	spinner.Start()
	spinner.Start()
	if !spinner.IsActive() {
		t.Error("Spinner should still be active after second Start()")
	}
	spinner.Stop()
}

func TestSpinnerDoubleStop(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "Working...")

	spinner.Start()
	spinner.Stop()
	spinner.Stop()
	if spinner.IsActive() {
		t.Error("Spinner should not be active after repeated Stop()")
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "Working...")

	spinner.Stop()
	if spinner.IsActive() {
		t.Error("Spinner should not be active after Stop() without Start()")
	}
}
