package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: errors.New("something went wrong"), expected: "Error: something went wrong"},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("failed to submit report: %w", errors.New("already reported today")),
			expected: "Error: failed to submit report: already reported today",
		},
		{
			name:     "joined errors",
			err:      errors.Join(errors.New("title: must not be empty"), errors.New("frequency: must be between 1 and 7, got 9")),
			expected: "Error:\n  - title: must not be empty\n  - frequency: must be between 1 and 7, got 9",
		},
		{
			name:     "single joined error",
			err:      errors.Join(errors.New("comment: too long")),
			expected: "Error: comment: too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("habit %s not found", "abc")
	if got != "Error: habit abc not found" {
		t.Errorf("Formatf() = %q", got)
	}
}

func runHelper(t *testing.T, test, env string) (int, string) {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^"+test+"$")
	cmd.Env = append(os.Environ(), env+"=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return 0, stderr.String()
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("helper process failed to run: %v", err)
	}
	return exitErr.ExitCode(), stderr.String()
}

func TestFatal(t *testing.T) {
	if os.Getenv("HABITLOG_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	code, stderr := runHelper(t, "TestFatal", "HABITLOG_TEST_FATAL")
	if code != 1 {
		t.Errorf("Fatal() exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Error: test error") {
		t.Errorf("Fatal() stderr = %q", stderr)
	}
}

func TestFatalNilError(t *testing.T) {
	if os.Getenv("HABITLOG_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	if code, _ := runHelper(t, "TestFatalNilError", "HABITLOG_TEST_FATAL_NIL"); code != 0 {
		t.Errorf("Fatal(nil) exited with %d", code)
	}
}

func TestFatalf(t *testing.T) {
	if os.Getenv("HABITLOG_TEST_FATALF") == "1" {
		Fatalf("connection to %s:%d failed", "localhost", 5432)
		return
	}

	code, stderr := runHelper(t, "TestFatalf", "HABITLOG_TEST_FATALF")
	if code != 1 {
		t.Errorf("Fatalf() exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Error: connection to localhost:5432 failed") {
		t.Errorf("Fatalf() stderr = %q", stderr)
	}
}
