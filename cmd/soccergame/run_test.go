package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunMatch(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "log")
	errLogPath := filepath.Join(dir, "error.log")

	var stdout, stderr bytes.Buffer
	code := runMatch([]string{
		"-log", logPath,
		"-errlog", errLogPath,
		"-arrival-min", "1us",
		"-arrival-max", "50us",
		"-duration", "1ms",
	}, &stdout, &stderr)
	if code != 0 {
		errLog, _ := os.ReadFile(errLogPath)
		t.Fatalf("Expected exit code 0, got %d: %s", code, errLog)
	}

	trace, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read trace log: %s", err)
	}
	if !strings.HasPrefix(string(trace), "Soccer Game - Description of the internal state") {
		t.Errorf("Trace log does not start with the title: %q", firstLine(string(trace)))
	}

	out := stdout.String()
	for _, want := range []string{"Match finished in", "Team 1:", "Team 2:", "Late: "} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected summary to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRunMatchInvalidInput(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name         string
		args         []string
		expectedCode int
	}{
		{name: "Unknown Flag", args: []string{"-bogus"}, expectedCode: 2},
		{name: "Too Few Players", args: []string{"-players", "4"}, expectedCode: 1},
		{name: "Too Few Goalies", args: []string{"-goalies", "1"}, expectedCode: 1},
		{name: "Unwritable Log", args: []string{"-log", filepath.Join(dir, "missing", "log")}, expectedCode: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append([]string{"-errlog", filepath.Join(dir, "error.log")}, tc.args...)
			if code := runMatch(args, &stdout, &stderr); code != tc.expectedCode {
				t.Errorf("Expected exit code %d, got %d", tc.expectedCode, code)
			}
			if stdout.Len() != 0 {
				t.Errorf("Expected no summary, got %q", stdout.String())
			}
		})
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
