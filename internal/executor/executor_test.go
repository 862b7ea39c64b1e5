package executor

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestExecuteEchoDirect(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out, errb bytes.Buffer
	e := &Executor{}
	code, err := e.Execute(ctx, "echo hello", false, "", &out, &errb)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "hello") {
		t.Fatalf("expected 'hello' in stdout, got: %q", out.String())
	}
}

func TestExecutePropagatesExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh exit codes")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out, errb bytes.Buffer
	e := &Executor{}
	code, err := e.Execute(ctx, "exit 3", true, "", &out, &errb)
	if err != nil {
		t.Fatalf("exit-code failure should not be an error: %v", err)
	}
	if code != 3 {
		t.Fatalf("expected exit code 3, got %d", code)
	}
}

func TestExecuteLaunchFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out, errb bytes.Buffer
	e := &Executor{}
	code, err := e.Execute(ctx, "definitely-not-a-real-program-xyz", false, "", &out, &errb)
	if err == nil {
		t.Fatalf("expected error for missing program")
	}
	if code != ExitLaunchFailure {
		t.Fatalf("expected exit code %d, got %d", ExitLaunchFailure, code)
	}
}

func TestExecuteRunsInWorkingDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on pwd")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dir := t.TempDir()
	var out, errb bytes.Buffer
	e := &Executor{}
	code, err := e.Execute(ctx, "pwd", false, dir, &out, &errb)
	if err != nil || code != 0 {
		t.Fatalf("Execute failed: code=%d err=%v", code, err)
	}
	if !strings.Contains(out.String(), dir) {
		t.Fatalf("expected cwd %q in output, got %q", dir, out.String())
	}
}

func TestDryRun(t *testing.T) {
	ctx := context.Background()
	var out, errb bytes.Buffer
	e := &Executor{DryRun: true}
	code, err := e.Execute(ctx, "echo hi", false, "", &out, &errb)
	if err != nil || code != 0 {
		t.Fatalf("dry-run should succeed: code=%d err=%v", code, err)
	}
	if !strings.Contains(out.String(), "dry-run:") {
		t.Fatalf("expected dry-run message, got: %q", out.String())
	}
}

func TestExecuteRejectsMultiline(t *testing.T) {
	var out, errb bytes.Buffer
	e := &Executor{}
	code, err := e.Execute(context.Background(), "echo a\necho b", false, "", &out, &errb)
	if err == nil {
		t.Fatalf("expected error for multiline command")
	}
	if code != ExitLaunchFailure {
		t.Fatalf("expected exit code %d, got %d", ExitLaunchFailure, code)
	}
}

func TestSanitizeSmartQuotes(t *testing.T) {
	in := "echo “hello” ‘world’"
	got := Sanitize(in)
	if got != "echo \"hello\" 'world'" {
		t.Fatalf("unexpected sanitized command: %q", got)
	}
}

func TestValidateCommand(t *testing.T) {
	if err := ValidateCommand("echo ok"); err != nil {
		t.Fatalf("expected valid command, got: %v", err)
	}
	if err := ValidateCommand("echo \x00bad"); err == nil {
		t.Fatalf("expected error for NUL byte")
	}
}
