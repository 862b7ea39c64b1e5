// Package executor spawns step commands and reports their exit codes.
package executor

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ExitLaunchFailure is the exit code reported when a step command cannot be
// started at all (program missing, invalid command text). It follows the
// shell convention for "command not found".
const ExitLaunchFailure = 127

// Runner is an interface for executing commands. It allows tests to inject
// fake implementations without running real processes.
type Runner interface {
	// Execute runs command with the working directory cwd, writing the
	// child's stdout/stderr to the given writers. It returns the child's
	// exit code. A non-nil error means the command never produced a real
	// exit code (launch or validation failure); the returned code is then
	// ExitLaunchFailure.
	Execute(ctx context.Context, command string, useShell bool, cwd string, stdout io.Writer, stderr io.Writer) (int, error)
}

// Executor runs commands either directly (tokenized into program + arguments)
// or through an OS-appropriate shell.
type Executor struct {
	DryRun bool
	Shell  string // optional shell override for shell steps (e.g., "pwsh")
}

// New returns a Runner backed by the real Executor implementation.
func New(dry bool) Runner {
	return &Executor{DryRun: dry}
}

// sanitizeCommand normalizes common unicode characters that often get
// inserted by editors (e.g., smart quotes, NBSP, zero-width spaces) and
// converts them to their ASCII equivalents where sensible.
func sanitizeCommand(s string) string {
	r := strings.NewReplacer(
		"\u2018", "'", // left single quote
		"\u2019", "'", // right single quote
		"\u201C", "\"", // left double quote
		"\u201D", "\"", // right double quote
		"\u00A0", " ", // NO-BREAK SPACE
		"\u200B", "", // zero width space
		"\u200E", "", // left-to-right mark
		"\u200F", "", // right-to-left mark
	)
	rp := r.Replace(s)
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, rp)
}

// Sanitize normalizes common unicode characters and removes embedded NUL
// runes. Exported for callers that want to sanitize user-edited commands at
// save time.
func Sanitize(s string) string {
	return sanitizeCommand(s)
}

// ValidateCommand checks for characters that will cause command execution to
// fail (newlines and control characters) and returns an error describing the
// problem if one is found.
func ValidateCommand(s string) error {
	if strings.Contains(s, "\n") {
		return fmt.Errorf("invalid command: contains newline characters; each command must be a single line")
	}
	if strings.IndexFunc(s, func(r rune) bool { return r == 0 || (r < 32 && r != '\t') || r == 0x7f }) != -1 {
		return fmt.Errorf("invalid command: contains control characters; remove non-printable characters")
	}
	return nil
}

func validateAndSanitize(command string) (string, error) {
	command = sanitizeCommand(command)
	if err := ValidateCommand(command); err != nil {
		return "", err
	}
	if strings.TrimSpace(command) == "" {
		return "", fmt.Errorf("invalid command: empty")
	}
	return command, nil
}

// shellInvocation returns the shell executable and arguments for the platform.
// Optional `override` lets callers request an alternate shell (e.g., pwsh).
func shellInvocation(command string, overrideShell string) (string, []string) {
	if overrideShell != "" {
		switch overrideShell {
		case "pwsh":
			return "pwsh", []string{"-Command", command}
		case "powershell":
			// On Windows prefer the OS-provided 'powershell' if present, else
			// fall back to 'pwsh' if available. On non-Windows prefer 'pwsh'.
			if runtime.GOOS == "windows" {
				if p, err := exec.LookPath("powershell"); err == nil {
					return p, []string{"-Command", command}
				}
				if p, err := exec.LookPath("pwsh"); err == nil {
					return p, []string{"-Command", command}
				}
				return "powershell", []string{"-Command", command}
			}
			return "pwsh", []string{"-Command", command}
		default:
			return overrideShell, []string{"-c", command}
		}
	}

	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C", command}
	}
	return "bash", []string{"-c", command}
}

// Execute runs the given command string. When useShell is false the command
// is tokenized into program + arguments and spawned directly, so the child's
// exit code comes back untranslated; when true it is handed to the platform
// shell. If cwd is non-empty, the command runs in that directory.
func (e *Executor) Execute(ctx context.Context, command string, useShell bool, cwd string, stdout io.Writer, stderr io.Writer) (int, error) {
	command, err := validateAndSanitize(command)
	if err != nil {
		return ExitLaunchFailure, err
	}

	if e.DryRun {
		_, _ = fmt.Fprintf(stdout, "dry-run: %s\n", command)
		return 0, nil
	}

	var cmd *exec.Cmd
	if useShell {
		shell, args := shellInvocation(command, e.Shell)
		if _, err := exec.LookPath(shell); err != nil {
			return ExitLaunchFailure, fmt.Errorf("shell not found in PATH: %s", shell)
		}
		cmd = exec.CommandContext(ctx, shell, args...)
	} else {
		argv, err := shellquote.Split(command)
		if err != nil {
			return ExitLaunchFailure, fmt.Errorf("invalid command %q: %w", command, err)
		}
		if len(argv) == 0 {
			return ExitLaunchFailure, fmt.Errorf("invalid command: empty")
		}
		cmd = exec.CommandContext(ctx, argv[0], argv[1:]...)
	}

	if cwd != "" {
		cmd.Dir = cwd
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code := exitErr.ExitCode()
			if code < 0 {
				// terminated by a signal; there is no exit code to propagate
				return ExitLaunchFailure, fmt.Errorf("command terminated: %w", err)
			}
			return code, nil
		}
		return ExitLaunchFailure, fmt.Errorf("could not start command: %w", err)
	}
	return 0, nil
}
