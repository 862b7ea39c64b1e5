// Package security guards against obviously destructive step commands.
package security

import (
	"errors"
	"regexp"
	"strings"
)

var dangerousPatterns = []*regexp.Regexp{
	// Destructive filesystem ops
	regexp.MustCompile(`(?i)\brm\s+-rf\s+/?$`),
	regexp.MustCompile(`(?i)\brm\s+-rf\s+/`),
	regexp.MustCompile(`(?i)\bmkfs\b`),
	regexp.MustCompile(`(?i)\bdd\s+if=`),
	// fork bombs (e.g. :(){ :|:& };:)
	regexp.MustCompile(`:\(\)\s*\{`),
	// package managers removing all packages
	regexp.MustCompile(`(?i)\bapt\-get\s+remove\s+`),
	regexp.MustCompile(`(?i)\byum\s+remove\s+`),
	// wipe disk
	regexp.MustCompile(`(?i)\bwipefs\b`),
	// recursive force-delete on Windows
	regexp.MustCompile(`(?i)\brmdir\s+/s\b`),
	regexp.MustCompile(`(?i)\bdel\s+/f\s+/s\b`),
}

// CheckAllowed returns nil if the step command is allowed to run, or an error
// describing why it's blocked. Checking is conservative and not exhaustive;
// pipelines that legitimately need a blocked command can run with --force.
func CheckAllowed(command string) error {
	cmd := strings.TrimSpace(command)
	if cmd == "" {
		return errors.New("empty command")
	}
	for _, re := range dangerousPatterns {
		if re.MatchString(cmd) {
			return errors.New("command appears destructive or unsafe")
		}
	}
	return nil
}
